/*
handlers.go - HTTP API handlers for the payroll engine

PURPOSE:
  Exposes the settlement calculator, the liquidation ledger and the
  salary versioning ledger via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Liquidations:
    POST   /api/liquidations/compute     Calculate without persisting
    POST   /api/liquidations             Calculate and save as Draft
    GET    /api/liquidations?q=          Search by employee ref or name
    GET    /api/liquidations/{id}        Get one settlement
    GET    /api/liquidations/{id}/detail Get the stored itemization
    POST   /api/liquidations/{id}/confirm  Draft -> Confirmed
    POST   /api/liquidations/{id}/pay      Confirmed -> Paid

  Salaries:
    GET    /api/categories               List categories with current base
    GET    /api/categories/{id}/salary   One category's projected base
    POST   /api/salaries/increase        General percentage raise (group)
    POST   /api/salaries/override        Individual absolute override
    POST   /api/salaries/reset           Return category to initial base
    GET    /api/salaries/history         Filterable history query

  Concepts:
    GET    /api/concepts?group=          Ordered concept list for a group

  Dev:
    POST   /api/seed                     Load the demo dataset

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Unknown liquidation or category
  - 409: Illegal or raced state transition
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - seed.go: Demo data loader
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/liquidation"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/salaries"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Catalog      *payroll.ConceptCatalog
	Liquidations *liquidation.Ledger
	Salaries     *salaries.Ledger
	Directory    liquidation.EmployeeDirectory

	CatalogFactory *factory.CatalogFactory
}

// NewHandler creates a new handler with the given dependencies.
func NewHandler(
	catalog *payroll.ConceptCatalog,
	liquidations *liquidation.Ledger,
	salaryLedger *salaries.Ledger,
	directory liquidation.EmployeeDirectory,
) *Handler {
	return &Handler{
		Catalog:        catalog,
		Liquidations:   liquidations,
		Salaries:       salaryLedger,
		Directory:      directory,
		CatalogFactory: factory.NewCatalogFactory(),
	}
}

// =============================================================================
// LIQUIDATION HANDLERS
// =============================================================================

// ComputeLiquidation calculates a settlement without persisting anything.
// POST /api/liquidations/compute
func (h *Handler) ComputeLiquidation(w http.ResponseWriter, r *http.Request) {
	var req ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, _, err := h.compute(r, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResultDTO(result))
}

// CreateLiquidation calculates a settlement and saves it as a Draft.
// POST /api/liquidations
func (h *Handler) CreateLiquidation(w http.ResponseWriter, r *http.Request) {
	var req ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, input, err := h.compute(r, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	name, _ := h.Directory.DisplayName(input.EmployeeRef)
	liq, err := h.Liquidations.Save(r.Context(), result, input.EmployeeRef, name, input.Period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save liquidation", err)
		return
	}

	writeJSON(w, http.StatusCreated, toLiquidationDTO(*liq))
}

// compute resolves the category's projected base salary and concept list,
// then runs the pure calculation. An explicit base_salary in the request
// skips the projection; with base_salary present the category may be
// omitted and the group field picks the concept list instead.
func (h *Handler) compute(r *http.Request, req ComputeRequest) (payroll.LiquidationResult, payroll.LiquidationInput, error) {
	ctx := r.Context()

	var base decimal.Decimal
	group := payroll.GroupID(req.Group)

	if req.CategoryID != "" {
		view, err := h.Salaries.Category(ctx, salaries.CategoryID(req.CategoryID))
		if err != nil {
			return payroll.LiquidationResult{}, payroll.LiquidationInput{}, err
		}
		base = view.CurrentBaseSalary
		group = view.Group
	} else if req.BaseSalary == nil {
		return payroll.LiquidationResult{}, payroll.LiquidationInput{},
			&payroll.InvalidInputError{Field: "category_id", Reason: "required unless base_salary is given"}
	}

	if req.BaseSalary != nil {
		base = decimal.NewFromFloat(*req.BaseSalary)
	}

	input := payroll.LiquidationInput{
		EmployeeRef:         payroll.EmployeeRef(req.EmployeeRef),
		Period:              payroll.NewPeriod(req.Period.Year, time.Month(req.Period.Month)),
		BaseSalary:          base,
		Journey:             payroll.JourneyType(req.Journey),
		AttendanceActive:    req.AttendanceActive,
		BiAnnualBonusActive: req.BiAnnualBonusActive,
		OvertimeHours50:     decimal.NewFromFloat(req.OvertimeHours50),
		OvertimeHours100:    decimal.NewFromFloat(req.OvertimeHours100),
	}

	result, err := payroll.Compute(input, h.Catalog.ConceptsFor(group))
	return result, input, err
}

// ListLiquidations searches settlements by employee ref or name.
// GET /api/liquidations?q=
func (h *Handler) ListLiquidations(w http.ResponseWriter, r *http.Request) {
	results, err := h.Liquidations.Find(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to search liquidations", err)
		return
	}

	dtos := make([]LiquidationDTO, len(results))
	for i, liq := range results {
		dtos[i] = toLiquidationDTO(liq)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetLiquidation returns one settlement.
// GET /api/liquidations/{id}
func (h *Handler) GetLiquidation(w http.ResponseWriter, r *http.Request) {
	id := liquidation.LiquidationID(chi.URLParam(r, "id"))

	liq, err := h.Liquidations.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLiquidationDTO(*liq))
}

// GetLiquidationDetail returns the stored itemization of a settlement.
// GET /api/liquidations/{id}/detail
func (h *Handler) GetLiquidationDetail(w http.ResponseWriter, r *http.Request) {
	id := liquidation.LiquidationID(chi.URLParam(r, "id"))

	lines, err := h.Liquidations.Detail(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dtos := make([]ConceptLineDTO, len(lines))
	for i, line := range lines {
		dtos[i] = toConceptLineDTO(line)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ConfirmLiquidation moves a Draft settlement to Confirmed.
// POST /api/liquidations/{id}/confirm
func (h *Handler) ConfirmLiquidation(w http.ResponseWriter, r *http.Request) {
	id := liquidation.LiquidationID(chi.URLParam(r, "id"))

	liq, err := h.Liquidations.Confirm(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLiquidationDTO(*liq))
}

// PayLiquidation moves a Confirmed settlement to Paid.
// POST /api/liquidations/{id}/pay
func (h *Handler) PayLiquidation(w http.ResponseWriter, r *http.Request) {
	id := liquidation.LiquidationID(chi.URLParam(r, "id"))

	liq, err := h.Liquidations.MarkPaid(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLiquidationDTO(*liq))
}

// =============================================================================
// SALARY HANDLERS
// =============================================================================

// ListCategories returns all categories with their projected current base.
// GET /api/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	views, err := h.Salaries.Categories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list categories", err)
		return
	}

	dtos := make([]CategoryDTO, len(views))
	for i, view := range views {
		dtos[i] = toCategoryDTO(view)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCategorySalary returns one category with its projected current base.
// GET /api/categories/{id}/salary
func (h *Handler) GetCategorySalary(w http.ResponseWriter, r *http.Request) {
	id := salaries.CategoryID(chi.URLParam(r, "id"))

	view, err := h.Salaries.Category(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryDTO(*view))
}

// ApplyIncrease applies a general percentage raise to every category in
// a group.
// POST /api/salaries/increase
func (h *Handler) ApplyIncrease(w http.ResponseWriter, r *http.Request) {
	var req IncreaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	effectiveDate, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid effective_date format (use YYYY-MM-DD)", err)
		return
	}

	entries, err := h.Salaries.ApplyGeneralIncrease(
		r.Context(),
		payroll.GroupID(req.Group),
		decimal.NewFromFloat(req.Percentage),
		effectiveDate,
		req.ActingUser,
	)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toHistoryEntryDTOs(entries))
}

// ApplyOverride replaces one category's base salary with an absolute
// value.
// POST /api/salaries/override
func (h *Handler) ApplyOverride(w http.ResponseWriter, r *http.Request) {
	var req OverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	entry, err := h.Salaries.ApplyIndividualOverride(
		r.Context(),
		salaries.CategoryID(req.CategoryID),
		decimal.NewFromFloat(req.NewBaseSalary),
		req.ActingUser,
		req.Observation,
	)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toHistoryEntryDTO(*entry))
}

// ResetSalary returns one category to its initial base salary.
// POST /api/salaries/reset
func (h *Handler) ResetSalary(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	entry, err := h.Salaries.ResetToInitial(
		r.Context(),
		salaries.CategoryID(req.CategoryID),
		req.ActingUser,
		req.Observation,
	)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toHistoryEntryDTO(*entry))
}

// GetHistory returns salary history entries matching the query filters.
// GET /api/salaries/history?category=&from=&to=
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	var filter salaries.HistoryFilter

	if v := r.URL.Query().Get("category"); v != "" {
		id := salaries.CategoryID(v)
		filter.Category = &id
	}
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid from date (use YYYY-MM-DD)", err)
			return
		}
		filter.DateFrom = &t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid to date (use YYYY-MM-DD)", err)
			return
		}
		filter.DateTo = &t
	}

	entries, err := h.Salaries.History(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toHistoryEntryDTOs(entries))
}

// =============================================================================
// CONCEPT HANDLERS
// =============================================================================

// ListConcepts returns the ordered concept list for a group (or the
// defaults without a group parameter).
// GET /api/concepts?group=
func (h *Handler) ListConcepts(w http.ResponseWriter, r *http.Request) {
	group := payroll.GroupID(r.URL.Query().Get("group"))
	concepts := h.Catalog.ConceptsFor(group)
	writeJSON(w, http.StatusOK, h.CatalogFactory.ToJSON(concepts))
}

// =============================================================================
// HELPERS
// =============================================================================

// writeDomainError maps domain errors onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, payroll.ErrInvalidInput),
		errors.Is(err, payroll.ErrInvalidCatalog),
		errors.Is(err, salaries.ErrInvalidPercentage),
		errors.Is(err, salaries.ErrInvalidValue),
		errors.Is(err, salaries.ErrInvalidDate),
		errors.Is(err, salaries.ErrInvalidRange):
		writeError(w, http.StatusBadRequest, err.Error(), nil)

	case errors.Is(err, liquidation.ErrNotFound),
		errors.Is(err, salaries.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error(), nil)

	case errors.Is(err, liquidation.ErrInvalidTransition):
		writeError(w, http.StatusConflict, err.Error(), nil)

	default:
		writeError(w, http.StatusInternalServerError, "internal error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

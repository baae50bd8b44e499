/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY AT THE BOUNDARY:
  Internally every amount is decimal.Decimal. DTOs expose float64 for
  client convenience; the conversion happens only here, on the way out.
  Percentages arrive on the human 0-100 scale.

VALIDATION:
  Validation is done in the domain packages, not in DTOs. DTOs are pure
  data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/catalog.go: ConceptJSON type reused for concept listings
*/
package api

import (
	"time"

	"github.com/warp/payroll-engine/liquidation"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/salaries"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// PeriodDTO is a settlement period in requests and responses.
type PeriodDTO struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// ComputeRequest is the input for calculating (and optionally saving) a
// settlement. The base salary normally comes from the category's current
// projected value; base_salary overrides it when present. With an
// explicit base_salary the category may be omitted entirely, in which
// case the concept list is picked by the optional group field (empty
// group means the default agreement).
type ComputeRequest struct {
	EmployeeRef         string    `json:"employee_ref"`
	CategoryID          string    `json:"category_id,omitempty"`
	Group               string    `json:"group,omitempty"`
	Period              PeriodDTO `json:"period"`
	Journey             string    `json:"journey"` // full, two_thirds, half
	BaseSalary          *float64  `json:"base_salary,omitempty"`
	AttendanceActive    bool      `json:"attendance_active,omitempty"`
	BiAnnualBonusActive bool      `json:"bi_annual_bonus_active,omitempty"`
	OvertimeHours50     float64   `json:"overtime_hours_50,omitempty"`
	OvertimeHours100    float64   `json:"overtime_hours_100,omitempty"`
}

// IncreaseRequest applies a general percentage raise to a group.
type IncreaseRequest struct {
	Group         string  `json:"group"`
	Percentage    float64 `json:"percentage"` // 0-100 scale
	EffectiveDate string  `json:"effective_date"` // YYYY-MM-DD
	ActingUser    string  `json:"acting_user,omitempty"`
}

// OverrideRequest replaces one category's base salary.
type OverrideRequest struct {
	CategoryID    string  `json:"category_id"`
	NewBaseSalary float64 `json:"new_base_salary"`
	ActingUser    string  `json:"acting_user,omitempty"`
	Observation   string  `json:"observation,omitempty"`
}

// ResetRequest returns one category to its initial base salary.
type ResetRequest struct {
	CategoryID  string `json:"category_id"`
	ActingUser  string `json:"acting_user,omitempty"`
	Observation string `json:"observation,omitempty"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ConceptLineDTO is one line of a settlement itemization.
type ConceptLineDTO struct {
	ConceptID string  `json:"concept_id"`
	Name      string  `json:"name"`
	Kind      string  `json:"kind"`
	Amount    float64 `json:"amount"`
	Active    bool    `json:"active"`
}

// WarningDTO is an advisory attached to a successful calculation.
type WarningDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ResultDTO is the itemized, totaled settlement output.
type ResultDTO struct {
	ValueHourNormal      float64          `json:"value_hour_normal"`
	Lines                []ConceptLineDTO `json:"lines"`
	TotalRemunerative    float64          `json:"total_remunerative"`
	TotalNonRemunerative float64          `json:"total_non_remunerative"`
	TotalEarnings        float64          `json:"total_earnings"`
	TotalDeductions      float64          `json:"total_deductions"`
	NetPay               float64          `json:"net_pay"`
	Warnings             []WarningDTO     `json:"warnings,omitempty"`
}

// LiquidationDTO is a stored settlement with its lifecycle state.
type LiquidationDTO struct {
	ID           string    `json:"id"`
	EmployeeRef  string    `json:"employee_ref"`
	EmployeeName string    `json:"employee_name,omitempty"`
	Period       PeriodDTO `json:"period"`
	State        string    `json:"state"`
	Result       ResultDTO `json:"result"`
	CreatedAt    string    `json:"created_at"`
	ConfirmedAt  *string   `json:"confirmed_at,omitempty"`
	PaidAt       *string   `json:"paid_at,omitempty"`
}

// CategoryDTO is a salary category with its derived current base.
type CategoryDTO struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Group             string   `json:"group"`
	InitialBaseSalary float64  `json:"initial_base_salary"`
	CurrentBaseSalary float64  `json:"current_base_salary"`
	LastUpdate        *string  `json:"last_update,omitempty"`
}

// HistoryEntryDTO is one immutable salary-history record.
type HistoryEntryDTO struct {
	ID                 string   `json:"id"`
	CategoryID         string   `json:"category_id"`
	PreviousBaseSalary float64  `json:"previous_base_salary"`
	NewBaseSalary      float64  `json:"new_base_salary"`
	Type               string   `json:"type"`
	PercentageApplied  *float64 `json:"percentage_applied,omitempty"`
	EffectiveDate      string   `json:"effective_date"`
	RegisteredAt       string   `json:"registered_at"`
	ActingUser         string   `json:"acting_user,omitempty"`
	Observation        string   `json:"observation,omitempty"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toResultDTO(r payroll.LiquidationResult) ResultDTO {
	lines := make([]ConceptLineDTO, len(r.Lines))
	for i, line := range r.Lines {
		lines[i] = toConceptLineDTO(line)
	}

	var warnings []WarningDTO
	for _, w := range r.Warnings {
		warnings = append(warnings, WarningDTO{Code: w.Code, Message: w.Message})
	}

	return ResultDTO{
		ValueHourNormal:      r.ValueHourNormal.InexactFloat64(),
		Lines:                lines,
		TotalRemunerative:    r.TotalRemunerative.InexactFloat64(),
		TotalNonRemunerative: r.TotalNonRemunerative.InexactFloat64(),
		TotalEarnings:        r.TotalEarnings.InexactFloat64(),
		TotalDeductions:      r.TotalDeductions.InexactFloat64(),
		NetPay:               r.NetPay.InexactFloat64(),
		Warnings:             warnings,
	}
}

func toConceptLineDTO(line payroll.ConceptLine) ConceptLineDTO {
	return ConceptLineDTO{
		ConceptID: string(line.ConceptID),
		Name:      line.Name,
		Kind:      string(line.Kind),
		Amount:    line.Amount.InexactFloat64(),
		Active:    line.Active,
	}
}

func toLiquidationDTO(liq liquidation.Liquidation) LiquidationDTO {
	dto := LiquidationDTO{
		ID:           string(liq.ID),
		EmployeeRef:  string(liq.EmployeeRef),
		EmployeeName: liq.EmployeeName,
		Period:       PeriodDTO{Year: liq.Period.Year, Month: int(liq.Period.Month)},
		State:        string(liq.State),
		Result:       toResultDTO(liq.Result),
		CreatedAt:    liq.CreatedAt.Format(time.RFC3339),
	}
	if liq.ConfirmedAt != nil {
		s := liq.ConfirmedAt.Format(time.RFC3339)
		dto.ConfirmedAt = &s
	}
	if liq.PaidAt != nil {
		s := liq.PaidAt.Format(time.RFC3339)
		dto.PaidAt = &s
	}
	return dto
}

func toCategoryDTO(view salaries.CategoryView) CategoryDTO {
	dto := CategoryDTO{
		ID:                string(view.ID),
		Name:              view.Name,
		Group:             string(view.Group),
		InitialBaseSalary: view.InitialBaseSalary.InexactFloat64(),
		CurrentBaseSalary: view.CurrentBaseSalary.InexactFloat64(),
	}
	if view.LastUpdate != nil {
		s := view.LastUpdate.Format(time.RFC3339)
		dto.LastUpdate = &s
	}
	return dto
}

func toHistoryEntryDTO(e salaries.HistoryEntry) HistoryEntryDTO {
	dto := HistoryEntryDTO{
		ID:                 string(e.ID),
		CategoryID:         string(e.CategoryID),
		PreviousBaseSalary: e.PreviousBaseSalary.InexactFloat64(),
		NewBaseSalary:      e.NewBaseSalary.InexactFloat64(),
		Type:               string(e.Type),
		EffectiveDate:      e.EffectiveDate.Format(time.RFC3339),
		RegisteredAt:       e.RegisteredAt.Format(time.RFC3339),
		ActingUser:         e.ActingUser,
		Observation:        e.Observation,
	}
	if e.PercentageApplied != nil {
		v := e.PercentageApplied.InexactFloat64()
		dto.PercentageApplied = &v
	}
	return dto
}

func toHistoryEntryDTOs(entries []salaries.HistoryEntry) []HistoryEntryDTO {
	dtos := make([]HistoryEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toHistoryEntryDTO(e)
	}
	return dtos
}

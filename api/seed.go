/*
seed.go - Demo dataset loader

PURPOSE:
  Loads a small realistic dataset so the API is explorable immediately:
  salary categories across two collective-agreement groups and a handful
  of employees in the static directory. Intended for dev and demos, not
  production.

IDEMPOTENCY:
  Categories are upserted, so seeding twice does not duplicate them.
  Salary history is NOT touched: the append-only log stays honest even
  across reseeds.

SEE ALSO:
  - factory/catalog.go: The built-in concept catalog used alongside
  - handlers.go: The /api/seed route
*/
package api

import (
	"net/http"
	"sync"

	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/salaries"
)

// =============================================================================
// STATIC EMPLOYEE DIRECTORY
// =============================================================================

// StaticDirectory is an in-memory employee directory. Identity
// management lives outside this core; this stands in for it in dev.
type StaticDirectory struct {
	mu    sync.RWMutex
	names map[payroll.EmployeeRef]string
}

func NewStaticDirectory() *StaticDirectory {
	return &StaticDirectory{names: make(map[payroll.EmployeeRef]string)}
}

func (d *StaticDirectory) Add(ref payroll.EmployeeRef, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.names[ref] = name
}

func (d *StaticDirectory) DisplayName(ref payroll.EmployeeRef) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	name, ok := d.names[ref]
	return name, ok
}

// =============================================================================
// SEED DATA
// =============================================================================

type seedCategory struct {
	id     string
	name   string
	group  string
	salary string
}

var seedCategories = []seedCategory{
	{"cook", "Cook", "gastronomic", "450000"},
	{"waiter", "Waiter", "gastronomic", "380000"},
	{"dishwasher", "Dishwasher", "gastronomic", "320000"},
	{"cashier", "Cashier", "commerce", "400000"},
	{"administrative", "Administrative", "commerce", "480000"},
}

var seedEmployees = map[payroll.EmployeeRef]string{
	"emp-001": "Maria Lopez",
	"emp-002": "Carlos Fernandez",
	"emp-003": "Lucia Gomez",
	"emp-004": "Javier Diaz",
}

// Seed loads the demo categories and employees.
// POST /api/seed
func (h *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	for _, sc := range seedCategories {
		cat := salaries.SalaryCategory{
			ID:                salaries.CategoryID(sc.id),
			Name:              sc.name,
			Group:             payroll.GroupID(sc.group),
			InitialBaseSalary: payroll.MustParseDecimal(sc.salary),
		}
		if err := h.Salaries.RegisterCategory(r.Context(), cat); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to seed categories", err)
			return
		}
	}

	if dir, ok := h.Directory.(*StaticDirectory); ok {
		for ref, name := range seedEmployees {
			dir.Add(ref, name)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"categories": len(seedCategories),
		"employees":  len(seedEmployees),
	})
}

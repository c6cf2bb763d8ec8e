package world

import (
	"townsim.ai/internal/sim/world/logic/mathx"
	"townsim.ai/internal/sim/world/logic/rates"
)

// Employer is a structure with a payroll: offices and farms.
type Employer interface {
	Structure
	Capacity() float64
	MaxEmployed() int
	Wage() float64
	BankruptSince() (int, bool)

	payrollState() *payroll
	// admit returns a reason code when c cannot work here at all.
	admit(c *Citizen) string
	hired(c *Citizen)
}

type payroll struct {
	wage          float64
	bankruptSince int
	bankrupt      bool
}

func (p *payroll) payrollState() *payroll { return p }

func (p *payroll) Wage() float64 { return p.wage }

// BankruptSince reports the first day of the current insolvency, if any.
func (p *payroll) BankruptSince() (int, bool) { return p.bankruptSince, p.bankrupt }

func StaffRatio(e Employer) float64 {
	return mathx.Ratio(e.Base().EmployedCount(), e.Capacity())
}

// EmployerOf resolves the structure a citizen draws a wage from, if any.
// Founders count as drawing their company's wage.
func (w *World) EmployerOf(c *Citizen) Employer {
	if c == nil {
		return nil
	}
	switch c.occupation.Kind {
	case OccupationOffice:
		if o := w.Office(c.occupation.StructureID); o != nil {
			return o
		}
	case OccupationFarm:
		if f := w.Farm(c.occupation.StructureID); f != nil {
			return f
		}
	case OccupationPowerPlant, OccupationApartment, OccupationNone:
	}
	return nil
}

// GetHired joins e only while it has room.
func (w *World) GetHired(c *Citizen, e Employer) bool {
	if c == nil || e == nil {
		return false
	}
	b := e.Base()
	if b.EmployedCount() >= e.MaxEmployed() {
		w.audit(b.ID, ActionHire, c.ID, 0, ReasonCapacity, nil)
		return false
	}
	return w.Hire(e, c)
}

// Hire adds c to the payroll. Farms only take farmers. The roster never
// grows past MaxEmployed and never lists a citizen twice.
func (w *World) Hire(e Employer, c *Citizen) bool {
	if c == nil || e == nil {
		return false
	}
	b := e.Base()
	reason := e.admit(c)
	switch {
	case b.IsEmployed(c.ID):
		reason = ReasonAlreadyMember
	case reason == "" && b.EmployedCount() >= e.MaxEmployed():
		reason = ReasonCapacity
	}
	if reason != "" {
		w.audit(b.ID, ActionHire, c.ID, 0, reason, nil)
		return false
	}
	w.employ(b, c)
	e.hired(c)
	w.audit(b.ID, ActionHire, c.ID, e.Wage(), "", nil)
	return true
}

func (w *World) FireEmployee(e Employer, c *Citizen) bool {
	if c == nil || e == nil {
		return false
	}
	b := e.Base()
	if !w.dismiss(b, c) {
		w.audit(b.ID, ActionFire, c.ID, 0, ReasonNotMember, nil)
		return false
	}
	w.audit(b.ID, ActionFire, c.ID, 0, "", nil)
	return true
}

func (w *World) fireAll(e Employer) int {
	n := 0
	for _, id := range e.Base().Employed() {
		if c := w.Citizen(id); c != nil && w.FireEmployee(e, c) {
			n++
		}
	}
	return n
}

// PayCitizens pays every employee the wage out of the treasury, which may go negative.
func (w *World) PayCitizens(e Employer) float64 {
	b := e.Base()
	wage := e.Wage()
	total := 0.0
	for _, id := range b.employed {
		c := w.Citizen(id)
		if c == nil {
			continue
		}
		c.Pay(wage)
		b.Treasury -= wage
		total += wage
	}
	if total > 0 {
		w.audit(b.ID, ActionPayWages, "", total, "", map[string]any{"employees": len(b.employed), "wage": wage})
	}
	return total
}

// CheckBankruptcy tracks insolvency and liquidates the payroll once the grace
// window has passed. Without a recorded insolvency it never liquidates.
func (w *World) CheckBankruptcy(e Employer, day int) bool {
	b := e.Base()
	p := e.payrollState()
	switch {
	case b.Treasury < 0 && !p.bankrupt:
		p.bankrupt = true
		p.bankruptSince = day
		w.audit(b.ID, ActionBankrupt, "", b.Treasury, "", nil)
	case b.Treasury > 0 && p.bankrupt:
		p.bankrupt = false
		p.bankruptSince = 0
		w.audit(b.ID, ActionRecover, "", b.Treasury, "", nil)
	}
	if !p.bankrupt || day <= p.bankruptSince+w.cfg.BankruptcyGraceDays {
		return false
	}
	n := w.fireAll(e)
	w.audit(b.ID, ActionLiquidate, "", b.Treasury, "", map[string]any{"fired": n, "since": p.bankruptSince})
	w.logf("day %d: %s (%s) liquidated, %d employees fired", day, b.Name, b.ID, n)
	return true
}

func (w *World) ChangePay(e Employer) {
	p := e.payrollState()
	p.wage = rates.NextWage(p.wage, StaffRatio(e), e.Base().Treasury, w.cfg.WagePolicy)
}

// DestroyCompany empties an office or farm. The structure itself stays registered.
func (w *World) DestroyCompany(e Employer) int {
	n := w.fireAll(e)
	if o, ok := e.(*Office); ok {
		o.DestroyProduct()
	}
	w.audit(e.Base().ID, ActionDestroy, "", 0, "", map[string]any{"fired": n})
	return n
}

package world

import (
	"math"

	"townsim.ai/internal/sim/world/logic/mathx"
	"townsim.ai/internal/sim/world/logic/rates"
)

type Apartment struct {
	Building

	UnitSqft    float64
	RentPerSqft float64

	renters []string
}

// ApartmentsPerFloor halves the floor area to leave room for lobbies and hallways.
func (a *Apartment) ApartmentsPerFloor() float64 {
	if a.UnitSqft <= 0 {
		return 0
	}
	return a.Blueprint.AreaPerFloor() / a.UnitSqft / 2
}

// Units is the building's unit count, which need not be whole.
func (a *Apartment) Units() float64 { return float64(a.Blueprint.Floors) * a.ApartmentsPerFloor() }

// TotalApartments is the number of leases that fit strictly below Units.
func (a *Apartment) TotalApartments() int { return int(math.Ceil(a.Units())) }

func (a *Apartment) RentPrice() float64 { return a.UnitSqft * a.RentPerSqft }

func (a *Apartment) IsFull() bool { return len(a.renters) >= a.TotalApartments() }

func (a *Apartment) Renters() []string { return append([]string(nil), a.renters...) }

func (a *Apartment) IsRenter(citizenID string) bool { return indexOf(a.renters, citizenID) >= 0 }

func (a *Apartment) Occupancy() float64 { return mathx.Ratio(len(a.renters), a.Units()) }

// Accept leases a unit to c while any are free.
func (w *World) Accept(a *Apartment, c *Citizen) bool {
	if a == nil || c == nil {
		return false
	}
	reason := ""
	switch {
	case a.IsRenter(c.ID):
		reason = ReasonAlreadyMember
	case a.IsFull():
		reason = ReasonCapacity
	}
	if reason != "" {
		w.audit(c.ID, ActionMoveIn, a.ID, 0, reason, nil)
		return false
	}
	w.lease(a, c)
	w.audit(c.ID, ActionMoveIn, a.ID, a.RentPrice(), "", nil)
	return true
}

func (w *World) Evict(a *Apartment, c *Citizen) bool {
	if a == nil || c == nil {
		return false
	}
	if c.residence != a.ID {
		w.audit(a.ID, ActionMoveOut, c.ID, 0, ReasonNotMember, nil)
		return false
	}
	w.vacate(c)
	w.audit(a.ID, ActionMoveOut, c.ID, 0, "", nil)
	return true
}

// CollectRent asks every renter, in order, to pay. It returns how many paid.
func (w *World) CollectRent(a *Apartment) int {
	paid := 0
	for _, id := range a.Renters() {
		if c := w.Citizen(id); c != nil && w.PayRent(c) {
			paid++
		}
	}
	return paid
}

func (w *World) ChangeRent(a *Apartment) {
	a.RentPerSqft = rates.NextRent(a.RentPerSqft, a.Occupancy(), w.cfg.RentPolicy)
}

// Upgrade doubles the footprint; unit counts follow from the blueprint.
func (a *Apartment) Upgrade() { a.Blueprint.Upgrade() }

func (w *World) UpgradeApartment(a *Apartment) {
	a.Upgrade()
	w.audit(a.ID, ActionUpgrade, "", 0, "", map[string]any{"total_apartments": a.TotalApartments()})
}

// DestroyApartment evicts every renter.
func (w *World) DestroyApartment(a *Apartment) int {
	n := 0
	for _, id := range a.Renters() {
		if c := w.Citizen(id); c != nil && w.Evict(a, c) {
			n++
		}
	}
	w.audit(a.ID, ActionDestroy, "", 0, "", map[string]any{"evicted": n})
	return n
}

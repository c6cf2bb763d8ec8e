package world

import (
	"testing"

	"townsim.ai/internal/sim/world/logic/blueprint"
)

func newApartment(t *testing.T, w *World) *Apartment {
	t.Helper()
	return w.FoundApartment(mustCitizen(t, w, "Mae Jemison", 0, SkillMaintenance))
}

func TestAcceptRespectsCapacity(t *testing.T) {
	w := newTestWorld(t)
	a := newApartment(t, w)
	// 1000 sqft halved leaves room for a single 500 sqft unit.
	a.Blueprint = blueprint.New(50, 10, 20, 1)
	if a.TotalApartments() != 1 {
		t.Fatalf("TotalApartments=%d want 1", a.TotalApartments())
	}
	first := mustCitizen(t, w, "First In", 1000, SkillSoftware)
	second := mustCitizen(t, w, "Second In", 1000, SkillSoftware)
	if !w.MoveIn(first, a) {
		t.Fatalf("first move-in refused")
	}
	if !a.IsFull() {
		t.Fatalf("apartment should be full")
	}
	if w.MoveIn(second, a) {
		t.Fatalf("second move-in should be refused")
	}
	if second.Residence() != "" {
		t.Fatalf("refused citizen got residence %q", second.Residence())
	}
	if w.MoveIn(first, a) {
		t.Fatalf("moving into the current home should be refused")
	}
	mustInvariants(t, w)
}

func TestMoveInMovesOutOfOldHome(t *testing.T) {
	w := newTestWorld(t)
	a := newApartment(t, w)
	b := newApartment(t, w)
	c := mustCitizen(t, w, "Nomad Person", 0, SkillSoftware)
	w.MoveIn(c, a)
	w.MoveIn(c, b)
	if a.IsRenter(c.ID) || !b.IsRenter(c.ID) || c.Residence() != b.ID {
		t.Fatalf("residence=%q a=%v b=%v", c.Residence(), a.Renters(), b.Renters())
	}
	if !w.MoveOut(c) || c.Residence() != "" || b.IsRenter(c.ID) {
		t.Fatalf("move out failed")
	}
	if w.MoveOut(c) {
		t.Fatalf("homeless citizen cannot move out")
	}
	mustInvariants(t, w)
}

func TestPayRent(t *testing.T) {
	w := newTestWorld(t, 0.5)
	a := newApartment(t, w)
	rich := mustCitizen(t, w, "Rich Person", 1000, SkillAccounting)
	exact := mustCitizen(t, w, "Exact Person", 750, SkillAccounting)
	w.MoveIn(rich, a)
	w.MoveIn(exact, a)

	if !w.PayRent(rich) {
		t.Fatalf("rich renter should pay")
	}
	if rich.Cash() != 250 {
		t.Fatalf("cash=%v want 250", rich.Cash())
	}
	// 750 rent at 0.75 efficiency
	if !approx(a.Treasury, 1562.5) {
		t.Fatalf("treasury=%v want 1562.5", a.Treasury)
	}
	if w.PayRent(exact) {
		t.Fatalf("cash equal to rent is not enough")
	}
	if exact.Cash() != 750 || exact.Residence() != a.ID {
		t.Fatalf("missed rent must not change state")
	}
	homeless := mustCitizen(t, w, "No Home", 5000, SkillAccounting)
	if w.PayRent(homeless) {
		t.Fatalf("homeless citizen has no rent")
	}
}

func TestCollectRent(t *testing.T) {
	w := newTestWorld(t, 0.5)
	a := newApartment(t, w)
	for _, cash := range []float64{2000, 100, 800} {
		w.MoveIn(mustCitizen(t, w, "Some Renter", cash, SkillSoftware), a)
	}
	if paid := w.CollectRent(a); paid != 2 {
		t.Fatalf("paid=%d want 2", paid)
	}
	if !approx(a.Treasury, 1000+2*750*0.75) {
		t.Fatalf("treasury=%v", a.Treasury)
	}
}

func TestChangeRent(t *testing.T) {
	w := newTestWorld(t, 0.5)
	a := newApartment(t, w)
	w.ChangeRent(a)
	if !approx(a.RentPerSqft, 1.5*0.99) {
		t.Fatalf("empty building should lower rent: %v", a.RentPerSqft)
	}

	a.Blueprint = blueprint.New(50, 10, 20, 1)
	w.MoveIn(mustCitizen(t, w, "Only Renter", 0, SkillSoftware), a)
	a.RentPerSqft = 0
	w.ChangeRent(a)
	if !approx(a.RentPerSqft, 1) {
		t.Fatalf("full building at zero rent should step to 1: %v", a.RentPerSqft)
	}
	w.ChangeRent(a)
	if !approx(a.RentPerSqft, 1.01) {
		t.Fatalf("full building should raise rent: %v", a.RentPerSqft)
	}
}

func TestRentNeverNegative(t *testing.T) {
	w := newTestWorld(t, 0.01)
	a := newApartment(t, w)
	for i := 0; i < 3000; i++ {
		w.ChangeRent(a)
		if a.RentPerSqft < 0 {
			t.Fatalf("rent negative after %d steps: %v", i, a.RentPerSqft)
		}
	}
}

func TestEvictAndDestroyApartment(t *testing.T) {
	w := newTestWorld(t)
	a := newApartment(t, w)
	x := mustCitizen(t, w, "X Ray", 0, SkillSoftware)
	y := mustCitizen(t, w, "Y Not", 0, SkillSoftware)
	stranger := mustCitizen(t, w, "Some One", 0, SkillSoftware)
	w.MoveIn(x, a)
	w.MoveIn(y, a)

	if w.Evict(a, stranger) {
		t.Fatalf("evicting a non-renter should be refused")
	}
	if !w.Evict(a, x) || x.Residence() != "" {
		t.Fatalf("evict failed")
	}
	if n := w.DestroyApartment(a); n != 1 {
		t.Fatalf("evicted=%d want 1", n)
	}
	if len(a.Renters()) != 0 || y.Residence() != "" {
		t.Fatalf("destroy left renters behind")
	}
	mustInvariants(t, w)
}

func TestUpgradeApartment(t *testing.T) {
	w := newTestWorld(t)
	a := newApartment(t, w)
	w.UpgradeApartment(a)
	if a.ApartmentsPerFloor() != 160 || a.TotalApartments() != 800 {
		t.Fatalf("perFloor=%v total=%d", a.ApartmentsPerFloor(), a.TotalApartments())
	}
}

func TestFractionalUnitsAdmitPartialLease(t *testing.T) {
	w := newTestWorld(t)
	a := newApartment(t, w)
	// 1500 sqft halved is one and a half 500 sqft units.
	a.Blueprint = blueprint.New(50, 10, 30, 1)
	if !approx(a.Units(), 1.5) || a.TotalApartments() != 2 {
		t.Fatalf("units=%v total=%d", a.Units(), a.TotalApartments())
	}
	first := mustCitizen(t, w, "First In", 1000, SkillSoftware)
	second := mustCitizen(t, w, "Second In", 1000, SkillSoftware)
	third := mustCitizen(t, w, "Third In", 1000, SkillSoftware)
	if !w.MoveIn(first, a) || !w.MoveIn(second, a) {
		t.Fatalf("1 renter is below 1.5 units, so a second lease fits")
	}
	if w.MoveIn(third, a) {
		t.Fatalf("2 renters fill 1.5 units")
	}
	if !approx(a.Occupancy(), 2/1.5) {
		t.Fatalf("occupancy=%v", a.Occupancy())
	}
	mustInvariants(t, w)
}

package world

import (
	"testing"

	"townsim.ai/internal/sim/world/logic/blueprint"
	"townsim.ai/internal/sim/world/logic/mathx"
)

func newAcreFarm(t *testing.T, w *World, workers int) *Farm {
	t.Helper()
	f := w.FoundFarm(mustCitizen(t, w, "Old MacDonald", 0, SkillFarming))
	for i := 0; i < workers; i++ {
		if !w.Hire(f, mustCitizen(t, w, "Farm Hand", 0, SkillFarming)) {
			t.Fatalf("hire %d refused", i)
		}
	}
	return f
}

func TestHarvestOneAcreTwoWorkers(t *testing.T) {
	w := newTestWorld(t)
	f := newAcreFarm(t, w, 2)

	if !w.PlantCorn(f, 0) {
		t.Fatalf("PlantCorn refused")
	}
	if !approx(f.Treasury, 880) {
		t.Fatalf("planting one acre should cost 120, treasury=%v", f.Treasury)
	}
	before := f.Treasury
	if !w.AutoHarvest(f, 80) {
		t.Fatalf("expected harvest on day 80")
	}
	if !approx(f.Treasury-before, 1868.4) {
		t.Fatalf("harvest income=%v want 1868.4", f.Treasury-before)
	}
	if _, planted := f.PlantingDay(); planted {
		t.Fatalf("harvest should clear the planting day")
	}
}

func TestHarvestRoundsTreasury(t *testing.T) {
	w := newTestWorld(t)
	f := newAcreFarm(t, w, 1)
	f.Treasury = 0.123456789
	w.PlantCorn(f, 0)
	w.AutoHarvest(f, 80)
	want := mathx.RoundTo(0.123456789-120+934.2, 4)
	if !approx(f.Treasury, want) {
		t.Fatalf("treasury=%v want %v", f.Treasury, want)
	}
	if f.Treasury != mathx.RoundTo(f.Treasury, 4) {
		t.Fatalf("treasury not rounded to 4 decimals: %v", f.Treasury)
	}
}

func TestAutoHarvestIdempotence(t *testing.T) {
	w := newTestWorld(t)
	f := newAcreFarm(t, w, 2)

	if w.AutoHarvest(f, 500) {
		t.Fatalf("unplanted field cannot be harvested")
	}
	w.PlantCorn(f, 10)
	if w.PlantCorn(f, 11) {
		t.Fatalf("planted field cannot be replanted")
	}
	planted := f.Treasury
	if w.AutoHarvest(f, 89) {
		t.Fatalf("crop is not ready before day 90")
	}
	if f.Treasury != planted {
		t.Fatalf("early harvest changed treasury")
	}
	if !w.AutoHarvest(f, 90) {
		t.Fatalf("crop should be ready on day 90")
	}
	harvested := f.Treasury
	if w.AutoHarvest(f, 91) || w.AutoHarvest(f, 1000) {
		t.Fatalf("second harvest without replanting")
	}
	if f.Treasury != harvested {
		t.Fatalf("no-op harvest changed treasury")
	}
	if !w.PlantCorn(f, 1000) {
		t.Fatalf("field should be plantable again")
	}
}

func TestUnstaffedHarvestEarnsNothing(t *testing.T) {
	w := newTestWorld(t)
	f := newAcreFarm(t, w, 0)
	w.PlantCorn(f, 0)
	w.AutoHarvest(f, 80)
	if f.Treasury != 880 {
		t.Fatalf("treasury=%v want 880", f.Treasury)
	}
}

func TestFarmHiresOnlyFarmers(t *testing.T) {
	w := newTestWorld(t)
	f := newAcreFarm(t, w, 0)
	rec := &recordingAudit{}
	w.SetAuditLogger(rec)

	coder := mustCitizen(t, w, "Alan Turing", 0, SkillSoftware)
	if w.GetHired(coder, f) {
		t.Fatalf("farm hired a software engineer")
	}
	if !coder.Occupation().IsNone() {
		t.Fatalf("refused citizen got an occupation")
	}
	if rec.find(ActionHire, ReasonSkill) == nil {
		t.Fatalf("expected skill refusal audit")
	}

	hand := mustCitizen(t, w, "Farm Hand", 0, SkillFarming)
	if !w.GetHired(hand, f) {
		t.Fatalf("farmer refused")
	}
	// 0.75 * (1 employee + 1) / 3
	if !approx(f.AdministrationEfficiency, 0.5) {
		t.Fatalf("efficiency=%v want 0.5", f.AdministrationEfficiency)
	}
	mustInvariants(t, w)
}

func TestFarmCapacity(t *testing.T) {
	w := newTestWorld(t)
	f := newAcreFarm(t, w, 3)
	if w.GetHired(mustCitizen(t, w, "Late Comer", 0, SkillFarming), f) {
		t.Fatalf("fourth farmer on one acre should be refused")
	}
	if w.Hire(f, mustCitizen(t, w, "Late Comer", 0, SkillFarming)) {
		t.Fatalf("Hire must not exceed capacity either")
	}
	mustInvariants(t, w)
}

func TestFarmFractionalAcreage(t *testing.T) {
	w := newTestWorld(t)
	f := newAcreFarm(t, w, 0)
	// A quarter acre more than the default field: 2*1.25 + 1 = 3.5 slots.
	f.Blueprint = blueprint.New(660, 10, 82.5, 1)
	if !approx(f.Capacity(), 3.5) || f.MaxEmployed() != 4 {
		t.Fatalf("capacity=%v max=%d", f.Capacity(), f.MaxEmployed())
	}
	for i := 0; i < 4; i++ {
		if !w.GetHired(mustCitizen(t, w, "Farm Hand", 0, SkillFarming), f) {
			t.Fatalf("hire %d refused below 3.5 slots", i)
		}
	}
	// 0.75 * (4 employees + 1) / 3.5
	if !approx(f.AdministrationEfficiency, 0.75*5/3.5) {
		t.Fatalf("efficiency=%v", f.AdministrationEfficiency)
	}
	if w.GetHired(mustCitizen(t, w, "Late Comer", 0, SkillFarming), f) {
		t.Fatalf("fifth farmer should be refused")
	}
	if !approx(StaffRatio(f), 4/3.5) {
		t.Fatalf("staff ratio=%v", StaffRatio(f))
	}
	mustInvariants(t, w)
}

func TestFarmBankruptcyMirrorsOffice(t *testing.T) {
	w := newTestWorld(t)
	f := newAcreFarm(t, w, 2)
	f.Treasury = -10
	w.CheckBankruptcy(f, 1)
	w.CheckBankruptcy(f, 2)
	if since, ok := f.BankruptSince(); !ok || since != 1 {
		t.Fatalf("bankruptSince=%d,%v want 1,true", since, ok)
	}
	if w.CheckBankruptcy(f, 366) {
		t.Fatalf("day 366 is inside the window")
	}
	if !w.CheckBankruptcy(f, 367) || f.EmployedCount() != 0 {
		t.Fatalf("day 367 should liquidate, employed=%d", f.EmployedCount())
	}
	mustInvariants(t, w)
}

func TestFarmUpgradeStopsAtFifty(t *testing.T) {
	w := newTestWorld(t)
	f := newAcreFarm(t, w, 0)
	wantMax := []int{9, 33, 129}
	for i, want := range wantMax {
		if !w.UpgradeFarm(f) {
			t.Fatalf("upgrade %d refused", i)
		}
		if f.MaxEmployed() != want {
			t.Fatalf("upgrade %d: MaxEmployed=%d want %d", i, f.MaxEmployed(), want)
		}
	}
	if w.UpgradeFarm(f) {
		t.Fatalf("farm with %d slots should not grow", f.MaxEmployed())
	}
}

func TestFarmChangePay(t *testing.T) {
	w := newTestWorld(t)
	f := newAcreFarm(t, w, 3)
	f.wage = 50
	w.ChangePay(f)
	if f.Wage() != 49 {
		t.Fatalf("full farm should lower pay, got %v", f.Wage())
	}
}

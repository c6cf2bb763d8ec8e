package worldtest

import (
	"path/filepath"
	"testing"

	"townsim.ai/internal/sim/scenario"
	"townsim.ai/internal/sim/tuning"
	world "townsim.ai/internal/sim/world"
)

func mustScenario(t *testing.T) scenario.Scenario {
	t.Helper()
	s, err := scenario.Load(filepath.Join(ConfigDir, "scenario.yaml"))
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	return s
}

func mustParse(t *testing.T, tuningYAML, scenarioYAML string) (tuning.Tuning, scenario.Scenario) {
	t.Helper()
	tune, err := tuning.Parse([]byte(tuningYAML))
	if err != nil {
		t.Fatalf("tuning: %v", err)
	}
	scen, err := scenario.Parse([]byte(scenarioYAML))
	if err != nil {
		t.Fatalf("scenario: %v", err)
	}
	return tune, scen
}

func TestInsolventOfficeIsLiquidatedAfterGrace(t *testing.T) {
	tune, scen := mustParse(t, `
seed: 3
starting_treasury: 1
economy:
  bankruptcy_grace_days: 5
`, `
citizens:
  - {key: ada, name: Ada Lovelace, skill: software, cash: 100}
  - {key: alan, name: Alan Turing, skill: software, cash: 100, work: inc}
  - {key: grace, name: Grace Hopper, skill: software, cash: 100, work: inc}
structures:
  - {key: inc, kind: office, founder: ada}
`)
	h := NewHarness(t, tune, scen)
	office := h.Office("inc")

	h.StepFor(6)
	if since, ok := office.BankruptSince(); !ok || since != 0 {
		t.Fatalf("BankruptSince=%d,%v want 0,true", since, ok)
	}
	if len(h.AuditsFor(world.ActionLiquidate)) != 0 {
		t.Fatalf("liquidated inside the grace window")
	}
	if office.EmployedCount() != 2 {
		t.Fatalf("employees=%d before liquidation", office.EmployedCount())
	}

	h.StepFor(1)
	liq := h.AuditsFor(world.ActionLiquidate)
	if len(liq) != 1 || liq[0].Day != 6 || liq[0].Actor != office.ID {
		t.Fatalf("liquidations=%+v", liq)
	}
	if office.EmployedCount() != 0 {
		t.Fatalf("employees=%d after liquidation", office.EmployedCount())
	}
	for _, key := range []string{"alan", "grace"} {
		if !h.Citizen(key).Occupation().IsNone() {
			t.Fatalf("%s still employed after liquidation", key)
		}
	}
	if got := h.Days[6].Liquidated; len(got) != 1 || got[0] != office.ID {
		t.Fatalf("day 6 liquidated=%v", got)
	}
}

func TestBrokeTenantIsRefusedRent(t *testing.T) {
	tune, scen := mustParse(t, "seed: 9\n", `
citizens:
  - {key: landlord, name: Lana Lord, skill: administration, cash: 100}
  - {key: broke, name: Bo Broke, skill: maintenance, cash: 0, home: apts}
structures:
  - {key: apts, kind: apartment, founder: landlord}
`)
	h := NewHarness(t, tune, scen)
	apts := h.Apartment("apts")
	before := apts.Treasury

	h.StepFor(1)
	refused := h.Refusals(world.ReasonFunds)
	if len(refused) != 1 || refused[0].Action != world.ActionPayRent || refused[0].Actor != h.Citizen("broke").ID {
		t.Fatalf("E_FUNDS refusals=%+v", refused)
	}
	if apts.Treasury != before {
		t.Fatalf("treasury moved without rent: %v -> %v", before, apts.Treasury)
	}
	if h.Citizen("broke").Residence() != apts.ID {
		t.Fatalf("an unpaid rent does not evict")
	}
}

func TestFarmHarvestsOnSchedule(t *testing.T) {
	tune, scen := mustParse(t, `
seed: 5
farming:
  growing_days: 10
`, `
citizens:
  - {key: mac, name: Old MacDonald, skill: farming, cash: 100}
  - {key: jo, name: Jo March, skill: farming, cash: 100, work: farm}
structures:
  - {key: farm, kind: farm, founder: mac}
`)
	h := NewHarness(t, tune, scen)
	farm := h.Farm("farm")

	h.StepFor(10)
	if len(h.AuditsFor(world.ActionHarvest)) != 0 {
		t.Fatalf("harvested before the crop grew")
	}
	if day, planted := farm.PlantingDay(); !planted || day != 0 {
		t.Fatalf("PlantingDay=%d,%v want 0,true", day, planted)
	}

	h.StepFor(1)
	harvests := h.AuditsFor(world.ActionHarvest)
	if len(harvests) != 1 || harvests[0].Day != 10 || harvests[0].Amount <= 0 {
		t.Fatalf("harvests=%+v", harvests)
	}
	if got := h.Days[10].Harvested; len(got) != 1 || got[0] != farm.ID {
		t.Fatalf("day 10 harvested=%v", got)
	}
	// Replanted the same day.
	if day, planted := farm.PlantingDay(); !planted || day != 10 {
		t.Fatalf("PlantingDay=%d,%v want 10,true", day, planted)
	}
}

package tuning

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"townsim.ai/internal/schemas"
	"townsim.ai/internal/sim/world"
	"townsim.ai/internal/sim/world/logic/blueprint"
	"townsim.ai/internal/sim/world/logic/rates"
)

const (
	WageGenerationCurrent = "current"
	// Legacy farm wages were drawn from a higher band.
	WageGenerationLegacy = "legacy"
)

// ErrInvalid wraps schema violations in a tuning file.
var ErrInvalid = errors.New("invalid tuning")

type Tuning struct {
	WorldID          string  `yaml:"world_id" json:"world_id"`
	Seed             int64   `yaml:"seed" json:"seed"`
	Days             int     `yaml:"days" json:"days"`
	StartingTreasury float64 `yaml:"starting_treasury" json:"starting_treasury"`

	Office      Office      `yaml:"office" json:"office"`
	Farm        Farm        `yaml:"farm" json:"farm"`
	Apartment   Apartment   `yaml:"apartment" json:"apartment"`
	PowerPlants PowerPlants `yaml:"power_plants" json:"power_plants"`
	Economy     Economy     `yaml:"economy" json:"economy"`
	Farming     Farming     `yaml:"farming" json:"farming"`
	Software    Software    `yaml:"software" json:"software"`
	Log         Log         `yaml:"log" json:"log"`
}

type Office struct {
	Blueprint  blueprint.Blueprint `yaml:"blueprint" json:"blueprint"`
	Industry   string              `yaml:"industry" json:"industry"`
	WageMin    float64             `yaml:"wage_min" json:"wage_min"`
	WageSpread float64             `yaml:"wage_spread" json:"wage_spread"`
}

type Farm struct {
	Blueprint      blueprint.Blueprint `yaml:"blueprint" json:"blueprint"`
	WageGeneration string              `yaml:"wage_generation" json:"wage_generation"`
	WageMin        float64             `yaml:"wage_min" json:"wage_min"`
	WageSpread     float64             `yaml:"wage_spread" json:"wage_spread"`
}

type Apartment struct {
	Blueprint blueprint.Blueprint `yaml:"blueprint" json:"blueprint"`
	UnitSqft  float64             `yaml:"unit_sqft" json:"unit_sqft"`
	RentMax   float64             `yaml:"rent_max" json:"rent_max"`
}

type PowerPlants struct {
	Coal  blueprint.Blueprint `yaml:"coal" json:"coal"`
	Solar blueprint.Blueprint `yaml:"solar" json:"solar"`
	Wind  blueprint.Blueprint `yaml:"wind" json:"wind"`
}

type Economy struct {
	BankruptcyGraceDays int          `yaml:"bankruptcy_grace_days" json:"bankruptcy_grace_days"`
	WagePolicy          rates.Policy `yaml:"wage_policy" json:"wage_policy"`
	RentPolicy          rates.Policy `yaml:"rent_policy" json:"rent_policy"`
	JobSwitchPremium    float64      `yaml:"job_switch_premium" json:"job_switch_premium"`
	RentSwitchDiscount  float64      `yaml:"rent_switch_discount" json:"rent_switch_discount"`
}

type Farming struct {
	GrowingDays         int     `yaml:"growing_days" json:"growing_days"`
	PlantingCostPerAcre float64 `yaml:"planting_cost_per_acre" json:"planting_cost_per_acre"`
	BushelsPerAcre      float64 `yaml:"bushels_per_acre" json:"bushels_per_acre"`
	CornPricePerBushel  float64 `yaml:"corn_price_per_bushel" json:"corn_price_per_bushel"`
	HarvestMultiplier   float64 `yaml:"harvest_multiplier" json:"harvest_multiplier"`
}

type Software struct {
	DevelopmentDays   int     `yaml:"development_days" json:"development_days"`
	QualityJitter     float64 `yaml:"quality_jitter" json:"quality_jitter"`
	RevenuePerQuality float64 `yaml:"revenue_per_quality" json:"revenue_per_quality"`
}

type Log struct {
	SegmentDays int `yaml:"segment_days" json:"segment_days"`
}

// Load reads a tuning file, checks it against the tuning schema and fills
// in defaults. A missing path yields the defaults alone.
func Load(path string) (Tuning, error) {
	var t Tuning
	if path == "" {
		t.ApplyDefaults()
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	return Parse(raw)
}

func Parse(raw []byte) (Tuning, error) {
	var t Tuning
	if err := schemas.ValidateYAML(schemas.Tuning, raw); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w: %w", ErrInvalid, err)
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	t.ApplyDefaults()
	return t, nil
}

// ApplyDefaults fills the run-level settings. Economy fields left at zero are
// defaulted by the world itself, so the same file works for both.
func (t *Tuning) ApplyDefaults() {
	if t.WorldID == "" {
		t.WorldID = "town"
	}
	if t.Seed == 0 {
		t.Seed = 42
	}
	if t.Days <= 0 {
		t.Days = 365
	}
	if t.Log.SegmentDays <= 0 {
		t.Log.SegmentDays = 30
	}
	if t.Farm.WageGeneration == "" {
		t.Farm.WageGeneration = WageGenerationCurrent
	}
	if t.Farm.WageGeneration == WageGenerationLegacy {
		if t.Farm.WageMin <= 0 {
			t.Farm.WageMin = 80
		}
		if t.Farm.WageSpread <= 0 {
			t.Farm.WageSpread = 40
		}
	}
}

// WorldConfig maps the tuning onto the simulation's configuration.
func (t Tuning) WorldConfig() world.WorldConfig {
	cfg := world.WorldConfig{
		ID:               t.WorldID,
		Seed:             t.Seed,
		StartingTreasury: t.StartingTreasury,

		OfficeBlueprint:  t.Office.Blueprint,
		OfficeIndustry:   t.Office.Industry,
		OfficeWageMin:    t.Office.WageMin,
		OfficeWageSpread: t.Office.WageSpread,

		FarmBlueprint:  t.Farm.Blueprint,
		FarmWageMin:    t.Farm.WageMin,
		FarmWageSpread: t.Farm.WageSpread,

		ApartmentBlueprint: t.Apartment.Blueprint,
		ApartmentUnitSqft:  t.Apartment.UnitSqft,
		ApartmentRentMax:   t.Apartment.RentMax,

		BankruptcyGraceDays: t.Economy.BankruptcyGraceDays,
		WagePolicy:          t.Economy.WagePolicy,
		RentPolicy:          t.Economy.RentPolicy,
		JobSwitchPremium:    t.Economy.JobSwitchPremium,
		RentSwitchDiscount:  t.Economy.RentSwitchDiscount,

		GrowingDays:         t.Farming.GrowingDays,
		PlantingCostPerAcre: t.Farming.PlantingCostPerAcre,
		BushelsPerAcre:      t.Farming.BushelsPerAcre,
		CornPricePerBushel:  t.Farming.CornPricePerBushel,
		HarvestMultiplier:   t.Farming.HarvestMultiplier,

		ProductDevelopmentDays:    t.Software.DevelopmentDays,
		ProductQualityJitter:      t.Software.QualityJitter,
		SoftwareRevenuePerQuality: t.Software.RevenuePerQuality,
	}
	plants := map[world.PowerSource]blueprint.Blueprint{}
	for src, bp := range map[world.PowerSource]blueprint.Blueprint{
		world.PowerCoal:  t.PowerPlants.Coal,
		world.PowerSolar: t.PowerPlants.Solar,
		world.PowerWind:  t.PowerPlants.Wind,
	} {
		if bp.Valid() {
			plants[src] = bp
		}
	}
	if len(plants) > 0 {
		cfg.PowerPlantBlueprints = plants
	}
	return cfg
}

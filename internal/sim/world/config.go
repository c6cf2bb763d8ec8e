package world

import (
	"townsim.ai/internal/sim/world/logic/blueprint"
	"townsim.ai/internal/sim/world/logic/rates"
)

type WorldConfig struct {
	ID   string
	Seed int64

	// Founding.
	StartingTreasury float64

	OfficeBlueprint  blueprint.Blueprint
	OfficeIndustry   string
	OfficeWageMin    float64
	OfficeWageSpread float64

	FarmBlueprint  blueprint.Blueprint
	FarmWageMin    float64
	FarmWageSpread float64

	ApartmentBlueprint blueprint.Blueprint
	ApartmentUnitSqft  float64
	// Initial rent per sqft is drawn from [0, ApartmentRentMax) and rounded to one decimal.
	ApartmentRentMax float64

	PowerPlantBlueprints map[PowerSource]blueprint.Blueprint

	// Employment and pricing.
	BankruptcyGraceDays int
	WagePolicy          rates.Policy
	RentPolicy          rates.Policy
	JobSwitchPremium    float64
	RentSwitchDiscount  float64

	// Farming.
	GrowingDays         int
	PlantingCostPerAcre float64
	BushelsPerAcre      float64
	CornPricePerBushel  float64
	HarvestMultiplier   float64

	// Software products.
	ProductDevelopmentDays    int
	ProductQualityJitter      float64
	SoftwareRevenuePerQuality float64
}

func DefaultPowerPlantBlueprints() map[PowerSource]blueprint.Blueprint {
	return map[PowerSource]blueprint.Blueprint{
		PowerCoal:  blueprint.New(1220, 50, 660, 1),
		PowerSolar: blueprint.New(660, 10, 66, 1),
		PowerWind:  blueprint.New(660, 10, 66, 1),
	}
}

func (c *WorldConfig) applyDefaults() {
	if c.ID == "" {
		c.ID = "town"
	}
	if c.StartingTreasury == 0 {
		c.StartingTreasury = 1000
	}
	if !c.OfficeBlueprint.Valid() {
		c.OfficeBlueprint = blueprint.New(20, 20, 20, 2)
	}
	if c.OfficeIndustry == "" {
		c.OfficeIndustry = "software"
	}
	if c.OfficeWageMin <= 0 {
		c.OfficeWageMin = 150
	}
	if c.OfficeWageSpread <= 0 {
		c.OfficeWageSpread = 100
	}
	if !c.FarmBlueprint.Valid() {
		c.FarmBlueprint = blueprint.New(660, 10, 66, 1)
	}
	if c.FarmWageMin <= 0 {
		c.FarmWageMin = 40
	}
	if c.FarmWageSpread <= 0 {
		c.FarmWageSpread = 20
	}
	if !c.ApartmentBlueprint.Valid() {
		c.ApartmentBlueprint = blueprint.New(200, 50, 200, 5)
	}
	if c.ApartmentUnitSqft <= 0 {
		c.ApartmentUnitSqft = 500
	}
	if c.ApartmentRentMax <= 0 {
		c.ApartmentRentMax = 3
	}
	if c.PowerPlantBlueprints == nil {
		c.PowerPlantBlueprints = DefaultPowerPlantBlueprints()
	} else {
		merged := DefaultPowerPlantBlueprints()
		for src, bp := range c.PowerPlantBlueprints {
			if _, ok := merged[src]; ok && bp.Valid() {
				merged[src] = bp
			}
		}
		c.PowerPlantBlueprints = merged
	}
	if c.BankruptcyGraceDays <= 0 {
		c.BankruptcyGraceDays = 365
	}
	if c.WagePolicy.Threshold <= 0 || c.WagePolicy.Step <= 0 {
		c.WagePolicy = rates.DefaultPolicy
	}
	if c.RentPolicy.Threshold <= 0 || c.RentPolicy.Step <= 0 {
		c.RentPolicy = rates.DefaultPolicy
	}
	if c.JobSwitchPremium <= 0 {
		c.JobSwitchPremium = 0.10
	}
	if c.RentSwitchDiscount <= 0 {
		c.RentSwitchDiscount = 0.10
	}
	if c.GrowingDays <= 0 {
		c.GrowingDays = 80
	}
	if c.PlantingCostPerAcre <= 0 {
		c.PlantingCostPerAcre = 120
	}
	if c.BushelsPerAcre <= 0 {
		c.BushelsPerAcre = 135
	}
	if c.CornPricePerBushel <= 0 {
		c.CornPricePerBushel = 3.46
	}
	if c.HarvestMultiplier <= 0 {
		c.HarvestMultiplier = 2
	}
	if c.ProductDevelopmentDays <= 0 {
		c.ProductDevelopmentDays = 90
	}
	if c.ProductQualityJitter < 0 {
		c.ProductQualityJitter = 0
	}
	if c.SoftwareRevenuePerQuality <= 0 {
		c.SoftwareRevenuePerQuality = 250
	}
}

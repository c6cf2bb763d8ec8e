package world

import (
	"math"

	"townsim.ai/internal/sim/world/logic/blueprint"
	"townsim.ai/internal/sim/world/logic/mathx"
)

const (
	farmWorkersPerAcre = 2
	// Farms stop growing once they could employ this many.
	farmUpgradeCap = 50
)

type Farm struct {
	Building
	payroll

	plantingDay int
	planted     bool
}

// Area is the land under cultivation in sqft.
func (f *Farm) Area() float64 { return f.Blueprint.AreaPerFloor() }

// Capacity is two workers per acre plus one. Fractional acres count.
func (f *Farm) Capacity() float64 {
	return farmWorkersPerAcre*f.Area()/blueprint.SqFtPerAcre + 1
}

// MaxEmployed is the number of hires that fit strictly below Capacity.
func (f *Farm) MaxEmployed() int { return int(math.Ceil(f.Capacity())) }

func (f *Farm) PlantingDay() (int, bool) { return f.plantingDay, f.planted }

func (f *Farm) admit(c *Citizen) string {
	if c.Skill != SkillFarming {
		return ReasonSkill
	}
	return ""
}

func (f *Farm) hired(*Citizen) { f.rescaleEfficiency() }

// Farm efficiency grows with staffing density.
func (f *Farm) rescaleEfficiency() {
	f.AdministrationEfficiency = f.baseEfficiency * float64(len(f.employed)+1) / f.Capacity()
}

// PlantCorn seeds the whole field if it is fallow, paying the per-acre cost.
func (w *World) PlantCorn(f *Farm, day int) bool {
	if f == nil || f.planted {
		return false
	}
	cost := f.Blueprint.Acres() * w.cfg.PlantingCostPerAcre
	f.planted = true
	f.plantingDay = day
	f.Treasury -= cost
	w.audit(f.ID, ActionPlant, "", cost, "", nil)
	return true
}

// AutoHarvest harvests once the crop has had GrowingDays to grow.
func (w *World) AutoHarvest(f *Farm, day int) bool {
	if f == nil || !f.planted || day < f.plantingDay+w.cfg.GrowingDays {
		return false
	}
	w.harvest(f)
	return true
}

// Yield scales with labor: an unstaffed field produces nothing.
func (w *World) harvest(f *Farm) float64 {
	bushelsPerSqFt := w.cfg.BushelsPerAcre / blueprint.SqFtPerAcre
	income := w.cfg.HarvestMultiplier * w.cfg.CornPricePerBushel * bushelsPerSqFt * f.Area() * float64(len(f.employed))
	f.Treasury = mathx.RoundTo(f.Treasury+income, 4)
	f.planted = false
	f.plantingDay = 0
	w.audit(f.ID, ActionHarvest, "", income, "", map[string]any{"workers": len(f.employed)})
	return income
}

// Upgrade doubles the field while the farm is still small.
func (f *Farm) Upgrade() bool {
	if f.Capacity() >= farmUpgradeCap {
		return false
	}
	f.Blueprint.Upgrade()
	return true
}

func (w *World) UpgradeFarm(f *Farm) bool {
	if f == nil || !f.Upgrade() {
		return false
	}
	w.audit(f.ID, ActionUpgrade, "", 0, "", map[string]any{"max_employed": f.MaxEmployed()})
	return true
}

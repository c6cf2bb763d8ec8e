package world

import (
	"math"

	"townsim.ai/internal/sim/world/logic/mathx"
)

// The Found* operations are the only way structures come into existence.
// The founder manages the new structure but is not put on its payroll.

func (w *World) FoundOffice(c *Citizen, day int) *Office {
	if c == nil {
		return nil
	}
	o := &Office{
		Building:    newBuilding(w.newStructureID(), KindOffice, c.Surname()+" Inc", c, w.cfg.OfficeBlueprint, w.cfg.StartingTreasury),
		payroll:     payroll{wage: w.drawWage(w.cfg.OfficeWageMin, w.cfg.OfficeWageSpread)},
		Industry:    w.cfg.OfficeIndustry,
		FoundingDay: day,
	}
	w.found(o, c)
	return o
}

func (w *World) FoundFarm(c *Citizen) *Farm {
	if c == nil {
		return nil
	}
	f := &Farm{
		Building: newBuilding(w.newStructureID(), KindFarm, c.Surname()+" Farms", c, w.cfg.FarmBlueprint, w.cfg.StartingTreasury),
		payroll:  payroll{wage: w.drawWage(w.cfg.FarmWageMin, w.cfg.FarmWageSpread)},
	}
	f.rescaleEfficiency()
	w.found(f, c)
	return f
}

func (w *World) FoundApartment(c *Citizen) *Apartment {
	if c == nil {
		return nil
	}
	a := &Apartment{
		Building:    newBuilding(w.newStructureID(), KindApartment, c.Surname()+" Apartments", c, w.cfg.ApartmentBlueprint, w.cfg.StartingTreasury),
		UnitSqft:    w.cfg.ApartmentUnitSqft,
		RentPerSqft: mathx.RoundTo(w.rng.Float64()*w.cfg.ApartmentRentMax, 1),
	}
	w.found(a, c)
	return a
}

// FoundPowerPlant refuses unknown sources.
func (w *World) FoundPowerPlant(c *Citizen, src PowerSource) (*PowerPlant, bool) {
	if c == nil {
		return nil, false
	}
	if !src.Valid() {
		w.audit(c.ID, ActionFound, string(src), 0, ReasonUnknown, nil)
		return nil, false
	}
	name := c.Surname() + " " + powerPlantSuffix[src]
	p := &PowerPlant{
		Building: newBuilding(w.newStructureID(), KindPowerPlant, name, c, w.cfg.PowerPlantBlueprints[src], w.cfg.StartingTreasury),
		Source:   src,
	}
	w.found(p, c)
	return p, true
}

func (w *World) drawWage(min, spread float64) float64 {
	return math.Floor(w.rng.Float64()*spread) + min
}

func (w *World) found(s Structure, founder *Citizen) {
	b := s.Base()
	w.register(s)
	w.appoint(b, founder)
	w.audit(founder.ID, ActionFound, b.ID, b.Treasury, "", map[string]any{"kind": string(b.Kind), "name": b.Name})
	w.logf("day %d: %s founded %s (%s)", w.day, founder.Name, b.Name, b.ID)
}

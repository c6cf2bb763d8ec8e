package world

import (
	"fmt"
	"log"
	"sync/atomic"

	"townsim.ai/internal/sim/world/logic/ids"
	"townsim.ai/internal/sim/world/logic/rng"
)

// World owns every citizen and structure of one simulated town. It is
// single-writer: all mutations happen on the goroutine that drives the days.
type World struct {
	cfg WorldConfig
	rng rng.Source
	day int

	citizens     map[string]*Citizen
	citizenOrder []string

	structures map[string]Structure
	offices    []*Office
	farms      []*Farm
	apartments []*Apartment
	plants     []*PowerPlant

	nextCitizenNum   atomic.Uint64
	nextStructureNum atomic.Uint64

	dayLogger   DayLogger
	auditLogger AuditLogger
	logger      *log.Logger
}

// New builds an empty world. A nil source falls back to a generator seeded from cfg.Seed.
func New(cfg WorldConfig, src rng.Source) *World {
	cfg.applyDefaults()
	if src == nil {
		src = rng.NewSeeded(cfg.Seed)
	}
	return &World{
		cfg:        cfg,
		rng:        src,
		citizens:   map[string]*Citizen{},
		structures: map[string]Structure{},
	}
}

func (w *World) Config() WorldConfig { return w.cfg }

// Day is the current day counter. It starts at 0 and only AdvanceDay moves it.
func (w *World) Day() int { return w.day }

func (w *World) SetDayLogger(l DayLogger)     { w.dayLogger = l }
func (w *World) SetAuditLogger(l AuditLogger) { w.auditLogger = l }
func (w *World) SetLogger(l *log.Logger)      { w.logger = l }

func (w *World) logf(format string, args ...any) {
	if w.logger != nil {
		w.logger.Printf(format, args...)
	}
}

func (w *World) newCitizenID() string {
	return ids.Format(ids.CitizenPrefix, w.nextCitizenNum.Add(1))
}

func (w *World) newStructureID() string {
	return ids.Format(ids.StructurePrefix, w.nextStructureNum.Add(1))
}

func (w *World) Citizen(id string) *Citizen {
	if id == "" {
		return nil
	}
	return w.citizens[id]
}

// Citizens returns every citizen in creation order.
func (w *World) Citizens() []*Citizen {
	out := make([]*Citizen, 0, len(w.citizenOrder))
	for _, id := range w.citizenOrder {
		out = append(out, w.citizens[id])
	}
	return out
}

func (w *World) Structure(id string) Structure {
	if id == "" {
		return nil
	}
	return w.structures[id]
}

func (w *World) building(id string) *Building {
	s := w.Structure(id)
	if s == nil {
		return nil
	}
	return s.Base()
}

func (w *World) Office(id string) *Office {
	o, _ := w.Structure(id).(*Office)
	return o
}

func (w *World) Farm(id string) *Farm {
	f, _ := w.Structure(id).(*Farm)
	return f
}

func (w *World) Apartment(id string) *Apartment {
	a, _ := w.Structure(id).(*Apartment)
	return a
}

func (w *World) PowerPlant(id string) *PowerPlant {
	p, _ := w.Structure(id).(*PowerPlant)
	return p
}

func (w *World) Offices() []*Office         { return append([]*Office(nil), w.offices...) }
func (w *World) Farms() []*Farm             { return append([]*Farm(nil), w.farms...) }
func (w *World) Apartments() []*Apartment   { return append([]*Apartment(nil), w.apartments...) }
func (w *World) PowerPlants() []*PowerPlant { return append([]*PowerPlant(nil), w.plants...) }

// AddCitizen registers a new citizen with full food and happiness gauges.
func (w *World) AddCitizen(name string, cash float64, skill Skill) (*Citizen, error) {
	if name == "" {
		return nil, fmt.Errorf("citizen name is required")
	}
	if !skill.Valid() {
		return nil, fmt.Errorf("unknown skill %q", skill)
	}
	c := &Citizen{
		ID:        w.newCitizenID(),
		Name:      name,
		Skill:     skill,
		Food:      100,
		Happiness: 100,
		cash:      cash,
	}
	w.citizens[c.ID] = c
	w.citizenOrder = append(w.citizenOrder, c.ID)
	return c, nil
}

func (w *World) register(s Structure) {
	b := s.Base()
	w.structures[b.ID] = s
	switch v := s.(type) {
	case *Office:
		w.offices = append(w.offices, v)
	case *Farm:
		w.farms = append(w.farms, v)
	case *Apartment:
		w.apartments = append(w.apartments, v)
	case *PowerPlant:
		w.plants = append(w.plants, v)
	}
}

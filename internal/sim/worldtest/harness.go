package worldtest

import (
	"path/filepath"
	"testing"

	"townsim.ai/internal/sim/scenario"
	"townsim.ai/internal/sim/tuning"
	world "townsim.ai/internal/sim/world"
)

// Harness drives a world through exported APIs only, recording every day
// entry and audit so tests can live outside the world package.
type Harness struct {
	T      *testing.T
	W      *world.World
	Tuning tuning.Tuning
	Placed scenario.Result

	Days   []world.DayLogEntry
	Audits []world.AuditEntry
}

// ConfigDir is the repository's shipped configuration, relative to this package.
var ConfigDir = filepath.Join("..", "..", "..", "configs")

func NewHarness(t *testing.T, tune tuning.Tuning, scen scenario.Scenario) *Harness {
	t.Helper()

	h := &Harness{T: t, Tuning: tune}
	h.W = world.New(tune.WorldConfig(), nil)
	h.W.SetAuditLogger(auditRecorder{h})
	h.W.SetDayLogger(dayRecorder{h})

	res, err := scen.Apply(h.W)
	if err != nil {
		t.Fatalf("apply scenario: %v", err)
	}
	h.Placed = res
	return h
}

// NewConfigHarness loads tuning.yaml and scenario.yaml from ConfigDir.
func NewConfigHarness(t *testing.T) *Harness {
	t.Helper()
	tune, err := tuning.Load(filepath.Join(ConfigDir, "tuning.yaml"))
	if err != nil {
		t.Fatalf("load tuning: %v", err)
	}
	scen, err := scenario.Load(filepath.Join(ConfigDir, "scenario.yaml"))
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	return NewHarness(t, tune, scen)
}

func (h *Harness) Step() world.DayLogEntry {
	h.T.Helper()
	return h.W.AdvanceDay()
}

// StepFor advances n days, failing the test on the first broken invariant.
func (h *Harness) StepFor(n int) world.DayLogEntry {
	h.T.Helper()
	var last world.DayLogEntry
	for i := 0; i < n; i++ {
		last = h.W.AdvanceDay()
		if err := h.W.CheckInvariants(); err != nil {
			h.T.Fatalf("day %d: %v", last.Day, err)
		}
	}
	return last
}

func (h *Harness) Citizen(key string) *world.Citizen {
	h.T.Helper()
	c := h.Placed.Citizens[key]
	if c == nil {
		h.T.Fatalf("unknown citizen key %q", key)
	}
	return c
}

func (h *Harness) Office(key string) *world.Office {
	h.T.Helper()
	o, ok := h.Placed.Structures[key].(*world.Office)
	if !ok {
		h.T.Fatalf("%q is not an office", key)
	}
	return o
}

func (h *Harness) Farm(key string) *world.Farm {
	h.T.Helper()
	f, ok := h.Placed.Structures[key].(*world.Farm)
	if !ok {
		h.T.Fatalf("%q is not a farm", key)
	}
	return f
}

func (h *Harness) Apartment(key string) *world.Apartment {
	h.T.Helper()
	a, ok := h.Placed.Structures[key].(*world.Apartment)
	if !ok {
		h.T.Fatalf("%q is not an apartment", key)
	}
	return a
}

// AuditsFor returns successful audits with the given action.
func (h *Harness) AuditsFor(action string) []world.AuditEntry {
	var out []world.AuditEntry
	for _, a := range h.Audits {
		if a.Action == action && a.Reason == "" {
			out = append(out, a)
		}
	}
	return out
}

// Refusals returns audits refused with the given reason code.
func (h *Harness) Refusals(reason string) []world.AuditEntry {
	var out []world.AuditEntry
	for _, a := range h.Audits {
		if a.Reason == reason {
			out = append(out, a)
		}
	}
	return out
}

type auditRecorder struct{ h *Harness }

func (r auditRecorder) WriteAudit(e world.AuditEntry) error {
	r.h.Audits = append(r.h.Audits, e)
	return nil
}

type dayRecorder struct{ h *Harness }

func (r dayRecorder) WriteDay(e world.DayLogEntry) error {
	r.h.Days = append(r.h.Days, e)
	return nil
}

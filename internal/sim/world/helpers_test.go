package world

import (
	"testing"

	"townsim.ai/internal/sim/world/logic/rng"
)

func newTestWorld(t *testing.T, draws ...float64) *World {
	t.Helper()
	if len(draws) == 0 {
		draws = []float64{0.5}
	}
	return New(WorldConfig{ID: "test"}, rng.NewSequence(draws...))
}

func mustCitizen(t *testing.T, w *World, name string, cash float64, skill Skill) *Citizen {
	t.Helper()
	c, err := w.AddCitizen(name, cash, skill)
	if err != nil {
		t.Fatalf("AddCitizen(%q): %v", name, err)
	}
	return c
}

func mustInvariants(t *testing.T, w *World) {
	t.Helper()
	if err := w.CheckInvariants(); err != nil {
		t.Fatalf("invariants: %v", err)
	}
}

type recordingAudit struct {
	entries []AuditEntry
}

func (r *recordingAudit) WriteAudit(e AuditEntry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *recordingAudit) find(action, reason string) *AuditEntry {
	for i := range r.entries {
		if r.entries[i].Action == action && r.entries[i].Reason == reason {
			return &r.entries[i]
		}
	}
	return nil
}

type recordingDays struct {
	entries []DayLogEntry
}

func (r *recordingDays) WriteDay(e DayLogEntry) error {
	r.entries = append(r.entries, e)
	return nil
}

func approx(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-6
}

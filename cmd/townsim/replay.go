package main

import (
	"context"
	"fmt"
	"log"
	"sort"

	persistlog "townsim.ai/internal/persistence/log"
	"townsim.ai/internal/sim/world"
)

func runReplay(ctx context.Context, logger *log.Logger, runDir string, verify bool) error {
	m, err := readManifest(runDir)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	entries, err := persistlog.ReadDayLog(runDir)
	if err != nil {
		return fmt.Errorf("read day log: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("%s: no day entries", runDir)
	}
	audits, err := persistlog.ReadAuditLog(runDir)
	if err != nil {
		return fmt.Errorf("read audit log: %w", err)
	}

	logger.Printf("run %s: world=%s seed=%d days=%d/%d audits=%d",
		m.RunID, m.Tuning.WorldID, m.Tuning.Seed, len(entries), m.Days, len(audits))
	for _, line := range summarizeAudits(audits) {
		logger.Printf("  %s", line)
	}
	logMetrics(logger, entries[len(entries)-1])

	if !verify {
		return nil
	}
	w, _, err := buildWorld(m.Tuning, m.Scenario, nil, nil, nil)
	if err != nil {
		return err
	}
	for _, want := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		got := w.AdvanceDay()
		if got.Day != want.Day {
			return fmt.Errorf("day log gap: replayed day %d, log has day %d", got.Day, want.Day)
		}
		if got.Digest != want.Digest {
			return fmt.Errorf("day %d: digest mismatch: log=%s replay=%s", want.Day, want.Digest, got.Digest)
		}
	}
	logger.Printf("verified %d days", len(entries))
	return nil
}

// summarizeAudits counts actions and refusal reasons, sorted by name.
func summarizeAudits(audits []world.AuditEntry) []string {
	actions := map[string]int{}
	refusals := map[string]int{}
	for _, a := range audits {
		if a.Reason != "" {
			refusals[a.Action+" "+a.Reason]++
			continue
		}
		actions[a.Action]++
	}
	var out []string
	for _, k := range sortedKeys(actions) {
		out = append(out, fmt.Sprintf("%s=%d", k, actions[k]))
	}
	for _, k := range sortedKeys(refusals) {
		out = append(out, fmt.Sprintf("refused %s=%d", k, refusals[k]))
	}
	return out
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

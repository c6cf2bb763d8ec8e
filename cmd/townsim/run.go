package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"townsim.ai/internal/persistence/indexdb"
	persistlog "townsim.ai/internal/persistence/log"
	"townsim.ai/internal/sim/scenario"
	"townsim.ai/internal/sim/tuning"
	"townsim.ai/internal/sim/world"
)

type runOptions struct {
	TuningPath   string
	ScenarioPath string
	Days         int
	Seed         int64
	OutDir       string
	IndexPath    string
	Check        bool
	ReportEvery  int
}

// runManifest holds everything replay needs to rebuild the starting world.
type runManifest struct {
	RunID     string            `json:"run_id"`
	StartedAt time.Time         `json:"started_at"`
	Days      int               `json:"days"`
	Tuning    tuning.Tuning     `json:"tuning"`
	Scenario  scenario.Scenario `json:"scenario"`
}

const manifestFile = "run.json"

func runSim(ctx context.Context, logger *log.Logger, opts runOptions) (string, error) {
	tune, err := tuning.Load(opts.TuningPath)
	if err != nil {
		return "", fmt.Errorf("load tuning: %w", err)
	}
	if opts.Seed != 0 {
		tune.Seed = opts.Seed
	}
	if opts.Days > 0 {
		tune.Days = opts.Days
	}
	scen, err := scenario.Load(opts.ScenarioPath)
	if err != nil {
		return "", fmt.Errorf("load scenario: %w", err)
	}

	run := indexdb.NewRun(tune.WorldID, tune.Seed, tune.Days, tune, scen)
	runDir := filepath.Join(opts.OutDir, run.ID)
	if err := writeManifest(runDir, runManifest{
		RunID:     run.ID,
		StartedAt: run.StartedAt,
		Days:      tune.Days,
		Tuning:    tune,
		Scenario:  scen,
	}); err != nil {
		return "", err
	}

	dayLog := persistlog.NewDayLogger(runDir, tune.Log.SegmentDays)
	defer dayLog.Close()
	auditLog := persistlog.NewAuditLogger(runDir, tune.Log.SegmentDays)
	defer auditLog.Close()
	days := dayFanout{dayLog}
	audits := auditFanout{auditLog}

	var idx *indexdb.SQLiteIndex
	if opts.IndexPath != "" {
		idx, err = indexdb.OpenSQLite(opts.IndexPath)
		if err != nil {
			return "", fmt.Errorf("open index: %w", err)
		}
		defer idx.Close()
		if err := idx.RecordRun(run); err != nil {
			return "", fmt.Errorf("record run: %w", err)
		}
		days = append(days, idx)
		audits = append(audits, idx)
	}

	w, res, err := buildWorld(tune, scen, logger, days, audits)
	if err != nil {
		return "", err
	}
	for _, r := range res.Refused {
		logger.Printf("scenario placement refused: %s", r)
	}
	logger.Printf("run %s: world=%s seed=%d days=%d citizens=%d out=%s", run.ID, tune.WorldID, tune.Seed, tune.Days, len(w.Citizens()), runDir)

	var last world.DayLogEntry
	for i := 0; i < tune.Days; i++ {
		if ctx.Err() != nil {
			logger.Printf("interrupted after %d days", i)
			break
		}
		last = w.AdvanceDay()
		if opts.Check {
			if err := w.CheckInvariants(); err != nil {
				return runDir, fmt.Errorf("day %d: %w", last.Day, err)
			}
		}
		if opts.ReportEvery > 0 && (last.Day+1)%opts.ReportEvery == 0 {
			logMetrics(logger, last)
		}
	}
	logMetrics(logger, last)
	if idx != nil {
		if st := idx.Stats(); st.DropDayTotal > 0 || st.DropAuditTotal > 0 {
			logger.Printf("index dropped %d day and %d audit entries", st.DropDayTotal, st.DropAuditTotal)
		}
	}
	return runDir, nil
}

// buildWorld creates the world from tuning and applies the scenario with
// loggers already attached, so foundings and first hires are audited.
func buildWorld(tune tuning.Tuning, scen scenario.Scenario, logger *log.Logger, days world.DayLogger, audits world.AuditLogger) (*world.World, scenario.Result, error) {
	w := world.New(tune.WorldConfig(), nil)
	w.SetLogger(logger)
	w.SetDayLogger(days)
	w.SetAuditLogger(audits)
	res, err := scen.Apply(w)
	if err != nil {
		return nil, res, fmt.Errorf("apply scenario: %w", err)
	}
	return w, res, nil
}

func logMetrics(logger *log.Logger, e world.DayLogEntry) {
	m := e.Metrics
	logger.Printf("day %d: citizens=%d employed=%d founders=%d unemployed=%d housed=%d bankrupt=%d cash=%.2f treasury=%.2f digest=%.12s",
		e.Day, m.Citizens, m.Employed, m.Founders, m.Unemployed, m.Housed, m.Bankrupt, m.CitizenCash, m.StructureTreasury, e.Digest)
}

func writeManifest(runDir string, m runManifest) error {
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(runDir, manifestFile), append(b, '\n'), 0o644)
}

func readManifest(runDir string) (runManifest, error) {
	var m runManifest
	b, err := os.ReadFile(filepath.Join(runDir, manifestFile))
	if err != nil {
		return m, err
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return m, fmt.Errorf("%s: %w", manifestFile, err)
	}
	return m, nil
}

func runValidate(logger *log.Logger, tuningPath, scenarioPath string) error {
	tune, err := tuning.Load(tuningPath)
	if err != nil {
		return fmt.Errorf("load tuning: %w", err)
	}
	scen, err := scenario.Load(scenarioPath)
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}
	// A dry application catches placements the world itself would refuse.
	w, res, err := buildWorld(tune, scen, nil, nil, nil)
	if err != nil {
		return err
	}
	if err := w.CheckInvariants(); err != nil {
		return err
	}
	for _, r := range res.Refused {
		logger.Printf("warning: placement refused: %s", r)
	}
	logger.Printf("ok: world=%s citizens=%d structures=%d", tune.WorldID, len(res.Citizens), len(res.Structures))
	return nil
}

type dayFanout []world.DayLogger

func (f dayFanout) WriteDay(e world.DayLogEntry) error {
	var errs []error
	for _, l := range f {
		if err := l.WriteDay(e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type auditFanout []world.AuditLogger

func (f auditFanout) WriteAudit(e world.AuditEntry) error {
	var errs []error
	for _, l := range f {
		if err := l.WriteAudit(e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

package indexdb

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"townsim.ai/internal/sim/world"
)

// SQLiteIndex is a queryable copy of the day and audit logs. The JSONL logs
// stay the source of truth; entries are dropped when the writer falls behind.
type SQLiteIndex struct {
	db *sql.DB

	ch   chan req
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
	runID  atomic.Pointer[string]

	dropDay   atomic.Uint64
	dropAudit atomic.Uint64
}

type Stats struct {
	DropDayTotal   uint64
	DropAuditTotal uint64
}

// Run identifies one simulation run. Tuning and Scenario are stored as JSON.
type Run struct {
	ID        string
	WorldID   string
	Seed      int64
	Days      int
	StartedAt time.Time
	Tuning    any
	Scenario  any
}

// NewRun stamps a run with a fresh id.
func NewRun(worldID string, seed int64, days int, tune, scen any) Run {
	return Run{
		ID:        uuid.NewString(),
		WorldID:   worldID,
		Seed:      seed,
		Days:      days,
		StartedAt: time.Now().UTC(),
		Tuning:    tune,
		Scenario:  scen,
	}
}

type reqKind int

const (
	reqDay reqKind = iota + 1
	reqAudit
)

type req struct {
	kind  reqKind
	runID string

	day   world.DayLogEntry
	audit world.AuditEntry
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteIndex{
		db: db,
		// Every mutation is audited, so a busy day can enqueue thousands of rows.
		ch: make(chan req, 65536),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			world_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			days INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			tuning_digest TEXT NOT NULL,
			tuning_json TEXT NOT NULL,
			scenario_json TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS days (
			run_id TEXT NOT NULL,
			day INTEGER NOT NULL,
			digest TEXT NOT NULL,
			citizens INTEGER NOT NULL,
			employed INTEGER NOT NULL,
			unemployed INTEGER NOT NULL,
			bankrupt INTEGER NOT NULL,
			citizen_cash REAL NOT NULL,
			structure_treasury REAL NOT NULL,
			raw_json TEXT NOT NULL,
			PRIMARY KEY (run_id, day)
		);`,
		`CREATE TABLE IF NOT EXISTS day_events (
			run_id TEXT NOT NULL,
			day INTEGER NOT NULL,
			kind TEXT NOT NULL,
			structure_id TEXT NOT NULL,
			PRIMARY KEY (run_id, day, kind, structure_id)
		);`,
		`CREATE TABLE IF NOT EXISTS audits (
			run_id TEXT NOT NULL,
			day INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			actor TEXT NOT NULL,
			action TEXT NOT NULL,
			target TEXT,
			amount REAL NOT NULL,
			reason TEXT,
			raw_json TEXT NOT NULL,
			PRIMARY KEY (run_id, day, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_audits_actor_day ON audits(run_id, actor, day);`,
		`CREATE INDEX IF NOT EXISTS idx_audits_action_day ON audits(run_id, action, day);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

func (s *SQLiteIndex) Stats() Stats {
	if s == nil {
		return Stats{}
	}
	return Stats{
		DropDayTotal:   s.dropDay.Load(),
		DropAuditTotal: s.dropAudit.Load(),
	}
}

// RecordRun stores the run row synchronously. Day and audit entries written
// afterwards are attributed to this run.
func (s *SQLiteIndex) RecordRun(run Run) error {
	if s == nil {
		return nil
	}
	if run.ID == "" {
		return fmt.Errorf("run id is required")
	}
	tuneJSON, err := json.Marshal(run.Tuning)
	if err != nil {
		return fmt.Errorf("tuning json: %w", err)
	}
	sum := sha256.Sum256(tuneJSON)
	var scen sql.NullString
	if run.Scenario != nil {
		b, err := json.Marshal(run.Scenario)
		if err != nil {
			return fmt.Errorf("scenario json: %w", err)
		}
		scen = sql.NullString{String: string(b), Valid: true}
	}

	tx, err := s.db.BeginTx(context.Background(), nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`INSERT OR REPLACE INTO meta(key,value) VALUES('schema_version','1')`); err != nil {
		return err
	}
	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO runs(run_id,world_id,seed,days,started_at,tuning_digest,tuning_json,scenario_json) VALUES(?,?,?,?,?,?,?,?)`,
		run.ID,
		run.WorldID,
		run.Seed,
		run.Days,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		hex.EncodeToString(sum[:]),
		string(tuneJSON),
		scen,
	); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	id := run.ID
	s.runID.Store(&id)
	return nil
}

func (s *SQLiteIndex) currentRun() string {
	if p := s.runID.Load(); p != nil {
		return *p
	}
	return ""
}

func (s *SQLiteIndex) WriteDay(entry world.DayLogEntry) error {
	if s == nil || s.closed.Load() {
		return nil
	}
	select {
	case s.ch <- req{kind: reqDay, runID: s.currentRun(), day: entry}:
	default:
		s.dropDay.Add(1)
	}
	return nil
}

func (s *SQLiteIndex) WriteAudit(entry world.AuditEntry) error {
	if s == nil || s.closed.Load() {
		return nil
	}
	select {
	case s.ch <- req{kind: reqAudit, runID: s.currentRun(), audit: entry}:
	default:
		s.dropAudit.Add(1)
	}
	return nil
}

func (s *SQLiteIndex) loop() {
	ctx := context.Background()

	insertDay, _ := s.db.Prepare(`INSERT OR REPLACE INTO days(run_id,day,digest,citizens,employed,unemployed,bankrupt,citizen_cash,structure_treasury,raw_json) VALUES(?,?,?,?,?,?,?,?,?,?)`)
	insertEvent, _ := s.db.Prepare(`INSERT OR REPLACE INTO day_events(run_id,day,kind,structure_id) VALUES(?,?,?,?)`)
	insertAudit, _ := s.db.Prepare(`INSERT OR REPLACE INTO audits(run_id,day,seq,actor,action,target,amount,reason,raw_json) VALUES(?,?,?,?,?,?,?,?,?)`)
	defer func() {
		for _, st := range []*sql.Stmt{insertDay, insertEvent, insertAudit} {
			if st != nil {
				_ = st.Close()
			}
		}
	}()

	var (
		tx            *sql.Tx
		opCount       int
		lastCommit    = time.Now()
		commitEvery   = 2000
		commitMaxWait = 2 * time.Second

		lastAuditRun string
		lastAuditDay = -1
		auditSeq     int
	)

	begin := func() {
		if tx != nil {
			return
		}
		txx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			time.Sleep(50 * time.Millisecond)
			return
		}
		tx = txx
		opCount = 0
		lastCommit = time.Now()
	}
	commit := func() {
		if tx == nil {
			return
		}
		_ = tx.Commit()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}
	rollback := func() {
		if tx == nil {
			return
		}
		_ = tx.Rollback()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}
	flushIfNeeded := func() {
		if tx == nil {
			return
		}
		if opCount >= commitEvery || time.Since(lastCommit) >= commitMaxWait {
			commit()
		}
	}
	exec := func(st *sql.Stmt, args ...any) bool {
		if st == nil || tx == nil {
			return false
		}
		if _, err := tx.Stmt(st).Exec(args...); err != nil {
			rollback()
			return false
		}
		opCount++
		return true
	}

	for r := range s.ch {
		begin()
		if tx == nil {
			continue
		}
		switch r.kind {
		case reqDay:
			d := r.day
			raw, _ := json.Marshal(d)
			m := d.Metrics
			if !exec(insertDay, r.runID, d.Day, d.Digest, m.Citizens, m.Employed, m.Unemployed, m.Bankrupt, m.CitizenCash, m.StructureTreasury, string(raw)) {
				continue
			}
			events := []struct {
				kind string
				ids  []string
			}{
				{"released", d.Released},
				{"liquidated", d.Liquidated},
				{"harvested", d.Harvested},
			}
		events:
			for _, ev := range events {
				for _, id := range ev.ids {
					if !exec(insertEvent, r.runID, d.Day, ev.kind, id) {
						break events
					}
				}
			}

		case reqAudit:
			a := r.audit
			if a.Day != lastAuditDay || r.runID != lastAuditRun {
				lastAuditDay = a.Day
				lastAuditRun = r.runID
				auditSeq = 0
			}
			seq := auditSeq
			auditSeq++
			raw, _ := json.Marshal(a)
			exec(insertAudit, r.runID, a.Day, seq, a.Actor, a.Action, a.Target, a.Amount, a.Reason, string(raw))
		}
		flushIfNeeded()
	}

	commit()
}

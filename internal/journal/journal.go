// Package journal persists decision transitions to SQLite so runs can be
// inspected after the fact. A Recorder implements advisor.Sink and tags
// every row with a run ID, letting one database hold many runs.
package journal

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielpatrickdp/utility-advisor/internal/advisor"
	"github.com/danielpatrickdp/utility-advisor/internal/world"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS decision_log (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL,
	cycle       INTEGER NOT NULL,
	entity      TEXT NOT NULL,
	action      TEXT NOT NULL,
	identity    TEXT NOT NULL,
	score       REAL NOT NULL,
	desync      INTEGER NOT NULL DEFAULT 0,
	created_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_decision_log_run ON decision_log(run_id, cycle);
CREATE INDEX IF NOT EXISTS idx_decision_log_entity ON decision_log(entity, cycle);
`
// #endregion schema

// #region entry
// Entry is one row of the decision journal.
type Entry struct {
	RunID     string
	Cycle     int
	Entity    world.EntityID
	Action    advisor.Action
	Identity  string
	Score     float32
	Desync    bool
	CreatedAt time.Time
}
// #endregion entry

// #region recorder-struct
// Recorder writes decision transitions for a single run.
type Recorder struct {
	db    *sql.DB
	runID string
}
// #endregion recorder-struct

// #region constructor
// Open opens (or creates) a journal database and starts a new run.
func Open(dbPath string) (*Recorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Recorder{db: db, runID: uuid.New().String()}, nil
}
// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (r *Recorder) Close() error {
	return r.db.Close()
}
// #endregion close

// #region accessors
// RunID returns the identifier tagged onto this recorder's rows.
func (r *Recorder) RunID() string {
	return r.runID
}

// DB returns the underlying *sql.DB for use by other packages.
func (r *Recorder) DB() *sql.DB {
	return r.db
}
// #endregion accessors

// #region record
// Record appends one transition. It satisfies advisor.Sink, which has no
// error return; insert failures are logged and the run continues.
func (r *Recorder) Record(cycle int, entity world.EntityID, t advisor.Transition) {
	desync := 0
	if t.Desync {
		desync = 1
	}
	_, err := r.db.Exec(
		`INSERT INTO decision_log (run_id, cycle, entity, action, identity, score, desync, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.runID, cycle, string(entity), string(t.Action), t.Identity, t.Score, desync,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		log.Printf("journal: insert transition: %v", err)
	}
}
// #endregion record

// #region entries
// Entries returns the most recent journal rows across all runs.
func (r *Recorder) Entries(limit int) ([]Entry, error) {
	rows, err := r.db.Query(
		`SELECT run_id, cycle, entity, action, identity, score, desync, created_at
		 FROM decision_log ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return scanEntries(rows)
}
// #endregion entries

// #region entity-history
// EntityHistory returns a single entity's transitions in cycle order.
func (r *Recorder) EntityHistory(entity world.EntityID, limit int) ([]Entry, error) {
	rows, err := r.db.Query(
		`SELECT run_id, cycle, entity, action, identity, score, desync, created_at
		 FROM decision_log WHERE entity = ? ORDER BY cycle ASC, id ASC LIMIT ?`,
		string(entity), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("entity history: %w", err)
	}
	return scanEntries(rows)
}
// #endregion entity-history

// #region action-counts
// ActionCounts aggregates transitions by action for this recorder's run.
func (r *Recorder) ActionCounts() (map[advisor.Action]int, error) {
	rows, err := r.db.Query(
		`SELECT action, COUNT(*) FROM decision_log WHERE run_id = ? GROUP BY action`,
		r.runID,
	)
	if err != nil {
		return nil, fmt.Errorf("action counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[advisor.Action]int)
	for rows.Next() {
		var action string
		var n int
		if err := rows.Scan(&action, &n); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		counts[advisor.Action(action)] = n
	}
	return counts, rows.Err()
}
// #endregion action-counts

// #region scan
func scanEntries(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var entity, action, createdStr string
		var desync int
		if err := rows.Scan(&e.RunID, &e.Cycle, &entity, &action, &e.Identity, &e.Score, &desync, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		e.Entity = world.EntityID(entity)
		e.Action = advisor.Action(action)
		e.Desync = desync != 0
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
// #endregion scan

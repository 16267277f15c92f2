package kv

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/penwyp/go-step-monitor/internal/util"

	// Pure-Go SQLite driver, registers "sqlite"
	_ "modernc.org/sqlite"
)

// currentSchemaVersion is bumped together with a new migrateToVn step
const currentSchemaVersion = 1

// SQLiteStore keeps every key as one row of the prefs table
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens or creates the database at path. ":memory:" works for
// tests because the pool is limited to one connection.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	util.LogDebug("Opening sqlite store", util.F("path", path))

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	const schemaVersionTable = `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at TEXT NOT NULL
		);
	`
	if _, err := s.db.Exec(schemaVersionTable); err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}

	var version int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version); err != nil {
		return fmt.Errorf("check schema version: %w", err)
	}

	if version < 1 {
		if err := s.migrateToV1(); err != nil {
			return fmt.Errorf("migrate to v1: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) migrateToV1() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const prefsTable = `
		CREATE TABLE IF NOT EXISTS prefs (
			key TEXT PRIMARY KEY,
			kind INTEGER NOT NULL,
			int_value INTEGER,
			float_value REAL,
			text_value TEXT
		);
	`
	if _, err := tx.Exec(prefsTable); err != nil {
		return fmt.Errorf("create prefs table: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version, applied_at) VALUES (?, ?)",
		1, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) Snapshot() (map[string]Value, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT key, kind, int_value, float_value, text_value FROM prefs")
	if err != nil {
		return nil, fmt.Errorf("query prefs: %w", err)
	}
	defer rows.Close()

	values := make(map[string]Value)
	for rows.Next() {
		var (
			key      string
			kind     int
			intVal   sql.NullInt64
			floatVal sql.NullFloat64
			textVal  sql.NullString
		)
		if err := rows.Scan(&key, &kind, &intVal, &floatVal, &textVal); err != nil {
			return nil, fmt.Errorf("scan prefs row: %w", err)
		}

		switch Kind(kind) {
		case KindInt:
			if intVal.Valid {
				values[key] = IntValue(intVal.Int64)
				continue
			}
		case KindFloat:
			if floatVal.Valid {
				values[key] = FloatValue(floatVal.Float64)
				continue
			}
		case KindString:
			if textVal.Valid {
				values[key] = StringValue(textVal.String)
				continue
			}
		}
		util.LogDebugf("Skipping malformed prefs row %q (kind %d)", key, kind)
	}
	return values, rows.Err()
}

func (s *SQLiteStore) Apply(batch *Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	const upsert = `
		INSERT INTO prefs (key, kind, int_value, float_value, text_value)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			kind = excluded.kind,
			int_value = excluded.int_value,
			float_value = excluded.float_value,
			text_value = excluded.text_value
	`

	for _, o := range batch.ops {
		switch o.kind {
		case opClear:
			_, err = tx.Exec("DELETE FROM prefs")
		case opRemove:
			_, err = tx.Exec("DELETE FROM prefs WHERE key = ?", o.key)
		case opPut:
			var intVal, floatVal, textVal interface{}
			switch o.value.Kind {
			case KindInt:
				intVal = o.value.Int
			case KindFloat:
				floatVal = o.value.Float
			case KindString:
				textVal = o.value.Str
			}
			_, err = tx.Exec(upsert, o.key, int(o.value.Kind), intVal, floatVal, textVal)
		}
		if err != nil {
			return fmt.Errorf("apply %q: %w", o.key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

package session

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/sail-dex/pokedex/pkg/filter"
	_ "modernc.org/sqlite"
)

// Keys under which preferences are stored.
const (
	KeySearch    = "searchField"
	KeyType      = "filterType"
	KeyRegion    = "filterRegion"
	KeyForm      = "filterForm"
	KeyShowBack  = "showBack"
	KeyShowShiny = "showShiny"
	KeyDarkMode  = "darkMode"
)

// Store keeps session values in an in-memory SQLite database. Everything is
// lost when the process exits.
type Store struct {
	sql *sql.DB
}

// OpenStore creates an empty store.
func OpenStore() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS session_prefs (
  session_id TEXT NOT NULL,
  key        TEXT NOT NULL,
  value      TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (session_id, key)
);
    `); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{sql: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.sql == nil {
		return nil
	}
	return s.sql.Close()
}

// Get returns the stored value of key and whether it was present.
func (s *Store) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	var v string
	err := s.sql.QueryRowContext(ctx, "SELECT value FROM session_prefs WHERE session_id = ? AND key = ?", sessionID, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, sessionID, key, value string) error {
	_, err := s.sql.ExecContext(ctx, upsertSQL, sessionID, key, value)
	return err
}

const upsertSQL = `INSERT INTO session_prefs(session_id, key, value) VALUES(?,?,?)
ON CONFLICT(session_id, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`

// Load restores the state of a session. Absent keys keep their defaults:
// empty strings and false.
func (s *Store) Load(ctx context.Context, sessionID string) (State, error) {
	rows, err := s.sql.QueryContext(ctx, "SELECT key, value FROM session_prefs WHERE session_id = ?", sessionID)
	if err != nil {
		return State{}, err
	}
	defer rows.Close()

	var st State
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return State{}, err
		}
		switch k {
		case KeySearch:
			st.Prefs.SearchText = v
			st.Criteria.NameQuery = v
		case KeyType:
			st.Criteria.TypeName = v
		case KeyRegion:
			st.Criteria.RegionName = v
		case KeyForm:
			st.Criteria.FormGroup = filter.FormGroup(v)
		case KeyShowBack:
			st.Prefs.ShowBack = v == "1"
		case KeyShowShiny:
			st.Prefs.ShowShiny = v == "1"
		case KeyDarkMode:
			st.Prefs.DarkMode = v == "1"
		}
	}
	return st, rows.Err()
}

// Save writes every key of st in one transaction.
func (s *Store) Save(ctx context.Context, sessionID string, st State) (err error) {
	tx, err := s.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	values := [][2]string{
		{KeySearch, st.Prefs.SearchText},
		{KeyType, st.Criteria.TypeName},
		{KeyRegion, st.Criteria.RegionName},
		{KeyForm, string(st.Criteria.FormGroup)},
		{KeyShowBack, boolString(st.Prefs.ShowBack)},
		{KeyShowShiny, boolString(st.Prefs.ShowShiny)},
		{KeyDarkMode, boolString(st.Prefs.DarkMode)},
	}
	for _, kv := range values {
		if _, err = tx.ExecContext(ctx, upsertSQL, sessionID, kv[0], kv[1]); err != nil {
			return fmt.Errorf("save %s: %w", kv[0], err)
		}
	}
	return tx.Commit()
}

// Delete removes every stored value of a session.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	_, err := s.sql.ExecContext(ctx, "DELETE FROM session_prefs WHERE session_id = ?", sessionID)
	return err
}

// Count returns how many sessions have stored values.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.sql.QueryRowContext(ctx, "SELECT COUNT(DISTINCT session_id) FROM session_prefs").Scan(&n)
	return n, err
}

func boolString(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// NewSessionID returns a random 128-bit hex id.
func NewSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

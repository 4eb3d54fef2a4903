package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// Store is a table of text keys and values.
type Store struct {
	mu   sync.Mutex
	name string
	db   *sql.DB
}

var (
	ErrBadName  = errors.New("bad name for store")
	ErrNotFound = errors.New("value not found")
)

func isLetter(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !isLetter(c) {
			return false
		}
	}
	return true
}

// Open opens (creating if needed) the sqlite database at path.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to connect to %s: %w", path, err)
	}
	return db, nil
}

// New creates the table name in db if it does not exist. name may only
// contain upper- or lowercase Latin letters since it is spliced into SQL.
func New(db *sql.DB, name string) (*Store, error) {
	if !isLetters(name) {
		return nil, ErrBadName
	}

	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS ` + name + ` (
	key		TEXT PRIMARY KEY,
	value	TEXT NOT NULL
);`)
	if err != nil {
		return nil, fmt.Errorf("unable to create table %s: %w", name, err)
	}
	return &Store{name: name, db: db}, nil
}

// Get returns the value under key or [ErrNotFound].
func (s *Store) Get(key string) (string, error) {
	var v string
	err := s.db.QueryRow(
		`SELECT value FROM `+s.name+` WHERE key = ?;`, key,
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return v, err
}

const upsert = `
INSERT INTO %s (key, value)
VALUES (?, ?)
ON CONFLICT(key)
DO UPDATE SET value=excluded.value;`

// Set inserts a new key-value pair or updates an existing one.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(fmt.Sprintf(upsert, s.name), key, value)
	return err
}

// SetAll writes every pair in one transaction.
func (s *Store) SetAll(values map[string]string) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare(fmt.Sprintf(upsert, s.name))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for key, value := range values {
		if _, err = stmt.Exec(key, value); err != nil {
			return fmt.Errorf("unable to set %s: %w", key, err)
		}
	}
	return tx.Commit()
}

// Delete removes key from the store without checking if it existed.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM `+s.name+` WHERE key = ?;`, key)
	return err
}

func (s *Store) Count() (count int, err error) {
	err = s.db.QueryRow(`SELECT COUNT(*) FROM ` + s.name + `;`).Scan(&count)
	return
}

// All returns every pair in the store.
func (s *Store) All() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT key, value FROM ` + s.name + `;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		values[key] = value
	}
	return values, rows.Err()
}

// Package share stores published month sheets under short random paths
// with an expiry, backing the temporary share links printed by
// `autolog make`.
package share

import (
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

var (
	ErrLinkNotFound = errors.New("share link not found")
	ErrLinkExpired  = errors.New("share link expired")
)

type DB struct {
	*sql.DB
}

// Open opens (and on first use creates) the share database in dir.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating share directory: %w", err)
	}

	dbPath := filepath.Join(dir, "share.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening share database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to share database: %w", err)
	}

	store := &DB{db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return store, nil
}

func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS links (
			path TEXT PRIMARY KEY,
			namespace TEXT NOT NULL,
			payload BLOB NOT NULL,
			expires_at DATETIME NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_links_expires ON links(expires_at)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("executing migration: %w", err)
		}
	}

	return nil
}

// Publish stores a rendered sheet payload and returns the random path it
// is now reachable under until the TTL elapses.
func (db *DB) Publish(namespace string, payload []byte, ttl time.Duration) (string, error) {
	if err := db.purgeExpired(); err != nil {
		return "", err
	}

	path, err := db.freshPath()
	if err != nil {
		return "", err
	}

	_, err = db.Exec(
		"INSERT INTO links (path, namespace, payload, expires_at) VALUES (?, ?, ?, ?)",
		path, namespace, payload, time.Now().Add(ttl).UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("inserting share link: %w", err)
	}
	return path, nil
}

// Get returns the payload stored under path, or ErrLinkExpired /
// ErrLinkNotFound.
func (db *DB) Get(path string) ([]byte, error) {
	var payload []byte
	var expiresAt string
	err := db.QueryRow(
		"SELECT payload, expires_at FROM links WHERE path = ?", path,
	).Scan(&payload, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, ErrLinkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading share link: %w", err)
	}

	expiry, err := time.Parse(time.RFC3339, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("parsing link expiry: %w", err)
	}
	if time.Now().After(expiry) {
		return nil, ErrLinkExpired
	}
	return payload, nil
}

func (db *DB) purgeExpired() error {
	_, err := db.Exec(
		"DELETE FROM links WHERE expires_at < ?",
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("purging expired links: %w", err)
	}
	return nil
}

// freshPath generates a random path and retries on the unlikely collision
// with an existing row.
func (db *DB) freshPath() (string, error) {
	for {
		path, err := randomPath(10)
		if err != nil {
			return "", err
		}
		var exists int
		err = db.QueryRow("SELECT COUNT(1) FROM links WHERE path = ?", path).Scan(&exists)
		if err != nil {
			return "", fmt.Errorf("checking path collision: %w", err)
		}
		if exists == 0 {
			return path, nil
		}
	}
}

const pathCharset = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomPath(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating random path: %w", err)
	}
	for i, b := range buf {
		buf[i] = pathCharset[int(b)%len(pathCharset)]
	}
	return string(buf), nil
}

package upload

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Fingerprint identifies one version of an import file.
type Fingerprint struct {
	Path string
	Size int64
	Hash string
}

// StateDB remembers which import files were fully submitted so reruns skip them.
type StateDB struct {
	db *sql.DB
}

// OpenStateDB opens (or creates) dir/state.db.
func OpenStateDB(dir string) (*StateDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "state.db"))
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS imported_files (
		path        TEXT PRIMARY KEY,
		size        INTEGER NOT NULL,
		hash        TEXT NOT NULL,
		workouts    INTEGER NOT NULL,
		imported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}
	return &StateDB{db: db}, nil
}

// Seen reports whether this exact file version was imported before. A file
// edited in place has a new size or hash and is imported again.
func (s *StateDB) Seen(ctx context.Context, fp Fingerprint) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM imported_files WHERE path = ? AND size = ? AND hash = ?`,
		fp.Path, fp.Size, fp.Hash,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", fp.Path, err)
	}
	return n > 0, nil
}

// Record stores the fingerprint along with how many workouts the file held.
func (s *StateDB) Record(ctx context.Context, fp Fingerprint, workouts int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO imported_files (path, size, hash, workouts) VALUES (?, ?, ?, ?)`,
		fp.Path, fp.Size, fp.Hash, workouts,
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", fp.Path, err)
	}
	return nil
}

func (s *StateDB) Close() error {
	return s.db.Close()
}

// fingerprint hashes the file at root/rel.
func fingerprint(root, rel string) (Fingerprint, error) {
	f, err := os.Open(filepath.Join(root, rel))
	if err != nil {
		return Fingerprint{}, err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return Fingerprint{}, err
	}
	return Fingerprint{Path: filepath.ToSlash(rel), Size: n, Hash: hex.EncodeToString(h.Sum(nil))}, nil
}

// Package manifest records produced clips in a SQLite database next to the
// output artifacts, so batch combination reads an explicit record instead of
// scanning the filesystem for filename conventions.
package manifest

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Clip is one produced per-word video
type Clip struct {
	Index     int    // Position of the word in the input list
	Word      string
	Path      string // Clip file path
	Batch     int    // Batch number once combined, 0 while pending
	CreatedAt time.Time
}

// Store is the clip manifest database
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the manifest database at path
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest database: %w", err)
	}

	query := `CREATE TABLE IF NOT EXISTS clips (
		idx integer PRIMARY KEY,
		word text NOT NULL,
		path text NOT NULL,
		batch integer NOT NULL DEFAULT 0,
		created_at integer NOT NULL
	)`
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create clips table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the manifest database
func (s *Store) Close() error {
	return s.db.Close()
}

// AddClip records a produced clip
func (s *Store) AddClip(clip Clip) error {
	query := `INSERT INTO clips (idx, word, path, batch, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := s.db.Exec(query, clip.Index, clip.Word, clip.Path, clip.Batch, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to record clip %s: %w", clip.Path, err)
	}
	return nil
}

// MarkCombined assigns the given clips to a batch
func (s *Store) MarkCombined(batch int, indices []int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, index := range indices {
		if _, err := tx.Exec(`UPDATE clips SET batch = ? WHERE idx = ?`, batch, index); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to mark clip %d: %w", index, err)
		}
	}

	return tx.Commit()
}

// PendingClips returns clips not yet combined into a batch, in word order
func (s *Store) PendingClips() ([]Clip, error) {
	return s.queryClips(`SELECT idx, word, path, batch, created_at FROM clips WHERE batch = 0 ORDER BY idx`)
}

// Clips returns all recorded clips in word order
func (s *Store) Clips() ([]Clip, error) {
	return s.queryClips(`SELECT idx, word, path, batch, created_at FROM clips ORDER BY idx`)
}

func (s *Store) queryClips(query string) ([]Clip, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query clips: %w", err)
	}
	defer rows.Close()

	var clips []Clip
	for rows.Next() {
		var clip Clip
		var createdAt int64
		if err := rows.Scan(&clip.Index, &clip.Word, &clip.Path, &clip.Batch, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan clip: %w", err)
		}
		clip.CreatedAt = time.Unix(createdAt, 0)
		clips = append(clips, clip)
	}

	return clips, rows.Err()
}

// NextBatchNumber returns the next unused batch number
func (s *Store) NextBatchNumber() (int, error) {
	var max sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(batch) FROM clips`).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to query batch number: %w", err)
	}
	if !max.Valid {
		return 1, nil
	}
	return int(max.Int64) + 1, nil
}

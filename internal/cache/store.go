// Package cache keeps a local copy of the latest server state per feature
// so results and transcripts can be shown without a round trip.
package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/careerbot/internal/api"
	"github.com/ziadkadry99/careerbot/internal/db"
	"github.com/ziadkadry99/careerbot/internal/feature"
)

// Result is a cached raw response.
type Result struct {
	ID        string
	Feature   feature.ID
	Raw       string
	CreatedAt time.Time
}

// Saved is a response saved on the server from this machine.
type Saved struct {
	ServerID int64
	Feature  feature.ID
	Title    string
	SavedAt  time.Time
}

// Store manages the cache tables.
type Store struct {
	db *db.DB
}

// NewStore creates a new cache store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// PutResult records the latest raw result for a feature.
func (s *Store) PutResult(ctx context.Context, id feature.ID, raw string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results (id, feature_id, raw, created_at) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), int(id), raw, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting result: %w", err)
	}
	return nil
}

// LatestResult returns the most recent result for a feature, or nil.
func (s *Store) LatestResult(ctx context.Context, id feature.ID) (*Result, error) {
	var r Result
	var fid int
	err := s.db.QueryRowContext(ctx,
		`SELECT id, feature_id, raw, created_at FROM results
		 WHERE feature_id = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`, int(id),
	).Scan(&r.ID, &fid, &r.Raw, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting latest result: %w", err)
	}
	r.Feature = feature.ID(fid)
	return &r, nil
}

// PutTranscript replaces a feature's cached transcript with history.
func (s *Store) PutTranscript(ctx context.Context, id feature.ID, history []api.Message) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transcript_messages WHERE feature_id = ?`, int(id)); err != nil {
		return fmt.Errorf("clearing transcript: %w", err)
	}
	now := time.Now().UTC()
	for i, m := range history {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO transcript_messages (id, feature_id, position, role, content, timestamp, cached_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), int(id), i, m.Role, m.Content, m.Timestamp, now,
		)
		if err != nil {
			return fmt.Errorf("inserting transcript message: %w", err)
		}
	}
	return tx.Commit()
}

// Transcript returns the cached transcript for a feature in order.
func (s *Store) Transcript(ctx context.Context, id feature.ID) ([]api.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT role, content, timestamp FROM transcript_messages
		 WHERE feature_id = ? ORDER BY position`, int(id),
	)
	if err != nil {
		return nil, fmt.Errorf("querying transcript: %w", err)
	}
	defer rows.Close()

	var msgs []api.Message
	for rows.Next() {
		var m api.Message
		if err := rows.Scan(&m.Role, &m.Content, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning transcript message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// RecordSaved remembers a response saved on the server.
func (s *Store) RecordSaved(ctx context.Context, saved Saved) error {
	if saved.SavedAt.IsZero() {
		saved.SavedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO saved_responses (server_id, feature_id, title, saved_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(server_id) DO UPDATE SET feature_id = excluded.feature_id, title = excluded.title, saved_at = excluded.saved_at`,
		saved.ServerID, int(saved.Feature), saved.Title, saved.SavedAt,
	)
	if err != nil {
		return fmt.Errorf("recording saved response: %w", err)
	}
	return nil
}

// ListSaved returns remembered saved responses, newest first.
func (s *Store) ListSaved(ctx context.Context) ([]Saved, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT server_id, feature_id, title, saved_at FROM saved_responses ORDER BY saved_at DESC, server_id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying saved responses: %w", err)
	}
	defer rows.Close()

	var out []Saved
	for rows.Next() {
		var sv Saved
		var fid int
		if err := rows.Scan(&sv.ServerID, &fid, &sv.Title, &sv.SavedAt); err != nil {
			return nil, fmt.Errorf("scanning saved response: %w", err)
		}
		sv.Feature = feature.ID(fid)
		out = append(out, sv)
	}
	return out, rows.Err()
}

// ForgetSaved drops a remembered saved response.
func (s *Store) ForgetSaved(ctx context.Context, serverID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM saved_responses WHERE server_id = ?`, serverID); err != nil {
		return fmt.Errorf("deleting saved response: %w", err)
	}
	return nil
}

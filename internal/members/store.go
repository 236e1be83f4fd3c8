package members

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ziadkadry99/folio/internal/db"
)

// ErrNotFound is returned when a member does not exist.
var ErrNotFound = errors.New("member not found")

// Store provides CRUD operations for members.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// queryer is satisfied by both *db.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Add appends a member after the current last position. Names are unique.
func (s *Store) Add(ctx context.Context, name string) (*Member, error) {
	return add(ctx, s.db, name)
}

// add computes the position inside the INSERT so concurrent writers never
// share one.
func add(ctx context.Context, q queryer, name string) (*Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("member name is required")
	}

	m := &Member{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	err := q.QueryRowContext(ctx,
		`INSERT INTO members (id, name, position, created_at)
		 SELECT ?, ?, COALESCE(MAX(position), -1) + 1, ? FROM members
		 RETURNING position`,
		m.ID, m.Name, m.CreatedAt.Format(time.RFC3339Nano)).Scan(&m.Position)
	if err != nil {
		return nil, fmt.Errorf("inserting member %q: %w", name, err)
	}
	return m, nil
}

// List returns every member ordered by position, then creation time.
func (s *Store) List(ctx context.Context) ([]Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, position, created_at FROM members ORDER BY position, created_at`)
	if err != nil {
		return nil, fmt.Errorf("querying members: %w", err)
	}
	defer rows.Close()

	var result []Member
	for rows.Next() {
		var (
			m  Member
			ts string
		)
		if err := rows.Scan(&m.ID, &m.Name, &m.Position, &ts); err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}
		m.CreatedAt = parseTime(ts)
		result = append(result, m)
	}
	return result, rows.Err()
}

// Names returns the ordered member names as served by /api.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(list))
	for _, m := range list {
		names = append(names, m.Name)
	}
	return names, nil
}

// Remove deletes the member with the given name.
func (s *Store) Remove(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM members WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting member %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting member %q: %w", name, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Seed inserts names in order when the table is empty. It reports how many
// members were inserted. The seed is all or nothing: on error no member is
// left behind, so the next run seeds again.
func (s *Store) Seed(ctx context.Context, names []string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning seed: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM members`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting members: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	inserted := 0
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if _, err := add(ctx, tx, name); err != nil {
			return 0, err
		}
		inserted++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing seed: %w", err)
	}
	return inserted, nil
}

func parseTime(ts string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
		return t
	}
	if t, err := time.Parse(time.DateTime, ts); err == nil {
		return t
	}
	return time.Time{}
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Scanner is the subset of *sql.Row and *sql.Rows needed to hydrate an
// entity from a result set.
type Scanner interface {
	Scan(dest ...any) error
}

// Descriptor describes how an entity type maps onto its table.  Every
// soft-deleted entity shares the same access pattern (fetch by id,
// list active, insert, update, deactivate), so the pattern is written
// once in Store and each repository supplies only its table layout.
//
// SelectColumns must cover every column Scan reads, in order.
// InsertColumns/InsertArgs cover the insertable subset; generated and
// defaulted columns (id, lifecycle state, timestamps) are omitted.
// StateColumn names the lifecycle column and ActiveValue/InactiveValue
// the two states it toggles between.
type Descriptor[T any] struct {
	Table         string
	SelectColumns []string
	InsertColumns []string
	StateColumn   string
	ActiveValue   string
	InactiveValue string
	Scan          func(Scanner) (*T, error)
	InsertArgs    func(*T) []any
	SetID         func(*T, uint64)
}

// Store implements the shared keyed-entity access pattern for one
// entity type.  Concrete repositories embed a Store and add their own
// queries on top of the same *sql.DB handle.
type Store[T any] struct {
	db   *sql.DB
	desc Descriptor[T]
}

// NewStore binds a descriptor to a database handle.
func NewStore[T any](db *sql.DB, desc Descriptor[T]) *Store[T] {
	return &Store[T]{db: db, desc: desc}
}

// DB exposes the underlying handle so callers can open transactions
// that span several repositories.
func (s *Store[T]) DB() *sql.DB { return s.db }

func (s *Store[T]) selectList() string { return strings.Join(s.desc.SelectColumns, ", ") }

// GetByID returns the active entity with the given id.  ErrNotFound is
// returned when the row is missing or not in the active state.
func (s *Store[T]) GetByID(ctx context.Context, id uint64) (*T, error) {
	q := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ? AND %s = ?`,
		s.selectList(), s.desc.Table, s.desc.StateColumn)
	e, err := s.desc.Scan(s.db.QueryRowContext(ctx, q, id, s.desc.ActiveValue))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetByIDTx is GetByID inside an existing transaction, so that
// precondition reads share the snapshot of the mutation they guard.
func (s *Store[T]) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*T, error) {
	q := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ? AND %s = ?`,
		s.selectList(), s.desc.Table, s.desc.StateColumn)
	e, err := s.desc.Scan(tx.QueryRowContext(ctx, q, id, s.desc.ActiveValue))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ListActive returns every entity currently in the active state,
// ordered by id for deterministic output.
func (s *Store[T]) ListActive(ctx context.Context) ([]T, error) {
	q := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ? ORDER BY id`,
		s.selectList(), s.desc.Table, s.desc.StateColumn)
	rows, err := s.db.QueryContext(ctx, q, s.desc.ActiveValue)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]T, 0)
	for rows.Next() {
		e, err := s.desc.Scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Insert stores a new entity and populates its generated id.  The
// lifecycle state and timestamps default in the database.
func (s *Store[T]) Insert(ctx context.Context, e *T) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(s.desc.InsertColumns)), ", ")
	q := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		s.desc.Table, strings.Join(s.desc.InsertColumns, ", "), placeholders)
	result, err := s.db.ExecContext(ctx, q, s.desc.InsertArgs(e)...)
	if err != nil {
		if IsDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	s.desc.SetID(e, uint64(id))
	return nil
}

// Update rewrites the insertable columns of an active entity.
// ErrNotFound is returned when no active row matches the id.
func (s *Store[T]) Update(ctx context.Context, id uint64, e *T) error {
	sets := make([]string, len(s.desc.InsertColumns))
	for i, col := range s.desc.InsertColumns {
		sets[i] = col + " = ?"
	}
	q := fmt.Sprintf(`UPDATE %s SET %s WHERE id = ? AND %s = ?`,
		s.desc.Table, strings.Join(sets, ", "), s.desc.StateColumn)
	args := append(s.desc.InsertArgs(e), id, s.desc.ActiveValue)
	result, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		if IsDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Deactivate soft-deletes an active entity by flipping its lifecycle
// state.  ErrNotFound is returned when no active row matches the id.
func (s *Store[T]) Deactivate(ctx context.Context, id uint64) error {
	return s.flipState(ctx, id, s.desc.ActiveValue, s.desc.InactiveValue)
}

// Reactivate undoes a Deactivate, returning an inactive entity to the
// active state.  ErrNotFound is returned when no inactive row matches
// the id, so reactivating a live entity is an error rather than a
// no-op.
func (s *Store[T]) Reactivate(ctx context.Context, id uint64) error {
	return s.flipState(ctx, id, s.desc.InactiveValue, s.desc.ActiveValue)
}

func (s *Store[T]) flipState(ctx context.Context, id uint64, from, to string) error {
	q := fmt.Sprintf(`UPDATE %s SET %s = ? WHERE id = ? AND %s = ?`,
		s.desc.Table, s.desc.StateColumn, s.desc.StateColumn)
	result, err := s.db.ExecContext(ctx, q, to, id, from)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

package note

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teamnote/teamnote/internal/team"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new note record. The insert is a single statement, so a
// note can never be persisted without its team: if the team reference does
// not resolve the FK violation aborts the write and is reported as
// team.ErrTeamNotFound.
func (r *PostgresRepository) Create(ctx context.Context, n *Note) error {
	query := `
		INSERT INTO notes (title, body, team_id, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, n.Title, n.Body, n.TeamID, n.OwnerID).
		Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return team.ErrTeamNotFound
		}
		return fmt.Errorf("inserting note: %w", err)
	}

	return nil
}

// GetByID retrieves a single note by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Note, error) {
	query := `
		SELECT id, title, body, team_id, owner_id, created_at, updated_at
		FROM notes
		WHERE id = $1`

	return r.scanOne(ctx, query, id)
}

// List retrieves notes, newest first, optionally filtered by team.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]Note, error) {
	query := `
		SELECT id, title, body, team_id, owner_id, created_at, updated_at
		FROM notes`

	var args []any
	if filter.TeamID != nil {
		query += ` WHERE team_id = $1`
		args = append(args, *filter.TeamID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		err := rows.Scan(&n.ID, &n.Title, &n.Body, &n.TeamID, &n.OwnerID, &n.CreatedAt, &n.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning note row: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating note rows: %w", err)
	}

	if notes == nil {
		notes = []Note{}
	}

	return notes, nil
}

// Update modifies owner-updatable fields (title, body). The team binding
// cannot be touched through this path.
func (r *PostgresRepository) Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Note, error) {
	var setClauses []string
	var args []any
	argIdx := 1

	if fields.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", argIdx))
		args = append(args, *fields.Title)
		argIdx++
	}
	if fields.Body != nil {
		setClauses = append(setClauses, fmt.Sprintf("body = $%d", argIdx))
		args = append(args, *fields.Body)
		argIdx++
	}

	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")

	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE notes
		SET %s
		WHERE id = $%d
		RETURNING id, title, body, team_id, owner_id, created_at, updated_at`,
		strings.Join(setClauses, ", "), argIdx)

	return r.scanOne(ctx, query, args...)
}

// Delete removes a note by its UUID.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM notes WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNoteNotFound
	}

	return nil
}

func (r *PostgresRepository) scanOne(ctx context.Context, query string, args ...any) (*Note, error) {
	var n Note
	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&n.ID, &n.Title, &n.Body, &n.TeamID, &n.OwnerID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("querying note: %w", err)
	}

	return &n, nil
}

package team

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new team record. The unique constraints on name and code
// are the authoritative uniqueness check; a violation is mapped to the
// corresponding domain error by constraint name.
func (r *PostgresRepository) Create(ctx context.Context, t *Team) error {
	query := `
		INSERT INTO teams (code, name, description, profile, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, t.Code, t.Name, t.Description, t.Profile, t.OwnerID).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == "teams_code_key" {
				return ErrDuplicateTeamCode
			}
			return ErrDuplicateTeamName
		}
		return fmt.Errorf("inserting team: %w", err)
	}

	return nil
}

// GetByID retrieves a single team by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Team, error) {
	query := `
		SELECT id, code, name, description, profile, owner_id, created_at, updated_at
		FROM teams
		WHERE id = $1`

	return r.scanOne(ctx, query, id)
}

// GetByCode retrieves a single team by its join code.
func (r *PostgresRepository) GetByCode(ctx context.Context, code string) (*Team, error) {
	query := `
		SELECT id, code, name, description, profile, owner_id, created_at, updated_at
		FROM teams
		WHERE code = $1`

	return r.scanOne(ctx, query, code)
}

// List retrieves all teams ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context) ([]Team, error) {
	query := `
		SELECT id, code, name, description, profile, owner_id, created_at, updated_at
		FROM teams
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var t Team
		err := rows.Scan(&t.ID, &t.Code, &t.Name, &t.Description, &t.Profile, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning team row: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team rows: %w", err)
	}

	if teams == nil {
		teams = []Team{}
	}

	return teams, nil
}

// Update modifies owner-updatable fields (name, description, profile). The
// join code cannot be touched through this path.
func (r *PostgresRepository) Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Team, error) {
	var setClauses []string
	var args []any
	argIdx := 1

	if fields.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *fields.Name)
		argIdx++
	}
	if fields.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", argIdx))
		args = append(args, *fields.Description)
		argIdx++
	}
	if fields.Profile != nil {
		setClauses = append(setClauses, fmt.Sprintf("profile = $%d", argIdx))
		args = append(args, *fields.Profile)
		argIdx++
	}

	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")

	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE teams
		SET %s
		WHERE id = $%d
		RETURNING id, code, name, description, profile, owner_id, created_at, updated_at`,
		strings.Join(setClauses, ", "), argIdx)

	t, err := r.scanOne(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateTeamName
		}
		return nil, err
	}

	return t, nil
}

// Delete removes a team by its UUID. Notes and memberships referencing the
// team are removed by the ON DELETE CASCADE constraints.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM teams WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting team: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTeamNotFound
	}

	return nil
}

// ListMembers retrieves the team's members joined with their user records,
// ordered by join time.
func (r *PostgresRepository) ListMembers(ctx context.Context, teamID uuid.UUID) ([]Member, error) {
	query := `
		SELECT u.id, u.username, u.first_name, u.middle_name, u.last_name, u.email, tm.joined_at
		FROM team_members tm
		JOIN users u ON u.id = tm.user_id
		WHERE tm.team_id = $1
		ORDER BY tm.joined_at ASC`

	rows, err := r.pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("listing team members: %w", err)
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		err := rows.Scan(&m.UserID, &m.Username, &m.FirstName, &m.MiddleName, &m.LastName, &m.Email, &m.JoinedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning member row: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating member rows: %w", err)
	}

	if members == nil {
		members = []Member{}
	}

	return members, nil
}

// IsMember reports whether the user belongs to the team's member set.
func (r *PostgresRepository) IsMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	query := `SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2`

	var one int
	err := r.pool.QueryRow(ctx, query, teamID, userID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("checking membership: %w", err)
	}

	return true, nil
}

// AddMember inserts a membership row. The primary key on (team_id, user_id)
// backstops concurrent joins by the same user: the second insert fails and is
// mapped to ErrAlreadyMember.
func (r *PostgresRepository) AddMember(ctx context.Context, teamID, userID uuid.UUID) error {
	query := `INSERT INTO team_members (team_id, user_id) VALUES ($1, $2)`

	_, err := r.pool.Exec(ctx, query, teamID, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" {
				return ErrAlreadyMember
			}
			if pgErr.Code == "23503" {
				return ErrTeamNotFound
			}
		}
		return fmt.Errorf("adding team member: %w", err)
	}

	return nil
}

// RemoveMember deletes a membership row. Zero rows affected means the user
// was not a member.
func (r *PostgresRepository) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error {
	query := `DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, teamID, userID)
	if err != nil {
		return fmt.Errorf("removing team member: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotAMember
	}

	return nil
}

func (r *PostgresRepository) scanOne(ctx context.Context, query string, args ...any) (*Team, error) {
	var t Team
	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&t.ID, &t.Code, &t.Name, &t.Description, &t.Profile, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("querying team: %w", err)
	}

	return &t, nil
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ulticlub/roster-service/models"
)

var (
	ErrPlayerNotFound       = errors.New("player not found")
	ErrPlayerEmailConflict  = errors.New("player email conflict")
	ErrPlayerJerseyConflict = errors.New("player jersey number conflict")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Player, error)
	List(ctx context.Context, filter models.PlayerFilter) ([]*models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	UpdatePhotoKey(ctx context.Context, id uuid.UUID, photoKey *string) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, activeOnly bool) (int, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerColumns = `id, name, email, student_id, gender, position, experience, jersey_number,
	graduation_year, is_active, photo_key, created_by, updated_by, created_at, updated_at`

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	if player.ID == uuid.Nil {
		player.ID = uuid.New()
	}
	query := `
		INSERT INTO players (id, name, email, student_id, gender, position, experience,
			jersey_number, graduation_year, is_active, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		player.ID,
		player.Name,
		player.Email,
		player.StudentID,
		player.Gender,
		player.Position,
		player.Experience,
		player.JerseyNumber,
		player.GraduationYear,
		player.IsActive,
		player.CreatedBy,
		player.UpdatedBy,
	).Scan(&player.CreatedAt, &player.UpdatedAt)
	if err != nil {
		return r.handlePlayerError(err, "create")
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	player, err := scanPlayer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %s: %w", id, err)
	}
	return player, nil
}

func (r *postgresPlayerRepository) List(ctx context.Context, filter models.PlayerFilter) ([]*models.Player, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + playerColumns + ` FROM players`)
	if filter.ActiveOnly {
		queryBuilder.WriteString(` WHERE is_active`)
	}
	queryBuilder.WriteString(` ORDER BY name ASC, id ASC`)

	rows, err := r.db.QueryContext(ctx, queryBuilder.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating player rows: %w", err)
	}
	return players, nil
}

func (r *postgresPlayerRepository) Update(ctx context.Context, player *models.Player) error {
	query := `
		UPDATE players
		SET name = $1, email = $2, student_id = $3, gender = $4, position = $5, experience = $6,
			jersey_number = $7, graduation_year = $8, is_active = $9, updated_by = $10, updated_at = clock_timestamp()
		WHERE id = $11
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		player.Name,
		player.Email,
		player.StudentID,
		player.Gender,
		player.Position,
		player.Experience,
		player.JerseyNumber,
		player.GraduationYear,
		player.IsActive,
		player.UpdatedBy,
		player.ID,
	).Scan(&player.CreatedAt, &player.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPlayerNotFound
		}
		return r.handlePlayerError(err, "update")
	}
	return nil
}

func (r *postgresPlayerRepository) UpdatePhotoKey(ctx context.Context, id uuid.UUID, photoKey *string) error {
	query := `UPDATE players SET photo_key = $1, updated_at = clock_timestamp() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, photoKey, id)
	if err != nil {
		return fmt.Errorf("failed to update photo key for player %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

// Delete removes the player; roster_entries rows go with it through ON DELETE CASCADE.
func (r *postgresPlayerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete player %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Count(ctx context.Context, activeOnly bool) (int, error) {
	query := `SELECT COUNT(*) FROM players`
	if activeOnly {
		query += ` WHERE is_active`
	}
	var count int
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}

func (r *postgresPlayerRepository) handlePlayerError(err error, op string) error {
	if code, constraint, ok := constraintViolation(err); ok && code == pqUniqueViolation {
		switch constraint {
		case "players_email_key":
			return ErrPlayerEmailConflict
		case "players_active_jersey_key":
			return ErrPlayerJerseyConflict
		}
	}
	return fmt.Errorf("failed to %s player: %w", op, err)
}

func scanPlayer(row rowScanner) (*models.Player, error) {
	var (
		p              models.Player
		studentID      sql.NullString
		jerseyNumber   sql.NullInt64
		graduationYear sql.NullInt64
		photoKey       sql.NullString
		createdBy      sql.NullString
		updatedBy      sql.NullString
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Email, &studentID, &p.Gender, &p.Position, &p.Experience,
		&jerseyNumber, &graduationYear, &p.IsActive, &photoKey, &createdBy, &updatedBy,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.StudentID = nullStringPtr(studentID)
	p.JerseyNumber = nullIntPtr(jerseyNumber)
	p.GraduationYear = nullIntPtr(graduationYear)
	p.PhotoKey = nullStringPtr(photoKey)
	p.CreatedBy = nullStringPtr(createdBy)
	p.UpdatedBy = nullStringPtr(updatedBy)
	return &p, nil
}

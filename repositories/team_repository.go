package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ulticlub/roster-service/models"
)

var (
	ErrTeamNotFound          = errors.New("team not found")
	ErrTeamNameConflict      = errors.New("team name conflict within tournament")
	ErrTeamTournamentInvalid = errors.New("team tournament invalid")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error)
	ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]*models.Team, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	query := `INSERT INTO teams (id, tournament_id, name) VALUES ($1, $2, $3) RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, team.ID, team.TournamentID, team.Name).Scan(&team.CreatedAt)
	if err != nil {
		if code, constraint, ok := constraintViolation(err); ok {
			switch {
			case code == pqUniqueViolation && constraint == "teams_tournament_id_name_key":
				return ErrTeamNameConflict
			case code == pqForeignKeyViolation && constraint == "teams_tournament_id_fkey":
				return ErrTeamTournamentInvalid
			}
		}
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	var team models.Team
	query := `SELECT id, tournament_id, name, created_at FROM teams WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&team.ID, &team.TournamentID, &team.Name, &team.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %s: %w", id, err)
	}
	return &team, nil
}

func (r *postgresTeamRepository) ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]*models.Team, error) {
	query := `SELECT id, tournament_id, name, created_at FROM teams WHERE tournament_id = $1 ORDER BY name ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		var team models.Team
		if err := rows.Scan(&team.ID, &team.TournamentID, &team.Name, &team.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}
		teams = append(teams, &team)
	}
	return teams, rows.Err()
}

// Delete removes the team; roster entries keep existing with team_id set to NULL.
func (r *postgresTeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete team %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

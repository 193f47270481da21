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
	ErrTournamentNotFound = errors.New("tournament not found")
)

type TournamentRepository interface {
	Create(ctx context.Context, t *models.Tournament) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tournament, error)
	List(ctx context.Context, filter models.TournamentFilter) ([]*models.Tournament, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

const tournamentColumns = `id, name, year, type, location, start_date, end_date, created_at`

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	query := `
		INSERT INTO tournaments (id, name, year, type, location, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query,
		t.ID, t.Name, t.Year, t.Type, t.Location, t.StartDate, t.EndDate,
	).Scan(&t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`
	t, err := scanTournament(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %s: %w", id, err)
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context, filter models.TournamentFilter) ([]*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments`
	args := []interface{}{}
	if filter.Year != nil {
		query += ` WHERE year = $1`
		args = append(args, *filter.Year)
	}
	query += ` ORDER BY start_date DESC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", err)
		}
		tournaments = append(tournaments, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tournament rows: %w", err)
	}
	return tournaments, nil
}

// Delete removes the tournament together with its teams and roster entries (ON DELETE CASCADE).
func (r *postgresTournamentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tournament %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tournaments`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tournaments: %w", err)
	}
	return count, nil
}

func scanTournament(row rowScanner) (*models.Tournament, error) {
	var (
		t        models.Tournament
		location sql.NullString
	)
	if err := row.Scan(&t.ID, &t.Name, &t.Year, &t.Type, &location, &t.StartDate, &t.EndDate, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Location = nullStringPtr(location)
	return &t, nil
}

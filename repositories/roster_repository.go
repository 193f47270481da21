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
	ErrRosterEntryNotFound          = errors.New("roster entry not found")
	ErrRosterEntryConflict          = errors.New("roster entry conflict: player already assigned to this tournament")
	ErrRosterEntryPlayerInvalid     = errors.New("roster entry player invalid")
	ErrRosterEntryTournamentInvalid = errors.New("roster entry tournament invalid")
	ErrRosterEntryTeamInvalid       = errors.New("roster entry team invalid")
)

// RosterRepository stores player-to-tournament assignments. Implementations must reject a
// second entry for the same (player, tournament) pair atomically with ErrRosterEntryConflict.
type RosterRepository interface {
	Create(ctx context.Context, entry *models.RosterEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.RosterEntry, error)
	ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]*models.RosterEntry, error)
	ListPlayerIDsByTournament(ctx context.Context, tournamentID uuid.UUID) ([]uuid.UUID, error)
	Update(ctx context.Context, entry *models.RosterEntry) error
	Delete(ctx context.Context, id uuid.UUID) (*models.RosterEntry, error)
	Count(ctx context.Context) (int, error)
}

type postgresRosterRepository struct {
	db *sql.DB
}

func NewPostgresRosterRepository(db *sql.DB) RosterRepository {
	return &postgresRosterRepository{db: db}
}

const rosterEntryColumns = `id, player_id, tournament_id, team_id, role, position, notes, created_by, created_at, updated_at`

// Joined reads use LEFT JOINs so an entry whose player, tournament or team row is
// missing still comes back, with the nested object left nil.
const rosterJoinedSelect = `
	SELECT re.id, re.player_id, re.tournament_id, re.team_id, re.role, re.position, re.notes,
		re.created_by, re.created_at, re.updated_at,
		p.id, p.name, p.email, p.student_id, p.gender, p.position, p.experience, p.jersey_number,
		p.graduation_year, p.is_active, p.photo_key, p.created_at, p.updated_at,
		t.id, t.name, t.year, t.type, t.location, t.start_date, t.end_date, t.created_at,
		tm.id, tm.tournament_id, tm.name, tm.created_at
	FROM roster_entries re
	LEFT JOIN players p ON p.id = re.player_id
	LEFT JOIN tournaments t ON t.id = re.tournament_id
	LEFT JOIN teams tm ON tm.id = re.team_id`

func (r *postgresRosterRepository) Create(ctx context.Context, entry *models.RosterEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	query := `
		INSERT INTO roster_entries (id, player_id, tournament_id, team_id, role, position, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		entry.ID,
		entry.PlayerID,
		entry.TournamentID,
		entry.TeamID,
		entry.Role,
		entry.Position,
		entry.Notes,
		entry.CreatedBy,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return r.handleRosterError(err, "create")
	}
	return nil
}

func (r *postgresRosterRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.RosterEntry, error) {
	entry, err := scanJoinedRosterEntry(r.db.QueryRowContext(ctx, rosterJoinedSelect+` WHERE re.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRosterEntryNotFound
		}
		return nil, fmt.Errorf("failed to get roster entry %s: %w", id, err)
	}
	return entry, nil
}

// ListByTournament returns entries in join order (created_at, then id).
func (r *postgresRosterRepository) ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]*models.RosterEntry, error) {
	query := rosterJoinedSelect + ` WHERE re.tournament_id = $1 ORDER BY re.created_at ASC, re.id ASC`
	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster for tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	entries := make([]*models.RosterEntry, 0)
	for rows.Next() {
		entry, err := scanJoinedRosterEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan roster entry with joins: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster rows: %w", err)
	}
	return entries, nil
}

func (r *postgresRosterRepository) ListPlayerIDsByTournament(ctx context.Context, tournamentID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT player_id FROM roster_entries WHERE tournament_id = $1`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rostered players for tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan rostered player id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postgresRosterRepository) Update(ctx context.Context, entry *models.RosterEntry) error {
	query := `
		UPDATE roster_entries
		SET team_id = $1, role = $2, position = $3, notes = $4, updated_at = clock_timestamp()
		WHERE id = $5
		RETURNING player_id, tournament_id, created_by, created_at, updated_at`
	var createdBy sql.NullString
	err := r.db.QueryRowContext(ctx, query, entry.TeamID, entry.Role, entry.Position, entry.Notes, entry.ID).
		Scan(&entry.PlayerID, &entry.TournamentID, &createdBy, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRosterEntryNotFound
		}
		return r.handleRosterError(err, "update")
	}
	entry.CreatedBy = nullStringPtr(createdBy)
	return nil
}

// Delete removes the entry and returns the row as it was stored.
func (r *postgresRosterRepository) Delete(ctx context.Context, id uuid.UUID) (*models.RosterEntry, error) {
	query := `DELETE FROM roster_entries WHERE id = $1 RETURNING ` + rosterEntryColumns
	entry, err := scanRosterEntry(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRosterEntryNotFound
		}
		return nil, fmt.Errorf("failed to delete roster entry %s: %w", id, err)
	}
	return entry, nil
}

func (r *postgresRosterRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM roster_entries`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count roster entries: %w", err)
	}
	return count, nil
}

func (r *postgresRosterRepository) handleRosterError(err error, op string) error {
	if code, constraint, ok := constraintViolation(err); ok {
		switch code {
		case pqUniqueViolation:
			if constraint == "roster_entries_player_id_tournament_id_key" {
				return ErrRosterEntryConflict
			}
		case pqForeignKeyViolation:
			switch constraint {
			case "roster_entries_player_id_fkey":
				return ErrRosterEntryPlayerInvalid
			case "roster_entries_tournament_id_fkey":
				return ErrRosterEntryTournamentInvalid
			case "roster_entries_team_id_fkey":
				return ErrRosterEntryTeamInvalid
			}
		}
	}
	return fmt.Errorf("failed to %s roster entry: %w", op, err)
}

func scanRosterEntry(row rowScanner) (*models.RosterEntry, error) {
	var (
		e                             models.RosterEntry
		teamID                        uuid.NullUUID
		role, position, notes, author sql.NullString
	)
	err := row.Scan(&e.ID, &e.PlayerID, &e.TournamentID, &teamID, &role, &position, &notes, &author, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	applyRosterNullables(&e, teamID, role, position, notes, author)
	return &e, nil
}

func scanJoinedRosterEntry(row rowScanner) (*models.RosterEntry, error) {
	var (
		e                             models.RosterEntry
		teamID                        uuid.NullUUID
		role, position, notes, author sql.NullString

		pID                                uuid.NullUUID
		pName, pEmail, pStudentID, pGender sql.NullString
		pPosition, pExperience, pPhotoKey  sql.NullString
		pJersey, pGradYear                 sql.NullInt64
		pActive                            sql.NullBool
		pCreatedAt, pUpdatedAt             sql.NullTime
		tID                                uuid.NullUUID
		tName, tType, tLocation            sql.NullString
		tYear                              sql.NullInt64
		tStart, tEnd, tCreatedAt           sql.NullTime
		tmID, tmTournamentID               uuid.NullUUID
		tmName                             sql.NullString
		tmCreatedAt                        sql.NullTime
	)
	err := row.Scan(
		&e.ID, &e.PlayerID, &e.TournamentID, &teamID, &role, &position, &notes, &author, &e.CreatedAt, &e.UpdatedAt,
		&pID, &pName, &pEmail, &pStudentID, &pGender, &pPosition, &pExperience, &pJersey,
		&pGradYear, &pActive, &pPhotoKey, &pCreatedAt, &pUpdatedAt,
		&tID, &tName, &tYear, &tType, &tLocation, &tStart, &tEnd, &tCreatedAt,
		&tmID, &tmTournamentID, &tmName, &tmCreatedAt,
	)
	if err != nil {
		return nil, err
	}
	applyRosterNullables(&e, teamID, role, position, notes, author)

	if pID.Valid {
		e.Player = &models.Player{
			ID:             pID.UUID,
			Name:           pName.String,
			Email:          pEmail.String,
			StudentID:      nullStringPtr(pStudentID),
			Gender:         models.Gender(pGender.String),
			Position:       models.PlayerPosition(pPosition.String),
			Experience:     models.Experience(pExperience.String),
			JerseyNumber:   nullIntPtr(pJersey),
			GraduationYear: nullIntPtr(pGradYear),
			IsActive:       pActive.Bool,
			PhotoKey:       nullStringPtr(pPhotoKey),
			CreatedAt:      pCreatedAt.Time,
			UpdatedAt:      pUpdatedAt.Time,
		}
	}
	if tID.Valid {
		e.Tournament = &models.Tournament{
			ID:        tID.UUID,
			Name:      tName.String,
			Year:      int(tYear.Int64),
			Type:      tType.String,
			Location:  nullStringPtr(tLocation),
			StartDate: tStart.Time,
			EndDate:   tEnd.Time,
			CreatedAt: tCreatedAt.Time,
		}
	}
	if tmID.Valid {
		e.Team = &models.Team{
			ID:           tmID.UUID,
			TournamentID: tmTournamentID.UUID,
			Name:         tmName.String,
			CreatedAt:    tmCreatedAt.Time,
		}
	}
	return &e, nil
}

func applyRosterNullables(e *models.RosterEntry, teamID uuid.NullUUID, role, position, notes, author sql.NullString) {
	if teamID.Valid {
		id := teamID.UUID
		e.TeamID = &id
	}
	e.Role = nullStringPtr(role)
	e.Position = nullStringPtr(position)
	e.Notes = nullStringPtr(notes)
	e.CreatedBy = nullStringPtr(author)
}

package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/ulticlub/roster-service/models"
	"github.com/ulticlub/roster-service/repositories"
)

const (
	minTournamentYear = 1900
	maxTournamentYear = 2200
)

type TournamentService interface {
	CreateTournament(ctx context.Context, caller models.Caller, input TournamentInput) (*models.Tournament, error)
	GetTournament(ctx context.Context, id string) (*models.Tournament, error)
	ListTournaments(ctx context.Context, filter models.TournamentFilter) ([]*models.Tournament, error)
	DeleteTournament(ctx context.Context, caller models.Caller, id string) error

	CreateTeam(ctx context.Context, caller models.Caller, tournamentID string, input TeamInput) (*models.Team, error)
	ListTeams(ctx context.Context, tournamentID string) ([]*models.Team, error)
	DeleteTeam(ctx context.Context, caller models.Caller, teamID string) error
}

type TournamentInput struct {
	Name      string    `json:"name"`
	Year      int       `json:"year"`
	Type      string    `json:"type,omitempty"`
	Location  string    `json:"location,omitempty"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

func (in TournamentInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Year, validation.Required, validation.Min(minTournamentYear), validation.Max(maxTournamentYear)),
		validation.Field(&in.Type, validation.Length(0, 50)),
		validation.Field(&in.Location, validation.Length(0, 200)),
		validation.Field(&in.StartDate, validation.Required),
		validation.Field(&in.EndDate, validation.Required),
	)
	if err != nil {
		return asValidationError(err)
	}
	if in.EndDate.Before(in.StartDate) {
		return newValidationError("endDate", "must not be before startDate")
	}
	return nil
}

type TeamInput struct {
	Name string `json:"name"`
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	logger         *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	logger *slog.Logger,
) TournamentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		logger:         logger,
	}
}

func (s *tournamentService) CreateTournament(ctx context.Context, caller models.Caller, input TournamentInput) (*models.Tournament, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	input.Name = strings.TrimSpace(input.Name)
	input.Type = strings.TrimSpace(input.Type)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	t := &models.Tournament{
		Name:      input.Name,
		Year:      input.Year,
		Type:      input.Type,
		Location:  optionalString(input.Location),
		StartDate: input.StartDate.UTC(),
		EndDate:   input.EndDate.UTC(),
	}
	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		return nil, storageError(ctx, s.logger, "create tournament", err)
	}
	s.logger.InfoContext(ctx, "tournament created", slog.String("tournament_id", t.ID.String()), slog.String("name", t.Name))
	return t, nil
}

func (s *tournamentService) GetTournament(ctx context.Context, id string) (*models.Tournament, error) {
	tournamentID, err := parseID("id", id)
	if err != nil {
		return nil, err
	}
	t, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, storageError(ctx, s.logger, "get tournament", err, slog.String("tournament_id", id))
	}
	return t, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context, filter models.TournamentFilter) ([]*models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, filter)
	if err != nil {
		return nil, storageError(ctx, s.logger, "list tournaments", err)
	}
	return tournaments, nil
}

// DeleteTournament removes the tournament together with its teams and roster entries.
func (s *tournamentService) DeleteTournament(ctx context.Context, caller models.Caller, id string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	tournamentID, err := parseID("id", id)
	if err != nil {
		return err
	}
	if err := s.tournamentRepo.Delete(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return storageError(ctx, s.logger, "delete tournament", err, slog.String("tournament_id", id))
	}
	s.logger.InfoContext(ctx, "tournament deleted", slog.String("tournament_id", id))
	return nil
}

func (s *tournamentService) CreateTeam(ctx context.Context, caller models.Caller, tournamentID string, input TeamInput) (*models.Team, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	tID, err := parseID("tournamentId", tournamentID)
	if err != nil {
		return nil, err
	}
	input.Name = strings.TrimSpace(input.Name)
	err = validation.ValidateStruct(&input,
		validation.Field(&input.Name, validation.Required, validation.Length(1, 100)),
	)
	if err != nil {
		return nil, asValidationError(err)
	}

	team := &models.Team{TournamentID: tID, Name: input.Name}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		case errors.Is(err, repositories.ErrTeamTournamentInvalid):
			return nil, ErrTournamentNotFound
		default:
			return nil, storageError(ctx, s.logger, "create team", err, slog.String("tournament_id", tournamentID))
		}
	}
	return team, nil
}

func (s *tournamentService) ListTeams(ctx context.Context, tournamentID string) ([]*models.Team, error) {
	tID, err := parseID("tournamentId", tournamentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.tournamentRepo.GetByID(ctx, tID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, storageError(ctx, s.logger, "get tournament", err, slog.String("tournament_id", tournamentID))
	}
	teams, err := s.teamRepo.ListByTournament(ctx, tID)
	if err != nil {
		return nil, storageError(ctx, s.logger, "list teams", err, slog.String("tournament_id", tournamentID))
	}
	return teams, nil
}

// DeleteTeam removes the team. Roster entries that pointed at it stay, without a team.
func (s *tournamentService) DeleteTeam(ctx context.Context, caller models.Caller, teamID string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	id, err := parseID("id", teamID)
	if err != nil {
		return err
	}
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return storageError(ctx, s.logger, "delete team", err, slog.String("team_id", teamID))
	}
	return nil
}

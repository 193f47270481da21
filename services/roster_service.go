package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"github.com/ulticlub/roster-service/metrics"
	"github.com/ulticlub/roster-service/models"
	"github.com/ulticlub/roster-service/realtime"
	"github.com/ulticlub/roster-service/repositories"
	"golang.org/x/sync/errgroup"
)

const (
	EventRosterEntryAdded   = "ROSTER_ENTRY_ADDED"
	EventRosterEntryUpdated = "ROSTER_ENTRY_UPDATED"
	EventRosterEntryRemoved = "ROSTER_ENTRY_REMOVED"
)

const (
	maxRoleLength  = 50
	maxNotesLength = 500
)

var rosterPositions = []interface{}{
	string(models.PositionHandler),
	string(models.PositionCutter),
	string(models.PositionUtility),
	string(models.PositionAny),
}

// RosterNotifier receives roster change events for live subscribers.
type RosterNotifier interface {
	BroadcastToRoom(room string, message interface{})
}

type RosterService interface {
	ListRoster(ctx context.Context, tournamentID string) ([]*models.RosterEntry, error)
	AvailablePlayers(ctx context.Context, tournamentID string) ([]*models.Player, error)
	Stats(ctx context.Context, tournamentID string) (models.RosterStats, error)
	AddAssignment(ctx context.Context, caller models.Caller, input AddAssignmentInput) (*models.RosterEntry, error)
	UpdateAssignment(ctx context.Context, caller models.Caller, entryID string, input UpdateAssignmentInput) (*models.RosterEntry, error)
	RemoveAssignment(ctx context.Context, caller models.Caller, entryID string) error
}

type AddAssignmentInput struct {
	TournamentID string `json:"tournamentId"`
	PlayerID     string `json:"playerId"`
	TeamID       string `json:"teamId,omitempty"`
	Role         string `json:"role,omitempty"`
	Position     string `json:"position,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

func (in *AddAssignmentInput) normalize() {
	in.TournamentID = strings.TrimSpace(in.TournamentID)
	in.PlayerID = strings.TrimSpace(in.PlayerID)
	in.TeamID = strings.TrimSpace(in.TeamID)
	in.Role = strings.TrimSpace(in.Role)
	in.Position = strings.ToLower(strings.TrimSpace(in.Position))
	in.Notes = strings.TrimSpace(in.Notes)
}

func (in AddAssignmentInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.TournamentID, validation.Required, validation.By(isUUID)),
		validation.Field(&in.PlayerID, validation.Required, validation.By(isUUID)),
		validation.Field(&in.TeamID, validation.By(isUUID)),
		validation.Field(&in.Role, validation.Length(0, maxRoleLength)),
		validation.Field(&in.Position, validation.In(rosterPositions...)),
		validation.Field(&in.Notes, validation.Length(0, maxNotesLength)),
	)
}

// UpdateAssignmentInput changes the mutable parts of an entry. A nil field is left as is;
// an empty string clears it.
type UpdateAssignmentInput struct {
	TeamID   *string `json:"teamId,omitempty"`
	Role     *string `json:"role,omitempty"`
	Position *string `json:"position,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

func (in *UpdateAssignmentInput) normalize() {
	trim := func(p *string, lower bool) {
		if p == nil {
			return
		}
		*p = strings.TrimSpace(*p)
		if lower {
			*p = strings.ToLower(*p)
		}
	}
	trim(in.TeamID, false)
	trim(in.Role, false)
	trim(in.Position, true)
	trim(in.Notes, false)
}

func (in UpdateAssignmentInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.TeamID, validation.By(isUUID)),
		validation.Field(&in.Role, validation.Length(0, maxRoleLength)),
		validation.Field(&in.Position, validation.In(rosterPositions...)),
		validation.Field(&in.Notes, validation.Length(0, maxNotesLength)),
	)
}

func (in UpdateAssignmentInput) empty() bool {
	return in.TeamID == nil && in.Role == nil && in.Position == nil && in.Notes == nil
}

type rosterService struct {
	rosterRepo     repositories.RosterRepository
	playerRepo     repositories.PlayerRepository
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	notifier       RosterNotifier
	metrics        metrics.RosterMetrics
	logger         *slog.Logger
}

func NewRosterService(
	rosterRepo repositories.RosterRepository,
	playerRepo repositories.PlayerRepository,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	notifier RosterNotifier,
	m metrics.RosterMetrics,
	logger *slog.Logger,
) RosterService {
	if m == nil {
		m = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &rosterService{
		rosterRepo:     rosterRepo,
		playerRepo:     playerRepo,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		notifier:       notifier,
		metrics:        m,
		logger:         logger,
	}
}

func (s *rosterService) observe(op string, start time.Time, err error) {
	s.metrics.RecordOperation(op, outcomeOf(err))
	s.metrics.RecordDuration(op, time.Since(start))
}

// ListRoster returns the tournament's entries in join order with references resolved.
func (s *rosterService) ListRoster(ctx context.Context, tournamentID string) (entries []*models.RosterEntry, err error) {
	defer func(start time.Time) { s.observe("list", start, err) }(time.Now())

	id, err := parseID("tournamentId", tournamentID)
	if err != nil {
		return nil, err
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.getTournament(gCtx, id)
		return err
	})
	g.Go(func() error {
		list, err := s.rosterRepo.ListByTournament(gCtx, id)
		if err != nil {
			return storageError(gCtx, s.logger, "list roster", err, slog.String("tournament_id", id.String()))
		}
		entries = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

// AvailablePlayers returns every directory player that has no entry on the tournament's roster.
func (s *rosterService) AvailablePlayers(ctx context.Context, tournamentID string) (players []*models.Player, err error) {
	defer func(start time.Time) { s.observe("available", start, err) }(time.Now())

	id, err := parseID("tournamentId", tournamentID)
	if err != nil {
		return nil, err
	}

	var (
		all      []*models.Player
		rostered []uuid.UUID
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.getTournament(gCtx, id)
		return err
	})
	g.Go(func() error {
		list, err := s.playerRepo.List(gCtx, models.PlayerFilter{})
		if err != nil {
			return storageError(gCtx, s.logger, "list players", err)
		}
		all = list
		return nil
	})
	g.Go(func() error {
		ids, err := s.rosterRepo.ListPlayerIDsByTournament(gCtx, id)
		if err != nil {
			return storageError(gCtx, s.logger, "list rostered players", err, slog.String("tournament_id", id.String()))
		}
		rostered = ids
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	taken := make(map[uuid.UUID]struct{}, len(rostered))
	for _, pid := range rostered {
		taken[pid] = struct{}{}
	}
	players = make([]*models.Player, 0, len(all))
	for _, p := range all {
		if _, ok := taken[p.ID]; !ok {
			players = append(players, p)
		}
	}
	return players, nil
}

func (s *rosterService) Stats(ctx context.Context, tournamentID string) (models.RosterStats, error) {
	entries, err := s.ListRoster(ctx, tournamentID)
	if err != nil {
		return models.RosterStats{}, err
	}
	return ComputeRosterStats(entries), nil
}

func (s *rosterService) AddAssignment(ctx context.Context, caller models.Caller, input AddAssignmentInput) (entry *models.RosterEntry, err error) {
	defer func(start time.Time) { s.observe("add", start, err) }(time.Now())

	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	input.normalize()
	if err := asValidationError(input.Validate()); err != nil {
		return nil, err
	}

	tournamentID := uuid.MustParse(input.TournamentID)
	playerID := uuid.MustParse(input.PlayerID)
	var teamID *uuid.UUID
	if input.TeamID != "" {
		id := uuid.MustParse(input.TeamID)
		teamID = &id
	}

	var (
		player     *models.Player
		tournament *models.Tournament
		team       *models.Team
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.getPlayer(gCtx, playerID)
		player = p
		return err
	})
	g.Go(func() error {
		t, err := s.getTournament(gCtx, tournamentID)
		tournament = t
		return err
	})
	if teamID != nil {
		g.Go(func() error {
			t, err := s.getTeam(gCtx, *teamID)
			team = t
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if team != nil && team.TournamentID != tournamentID {
		return nil, newValidationError("teamId", "team does not belong to this tournament")
	}

	entry = &models.RosterEntry{
		PlayerID:     playerID,
		TournamentID: tournamentID,
		TeamID:       teamID,
		Role:         optionalString(input.Role),
		Position:     optionalString(input.Position),
		Notes:        optionalString(input.Notes),
		CreatedBy:    caller.Actor(),
	}
	if err := s.rosterRepo.Create(ctx, entry); err != nil {
		switch {
		case errors.Is(err, repositories.ErrRosterEntryConflict):
			s.logger.InfoContext(ctx, "duplicate roster assignment rejected",
				slog.String("player_id", playerID.String()),
				slog.String("tournament_id", tournamentID.String()))
			return nil, ErrDuplicateAssignment
		case errors.Is(err, repositories.ErrRosterEntryPlayerInvalid):
			return nil, ErrPlayerNotFound
		case errors.Is(err, repositories.ErrRosterEntryTournamentInvalid):
			return nil, ErrTournamentNotFound
		case errors.Is(err, repositories.ErrRosterEntryTeamInvalid):
			return nil, ErrTeamNotFound
		default:
			return nil, storageError(ctx, s.logger, "create roster entry", err,
				slog.String("player_id", playerID.String()),
				slog.String("tournament_id", tournamentID.String()))
		}
	}
	entry.Player, entry.Tournament, entry.Team = player, tournament, team

	s.logger.InfoContext(ctx, "player added to roster",
		slog.String("roster_entry_id", entry.ID.String()),
		slog.String("player_id", playerID.String()),
		slog.String("tournament_id", tournamentID.String()),
		slog.String("role", derefString(entry.Role)))
	s.publish(tournamentID, EventRosterEntryAdded, entry.View())
	return entry, nil
}

func (s *rosterService) UpdateAssignment(ctx context.Context, caller models.Caller, entryID string, input UpdateAssignmentInput) (entry *models.RosterEntry, err error) {
	defer func(start time.Time) { s.observe("update", start, err) }(time.Now())

	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	id, err := parseID("id", entryID)
	if err != nil {
		return nil, err
	}
	input.normalize()
	if err := asValidationError(input.Validate()); err != nil {
		return nil, err
	}
	if input.empty() {
		return nil, newValidationError("input", "no fields provided for update")
	}

	existing, err := s.rosterRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRosterEntryNotFound) {
			return nil, ErrRosterEntryNotFound
		}
		return nil, storageError(ctx, s.logger, "get roster entry", err, slog.String("roster_entry_id", id.String()))
	}

	if input.TeamID != nil {
		existing.TeamID = nil
		if *input.TeamID != "" {
			teamID := uuid.MustParse(*input.TeamID)
			team, err := s.getTeam(ctx, teamID)
			if err != nil {
				return nil, err
			}
			if team.TournamentID != existing.TournamentID {
				return nil, newValidationError("teamId", "team does not belong to this tournament")
			}
			existing.TeamID = &teamID
		}
	}
	if input.Role != nil {
		existing.Role = optionalString(*input.Role)
	}
	if input.Position != nil {
		existing.Position = optionalString(*input.Position)
	}
	if input.Notes != nil {
		existing.Notes = optionalString(*input.Notes)
	}

	if err := s.rosterRepo.Update(ctx, existing); err != nil {
		switch {
		case errors.Is(err, repositories.ErrRosterEntryNotFound):
			return nil, ErrRosterEntryNotFound
		case errors.Is(err, repositories.ErrRosterEntryTeamInvalid):
			return nil, ErrTeamNotFound
		default:
			return nil, storageError(ctx, s.logger, "update roster entry", err, slog.String("roster_entry_id", id.String()))
		}
	}

	entry, err = s.rosterRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRosterEntryNotFound) {
			return nil, ErrRosterEntryNotFound
		}
		return nil, storageError(ctx, s.logger, "get roster entry", err, slog.String("roster_entry_id", id.String()))
	}

	s.logger.InfoContext(ctx, "roster entry updated", slog.String("roster_entry_id", id.String()))
	s.publish(entry.TournamentID, EventRosterEntryUpdated, entry.View())
	return entry, nil
}

// RemoveAssignment deletes the entry. A second call for the same id reports ErrRosterEntryNotFound.
func (s *rosterService) RemoveAssignment(ctx context.Context, caller models.Caller, entryID string) (err error) {
	defer func(start time.Time) { s.observe("remove", start, err) }(time.Now())

	if err := requireAdmin(caller); err != nil {
		return err
	}
	id, err := parseID("id", entryID)
	if err != nil {
		return err
	}

	removed, err := s.rosterRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRosterEntryNotFound) {
			return ErrRosterEntryNotFound
		}
		return storageError(ctx, s.logger, "delete roster entry", err, slog.String("roster_entry_id", id.String()))
	}

	s.logger.InfoContext(ctx, "player removed from roster",
		slog.String("roster_entry_id", id.String()),
		slog.String("player_id", removed.PlayerID.String()),
		slog.String("tournament_id", removed.TournamentID.String()))
	s.publish(removed.TournamentID, EventRosterEntryRemoved, map[string]interface{}{
		"id":           removed.ID,
		"playerId":     removed.PlayerID,
		"tournamentId": removed.TournamentID,
	})
	return nil
}

func (s *rosterService) publish(tournamentID uuid.UUID, eventType string, payload interface{}) {
	if s.notifier == nil {
		return
	}
	room := realtime.RoomForTournament(tournamentID.String())
	s.notifier.BroadcastToRoom(room, realtime.Message{
		Type:    eventType,
		RoomID:  room,
		Payload: payload,
	})
}

func (s *rosterService) getPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, storageError(ctx, s.logger, "get player", err, slog.String("player_id", id.String()))
	}
	return player, nil
}

func (s *rosterService) getTournament(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, storageError(ctx, s.logger, "get tournament", err, slog.String("tournament_id", id.String()))
	}
	return tournament, nil
}

func (s *rosterService) getTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, storageError(ctx, s.logger, "get team", err, slog.String("team_id", id.String()))
	}
	return team, nil
}

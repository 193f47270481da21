package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ulticlub/roster-service/models"
)

// MemoryStore keeps players, tournaments, teams and roster entries in process memory.
// It mirrors the Postgres schema rules: unique (player, tournament) pairs, unique player
// email, unique jersey number among active players, cascade on player/tournament delete
// and team_id cleared on team delete.
type MemoryStore struct {
	mu          sync.RWMutex
	players     map[uuid.UUID]*models.Player
	tournaments map[uuid.UUID]*models.Tournament
	teams       map[uuid.UUID]*models.Team
	roster      map[uuid.UUID]*models.RosterEntry

	lastTime time.Time
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		players:     make(map[uuid.UUID]*models.Player),
		tournaments: make(map[uuid.UUID]*models.Tournament),
		teams:       make(map[uuid.UUID]*models.Team),
		roster:      make(map[uuid.UUID]*models.RosterEntry),
		now:         time.Now,
	}
}

func (s *MemoryStore) Players() PlayerRepository         { return memoryPlayerRepository{s} }
func (s *MemoryStore) Tournaments() TournamentRepository { return memoryTournamentRepository{s} }
func (s *MemoryStore) Teams() TeamRepository             { return memoryTeamRepository{s} }
func (s *MemoryStore) Roster() RosterRepository          { return memoryRosterRepository{s} }

// tick returns a strictly increasing timestamp so join order survives coarse clocks.
// Callers hold s.mu for writing.
func (s *MemoryStore) tick() time.Time {
	t := s.now().UTC()
	if !t.After(s.lastTime) {
		t = s.lastTime.Add(time.Microsecond)
	}
	s.lastTime = t
	return t
}

func copyPlayer(p *models.Player) *models.Player {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func copyTournament(t *models.Tournament) *models.Tournament {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func copyTeam(t *models.Team) *models.Team {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// --- players ---

type memoryPlayerRepository struct{ s *MemoryStore }

func (r memoryPlayerRepository) checkUnique(p *models.Player) error {
	for id, other := range r.s.players {
		if id == p.ID {
			continue
		}
		if strings.EqualFold(other.Email, p.Email) {
			return ErrPlayerEmailConflict
		}
		if p.IsActive && other.IsActive && p.JerseyNumber != nil && other.JerseyNumber != nil &&
			*p.JerseyNumber == *other.JerseyNumber {
			return ErrPlayerJerseyConflict
		}
	}
	return nil
}

func (r memoryPlayerRepository) Create(_ context.Context, player *models.Player) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if player.ID == uuid.Nil {
		player.ID = uuid.New()
	}
	if err := r.checkUnique(player); err != nil {
		return err
	}
	now := r.s.tick()
	player.CreatedAt, player.UpdatedAt = now, now
	r.s.players[player.ID] = copyPlayer(player)
	return nil
}

func (r memoryPlayerRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Player, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return copyPlayer(p), nil
}

func (r memoryPlayerRepository) List(_ context.Context, filter models.PlayerFilter) ([]*models.Player, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	players := make([]*models.Player, 0, len(r.s.players))
	for _, p := range r.s.players {
		if filter.ActiveOnly && !p.IsActive {
			continue
		}
		players = append(players, copyPlayer(p))
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].Name != players[j].Name {
			return players[i].Name < players[j].Name
		}
		return players[i].ID.String() < players[j].ID.String()
	})
	return players, nil
}

func (r memoryPlayerRepository) Update(_ context.Context, player *models.Player) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.players[player.ID]
	if !ok {
		return ErrPlayerNotFound
	}
	if err := r.checkUnique(player); err != nil {
		return err
	}
	player.CreatedAt = existing.CreatedAt
	player.CreatedBy = existing.CreatedBy
	player.PhotoKey = existing.PhotoKey
	player.UpdatedAt = r.s.tick()
	r.s.players[player.ID] = copyPlayer(player)
	return nil
}

func (r memoryPlayerRepository) UpdatePhotoKey(_ context.Context, id uuid.UUID, photoKey *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.players[id]
	if !ok {
		return ErrPlayerNotFound
	}
	p.PhotoKey = photoKey
	p.UpdatedAt = r.s.tick()
	return nil
}

func (r memoryPlayerRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.players[id]; !ok {
		return ErrPlayerNotFound
	}
	delete(r.s.players, id)
	for entryID, e := range r.s.roster {
		if e.PlayerID == id {
			delete(r.s.roster, entryID)
		}
	}
	return nil
}

func (r memoryPlayerRepository) Count(_ context.Context, activeOnly bool) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if !activeOnly {
		return len(r.s.players), nil
	}
	count := 0
	for _, p := range r.s.players {
		if p.IsActive {
			count++
		}
	}
	return count, nil
}

// --- tournaments ---

type memoryTournamentRepository struct{ s *MemoryStore }

func (r memoryTournamentRepository) Create(_ context.Context, t *models.Tournament) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = r.s.tick()
	r.s.tournaments[t.ID] = copyTournament(t)
	return nil
}

func (r memoryTournamentRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Tournament, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tournaments[id]
	if !ok {
		return nil, ErrTournamentNotFound
	}
	return copyTournament(t), nil
}

func (r memoryTournamentRepository) List(_ context.Context, filter models.TournamentFilter) ([]*models.Tournament, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	tournaments := make([]*models.Tournament, 0, len(r.s.tournaments))
	for _, t := range r.s.tournaments {
		if filter.Year != nil && t.Year != *filter.Year {
			continue
		}
		tournaments = append(tournaments, copyTournament(t))
	}
	sort.Slice(tournaments, func(i, j int) bool {
		if !tournaments[i].StartDate.Equal(tournaments[j].StartDate) {
			return tournaments[i].StartDate.After(tournaments[j].StartDate)
		}
		return tournaments[i].ID.String() < tournaments[j].ID.String()
	})
	return tournaments, nil
}

func (r memoryTournamentRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tournaments[id]; !ok {
		return ErrTournamentNotFound
	}
	delete(r.s.tournaments, id)
	for teamID, team := range r.s.teams {
		if team.TournamentID == id {
			delete(r.s.teams, teamID)
		}
	}
	for entryID, e := range r.s.roster {
		if e.TournamentID == id {
			delete(r.s.roster, entryID)
		}
	}
	return nil
}

func (r memoryTournamentRepository) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.tournaments), nil
}

// --- teams ---

type memoryTeamRepository struct{ s *MemoryStore }

func (r memoryTeamRepository) Create(_ context.Context, team *models.Team) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tournaments[team.TournamentID]; !ok {
		return ErrTeamTournamentInvalid
	}
	for _, other := range r.s.teams {
		if other.TournamentID == team.TournamentID && other.Name == team.Name {
			return ErrTeamNameConflict
		}
	}
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	team.CreatedAt = r.s.tick()
	r.s.teams[team.ID] = copyTeam(team)
	return nil
}

func (r memoryTeamRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Team, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	team, ok := r.s.teams[id]
	if !ok {
		return nil, ErrTeamNotFound
	}
	return copyTeam(team), nil
}

func (r memoryTeamRepository) ListByTournament(_ context.Context, tournamentID uuid.UUID) ([]*models.Team, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	teams := make([]*models.Team, 0)
	for _, team := range r.s.teams {
		if team.TournamentID == tournamentID {
			teams = append(teams, copyTeam(team))
		}
	}
	sort.Slice(teams, func(i, j int) bool {
		if teams[i].Name != teams[j].Name {
			return teams[i].Name < teams[j].Name
		}
		return teams[i].ID.String() < teams[j].ID.String()
	})
	return teams, nil
}

func (r memoryTeamRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.teams[id]; !ok {
		return ErrTeamNotFound
	}
	delete(r.s.teams, id)
	for _, e := range r.s.roster {
		if e.TeamID != nil && *e.TeamID == id {
			e.TeamID = nil
		}
	}
	return nil
}

// --- roster ---

type memoryRosterRepository struct{ s *MemoryStore }

// Create performs the duplicate check and the insert under one write lock.
func (r memoryRosterRepository) Create(_ context.Context, entry *models.RosterEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.players[entry.PlayerID]; !ok {
		return ErrRosterEntryPlayerInvalid
	}
	if _, ok := r.s.tournaments[entry.TournamentID]; !ok {
		return ErrRosterEntryTournamentInvalid
	}
	if entry.TeamID != nil {
		if _, ok := r.s.teams[*entry.TeamID]; !ok {
			return ErrRosterEntryTeamInvalid
		}
	}
	for _, e := range r.s.roster {
		if e.PlayerID == entry.PlayerID && e.TournamentID == entry.TournamentID {
			return ErrRosterEntryConflict
		}
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	now := r.s.tick()
	entry.CreatedAt, entry.UpdatedAt = now, now
	r.s.roster[entry.ID] = r.bare(entry)
	return nil
}

func (r memoryRosterRepository) GetByID(_ context.Context, id uuid.UUID) (*models.RosterEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.roster[id]
	if !ok {
		return nil, ErrRosterEntryNotFound
	}
	return r.joined(e), nil
}

func (r memoryRosterRepository) ListByTournament(_ context.Context, tournamentID uuid.UUID) ([]*models.RosterEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	entries := make([]*models.RosterEntry, 0)
	for _, e := range r.s.roster {
		if e.TournamentID == tournamentID {
			entries = append(entries, r.joined(e))
		}
	}
	sortByJoinOrder(entries)
	return entries, nil
}

func (r memoryRosterRepository) ListPlayerIDsByTournament(_ context.Context, tournamentID uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ids := make([]uuid.UUID, 0)
	for _, e := range r.s.roster {
		if e.TournamentID == tournamentID {
			ids = append(ids, e.PlayerID)
		}
	}
	return ids, nil
}

func (r memoryRosterRepository) Update(_ context.Context, entry *models.RosterEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.roster[entry.ID]
	if !ok {
		return ErrRosterEntryNotFound
	}
	if entry.TeamID != nil {
		if _, ok := r.s.teams[*entry.TeamID]; !ok {
			return ErrRosterEntryTeamInvalid
		}
	}
	existing.TeamID = entry.TeamID
	existing.Role = entry.Role
	existing.Position = entry.Position
	existing.Notes = entry.Notes
	existing.UpdatedAt = r.s.tick()

	entry.PlayerID = existing.PlayerID
	entry.TournamentID = existing.TournamentID
	entry.CreatedBy = existing.CreatedBy
	entry.CreatedAt = existing.CreatedAt
	entry.UpdatedAt = existing.UpdatedAt
	return nil
}

func (r memoryRosterRepository) Delete(_ context.Context, id uuid.UUID) (*models.RosterEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.roster[id]
	if !ok {
		return nil, ErrRosterEntryNotFound
	}
	delete(r.s.roster, id)
	return e, nil
}

func (r memoryRosterRepository) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.roster), nil
}

func (r memoryRosterRepository) bare(e *models.RosterEntry) *models.RosterEntry {
	c := *e
	c.Player, c.Tournament, c.Team = nil, nil, nil
	return &c
}

// joined resolves references the way the LEFT JOIN query does. Callers hold s.mu.
func (r memoryRosterRepository) joined(e *models.RosterEntry) *models.RosterEntry {
	c := *e
	c.Player = copyPlayer(r.s.players[e.PlayerID])
	c.Tournament = copyTournament(r.s.tournaments[e.TournamentID])
	c.Team = nil
	if e.TeamID != nil {
		c.Team = copyTeam(r.s.teams[*e.TeamID])
	}
	return &c
}

func sortByJoinOrder(entries []*models.RosterEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].ID.String() < entries[j].ID.String()
	})
}

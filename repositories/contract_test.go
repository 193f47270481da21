package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulticlub/roster-service/models"
)

type repositorySet struct {
	players     PlayerRepository
	tournaments TournamentRepository
	teams       TeamRepository
	roster      RosterRepository
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func newTestPlayer(name string) *models.Player {
	return &models.Player{
		Name:       name,
		Email:      fmt.Sprintf("%s-%s@club.test", name, uuid.NewString()[:8]),
		Gender:     models.GenderOther,
		Position:   models.PositionAny,
		Experience: models.ExperienceBeginner,
		IsActive:   true,
	}
}

func newTestTournament(name string, start time.Time) *models.Tournament {
	return &models.Tournament{
		Name:      name,
		Year:      start.Year(),
		Type:      "club",
		StartDate: start,
		EndDate:   start.Add(24 * time.Hour),
	}
}

// runRepositoryContract checks the behaviour both stores must share.
func runRepositoryContract(t *testing.T, newSet func(t *testing.T) repositorySet) {
	t.Run("roster entry is unique per player and tournament", func(t *testing.T) {
		repos := newSet(t)
		ctx := context.Background()
		player := newTestPlayer("ada")
		require.NoError(t, repos.players.Create(ctx, player))
		tournament := newTestTournament("Spring Hat", time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC))
		require.NoError(t, repos.tournaments.Create(ctx, tournament))

		first := &models.RosterEntry{PlayerID: player.ID, TournamentID: tournament.ID, Role: strPtr("captain")}
		require.NoError(t, repos.roster.Create(ctx, first))
		assert.NotEqual(t, uuid.Nil, first.ID)
		assert.False(t, first.CreatedAt.IsZero())

		err := repos.roster.Create(ctx, &models.RosterEntry{PlayerID: player.ID, TournamentID: tournament.ID})
		require.ErrorIs(t, err, ErrRosterEntryConflict)

		entries, err := repos.roster.ListByTournament(ctx, tournament.ID)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, first.ID, entries[0].ID)
	})

	t.Run("concurrent inserts keep one entry", func(t *testing.T) {
		repos := newSet(t)
		ctx := context.Background()
		player := newTestPlayer("ben")
		require.NoError(t, repos.players.Create(ctx, player))
		tournament := newTestTournament("Regionals", time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC))
		require.NoError(t, repos.tournaments.Create(ctx, tournament))

		const attempts = 8
		errs := make([]error, attempts)
		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = repos.roster.Create(ctx, &models.RosterEntry{PlayerID: player.ID, TournamentID: tournament.ID})
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, ErrRosterEntryConflict)
		}
		assert.Equal(t, 1, succeeded)

		ids, err := repos.roster.ListPlayerIDsByTournament(ctx, tournament.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{player.ID}, ids)
	})

	t.Run("references must exist", func(t *testing.T) {
		repos := newSet(t)
		ctx := context.Background()
		player := newTestPlayer("cy")
		require.NoError(t, repos.players.Create(ctx, player))
		tournament := newTestTournament("Indoor", time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC))
		require.NoError(t, repos.tournaments.Create(ctx, tournament))
		missing := uuid.New()

		err := repos.roster.Create(ctx, &models.RosterEntry{PlayerID: missing, TournamentID: tournament.ID})
		assert.ErrorIs(t, err, ErrRosterEntryPlayerInvalid)
		err = repos.roster.Create(ctx, &models.RosterEntry{PlayerID: player.ID, TournamentID: missing})
		assert.ErrorIs(t, err, ErrRosterEntryTournamentInvalid)
		err = repos.roster.Create(ctx, &models.RosterEntry{PlayerID: player.ID, TournamentID: tournament.ID, TeamID: &missing})
		assert.ErrorIs(t, err, ErrRosterEntryTeamInvalid)
	})

	t.Run("joined reads and join order", func(t *testing.T) {
		repos := newSet(t)
		ctx := context.Background()
		tournament := newTestTournament("League", time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, repos.tournaments.Create(ctx, tournament))
		team := &models.Team{TournamentID: tournament.ID, Name: "Dark"}
		require.NoError(t, repos.teams.Create(ctx, team))

		var created []*models.RosterEntry
		for _, name := range []string{"zed", "amy", "kim"} {
			p := newTestPlayer(name)
			require.NoError(t, repos.players.Create(ctx, p))
			e := &models.RosterEntry{PlayerID: p.ID, TournamentID: tournament.ID, TeamID: &team.ID}
			require.NoError(t, repos.roster.Create(ctx, e))
			created = append(created, e)
		}

		entries, err := repos.roster.ListByTournament(ctx, tournament.ID)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		for i, e := range entries {
			assert.Equal(t, created[i].ID, e.ID)
			require.NotNil(t, e.Player)
			assert.Equal(t, created[i].PlayerID, e.Player.ID)
			require.NotNil(t, e.Tournament)
			assert.Equal(t, "League", e.Tournament.Name)
			require.NotNil(t, e.Team)
			assert.Equal(t, "Dark", e.Team.Name)
		}

		got, err := repos.roster.GetByID(ctx, created[1].ID)
		require.NoError(t, err)
		assert.Equal(t, created[1].PlayerID, got.Player.ID)

		empty, err := repos.roster.ListByTournament(ctx, uuid.New())
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)
	})

	t.Run("update and delete", func(t *testing.T) {
		repos := newSet(t)
		ctx := context.Background()
		player := newTestPlayer("dee")
		require.NoError(t, repos.players.Create(ctx, player))
		tournament := newTestTournament("Sectionals", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, repos.tournaments.Create(ctx, tournament))
		entry := &models.RosterEntry{PlayerID: player.ID, TournamentID: tournament.ID, CreatedBy: strPtr("admin-1")}
		require.NoError(t, repos.roster.Create(ctx, entry))

		update := &models.RosterEntry{ID: entry.ID, Role: strPtr("coach"), Position: strPtr("handler")}
		require.NoError(t, repos.roster.Update(ctx, update))
		assert.Equal(t, player.ID, update.PlayerID)
		assert.True(t, update.CreatedAt.Equal(entry.CreatedAt))
		assert.True(t, update.UpdatedAt.After(entry.UpdatedAt), "update stamps a later time than the insert")
		assert.Equal(t, "admin-1", *update.CreatedBy)

		got, err := repos.roster.GetByID(ctx, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, "coach", *got.Role)
		assert.Equal(t, "handler", *got.Position)
		assert.Nil(t, got.Notes)

		err = repos.roster.Update(ctx, &models.RosterEntry{ID: uuid.New()})
		assert.ErrorIs(t, err, ErrRosterEntryNotFound)

		removed, err := repos.roster.Delete(ctx, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, tournament.ID, removed.TournamentID)
		assert.Equal(t, player.ID, removed.PlayerID)

		_, err = repos.roster.Delete(ctx, entry.ID)
		assert.ErrorIs(t, err, ErrRosterEntryNotFound)
		_, err = repos.roster.GetByID(ctx, entry.ID)
		assert.ErrorIs(t, err, ErrRosterEntryNotFound)
	})

	t.Run("cascades", func(t *testing.T) {
		repos := newSet(t)
		ctx := context.Background()
		tournament := newTestTournament("Nationals", time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, repos.tournaments.Create(ctx, tournament))
		team := &models.Team{TournamentID: tournament.ID, Name: "Light"}
		require.NoError(t, repos.teams.Create(ctx, team))
		p1, p2 := newTestPlayer("eve"), newTestPlayer("fay")
		require.NoError(t, repos.players.Create(ctx, p1))
		require.NoError(t, repos.players.Create(ctx, p2))
		require.NoError(t, repos.roster.Create(ctx, &models.RosterEntry{PlayerID: p1.ID, TournamentID: tournament.ID, TeamID: &team.ID}))
		require.NoError(t, repos.roster.Create(ctx, &models.RosterEntry{PlayerID: p2.ID, TournamentID: tournament.ID, TeamID: &team.ID}))

		require.NoError(t, repos.teams.Delete(ctx, team.ID))
		entries, err := repos.roster.ListByTournament(ctx, tournament.ID)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		for _, e := range entries {
			assert.Nil(t, e.TeamID)
			assert.Nil(t, e.Team)
		}

		require.NoError(t, repos.players.Delete(ctx, p1.ID))
		entries, err = repos.roster.ListByTournament(ctx, tournament.ID)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, p2.ID, entries[0].PlayerID)

		require.NoError(t, repos.tournaments.Delete(ctx, tournament.ID))
		ids, err := repos.roster.ListPlayerIDsByTournament(ctx, tournament.ID)
		require.NoError(t, err)
		assert.Empty(t, ids)
		assert.ErrorIs(t, repos.tournaments.Delete(ctx, tournament.ID), ErrTournamentNotFound)
	})

	t.Run("player uniqueness", func(t *testing.T) {
		repos := newSet(t)
		ctx := context.Background()
		a := newTestPlayer("gus")
		a.JerseyNumber = intPtr(9)
		require.NoError(t, repos.players.Create(ctx, a))

		dupEmail := newTestPlayer("hal")
		dupEmail.Email = a.Email
		assert.ErrorIs(t, repos.players.Create(ctx, dupEmail), ErrPlayerEmailConflict)

		dupJersey := newTestPlayer("ivy")
		dupJersey.JerseyNumber = intPtr(9)
		assert.ErrorIs(t, repos.players.Create(ctx, dupJersey), ErrPlayerJerseyConflict)

		dupJersey.IsActive = false
		assert.NoError(t, repos.players.Create(ctx, dupJersey))

		key := "players/" + a.ID.String() + "/photo.png"
		require.NoError(t, repos.players.UpdatePhotoKey(ctx, a.ID, &key))
		a.Name = "Gus Renamed"
		require.NoError(t, repos.players.Update(ctx, a))
		got, err := repos.players.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "Gus Renamed", got.Name)
		require.NotNil(t, got.PhotoKey, "profile updates keep the photo")
		assert.Equal(t, key, *got.PhotoKey)

		total, err := repos.players.Count(ctx, false)
		require.NoError(t, err)
		active, err := repos.players.Count(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Equal(t, 1, active)

		_, err = repos.players.GetByID(ctx, uuid.New())
		assert.True(t, errors.Is(err, ErrPlayerNotFound))
	})

	t.Run("teams are unique per tournament", func(t *testing.T) {
		repos := newSet(t)
		ctx := context.Background()
		t1 := newTestTournament("Hat A", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
		t2 := newTestTournament("Hat B", time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC))
		require.NoError(t, repos.tournaments.Create(ctx, t1))
		require.NoError(t, repos.tournaments.Create(ctx, t2))

		require.NoError(t, repos.teams.Create(ctx, &models.Team{TournamentID: t1.ID, Name: "Blue"}))
		assert.ErrorIs(t, repos.teams.Create(ctx, &models.Team{TournamentID: t1.ID, Name: "Blue"}), ErrTeamNameConflict)
		assert.NoError(t, repos.teams.Create(ctx, &models.Team{TournamentID: t2.ID, Name: "Blue"}))
		assert.ErrorIs(t, repos.teams.Create(ctx, &models.Team{TournamentID: uuid.New(), Name: "Red"}), ErrTeamTournamentInvalid)

		list, err := repos.tournaments.List(ctx, models.TournamentFilter{})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Hat B", list[0].Name)
	})
}

func TestMemoryStoreContract(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) repositorySet {
		store := NewMemoryStore()
		return repositorySet{
			players:     store.Players(),
			tournaments: store.Tournaments(),
			teams:       store.Teams(),
			roster:      store.Roster(),
		}
	})
}

func TestMemoryStore_TickIsStrictlyIncreasing(t *testing.T) {
	store := NewMemoryStore()
	frozen := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return frozen }

	store.mu.Lock()
	a, b, c := store.tick(), store.tick(), store.tick()
	store.mu.Unlock()

	assert.True(t, b.After(a))
	assert.True(t, c.After(b))
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	p := newTestPlayer("jo")
	require.NoError(t, store.Players().Create(ctx, p))

	got, err := store.Players().GetByID(ctx, p.ID)
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := store.Players().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "jo", again.Name)
}

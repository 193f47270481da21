package models

import (
	"time"

	"github.com/google/uuid"
)

// Roles the club assigns most often. Role is free text; these are not enforced.
const (
	RoleCaptain     = "captain"
	RolePlayer      = "player"
	RolePlayerCoach = "player-coach"
)

// RosterEntry assigns one player to one tournament. Player, Tournament and Team are
// filled in by joined reads and may stay nil when the referenced row is gone.
type RosterEntry struct {
	ID           uuid.UUID  `json:"id"`
	PlayerID     uuid.UUID  `json:"playerId"`
	TournamentID uuid.UUID  `json:"tournamentId"`
	TeamID       *uuid.UUID `json:"teamId,omitempty"`
	Role         *string    `json:"role,omitempty"`
	Position     *string    `json:"position,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
	CreatedBy    *string    `json:"createdBy,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`

	Player     *Player     `json:"-"`
	Tournament *Tournament `json:"-"`
	Team       *Team       `json:"-"`
}

// RosterEntryView is the wire shape of a roster entry: references are replaced by the
// objects they point to.
type RosterEntryView struct {
	ID         uuid.UUID   `json:"id"`
	Player     *Player     `json:"playerId"`
	Tournament *Tournament `json:"tournamentId"`
	Team       *Team       `json:"teamId,omitempty"`
	Role       *string     `json:"role,omitempty"`
	Position   *string     `json:"position,omitempty"`
	Notes      *string     `json:"notes,omitempty"`
	CreatedBy  *string     `json:"createdBy,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

func (e *RosterEntry) View() RosterEntryView {
	return RosterEntryView{
		ID:         e.ID,
		Player:     e.Player,
		Tournament: e.Tournament,
		Team:       e.Team,
		Role:       e.Role,
		Position:   e.Position,
		Notes:      e.Notes,
		CreatedBy:  e.CreatedBy,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func RosterViews(entries []*RosterEntry) []RosterEntryView {
	views := make([]RosterEntryView, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		views = append(views, e.View())
	}
	return views
}

type GenderCounts struct {
	Male   int `json:"male"`
	Female int `json:"female"`
	Other  int `json:"other"`
}

type RosterStats struct {
	Total           int          `json:"total"`
	ByGender        GenderCounts `json:"byGender"`
	LeadershipCount int          `json:"leadershipCount"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Team is a sub-squad inside a single tournament.
type Team struct {
	ID           uuid.UUID `json:"id"`
	TournamentID uuid.UUID `json:"tournamentId"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
}

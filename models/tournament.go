package models

import (
	"time"

	"github.com/google/uuid"
)

// Tournament is an entry in the club's tournament catalog.
type Tournament struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Year      int       `json:"year"`
	Type      string    `json:"type,omitempty"`
	Location  *string   `json:"location,omitempty"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	CreatedAt time.Time `json:"createdAt"`
}

type TournamentFilter struct {
	Year *int
}

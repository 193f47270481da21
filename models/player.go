package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ParseGender folds free-form input onto the three known values; anything else is "other".
func ParseGender(s string) Gender {
	switch Gender(strings.ToLower(strings.TrimSpace(s))) {
	case GenderMale:
		return GenderMale
	case GenderFemale:
		return GenderFemale
	default:
		return GenderOther
	}
}

type PlayerPosition string

const (
	PositionHandler PlayerPosition = "handler"
	PositionCutter  PlayerPosition = "cutter"
	PositionUtility PlayerPosition = "utility"
	PositionAny     PlayerPosition = "any"
)

type Experience string

const (
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceAdvanced     Experience = "advanced"
	ExperienceExpert       Experience = "expert"
)

// Player is a registered club member.
type Player struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	StudentID      *string        `json:"studentId,omitempty"`
	Gender         Gender         `json:"gender"`
	Position       PlayerPosition `json:"position"`
	Experience     Experience     `json:"experience"`
	JerseyNumber   *int           `json:"jerseyNumber,omitempty"`
	GraduationYear *int           `json:"graduationYear,omitempty"`
	IsActive       bool           `json:"isActive"`
	CreatedBy      *string        `json:"createdBy,omitempty"`
	UpdatedBy      *string        `json:"updatedBy,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`

	PhotoKey *string `json:"-"`
	PhotoURL *string `json:"photoUrl,omitempty"`
}

type PlayerFilter struct {
	ActiveOnly bool
}

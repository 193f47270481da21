package services

import (
	"strings"

	"github.com/ulticlub/roster-service/models"
)

// ComputeRosterStats aggregates a roster. Gender comes from the resolved player; entries
// without one, or with an unrecognised value, count as other. A role containing "captain"
// or "coach" in any case counts towards leadership.
func ComputeRosterStats(entries []*models.RosterEntry) models.RosterStats {
	var stats models.RosterStats
	for _, e := range entries {
		if e == nil {
			continue
		}
		stats.Total++

		gender := models.GenderOther
		if e.Player != nil {
			gender = models.ParseGender(string(e.Player.Gender))
		}
		switch gender {
		case models.GenderMale:
			stats.ByGender.Male++
		case models.GenderFemale:
			stats.ByGender.Female++
		default:
			stats.ByGender.Other++
		}

		if isLeadershipRole(e.Role) {
			stats.LeadershipCount++
		}
	}
	return stats
}

func isLeadershipRole(role *string) bool {
	if role == nil {
		return false
	}
	r := strings.ToLower(*role)
	return strings.Contains(r, models.RoleCaptain) || strings.Contains(r, "coach")
}

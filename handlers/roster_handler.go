package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ulticlub/roster-service/middleware"
	"github.com/ulticlub/roster-service/models"
	"github.com/ulticlub/roster-service/services"
)

type RosterHandler struct {
	rosterService services.RosterService
}

func NewRosterHandler(rs services.RosterService) *RosterHandler {
	return &RosterHandler{rosterService: rs}
}

// ListRoster godoc
// @Summary List a tournament roster
// @Tags roster
// @Description Returns the tournament's roster entries in join order, with player, tournament and team objects resolved.
// @Produce json
// @Param tournamentId query string true "Tournament ID (UUID)"
// @Success 200 {object} map[string]interface{} "roster: []RosterEntryView"
// @Failure 404 {object} map[string]string "Tournament not found"
// @Failure 422 {object} map[string]interface{} "Missing or malformed tournamentId"
// @Router /roster [get]
func (h *RosterHandler) ListRoster(w http.ResponseWriter, r *http.Request) {
	entries, err := h.rosterService.ListRoster(r.Context(), r.URL.Query().Get("tournamentId"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"roster": models.RosterViews(entries)}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AvailablePlayers godoc
// @Summary Players not yet on a tournament roster
// @Tags roster
// @Produce json
// @Param tournamentId query string true "Tournament ID (UUID)"
// @Success 200 {object} map[string]interface{} "players: []Player"
// @Failure 404 {object} map[string]string "Tournament not found"
// @Failure 422 {object} map[string]interface{} "Missing or malformed tournamentId"
// @Router /roster/available [get]
func (h *RosterHandler) AvailablePlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.rosterService.AvailablePlayers(r.Context(), r.URL.Query().Get("tournamentId"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RosterStats godoc
// @Summary Roster statistics
// @Tags roster
// @Description Total entries, gender split and number of captains/coaches.
// @Produce json
// @Param tournamentId query string true "Tournament ID (UUID)"
// @Success 200 {object} map[string]interface{} "stats: RosterStats"
// @Failure 404 {object} map[string]string "Tournament not found"
// @Router /roster/stats [get]
func (h *RosterHandler) RosterStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.rosterService.Stats(r.Context(), r.URL.Query().Get("tournamentId"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"stats": stats}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AddAssignment godoc
// @Summary Add a player to a tournament roster
// @Tags roster
// @Accept json
// @Produce json
// @Param body body services.AddAssignmentInput true "Assignment"
// @Success 201 {object} map[string]interface{} "rosterEntry: RosterEntryView"
// @Failure 401 {object} map[string]string "Not authenticated"
// @Failure 403 {object} map[string]string "Not an admin"
// @Failure 404 {object} map[string]string "Player, tournament or team not found"
// @Failure 409 {object} map[string]string "Player already on this roster"
// @Failure 422 {object} map[string]interface{} "Validation failed"
// @Security BearerAuth
// @Router /roster [post]
func (h *RosterHandler) AddAssignment(w http.ResponseWriter, r *http.Request) {
	var input services.AddAssignmentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entry, err := h.rosterService.AddAssignment(r.Context(), middleware.CallerFromContext(r.Context()), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"rosterEntry": entry.View()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateAssignment godoc
// @Summary Change role, position, notes or team of a roster entry
// @Tags roster
// @Accept json
// @Produce json
// @Param rosterEntryID path string true "Roster entry ID (UUID)"
// @Param body body services.UpdateAssignmentInput true "Fields to change; empty string clears"
// @Success 200 {object} map[string]interface{} "rosterEntry: RosterEntryView"
// @Failure 403 {object} map[string]string "Not an admin"
// @Failure 404 {object} map[string]string "Roster entry or team not found"
// @Security BearerAuth
// @Router /roster/{rosterEntryID} [patch]
func (h *RosterHandler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	var input services.UpdateAssignmentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entry, err := h.rosterService.UpdateAssignment(r.Context(), middleware.CallerFromContext(r.Context()),
		chi.URLParam(r, "rosterEntryID"), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"rosterEntry": entry.View()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RemoveAssignment godoc
// @Summary Remove a roster entry
// @Tags roster
// @Param rosterEntryID path string true "Roster entry ID (UUID)"
// @Success 204 "Removed"
// @Failure 403 {object} map[string]string "Not an admin"
// @Failure 404 {object} map[string]string "Roster entry not found"
// @Security BearerAuth
// @Router /roster/{rosterEntryID} [delete]
func (h *RosterHandler) RemoveAssignment(w http.ResponseWriter, r *http.Request) {
	err := h.rosterService.RemoveAssignment(r.Context(), middleware.CallerFromContext(r.Context()),
		chi.URLParam(r, "rosterEntryID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ulticlub/roster-service/middleware"
	"github.com/ulticlub/roster-service/models"
	"github.com/ulticlub/roster-service/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(ts services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: ts}
}

// ListTournaments godoc
// @Summary List tournaments
// @Tags tournaments
// @Produce json
// @Param year query int false "Only tournaments of this year"
// @Success 200 {object} map[string]interface{} "tournaments: []Tournament"
// @Router /tournaments [get]
func (h *TournamentHandler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	var filter models.TournamentFilter
	if v := r.URL.Query().Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			badRequestResponse(w, r, fmt.Errorf("invalid year value: %q", v))
			return
		}
		filter.Year = &year
	}

	tournaments, err := h.tournamentService.ListTournaments(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetTournament godoc
// @Summary Get a tournament
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "Tournament ID (UUID)"
// @Success 200 {object} map[string]interface{} "tournament: Tournament"
// @Failure 404 {object} map[string]string "Tournament not found"
// @Router /tournaments/{tournamentID} [get]
func (h *TournamentHandler) GetTournament(w http.ResponseWriter, r *http.Request) {
	tournament, err := h.tournamentService.GetTournament(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateTournament godoc
// @Summary Create a tournament
// @Tags tournaments
// @Accept json
// @Produce json
// @Param body body services.TournamentInput true "Tournament"
// @Success 201 {object} map[string]interface{} "tournament: Tournament"
// @Failure 422 {object} map[string]interface{} "Validation failed"
// @Security BearerAuth
// @Router /tournaments [post]
func (h *TournamentHandler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	var input services.TournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.CreateTournament(r.Context(), middleware.CallerFromContext(r.Context()), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteTournament godoc
// @Summary Delete a tournament with its teams and roster
// @Tags tournaments
// @Param tournamentID path string true "Tournament ID (UUID)"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Tournament not found"
// @Security BearerAuth
// @Router /tournaments/{tournamentID} [delete]
func (h *TournamentHandler) DeleteTournament(w http.ResponseWriter, r *http.Request) {
	err := h.tournamentService.DeleteTournament(r.Context(), middleware.CallerFromContext(r.Context()),
		chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTeams godoc
// @Summary List a tournament's teams
// @Tags teams
// @Produce json
// @Param tournamentID path string true "Tournament ID (UUID)"
// @Success 200 {object} map[string]interface{} "teams: []Team"
// @Router /tournaments/{tournamentID}/teams [get]
func (h *TournamentHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.tournamentService.ListTeams(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateTeam godoc
// @Summary Create a team inside a tournament
// @Tags teams
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID (UUID)"
// @Param body body services.TeamInput true "Team"
// @Success 201 {object} map[string]interface{} "team: Team"
// @Failure 409 {object} map[string]string "Name already used in this tournament"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/teams [post]
func (h *TournamentHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var input services.TeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.tournamentService.CreateTeam(r.Context(), middleware.CallerFromContext(r.Context()),
		chi.URLParam(r, "tournamentID"), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteTeam godoc
// @Summary Delete a team; its roster entries lose their team
// @Tags teams
// @Param teamID path string true "Team ID (UUID)"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Team not found"
// @Security BearerAuth
// @Router /teams/{teamID} [delete]
func (h *TournamentHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	err := h.tournamentService.DeleteTeam(r.Context(), middleware.CallerFromContext(r.Context()), chi.URLParam(r, "teamID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

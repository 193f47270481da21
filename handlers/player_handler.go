package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ulticlub/roster-service/middleware"
	"github.com/ulticlub/roster-service/models"
	"github.com/ulticlub/roster-service/services"
)

const maxPhotoUploadBytes = 10 << 20

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(ps services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: ps}
}

// ListPlayers godoc
// @Summary List the player directory
// @Tags players
// @Produce json
// @Param activeOnly query bool false "Only active players"
// @Success 200 {object} map[string]interface{} "players: []Player"
// @Router /players [get]
func (h *PlayerHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	var filter models.PlayerFilter
	if v := r.URL.Query().Get("activeOnly"); v != "" {
		activeOnly, err := strconv.ParseBool(v)
		if err != nil {
			badRequestResponse(w, r, fmt.Errorf("invalid activeOnly value: %q", v))
			return
		}
		filter.ActiveOnly = activeOnly
	}

	players, err := h.playerService.ListPlayers(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetPlayer godoc
// @Summary Get a player
// @Tags players
// @Produce json
// @Param playerID path string true "Player ID (UUID)"
// @Success 200 {object} map[string]interface{} "player: Player"
// @Failure 404 {object} map[string]string "Player not found"
// @Router /players/{playerID} [get]
func (h *PlayerHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	player, err := h.playerService.GetPlayer(r.Context(), chi.URLParam(r, "playerID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreatePlayer godoc
// @Summary Register a player
// @Tags players
// @Description jerseyNumber and graduationYear may be sent as numbers or strings.
// @Accept json
// @Produce json
// @Param body body services.PlayerInput true "Player"
// @Success 201 {object} map[string]interface{} "player: Player"
// @Failure 409 {object} map[string]string "Email or jersey number taken"
// @Failure 422 {object} map[string]interface{} "Validation failed"
// @Security BearerAuth
// @Router /players [post]
func (h *PlayerHandler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var input services.PlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.CreatePlayer(r.Context(), middleware.CallerFromContext(r.Context()), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdatePlayer godoc
// @Summary Replace a player's details
// @Tags players
// @Accept json
// @Produce json
// @Param playerID path string true "Player ID (UUID)"
// @Param body body services.PlayerInput true "Player"
// @Success 200 {object} map[string]interface{} "player: Player"
// @Failure 404 {object} map[string]string "Player not found"
// @Failure 409 {object} map[string]string "Email or jersey number taken"
// @Security BearerAuth
// @Router /players/{playerID} [put]
func (h *PlayerHandler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	var input services.PlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.UpdatePlayer(r.Context(), middleware.CallerFromContext(r.Context()),
		chi.URLParam(r, "playerID"), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeletePlayer godoc
// @Summary Delete a player and their roster entries
// @Tags players
// @Param playerID path string true "Player ID (UUID)"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Player not found"
// @Security BearerAuth
// @Router /players/{playerID} [delete]
func (h *PlayerHandler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	err := h.playerService.DeletePlayer(r.Context(), middleware.CallerFromContext(r.Context()), chi.URLParam(r, "playerID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadPhoto godoc
// @Summary Upload a player photo
// @Tags players
// @Accept multipart/form-data
// @Produce json
// @Param playerID path string true "Player ID (UUID)"
// @Param photo formData file true "Image (jpeg, png, gif, webp)"
// @Success 200 {object} map[string]interface{} "player: Player"
// @Failure 400 {object} map[string]string "Missing or unreadable file"
// @Security BearerAuth
// @Router /players/{playerID}/photo [post]
func (h *PlayerHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoUploadBytes)
	if err := r.ParseMultipartForm(maxPhotoUploadBytes); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to get photo file from form: %w", err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("content-type header is required for photo"))
		return
	}

	player, err := h.playerService.UploadPhoto(r.Context(), middleware.CallerFromContext(r.Context()),
		chi.URLParam(r, "playerID"), contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

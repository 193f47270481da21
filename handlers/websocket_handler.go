package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/ulticlub/roster-service/realtime"
	"github.com/ulticlub/roster-service/services"
)

type WebSocketHandler struct {
	hub               *realtime.Hub
	tournamentService services.TournamentService
	upgrader          websocket.Upgrader
	logger            *slog.Logger
}

// NewWebSocketHandler serves roster subscriptions. allowedOrigins may contain "*".
func NewWebSocketHandler(hub *realtime.Hub, ts services.TournamentService, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebSocketHandler{
		hub:               hub,
		tournamentService: ts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

// ServeRoster godoc
// @Summary Subscribe to roster changes of a tournament
// @Tags roster
// @Description Upgrades to a websocket that receives ROSTER_ENTRY_ADDED, ROSTER_ENTRY_UPDATED and ROSTER_ENTRY_REMOVED messages.
// @Param tournamentID path string true "Tournament ID (UUID)"
// @Success 101 "Switching Protocols"
// @Failure 404 {object} map[string]string "Tournament not found"
// @Router /ws/tournaments/{tournamentID}/roster [get]
func (h *WebSocketHandler) ServeRoster(w http.ResponseWriter, r *http.Request) {
	tournament, err := h.tournamentService.GetTournament(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("failed to upgrade websocket connection",
			slog.String("tournament_id", tournament.ID.String()), slog.Any("error", err))
		return
	}

	room := realtime.RoomForTournament(tournament.ID.String())
	client := realtime.NewClient(h.hub, conn, room)
	if !h.hub.Register(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

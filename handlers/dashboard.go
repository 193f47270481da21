package handlers

import (
	"net/http"

	"github.com/ulticlub/roster-service/middleware"
	"github.com/ulticlub/roster-service/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(s services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: s}
}

// Stats godoc
// @Summary Club dashboard counters
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.DashboardStats
// @Security BearerAuth
// @Router /dashboard [get]
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.GetStats(r.Context(), middleware.CallerFromContext(r.Context()))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, stats, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

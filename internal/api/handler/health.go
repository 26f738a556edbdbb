package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/core/domain"
	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/core/ports"
)

// HealthHandler handles GET /health.
type HealthHandler struct {
	ctrl ports.Controller
}

func NewHealthHandler(ctrl ports.Controller) *HealthHandler {
	return &HealthHandler{ctrl: ctrl}
}

type healthResponse struct {
	Status  string            `json:"status"`
	Session domain.MacroState `json:"session"`
}

// Liveness returns 200 while the process is alive, along with the current
// macro-state.
//
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  healthResponse
// @Router       /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok", Session: h.ctrl.View().State})
}

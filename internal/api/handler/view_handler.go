package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/core/domain"
	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/core/ports"
)

// ViewHandler exposes the controller's state snapshot.
type ViewHandler struct {
	ctrl ports.Controller
}

func NewViewHandler(ctrl ports.Controller) *ViewHandler {
	return &ViewHandler{ctrl: ctrl}
}

// Get handles GET /view.
//
// @Summary      Current view snapshot
// @Tags         view
// @Produce      json
// @Success      200  {object}  viewResponse
// @Router       /view [get]
func (h *ViewHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, toViewResponse(h.ctrl.View()))
}

// Select handles POST /intents/destinations/:id/select. Selection is local
// state, so it runs synchronously against the current list.
//
// @Summary      Select a destination from the current list
// @Tags         view
// @Produce      json
// @Param        id   path      int  true  "Destination id"
// @Success      200  {object}  viewResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /intents/destinations/{id}/select [post]
func (h *ViewHandler) Select(c echo.Context) error {
	id, err := destinationID(c)
	if err != nil {
		return err
	}
	d, ok := domain.FindDestination(h.ctrl.View().Destinations, id)
	if !ok {
		return fmt.Errorf("select %d: %w", id, domain.ErrDestinationNotFound)
	}
	h.ctrl.SelectDestination(d)
	return c.JSON(http.StatusOK, toViewResponse(h.ctrl.View()))
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/core/ports"
)

// IntentQueue accepts intents for asynchronous execution.
type IntentQueue interface {
	Enqueue(in ports.Intent) error
}

// IntentHandler turns view submissions into queued controller intents. It
// answers 202 as soon as the intent is queued; the outcome shows up in the
// next GET /view.
type IntentHandler struct {
	queue IntentQueue
}

func NewIntentHandler(queue IntentQueue) *IntentHandler {
	return &IntentHandler{queue: queue}
}

// Login handles POST /intents/login.
//
// @Summary      Queue a login
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials (username or email)"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /intents/login [post]
func (h *IntentHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return h.accept(c, ports.Intent{Kind: ports.IntentLogin, Credentials: req.toDomain()})
}

// Register handles POST /intents/register.
//
// @Summary      Queue a registration
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "New account"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /intents/register [post]
func (h *IntentHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return h.accept(c, ports.Intent{Kind: ports.IntentRegister, Registration: req.toDomain()})
}

// Logout handles POST /intents/logout.
//
// @Summary      Queue a logout
// @Tags         session
// @Produce      json
// @Success      202   {object}  acceptedResponse
// @Failure      401   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /intents/logout [post]
func (h *IntentHandler) Logout(c echo.Context) error {
	return h.accept(c, ports.Intent{Kind: ports.IntentLogout})
}

// Refresh handles POST /intents/refresh.
//
// @Summary      Queue a destination refresh
// @Tags         destinations
// @Produce      json
// @Success      202   {object}  acceptedResponse
// @Failure      401   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /intents/refresh [post]
func (h *IntentHandler) Refresh(c echo.Context) error {
	return h.accept(c, ports.Intent{Kind: ports.IntentFetch})
}

// AddDestination handles POST /intents/destinations.
//
// @Summary      Queue a new destination
// @Tags         destinations
// @Accept       json
// @Produce      json
// @Param        body  body      destinationRequest  true  "Destination fields"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /intents/destinations [post]
func (h *IntentHandler) AddDestination(c echo.Context) error {
	var req destinationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return h.accept(c, ports.Intent{Kind: ports.IntentAddDestination, Destination: req.toDomain()})
}

// DeleteDestination handles POST /intents/destinations/:id/delete.
//
// @Summary      Queue a destination delete
// @Tags         destinations
// @Produce      json
// @Param        id    path      int  true  "Destination id"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /intents/destinations/{id}/delete [post]
func (h *IntentHandler) DeleteDestination(c echo.Context) error {
	id, err := destinationID(c)
	if err != nil {
		return err
	}
	return h.accept(c, ports.Intent{Kind: ports.IntentDeleteDestination, DestinationID: id})
}

// UpdateDestination handles POST /intents/destinations/:id/update.
//
// @Summary      Queue a partial destination update
// @Tags         destinations
// @Accept       json
// @Produce      json
// @Param        id    path      int            true  "Destination id"
// @Param        body  body      updateRequest  true  "Fields to change; empty fields are kept"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /intents/destinations/{id}/update [post]
func (h *IntentHandler) UpdateDestination(c echo.Context) error {
	id, err := destinationID(c)
	if err != nil {
		return err
	}
	var req updateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	upd := req.toDomain()
	if upd.IsEmpty() {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one field must be set")
	}
	return h.accept(c, ports.Intent{Kind: ports.IntentUpdateDestination, DestinationID: id, Update: upd})
}

func (h *IntentHandler) accept(c echo.Context, in ports.Intent) error {
	if err := h.queue.Enqueue(in); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, acceptedResponse{Intent: in.Kind, Status: "queued"})
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

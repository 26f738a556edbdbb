package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/core/domain"
)

// SessionView is the part of the controller the middleware needs.
type SessionView interface {
	View() domain.View
}

// RequireLoggedIn rejects requests for views that are unreachable while no
// user is signed in. The error handler renders the rejection as 401.
func RequireLoggedIn(sv SessionView) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sv.View().State != domain.StateLoggedIn {
				return fmt.Errorf("%s %s: %w", c.Request().Method, c.Path(), domain.ErrNotAuthenticated)
			}
			return next(c)
		}
	}
}

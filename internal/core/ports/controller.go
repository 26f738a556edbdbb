package ports

import (
	"context"

	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/core/domain"
)

// Controller keeps the client state (user, destinations, selection) in sync
// with the backend. Remote failures are logged by the controller and also
// returned so callers may surface them; callers are free to ignore them.
type Controller interface {
	CheckAuth(ctx context.Context) error
	Login(ctx context.Context, creds domain.Credentials) error
	Register(ctx context.Context, reg domain.Registration) error
	Logout(ctx context.Context) error

	FetchDestinations(ctx context.Context) error
	AddDestination(ctx context.Context, d domain.NewDestination) error
	DeleteDestination(ctx context.Context, destinationID int64) error
	UpdateDestination(ctx context.Context, destinationID int64, u domain.DestinationUpdate) error
	SelectDestination(d domain.Destination)

	// Handle runs a queued intent against the matching operation.
	Handle(ctx context.Context, in Intent) error

	View() domain.View
}

package ports

import (
	"context"

	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/core/domain"
)

// Backend is the remote collaborator that owns sessions and destinations.
// Each method is one request/response exchange.
type Backend interface {
	CheckAuth(ctx context.Context) (*domain.User, error)
	Login(ctx context.Context, creds domain.Credentials) (*domain.User, error)
	Register(ctx context.Context, reg domain.Registration) (*domain.User, error)
	Logout(ctx context.Context) error

	ListDestinations(ctx context.Context, userID int64) ([]domain.Destination, error)
	AddDestination(ctx context.Context, userID int64, d domain.NewDestination) error
	DeleteDestination(ctx context.Context, userID, destinationID int64) error
	UpdateDestination(ctx context.Context, userID, destinationID int64, u domain.DestinationUpdate) error
}

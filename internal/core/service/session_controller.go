package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/api/metrics"
	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/core/domain"
	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/core/ports"
)

// statusCoder is implemented by backend errors that carry an HTTP status.
type statusCoder interface {
	StatusCode() int
}

// requestIDer is implemented by backend errors that carry the request id.
type requestIDer interface {
	RequestID() string
}

// SessionController owns the three client state slots (user, destination
// collection, selected destination) and keeps them consistent with the
// backend. Remote failures are written to the diagnostic log and leave the
// state untouched; they are never retried.
type SessionController struct {
	backend ports.Backend
	log     zerolog.Logger

	mu           sync.RWMutex
	user         *domain.User
	destinations []domain.Destination
	selected     *domain.Destination
}

// NewSessionController returns a controller in the logged-out state.
func NewSessionController(backend ports.Backend, log zerolog.Logger) *SessionController {
	return &SessionController{backend: backend, log: log}
}

// CheckAuth asks the backend whether a session already exists. It is meant
// to run once on first activation.
func (s *SessionController) CheckAuth(ctx context.Context) error {
	user, err := s.backend.CheckAuth(ctx)
	if err != nil {
		return s.fail("check_auth", "authentication check failed", err)
	}
	return s.signIn(ctx, "check_auth", user)
}

// Login submits credentials and, on success, loads the user's destinations.
func (s *SessionController) Login(ctx context.Context, creds domain.Credentials) error {
	user, err := s.backend.Login(ctx, creds)
	if err != nil {
		return s.fail("login", "login failed", err)
	}
	return s.signIn(ctx, "login", user)
}

// Register creates an account and, on success, loads its destinations.
func (s *SessionController) Register(ctx context.Context, reg domain.Registration) error {
	user, err := s.backend.Register(ctx, reg)
	if err != nil {
		return s.fail("register", "registration failed", err)
	}
	return s.signIn(ctx, "register", user)
}

// Logout ends the backend session and clears the user. The destination
// collection is kept but becomes unreachable while logged out.
func (s *SessionController) Logout(ctx context.Context) error {
	if err := s.backend.Logout(ctx); err != nil {
		return s.fail("logout", "logout failed", err)
	}

	s.mu.Lock()
	wasLoggedIn := s.user != nil
	s.user = nil
	s.mu.Unlock()

	if wasLoggedIn {
		metrics.SessionTransitionsTotal.WithLabelValues(string(domain.StateLoggedOut)).Inc()
	}
	s.log.Info().Msg("logged out")
	return nil
}

// FetchDestinations replaces the stored collection with the backend's.
func (s *SessionController) FetchDestinations(ctx context.Context) error {
	user, err := s.currentUser("fetch_destinations")
	if err != nil {
		return err
	}
	return s.fetchFor(ctx, user)
}

// AddDestination submits a new destination and resynchronises the list.
func (s *SessionController) AddDestination(ctx context.Context, d domain.NewDestination) error {
	user, err := s.currentUser("add_destination")
	if err != nil {
		return err
	}
	if err := s.backend.AddDestination(ctx, user.ID, d); err != nil {
		return s.fail("add_destination", "adding destination failed", err)
	}
	s.log.Info().Int64("user_id", user.ID).Str("name", d.Name).Msg("destination added")
	return s.fetchFor(ctx, user)
}

// DeleteDestination removes a destination by id and resynchronises the list.
func (s *SessionController) DeleteDestination(ctx context.Context, destinationID int64) error {
	user, err := s.currentUser("delete_destination")
	if err != nil {
		return err
	}
	if err := s.backend.DeleteDestination(ctx, user.ID, destinationID); err != nil {
		return s.fail("delete_destination", "deleting destination failed", err)
	}
	s.log.Info().Int64("user_id", user.ID).Int64("destination_id", destinationID).Msg("destination deleted")
	return s.fetchFor(ctx, user)
}

// UpdateDestination applies a partial update and resynchronises the list.
func (s *SessionController) UpdateDestination(ctx context.Context, destinationID int64, u domain.DestinationUpdate) error {
	user, err := s.currentUser("update_destination")
	if err != nil {
		return err
	}
	if err := s.backend.UpdateDestination(ctx, user.ID, destinationID, u); err != nil {
		return s.fail("update_destination", "updating destination failed", err)
	}
	s.log.Info().Int64("user_id", user.ID).Int64("destination_id", destinationID).Msg("destination updated")
	return s.fetchFor(ctx, user)
}

// SelectDestination records d as the selected destination. No request is made.
func (s *SessionController) SelectDestination(d domain.Destination) {
	s.mu.Lock()
	s.selected = &d
	s.mu.Unlock()
}

// Handle dispatches a queued intent to the matching operation.
func (s *SessionController) Handle(ctx context.Context, in ports.Intent) error {
	switch in.Kind {
	case ports.IntentCheckAuth:
		return s.CheckAuth(ctx)
	case ports.IntentLogin:
		return s.Login(ctx, in.Credentials)
	case ports.IntentRegister:
		return s.Register(ctx, in.Registration)
	case ports.IntentLogout:
		return s.Logout(ctx)
	case ports.IntentFetch:
		return s.FetchDestinations(ctx)
	case ports.IntentAddDestination:
		return s.AddDestination(ctx, in.Destination)
	case ports.IntentDeleteDestination:
		return s.DeleteDestination(ctx, in.DestinationID)
	case ports.IntentUpdateDestination:
		return s.UpdateDestination(ctx, in.DestinationID, in.Update)
	default:
		return fmt.Errorf("handle %q: %w", in.Kind, domain.ErrUnknownIntent)
	}
}

// View returns a snapshot safe to hand to renderers.
func (s *SessionController) View() domain.View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := domain.View{State: domain.StateOf(s.user)}
	if s.user != nil {
		u := *s.user
		v.User = &u
	}
	if s.destinations != nil {
		v.Destinations = make([]domain.Destination, len(s.destinations))
		copy(v.Destinations, s.destinations)
	}
	if s.selected != nil {
		sel := *s.selected
		v.Selected = &sel
	}
	return v
}

// signIn stores the user returned by a successful auth exchange and loads
// that user's destinations exactly once.
func (s *SessionController) signIn(ctx context.Context, op string, user *domain.User) error {
	if user == nil {
		return s.fail(op, "backend returned no user", domain.ErrDecode)
	}
	u := *user

	s.mu.Lock()
	wasLoggedOut := s.user == nil
	s.user = &u
	s.mu.Unlock()

	if wasLoggedOut {
		metrics.SessionTransitionsTotal.WithLabelValues(string(domain.StateLoggedIn)).Inc()
	}
	s.log.Info().Str("operation", op).Int64("user_id", u.ID).Msg("session established")

	// The session itself succeeded; a failed fetch is logged and leaves the
	// previous collection in place.
	_ = s.fetchFor(ctx, &u)
	return nil
}

// fetchFor loads the collection of user and swaps it in wholesale. The
// selection is re-resolved by id: replaced by the fresh element when still
// present, cleared otherwise. A result that arrives after the session moved
// to another user, or ended, is dropped.
func (s *SessionController) fetchFor(ctx context.Context, user *domain.User) error {
	list, err := s.backend.ListDestinations(ctx, user.ID)
	if err != nil {
		return s.fail("fetch_destinations", "fetching destinations failed", err)
	}
	if list == nil {
		list = []domain.Destination{}
	}

	s.mu.Lock()
	if s.user == nil || s.user.ID != user.ID {
		s.mu.Unlock()
		s.log.Debug().Int64("user_id", user.ID).Msg("discarding destinations fetched for a previous session")
		return nil
	}
	s.destinations = list
	if s.selected != nil {
		if fresh, ok := domain.FindDestination(list, s.selected.ID); ok {
			s.selected = &fresh
		} else {
			s.selected = nil
		}
	}
	s.mu.Unlock()

	metrics.DestinationsLoaded.Set(float64(len(list)))
	s.log.Debug().Int64("user_id", user.ID).Int("count", len(list)).Msg("destinations refreshed")
	return nil
}

func (s *SessionController) currentUser(op string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil, s.fail(op, "no authenticated user", domain.ErrNotAuthenticated)
	}
	u := *s.user
	return &u, nil
}

// fail writes the diagnostic log entry for a failed operation and returns
// the wrapped error. State is never touched here.
func (s *SessionController) fail(op, msg string, err error) error {
	ev := s.log.Error().Err(err).Str("operation", op)

	var sc statusCoder
	if errors.As(err, &sc) {
		ev = ev.Int("status", sc.StatusCode())
	}
	var rid requestIDer
	if errors.As(err, &rid) && rid.RequestID() != "" {
		ev = ev.Str("request_id", rid.RequestID())
	}
	ev.Msg(msg)

	return fmt.Errorf("%s: %w", op, err)
}

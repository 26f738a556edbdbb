package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/core/domain"
	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub backend
// ---------------------------------------------------------------------------

type stubBackend struct {
	checkAuthFn func(ctx context.Context) (*domain.User, error)
	loginFn     func(ctx context.Context, creds domain.Credentials) (*domain.User, error)
	registerFn  func(ctx context.Context, reg domain.Registration) (*domain.User, error)
	logoutFn    func(ctx context.Context) error
	listFn      func(ctx context.Context, userID int64) ([]domain.Destination, error)
	addFn       func(ctx context.Context, userID int64, d domain.NewDestination) error
	deleteFn    func(ctx context.Context, userID, destinationID int64) error
	updateFn    func(ctx context.Context, userID, destinationID int64, u domain.DestinationUpdate) error

	mu    sync.Mutex
	calls []string
}

func (b *stubBackend) record(call string) {
	b.mu.Lock()
	b.calls = append(b.calls, call)
	b.mu.Unlock()
}

func (b *stubBackend) count(prefix string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (b *stubBackend) CheckAuth(ctx context.Context) (*domain.User, error) {
	b.record("check_auth")
	if b.checkAuthFn == nil {
		return nil, nil
	}
	return b.checkAuthFn(ctx)
}

func (b *stubBackend) Login(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	b.record("login")
	if b.loginFn == nil {
		return nil, nil
	}
	return b.loginFn(ctx, creds)
}

func (b *stubBackend) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	b.record("register")
	if b.registerFn == nil {
		return nil, nil
	}
	return b.registerFn(ctx, reg)
}

func (b *stubBackend) Logout(ctx context.Context) error {
	b.record("logout")
	if b.logoutFn == nil {
		return nil
	}
	return b.logoutFn(ctx)
}

func (b *stubBackend) ListDestinations(ctx context.Context, userID int64) ([]domain.Destination, error) {
	b.record(fmt.Sprintf("list:%d", userID))
	if b.listFn == nil {
		return nil, nil
	}
	return b.listFn(ctx, userID)
}

func (b *stubBackend) AddDestination(ctx context.Context, userID int64, d domain.NewDestination) error {
	b.record(fmt.Sprintf("add:%d", userID))
	if b.addFn == nil {
		return nil
	}
	return b.addFn(ctx, userID, d)
}

func (b *stubBackend) DeleteDestination(ctx context.Context, userID, destinationID int64) error {
	b.record(fmt.Sprintf("delete:%d:%d", userID, destinationID))
	if b.deleteFn == nil {
		return nil
	}
	return b.deleteFn(ctx, userID, destinationID)
}

func (b *stubBackend) UpdateDestination(ctx context.Context, userID, destinationID int64, u domain.DestinationUpdate) error {
	b.record(fmt.Sprintf("update:%d:%d", userID, destinationID))
	if b.updateFn == nil {
		return nil
	}
	return b.updateFn(ctx, userID, destinationID, u)
}

// statusErr mimics the backend client's status error.
type statusErr struct{ code int }

func (e *statusErr) Error() string   { return fmt.Sprintf("status %d", e.code) }
func (e *statusErr) StatusCode() int { return e.code }
func (e *statusErr) Unwrap() error   { return domain.ErrRemoteStatus }

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func userFn(id int64) func(context.Context) (*domain.User, error) {
	return func(context.Context) (*domain.User, error) { return &domain.User{ID: id}, nil }
}

func listOf(ds ...domain.Destination) func(context.Context, int64) ([]domain.Destination, error) {
	return func(context.Context, int64) ([]domain.Destination, error) { return ds, nil }
}

// loggedIn returns a controller already signed in as user 42 with the given list.
func loggedIn(t *testing.T, b *stubBackend, ds ...domain.Destination) *SessionController {
	t.Helper()
	b.checkAuthFn = userFn(42)
	if b.listFn == nil {
		b.listFn = listOf(ds...)
	}
	c := NewSessionController(b, zerolog.Nop())
	if err := c.CheckAuth(context.Background()); err != nil {
		t.Fatalf("CheckAuth: %v", err)
	}
	b.mu.Lock()
	b.calls = nil
	b.mu.Unlock()
	return c
}

var (
	paris = domain.Destination{ID: 1, Name: "Paris"}
	rome  = domain.Destination{ID: 5, Name: "Rome"}
	kyoto = domain.Destination{ID: 9, Name: "Kyoto"}
)

// ---------------------------------------------------------------------------
// Session tests
// ---------------------------------------------------------------------------

func TestSessionController_CheckAuth_LoadsDestinations(t *testing.T) {
	b := &stubBackend{checkAuthFn: userFn(42), listFn: listOf(paris)}
	c := NewSessionController(b, zerolog.Nop())

	if err := c.CheckAuth(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v := c.View()
	if v.State != domain.StateLoggedIn || v.User == nil || v.User.ID != 42 {
		t.Fatalf("expected logged in as 42, got %+v", v)
	}
	if b.count("list:42") != 1 {
		t.Fatalf("expected one fetch for user 42, calls=%v", b.calls)
	}
	if !reflect.DeepEqual(v.Destinations, []domain.Destination{paris}) {
		t.Fatalf("unexpected destinations: %+v", v.Destinations)
	}
	for _, want := range []domain.ViewName{domain.ViewLogoutControl, domain.ViewAddDestinationForm, domain.ViewDestinationList} {
		if !v.CanShow(want) {
			t.Fatalf("expected %s to be reachable", want)
		}
	}
}

func TestSessionController_CheckAuth_Unauthorized(t *testing.T) {
	var buf bytes.Buffer
	b := &stubBackend{checkAuthFn: func(context.Context) (*domain.User, error) {
		return nil, &statusErr{code: 401}
	}}
	c := NewSessionController(b, zerolog.New(&buf))

	err := c.CheckAuth(context.Background())
	if !errors.Is(err, domain.ErrRemoteStatus) {
		t.Fatalf("expected ErrRemoteStatus, got %v", err)
	}

	v := c.View()
	if v.State != domain.StateLoggedOut {
		t.Fatalf("expected logged out, got %s", v.State)
	}
	if !reflect.DeepEqual(v.Reachable(), []domain.ViewName{domain.ViewLoginForm, domain.ViewRegistrationForm}) {
		t.Fatalf("unexpected views: %v", v.Reachable())
	}
	if b.count("list") != 0 {
		t.Fatalf("no fetch expected, calls=%v", b.calls)
	}
	if !strings.Contains(buf.String(), "authentication check failed") || !strings.Contains(buf.String(), `"status":401`) {
		t.Fatalf("expected diagnostic entry, got %q", buf.String())
	}
}

func TestSessionController_Login_Success(t *testing.T) {
	var got domain.Credentials
	b := &stubBackend{
		loginFn: func(_ context.Context, creds domain.Credentials) (*domain.User, error) {
			got = creds
			return &domain.User{ID: 7}, nil
		},
		listFn: listOf(),
	}
	c := NewSessionController(b, zerolog.Nop())

	creds := domain.Credentials{Email: "a@b.com", Password: "x"}
	if err := c.Login(context.Background(), creds); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != creds {
		t.Fatalf("credentials not forwarded: %+v", got)
	}
	v := c.View()
	if v.State != domain.StateLoggedIn || v.User.ID != 7 {
		t.Fatalf("expected user 7, got %+v", v.User)
	}
	if b.count("list:7") != 1 {
		t.Fatalf("expected exactly one fetch for user 7, calls=%v", b.calls)
	}
	if v.Destinations == nil || len(v.Destinations) != 0 {
		t.Fatalf("expected empty, non-nil collection, got %#v", v.Destinations)
	}
}

func TestSessionController_Login_Failure(t *testing.T) {
	b := &stubBackend{loginFn: func(context.Context, domain.Credentials) (*domain.User, error) {
		return nil, &statusErr{code: 401}
	}}
	c := NewSessionController(b, zerolog.Nop())

	if err := c.Login(context.Background(), domain.Credentials{Username: "x", Password: "y"}); err == nil {
		t.Fatalf("expected error")
	}
	if c.View().State != domain.StateLoggedOut {
		t.Fatalf("expected to stay logged out")
	}
	if b.count("list") != 0 {
		t.Fatalf("no fetch expected")
	}
}

func TestSessionController_Login_NoUserInResponse(t *testing.T) {
	b := &stubBackend{}
	c := NewSessionController(b, zerolog.Nop())

	err := c.Login(context.Background(), domain.Credentials{Username: "x", Password: "y"})
	if !errors.Is(err, domain.ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	if c.View().State != domain.StateLoggedOut {
		t.Fatalf("expected to stay logged out")
	}
}

func TestSessionController_Register_Success(t *testing.T) {
	b := &stubBackend{
		registerFn: func(_ context.Context, reg domain.Registration) (*domain.User, error) {
			return &domain.User{ID: 3, Username: reg.Username, Email: reg.Email}, nil
		},
		listFn: listOf(),
	}
	c := NewSessionController(b, zerolog.Nop())

	if err := c.Register(context.Background(), domain.Registration{Username: "lin", Email: "lin@example.com", Password: "pw"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := c.View()
	if v.User == nil || *v.User != (domain.User{ID: 3, Username: "lin", Email: "lin@example.com"}) {
		t.Fatalf("user not set to backend value: %+v", v.User)
	}
	if b.count("list:3") != 1 {
		t.Fatalf("expected one fetch, calls=%v", b.calls)
	}
}

func TestSessionController_RepeatedLogins_FetchOncePerLogin(t *testing.T) {
	next := int64(0)
	b := &stubBackend{
		loginFn: func(context.Context, domain.Credentials) (*domain.User, error) {
			next++
			return &domain.User{ID: next}, nil
		},
		listFn: listOf(),
	}
	c := NewSessionController(b, zerolog.Nop())

	for i := 0; i < 3; i++ {
		if err := c.Login(context.Background(), domain.Credentials{Username: "u", Password: "p"}); err != nil {
			t.Fatalf("login %d: %v", i, err)
		}
		if got := c.View().User.ID; got != next {
			t.Fatalf("expected user %d, got %d", next, got)
		}
	}
	if b.count("list") != 3 {
		t.Fatalf("expected 3 fetches, calls=%v", b.calls)
	}
}

func TestSessionController_Login_FetchFails_KeepsStaleList(t *testing.T) {
	b := &stubBackend{}
	c := loggedIn(t, b, paris)

	b.loginFn = func(context.Context, domain.Credentials) (*domain.User, error) { return &domain.User{ID: 8}, nil }
	b.listFn = func(context.Context, int64) ([]domain.Destination, error) { return nil, &statusErr{code: 500} }

	if err := c.Login(context.Background(), domain.Credentials{Username: "u", Password: "p"}); err != nil {
		t.Fatalf("login itself succeeded, got %v", err)
	}
	v := c.View()
	if v.User.ID != 8 {
		t.Fatalf("expected user 8, got %d", v.User.ID)
	}
	if !reflect.DeepEqual(v.Destinations, []domain.Destination{paris}) {
		t.Fatalf("expected stale list to remain, got %+v", v.Destinations)
	}
}

func TestSessionController_Logout_Success(t *testing.T) {
	b := &stubBackend{}
	c := loggedIn(t, b, paris)
	c.SelectDestination(paris)

	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := c.View()
	if v.State != domain.StateLoggedOut || v.User != nil {
		t.Fatalf("expected logged out, got %+v", v)
	}
	for _, hidden := range []domain.ViewName{domain.ViewLogoutControl, domain.ViewAddDestinationForm, domain.ViewDestinationList, domain.ViewDestinationDetails} {
		if v.CanShow(hidden) {
			t.Fatalf("%s must be unreachable after logout", hidden)
		}
	}
	if len(v.Destinations) != 1 {
		t.Fatalf("collection is left stale, got %+v", v.Destinations)
	}
}

func TestSessionController_Logout_Failure_KeepsUser(t *testing.T) {
	b := &stubBackend{logoutFn: func(context.Context) error { return errors.New("connection reset") }}
	c := loggedIn(t, b, paris)

	if err := c.Logout(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if c.View().State != domain.StateLoggedIn {
		t.Fatalf("expected to remain logged in")
	}
}

// ---------------------------------------------------------------------------
// Destination tests
// ---------------------------------------------------------------------------

func TestSessionController_Fetch_RequiresUser(t *testing.T) {
	b := &stubBackend{}
	c := NewSessionController(b, zerolog.Nop())

	if err := c.FetchDestinations(context.Background()); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if err := c.AddDestination(context.Background(), domain.NewDestination{Name: "Oslo"}); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if len(b.calls) != 0 {
		t.Fatalf("no request expected, calls=%v", b.calls)
	}
}

func TestSessionController_Fetch_ReplacesWholesale(t *testing.T) {
	b := &stubBackend{}
	c := loggedIn(t, b, paris, rome)

	b.listFn = listOf(kyoto)
	if err := c.FetchDestinations(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(c.View().Destinations, []domain.Destination{kyoto}) {
		t.Fatalf("expected exactly the fetched payload, got %+v", c.View().Destinations)
	}
}

func TestSessionController_Delete_Refetches(t *testing.T) {
	b := &stubBackend{}
	c := loggedIn(t, b, paris, rome)

	b.listFn = listOf(paris)
	if err := c.DeleteDestination(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.count("delete:42:5") != 1 || b.count("list:42") != 1 {
		t.Fatalf("expected delete then fetch, calls=%v", b.calls)
	}
	if _, ok := domain.FindDestination(c.View().Destinations, 5); ok {
		t.Fatalf("destination 5 should be gone")
	}
}

func TestSessionController_Add_Refetches(t *testing.T) {
	var submitted domain.NewDestination
	b := &stubBackend{}
	c := loggedIn(t, b, paris)

	b.addFn = func(_ context.Context, _ int64, d domain.NewDestination) error {
		submitted = d
		return nil
	}
	b.listFn = listOf(paris, kyoto)

	nd := domain.NewDestination{Name: "Kyoto", Activities: "temples"}
	if err := c.AddDestination(context.Background(), nd); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if submitted != nd {
		t.Fatalf("fields not forwarded: %+v", submitted)
	}
	if !reflect.DeepEqual(c.View().Destinations, []domain.Destination{paris, kyoto}) {
		t.Fatalf("unexpected list: %+v", c.View().Destinations)
	}
}

func TestSessionController_Add_Failure_NoRefetch(t *testing.T) {
	var buf bytes.Buffer
	b := &stubBackend{}
	c := loggedIn(t, b, paris)
	c.log = zerolog.New(&buf)

	b.addFn = func(context.Context, int64, domain.NewDestination) error { return &statusErr{code: 500} }

	if err := c.AddDestination(context.Background(), domain.NewDestination{Name: "Oslo"}); err == nil {
		t.Fatalf("expected error")
	}
	if b.count("list") != 0 {
		t.Fatalf("no fetch expected after failure, calls=%v", b.calls)
	}
	if !reflect.DeepEqual(c.View().Destinations, []domain.Destination{paris}) {
		t.Fatalf("list must be unchanged")
	}
	if !strings.Contains(buf.String(), "adding destination failed") {
		t.Fatalf("expected diagnostic entry, got %q", buf.String())
	}
}

func TestSessionController_Update_Refetches(t *testing.T) {
	b := &stubBackend{}
	c := loggedIn(t, b, rome)

	updated := rome
	updated.Activities = "colosseum"
	b.listFn = listOf(updated)

	if err := c.UpdateDestination(context.Background(), 5, domain.DestinationUpdate{Activities: "colosseum"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.count("update:42:5") != 1 || b.count("list:42") != 1 {
		t.Fatalf("expected update then fetch, calls=%v", b.calls)
	}
	if c.View().Destinations[0].Activities != "colosseum" {
		t.Fatalf("expected refreshed element, got %+v", c.View().Destinations)
	}
}

// ---------------------------------------------------------------------------
// Selection tests
// ---------------------------------------------------------------------------

func TestSessionController_Select_IsLocal(t *testing.T) {
	b := &stubBackend{}
	c := loggedIn(t, b, paris, rome)

	c.SelectDestination(rome)

	v := c.View()
	if v.Selected == nil || *v.Selected != rome {
		t.Fatalf("expected rome selected, got %+v", v.Selected)
	}
	if !v.CanShow(domain.ViewDestinationDetails) {
		t.Fatalf("details view should be reachable")
	}
	if len(b.calls) != 0 {
		t.Fatalf("select must not call the backend, calls=%v", b.calls)
	}
	if len(v.Destinations) != 2 {
		t.Fatalf("select must not mutate the list")
	}
}

func TestSessionController_Select_ResolvedAfterRefresh(t *testing.T) {
	b := &stubBackend{}
	c := loggedIn(t, b, paris, rome)
	c.SelectDestination(rome)

	renamed := rome
	renamed.Name = "Roma"
	b.listFn = listOf(paris, renamed)
	if err := c.FetchDestinations(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if sel := c.View().Selected; sel == nil || sel.Name != "Roma" {
		t.Fatalf("expected selection refreshed to Roma, got %+v", sel)
	}

	b.listFn = listOf(paris)
	if err := c.DeleteDestination(context.Background(), 5); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if sel := c.View().Selected; sel != nil {
		t.Fatalf("expected selection cleared once gone, got %+v", sel)
	}
}

func TestSessionController_View_IsACopy(t *testing.T) {
	b := &stubBackend{}
	c := loggedIn(t, b, paris)
	c.SelectDestination(paris)

	v := c.View()
	v.Destinations[0].Name = "mutated"
	v.Selected.Name = "mutated"
	v.User.ID = 0

	again := c.View()
	if again.Destinations[0].Name != "Paris" || again.Selected.Name != "Paris" || again.User.ID != 42 {
		t.Fatalf("snapshot mutation leaked into controller: %+v", again)
	}
}

// ---------------------------------------------------------------------------
// Failure idempotence
// ---------------------------------------------------------------------------

func TestSessionController_FailedCalls_LeaveStateUnchanged(t *testing.T) {
	boom := &statusErr{code: 500}

	cases := []struct {
		name string
		run  func(c *SessionController, b *stubBackend) error
	}{
		{"check_auth", func(c *SessionController, b *stubBackend) error {
			b.checkAuthFn = func(context.Context) (*domain.User, error) { return nil, boom }
			return c.CheckAuth(context.Background())
		}},
		{"login", func(c *SessionController, b *stubBackend) error {
			b.loginFn = func(context.Context, domain.Credentials) (*domain.User, error) { return nil, boom }
			return c.Login(context.Background(), domain.Credentials{Username: "u", Password: "p"})
		}},
		{"register", func(c *SessionController, b *stubBackend) error {
			b.registerFn = func(context.Context, domain.Registration) (*domain.User, error) { return nil, boom }
			return c.Register(context.Background(), domain.Registration{Username: "u", Email: "u@x.io", Password: "p"})
		}},
		{"logout", func(c *SessionController, b *stubBackend) error {
			b.logoutFn = func(context.Context) error { return boom }
			return c.Logout(context.Background())
		}},
		{"fetch", func(c *SessionController, b *stubBackend) error {
			b.listFn = func(context.Context, int64) ([]domain.Destination, error) { return nil, boom }
			return c.FetchDestinations(context.Background())
		}},
		{"add", func(c *SessionController, b *stubBackend) error {
			b.addFn = func(context.Context, int64, domain.NewDestination) error { return boom }
			return c.AddDestination(context.Background(), domain.NewDestination{Name: "Oslo"})
		}},
		{"delete", func(c *SessionController, b *stubBackend) error {
			b.deleteFn = func(context.Context, int64, int64) error { return boom }
			return c.DeleteDestination(context.Background(), 1)
		}},
		{"update", func(c *SessionController, b *stubBackend) error {
			b.updateFn = func(context.Context, int64, int64, domain.DestinationUpdate) error { return boom }
			return c.UpdateDestination(context.Background(), 1, domain.DestinationUpdate{Activities: "x"})
		}},
		{"canceled", func(c *SessionController, b *stubBackend) error {
			b.listFn = func(ctx context.Context, _ int64) ([]domain.Destination, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			}
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return c.FetchDestinations(ctx)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := &stubBackend{}
			c := loggedIn(t, b, paris, rome)
			c.SelectDestination(rome)
			before := c.View()

			if err := tc.run(c, b); err == nil {
				t.Fatalf("expected error")
			}
			if after := c.View(); !reflect.DeepEqual(before, after) {
				t.Fatalf("state changed on failure:\nbefore %+v\nafter  %+v", before, after)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Intents & concurrency
// ---------------------------------------------------------------------------

func TestSessionController_Handle_RoutesIntents(t *testing.T) {
	b := &stubBackend{}
	c := loggedIn(t, b, paris, rome)

	if err := c.Handle(context.Background(), ports.Intent{Kind: ports.IntentDeleteDestination, DestinationID: 5}); err != nil {
		t.Fatalf("delete intent: %v", err)
	}
	if b.count("delete:42:5") != 1 {
		t.Fatalf("expected delete call, calls=%v", b.calls)
	}

	err := c.Handle(context.Background(), ports.Intent{Kind: "teleport"})
	if !errors.Is(err, domain.ErrUnknownIntent) {
		t.Fatalf("expected ErrUnknownIntent, got %v", err)
	}
}

func TestSessionController_ConcurrentUse(t *testing.T) {
	b := &stubBackend{}
	c := loggedIn(t, b, paris, rome, kyoto)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			_ = c.FetchDestinations(context.Background())
		}()
		go func() {
			defer wg.Done()
			c.SelectDestination(kyoto)
		}()
		go func() {
			defer wg.Done()
			_ = c.View()
		}()
	}
	wg.Wait()

	if got := len(c.View().Destinations); got != 3 {
		t.Fatalf("expected 3 destinations, got %d", got)
	}
}

func TestSessionController_Fetch_DroppedAfterUserChange(t *testing.T) {
	b := &stubBackend{}
	c := loggedIn(t, b, paris)
	ctx := context.Background()

	b.loginFn = func(context.Context, domain.Credentials) (*domain.User, error) {
		return &domain.User{ID: 7}, nil
	}
	b.listFn = func(ctx context.Context, userID int64) ([]domain.Destination, error) {
		if userID == 42 {
			// The session switches to user 7 while user 42's fetch is in flight.
			_ = c.Logout(ctx)
			_ = c.Login(ctx, domain.Credentials{Username: "b"})
			return []domain.Destination{rome}, nil
		}
		return []domain.Destination{kyoto}, nil
	}

	if err := c.FetchDestinations(ctx); err != nil {
		t.Fatalf("FetchDestinations: %v", err)
	}

	v := c.View()
	if v.User == nil || v.User.ID != 7 {
		t.Fatalf("expected user 7, got %+v", v.User)
	}
	if !reflect.DeepEqual(v.Destinations, []domain.Destination{kyoto}) {
		t.Fatalf("user 7 must not see user 42's list, got %+v", v.Destinations)
	}
}

func TestSessionController_Fetch_DroppedAfterLogout(t *testing.T) {
	b := &stubBackend{}
	c := loggedIn(t, b, paris)
	ctx := context.Background()

	b.listFn = func(ctx context.Context, userID int64) ([]domain.Destination, error) {
		_ = c.Logout(ctx)
		return []domain.Destination{rome}, nil
	}

	if err := c.FetchDestinations(ctx); err != nil {
		t.Fatalf("FetchDestinations: %v", err)
	}
	v := c.View()
	if v.State != domain.StateLoggedOut {
		t.Fatalf("expected logged out, got %s", v.State)
	}
	if !reflect.DeepEqual(v.Destinations, []domain.Destination{paris}) {
		t.Fatalf("late fetch must not replace the stale list, got %+v", v.Destinations)
	}
}

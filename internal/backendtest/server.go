// Package backendtest provides an in-memory implementation of the destinations
// backend for tests. It serves the same endpoints the client consumes, keeps a
// signed session cookie, and lets tests force failures per route.
package backendtest

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/core/domain"
)

// SessionCookie is the name of the cookie holding the signed session.
const SessionCookie = "session"

// Route keys accepted by Fail and Hang.
const (
	RouteCheckAuth   = "GET /api/check-auth"
	RouteLogin       = "POST /api/login"
	RouteRegister    = "POST /api/register"
	RouteLogout      = "POST /api/logout"
	RouteList        = "GET /api/users/:user_id/destinations"
	RouteAdd         = "POST /api/users/:user_id/add_destination"
	RouteDelete      = "POST /api/users/:user_id/delete_destination/:destination_id"
	RouteUpdate      = "POST /api/users/:user_id/update_destination/:destination_id"
	sessionTTL       = time.Hour
	passwordHashCost = bcrypt.MinCost
)

type account struct {
	user         domain.User
	passwordHash []byte
}

// Server is a running fake backend.
type Server struct {
	*httptest.Server

	secret []byte

	mu           sync.Mutex
	accounts     map[int64]*account
	destinations map[int64]map[int64]domain.Destination
	nextUserID   int64
	nextDestID   int64
	failures     map[string]int
	hangs        map[string]chan struct{}
	calls        []Call
}

// Call records one request the fake received.
type Call struct {
	Route     string
	Path      string
	RequestID string
}

// New starts a fake backend. Callers must Close it.
func New() *Server {
	s := &Server{
		secret:       []byte("backendtest-secret"),
		accounts:     make(map[int64]*account),
		destinations: make(map[int64]map[int64]domain.Destination),
		failures:     make(map[string]int),
		hangs:        make(map[string]chan struct{}),
	}
	s.Server = httptest.NewServer(s.router())
	return s
}

// Close releases any hung requests and shuts the server down.
func (s *Server) Close() {
	s.mu.Lock()
	for route, ch := range s.hangs {
		close(ch)
		delete(s.hangs, route)
	}
	s.mu.Unlock()
	s.Server.Close()
}

// Fail makes every request to route answer with status until cleared with 0.
func (s *Server) Fail(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, route)
		return
	}
	s.failures[route] = status
}

// Hang blocks requests to route until the returned release func is called
// or the request context ends.
func (s *Server) Hang(route string) (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.hangs[route] = ch
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			if s.hangs[route] == ch {
				delete(s.hangs, route)
				close(ch)
			}
			s.mu.Unlock()
		})
	}
}

// Calls returns the requests received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CountCalls returns how many requests hit route.
func (s *Server) CountCalls(route string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Route == route {
			n++
		}
	}
	return n
}

// SeedUser creates an account directly.
func (s *Server) SeedUser(username, email, password string) domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		panic(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createLocked(username, email, hash)
}

// SeedDestination stores a destination for userID directly.
func (s *Server) SeedDestination(userID int64, d domain.NewDestination) domain.Destination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(userID, d)
}

// Destinations returns the stored destinations of userID ordered by id.
func (s *Server) Destinations(userID int64) []domain.Destination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked(userID)
}

func (s *Server) createLocked(username, email string, hash []byte) domain.User {
	s.nextUserID++
	u := domain.User{ID: s.nextUserID, Username: username, Email: email}
	s.accounts[u.ID] = &account{user: u, passwordHash: hash}
	s.destinations[u.ID] = make(map[int64]domain.Destination)
	return u
}

func (s *Server) addLocked(userID int64, d domain.NewDestination) domain.Destination {
	s.nextDestID++
	dest := domain.Destination{
		ID:             s.nextDestID,
		Name:           d.Name,
		PosterURL:      d.PosterURL,
		Activities:     d.Activities,
		Accommodations: d.Accommodations,
		Transportation: d.Transportation,
		UserID:         userID,
	}
	if s.destinations[userID] == nil {
		s.destinations[userID] = make(map[int64]domain.Destination)
	}
	s.destinations[userID][dest.ID] = dest
	return dest
}

func (s *Server) listLocked(userID int64) []domain.Destination {
	out := make([]domain.Destination, 0, len(s.destinations[userID]))
	for _, d := range s.destinations[userID] {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Server) router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(s.recordAndInject)

	e.GET("/api/check-auth", s.checkAuth)
	e.POST("/api/login", s.login)
	e.POST("/api/register", s.register)
	e.POST("/api/logout", s.logout)

	users := e.Group("/api/users/:user_id", s.requireOwner)
	users.GET("/destinations", s.list)
	users.POST("/add_destination", s.add)
	users.POST("/delete_destination/:destination_id", s.delete)
	users.POST("/update_destination/:destination_id", s.update)

	return e
}

// recordAndInject logs the call, then applies any forced failure or hang.
func (s *Server) recordAndInject(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		route := c.Request().Method + " " + c.Path()

		s.mu.Lock()
		s.calls = append(s.calls, Call{
			Route:     route,
			Path:      c.Request().URL.Path,
			RequestID: c.Request().Header.Get("X-Request-ID"),
		})
		status, failing := s.failures[route]
		hang := s.hangs[route]
		s.mu.Unlock()

		if hang != nil {
			select {
			case <-hang:
			case <-c.Request().Context().Done():
				return nil
			}
		}
		if failing {
			return c.JSON(status, map[string]string{"error": http.StatusText(status)})
		}
		return next(c)
	}
}

// --- session ---

type credentialsRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) checkAuth(c echo.Context) error {
	u, ok := s.sessionUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not logged in"})
	}
	return c.JSON(http.StatusOK, map[string]any{"user": u})
}

func (s *Server) login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	s.mu.Lock()
	var found *account
	for _, a := range s.accounts {
		if (req.Username != "" && a.user.Username == req.Username) || (req.Email != "" && a.user.Email == req.Email) {
			found = a
			break
		}
	}
	s.mu.Unlock()

	if found == nil || bcrypt.CompareHashAndPassword(found.passwordHash, []byte(req.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid username or password"})
	}
	if err := s.startSession(c, found.user.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"user": found.user})
}

func (s *Server) register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil || req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "username and password are required"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordHashCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	for _, a := range s.accounts {
		if a.user.Username == req.Username {
			s.mu.Unlock()
			return c.JSON(http.StatusConflict, map[string]string{"error": "user already exists"})
		}
	}
	u := s.createLocked(req.Username, req.Email, hash)
	s.mu.Unlock()

	if err := s.startSession(c, u.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"user": u})
}

func (s *Server) logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) startSession(c echo.Context, userID int64) error {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"exp": time.Now().Add(sessionTTL).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{Name: SessionCookie, Value: signed, Path: "/", HttpOnly: true})
	return nil
}

// sessionUser resolves the account behind the session cookie.
func (s *Server) sessionUser(c echo.Context) (domain.User, bool) {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return domain.User{}, false
	}

	claims := jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(cookie.Value, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tkn.Valid {
		return domain.User{}, false
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return domain.User{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return domain.User{}, false
	}
	return a.user, true
}

// requireOwner rejects requests without a session or for another user's path.
func (s *Server) requireOwner(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, ok := s.sessionUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not logged in"})
		}
		if c.Param("user_id") != strconv.FormatInt(u.ID, 10) {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
		c.Set("user_id", u.ID)
		return next(c)
	}
}

// --- destinations ---

func (s *Server) list(c echo.Context) error {
	userID := c.Get("user_id").(int64)
	s.mu.Lock()
	out := s.listLocked(userID)
	s.mu.Unlock()
	return c.JSON(http.StatusOK, out)
}

func (s *Server) add(c echo.Context) error {
	userID := c.Get("user_id").(int64)
	var req domain.NewDestination
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "please provide a destination"})
	}

	s.mu.Lock()
	d := s.addLocked(userID, req)
	s.mu.Unlock()
	return c.JSON(http.StatusCreated, d)
}

func (s *Server) delete(c echo.Context) error {
	userID := c.Get("user_id").(int64)
	id, err := strconv.ParseInt(c.Param("destination_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid destination id"})
	}

	s.mu.Lock()
	_, ok := s.destinations[userID][id]
	delete(s.destinations[userID], id)
	s.mu.Unlock()

	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "destination not found"})
	}
	return c.NoContent(http.StatusOK)
}

func (s *Server) update(c echo.Context) error {
	userID := c.Get("user_id").(int64)
	id, err := strconv.ParseInt(c.Param("destination_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid destination id"})
	}
	var req domain.DestinationUpdate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.destinations[userID][id]
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "destination not found"})
	}
	if req.PosterURL != "" {
		d.PosterURL = req.PosterURL
	}
	if req.Activities != "" {
		d.Activities = req.Activities
	}
	if req.Accommodations != "" {
		d.Accommodations = req.Accommodations
	}
	if req.Transportation != "" {
		d.Transportation = req.Transportation
	}
	s.destinations[userID][id] = d
	return c.NoContent(http.StatusOK)
}

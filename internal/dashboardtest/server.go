// Package dashboardtest runs an in-memory dashboard with the same endpoint
// contracts as the real server.
package dashboardtest

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kurochkinivan/dashboard_client/internal/domain"
)

const sessionCookie = "session"

// Upload records one request to the upload endpoint.
type Upload struct {
	Filenames     []string
	Sizes         []int64
	WebhookURL    string
	ContentLength int64
}

// Sent records one notification dispatch.
type Sent struct {
	Date string
	Env  string
}

type cannedResponse struct {
	status int
	body   any
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	username string
	password string

	files    map[string]*domain.RemoteFile
	daily    map[string]*domain.DailyReport
	monthly  map[string]*domain.MonthlyReport
	leaders  []*domain.TeamLeader
	nextID   int
	schedule domain.Schedule

	uploads    []Upload
	sent       []Sent
	requests   map[string]int
	requestIDs []string
	canned     map[string]cannedResponse
}

type Option func(*Server)

// WithCredentials makes every API route require a session obtained through
// POST /login with the given credentials.
func WithCredentials(username, password string) Option {
	return func(s *Server) {
		s.username = username
		s.password = password
	}
}

func WithFiles(files ...*domain.RemoteFile) Option {
	return func(s *Server) {
		for _, f := range files {
			s.files[f.Filename] = f
		}
	}
}

func WithDailyReport(r *domain.DailyReport) Option {
	return func(s *Server) {
		s.daily[r.Date] = r
	}
}

func WithMonthlyReport(r *domain.MonthlyReport) Option {
	return func(s *Server) {
		s.monthly[r.YearMonth] = r
	}
}

func WithTeamLeaders(leaders ...*domain.TeamLeader) Option {
	return func(s *Server) {
		for _, l := range leaders {
			s.addLeader(*l)
		}
	}
}

// New starts the server and closes it when the test ends.
func New(t testing.TB, opts ...Option) *Server {
	t.Helper()

	s := &Server{
		files:    make(map[string]*domain.RemoteFile),
		daily:    make(map[string]*domain.DailyReport),
		monthly:  make(map[string]*domain.MonthlyReport),
		nextID:   1,
		schedule: domain.Schedule{Time: "10:00"},
		requests: make(map[string]int),
		canned:   make(map[string]cannedResponse),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)

	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.record)
	r.Use(s.replyCanned)

	r.Post("/login", s.login)

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)

		r.Route("/api", func(r chi.Router) {
			r.Post("/upload", s.upload)

			r.Get("/files", s.listFiles)
			r.Delete("/files/{filename}", s.deleteFile)

			r.Get("/reports/daily/{date}", s.dailyReport)
			r.Get("/reports/monthly/{year_month}", s.monthlyReport)

			r.Post("/send-to-wecom", s.sendToWecom)

			r.Get("/schedule/status", s.scheduleStatus)
			r.Post("/schedule/update", s.updateSchedule)

			r.Get("/team-leaders", s.listLeaders)
			r.Post("/team-leaders", s.createLeader)
			r.Put("/team-leaders/{id}", s.updateLeader)
			r.Delete("/team-leaders/{id}", s.deleteLeader)
		})
	})

	return r
}

// Respond makes every following request to method and path answer with
// status and body. A nil body sends an empty response; a string body is
// sent verbatim.
func (s *Server) Respond(method, path string, status int, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.canned[method+" "+path] = cannedResponse{status: status, body: body}
}

// Requests returns how many requests reached method and path.
func (s *Server) Requests(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.requests[method+" "+path]
}

func (s *Server) RequestIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.requestIDs...)
}

func (s *Server) Uploads() []Upload {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Upload(nil), s.uploads...)
}

func (s *Server) SentReports() []Sent {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Sent(nil), s.sent...)
}

func (s *Server) Schedule() domain.Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.schedule
}

func (s *Server) TeamLeaders() []domain.TeamLeader {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.TeamLeader, 0, len(s.leaders))
	for _, l := range s.leaders {
		out = append(out, *l)
	}

	return out
}

func (s *Server) HasFile(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.files[name]
	return ok
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests[r.Method+" "+r.URL.Path]++
		s.requestIDs = append(s.requestIDs, r.Header.Get("X-Request-ID"))
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) replyCanned(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		canned, ok := s.canned[r.Method+" "+r.URL.Path]
		s.mu.Unlock()

		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		switch body := canned.body.(type) {
		case nil:
			w.WriteHeader(canned.status)
		case string:
			w.WriteHeader(canned.status)
			_, _ = w.Write([]byte(body))
		default:
			writeJSON(w, canned.status, body)
		}
	})
}

// requireSession mimics a login-protected route: without a session the
// request is redirected to the login page.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.username == "" {
			next.ServeHTTP(w, r)
			return
		}

		c, err := r.Cookie(sessionCookie)
		if err != nil || c.Value != s.username {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}

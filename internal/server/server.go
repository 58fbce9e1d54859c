package server

import (
	"context"
	"embed"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sail-dex/pokedex/internal/metrics"
	"github.com/sail-dex/pokedex/pkg/detail"
	"github.com/sail-dex/pokedex/pkg/dictionary"
	"github.com/sail-dex/pokedex/pkg/filter"
	"github.com/sail-dex/pokedex/pkg/pokeapi"
	"github.com/sail-dex/pokedex/pkg/roster"
	"github.com/sail-dex/pokedex/pkg/session"
	"github.com/sirupsen/logrus"
)

//go:embed web
var WebFS embed.FS

// SessionCookie names the cookie carrying the session id.
const SessionCookie = "pokedex_session"

// Limits on the per-session state kept in memory. A session idle for longer
// than DefaultSessionIdle, or pushed out by newer ones past
// DefaultMaxSessions, is forgotten along with its stored preferences.
const (
	DefaultMaxSessions = 1024
	DefaultSessionIdle = 30 * time.Minute
)

// viewer is the view state of one session.
type viewer struct {
	view     *filter.View
	resolver *detail.Resolver
}

type Server struct {
	API      pokeapi.API
	Dir      *roster.Directory
	Dicts    dictionary.Dictionaries
	DictsErr error
	Sessions *session.Store
	Log      *logrus.Logger

	mu      sync.Mutex
	viewers *expirable.LRU[string, *viewer]
}

func New(api pokeapi.API, dir *roster.Directory, dicts dictionary.Dictionaries, dictsErr error, store *session.Store, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
	}
	s := &Server{
		API:      api,
		Dir:      dir,
		Dicts:    dicts,
		DictsErr: dictsErr,
		Sessions: store,
		Log:      log,
	}
	return s.WithSessionLimits(DefaultMaxSessions, DefaultSessionIdle)
}

// WithSessionLimits replaces the session registry with one holding at most
// maxSessions sessions, each dropped after idle without requests. Existing
// sessions are discarded.
func (s *Server) WithSessionLimits(maxSessions int, idle time.Duration) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewers = expirable.NewLRU[string, *viewer](maxSessions, s.forget, idle)
	return s
}

// SessionCount returns how many sessions currently hold view state.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewers.Len()
}

// forget runs when a session leaves the registry.
func (s *Server) forget(sessionID string, _ *viewer) {
	if s.Sessions == nil {
		return
	}
	if err := s.Sessions.Delete(context.Background(), sessionID); err != nil {
		s.Log.Warnf("forget session: %v", err)
	}
}

// Handler builds the routing tree.
func (s *Server) Handler() (http.Handler, error) {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleList)
	mux.HandleFunc("GET /pokemon/{name}", s.handleDetail)

	mux.HandleFunc("GET /api/species", s.handleAPISpecies)
	mux.HandleFunc("GET /api/pokemon/{name}", s.handleAPIPokemon)
	mux.HandleFunc("GET /api/dictionaries", s.handleAPIDictionaries)
	mux.Handle("GET /metrics", metrics.Handler())

	webRoot, err := fs.Sub(WebFS, "web")
	if err != nil {
		return nil, err
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webRoot))))

	return s.withRequestLogging(mux), nil
}

func (s *Server) Start(addr string) error {
	h, err := s.Handler()
	if err != nil {
		return err
	}
	s.Log.Infof("Starting server on %s", addr)
	return http.ListenAndServe(addr, h)
}

// viewerFor returns the view state of a session, creating it on first use.
// Every call counts as activity and restarts the idle timer.
func (s *Server) viewerFor(sessionID string) *viewer {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.viewers.Get(sessionID)
	if !ok {
		v = &viewer{view: &filter.View{}, resolver: detail.NewResolver(s.API, s.Log)}
	}
	s.viewers.Add(sessionID, v)
	return v
}

func (s *Server) viewFor(sessionID string) *filter.View {
	return s.viewerFor(sessionID).view
}

func (s *Server) resolverFor(sessionID string) *detail.Resolver {
	return s.viewerFor(sessionID).resolver
}

// session returns the caller's session id and stored state, issuing a new
// cookie when the request carries none. The session is registered before
// anything is stored for it, so its rows go away when it is evicted.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (string, session.State, error) {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		s.viewerFor(c.Value)
		st, err := s.Sessions.Load(r.Context(), c.Value)
		return c.Value, st, err
	}
	id, err := session.NewSessionID()
	if err != nil {
		return "", session.State{}, err
	}
	s.viewerFor(id)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id, session.State{}, nil
}

func (s *Server) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.Log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.RequestURI(),
			"status":   rec.status,
			"duration": time.Since(start).Truncate(time.Millisecond),
		}).Debug("request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.status = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

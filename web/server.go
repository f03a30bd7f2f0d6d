// Package web serves the server-rendered UI. Every page is assembled from
// sections that load independently; a failed section renders an inline
// error and never fails the page.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/s0up4200/filmdeck/config"
	"github.com/s0up4200/filmdeck/images"
	"github.com/s0up4200/filmdeck/search"
	"github.com/s0up4200/filmdeck/tmdb"
)

//go:embed templates static
var assets embed.FS

var pages = []string{
	"home.html",
	"movie.html",
	"tv.html",
	"season.html",
	"episode.html",
	"person.html",
	"search.html",
	"list.html",
	"people.html",
	"about.html",
	"error.html",
}

const defaultSectionTimeout = 8 * time.Second

// Server is the web UI server
type Server struct {
	cfg      config.ServerConfig
	listing  config.ListingConfig
	region   string
	client   *tmdb.Client
	images   *images.Provider
	resolver *images.Resolver
	search   *search.Service
	logger   zerolog.Logger

	sectionTimeout time.Duration
	templates      map[string]*template.Template
	httpServer     *http.Server
}

// Option configures a Server
type Option func(*Server)

// WithSectionTimeout bounds how long a page waits for its sections before
// rendering the ones still in flight as loading
func WithSectionTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.sectionTimeout = d
		}
	}
}

// NewServer creates the web server. The image provider is started by Start.
func NewServer(cfg *config.Config, client *tmdb.Client, provider *images.Provider, logger zerolog.Logger, opts ...Option) (*Server, error) {
	s := &Server{
		cfg:            cfg.Server,
		listing:        cfg.Listing,
		region:         cfg.TMDB.Region,
		client:         client,
		images:         provider,
		resolver:       images.NewResolver(provider),
		search:         search.NewService(client, cfg.TMDB.IncludeAdult, logger),
		logger:         logger.With().Str("component", "web").Logger(),
		sectionTimeout: defaultSectionTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	templates, err := s.parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	s.templates = templates

	s.httpServer = &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s, nil
}

func (s *Server) parseTemplates() (map[string]*template.Template, error) {
	base, err := template.New("").Funcs(s.templateFuncs()).ParseFS(assets, "templates/layout.html", "templates/partials.html")
	if err != nil {
		return nil, err
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(assets, "templates/"+name); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		templates[name] = t
	}
	return templates, nil
}

// Handler returns the router wrapped in the logging middleware
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/", s.handleHome).Methods(http.MethodGet)
	router.HandleFunc("/movie/{id}", s.handleMovie).Methods(http.MethodGet)
	router.HandleFunc("/tv/{id}", s.handleTV).Methods(http.MethodGet)
	router.HandleFunc("/tv/{id}/season/{season}", s.handleSeason).Methods(http.MethodGet)
	router.HandleFunc("/tv/{id}/season/{season}/episode/{episode}", s.handleEpisode).Methods(http.MethodGet)
	router.HandleFunc("/person/{id}", s.handlePerson).Methods(http.MethodGet)
	router.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet)
	router.HandleFunc("/top-rated-movies", s.handleTopRatedMovies).Methods(http.MethodGet)
	router.HandleFunc("/top-rated-tv-shows", s.handleTopRatedTV).Methods(http.MethodGet)
	router.HandleFunc("/popular-people", s.handlePopularPeople).Methods(http.MethodGet)
	router.HandleFunc("/about", s.handleAbout).Methods(http.MethodGet)

	static, _ := fs.Sub(assets, "static")
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, r, http.StatusNotFound, "Page not found")
	})

	var handler http.Handler = router
	handler = hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("Request")
	})(handler)
	handler = hlog.RequestIDHandler("req_id", "X-Request-Id")(handler)
	handler = hlog.NewHandler(s.logger)(handler)

	return handler
}

// Start starts the image configuration load and serves until Stop
func (s *Server) Start() error {
	s.images.Start(context.Background())

	s.logger.Info().Str("address", s.cfg.Address).Msg("Starting web server")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// sectionContext bounds the section loads of one request
func (s *Server) sectionContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.sectionTimeout)
}

// render executes a page into a buffer so a template error never produces
// a half-written response
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	t, ok := s.templates[name]
	if !ok {
		hlog.FromRequest(r).Error().Str("template", name).Msg("Unknown template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("template", name).Msg("Failed to render template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// respondError renders the error page with the given status
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.render(w, r, status, "error.html", errorView{
		page:    page{Title: http.StatusText(status)},
		Status:  status,
		Message: message,
	})
}

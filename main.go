package main

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"showscout/config"
	"showscout/logger"
	"showscout/render"
	"showscout/template"
	"showscout/upstream"
)

type Server struct {
	config   *config.Config
	log      zerolog.Logger
	router   *mux.Router
	tmdb     *upstream.TMDBClient
	schedule *upstream.ScheduleClient
	spotify  *upstream.SpotifyClient
	pages    *render.PageBuilder
}

func main() {
	cfg := config.Load()
	log := logger.New()

	templates, err := template.LoadSet(cfg.TemplatesDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load templates")
	}

	tmdb := upstream.NewTMDBClient(cfg.TMDBBaseURL, cfg.TMDBAPIKey, log)
	schedule := upstream.NewScheduleClient(cfg.TVMazeBaseURL, log)
	spotify := upstream.NewSpotifyClient(cfg.SpotifyBaseURL, cfg.SpotifyTokenURL,
		cfg.SpotifyClientID, cfg.SpotifyClientSecret, log)

	if err := spotify.Authenticate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to authenticate with Spotify")
	}

	renderer := render.New(templates, tmdb, log)
	pages := render.NewPageBuilder(renderer, tmdb, schedule,
		filepath.Join(cfg.PublicDir, "index.html"), log)

	server := &Server{
		config:   cfg,
		log:      log,
		router:   mux.NewRouter(),
		tmdb:     tmdb,
		schedule: schedule,
		spotify:  spotify,
		pages:    pages,
	}

	server.setupRoutes()

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.Port, server.router); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func (s *Server) setupRoutes() {
	s.router.Use(s.loggingMiddleware)
	s.router.Use(enableCORS)

	static := s.staticHandler()
	for _, prefix := range []string{"/css/", "/assets/", "/scripts/"} {
		s.router.PathPrefix(prefix).Handler(static)
	}

	s.router.HandleFunc("/search", s.handleSearch).Methods("POST")
	s.router.HandleFunc("/tv", s.handleDiscover).Methods("GET")
	s.router.HandleFunc("/tv", s.handleDiscoverBody).Methods("POST")
	s.router.HandleFunc("/tv/{id}", s.handleSeriesDetail).Methods("GET")
	s.router.HandleFunc("/getSchedule", s.handleSchedule).Methods("GET", "POST")
	s.router.HandleFunc("/genres", s.handleGenres).Methods("GET")
	s.router.HandleFunc("/getGenresNames", s.handleGenreNames).Methods("POST")
	s.router.HandleFunc("/getPlaylistsSeries", s.handlePlaylists).Methods("POST")
	s.router.HandleFunc("/", s.handleHome).Methods("GET")
}

// staticHandler serves the public directory, restricted to the allowed
// prefixes. Anything else under a static mount is forbidden.
func (s *Server) staticHandler() http.Handler {
	fs := http.FileServer(http.Dir(s.config.PublicDir))
	allowed := []string{"/css", "/assets", "/scripts"}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, prefix := range allowed {
			if strings.HasPrefix(r.URL.Path, prefix) {
				fs.ServeHTTP(w, r)
				return
			}
		}
		http.Error(w, "Access to this resource is forbidden.", http.StatusForbidden)
	})
}

package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"showscout/render"
)

// decodeBody reads the optional JSON request body. A missing or malformed
// body yields an empty query rather than an error; handlers that require the
// field enforce that themselves.
func decodeBody(r *http.Request) RequestBody {
	var body RequestBody
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}
	return body
}

// writeEnvelope writes the {data, error} JSON envelope shared by all API
// endpoints.
func writeEnvelope(w http.ResponseWriter, status int, data any, errMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	var errField any
	if errMsg != "" {
		errField = errMsg
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data, "error": errField})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	body := decodeBody(r)
	if body.Query == "" {
		writeEnvelope(w, http.StatusBadRequest, nil, "Name is required")
		return
	}

	data, err := s.tmdb.SearchSeries(body.Query)
	if err != nil {
		s.log.Error().Err(err).Msg("series search failed")
		writeEnvelope(w, http.StatusInternalServerError, nil, "Error fetching data")
		return
	}
	if data == nil {
		writeEnvelope(w, http.StatusNotFound, nil, "No data found")
		return
	}

	writeEnvelope(w, http.StatusOK, data, "")
}

// handleDiscover forwards the raw query string to the discover endpoint.
func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request) {
	data, err := s.tmdb.DiscoverSeries(r.URL.RawQuery)
	if err != nil {
		s.log.Error().Err(err).Msg("discover failed")
		writeEnvelope(w, http.StatusInternalServerError, nil, "Error fetching data")
		return
	}

	writeEnvelope(w, http.StatusOK, data, "")
}

func (s *Server) handleDiscoverBody(w http.ResponseWriter, r *http.Request) {
	body := decodeBody(r)

	data, err := s.tmdb.DiscoverSeries(strings.TrimSpace(body.Query))
	if err != nil {
		s.log.Error().Err(err).Msg("discover failed")
		writeEnvelope(w, http.StatusInternalServerError, nil, "Error fetching data")
		return
	}

	writeEnvelope(w, http.StatusOK, data, "")
}

func (s *Server) handleSeriesDetail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		writeEnvelope(w, http.StatusBadRequest, nil, "Id is required")
		return
	}

	detail, err := s.tmdb.SeriesDetail(id)
	if err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("series detail failed")
		writeEnvelope(w, http.StatusInternalServerError, nil, "Error fetching data")
		return
	}

	writeEnvelope(w, http.StatusOK, detail, "")
}

// handleSchedule returns the day's episodes. An invalid date in the body
// silently falls back to today.
func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	body := decodeBody(r)

	episodes, err := s.schedule.Schedule(body.Query)
	if err != nil {
		s.log.Error().Err(err).Msg("schedule fetch failed")
		writeEnvelope(w, http.StatusInternalServerError, nil, "Error fetching data")
		return
	}

	writeEnvelope(w, http.StatusOK, episodes, "")
}

func (s *Server) handleGenres(w http.ResponseWriter, r *http.Request) {
	list, err := s.tmdb.GenreCatalog()
	if err != nil {
		s.log.Error().Err(err).Msg("genre catalog fetch failed")
		writeEnvelope(w, http.StatusInternalServerError, nil, "Error fetching data")
		return
	}

	writeEnvelope(w, http.StatusOK, list, "")
}

func (s *Server) handleGenreNames(w http.ResponseWriter, r *http.Request) {
	body := decodeBody(r)
	if body.Query == "" {
		writeEnvelope(w, http.StatusBadRequest, nil, "Id is required")
		return
	}

	names, err := s.tmdb.GenreNames(body.Query)
	if err != nil {
		s.log.Error().Err(err).Msg("genre name lookup failed")
		writeEnvelope(w, http.StatusInternalServerError, nil, "Error fetching data")
		return
	}
	if names == nil {
		names = []string{}
	}

	writeEnvelope(w, http.StatusOK, names, "")
}

func (s *Server) handlePlaylists(w http.ResponseWriter, r *http.Request) {
	body := decodeBody(r)
	if body.Query == "" {
		writeEnvelope(w, http.StatusBadRequest, nil, "Id is required")
		return
	}

	playlists, err := s.spotify.SearchPlaylists(body.Query)
	if err != nil {
		s.log.Error().Err(err).Msg("playlist search failed")
		writeEnvelope(w, http.StatusInternalServerError, nil, "Error fetching data")
		return
	}

	writeEnvelope(w, http.StatusOK, playlists, "")
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	page, err := s.pages.Compose()
	if err != nil {
		if errors.Is(err, render.ErrNoData) {
			http.Error(w, "No series data available", http.StatusNotFound)
			return
		}
		s.log.Error().Err(err).Msg("page build failed")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.Info().
			Str("remote", r.RemoteAddr).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request")
		next.ServeHTTP(w, r)
	})
}

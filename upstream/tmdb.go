// Package upstream holds the typed clients for the three third-party APIs:
// the TMDB catalog, the TVMaze schedule and the Spotify playlist search.
// Calls carry no timeout and are never retried; each failure is local to the
// request that triggered it.
package upstream

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// TMDBClient calls the TMDB v3 API with bearer authentication.
type TMDBClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	log        zerolog.Logger
}

func NewTMDBClient(baseURL, apiKey string, log zerolog.Logger) *TMDBClient {
	return &TMDBClient{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		apiKey:     apiKey,
		log:        log.With().Str("module", "tmdb").Logger(),
	}
}

func (c *TMDBClient) get(target string, out any) error {
	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "error fetching data")
	}
	defer resp.Body.Close()

	// Upstream error bodies are JSON too; they decode into the zero value of
	// the target shape rather than failing the call.
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to parse response")
	}

	return nil
}

// SearchSeries runs a TV search for the given term.
func (c *TMDBClient) SearchSeries(query string) (*ResponseAPI, error) {
	c.log.Debug().Str("query", query).Msg("searching series")

	data := &ResponseAPI{}
	target := c.baseURL + "/search/tv?query=" + url.QueryEscape(query)
	if err := c.get(target, data); err != nil {
		return nil, err
	}
	return data, nil
}

// DiscoverSeries runs a discover query. rawQuery is appended verbatim as
// already-encoded query parameters.
func (c *TMDBClient) DiscoverSeries(rawQuery string) (*ResponseAPI, error) {
	data := &ResponseAPI{}
	if err := c.get(c.baseURL+"/discover/tv?"+rawQuery, data); err != nil {
		return nil, err
	}
	return data, nil
}

// SeriesDetail fetches the full record for one series id.
func (c *TMDBClient) SeriesDetail(id string) (*DetailedSeries, error) {
	detail := &DetailedSeries{}
	if err := c.get(c.baseURL+"/tv/"+id, detail); err != nil {
		return nil, err
	}
	return detail, nil
}

// GenreCatalog fetches the TV genre list. The mapping is rebuilt on every
// call; nothing is cached across requests.
func (c *TMDBClient) GenreCatalog() (*GenreList, error) {
	list := &GenreList{}
	if err := c.get(c.baseURL+"/genre/tv/list", list); err != nil {
		return nil, err
	}
	return list, nil
}

// GenreNames resolves a comma-joined id list against a freshly fetched
// catalog and returns the matching genre names.
func (c *TMDBClient) GenreNames(ids string) ([]string, error) {
	list, err := c.GenreCatalog()
	if err != nil {
		return nil, err
	}

	var names []string
	for _, genre := range matchGenres(list.Genres, ids) {
		names = append(names, genre.Name)
	}
	return names, nil
}

// ResolveGenres resolves a list of genre ids to id+name pairs, using the same
// matching policy as GenreNames.
func (c *TMDBClient) ResolveGenres(ids []int) ([]Genre, error) {
	list, err := c.GenreCatalog()
	if err != nil {
		return nil, err
	}

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return matchGenres(list.Genres, strings.Join(parts, ", ")), nil
}

// matchGenres selects the catalog entries whose stringified id is contained
// in idList. Containment is substring-based, not token-based: id 2 matches an
// idList of "12". This mirrors the documented matching policy and must not
// be tightened.
func matchGenres(genres []Genre, idList string) []Genre {
	var matched []Genre
	for _, genre := range genres {
		if strings.Contains(idList, strconv.Itoa(genre.ID)) {
			matched = append(matched, genre)
		}
	}
	return matched
}

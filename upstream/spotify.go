package upstream

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// AuthToken is a bearer token obtained through the client-credentials grant.
type AuthToken struct {
	Value      string
	ObtainedAt time.Time
}

// SpotifyClient searches public playlists. The access token is exchanged
// once at startup and re-exchanged lazily when a call comes back 401.
type SpotifyClient struct {
	httpClient   *http.Client
	baseURL      string
	tokenURL     string
	clientID     string
	clientSecret string
	log          zerolog.Logger

	mu    sync.Mutex
	token AuthToken
}

func NewSpotifyClient(baseURL, tokenURL, clientID, clientSecret string, log zerolog.Logger) *SpotifyClient {
	return &SpotifyClient{
		httpClient:   &http.Client{},
		baseURL:      baseURL,
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		log:          log.With().Str("module", "spotify").Logger(),
	}
}

// Authenticate exchanges the client credentials for an access token.
func (c *SpotifyClient) Authenticate() error {
	credentials := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))

	req, err := http.NewRequest(http.MethodPost, c.tokenURL, strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return errors.Wrap(err, "failed to build token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Basic "+credentials)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to fetch Spotify token")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("failed to fetch Spotify token: status %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return errors.Wrap(err, "failed to parse token response")
	}

	c.mu.Lock()
	c.token = AuthToken{Value: body.AccessToken, ObtainedAt: time.Now()}
	c.mu.Unlock()

	c.log.Info().Msg("obtained Spotify access token")
	return nil
}

func (c *SpotifyClient) bearer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token.Value
}

// SearchPlaylists searches playlists related to a series name. The literal
// word " playlist" is appended to the query before URL-encoding.
func (c *SpotifyClient) SearchPlaylists(seriesName string) (*Playlists, error) {
	target := c.baseURL + "/search?q=" + url.QueryEscape(seriesName+" playlist") + "&type=playlist"

	resp, err := c.search(target)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		c.log.Warn().Msg("token expired, re-authenticating")
		if err := c.Authenticate(); err != nil {
			return nil, err
		}
		if resp, err = c.search(target); err != nil {
			return nil, err
		}
	}
	defer resp.Body.Close()

	var body struct {
		Playlists Playlists `json:"playlists"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Wrap(err, "failed to parse playlist response")
	}

	return &body.Playlists, nil
}

func (c *SpotifyClient) search(target string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.bearer())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "error fetching playlists")
	}
	return resp, nil
}

package upstream

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const scheduleDateLayout = "2006-01-02"

// ScheduleClient fetches the US day schedule from TVMaze.
type ScheduleClient struct {
	httpClient *http.Client
	baseURL    string
	log        zerolog.Logger
}

func NewScheduleClient(baseURL string, log zerolog.Logger) *ScheduleClient {
	return &ScheduleClient{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		log:        log.With().Str("module", "schedule").Logger(),
	}
}

// Schedule returns the episodes airing on the given date. An empty or
// unparsable date silently falls back to the current server-local day.
func (c *ScheduleClient) Schedule(date string) ([]Episode, error) {
	target := c.baseURL + "/schedule?country=US&date=" + ResolveScheduleDate(date)

	resp, err := c.httpClient.Get(target)
	if err != nil {
		return nil, errors.Wrap(err, "error fetching schedule")
	}
	defer resp.Body.Close()

	var episodes []Episode
	if err := json.NewDecoder(resp.Body).Decode(&episodes); err != nil {
		return nil, errors.Wrap(err, "failed to parse schedule")
	}

	return episodes, nil
}

// ResolveScheduleDate normalizes a user-supplied date to YYYY-MM-DD,
// substituting today when the input is missing or unparsable.
func ResolveScheduleDate(raw string) string {
	if raw == "" {
		return time.Now().Format(scheduleDateLayout)
	}

	for _, layout := range []string{scheduleDateLayout, time.RFC3339} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.Format(scheduleDateLayout)
		}
	}

	return time.Now().Format(scheduleDateLayout)
}

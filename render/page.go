package render

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"showscout/template"
	"showscout/upstream"
)

// ErrNoData reports that the upstream series fetch yielded nothing to render.
var ErrNoData = errors.New("no series data")

// SeriesSource is the slice of the catalog gateway the page build needs.
type SeriesSource interface {
	DiscoverSeries(rawQuery string) (*upstream.ResponseAPI, error)
}

// ScheduleSource provides the day schedule.
type ScheduleSource interface {
	Schedule(date string) ([]upstream.Episode, error)
}

// PageBuilder assembles the root page: base HTML, today's schedule fragment,
// the first page of series cards and the genre filter options.
type PageBuilder struct {
	renderer *Renderer
	series   SeriesSource
	schedule ScheduleSource
	basePath string
	log      zerolog.Logger
}

func NewPageBuilder(renderer *Renderer, series SeriesSource, schedule ScheduleSource, basePath string, log zerolog.Logger) *PageBuilder {
	return &PageBuilder{
		renderer: renderer,
		series:   series,
		schedule: schedule,
		basePath: basePath,
		log:      log.With().Str("module", "page").Logger(),
	}
}

// Compose returns the full page. It fails with ErrNoData when the series
// fetch comes back empty; schedule or genre failures degrade their sections
// to empty fragments instead.
func (b *PageBuilder) Compose() (string, error) {
	base, err := os.ReadFile(b.basePath)
	if err != nil {
		return "", errors.Wrap(err, "failed to load base page")
	}

	scheduleHTML := ""
	episodes, err := b.schedule.Schedule("")
	if err != nil {
		b.log.Warn().Err(err).Msg("schedule fetch failed, leaving section empty")
	} else {
		scheduleHTML = b.renderer.ScheduleCards(episodes)
	}

	data, err := b.series.DiscoverSeries("page=1")
	if err != nil {
		b.log.Error().Err(err).Msg("series fetch failed")
		return "", ErrNoData
	}
	if data == nil || len(data.Results) == 0 {
		return "", ErrNoData
	}

	cards, registry := b.renderer.SeriesCards(data.Results)

	return template.Render(string(base), map[string]string{
		"schedule":     scheduleHTML,
		"cards":        cards,
		"genreOptions": registry.Options(),
	}), nil
}

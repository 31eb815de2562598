// Package loader drives the incremental-loading front end: debounced search,
// genre filtering and scroll-triggered pagination. The controller owns the
// pagination cursor and the busy flag; event handlers are the only mutators.
// The fetch and DOM sides are injected at construction, so nothing here
// reaches for ambient globals.
package loader

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"showscout/render"
	"showscout/upstream"
)

const (
	searchDebounce = 500 * time.Millisecond
	scrollDebounce = 100 * time.Millisecond

	// Scroll proximity thresholds, in pixels from the bottom of the list.
	scrollThreshold       = 300
	scrollThresholdNarrow = 450
	narrowViewportWidth   = 768
)

// Catalog is the fetch side of the controller: the listing, detail and
// playlist operations exposed by the server.
type Catalog interface {
	SearchSeries(query string) (*upstream.ResponseAPI, error)
	DiscoverSeries(rawQuery string) (*upstream.ResponseAPI, error)
	SeriesDetail(id string) (*upstream.DetailedSeries, error)
	SearchPlaylists(seriesName string) (*upstream.Playlists, error)
}

// View is the DOM side: where rendered fragments land and how the user is
// notified. Notify receives a fully rendered notice fragment.
type View interface {
	AppendCards(html string)
	ClearCards()
	SetGenreFilter(value string)
	ClearSearchField()
	ScrollToTop()
	ShowModal(html string)
	Notify(html string)
}

// ScrollMetrics is a snapshot of the viewport taken when a scroll event
// fires.
type ScrollMetrics struct {
	ScrollY        int
	ViewportHeight int
	ViewportWidth  int
	ContentHeight  int
}

// Controller is the loading state machine. At most one listing fetch is in
// flight at a time, guarded by the busy flag; the flag is set before a fetch
// starts and cleared after rendering completes or fails.
type Controller struct {
	catalog  Catalog
	renderer *render.Renderer
	view     View
	log      zerolog.Logger

	searchDelay time.Duration
	scrollDelay time.Duration

	mu           sync.Mutex
	currentPage  int
	loading      bool
	activeGenre  string
	activeSearch string
	searchTimer  *time.Timer
	scrollTimer  *time.Timer
}

func New(catalog Catalog, renderer *render.Renderer, view View, log zerolog.Logger) *Controller {
	return &Controller{
		catalog:     catalog,
		renderer:    renderer,
		view:        view,
		log:         log.With().Str("module", "loader").Logger(),
		searchDelay: searchDebounce,
		scrollDelay: scrollDebounce,
		currentPage: 1,
		activeGenre: "all",
	}
}

// Start renders the initial page of the default listing.
func (c *Controller) Start() {
	c.setLoading(true)
	c.renderDefault()
}

// State reports the controller's current loading state.
func (c *Controller) State() (page int, loading bool, genre, search string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentPage, c.loading, c.activeGenre, c.activeSearch
}

// OnSearchInput schedules a search for the typed value. Rapid keystrokes
// cancel and reschedule the single pending timer.
func (c *Controller) OnSearchInput(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.searchTimer != nil {
		c.searchTimer.Stop()
	}
	c.searchTimer = time.AfterFunc(c.searchDelay, func() { c.runSearch(value) })
}

// OnScroll schedules a proximity check for a scroll event.
func (c *Controller) OnScroll(metrics ScrollMetrics) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.scrollTimer != nil {
		c.scrollTimer.Stop()
	}
	c.scrollTimer = time.AfterFunc(c.scrollDelay, func() { c.runScroll(metrics) })
}

// OnGenreChange reacts to the genre selector. Not debounced and not gated by
// the busy flag.
func (c *Controller) OnGenreChange(genre string) {
	c.mu.Lock()
	c.currentPage = 1
	c.loading = true
	c.activeGenre = genre
	c.activeSearch = ""
	c.mu.Unlock()

	c.view.ClearCards()
	c.view.ClearSearchField()
	c.view.ScrollToTop()

	query := ""
	if genre != "all" {
		query = "with_genres=" + genre
	}
	c.renderListing(query + "&page=1")
}

// OnGenreButtonClick reacts to a genre button inside a rendered card. It
// resets pagination, search and scroll the same way the genre selector does.
// Click handlers are not gated by the busy flag; a click during an in-flight
// load still triggers its own fetch.
func (c *Controller) OnGenreButtonClick(genreID string) {
	c.mu.Lock()
	c.currentPage = 1
	c.loading = true
	c.activeGenre = genreID
	c.activeSearch = ""
	c.mu.Unlock()

	c.view.ClearCards()
	c.view.ClearSearchField()
	c.view.ScrollToTop()
	c.view.SetGenreFilter(genreID)

	c.renderListing("with_genres=" + strings.TrimSpace(genreID) + "&page=1")
}

// OpenSeriesDetail fetches a series and its related playlists and hands the
// rendered modal to the view.
func (c *Controller) OpenSeriesDetail(id int) {
	info, err := c.catalog.SeriesDetail(strconv.Itoa(id))
	if err != nil {
		c.log.Error().Err(err).Int("id", id).Msg("series detail fetch failed")
		c.notify("Error", "An error occurred while fetching the data.")
		return
	}

	playlists, err := c.catalog.SearchPlaylists(info.Name)
	if err != nil {
		c.log.Warn().Err(err).Str("series", info.Name).Msg("playlist search failed")
		playlists = nil
	}

	c.view.ShowModal(c.renderer.SeriesDetail(info, playlists))
}

func (c *Controller) runSearch(value string) {
	value = strings.TrimSpace(value)

	c.mu.Lock()
	c.currentPage = 1
	c.loading = true
	c.activeSearch = value
	c.mu.Unlock()

	c.view.ClearCards()

	if value == "" {
		c.renderDefault()
		return
	}

	c.mu.Lock()
	c.activeGenre = "all"
	c.mu.Unlock()
	c.view.SetGenreFilter("all")

	data, err := c.catalog.SearchSeries(value)
	if err != nil {
		c.notify("Error", "An error occurred while fetching the data.")
		c.setLoading(false)
		return
	}
	if data == nil || len(data.Results) == 0 {
		c.notify("No Results", "No TV shows found for the search query.")
		c.setLoading(false)
		return
	}

	c.appendResults(data.Results)
}

func (c *Controller) runScroll(metrics ScrollMetrics) {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return
	}

	threshold := scrollThreshold
	if metrics.ViewportWidth < narrowViewportWidth {
		threshold = scrollThresholdNarrow
	}
	if metrics.ScrollY+metrics.ViewportHeight < metrics.ContentHeight-threshold {
		c.mu.Unlock()
		return
	}

	c.loading = true
	c.mu.Unlock()

	c.renderDefault()
}

// renderDefault appends the next page of the default listing.
func (c *Controller) renderDefault() {
	c.mu.Lock()
	page := c.currentPage
	c.mu.Unlock()

	c.renderListing(fmt.Sprintf("page=%d", page))
}

func (c *Controller) renderListing(rawQuery string) {
	data, err := c.catalog.DiscoverSeries(rawQuery)
	if err != nil {
		c.notify("Error", "An error occurred while fetching the data.")
		c.setLoading(false)
		return
	}
	if data == nil {
		c.notify("Error", "No data available.")
		c.setLoading(false)
		return
	}

	c.appendResults(data.Results)
}

// appendResults renders cards for the batch, appends them and advances the
// page cursor before releasing the busy flag.
func (c *Controller) appendResults(series []upstream.Series) {
	cards, _ := c.renderer.SeriesCards(series)
	c.view.AppendCards(cards)

	c.mu.Lock()
	c.currentPage++
	c.loading = false
	c.mu.Unlock()
}

// notify renders the notice fragment and hands it to the view.
func (c *Controller) notify(title, message string) {
	c.view.Notify(c.renderer.Notice(title, message))
}

func (c *Controller) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}

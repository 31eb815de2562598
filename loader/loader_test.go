package loader

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"showscout/render"
	"showscout/template"
	"showscout/upstream"
)

type fakeCatalog struct {
	mu            sync.Mutex
	searchCalls   []string
	discoverCalls []string

	searchData   *upstream.ResponseAPI
	searchErr    error
	discoverData *upstream.ResponseAPI
	discoverErr  error
	detail       *upstream.DetailedSeries
	detailErr    error
	playlists    *upstream.Playlists
	playlistsErr error
}

func (f *fakeCatalog) SearchSeries(query string) (*upstream.ResponseAPI, error) {
	f.mu.Lock()
	f.searchCalls = append(f.searchCalls, query)
	f.mu.Unlock()
	return f.searchData, f.searchErr
}

func (f *fakeCatalog) DiscoverSeries(rawQuery string) (*upstream.ResponseAPI, error) {
	f.mu.Lock()
	f.discoverCalls = append(f.discoverCalls, rawQuery)
	f.mu.Unlock()
	return f.discoverData, f.discoverErr
}

func (f *fakeCatalog) SeriesDetail(id string) (*upstream.DetailedSeries, error) {
	return f.detail, f.detailErr
}

func (f *fakeCatalog) SearchPlaylists(seriesName string) (*upstream.Playlists, error) {
	return f.playlists, f.playlistsErr
}

func (f *fakeCatalog) searched() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.searchCalls...)
}

func (f *fakeCatalog) discovered() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.discoverCalls...)
}

type fakeView struct {
	mu            sync.Mutex
	appended      []string
	cardsCleared  int
	genreFilter   []string
	searchCleared int
	scrolledTop   int
	modals        []string
	notices       []string
}

func (f *fakeView) AppendCards(html string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appended = append(f.appended, html)
}

func (f *fakeView) ClearCards() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cardsCleared++
}

func (f *fakeView) SetGenreFilter(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.genreFilter = append(f.genreFilter, value)
}

func (f *fakeView) ClearSearchField() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCleared++
}

func (f *fakeView) ScrollToTop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scrolledTop++
}

func (f *fakeView) ShowModal(html string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.modals = append(f.modals, html)
}

func (f *fakeView) Notify(html string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = append(f.notices, html)
}

type nopResolver struct{}

func (nopResolver) ResolveGenres(ids []int) ([]upstream.Genre, error) { return nil, nil }

func listing(names ...string) *upstream.ResponseAPI {
	data := &upstream.ResponseAPI{}
	for i, name := range names {
		data.Results = append(data.Results, upstream.Series{ID: i + 1, Name: name, Overview: "x"})
	}
	return data
}

func newTestController(t *testing.T) (*Controller, *fakeCatalog, *fakeView) {
	t.Helper()

	set := &template.Set{
		BaseCard:     `<article>{{card.name}}</article>`,
		SeriesModal:  `<div id="serie-modal"><h2>{{name}}</h2><div>{{playlists}}</div></div>`,
		PlaylistCard: `<a href="{{hrefPlaylist}}">{{name}}</a>`,
		Notice:       `<div>{{title}}: {{message}}</div>`,
	}
	renderer := render.New(set, nopResolver{}, zerolog.Nop())

	catalog := &fakeCatalog{}
	view := &fakeView{}
	return New(catalog, renderer, view, zerolog.Nop()), catalog, view
}

func TestScrollWhileLoadingIsNoOp(t *testing.T) {
	c, catalog, _ := newTestController(t)
	catalog.discoverData = listing("A")

	c.setLoading(true)
	c.runScroll(ScrollMetrics{ScrollY: 1700, ViewportHeight: 600, ViewportWidth: 1024, ContentHeight: 2000})

	if len(catalog.discovered()) != 0 {
		t.Errorf("fetch issued while loading, calls = %v", catalog.discovered())
	}
}

func TestScrollFarFromBottomIsNoOp(t *testing.T) {
	c, catalog, _ := newTestController(t)
	catalog.discoverData = listing("A")

	c.runScroll(ScrollMetrics{ScrollY: 0, ViewportHeight: 600, ViewportWidth: 1024, ContentHeight: 5000})

	if len(catalog.discovered()) != 0 {
		t.Errorf("fetch issued far from the bottom, calls = %v", catalog.discovered())
	}
}

func TestScrollNearBottomAppendsNextPage(t *testing.T) {
	c, catalog, view := newTestController(t)
	catalog.discoverData = listing("A", "B")
	c.currentPage = 2

	c.runScroll(ScrollMetrics{ScrollY: 1200, ViewportHeight: 600, ViewportWidth: 1024, ContentHeight: 2000})

	if got := catalog.discovered(); len(got) != 1 || got[0] != "page=2" {
		t.Fatalf("discover calls = %v, want [page=2]", got)
	}
	if len(view.appended) != 1 {
		t.Fatalf("appended %d batches, want 1", len(view.appended))
	}
	if view.cardsCleared != 0 {
		t.Error("scroll must append, not clear")
	}

	page, loading, _, _ := c.State()
	if page != 3 {
		t.Errorf("page = %d, want 3", page)
	}
	if loading {
		t.Error("busy flag not cleared after render")
	}
}

// The proximity threshold widens from 300px to 450px on narrow viewports.
func TestScrollThresholdDependsOnViewportWidth(t *testing.T) {
	metrics := ScrollMetrics{ScrollY: 1000, ViewportHeight: 600, ContentHeight: 2000}

	t.Run("desktop not close enough", func(t *testing.T) {
		c, catalog, _ := newTestController(t)
		catalog.discoverData = listing("A")

		m := metrics
		m.ViewportWidth = 1024
		c.runScroll(m)
		if len(catalog.discovered()) != 0 {
			t.Errorf("discover calls = %v, want none at 400px from bottom", catalog.discovered())
		}
	})

	t.Run("narrow viewport triggers", func(t *testing.T) {
		c, catalog, _ := newTestController(t)
		catalog.discoverData = listing("A")

		m := metrics
		m.ViewportWidth = 500
		c.runScroll(m)
		if len(catalog.discovered()) != 1 {
			t.Errorf("discover calls = %v, want one", catalog.discovered())
		}
	})
}

func TestEmptySearchFallsBackToDefaultListing(t *testing.T) {
	c, catalog, view := newTestController(t)
	catalog.discoverData = listing("A")
	c.currentPage = 5
	c.activeSearch = "dark"

	c.runSearch("")

	if view.cardsCleared != 1 {
		t.Error("previous results not cleared")
	}
	if got := catalog.discovered(); len(got) != 1 || got[0] != "page=1" {
		t.Fatalf("discover calls = %v, want [page=1]", got)
	}
	if len(catalog.searched()) != 0 {
		t.Error("empty search must not hit the search endpoint")
	}

	page, loading, _, search := c.State()
	if page != 2 {
		t.Errorf("page = %d, want 2 after rendering page 1", page)
	}
	if loading || search != "" {
		t.Errorf("state = loading:%v search:%q", loading, search)
	}
}

func TestSearchRendersResultsAndResetsGenreFilter(t *testing.T) {
	c, catalog, view := newTestController(t)
	catalog.searchData = listing("Dark")
	c.activeGenre = "18"

	c.runSearch("  dark  ")

	if got := catalog.searched(); len(got) != 1 || got[0] != "dark" {
		t.Fatalf("search calls = %v, want trimmed [dark]", got)
	}
	if len(view.genreFilter) != 1 || view.genreFilter[0] != "all" {
		t.Errorf("genre filter updates = %v, want [all]", view.genreFilter)
	}
	if len(view.appended) != 1 || !strings.Contains(view.appended[0], "Dark") {
		t.Errorf("appended = %v", view.appended)
	}

	_, _, genre, search := c.State()
	if genre != "all" || search != "dark" {
		t.Errorf("state genre=%q search=%q", genre, search)
	}
}

func TestSearchWithNoResultsNotifies(t *testing.T) {
	c, catalog, view := newTestController(t)
	catalog.searchData = &upstream.ResponseAPI{}

	c.runSearch("zzz")

	if len(view.notices) != 1 {
		t.Fatalf("notices = %v, want one", view.notices)
	}
	if want := "No Results: No TV shows found for the search query."; !strings.Contains(view.notices[0], want) {
		t.Errorf("notice = %q, want rendered %q", view.notices[0], want)
	}
	if len(view.appended) != 0 {
		t.Error("no cards should be appended")
	}
	if _, loading, _, _ := c.State(); loading {
		t.Error("busy flag not cleared")
	}
}

func TestSearchErrorNotifiesAndClearsBusyFlag(t *testing.T) {
	c, catalog, view := newTestController(t)
	catalog.searchErr = errors.New("boom")

	c.runSearch("dark")

	if len(view.notices) != 1 || !strings.Contains(view.notices[0], "Error") {
		t.Errorf("notices = %v", view.notices)
	}
	if _, loading, _, _ := c.State(); loading {
		t.Error("busy flag must be cleared on failure")
	}
}

// Genre-button clicks are not gated by the busy flag: a click during an
// in-flight load still triggers its own fetch.
func TestGenreButtonClickNotGatedByBusyFlag(t *testing.T) {
	c, catalog, view := newTestController(t)
	catalog.discoverData = listing("A")

	c.setLoading(true)
	c.OnGenreButtonClick("28")

	if got := catalog.discovered(); len(got) != 1 || got[0] != "with_genres=28&page=1" {
		t.Fatalf("discover calls = %v, want [with_genres=28&page=1]", got)
	}
	if view.scrolledTop != 1 {
		t.Error("view not scrolled to top")
	}
	if len(view.genreFilter) != 1 || view.genreFilter[0] != "28" {
		t.Errorf("genre filter updates = %v", view.genreFilter)
	}
}

func TestGenreChange(t *testing.T) {
	c, catalog, view := newTestController(t)
	catalog.discoverData = listing("A")
	c.activeSearch = "dark"

	c.OnGenreChange("18")

	if got := catalog.discovered(); len(got) != 1 || got[0] != "with_genres=18&page=1" {
		t.Fatalf("discover calls = %v", got)
	}
	if view.searchCleared != 1 || view.scrolledTop != 1 || view.cardsCleared != 1 {
		t.Errorf("view = %+v, want search cleared, scrolled top, cards cleared", view)
	}

	_, _, genre, search := c.State()
	if genre != "18" || search != "" {
		t.Errorf("state genre=%q search=%q", genre, search)
	}
}

func TestGenreChangeToAllLoadsUnfiltered(t *testing.T) {
	c, catalog, _ := newTestController(t)
	catalog.discoverData = listing("A")

	c.OnGenreChange("all")

	if got := catalog.discovered(); len(got) != 1 || got[0] != "&page=1" {
		t.Fatalf("discover calls = %v, want [&page=1]", got)
	}
}

func TestSearchInputDebounceCollapsesRapidKeystrokes(t *testing.T) {
	c, catalog, _ := newTestController(t)
	catalog.searchData = listing("Dark")
	c.searchDelay = 20 * time.Millisecond

	c.OnSearchInput("d")
	c.OnSearchInput("da")
	c.OnSearchInput("dark")

	time.Sleep(150 * time.Millisecond)

	if got := catalog.searched(); len(got) != 1 || got[0] != "dark" {
		t.Errorf("search calls = %v, want only the last keystroke", got)
	}
}

func TestOpenSeriesDetailShowsModal(t *testing.T) {
	c, catalog, view := newTestController(t)
	catalog.detail = &upstream.DetailedSeries{ID: 42, Name: "Dark"}
	catalog.playlists = &upstream.Playlists{Items: []*upstream.Playlist{{Name: "Dark OST"}}}

	c.OpenSeriesDetail(42)

	if len(view.modals) != 1 {
		t.Fatalf("modals shown = %d, want 1", len(view.modals))
	}
	if !strings.Contains(view.modals[0], "Dark") || !strings.Contains(view.modals[0], "Dark OST") {
		t.Errorf("modal = %q", view.modals[0])
	}
}

func TestOpenSeriesDetailPlaylistFailureDegrades(t *testing.T) {
	c, catalog, view := newTestController(t)
	catalog.detail = &upstream.DetailedSeries{ID: 42, Name: "Dark"}
	catalog.playlistsErr = errors.New("spotify down")

	c.OpenSeriesDetail(42)

	if len(view.modals) != 1 {
		t.Fatalf("modal should still open without playlists, got %d", len(view.modals))
	}
}

func TestOpenSeriesDetailFetchFailureNotifies(t *testing.T) {
	c, catalog, view := newTestController(t)
	catalog.detailErr = errors.New("boom")

	c.OpenSeriesDetail(42)

	if len(view.modals) != 0 {
		t.Error("modal must not open on fetch failure")
	}
	if len(view.notices) != 1 || !strings.Contains(view.notices[0], "Error") {
		t.Errorf("notices = %v", view.notices)
	}
}

func TestStartRendersFirstPage(t *testing.T) {
	c, catalog, view := newTestController(t)
	catalog.discoverData = listing("A", "B")

	c.Start()

	if got := catalog.discovered(); len(got) != 1 || got[0] != "page=1" {
		t.Fatalf("discover calls = %v, want [page=1]", got)
	}
	if len(view.appended) != 1 || !strings.Contains(view.appended[0], "A") {
		t.Errorf("appended = %v", view.appended)
	}

	page, loading, genre, search := c.State()
	if page != 2 || loading || genre != "all" || search != "" {
		t.Errorf("state = page:%d loading:%v genre:%q search:%q", page, loading, genre, search)
	}
}

// A genre-button click resets the search exactly as the genre selector does:
// the typed term is dropped and the search field cleared.
func TestGenreButtonClickResetsSearch(t *testing.T) {
	c, catalog, view := newTestController(t)
	catalog.searchData = listing("Dark")
	catalog.discoverData = listing("A")

	c.runSearch("dark")
	c.OnGenreButtonClick("28")

	if view.searchCleared != 1 {
		t.Errorf("search field cleared %d times after genre-button click, want 1", view.searchCleared)
	}

	_, _, genre, search := c.State()
	if search != "" || genre != "28" {
		t.Errorf("state genre=%q search=%q, want genre=28 with empty search", genre, search)
	}
}

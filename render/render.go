// Package render turns domain objects into HTML fragments by placeholder
// substitution. Series card fields are namespaced as card.<field>; schedule
// and playlist templates use bare field names. Missing or falsy fields render
// as the literal "Unknown". Values are inserted without escaping, matching
// the template contract.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"showscout/template"
	"showscout/upstream"
)

const unknown = "Unknown"

// GenreResolver resolves genre ids to id+name pairs against the catalog.
type GenreResolver interface {
	ResolveGenres(ids []int) ([]upstream.Genre, error)
}

type Renderer struct {
	templates *template.Set
	genres    GenreResolver
	log       zerolog.Logger
}

func New(templates *template.Set, genres GenreResolver, log zerolog.Logger) *Renderer {
	return &Renderer{
		templates: templates,
		genres:    genres,
		log:       log.With().Str("module", "render").Logger(),
	}
}

// GenreRegistry accumulates the id-to-name mapping seen during one render
// pass. The first id seen for a name wins; insertion order is preserved for
// the filter dropdown.
type GenreRegistry struct {
	names []string
	ids   map[string]int
}

func NewGenreRegistry() *GenreRegistry {
	return &GenreRegistry{ids: make(map[string]int)}
}

func (r *GenreRegistry) Add(genre upstream.Genre) {
	if _, seen := r.ids[genre.Name]; seen {
		return
	}
	r.ids[genre.Name] = genre.ID
	r.names = append(r.names, genre.Name)
}

func (r *GenreRegistry) Len() int { return len(r.names) }

// Options renders the registry as <option> elements for the genre filter.
func (r *GenreRegistry) Options() string {
	var sb strings.Builder
	for _, name := range r.names {
		fmt.Fprintf(&sb, "<option value=\"%d\">%s</option>\n", r.ids[name], name)
	}
	return sb.String()
}

// SeriesCards renders one card per series and returns the joined fragment
// together with the genre registry accumulated along the way. A failed genre
// lookup degrades that card's genre section to an empty string instead of
// failing the batch.
func (r *Renderer) SeriesCards(series []upstream.Series) (string, *GenreRegistry) {
	registry := NewGenreRegistry()

	cards := make([]string, 0, len(series))
	for _, card := range series {
		cards = append(cards, r.seriesCard(card, registry))
	}

	return strings.Join(cards, "\n"), registry
}

func (r *Renderer) seriesCard(card upstream.Series, registry *GenreRegistry) string {
	result := r.templates.BaseCard

	// Fields in declaration order; the genre-id list is the special case.
	fields := []struct {
		key   string
		value string
	}{
		{"card.id", fieldInt(card.ID)},
		{"card.adult", fieldBool(card.Adult)},
		{"card.backdrop_path", fieldString(card.BackdropPath)},
		{"genres", r.genreButtons(card.GenreIDs, registry)},
		{"card.origin_country", fieldStrings(card.OriginCountry)},
		{"card.original_language", fieldString(card.OriginalLanguage)},
		{"card.original_name", fieldString(card.OriginalName)},
		{"card.overview", fieldString(card.Overview)},
		{"card.popularity", fieldFloat(card.Popularity)},
		{"card.poster_path", fieldString(card.PosterPath)},
		{"card.first_air_date", fieldString(card.FirstAirDate)},
		{"card.name", fieldString(card.Name)},
		{"card.vote_average", fieldFloat(card.VoteAverage)},
		{"card.vote_count", fieldInt(card.VoteCount)},
	}

	for _, f := range fields {
		result = strings.ReplaceAll(result, template.Placeholder(f.key), f.value)
	}
	return result
}

func (r *Renderer) genreButtons(ids []int, registry *GenreRegistry) string {
	if len(ids) == 0 {
		return ""
	}

	genres, err := r.genres.ResolveGenres(ids)
	if err != nil {
		r.log.Warn().Err(err).Msg("genre lookup failed, leaving genre section empty")
		return ""
	}

	var sb strings.Builder
	for _, genre := range genres {
		registry.Add(genre)
		fmt.Fprintf(&sb,
			"<button class=\"genre-button\" onclick=\"handleSortByGenreClick('%d', event)\">%s</button>\n",
			genre.ID, genre.Name)
	}
	return sb.String()
}

// ScheduleCards renders the day schedule, one card per episode.
func (r *Renderer) ScheduleCards(episodes []upstream.Episode) string {
	cards := make([]string, 0, len(episodes))
	for _, episode := range episodes {
		cards = append(cards, r.scheduleCard(episode))
	}
	return strings.Join(cards, "\n")
}

func (r *Renderer) scheduleCard(episode upstream.Episode) string {
	result := r.templates.ScheduleCard

	fields := []struct {
		key   string
		value string
	}{
		{"id", fieldInt(episode.ID)},
		{"url", fieldString(episode.URL)},
		{"name", fieldString(episode.Name)},
		{"season", fieldInt(episode.Season)},
		{"number", fieldInt(episode.Number)},
		{"type", fieldString(episode.Type)},
		{"airdate", fieldString(episode.Airdate)},
		{"airtime", fieldString(episode.Airtime)},
		{"airstamp", fieldString(episode.Airstamp)},
		{"runtime", fieldInt(episode.Runtime)},
		{"rating", fieldFloat(episode.Rating.Average)},
		{"image", firstImage(episode.Image)},
		{"summary", fieldString(episode.Summary)},
		// The embedded show contributes only its page URL.
		{"showUrl", episode.Show.URL},
	}

	for _, f := range fields {
		result = strings.ReplaceAll(result, template.Placeholder(f.key), f.value)
	}
	return result
}

// PlaylistCards renders the playlist search results. Nil entries are skipped.
func (r *Renderer) PlaylistCards(playlists *upstream.Playlists) string {
	if playlists == nil || len(playlists.Items) == 0 {
		return ""
	}

	cards := make([]string, 0, len(playlists.Items))
	for index, playlist := range playlists.Items {
		if playlist == nil {
			continue
		}
		cards = append(cards, r.playlistCard(playlist, index))
	}
	return strings.Join(cards, "\n")
}

func (r *Renderer) playlistCard(playlist *upstream.Playlist, index int) string {
	result := r.templates.PlaylistCard

	fields := []struct {
		key   string
		value string
	}{
		{"id", fieldString(playlist.ID)},
		{"name", fieldString(playlist.Name)},
		{"description", fieldString(playlist.Description)},
		// Image list: first entry's URL or empty string.
		{"urlImage", firstPlaylistImage(playlist.Images)},
		// External-URL map: nested platform URL or empty string.
		{"hrefPlaylist", playlist.ExternalURLs.Spotify},
		{"owner", fieldString(playlist.Owner.DisplayName)},
		{"index", strconv.Itoa(index)},
	}

	for _, f := range fields {
		result = strings.ReplaceAll(result, template.Placeholder(f.key), f.value)
	}
	return result
}

// SeriesDetail renders the modal view for one series, embedding its related
// playlists.
func (r *Renderer) SeriesDetail(detail *upstream.DetailedSeries, playlists *upstream.Playlists) string {
	result := r.templates.SeriesModal
	result = strings.ReplaceAll(result, template.Placeholder("playlists"), r.PlaylistCards(playlists))

	fields := []struct {
		key   string
		value string
	}{
		{"id", fieldInt(detail.ID)},
		{"name", fieldString(detail.Name)},
		{"overview", fieldString(detail.Overview)},
		{"poster_path", fieldString(detail.PosterPath)},
		{"backdrop_path", fieldString(detail.BackdropPath)},
		{"first_air_date", fieldString(detail.FirstAirDate)},
		{"last_air_date", fieldString(detail.LastAirDate)},
		{"genres", joinGenreNames(detail.Genres)},
		{"homepage", fieldString(detail.Homepage)},
		{"number_of_episodes", fieldInt(detail.NumberOfEpisodes)},
		{"number_of_seasons", fieldInt(detail.NumberOfSeasons)},
		{"original_language", fieldString(detail.OriginalLanguage)},
		{"original_name", fieldString(detail.OriginalName)},
		{"networks", joinNetworkNames(detail.Networks)},
		{"spoken_languages", joinLanguageNames(detail.SpokenLanguages)},
		{"status", fieldString(detail.Status)},
		{"tagline", fieldString(detail.Tagline)},
		{"vote_average", fieldFloat(detail.VoteAverage)},
		{"vote_count", fieldInt(detail.VoteCount)},
	}

	for _, f := range fields {
		result = strings.ReplaceAll(result, template.Placeholder(f.key), f.value)
	}
	return result
}

// Notice renders the generic notice modal with a title and message.
func (r *Renderer) Notice(title, message string) string {
	return template.Render(r.templates.Notice, map[string]string{
		"title":   title,
		"message": message,
	})
}

func fieldString(value string) string {
	if value == "" {
		return unknown
	}
	return value
}

func fieldInt(value int) string {
	if value == 0 {
		return unknown
	}
	return strconv.Itoa(value)
}

func fieldFloat(value float64) string {
	if value == 0 {
		return unknown
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func fieldBool(value bool) string {
	if !value {
		return unknown
	}
	return "true"
}

func fieldStrings(values []string) string {
	if len(values) == 0 {
		return unknown
	}
	return strings.Join(values, ",")
}

func firstImage(image *upstream.ShowImage) string {
	if image == nil {
		return ""
	}
	return image.Medium
}

func firstPlaylistImage(images []upstream.ImageInfo) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}

func joinGenreNames(genres []upstream.Genre) string {
	names := make([]string, 0, len(genres))
	for _, genre := range genres {
		names = append(names, genre.Name)
	}
	if len(names) == 0 {
		return unknown
	}
	return strings.Join(names, ", ")
}

func joinNetworkNames(networks []upstream.Network) string {
	names := make([]string, 0, len(networks))
	for _, network := range networks {
		names = append(names, network.Name)
	}
	if len(names) == 0 {
		return unknown
	}
	return strings.Join(names, ", ")
}

func joinLanguageNames(languages []upstream.SpokenLanguage) string {
	names := make([]string, 0, len(languages))
	for _, language := range languages {
		names = append(names, language.Name)
	}
	if len(names) == 0 {
		return unknown
	}
	return strings.Join(names, ", ")
}

package upstream

// ResponseAPI is a paginated TMDB listing response.
type ResponseAPI struct {
	Page         int      `json:"page"`
	Results      []Series `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// Series is one entry of a search or discover result.
type Series struct {
	ID               int      `json:"id"`
	Adult            bool     `json:"adult"`
	BackdropPath     string   `json:"backdrop_path"`
	GenreIDs         []int    `json:"genre_ids"`
	OriginCountry    []string `json:"origin_country"`
	OriginalLanguage string   `json:"original_language"`
	OriginalName     string   `json:"original_name"`
	Overview         string   `json:"overview"`
	Popularity       float64  `json:"popularity"`
	PosterPath       string   `json:"poster_path"`
	FirstAirDate     string   `json:"first_air_date"`
	Name             string   `json:"name"`
	VoteAverage      float64  `json:"vote_average"`
	VoteCount        int      `json:"vote_count"`
}

// DetailedSeries is the full record returned by the detail endpoint,
// used only for the modal view.
type DetailedSeries struct {
	ID               int              `json:"id"`
	Name             string           `json:"name"`
	Overview         string           `json:"overview"`
	PosterPath       string           `json:"poster_path"`
	BackdropPath     string           `json:"backdrop_path"`
	FirstAirDate     string           `json:"first_air_date"`
	LastAirDate      string           `json:"last_air_date"`
	Genres           []Genre          `json:"genres"`
	Homepage         string           `json:"homepage"`
	InProduction     bool             `json:"in_production"`
	NumberOfEpisodes int              `json:"number_of_episodes"`
	NumberOfSeasons  int              `json:"number_of_seasons"`
	OriginalLanguage string           `json:"original_language"`
	OriginalName     string           `json:"original_name"`
	Networks         []Network        `json:"networks"`
	Seasons          []Season         `json:"seasons"`
	SpokenLanguages  []SpokenLanguage `json:"spoken_languages"`
	Status           string           `json:"status"`
	Tagline          string           `json:"tagline"`
	VoteAverage      float64          `json:"vote_average"`
	VoteCount        int              `json:"vote_count"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreList is the TMDB genre catalog envelope.
type GenreList struct {
	Genres []Genre `json:"genres"`
}

type Season struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Overview     string `json:"overview"`
	PosterPath   string `json:"poster_path"`
	SeasonNumber int    `json:"season_number"`
	EpisodeCount int    `json:"episode_count"`
	AirDate      string `json:"air_date"`
}

type Network struct {
	ID            int    `json:"id"`
	LogoPath      string `json:"logo_path"`
	Name          string `json:"name"`
	OriginCountry string `json:"origin_country"`
}

type SpokenLanguage struct {
	EnglishName string `json:"english_name"`
	ISO639      string `json:"iso_639_1"`
	Name        string `json:"name"`
}

// Episode is one entry of the TVMaze day schedule, with its show embedded.
type Episode struct {
	ID       int        `json:"id"`
	URL      string     `json:"url"`
	Name     string     `json:"name"`
	Season   int        `json:"season"`
	Number   int        `json:"number"`
	Type     string     `json:"type"`
	Airdate  string     `json:"airdate"`
	Airtime  string     `json:"airtime"`
	Airstamp string     `json:"airstamp"`
	Runtime  int        `json:"runtime"`
	Rating   Rating     `json:"rating"`
	Image    *ShowImage `json:"image"`
	Summary  string     `json:"summary"`
	Show     Show       `json:"show"`
}

type Rating struct {
	Average float64 `json:"average"`
}

type ShowImage struct {
	Medium   string `json:"medium"`
	Original string `json:"original"`
}

type Show struct {
	ID       int        `json:"id"`
	URL      string     `json:"url"`
	Name     string     `json:"name"`
	Type     string     `json:"type"`
	Language string     `json:"language"`
	Genres   []string   `json:"genres"`
	Status   string     `json:"status"`
	Image    *ShowImage `json:"image"`
	Summary  string     `json:"summary"`
}

// Playlists is a page of Spotify playlist search results.
type Playlists struct {
	Href     string      `json:"href"`
	Limit    int         `json:"limit"`
	Next     string      `json:"next"`
	Offset   int         `json:"offset"`
	Previous string      `json:"previous"`
	Total    int         `json:"total"`
	Items    []*Playlist `json:"items"`
}

type Playlist struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	ExternalURLs ExternalURLs  `json:"external_urls"`
	Images       []ImageInfo   `json:"images"`
	Owner        PlaylistOwner `json:"owner"`
	Href         string        `json:"href"`
	Public       bool          `json:"public"`
	SnapshotID   string        `json:"snapshot_id"`
	Type         string        `json:"type"`
	URI          string        `json:"uri"`
}

type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

type ImageInfo struct {
	Height int    `json:"height"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
}

type PlaylistOwner struct {
	DisplayName  string       `json:"display_name"`
	ExternalURLs ExternalURLs `json:"external_urls"`
	Href         string       `json:"href"`
	ID           string       `json:"id"`
	Type         string       `json:"type"`
	URI          string       `json:"uri"`
}

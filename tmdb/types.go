package tmdb

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Media types as reported by the API's media_type field
const (
	MediaTypeMovie  = "movie"
	MediaTypeTV     = "tv"
	MediaTypePerson = "person"
)

// Page is one page of a paginated list response
type Page[T any] struct {
	Page         int `json:"page"`
	Results      []T `json:"results"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

// MediaItem is a movie, TV show or person as returned by list and search endpoints
type MediaItem struct {
	ID               int     `json:"id"`
	MediaType        string  `json:"media_type,omitempty"`
	Title            string  `json:"title,omitempty"`
	OriginalTitle    string  `json:"original_title,omitempty"`
	Name             string  `json:"name,omitempty"`
	OriginalName     string  `json:"original_name,omitempty"`
	Overview         string  `json:"overview,omitempty"`
	PosterPath       string  `json:"poster_path,omitempty"`
	BackdropPath     string  `json:"backdrop_path,omitempty"`
	ProfilePath      string  `json:"profile_path,omitempty"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	FirstAirDate     string  `json:"first_air_date,omitempty"`
	VoteAverage      float64 `json:"vote_average,omitempty"`
	VoteCount        int     `json:"vote_count,omitempty"`
	Popularity       float64 `json:"popularity,omitempty"`
	GenreIDs         []int   `json:"genre_ids,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty"`
	Adult            bool    `json:"adult,omitempty"`

	// Person-only fields
	KnownForDepartment string      `json:"known_for_department,omitempty"`
	KnownFor           []MediaItem `json:"known_for,omitempty"`
}

// DisplayName returns the title for movies and the name for TV shows and people
func (m MediaItem) DisplayName() string {
	if m.Title != "" {
		return m.Title
	}
	return m.Name
}

// Date returns the release or first air date, whichever is set
func (m MediaItem) Date() string {
	if m.ReleaseDate != "" {
		return m.ReleaseDate
	}
	return m.FirstAirDate
}

// Year returns the year of Date, or 0 when unknown
func (m MediaItem) Year() int {
	return ParseYear(m.Date())
}

// Kind returns the media type, inferring it when the endpoint omits media_type
func (m MediaItem) Kind() string {
	switch {
	case m.MediaType != "":
		return m.MediaType
	case m.ReleaseDate != "" || m.Title != "":
		return MediaTypeMovie
	case m.KnownForDepartment != "" || m.ProfilePath != "":
		return MediaTypePerson
	default:
		return MediaTypeTV
	}
}

// ImagePath returns the poster path, falling back to the profile path for people
func (m MediaItem) ImagePath() string {
	if m.PosterPath != "" {
		return m.PosterPath
	}
	return m.ProfilePath
}

// Rating returns the vote average; missing ratings are 0
func (m MediaItem) Rating() float64 {
	return m.VoteAverage
}

// KnownForTitles joins the display names of a person's known-for items
func (m MediaItem) KnownForTitles() string {
	titles := make([]string, 0, len(m.KnownFor))
	for _, item := range m.KnownFor {
		if name := item.DisplayName(); name != "" {
			titles = append(titles, name)
		}
	}
	return strings.Join(titles, ", ")
}

// ParseYear extracts the leading year from a YYYY-MM-DD date, 0 if absent or malformed
func ParseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

// Genre represents a genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreList is the genre/{type}/list response
type GenreList struct {
	Genres []Genre `json:"genres"`
}

// Company is a production company or TV network
type Company struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	LogoPath      string `json:"logo_path,omitempty"`
	OriginCountry string `json:"origin_country,omitempty"`
}

// Keyword represents a keyword tag
type Keyword struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// KeywordList is the appended keywords block on TV details
type KeywordList struct {
	Results []Keyword `json:"results"`
}

// MovieDetails represents the movie/{id} response
type MovieDetails struct {
	ID                  int              `json:"id"`
	Title               string           `json:"title"`
	OriginalTitle       string           `json:"original_title"`
	Overview            string           `json:"overview"`
	Tagline             string           `json:"tagline"`
	PosterPath          string           `json:"poster_path"`
	BackdropPath        string           `json:"backdrop_path"`
	ReleaseDate         string           `json:"release_date"`
	Runtime             int              `json:"runtime"`
	Status              string           `json:"status"`
	Genres              []Genre          `json:"genres"`
	VoteAverage         float64          `json:"vote_average"`
	VoteCount           int              `json:"vote_count"`
	Popularity          float64          `json:"popularity"`
	Budget              int64            `json:"budget"`
	Revenue             int64            `json:"revenue"`
	Homepage            string           `json:"homepage"`
	IMDbID              string           `json:"imdb_id"`
	OriginalLanguage    string           `json:"original_language"`
	ProductionCompanies []Company        `json:"production_companies"`
	Credits             *Credits         `json:"credits,omitempty"`
	Videos              *Videos          `json:"videos,omitempty"`
	Recommendations     *Page[MediaItem] `json:"recommendations,omitempty"`
}

// Year returns the release year, 0 if unknown
func (m MovieDetails) Year() int {
	return ParseYear(m.ReleaseDate)
}

// RuntimeText formats the runtime as "2h 28m", or "N/A" when unknown
func (m MovieDetails) RuntimeText() string {
	return FormatRuntime(m.Runtime)
}

// FormatRuntime formats minutes as "Xh Ym", or "N/A" for zero
func FormatRuntime(minutes int) string {
	if minutes <= 0 {
		return "N/A"
	}
	return strconv.Itoa(minutes/60) + "h " + strconv.Itoa(minutes%60) + "m"
}

// SeasonSummary is a season entry embedded in TV details
type SeasonSummary struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Overview     string `json:"overview"`
	AirDate      string `json:"air_date"`
	SeasonNumber int    `json:"season_number"`
	EpisodeCount int    `json:"episode_count"`
	PosterPath   string `json:"poster_path"`
}

// Creator is a TV show creator
type Creator struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	ProfilePath string `json:"profile_path"`
}

// TVDetails represents the tv/{id} response
type TVDetails struct {
	ID               int               `json:"id"`
	Name             string            `json:"name"`
	OriginalName     string            `json:"original_name"`
	Overview         string            `json:"overview"`
	Tagline          string            `json:"tagline"`
	PosterPath       string            `json:"poster_path"`
	BackdropPath     string            `json:"backdrop_path"`
	FirstAirDate     string            `json:"first_air_date"`
	LastAirDate      string            `json:"last_air_date"`
	Status           string            `json:"status"`
	Type             string            `json:"type"`
	NumberOfSeasons  int               `json:"number_of_seasons"`
	NumberOfEpisodes int               `json:"number_of_episodes"`
	EpisodeRunTime   []int             `json:"episode_run_time"`
	Genres           []Genre           `json:"genres"`
	Networks         []Company         `json:"networks"`
	CreatedBy        []Creator         `json:"created_by"`
	Seasons          []SeasonSummary   `json:"seasons"`
	VoteAverage      float64           `json:"vote_average"`
	VoteCount        int               `json:"vote_count"`
	Popularity       float64           `json:"popularity"`
	Homepage         string            `json:"homepage"`
	AggregateCredits *AggregateCredits `json:"aggregate_credits,omitempty"`
	Videos           *Videos           `json:"videos,omitempty"`
	Recommendations  *Page[MediaItem]  `json:"recommendations,omitempty"`
	Keywords         *KeywordList      `json:"keywords,omitempty"`
}

// Year returns the first air year, 0 if unknown
func (t TVDetails) Year() int {
	return ParseYear(t.FirstAirDate)
}

// PersonDetails represents the person/{id} response
type PersonDetails struct {
	ID                 int              `json:"id"`
	Name               string           `json:"name"`
	Biography          string           `json:"biography"`
	Birthday           string           `json:"birthday"`
	Deathday           string           `json:"deathday"`
	PlaceOfBirth       string           `json:"place_of_birth"`
	ProfilePath        string           `json:"profile_path"`
	KnownForDepartment string           `json:"known_for_department"`
	Gender             int              `json:"gender"`
	Popularity         float64          `json:"popularity"`
	AlsoKnownAs        []string         `json:"also_known_as"`
	Homepage           string           `json:"homepage"`
	IMDbID             string           `json:"imdb_id"`
	CombinedCredits    *CombinedCredits `json:"combined_credits,omitempty"`
}

// Season represents the tv/{id}/season/{n} response
type Season struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Overview     string    `json:"overview"`
	AirDate      string    `json:"air_date"`
	SeasonNumber int       `json:"season_number"`
	PosterPath   string    `json:"poster_path"`
	VoteAverage  float64   `json:"vote_average"`
	Episodes     []Episode `json:"episodes"`
}

// Episode represents an episode, either inside a season or from the episode endpoint
type Episode struct {
	ID             int          `json:"id"`
	Name           string       `json:"name"`
	Overview       string       `json:"overview"`
	AirDate        string       `json:"air_date"`
	EpisodeNumber  int          `json:"episode_number"`
	SeasonNumber   int          `json:"season_number"`
	StillPath      string       `json:"still_path"`
	Runtime        int          `json:"runtime"`
	VoteAverage    float64      `json:"vote_average"`
	VoteCount      int          `json:"vote_count"`
	ProductionCode string       `json:"production_code"`
	Crew           []CrewMember `json:"crew"`
	GuestStars     []CastMember `json:"guest_stars"`
	Credits        *Credits     `json:"credits,omitempty"`
}

// CastMember is a cast credit on a movie or episode
type CastMember struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	Character          string  `json:"character"`
	ProfilePath        string  `json:"profile_path"`
	Order              int     `json:"order"`
	Popularity         float64 `json:"popularity"`
	KnownForDepartment string  `json:"known_for_department"`
	CreditID           string  `json:"credit_id"`
}

// CrewMember is a crew credit on a movie or episode
type CrewMember struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Job         string  `json:"job"`
	Department  string  `json:"department"`
	ProfilePath string  `json:"profile_path"`
	Popularity  float64 `json:"popularity"`
	CreditID    string  `json:"credit_id"`
}

// Credits represents a movie/{id}/credits response
type Credits struct {
	ID   int          `json:"id"`
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Directors returns the names of crew members with the Director job
func (c Credits) Directors() []string {
	var names []string
	for _, member := range c.Crew {
		if member.Job == "Director" {
			names = append(names, member.Name)
		}
	}
	return names
}

// Role is one character a cast member played across a show
type Role struct {
	CreditID     string `json:"credit_id"`
	Character    string `json:"character"`
	EpisodeCount int    `json:"episode_count"`
}

// Job is one job a crew member held across a show
type Job struct {
	CreditID     string `json:"credit_id"`
	Job          string `json:"job"`
	EpisodeCount int    `json:"episode_count"`
}

// AggregateCastMember is a cast entry from tv/{id}/aggregate_credits
type AggregateCastMember struct {
	ID                int     `json:"id"`
	Name              string  `json:"name"`
	ProfilePath       string  `json:"profile_path"`
	Popularity        float64 `json:"popularity"`
	Roles             []Role  `json:"roles"`
	TotalEpisodeCount int     `json:"total_episode_count"`
	Order             int     `json:"order"`
}

// Characters joins every character the member played
func (a AggregateCastMember) Characters() string {
	names := make([]string, 0, len(a.Roles))
	for _, role := range a.Roles {
		if role.Character != "" {
			names = append(names, role.Character)
		}
	}
	return strings.Join(names, ", ")
}

// AggregateCrewMember is a crew entry from tv/{id}/aggregate_credits
type AggregateCrewMember struct {
	ID                int     `json:"id"`
	Name              string  `json:"name"`
	Department        string  `json:"department"`
	ProfilePath       string  `json:"profile_path"`
	Popularity        float64 `json:"popularity"`
	Jobs              []Job   `json:"jobs"`
	TotalEpisodeCount int     `json:"total_episode_count"`
}

// AggregateCredits represents a tv/{id}/aggregate_credits response
type AggregateCredits struct {
	ID   int                   `json:"id"`
	Cast []AggregateCastMember `json:"cast"`
	Crew []AggregateCrewMember `json:"crew"`
}

// PersonCredit is one entry of a person's combined credits
type PersonCredit struct {
	MediaItem
	Character    string `json:"character,omitempty"`
	Job          string `json:"job,omitempty"`
	Department   string `json:"department,omitempty"`
	EpisodeCount int    `json:"episode_count,omitempty"`
	CreditID     string `json:"credit_id"`
}

// Role returns the character played, or the crew job
func (p PersonCredit) Role() string {
	if p.Character != "" {
		return p.Character
	}
	return p.Job
}

// CombinedCredits represents a person/{id}/combined_credits response
type CombinedCredits struct {
	ID   int            `json:"id"`
	Cast []PersonCredit `json:"cast"`
	Crew []PersonCredit `json:"crew"`
}

// ByMediaType returns cast and crew credits of one media type, cast first
func (c CombinedCredits) ByMediaType(mediaType string) []PersonCredit {
	var out []PersonCredit
	for _, credit := range c.Cast {
		if credit.MediaType == mediaType {
			out = append(out, credit)
		}
	}
	for _, credit := range c.Crew {
		if credit.MediaType == mediaType {
			out = append(out, credit)
		}
	}
	return out
}

// Video is a trailer, teaser or clip
type Video struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Site        string `json:"site"`
	Type        string `json:"type"`
	Size        int    `json:"size"`
	Official    bool   `json:"official"`
	PublishedAt string `json:"published_at"`
	Language    string `json:"iso_639_1"`
	Country     string `json:"iso_3166_1"`
}

// Published parses PublishedAt; the zero time is returned when it is missing or malformed
func (v Video) Published() time.Time {
	t, err := time.Parse(time.RFC3339, v.PublishedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// IsOfficialTrailer reports whether the video is an official YouTube trailer
func (v Video) IsOfficialTrailer() bool {
	return v.Site == "YouTube" && v.Type == "Trailer" && v.Official
}

// Videos represents a videos response
type Videos struct {
	ID      int     `json:"id"`
	Results []Video `json:"results"`
}

// Featured returns YouTube videos with official trailers first, each group
// newest first, capped at limit. A limit of zero or less means no cap.
func (v Videos) Featured(limit int) []Video {
	var trailers, others []Video
	for _, video := range v.Results {
		if video.Site != "YouTube" {
			continue
		}
		if video.IsOfficialTrailer() {
			trailers = append(trailers, video)
		} else {
			others = append(others, video)
		}
	}

	newestFirst := func(list []Video) {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Published().After(list[j].Published())
		})
	}
	newestFirst(trailers)
	newestFirst(others)

	featured := append(trailers, others...)
	if limit > 0 && len(featured) > limit {
		featured = featured[:limit]
	}
	return featured
}

// Provider is a streaming, rental or purchase provider
type Provider struct {
	ProviderID      int    `json:"provider_id"`
	ProviderName    string `json:"provider_name"`
	LogoPath        string `json:"logo_path"`
	DisplayPriority int    `json:"display_priority"`
}

// RegionProviders lists the providers available in one country
type RegionProviders struct {
	Link     string     `json:"link"`
	Flatrate []Provider `json:"flatrate,omitempty"`
	Rent     []Provider `json:"rent,omitempty"`
	Buy      []Provider `json:"buy,omitempty"`
}

// ProviderOffer is one provider row for display
type ProviderOffer struct {
	Name     string
	Type     string
	LogoPath string
}

// Offers flattens the region into Stream, Rent and Buy rows in that order
func (r RegionProviders) Offers() []ProviderOffer {
	var offers []ProviderOffer
	groups := []struct {
		label     string
		providers []Provider
	}{
		{"Stream", r.Flatrate},
		{"Rent", r.Rent},
		{"Buy", r.Buy},
	}
	for _, group := range groups {
		for _, p := range group.providers {
			offers = append(offers, ProviderOffer{Name: p.ProviderName, Type: group.label, LogoPath: p.LogoPath})
		}
	}
	return offers
}

// WatchProviders represents a watch/providers response keyed by ISO 3166-1 country
type WatchProviders struct {
	ID      int                        `json:"id"`
	Results map[string]RegionProviders `json:"results"`
}

// Region returns the providers for a country, and whether any are listed
func (w WatchProviders) Region(country string) (RegionProviders, bool) {
	region, ok := w.Results[country]
	return region, ok
}

// ImagesConfiguration is the images block of the configuration response
type ImagesConfiguration struct {
	BaseURL       string   `json:"base_url"`
	SecureBaseURL string   `json:"secure_base_url"`
	BackdropSizes []string `json:"backdrop_sizes"`
	LogoSizes     []string `json:"logo_sizes"`
	PosterSizes   []string `json:"poster_sizes"`
	ProfileSizes  []string `json:"profile_sizes"`
	StillSizes    []string `json:"still_sizes"`
}

// Configuration represents the configuration response
type Configuration struct {
	Images     ImagesConfiguration `json:"images"`
	ChangeKeys []string            `json:"change_keys"`
}

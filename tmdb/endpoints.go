package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// PageParams selects a page of a list endpoint
type PageParams struct {
	Page int
}

// TrendingParams selects a trending list
type TrendingParams struct {
	// MediaType is all, movie, tv or person; defaults to all
	MediaType string
	// TimeWindow is day or week; defaults to week
	TimeWindow string
	Page       int
}

// DetailParams identifies a movie, TV show or person
type DetailParams struct {
	ID int
	// Append is the comma-separated append_to_response value
	Append string
}

// IDParams identifies a movie, TV show or person for a sub-resource
type IDParams struct {
	ID int
}

// RecommendationParams selects a page of recommendations for a title
type RecommendationParams struct {
	ID   int
	Page int
}

// SearchParams describes a search query
type SearchParams struct {
	Query        string
	Page         int
	IncludeAdult bool
}

// DiscoverParams filters the discover endpoints
type DiscoverParams struct {
	SortBy     string
	WithGenres string
	Year       int
	Page       int
}

// GenreParams selects the genre list for movie or tv
type GenreParams struct {
	MediaType string
}

// SeasonParams identifies a season of a TV show
type SeasonParams struct {
	TVID         int
	SeasonNumber int
}

// EpisodeParams identifies an episode of a TV show
type EpisodeParams struct {
	TVID          int
	SeasonNumber  int
	EpisodeNumber int
	Append        string
}

func pageValues(page int) url.Values {
	if page <= 0 {
		page = 1
	}
	return url.Values{"page": {strconv.Itoa(page)}}
}

func appendValues(appendToResponse string) url.Values {
	params := url.Values{}
	if appendToResponse != "" {
		params.Set("append_to_response", appendToResponse)
	}
	return params
}

func getPage(ctx context.Context, c *Client, endpoint string, params url.Values) (*Page[MediaItem], error) {
	var page Page[MediaItem]
	if err := c.get(ctx, endpoint, params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Configuration retrieves the image configuration
func (c *Client) Configuration(ctx context.Context) (*Configuration, error) {
	var cfg Configuration
	if err := c.get(ctx, "/configuration", nil, &cfg); err != nil {
		return nil, fmt.Errorf("failed to get configuration: %w", err)
	}
	return &cfg, nil
}

// Trending retrieves trending items for a media type and time window
func (c *Client) Trending(ctx context.Context, p TrendingParams) (*Page[MediaItem], error) {
	mediaType := p.MediaType
	if mediaType == "" {
		mediaType = "all"
	}
	window := p.TimeWindow
	if window == "" {
		window = "week"
	}
	return getPage(ctx, c, fmt.Sprintf("/trending/%s/%s", mediaType, window), pageValues(p.Page))
}

// PopularMovies retrieves popular movies
func (c *Client) PopularMovies(ctx context.Context, p PageParams) (*Page[MediaItem], error) {
	return getPage(ctx, c, "/movie/popular", pageValues(p.Page))
}

// TopRatedMovies retrieves top rated movies
func (c *Client) TopRatedMovies(ctx context.Context, p PageParams) (*Page[MediaItem], error) {
	return getPage(ctx, c, "/movie/top_rated", pageValues(p.Page))
}

// UpcomingMovies retrieves upcoming movies
func (c *Client) UpcomingMovies(ctx context.Context, p PageParams) (*Page[MediaItem], error) {
	return getPage(ctx, c, "/movie/upcoming", pageValues(p.Page))
}

// PopularTV retrieves popular TV shows
func (c *Client) PopularTV(ctx context.Context, p PageParams) (*Page[MediaItem], error) {
	return getPage(ctx, c, "/tv/popular", pageValues(p.Page))
}

// TopRatedTV retrieves top rated TV shows
func (c *Client) TopRatedTV(ctx context.Context, p PageParams) (*Page[MediaItem], error) {
	return getPage(ctx, c, "/tv/top_rated", pageValues(p.Page))
}

// PopularPeople retrieves popular people
func (c *Client) PopularPeople(ctx context.Context, p PageParams) (*Page[MediaItem], error) {
	return getPage(ctx, c, "/person/popular", pageValues(p.Page))
}

// MovieDetails retrieves a movie with optional appended sub-resources
func (c *Client) MovieDetails(ctx context.Context, p DetailParams) (*MovieDetails, error) {
	var movie MovieDetails
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", p.ID), appendValues(p.Append), &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// TVDetails retrieves a TV show with optional appended sub-resources
func (c *Client) TVDetails(ctx context.Context, p DetailParams) (*TVDetails, error) {
	var show TVDetails
	if err := c.get(ctx, fmt.Sprintf("/tv/%d", p.ID), appendValues(p.Append), &show); err != nil {
		return nil, err
	}
	return &show, nil
}

// PersonDetails retrieves a person with optional appended sub-resources
func (c *Client) PersonDetails(ctx context.Context, p DetailParams) (*PersonDetails, error) {
	var person PersonDetails
	if err := c.get(ctx, fmt.Sprintf("/person/%d", p.ID), appendValues(p.Append), &person); err != nil {
		return nil, err
	}
	return &person, nil
}

// MovieCredits retrieves the cast and crew of a movie
func (c *Client) MovieCredits(ctx context.Context, p IDParams) (*Credits, error) {
	var credits Credits
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/credits", p.ID), nil, &credits); err != nil {
		return nil, err
	}
	return &credits, nil
}

// TVAggregateCredits retrieves the cast and crew of a TV show across all seasons
func (c *Client) TVAggregateCredits(ctx context.Context, p IDParams) (*AggregateCredits, error) {
	var credits AggregateCredits
	if err := c.get(ctx, fmt.Sprintf("/tv/%d/aggregate_credits", p.ID), nil, &credits); err != nil {
		return nil, err
	}
	return &credits, nil
}

// PersonCombinedCredits retrieves a person's movie and TV credits
func (c *Client) PersonCombinedCredits(ctx context.Context, p IDParams) (*CombinedCredits, error) {
	var credits CombinedCredits
	if err := c.get(ctx, fmt.Sprintf("/person/%d/combined_credits", p.ID), nil, &credits); err != nil {
		return nil, err
	}
	return &credits, nil
}

// MovieVideos retrieves the videos of a movie
func (c *Client) MovieVideos(ctx context.Context, p IDParams) (*Videos, error) {
	var videos Videos
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/videos", p.ID), nil, &videos); err != nil {
		return nil, err
	}
	return &videos, nil
}

// TVVideos retrieves the videos of a TV show
func (c *Client) TVVideos(ctx context.Context, p IDParams) (*Videos, error) {
	var videos Videos
	if err := c.get(ctx, fmt.Sprintf("/tv/%d/videos", p.ID), nil, &videos); err != nil {
		return nil, err
	}
	return &videos, nil
}

// MovieRecommendations retrieves recommendations for a movie
func (c *Client) MovieRecommendations(ctx context.Context, p RecommendationParams) (*Page[MediaItem], error) {
	return getPage(ctx, c, fmt.Sprintf("/movie/%d/recommendations", p.ID), pageValues(p.Page))
}

// TVRecommendations retrieves recommendations for a TV show
func (c *Client) TVRecommendations(ctx context.Context, p RecommendationParams) (*Page[MediaItem], error) {
	return getPage(ctx, c, fmt.Sprintf("/tv/%d/recommendations", p.ID), pageValues(p.Page))
}

func searchValues(p SearchParams) url.Values {
	params := pageValues(p.Page)
	params.Set("query", p.Query)
	params.Set("include_adult", strconv.FormatBool(p.IncludeAdult))
	return params
}

// SearchMulti searches movies, TV shows and people at once
func (c *Client) SearchMulti(ctx context.Context, p SearchParams) (*Page[MediaItem], error) {
	return getPage(ctx, c, "/search/multi", searchValues(p))
}

// SearchMovies searches movies
func (c *Client) SearchMovies(ctx context.Context, p SearchParams) (*Page[MediaItem], error) {
	return getPage(ctx, c, "/search/movie", searchValues(p))
}

// SearchTV searches TV shows
func (c *Client) SearchTV(ctx context.Context, p SearchParams) (*Page[MediaItem], error) {
	return getPage(ctx, c, "/search/tv", searchValues(p))
}

// SearchPeople searches people
func (c *Client) SearchPeople(ctx context.Context, p SearchParams) (*Page[MediaItem], error) {
	return getPage(ctx, c, "/search/person", searchValues(p))
}

func discoverValues(p DiscoverParams) url.Values {
	params := pageValues(p.Page)
	if p.SortBy != "" {
		params.Set("sort_by", p.SortBy)
	}
	if p.WithGenres != "" {
		params.Set("with_genres", p.WithGenres)
	}
	if p.Year > 0 {
		params.Set("year", strconv.Itoa(p.Year))
	}
	return params
}

// DiscoverMovies lists movies matching the given filters
func (c *Client) DiscoverMovies(ctx context.Context, p DiscoverParams) (*Page[MediaItem], error) {
	return getPage(ctx, c, "/discover/movie", discoverValues(p))
}

// DiscoverTV lists TV shows matching the given filters. Year maps to first_air_date_year.
func (c *Client) DiscoverTV(ctx context.Context, p DiscoverParams) (*Page[MediaItem], error) {
	params := discoverValues(p)
	if year := params.Get("year"); year != "" {
		params.Del("year")
		params.Set("first_air_date_year", year)
	}
	return getPage(ctx, c, "/discover/tv", params)
}

// Genres retrieves the genre list for movie or tv; defaults to movie
func (c *Client) Genres(ctx context.Context, p GenreParams) (*GenreList, error) {
	mediaType := p.MediaType
	if mediaType == "" {
		mediaType = MediaTypeMovie
	}
	var genres GenreList
	if err := c.get(ctx, fmt.Sprintf("/genre/%s/list", mediaType), nil, &genres); err != nil {
		return nil, err
	}
	return &genres, nil
}

// MovieWatchProviders retrieves where a movie can be streamed, rented or bought
func (c *Client) MovieWatchProviders(ctx context.Context, p IDParams) (*WatchProviders, error) {
	var providers WatchProviders
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/watch/providers", p.ID), nil, &providers); err != nil {
		return nil, err
	}
	return &providers, nil
}

// TVWatchProviders retrieves where a TV show can be streamed, rented or bought
func (c *Client) TVWatchProviders(ctx context.Context, p IDParams) (*WatchProviders, error) {
	var providers WatchProviders
	if err := c.get(ctx, fmt.Sprintf("/tv/%d/watch/providers", p.ID), nil, &providers); err != nil {
		return nil, err
	}
	return &providers, nil
}

// SeasonDetails retrieves a season with its episodes
func (c *Client) SeasonDetails(ctx context.Context, p SeasonParams) (*Season, error) {
	var season Season
	endpoint := fmt.Sprintf("/tv/%d/season/%d", p.TVID, p.SeasonNumber)
	if err := c.get(ctx, endpoint, nil, &season); err != nil {
		return nil, err
	}
	return &season, nil
}

// EpisodeDetails retrieves an episode with optional appended sub-resources
func (c *Client) EpisodeDetails(ctx context.Context, p EpisodeParams) (*Episode, error) {
	var episode Episode
	endpoint := fmt.Sprintf("/tv/%d/season/%d/episode/%d", p.TVID, p.SeasonNumber, p.EpisodeNumber)
	if err := c.get(ctx, endpoint, appendValues(p.Append), &episode); err != nil {
		return nil, err
	}
	return &episode, nil
}

package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListEndpoints(t *testing.T) {
	tests := []struct {
		name      string
		call      func(c *Client) (*Page[MediaItem], error)
		wantPath  string
		wantQuery url.Values
	}{
		{
			name: "trending defaults",
			call: func(c *Client) (*Page[MediaItem], error) {
				return c.Trending(context.Background(), TrendingParams{})
			},
			wantPath:  "/trending/all/week",
			wantQuery: url.Values{"page": {"1"}},
		},
		{
			name: "trending movies today",
			call: func(c *Client) (*Page[MediaItem], error) {
				return c.Trending(context.Background(), TrendingParams{MediaType: "movie", TimeWindow: "day", Page: 3})
			},
			wantPath:  "/trending/movie/day",
			wantQuery: url.Values{"page": {"3"}},
		},
		{
			name: "popular movies",
			call: func(c *Client) (*Page[MediaItem], error) {
				return c.PopularMovies(context.Background(), PageParams{})
			},
			wantPath:  "/movie/popular",
			wantQuery: url.Values{"page": {"1"}},
		},
		{
			name: "top rated movies",
			call: func(c *Client) (*Page[MediaItem], error) {
				return c.TopRatedMovies(context.Background(), PageParams{Page: 4})
			},
			wantPath:  "/movie/top_rated",
			wantQuery: url.Values{"page": {"4"}},
		},
		{
			name: "upcoming movies",
			call: func(c *Client) (*Page[MediaItem], error) {
				return c.UpcomingMovies(context.Background(), PageParams{Page: -2})
			},
			wantPath:  "/movie/upcoming",
			wantQuery: url.Values{"page": {"1"}},
		},
		{
			name: "popular tv",
			call: func(c *Client) (*Page[MediaItem], error) {
				return c.PopularTV(context.Background(), PageParams{Page: 1})
			},
			wantPath:  "/tv/popular",
			wantQuery: url.Values{"page": {"1"}},
		},
		{
			name: "top rated tv",
			call: func(c *Client) (*Page[MediaItem], error) {
				return c.TopRatedTV(context.Background(), PageParams{Page: 2})
			},
			wantPath:  "/tv/top_rated",
			wantQuery: url.Values{"page": {"2"}},
		},
		{
			name: "popular people",
			call: func(c *Client) (*Page[MediaItem], error) {
				return c.PopularPeople(context.Background(), PageParams{Page: 1})
			},
			wantPath:  "/person/popular",
			wantQuery: url.Values{"page": {"1"}},
		},
		{
			name: "movie recommendations",
			call: func(c *Client) (*Page[MediaItem], error) {
				return c.MovieRecommendations(context.Background(), RecommendationParams{ID: 550})
			},
			wantPath:  "/movie/550/recommendations",
			wantQuery: url.Values{"page": {"1"}},
		},
		{
			name: "tv recommendations",
			call: func(c *Client) (*Page[MediaItem], error) {
				return c.TVRecommendations(context.Background(), RecommendationParams{ID: 1399, Page: 2})
			},
			wantPath:  "/tv/1399/recommendations",
			wantQuery: url.Values{"page": {"2"}},
		},
		{
			name: "search multi",
			call: func(c *Client) (*Page[MediaItem], error) {
				return c.SearchMulti(context.Background(), SearchParams{Query: "batman"})
			},
			wantPath:  "/search/multi",
			wantQuery: url.Values{"page": {"1"}, "query": {"batman"}, "include_adult": {"false"}},
		},
		{
			name: "search movies",
			call: func(c *Client) (*Page[MediaItem], error) {
				return c.SearchMovies(context.Background(), SearchParams{Query: "the dark knight", Page: 2, IncludeAdult: true})
			},
			wantPath:  "/search/movie",
			wantQuery: url.Values{"page": {"2"}, "query": {"the dark knight"}, "include_adult": {"true"}},
		},
		{
			name: "search tv",
			call: func(c *Client) (*Page[MediaItem], error) {
				return c.SearchTV(context.Background(), SearchParams{Query: "batman"})
			},
			wantPath:  "/search/tv",
			wantQuery: url.Values{"page": {"1"}, "query": {"batman"}, "include_adult": {"false"}},
		},
		{
			name: "search people",
			call: func(c *Client) (*Page[MediaItem], error) {
				return c.SearchPeople(context.Background(), SearchParams{Query: "bale"})
			},
			wantPath:  "/search/person",
			wantQuery: url.Values{"page": {"1"}, "query": {"bale"}, "include_adult": {"false"}},
		},
		{
			name: "discover movies",
			call: func(c *Client) (*Page[MediaItem], error) {
				return c.DiscoverMovies(context.Background(), DiscoverParams{SortBy: "popularity.desc", WithGenres: "28,12", Year: 2008})
			},
			wantPath:  "/discover/movie",
			wantQuery: url.Values{"page": {"1"}, "sort_by": {"popularity.desc"}, "with_genres": {"28,12"}, "year": {"2008"}},
		},
		{
			name: "discover tv",
			call: func(c *Client) (*Page[MediaItem], error) {
				return c.DiscoverTV(context.Background(), DiscoverParams{Year: 2011, Page: 2})
			},
			wantPath:  "/discover/tv",
			wantQuery: url.Values{"page": {"2"}, "first_air_date_year": {"2011"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantPath, r.URL.Path)

				query := r.URL.Query()
				query.Del("api_key")
				assert.Equal(t, tt.wantQuery, query)

				json.NewEncoder(w).Encode(map[string]any{
					"page":          1,
					"total_pages":   12,
					"total_results": 231,
					"results": []map[string]any{
						{"id": 1, "title": "First"},
						{"id": 2, "name": "Second"},
					},
				})
			})

			page, err := tt.call(client)
			require.NoError(t, err)
			assert.Equal(t, 12, page.TotalPages)
			assert.Equal(t, 231, page.TotalResults)
			require.Len(t, page.Results, 2)
			assert.Equal(t, "First", page.Results[0].DisplayName())
			assert.Equal(t, "Second", page.Results[1].DisplayName())
		})
	}
}

func TestDetailEndpoints(t *testing.T) {
	t.Run("movie details with append", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/movie/155", r.URL.Path)
			assert.Equal(t, "credits,videos,recommendations", r.URL.Query().Get("append_to_response"))
			w.Write([]byte(`{
				"id": 155,
				"title": "The Dark Knight",
				"release_date": "2008-07-16",
				"runtime": 152,
				"credits": {"cast": [{"id": 3894, "name": "Christian Bale", "character": "Bruce Wayne"}]},
				"videos": {"results": [{"id": "v1", "key": "EXeTwQWrcwY", "site": "YouTube", "type": "Trailer", "official": true}]},
				"recommendations": {"page": 1, "results": [{"id": 272, "title": "Batman Begins"}], "total_pages": 1, "total_results": 1}
			}`))
		})

		movie, err := client.MovieDetails(context.Background(), DetailParams{ID: 155, Append: "credits,videos,recommendations"})
		require.NoError(t, err)
		assert.Equal(t, "The Dark Knight", movie.Title)
		assert.Equal(t, 2008, movie.Year())
		assert.Equal(t, "2h 32m", movie.RuntimeText())
		require.NotNil(t, movie.Credits)
		assert.Equal(t, "Bruce Wayne", movie.Credits.Cast[0].Character)
		require.NotNil(t, movie.Videos)
		assert.Len(t, movie.Videos.Results, 1)
		require.NotNil(t, movie.Recommendations)
		assert.Equal(t, "Batman Begins", movie.Recommendations.Results[0].Title)
	})

	t.Run("tv details without append", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/tv/1399", r.URL.Path)
			assert.Empty(t, r.URL.Query().Get("append_to_response"))
			w.Write([]byte(`{"id": 1399, "name": "Game of Thrones", "first_air_date": "2011-04-17", "number_of_seasons": 8}`))
		})

		show, err := client.TVDetails(context.Background(), DetailParams{ID: 1399})
		require.NoError(t, err)
		assert.Equal(t, "Game of Thrones", show.Name)
		assert.Equal(t, 2011, show.Year())
		assert.Nil(t, show.AggregateCredits)
	})

	t.Run("person combined credits", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/person/3894/combined_credits", r.URL.Path)
			w.Write([]byte(`{
				"id": 3894,
				"cast": [
					{"id": 155, "media_type": "movie", "title": "The Dark Knight", "character": "Bruce Wayne", "release_date": "2008-07-16"},
					{"id": 100, "media_type": "tv", "name": "Some Show", "character": "Guest"}
				],
				"crew": [
					{"id": 200, "media_type": "movie", "title": "Produced Film", "job": "Producer", "department": "Production"}
				]
			}`))
		})

		credits, err := client.PersonCombinedCredits(context.Background(), IDParams{ID: 3894})
		require.NoError(t, err)

		movies := credits.ByMediaType(MediaTypeMovie)
		require.Len(t, movies, 2)
		assert.Equal(t, "Bruce Wayne", movies[0].Role())
		assert.Equal(t, "Producer", movies[1].Role())
		assert.Equal(t, 2008, movies[0].Year())

		tv := credits.ByMediaType(MediaTypeTV)
		require.Len(t, tv, 1)
		assert.Equal(t, "Some Show", tv[0].DisplayName())
	})

	t.Run("season and episode", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/tv/1399/season/1":
				w.Write([]byte(`{"id": 3624, "name": "Season 1", "season_number": 1, "episodes": [{"id": 63056, "name": "Winter Is Coming", "episode_number": 1}]}`))
			case "/tv/1399/season/1/episode/1":
				assert.Equal(t, "credits", r.URL.Query().Get("append_to_response"))
				w.Write([]byte(`{"id": 63056, "name": "Winter Is Coming", "episode_number": 1, "season_number": 1, "credits": {"cast": [{"id": 22970, "name": "Peter Dinklage"}]}}`))
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
				w.WriteHeader(http.StatusNotFound)
			}
		})

		season, err := client.SeasonDetails(context.Background(), SeasonParams{TVID: 1399, SeasonNumber: 1})
		require.NoError(t, err)
		require.Len(t, season.Episodes, 1)
		assert.Equal(t, "Winter Is Coming", season.Episodes[0].Name)

		episode, err := client.EpisodeDetails(context.Background(), EpisodeParams{TVID: 1399, SeasonNumber: 1, EpisodeNumber: 1, Append: "credits"})
		require.NoError(t, err)
		require.NotNil(t, episode.Credits)
		assert.Equal(t, "Peter Dinklage", episode.Credits.Cast[0].Name)
	})

	t.Run("sub-resources", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/movie/155/credits":
				w.Write([]byte(`{"id": 155, "crew": [{"id": 525, "name": "Christopher Nolan", "job": "Director"}]}`))
			case "/tv/1399/aggregate_credits":
				w.Write([]byte(`{"id": 1399, "cast": [{"id": 22970, "name": "Peter Dinklage", "roles": [{"character": "Tyrion Lannister", "episode_count": 67}], "total_episode_count": 67}]}`))
			case "/movie/155/videos", "/tv/1399/videos":
				w.Write([]byte(`{"results": [{"id": "a", "site": "YouTube"}]}`))
			case "/movie/155/watch/providers", "/tv/1399/watch/providers":
				w.Write([]byte(`{"id": 1, "results": {"US": {"link": "https://example.test", "flatrate": [{"provider_name": "Max"}], "rent": [{"provider_name": "Apple TV"}]}}}`))
			case "/genre/tv/list":
				w.Write([]byte(`{"genres": [{"id": 18, "name": "Drama"}]}`))
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
				w.WriteHeader(http.StatusNotFound)
			}
		})
		ctx := context.Background()

		credits, err := client.MovieCredits(ctx, IDParams{ID: 155})
		require.NoError(t, err)
		assert.Equal(t, []string{"Christopher Nolan"}, credits.Directors())

		aggregate, err := client.TVAggregateCredits(ctx, IDParams{ID: 1399})
		require.NoError(t, err)
		assert.Equal(t, "Tyrion Lannister", aggregate.Cast[0].Characters())

		movieVideos, err := client.MovieVideos(ctx, IDParams{ID: 155})
		require.NoError(t, err)
		assert.Len(t, movieVideos.Results, 1)

		tvVideos, err := client.TVVideos(ctx, IDParams{ID: 1399})
		require.NoError(t, err)
		assert.Len(t, tvVideos.Results, 1)

		providers, err := client.MovieWatchProviders(ctx, IDParams{ID: 155})
		require.NoError(t, err)
		region, ok := providers.Region("US")
		require.True(t, ok)
		assert.Equal(t, []ProviderOffer{
			{Name: "Max", Type: "Stream"},
			{Name: "Apple TV", Type: "Rent"},
		}, region.Offers())

		_, err = client.TVWatchProviders(ctx, IDParams{ID: 1399})
		require.NoError(t, err)

		genres, err := client.Genres(ctx, GenreParams{MediaType: "tv"})
		require.NoError(t, err)
		assert.Equal(t, []Genre{{ID: 18, Name: "Drama"}}, genres.Genres)
	})
}

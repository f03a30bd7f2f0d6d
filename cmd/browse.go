package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/filmdeck/tmdb"
)

var (
	timeWindow  string
	genreIDs    string
	releaseYear int
	discoverBy  string
)

// trendingCmd represents the trending command
var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "List trending movies, shows and people",
	Long: `List what is trending on TMDB today or this week.

Examples:
  filmdeck trending
  filmdeck trending --type movie --window day
  filmdeck trending --type tv --sort rating:desc`,
	PreRunE: initializeApp,
	RunE:    runTrending,
}

// popularCmd represents the popular command
var popularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List popular movies, TV shows or people",
	Long: `List the most popular movies, TV shows or people.

Examples:
  filmdeck popular
  filmdeck popular --type tv --page 2
  filmdeck popular --type people --sort known_for`,
	PreRunE: initializeApp,
	RunE:    runPopular,
}

// topRatedCmd represents the top-rated command
var topRatedCmd = &cobra.Command{
	Use:   "top-rated",
	Short: "List top rated movies or TV shows",
	Long: `List the top rated movies or TV shows.

Examples:
  filmdeck top-rated
  filmdeck top-rated --type tv --filter 'Year >= 2010'`,
	PreRunE: initializeApp,
	RunE:    runTopRated,
}

// upcomingCmd represents the upcoming command
var upcomingCmd = &cobra.Command{
	Use:     "upcoming",
	Short:   "List upcoming movie releases",
	PreRunE: initializeApp,
	RunE:    runUpcoming,
}

// discoverCmd represents the discover command
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover movies or TV shows by genre and year",
	Long: `Discover movies or TV shows using TMDB's discover endpoints.

Genre IDs can be listed with "filmdeck genres".

Examples:
  filmdeck discover --genre 878 --year 1999
  filmdeck discover --type tv --genre 18,80 --sort-by vote_average.desc`,
	PreRunE: initializeApp,
	RunE:    runDiscover,
}

// genresCmd represents the genres command
var genresCmd = &cobra.Command{
	Use:     "genres",
	Short:   "List the movie or TV genres and their IDs",
	PreRunE: initializeApp,
	RunE:    runGenres,
}

func init() {
	rootCmd.AddCommand(trendingCmd, popularCmd, topRatedCmd, upcomingCmd, discoverCmd, genresCmd)

	trendingCmd.Flags().StringP("type", "t", "all", "media type (all, movie, tv, person)")
	trendingCmd.Flags().StringVarP(&timeWindow, "window", "w", "week", "time window (day, week)")
	popularCmd.Flags().StringP("type", "t", "movie", "media type (movie, tv, people)")
	topRatedCmd.Flags().StringP("type", "t", "movie", "media type (movie, tv)")
	discoverCmd.Flags().StringP("type", "t", "movie", "media type (movie, tv)")
	discoverCmd.Flags().StringVarP(&genreIDs, "genre", "g", "", "comma-separated genre IDs")
	discoverCmd.Flags().IntVarP(&releaseYear, "year", "y", 0, "release or first air year")
	discoverCmd.Flags().StringVar(&discoverBy, "sort-by", "popularity.desc", "server-side sort order")
	genresCmd.Flags().StringP("type", "t", "movie", "media type (movie, tv)")

	for _, c := range []*cobra.Command{trendingCmd, popularCmd, topRatedCmd, upcomingCmd, discoverCmd} {
		addListingFlags(c)
	}
}

func validatePage() error {
	if pageFlag < 1 {
		return fmt.Errorf("invalid page %d: must be 1 or greater", pageFlag)
	}
	return nil
}

func runTrending(cmd *cobra.Command, args []string) error {
	mediaType, _ := cmd.Flags().GetString("type")
	if err := validatePage(); err != nil {
		return err
	}
	switch mediaType {
	case "all", tmdb.MediaTypeMovie, tmdb.MediaTypeTV, tmdb.MediaTypePerson:
	default:
		return fmt.Errorf("invalid type: %s (must be all, movie, tv or person)", mediaType)
	}
	if timeWindow != "day" && timeWindow != "week" {
		return fmt.Errorf("invalid window: %s (must be day or week)", timeWindow)
	}

	params := tmdb.TrendingParams{MediaType: mediaType, TimeWindow: timeWindow, Page: pageFlag}
	page, err := load(cmd.Context(), "trending", tmdbClient.Trending, params)
	if err != nil {
		return fmt.Errorf("failed to get trending list: %w", err)
	}

	return printPage(fmt.Sprintf("Trending %s this %s", trendingLabel(mediaType), timeWindow), page)
}

func trendingLabel(mediaType string) string {
	switch mediaType {
	case tmdb.MediaTypeMovie:
		return "movies"
	case tmdb.MediaTypeTV:
		return "TV shows"
	case tmdb.MediaTypePerson:
		return "people"
	default:
		return "titles"
	}
}

func runPopular(cmd *cobra.Command, args []string) error {
	mediaType, _ := cmd.Flags().GetString("type")
	if err := validatePage(); err != nil {
		return err
	}

	params := tmdb.PageParams{Page: pageFlag}
	var (
		page    *tmdb.Page[tmdb.MediaItem]
		heading string
		err     error
	)
	switch mediaType {
	case tmdb.MediaTypeMovie:
		heading = "Popular movies"
		page, err = load(cmd.Context(), "popular_movies", tmdbClient.PopularMovies, params)
	case tmdb.MediaTypeTV:
		heading = "Popular TV shows"
		page, err = load(cmd.Context(), "popular_tv", tmdbClient.PopularTV, params)
	case "people", tmdb.MediaTypePerson:
		heading = "Popular people"
		page, err = load(cmd.Context(), "popular_people", tmdbClient.PopularPeople, params)
	default:
		return fmt.Errorf("invalid type: %s (must be movie, tv or people)", mediaType)
	}
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", strings.ToLower(heading), err)
	}
	return printPage(heading, page)
}

func runTopRated(cmd *cobra.Command, args []string) error {
	mediaType, _ := cmd.Flags().GetString("type")
	if err := validatePage(); err != nil {
		return err
	}

	params := tmdb.PageParams{Page: pageFlag}
	var (
		page    *tmdb.Page[tmdb.MediaItem]
		heading string
		err     error
	)
	switch mediaType {
	case tmdb.MediaTypeMovie:
		heading = "Top rated movies"
		page, err = load(cmd.Context(), "top_rated_movies", tmdbClient.TopRatedMovies, params)
	case tmdb.MediaTypeTV:
		heading = "Top rated TV shows"
		page, err = load(cmd.Context(), "top_rated_tv", tmdbClient.TopRatedTV, params)
	default:
		return fmt.Errorf("invalid type: %s (must be movie or tv)", mediaType)
	}
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", strings.ToLower(heading), err)
	}
	return printPage(heading, page)
}

func runUpcoming(cmd *cobra.Command, args []string) error {
	if err := validatePage(); err != nil {
		return err
	}

	page, err := load(cmd.Context(), "upcoming_movies", tmdbClient.UpcomingMovies, tmdb.PageParams{Page: pageFlag})
	if err != nil {
		return fmt.Errorf("failed to get upcoming movies: %w", err)
	}
	return printPage("Upcoming movies", page)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	mediaType, _ := cmd.Flags().GetString("type")
	if err := validatePage(); err != nil {
		return err
	}

	params := tmdb.DiscoverParams{SortBy: discoverBy, WithGenres: genreIDs, Year: releaseYear, Page: pageFlag}
	var (
		page *tmdb.Page[tmdb.MediaItem]
		err  error
	)
	switch mediaType {
	case tmdb.MediaTypeMovie:
		page, err = load(cmd.Context(), "discover_movies", tmdbClient.DiscoverMovies, params)
	case tmdb.MediaTypeTV:
		page, err = load(cmd.Context(), "discover_tv", tmdbClient.DiscoverTV, params)
	default:
		return fmt.Errorf("invalid type: %s (must be movie or tv)", mediaType)
	}
	if err != nil {
		return fmt.Errorf("failed to discover titles: %w", err)
	}

	// Discover results carry no media_type
	for i := range page.Results {
		page.Results[i].MediaType = mediaType
	}
	return printPage("Discover", page)
}

func runGenres(cmd *cobra.Command, args []string) error {
	mediaType, _ := cmd.Flags().GetString("type")
	if mediaType != tmdb.MediaTypeMovie && mediaType != tmdb.MediaTypeTV {
		return fmt.Errorf("invalid type: %s (must be movie or tv)", mediaType)
	}

	list, err := load(cmd.Context(), "genres", tmdbClient.Genres, tmdb.GenreParams{MediaType: mediaType})
	if err != nil {
		return fmt.Errorf("failed to get genres: %w", err)
	}

	fmt.Printf("%s genres:\n", strings.ToUpper(mediaType[:1])+mediaType[1:])
	for _, genre := range list.Genres {
		fmt.Printf("  • %s (ID: %d)\n", genre.Name, genre.ID)
	}
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/filmdeck/listing"
	"github.com/s0up4200/filmdeck/tmdb"
)

const (
	movieAppend   = "credits,videos,recommendations"
	tvAppend      = "aggregate_credits,videos,recommendations,keywords"
	episodeAppend = "credits"
)

var personTab string

// movieCmd represents the movie command
var movieCmd = &cobra.Command{
	Use:     "movie <id>",
	Short:   "Show movie details, cast and where to watch",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runMovie,
}

// tvCmd represents the tv command
var tvCmd = &cobra.Command{
	Use:     "tv <id>",
	Short:   "Show TV show details, seasons and where to watch",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runTV,
}

// seasonCmd represents the season command
var seasonCmd = &cobra.Command{
	Use:   "season <tv-id> <season>",
	Short: "List the episodes of a season",
	Long: `List the episodes of one season of a TV show. Season 0 holds the specials.

Examples:
  filmdeck season 1399 1`,
	Args:    cobra.ExactArgs(2),
	PreRunE: initializeApp,
	RunE:    runSeason,
}

// episodeCmd represents the episode command
var episodeCmd = &cobra.Command{
	Use:     "episode <tv-id> <season> <episode>",
	Short:   "Show a single episode",
	Args:    cobra.ExactArgs(3),
	PreRunE: initializeApp,
	RunE:    runEpisode,
}

// personCmd represents the person command
var personCmd = &cobra.Command{
	Use:   "person <id>",
	Short: "Show a person's biography and filmography",
	Long: `Show a person's biography and one page of their movie or TV credits.

Examples:
  filmdeck person 287
  filmdeck person 287 --tab tv --page 2`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runPerson,
}

func init() {
	rootCmd.AddCommand(movieCmd, tvCmd, seasonCmd, episodeCmd, personCmd)

	personCmd.Flags().StringVar(&personTab, "tab", tmdb.MediaTypeMovie, "filmography tab (movie, tv)")
	personCmd.Flags().IntVar(&pageFlag, "page", 1, "filmography page (1-based)")
}

// parseID parses a positional argument that must be at least lowest
func parseID(name, raw string, lowest int) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < lowest {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return n, nil
}

// regionProviders picks the configured region from a watch/providers response.
// A missing region yields nil, which prints as not available.
func regionProviders(w *tmdb.WatchProviders) *tmdb.RegionProviders {
	if w == nil {
		return nil
	}
	region, ok := w.Region(cfg.TMDB.Region)
	if !ok {
		return nil
	}
	return &region
}

// loadWithProviders fetches details and watch providers in parallel. A
// provider failure is logged and leaves the providers empty.
func loadWithProviders[T any](ctx context.Context, name string, details func(context.Context, tmdb.DetailParams) (T, error), providers func(context.Context, tmdb.IDParams) (*tmdb.WatchProviders, error), params tmdb.DetailParams) (T, *tmdb.RegionProviders, error) {
	var (
		data    T
		offered *tmdb.WatchProviders
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		data, err = load(gctx, name, details, params)
		return err
	})
	g.Go(func() error {
		var err error
		offered, err = load(gctx, name+"_providers", providers, tmdb.IDParams{ID: params.ID})
		if err != nil {
			logger.Warn().Err(err).Int("id", params.ID).Msg("Failed to get watch providers")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		var zero T
		return zero, nil, err
	}

	return data, regionProviders(offered), nil
}

func runMovie(cmd *cobra.Command, args []string) error {
	id, err := parseID("movie id", args[0], 1)
	if err != nil {
		return err
	}

	return showMovie(cmd.Context(), id)
}

func showMovie(ctx context.Context, id int) error {
	movie, providers, err := loadWithProviders(ctx, "movie", tmdbClient.MovieDetails, tmdbClient.MovieWatchProviders, tmdb.DetailParams{ID: id, Append: movieAppend})
	if err != nil {
		return fmt.Errorf("failed to get movie %d: %w", id, err)
	}

	fmt.Print(formatter.FormatMovie(movie, providers))
	return nil
}

func runTV(cmd *cobra.Command, args []string) error {
	id, err := parseID("tv id", args[0], 1)
	if err != nil {
		return err
	}

	return showTV(cmd.Context(), id)
}

func showTV(ctx context.Context, id int) error {
	show, providers, err := loadWithProviders(ctx, "tv", tmdbClient.TVDetails, tmdbClient.TVWatchProviders, tmdb.DetailParams{ID: id, Append: tvAppend})
	if err != nil {
		return fmt.Errorf("failed to get TV show %d: %w", id, err)
	}

	fmt.Print(formatter.FormatTV(show, providers))
	return nil
}

func runSeason(cmd *cobra.Command, args []string) error {
	id, err := parseID("tv id", args[0], 1)
	if err != nil {
		return err
	}
	number, err := parseID("season", args[1], 0)
	if err != nil {
		return err
	}

	season, err := load(cmd.Context(), "season", tmdbClient.SeasonDetails, tmdb.SeasonParams{TVID: id, SeasonNumber: number})
	if err != nil {
		return fmt.Errorf("failed to get season %d of TV show %d: %w", number, id, err)
	}

	fmt.Print(formatter.FormatSeason(season))
	return nil
}

func runEpisode(cmd *cobra.Command, args []string) error {
	id, err := parseID("tv id", args[0], 1)
	if err != nil {
		return err
	}
	season, err := parseID("season", args[1], 0)
	if err != nil {
		return err
	}
	number, err := parseID("episode", args[2], 1)
	if err != nil {
		return err
	}

	params := tmdb.EpisodeParams{TVID: id, SeasonNumber: season, EpisodeNumber: number, Append: episodeAppend}
	episode, err := load(cmd.Context(), "episode", tmdbClient.EpisodeDetails, params)
	if err != nil {
		return fmt.Errorf("failed to get S%02dE%02d of TV show %d: %w", season, number, id, err)
	}

	fmt.Print(formatter.FormatEpisode(episode))
	return nil
}

func runPerson(cmd *cobra.Command, args []string) error {
	id, err := parseID("person id", args[0], 1)
	if err != nil {
		return err
	}
	if personTab != tmdb.MediaTypeMovie && personTab != tmdb.MediaTypeTV {
		return fmt.Errorf("invalid tab: %s (must be movie or tv)", personTab)
	}
	if err := validatePage(); err != nil {
		return err
	}
	return showPerson(cmd.Context(), id, personTab, pageFlag)
}

func showPerson(ctx context.Context, id int, tab string, pageNumber int) error {
	var (
		person  *tmdb.PersonDetails
		credits *tmdb.CombinedCredits
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		person, err = load(gctx, "person", tmdbClient.PersonDetails, tmdb.DetailParams{ID: id})
		return err
	})
	g.Go(func() error {
		var err error
		credits, err = load(gctx, "person_credits", tmdbClient.PersonCombinedCredits, tmdb.IDParams{ID: id})
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to get person %d: %w", id, err)
	}

	items := listing.Filmography(credits, tab)
	pageSize := cfg.Listing.PageSize
	pager := listing.NewPager(pageNumber, listing.PageCount(len(items), pageSize))
	logger.Debug().Int("credits", len(items)).Str("tab", tab).Int("page", pager.Page).Msg("Paged filmography")

	fmt.Print(formatter.FormatPerson(person, listing.Paginate(items, pager.Page, pageSize), pager))
	return nil
}

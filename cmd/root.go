package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/filmdeck/config"
	"github.com/s0up4200/filmdeck/filter"
	"github.com/s0up4200/filmdeck/images"
	"github.com/s0up4200/filmdeck/listing"
	"github.com/s0up4200/filmdeck/resource"
	"github.com/s0up4200/filmdeck/tmdb"
)

var (
	cfgFile    string
	cfg        *config.Config
	logger     zerolog.Logger
	tmdbClient *tmdb.Client
	imageCfg   *images.Provider
	filters    *filter.Manager
	formatter  *listing.ConsoleFormatter

	// Listing flags
	pageFlag   int
	sortFlag   string
	filterExpr string
	preset     string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "filmdeck",
	Short: "Browse movies, TV shows and people from TMDB",
	Long: `filmdeck is a CLI and web UI for The Movie Database (TMDB).

Browse trending, popular and top rated titles, look up movies, shows,
seasons, episodes and people, search across all of them, or run the
web UI with "filmdeck serve".`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default searches ./config.yaml, ~/.filmdeck, /etc/filmdeck)")
}

// addListingFlags registers the paging, sorting and filtering flags of a list command
func addListingFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&pageFlag, "page", 1, "page to fetch (1-based)")
	cmd.Flags().StringVarP(&sortFlag, "sort", "s", "", "sort the page by key[:asc|desc] ("+strings.Join(listing.Keys(), ", ")+")")
	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}

// initializeApp loads the configuration and creates the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)
	if cfg.File != "" {
		logger.Debug().Str("file", cfg.File).Msg("Loaded config file")
	}

	tmdbClient, err = tmdb.NewClient(cfg.TMDB.APIKey, logger,
		tmdb.WithBaseURL(cfg.TMDB.BaseURL),
		tmdb.WithLanguage(cfg.TMDB.Language),
		tmdb.WithTimeout(cfg.TMDB.Timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create TMDB client: %w", err)
	}

	imageCfg = images.NewProvider(tmdbClient.Configuration, logger)

	filters = filter.NewManager(filter.WithCompiler(filter.NewExprCompiler(filter.WithLogger(logger))))
	if err := filters.RegisterFilters(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	formatter = listing.NewConsoleFormatter()
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; colors only when writing to a terminal
	tty := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !tty,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// load runs one fetch through a resource and returns its data or error
func load[P comparable, T any](ctx context.Context, name string, fetch resource.Fetcher[P, T], params P) (T, error) {
	r := resource.New(fetch, params, logger, resource.WithAutoFetch(false), resource.WithName(name))
	defer r.Close()

	state, err := r.Load(ctx, params)
	if err != nil {
		var zero T
		return zero, err
	}
	if state.Failed() {
		var zero T
		return zero, state.Err
	}
	return state.Data, nil
}

// listFilter resolves --filter, --preset and the configured default expression
func listFilter() (filter.Filter, error) {
	f, err := filters.Resolve(filterExpr, preset, cfg.Filter.DefaultExpression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	return f, nil
}

// preparePage filters and sorts the rows of one fetched page
func preparePage(page *tmdb.Page[tmdb.MediaItem]) ([]listing.Item, listing.Pager, error) {
	sortCfg, err := listing.ParseSort(sortFlag)
	if err != nil {
		return nil, listing.Pager{}, err
	}
	f, err := listFilter()
	if err != nil {
		return nil, listing.Pager{}, err
	}

	items := listing.FromMediaList(page.Results)
	if f != nil {
		items = filter.Apply(f, items)
		logger.Debug().Int("matched", len(items)).Int("total", len(page.Results)).Msg("Applied filter")
	}
	items = listing.Sort(items, sortCfg)

	return items, listing.NewPager(page.Page, listing.ClampPages(page.TotalPages, cfg.Listing.MaxPages)), nil
}

// printPage prints one fetched page after filtering and sorting it
func printPage(heading string, page *tmdb.Page[tmdb.MediaItem]) error {
	items, pager, err := preparePage(page)
	if err != nil {
		return err
	}
	fmt.Println(formatter.FormatList(heading, items, pager))
	return nil
}

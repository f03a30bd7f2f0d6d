package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/filmdeck/listing"
	"github.com/s0up4200/filmdeck/search"
	"github.com/s0up4200/filmdeck/tmdb"
)

var (
	searchTab   string
	searchAll   bool
	interactive bool
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search movies, TV shows and people",
	Long: `Search TMDB. Results are shown one tab at a time with the number of
matches for every tab.

Examples:
  filmdeck search the matrix
  filmdeck search --tab people keanu
  filmdeck search --all alien --sort year:desc
  filmdeck search -i blade runner`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: initializeApp,
	RunE:    runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchTab, "tab", string(search.TabMovies), "result tab (movies, tv, people)")
	searchCmd.Flags().BoolVar(&searchAll, "all", false, "search all media types in a single list")
	searchCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick a result to show its details")
	addListingFlags(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	tab, err := search.ParseTab(searchTab)
	if err != nil {
		return err
	}
	if err := validatePage(); err != nil {
		return err
	}

	session := search.NewSession(strings.Join(args, " "))
	if session.Query == "" {
		return fmt.Errorf("search query cannot be empty")
	}
	session.SwitchTab(tab)
	session.SetPage(pageFlag)

	service := search.NewService(tmdbClient, cfg.TMDB.IncludeAdult, logger)
	params := session.Params(service.IncludeAdult())

	var (
		page    *tmdb.Page[tmdb.MediaItem]
		heading string
	)
	if searchAll {
		heading = fmt.Sprintf("Results for %q", session.Query)
		page, err = load(ctx, "search_multi", tmdbClient.SearchMulti, params)
	} else {
		counts, countErr := service.Counts(ctx, session.Query)
		if countErr != nil {
			logger.Warn().Err(countErr).Msg("Failed to get result counts")
		}
		printTabs(session.Tab, counts)

		heading = fmt.Sprintf("%s matching %q", session.Tab.Label(), session.Query)
		page, err = load(ctx, "search_"+string(session.Tab), service.Fetcher(session.Tab), params)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	items, pager, err := preparePage(page)
	if err != nil {
		return err
	}
	fmt.Println(formatter.FormatList(heading, items, pager))

	if interactive && len(items) > 0 {
		return pickResult(ctx, items)
	}
	return nil
}

// printTabs prints the tab bar with per-tab result counts
func printTabs(active search.Tab, counts search.Counts) {
	parts := make([]string, 0, len(search.Tabs))
	for _, tab := range search.Tabs {
		label := fmt.Sprintf("%s (%d)", tab.Label(), counts.For(tab))
		if tab == active {
			label = "[" + label + "]"
		}
		parts = append(parts, label)
	}
	fmt.Println(strings.Join(parts, "  "))
}

// pickResult lists the results by number and shows the details of the one chosen
func pickResult(ctx context.Context, items []listing.Item) error {
	fmt.Println(strings.Repeat("━", 85))
	fmt.Printf("%-4s %-50s %-15s %s\n", "#", "TITLE", "YEAR", "TYPE")
	fmt.Println(strings.Repeat("━", 85))
	for i, item := range items {
		title := item.Title
		if len(title) > 48 {
			title = title[:45] + "..."
		}
		fmt.Printf("%-4d %-50s %-15s %s\n", i+1, title, item.YearText(), item.Kind)
	}
	fmt.Println(strings.Repeat("━", 85))

	fmt.Printf("\nEnter a result number to show its details [Enter to cancel]: ")

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		// No input (Ctrl+D or similar)
		fmt.Println("No result selected.")
		return nil
	}

	input := strings.TrimSpace(scanner.Text())
	if input == "" {
		fmt.Println("No result selected.")
		return nil
	}

	num, err := strconv.Atoi(input)
	if err != nil {
		return fmt.Errorf("invalid number '%s': must be a positive integer", input)
	}
	if num < 1 || num > len(items) {
		return fmt.Errorf("invalid result number %d: must be between 1 and %d", num, len(items))
	}

	item := items[num-1]
	logger.Debug().Int("id", item.ID).Str("kind", item.Kind).Msg("Selected search result")

	switch item.Kind {
	case tmdb.MediaTypeMovie:
		return showMovie(ctx, item.ID)
	case tmdb.MediaTypeTV:
		return showTV(ctx, item.ID)
	default:
		return showPerson(ctx, item.ID, tmdb.MediaTypeMovie, 1)
	}
}

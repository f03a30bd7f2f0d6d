package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/filmdeck/images"
	"github.com/s0up4200/filmdeck/tmdb"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:     "test",
	Short:   "Test the connection to TMDB",
	Long:    `Test the connection to the TMDB API and display basic information.`,
	PreRunE: initializeApp,
	RunE:    runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	fmt.Printf("Testing connection to TMDB at %s...\n", tmdbClient.BaseURL())

	if err := imageCfg.Load(ctx); err != nil {
		return fmt.Errorf("failed to get API configuration: %w", err)
	}
	fmt.Println("✓ Connection successful!")

	status := imageCfg.Snapshot()
	movieGenres, err := load(ctx, "movie_genres", tmdbClient.Genres, tmdb.GenreParams{MediaType: tmdb.MediaTypeMovie})
	if err != nil {
		return fmt.Errorf("failed to get movie genres: %w", err)
	}
	tvGenres, err := load(ctx, "tv_genres", tmdbClient.Genres, tmdb.GenreParams{MediaType: tmdb.MediaTypeTV})
	if err != nil {
		return fmt.Errorf("failed to get TV genres: %w", err)
	}

	fmt.Printf("\nTMDB Information:\n")
	if status.Config != nil {
		fmt.Printf("- Image base URL: %s\n", status.Config.ImageBaseURL())
		fmt.Printf("- Poster sizes: %s\n", strings.Join(status.Config.Sizes(images.Poster), ", "))
	}
	fmt.Printf("- Movie genres: %d\n", len(movieGenres.Genres))
	fmt.Printf("- TV genres: %d\n", len(tvGenres.Genres))
	fmt.Printf("- Region: %s\n", cfg.TMDB.Region)
	fmt.Printf("- Adult results: %s\n", boolToStatus(cfg.TMDB.IncludeAdult))

	if len(cfg.Filter.Presets) > 0 {
		fmt.Printf("\nFilter presets:\n")
		for _, name := range filters.ListFilters() {
			fmt.Printf("  • %s\n", name)
		}
	}

	return nil
}

func boolToStatus(b bool) string {
	if b {
		return "Enabled"
	}
	return "Disabled"
}

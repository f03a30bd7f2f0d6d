package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const repositorySlug = "s0up4200/filmdeck"

var assumeYes bool

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update filmdeck to the latest release",
	Long: `Check GitHub for a newer filmdeck release and replace the running binary with it.

Development builds cannot be updated; install a release first.`,
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "update without asking for confirmation")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	current, err := semver.ParseTolerant(version)
	if err != nil {
		return fmt.Errorf("cannot update a development build (version %q)", version)
	}

	fmt.Printf("Checking for updates (current version %s)...\n", current)
	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repositorySlug))
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", repositorySlug)
	}
	if latest.LessOrEqual(current.String()) {
		fmt.Printf("✓ filmdeck %s is the latest version\n", current)
		return nil
	}

	fmt.Printf("→ New version available: %s\n", latest.Version())
	if !assumeYes {
		fmt.Printf("Update now? [y/N]: ")
		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			fmt.Println("Update cancelled.")
			return nil
		}
		if strings.ToLower(strings.TrimSpace(scanner.Text())) != "y" {
			fmt.Println("Update cancelled.")
			return nil
		}
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	fmt.Printf("→ Downloading %s... ", latest.AssetName)
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		fmt.Printf("✗ Failed: %v\n", err)
		return fmt.Errorf("failed to update binary: %w", err)
	}
	fmt.Printf("✓ Done\n")

	fmt.Printf("\n✓ Updated filmdeck to %s\n", latest.Version())
	return nil
}

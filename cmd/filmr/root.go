package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/yzays8/filmr/pkg/config"
	"github.com/yzays8/filmr/pkg/logger"
	"github.com/yzays8/filmr/pkg/ui"
)

var (
	// Version information
	version   = "0.3.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	noColor    bool
	quiet      bool
	verbose    bool
)

// rootCmd runs a scrape when given a user ID, so `filmr <user-id>` works
// like `filmr scrape <user-id>`
var rootCmd = &cobra.Command{
	Use:   "filmr [user-id]",
	Short: "Export a Filmarks user's reviews",
	Long: `filmr collects every review a Filmarks user has written for movies,
TV series or anime and exports them as CSV, JSON, plain text, Markdown,
XLSX or SQLite.

Requests are spaced by a fixed interval (1s by default) so the site is
never hit in bursts.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.Configure(quiet, noColor)
		// Console logs would interleave with the progress line
		if !verbose {
			logger.Console = io.Discard
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		ui.PrintError("Error", err)
		os.Exit(1)
	}
}

func init() {
	// Assigned here rather than in the literal: runScrape refers to rootCmd
	rootCmd.RunE = runScrape

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default ./filmr.yaml or $XDG_CONFIG_HOME/filmr/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print log lines to the console")

	rootCmd.SetVersionTemplate(`filmr {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	addScrapeFlags(rootCmd)
}

// globalOverrides returns the config fields set by persistent flags
func globalOverrides() *config.Config {
	o := &config.Config{}
	o.Logging.Level = logLevel
	o.Logging.NoColor = noColor
	return o
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "filmr %s\n", rootCmd.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

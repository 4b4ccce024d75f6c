package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yzays8/filmr/pkg/config"
	ferrors "github.com/yzays8/filmr/pkg/errors"
	"github.com/yzays8/filmr/pkg/export"
	"github.com/yzays8/filmr/pkg/filmarks"
	"github.com/yzays8/filmr/pkg/logger"
	"github.com/yzays8/filmr/pkg/ratelimit"
	"github.com/yzays8/filmr/pkg/scraper"
	"github.com/yzays8/filmr/pkg/ui"
)

var (
	// Scrape command flags
	movie            bool
	tv               bool
	anime            bool
	outputFormat     string
	outputPath       string
	rateInterval     time.Duration
	httpTimeout      time.Duration
	overwrite        bool
	cloudflareBypass bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <user-id>",
	Short: "Scrape a user's reviews and export them",
	Long: `Scrape every review of a Filmarks user and export them to a file.

Listing pages are fetched one after another until the site answers 404.
Reviews too long to show on the listing are fetched from their own page.
Nothing is written unless the whole scrape succeeds.`,
	Example: `  # Movie reviews as plain text (reviews.txt)
  filmr scrape some_user

  # Anime reviews as JSON
  filmr scrape some_user --anime -f json -o anime.json

  # TV reviews, slower pacing, replace an existing file
  filmr scrape some_user --tv -f csv --rate 2s --overwrite`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
	addScrapeFlags(scrapeCmd)
}

// addScrapeFlags registers the scrape flags on cmd. The root command gets
// them too so `filmr <user-id> --anime` works.
func addScrapeFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&movie, "movie", false, "scrape movie reviews (default)")
	cmd.Flags().BoolVar(&tv, "tv", false, "scrape TV series reviews")
	cmd.Flags().BoolVar(&anime, "anime", false, "scrape anime reviews")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format: csv, json, txt, markdown, xlsx, sqlite (default txt)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default reviews.<ext>)")
	cmd.Flags().DurationVar(&rateInterval, "rate", 0, "minimum interval between requests (default 1s)")
	cmd.Flags().DurationVar(&httpTimeout, "timeout", 0, "HTTP timeout per request (default 30s)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing output file")
	cmd.Flags().BoolVar(&cloudflareBypass, "cloudflare-bypass", false, "use browser-like TLS settings")
	cmd.MarkFlagsMutuallyExclusive("movie", "tv", "anime")
}

// scrapeOverrides collects the config fields set on the command line
func scrapeOverrides(flags *pflag.FlagSet, userID string) *config.Config {
	o := globalOverrides()
	o.Target.UserID = userID

	switch {
	case flags.Changed("tv") && tv:
		o.Target.Category = filmarks.TVSeries.String()
	case flags.Changed("anime") && anime:
		o.Target.Category = filmarks.Anime.String()
	case flags.Changed("movie") && movie:
		o.Target.Category = filmarks.Movie.String()
	}

	// Aliases like "md" are normalized here; unknown names are left for
	// Validate to report
	o.Output.Format = outputFormat
	if f, err := export.ParseFormat(outputFormat); err == nil && outputFormat != "" {
		o.Output.Format = string(f)
	}
	o.Output.Path = outputPath
	o.Output.Overwrite = overwrite
	o.RateLimit.Interval = rateInterval
	o.HTTP.Timeout = httpTimeout
	o.HTTP.CloudflareBypass = cloudflareBypass
	return o
}

// resolveOutput picks the export format and path and refuses an existing
// file before any request is made
func resolveOutput(cfg *config.Config) (export.Format, string, error) {
	format, err := export.ParseFormat(cfg.Output.Format)
	if err != nil {
		return "", "", err
	}

	path := cfg.Output.Path
	if path == "" {
		path = export.DefaultPath(format)
	}

	if !cfg.Output.Overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", "", fmt.Errorf("%w: %s (use --overwrite to replace it)", export.ErrExists, path)
		}
	}

	return format, path, nil
}

func runScrape(cmd *cobra.Command, args []string) error {
	var userID string
	if len(args) == 1 {
		userID = strings.TrimSpace(args[0])
	}

	cfg, err := config.Load(configFile, scrapeOverrides(cmd.Flags(), userID))
	if err != nil {
		return err
	}
	if cfg.Target.UserID == "" {
		if cmd == rootCmd {
			return cmd.Help()
		}
		return errors.New("no user ID given (pass it as an argument or set FILMR_USER_ID)")
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.GetLogger()
	log.WithField("version", version).Info("filmr starting")

	category, err := filmarks.ParseCategory(cfg.Target.Category)
	if err != nil {
		return err
	}
	format, path, err := resolveOutput(cfg)
	if err != nil {
		return err
	}

	ui.PrintInfo("User", cfg.Target.UserID)
	ui.PrintInfo("Category", category.String())

	client := filmarks.NewClient(ratelimit.NewInterval(cfg.RateLimit.Interval),
		filmarks.WithTimeout(cfg.HTTP.Timeout),
		filmarks.WithUserAgent(cfg.HTTP.UserAgent),
		filmarks.WithCloudflareBypass(cfg.HTTP.CloudflareBypass),
		filmarks.WithLogger(log),
	)
	s := scraper.New(client, category,
		scraper.WithObserver(ui.NewTerminalProgress()),
		scraper.WithLogger(log),
	)

	session, err := s.Scrape(cmd.Context(), cfg.Target.UserID)
	if err != nil {
		if errors.Is(err, ferrors.ErrUserNotFound) {
			return fmt.Errorf("user %q not found on Filmarks", cfg.Target.UserID)
		}
		return fmt.Errorf("scrape failed: %w", err)
	}

	if err := export.Export(path, format, session.Reviews(), cfg.Output.Overwrite); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	log.InfoWithFields("Reviews exported", map[string]interface{}{
		"session_id": session.ID,
		"path":       path,
		"format":     string(format),
		"reviews":    session.Len(),
	})

	ui.PrintSuccess(fmt.Sprintf("Exported %d reviews to %s", session.Len(), path))
	ui.PrintSummary(os.Stdout, ui.Summary{
		SessionID: session.ID,
		UserID:    session.UserID,
		Category:  session.Category,
		Format:    string(format),
		Output:    path,
		Stats:     session.Stats(),
	})
	return nil
}

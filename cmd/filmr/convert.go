package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yzays8/filmr/pkg/export"
	"github.com/yzays8/filmr/pkg/review"
	"github.com/yzays8/filmr/pkg/ui"
)

var (
	convertFormat    string
	convertOutput    string
	convertOverwrite bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <reviews.json>",
	Short: "Convert a JSON export to another format",
	Long: `Read reviews previously exported with --format json and write them in
another format without touching the network.`,
	Example: `  filmr convert reviews.json -f xlsx
  filmr convert reviews.json -f sqlite -o reviews.db --overwrite`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "", "output format: csv, json, txt, markdown, xlsx, sqlite")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output file (default reviews.<ext>)")
	convertCmd.Flags().BoolVar(&convertOverwrite, "overwrite", false, "replace an existing output file")
	_ = convertCmd.MarkFlagRequired("format")
}

func runConvert(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(convertFormat)
	if err != nil {
		return err
	}
	path := convertOutput
	if path == "" {
		path = export.DefaultPath(format)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	reviews, err := export.DecodeJSON(f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	if err := export.Export(path, format, reviews, convertOverwrite); err != nil {
		return err
	}

	ui.PrintSuccess(fmt.Sprintf("Converted %d reviews to %s", len(reviews), path))
	ui.PrintSummary(os.Stdout, ui.Summary{
		Format: string(format),
		Output: path,
		Stats:  review.StatsOf(reviews),
	})
	return nil
}

package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/yzays8/filmr/pkg/review"
)

// Summary describes a finished export
type Summary struct {
	SessionID string
	UserID    string
	Category  string
	Format    string
	Output    string
	Stats     review.Stats
}

// PrintSummary renders s as a table on w. Nothing is printed in quiet mode.
func PrintSummary(w io.Writer, s Summary) {
	if Quiet() {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Field", "Value"})

	if s.SessionID != "" {
		t.AppendRow(table.Row{"Session", s.SessionID})
	}
	if s.UserID != "" {
		t.AppendRow(table.Row{"User", s.UserID})
	}
	if s.Category != "" {
		t.AppendRow(table.Row{"Category", s.Category})
	}
	if s.Stats.Pages > 0 {
		t.AppendRow(table.Row{"Pages", s.Stats.Pages})
	}
	t.AppendRow(table.Row{"Reviews", s.Stats.Reviews})
	if s.Stats.Pages > 0 {
		t.AppendRow(table.Row{"Inline / Linked", fmt.Sprintf("%d / %d", s.Stats.Inline, s.Stats.Linked)})
	}
	t.AppendRow(table.Row{"Average score", fmt.Sprintf("%.2f", s.Stats.AverageScore)})
	if s.Stats.Duration > 0 {
		t.AppendRow(table.Row{"Duration", s.Stats.Duration.Round(time.Millisecond).String()})
	}
	t.AppendRow(table.Row{"Output", fmt.Sprintf("%s (%s)", s.Output, s.Format)})

	t.SetStyle(table.StyleRounded)
	t.Render()
}

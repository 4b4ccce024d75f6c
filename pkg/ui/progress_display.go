package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// redrawInterval caps how often concurrent card resolutions repaint the line
const redrawInterval = 100 * time.Millisecond

// ProgressDisplay renders per-page progress of a scrape session. It
// satisfies scraper.Observer.
type ProgressDisplay struct {
	mu          sync.Mutex
	w           io.Writer
	interactive bool
	quiet       bool

	page      int
	cards     int
	resolved  int
	linked    int
	pageStart time.Time
	start     time.Time

	redraw rate.Sometimes
}

// NewProgressDisplay creates a display writing to w. When interactive is
// false the per-card progress line is skipped and only page lines are printed.
func NewProgressDisplay(w io.Writer, interactive, quiet bool) *ProgressDisplay {
	return &ProgressDisplay{
		w:           w,
		interactive: interactive,
		quiet:       quiet,
		start:       time.Now(),
		redraw:      rate.Sometimes{Interval: redrawInterval},
	}
}

// NewTerminalProgress creates a display for stdout using the global ui settings
func NewTerminalProgress() *ProgressDisplay {
	o, _ := writers()
	return NewProgressDisplay(o, Interactive(), Quiet())
}

// PageStarted announces the listing page being fetched
func (p *ProgressDisplay) PageStarted(page int, url string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.page = page
	p.cards, p.resolved, p.linked = 0, 0, 0
	p.pageStart = time.Now()
	if p.quiet {
		return
	}
	fmt.Fprintf(p.w, "Fetching reviews from %s...\n", Cyan(url))
}

// PageExtracted records how many cards the page holds
func (p *ProgressDisplay) PageExtracted(page, inline, linked int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cards = inline + linked
	p.resolved = inline
	p.linked = linked
	if linked > 0 {
		p.printProgress()
	}
}

// CardResolved advances the progress line by one linked card
func (p *ProgressDisplay) CardResolved(page, card int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.resolved++
	if p.resolved == p.cards {
		p.printProgress()
		return
	}
	p.redraw.Do(p.printProgress)
}

// PageDone clears the progress line and reports the page result
func (p *ProgressDisplay) PageDone(page, reviews int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.quiet {
		return
	}
	if p.interactive && p.linked > 0 {
		fmt.Fprintf(p.w, "\r%s\r", strings.Repeat(" ", 80))
	}
	fmt.Fprintf(p.w, "Done! %d reviews found.\n", reviews)
}

// SessionDone reports the session total
func (p *ProgressDisplay) SessionDone(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.quiet {
		return
	}
	fmt.Fprintf(p.w, "%s %d reviews collected in %s\n",
		Green("✓"), total, time.Since(p.start).Round(time.Millisecond))
}

// printProgress draws the one-line card progress; callers hold p.mu
func (p *ProgressDisplay) printProgress() {
	if p.quiet || !p.interactive || p.cards == 0 {
		return
	}

	barWidth := 30
	filled := p.resolved * barWidth / p.cards
	bar := strings.Repeat("━", filled) + strings.Repeat("─", barWidth-filled)
	pending := p.cards - p.resolved

	line := fmt.Sprintf("[%s] page %d [%s] %d/%d",
		formatElapsed(time.Since(p.pageStart)), p.page, bar, p.resolved, p.cards)
	if pending > 0 {
		line += Dim(fmt.Sprintf(" • %d linked pending", pending))
	}
	fmt.Fprintf(p.w, "\r%s", line)
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

package scraper

import (
	"context"

	"github.com/yzays8/filmr/pkg/filmarks"
)

// PageFetcher defines the page-fetch operation the scraper depends on
type PageFetcher interface {
	Fetch(ctx context.Context, url string) filmarks.PageResult
	BaseURL() string
}

// Observer receives progress events during a session. CardResolved is called
// from concurrent goroutines.
type Observer interface {
	PageStarted(page int, url string)
	PageExtracted(page, inline, linked int)
	CardResolved(page, card int)
	PageDone(page, reviews int)
	SessionDone(total int)
}

// NopObserver ignores every event
type NopObserver struct{}

func (NopObserver) PageStarted(int, string)     {}
func (NopObserver) PageExtracted(int, int, int) {}
func (NopObserver) CardResolved(int, int)       {}
func (NopObserver) PageDone(int, int)           {}
func (NopObserver) SessionDone(int)             {}

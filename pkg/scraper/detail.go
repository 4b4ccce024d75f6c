package scraper

import (
	"context"

	"github.com/yzays8/filmr/pkg/errors"
	"github.com/yzays8/filmr/pkg/extractor"
	"github.com/yzays8/filmr/pkg/filmarks"
	"github.com/yzays8/filmr/pkg/review"
)

// DetailFetcher resolves a linked card by fetching its detail page
type DetailFetcher struct {
	fetcher   PageFetcher
	extractor *extractor.Extractor
}

// NewDetailFetcher creates a DetailFetcher. It shares fetcher, and so the
// rate limiter, with the listing loop.
func NewDetailFetcher(fetcher PageFetcher, ex *extractor.Extractor) *DetailFetcher {
	return &DetailFetcher{fetcher: fetcher, extractor: ex}
}

// Resolve fetches url and extracts its review. A 404 on a detail page is an
// error, not a pagination boundary.
func (d *DetailFetcher) Resolve(ctx context.Context, url string) (review.Review, error) {
	res := d.fetcher.Fetch(ctx, url)
	switch res.Kind {
	case filmarks.PageNotFound:
		return review.Review{}, errors.NewNotFoundError(url)
	case filmarks.PageTransportError:
		return review.Review{}, res.Err
	}
	return d.extractor.ExtractDetail(res.Doc)
}

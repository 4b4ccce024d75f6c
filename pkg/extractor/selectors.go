package extractor

import "github.com/yzays8/filmr/pkg/filmarks"

// Selectors is the set of CSS selectors used against one category's markup
type Selectors struct {
	// listing page
	Card          string
	ReadMore      string
	ReadMoreLink  string
	ListingTitle  string
	ListingScore  string
	ListingReview string
	ReviewInner   string

	// detail page
	DetailTitle  string
	DetailScore  string
	DetailReview string
}

var listing = Selectors{
	Card:          "div.p-contents-list div.c-content-card",
	ReadMore:      "span.c-content-card__readmore-review",
	ReadMoreLink:  "a[href]",
	ListingTitle:  "h3.c-content-card__title",
	ListingScore:  "div.c-rating__score",
	ListingReview: "p.c-content-card__review",
	ReviewInner:   "span",
	DetailTitle:   "div.p-timeline-mark__title",
	DetailScore:   "div.c-rating__score",
}

// SelectorsFor returns the selector set for a category. Listing markup is
// shared; anime detail pages use a different review container.
func SelectorsFor(c filmarks.Category) Selectors {
	s := listing
	switch c {
	case filmarks.Anime:
		s.DetailReview = "div.p-mark-review"
	default:
		s.DetailReview = "div.p-mark__review"
	}
	return s
}

// Package scraper collects a Filmarks user's reviews.
//
// A Scraper walks the user's listing pages for one category, starting at
// page 1 and stopping at the first page that responds 404. A 404 on page 1
// means the user does not exist and yields errors.ErrUserNotFound.
//
// Each listing page is split into cards. Inline cards carry their review and
// are extracted on the spot. Linked cards only carry a "read more" link; their
// detail pages are fetched concurrently by a DetailFetcher and the results are
// written back into the card's position, so the output order always matches
// the order shown on the site. The next page is requested only after every
// card of the current page has been resolved.
//
// All requests go through the single rate limiter owned by the PageFetcher.
// There is no retry: the first transport or parse error ends the session and
// no partial result is returned.
//
// Usage:
//
//	client := filmarks.NewClient(ratelimit.NewInterval(time.Second))
//	s := scraper.New(client, filmarks.Movie)
//	session, err := s.Scrape(ctx, "some_user")
//	if errors.Is(err, ferrors.ErrUserNotFound) {
//	    // ...
//	}
package scraper

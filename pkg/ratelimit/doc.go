// Package ratelimit spaces outbound requests to Filmarks.
//
// A single Interval limiter is shared by every fetch of a scrape session,
// listing pages and detail pages alike. It guarantees that the start of each
// throttled call is separated from the start of the previous one by at least
// the configured interval, across all concurrent callers.
//
// Callers are served in the order they ask for a slot. The spacing is
// measured between actual start times, so a caller that wakes late delays
// the next one rather than letting it start early. Requests are only
// delayed, never dropped.
//
// Usage:
//
//	limiter := ratelimit.NewInterval(time.Second)
//
//	doc, err := ratelimit.Throttle(ctx, limiter, func() (*goquery.Document, error) {
//	    return fetch(url)
//	})
package ratelimit

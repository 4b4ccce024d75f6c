package filmarks

import (
	"fmt"
	"net/url"
	"strings"
)

// BaseURL is the origin every listing and detail URL is built on
const BaseURL = "https://filmarks.com"

// Category selects which of a user's review lists is scraped
type Category int

const (
	Movie Category = iota
	TVSeries
	Anime
)

// ParseCategory maps a config or flag value to a Category
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "movies", "":
		return Movie, nil
	case "tv", "drama", "dramas":
		return TVSeries, nil
	case "anime", "animes":
		return Anime, nil
	default:
		return Movie, fmt.Errorf("unknown category %q (want movie, tv or anime)", s)
	}
}

func (c Category) String() string {
	switch c {
	case TVSeries:
		return "tv"
	case Anime:
		return "anime"
	default:
		return "movie"
	}
}

// listingPath is the user-relative path of the category's listing
func (c Category) listingPath() string {
	switch c {
	case TVSeries:
		return "/marks/dramas"
	case Anime:
		return "/marks/animes"
	default:
		return ""
	}
}

// ListingURL constructs the URL of one listing page. Page 1 carries no
// query string.
func ListingURL(base, userID string, category Category, page int) string {
	u := fmt.Sprintf("%s/users/%s%s", strings.TrimRight(base, "/"), url.PathEscape(userID), category.listingPath())
	if page >= 2 {
		u += fmt.Sprintf("?page=%d", page)
	}
	return u
}

// ResolveURL resolves a possibly relative link against base
func ResolveURL(base, href string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", fmt.Errorf("invalid link %q: %w", href, err)
	}
	return b.ResolveReference(ref).String(), nil
}

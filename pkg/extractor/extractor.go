package extractor

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yzays8/filmr/pkg/errors"
	"github.com/yzays8/filmr/pkg/filmarks"
	"github.com/yzays8/filmr/pkg/review"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// CardKind tells whether a card carries its review or links to it
type CardKind int

const (
	CardInline CardKind = iota
	CardLinked
)

func (k CardKind) String() string {
	if k == CardLinked {
		return "linked"
	}
	return "inline"
}

// Card is one review card of a listing page. It is only valid while the page
// it came from is being processed.
type Card struct {
	Index     int
	Kind      CardKind
	DetailURL string
	PageURL   string

	sel *goquery.Selection
}

// titleYear matches "<title>(<year>...)" against the last parenthesized
// group that starts with exactly four digits, e.g. "Parasite(2019年製作の映画)".
// Full-width brackets and digits are accepted as they appear on the site.
var titleYear = regexp.MustCompile(`(?s)^(.+)[(（]([0-9０-９]{4})(?:[^0-9０-９()（）][^()（）]*)?[)）]`)

// Extractor turns parsed Filmarks pages into reviews
type Extractor struct {
	sel     Selectors
	baseURL string
}

// New creates an Extractor. Detail links are resolved against baseURL.
func New(sel Selectors, baseURL string) *Extractor {
	return &Extractor{sel: sel, baseURL: baseURL}
}

// ForCategory creates an Extractor with the category's selector set
func ForCategory(c filmarks.Category, baseURL string) *Extractor {
	return New(SelectorsFor(c), baseURL)
}

// Cards returns the page's review cards in document order, classified as
// inline or linked.
func (e *Extractor) Cards(doc *goquery.Document) ([]Card, error) {
	pageURL := docURL(doc)
	var (
		cards []Card
		err   error
	)

	doc.Find(e.sel.Card).EachWithBreak(func(i int, s *goquery.Selection) bool {
		card := Card{Index: i, Kind: CardInline, PageURL: pageURL, sel: s}

		if href, ok := s.Find(e.sel.ReadMore).Find(e.sel.ReadMoreLink).First().Attr("href"); ok {
			detail, rerr := filmarks.ResolveURL(e.baseURL, href)
			if rerr != nil {
				err = errors.NewParseError(pageURL, i, "bad detail link: %v", rerr)
				return false
			}
			card.Kind = CardLinked
			card.DetailURL = detail
		}

		cards = append(cards, card)
		return true
	})
	if err != nil {
		return nil, err
	}

	return cards, nil
}

// ExtractInline reads the review embedded in an inline card
func (e *Extractor) ExtractInline(c Card) (review.Review, error) {
	if c.sel == nil || c.Kind != CardInline {
		return review.Review{}, errors.NewParseError(c.PageURL, c.Index, "card is not inline")
	}

	titleNode := c.sel.Find(e.sel.ListingTitle).First()
	if titleNode.Length() == 0 {
		return review.Review{}, errors.NewParseError(c.PageURL, c.Index, "missing title field")
	}
	title, year, err := ParseTitleYear(titleNode.Text())
	if err != nil {
		return review.Review{}, errors.NewParseError(c.PageURL, c.Index, "%v", err)
	}

	reviewNode := c.sel.Find(e.sel.ListingReview).First()
	if reviewNode.Length() == 0 {
		return review.Review{}, errors.NewParseError(c.PageURL, c.Index, "missing review text")
	}
	if inner := reviewNode.ChildrenFiltered(e.sel.ReviewInner).First(); inner.Length() > 0 {
		reviewNode = inner
	}

	return review.Review{
		Title: title,
		Year:  year,
		Score: ParseScore(c.sel.Find(e.sel.ListingScore).First().Text()),
		Body:  Body(reviewNode),
	}, nil
}

// ExtractDetail reads the review from a detail page
func (e *Extractor) ExtractDetail(doc *goquery.Document) (review.Review, error) {
	pageURL := docURL(doc)

	titleNode := doc.Find(e.sel.DetailTitle).First()
	if titleNode.Length() == 0 {
		return review.Review{}, errors.NewParseError(pageURL, errors.DetailCard, "missing title field")
	}
	title, year, err := ParseTitleYear(titleNode.Text())
	if err != nil {
		return review.Review{}, errors.NewParseError(pageURL, errors.DetailCard, "%v", err)
	}

	reviewNode := doc.Find(e.sel.DetailReview).First()
	if reviewNode.Length() == 0 {
		return review.Review{}, errors.NewParseError(pageURL, errors.DetailCard, "missing review text")
	}

	return review.Review{
		Title: title,
		Year:  year,
		Score: ParseScore(doc.Find(e.sel.DetailScore).First().Text()),
		Body:  Body(reviewNode),
	}, nil
}

// ParseTitleYear splits "<title>(<year>)" into its parts. "（２０１９）"
// matches too. The title is returned as written, only trimmed, and must not
// be empty.
func ParseTitleYear(s string) (string, int, error) {
	text := strings.Join(strings.Fields(s), " ")

	m := titleYear.FindStringSubmatch(s)
	if m == nil {
		return "", 0, &patternError{text: text}
	}

	title := strings.TrimSpace(m[1])
	if title == "" {
		return "", 0, &patternError{text: text}
	}

	year, err := strconv.Atoi(width.Fold.String(m[2]))
	if err != nil {
		return "", 0, &patternError{text: text}
	}

	return title, year, nil
}

// ParseScore reads a rating. Anything that is not a finite number, such as
// "-" for an unrated title, yields 0.
func ParseScore(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(normalize(s)), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func normalize(s string) string {
	return width.Fold.String(norm.NFC.String(s))
}

func docURL(doc *goquery.Document) string {
	if doc.Url != nil {
		return doc.Url.String()
	}
	return ""
}

type patternError struct {
	text string
}

func (e *patternError) Error() string {
	return "title " + strconv.Quote(e.text) + " does not match title(year)"
}

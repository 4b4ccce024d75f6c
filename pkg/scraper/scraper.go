package scraper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/yzays8/filmr/internal/resolver"
	"github.com/yzays8/filmr/pkg/errors"
	"github.com/yzays8/filmr/pkg/extractor"
	"github.com/yzays8/filmr/pkg/filmarks"
	"github.com/yzays8/filmr/pkg/logger"
	"github.com/yzays8/filmr/pkg/review"
)

// State is the position of the pagination loop
type State int

const (
	StateIdle State = iota
	StateFetchingPage
	StateExtractingCards
	StateResolvingLinked
	StateMerging
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateFetchingPage:
		return "fetching_page"
	case StateExtractingCards:
		return "extracting_cards"
	case StateResolvingLinked:
		return "resolving_linked"
	case StateMerging:
		return "merging"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Scraper drives one user's listing pages from page 1 until a page 404s
type Scraper struct {
	fetcher   PageFetcher
	category  filmarks.Category
	extractor *extractor.Extractor
	detail    *DetailFetcher
	observer  Observer
	logger    logger.Logger

	mu    sync.RWMutex
	state State
	page  int
}

// Option configures a Scraper
type Option func(*Scraper)

func WithObserver(o Observer) Option {
	return func(s *Scraper) { s.observer = o }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Scraper) { s.logger = l }
}

// New creates a Scraper for one category. The selector set is fixed here,
// before any page is fetched.
func New(fetcher PageFetcher, category filmarks.Category, opts ...Option) *Scraper {
	ex := extractor.ForCategory(category, fetcher.BaseURL())
	s := &Scraper{
		fetcher:   fetcher,
		category:  category,
		extractor: ex,
		detail:    NewDetailFetcher(fetcher, ex),
		observer:  NopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logger.OrGlobal(s.logger)
	return s
}

// State returns the current state and page number
func (s *Scraper) State() (State, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.page
}

func (s *Scraper) setState(state State, page int) {
	s.mu.Lock()
	s.state = state
	s.page = page
	s.mu.Unlock()
}

// Scrape collects every review of userID. Pages are fetched strictly in
// sequence; the linked cards of a page are resolved concurrently and merged
// back in card order before the next page is requested. Any error aborts
// the session and no partial result is returned.
func (s *Scraper) Scrape(ctx context.Context, userID string) (*review.Session, error) {
	session := review.NewSession(userID, s.category.String())
	log := s.logger.WithFields(map[string]interface{}{
		"session_id": session.ID,
		"user_id":    userID,
		"category":   s.category.String(),
	})
	log.Info("Starting scrape session")

	fail := func(page int, err error) (*review.Session, error) {
		s.setState(StateFailed, page)
		log.WithError(err).ErrorWithFields("Scrape session failed", map[string]interface{}{
			"page": page,
		})
		return nil, err
	}

	for page := 1; ; page++ {
		s.setState(StateFetchingPage, page)
		url := filmarks.ListingURL(s.fetcher.BaseURL(), userID, s.category, page)
		s.observer.PageStarted(page, url)
		log.DebugWithFields("Fetching listing page", map[string]interface{}{
			"page": page,
			"url":  url,
		})

		start := time.Now()
		res := s.fetcher.Fetch(ctx, url)

		if res.Kind == filmarks.PageNotFound {
			if page == 1 {
				return fail(page, fmt.Errorf("%w: %s", errors.ErrUserNotFound, userID))
			}
			break
		}
		if res.Kind == filmarks.PageTransportError {
			return fail(page, res.Err)
		}

		batch, linked, err := s.scrapePage(ctx, page, res.Doc)
		if err != nil {
			return fail(page, err)
		}
		if err := session.AppendPage(batch, linked); err != nil {
			return fail(page, err)
		}

		s.observer.PageDone(page, len(batch))
		logger.LogPage(log, page, len(batch)-linked, linked, time.Since(start))
	}

	session.Freeze()
	s.setState(StateDone, session.Stats().Pages)
	s.observer.SessionDone(session.Len())

	stats := session.Stats()
	log.InfoWithFields("Scrape session finished", map[string]interface{}{
		"pages":    stats.Pages,
		"reviews":  stats.Reviews,
		"linked":   stats.Linked,
		"duration": stats.Duration,
	})

	return session, nil
}

// scrapePage turns one listing page into its ordered batch of reviews
func (s *Scraper) scrapePage(ctx context.Context, page int, doc *goquery.Document) ([]review.Review, int, error) {
	s.setState(StateExtractingCards, page)
	cards, err := s.extractor.Cards(doc)
	if err != nil {
		return nil, 0, err
	}

	slots := make([]review.Review, len(cards))
	var jobs []resolver.Job
	for _, card := range cards {
		switch card.Kind {
		case extractor.CardLinked:
			jobs = append(jobs, resolver.Job{Slot: card.Index, URL: card.DetailURL})
		default:
			r, err := s.extractor.ExtractInline(card)
			if err != nil {
				return nil, 0, err
			}
			slots[card.Index] = r
		}
	}
	s.observer.PageExtracted(page, len(cards)-len(jobs), len(jobs))

	if len(jobs) > 0 {
		s.setState(StateResolvingLinked, page)
		err = resolver.Resolve(ctx, jobs, slots, func(ctx context.Context, job resolver.Job) (review.Review, error) {
			r, err := s.detail.Resolve(ctx, job.URL)
			if err != nil {
				return review.Review{}, err
			}
			s.observer.CardResolved(page, job.Slot)
			return r, nil
		})
		if err != nil {
			return nil, 0, err
		}
	}

	s.setState(StateMerging, page)
	return slots, len(jobs), nil
}

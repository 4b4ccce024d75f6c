// Package review holds the normalized review record and the ordered
// collection a scrape session produces.
package review

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Review is one normalized user review
type Review struct {
	Title string  `json:"title" yaml:"title"`
	Year  int     `json:"year" yaml:"year"`
	Score float64 `json:"score" yaml:"score"`
	Body  string  `json:"review" yaml:"review"`
}

// ErrFrozen is returned when a batch is appended to a session that has been handed off
var ErrFrozen = errors.New("review session is frozen")

// Session is the ordered sequence of reviews accumulated across all pages of
// one scrape. It is owned by the scraper until Freeze, and read-only afterwards.
type Session struct {
	ID        string
	UserID    string
	Category  string
	StartedAt time.Time

	mu       sync.RWMutex
	reviews  []Review
	pages    int
	linked   int
	frozen   bool
	finished time.Time
}

// NewSession starts an empty session
func NewSession(userID, category string) *Session {
	return &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Category:  category,
		StartedAt: time.Now(),
	}
}

// AppendPage appends one page's batch in card order
func (s *Session) AppendPage(batch []Review, linked int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return ErrFrozen
	}
	s.reviews = append(s.reviews, batch...)
	s.pages++
	s.linked += linked
	return nil
}

// Freeze marks the session complete; later appends fail
func (s *Session) Freeze() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.frozen {
		s.frozen = true
		s.finished = time.Now()
	}
}

// Frozen reports whether the session has been handed off
func (s *Session) Frozen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frozen
}

// Reviews returns a copy of the accumulated reviews in source order
func (s *Session) Reviews() []Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Review, len(s.reviews))
	copy(out, s.reviews)
	return out
}

// Len returns the number of reviews collected so far
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reviews)
}

// Stats summarizes a session for reporting
type Stats struct {
	Pages        int
	Reviews      int
	Linked       int
	Inline       int
	AverageScore float64
	Duration     time.Duration
}

// Stats computes the session summary
func (s *Session) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := StatsOf(s.reviews)
	st.Pages = s.pages
	st.Linked = s.linked
	st.Inline = len(s.reviews) - s.linked

	end := s.finished
	if end.IsZero() {
		end = time.Now()
	}
	st.Duration = end.Sub(s.StartedAt)
	return st
}

// StatsOf summarizes a plain review list. Unscored reviews (0.0) are left
// out of the average.
func StatsOf(reviews []Review) Stats {
	st := Stats{Reviews: len(reviews)}

	var sum float64
	var scored int
	for _, r := range reviews {
		if r.Score > 0 {
			sum += r.Score
			scored++
		}
	}
	if scored > 0 {
		st.AverageScore = sum / float64(scored)
	}
	return st
}

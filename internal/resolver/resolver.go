// Package resolver fans out the linked cards of one listing page and writes
// each result into the slot of the card it came from.
package resolver

import (
	"context"
	"fmt"

	"github.com/yzays8/filmr/pkg/review"
	"golang.org/x/sync/errgroup"
)

// Job is one linked card waiting for its detail page
type Job struct {
	Slot int
	URL  string
}

// Func resolves a single job
type Func func(ctx context.Context, job Job) (review.Review, error)

// Resolve runs fn for every job concurrently and stores each result in
// slots[job.Slot]. There is no worker cap; callers bound throughput through
// the rate limiter fn uses. The first error cancels the context passed to the
// remaining calls and is returned once all of them have finished.
func Resolve(ctx context.Context, jobs []Job, slots []review.Review, fn Func) error {
	seen := make(map[int]bool, len(jobs))
	for _, job := range jobs {
		if job.Slot < 0 || job.Slot >= len(slots) {
			return fmt.Errorf("job %s: slot %d out of range [0,%d)", job.URL, job.Slot, len(slots))
		}
		if seen[job.Slot] {
			return fmt.Errorf("job %s: slot %d assigned twice", job.URL, job.Slot)
		}
		seen[job.Slot] = true
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, job := range jobs {
		g.Go(func() error {
			r, err := fn(gctx, job)
			if err != nil {
				return err
			}
			// distinct slots, so no two goroutines write the same element
			slots[job.Slot] = r
			return nil
		})
	}

	return g.Wait()
}

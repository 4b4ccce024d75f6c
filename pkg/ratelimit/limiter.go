package ratelimit

import (
	"context"
	"time"
)

// Limiter defines the interface for rate limiting
type Limiter interface {
	// Allow reports whether a request may start now, consuming the slot if so
	Allow() bool
	// Wait blocks until the caller's slot starts or ctx is done
	Wait(ctx context.Context) error
	// Reset forgets all previously issued slots
	Reset()
}

// Interval enforces a minimum spacing between the starts of requests.
// Start times are taken after the wait ends, so a caller that wakes late
// pushes every later caller back with it.
type Interval struct {
	interval time.Duration
	onStart  func(time.Time)

	// turn holds one token; its owner is the only caller allowed to start.
	// Blocked receivers on a channel are woken in arrival order.
	turn      chan struct{}
	lastStart time.Time
}

// IntervalOption configures an Interval
type IntervalOption func(*Interval)

// OnStart registers fn to be called with every granted start time, in order,
// before the next caller can be granted a slot.
func OnStart(fn func(time.Time)) IntervalOption {
	return func(l *Interval) { l.onStart = fn }
}

// NewInterval creates a limiter that lets one request start per interval.
// A non-positive interval disables throttling.
func NewInterval(interval time.Duration, opts ...IntervalOption) *Interval {
	l := &Interval{
		interval: interval,
		turn:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.turn <- struct{}{}
	return l
}

// Interval returns the configured spacing
func (l *Interval) Interval() time.Duration {
	return l.interval
}

// Allow starts a slot only if nobody holds the turn and the interval since
// the last start has passed.
func (l *Interval) Allow() bool {
	select {
	case <-l.turn:
	default:
		return false
	}
	defer l.release()

	now := time.Now()
	if l.interval > 0 && !l.lastStart.IsZero() && now.Sub(l.lastStart) < l.interval {
		return false
	}
	l.start(now)
	return true
}

// Wait queues for the turn, sleeps until lastStart+interval and records the
// new start time.
func (l *Interval) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case <-l.turn:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer l.release()

	if l.interval > 0 && !l.lastStart.IsZero() {
		next := l.lastStart.Add(l.interval)
		for {
			d := time.Until(next)
			if d <= 0 {
				break
			}
			timer := time.NewTimer(d)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}
	}

	l.start(time.Now())
	return nil
}

// Reset forgets the last start, so the next caller goes immediately
func (l *Interval) Reset() {
	<-l.turn
	l.lastStart = time.Time{}
	l.release()
}

// start records now as the latest start; the caller owns the turn
func (l *Interval) start(now time.Time) {
	l.lastStart = now
	if l.onStart != nil {
		l.onStart(now)
	}
}

func (l *Interval) release() {
	l.turn <- struct{}{}
}

// Throttle waits for a slot on l, then runs fn and returns its result unchanged
func Throttle[T any](ctx context.Context, l Limiter, fn func() (T, error)) (T, error) {
	if err := l.Wait(ctx); err != nil {
		var zero T
		return zero, err
	}
	return fn()
}

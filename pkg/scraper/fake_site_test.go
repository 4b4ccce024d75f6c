package scraper

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yzays8/filmr/pkg/filmarks"
	"github.com/yzays8/filmr/pkg/logger"
	"github.com/yzays8/filmr/pkg/ratelimit"
)

// fakeSite serves canned Filmarks pages keyed by request URI. Unknown URIs 404.
type fakeSite struct {
	srv    *httptest.Server
	mu     sync.Mutex
	pages  map[string]string
	status map[string]int
	delay  map[string]time.Duration
	hits   []string
	starts []time.Time
}

func newFakeSite(t *testing.T) *fakeSite {
	f := &fakeSite{
		pages:  map[string]string{},
		status: map[string]int{},
		delay:  map[string]time.Duration{},
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeSite) serve(w http.ResponseWriter, r *http.Request) {
	uri := r.URL.RequestURI()
	f.mu.Lock()
	f.hits = append(f.hits, uri)
	body, ok := f.pages[uri]
	status := f.status[uri]
	delay := f.delay[uri]
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if status != 0 {
		w.WriteHeader(status)
		return
	}
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

func (f *fakeSite) page(uri, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[uri] = body
}

func (f *fakeSite) fail(uri string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status[uri] = status
}

func (f *fakeSite) slow(uri string, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delay[uri] = d
}

func (f *fakeSite) requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.hits...)
}

// startTimes returns the start times the client's limiter granted, in order
func (f *fakeSite) startTimes() []time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Time(nil), f.starts...)
}

func (f *fakeSite) recordStart(at time.Time) {
	f.mu.Lock()
	f.starts = append(f.starts, at)
	f.mu.Unlock()
}

func (f *fakeSite) client(interval time.Duration) *filmarks.Client {
	return filmarks.NewClient(ratelimit.NewInterval(interval, ratelimit.OnStart(f.recordStart)),
		filmarks.WithBaseURL(f.srv.URL),
		filmarks.WithTimeout(5*time.Second),
		filmarks.WithLogger(logger.NewNopLogger()),
	)
}

// card builders

func inlineCard(title string, year int, score, body string) string {
	return fmt.Sprintf(`<div class="c-content-card">
<h3 class="c-content-card__title">%s(%d)</h3>
<div class="c-rating__score">%s</div>
<p class="c-content-card__review"><span>%s</span></p>
</div>`, title, year, score, body)
}

func linkedCard(title string, year int, href string) string {
	return fmt.Sprintf(`<div class="c-content-card">
<h3 class="c-content-card__title">%s(%d)</h3>
<div class="c-rating__score">3.0</div>
<p class="c-content-card__review"><span>truncated</span></p>
<span class="c-content-card__readmore-review"><a href="%s">続きを読む</a></span>
</div>`, title, year, href)
}

func listing(cards ...string) string {
	return `<html><body><div class="p-contents-list">` + strings.Join(cards, "\n") + `</div></body></html>`
}

func detailPage(title string, year int, score, body string) string {
	return fmt.Sprintf(`<html><body>
<div class="p-timeline-mark__title">%s(%d)</div>
<div class="c-rating__score">%s</div>
<div class="p-mark__review">%s</div>
</body></html>`, title, year, score, body)
}

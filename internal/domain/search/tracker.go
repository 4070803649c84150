// internal/domain/search/tracker.go
package search

import (
	"context"
	"errors"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/your-org/novastore/internal/domain/product"
	"github.com/your-org/novastore/internal/pkg/logger"
)

var ErrStaleToken = errors.New("search token superseded")

// Recommender returns product ids ordered by relevance to query. It must not
// fail: any problem is reported as an empty result.
type Recommender interface {
	Recommend(ctx context.Context, query string, products []product.Product) []string
}

// TrackerConfig holds the debounce and timeout settings
type TrackerConfig struct {
	QuietPeriod    time.Duration
	Timeout        time.Duration
	MinQueryLength int
}

// View is the ranked product list for the latest query
type View struct {
	Query       string            `json:"query"`
	Token       uint64            `json:"token"`
	Products    []product.Product `json:"products"`
	Recommended []string          `json:"recommended"`
	Pending     bool              `json:"pending"`
}

// Tracker keeps the AI ordering for the most recent query only. Every new
// query gets a fresh token and cancels the previous fetch; a response whose
// token is no longer current is dropped.
type Tracker struct {
	catalog     *product.Catalog
	recommender Recommender
	cfg         TrackerConfig
	log         *logrus.Entry

	mu      sync.Mutex
	token   uint64
	query   string
	aiOrder []string
	pending bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewTracker creates a tracker; a nil recommender disables AI ordering
func NewTracker(catalog *product.Catalog, recommender Recommender, cfg TrackerConfig, log *logrus.Logger) *Tracker {
	done := make(chan struct{})
	close(done)
	return &Tracker{
		catalog:     catalog,
		recommender: recommender,
		cfg:         cfg,
		log:         logger.Component(log, "search"),
		done:        done,
	}
}

// SetQuery makes query the latest one and returns its token. Repeating the
// current query returns the current token without refetching.
func (t *Tracker) SetQuery(query string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if query == t.query {
		return t.token
	}

	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}

	t.token++
	t.query = query
	t.aiOrder = nil
	t.pending = false
	t.done = make(chan struct{})

	candidates := Filter(t.catalog.All(), query)
	if t.recommender == nil || utf8.RuneCountInString(query) < t.cfg.MinQueryLength || len(candidates) == 0 {
		close(t.done)
		return t.token
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.pending = true
	go t.fetch(ctx, t.token, query, candidates, t.done)

	return t.token
}

func (t *Tracker) fetch(ctx context.Context, token uint64, query string, candidates []product.Product, done chan struct{}) {
	defer close(done)

	if t.cfg.QuietPeriod > 0 {
		timer := time.NewTimer(t.cfg.QuietPeriod)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}

	rctx := ctx
	if t.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		rctx, cancel = context.WithTimeout(ctx, t.cfg.Timeout)
		defer cancel()
	}

	ids := t.recommender.Recommend(rctx, query, candidates)

	t.mu.Lock()
	defer t.mu.Unlock()

	if token != t.token {
		t.log.WithFields(logrus.Fields{"query": query, "token": token}).Debug("Discarding stale recommendations")
		return
	}

	t.aiOrder = ids
	t.pending = false
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

// Wait blocks until the fetch for token has settled or ctx is done
func (t *Tracker) Wait(ctx context.Context, token uint64) error {
	t.mu.Lock()
	if token != t.token {
		t.mu.Unlock()
		return ErrStaleToken
	}
	done := t.done
	t.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// View merges the catalog with the AI ordering of the latest query
func (t *Tracker) View() View {
	t.mu.Lock()
	defer t.mu.Unlock()

	recommended := append([]string{}, t.aiOrder...)
	return View{
		Query:       t.query,
		Token:       t.token,
		Products:    Merge(t.catalog.All(), t.query, recommended),
		Recommended: recommended,
		Pending:     t.pending,
	}
}

// Close cancels any in-flight fetch
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

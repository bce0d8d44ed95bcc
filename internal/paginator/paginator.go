// Package paginator accumulates a post listing page by page.
package paginator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bilgisen/spacetraveling/internal/logger"
	"github.com/bilgisen/spacetraveling/internal/models"
)

var (
	// ErrLoadInProgress is returned by LoadMore while another LoadMore is running.
	ErrLoadInProgress = errors.New("paginator: load already in progress")
	// ErrReinitialized is returned by LoadMore when Initialize ran while its
	// page was being fetched. The fetched page is discarded.
	ErrReinitialized = errors.New("paginator: reinitialized during load")
)

// PageFetcher fetches the page a cursor points at.
type PageFetcher interface {
	FetchPage(ctx context.Context, cursor string) (*models.PostPage, error)
}

// Paginator holds the posts loaded so far and the cursor of the next page.
// It is safe for concurrent use; at most one LoadMore runs at a time.
type Paginator struct {
	fetcher PageFetcher
	format  SummaryFormatter

	mu          sync.Mutex
	state       State
	loading     bool
	generation  uint64
	nextID      int
	subscribers map[int]func(State)
}

// New creates an empty paginator. Call Initialize with the first page.
func New(fetcher PageFetcher, format SummaryFormatter) *Paginator {
	return &Paginator{
		fetcher:     fetcher,
		format:      format,
		subscribers: make(map[int]func(State)),
	}
}

// Initialize replaces the state with the seed page.
func (p *Paginator) Initialize(seed models.PostPage) {
	p.mu.Lock()
	p.state = Seed(seed, p.format)
	p.generation++
	snapshot, subs := p.state.clone(), p.subscriberList()
	p.mu.Unlock()

	notify(subs, snapshot)
}

// LoadMore fetches the next page and appends it. It does nothing when no
// more pages exist. On failure the state is left untouched so the call can
// be retried.
func (p *Paginator) LoadMore(ctx context.Context) error {
	p.mu.Lock()
	if !p.state.HasMore {
		p.mu.Unlock()
		return nil
	}
	if p.loading {
		p.mu.Unlock()
		return ErrLoadInProgress
	}
	p.loading = true
	cursor, generation := p.state.Cursor, p.generation
	p.mu.Unlock()

	page, err := p.fetcher.FetchPage(ctx, cursor)

	log := logger.Component("paginator")
	p.mu.Lock()
	p.loading = false
	if err == nil && page == nil {
		err = fmt.Errorf("fetcher returned no page for %s", cursor)
	}
	if err != nil {
		p.mu.Unlock()
		log.Error().Err(err).Str("cursor", cursor).Msg("Failed to load next page")
		return fmt.Errorf("load more: %w", err)
	}
	if generation != p.generation {
		p.mu.Unlock()
		log.Warn().Str("cursor", cursor).Msg("Discarding page fetched before reinitialization")
		return ErrReinitialized
	}
	p.state = p.state.Append(*page, p.format)
	snapshot, subs := p.state.clone(), p.subscriberList()
	p.mu.Unlock()

	notify(subs, snapshot)
	return nil
}

// Posts returns a copy of the posts loaded so far.
func (p *Paginator) Posts() []models.PostSummary {
	return p.Snapshot().Posts
}

// HasMore reports whether another page can be loaded.
func (p *Paginator) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.HasMore
}

// Cursor returns the cursor of the next page, or "".
func (p *Paginator) Cursor() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Cursor
}

// Snapshot returns a copy of the current state.
func (p *Paginator) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.clone()
}

// Subscribe registers fn to be called with the new state after every
// transition. The returned function removes the subscription.
func (p *Paginator) Subscribe(fn func(State)) (unsubscribe func()) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subscribers[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subscribers, id)
		p.mu.Unlock()
	}
}

// subscriberList must be called with p.mu held.
func (p *Paginator) subscriberList() []func(State) {
	subs := make([]func(State), 0, len(p.subscribers))
	for i := 0; i < p.nextID; i++ {
		if fn, ok := p.subscribers[i]; ok {
			subs = append(subs, fn)
		}
	}
	return subs
}

func notify(subs []func(State), s State) {
	for _, fn := range subs {
		fn(s)
	}
}

package location

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/dmitrymomot/widgetkit/pkg/backend"
	"github.com/dmitrymomot/widgetkit/pkg/cache"
	"github.com/dmitrymomot/widgetkit/pkg/debounce"
	"github.com/dmitrymomot/widgetkit/pkg/logger"
)

// Searcher runs a remote location search. *backend.API implements it.
type Searcher interface {
	SearchLocations(ctx context.Context, keyword string) ([]backend.Location, error)
}

// State is a snapshot of one location field.
type State struct {
	// Text is the current content of the input.
	Text string
	// Keyword is the keyword of the applied result set.
	Keyword string
	// Candidates keep the order returned by the search service.
	Candidates []backend.Location
	// Visible reports whether the candidate list is shown.
	Visible bool
	// Empty is set when the applied result set has no candidates.
	Empty bool
	// Valid is false after the field lost focus without usable input.
	Valid bool
	// Selected is the chosen candidate, nil until Select succeeds.
	Selected *backend.Location
}

func (s State) clone() State {
	if s.Candidates != nil {
		s.Candidates = append([]backend.Location(nil), s.Candidates...)
	}
	if s.Selected != nil {
		sel := *s.Selected
		s.Selected = &sel
	}
	return s
}

// Lookup drives a debounced location search for a single input field.
//
// Each dispatched search takes the next sequence number. A response is applied
// only when its number is greater than the last applied one, so a slow answer
// to an older keyword never replaces a newer result set.
type Lookup struct {
	mu        sync.Mutex
	searcher  Searcher
	debouncer *debounce.Debouncer[string]
	cache     *cache.LRUCache[string, []backend.Location]
	logger    *slog.Logger

	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc

	debounceOpts []debounce.Option

	state   State
	sent    uint64
	applied uint64

	subs    map[int]chan State
	nextSub int
	closed  bool
}

// New returns an idle Lookup backed by searcher.
func New(searcher Searcher, opts ...Option) *Lookup {
	l := &Lookup{
		searcher: searcher,
		logger:   logger.Discard(),
		parent:   context.Background(),
		state:    State{Valid: true},
		subs:     make(map[int]chan State),
	}
	for _, opt := range opts {
		opt(l)
	}

	l.ctx, l.cancel = context.WithCancel(l.parent)
	l.debouncer = debounce.New(l.fire, append(l.debounceOpts,
		debounce.WithPanicHandler(func(r any) {
			l.logger.Error("location search panicked", logger.Component("location"), slog.Any("panic", r))
		}),
	)...)
	return l
}

// Type records new input text. An edit drops any selection; empty text hides
// the list and cancels the pending search, anything else schedules one.
func (l *Lookup) Type(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}

	l.state.Text = text
	l.state.Selected = nil
	l.state.Valid = true

	keyword := strings.TrimSpace(text)
	if keyword == "" {
		l.debouncer.Stop()
		l.applied = l.sent
		l.state.Keyword = ""
		l.state.Candidates = nil
		l.state.Visible = false
		l.state.Empty = false
		l.publishLocked()
		return
	}

	l.publishLocked()
	l.debouncer.Call(keyword)
}

// Select picks the candidate with the given id from the visible result set.
// The input text becomes the candidate's words and lookups pause until the
// next Type.
func (l *Lookup) Select(id backend.ID) (backend.Location, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return backend.Location{}, ErrClosed
	}

	for _, c := range l.state.Candidates {
		if c.ID != id {
			continue
		}
		l.debouncer.Stop()
		l.applied = l.sent
		sel := c
		l.state.Selected = &sel
		l.state.Text = c.Words
		l.state.Visible = false
		l.state.Valid = true
		l.publishLocked()
		return c, nil
	}
	return backend.Location{}, ErrUnknownCandidate
}

// Blur handles the field losing focus. Empty text or an empty result set
// marks the field invalid and hides the list.
func (l *Lookup) Blur(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	if strings.TrimSpace(text) != "" && len(l.state.Candidates) > 0 {
		return
	}
	l.state.Valid = false
	l.state.Visible = false
	l.publishLocked()
}

// Reset returns the field to its initial state. In-flight responses are discarded.
func (l *Lookup) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	l.debouncer.Stop()
	l.applied = l.sent
	l.state = State{Valid: true}
	l.publishLocked()
}

// State returns a copy of the current state.
func (l *Lookup) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.clone()
}

// Selected returns the chosen candidate.
func (l *Lookup) Selected() (backend.Location, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state.Selected == nil {
		return backend.Location{}, false
	}
	return *l.state.Selected, true
}

// Subscribe returns a channel that always holds the most recent snapshot. A
// slow reader skips intermediate states. The channel starts with the current
// state and is closed by Close or by the returned cancel function.
func (l *Lookup) Subscribe() (<-chan State, func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch := make(chan State, 1)
	if l.closed {
		close(ch)
		return ch, func() {}
	}

	id := l.nextSub
	l.nextSub++
	l.subs[id] = ch
	ch <- l.state.clone()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			if c, ok := l.subs[id]; ok {
				delete(l.subs, id)
				close(c)
			}
		})
	}
}

// Close stops the debouncer, cancels in-flight searches and closes every
// subscriber channel. It is safe to call more than once.
func (l *Lookup) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	l.closed = true
	l.debouncer.Close()
	l.cancel()
	for id, ch := range l.subs {
		delete(l.subs, id)
		close(ch)
	}
}

// fire runs on the debouncer's timer goroutine.
func (l *Lookup) fire(keyword string) {
	l.mu.Lock()
	if l.closed || l.state.Selected != nil || strings.TrimSpace(l.state.Text) != keyword {
		l.mu.Unlock()
		return
	}
	l.sent++
	seq := l.sent
	ctx := l.ctx
	l.mu.Unlock()

	log := l.logger.With(logger.Component("location"), logger.Keyword(keyword), logger.Sequence(seq))

	key := cacheKey(keyword)
	if l.cache != nil {
		if locs, ok := l.cache.Get(key); ok {
			l.apply(seq, keyword, locs, log)
			return
		}
	}

	locs, err := l.searcher.SearchLocations(ctx, keyword)
	if err != nil {
		log.WarnContext(ctx, "location search failed, showing no results", logger.Error(err))
		locs = nil
	} else if l.cache != nil {
		l.cache.Put(key, locs)
	}
	l.apply(seq, keyword, locs, log)
}

func (l *Lookup) apply(seq uint64, keyword string, locs []backend.Location, log *slog.Logger) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	if seq <= l.applied {
		log.Debug("discarding stale location results", slog.Uint64("applied", l.applied))
		return
	}
	l.applied = seq
	l.state.Keyword = keyword
	l.state.Candidates = append([]backend.Location(nil), locs...)
	l.state.Empty = len(locs) == 0
	l.state.Visible = true
	l.publishLocked()
}

func (l *Lookup) publishLocked() {
	for _, ch := range l.subs {
		select {
		case <-ch:
		default:
		}
		ch <- l.state.clone()
	}
}

func cacheKey(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

package search

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/stash/internal/domain"
	"github.com/kailas-cloud/stash/internal/domain/item"
	"github.com/kailas-cloud/stash/internal/domain/search/filter"
	"github.com/kailas-cloud/stash/internal/domain/search/request"
	"github.com/kailas-cloud/stash/internal/domain/search/result"
	"github.com/kailas-cloud/stash/internal/domain/search/state"
)

// cancelCheckEvery is how many candidates are scored between context checks.
const cancelCheckEvery = 256

// Service owns the working item set and resolves queries against it.
// At most one search is in flight: a new call supersedes the pending one,
// and a superseded call never publishes its results.
type Service struct {
	scorer     Scorer
	suggester  Suggester
	clock      Clock
	logger     *zap.Logger
	recorder   Recorder
	observers  []Observer
	defLimit   int
	maxLimit   int
	deferDelay time.Duration

	content atomic.Pointer[[]item.Item]

	// transMu is held from a state change until its observers return, so
	// observers see transitions in the order they happened. Lock order:
	// transMu, then mu.
	transMu sync.Mutex

	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	current result.Page
	active  *request.Request
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the time source used for recency scoring.
func WithClock(c Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithObserver registers a state transition listener. Observers run
// synchronously, one transition at a time, and must not call Search or Clear.
func WithObserver(o Observer) Option {
	return func(s *Service) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

// WithRecorder sets the telemetry sink.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithPagination overrides the default and maximum page sizes.
func WithPagination(defaultLimit, maxLimit int) Option {
	return func(s *Service) {
		if defaultLimit > 0 {
			s.defLimit = defaultLimit
		}
		if maxLimit > 0 {
			s.maxLimit = maxLimit
		}
	}
}

// WithDefer delays resolution of each search by d. A newer call arriving
// during the delay supersedes the waiting one.
func WithDefer(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.deferDelay = d
		}
	}
}

// WithScoring replaces the scoring configuration.
func WithScoring(cfg ScoringConfig) Option {
	return func(s *Service) {
		s.scorer = NewScorer(cfg)
	}
}

// WithSuggester replaces the suggestion generator.
func WithSuggester(sg Suggester) Option {
	return func(s *Service) {
		s.suggester = sg
	}
}

// New creates a search service in the Idle state with an empty collection.
func New(opts ...Option) *Service {
	s := &Service{
		scorer:    NewScorer(DefaultScoringConfig()),
		suggester: NewSuggester(0, 0, nil),
		clock:     SystemClock,
		logger:    zap.NewNop(),
		recorder:  nopRecorder{},
		defLimit:  request.DefaultLimit,
		maxLimit:  request.MaxLimit,
		current:   result.IdlePage(),
	}
	for _, o := range opts {
		o(s)
	}
	empty := []item.Item{}
	s.content.Store(&empty)
	return s
}

// SetContent replaces the working item set wholesale.
// Items repeating an earlier id are dropped, the first occurrence wins.
func (s *Service) SetContent(items []item.Item) {
	seen := make(map[string]struct{}, len(items))
	snapshot := make([]item.Item, 0, len(items))
	dropped := 0
	for i := range items {
		id := items[i].ID()
		if _, dup := seen[id]; dup {
			dropped++
			continue
		}
		seen[id] = struct{}{}
		snapshot = append(snapshot, items[i])
	}
	if dropped > 0 {
		s.logger.Warn("duplicate item ids dropped from content", zap.Int("dropped", dropped))
	}

	s.content.Store(&snapshot)
	s.recorder.SetContentSize(len(snapshot))
	s.logger.Info("content replaced", zap.Int("items", len(snapshot)))
}

// Content returns the current item snapshot. Callers must not modify it.
func (s *Service) Content() []item.Item {
	return *s.content.Load()
}

// State returns the current orchestrator state.
func (s *Service) State() state.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.State()
}

// Current returns the most recently published page.
func (s *Service) Current() result.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Active returns the request behind the current state, if any.
func (s *Service) Active() (request.Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return request.Request{}, false
	}
	return *s.active, true
}

// Clear resets to Idle unconditionally and cancels any pending search.
func (s *Service) Clear() {
	s.transMu.Lock()
	defer s.transMu.Unlock()

	s.mu.Lock()
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	from := s.current.State()
	s.current = result.IdlePage()
	s.active = nil
	s.mu.Unlock()

	s.notify(from, state.Idle)
}

// ApplyFilters narrows items without scoring. It does not touch service state.
func (s *Service) ApplyFilters(items []item.Item, f filter.Filters) []item.Item {
	return f.Apply(items)
}

// Suggestions proposes alternative queries. It does not touch service state.
func (s *Service) Suggestions(query string, items []item.Item, noResults bool) []string {
	return s.suggester.Suggest(query, items, noResults)
}

// Search resolves req against the current snapshot and publishes the outcome.
// A request without text and filters resets to Idle. Returns domain.ErrSuperseded
// when a newer call (or Clear) replaced this one before it resolved.
func (s *Service) Search(ctx context.Context, req *request.Request) (result.Page, error) {
	start := time.Now()
	if req.IsIdle() {
		s.Clear()
		s.recorder.ObserveSearch(OutcomeIdle, time.Since(start), 0)
		return result.IdlePage(), nil
	}

	runCtx, gen := s.begin(ctx, req)

	// Snapshot and clock are captured once so the whole call sees one view.
	items := s.Content()
	now := s.clock.Now()

	if err := s.wait(runCtx); err != nil {
		return result.Page{}, s.abandon(ctx, gen, start, 0, err)
	}

	page, candidates, err := s.resolve(runCtx, req, items, now)
	if err != nil {
		return result.Page{}, s.abandon(ctx, gen, start, candidates, err)
	}

	if !s.publish(gen, page) {
		s.recorder.ObserveSearch(OutcomeSuperseded, time.Since(start), candidates)
		return result.Page{}, domain.ErrSuperseded
	}

	outcome := OutcomeResults
	if page.State() == state.Empty {
		outcome = OutcomeEmpty
	}
	s.recorder.ObserveSearch(outcome, time.Since(start), candidates)
	s.logger.Debug("search resolved",
		zap.String("state", string(page.State())),
		zap.Int("total", page.Total()),
		zap.Int("candidates", candidates),
		zap.Duration("took", time.Since(start)),
	)
	return page, nil
}

// begin supersedes any pending search and enters Searching.
func (s *Service) begin(ctx context.Context, req *request.Request) (context.Context, uint64) {
	runCtx, cancel := context.WithCancel(ctx)

	s.transMu.Lock()
	defer s.transMu.Unlock()

	s.mu.Lock()
	s.gen++
	gen := s.gen
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	from := s.current.State()
	s.current = result.IdlePage().WithState(state.Searching)
	active := *req
	s.active = &active
	s.mu.Unlock()

	s.notify(from, state.Searching)
	return runCtx, gen
}

// publish makes page current unless gen was superseded.
func (s *Service) publish(gen uint64, page result.Page) bool {
	s.transMu.Lock()
	defer s.transMu.Unlock()

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return false
	}
	from := s.current.State()
	s.current = page
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.notify(from, page.State())
	return true
}

func (s *Service) wait(ctx context.Context) error {
	if s.deferDelay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.deferDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// abandon settles a search that stopped before publishing. A superseded
// call leaves state alone; a call canceled by its own caller returns to Idle.
func (s *Service) abandon(ctx context.Context, gen uint64, start time.Time, candidates int, cause error) error {
	s.transMu.Lock()
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		s.transMu.Unlock()
		s.recorder.ObserveSearch(OutcomeSuperseded, time.Since(start), candidates)
		return domain.ErrSuperseded
	}
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	from := s.current.State()
	s.current = result.IdlePage()
	s.active = nil
	s.mu.Unlock()

	s.notify(from, state.Idle)
	s.transMu.Unlock()

	s.recorder.ObserveSearch(OutcomeCanceled, time.Since(start), candidates)
	s.logger.Debug("search canceled", zap.Error(cause))

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("search canceled: %w", err)
	}
	return fmt.Errorf("search canceled: %w", cause)
}

// resolve runs filters, scoring and pagination over a captured snapshot.
func (s *Service) resolve(
	ctx context.Context, req *request.Request, items []item.Item, now time.Time,
) (result.Page, int, error) {
	candidates := req.Filters().Apply(items)

	var ranked []result.Result
	if req.HasText() {
		var err error
		ranked, err = s.rank(ctx, req, candidates, now)
		if err != nil {
			return result.Page{}, len(candidates), err
		}
	} else {
		ranked = make([]result.Result, 0, len(candidates))
		for i := range candidates {
			ranked = append(ranked, result.Unscored(candidates[i]))
		}
	}

	page := result.Paginate(ranked, req.Page().Resolve(s.defLimit, s.maxLimit))
	if page.Total() == 0 {
		sugg := s.suggester.Suggest(req.Text(), items, true)
		return page.WithState(state.Empty).WithSuggestions(sugg), len(candidates), nil
	}
	return page.WithState(state.Results), len(candidates), nil
}

func (s *Service) rank(
	ctx context.Context, req *request.Request, candidates []item.Item, now time.Time,
) ([]result.Result, error) {
	ranked := make([]result.Result, 0, len(candidates))
	for i := range candidates {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		it := &candidates[i]
		score, ok := s.scorer.Rank(it, req.Text(), req.CaseSensitive(), now)
		if !ok {
			continue
		}
		ranked = append(ranked, result.New(*it, score, Highlight(it.Title(), req.Text(), req.CaseSensitive())))
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score() > ranked[b].Score()
	})
	return ranked, nil
}

// notify skips self-transitions.
func (s *Service) notify(from, to state.State) {
	if from == to {
		return
	}
	for _, o := range s.observers {
		o(from, to)
	}
}

package library

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/stash/internal/domain"
	"github.com/kailas-cloud/stash/internal/domain/item"
)

// Draft is an item as submitted by a client. Empty ID, tag IDs and
// CreatedAt are filled in by Save.
type Draft struct {
	ID          string
	Title       string
	Description string
	URL         string
	Tags        []item.Tag
	CreatedAt   time.Time
	ContentType item.ContentType
}

// Service manages the saved item collection and keeps the search engine's
// working set in sync with the store. Every mutation ends with a full reload.
type Service struct {
	repo   Repository
	sink   ContentSink
	logger *zap.Logger
	newID  func() string
	now    func() time.Time

	reloadMu sync.Mutex
	loaded   atomic.Bool
	size     atomic.Int64
}

// New creates a library service.
func New(repo Repository, sink ContentSink, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		sink:   sink,
		logger: logger,
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// WithIDGenerator overrides the ID source for new items and tags.
func (s *Service) WithIDGenerator(fn func() string) *Service {
	if fn != nil {
		s.newID = fn
	}
	return s
}

// WithClock overrides the time source for CreatedAt defaults.
func (s *Service) WithClock(fn func() time.Time) *Service {
	if fn != nil {
		s.now = fn
	}
	return s
}

// Save validates and stores an item, then reloads the working set.
// Returns true if the item was created, false if replaced.
func (s *Service) Save(ctx context.Context, d Draft) (item.Item, bool, error) {
	it, err := s.build(d)
	if err != nil {
		return item.Item{}, false, err
	}

	created, err := s.repo.Put(ctx, &it)
	if err != nil {
		return item.Item{}, false, fmt.Errorf("put item: %w", err)
	}
	if _, err := s.Reload(ctx); err != nil {
		return item.Item{}, false, err
	}
	return it, created, nil
}

// Import stores a batch of already validated items, then reloads once.
func (s *Service) Import(ctx context.Context, items []item.Item) (int, error) {
	if err := s.repo.PutMany(ctx, items); err != nil {
		return 0, fmt.Errorf("import items: %w", err)
	}
	if _, err := s.Reload(ctx); err != nil {
		return 0, err
	}
	return len(items), nil
}

// Get returns a stored item by ID.
func (s *Service) Get(ctx context.Context, id string) (item.Item, error) {
	it, err := s.repo.Get(ctx, id)
	if err != nil {
		return item.Item{}, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// Delete removes an item, then reloads the working set.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	_, err := s.Reload(ctx)
	return err
}

// List returns one page of stored items, newest first, and the total count.
func (s *Service) List(ctx context.Context, limit, offset int) ([]item.Item, int, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	total := len(all)
	if offset >= total {
		return []item.Item{}, total, nil
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return all[offset:end], total, nil
}

// Reload replaces the search engine's working set with the store contents.
func (s *Service) Reload(ctx context.Context) (int, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	items, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("reload items: %w", err)
	}
	s.sink.SetContent(items)
	s.loaded.Store(true)
	s.size.Store(int64(len(items)))

	s.logger.Info("Library reloaded", zap.Int("items", len(items)))
	return len(items), nil
}

// Loaded reports whether at least one reload has succeeded.
func (s *Service) Loaded() bool {
	return s.loaded.Load()
}

// Size returns the item count of the last successful reload.
func (s *Service) Size() int {
	return int(s.size.Load())
}

func (s *Service) build(d Draft) (item.Item, error) {
	id := strings.TrimSpace(d.ID)
	if id == "" {
		id = s.newID()
	}
	createdAt := d.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now().UTC()
	}
	tags := make([]item.Tag, 0, len(d.Tags))
	for _, t := range d.Tags {
		if t.ID == "" {
			t.ID = s.newID()
		}
		tags = append(tags, t)
	}

	it, err := item.New(id, d.Title, d.Description, d.URL, tags, createdAt, d.ContentType)
	if err != nil {
		return item.Item{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	return it, nil
}

package item

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/stash/internal/db"
	"github.com/kailas-cloud/stash/internal/domain"
	domitem "github.com/kailas-cloud/stash/internal/domain/item"
)

// store is the consumer interface for saved items (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) (bool, error)
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo persists saved items as hashes under <prefix>item:<id>.
type Repo struct {
	store  store
	prefix string
	ops    *prometheus.CounterVec
	logger *zap.Logger
}

// New creates an item repository. ops may be nil.
func New(s store, keyPrefix string, ops *prometheus.CounterVec, logger *zap.Logger) *Repo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repo{store: s, prefix: keyPrefix, ops: ops, logger: logger}
}

// Put creates or replaces an item. Returns true if created.
func (r *Repo) Put(ctx context.Context, it *domitem.Item) (bool, error) {
	key := r.key(it.ID())
	fields, err := buildHashFields(it)
	if err != nil {
		return false, err
	}

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		r.record("put", err)
		return false, storeErr("check exists "+key, err)
	}

	err = r.store.HSet(ctx, key, fields)
	r.record("put", err)
	if err != nil {
		return false, storeErr("hset "+key, err)
	}
	return !exists, nil
}

// PutMany writes items in one pipeline. Existing items are replaced.
func (r *Repo) PutMany(ctx context.Context, items []domitem.Item) error {
	if len(items) == 0 {
		return nil
	}
	batch := make([]db.HashSetItem, len(items))
	for i := range items {
		fields, err := buildHashFields(&items[i])
		if err != nil {
			return fmt.Errorf("item %s: %w", items[i].ID(), err)
		}
		batch[i] = db.HashSetItem{Key: r.key(items[i].ID()), Fields: fields}
	}

	err := r.store.HSetMulti(ctx, batch)
	r.record("put_many", err)
	if err != nil {
		return storeErr(fmt.Sprintf("hset batch of %d", len(items)), err)
	}
	return nil
}

// Get returns an item by ID.
func (r *Repo) Get(ctx context.Context, id string) (domitem.Item, error) {
	key := r.key(id)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			r.record("get", nil)
			return domitem.Item{}, domain.ErrItemNotFound
		}
		r.record("get", err)
		return domitem.Item{}, storeErr("hgetall "+key, err)
	}
	r.record("get", nil)
	return parseHashFields(m)
}

// Delete removes an item.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.key(id)
	deleted, err := r.store.Del(ctx, key)
	r.record("delete", err)
	if err != nil {
		return storeErr("del "+key, err)
	}
	if !deleted {
		return domain.ErrItemNotFound
	}
	return nil
}

// List returns every stored item, newest first, ties by id.
// Hashes that fail to parse are skipped and logged.
func (r *Repo) List(ctx context.Context) ([]domitem.Item, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"item:*")
	if err != nil {
		r.record("list", err)
		return nil, storeErr("scan items", err)
	}
	if len(keys) == 0 {
		r.record("list", nil)
		return []domitem.Item{}, nil
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	r.record("list", err)
	if err != nil {
		return nil, storeErr(fmt.Sprintf("load %d items", len(keys)), err)
	}

	items := make([]domitem.Item, 0, len(hashes))
	for i, m := range hashes {
		if m == nil {
			continue
		}
		it, err := parseHashFields(m)
		if err != nil {
			r.logger.Warn("skipping unreadable item", zap.String("key", keys[i]), zap.Error(err))
			continue
		}
		items = append(items, it)
	}

	sort.SliceStable(items, func(a, b int) bool {
		ta, tb := items[a].CreatedAt(), items[b].CreatedAt()
		if !ta.Equal(tb) {
			return ta.After(tb)
		}
		return strings.Compare(items[a].ID(), items[b].ID()) < 0
	})
	return items, nil
}

// storeErr tags store failures with domain.ErrStoreUnavailable.
// A canceled caller is not a store failure.
func storeErr(op string, err error) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}

func (r *Repo) key(id string) string {
	return r.prefix + "item:" + id
}

func (r *Repo) record(op string, err error) {
	if r.ops == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.ops.WithLabelValues(op, status).Inc()
}

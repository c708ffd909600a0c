package library

import (
	"context"

	"github.com/kailas-cloud/stash/internal/domain/item"
)

// Repository defines the storage contract for saved items.
type Repository interface {
	Put(ctx context.Context, it *item.Item) (created bool, err error)
	PutMany(ctx context.Context, items []item.Item) error
	Get(ctx context.Context, id string) (item.Item, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]item.Item, error)
}

// ContentSink receives the full item collection after every change.
type ContentSink interface {
	SetContent(items []item.Item)
}

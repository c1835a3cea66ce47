package faq

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ipadhilfe/internal/db"
	"github.com/kailas-cloud/ipadhilfe/internal/domain"
	domfaq "github.com/kailas-cloud/ipadhilfe/internal/domain/faq"
	"github.com/kailas-cloud/ipadhilfe/internal/logger"
)

// store is the consumer interface for FAQ items (ISP).
type store interface {
	FindItem(ctx context.Context, id string) (db.ItemRecord, error)
	FindItems(ctx context.Context, f db.ItemFilter) ([]db.ItemRecord, error)
	CountItems(ctx context.Context, f db.ItemFilter) (int, error)
	InsertItems(ctx context.Context, items []db.ItemRecord) error
}

// Repo implements the FAQ item repositories of the usecase layer.
type Repo struct {
	store store
}

// New creates an FAQ item repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Get returns the item with the given id.
func (r *Repo) Get(ctx context.Context, id string) (domfaq.Item, error) {
	rec, err := r.store.FindItem(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domfaq.Item{}, domain.ErrItemNotFound
		}
		return domfaq.Item{}, storeErr("find item "+id, err)
	}
	return itemFromRecord(&rec)
}

// List returns items in store order, restricted to category when it is non-empty.
// Records that fail validation are logged and skipped.
func (r *Repo) List(ctx context.Context, category string) ([]domfaq.Item, error) {
	recs, err := r.store.FindItems(ctx, db.ItemFilter{Category: category})
	if err != nil {
		return nil, storeErr("find items", err)
	}

	items := make([]domfaq.Item, 0, len(recs))
	for i := range recs {
		it, err := itemFromRecord(&recs[i])
		if err != nil {
			logger.FromContext(ctx).Warn("skipping malformed faq item",
				zap.String("id", recs[i].ID),
				zap.Error(err),
			)
			continue
		}
		items = append(items, it)
	}
	return items, nil
}

// Count returns the number of items, restricted to category when it is non-empty.
func (r *Repo) Count(ctx context.Context, category string) (int, error) {
	n, err := r.store.CountItems(ctx, db.ItemFilter{Category: category})
	if err != nil {
		return 0, storeErr("count items", err)
	}
	return n, nil
}

// Insert stores a batch of items.
func (r *Repo) Insert(ctx context.Context, items []domfaq.Item) error {
	recs := make([]db.ItemRecord, len(items))
	for i := range items {
		recs[i] = itemToRecord(&items[i])
	}
	if err := r.store.InsertItems(ctx, recs); err != nil {
		if errors.Is(err, db.ErrBatchClaimed) {
			return fmt.Errorf("insert items: %w: %w", domain.ErrAlreadySeeded, err)
		}
		return storeErr("insert items", err)
	}
	return nil
}

// storeErr tags driver failures with domain.ErrStoreUnavailable.
func storeErr(op string, err error) error {
	var dbErr *db.Error
	if errors.As(err, &dbErr) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

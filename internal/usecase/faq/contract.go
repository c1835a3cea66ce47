package faq

import (
	"context"

	domfaq "github.com/kailas-cloud/ipadhilfe/internal/domain/faq"
)

// Repository defines the storage contract for FAQ items.
type Repository interface {
	Get(ctx context.Context, id string) (domfaq.Item, error)
	List(ctx context.Context, category string) ([]domfaq.Item, error)
	Count(ctx context.Context, category string) (int, error)
}

// CategorySource provides the configured category descriptors in display order.
type CategorySource interface {
	Categories() []domfaq.Category
}

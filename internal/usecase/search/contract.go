package search

import (
	"context"

	domfaq "github.com/kailas-cloud/ipadhilfe/internal/domain/faq"
)

// Repository scans the catalog. An empty category means every item.
type Repository interface {
	List(ctx context.Context, category string) ([]domfaq.Item, error)
}

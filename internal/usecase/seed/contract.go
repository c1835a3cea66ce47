package seed

import (
	"context"

	"github.com/kailas-cloud/ipadhilfe/internal/catalog"
	domfaq "github.com/kailas-cloud/ipadhilfe/internal/domain/faq"
)

// Repository counts and inserts FAQ items.
type Repository interface {
	Count(ctx context.Context, category string) (int, error)
	Insert(ctx context.Context, items []domfaq.Item) error
}

// Catalog provides the built-in content.
type Catalog interface {
	Entries() []catalog.Entry
	HasCategory(name string) bool
}

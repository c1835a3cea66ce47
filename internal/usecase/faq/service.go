package faq

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	domfaq "github.com/kailas-cloud/ipadhilfe/internal/domain/faq"
)

// DefaultListLimit applies when a listing request carries no positive limit.
const DefaultListLimit = 100

// maxCountWorkers bounds concurrent count queries for the category listing.
const maxCountWorkers = 4

// ListQuery holds the optional listing filters.
type ListQuery struct {
	Category string // exact, case-sensitive
	Search   string // case-insensitive substring of question or answer
	Limit    int
}

// Service serves FAQ items and category counts.
type Service struct {
	repo         Repository
	cats         CategorySource
	defaultLimit int
}

// New creates an FAQ service. A non-positive defaultLimit means DefaultListLimit.
func New(repo Repository, cats CategorySource, defaultLimit int) *Service {
	if defaultLimit <= 0 {
		defaultLimit = DefaultListLimit
	}
	return &Service{repo: repo, cats: cats, defaultLimit: defaultLimit}
}

// Get returns a single item by id.
func (s *Service) Get(ctx context.Context, id string) (domfaq.Item, error) {
	it, err := s.repo.Get(ctx, id)
	if err != nil {
		return domfaq.Item{}, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// List returns items in store order, filtered by category and search text, then truncated.
func (s *Service) List(ctx context.Context, q ListQuery) ([]domfaq.Item, error) {
	items, err := s.repo.List(ctx, q.Category)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	if q.Search != "" {
		filtered := items[:0]
		for i := range items {
			if items[i].Contains(q.Search) {
				filtered = append(filtered, items[i])
			}
		}
		items = filtered
	}

	limit := q.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// Categories returns every configured category with its item count, in configuration order.
// Items whose category is not configured are counted nowhere.
func (s *Service) Categories(ctx context.Context) ([]domfaq.CategoryCount, error) {
	cats := s.cats.Categories()
	counts := make([]int, len(cats))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxCountWorkers)
	for i := range cats {
		name := cats[i].Name()
		g.Go(func() error {
			n, err := s.repo.Count(gctx, name)
			if err != nil {
				return fmt.Errorf("count %q: %w", name, err)
			}
			counts[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}

	out := make([]domfaq.CategoryCount, len(cats))
	for i := range cats {
		out[i] = domfaq.NewCategoryCount(cats[i], counts[i])
	}
	return out, nil
}

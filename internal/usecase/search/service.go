package search

import (
	"context"
	"fmt"
	"sort"
	"unicode/utf8"

	domfaq "github.com/kailas-cloud/ipadhilfe/internal/domain/faq"
	"github.com/kailas-cloud/ipadhilfe/internal/metrics"
)

// DefaultLimit applies when a search request carries no positive limit.
const DefaultLimit = 20

// MinQueryLength is the shortest trimmed query that is scored.
const MinQueryLength = 2

// Service runs ranked keyword search over the whole catalog.
// Every call rescans and rescores; there is no index or cache.
type Service struct {
	repo         Repository
	defaultLimit int
}

// New creates a search service. A non-positive defaultLimit means DefaultLimit.
func New(repo Repository, defaultLimit int) *Service {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	return &Service{repo: repo, defaultLimit: defaultLimit}
}

type scored struct {
	item  domfaq.Item
	score int
}

// Search returns up to limit items ordered by descending score.
// Items scoring zero are dropped; equal scores keep catalog order.
// A query shorter than MinQueryLength yields an empty result.
func (s *Service) Search(ctx context.Context, raw string, limit int) ([]domfaq.Item, error) {
	q := newQuery(raw)
	if utf8.RuneCountInString(q.phrase) < MinQueryLength {
		metrics.ObserveSearch(metrics.SearchShort, 0)
		return []domfaq.Item{}, nil
	}

	items, err := s.repo.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("scan catalog: %w", err)
	}

	hits := make([]scored, 0, len(items))
	for i := range items {
		if sc := q.score(&items[i]); sc > 0 {
			hits = append(hits, scored{item: items[i], score: sc})
		}
	}
	sort.SliceStable(hits, func(a, b int) bool { return hits[a].score > hits[b].score })

	if limit <= 0 {
		limit = s.defaultLimit
	}
	if len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]domfaq.Item, len(hits))
	for i := range hits {
		out[i] = hits[i].item
	}

	outcome := metrics.SearchHit
	if len(out) == 0 {
		outcome = metrics.SearchMiss
	}
	metrics.ObserveSearch(outcome, len(out))

	return out, nil
}

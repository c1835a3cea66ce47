package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ipadhilfe/internal/domain"
	domfaq "github.com/kailas-cloud/ipadhilfe/internal/domain/faq"
	"github.com/kailas-cloud/ipadhilfe/internal/metrics"
)

// Result describes one seeding run.
type Result struct {
	Inserted int // items written by this run
	Existing int // items found in the store before the run
}

// Service fills an empty item store with the catalog.
type Service struct {
	repo    Repository
	catalog Catalog
	logger  *zap.Logger
	now     func() time.Time
}

// New creates a seeding service.
func New(repo Repository, c Catalog, logger *zap.Logger) *Service {
	return &Service{repo: repo, catalog: c, logger: logger, now: time.Now}
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Seed inserts the whole catalog when the store holds no items and does nothing otherwise.
// All inserted items share one timestamp.
func (s *Service) Seed(ctx context.Context) (Result, error) {
	n, err := s.repo.Count(ctx, "")
	if err != nil {
		s.logger.Error("Seeding skipped: cannot count items", zap.Error(err))
		return Result{}, fmt.Errorf("count items: %w", err)
	}
	if n > 0 {
		s.logger.Info("FAQ store already populated", zap.Int("items", n))
		return Result{Existing: n}, nil
	}

	entries := s.catalog.Entries()
	now := s.now().UTC()
	items := make([]domfaq.Item, 0, len(entries))
	for _, e := range entries {
		if !s.catalog.HasCategory(e.Category) {
			s.logger.Warn("Catalog item uses an unconfigured category; it will appear in no category count",
				zap.String("id", e.ID),
				zap.String("category", e.Category),
			)
		}
		it, err := domfaq.New(e.ID, e.Question, e.Answer, e.Category, now, now)
		if err != nil {
			return Result{}, fmt.Errorf("catalog item %q: %w", e.ID, err)
		}
		items = append(items, it)
	}

	if len(items) == 0 {
		s.logger.Warn("Catalog is empty, nothing to seed")
		return Result{}, nil
	}

	if err := s.repo.Insert(ctx, items); err != nil {
		if errors.Is(err, domain.ErrAlreadySeeded) {
			s.logger.Info("FAQ store seeded concurrently, skipping", zap.Error(err))
			return Result{}, nil
		}
		s.logger.Error("Seeding failed", zap.Int("items", len(items)), zap.Error(err))
		return Result{}, fmt.Errorf("insert catalog: %w", err)
	}

	metrics.SeededItemsTotal.Add(float64(len(items)))
	s.logger.Info("Seeded FAQ store", zap.Int("items", len(items)))
	return Result{Inserted: len(items)}, nil
}

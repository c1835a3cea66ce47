package preferences

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ipadhilfe/internal/domain"
	dompref "github.com/kailas-cloud/ipadhilfe/internal/domain/preferences"
	"github.com/kailas-cloud/ipadhilfe/internal/logger"
)

// Service reads and writes per-user preferences.
type Service struct {
	repo Repository
	now  func() time.Time
}

// New creates a preferences service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Get returns the record for userID, creating the default record on first access.
// When two first reads race, both return the record that was stored first.
func (s *Service) Get(ctx context.Context, userID string) (dompref.Preferences, error) {
	if userID == "" {
		return dompref.Preferences{}, fmt.Errorf("%w: user id is required", domain.ErrInvalidRequest)
	}

	p, found, err := s.repo.Find(ctx, userID)
	if err != nil {
		return dompref.Preferences{}, fmt.Errorf("find preferences: %w", err)
	}
	if found {
		return p, nil
	}

	p, created, err := s.repo.CreateIfAbsent(ctx, dompref.Default(userID, s.now().UTC()))
	if err != nil {
		return dompref.Preferences{}, fmt.Errorf("create preferences: %w", err)
	}
	if created {
		logger.FromContext(ctx).Debug("created default preferences", zap.String("user_id", userID))
	}
	return p, nil
}

// Put replaces the whole record for userID and reports whether one existed before.
func (s *Service) Put(ctx context.Context, userID string, u dompref.Update) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("%w: user id is required", domain.ErrInvalidRequest)
	}

	existing, found, err := s.repo.Find(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("find preferences: %w", err)
	}

	var prev *dompref.Preferences
	if found {
		prev = &existing
	}
	next := u.Apply(userID, prev, s.now().UTC())

	existed, err := s.repo.Replace(ctx, next)
	if err != nil {
		return false, fmt.Errorf("replace preferences: %w", err)
	}
	return existed, nil
}

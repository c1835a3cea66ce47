package preferences

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/ipadhilfe/internal/db"
	"github.com/kailas-cloud/ipadhilfe/internal/domain"
	dompref "github.com/kailas-cloud/ipadhilfe/internal/domain/preferences"
)

// store is the consumer interface for preferences (ISP).
type store interface {
	FindPreferences(ctx context.Context, userID string) (db.PreferencesRecord, error)
	InsertPreferencesIfAbsent(ctx context.Context, rec db.PreferencesRecord) (db.PreferencesRecord, bool, error)
	ReplacePreferences(ctx context.Context, rec db.PreferencesRecord) (bool, error)
}

// Repo implements usecase/preferences.Repository.
type Repo struct {
	store store
}

// New creates a preferences repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Find returns the stored record for userID. found is false when none exists.
func (r *Repo) Find(ctx context.Context, userID string) (p dompref.Preferences, found bool, err error) {
	rec, err := r.store.FindPreferences(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return dompref.Preferences{}, false, nil
		}
		return dompref.Preferences{}, false, storeErr("find preferences "+userID, err)
	}

	p, err = prefsFromRecord(&rec)
	if err != nil {
		return dompref.Preferences{}, false, err
	}
	return p, true, nil
}

// CreateIfAbsent stores p unless a record exists and returns whichever record is stored.
func (r *Repo) CreateIfAbsent(ctx context.Context, p dompref.Preferences) (dompref.Preferences, bool, error) {
	stored, created, err := r.store.InsertPreferencesIfAbsent(ctx, prefsToRecord(&p))
	if err != nil {
		return dompref.Preferences{}, false, storeErr("create preferences "+p.UserID(), err)
	}
	if created {
		return p, true, nil
	}

	existing, err := prefsFromRecord(&stored)
	if err != nil {
		return dompref.Preferences{}, false, err
	}
	return existing, false, nil
}

// Replace upserts p and reports whether a record existed before.
func (r *Repo) Replace(ctx context.Context, p dompref.Preferences) (bool, error) {
	existed, err := r.store.ReplacePreferences(ctx, prefsToRecord(&p))
	if err != nil {
		return false, storeErr("replace preferences "+p.UserID(), err)
	}
	return existed, nil
}

// storeErr tags driver failures with domain.ErrStoreUnavailable.
func storeErr(op string, err error) error {
	var dbErr *db.Error
	if errors.As(err, &dbErr) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

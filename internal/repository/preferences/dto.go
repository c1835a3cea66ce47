package preferences

import (
	"fmt"

	"github.com/kailas-cloud/ipadhilfe/internal/db"
	"github.com/kailas-cloud/ipadhilfe/internal/domain"
	dompref "github.com/kailas-cloud/ipadhilfe/internal/domain/preferences"
)

func prefsToRecord(p *dompref.Preferences) db.PreferencesRecord {
	return db.PreferencesRecord{
		UserID:       p.UserID(),
		HasSeenIntro: p.HasSeenIntro(),
		Favorites:    p.Favorites(),
		Theme:        p.Theme(),
		CreatedAt:    p.CreatedAt(),
		UpdatedAt:    p.UpdatedAt(),
	}
}

// prefsFromRecord validates a stored record. A missing theme falls back to the default.
func prefsFromRecord(rec *db.PreferencesRecord) (dompref.Preferences, error) {
	theme := rec.Theme
	if theme == "" {
		theme = dompref.DefaultTheme
	}
	p, err := dompref.New(rec.UserID, rec.HasSeenIntro, rec.Favorites, theme, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return dompref.Preferences{}, fmt.Errorf("preferences %q: %w: %w", rec.UserID, domain.ErrMalformedRecord, err)
	}
	return p, nil
}

// Package preferences holds the per-user preferences record.
package preferences

import (
	"errors"
	"time"
)

// DefaultTheme is the theme assigned to new users.
const DefaultTheme = "light"

// Preferences is a per-user preferences record.
// Favorites are item ids in user order; they are not checked against the catalog.
type Preferences struct {
	userID       string
	hasSeenIntro bool
	favorites    []string
	theme        string
	createdAt    time.Time
	updatedAt    time.Time
}

// Default returns the record created on first access.
func Default(userID string, now time.Time) Preferences {
	return Preferences{
		userID:    userID,
		favorites: []string{},
		theme:     DefaultTheme,
		createdAt: now,
		updatedAt: now,
	}
}

// New validates and creates a Preferences record.
func New(
	userID string, hasSeenIntro bool, favorites []string, theme string,
	createdAt, updatedAt time.Time,
) (Preferences, error) {
	if userID == "" {
		return Preferences{}, errors.New("user id is required")
	}
	return Reconstruct(userID, hasSeenIntro, favorites, theme, createdAt, updatedAt), nil
}

// Reconstruct creates a Preferences record without validation (storage hydration).
func Reconstruct(
	userID string, hasSeenIntro bool, favorites []string, theme string,
	createdAt, updatedAt time.Time,
) Preferences {
	fav := make([]string, len(favorites))
	copy(fav, favorites)
	return Preferences{
		userID:       userID,
		hasSeenIntro: hasSeenIntro,
		favorites:    fav,
		theme:        theme,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// UserID returns the owning user id.
func (p *Preferences) UserID() string { return p.userID }

// HasSeenIntro reports whether onboarding was completed.
func (p *Preferences) HasSeenIntro() bool { return p.hasSeenIntro }

// Favorites returns the favorite item ids. Never nil.
func (p *Preferences) Favorites() []string {
	if p.favorites == nil {
		return []string{}
	}
	return p.favorites
}

// Theme returns the theme name.
func (p *Preferences) Theme() string { return p.theme }

// CreatedAt returns the first-access timestamp.
func (p *Preferences) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the last-write timestamp.
func (p *Preferences) UpdatedAt() time.Time { return p.updatedAt }

// Update is the full replacement written by a client. Nil fields take defaults.
type Update struct {
	HasSeenIntro *bool
	Favorites    []string
	Theme        *string
	CreatedAt    *time.Time
}

// Apply builds the replacement record for userID.
// created_at is taken from existing when present, else from the update, else now.
func (u Update) Apply(userID string, existing *Preferences, now time.Time) Preferences {
	p := Default(userID, now)
	if u.HasSeenIntro != nil {
		p.hasSeenIntro = *u.HasSeenIntro
	}
	if u.Favorites != nil {
		p.favorites = append([]string{}, u.Favorites...)
	}
	if u.Theme != nil {
		p.theme = *u.Theme
	}

	switch {
	case existing != nil && !existing.createdAt.IsZero():
		p.createdAt = existing.createdAt
	case u.CreatedAt != nil && !u.CreatedAt.IsZero():
		p.createdAt = *u.CreatedAt
	}
	p.updatedAt = now
	return p
}

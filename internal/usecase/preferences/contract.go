package preferences

import (
	"context"

	dompref "github.com/kailas-cloud/ipadhilfe/internal/domain/preferences"
)

// Repository defines the storage contract for user preferences.
type Repository interface {
	Find(ctx context.Context, userID string) (dompref.Preferences, bool, error)
	CreateIfAbsent(ctx context.Context, p dompref.Preferences) (dompref.Preferences, bool, error)
	Replace(ctx context.Context, p dompref.Preferences) (bool, error)
}

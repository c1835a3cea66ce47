package preferences

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/ipadhilfe/internal/db"
)

var testTime = time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	findFn    func(ctx context.Context, userID string) (db.PreferencesRecord, error)
	insertFn  func(ctx context.Context, rec db.PreferencesRecord) (db.PreferencesRecord, bool, error)
	replaceFn func(ctx context.Context, rec db.PreferencesRecord) (bool, error)
}

func (m *mockStore) FindPreferences(ctx context.Context, userID string) (db.PreferencesRecord, error) {
	if m.findFn != nil {
		return m.findFn(ctx, userID)
	}
	return db.PreferencesRecord{}, db.ErrKeyNotFound
}

func (m *mockStore) InsertPreferencesIfAbsent(
	ctx context.Context, rec db.PreferencesRecord,
) (db.PreferencesRecord, bool, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, rec)
	}
	return rec, true, nil
}

func (m *mockStore) ReplacePreferences(ctx context.Context, rec db.PreferencesRecord) (bool, error) {
	if m.replaceFn != nil {
		return m.replaceFn(ctx, rec)
	}
	return false, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

package faq

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/ipadhilfe/internal/db"
	domfaq "github.com/kailas-cloud/ipadhilfe/internal/domain/faq"
)

var testTime = time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	findItemFn    func(ctx context.Context, id string) (db.ItemRecord, error)
	findItemsFn   func(ctx context.Context, f db.ItemFilter) ([]db.ItemRecord, error)
	countItemsFn  func(ctx context.Context, f db.ItemFilter) (int, error)
	insertItemsFn func(ctx context.Context, items []db.ItemRecord) error
}

func (m *mockStore) FindItem(ctx context.Context, id string) (db.ItemRecord, error) {
	if m.findItemFn != nil {
		return m.findItemFn(ctx, id)
	}
	return db.ItemRecord{}, db.ErrKeyNotFound
}

func (m *mockStore) FindItems(ctx context.Context, f db.ItemFilter) ([]db.ItemRecord, error) {
	if m.findItemsFn != nil {
		return m.findItemsFn(ctx, f)
	}
	return nil, nil
}

func (m *mockStore) CountItems(ctx context.Context, f db.ItemFilter) (int, error) {
	if m.countItemsFn != nil {
		return m.countItemsFn(ctx, f)
	}
	return 0, nil
}

func (m *mockStore) InsertItems(ctx context.Context, items []db.ItemRecord) error {
	if m.insertItemsFn != nil {
		return m.insertItemsFn(ctx, items)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

func testRecord(id, category string) db.ItemRecord {
	return db.ItemRecord{
		ID:        id,
		Question:  "Frage " + id,
		Answer:    "Antwort " + id,
		Category:  category,
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}
}

func testItem(t *testing.T, id, category string) domfaq.Item {
	t.Helper()
	it, err := domfaq.New(id, "Frage "+id, "Antwort "+id, category, testTime, testTime)
	if err != nil {
		t.Fatalf("domfaq.New: %v", err)
	}
	return it
}

package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/kailas-cloud/ipadhilfe/internal/db"
)

const (
	itemsNS = "ipad_hilfe.faq_items"
	prefsNS = "ipad_hilfe.user_preferences"
)

var seededAt = time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)

func itemDoc(id, category string) bson.D {
	return bson.D{
		{Key: "id", Value: id},
		{Key: "question", Value: "Frage " + id},
		{Key: "answer", Value: "Antwort " + id},
		{Key: "category", Value: category},
		{Key: "created_at", Value: seededAt},
		{Key: "updated_at", Value: seededAt},
	}
}

func prefsDoc(userID, theme string) bson.D {
	return bson.D{
		{Key: "user_id", Value: userID},
		{Key: "has_seen_intro", Value: true},
		{Key: "favorites", Value: bson.A{"a1"}},
		{Key: "theme", Value: theme},
		{Key: "created_at", Value: seededAt},
		{Key: "updated_at", Value: seededAt},
	}
}

func commandError() bson.D {
	return mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "boom"})
}

func newMockT(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func TestNewStore_Validation(t *testing.T) {
	_, err := NewStore(context.Background(), Config{Database: "ipad_hilfe"})
	require.Error(t, err)

	_, err = NewStore(context.Background(), Config{URI: "mongodb://localhost:27017"})
	require.Error(t, err)
}

func TestPing(t *testing.T) {
	mt := newMockT(t)

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		s := NewStoreForTest(mt.Client, "ipad_hilfe")
		require.NoError(mt, s.Ping(context.Background()))
	})

	mt.Run("error", func(mt *mtest.T) {
		mt.AddMockResponses(commandError())
		s := NewStoreForTest(mt.Client, "ipad_hilfe")
		err := s.Ping(context.Background())
		require.Error(mt, err)

		var dbErr *db.Error
		assert.True(mt, errors.As(err, &dbErr))
		assert.Equal(mt, db.OpPing, dbErr.Op)
	})
}

func TestEnsureSchema(t *testing.T) {
	mt := newMockT(t)

	mt.Run("creates indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		s := NewStoreForTest(mt.Client, "ipad_hilfe")
		require.NoError(mt, s.EnsureSchema(context.Background()))
	})

	mt.Run("error", func(mt *mtest.T) {
		mt.AddMockResponses(commandError())
		s := NewStoreForTest(mt.Client, "ipad_hilfe")
		err := s.EnsureSchema(context.Background())
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "faq_items")
	})
}

func TestFindItem(t *testing.T) {
	mt := newMockT(t)

	mt.Run("found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(1, itemsNS, mtest.FirstBatch, itemDoc("a1", "Erste Schritte")))
		s := NewStoreForTest(mt.Client, "ipad_hilfe")

		rec, err := s.FindItem(context.Background(), "a1")
		require.NoError(mt, err)
		assert.Equal(mt, "a1", rec.ID)
		assert.Equal(mt, "Erste Schritte", rec.Category)
		assert.True(mt, rec.CreatedAt.Equal(seededAt))
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, itemsNS, mtest.FirstBatch))
		s := NewStoreForTest(mt.Client, "ipad_hilfe")

		_, err := s.FindItem(context.Background(), "missing")
		assert.ErrorIs(mt, err, db.ErrKeyNotFound)
	})

	mt.Run("error", func(mt *mtest.T) {
		mt.AddMockResponses(commandError())
		s := NewStoreForTest(mt.Client, "ipad_hilfe")

		_, err := s.FindItem(context.Background(), "a1")
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, db.ErrKeyNotFound)
	})
}

func TestFindItems(t *testing.T) {
	mt := newMockT(t)

	mt.Run("returns documents in cursor order", func(mt *mtest.T) {
		first := mtest.CreateCursorResponse(1, itemsNS, mtest.FirstBatch,
			itemDoc("b", "Apps & Tools"), itemDoc("a", "Erste Schritte"))
		last := mtest.CreateCursorResponse(0, itemsNS, mtest.NextBatch)
		mt.AddMockResponses(first, last)
		s := NewStoreForTest(mt.Client, "ipad_hilfe")

		recs, err := s.FindItems(context.Background(), db.ItemFilter{})
		require.NoError(mt, err)
		require.Len(mt, recs, 2)
		assert.Equal(mt, "b", recs[0].ID)
		assert.Equal(mt, "a", recs[1].ID)
	})

	mt.Run("empty", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, itemsNS, mtest.FirstBatch))
		s := NewStoreForTest(mt.Client, "ipad_hilfe")

		recs, err := s.FindItems(context.Background(), db.ItemFilter{Category: "Troubleshooting"})
		require.NoError(mt, err)
		assert.Empty(mt, recs)
	})

	mt.Run("error", func(mt *mtest.T) {
		mt.AddMockResponses(commandError())
		s := NewStoreForTest(mt.Client, "ipad_hilfe")

		_, err := s.FindItems(context.Background(), db.ItemFilter{})
		require.Error(mt, err)
	})
}

func TestCountItems(t *testing.T) {
	mt := newMockT(t)

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, itemsNS, mtest.FirstBatch, bson.D{{Key: "n", Value: int64(3)}}))
		s := NewStoreForTest(mt.Client, "ipad_hilfe")

		n, err := s.CountItems(context.Background(), db.ItemFilter{Category: "Erste Schritte"})
		require.NoError(mt, err)
		assert.Equal(mt, 3, n)
	})

	mt.Run("error", func(mt *mtest.T) {
		mt.AddMockResponses(commandError())
		s := NewStoreForTest(mt.Client, "ipad_hilfe")

		_, err := s.CountItems(context.Background(), db.ItemFilter{})
		require.Error(mt, err)
	})
}

func TestInsertItems(t *testing.T) {
	mt := newMockT(t)

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		s := NewStoreForTest(mt.Client, "ipad_hilfe")

		err := s.InsertItems(context.Background(), []db.ItemRecord{
			{ID: "a", Question: "q", Answer: "x", Category: "Erste Schritte", CreatedAt: seededAt, UpdatedAt: seededAt},
		})
		require.NoError(mt, err)
	})

	mt.Run("empty batch", func(mt *mtest.T) {
		s := NewStoreForTest(mt.Client, "ipad_hilfe")
		require.NoError(mt, s.InsertItems(context.Background(), nil))
	})

	mt.Run("duplicate key", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "duplicate key error",
		}))
		s := NewStoreForTest(mt.Client, "ipad_hilfe")

		err := s.InsertItems(context.Background(), []db.ItemRecord{{ID: "a"}})
		require.Error(mt, err)

		var dbErr *db.Error
		require.True(mt, errors.As(err, &dbErr))
		assert.Equal(mt, db.OpInsertMany, dbErr.Op)
		assert.ErrorIs(mt, err, db.ErrBatchClaimed)
	})

	mt.Run("other write error is not a claimed batch", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 121, Message: "document failed validation",
		}))
		s := NewStoreForTest(mt.Client, "ipad_hilfe")

		err := s.InsertItems(context.Background(), []db.ItemRecord{{ID: "a"}})
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, db.ErrBatchClaimed)
	})
}

func TestFindPreferences(t *testing.T) {
	mt := newMockT(t)

	mt.Run("found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(1, prefsNS, mtest.FirstBatch, prefsDoc("u1", "dark")))
		s := NewStoreForTest(mt.Client, "ipad_hilfe")

		rec, err := s.FindPreferences(context.Background(), "u1")
		require.NoError(mt, err)
		assert.Equal(mt, "dark", rec.Theme)
		assert.Equal(mt, []string{"a1"}, rec.Favorites)
		assert.True(mt, rec.HasSeenIntro)
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, prefsNS, mtest.FirstBatch))
		s := NewStoreForTest(mt.Client, "ipad_hilfe")

		_, err := s.FindPreferences(context.Background(), "u1")
		assert.ErrorIs(mt, err, db.ErrKeyNotFound)
	})
}

func TestInsertPreferencesIfAbsent(t *testing.T) {
	mt := newMockT(t)
	rec := db.PreferencesRecord{UserID: "u1", Favorites: []string{}, Theme: "light", CreatedAt: seededAt, UpdatedAt: seededAt}

	mt.Run("created", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))
		s := NewStoreForTest(mt.Client, "ipad_hilfe")

		stored, created, err := s.InsertPreferencesIfAbsent(context.Background(), rec)
		require.NoError(mt, err)
		assert.True(mt, created)
		assert.Equal(mt, "light", stored.Theme)
	})

	mt.Run("existing document wins", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: prefsDoc("u1", "dark")}))
		s := NewStoreForTest(mt.Client, "ipad_hilfe")

		stored, created, err := s.InsertPreferencesIfAbsent(context.Background(), rec)
		require.NoError(mt, err)
		assert.False(mt, created)
		assert.Equal(mt, "dark", stored.Theme)
	})

	mt.Run("error", func(mt *mtest.T) {
		mt.AddMockResponses(commandError())
		s := NewStoreForTest(mt.Client, "ipad_hilfe")

		_, _, err := s.InsertPreferencesIfAbsent(context.Background(), rec)
		require.Error(mt, err)
	})
}

func TestReplacePreferences(t *testing.T) {
	mt := newMockT(t)
	rec := db.PreferencesRecord{UserID: "u1", Favorites: []string{}, Theme: "dark"}

	mt.Run("existing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		s := NewStoreForTest(mt.Client, "ipad_hilfe")

		existed, err := s.ReplacePreferences(context.Background(), rec)
		require.NoError(mt, err)
		assert.True(mt, existed)
	})

	mt.Run("upserted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: "x"}}}},
		))
		s := NewStoreForTest(mt.Client, "ipad_hilfe")

		existed, err := s.ReplacePreferences(context.Background(), rec)
		require.NoError(mt, err)
		assert.False(mt, existed)
	})

	mt.Run("error", func(mt *mtest.T) {
		mt.AddMockResponses(commandError())
		s := NewStoreForTest(mt.Client, "ipad_hilfe")

		_, err := s.ReplacePreferences(context.Background(), rec)
		require.Error(mt, err)
	})
}

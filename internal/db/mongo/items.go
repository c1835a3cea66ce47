package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kailas-cloud/ipadhilfe/internal/db"
)

// FindItem returns the item whose id field equals id.
func (s *Store) FindItem(ctx context.Context, id string) (db.ItemRecord, error) {
	var rec db.ItemRecord
	err := s.items.FindOne(ctx, bson.M{"id": id}, options.FindOne().SetProjection(noID)).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return db.ItemRecord{}, db.ErrKeyNotFound
		}
		return db.ItemRecord{}, &db.Error{Op: db.OpFindOne, Err: err}
	}
	return rec, nil
}

// FindItems returns matching items in insertion order.
func (s *Store) FindItems(ctx context.Context, f db.ItemFilter) ([]db.ItemRecord, error) {
	opts := options.Find().
		SetProjection(noID).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cur, err := s.items.Find(ctx, itemFilter(f), opts)
	if err != nil {
		return nil, &db.Error{Op: db.OpFind, Err: err}
	}
	defer func() { _ = cur.Close(ctx) }()

	var out []db.ItemRecord
	for cur.Next(ctx) {
		var rec db.ItemRecord
		if err := cur.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode item: %w: %w", db.ErrMalformedDocument, err)
		}
		out = append(out, rec)
	}
	if err := cur.Err(); err != nil {
		return nil, &db.Error{Op: db.OpFind, Err: err}
	}
	return out, nil
}

// CountItems counts items matching the filter.
func (s *Store) CountItems(ctx context.Context, f db.ItemFilter) (int, error) {
	n, err := s.items.CountDocuments(ctx, itemFilter(f))
	if err != nil {
		return 0, &db.Error{Op: db.OpCount, Err: err}
	}
	return int(n), nil
}

// InsertItems writes the batch with one ordered insertMany. The unique id index
// turns a competing batch into db.ErrBatchClaimed.
func (s *Store) InsertItems(ctx context.Context, items []db.ItemRecord) error {
	if len(items) == 0 {
		return nil
	}

	docs := make([]any, len(items))
	for i := range items {
		docs[i] = items[i]
	}
	if _, err := s.items.InsertMany(ctx, docs); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &db.Error{Op: db.OpInsertMany, Err: fmt.Errorf("%w: %w", db.ErrBatchClaimed, err)}
		}
		return &db.Error{Op: db.OpInsertMany, Err: err}
	}
	return nil
}

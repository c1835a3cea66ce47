package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kailas-cloud/ipadhilfe/internal/db"
)

// FindPreferences returns the preferences document for userID.
func (s *Store) FindPreferences(ctx context.Context, userID string) (db.PreferencesRecord, error) {
	var rec db.PreferencesRecord
	err := s.prefs.FindOne(ctx, bson.M{"user_id": userID}, options.FindOne().SetProjection(noID)).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return db.PreferencesRecord{}, db.ErrKeyNotFound
		}
		return db.PreferencesRecord{}, &db.Error{Op: db.OpFindOne, Err: err}
	}
	return rec, nil
}

// InsertPreferencesIfAbsent upserts rec with $setOnInsert. The pre-image tells
// whether the document was created; an existing document is returned as is.
func (s *Store) InsertPreferencesIfAbsent(
	ctx context.Context, rec db.PreferencesRecord,
) (db.PreferencesRecord, bool, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.Before).
		SetProjection(noID)

	var existing db.PreferencesRecord
	err := s.prefs.FindOneAndUpdate(ctx,
		bson.M{"user_id": rec.UserID},
		bson.M{"$setOnInsert": rec},
		opts,
	).Decode(&existing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return rec, true, nil
		}
		return db.PreferencesRecord{}, false, &db.Error{Op: db.OpFindAndModify, Err: err}
	}
	return existing, false, nil
}

// ReplacePreferences upserts rec and reports whether a document already existed.
func (s *Store) ReplacePreferences(ctx context.Context, rec db.PreferencesRecord) (bool, error) {
	res, err := s.prefs.ReplaceOne(ctx,
		bson.M{"user_id": rec.UserID},
		rec,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return false, &db.Error{Op: db.OpReplaceOne, Err: err}
	}
	return res.MatchedCount > 0, nil
}

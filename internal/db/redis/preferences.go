package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/ipadhilfe/internal/db"
)

// FindPreferences returns the preferences document for userID.
func (s *Store) FindPreferences(ctx context.Context, userID string) (db.PreferencesRecord, error) {
	c, err := s.conn()
	if err != nil {
		return db.PreferencesRecord{}, &db.Error{Op: db.OpGet, Err: err}
	}

	key := s.prefsKey(userID)
	raw, err := c.Do(ctx, c.B().Get().Key(key).Build()).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return db.PreferencesRecord{}, db.ErrKeyNotFound
		}
		return db.PreferencesRecord{}, &db.Error{Op: db.OpGet, Err: err}
	}
	return decodePreferences(key, raw)
}

// InsertPreferencesIfAbsent writes rec with SET NX GET; an existing document wins.
func (s *Store) InsertPreferencesIfAbsent(
	ctx context.Context, rec db.PreferencesRecord,
) (db.PreferencesRecord, bool, error) {
	c, err := s.conn()
	if err != nil {
		return db.PreferencesRecord{}, false, &db.Error{Op: db.OpSet, Err: err}
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return db.PreferencesRecord{}, false, fmt.Errorf("marshal preferences: %w", err)
	}

	key := s.prefsKey(rec.UserID)
	prev, err := c.Do(ctx, c.B().Set().Key(key).Value(string(data)).Nx().Get().Build()).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return rec, true, nil
		}
		return db.PreferencesRecord{}, false, &db.Error{Op: db.OpSet, Err: err}
	}

	existing, err := decodePreferences(key, prev)
	if err != nil {
		return db.PreferencesRecord{}, false, err
	}
	return existing, false, nil
}

// ReplacePreferences overwrites the document with SET GET and reports whether one existed.
func (s *Store) ReplacePreferences(ctx context.Context, rec db.PreferencesRecord) (bool, error) {
	c, err := s.conn()
	if err != nil {
		return false, &db.Error{Op: db.OpSet, Err: err}
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return false, fmt.Errorf("marshal preferences: %w", err)
	}

	key := s.prefsKey(rec.UserID)
	if err := c.Do(ctx, c.B().Set().Key(key).Value(string(data)).Get().Build()).Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return false, nil
		}
		return false, &db.Error{Op: db.OpSet, Err: err}
	}
	return true, nil
}

func decodePreferences(key string, raw []byte) (db.PreferencesRecord, error) {
	var rec db.PreferencesRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return db.PreferencesRecord{}, fmt.Errorf("decode %s: %w: %w", key, db.ErrMalformedDocument, err)
	}
	return rec, nil
}

package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/ipadhilfe/internal/db"
)

// FindItem returns the item hash for id.
func (s *Store) FindItem(ctx context.Context, id string) (db.ItemRecord, error) {
	c, err := s.conn()
	if err != nil {
		return db.ItemRecord{}, &db.Error{Op: db.OpHGetAll, Err: err}
	}

	m, err := c.Do(ctx, c.B().Hgetall().Key(s.itemKey(id)).Build()).AsStrMap()
	if err != nil {
		return db.ItemRecord{}, &db.Error{Op: db.OpHGetAll, Err: err}
	}
	if len(m) == 0 {
		return db.ItemRecord{}, db.ErrKeyNotFound
	}
	return parseItemFields(m), nil
}

// FindItems returns items in insertion order, optionally restricted to one category.
func (s *Store) FindItems(ctx context.Context, f db.ItemFilter) ([]db.ItemRecord, error) {
	c, err := s.conn()
	if err != nil {
		return nil, &db.Error{Op: db.OpLRange, Err: err}
	}

	ids, err := c.Do(ctx, c.B().Lrange().Key(s.listKey(f)).Start(0).Stop(-1).Build()).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpLRange, Err: err}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	cmds := make(rueidis.Commands, len(ids))
	for i, id := range ids {
		cmds[i] = c.B().Hgetall().Key(s.itemKey(id)).Build()
	}

	results := c.DoMulti(ctx, cmds...)
	out := make([]db.ItemRecord, 0, len(results))
	for i, res := range results {
		m, err := res.AsStrMap()
		if err != nil {
			return nil, &db.Error{Op: db.OpHGetAll, Err: fmt.Errorf("key %s: %w", s.itemKey(ids[i]), err)}
		}
		if len(m) == 0 {
			continue // id listed without a hash
		}
		out = append(out, parseItemFields(m))
	}
	return out, nil
}

// CountItems returns the length of the id list backing the filter.
func (s *Store) CountItems(ctx context.Context, f db.ItemFilter) (int, error) {
	c, err := s.conn()
	if err != nil {
		return 0, &db.Error{Op: db.OpLLen, Err: err}
	}

	n, err := c.Do(ctx, c.B().Llen().Key(s.listKey(f)).Build()).AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpLLen, Err: err}
	}
	return int(n), nil
}

// InsertItems stores item hashes and appends their ids to the ordered lists
// inside one MULTI/EXEC, so a partially written batch is never visible.
// The batch is claimed first with SET NX on the seed marker; a second writer gets
// db.ErrBatchClaimed. A failed EXEC releases the marker.
func (s *Store) InsertItems(ctx context.Context, items []db.ItemRecord) error {
	if len(items) == 0 {
		return nil
	}

	c, err := s.conn()
	if err != nil {
		return &db.Error{Op: db.OpExec, Err: err}
	}

	marker := items[0].CreatedAt.UTC().Format(time.RFC3339Nano)
	if err := c.Do(ctx, c.B().Set().Key(s.seedKey()).Value(marker).Nx().Build()).Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return &db.Error{Op: db.OpSet, Err: db.ErrBatchClaimed}
		}
		return &db.Error{Op: db.OpSet, Err: err}
	}

	ids := make([]string, len(items))
	var categories []string
	byCategory := make(map[string][]string)

	cmds := make(rueidis.Commands, 0, len(items)+4)
	cmds = append(cmds, c.B().Multi().Build())
	for i := range items {
		it := &items[i]
		ids[i] = it.ID
		if _, ok := byCategory[it.Category]; !ok {
			categories = append(categories, it.Category)
		}
		byCategory[it.Category] = append(byCategory[it.Category], it.ID)

		cmd := c.B().Hset().Key(s.itemKey(it.ID)).FieldValue()
		for k, v := range buildItemFields(it) {
			cmd = cmd.FieldValue(k, v)
		}
		cmds = append(cmds, cmd.Build())
	}
	cmds = append(cmds, c.B().Rpush().Key(s.itemsKey()).Element(ids...).Build())
	for _, name := range categories {
		cmds = append(cmds, c.B().Rpush().Key(s.categoryKey(name)).Element(byCategory[name]...).Build())
	}
	cmds = append(cmds, c.B().Exec().Build())

	for _, res := range c.DoMulti(ctx, cmds...) {
		if err := res.Error(); err != nil {
			if delErr := c.Do(ctx, c.B().Del().Key(s.seedKey()).Build()).Error(); delErr != nil {
				return &db.Error{Op: db.OpExec, Err: fmt.Errorf("%w (release seed marker: %w)", err, delErr)}
			}
			return &db.Error{Op: db.OpExec, Err: err}
		}
	}
	return nil
}

// buildItemFields converts a record into a flat map[string]string for HSET.
func buildItemFields(it *db.ItemRecord) map[string]string {
	return map[string]string{
		"id":         it.ID,
		"question":   it.Question,
		"answer":     it.Answer,
		"category":   it.Category,
		"created_at": it.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at": it.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// parseItemFields converts a flat hash map back into a record.
// Unparseable timestamps stay zero and are rejected by the repository.
func parseItemFields(m map[string]string) db.ItemRecord {
	return db.ItemRecord{
		ID:        m["id"],
		Question:  m["question"],
		Answer:    m["answer"],
		Category:  m["category"],
		CreatedAt: parseTime(m["created_at"]),
		UpdatedAt: parseTime(m["updated_at"]),
	}
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

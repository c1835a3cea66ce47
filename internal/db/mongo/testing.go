package mongo

import "go.mongodb.org/mongo-driver/mongo"

// NewStoreForTest wraps an existing client, e.g. an mtest mock (test-only).
func NewStoreForTest(c *mongo.Client, database string) *Store {
	return newStore(c, database, "", "")
}

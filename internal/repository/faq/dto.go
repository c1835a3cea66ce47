package faq

import (
	"fmt"

	"github.com/kailas-cloud/ipadhilfe/internal/db"
	"github.com/kailas-cloud/ipadhilfe/internal/domain"
	domfaq "github.com/kailas-cloud/ipadhilfe/internal/domain/faq"
)

// itemToRecord converts a domain Item to its stored shape.
func itemToRecord(it *domfaq.Item) db.ItemRecord {
	return db.ItemRecord{
		ID:        it.ID(),
		Question:  it.Question(),
		Answer:    it.Answer(),
		Category:  it.Category(),
		CreatedAt: it.CreatedAt(),
		UpdatedAt: it.UpdatedAt(),
	}
}

// itemFromRecord validates a stored record and hydrates a domain Item.
func itemFromRecord(rec *db.ItemRecord) (domfaq.Item, error) {
	it, err := domfaq.New(rec.ID, rec.Question, rec.Answer, rec.Category, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return domfaq.Item{}, fmt.Errorf("item %q: %w: %w", rec.ID, domain.ErrMalformedRecord, err)
	}
	return it, nil
}

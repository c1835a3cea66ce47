package faq

import (
	"errors"
	"strings"
	"time"
)

// Item is a single FAQ entry (immutable value object).
type Item struct {
	id        string
	question  string
	answer    string
	category  string
	createdAt time.Time
	updatedAt time.Time
}

// New validates and creates an Item.
// The answer is opaque text: numbered steps and **bold** markers are kept as-is.
func New(id, question, answer, category string, createdAt, updatedAt time.Time) (Item, error) {
	if strings.TrimSpace(id) == "" {
		return Item{}, errors.New("item id is required")
	}
	if strings.TrimSpace(question) == "" {
		return Item{}, errors.New("item question is required")
	}
	if strings.TrimSpace(answer) == "" {
		return Item{}, errors.New("item answer is required")
	}
	if strings.TrimSpace(category) == "" {
		return Item{}, errors.New("item category is required")
	}
	if createdAt.IsZero() || updatedAt.IsZero() {
		return Item{}, errors.New("item timestamps are required")
	}

	return Item{
		id:        id,
		question:  question,
		answer:    answer,
		category:  category,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

// Reconstruct creates an Item without validation.
func Reconstruct(id, question, answer, category string, createdAt, updatedAt time.Time) Item {
	return Item{
		id: id, question: question, answer: answer, category: category,
		createdAt: createdAt, updatedAt: updatedAt,
	}
}

// ID returns the stable item identifier.
func (i *Item) ID() string { return i.id }

// Question returns the question text.
func (i *Item) Question() string { return i.question }

// Answer returns the answer text.
func (i *Item) Answer() string { return i.answer }

// Category returns the category name.
func (i *Item) Category() string { return i.category }

// CreatedAt returns the seed timestamp.
func (i *Item) CreatedAt() time.Time { return i.createdAt }

// UpdatedAt returns the last update timestamp.
func (i *Item) UpdatedAt() time.Time { return i.updatedAt }

// Contains reports whether the lowercased needle occurs in the lowercased question or answer.
func (i *Item) Contains(needle string) bool {
	n := strings.ToLower(needle)
	return strings.Contains(strings.ToLower(i.question), n) ||
		strings.Contains(strings.ToLower(i.answer), n)
}

package faq

import "errors"

// Category is a statically configured category descriptor.
type Category struct {
	name        string
	icon        string
	description string
}

// NewCategory validates and creates a Category.
func NewCategory(name, icon, description string) (Category, error) {
	if name == "" {
		return Category{}, errors.New("category name is required")
	}
	return Category{name: name, icon: icon, description: description}, nil
}

// Name returns the category name items refer to.
func (c *Category) Name() string { return c.name }

// Icon returns the icon token used by the client.
func (c *Category) Icon() string { return c.icon }

// Description returns the human-readable description.
func (c *Category) Description() string { return c.description }

// CategoryCount is a category descriptor enriched with its item count.
type CategoryCount struct {
	Category
	count int
}

// NewCategoryCount pairs a descriptor with a count.
func NewCategoryCount(c Category, count int) CategoryCount {
	return CategoryCount{Category: c, count: count}
}

// Count returns the number of items in the category.
func (c *CategoryCount) Count() int { return c.count }

package model

import (
	"slices"
	"strings"
)

// Categories is an insertion-ordered set of category names.
type Categories []string

// Add appends a trimmed category unless it is blank or already present.
func (c Categories) Add(category string) Categories {
	trimmed := strings.TrimSpace(category)
	if trimmed == "" || slices.Contains(c, trimmed) {
		return c
	}
	return append(c, trimmed)
}

func (c Categories) Remove(category string) Categories {
	return slices.DeleteFunc(slices.Clone(c), func(existing string) bool {
		return existing == category
	})
}

// ParseCategories splits a comma-separated list.
func ParseCategories(s string) Categories {
	var c Categories
	for _, part := range strings.Split(s, ",") {
		c = c.Add(part)
	}
	return c
}

// Package services contains the catalog business logic: deriving the file
// catalog from the two stores and coordinating multi-step mutations across
// them.
package services

import (
	"github.com/dmitrijs2005/savespace/internal/common"
	"github.com/dmitrijs2005/savespace/internal/server/models"
)

// ResolveCategory returns the id of the first category in iteration order
// whose membership list contains the locator, or "" when none does.
//
// At most one category should claim a locator; when two do (a defect state
// possible under concurrent writers), the first match wins and the other
// association stays invisible. Degraded, deterministic on input order, not
// an error.
func ResolveCategory(locator string, categories []*models.Category) string {
	for _, category := range categories {
		if category.Contains(locator) {
			return category.ID
		}
	}
	return ""
}

// CategoryName returns the display name for a category id, falling back to
// the uncategorized label for an empty or unknown id.
func CategoryName(categories []*models.Category, id string) string {
	for _, category := range categories {
		if category.ID == id {
			return category.Name
		}
	}
	return common.UncategorizedLabel
}

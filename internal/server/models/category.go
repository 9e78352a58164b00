// Package models defines server-side data models persisted in the database
// and derived views over object storage.
package models

// Category is a user-defined file category. Its Files list is the sole
// source of truth for file→category membership: object storage carries no
// custom metadata, so membership is derived from the category side.
type Category struct {
	// ID is the store-assigned category identifier.
	ID string
	// Name is the user-facing category name.
	Name string
	// CreatedBy is the uid of the owning user.
	CreatedBy string
	// Files holds the download locators of member files. Order is
	// irrelevant and entries are unique; a duplicate across two
	// categories is a defect state resolved by first-match iteration.
	Files []string
}

// Contains reports whether the category's membership list claims the
// given locator.
func (c *Category) Contains(locator string) bool {
	for _, f := range c.Files {
		if f == locator {
			return true
		}
	}
	return false
}

package common

// UncategorizedLabel is the display name used for files that no category
// currently claims.
const UncategorizedLabel = "Uncategorized"

// AllCategoriesFilter is the catalog filter value that disables category
// filtering.
const AllCategoriesFilter = "all"

package models

// FileRef is one catalog entry: a blob actually present in object storage,
// joined with its derived category and size metadata. Identity is the
// stable download locator issued at upload time.
type FileRef struct {
	// Name is the display name, which doubles as the storage key within
	// the user's namespace.
	Name string
	// URL is the stable download locator. It is the de facto primary key
	// used across category membership lists.
	URL string
	// CategoryID is derived from category membership; empty when no
	// category claims the file.
	CategoryID string
	// Size is the byte count reported by object storage.
	Size int64
	// SizeLabel is the human-readable rendering of Size.
	SizeLabel string
}

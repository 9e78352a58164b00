package models

// User is the identity supplied by the authentication collaborator.
type User struct {
	// UID filters category ownership.
	UID string
	// DisplayName is the storage namespace owner, per the
	// "<displayName>'s Files/" key convention.
	DisplayName string
}

// Namespace returns the user's storage prefix, without a trailing slash.
func (u User) Namespace() string {
	return u.DisplayName + "'s Files"
}

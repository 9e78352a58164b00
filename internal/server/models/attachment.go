package models

// Attachment is an auxiliary record linking arbitrary content to a file
// locator. Attachments are created by another subsystem; this core only
// garbage-collects them when the referenced file is deleted.
type Attachment struct {
	ID      string
	FileURL string
	// Payload carries the subsystem-specific content; opaque here.
	Payload []byte
}

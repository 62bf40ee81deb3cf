package contactstore

import (
	"time"

	"vcfimport/internal/importer"
)

// Import describes one persisted batch.
type Import struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	ImportedAt time.Time `json:"imported_at"`
	Count      int       `json:"count"`
}

// StoredContact is a contact plus the batch it arrived in.
type StoredContact struct {
	importer.Contact
	ImportID string `json:"import_id"`
	Position int    `json:"position"`
}

// ListOptions filters List. Zero values mean no filter.
type ListOptions struct {
	ImportID string
	Limit    int
}

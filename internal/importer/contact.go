package importer

import (
	"context"

	"vcfimport/internal/vcard"
)

// Contact is the downstream view of one emitted record with its display
// name already reconciled.
type Contact struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Phone       *int64  `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	Note        *string `json:"note,omitempty"`
	// Line is the physical line of the record's BEGIN marker.
	Line int `json:"line"`
}

// Batch groups the contacts produced by one run.
type Batch struct {
	ID       string
	Source   string
	Contacts []Contact
}

// Sink consumes a completed batch.
type Sink interface {
	Write(context.Context, Batch) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(context.Context, Batch) error

// Write calls f.
func (f SinkFunc) Write(ctx context.Context, batch Batch) error { return f(ctx, batch) }

// NewContact flattens rec. It fails when the display name cannot be derived.
func NewContact(id string, rec *vcard.Record) (Contact, error) {
	name, err := rec.DisplayName()
	if err != nil {
		return Contact{}, err
	}
	c := Contact{ID: id, DisplayName: name, Line: rec.Line()}
	if phone, ok := rec.Phone(); ok {
		c.Phone = &phone
	}
	if email, ok := rec.Email(); ok {
		c.Email = &email
	}
	if note, ok := rec.Note(); ok {
		c.Note = &note
	}
	return c, nil
}

// Package csvexport serializes imported contacts as delimited text.
package csvexport

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"vcfimport/internal/importer"
)

// Options controls the CSV layout.
type Options struct {
	// Delimiter defaults to ','.
	Delimiter rune
	Header    bool
	// Fields lists column names in order. Defaults to DefaultFields.
	Fields []string
}

// DefaultFields is the column order used when Options.Fields is empty.
var DefaultFields = []string{"display_name", "phone", "email", "note"}

type column struct {
	name  string
	value func(importer.Contact) string
}

var columns = map[string]func(importer.Contact) string{
	"id":           func(c importer.Contact) string { return c.ID },
	"display_name": func(c importer.Contact) string { return c.DisplayName },
	"phone": func(c importer.Contact) string {
		if c.Phone == nil {
			return ""
		}
		return strconv.FormatInt(*c.Phone, 10)
	},
	"email": func(c importer.Contact) string { return deref(c.Email) },
	"note":  func(c importer.Contact) string { return deref(c.Note) },
	"line":  func(c importer.Contact) string { return strconv.Itoa(c.Line) },
}

// Writer is an importer.Sink that writes each batch as CSV rows.
type Writer struct {
	csv     *csv.Writer
	columns []column
	header  bool
	wrote   bool
}

// NewWriter validates opts and returns a Writer over w.
func NewWriter(w io.Writer, opts Options) (*Writer, error) {
	fields := opts.Fields
	if len(fields) == 0 {
		fields = DefaultFields
	}
	cols := make([]column, 0, len(fields))
	for _, name := range fields {
		value, ok := columns[name]
		if !ok {
			return nil, fmt.Errorf("csv export: unknown field %q", name)
		}
		cols = append(cols, column{name: name, value: value})
	}

	cw := csv.NewWriter(w)
	if opts.Delimiter != 0 {
		cw.Comma = opts.Delimiter
	}
	return &Writer{csv: cw, columns: cols, header: opts.Header}, nil
}

// Write emits the header once, then one row per contact, and flushes.
func (w *Writer) Write(ctx context.Context, batch importer.Batch) error {
	if w.header && !w.wrote {
		names := make([]string, len(w.columns))
		for i, col := range w.columns {
			names[i] = col.name
		}
		if err := w.csv.Write(names); err != nil {
			return fmt.Errorf("csv export: write header: %w", err)
		}
	}
	w.wrote = true

	row := make([]string, len(w.columns))
	for _, contact := range batch.Contacts {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i, col := range w.columns {
			row[i] = col.value(contact)
		}
		if err := w.csv.Write(row); err != nil {
			return fmt.Errorf("csv export: write contact at line %d: %w", contact.Line, err)
		}
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("csv export: flush: %w", err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

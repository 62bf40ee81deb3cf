package contactstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"vcfimport/internal/importer"
)

// Write persists batch as one import. It satisfies importer.Sink.
func (s *Store) Write(ctx context.Context, batch importer.Batch) error {
	if batch.ID == "" {
		return fmt.Errorf("write batch: missing batch id")
	}
	importedAt := time.Now().UTC().Format(timestampLayout)

	return s.withWriteLock(ctx, func() error {
		return retryOnBusy(ctx, func() error {
			return s.writeBatch(ctx, batch, importedAt)
		})
	})
}

func (s *Store) writeBatch(ctx context.Context, batch importer.Batch, importedAt string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO imports (id, source, imported_at, count) VALUES (?, ?, ?, ?)`,
		batch.ID, batch.Source, importedAt, len(batch.Contacts),
	); err != nil {
		return fmt.Errorf("insert import %s: %w", batch.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO contacts (
            id, import_id, position, display_name, phone, email, note, line_no
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare contact insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range batch.Contacts {
		if _, err := stmt.ExecContext(ctx,
			c.ID, batch.ID, i, c.DisplayName,
			nullableInt64(c.Phone), nullableString(c.Email), nullableString(c.Note), c.Line,
		); err != nil {
			return fmt.Errorf("insert contact %q: %w", c.DisplayName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import %s: %w", batch.ID, err)
	}
	return nil
}

// List returns stored contacts ordered by import time, then file order.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]StoredContact, error) {
	var (
		query strings.Builder
		args  []any
	)
	query.WriteString(`SELECT c.id, c.import_id, c.position, c.display_name, c.phone, c.email, c.note, c.line_no
        FROM contacts c JOIN imports i ON i.id = c.import_id`)
	if opts.ImportID != "" {
		query.WriteString(" WHERE c.import_id = ?")
		args = append(args, opts.ImportID)
	}
	query.WriteString(" ORDER BY i.imported_at, i.rowid, c.position")
	if opts.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var out []StoredContact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}
	return out, nil
}

// Imports returns every stored import, newest first.
func (s *Store) Imports(ctx context.Context) ([]Import, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, imported_at, count FROM imports ORDER BY imported_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list imports: %w", err)
	}
	defer rows.Close()

	var out []Import
	for rows.Next() {
		var (
			imp       Import
			timestamp string
		)
		if err := rows.Scan(&imp.ID, &imp.Source, &timestamp, &imp.Count); err != nil {
			return nil, fmt.Errorf("scan import: %w", err)
		}
		if imp.ImportedAt, err = time.Parse(timestampLayout, timestamp); err != nil {
			return nil, fmt.Errorf("parse imported_at for %s: %w", imp.ID, err)
		}
		out = append(out, imp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate imports: %w", err)
	}
	return out, nil
}

func scanContact(rows *sql.Rows) (StoredContact, error) {
	var (
		c     StoredContact
		phone sql.NullInt64
		email sql.NullString
		note  sql.NullString
	)
	if err := rows.Scan(&c.ID, &c.ImportID, &c.Position, &c.DisplayName, &phone, &email, &note, &c.Line); err != nil {
		return StoredContact{}, fmt.Errorf("scan contact: %w", err)
	}
	if phone.Valid {
		c.Phone = &phone.Int64
	}
	if email.Valid {
		c.Email = &email.String
	}
	if note.Valid {
		c.Note = &note.String
	}
	return c, nil
}

func nullableString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableInt64(value *int64) any {
	if value == nil {
		return nil
	}
	return *value
}

package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"vcfimport/internal/linesource"
	"vcfimport/internal/logging"
	"vcfimport/internal/vcard"
)

// Policy decides what happens to a record whose names cannot be reconciled.
type Policy string

const (
	// PolicyAbort fails the run on the first ambiguous name.
	PolicyAbort Policy = "abort"
	// PolicySkip drops the record, logs a warning, and keeps going.
	PolicySkip Policy = "skip"
)

// Source is a named line reader such as a *linesource.Source.
type Source interface {
	vcard.LineReader
	Name() string
}

// Options configures a run.
type Options struct {
	OnAmbiguousName Policy
	Logger          *slog.Logger
	Sinks           []Sink
	// NewID generates batch and contact identifiers. Defaults to random UUIDs.
	NewID func() string
}

// Result summarizes a completed run.
type Result struct {
	BatchID  string
	Source   string
	Contacts []Contact
	Parsed   int
	Skipped  int
}

// ImportFile opens path and runs it through Run.
func ImportFile(ctx context.Context, path string, opts Options) (Result, error) {
	src, err := linesource.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer src.Close()
	return Run(ctx, src, opts)
}

// Run parses every record from src, then writes the batch to each sink in
// order. Nothing reaches a sink unless the whole input parsed. The first
// sink error stops the remaining sinks; sinks already written are not
// rolled back.
func Run(ctx context.Context, src Source, opts Options) (Result, error) {
	policy := opts.OnAmbiguousName
	if policy == "" {
		policy = PolicyAbort
	}
	if policy != PolicyAbort && policy != PolicySkip {
		return Result{}, fmt.Errorf("importer: unknown ambiguous-name policy %q", policy)
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	logger := logging.NewComponentLogger(opts.Logger, "importer")

	result := Result{BatchID: newID(), Source: src.Name()}
	stream := vcard.NewStream(src, vcard.WithLogger(opts.Logger))

	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		rec, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("parse %s: %w", src.Name(), err)
		}
		result.Parsed++

		contact, err := NewContact(newID(), rec)
		if err != nil {
			if policy == PolicySkip && vcard.HasCode(err, vcard.CodeAmbiguousName) {
				result.Skipped++
				logger.Warn("contact skipped",
					logging.Int("line", rec.Line()),
					logging.Error(err),
				)
				continue
			}
			return Result{}, fmt.Errorf("parse %s: %w", src.Name(), err)
		}
		result.Contacts = append(result.Contacts, contact)
	}

	logger.Debug("input parsed",
		logging.String("source", result.Source),
		logging.Int("records", result.Parsed),
		logging.Int("skipped", result.Skipped),
	)

	batch := Batch{ID: result.BatchID, Source: result.Source, Contacts: result.Contacts}
	for _, sink := range opts.Sinks {
		if err := sink.Write(ctx, batch); err != nil {
			return Result{}, fmt.Errorf("write batch %s: %w", batch.ID, err)
		}
	}

	logger.Info("import finished",
		logging.String("source", result.Source),
		logging.Int("contacts", len(result.Contacts)),
		logging.Int("skipped", result.Skipped),
	)
	return result, nil
}

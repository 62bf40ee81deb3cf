package vcard

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"

	"vcfimport/internal/logging"
)

// Line is one non-empty input line with its 1-based physical line number.
type Line struct {
	No   int
	Text string
}

// LineReader yields input lines in order. Next reports false once input is
// exhausted or reading failed; Err distinguishes the two.
type LineReader interface {
	Next() (Line, bool)
	Err() error
}

type streamState int

const (
	stateAwaitingBlock streamState = iota
	stateInBlock
)

// Stream turns lines into records, one per BEGIN/END block, in input order.
// It is single-pass: once Next has returned an error (io.EOF included)
// every later call returns the same error.
type Stream struct {
	lines  LineReader
	logger *slog.Logger

	state     streamState
	current   *Record
	beginLine int
	opened    int
	emitted   int
	err       error
}

// StreamOption customizes a Stream.
type StreamOption func(*Stream)

// WithLogger routes per-block debug narration to logger.
func WithLogger(logger *slog.Logger) StreamOption {
	return func(s *Stream) {
		s.logger = logging.NewComponentLogger(logger, "vcard")
	}
}

// NewStream reads records from lines.
func NewStream(lines LineReader, opts ...StreamOption) *Stream {
	s := &Stream{lines: lines, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next returns the next completed record. It returns io.EOF when input ends
// between blocks, and an unterminated_block error when it ends inside one.
// Parse and record errors are returned as *Error values carrying the line
// number and raw line.
func (s *Stream) Next() (*Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	for {
		line, ok := s.lines.Next()
		if !ok {
			return nil, s.finish()
		}
		rec, err := s.consume(line)
		if err != nil {
			return nil, s.fail(err)
		}
		if rec != nil {
			return rec, nil
		}
	}
}

// All adapts the stream to a range-over-func sequence. Iteration stops after
// the first error is yielded; io.EOF is not yielded.
func (s *Stream) All() iter.Seq2[*Record, error] {
	return func(yield func(*Record, error) bool) {
		for {
			rec, err := s.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}

// Emitted returns the number of records handed out so far.
func (s *Stream) Emitted() int { return s.emitted }

func (s *Stream) finish() error {
	if err := s.lines.Err(); err != nil {
		return s.fail(fmt.Errorf("read input: %w", err))
	}
	if s.state == stateInBlock {
		return s.fail(&Error{
			Code:    CodeUnterminatedBlock,
			LineNo:  s.beginLine,
			Message: "input ended inside a block opened here",
		})
	}
	s.logger.Debug("input exhausted", logging.Int("records", s.emitted))
	return s.fail(io.EOF)
}

func (s *Stream) fail(err error) error {
	s.err = err
	s.current = nil
	return err
}

func (s *Stream) consume(line Line) (*Record, error) {
	parsed, err := ParseLine(line.Text)
	if err != nil {
		return nil, atLine(err, line.No)
	}

	switch parsed.Kind {
	case KindBegin:
		if s.state == stateInBlock {
			return nil, atLine(malformed(line.Text, fmt.Sprintf("block opened at line %d was not closed", s.beginLine)), line.No)
		}
		s.opened++
		s.state = stateInBlock
		s.beginLine = line.No
		s.current = NewRecord()
		s.current.line = line.No
		s.logger.Debug("contact started", logging.Int("contact", s.opened), logging.Int("line", line.No))
		return nil, nil

	case KindVersion:
		return nil, nil

	case KindEnd:
		if s.state != stateInBlock {
			return nil, atLine(malformed(line.Text, "block end without a matching begin"), line.No)
		}
		rec := s.current
		rec.Seal()
		s.current = nil
		s.state = stateAwaitingBlock
		s.emitted++
		s.logger.Debug("contact completed", logging.Int("contact", s.opened), logging.Int("line", line.No))
		return rec, nil

	case KindName, KindNameEncoded, KindFormattedName, KindFormattedNameEncoded,
		KindPhone, KindNoteEncoded, KindEmail:
		if s.state != stateInBlock {
			return nil, atLine(malformed(line.Text, fmt.Sprintf("%s line outside a block", parsed.Kind)), line.No)
		}
		if err := s.current.Apply(parsed); err != nil {
			return nil, withLine(err, line)
		}
		s.logger.Debug("field decoded", logging.String("kind", parsed.Kind.String()), logging.Int("line", line.No))
		return nil, nil

	case KindNone:
		return nil, atLine(malformed(line.Text, "unrecognized line"), line.No)

	default:
		return nil, fmt.Errorf("line %d: unhandled kind %d", line.No, int(parsed.Kind))
	}
}

// withLine attaches both the line number and the raw line to a record error
// so field conflicts point at the offending input.
func withLine(err error, line Line) error {
	var e *Error
	if !errors.As(err, &e) {
		return fmt.Errorf("line %d: %w", line.No, err)
	}
	clone := *e
	if clone.LineNo == 0 {
		clone.LineNo = line.No
	}
	if clone.Line == "" {
		clone.Line = line.Text
	}
	return &clone
}

// Package linesource feeds physical input lines to a vcard.Stream.
//
// Lines keep their 1-based physical numbers. Empty lines are skipped but
// still counted, a trailing carriage return is removed, and a leading
// UTF-8 byte order mark is dropped.
package linesource

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"vcfimport/internal/vcard"
)

const maxLineBytes = 1 << 20

// Source reads lines from a file or reader. It satisfies vcard.LineReader.
type Source struct {
	name    string
	scanner *bufio.Scanner
	closer  io.Closer
	lineNo  int
	err     error
}

// Open returns a Source over the file at path. A missing path or one that
// is not a regular file yields a not_found error.
func Open(path string) (*Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &vcard.Error{
				Code:    vcard.CodeNotFound,
				Message: fmt.Sprintf("input %s does not exist", path),
				Err:     err,
			}
		}
		return nil, fmt.Errorf("stat input: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, &vcard.Error{
			Code:    vcard.CodeNotFound,
			Message: fmt.Sprintf("input %s is not a regular file", path),
		}
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	src := New(file, path)
	src.closer = file
	return src, nil
}

// New returns a Source over r. name is used in error messages only.
func New(r io.Reader, name string) *Source {
	decoded := transform.NewReader(r, unicode.BOMOverride(transform.Nop))
	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &Source{name: name, scanner: scanner}
}

// Name returns the path or label the source was created with.
func (s *Source) Name() string { return s.name }

// Next returns the next non-empty line. It reports false at end of input
// or after a read failure; check Err to tell them apart.
func (s *Source) Next() (vcard.Line, bool) {
	if s.err != nil {
		return vcard.Line{}, false
	}
	for s.scanner.Scan() {
		s.lineNo++
		text := strings.TrimSuffix(s.scanner.Text(), "\r")
		if text == "" {
			continue
		}
		if !utf8.ValidString(text) {
			s.err = &vcard.Error{
				Code:    vcard.CodeMalformedLine,
				LineNo:  s.lineNo,
				Message: "line is not valid UTF-8",
			}
			return vcard.Line{}, false
		}
		return vcard.Line{No: s.lineNo, Text: text}, true
	}
	if err := s.scanner.Err(); err != nil {
		s.err = fmt.Errorf("read %s after line %d: %w", s.name, s.lineNo, err)
	}
	return vcard.Line{}, false
}

// Err returns the first read or decoding failure, or nil at clean end of input.
func (s *Source) Err() error { return s.err }

// Close releases the underlying file when the source owns one.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

package vcard

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const upperHex = "0123456789ABCDEF"

// DecodeQuotedPrintable decodes =XX escapes and requires the resulting bytes
// to be valid UTF-8. Unlike mime/quotedprintable it rejects malformed
// escapes instead of passing them through. A lone trailing '=' is a soft
// line break and is dropped.
func DecodeQuotedPrintable(s string) (string, error) {
	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '=' {
			buf = append(buf, c)
			continue
		}
		if i == len(s)-1 {
			break
		}
		if i+2 >= len(s) {
			return "", fmt.Errorf("truncated escape %q at offset %d", s[i:], i)
		}
		hi, okHi := unhex(s[i+1])
		lo, okLo := unhex(s[i+2])
		if !okHi || !okLo {
			return "", fmt.Errorf("invalid escape %q at offset %d", s[i:i+3], i)
		}
		buf = append(buf, hi<<4|lo)
		i += 2
	}
	if !utf8.Valid(buf) {
		return "", fmt.Errorf("decoded value is not valid UTF-8")
	}
	return string(buf), nil
}

// EncodeQuotedPrintable is the inverse of DecodeQuotedPrintable. Printable
// ASCII passes through except '=' and ';'; a trailing space is escaped so
// line trimming cannot drop it.
func EncodeQuotedPrintable(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ' && i < len(s)-1:
			b.WriteByte(c)
		case c > ' ' && c <= '~' && c != '=' && c != ';':
			b.WriteByte(c)
		default:
			b.WriteByte('=')
			b.WriteByte(upperHex[c>>4])
			b.WriteByte(upperHex[c&0x0f])
		}
	}
	return b.String()
}

func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	default:
		return 0, false
	}
}

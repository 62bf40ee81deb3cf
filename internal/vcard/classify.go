package vcard

import (
	"fmt"
	"strings"
)

// ParsedLine is a classified line with its value extracted and decoded.
type ParsedLine struct {
	Kind  Kind
	Value string
}

// Classify returns the kind of the first table entry matching line, or
// KindNone when nothing matches.
func Classify(line string) Kind {
	for _, p := range patterns {
		if p.re.MatchString(line) {
			return p.kind
		}
	}
	return KindNone
}

// Extract pulls the value of kind out of line, decoding it when the kind is
// quoted-printable. Kinds without a value yield "".
func Extract(line string, kind Kind) (string, error) {
	re := patternFor(kind)
	if re == nil {
		return "", malformed(line, fmt.Sprintf("no pattern for kind %s", kind))
	}
	m := re.FindStringSubmatch(line)
	if m == nil {
		return "", malformed(line, fmt.Sprintf("line is not a %s line", kind))
	}
	if !kind.Valued() {
		return "", nil
	}
	raw := m[len(m)-1]
	if !kind.Encoded() {
		return raw, nil
	}
	decoded, err := DecodeQuotedPrintable(raw)
	if err != nil {
		return "", &Error{
			Code:    CodeMalformedLine,
			Line:    line,
			Message: fmt.Sprintf("decode %s value", kind),
			Err:     err,
		}
	}
	return decoded, nil
}

// ParseLine classifies and extracts a line in one step. An unrecognized
// line is a malformed_line error; there is no lenient mode.
func ParseLine(line string) (ParsedLine, error) {
	kind := Classify(line)
	if kind == KindNone {
		return ParsedLine{}, malformed(line, "unrecognized line")
	}
	value, err := Extract(line, kind)
	if err != nil {
		return ParsedLine{}, err
	}
	return ParsedLine{Kind: kind, Value: value}, nil
}

// FormatLine renders value as a canonical line of the given kind. Encoded
// kinds emit the CHARSET=UTF-8;ENCODING=QUOTED-PRINTABLE form; phones use
// the CELL category. The version value defaults to 2.1.
func FormatLine(kind Kind, value string) (string, error) {
	switch kind {
	case KindBegin:
		return "BEGIN:VCARD", nil
	case KindEnd:
		return "END:VCARD", nil
	case KindVersion:
		if value == "" {
			value = "2.1"
		}
		return "VERSION:" + value, nil
	case KindName:
		return "N:" + value + ";;;", nil
	case KindNameEncoded:
		return "N;CHARSET=UTF-8;ENCODING=QUOTED-PRINTABLE:" + EncodeQuotedPrintable(value) + ";;;", nil
	case KindFormattedName:
		return "FN:" + value, nil
	case KindFormattedNameEncoded:
		return "FN;CHARSET=UTF-8;ENCODING=QUOTED-PRINTABLE:" + EncodeQuotedPrintable(value), nil
	case KindPhone:
		return "TEL;CELL:" + strings.TrimPrefix(value, "+"), nil
	case KindNoteEncoded:
		return "NOTE;CHARSET=UTF-8;ENCODING=QUOTED-PRINTABLE:" + EncodeQuotedPrintable(value), nil
	case KindEmail:
		return "EMAIL;HOME:" + value, nil
	default:
		return "", fmt.Errorf("format line: unsupported kind %s", kind)
	}
}

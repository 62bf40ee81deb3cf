package vcard

import "regexp"

// Kind identifies which line shape a line of input encodes.
type Kind int

const (
	// KindNone means the line matched no known shape.
	KindNone Kind = iota
	KindBegin
	KindVersion
	KindName
	KindNameEncoded
	KindFormattedName
	KindFormattedNameEncoded
	KindPhone
	KindNoteEncoded
	KindEmail
	KindEnd
)

var kindNames = map[Kind]string{
	KindNone:                 "none",
	KindBegin:                "begin",
	KindVersion:              "version",
	KindName:                 "name",
	KindNameEncoded:          "name_encoded",
	KindFormattedName:        "formatted_name",
	KindFormattedNameEncoded: "formatted_name_encoded",
	KindPhone:                "phone",
	KindNoteEncoded:          "note_encoded",
	KindEmail:                "email",
	KindEnd:                  "end",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Encoded reports whether values of this kind are quoted-printable on the wire.
func (k Kind) Encoded() bool {
	switch k {
	case KindNameEncoded, KindFormattedNameEncoded, KindNoteEncoded:
		return true
	default:
		return false
	}
}

// Valued reports whether lines of this kind carry a field value.
func (k Kind) Valued() bool {
	switch k {
	case KindNone, KindBegin, KindVersion, KindEnd:
		return false
	default:
		return true
	}
}

// Field returns the record field a value of this kind is written to, or ""
// for structural kinds.
func (k Kind) Field() Field {
	switch k {
	case KindName, KindNameEncoded:
		return FieldStructuredName
	case KindFormattedName, KindFormattedNameEncoded:
		return FieldFormattedName
	case KindPhone:
		return FieldPhone
	case KindNoteEncoded:
		return FieldNote
	case KindEmail:
		return FieldEmail
	default:
		return ""
	}
}

// Phone categories accepted on TEL lines. The category is validated but not kept.
var PhoneCategories = []string{"CELL", "HOME", "X-Casa"}

type pattern struct {
	kind Kind
	re   *regexp.Regexp
}

// patterns is the closed line table. Every entry is anchored on a distinct
// literal prefix so no line can match two entries. The value, where there
// is one, is always the last capture group.
var patterns = []pattern{
	{KindBegin, regexp.MustCompile(`^BEGIN:VCARD$`)},
	{KindVersion, regexp.MustCompile(`^VERSION:(\d+\.\d+)$`)},
	{KindName, regexp.MustCompile(`^N:;?(.*?);{2,3}$`)},
	{KindNameEncoded, regexp.MustCompile(`^N;CHARSET=UTF-8;ENCODING=QUOTED-PRINTABLE:;?(.*?);*$`)},
	{KindFormattedName, regexp.MustCompile(`^FN:(.*?)$`)},
	{KindFormattedNameEncoded, regexp.MustCompile(`^FN;CHARSET=UTF-8;ENCODING=QUOTED-PRINTABLE:(.*?)$`)},
	{KindPhone, regexp.MustCompile(`^TEL;(CELL|HOME|X-Casa):\+?(\d+)$`)},
	{KindNoteEncoded, regexp.MustCompile(`^NOTE;(CHARSET=UTF-8;)?ENCODING=QUOTED-PRINTABLE:(.*?)$`)},
	{KindEmail, regexp.MustCompile(`^EMAIL;HOME:(.*?)$`)},
	{KindEnd, regexp.MustCompile(`^END:VCARD$`)},
}

func patternFor(kind Kind) *regexp.Regexp {
	for _, p := range patterns {
		if p.kind == kind {
			return p.re
		}
	}
	return nil
}

package vcard

import (
	"fmt"
	"regexp"
	"strings"
)

// Field names a settable record field in errors and logs.
type Field string

const (
	FieldEmail          Field = "email"
	FieldStructuredName Field = "structured_name"
	FieldFormattedName  Field = "formatted_name"
	FieldNote           Field = "note"
	FieldPhone          Field = "phone"
	FieldDisplayName    Field = "display_name"
)

var emailPattern = regexp.MustCompile(`^.+@.+\..+$`)

// Record accumulates the fields of one contact block. Every field is
// single-assignment; the phone also accepts repeats of the same number.
// Once sealed the record is read-only.
type Record struct {
	email          SetOnce[string]
	structuredName SetOnce[string]
	formattedName  SetOnce[string]
	note           SetOnce[string]
	phone          SetOnce[int64]

	line   int
	sealed bool
}

// NewRecord returns an empty, writable record.
func NewRecord() *Record {
	return &Record{}
}

// SetEmail trims and assigns the email address.
func (r *Record) SetEmail(value string) error {
	if err := r.checkWritable(FieldEmail, &r.email); err != nil {
		return err
	}
	value, err := nonEmpty(FieldEmail, value)
	if err != nil {
		return err
	}
	if !emailPattern.MatchString(value) {
		return &Error{
			Code:    CodeInvalidFieldValue,
			Field:   FieldEmail,
			Message: fmt.Sprintf("email %q is not an address", value),
		}
	}
	return r.email.Set(value)
}

// SetStructuredName trims and assigns the structured (N) name.
func (r *Record) SetStructuredName(value string) error {
	return r.setString(FieldStructuredName, &r.structuredName, value)
}

// SetFormattedName trims and assigns the formatted (FN) name.
func (r *Record) SetFormattedName(value string) error {
	return r.setString(FieldFormattedName, &r.formattedName, value)
}

// SetNote trims and assigns the note.
func (r *Record) SetNote(value string) error {
	return r.setString(FieldNote, &r.note, value)
}

// SetPhone normalizes raw and assigns it. Assigning the same normalized
// number again is a no-op; a different number is a conflict.
func (r *Record) SetPhone(raw string) error {
	if r.sealed {
		return sealedError(FieldPhone)
	}
	n, err := NormalizePhone(raw)
	if err != nil {
		return err
	}
	if err := r.phone.SetIdempotent(n); err != nil {
		prev, _ := r.phone.Get()
		return &Error{
			Code:    CodeFieldConflict,
			Field:   FieldPhone,
			Message: fmt.Sprintf("phone already set to %d, got %d", prev, n),
			Err:     err,
		}
	}
	return nil
}

// Email returns the email address, if set.
func (r *Record) Email() (string, bool) { return r.email.Get() }

// Note returns the note, if set.
func (r *Record) Note() (string, bool) { return r.note.Get() }

// Phone returns the normalized phone number, if set.
func (r *Record) Phone() (int64, bool) { return r.phone.Get() }

// StructuredName returns the raw structured (N) name, if set.
func (r *Record) StructuredName() (string, bool) { return r.structuredName.Get() }

// FormattedName returns the raw formatted (FN) name, if set.
func (r *Record) FormattedName() (string, bool) { return r.formattedName.Get() }

// DisplayName reconciles the structured and formatted names. Both must be
// set; a missing one is a field_unset error, distinct from ambiguous_name.
func (r *Record) DisplayName() (string, error) {
	structured, ok := r.structuredName.Get()
	if !ok {
		return "", r.unset(FieldStructuredName)
	}
	formatted, ok := r.formattedName.Get()
	if !ok {
		return "", r.unset(FieldFormattedName)
	}
	name, err := ReconcileNames(structured, formatted)
	if err != nil {
		return "", atLine(err, r.line)
	}
	return name, nil
}

// Line is the physical line number of the block's BEGIN marker, or 0 for
// records built by hand.
func (r *Record) Line() int { return r.line }

// Seal makes the record read-only. Further setter calls fail.
func (r *Record) Seal() { r.sealed = true }

// Sealed reports whether the record has been sealed.
func (r *Record) Sealed() bool { return r.sealed }

// Apply routes a parsed line's value to the field its kind targets.
func (r *Record) Apply(parsed ParsedLine) error {
	switch parsed.Kind {
	case KindName, KindNameEncoded:
		return r.SetStructuredName(parsed.Value)
	case KindFormattedName, KindFormattedNameEncoded:
		return r.SetFormattedName(parsed.Value)
	case KindPhone:
		return r.SetPhone(parsed.Value)
	case KindNoteEncoded:
		return r.SetNote(parsed.Value)
	case KindEmail:
		return r.SetEmail(parsed.Value)
	case KindNone, KindBegin, KindVersion, KindEnd:
		return fmt.Errorf("apply: kind %s carries no field value", parsed.Kind)
	default:
		return fmt.Errorf("apply: unknown kind %d", int(parsed.Kind))
	}
}

func (r *Record) String() string {
	var b strings.Builder
	b.WriteString("Record{")
	writeOpt := func(name string, value string, ok bool) {
		if ok {
			fmt.Fprintf(&b, "%s=%q ", name, value)
		} else {
			fmt.Fprintf(&b, "%s=<unset> ", name)
		}
	}
	email, ok := r.Email()
	writeOpt("email", email, ok)
	structured, ok := r.StructuredName()
	writeOpt("structured_name", structured, ok)
	formatted, ok := r.FormattedName()
	writeOpt("formatted_name", formatted, ok)
	note, ok := r.Note()
	writeOpt("note", note, ok)
	if phone, ok := r.Phone(); ok {
		fmt.Fprintf(&b, "phone=%d", phone)
	} else {
		b.WriteString("phone=<unset>")
	}
	b.WriteString("}")
	return b.String()
}

func (r *Record) setString(field Field, slot *SetOnce[string], value string) error {
	if err := r.checkWritable(field, slot); err != nil {
		return err
	}
	value, err := nonEmpty(field, value)
	if err != nil {
		return err
	}
	return slot.Set(value)
}

func (r *Record) checkWritable(field Field, slot *SetOnce[string]) error {
	if r.sealed {
		return sealedError(field)
	}
	if prev, ok := slot.Get(); ok {
		return &Error{
			Code:    CodeFieldConflict,
			Field:   field,
			Message: fmt.Sprintf("%s already set to %q", field, prev),
			Err:     errAlreadySet,
		}
	}
	return nil
}

func (r *Record) unset(field Field) error {
	return &Error{
		Code:    CodeFieldUnset,
		Field:   field,
		LineNo:  r.line,
		Message: fmt.Sprintf("%s is not set", field),
	}
}

func sealedError(field Field) error {
	return &Error{
		Code:    CodeFieldConflict,
		Field:   field,
		Message: fmt.Sprintf("cannot set %s: record already emitted", field),
	}
}

func nonEmpty(field Field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", &Error{
			Code:    CodeInvalidFieldValue,
			Field:   field,
			Message: fmt.Sprintf("%s is empty", field),
		}
	}
	return value, nil
}

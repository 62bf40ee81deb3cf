package vcard

import (
	"fmt"
	"strconv"
	"strings"
)

// spainCountryCode is the only country prefix stripped by NormalizePhone.
const spainCountryCode = "34"

// NormalizePhone turns a phone payload into its numeric form. A single
// leading '+' is dropped, then a leading "34" is dropped when more than
// nine digits remain. Leading zeros do not survive the integer form.
func NormalizePhone(raw string) (int64, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, &Error{Code: CodeInvalidFieldValue, Field: FieldPhone, Message: "phone is empty"}
	}
	value = strings.TrimPrefix(value, "+")
	if strings.HasPrefix(value, spainCountryCode) && len(value) > 9 {
		value = value[len(spainCountryCode):]
	}
	if value == "" || strings.IndexFunc(value, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0, &Error{
			Code:    CodeInvalidFieldValue,
			Field:   FieldPhone,
			Message: fmt.Sprintf("phone %q is not numeric", raw),
		}
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, &Error{
			Code:    CodeInvalidFieldValue,
			Field:   FieldPhone,
			Message: fmt.Sprintf("phone %q out of range", raw),
			Err:     err,
		}
	}
	return n, nil
}

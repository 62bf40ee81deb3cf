package vcard

import (
	"fmt"
	"strings"
)

// ReconcileNames derives one display name from the structured (N) and
// formatted (FN) names of a record.
//
// When one string contains the other, the longer one wins. Otherwise both
// are split into words, with ';' in the structured name acting as a word
// separator. If every word of one side appears somewhere in the other, the
// side with more words wins, and ties go to the formatted name. The
// structured name is returned as written, separators included. Anything
// else is an ambiguous_name error.
func ReconcileNames(structured, formatted string) (string, error) {
	if strings.Contains(formatted, structured) {
		return formatted, nil
	}
	if strings.Contains(structured, formatted) {
		return structured, nil
	}

	structuredWords := strings.Fields(strings.ReplaceAll(structured, ";", " "))
	formattedWords := strings.Fields(formatted)

	if !containsAll(formattedWords, structuredWords) && !containsAll(structuredWords, formattedWords) {
		return "", &Error{
			Code:    CodeAmbiguousName,
			Field:   FieldDisplayName,
			Message: fmt.Sprintf("cannot reconcile structured name %q with formatted name %q", structured, formatted),
		}
	}
	if len(structuredWords) > len(formattedWords) {
		return structured, nil
	}
	return formatted, nil
}

// containsAll reports whether every word in want appears in have.
// Multiplicity and order are ignored.
func containsAll(have, want []string) bool {
	set := make(map[string]struct{}, len(have))
	for _, w := range have {
		set[w] = struct{}{}
	}
	for _, w := range want {
		if _, ok := set[w]; !ok {
			return false
		}
	}
	return true
}

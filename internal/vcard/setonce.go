package vcard

import "errors"

var (
	errAlreadySet    = errors.New("value already set")
	errValueMismatch = errors.New("value differs from the one already set")
)

// SetOnce holds a value that transitions from unset to set exactly once.
// The zero value is unset and ready to use.
type SetOnce[T comparable] struct {
	value T
	set   bool
}

// Set assigns v. A second call fails regardless of the value.
func (s *SetOnce[T]) Set(v T) error {
	if s.set {
		return errAlreadySet
	}
	s.value = v
	s.set = true
	return nil
}

// SetIdempotent assigns v, accepting repeat assignments of an equal value.
func (s *SetOnce[T]) SetIdempotent(v T) error {
	if s.set {
		if s.value != v {
			return errValueMismatch
		}
		return nil
	}
	s.value = v
	s.set = true
	return nil
}

// Get returns the value and whether it has been set.
func (s *SetOnce[T]) Get() (T, bool) {
	return s.value, s.set
}

// IsSet reports whether a value has been assigned.
func (s *SetOnce[T]) IsSet() bool {
	return s.set
}

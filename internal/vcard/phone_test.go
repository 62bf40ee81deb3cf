package vcard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
	}{
		{"600111222", 600111222},
		{"+34600111222", 600111222},
		{"+600111222", 600111222},
		{"34600111222", 600111222},
		{"346001112", 346001112},
		{"1004", 1004},
		{"0034600111222", 34600111222},
		{" 600111222 ", 600111222},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := NormalizePhone(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizePhoneIsIdempotent(t *testing.T) {
	first, err := NormalizePhone("+34600111222")
	require.NoError(t, err)
	second, err := NormalizePhone("600111222")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNormalizePhoneRejectsInvalid(t *testing.T) {
	for _, raw := range []string{"", "  ", "+", "++600", "600 111", "6001a", "-600", "99999999999999999999"} {
		t.Run(raw, func(t *testing.T) {
			_, err := NormalizePhone(raw)
			require.ErrorIs(t, err, ErrInvalidFieldValue)

			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, FieldPhone, verr.Field)
		})
	}
}

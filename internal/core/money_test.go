package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		out  string
		want error
	}{
		{"1", "1", nil},
		{"1.0", "1", nil},
		{"1.23", "1.23", nil},
		{"1,23", "1.23", nil},
		{"0.01", "0.01", nil},
		{" 2.50 ", "2.5", nil},
		{"-5", "", ErrNonPositiveAmount},
		{"0", "", ErrNonPositiveAmount},
		{"0.00", "", ErrNonPositiveAmount},
		{"abc", "", ErrInvalidAmount},
		{"1.2.3", "", ErrInvalidAmount},
		{"", "", ErrInvalidAmount},
		{"   ", "", ErrInvalidAmount},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.want != nil {
			assert.ErrorIs(t, err, tc.want, "%q", tc.in)
			continue
		}
		require.NoError(t, err, "%q", tc.in)
		assert.True(t, got.Equal(decimal.RequireFromString(tc.out)), "%q expected %s, got %s", tc.in, tc.out, got)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "₹116.67", FormatAmount("₹", decimal.RequireFromString("116.666")))
	assert.Equal(t, "$5.00", FormatAmount("$", decimal.NewFromInt(5)))
}

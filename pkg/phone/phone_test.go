package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	n := NewNormalizer("IN")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already e164", "+919999999999", "+919999999999"},
		{"national with region", "9999999999", "+919999999999"},
		{"spaces and dashes", "+91 99999-99999", "+919999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.Normalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Invalid(t *testing.T) {
	n := NewNormalizer("")

	for _, in := range []string{"", "   ", "abc", "+91123"} {
		_, err := n.Normalize(in)
		assert.ErrorIs(t, err, ErrInvalidNumber, in)
	}
}

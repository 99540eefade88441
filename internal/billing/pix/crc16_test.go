package pix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRC16KnownVectors(t *testing.T) {
	// Reference values for CRC16/CCITT-FALSE.
	cases := []struct {
		in   string
		want string
	}{
		{"", "FFFF"},
		{"123456789", "29B1"},
		{"A", "B915"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, CRC16(tc.in))
		})
	}
}

func TestCRC16UppercasePadded(t *testing.T) {
	for _, in := range []string{"", "a", "br.gov.bcb.pix", "000201"} {
		got := CRC16(in)
		assert.Len(t, got, 4)
		assert.Equal(t, got, CRC16(in), "deterministic")
		for _, r := range got {
			assert.Contains(t, "0123456789ABCDEF", string(r))
		}
	}
}

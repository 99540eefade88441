package boleto

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeStructure(t *testing.T) {
	s := NewWithSource(rand.NewSource(1))

	line := s.Synthesize("1049583716243952713", 1, 12)
	require.Len(t, line, LineLength)
	assert.True(t, Valid(line))
	assert.True(t, strings.HasPrefix(line, "34191"))
	assert.Equal(t, "10495", line[5:10])
	assert.Equal(t, "01", line[10:12])
}

func TestSynthesizeReferenceMapping(t *testing.T) {
	s := NewWithSource(rand.NewSource(1))

	// Non-numeric characters map to '9'.
	line := s.Synthesize("ab1cd", 3, 3)
	assert.Equal(t, "99199", line[5:10])

	// Short references left-pad with zeros.
	line = s.Synthesize("42", 3, 3)
	assert.Equal(t, "00042", line[5:10])

	line = s.Synthesize("", 1, 1)
	assert.Equal(t, "00000", line[5:10])
	assert.True(t, Valid(line))
}

func TestSynthesizeInstallmentBounds(t *testing.T) {
	s := NewWithSource(rand.NewSource(7))
	assert.Equal(t, "01", s.Synthesize("1", 0, 1)[10:12])
	assert.Equal(t, "99", s.Synthesize("1", 150, 150)[10:12])
	assert.Equal(t, "07", s.Synthesize("1", 7, 12)[10:12])
}

func TestValidDetectsCorruption(t *testing.T) {
	s := NewWithSource(rand.NewSource(99))
	fresh := s.Synthesize("20384", 2, 6)

	// A freshly synthesized line always validates, so the self-healing
	// path cannot loop.
	require.True(t, Valid(fresh))

	assert.False(t, Valid(""))
	assert.False(t, Valid(fresh[:46]))
	assert.False(t, Valid(fresh+"0"))
	assert.False(t, Valid("${installment.value}"+fresh[20:]))
	assert.False(t, Valid(strings.Replace(fresh, "3", "x", 1)))
}

func TestToBarcodeReordering(t *testing.T) {
	line := "01234567890123456789012345678901234567890123456"
	require.Len(t, line, 47)

	got := ToBarcode(line)
	require.Len(t, got, BarcodeLength)
	want := line[0:4] + line[32:33] + line[33:47] + line[4:9] + line[10:20] + line[21:31]
	assert.Equal(t, want, got)

	// Deterministic: same input, same output.
	assert.Equal(t, got, ToBarcode(line))

	// 44-digit input passes through untouched.
	assert.Equal(t, got, ToBarcode(got))
}

func TestToBarcodeFallback(t *testing.T) {
	short := "12345"
	got := ToBarcode(short)
	assert.Len(t, got, BarcodeLength)
	assert.True(t, strings.HasPrefix(got, short))

	long := strings.Repeat("7", 60)
	assert.Equal(t, strings.Repeat("7", 44), ToBarcode(long))
}

func TestSynthesizedLineRoundTrip(t *testing.T) {
	s := NewWithSource(rand.NewSource(3))
	line := s.Synthesize("555", 4, 10)
	encoded := ToBarcode(line)
	assert.Len(t, encoded, BarcodeLength)
	for i := 0; i < len(encoded); i++ {
		assert.GreaterOrEqual(t, encoded[i], byte('0'))
		assert.LessOrEqual(t, encoded[i], byte('9'))
	}
}

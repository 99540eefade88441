// Package boleto synthesizes placeholder "linha digitável" strings for
// advertiser carnets and reorders them into the 44-digit encoding the
// barcode renderer consumes.
//
// Synthesized lines carry no bank-certified check digits. They are
// reference artifacts for rendering and reconciliation only and must
// never be presented as payable boletos without a disclaimer.
package boleto

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const (
	// Febraban bank 341 + currency 9 + free digit 1. Cosmetic only.
	linePrefix = "34191"

	LineLength    = 47
	BarcodeLength = 44

	refSegmentLen = 5
)

// Synthesizer generates placeholder lines. The filler digits are random;
// injecting a seeded source keeps tests deterministic.
type Synthesizer struct {
	rng *rand.Rand
}

func New() *Synthesizer {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

func NewWithSource(src rand.Source) *Synthesizer {
	return &Synthesizer{rng: rand.New(src)}
}

// Synthesize builds a 47-digit line from a reference id and the
// one-based installment index.
func (s *Synthesizer) Synthesize(referenceID string, installment, totalInstallments int) string {
	if installment < 1 {
		installment = 1
	}
	if installment > 99 {
		installment = 99
	}
	_ = totalInstallments

	var b strings.Builder
	b.Grow(LineLength)
	b.WriteString(linePrefix)
	b.WriteString(refSegment(referenceID))
	b.WriteString(fmt.Sprintf("%02d", installment))
	for b.Len() < LineLength {
		b.WriteByte(byte('0' + s.rng.Intn(10)))
	}
	return b.String()
}

// refSegment maps a free-form reference id onto five digits. Non-numeric
// characters become '9'; short ids left-pad with zeros.
func refSegment(referenceID string) string {
	cleaned := make([]byte, 0, refSegmentLen)
	for i := 0; i < len(referenceID) && len(cleaned) < refSegmentLen; i++ {
		c := referenceID[i]
		if c >= '0' && c <= '9' {
			cleaned = append(cleaned, c)
		} else {
			cleaned = append(cleaned, '9')
		}
	}
	for len(cleaned) < refSegmentLen {
		cleaned = append([]byte{'0'}, cleaned...)
	}
	return string(cleaned)
}

// Valid reports whether a stored line is renderable: exactly 47 digits,
// digits only. Anything else (including template artifacts from older
// portal versions that leaked code fragments into the column) counts as
// corrupted and triggers regeneration.
func Valid(line string) bool {
	if len(line) != LineLength {
		return false
	}
	for i := 0; i < len(line); i++ {
		if line[i] < '0' || line[i] > '9' {
			return false
		}
	}
	return true
}

// ToBarcode reorders a 47-digit line into the 44-digit raw encoding
// (positions 0:4, 32, 33:47, 4:9, 10:20, 21:31). A 44-digit input passes
// through. Anything else pads or truncates to 44 so rendering degrades
// instead of failing.
func ToBarcode(line string) string {
	switch len(line) {
	case LineLength:
		return line[0:4] + line[32:33] + line[33:47] + line[4:9] + line[10:20] + line[21:31]
	case BarcodeLength:
		return line
	default:
		if len(line) > BarcodeLength {
			return line[:BarcodeLength]
		}
		return line + strings.Repeat("0", BarcodeLength-len(line))
	}
}

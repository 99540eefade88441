// Package pix builds static BR Code (EMV MPM) payloads for Pix charges.
// https://www.bcb.gov.br/content/estabilidadefinanceira/spb_docs/ManualBRCode.pdf.
package pix

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/unidecode"
	"github.com/shopspring/decimal"
)

const (
	maxMerchantName = 25
	maxMerchantCity = 15
	maxTxID         = 25

	gui             = "br.gov.bcb.pix"
	currencyBRL     = "986"
	countryBR       = "BR"
	defaultTxID     = "***"
	crcHeader       = "6304"
)

var ErrMissingKey = errors.New("pix_key_not_configured")

// Charge holds the inputs for a static Pix payload.
type Charge struct {
	Key          string
	MerchantName string
	MerchantCity string
	// Amount is embedded as tag 54 when positive. A zero amount omits the
	// tag entirely, which paying apps treat as an open-amount charge.
	Amount decimal.Decimal
	TxID   string
}

// Payload assembles the complete copy-and-paste string, CRC included.
// It fails when no merchant key is configured rather than emitting a
// partial payload.
func Payload(c Charge) (string, error) {
	key := strings.TrimSpace(c.Key)
	if key == "" {
		return "", ErrMissingKey
	}

	var b strings.Builder
	b.WriteString(tlv("00", "01"))
	b.WriteString(tlv("01", "12"))
	b.WriteString(tlv("26", tlv("00", gui)+tlv("01", key)))
	b.WriteString(tlv("52", "0000"))
	b.WriteString(tlv("53", currencyBRL))
	if c.Amount.IsPositive() {
		b.WriteString(tlv("54", c.Amount.StringFixed(2)))
	}
	b.WriteString(tlv("58", countryBR))
	b.WriteString(tlv("59", truncateUpper(c.MerchantName, maxMerchantName)))
	b.WriteString(tlv("60", truncateUpper(c.MerchantCity, maxMerchantCity)))
	b.WriteString(tlv("62", tlv("05", txid(c.TxID))))
	b.WriteString(crcHeader)

	payload := b.String()
	return payload + CRC16(payload), nil
}

// tlv encodes one ID + two-digit length + value tuple. Lengths count
// characters; merchant fields are transliterated to upper-cased ASCII
// first so the character count matches the byte count.
func tlv(id, value string) string {
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

func txid(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return defaultTxID
	}
	if len(v) > maxTxID {
		v = v[:maxTxID]
	}
	return v
}

func truncateUpper(v string, max int) string {
	v = strings.TrimSpace(unidecode.Unidecode(v))
	if len(v) > max {
		v = v[:max]
	}
	return strings.ToUpper(v)
}

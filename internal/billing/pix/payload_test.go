package pix

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadStructure(t *testing.T) {
	out, err := Payload(Charge{
		Key:          "random-key",
		MerchantName: "Loja Teste",
		MerchantCity: "Lagoa Formosa",
		Amount:       decimal.RequireFromString("19.90"),
		TxID:         "ABC123",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "000201"))
	assert.Contains(t, out, "52040000")

	// Trailer is CRC16 of everything up to and including "6304".
	require.Greater(t, len(out), 4)
	body, crc := out[:len(out)-4], out[len(out)-4:]
	assert.True(t, strings.HasSuffix(body, "6304"))
	assert.Equal(t, CRC16(body), crc)

	tlvs, err := Decode(body[:len(body)-4])
	require.NoError(t, err)

	amount, ok := Find(tlvs, "54")
	require.True(t, ok)
	assert.Equal(t, "19.90", amount)

	name, _ := Find(tlvs, "59")
	assert.Equal(t, "LOJA TESTE", name)
	city, _ := Find(tlvs, "60")
	assert.Equal(t, "LAGOA FORMOSA", city)

	account, ok := Find(tlvs, "26")
	require.True(t, ok)
	subs, err := Decode(account)
	require.NoError(t, err)
	guiValue, _ := Find(subs, "00")
	assert.Equal(t, "br.gov.bcb.pix", guiValue)
	key, _ := Find(subs, "01")
	assert.Equal(t, "random-key", key)

	additional, ok := Find(tlvs, "62")
	require.True(t, ok)
	subs, err = Decode(additional)
	require.NoError(t, err)
	tx, _ := Find(subs, "05")
	assert.Equal(t, "ABC123", tx)
}

func TestPayloadOmitsZeroAmount(t *testing.T) {
	for _, amount := range []decimal.Decimal{{}, decimal.Zero, decimal.NewFromInt(-5)} {
		out, err := Payload(Charge{
			Key:          "chave@lfnm.com.br",
			MerchantName: "Portal",
			MerchantCity: "Lagoa Formosa",
			Amount:       amount,
		})
		require.NoError(t, err)

		body := out[:len(out)-8]
		tlvs, err := Decode(body)
		require.NoError(t, err)
		_, ok := Find(tlvs, "54")
		assert.False(t, ok, "tag 54 must be absent for %s", amount)
	}
}

func TestPayloadTruncation(t *testing.T) {
	out, err := Payload(Charge{
		Key:          "k",
		MerchantName: "A very long merchant name exceeding twenty five chars",
		MerchantCity: "Presidente Olegario Alto",
		TxID:         strings.Repeat("X", 40),
	})
	require.NoError(t, err)

	tlvs, err := Decode(out[:len(out)-8])
	require.NoError(t, err)

	name, _ := Find(tlvs, "59")
	assert.Equal(t, "A VERY LONG MERCHANT NAME", name)
	assert.Len(t, name, 25)

	city, _ := Find(tlvs, "60")
	assert.Len(t, city, 15)

	additional, _ := Find(tlvs, "62")
	subs, err := Decode(additional)
	require.NoError(t, err)
	tx, _ := Find(subs, "05")
	assert.Len(t, tx, 25)
}

func TestPayloadDefaultTxID(t *testing.T) {
	out, err := Payload(Charge{Key: "k", MerchantName: "n", MerchantCity: "c"})
	require.NoError(t, err)

	tlvs, err := Decode(out[:len(out)-8])
	require.NoError(t, err)
	additional, _ := Find(tlvs, "62")
	subs, err := Decode(additional)
	require.NoError(t, err)
	tx, _ := Find(subs, "05")
	assert.Equal(t, "***", tx)
}

func TestPayloadMissingKey(t *testing.T) {
	_, err := Payload(Charge{MerchantName: "n", MerchantCity: "c"})
	assert.ErrorIs(t, err, ErrMissingKey)

	_, err = Payload(Charge{Key: "   "})
	assert.ErrorIs(t, err, ErrMissingKey)
}

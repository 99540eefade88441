package pix

import "fmt"

// CRC16 computes the CRC16/CCITT-FALSE checksum of s and returns it as
// four uppercase hex digits, as required by the BR Code trailer (tag 63).
// Polynomial 0x1021, initial value 0xFFFF, MSB-first, no reflection and
// no final XOR. Paying apps reject payloads whose trailer does not match
// this exact variant.
func CRC16(s string) string {
	crc := uint16(0xFFFF)
	for i := 0; i < len(s); i++ {
		b := s[i]
		for j := 0; j < 8; j++ {
			bit := (b>>(7-j))&1 == 1
			c15 := (crc>>15)&1 == 1
			crc <<= 1
			if c15 != bit {
				crc ^= 0x1021
			}
		}
	}
	return fmt.Sprintf("%04X", crc)
}

package pix

import (
	"errors"
	"fmt"
	"strconv"
)

// TLV is a decoded Tag-Length-Value pair.
type TLV struct{ ID, Value string }

// Decode splits an EMV MPM string into its top-level TLV pairs. Nested
// values (tags 26 and 62) decode by calling Decode again on the value.
func Decode(s string) ([]TLV, error) {
	var out []TLV
	for i := 0; i < len(s); {
		if i+4 > len(s) {
			return nil, errors.New("truncated TLV header")
		}
		id := s[i : i+2]
		ln, err := strconv.Atoi(s[i+2 : i+4])
		if err != nil || ln < 1 {
			return nil, fmt.Errorf("bad length for ID %s", id)
		}
		i += 4
		if i+ln > len(s) {
			return nil, fmt.Errorf("truncated value for ID %s", id)
		}
		out = append(out, TLV{ID: id, Value: s[i : i+ln]})
		i += ln
	}
	return out, nil
}

// Find returns the value of the first pair with the given ID.
func Find(tlvs []TLV, id string) (string, bool) {
	for _, t := range tlvs {
		if t.ID == id {
			return t.Value, true
		}
	}
	return "", false
}

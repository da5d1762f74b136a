package prototype

import (
	"math/big"
	"strings"

	"github.com/itchyny/base58-go"
)

// base58-go works on decimal strings, so leading zero bytes would vanish in the
// big.Int round trip. They are carried as leading '1' characters instead.

func base58Encode(data []byte) string {
	zeros := 0
	for zeros < len(data) && data[zeros] == 0 {
		zeros++
	}
	if zeros == len(data) {
		return strings.Repeat("1", zeros)
	}
	bi := new(big.Int).SetBytes(data[zeros:]).String()
	encoded, _ := base58.BitcoinEncoding.Encode([]byte(bi))
	return strings.Repeat("1", zeros) + string(encoded)
}

func base58Decode(encoded string) ([]byte, error) {
	zeros := 0
	for zeros < len(encoded) && encoded[zeros] == '1' {
		zeros++
	}
	out := make([]byte, zeros)
	if zeros == len(encoded) {
		return out, nil
	}
	decoded, err := base58.BitcoinEncoding.Decode([]byte(encoded[zeros:]))
	if err != nil {
		return nil, err
	}
	x, ok := new(big.Int).SetString(string(decoded), 10)
	if !ok {
		return nil, ErrInvalidKeyFormat
	}
	return append(out, x.Bytes()...), nil
}

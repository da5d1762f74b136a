package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha512"
	"encoding/hex"

	"github.com/pkg/errors"
	"lukechampine.com/frand"
)

const RandomKeyLength = 32

var ErrBadPadding = errors.New("bad padding, wrong key or corrupted cipher text")

// SeedCipher is AES-256-CBC keyed by sha512(seed): key is the first 32 bytes
// of the digest and iv the following 16.
type SeedCipher struct {
	key []byte
	iv  []byte
}

func NewSeedCipher(seed []byte) *SeedCipher {
	sum := sha512.Sum512(seed)
	return &SeedCipher{
		key: append([]byte(nil), sum[0:32]...),
		iv:  append([]byte(nil), sum[32:48]...),
	}
}

func (c *SeedCipher) Encrypt(plain []byte) []byte {
	block, _ := aes.NewCipher(c.key)
	padded := pkcs7Pad(plain, aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, c.iv).CryptBlocks(out, padded)
	return out
}

func (c *SeedCipher) Decrypt(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return nil, errors.Errorf("cipher text length %d is not a multiple of block size", len(data))
	}
	block, _ := aes.NewCipher(c.key)
	out := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, c.iv).CryptBlocks(out, data)
	return pkcs7Unpad(out, aes.BlockSize)
}

func (c *SeedCipher) EncryptToHex(plain []byte) string {
	return hex.EncodeToString(c.Encrypt(plain))
}

func (c *SeedCipher) DecryptHex(s string) ([]byte, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "cipher text is not hex")
	}
	return c.Decrypt(data)
}

// RandomKey returns fresh random bytes for a per-wallet encryption key
func RandomKey() []byte {
	return frand.Bytes(RandomKeyLength)
}

func pkcs7Pad(data []byte, size int) []byte {
	n := size - len(data)%size
	return append(append([]byte(nil), data...), bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, size int) ([]byte, error) {
	n := int(data[len(data)-1])
	if n == 0 || n > size || n > len(data) {
		return nil, ErrBadPadding
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrBadPadding
		}
	}
	return data[:len(data)-n], nil
}

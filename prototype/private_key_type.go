package prototype

import (
	"bytes"
	"crypto/sha256"
	"crypto/sha512"
	"strings"

	"github.com/gxchain/gxwallet/common/crypto"
	"github.com/pkg/errors"
)

const wifVersion = 0x80

type PrivateKeyType struct {
	key *crypto.SigPrivKey
}

func PrivateKeyFromBytes(buffer []byte) (*PrivateKeyType, error) {
	if len(buffer) != 32 {
		return nil, ErrKeyLength
	}
	k, err := crypto.ToECDSA(buffer)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKeyFormat, err.Error())
	}
	return &PrivateKeyType{key: k}, nil
}

// PrivateKeyFromSeed derives sha256(seed) as a key. It never fails for a string seed
// except with negligible probability of an out of range scalar.
func PrivateKeyFromSeed(seed string) (*PrivateKeyType, error) {
	k, err := crypto.KeyFromSeed([]byte(seed))
	if err != nil {
		return nil, err
	}
	return &PrivateKeyType{key: k}, nil
}

// PrivateKeyFromBrainKey derives the first key of a normalized brain key
func PrivateKeyFromBrainKey(brainKey string) (*PrivateKeyType, error) {
	normalized := strings.Join(strings.Fields(brainKey), " ")
	h := sha512.Sum512([]byte(normalized + " 0"))
	d := sha256.Sum256(h[:])
	return PrivateKeyFromBytes(d[:])
}

func GenerateNewKey() (*PrivateKeyType, error) {
	k, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	return &PrivateKeyType{key: k}, nil
}

func PrivateKeyFromWIF(encoded string) (*PrivateKeyType, error) {
	if encoded == "" {
		return nil, errors.Wrap(ErrInvalidKeyFormat, "empty key")
	}
	buf, err := base58Decode(encoded)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKeyFormat, err.Error())
	}
	// compressed-flag WIFs carry a trailing 0x01 before the checksum
	if len(buf) != 37 && !(len(buf) == 38 && buf[33] == 0x01) {
		return nil, errors.Wrap(ErrInvalidKeyFormat, "bad length")
	}
	if buf[0] != wifVersion {
		return nil, errors.Wrap(ErrInvalidKeyFormat, "bad version")
	}
	payload, checksum := buf[:len(buf)-4], buf[len(buf)-4:]
	temp := sha256.Sum256(payload)
	temps := sha256.Sum256(temp[:])
	if !bytes.Equal(temps[0:4], checksum) {
		return nil, errors.Wrap(ErrInvalidKeyFormat, "checksum mismatch")
	}
	return PrivateKeyFromBytes(payload[1:33])
}

func (m *PrivateKeyType) Bytes() []byte {
	return m.key.Bytes()
}

func (m *PrivateKeyType) Equal(other *PrivateKeyType) bool {
	return bytes.Equal(m.Bytes(), other.Bytes())
}

func (m *PrivateKeyType) PubKey() *PublicKeyType {
	return &PublicKeyType{key: m.key.Public()}
}

func (m *PrivateKeyType) ToWIF() string {
	data := append([]byte{wifVersion}, m.Bytes()...)
	temp := sha256.Sum256(data)
	temps := sha256.Sum256(temp[:])
	return base58Encode(append(data, temps[0:4]...))
}

// SignDigest returns a compact recoverable signature of a sha256 digest
func (m *PrivateKeyType) SignDigest(digest []byte) ([]byte, error) {
	return m.key.SignCompact(digest)
}

// SignDigestCanonical is SignDigest retried with fresh deterministic nonces
// until the signature is canonical
func (m *PrivateKeyType) SignDigestCanonical(digest []byte) ([]byte, error) {
	return m.key.SignCanonical(digest)
}

// SharedSecret is the memo ECDH secret with a counterpart public key
func (m *PrivateKeyType) SharedSecret(pub *PublicKeyType) []byte {
	return m.key.SharedSecret(pub.key)
}

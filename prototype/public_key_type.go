package prototype

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/gxchain/gxwallet/common/crypto"
	"github.com/gxchain/gxwallet/common/encoding/graphene"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ripemd160"
)

const (
	PublicKeyPrefix = "GXC"
	publicKeyLength = 33

	// base58 of an all zero key, the chain's way of saying "no key"
	nullKeyPattern = "111111111111111111111"
)

// PublicKeyType is a compressed secp256k1 key; a nil key is the chain's null key
type PublicKeyType struct {
	key *crypto.SigPubKey
}

func PublicKeyFromBytes(buffer []byte) (*PublicKeyType, error) {
	if len(buffer) != publicKeyLength {
		return nil, ErrKeyLength
	}
	if bytes.Equal(buffer, make([]byte, publicKeyLength)) {
		return &PublicKeyType{}, nil
	}
	k, err := crypto.DecompressPubkey(buffer)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKeyFormat, err.Error())
	}
	return &PublicKeyType{key: k}, nil
}

// IsNullKeyString reports whether s encodes the all zero key
func IsNullKeyString(s string) bool {
	return strings.Contains(s, nullKeyPattern)
}

func PublicKeyFromString(encoded string) (*PublicKeyType, error) {
	if !strings.HasPrefix(encoded, PublicKeyPrefix) {
		return nil, errors.Wrapf(ErrInvalidKeyFormat, "public key %q lacks prefix %s", encoded, PublicKeyPrefix)
	}
	buf, err := base58Decode(encoded[len(PublicKeyPrefix):])
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKeyFormat, err.Error())
	}
	if len(buf) < publicKeyLength+4 {
		buf = append(make([]byte, publicKeyLength+4-len(buf)), buf...)
	}
	if len(buf) != publicKeyLength+4 {
		return nil, errors.Wrap(ErrInvalidKeyFormat, "bad public key length")
	}
	data, checksum := buf[:publicKeyLength], buf[publicKeyLength:]
	if !bytes.Equal(keyChecksum(data), checksum) {
		return nil, errors.Wrap(ErrInvalidKeyFormat, "public key checksum mismatch")
	}
	return PublicKeyFromBytes(data)
}

func keyChecksum(data []byte) []byte {
	h := ripemd160.New()
	h.Write(data)
	return h.Sum(nil)[:4]
}

func (m *PublicKeyType) IsNull() bool {
	return m.key == nil
}

func (m *PublicKeyType) Bytes() []byte {
	if m.key == nil {
		return make([]byte, publicKeyLength)
	}
	return m.key.Compressed()
}

func (m *PublicKeyType) Equal(other *PublicKeyType) bool {
	return other != nil && bytes.Equal(m.Bytes(), other.Bytes())
}

func (m *PublicKeyType) String() string {
	data := m.Bytes()
	return PublicKeyPrefix + base58Encode(append(data, keyChecksum(data)...))
}

func (m *PublicKeyType) Verify(digest, sig []byte) bool {
	if m.key == nil {
		return false
	}
	return m.key.Verify(digest, sig)
}

func (m *PublicKeyType) Serialize(enc *graphene.Encoder) {
	enc.WriteFixed(m.Bytes())
}

func (m *PublicKeyType) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PublicKeyType) UnmarshalJSON(input []byte) error {
	var s string
	if err := json.Unmarshal(input, &s); err != nil {
		return errors.Wrap(ErrJSONFormatErr, err.Error())
	}
	res, err := PublicKeyFromString(s)
	if err != nil {
		return err
	}
	*m = *res
	return nil
}

// RecoverPublicKey returns the signer of a sha256 digest
func RecoverPublicKey(digest, sig []byte) (*PublicKeyType, error) {
	k, err := crypto.RecoverCompact(digest, sig)
	if err != nil {
		return nil, err
	}
	return &PublicKeyType{key: k}, nil
}

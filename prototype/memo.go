package prototype

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"

	"github.com/gxchain/gxwallet/common/crypto"
	"github.com/gxchain/gxwallet/common/encoding/graphene"
	"github.com/pkg/errors"
)

var ErrMemoChecksum = errors.New("memo checksum mismatch")

type Memo struct {
	From    *PublicKeyType
	To      *PublicKeyType
	Nonce   uint64
	Message []byte
}

func memoCipher(secret []byte, nonce uint64) *crypto.SeedCipher {
	seed := strconv.FormatUint(nonce, 10) + hex.EncodeToString(secret)
	return crypto.NewSeedCipher([]byte(seed))
}

// EncryptMemo encrypts msg for to, prefixed with the first four bytes of sha256(msg)
func EncryptMemo(from *PrivateKeyType, to *PublicKeyType, nonce uint64, msg []byte) *Memo {
	sum := sha256.Sum256(msg)
	payload := append(append([]byte(nil), sum[:4]...), msg...)
	return &Memo{
		From:    from.PubKey(),
		To:      to,
		Nonce:   nonce,
		Message: memoCipher(from.SharedSecret(to), nonce).Encrypt(payload),
	}
}

// Decrypt opens a memo with either side's private key
func (m *Memo) Decrypt(key *PrivateKeyType) ([]byte, error) {
	other := m.To
	if m.To.Equal(key.PubKey()) {
		other = m.From
	}
	payload, err := memoCipher(key.SharedSecret(other), m.Nonce).Decrypt(m.Message)
	if err != nil {
		return nil, err
	}
	if len(payload) < 4 {
		return nil, ErrMemoChecksum
	}
	msg := payload[4:]
	sum := sha256.Sum256(msg)
	if !bytes.Equal(sum[:4], payload[:4]) {
		return nil, ErrMemoChecksum
	}
	return msg, nil
}

func (m *Memo) Serialize(enc *graphene.Encoder) {
	m.From.Serialize(enc)
	m.To.Serialize(enc)
	enc.WriteUint64(m.Nonce)
	enc.WriteBytes(m.Message)
}

func (m *Memo) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		From    *PublicKeyType `json:"from"`
		To      *PublicKeyType `json:"to"`
		Nonce   string         `json:"nonce"`
		Message string         `json:"message"`
	}{m.From, m.To, strconv.FormatUint(m.Nonce, 10), hex.EncodeToString(m.Message)})
}

package prototype

import (
	"encoding/hex"
	"encoding/json"

	"github.com/gxchain/gxwallet/common/crypto"
	"github.com/pkg/errors"
)

type SignatureType struct {
	Sig []byte
}

func (m *SignatureType) Validate() error {
	if m == nil {
		return ErrNpe
	}
	if len(m.Sig) != crypto.CompactSigLength {
		return ErrSigLength
	}
	return nil
}

func (m *SignatureType) String() string {
	return hex.EncodeToString(m.Sig)
}

func (m *SignatureType) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *SignatureType) UnmarshalJSON(input []byte) error {
	var s string
	if err := json.Unmarshal(input, &s); err != nil {
		return errors.Wrap(ErrJSONFormatErr, err.Error())
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return errors.Wrap(ErrJSONFormatErr, err.Error())
	}
	m.Sig = b
	return nil
}

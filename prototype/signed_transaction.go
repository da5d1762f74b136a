package prototype

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gxchain/gxwallet/common/crypto"
	"github.com/gxchain/gxwallet/common/encoding/graphene"
	"github.com/pkg/errors"
)

// maxCanonicalAttempts bounds the expiration bumps spent looking for a canonical signature
const maxCanonicalAttempts = 256

type SignedTransaction struct {
	Trx        *Transaction
	Signatures []*SignatureType
}

// GetTrxHash is sha256(chain id || serialized transaction), the digest every signature covers
func (p *SignedTransaction) GetTrxHash(chainID string) ([]byte, error) {
	cid, err := hex.DecodeString(chainID)
	if err != nil {
		return nil, errors.Wrap(err, "chain id is not hex")
	}
	enc := graphene.NewEncoder()
	enc.WriteFixed(cid)
	p.Trx.Serialize(enc)
	sum := sha256.Sum256(enc.Bytes())
	return sum[:], nil
}

// Sign appends a canonical signature by key. A non canonical result moves the
// expiration one second forward and signs again; earlier signatures are dropped
// when that happens since they no longer cover the transaction.
func (p *SignedTransaction) Sign(key *PrivateKeyType, chainID string) error {
	for i := 0; i < maxCanonicalAttempts; i++ {
		digest, err := p.GetTrxHash(chainID)
		if err != nil {
			return err
		}
		sig, err := key.SignDigest(digest)
		if err != nil {
			return err
		}
		if crypto.IsCanonical(sig) {
			if i > 0 {
				p.Signatures = nil
			}
			p.Signatures = append(p.Signatures, &SignatureType{Sig: sig})
			return nil
		}
		p.Trx.Expiration = p.Trx.Expiration.Add(1)
	}
	return errors.New("failed to produce a canonical signature")
}

func (p *SignedTransaction) VerifySig(pubKey *PublicKeyType, chainID string) bool {
	digest, err := p.GetTrxHash(chainID)
	if err != nil {
		return false
	}
	for _, s := range p.Signatures {
		if pubKey.Verify(digest, s.Sig) {
			return true
		}
	}
	return false
}

// ExportPubKeys recovers the signer of every signature
func (p *SignedTransaction) ExportPubKeys(chainID string) ([]*PublicKeyType, error) {
	digest, err := p.GetTrxHash(chainID)
	if err != nil {
		return nil, err
	}
	keys := make([]*PublicKeyType, 0, len(p.Signatures))
	for _, s := range p.Signatures {
		k, err := RecoverPublicKey(digest, s.Sig)
		if err != nil {
			return nil, errors.New("recover error")
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func (p *SignedTransaction) Validate() error {
	if p == nil || p.Trx == nil {
		return ErrNpe
	}
	if err := p.Trx.Validate(); err != nil {
		return err
	}
	if len(p.Signatures) == 0 {
		return errors.New("no signatures")
	}
	for i, s := range p.Signatures {
		if err := s.Validate(); err != nil {
			return errors.WithMessage(err, fmt.Sprintf("Signature error index: %d", i))
		}
	}
	return nil
}

func (p *SignedTransaction) MarshalJSON() ([]byte, error) {
	sigs := p.Signatures
	if sigs == nil {
		sigs = []*SignatureType{}
	}
	return json.Marshal(struct {
		transactionJSON
		Signatures []*SignatureType `json:"signatures"`
	}{p.Trx.toJSON(), sigs})
}

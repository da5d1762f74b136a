package crypto

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"crypto/sha512"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"lukechampine.com/frand"
)

const (
	// CompactSigLength is the size of a recoverable compact signature: one header byte, R and S.
	CompactSigLength = 65

	compactHeaderBase = 27 + 4

	// maxNonceIterations bounds the fresh nonces tried by SignCanonical
	maxNonceIterations = 1024
)

var (
	ErrSigLength = errors.New("compact signature must be 65 bytes")
	ErrSigHeader = errors.New("invalid compact signature header")
	ErrNoCanonical = errors.New("failed to produce a canonical signature")
)

// SigPrivKey secp256k1 private key
type SigPrivKey struct {
	p *ecdsa.PrivateKey
}

// ToECDSA builds a private key from 32 raw bytes
func ToECDSA(d []byte) (*SigPrivKey, error) {
	p, err := ethcrypto.ToECDSA(d)
	if err != nil {
		return nil, err
	}
	return &SigPrivKey{p: p}, nil
}

// KeyFromSeed derives a private key as sha256(seed). Any seed is accepted.
func KeyFromSeed(seed []byte) (*SigPrivKey, error) {
	d := sha256.Sum256(seed)
	return ToECDSA(d[:])
}

// GenerateKey generates a random private key
func GenerateKey() (*SigPrivKey, error) {
	for {
		k, err := ToECDSA(frand.Bytes(32))
		if err == nil {
			return k, nil
		}
	}
}

// Bytes returns the 32 byte scalar
func (spk *SigPrivKey) Bytes() []byte {
	return ethcrypto.FromECDSA(spk.p)
}

// Public returns public key correspond to private key
func (spk *SigPrivKey) Public() *SigPubKey {
	return &SigPubKey{p: &spk.p.PublicKey}
}

// SignCompact signs a 32 byte digest and returns [header | R | S].
// The header carries the recovery id so the public key can be recovered from the signature.
func (spk *SigPrivKey) SignCompact(digest []byte) ([]byte, error) {
	sig, err := ethcrypto.Sign(digest, spk.p)
	if err != nil {
		return nil, err
	}
	out := make([]byte, CompactSigLength)
	out[0] = byte(compactHeaderBase) + sig[64]
	copy(out[1:], sig[:64])
	return out, nil
}

// SignCanonical signs a 32 byte digest and only returns canonical signatures.
// Each attempt derives an RFC6979 nonce with one more extra iteration, so the
// result is still deterministic for a given key and digest.
func (spk *SigPrivKey) SignCanonical(digest []byte) ([]byte, error) {
	if len(digest) != 32 {
		return nil, errors.Errorf("digest must be 32 bytes, got %d", len(digest))
	}
	priv := spk.Bytes()
	var d, e secp256k1.ModNScalar
	if overflow := d.SetByteSlice(priv); overflow || d.IsZero() {
		return nil, errors.New("invalid private key")
	}
	e.SetByteSlice(digest)

	for iteration := uint32(0); iteration < maxNonceIterations; iteration++ {
		k := secp256k1.NonceRFC6979(priv, digest, nil, nil, iteration)
		sig, ok := signWithNonce(&d, &e, k)
		k.Zero()
		if ok && IsCanonical(sig) {
			return sig, nil
		}
	}
	return nil, ErrNoCanonical
}

func signWithNonce(d, e, k *secp256k1.ModNScalar) ([]byte, bool) {
	var kG secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(k, &kG)
	kG.ToAffine()

	var r secp256k1.ModNScalar
	overflow := r.SetBytes(kG.X.Bytes())
	if r.IsZero() {
		return nil, false
	}
	recID := byte(0)
	if kG.Y.IsOdd() {
		recID |= 1
	}
	if overflow == 1 {
		recID |= 2
	}

	var kInv, s secp256k1.ModNScalar
	kInv.InverseValNonConst(k)
	s.Mul2(d, &r).Add(e).Mul(&kInv)
	if s.IsZero() {
		return nil, false
	}
	if s.IsOverHalfOrder() {
		s.Negate()
		recID ^= 1
	}

	out := make([]byte, CompactSigLength)
	out[0] = byte(compactHeaderBase) + recID
	r.PutBytesUnchecked(out[1:33])
	s.PutBytesUnchecked(out[33:65])
	return out, true
}

// SharedSecret returns sha512 of the ECDH x coordinate between this key and pub.
func (spk *SigPrivKey) SharedSecret(pub *SigPubKey) []byte {
	x, _ := ethcrypto.S256().ScalarMult(pub.p.X, pub.p.Y, spk.p.D.Bytes())
	padded := make([]byte, 32)
	xb := x.Bytes()
	copy(padded[32-len(xb):], xb)
	sum := sha512.Sum512(padded)
	return sum[:]
}

// IsCanonical reports whether a compact signature has both R and S in the
// unambiguous range the chain accepts.
func IsCanonical(c []byte) bool {
	if len(c) != CompactSigLength {
		return false
	}
	return c[1]&0x80 == 0 &&
		!(c[1] == 0 && c[2]&0x80 == 0) &&
		c[33]&0x80 == 0 &&
		!(c[33] == 0 && c[34]&0x80 == 0)
}

// RecoverCompact recovers the signer of digest from a compact signature.
func RecoverCompact(digest, c []byte) (*SigPubKey, error) {
	if len(c) != CompactSigLength {
		return nil, ErrSigLength
	}
	if c[0] < 27 || c[0] > compactHeaderBase+3 {
		return nil, ErrSigHeader
	}
	recID := c[0] - 27
	if recID >= 4 {
		recID -= 4
	}
	sig := make([]byte, CompactSigLength)
	copy(sig, c[1:])
	sig[64] = recID
	p, err := ethcrypto.SigToPub(digest, sig)
	if err != nil {
		return nil, err
	}
	return &SigPubKey{p: p}, nil
}

// SigPubKey secp256k1 public key
type SigPubKey struct {
	p *ecdsa.PublicKey
}

// DecompressPubkey parses a 33 byte compressed public key
func DecompressPubkey(b []byte) (*SigPubKey, error) {
	p, err := ethcrypto.DecompressPubkey(b)
	if err != nil {
		return nil, err
	}
	return &SigPubKey{p: p}, nil
}

// Compressed returns the 33 byte SEC1 compressed form
func (spk *SigPubKey) Compressed() []byte {
	return ethcrypto.CompressPubkey(spk.p)
}

// Equal compares two public keys by point
func (spk *SigPubKey) Equal(other *SigPubKey) bool {
	if spk == nil || other == nil {
		return spk == other
	}
	return spk.p.X.Cmp(other.p.X) == 0 && spk.p.Y.Cmp(other.p.Y) == 0
}

// Verify checks a compact signature against the digest
// NOTE that digest has to be a sha256
func (spk *SigPubKey) Verify(digest, c []byte) bool {
	if len(c) != CompactSigLength {
		return false
	}
	r := new(big.Int).SetBytes(c[1:33])
	s := new(big.Int).SetBytes(c[33:65])
	return ecdsa.Verify(spk.p, digest, r, s)
}

package prototype

import "github.com/pkg/errors"

var (
	ErrNpe            = errors.New("Null Pointer")
	ErrKeyLength      = errors.New("Key Length Error")
	ErrSigLength      = errors.New("Signature Length Error")
	ErrJSONFormatErr  = errors.New("JSON Format Error")
	ErrObjectIDFormat = errors.New("Object ID Format Error")
	ErrVoteIDFormat   = errors.New("Vote ID Format Error")

	ErrInvalidPassword             = errors.New("invalid password")
	ErrAccountNotFound             = errors.New("account not found")
	ErrAssetNotFound               = errors.New("asset not found")
	ErrMemoSignerMismatch          = errors.New("memo signer mismatch")
	ErrInvalidKeyFormat            = errors.New("invalid key format")
	ErrNativeBridge                = errors.New("native bridge error")
	ErrTransport                   = errors.New("transport error")
	ErrInsufficientAuthorityWeight = errors.New("insufficient authority weight")
)

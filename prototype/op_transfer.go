package prototype

import (
	"github.com/gxchain/gxwallet/common/encoding/graphene"
	"github.com/pkg/errors"
)

type TransferOperation struct {
	BaseOperation
	From       ObjectID    `json:"from"`
	To         ObjectID    `json:"to"`
	Amount     AssetAmount `json:"amount"`
	Memo       *Memo       `json:"memo,omitempty"`
	Extensions Extensions  `json:"extensions"`
}

func (t *TransferOperation) Type() OpType {
	return OpTransfer
}

func (t *TransferOperation) Validate() error {
	if t == nil {
		return ErrNpe
	}
	if t.Amount.Amount <= 0 {
		return errors.New("transfer op must has amount value")
	}
	return nil
}

func (t *TransferOperation) Serialize(enc *graphene.Encoder) {
	t.Fee.Serialize(enc)
	t.From.Serialize(enc)
	t.To.Serialize(enc)
	t.Amount.Serialize(enc)
	if enc.WriteOptional(t.Memo != nil) {
		t.Memo.Serialize(enc)
	}
	t.Extensions.Serialize(enc)
}

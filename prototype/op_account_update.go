package prototype

import "github.com/gxchain/gxwallet/common/encoding/graphene"

// AccountUpdateOperation only ever carries new options here; owner and
// active authorities are left untouched.
type AccountUpdateOperation struct {
	BaseOperation
	Account    ObjectID        `json:"account"`
	NewOptions *AccountOptions `json:"new_options,omitempty"`
	Extensions Extensions      `json:"extensions"`
}

func (a *AccountUpdateOperation) Type() OpType {
	return OpAccountUpdate
}

func (a *AccountUpdateOperation) Serialize(enc *graphene.Encoder) {
	a.Fee.Serialize(enc)
	a.Account.Serialize(enc)
	enc.WriteOptional(false) // owner
	enc.WriteOptional(false) // active
	if enc.WriteOptional(a.NewOptions != nil) {
		a.NewOptions.Serialize(enc)
	}
	a.Extensions.Serialize(enc)
}

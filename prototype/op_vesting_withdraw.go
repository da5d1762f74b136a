package prototype

import "github.com/gxchain/gxwallet/common/encoding/graphene"

type VestingBalanceWithdrawOperation struct {
	BaseOperation
	VestingBalance ObjectID    `json:"vesting_balance"`
	Owner          ObjectID    `json:"owner"`
	Amount         AssetAmount `json:"amount"`
}

func (v *VestingBalanceWithdrawOperation) Type() OpType {
	return OpVestingBalanceWithdraw
}

func (v *VestingBalanceWithdrawOperation) Serialize(enc *graphene.Encoder) {
	v.Fee.Serialize(enc)
	v.VestingBalance.Serialize(enc)
	v.Owner.Serialize(enc)
	v.Amount.Serialize(enc)
}

package prototype

import "github.com/gxchain/gxwallet/common/encoding/graphene"

type BalanceLockOperation struct {
	BaseOperation
	Account        ObjectID     `json:"account"`
	CreateDateTime TimePointSec `json:"create_date_time"`
	ProgramID      string       `json:"program_id"`
	Amount         AssetAmount  `json:"amount"`
	LockDays       uint32       `json:"lock_days"`
	InterestRate   uint32       `json:"interest_rate"`
	Memo           string       `json:"memo"`
	Extensions     Extensions   `json:"extensions"`
}

func (b *BalanceLockOperation) Type() OpType {
	return OpBalanceLock
}

func (b *BalanceLockOperation) Serialize(enc *graphene.Encoder) {
	b.Fee.Serialize(enc)
	b.Account.Serialize(enc)
	b.CreateDateTime.Serialize(enc)
	enc.WriteString(b.ProgramID)
	b.Amount.Serialize(enc)
	enc.WriteUint32(b.LockDays)
	enc.WriteUint32(b.InterestRate)
	enc.WriteString(b.Memo)
	b.Extensions.Serialize(enc)
}

type BalanceUnlockOperation struct {
	BaseOperation
	Account    ObjectID   `json:"account"`
	LockID     string     `json:"lock_id"`
	Extensions Extensions `json:"extensions"`
}

func (b *BalanceUnlockOperation) Type() OpType {
	return OpBalanceUnlock
}

func (b *BalanceUnlockOperation) Serialize(enc *graphene.Encoder) {
	b.Fee.Serialize(enc)
	b.Account.Serialize(enc)
	enc.WriteString(b.LockID)
	b.Extensions.Serialize(enc)
}

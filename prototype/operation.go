package prototype

import (
	"encoding/json"

	"github.com/gxchain/gxwallet/common/encoding/graphene"
)

type OpType uint16

// operation tags in the chain's static variant order
const (
	OpTransfer               OpType = 0
	OpAccountUpdate          OpType = 6
	OpVestingBalanceWithdraw OpType = 33
	OpBalanceLock            OpType = 61
	OpBalanceUnlock          OpType = 62
	OpCallContract           OpType = 75
	OpStakingCreate          OpType = 80
	OpStakingUpdate          OpType = 81
	OpStakingClaim           OpType = 82
)

var opNames = map[OpType]string{
	OpTransfer:               "transfer",
	OpAccountUpdate:          "account_update",
	OpVestingBalanceWithdraw: "vesting_balance_withdraw",
	OpBalanceLock:            "balance_lock",
	OpBalanceUnlock:          "balance_unlock",
	OpCallContract:           "call_contract",
	OpStakingCreate:          "staking_create",
	OpStakingUpdate:          "staking_update",
	OpStakingClaim:           "staking_claim",
}

func (t OpType) String() string {
	if n, ok := opNames[t]; ok {
		return n
	}
	return "unknown"
}

type Operation interface {
	graphene.Serializer
	Type() OpType
	GetFee() AssetAmount
	SetFee(fee AssetAmount)
}

type BaseOperation struct {
	Fee AssetAmount `json:"fee"`
}

func (b *BaseOperation) GetFee() AssetAmount {
	return b.Fee
}

func (b *BaseOperation) SetFee(fee AssetAmount) {
	b.Fee = fee
}

// Extensions is always empty on the operations this wallet builds
type Extensions struct{}

func (Extensions) MarshalJSON() ([]byte, error) {
	return []byte("[]"), nil
}

func (Extensions) Serialize(enc *graphene.Encoder) {
	enc.WriteEmptyExtensions()
}

// OperationPair renders an operation as the [tag, body] pair the node expects
func OperationPair(op Operation) []interface{} {
	return []interface{}{op.Type(), op}
}

func MarshalOperation(op Operation) ([]byte, error) {
	return json.Marshal(OperationPair(op))
}

func serializeOperation(enc *graphene.Encoder, op Operation) {
	enc.WriteVarUint(uint64(op.Type()))
	op.Serialize(enc)
}

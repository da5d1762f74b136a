package prototype

import (
	"encoding/hex"
	"encoding/json"

	"github.com/gxchain/gxwallet/common/encoding/graphene"
)

type CallContractOperation struct {
	BaseOperation
	Account    ObjectID
	ContractID ObjectID
	Amount     *AssetAmount
	MethodName string
	Data       []byte
	Extensions Extensions
}

func (c *CallContractOperation) Type() OpType {
	return OpCallContract
}

func (c *CallContractOperation) Serialize(enc *graphene.Encoder) {
	c.Fee.Serialize(enc)
	c.Account.Serialize(enc)
	c.ContractID.Serialize(enc)
	if enc.WriteOptional(c.Amount != nil) {
		c.Amount.Serialize(enc)
	}
	enc.WriteUint64(NameToUint64(c.MethodName))
	enc.WriteBytes(c.Data)
	c.Extensions.Serialize(enc)
}

func (c *CallContractOperation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Fee        AssetAmount  `json:"fee"`
		Account    ObjectID     `json:"account"`
		ContractID ObjectID     `json:"contract_id"`
		Amount     *AssetAmount `json:"amount,omitempty"`
		MethodName string       `json:"method_name"`
		Data       string       `json:"data"`
		Extensions Extensions   `json:"extensions"`
	}{c.Fee, c.Account, c.ContractID, c.Amount, c.MethodName, hex.EncodeToString(c.Data), c.Extensions})
}

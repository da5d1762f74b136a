package prototype

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gxchain/gxwallet/common/encoding/graphene"
	"github.com/pkg/errors"
)

type Transaction struct {
	RefBlockNum    uint16
	RefBlockPrefix uint32
	Expiration     TimePointSec
	Operations     []Operation
	Extensions     Extensions
}

func (m *Transaction) Validate() error {
	if m == nil {
		return ErrNpe
	}
	if m.Expiration.UtcSeconds == 0 {
		return errors.New("trx must has Expiration")
	}
	if len(m.Operations) == 0 {
		return errors.New("trx must has Operations")
	}
	for index, op := range m.Operations {
		if op == nil {
			return errors.WithMessage(ErrNpe, fmt.Sprintf("Operation Error index: %d", index))
		}
	}
	return nil
}

// SetReferenceBlock anchors the transaction to a recent block: the low 16 bits
// of its number and bytes [4:8] of its id read little endian.
func (m *Transaction) SetReferenceBlock(num uint32, id string) error {
	raw, err := hex.DecodeString(id)
	if err != nil || len(raw) < 8 {
		return errors.Errorf("invalid block id %q", id)
	}
	m.RefBlockNum = uint16(num & 0xffff)
	m.RefBlockPrefix = binary.LittleEndian.Uint32(raw[4:8])
	return nil
}

func (m *Transaction) AddOperation(op Operation) {
	m.Operations = append(m.Operations, op)
}

func (m *Transaction) Serialize(enc *graphene.Encoder) {
	enc.WriteUint16(m.RefBlockNum)
	enc.WriteUint32(m.RefBlockPrefix)
	m.Expiration.Serialize(enc)
	enc.WriteVarUint(uint64(len(m.Operations)))
	for _, op := range m.Operations {
		serializeOperation(enc, op)
	}
	m.Extensions.Serialize(enc)
}

type transactionJSON struct {
	RefBlockNum    uint16          `json:"ref_block_num"`
	RefBlockPrefix uint32          `json:"ref_block_prefix"`
	Expiration     TimePointSec    `json:"expiration"`
	Operations     [][]interface{} `json:"operations"`
	Extensions     Extensions      `json:"extensions"`
}

func (m *Transaction) toJSON() transactionJSON {
	ops := make([][]interface{}, 0, len(m.Operations))
	for _, op := range m.Operations {
		ops = append(ops, OperationPair(op))
	}
	return transactionJSON{
		RefBlockNum:    m.RefBlockNum,
		RefBlockPrefix: m.RefBlockPrefix,
		Expiration:     m.Expiration,
		Operations:     ops,
	}
}

func (m *Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.toJSON())
}

package prototype

import "github.com/gxchain/gxwallet/common/encoding/graphene"

type StakingCreateOperation struct {
	BaseOperation
	Owner       ObjectID    `json:"owner"`
	TrustNode   ObjectID    `json:"trust_node"`
	Amount      AssetAmount `json:"amount"`
	ProgramID   string      `json:"program_id"`
	Weight      uint32      `json:"weight"`
	StakingDays uint32      `json:"staking_days"`
	Extensions  Extensions  `json:"extensions"`
}

func (s *StakingCreateOperation) Type() OpType {
	return OpStakingCreate
}

func (s *StakingCreateOperation) Serialize(enc *graphene.Encoder) {
	s.Fee.Serialize(enc)
	s.Owner.Serialize(enc)
	s.TrustNode.Serialize(enc)
	s.Amount.Serialize(enc)
	enc.WriteString(s.ProgramID)
	enc.WriteUint32(s.Weight)
	enc.WriteUint32(s.StakingDays)
	s.Extensions.Serialize(enc)
}

type StakingUpdateOperation struct {
	BaseOperation
	Owner      ObjectID   `json:"owner"`
	TrustNode  ObjectID   `json:"trust_node"`
	StakingID  ObjectID   `json:"staking_id"`
	Extensions Extensions `json:"extensions"`
}

func (s *StakingUpdateOperation) Type() OpType {
	return OpStakingUpdate
}

func (s *StakingUpdateOperation) Serialize(enc *graphene.Encoder) {
	s.Fee.Serialize(enc)
	s.Owner.Serialize(enc)
	s.TrustNode.Serialize(enc)
	s.StakingID.Serialize(enc)
	s.Extensions.Serialize(enc)
}

type StakingClaimOperation struct {
	BaseOperation
	Owner      ObjectID   `json:"owner"`
	StakingID  ObjectID   `json:"staking_id"`
	Extensions Extensions `json:"extensions"`
}

func (s *StakingClaimOperation) Type() OpType {
	return OpStakingClaim
}

func (s *StakingClaimOperation) Serialize(enc *graphene.Encoder) {
	s.Fee.Serialize(enc)
	s.Owner.Serialize(enc)
	s.StakingID.Serialize(enc)
	s.Extensions.Serialize(enc)
}

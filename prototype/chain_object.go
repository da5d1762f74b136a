package prototype

import (
	"encoding/json"

	"github.com/gxchain/gxwallet/common/encoding/graphene"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// KeyAuth is one [key, weight] entry of an authority
type KeyAuth struct {
	Key    string
	Weight uint16
}

func (k *KeyAuth) UnmarshalJSON(input []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(input, &pair); err != nil || len(pair) != 2 {
		return errors.Wrap(ErrJSONFormatErr, "key auth must be [key, weight]")
	}
	if err := json.Unmarshal(pair[0], &k.Key); err != nil {
		return errors.Wrap(ErrJSONFormatErr, err.Error())
	}
	if err := json.Unmarshal(pair[1], &k.Weight); err != nil {
		return errors.Wrap(ErrJSONFormatErr, err.Error())
	}
	return nil
}

func (k KeyAuth) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{k.Key, k.Weight})
}

type Authority struct {
	WeightThreshold uint32    `json:"weight_threshold"`
	KeyAuths        []KeyAuth `json:"key_auths"`
}

// KeyWeight is the weight the authority grants to a single key
func (a Authority) KeyWeight(pub string) uint32 {
	for _, k := range a.KeyAuths {
		if k.Key == pub {
			return uint32(k.Weight)
		}
	}
	return 0
}

// Satisfied reports whether pub alone meets the threshold
func (a Authority) Satisfied(pub string) bool {
	return a.KeyWeight(pub) >= a.WeightThreshold && a.WeightThreshold > 0
}

type AccountOptions struct {
	MemoKey       string   `json:"memo_key"`
	VotingAccount ObjectID `json:"voting_account"`
	NumWitness    uint16   `json:"num_witness"`
	NumCommittee  uint16   `json:"num_committee"`
	Votes         []VoteID `json:"votes"`
}

func (o *AccountOptions) Serialize(enc *graphene.Encoder) {
	memoKey, err := PublicKeyFromString(o.MemoKey)
	if err != nil {
		memoKey = &PublicKeyType{}
	}
	memoKey.Serialize(enc)
	o.VotingAccount.Serialize(enc)
	enc.WriteUint16(o.NumWitness)
	enc.WriteUint16(o.NumCommittee)
	enc.WriteVarUint(uint64(len(o.Votes)))
	for _, v := range o.Votes {
		v.Serialize(enc)
	}
	enc.WriteEmptyExtensions()
}

func (o AccountOptions) MarshalJSON() ([]byte, error) {
	type plain AccountOptions
	p := plain(o)
	if p.Votes == nil {
		p.Votes = []VoteID{}
	}
	return json.Marshal(struct {
		plain
		Extensions []interface{} `json:"extensions"`
	}{plain: p, Extensions: []interface{}{}})
}

type Account struct {
	ID      ObjectID       `json:"id"`
	Name    string         `json:"name"`
	Owner   Authority      `json:"owner"`
	Active  Authority      `json:"active"`
	Options AccountOptions `json:"options"`
	Abi     *Abi           `json:"abi,omitempty"`
}

// MemoKey returns the registered memo key or nil when the account has none
func (a *Account) MemoKey() *PublicKeyType {
	if a.Options.MemoKey == "" || IsNullKeyString(a.Options.MemoKey) {
		return nil
	}
	k, err := PublicKeyFromString(a.Options.MemoKey)
	if err != nil {
		return nil
	}
	return k
}

type Asset struct {
	ID        ObjectID `json:"id"`
	Symbol    string   `json:"symbol"`
	Precision uint8    `json:"precision"`
	Issuer    ObjectID `json:"issuer"`
}

type ChainParameters struct {
	MaximumCommitteeCount uint16 `json:"maximum_committee_count"`
	MaximumWitnessCount   uint16 `json:"maximum_witness_count"`
}

type GlobalProperties struct {
	ID         ObjectID        `json:"id"`
	Parameters ChainParameters `json:"parameters"`
}

type DynamicGlobalProperties struct {
	ID              ObjectID     `json:"id"`
	HeadBlockNumber uint32       `json:"head_block_number"`
	HeadBlockID     string       `json:"head_block_id"`
	Time            TimePointSec `json:"time"`
}

type Witness struct {
	ID             ObjectID `json:"id"`
	WitnessAccount ObjectID `json:"witness_account"`
	VoteID         VoteID   `json:"vote_id"`
}

type CommitteeMember struct {
	ID                     ObjectID `json:"id"`
	CommitteeMemberAccount ObjectID `json:"committee_member_account"`
	VoteID                 VoteID   `json:"vote_id"`
}

// VestingPolicy is the cdd policy payload of a vesting balance
type VestingPolicy struct {
	VestingSeconds    uint32          `json:"vesting_seconds"`
	CoinSecondsEarned decimal.Decimal `json:"coin_seconds_earned"`
}

type VestingBalance struct {
	ID      ObjectID      `json:"id"`
	Owner   ObjectID      `json:"owner"`
	Balance AssetAmount   `json:"balance"`
	Policy  VestingPolicy `json:"-"`
}

func (v *VestingBalance) UnmarshalJSON(input []byte) error {
	type plain VestingBalance
	aux := struct {
		*plain
		Policy []json.RawMessage `json:"policy"`
	}{plain: (*plain)(v)}
	if err := json.Unmarshal(input, &aux); err != nil {
		return errors.Wrap(ErrJSONFormatErr, err.Error())
	}
	if len(aux.Policy) == 2 {
		if err := json.Unmarshal(aux.Policy[1], &v.Policy); err != nil {
			return errors.Wrap(ErrJSONFormatErr, err.Error())
		}
	}
	return nil
}

// Confirmation is returned by a synchronous broadcast
type Confirmation struct {
	ID       string `json:"id"`
	BlockNum uint32 `json:"block_num"`
	TrxNum   uint32 `json:"trx_num"`
	Expired  bool   `json:"expired"`
}

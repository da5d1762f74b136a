package prototype

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gxchain/gxwallet/common/encoding/graphene"
	"github.com/pkg/errors"
)

const (
	VoteCommittee uint8 = 0
	VoteWitness   uint8 = 1
)

// VoteID is the "type:instance" tuple a vote points at
type VoteID struct {
	Type     uint8
	Instance uint32
}

func ParseVoteID(s string) (VoteID, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return VoteID{}, errors.Wrapf(ErrVoteIDFormat, "%q", s)
	}
	typ, err := strconv.ParseUint(parts[0], 10, 8)
	if err != nil {
		return VoteID{}, errors.Wrapf(ErrVoteIDFormat, "%q", s)
	}
	inst, err := strconv.ParseUint(parts[1], 10, 24)
	if err != nil {
		return VoteID{}, errors.Wrapf(ErrVoteIDFormat, "%q", s)
	}
	return VoteID{Type: uint8(typ), Instance: uint32(inst)}, nil
}

func (v VoteID) String() string {
	return fmt.Sprintf("%d:%d", v.Type, v.Instance)
}

func (v VoteID) Serialize(enc *graphene.Encoder) {
	enc.WriteUint32(uint32(v.Type) | v.Instance<<8)
}

func (v VoteID) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *VoteID) UnmarshalJSON(input []byte) error {
	var s string
	if err := json.Unmarshal(input, &s); err != nil {
		return errors.Wrap(ErrJSONFormatErr, err.Error())
	}
	res, err := ParseVoteID(s)
	if err != nil {
		return err
	}
	*v = res
	return nil
}

// SortVotes orders votes by instance ascending, keeping input order on ties
func SortVotes(votes []VoteID) {
	sort.SliceStable(votes, func(i, j int) bool {
		return votes[i].Instance < votes[j].Instance
	})
}

// UniqueVotes drops repeated votes, keeping the first occurrence
func UniqueVotes(votes []VoteID) []VoteID {
	seen := make(map[VoteID]bool, len(votes))
	out := make([]VoteID, 0, len(votes))
	for _, v := range votes {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// CountVotes returns the number of committee and witness votes
func CountVotes(votes []VoteID) (committee, witness int) {
	for _, v := range votes {
		switch v.Type {
		case VoteCommittee:
			committee++
		case VoteWitness:
			witness++
		}
	}
	return
}

package prototype

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/gxchain/gxwallet/common/encoding/graphene"
	"github.com/pkg/errors"
)

// Share is an integer amount in minor units. The node may send it as a JSON
// number or, for large values, as a string.
type Share int64

func (s *Share) UnmarshalJSON(input []byte) error {
	input = bytes.Trim(input, `"`)
	v, err := strconv.ParseInt(string(input), 10, 64)
	if err != nil {
		return errors.Wrap(ErrJSONFormatErr, err.Error())
	}
	*s = Share(v)
	return nil
}

type AssetAmount struct {
	Amount  Share    `json:"amount"`
	AssetID ObjectID `json:"asset_id"`
}

func NewAssetAmount(amount int64, assetID ObjectID) AssetAmount {
	return AssetAmount{Amount: Share(amount), AssetID: assetID}
}

func (a AssetAmount) NonZero() bool {
	return a.Amount != 0
}

func (a AssetAmount) Serialize(enc *graphene.Encoder) {
	enc.WriteInt64(int64(a.Amount))
	a.AssetID.Serialize(enc)
}

func (a AssetAmount) MarshalJSON() ([]byte, error) {
	type plain struct {
		Amount  int64    `json:"amount"`
		AssetID ObjectID `json:"asset_id"`
	}
	return json.Marshal(plain{Amount: int64(a.Amount), AssetID: a.AssetID})
}

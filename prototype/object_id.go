package prototype

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gxchain/gxwallet/common/encoding/graphene"
	"github.com/pkg/errors"
)

// ObjectID is a graphene "space.type.instance" identifier
type ObjectID struct {
	Space    uint8
	Type     uint8
	Instance uint64
}

var (
	ProxyToSelfAccount        = ObjectID{Space: 1, Type: 2, Instance: 5}
	CoreAssetID               = ObjectID{Space: 1, Type: 3, Instance: 1}
	GlobalPropertiesID        = ObjectID{Space: 2, Type: 0, Instance: 0}
	DynamicGlobalPropertiesID = ObjectID{Space: 2, Type: 1, Instance: 0}
)

func ParseObjectID(s string) (ObjectID, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return ObjectID{}, errors.Wrapf(ErrObjectIDFormat, "%q", s)
	}
	space, err := strconv.ParseUint(parts[0], 10, 8)
	if err != nil {
		return ObjectID{}, errors.Wrapf(ErrObjectIDFormat, "%q", s)
	}
	typ, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil {
		return ObjectID{}, errors.Wrapf(ErrObjectIDFormat, "%q", s)
	}
	inst, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return ObjectID{}, errors.Wrapf(ErrObjectIDFormat, "%q", s)
	}
	return ObjectID{Space: uint8(space), Type: uint8(typ), Instance: inst}, nil
}

// MustParseObjectID is for constants in tests and defaults
func MustParseObjectID(s string) ObjectID {
	id, err := ParseObjectID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ObjectID) String() string {
	return fmt.Sprintf("%d.%d.%d", id.Space, id.Type, id.Instance)
}

func (id ObjectID) IsZero() bool {
	return id == ObjectID{}
}

// Serialize writes only the instance, the space and type are implied by the field
func (id ObjectID) Serialize(enc *graphene.Encoder) {
	enc.WriteVarUint(id.Instance)
}

func (id ObjectID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

func (id *ObjectID) UnmarshalJSON(input []byte) error {
	var s string
	if err := json.Unmarshal(input, &s); err != nil {
		return errors.Wrap(ErrJSONFormatErr, err.Error())
	}
	res, err := ParseObjectID(s)
	if err != nil {
		return err
	}
	*id = res
	return nil
}

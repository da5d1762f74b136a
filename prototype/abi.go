package prototype

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gxchain/gxwallet/common/encoding/graphene"
	"github.com/pkg/errors"
)

var ErrAbi = errors.New("abi error")

type AbiTypeDef struct {
	NewTypeName string `json:"new_type_name"`
	Type        string `json:"type"`
}

type AbiField struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type AbiStruct struct {
	Name   string     `json:"name"`
	Base   string     `json:"base"`
	Fields []AbiField `json:"fields"`
}

type AbiAction struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Payable bool   `json:"payable"`
}

// Abi is the interface description a contract account publishes
type Abi struct {
	Version string            `json:"version"`
	Types   []AbiTypeDef      `json:"types"`
	Structs []AbiStruct       `json:"structs"`
	Actions []AbiAction       `json:"actions"`
	Tables  []json.RawMessage `json:"tables"`
}

func (a *Abi) Action(name string) (*AbiAction, bool) {
	for i := range a.Actions {
		if a.Actions[i].Name == name {
			return &a.Actions[i], true
		}
	}
	return nil, false
}

func (a *Abi) findStruct(name string) (*AbiStruct, bool) {
	for i := range a.Structs {
		if a.Structs[i].Name == name {
			return &a.Structs[i], true
		}
	}
	return nil, false
}

func (a *Abi) resolveType(t string) string {
	for depth := 0; depth < 32; depth++ {
		found := false
		for _, td := range a.Types {
			if td.NewTypeName == t {
				t, found = td.Type, true
				break
			}
		}
		if !found {
			break
		}
	}
	return t
}

// EncodeAction serializes params against the struct the named action takes
func (a *Abi) EncodeAction(method string, params map[string]interface{}) ([]byte, error) {
	action, ok := a.Action(method)
	if !ok {
		return nil, errors.Wrapf(ErrAbi, "contract has no action %q", method)
	}
	enc := graphene.NewEncoder()
	if err := a.encode(enc, action.Type, params, method); err != nil {
		return nil, err
	}
	return enc.Bytes(), nil
}

func (a *Abi) encode(enc *graphene.Encoder, typ string, v interface{}, path string) error {
	typ = a.resolveType(typ)

	if strings.HasSuffix(typ, "[]") {
		items, ok := v.([]interface{})
		if !ok {
			return errors.Wrapf(ErrAbi, "%s: expected array for %s", path, typ)
		}
		enc.WriteVarUint(uint64(len(items)))
		for i, item := range items {
			if err := a.encode(enc, strings.TrimSuffix(typ, "[]"), item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		return nil
	}
	if strings.HasSuffix(typ, "?") {
		if !enc.WriteOptional(v != nil) {
			return nil
		}
		return a.encode(enc, strings.TrimSuffix(typ, "?"), v, path)
	}
	if st, ok := a.findStruct(typ); ok {
		return a.encodeStruct(enc, st, v, path)
	}
	return encodeBuiltin(enc, typ, v, path)
}

func (a *Abi) encodeStruct(enc *graphene.Encoder, st *AbiStruct, v interface{}, path string) error {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return errors.Wrapf(ErrAbi, "%s: expected object for %s", path, st.Name)
	}
	if st.Base != "" {
		base, ok := a.findStruct(a.resolveType(st.Base))
		if !ok {
			return errors.Wrapf(ErrAbi, "%s: unknown base %s", path, st.Base)
		}
		if err := a.encodeStruct(enc, base, obj, path); err != nil {
			return err
		}
	}
	for _, f := range st.Fields {
		fv, present := obj[f.Name]
		if !present && !strings.HasSuffix(f.Type, "?") {
			return errors.Wrapf(ErrAbi, "%s: missing field %s", path, f.Name)
		}
		if err := a.encode(enc, f.Type, fv, path+"."+f.Name); err != nil {
			return err
		}
	}
	return nil
}

func encodeBuiltin(enc *graphene.Encoder, typ string, v interface{}, path string) error {
	switch typ {
	case "bool":
		b, ok := v.(bool)
		if !ok {
			return errors.Wrapf(ErrAbi, "%s: expected bool", path)
		}
		enc.WriteBool(b)
	case "int8", "int16", "int32", "int64", "varint32":
		bits := map[string]int{"int8": 8, "int16": 16, "int32": 32, "int64": 64, "varint32": 32}[typ]
		n, err := toInt64(v, bits)
		if err != nil {
			return errors.Wrapf(ErrAbi, "%s: %v", path, err)
		}
		switch typ {
		case "int8":
			enc.WriteInt8(int8(n))
		case "int16":
			enc.WriteInt16(int16(n))
		case "int32":
			enc.WriteInt32(int32(n))
		case "int64":
			enc.WriteInt64(n)
		default:
			enc.WriteVarInt32(int32(n))
		}
	case "uint8", "uint16", "uint32", "uint64", "varuint32":
		bits := map[string]int{"uint8": 8, "uint16": 16, "uint32": 32, "uint64": 64, "varuint32": 32}[typ]
		n, err := toUint64(v, bits)
		if err != nil {
			return errors.Wrapf(ErrAbi, "%s: %v", path, err)
		}
		switch typ {
		case "uint8":
			enc.WriteUint8(uint8(n))
		case "uint16":
			enc.WriteUint16(uint16(n))
		case "uint32":
			enc.WriteUint32(uint32(n))
		case "uint64":
			enc.WriteUint64(n)
		default:
			enc.WriteVarUint(n)
		}
	case "float64":
		f, err := toFloat64(v)
		if err != nil {
			return errors.Wrapf(ErrAbi, "%s: %v", path, err)
		}
		enc.WriteUint64(math.Float64bits(f))
	case "string":
		s, ok := v.(string)
		if !ok {
			return errors.Wrapf(ErrAbi, "%s: expected string", path)
		}
		enc.WriteString(s)
	case "bytes":
		b, err := hexParam(v, -1)
		if err != nil {
			return errors.Wrapf(ErrAbi, "%s: %v", path, err)
		}
		enc.WriteBytes(b)
	case "checksum160", "checksum256", "checksum512":
		size := map[string]int{"checksum160": 20, "checksum256": 32, "checksum512": 64}[typ]
		b, err := hexParam(v, size)
		if err != nil {
			return errors.Wrapf(ErrAbi, "%s: %v", path, err)
		}
		enc.WriteFixed(b)
	case "name":
		s, ok := v.(string)
		if !ok {
			return errors.Wrapf(ErrAbi, "%s: expected name", path)
		}
		enc.WriteUint64(NameToUint64(s))
	case "time_point_sec":
		s, ok := v.(string)
		if !ok {
			return errors.Wrapf(ErrAbi, "%s: expected time", path)
		}
		t, err := TimePointSecFromString(s)
		if err != nil {
			return errors.Wrapf(ErrAbi, "%s: %v", path, err)
		}
		t.Serialize(enc)
	case "contract_asset":
		obj, ok := v.(map[string]interface{})
		if !ok {
			return errors.Wrapf(ErrAbi, "%s: expected asset object", path)
		}
		amount, err := toInt64(obj["amount"], 64)
		if err != nil {
			return errors.Wrapf(ErrAbi, "%s.amount: %v", path, err)
		}
		assetID, err := contractAssetID(obj["asset_id"])
		if err != nil {
			return errors.Wrapf(ErrAbi, "%s.asset_id: %v", path, err)
		}
		enc.WriteInt64(amount)
		enc.WriteUint64(assetID)
	default:
		return errors.Wrapf(ErrAbi, "%s: unsupported type %s", path, typ)
	}
	return nil
}

func contractAssetID(v interface{}) (uint64, error) {
	if s, ok := v.(string); ok && strings.Count(s, ".") == 2 {
		id, err := ParseObjectID(s)
		if err != nil {
			return 0, err
		}
		return id.Instance, nil
	}
	return toUint64(v, 64)
}

func hexParam(v interface{}, size int) ([]byte, error) {
	s, ok := v.(string)
	if !ok {
		return nil, errors.New("expected hex string")
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if size >= 0 && len(b) != size {
		return nil, errors.Errorf("expected %d bytes, got %d", size, len(b))
	}
	return b, nil
}

func numberString(v interface{}) (string, error) {
	switch n := v.(type) {
	case json.Number:
		return n.String(), nil
	case string:
		return n, nil
	case float64:
		if n != math.Trunc(n) {
			return "", errors.Errorf("%v is not an integer", n)
		}
		return strconv.FormatFloat(n, 'f', 0, 64), nil
	case int:
		return strconv.Itoa(n), nil
	case int64:
		return strconv.FormatInt(n, 10), nil
	case uint64:
		return strconv.FormatUint(n, 10), nil
	}
	return "", errors.Errorf("expected number, got %T", v)
}

func toInt64(v interface{}, bits int) (int64, error) {
	s, err := numberString(v)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(s, 10, bits)
}

func toUint64(v interface{}, bits int) (uint64, error) {
	s, err := numberString(v)
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(s, 10, bits)
}

func toFloat64(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(n, 64)
	}
	return 0, errors.Errorf("expected number, got %T", v)
}

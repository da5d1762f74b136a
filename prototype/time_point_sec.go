package prototype

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gxchain/gxwallet/common/encoding/graphene"
	"github.com/pkg/errors"
)

const timeFormat = "2006-01-02T15:04:05"

// TimePointSec is a UTC timestamp with second precision
type TimePointSec struct {
	UtcSeconds uint32
}

func NewTimePointSec(t time.Time) TimePointSec {
	return TimePointSec{UtcSeconds: uint32(t.Unix())}
}

func (m TimePointSec) Add(value uint32) TimePointSec {
	m.UtcSeconds += value
	return m
}

func (m TimePointSec) Time() time.Time {
	return time.Unix(int64(m.UtcSeconds), 0).UTC()
}

func (m TimePointSec) String() string {
	return m.Time().Format(timeFormat)
}

// TimePointSecFromString parses chain time. The node omits the zone, it is always UTC.
func TimePointSecFromString(str string) (TimePointSec, error) {
	value, err := time.Parse(timeFormat, strings.TrimSuffix(str, "Z"))
	if err != nil {
		return TimePointSec{}, err
	}
	return NewTimePointSec(value), nil
}

func (m TimePointSec) Serialize(enc *graphene.Encoder) {
	enc.WriteUint32(m.UtcSeconds)
}

func (m TimePointSec) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *TimePointSec) UnmarshalJSON(input []byte) error {
	var s string
	if err := json.Unmarshal(input, &s); err != nil {
		return errors.Wrap(ErrJSONFormatErr, err.Error())
	}
	res, err := TimePointSecFromString(s)
	if err != nil {
		return err
	}
	*m = res
	return nil
}

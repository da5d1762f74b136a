// Package graphene implements the little-endian binary format used by
// graphene chains to digest and sign transactions.
package graphene

import (
	"bytes"
	"encoding/binary"
)

// Serializer is implemented by every type that has a wire representation
type Serializer interface {
	Serialize(enc *Encoder)
}

type Encoder struct {
	buf bytes.Buffer
}

func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode serializes a single value into a fresh buffer
func Encode(s Serializer) []byte {
	enc := NewEncoder()
	s.Serialize(enc)
	return enc.Bytes()
}

func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

func (e *Encoder) WriteBool(v bool) {
	if v {
		e.buf.WriteByte(1)
	} else {
		e.buf.WriteByte(0)
	}
}

func (e *Encoder) WriteUint8(v uint8) {
	e.buf.WriteByte(v)
}

func (e *Encoder) WriteUint16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	e.buf.Write(b[:])
}

func (e *Encoder) WriteUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buf.Write(b[:])
}

func (e *Encoder) WriteUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buf.Write(b[:])
}

func (e *Encoder) WriteInt8(v int8)   { e.WriteUint8(uint8(v)) }
func (e *Encoder) WriteInt16(v int16) { e.WriteUint16(uint16(v)) }
func (e *Encoder) WriteInt32(v int32) { e.WriteUint32(uint32(v)) }
func (e *Encoder) WriteInt64(v int64) { e.WriteUint64(uint64(v)) }

// WriteVarUint writes an unsigned LEB128 integer
func (e *Encoder) WriteVarUint(v uint64) {
	var b [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(b[:], v)
	e.buf.Write(b[:n])
}

// WriteVarInt32 writes a zigzag encoded signed integer
func (e *Encoder) WriteVarInt32(v int32) {
	e.WriteVarUint(uint64(uint32((v << 1) ^ (v >> 31))))
}

// WriteFixed writes raw bytes without a length prefix
func (e *Encoder) WriteFixed(b []byte) {
	e.buf.Write(b)
}

// WriteBytes writes a length prefixed byte string
func (e *Encoder) WriteBytes(b []byte) {
	e.WriteVarUint(uint64(len(b)))
	e.buf.Write(b)
}

func (e *Encoder) WriteString(s string) {
	e.WriteBytes([]byte(s))
}

// WriteOptional writes the presence flag of an optional field and reports it
func (e *Encoder) WriteOptional(present bool) bool {
	e.WriteBool(present)
	return present
}

// WriteEmptyExtensions writes an empty extension set
func (e *Encoder) WriteEmptyExtensions() {
	e.WriteVarUint(0)
}

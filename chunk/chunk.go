// Package chunk encodes and verifies the fixed-size records written into the
// test file. A record is 8 little-endian uint64 fields packed back to back:
//
//	offset, pad0..pad5 (holding 0..5), not_offset
//
// where offset is the record's byte position in the file and not_offset its
// bitwise complement.
package chunk

import (
	"encoding/binary"
	"fmt"
)

// Size is the encoded length of a record in bytes.
const Size = 8 * 8

const numPads = 6

// Record is a decoded chunk.
type Record struct {
	Offset    uint64
	Pads      [numPads]uint64
	NotOffset uint64
}

// Mismatch identifies which field of a record failed verification.
type Mismatch int

const (
	Valid Mismatch = iota
	BadOffset
	BadPad0
	BadPad1
	BadPad2
	BadPad3
	BadPad4
	BadPad5
	BadNotOffset
	// Truncated is returned for input shorter than Size.
	Truncated
)

func (m Mismatch) String() string {
	switch {
	case m == Valid:
		return "valid"
	case m == BadOffset:
		return "bad offset value"
	case m >= BadPad0 && m <= BadPad5:
		return fmt.Sprintf("bad pad%d value", int(m-BadPad0))
	case m == BadNotOffset:
		return "bad not_offset value"
	case m == Truncated:
		return "truncated record"
	}
	return fmt.Sprintf("mismatch(%d)", int(m))
}

// New returns the record expected at offset.
func New(offset uint64) Record {
	r := Record{Offset: offset, NotOffset: ^offset}
	for i := range r.Pads {
		r.Pads[i] = uint64(i)
	}
	return r
}

// Encode returns the encoded record for offset.
func Encode(offset uint64) []byte {
	b := make([]byte, Size)
	EncodeTo(b, offset)
	return b
}

// EncodeTo writes the record for offset into dst, which must be at least Size bytes.
func EncodeTo(dst []byte, offset uint64) {
	New(offset).MarshalTo(dst)
}

// MarshalTo writes r into dst field by field. dst must be at least Size bytes.
func (r Record) MarshalTo(dst []byte) {
	_ = dst[Size-1]
	binary.LittleEndian.PutUint64(dst[0:], r.Offset)
	for i, p := range r.Pads {
		binary.LittleEndian.PutUint64(dst[8+8*i:], p)
	}
	binary.LittleEndian.PutUint64(dst[8+8*numPads:], r.NotOffset)
}

// Decode reads a record from the first Size bytes of b. ok is false if b is too short.
func Decode(b []byte) (r Record, ok bool) {
	if len(b) < Size {
		return r, false
	}
	r.Offset = binary.LittleEndian.Uint64(b[0:])
	for i := range r.Pads {
		r.Pads[i] = binary.LittleEndian.Uint64(b[8+8*i:])
	}
	r.NotOffset = binary.LittleEndian.Uint64(b[8+8*numPads:])
	return r, true
}

// Check compares r with the record expected at offset. Fields are checked in
// layout order and the first mismatch is reported.
func (r Record) Check(offset uint64) Mismatch {
	if r.Offset != offset {
		return BadOffset
	}
	for i, p := range r.Pads {
		if p != uint64(i) {
			return BadPad0 + Mismatch(i)
		}
	}
	if r.NotOffset != ^offset {
		return BadNotOffset
	}
	return Valid
}

// Verify decodes the record at the start of b and checks it against offset.
func Verify(b []byte, offset uint64) Mismatch {
	r, ok := Decode(b)
	if !ok {
		return Truncated
	}
	return r.Check(offset)
}

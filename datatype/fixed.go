package datatype

import (
	"encoding/binary"
	"math"
)

// Long encodes an int64 in 8 bytes.
type Long struct{}

func (Long) Size() int { return 8 }

func (Long) Read(b []byte, off int) int64 {
	return int64(binary.LittleEndian.Uint64(b[off:]))
}

func (Long) Write(b []byte, off int, v int64) {
	binary.LittleEndian.PutUint64(b[off:], uint64(v))
}

// Int encodes an int32 in 4 bytes.
type Int struct{}

func (Int) Size() int { return 4 }

func (Int) Read(b []byte, off int) int32 {
	return int32(binary.LittleEndian.Uint32(b[off:]))
}

func (Int) Write(b []byte, off int, v int32) {
	binary.LittleEndian.PutUint32(b[off:], uint32(v))
}

// Byte encodes a single byte.
type Byte struct{}

func (Byte) Size() int                       { return 1 }
func (Byte) Read(b []byte, off int) byte     { return b[off] }
func (Byte) Write(b []byte, off int, v byte) { b[off] = v }

// Coordinate is a longitude/latitude pair in degrees.
type Coordinate struct {
	Lon float64
	Lat float64
}

// CoordinateType encodes a Coordinate as two float64 values (16 bytes).
type CoordinateType struct{}

func (CoordinateType) Size() int { return 16 }

func (CoordinateType) Read(b []byte, off int) Coordinate {
	return Coordinate{
		Lon: math.Float64frombits(binary.LittleEndian.Uint64(b[off:])),
		Lat: math.Float64frombits(binary.LittleEndian.Uint64(b[off+8:])),
	}
}

func (CoordinateType) Write(b []byte, off int, v Coordinate) {
	binary.LittleEndian.PutUint64(b[off:], math.Float64bits(v.Lon))
	binary.LittleEndian.PutUint64(b[off+8:], math.Float64bits(v.Lat))
}

// CompactCoordinateType encodes a Coordinate as two float32 values (8 bytes).
// Precision drops to roughly a metre at the equator.
type CompactCoordinateType struct{}

func (CompactCoordinateType) Size() int { return 8 }

func (CompactCoordinateType) Read(b []byte, off int) Coordinate {
	return Coordinate{
		Lon: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))),
		Lat: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[off+4:]))),
	}
}

func (CompactCoordinateType) Write(b []byte, off int, v Coordinate) {
	binary.LittleEndian.PutUint32(b[off:], math.Float32bits(float32(v.Lon)))
	binary.LittleEndian.PutUint32(b[off+4:], math.Float32bits(float32(v.Lat)))
}

// Pair holds two values stored side by side.
type Pair[A, B any] struct {
	Left  A
	Right B
}

// PairType encodes a Pair as Left followed by Right.
type PairType[A, B any] struct {
	left  Fixed[A]
	right Fixed[B]
}

// NewPairType returns a codec for Pair[A, B].
func NewPairType[A, B any](left Fixed[A], right Fixed[B]) PairType[A, B] {
	return PairType[A, B]{left: left, right: right}
}

func (p PairType[A, B]) Size() int {
	return p.left.Size() + p.right.Size()
}

func (p PairType[A, B]) Read(b []byte, off int) Pair[A, B] {
	return Pair[A, B]{
		Left:  p.left.Read(b, off),
		Right: p.right.Read(b, off+p.left.Size()),
	}
}

func (p PairType[A, B]) Write(b []byte, off int, v Pair[A, B]) {
	p.left.Write(b, off, v.Left)
	p.right.Write(b, off+p.left.Size(), v.Right)
}

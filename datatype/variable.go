package datatype

import "encoding/binary"

// LongList encodes a []int64 as a 4-byte count followed by count 8-byte values.
type LongList struct{}

func (LongList) Size(v []int64) int { return 4 + 8*len(v) }
func (LongList) HeaderSize() int    { return 4 }

func (LongList) SizeAt(b []byte, off int) int {
	return 4 + 8*int(binary.LittleEndian.Uint32(b[off:]))
}

func (LongList) Read(b []byte, off int) []int64 {
	n := int(binary.LittleEndian.Uint32(b[off:]))
	v := make([]int64, n)
	p := off + 4
	for i := range v {
		v[i] = int64(binary.LittleEndian.Uint64(b[p:]))
		p += 8
	}
	return v
}

func (LongList) Write(b []byte, off int, v []int64) {
	binary.LittleEndian.PutUint32(b[off:], uint32(len(v)))
	p := off + 4
	for _, x := range v {
		binary.LittleEndian.PutUint64(b[p:], uint64(x))
		p += 8
	}
}

// String encodes a string as a 4-byte length followed by its bytes.
type String struct{}

func (String) Size(v string) int { return 4 + len(v) }
func (String) HeaderSize() int   { return 4 }

func (String) SizeAt(b []byte, off int) int {
	return 4 + int(binary.LittleEndian.Uint32(b[off:]))
}

func (String) Read(b []byte, off int) string {
	n := int(binary.LittleEndian.Uint32(b[off:]))
	return string(b[off+4 : off+4+n])
}

func (String) Write(b []byte, off int, v string) {
	binary.LittleEndian.PutUint32(b[off:], uint32(len(v)))
	copy(b[off+4:], v)
}

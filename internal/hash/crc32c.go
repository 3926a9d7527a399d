package hash

import (
	"hash"
	"hash/crc32"
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// CRC32C returns the CRC32-Castagnoli checksum of a whole segment.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, castagnoli)
}

// NewCRC32C returns a CRC32-Castagnoli hash for segments read in chunks.
func NewCRC32C() hash.Hash32 {
	return crc32.New(castagnoli)
}

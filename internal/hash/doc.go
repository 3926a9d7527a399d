// Package hash provides CRC32-Castagnoli checksums for snapshot segments.
//
// CRC32C is hardware accelerated on x86 (SSE4.2) and ARM (CRC extension), so
// checksumming a gigabyte segment costs a fraction of compressing it. Export
// sums a mapped segment in one call; Import feeds the streaming hash while
// it decompresses.
package hash

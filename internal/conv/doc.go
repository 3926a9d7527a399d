// Package conv narrows integers with bounds checks where a value read from
// disk or derived from a 64-bit position is converted: segment indexes into
// uint32 bitmap members and segment counts derived from file sizes.
//
// Offsets already masked to the segment size are converted with plain casts.
package conv

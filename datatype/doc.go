// Package datatype defines the binary codecs used to lay values out inside
// memory segments.
//
// Fixed codecs always occupy Size() bytes; collections that address elements
// by shift require that size to be a power of two. Variable codecs start with
// a header of HeaderSize() bytes from which SizeAt recovers the full encoded
// length, which lets an append-only buffer decode a value from its position
// alone.
//
// All multi-byte values are little-endian.
package datatype

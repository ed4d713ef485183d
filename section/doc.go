// Package section defines the byte-level layout of quadpack files.
//
// # Raw format
//
// The raw format is a fixed header followed by one fixed-size record per node
// in pre-order:
//
//	Bytes  | Field      | Type
//	-------|------------|-------
//	0-3    | LeafCount  | uint32
//	4-7    | NodeCount  | uint32
//	8-...  | Records    | NodeCount x 24 bytes
//
// Record (24 bytes, the natural layout of a 4-byte aligned struct):
//
//	Bytes  | Field        | Type
//	-------|--------------|-------
//	0      | R            | uint8
//	1      | G            | uint8
//	2      | B            | uint8
//	3      | pad          | always 0
//	4-7    | Area         | uint32
//	8-11   | TopLeft      | int32
//	12-15  | TopRight     | int32
//	16-19  | BottomLeft   | int32
//	20-23  | BottomRight  | int32
//
// Child fields hold the index of the child record or -1. Integers use the
// byte order chosen by the caller through an endian.EndianEngine; the raw
// format carries no marker, so both sides must agree.
//
// # Container
//
// The optional container wraps a compressed raw payload:
//
//	Bytes  | Field        | Type
//	-------|--------------|-------
//	0-1    | Magic        | uint16 0x5154
//	2      | Flags        | bit 0: big-endian payload
//	3      | Compression  | format.CompressionType
//	4-7    | RawLength    | uint32
//	8-15   | Checksum     | uint64 xxhash64 of the raw payload
//	16-... | Payload      | compressed raw format
//
// Container fields are always little-endian.
package section

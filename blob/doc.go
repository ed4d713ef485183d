// Package blob encodes a flattened quadtree into the quadpack binary format
// and decodes it back.
//
// The raw format is an 8-byte header (leaf count, node count) followed by one
// 24-byte record per node; see package section for the exact layout. The
// encoder writes little-endian integers unless WithBigEndian is given.
//
//	enc, err := blob.NewEncoder()
//	if err != nil {
//		return err
//	}
//	data, err := enc.Encode(flat.Flatten(root))
//
// With WithCompression set to anything but format.CompressionNone the raw
// bytes are compressed and wrapped in a container that records the codec,
// the byte order and an xxhash64 checksum. The decoder recognizes both forms:
//
//	dec, err := blob.NewDecoder(data)
//	if err != nil {
//		return err
//	}
//	arr, err := dec.Decode()
//
// Encoders are reusable and safe for concurrent use once built. A Decoder is
// bound to one input and is not safe for concurrent use.
package blob

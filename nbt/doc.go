// Package nbt decodes the Named Binary Tag format used by world saves into a
// typed, immutable tag tree.
//
// The format is a self-describing recursive container: a stream of
// (kind byte, name, payload) triples where payloads may themselves be lists or
// compounds of further tags. All multi-byte numerics are big-endian and strings
// are length-prefixed modified UTF-8. See format.TagType for the 13 wire kinds.
//
// # Basic Usage
//
// Decode a root compound from raw (already decompressed) bytes:
//
//	root, err := nbt.Decode(payload)
//	if err != nil {
//	    return err
//	}
//	if ver, ok := root.GetInt("DataVersion"); ok {
//	    fmt.Println("data version:", ver)
//	}
//
// The decoded tree is exclusively owned by the caller: byte arrays are copied
// out of the input buffer, so the input slice may be reused or pooled after
// Decode returns.
//
// # Error Handling
//
// Structural failures are reported via the package sentinel errors
// (ErrTruncated, ErrUnknownTag, ErrMalformedLength, ErrRootNotCompound),
// wrapped with positional context. Use errors.Is to classify them.
package nbt

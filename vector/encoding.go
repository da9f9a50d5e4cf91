package vector

import (
	"encoding/binary"
	"math"
)

// EncodeEmbedding packs vec as little-endian IEEE 754 float32 values with no
// length prefix; readers derive the length from the BLOB size. This is the
// layout vec_cosine reads.
func EncodeEmbedding(vec []float32) []byte {
	b := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return b
}

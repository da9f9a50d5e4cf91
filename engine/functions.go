package engine

import (
	"database/sql/driver"
	"encoding/binary"
	"fmt"
	"math"

	sqlite "modernc.org/sqlite"
)

// RegisterVectorFunctions registers vec_cosine(a BLOB, b BLOB) with the
// driver. Only connections opened after this call see the function.
//
// vec_cosine returns NULL when either argument is NULL, empty or has zero
// magnitude, so ORDER BY ... DESC places degenerate rows last.
func RegisterVectorFunctions() {
	// the driver rejects duplicate registrations; a second call is a no-op
	_ = sqlite.RegisterDeterministicScalarFunction("vec_cosine", 2, vecCosineImpl)
}

func vecCosineImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("vec_cosine: expected 2 arguments, got %d", len(args))
	}
	a, err := asEmbedding(args[0])
	if err != nil {
		return nil, err
	}
	b, err := asEmbedding(args[1])
	if err != nil {
		return nil, err
	}
	if len(a) == 0 || len(b) == 0 {
		return nil, nil
	}
	if len(a) != len(b) {
		return nil, fmt.Errorf("vec_cosine: dim mismatch %d vs %d", len(a), len(b))
	}
	var dot, na2, nb2 float64
	for i := range a {
		va, vb := float64(a[i]), float64(b[i])
		dot += va * vb
		na2 += va * va
		nb2 += vb * vb
	}
	if na2 == 0 || nb2 == 0 {
		return nil, nil
	}
	return dot / (math.Sqrt(na2) * math.Sqrt(nb2)), nil
}

// asEmbedding decodes the little-endian float32 BLOB written by
// vector.EncodeEmbedding.
func asEmbedding(arg driver.Value) ([]float32, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		if len(v)%4 != 0 {
			return nil, fmt.Errorf("vec_cosine: invalid embedding blob length %d", len(v))
		}
		out := make([]float32, len(v)/4)
		for i := range out {
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(v[i*4:]))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("vec_cosine: unsupported argument type %T for embedding; want BLOB", arg)
	}
}

package serialization

import (
	"encoding/binary"
	"fmt"
	"math"

	bfloat16 "github.com/d4l3k/go-bfloat16"
	"github.com/x448/float16"
)

// DType is a SafeTensors element type.
type DType string

// Floating point dtypes that can be loaded as float32.
const (
	F16  DType = "F16"
	BF16 DType = "BF16"
	F32  DType = "F32"
	F64  DType = "F64"
)

// Size returns the element size in bytes, or 0 for unsupported dtypes.
func (d DType) Size() int {
	switch d {
	case F16, BF16:
		return 2
	case F32:
		return 4
	case F64:
		return 8
	default:
		return 0
	}
}

// decodeFloat32 converts little-endian data of the given dtype to float32.
func decodeFloat32(dtype DType, data []byte) ([]float32, error) {
	size := dtype.Size()
	if size == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDType, dtype)
	}
	if len(data)%size != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrSizeMismatch, len(data), size)
	}

	n := len(data) / size
	switch dtype {
	case F32:
		out := make([]float32, n)
		for i := range out {
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
		}
		return out, nil
	case F64:
		out := make([]float32, n)
		for i := range out {
			out[i] = float32(math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:])))
		}
		return out, nil
	case F16:
		out := make([]float32, n)
		for i := range out {
			out[i] = float16.Frombits(binary.LittleEndian.Uint16(data[i*2:])).Float32()
		}
		return out, nil
	default: // BF16
		return bfloat16.DecodeFloat32(data), nil
	}
}

package serialization

import (
	"fmt"
	"sort"
	"strings"
)

// Validation limits for security and resource protection.
const (
	MaxHeaderSize    = 100 * 1024 * 1024 // 100MB - maximum header size
	MaxTensorCount   = 100_000           // Maximum number of tensors in a file
	MaxTensorNameLen = 4096              // Maximum tensor name length
)

// validateTensorName rejects names that cannot come from a module state
// dictionary.
func validateTensorName(name string) error {
	if name == "" || len(name) > MaxTensorNameLen {
		return &ValidationError{
			Err:     ErrInvalidTensorName,
			Tensor:  name,
			Details: fmt.Sprintf("length %d not in [1, %d]", len(name), MaxTensorNameLen),
		}
	}
	if strings.ContainsAny(name, "/\\\x00") {
		return &ValidationError{
			Err:     ErrInvalidTensorName,
			Tensor:  name,
			Details: "contains a path separator or null byte",
		}
	}
	return nil
}

// validateInfos checks every tensor entry against the data section size:
// sizes must agree with dtype and shape, regions must be in bounds and must
// not overlap.
func validateInfos(infos map[string]TensorInfo, dataSize int64) error {
	if len(infos) > MaxTensorCount {
		return &ValidationError{
			Err:     ErrTooManyTensors,
			Details: fmt.Sprintf("got %d, max %d", len(infos), MaxTensorCount),
		}
	}

	names := make([]string, 0, len(infos))
	for name, info := range infos {
		if err := validateTensorName(name); err != nil {
			return err
		}
		start, end := info.DataOffsets[0], info.DataOffsets[1]
		if start < 0 || end < start {
			return &ValidationError{
				Err:     ErrNegativeOffset,
				Tensor:  name,
				Details: fmt.Sprintf("offsets [%d, %d]", start, end),
			}
		}
		if end > dataSize {
			return &ValidationError{
				Err:     ErrOutOfBounds,
				Tensor:  name,
				Details: fmt.Sprintf("end %d > data_size %d", end, dataSize),
			}
		}
		if size := info.DType.Size(); size != 0 {
			if want := int64(info.numElements() * size); want != end-start {
				return &ValidationError{
					Err:     ErrSizeMismatch,
					Tensor:  name,
					Details: fmt.Sprintf("%s %v needs %d bytes, region has %d", info.DType, info.Shape, want, end-start),
				}
			}
		}
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		return infos[names[i]].DataOffsets[0] < infos[names[j]].DataOffsets[0]
	})
	for i := 0; i+1 < len(names); i++ {
		cur, next := infos[names[i]], infos[names[i+1]]
		if cur.DataOffsets[1] > next.DataOffsets[0] {
			return &ValidationError{
				Err:     ErrOffsetOverlap,
				Tensor:  names[i],
				Tensor2: names[i+1],
				Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap",
					cur.DataOffsets[0], cur.DataOffsets[1], next.DataOffsets[0], next.DataOffsets[1]),
			}
		}
	}

	return nil
}

package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"math"
	"path/filepath"
	"testing"

	"github.com/born-ml/regnet/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func rawOf(t *testing.T, shape tensor.Shape, data ...float32) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRawFrom(data, shape, tensor.CPU)
	require.NoError(t, err)
	return raw
}

// buildFile assembles a SafeTensors image from a header and a data section.
func buildFile(t *testing.T, header map[string]any, data []byte) []byte {
	t.Helper()
	headerJSON, err := json.Marshal(header)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint64(len(headerJSON))))
	buf.Write(headerJSON)
	buf.Write(data)
	return buf.Bytes()
}

func openBytes(t *testing.T, file []byte) (*Reader, error) {
	t.Helper()
	return NewReader(bytes.NewReader(file), int64(len(file)))
}

func TestEncode_RoundTrip(t *testing.T) {
	tensors := map[string]*tensor.RawTensor{
		"inc.conv.conv.0.conv.weight": rawOf(t, tensor.Shape{2, 1, 1, 1}, 1.5, -2),
		"outc.conv.bias":              rawOf(t, tensor.Shape{3}, 0.25, 0.5, 0.75),
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, tensors, map[string]string{"format": "pt"}))

	headerSize := binary.LittleEndian.Uint64(buf.Bytes()[:8])
	assert.Zero(t, headerSize%headerAlign)

	r, err := openBytes(t, buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, []string{"inc.conv.conv.0.conv.weight", "outc.conv.bias"}, r.TensorNames())
	assert.Equal(t, map[string]string{"format": "pt"}, r.Metadata())

	info, err := r.TensorInfo("outc.conv.bias")
	require.NoError(t, err)
	assert.Equal(t, F32, info.DType)
	assert.Equal(t, []int{3}, info.Shape)
	// Sorted order puts the weight (8 bytes) first.
	assert.Equal(t, [2]int64{8, 20}, info.DataOffsets)

	dict, err := r.ReadStateDict(tensor.CPU)
	require.NoError(t, err)
	require.Len(t, dict, 2)
	for name, want := range tensors {
		got := dict[name]
		require.NotNil(t, got, name)
		assert.Equal(t, want.Shape(), got.Shape())
		assert.Equal(t, want.AsFloat32(), got.AsFloat32())
	}
}

func TestWriteSafeTensors_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.safetensors")
	tensors := map[string]*tensor.RawTensor{"w": rawOf(t, tensor.Shape{2, 2}, 1, 2, 3, 4)}

	require.NoError(t, WriteSafeTensors(path, tensors, nil))

	dict, metadata, err := ReadSafeTensors(path, tensor.CPU)
	require.NoError(t, err)
	assert.Nil(t, metadata)
	assert.Equal(t, []float32{1, 2, 3, 4}, dict["w"].AsFloat32())
}

func TestEncode_RejectsInvalidName(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, map[string]*tensor.RawTensor{"a/b": rawOf(t, tensor.Shape{1}, 1)}, nil)
	assert.ErrorIs(t, err, ErrInvalidTensorName)
}

func TestLoadTensor_HalfPrecision(t *testing.T) {
	values := []float32{1, -0.5, 3.25, 0}

	f16 := make([]byte, 0, 8)
	bf16 := make([]byte, 0, 8)
	for _, v := range values {
		f16 = binary.LittleEndian.AppendUint16(f16, float16.Fromfloat32(v).Bits())
		bf16 = binary.LittleEndian.AppendUint16(bf16, uint16(math.Float32bits(v)>>16))
	}

	file := buildFile(t, map[string]any{
		"half":  map[string]any{"dtype": "F16", "shape": []int{2, 2}, "data_offsets": []int{0, 8}},
		"brain": map[string]any{"dtype": "BF16", "shape": []int{4}, "data_offsets": []int{8, 16}},
	}, append(f16, bf16...))

	r, err := openBytes(t, file)
	require.NoError(t, err)

	half, err := r.LoadTensor("half", tensor.CPU)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2}, half.Shape())
	assert.Equal(t, values, half.AsFloat32())

	brain, err := r.LoadTensor("brain", tensor.CPU)
	require.NoError(t, err)
	assert.Equal(t, values, brain.AsFloat32())
}

func TestLoadTensor_Float64(t *testing.T) {
	data := make([]byte, 0, 16)
	data = binary.LittleEndian.AppendUint64(data, math.Float64bits(0.5))
	data = binary.LittleEndian.AppendUint64(data, math.Float64bits(-8))

	file := buildFile(t, map[string]any{
		"x": map[string]any{"dtype": "F64", "shape": []int{2}, "data_offsets": []int{0, 16}},
	}, data)

	r, err := openBytes(t, file)
	require.NoError(t, err)
	x, err := r.LoadTensor("x", tensor.CPU)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, -8}, x.AsFloat32())
}

func TestReadStateDict_SkipsIntegerTensors(t *testing.T) {
	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data, math.Float32bits(2))

	file := buildFile(t, map[string]any{
		"norm.running_mean":        map[string]any{"dtype": "F32", "shape": []int{1}, "data_offsets": []int{0, 4}},
		"norm.num_batches_tracked": map[string]any{"dtype": "I64", "shape": []int{}, "data_offsets": []int{4, 12}},
	}, data)

	r, err := openBytes(t, file)
	require.NoError(t, err)

	dict, err := r.ReadStateDict(tensor.CPU)
	require.NoError(t, err)
	assert.Len(t, dict, 1)
	assert.Equal(t, []float32{2}, dict["norm.running_mean"].AsFloat32())

	_, err = r.LoadTensor("norm.num_batches_tracked", tensor.CPU)
	assert.ErrorIs(t, err, ErrUnsupportedDType)

	_, err = r.LoadTensor("missing", tensor.CPU)
	assert.ErrorIs(t, err, ErrTensorNotFound)
}

func TestNewReader_Validation(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]any
		data   int
		want   error
	}{
		{
			name: "out of bounds",
			header: map[string]any{
				"a": map[string]any{"dtype": "F32", "shape": []int{2}, "data_offsets": []int{0, 8}},
			},
			data: 4,
			want: ErrOutOfBounds,
		},
		{
			name: "overlap",
			header: map[string]any{
				"a": map[string]any{"dtype": "F32", "shape": []int{2}, "data_offsets": []int{0, 8}},
				"b": map[string]any{"dtype": "F32", "shape": []int{2}, "data_offsets": []int{4, 12}},
			},
			data: 12,
			want: ErrOffsetOverlap,
		},
		{
			name: "size mismatch",
			header: map[string]any{
				"a": map[string]any{"dtype": "F32", "shape": []int{3}, "data_offsets": []int{0, 8}},
			},
			data: 8,
			want: ErrSizeMismatch,
		},
		{
			name: "negative offset",
			header: map[string]any{
				"a": map[string]any{"dtype": "F32", "shape": []int{1}, "data_offsets": []int{8, 4}},
			},
			data: 8,
			want: ErrNegativeOffset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := openBytes(t, buildFile(t, tt.header, make([]byte, tt.data)))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewReader_HeaderTooLarge(t *testing.T) {
	file := make([]byte, 16)
	binary.LittleEndian.PutUint64(file, 1<<40)

	_, err := openBytes(t, file)
	assert.ErrorIs(t, err, ErrHeaderTooLarge)
}

func TestNewReader_Truncated(t *testing.T) {
	_, err := openBytes(t, []byte{1, 2, 3})
	assert.Error(t, err)
}

// Package imageio converts between images and [1, C, H, W] tensors.
//
// Decoding understands PNG, JPEG and WebP. Pixel values map to [0, 1];
// tensors are clamped to [0, 1] when converted back.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	// Registered decoders.
	_ "image/jpeg"

	"github.com/born-ml/regnet/internal/tensor"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ErrChannels is returned for channel counts other than 1 (gray) and 3 (RGB).
var ErrChannels = errors.New("unsupported channel count")

// Load decodes the image file at path.
func Load(path string) (image.Image, error) {
	//nolint:gosec // G304: image path comes from the command line
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

// Save writes img to path as PNG.
func Save(path string, img image.Image) (err error) {
	//nolint:gosec // G304: output path comes from the command line
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return Encode(file, img)
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// Resize scales img to width x height with bilinear filtering.
func Resize(img image.Image, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", width, height)
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst, nil
}

// ToTensor converts img to a [1, channels, H, W] tensor in [0, 1].
// channels 1 converts to luma; 3 keeps RGB and drops alpha.
func ToTensor[B tensor.Backend](img image.Image, channels int, backend B) (*tensor.Tensor[B], error) {
	if channels != 1 && channels != 3 {
		return nil, fmt.Errorf("%w: %d", ErrChannels, channels)
	}

	bounds := img.Bounds()
	h, w := bounds.Dy(), bounds.Dx()
	plane := h * w
	data := make([]float32, channels*plane)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			i := y*w + x
			if channels == 1 {
				g, _ := color.Gray16Model.Convert(c).(color.Gray16)
				data[i] = float32(g.Y) / 0xffff
				continue
			}
			r, g, b, _ := c.RGBA()
			data[i] = float32(r) / 0xffff
			data[plane+i] = float32(g) / 0xffff
			data[2*plane+i] = float32(b) / 0xffff
		}
	}

	return tensor.FromSlice(data, tensor.Shape{1, channels, h, w}, backend)
}

// FromTensor converts a [1, 1|3, H, W] tensor to an 8-bit image, clamping
// values to [0, 1].
func FromTensor[B tensor.Backend](t *tensor.Tensor[B]) (image.Image, error) {
	shape := t.Shape()
	if len(shape) != 4 || shape[0] != 1 {
		return nil, fmt.Errorf("expected [1, C, H, W] tensor, got %v", shape)
	}
	channels, h, w := shape[1], shape[2], shape[3]
	plane := h * w
	data := t.Data()

	switch channels {
	case 1:
		img := image.NewGray(image.Rect(0, 0, w, h))
		for i := 0; i < plane; i++ {
			img.Pix[(i/w)*img.Stride+i%w] = to8(data[i])
		}
		return img, nil
	case 3:
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		for i := 0; i < plane; i++ {
			o := (i/w)*img.Stride + (i%w)*4
			img.Pix[o] = to8(data[i])
			img.Pix[o+1] = to8(data[plane+i])
			img.Pix[o+2] = to8(data[2*plane+i])
			img.Pix[o+3] = 0xff
		}
		return img, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrChannels, channels)
	}
}

func to8(v float32) uint8 {
	if math.IsNaN(float64(v)) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(math.Round(float64(v) * 0xff))
}

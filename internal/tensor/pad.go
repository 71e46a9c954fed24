package tensor

import "fmt"

// PadMode selects how values outside the spatial extent are synthesized.
type PadMode int

// Padding modes, named after their torch.nn.functional.pad equivalents.
const (
	PadConstant  PadMode = iota // fill with a constant value (zero by default)
	PadReflect                  // mirror around the edge, excluding the edge
	PadReplicate                // repeat the edge value
	PadCircular                 // wrap around to the opposite edge
)

// String returns the mode name.
func (m PadMode) String() string {
	switch m {
	case PadConstant:
		return "constant"
	case PadReflect:
		return "reflect"
	case PadReplicate:
		return "replicate"
	case PadCircular:
		return "circular"
	default:
		return fmt.Sprintf("PadMode(%d)", int(m))
	}
}

// ParsePadMode converts a mode name into a PadMode.
// "zeros" is accepted as an alias for "constant".
func ParsePadMode(s string) (PadMode, error) {
	switch s {
	case "constant", "zeros":
		return PadConstant, nil
	case "reflect":
		return PadReflect, nil
	case "replicate":
		return PadReplicate, nil
	case "circular":
		return PadCircular, nil
	default:
		return 0, fmt.Errorf("unknown pad mode %q", s)
	}
}

// Padding holds per-side spatial padding amounts for an [N,C,H,W] tensor.
type Padding struct {
	Left, Right, Top, Bottom int
}

// Uniform returns a Padding with the same amount on every side.
func Uniform(p int) Padding {
	return Padding{Left: p, Right: p, Top: p, Bottom: p}
}

// Horizontal returns a Padding that only touches the width axis.
func Horizontal(left, right int) Padding {
	return Padding{Left: left, Right: right}
}

// Vertical returns a Padding that only touches the height axis.
func Vertical(top, bottom int) Padding {
	return Padding{Top: top, Bottom: bottom}
}

// IsZero reports whether no side is padded.
func (p Padding) IsZero() bool {
	return p == Padding{}
}

// String returns the padding in torch (left, right, top, bottom) order.
func (p Padding) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", p.Left, p.Right, p.Top, p.Bottom)
}

package morpho

import (
	"fmt"
	"strings"

	"github.com/gogpu/morpho/internal/anchor"
)

// Operation selects one of the four morphological operations.
type Operation uint8

const (
	// Erosion is the minimum under the element.
	Erosion Operation = iota

	// Dilation is the maximum under the reflected element.
	Dilation

	// Opening is an erosion followed by a dilation.
	Opening

	// Closing is a dilation followed by an erosion.
	Closing
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case Erosion:
		return "erosion"
	case Dilation:
		return "dilation"
	case Opening:
		return "opening"
	case Closing:
		return "closing"
	default:
		return fmt.Sprintf("Operation(%d)", uint8(op))
	}
}

// ParseOperation converts a name as returned by String.
func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(s) {
	case "erosion", "erode":
		return Erosion, nil
	case "dilation", "dilate":
		return Dilation, nil
	case "opening", "open":
		return Opening, nil
	case "closing", "close":
		return Closing, nil
	}
	return 0, fmt.Errorf("morpho: unknown operation %q", s)
}

// needsOdd reports whether op composes two passes that must share a centre.
func (op Operation) needsOdd() bool {
	return op == Opening || op == Closing
}

func (op Operation) valid() bool {
	return op <= Closing
}

// line maps op to the line filter operation.
func (op Operation) line() anchor.Op {
	switch op {
	case Dilation:
		return anchor.Dilation
	case Opening:
		return anchor.Opening
	case Closing:
		return anchor.Closing
	default:
		return anchor.Erosion
	}
}

// Axis is the direction of a linear structuring element.
type Axis uint8

const (
	// Horizontal runs along rows.
	Horizontal Axis = iota

	// Vertical runs along columns.
	Vertical
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Axis(%d)", uint8(a))
	}
}

// ParseAxis converts a name as returned by String. "h" and "v" are accepted.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(s) {
	case "horizontal", "h", "x":
		return Horizontal, nil
	case "vertical", "v", "y":
		return Vertical, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAxis, s)
}

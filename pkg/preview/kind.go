// Package preview decodes raw depth-camera output packets into
// display-ready OpenCV matrices. Each frame kind the device can emit
// maps to exactly one decode function; Decode dispatches over the
// closed set of kinds.
package preview

import "fmt"

// Kind identifies a category of decoded camera output. The zero value
// is not a valid kind.
type Kind int

const (
	KindNNInput Kind = iota + 1
	KindColor
	KindLeft
	KindRight
	KindRectifiedLeft
	KindRectifiedRight
	KindDepthRaw
	KindDepth
	KindDisparity
	KindDisparityColor
)

var kindNames = map[Kind]string{
	KindNNInput:        "nn_input",
	KindColor:          "color",
	KindLeft:           "left",
	KindRight:          "right",
	KindRectifiedLeft:  "rectified_left",
	KindRectifiedRight: "rectified_right",
	KindDepthRaw:       "depth_raw",
	KindDepth:          "depth",
	KindDisparity:      "disparity",
	KindDisparityColor: "disparity_color",
}

// String returns the canonical snake_case name of the kind, which is
// also the window name used by the probe tracker.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a canonical kind name back to its Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedKind, name)
}

// Kinds returns all registered frame kinds in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindNNInput,
		KindColor,
		KindLeft,
		KindRight,
		KindRectifiedLeft,
		KindRectifiedRight,
		KindDepthRaw,
		KindDepth,
		KindDisparity,
		KindDisparityColor,
	}
}

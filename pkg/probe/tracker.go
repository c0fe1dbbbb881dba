// Package probe tracks a user-selected pixel per preview window and
// formats the sample under it for on-screen overlay.
package probe

import (
	"errors"
	"fmt"
	"image"

	"github.com/oakviz/go-depthview/internal/log"
	"github.com/oakviz/go-depthview/pkg/preview"
	"gocv.io/x/gocv"
)

// ErrOutOfBounds is returned when the selected point lies outside the
// frame being inspected.
var ErrOutOfBounds = errors.New("probe point outside frame")

// EventType classifies pointer events delivered to a Handler.
type EventType int

const (
	MouseMove EventType = iota
	LeftButtonDown
	LeftButtonUp
)

// Handler processes pointer events for the window bound to a preview
// name. The windowing collaborator invokes it on every event.
type Handler func(event EventType, x, y int)

// Tracker remembers at most one probed pixel per named preview window
// together with the last value extracted there. Not safe for
// concurrent use; one goroutine owns a Tracker.
type Tracker struct {
	points map[string]image.Point
	values map[string]string
}

// New returns an empty Tracker.
func New() *Tracker {
	return &Tracker{
		points: make(map[string]image.Point),
		values: make(map[string]string),
	}
}

// ClickHandler returns the pointer-event handler for the window bound
// to name. A click release on a fresh coordinate selects it; a click
// release on the already-selected coordinate toggles the selection
// off and drops the cached value.
func (t *Tracker) ClickHandler(name string) Handler {
	return func(event EventType, x, y int) {
		if event != LeftButtonUp {
			return
		}
		pt := image.Pt(x, y)
		if stored, ok := t.points[name]; ok && stored == pt {
			delete(t.points, name)
			delete(t.values, name)
			log.Debug("probe point cleared", "name", name)
			return
		}
		t.points[name] = pt
		log.Debug("probe point selected", "name", name, "x", x, "y", y)
	}
}

// ExtractValue reads the sample at the selected point of frame and
// caches the formatted overlay string for name. It is a no-op when no
// point is selected for name.
func (t *Tracker) ExtractValue(name string, frame gocv.Mat) error {
	pt, ok := t.points[name]
	if !ok {
		return nil
	}
	if pt.X < 0 || pt.Y < 0 || pt.X >= frame.Cols() || pt.Y >= frame.Rows() {
		return fmt.Errorf("%w: point (%d,%d), frame %dx%d",
			ErrOutOfBounds, pt.X, pt.Y, frame.Cols(), frame.Rows())
	}

	kind, _ := preview.ParseKind(name)
	switch {
	case kind == preview.KindDepth || kind == preview.KindDepthRaw:
		t.values[name] = fmt.Sprintf("%dmm", scalarAt(frame, pt.X, pt.Y))
	case kind == preview.KindDisparity || kind == preview.KindDisparityColor:
		t.values[name] = fmt.Sprintf("%dpx", scalarAt(frame, pt.X, pt.Y))
	case frame.Channels() == 3:
		// Stored BGR, displayed RGB.
		v := frame.GetVecbAt(pt.Y, pt.X)
		t.values[name] = fmt.Sprintf("R:%d,G:%d,B:%d", v[2], v[1], v[0])
	case frame.Channels() == 1:
		t.values[name] = fmt.Sprintf("Gray:%d", scalarAt(frame, pt.X, pt.Y))
	default:
		t.values[name] = fmt.Sprintf("%v", frame.GetVecbAt(pt.Y, pt.X))
	}
	return nil
}

// Point returns the selected coordinate for name, if any.
func (t *Tracker) Point(name string) (image.Point, bool) {
	pt, ok := t.points[name]
	return pt, ok
}

// Value returns the last extracted overlay string for name, if any.
func (t *Tracker) Value(name string) (string, bool) {
	v, ok := t.values[name]
	return v, ok
}

// Clear drops the selection and cached value for name.
func (t *Tracker) Clear(name string) {
	delete(t.points, name)
	delete(t.values, name)
}

// scalarAt reads the single-channel sample at (col=x, row=y) for the
// common mat depths, widening to int64 for formatting.
func scalarAt(frame gocv.Mat, x, y int) int64 {
	switch frame.Type() {
	case gocv.MatTypeCV16UC1:
		return int64(uint16(frame.GetShortAt(y, x)))
	case gocv.MatTypeCV16SC1:
		return int64(frame.GetShortAt(y, x))
	case gocv.MatTypeCV32SC1:
		return int64(frame.GetIntAt(y, x))
	case gocv.MatTypeCV32FC1:
		return int64(frame.GetFloatAt(y, x))
	case gocv.MatTypeCV64FC1:
		return int64(frame.GetDoubleAt(y, x))
	default:
		return int64(frame.GetUCharAt(y, x))
	}
}

package probe

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestClickHandler_ToggleSelection(t *testing.T) {
	tr := New()
	h := tr.ClickHandler("color")

	h(LeftButtonUp, 10, 20)
	pt, ok := tr.Point("color")
	require.True(t, ok)
	assert.Equal(t, image.Pt(10, 20), pt)

	// Re-clicking the same coordinate toggles the selection off.
	h(LeftButtonUp, 10, 20)
	_, ok = tr.Point("color")
	assert.False(t, ok)
	_, ok = tr.Value("color")
	assert.False(t, ok)
}

func TestClickHandler_IgnoresOtherEvents(t *testing.T) {
	tr := New()
	h := tr.ClickHandler("left")

	h(MouseMove, 1, 2)
	h(LeftButtonDown, 1, 2)
	_, ok := tr.Point("left")
	assert.False(t, ok)
}

func TestClickHandler_ReplacesSelection(t *testing.T) {
	tr := New()
	h := tr.ClickHandler("left")

	frame := gocv.NewMatWithSize(40, 40, gocv.MatTypeCV8UC1)
	defer frame.Close()
	frame.SetUCharAt(2, 1, 11)
	frame.SetUCharAt(4, 3, 99)

	h(LeftButtonUp, 1, 2)
	require.NoError(t, tr.ExtractValue("left", frame))
	v, _ := tr.Value("left")
	assert.Equal(t, "Gray:11", v)

	// The new selection supersedes the old one; the cached value stays
	// stale until the next extraction.
	h(LeftButtonUp, 3, 4)
	pt, _ := tr.Point("left")
	assert.Equal(t, image.Pt(3, 4), pt)
	v, _ = tr.Value("left")
	assert.Equal(t, "Gray:11", v)

	require.NoError(t, tr.ExtractValue("left", frame))
	v, _ = tr.Value("left")
	assert.Equal(t, "Gray:99", v)
}

func TestExtractValue_NoSelectionIsNoop(t *testing.T) {
	tr := New()
	frame := gocv.NewMatWithSize(4, 4, gocv.MatTypeCV8UC1)
	defer frame.Close()

	require.NoError(t, tr.ExtractValue("right", frame))
	_, ok := tr.Value("right")
	assert.False(t, ok)
}

func TestExtractValue_DepthMillimeters(t *testing.T) {
	tr := New()
	frame := gocv.NewMatWithSize(30, 30, gocv.MatTypeCV16UC1)
	defer frame.Close()
	frame.SetShortAt(20, 10, 1234)

	tr.ClickHandler("depth_raw")(LeftButtonUp, 10, 20)
	require.NoError(t, tr.ExtractValue("depth_raw", frame))

	v, ok := tr.Value("depth_raw")
	require.True(t, ok)
	assert.Equal(t, "1234mm", v)
}

func TestExtractValue_DisparityPixels(t *testing.T) {
	tr := New()
	frame := gocv.NewMatWithSize(8, 8, gocv.MatTypeCV8UC1)
	defer frame.Close()
	frame.SetUCharAt(5, 3, 42)

	tr.ClickHandler("disparity")(LeftButtonUp, 3, 5)
	require.NoError(t, tr.ExtractValue("disparity", frame))

	v, _ := tr.Value("disparity")
	assert.Equal(t, "42px", v)
}

func TestExtractValue_ColorChannelReversed(t *testing.T) {
	tr := New()
	frame := gocv.NewMatWithSize(8, 8, gocv.MatTypeCV8UC3)
	defer frame.Close()
	// BGR storage order at (x=2, y=4).
	frame.SetUCharAt(4, 2*3+0, 1)
	frame.SetUCharAt(4, 2*3+1, 2)
	frame.SetUCharAt(4, 2*3+2, 3)

	tr.ClickHandler("color")(LeftButtonUp, 2, 4)
	require.NoError(t, tr.ExtractValue("color", frame))

	v, _ := tr.Value("color")
	assert.Equal(t, "R:3,G:2,B:1", v)
}

func TestExtractValue_Grayscale(t *testing.T) {
	tr := New()
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC1)
	defer frame.Close()
	frame.SetUCharAt(20, 10, 57)

	tr.ClickHandler("left")(LeftButtonUp, 10, 20)
	require.NoError(t, tr.ExtractValue("left", frame))

	v, _ := tr.Value("left")
	assert.Equal(t, "Gray:57", v)
}

func TestExtractValue_OutOfBounds(t *testing.T) {
	tr := New()
	frame := gocv.NewMatWithSize(10, 10, gocv.MatTypeCV8UC1)
	defer frame.Close()

	tr.ClickHandler("left")(LeftButtonUp, 100, 100)
	err := tr.ExtractValue("left", frame)
	require.ErrorIs(t, err, ErrOutOfBounds)

	// A failed extraction must not fabricate a value.
	_, ok := tr.Value("left")
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	tr := New()
	frame := gocv.NewMatWithSize(8, 8, gocv.MatTypeCV8UC1)
	defer frame.Close()

	tr.ClickHandler("color")(LeftButtonUp, 1, 1)
	require.NoError(t, tr.ExtractValue("color", frame))

	tr.Clear("color")
	_, ok := tr.Point("color")
	assert.False(t, ok)
	_, ok = tr.Value("color")
	assert.False(t, ok)
}

func TestTrackersAreIndependent(t *testing.T) {
	a := New()
	b := New()

	a.ClickHandler("color")(LeftButtonUp, 1, 1)
	_, ok := b.Point("color")
	assert.False(t, ok)
}

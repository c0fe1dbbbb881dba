package preview

import (
	"math"

	"github.com/oakviz/go-depthview/internal/log"
	"gocv.io/x/gocv"
)

// Stereo defaults for the OAK-D class of devices.
const (
	DefaultBaseline       = 75.0   // mm between the stereo cameras
	DefaultFOV            = 71.86  // horizontal field of view, degrees
	DefaultDispMultiplier = 255.0 / 96.0
)

// Config holds the decode settings shared by all preview kinds. A nil
// *Config is accepted by every decode function and means "native
// buffers, stereo defaults".
//
// Single-threaded use is assumed: DisparityScale mutates the config
// without locking.
type Config struct {
	// === Encoding ===
	// LowBandwidth selects the compressed packet path: packets carry an
	// encoded image instead of a raw buffer.
	LowBandwidth bool
	// Sync indicates host-side frame synchronization is active. While
	// set, most compressed paths are bypassed because the encoder does
	// not participate in sync mode.
	Sync bool

	// === Stereo calibration ===
	Baseline float64 // mm; 0 means DefaultBaseline
	FOV      float64 // degrees; 0 means DefaultFOV
	// Focal is the focal length in pixels. 0 means derive it from the
	// frame width and FOV.
	Focal float64

	// DispScaleFactor is the memoized baseline*focal product used by
	// depth-to-disparity conversion. 0 means not yet derived; the first
	// Depth call fills it and later calls reuse it.
	DispScaleFactor float64

	// DispMultiplier scales disparity values into the 8-bit display
	// range. 0 means DefaultDispMultiplier.
	DispMultiplier float64

	// ColorMap is applied to disparity frames by DisparityColor.
	ColorMap gocv.ColormapTypes

	// NNSource names the frame kind feeding the neural-network
	// passthrough; rectified sources make NNInput mirror its output.
	// Zero means unset.
	NNSource Kind
}

// DefaultConfig returns a Config with stereo defaults and the jet
// color map.
func DefaultConfig() Config {
	return Config{
		Baseline:       DefaultBaseline,
		FOV:            DefaultFOV,
		DispMultiplier: DefaultDispMultiplier,
		ColorMap:       gocv.ColormapJet,
	}
}

// DisparityScale returns the baseline*focal scale factor used to
// convert raw depth to disparity, deriving and caching it on first
// use. frameWidth is only consulted when Focal is unset.
func (c *Config) DisparityScale(frameWidth int) float64 {
	if c.DispScaleFactor != 0 {
		return c.DispScaleFactor
	}
	baseline := c.Baseline
	if baseline == 0 {
		baseline = DefaultBaseline
	}
	focal := c.Focal
	if focal == 0 {
		fov := c.FOV
		if fov == 0 {
			fov = DefaultFOV
		}
		focal = float64(frameWidth) / (2 * math.Tan(fov/2*math.Pi/180))
	}
	c.DispScaleFactor = baseline * focal
	log.Debug("derived disparity scale factor",
		"baseline", baseline, "focal", focal, "scale", c.DispScaleFactor)
	return c.DispScaleFactor
}

func (c *Config) multiplier() float64 {
	if c == nil || c.DispMultiplier == 0 {
		return DefaultDispMultiplier
	}
	return c.DispMultiplier
}

func (c *Config) colorMap() gocv.ColormapTypes {
	if c == nil {
		return gocv.ColormapJet
	}
	return c.ColorMap
}

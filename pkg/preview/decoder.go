package preview

import (
	"fmt"
	"math"

	"gocv.io/x/gocv"
)

// Decode converts a packet into a display-ready matrix for the given
// kind. The two derived kinds compose: depth decodes the packet's raw
// depth buffer and color-maps the converted disparity, disparity_color
// color-maps the decoded disparity frame.
//
// Returned matrices on the native path may alias the packet's own
// buffers; everything else is freshly allocated and owned by the
// caller.
func Decode(kind Kind, pkt Packet, cfg *Config) (gocv.Mat, error) {
	switch kind {
	case KindNNInput:
		return NNInput(pkt, cfg)
	case KindColor:
		return Color(pkt, cfg)
	case KindLeft:
		return Left(pkt, cfg)
	case KindRight:
		return Right(pkt, cfg)
	case KindRectifiedLeft:
		return RectifiedLeft(pkt, cfg)
	case KindRectifiedRight:
		return RectifiedRight(pkt, cfg)
	case KindDepthRaw:
		return DepthRaw(pkt, cfg)
	case KindDepth:
		raw, err := DepthRaw(pkt, cfg)
		if err != nil {
			return gocv.NewMat(), err
		}
		return Depth(raw, cfg)
	case KindDisparity:
		return Disparity(pkt, cfg)
	case KindDisparityColor:
		disp, err := Disparity(pkt, cfg)
		if err != nil {
			return gocv.NewMat(), err
		}
		defer disp.Close()
		return DisparityColor(disp, cfg)
	default:
		return gocv.NewMat(), fmt.Errorf("%w: %d", ErrUnsupportedKind, int(kind))
	}
}

// NNInput returns the neural-network passthrough frame. The frame is
// mirrored when the passthrough is fed from a rectified stream, so it
// lines up with the preview the detections are drawn on.
//
// The encoder does not support the passthrough frame type, so the
// compressed branch is a permanent no-op here and the encoded payload
// is ignored.
func NNInput(pkt Packet, cfg *Config) (gocv.Mat, error) {
	frame := pkt.CvFrame()
	if cfg != nil && (cfg.NNSource == KindRectifiedLeft || cfg.NNSource == KindRectifiedRight) {
		return mirrored(frame), nil
	}
	return frame, nil
}

// Color returns the color camera frame.
func Color(pkt Packet, cfg *Config) (gocv.Mat, error) {
	if cfg != nil && cfg.LowBandwidth && !cfg.Sync {
		return imdecode(pkt.Data(), gocv.IMReadColor)
	}
	return pkt.CvFrame(), nil
}

// Left returns the left mono camera frame.
func Left(pkt Packet, cfg *Config) (gocv.Mat, error) {
	if cfg != nil && cfg.LowBandwidth && !cfg.Sync {
		return imdecode(pkt.Data(), gocv.IMReadGrayScale)
	}
	return pkt.CvFrame(), nil
}

// Right returns the right mono camera frame.
func Right(pkt Packet, cfg *Config) (gocv.Mat, error) {
	if cfg != nil && cfg.LowBandwidth && !cfg.Sync {
		return imdecode(pkt.Data(), gocv.IMReadGrayScale)
	}
	return pkt.CvFrame(), nil
}

// RectifiedLeft returns the rectified left frame, mirrored back into
// the left camera's orientation.
func RectifiedLeft(pkt Packet, cfg *Config) (gocv.Mat, error) {
	if cfg != nil && cfg.LowBandwidth && !cfg.Sync {
		decoded, err := imdecode(pkt.Data(), gocv.IMReadGrayScale)
		if err != nil {
			return gocv.NewMat(), err
		}
		defer decoded.Close()
		return mirrored(decoded), nil
	}
	return mirrored(pkt.CvFrame()), nil
}

// RectifiedRight returns the rectified right frame, mirrored back into
// the right camera's orientation.
//
// Unlike RectifiedLeft, the sync flag is deliberately not consulted
// here; upstream decodes this stream's compressed payload even in sync
// mode and that behaviour is kept until confirmed to be a defect.
func RectifiedRight(pkt Packet, cfg *Config) (gocv.Mat, error) {
	if cfg != nil && cfg.LowBandwidth {
		decoded, err := imdecode(pkt.Data(), gocv.IMReadGrayScale)
		if err != nil {
			return gocv.NewMat(), err
		}
		defer decoded.Close()
		return mirrored(decoded), nil
	}
	return mirrored(pkt.CvFrame()), nil
}

// DepthRaw returns the packet's raw 16-bit depth buffer unchanged.
// Depth frames are not supported by the on-device encoder, so the
// compressed branch is a permanent no-op here, same as NNInput.
func DepthRaw(pkt Packet, cfg *Config) (gocv.Mat, error) {
	return pkt.RawFrame(), nil
}

// Depth converts an already-decoded raw depth frame (16-bit, mm) to
// disparity and color-maps it. The baseline*focal scale factor is
// derived on first use and cached on cfg.
//
// Zero depth samples divide to +Inf; the 8-bit truncation maps any
// non-finite disparity to 0 rather than failing.
func Depth(depthRaw gocv.Mat, cfg *Config) (gocv.Mat, error) {
	raw, err := depthRaw.DataPtrUint16()
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("depth: %w: %v", ErrDecode, err)
	}

	var scale float64
	if cfg != nil {
		scale = cfg.DisparityScale(depthRaw.Cols())
	} else {
		defaults := DefaultConfig()
		scale = defaults.DisparityScale(depthRaw.Cols())
	}
	mult := cfg.multiplier()

	disp := gocv.NewMatWithSize(depthRaw.Rows(), depthRaw.Cols(), gocv.MatTypeCV8UC1)
	defer disp.Close()
	buf, err := disp.DataPtrUint8()
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("depth: %w: %v", ErrDecode, err)
	}
	for i, v := range raw {
		buf[i] = truncU8(scale / float64(v) * mult)
	}
	return DisparityColor(disp, cfg)
}

// Disparity returns the 8-bit disparity frame scaled into display
// range by the configured multiplier.
func Disparity(pkt Packet, cfg *Config) (gocv.Mat, error) {
	if cfg != nil && cfg.LowBandwidth {
		decoded, err := imdecode(pkt.Data(), gocv.IMReadGrayScale)
		if err != nil {
			return gocv.NewMat(), err
		}
		defer decoded.Close()
		return scaleDisparity(decoded, cfg.multiplier()), nil
	}
	return scaleDisparity(pkt.RawFrame(), cfg.multiplier()), nil
}

// DisparityColor applies the configured pseudo-color map to an 8-bit
// single-channel disparity frame, producing a 3-channel frame.
func DisparityColor(disparity gocv.Mat, cfg *Config) (gocv.Mat, error) {
	out := gocv.NewMat()
	gocv.ApplyColorMap(disparity, &out, cfg.colorMap())
	return out, nil
}

func scaleDisparity(raw gocv.Mat, mult float64) gocv.Mat {
	out := gocv.NewMatWithSize(raw.Rows(), raw.Cols(), gocv.MatTypeCV8UC1)
	for y := 0; y < raw.Rows(); y++ {
		for x := 0; x < raw.Cols(); x++ {
			out.SetUCharAt(y, x, truncU8(float64(raw.GetUCharAt(y, x))*mult))
		}
	}
	return out
}

func mirrored(src gocv.Mat) gocv.Mat {
	dst := gocv.NewMat()
	gocv.Flip(src, &dst, 1)
	return dst
}

func imdecode(data []byte, flags gocv.IMReadFlag) (gocv.Mat, error) {
	if len(data) == 0 {
		return gocv.NewMat(), fmt.Errorf("%w: empty packet payload", ErrDecode)
	}
	m, err := gocv.IMDecode(data, flags)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if m.Empty() {
		m.Close()
		return gocv.NewMat(), fmt.Errorf("%w: corrupt image payload", ErrDecode)
	}
	return m, nil
}

// truncU8 truncates to 8 bits the way a hardware float-to-uint8 cast
// does: modulo 256 for finite values, 0 for Inf/NaN.
func truncU8(v float64) uint8 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return uint8(int64(v))
}

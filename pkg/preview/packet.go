package preview

import "gocv.io/x/gocv"

// Packet is a single capture-time payload received from the device
// driver. A packet carries either an encoded image (low-bandwidth
// mode) or an uncompressed buffer; the active config decides which
// side a decoder reads.
type Packet interface {
	// Data returns the encoded bitstream produced by the on-device
	// encoder. Only meaningful in low-bandwidth mode.
	Data() []byte
	// CvFrame returns the buffer converted to display format (BGR for
	// color streams, single-channel for mono streams).
	CvFrame() gocv.Mat
	// RawFrame returns the untouched buffer, e.g. 16-bit depth.
	RawFrame() gocv.Mat
}

// FramePacket is a plain Packet implementation. The driver adapter
// fills whichever fields the active encoding mode produces.
type FramePacket struct {
	Encoded []byte
	Display gocv.Mat
	Raw     gocv.Mat
}

func (p *FramePacket) Data() []byte       { return p.Encoded }
func (p *FramePacket) CvFrame() gocv.Mat  { return p.Display }
func (p *FramePacket) RawFrame() gocv.Mat { return p.Raw }

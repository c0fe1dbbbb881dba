package preview

import "errors"

var (
	// ErrUnsupportedKind is returned when a frame kind outside the
	// registered set is requested.
	ErrUnsupportedKind = errors.New("unsupported frame kind")

	// ErrDecode is returned when an encoded packet payload is empty or
	// corrupt. Decoding is deterministic, so callers should not retry.
	ErrDecode = errors.New("frame decode failed")
)

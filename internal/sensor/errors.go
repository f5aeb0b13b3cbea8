package sensor

import "github.com/pkg/errors"

var (
	// ErrShapeMismatch is returned when an input image does not have
	// the shape the camera intrinsics were configured for.
	ErrShapeMismatch = errors.New("input shape does not match camera resolution")

	// ErrFrameMismatch is returned when the color and depth frames of
	// one raw frame disagree in size.
	ErrFrameMismatch = errors.New("color and depth frames differ in size")

	// ErrUnknownModel is returned for sensor model names outside the
	// implemented set. Fatal at startup, never per frame.
	ErrUnknownModel = errors.New("unknown sensor model")

	// ErrNotReady is returned when a frame arrives before the camera
	// parameter handshake has completed.
	ErrNotReady = errors.New("sensor model is not initialized")
)

package ingest

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/edaniels/golog"
	"github.com/fxamacker/cbor/v2"
	"github.com/pebbe/zmq4"
	"github.com/pkg/errors"

	"uecv-sensor-go/internal/types"
)

// Recorder receives every raw message payload before decoding, used
// for the optional raw ingest log.
type Recorder interface {
	Record(payload []byte) error
}

var decodeFailures atomic.Uint64

// DecodeFailures reports the total number of inbound buffers that
// failed to decode since the process started.
func DecodeFailures() uint64 {
	return decodeFailures.Load()
}

// Stream connects a PULL socket to the camera endpoint and returns a
// channel of decoded raw messages. Messages shaped like:
//
//	{ "type": "frame", "timestamp": <float>, "color": <tag 40>, "depth": <tag 40> }
//
// Decode failures are logged (every logEvery-th occurrence), counted,
// and skipped; they never stop the stream.
func Stream(ctx context.Context, endpoint string, logger golog.Logger) (<-chan types.RawMessage, error) {
	return StreamWithRecorder(ctx, endpoint, 1, nil, logger)
}

func StreamWithRecorder(
	ctx context.Context,
	endpoint string,
	logEvery int,
	recorder Recorder,
	logger golog.Logger,
) (<-chan types.RawMessage, error) {
	if logEvery < 1 {
		logEvery = 1
	}
	socket, err := zmq4.NewSocket(zmq4.PULL)
	if err != nil {
		return nil, err
	}
	if err := socket.Connect(endpoint); err != nil {
		_ = socket.Close()
		return nil, err
	}

	throttle := &throttledLogger{logger: logger, every: logEvery}
	out := make(chan types.RawMessage, 128)
	go func() {
		defer close(out)
		defer socket.Close()

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			payload, err := socket.RecvBytes(0)
			if err != nil {
				throttle.warnf("ingest recv error: %v", err)
				continue
			}
			if recorder != nil {
				if err := recorder.Record(payload); err != nil {
					throttle.warnf("raw log write failed: %v", err)
				}
			}

			msg, err := decodeMessage(payload)
			if err != nil {
				decodeFailures.Add(1)
				throttle.warnf("ingest decode error: %v", err)
				continue
			}

			select {
			case <-ctx.Done():
				return
			case out <- msg:
			}
		}
	}()

	return out, nil
}

func decodeMessage(payload []byte) (types.RawMessage, error) {
	var decoded map[string]any
	if err := cbor.Unmarshal(payload, &decoded); err != nil {
		return types.RawMessage{}, errors.Wrap(ErrBadFrame, err.Error())
	}

	msgType, _ := decoded["type"].(string)
	if msgType != "frame" {
		return types.RawMessage{Type: msgType, Meta: decoded, Payload: payload}, nil
	}

	timestamp, err := toFloat(decoded["timestamp"])
	if err != nil {
		return types.RawMessage{}, errors.Wrapf(ErrBadFrame, "invalid timestamp: %v", err)
	}
	color, err := decodeColorArray(decoded["color"])
	if err != nil {
		return types.RawMessage{}, err
	}
	depth, err := decodeDepthArray(decoded["depth"])
	if err != nil {
		return types.RawMessage{}, err
	}

	return types.RawMessage{
		Type: "frame",
		Frame: types.RawFrame{
			Timestamp: timestamp,
			Color:     color,
			Depth:     depth,
		},
		Payload: payload,
	}, nil
}

type throttledLogger struct {
	logger  golog.Logger
	every   int
	counter int
}

func (t *throttledLogger) warnf(format string, args ...any) {
	t.counter++
	if t.counter%t.every == 0 {
		t.logger.Warnf(format, args...)
	}
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case uint32:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("unsupported int type %T", v)
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("unsupported float type %T", v)
	}
}

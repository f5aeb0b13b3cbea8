package simulator

import (
	"context"
	"testing"
	"time"

	"uecv-sensor-go/internal/camera"
)

func TestStreamProducesWellFormedFrames(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	params := camera.Params{Width: 8, Height: 4, FocalLength: 4.0}
	frames := Stream(ctx, params, 200)

	select {
	case msg := <-frames:
		if msg.Type != "frame" {
			t.Fatalf("unexpected type: %q", msg.Type)
		}
		if msg.Frame.Depth.Width != 8 || msg.Frame.Depth.Height != 4 {
			t.Fatalf("depth shape: %dx%d", msg.Frame.Depth.Width, msg.Frame.Depth.Height)
		}
		if len(msg.Frame.Depth.Data) != 32 {
			t.Fatalf("depth length: %d", len(msg.Frame.Depth.Data))
		}
		if len(msg.Frame.Color.Pix) != 96 {
			t.Fatalf("color length: %d", len(msg.Frame.Color.Pix))
		}
		if msg.Frame.Timestamp <= 0 {
			t.Fatalf("timestamp not set: %v", msg.Frame.Timestamp)
		}
		for i, d := range msg.Frame.Depth.Data {
			if d <= 0 {
				t.Fatalf("depth %d not positive: %v", i, d)
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no frame produced")
	}
}

func TestStreamStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	params := camera.Params{Width: 4, Height: 4, FocalLength: 2.0}
	frames := Stream(ctx, params, 200)

	<-frames
	cancel()

	for {
		select {
		case _, ok := <-frames:
			if !ok {
				return
			}
		case <-time.After(2 * time.Second):
			t.Fatal("stream did not close after cancel")
		}
	}
}

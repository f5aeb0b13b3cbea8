package simulator

import (
	"context"
	"math"
	"math/rand"
	"time"

	"uecv-sensor-go/internal/camera"
	"uecv-sensor-go/internal/types"
)

const wallDistance = 2.0

// Stream produces synthetic raw frames at the given acquisition rate:
// a flat wall two units in front of the camera with a slowly moving
// gaussian bump, and a color gradient that cycles over time. Depth
// values are ray lengths, matching what the camera client sends.
func Stream(ctx context.Context, params camera.Params, acqRate float64) <-chan types.RawMessage {
	out := make(chan types.RawMessage)
	go func() {
		defer close(out)

		in, err := camera.NewIntrinsics(params)
		if err != nil {
			return
		}

		width, height := params.Width, params.Height
		totalPixels := width * height
		frameInterval := time.Duration(float64(time.Second) / acqRate)
		ticker := time.NewTicker(frameInterval)
		defer ticker.Stop()

		frameIndex := 0
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				phase := float64(frameIndex) * 0.05
				bumpCol := (math.Sin(phase) + 1) / 2 * float64(width-1)
				bumpRow := (math.Cos(phase) + 1) / 2 * float64(height-1)

				depth := make([]float32, totalPixels)
				pix := make([]uint8, 3*totalPixels)
				for row := 0; row < height; row++ {
					for col := 0; col < width; col++ {
						i := row*width + col
						dc := float64(col) - bumpCol
						dr := float64(row) - bumpRow
						bump := 0.5 * math.Exp(-(dc*dc+dr*dr)*20/float64(totalPixels))
						axial := wallDistance - bump + rand.Float64()*0.002
						// the wire carries ray lengths, not axial depth
						depth[i] = float32(axial / in.AxialScale(row, col))

						pix[3*i] = uint8((col*256/width + frameIndex) % 256)
						pix[3*i+1] = uint8(row * 256 / height % 256)
						pix[3*i+2] = uint8(255 - int(bump*255))
					}
				}

				msg := types.RawMessage{
					Type: "frame",
					Frame: types.RawFrame{
						Timestamp: float64(time.Now().UnixNano()) / 1e9,
						Color:     types.ColorImage{Width: width, Height: height, Pix: pix},
						Depth:     types.DepthImage{Width: width, Height: height, Data: depth},
					},
				}

				select {
				case <-ctx.Done():
					return
				case out <- msg:
				}
				frameIndex++
			}
		}
	}()

	return out
}

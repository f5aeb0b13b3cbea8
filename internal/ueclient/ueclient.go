// Package ueclient talks to the simulated camera's HTTP API: a
// one-time camera parameter handshake at startup and an optional
// status poll for the monitor.
package ueclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"uecv-sensor-go/internal/camera"
)

const apiVersion = "1.0"

// WaitForCameraParams blocks until the camera service answers the
// parameter request, polling at the given interval. The node must not
// accept frames before this returns; a cancelled context makes
// startup fail.
func WaitForCameraParams(
	ctx context.Context,
	baseURL string,
	interval time.Duration,
	logger golog.Logger,
) (camera.Params, error) {
	if baseURL == "" {
		return camera.Params{}, errors.New("missing camera service base url")
	}
	baseURL = strings.TrimRight(baseURL, "/")
	endpoint := baseURL + "/api/" + apiVersion + "/camera/params"
	client := &http.Client{Timeout: 2 * time.Second}

	logger.Infof("waiting for camera params at %s ...", endpoint)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		params, err := fetchParams(ctx, client, endpoint)
		if err == nil {
			logger.Infow("received camera params",
				"width", params.Width, "height", params.Height, "focal_length", params.FocalLength)
			return params, nil
		}
		logger.Debugf("camera params not available yet: %v", err)

		select {
		case <-ctx.Done():
			return camera.Params{}, errors.Wrap(ctx.Err(), "camera params handshake aborted")
		case <-ticker.C:
		}
	}
}

func fetchParams(ctx context.Context, client *http.Client, endpoint string) (camera.Params, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return camera.Params{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return camera.Params{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return camera.Params{}, errors.Errorf("camera service returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return camera.Params{}, err
	}
	var params camera.Params
	if err := json.Unmarshal(body, &params); err != nil {
		return camera.Params{}, errors.Wrap(err, "invalid camera params payload")
	}
	if err := params.Validate(); err != nil {
		return camera.Params{}, err
	}
	return params, nil
}

// Status is the camera client state shown in the monitor.
type Status struct {
	Client string
	Stream string
}

// Poll periodically fetches the camera client status and feeds every
// result to update. Returns when the context is cancelled.
func Poll(ctx context.Context, baseURL string, interval time.Duration, update func(Status)) {
	if baseURL == "" || update == nil {
		return
	}
	baseURL = strings.TrimRight(baseURL, "/")
	client := &http.Client{Timeout: 900 * time.Millisecond}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		status := Status{
			Client: fetchStatus(ctx, client, baseURL+"/api/"+apiVersion+"/status/client"),
			Stream: fetchStatus(ctx, client, baseURL+"/api/"+apiVersion+"/status/stream"),
		}
		update(status)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func fetchStatus(ctx context.Context, client *http.Client, endpoint string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "error"
	}
	resp, err := client.Do(req)
	if err != nil {
		return "error"
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "http_" + strconv.Itoa(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || len(body) == 0 {
		return "ok"
	}
	state, ok := extractState(body)
	if !ok {
		return "ok"
	}
	return state
}

func extractState(payload []byte) (string, bool) {
	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return "", false
	}
	for _, key := range []string{"state", "status", "value"} {
		if s, ok := decoded[key].(string); ok && s != "" {
			return strings.ToLower(s), true
		}
	}
	return "", false
}

// Package config holds the node configuration and its startup
// validation. Validation failures are fatal: the node never accepts
// frames with a bad configuration.
package config

import (
	"time"

	"github.com/pkg/errors"

	"uecv-sensor-go/internal/camera"
	"uecv-sensor-go/internal/sensor"
)

type AppConfig struct {
	MonitorPort        int
	Endpoint           string
	PublishEndpoint    string
	ClientBaseURL      string
	HandshakeInterval  time.Duration
	StatusPollInterval time.Duration
	ModelType          string
	FrameID            string
	Workers            int
	Debug              bool
	DebugAcqRate       float64
	DebugParams        camera.Params
	UIRate             time.Duration
	RawLogEnabled      bool
	RawLogDir          string
	PCDDir             string
	PCDEvery           int
	IngestLogEvery     int
	IngestFallback     bool
}

// Validate checks the configuration and resolves the sensor model.
// An unknown model name is a configuration error, caught here before
// any frame is accepted.
func (cfg *AppConfig) Validate() (sensor.Model, error) {
	model, err := sensor.ParseModel(cfg.ModelType)
	if err != nil {
		return "", err
	}
	if cfg.FrameID == "" {
		return "", errors.New("frame id cannot be empty")
	}
	if cfg.PublishEndpoint == "" {
		return "", errors.New("publish endpoint cannot be empty")
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Debug {
		if cfg.DebugAcqRate <= 0 {
			return "", errors.Errorf("debug acquisition rate must be positive, got %v", cfg.DebugAcqRate)
		}
		if err := cfg.DebugParams.Validate(); err != nil {
			return "", err
		}
	} else {
		if cfg.Endpoint == "" {
			return "", errors.New("frame endpoint cannot be empty")
		}
		if cfg.ClientBaseURL == "" {
			return "", errors.New("camera service base url cannot be empty")
		}
	}
	if cfg.PCDDir != "" && cfg.PCDEvery < 1 {
		cfg.PCDEvery = 1
	}
	if cfg.UIRate <= 0 {
		cfg.UIRate = time.Second
	}
	return model, nil
}

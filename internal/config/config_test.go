package config

import (
	"testing"

	"github.com/pkg/errors"

	"uecv-sensor-go/internal/camera"
	"uecv-sensor-go/internal/sensor"
)

func validConfig() AppConfig {
	return AppConfig{
		Endpoint:        "tcp://localhost:31001",
		PublishEndpoint: "tcp://*:31002",
		ClientBaseURL:   "http://localhost:80",
		ModelType:       "ground_truth",
		FrameID:         "camera",
		Workers:         2,
	}
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	model, err := cfg.Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if model != sensor.GroundTruth {
		t.Fatalf("model: got %q", model)
	}
}

func TestValidateUnknownModel(t *testing.T) {
	cfg := validConfig()
	cfg.ModelType = "gaussian_noise"
	if _, err := cfg.Validate(); !errors.Is(err, sensor.ErrUnknownModel) {
		t.Fatalf("expected ErrUnknownModel, got %v", err)
	}
}

func TestValidateNormalizesWorkers(t *testing.T) {
	cfg := validConfig()
	cfg.Workers = 0
	if _, err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Workers != 1 {
		t.Fatalf("workers: got %d, want 1", cfg.Workers)
	}
}

func TestValidateDebugParams(t *testing.T) {
	cfg := AppConfig{
		PublishEndpoint: "tcp://*:31002",
		ModelType:       "ground_truth",
		FrameID:         "camera",
		Debug:           true,
		DebugAcqRate:    30,
		DebugParams:     camera.Params{Width: 64, Height: 48, FocalLength: 0},
	}
	if _, err := cfg.Validate(); !errors.Is(err, camera.ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
}

func TestValidateLiveNeedsEndpoints(t *testing.T) {
	cfg := validConfig()
	cfg.ClientBaseURL = ""
	if _, err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for missing camera service base url")
	}
}

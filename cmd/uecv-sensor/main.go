package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/edaniels/golog"

	"uecv-sensor-go/internal/camera"
	"uecv-sensor-go/internal/config"
	"uecv-sensor-go/internal/ingest"
	"uecv-sensor-go/internal/output"
	"uecv-sensor-go/internal/publish"
	"uecv-sensor-go/internal/sensor"
	"uecv-sensor-go/internal/server"
	"uecv-sensor-go/internal/simulator"
	"uecv-sensor-go/internal/types"
	"uecv-sensor-go/internal/ueclient"
)

type metrics struct {
	rawMessages   atomic.Uint64
	frameMessages atomic.Uint64
	metaMessages  atomic.Uint64
	published     atomic.Uint64
	publishErr    atomic.Uint64
	pcdWriteOK    atomic.Uint64
	pcdWriteErr   atomic.Uint64
	processCount  atomic.Uint64
	processNanos  atomic.Uint64
}

func (m *metrics) snapshot() map[string]any {
	return map[string]any{
		"raw_messages_total":   m.rawMessages.Load(),
		"frame_messages_total": m.frameMessages.Load(),
		"meta_messages_total":  m.metaMessages.Load(),
		"published_total":      m.published.Load(),
		"publish_err_total":    m.publishErr.Load(),
		"pcd_write_ok_total":   m.pcdWriteOK.Load(),
		"pcd_write_err_total":  m.pcdWriteErr.Load(),
		"process_total":        m.processCount.Load(),
		"process_nanos_total":  m.processNanos.Load(),
	}
}

func main() {
	var (
		port            = flag.Int("port", 8888, "HTTP port for the monitor UI")
		clientIP        = flag.String("client-ip", "", "Camera client IP used for ZMQ and HTTP API endpoints")
		apiPort         = flag.Int("api-port", 80, "Camera client HTTP API port")
		zmqPort         = flag.Int("zmq-port", 31001, "Raw frame ZMQ port")
		endpoint        = flag.String("endpoint", "tcp://localhost:31001", "Raw frame ZMQ endpoint (used when client-ip is empty)")
		publishEndpoint = flag.String("publish-endpoint", "tcp://*:31002", "Point cloud ZMQ endpoint")
		baseURL         = flag.String("client-url", "", "Camera client HTTP API base URL (used when client-ip is empty)")
		handshakeEvery  = flag.Duration("handshake-interval", 1*time.Second, "Retry interval for the camera params handshake")
		statusEvery     = flag.Duration("status-interval", 1*time.Second, "Polling interval for camera client status")
		modelType       = flag.String("model", "ground_truth", "Sensor model to apply")
		frameID         = flag.String("frame-id", "camera", "Frame identifier for published clouds")
		workers         = flag.Int("workers", 1, "Number of frame workers")
		debug           = flag.Bool("debug", false, "Run with simulated camera data")
		debugAcqRate    = flag.Float64("debug-acq-rate", 30.0, "Simulated acquisition rate (frames/sec)")
		debugWidth      = flag.Int("debug-width", 640, "Simulated image width")
		debugHeight     = flag.Int("debug-height", 480, "Simulated image height")
		debugFocal      = flag.Float64("debug-focal-length", 320.0, "Simulated focal length in pixels")
		uiRate          = flag.Duration("ui-rate", 1*time.Second, "Monitor update interval for websocket clients")
		rawLogEnabled   = flag.Bool("raw-log", false, "Write raw CBOR messages to disk")
		rawLogDir       = flag.String("raw-log-dir", "rawlog", "Directory for raw ingest logs")
		pcdDir          = flag.String("pcd-dir", "", "Directory for PCD cloud dumps (disabled when empty)")
		pcdEvery        = flag.Int("pcd-every", 30, "Dump every Nth cloud as PCD")
		ingestLogEvery  = flag.Int("ingest-log-every", 100, "Log every Nth ingest error")
		ingestFallback  = flag.Bool("ingest-fallback", false, "Fall back to the simulator when ingest fails")
	)
	flag.Parse()

	logger := golog.NewDevelopmentLogger("uecv-sensor")

	resolvedEndpoint := *endpoint
	resolvedBaseURL := *baseURL
	if *clientIP != "" {
		resolvedEndpoint = fmt.Sprintf("tcp://%s:%d", *clientIP, *zmqPort)
		resolvedBaseURL = fmt.Sprintf("http://%s:%d", *clientIP, *apiPort)
	}

	cfg := config.AppConfig{
		MonitorPort:        *port,
		Endpoint:           resolvedEndpoint,
		PublishEndpoint:    *publishEndpoint,
		ClientBaseURL:      resolvedBaseURL,
		HandshakeInterval:  *handshakeEvery,
		StatusPollInterval: *statusEvery,
		ModelType:          *modelType,
		FrameID:            *frameID,
		Workers:            *workers,
		Debug:              *debug,
		DebugAcqRate:       *debugAcqRate,
		DebugParams:        camera.Params{Width: *debugWidth, Height: *debugHeight, FocalLength: *debugFocal},
		UIRate:             *uiRate,
		RawLogEnabled:      *rawLogEnabled,
		RawLogDir:          *rawLogDir,
		PCDDir:             *pcdDir,
		PCDEvery:           *pcdEvery,
		IngestLogEvery:     *ingestLogEvery,
		IngestFallback:     *ingestFallback,
	}
	model, err := cfg.Validate()
	if err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Startup phase: the node is not ready until the camera params
	// are known. No frame is accepted before this completes.
	params := cfg.DebugParams
	if !cfg.Debug {
		params, err = ueclient.WaitForCameraParams(ctx, cfg.ClientBaseURL, cfg.HandshakeInterval, logger)
		if err != nil {
			logger.Fatalf("camera params handshake failed: %v", err)
		}
	}
	intrinsics, err := camera.NewIntrinsics(params)
	if err != nil {
		logger.Fatalf("invalid camera params: %v", err)
	}
	sens, err := sensor.New(model, cfg.FrameID, intrinsics)
	if err != nil {
		logger.Fatalf("sensor model setup failed: %v", err)
	}

	publisher, err := publish.New(cfg.PublishEndpoint)
	if err != nil {
		logger.Fatalf("failed to bind publish endpoint %s: %v", cfg.PublishEndpoint, err)
	}
	defer publisher.Close()

	var statusMu sync.Mutex
	status := map[string]any{
		"source":      "stream",
		"client":      "unknown",
		"stream":      "idle",
		"last_frame":  "",
		"last_ingest": "",
	}
	setStatus := func(key string, value any) {
		statusMu.Lock()
		status[key] = value
		statusMu.Unlock()
	}
	if cfg.Debug {
		setStatus("source", "simulator")
		setStatus("client", "simulator")
	} else {
		go ueclient.Poll(ctx, cfg.ClientBaseURL, cfg.StatusPollInterval, func(update ueclient.Status) {
			statusMu.Lock()
			status["client"] = update.Client
			status["stream"] = update.Stream
			statusMu.Unlock()
		})
	}

	var rawMessages <-chan types.RawMessage
	if cfg.Debug {
		rawMessages = simulator.Stream(ctx, params, cfg.DebugAcqRate)
	} else {
		var recorder ingest.Recorder
		if cfg.RawLogEnabled {
			writer, err := output.NewRawLogWriter(cfg.RawLogDir, "raw_cbor")
			if err != nil {
				logger.Fatalf("failed to start raw log: %v", err)
			}
			logger.Infof("recording raw ingest to %s", writer.Path())
			recorder = writer
			go func() {
				<-ctx.Done()
				if err := writer.Close(); err != nil {
					logger.Warnf("raw log close failed: %v", err)
				}
			}()
		}
		frames, err := ingest.StreamWithRecorder(ctx, cfg.Endpoint, cfg.IngestLogEvery, recorder, logger)
		if err != nil {
			if !cfg.IngestFallback {
				logger.Fatalf("failed to start ingest: %v", err)
			}
			logger.Warnf("failed to start ingest: %v; falling back to simulator", err)
			setStatus("source", "simulator")
			frames = simulator.Stream(ctx, params, cfg.DebugAcqRate)
		}
		rawMessages = frames
	}

	logger.Infof("sensor model %q ready, camera %dx%d f=%v, monitor at http://localhost:%d",
		model, params.Width, params.Height, params.FocalLength, cfg.MonitorPort)

	var m metrics
	stats := sensor.NewStats()
	incoming := make(chan types.RawFrame, 128)
	uiMessages := make(chan any, 16)

	go func() {
		defer close(incoming)
		for msg := range rawMessages {
			m.rawMessages.Add(1)
			setStatus("last_ingest", time.Now().Format(time.RFC3339))
			if msg.Type != "frame" {
				m.metaMessages.Add(1)
				continue
			}
			m.frameMessages.Add(1)
			select {
			case <-ctx.Done():
				return
			case incoming <- msg.Frame:
			}
		}
	}()

	runTimestamp := output.Timestamp()
	var wg sync.WaitGroup
	wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go func() {
			defer wg.Done()
			for raw := range incoming {
				start := time.Now()
				out, err := sens.Process(raw)
				m.processCount.Add(1)
				m.processNanos.Add(uint64(time.Since(start).Nanoseconds()))
				if err != nil {
					// per-frame failure: drop, log, keep going
					stats.RecordDrop()
					logger.Errorw("frame dropped", "timestamp", raw.Timestamp, "error", err)
					continue
				}
				stats.RecordFrame(out)
				setStatus("stream", "receiving")
				setStatus("last_frame", time.Now().Format(time.RFC3339))

				if err := publisher.Publish(out); err != nil {
					m.publishErr.Add(1)
					logger.Warnw("publish failed", "timestamp", out.Timestamp, "error", err)
				} else {
					m.published.Add(1)
				}

				if cfg.PCDDir != "" {
					if n := m.published.Load(); n%uint64(cfg.PCDEvery) == 0 {
						if err := output.WriteCloud(cfg.PCDDir, runTimestamp, n, out); err != nil {
							m.pcdWriteErr.Add(1)
							logger.Warnf("pcd write failed: %v", err)
						} else {
							m.pcdWriteOK.Add(1)
						}
					}
				}
			}
		}()
	}

	go func() {
		defer close(uiMessages)
		ticker := time.NewTicker(cfg.UIRate)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if summary, ok := stats.Snapshot(); ok {
					select {
					case uiMessages <- summary:
					default:
					}
				}
			}
		}
	}()

	statusFn := func() map[string]any {
		statusMu.Lock()
		copied := make(map[string]any, len(status)+1)
		for k, v := range status {
			copied[k] = v
		}
		statusMu.Unlock()
		metricsPayload := m.snapshot()
		metricsPayload["ingest_decode_failures_total"] = ingest.DecodeFailures()
		processed, dropped := stats.Counters()
		metricsPayload["frames_processed_total"] = processed
		metricsPayload["frames_dropped_total"] = dropped
		copied["metrics"] = metricsPayload
		return copied
	}

	snapshotFn := func() any {
		summary, ok := stats.Snapshot()
		if !ok {
			return nil
		}
		return summary
	}

	configFn := func() map[string]any {
		return map[string]any{
			"type":         "config",
			"model":        string(model),
			"frame_id":     cfg.FrameID,
			"width":        params.Width,
			"height":       params.Height,
			"focal_length": params.FocalLength,
			"endpoint":     cfg.Endpoint,
			"publish":      cfg.PublishEndpoint,
			"client_url":   cfg.ClientBaseURL,
			"debug":        cfg.Debug,
		}
	}

	if err := server.Run(ctx, cfg.MonitorPort, uiMessages, statusFn, snapshotFn, configFn); err != nil {
		logger.Infof("monitor stopped: %v", err)
	}
	stop()
	wg.Wait()
}

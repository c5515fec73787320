// cmd/camerabot/main.go
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Smengerl/Camera-Follower-Bot/internal/config"
	"github.com/Smengerl/Camera-Follower-Bot/internal/link"
)

// sendInterval throttles position lines to ~100Hz regardless of the
// producer's frame rate.
const sendInterval = 10 * time.Millisecond

// framePause paces the host loop when the producer itself imposes no
// cadence (the synthetic sweep). A camera-backed producer blocks on frame
// capture instead.
const framePause = 10 * time.Millisecond

func main() {
	cfgPath := flag.String("config", "", "path to follower config YAML")
	flag.Parse()

	// --------------------
	// Load + validate config
	// --------------------

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("config load failed: %v", err)
		}
		cfg = loaded
	}
	if err := config.ApplyEnv(cfg); err != nil {
		log.Fatalf("config env overlay failed: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// --------------------
	// Build the link (real or null, selected once)
	// --------------------

	lk := buildLink(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lk.Connect()
	defer lk.Close()

	run(ctx, lk, newSweepProducer(640, 480), logger)
}

func buildLink(cfg *config.Config, logger *slog.Logger) link.Link {
	lc := cfg.Follower.Link
	if lc.NoSerial {
		logger.Info("running without serial hardware")
		return link.NewNullLink(logger)
	}
	return link.NewManager(link.Config{
		Device:       lc.Device,
		Baud:         lc.Baud,
		Timeout:      time.Duration(lc.TimeoutMs) * time.Millisecond,
		MinBackoff:   time.Duration(lc.MinBackoffMs) * time.Millisecond,
		MaxBackoff:   time.Duration(lc.MaxBackoffMs) * time.Millisecond,
		Settle:       time.Duration(lc.SettleMs) * time.Millisecond,
		DiagCapacity: lc.DiagCapacity,
	}, logger, nil)
}

// run is the host loop: one producer sample per iteration, reconnect check
// before any traffic, throttled sends, then a diagnostic drain. Link
// failures never escalate; they degrade to drop-and-retry.
func run(ctx context.Context, lk link.Link, producer Producer, logger *slog.Logger) {
	var lastSend time.Time
	diagMark := lk.DiagnosticsSeq()

	for ctx.Err() == nil {
		x, y, ok := producer.Next()

		lk.ReconnectIfNeeded()

		// No target this cycle suppresses the send entirely.
		if ok {
			if now := time.Now(); now.Sub(lastSend) >= sendInterval {
				lk.SendPosition(float64(x), float64(y))
				lastSend = now
			}
		}

		if lk.ReadDiagnostics() {
			for _, ln := range lk.DiagnosticsSince(diagMark) {
				logger.Info("device", "line", ln)
			}
			diagMark = lk.DiagnosticsSeq()
		}

		time.Sleep(framePause)
	}
}

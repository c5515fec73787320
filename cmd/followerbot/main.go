// cmd/followerbot/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Smengerl/Camera-Follower-Bot/internal/actuator"
	"github.com/Smengerl/Camera-Follower-Bot/internal/config"
	"github.com/Smengerl/Camera-Follower-Bot/internal/controller"
	"github.com/Smengerl/Camera-Follower-Bot/internal/devlog"
	"github.com/Smengerl/Camera-Follower-Bot/internal/input"
	"github.com/Smengerl/Camera-Follower-Bot/internal/link"
)

func main() {
	var (
		cfgPath  = flag.String("config", "", "path to follower config YAML")
		stdio    = flag.Bool("stdio", false, "use stdin/stdout instead of a serial device")
		hold     = flag.Bool("hold", false, "start in hold (center) mode")
		disabled = flag.Bool("disabled", false, "start with the enable switch off")
	)
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

	// --------------------
	// Transport: serial device or stdio
	// --------------------

	var (
		src input.Source
		out io.Writer
	)
	if *stdio {
		src = newPumpSource(os.Stdin)
		out = os.Stdout
	} else {
		port, err := link.OpenSerial(cfg.Follower.Link.Device, cfg.Follower.Link.Baud)
		if err != nil {
			log.Fatalf("serial open failed: %v", err)
		}
		defer port.Close()
		src = port
		out = port
	}

	// --------------------
	// Rig + control loop
	// --------------------

	rig := buildRig(cfg)

	mode := controller.ModeAuto
	if *hold {
		mode = controller.ModeHold
	}
	hw := controller.StaticHardware{M: mode, E: !*disabled}

	loop, err := controller.New(
		tuningFrom(cfg.Follower.Control),
		hw,
		rig,
		input.NewReader(src),
		out,
		devlog.New(out),
	)
	if err != nil {
		log.Fatalf("controller build failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("control loop failed: %v", err)
	}
}

func buildRig(cfg *config.Config) *actuator.Rig {
	byName := make(map[string]actuator.Spec, len(cfg.Follower.Servos))
	for _, s := range cfg.Follower.Servos {
		byName[s.Name] = actuator.Spec{
			Pin: s.Pin, Min: s.Min, Max: s.Max, Default: s.Default,
		}
	}
	specs := actuator.Specs{
		EyeLR: byName[config.ServoEyeLR],
		EyeUD: byName[config.ServoEyeUD],
		LidTL: byName[config.ServoLidTL],
		LidTR: byName[config.ServoLidTR],
		BaseX: byName[config.ServoBaseX],
		BaseY: byName[config.ServoBaseY],
	}
	// Drives are discarded off-hardware; a firmware build substitutes PWM
	// drivers here.
	return actuator.NewRig(specs, actuator.DiscardFactory,
		cfg.Follower.Control.NeckRateDegS)
}

func tuningFrom(c config.ControlConfig) controller.Tuning {
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }
	tun := controller.DefaultTuning()
	tun.KP = c.KP
	tun.EyeDeadzone = c.EyeDeadzone
	tun.NeckDeadzone = c.NeckDeadzone
	tun.NeckDelay = ms(c.NeckDelayMs)
	tun.BlinkMinWait = ms(c.BlinkMinWaitMs)
	tun.BlinkMaxWait = ms(c.BlinkMaxWaitMs)
	tun.BlinkHold = ms(c.BlinkHoldMs)
	tun.CycleTime = ms(c.CycleMs)
	return tun
}

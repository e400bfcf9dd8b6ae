// Command starrynight runs the effects engine in a terminal: tcell stage,
// built-in generators, and a metronome beat source standing in for a real
// audio analyzer. Quit with Esc, q or Ctrl+C.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minipuft/starrynight/beatsource"
	"github.com/minipuft/starrynight/config"
	"github.com/minipuft/starrynight/engine"
	"github.com/minipuft/starrynight/generators"
	"github.com/minipuft/starrynight/service"
	"github.com/minipuft/starrynight/termstage"
)

var (
	configFlag  = flag.String("config", "", "settings file (YAML)")
	qualityFlag = flag.String("quality", "", "pin quality tier: minimal, balanced, high, ultra")
	fpsFlag     = flag.Float64("fps", 0, "target frames per second (0 = default)")
	bpmFlag     = flag.Float64("bpm", 0, "metronome tempo (0 = settings value)")
	audibleFlag = flag.Bool("audible", false, "play the metronome click")
	logFlag     = flag.String("log", "", "log file path (terminal owns stdout)")
	statsFlag   = flag.Bool("stats", false, "print metrics on exit")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "starrynight: %v\n", err)
		os.Exit(1)
	}
	if *qualityFlag != "" {
		cfg.Quality = *qualityFlag
	}
	if *fpsFlag > 0 {
		cfg.TargetFPS = *fpsFlag
	}
	if *bpmFlag > 0 {
		cfg.Audio.BPM = *bpmFlag
	}
	if *audibleFlag {
		cfg.Audio.Enabled = true
	}

	// The stage owns the terminal, so logs go to a file or nowhere
	var logDst io.Writer = io.Discard
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "starrynight: open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logDst = f
	}
	log := slog.New(slog.NewTextHandler(logDst, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	stage := termstage.New(log)
	if err := stage.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "starrynight: %v\n", err)
		os.Exit(1)
	}

	eng, err := engine.New(engine.Options{
		Log:      log,
		Surface:  stage,
		Settings: cfg,
	})
	if err != nil {
		stage.Stop()
		fmt.Fprintf(os.Stderr, "starrynight: %v\n", err)
		os.Exit(1)
	}
	if err := generators.InstallAll(log, eng); err != nil {
		stage.Stop()
		fmt.Fprintf(os.Stderr, "starrynight: %v\n", err)
		os.Exit(1)
	}

	source := beatsource.New(log, eng.Bus(), cfg.Audio)
	source.Start()

	driver := engine.NewTickerDriver(log, eng.Clock(), eng.Registry(), cfg.FrameTarget())
	driver.Start(func(now time.Time) {
		stage.Clear()
		w, h := stage.Size()
		eng.Frame(now, stage.Canvas(), w, h)
		stage.Show()
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case <-stage.Quit():
	case <-sig:
	}

	driver.Stop()
	eng.Close()
	for _, svc := range []service.Service{source, stage} {
		if err := svc.Stop(); err != nil {
			log.Warn("service stop failed", "service", svc.Name(), "error", err)
		}
	}

	if *statsFlag {
		fmt.Println(eng.Registry().Snapshot())
	}
}

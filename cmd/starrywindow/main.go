// Command starrywindow runs the effects engine in an ebiten window. The
// window's game loop drives frames, so no ticker is involved; everything
// else matches the terminal host. Quit with Esc or Q.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/minipuft/starrynight/beatsource"
	"github.com/minipuft/starrynight/config"
	"github.com/minipuft/starrynight/engine"
	"github.com/minipuft/starrynight/generators"
	"github.com/minipuft/starrynight/pixelstage"
)

var (
	configFlag  = flag.String("config", "", "settings file (YAML)")
	qualityFlag = flag.String("quality", "", "pin quality tier: minimal, balanced, high, ultra")
	bpmFlag     = flag.Float64("bpm", 0, "metronome tempo (0 = settings value)")
	audibleFlag = flag.Bool("audible", false, "play the metronome click")
	widthFlag   = flag.Int("width", 1024, "window width")
	heightFlag  = flag.Int("height", 576, "window height")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "starrywindow: %v\n", err)
		os.Exit(1)
	}
	if *qualityFlag != "" {
		cfg.Quality = *qualityFlag
	}
	if *bpmFlag > 0 {
		cfg.Audio.BPM = *bpmFlag
	}
	if *audibleFlag {
		cfg.Audio.Enabled = true
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	stage := pixelstage.New(log, "starrynight", *widthFlag, *heightFlag)

	eng, err := engine.New(engine.Options{
		Log:      log,
		Surface:  stage,
		Settings: cfg,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "starrywindow: %v\n", err)
		os.Exit(1)
	}
	if err := generators.InstallAll(log, eng); err != nil {
		fmt.Fprintf(os.Stderr, "starrywindow: %v\n", err)
		os.Exit(1)
	}

	source := beatsource.New(log, eng.Bus(), cfg.Audio)
	source.Start()

	runErr := stage.Run(func(now time.Time) {
		w, h := stage.Size()
		eng.Frame(now, stage.Canvas(), w, h)
	})

	source.Stop()
	eng.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "starrywindow: %v\n", runErr)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pong/audio"
	"github.com/pthm-cable/pong/camera"
	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/game"
	"github.com/pthm-cable/pong/inspector"
	"github.com/pthm-cable/pong/renderer"
	"github.com/pthm-cable/pong/sound"
	"github.com/pthm-cable/pong/telemetry"
	"github.com/pthm-cable/pong/ui"
)

const (
	headlessDt   = 1.0 / 60.0
	screenMargin = 20
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output rally and match stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N updates (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	tel, err := newTelemetry(cfg, *outputDir, *logStats || cfg.Telemetry.LogRallies)
	if err != nil {
		slog.Error("failed to set up output", "error", err)
		os.Exit(1)
	}
	defer tel.Close()

	if *headless {
		runHeadless(cfg, tel, rngSeed, *maxTicks)
	} else {
		runWindow(cfg, tel, rngSeed, *maxTicks)
	}
}

// runHeadless plays one auto-started match without a window until
// interrupted or maxTicks updates have run.
func runHeadless(cfg *config.Config, tel *telemetrySink, seed int64, maxTicks int) {
	g, err := game.New(cfg, game.Options{Seed: seed, Recorder: tel.collector})
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("starting headless simulation", "seed", seed, "max_ticks", maxTicks)
	g.StartGame()

	for tick := 1; ctx.Err() == nil; tick++ {
		g.Update(headlessDt)
		tel.flush()

		if maxTicks > 0 && tick >= maxTicks {
			slog.Info("max ticks reached", "tick", tick, "sim_time", g.SimTime())
			break
		}
	}

	g.StopGame()
	tel.flush()
}

// runWindow runs the interactive game until the window closes.
func runWindow(cfg *config.Config, tel *telemetrySink, seed int64, maxTicks int) {
	queue := sound.NewQueue(cfg.Sound.QueueSize)
	g, err := game.New(cfg, game.Options{Seed: seed, Sink: queue, Recorder: tel.collector})
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Pong")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.SetExitKey(rl.KeyNull) // Escape stops the match instead

	player := audio.Open(cfg.Sound.Dir)
	defer player.Close()

	cam := camera.New(
		float32(cfg.Screen.Width), float32(cfg.Screen.Height),
		float32(cfg.Playfield.Width), float32(cfg.Playfield.Height),
		screenMargin,
	)
	draw := renderer.New(cam)
	insp := inspector.NewInspector(int32(cfg.Screen.Width))
	input := ui.NewInput(g.Controller(), cam, insp)
	perf := telemetry.NewPerfCollector(cfg.Screen.TargetFPS)
	perfEvery := cfg.Screen.TargetFPS
	if perfEvery < 1 {
		perfEvery = 60
	}

	snap := g.Snapshot()
	for tick := 1; !rl.WindowShouldClose(); tick++ {
		perf.StartFrame()

		perf.StartPhase(telemetry.PhaseInput)
		if rl.IsWindowResized() {
			w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
			cam.Resize(float32(w), float32(h))
			insp.Resize(int32(w))
			g.Controller().SetPlayfieldSize(playfieldFor(w, h))
		}
		input.Poll(snap)

		perf.StartPhase(telemetry.PhaseSimulation)
		g.Update(float64(rl.GetFrameTime()))
		snap = g.Snapshot()
		tel.flush()

		perf.StartPhase(telemetry.PhaseSound)
		player.Flush(queue)

		perf.StartPhase(telemetry.PhaseRender)
		rl.BeginDrawing()
		draw.Draw(snap)
		insp.Draw(snap)
		renderer.DrawHUD(renderer.HUDData{
			Snapshot:     snap,
			FPS:          rl.GetFPS(),
			ScreenWidth:  int32(rl.GetScreenWidth()),
			ScreenHeight: int32(rl.GetScreenHeight()),
		})
		rl.EndDrawing()

		perf.EndFrame()
		if tick%perfEvery == 0 {
			tel.writePerf(perf.Stats(), snap.SimTime)
		}

		if maxTicks > 0 && tick >= maxTicks {
			break
		}
	}

	g.StopGame()
	tel.flush()
	if n := queue.Dropped(); n > 0 {
		slog.Info("sound events dropped", "count", n)
	}
}

// playfieldFor returns the playfield size that fills a w x h window inside
// the screen margin.
func playfieldFor(w, h int) (float64, float64) {
	return float64(w - 2*screenMargin), float64(h - 2*screenMargin)
}

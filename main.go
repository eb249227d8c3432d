// Command ribossome runs the interactive simulation window, grounded on
// the teacher's top-level main.go flag set and game loop shape
// (rl.InitWindow/SetTargetFPS/WindowShouldClose), adapted from the
// teacher's ECS-entity game loop to the ping-pong agent buffer and
// compute-kernel orchestrator this simulation uses instead.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ribossome/ribossome/agent"
	"github.com/ribossome/ribossome/camera"
	"github.com/ribossome/ribossome/config"
	"github.com/ribossome/ribossome/envgrid"
	"github.com/ribossome/ribossome/persist"
	"github.com/ribossome/ribossome/renderer"
	"github.com/ribossome/ribossome/sim"
	"github.com/ribossome/ribossome/telemetry"
	"github.com/ribossome/ribossome/ui"
)

var (
	configPath  = flag.String("config", "", "Config YAML file (empty = use embedded defaults)")
	initialSpeed = flag.Int("speed", 1, "Initial simulation speed (ticks per frame, 1-10)")
	logInterval = flag.Int64("log", 0, "Log a population summary every N ticks (0 = disabled)")
	logFile     = flag.String("logfile", "", "Write logs to file instead of stdout")
	perfLog     = flag.Bool("perf", false, "Enable performance logging")
	snapshotIn  = flag.String("snapshot-in", "", "Path to load an initial snapshot from (empty = fresh start)")
)

const (
	screenWidth  = 1280
	screenHeight = 800
)

func main() {
	flag.Parse()

	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		sim.SetLogWriter(f)
	}

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	grid := envgrid.New(cfg.Environment.Resolution, cfg.Derived.WorldSize)
	envgrid.Seed(grid, cfg.Environment)

	orch := sim.New(&cfg.Params, grid)
	orch.Perf = telemetry.NewPerfCollector(60)

	if *snapshotIn != "" {
		agents, hdr, err := persist.Load(*snapshotIn, grid)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load snapshot: %v\n", err)
			os.Exit(1)
		}
		copy(orch.AgentsIn(), agents)
		orch.Epoch = hdr.Epoch
	} else {
		seedInitialPopulation(orch, cfg)
	}

	rl.InitWindow(screenWidth, screenHeight, "Ribossome")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	cam := camera.New(screenWidth, screenHeight, float32(cfg.Derived.WorldSize), float32(cfg.Derived.WorldSize))
	envLayer := renderer.NewEnvLayer(cfg.Environment.Resolution, screenWidth, screenHeight)
	envLayer.Init()
	defer envLayer.Unload()

	agentLayer := renderer.NewAgentLayer(screenWidth, screenHeight)
	defer agentLayer.Unload()

	overlay := ui.NewOverlay()

	stepsPerFrame := *initialSpeed
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}

	for !rl.WindowShouldClose() {
		handleInput(cam, overlay, &stepsPerFrame)

		for i := 0; i < stepsPerFrame; i++ {
			orch.Tick()
			if *logInterval > 0 && orch.Epoch%(*logInterval) == 0 {
				orch.LogTickSummary()
				if *perfLog {
					orch.LogPerfStats()
				}
			}
		}

		envLayer.Update(orch.Grid)
		envTex := envLayer.Draw(orch.Params)
		agentsTex := agentLayer.Draw(orch.AgentsIn(), cam)

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		renderer.Composite(envTex, agentsTex, orch.Params)
		overlay.Draw(orch.Params)
		rl.DrawFPS(10, screenHeight-24)
		rl.EndDrawing()
	}
}

func handleInput(cam *camera.Camera, overlay *ui.Overlay, stepsPerFrame *int) {
	if rl.IsKeyPressed(rl.KeyO) {
		overlay.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyUp) && *stepsPerFrame < 10 {
		*stepsPerFrame++
	}
	if rl.IsKeyPressed(rl.KeyDown) && *stepsPerFrame > 1 {
		*stepsPerFrame--
	}
	if rl.IsKeyPressed(rl.KeyR) {
		cam.Reset()
	}

	wheel := rl.GetMouseWheelMove()
	if wheel != 0 {
		cam.ZoomBy(1.0 + wheel*0.1)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		delta := rl.GetMouseDelta()
		cam.Pan(-delta.X, -delta.Y)
	}
}

// seedInitialPopulation queues cfg.Params.AgentCount random-genome spawn
// requests, processed by the first tick's CPU-spawn dispatch.
func seedInitialPopulation(orch *sim.Orchestrator, cfg *config.Config) {
	rng := rand.New(rand.NewSource(cfg.Params.RandomSeed))
	for i := 0; i < cfg.Params.AgentCount; i++ {
		orch.QueueSpawn(agent.SpawnRequest{
			Seed:            rng.Int63(),
			GenomeSeed:      rng.Int63(),
			InitialEnergy:   float32(cfg.Params.FoodPower * 10),
			InitialRotation: rng.Float32() * 6.2831853,
		})
	}
}

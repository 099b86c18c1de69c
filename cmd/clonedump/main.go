// clonedump runs the grid cloner headless for a fixed number of ticks and
// dumps window stats plus a final per-clone snapshot to CSV.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pthm-cable/cloner/cloner"
	"github.com/pthm-cable/cloner/components"
	"github.com/pthm-cable/cloner/config"
	"github.com/pthm-cable/cloner/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output-dir", "out", "Directory for CSV output")
	ticks := flag.Int("ticks", 600, "Number of ticks to simulate")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	grid := cloner.New(cfg.Cloner.Grid, cfg.Cloner.Effectors, cloner.NewTemplateChildren(cfg.Cloner.Children))
	grid.Enabled = cfg.Cloner.Enabled

	mode, err := cfg.Cloner.Physics.Mode()
	if err != nil {
		slog.Error("invalid physics mode", "error", err)
		os.Exit(1)
	}
	grid.SetPhysics(mode, cfg.Cloner.Physics.Body())

	out, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("opening output", "error", err)
		os.Exit(1)
	}

	windowTicks := int32(cfg.Telemetry.StatsWindow * float64(cfg.Screen.TargetFPS))
	collector := telemetry.NewCollector(windowTicks)

	dt := 1.0 / float64(cfg.Screen.TargetFPS)
	clock := 0.0

	var clones []components.CloneTransform
	for tick := int32(1); tick <= int32(*ticks); tick++ {
		clock += dt
		clones = grid.Generate(clock)

		if collector.Due(tick) {
			ws := collector.Sample(tick, clock, clones, grid.FrozenCount())
			if err := out.WriteStats(ws); err != nil {
				slog.Error("writing stats", "error", err)
			}
		}
	}

	if err := out.WriteSnapshot(telemetry.SnapshotClones(int32(*ticks), clones)); err != nil {
		slog.Error("writing snapshot", "error", err)
	}
	if err := out.Close(); err != nil {
		slog.Error("closing output", "error", err)
	}

	slog.Info("dump complete", "ticks", *ticks, "clones", len(clones), "dir", *outputDir)
}

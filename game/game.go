// Package game wires the cloner pipeline into an ECS scene and the per-frame
// demo loop: generate, reconcile, physics takeover, telemetry, render.
package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cloner/camera"
	"github.com/pthm-cable/cloner/cloner"
	"github.com/pthm-cable/cloner/collider"
	"github.com/pthm-cable/cloner/components"
	"github.com/pthm-cable/cloner/config"
	"github.com/pthm-cable/cloner/physics"
	"github.com/pthm-cable/cloner/telemetry"
	"github.com/pthm-cable/cloner/ui"
)

// Clone sources for CloneMeta bookkeeping.
const (
	sourceGrid = iota
	sourceFracture
)

// Options are runtime settings not covered by the config file.
type Options struct {
	Headless  bool
	OutputDir string
	LogStats  bool
}

// takeover is the demo body state for a frozen, physics-owned clone.
type takeover struct {
	body physics.Body
	pos  rl.Vector3
	half float32
}

// Game holds the demo state.
type Game struct {
	cfg  *config.Config
	opts Options

	world       *ecs.World
	cloneMapper *ecs.Map4[components.Position, components.Rotation, components.Scale, components.CloneMeta]
	cloneFilter *ecs.Filter4[components.Position, components.Rotation, components.Scale, components.CloneMeta]
	posMap      *ecs.Map1[components.Position]
	rotMap      *ecs.Map1[components.Rotation]
	sclMap      *ecs.Map1[components.Scale]
	metaMap     *ecs.Map1[components.CloneMeta]

	grid     *cloner.GridCloner
	fracture *cloner.Fracture

	// Scene reconciliation: one entity per clone key per source.
	gridEntities     map[components.CloneKey]ecs.Entity
	fractureEntities map[components.CloneKey]ecs.Entity

	attachments map[components.CloneKey]*physics.Attachment
	takeovers   map[components.CloneKey]*takeover

	cam   *camera.Camera
	panel *ui.Panel

	perf   *telemetry.PerfCollector
	stats  *telemetry.Collector
	output *telemetry.OutputManager

	tick   int32
	clock  float64
	paused bool

	// dirty forces a regeneration on the next tick (UI edits, mode
	// switches). The clock gate otherwise skips recomputation for fully
	// static stacks.
	dirty      bool
	lastClones []components.CloneTransform
}

// NewGame builds the scene from configuration.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	world := ecs.NewWorld()

	grid := cloner.New(cfg.Cloner.Grid, cfg.Cloner.Effectors, cloner.NewTemplateChildren(cfg.Cloner.Children))
	grid.Enabled = cfg.Cloner.Enabled

	mode, err := cfg.Cloner.Physics.Mode()
	if err != nil {
		return nil, fmt.Errorf("resolving physics mode: %w", err)
	}
	grid.SetPhysics(mode, cfg.Cloner.Physics.Body())

	var fracture *cloner.Fracture
	if len(cfg.Fracture.Children) > 0 {
		fracture = cloner.NewFracture(cfg.Fracture.Effectors, cloner.NewTemplateChildren(cfg.Fracture.Children))
		fracture.Enabled = cfg.Fracture.Enabled
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = cfg.Telemetry.OutputDir
	}
	output, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return nil, fmt.Errorf("opening output: %w", err)
	}

	windowTicks := int32(cfg.Telemetry.StatsWindow * float64(cfg.Screen.TargetFPS))

	target := rl.Vector3Add(cfg.Cloner.Grid.Position, rl.Vector3Scale(cfg.Cloner.Grid.Offset, float32(cfg.Cloner.Grid.GridUnit)))

	g := &Game{
		cfg:              cfg,
		opts:             opts,
		world:            world,
		cloneMapper:      ecs.NewMap4[components.Position, components.Rotation, components.Scale, components.CloneMeta](world),
		cloneFilter:      ecs.NewFilter4[components.Position, components.Rotation, components.Scale, components.CloneMeta](world),
		posMap:           ecs.NewMap1[components.Position](world),
		rotMap:           ecs.NewMap1[components.Rotation](world),
		sclMap:           ecs.NewMap1[components.Scale](world),
		metaMap:          ecs.NewMap1[components.CloneMeta](world),
		grid:             grid,
		fracture:         fracture,
		gridEntities:     make(map[components.CloneKey]ecs.Entity),
		fractureEntities: make(map[components.CloneKey]ecs.Entity),
		attachments:      make(map[components.CloneKey]*physics.Attachment),
		takeovers:        make(map[components.CloneKey]*takeover),
		cam:              camera.New(target, cfg.Camera.Distance, cfg.Camera.Yaw, cfg.Camera.Pitch, cfg.Camera.FOVY),
		panel:            ui.NewPanel(10, 10, 260),
		perf:             telemetry.NewPerfCollector(cfg.Screen.TargetFPS),
		stats:            telemetry.NewCollector(windowTicks),
		output:           output,
		dirty:            true,
	}
	return g, nil
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 { return g.tick }

// MarkDirty forces regeneration on the next tick.
func (g *Game) MarkDirty() { g.dirty = true }

// Update handles input and advances one frame (graphical mode).
func (g *Game) Update() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.panel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.cyclePhysicsMode()
	}
	if rl.IsKeyPressed(rl.KeyL) {
		g.logPerfStats()
	}
	g.cam.HandleInput()

	if g.paused {
		return
	}
	g.step(float64(rl.GetFrameTime()))
}

// UpdateHeadless advances one fixed-step tick without raylib input.
func (g *Game) UpdateHeadless() {
	g.step(1.0 / float64(g.cfg.Screen.TargetFPS))
}

// step runs one simulation tick.
func (g *Game) step(dt float64) {
	g.perf.StartTick()
	g.tick++

	g.perf.StartPhase(telemetry.PhaseGenerate)
	needsClock := g.grid.NeedsClock() || (g.fracture != nil && g.fracture.NeedsClock())
	if needsClock {
		g.clock += dt
	}
	if needsClock || g.dirty || g.lastClones == nil || g.grid.PendingActivations() > 0 {
		g.lastClones = g.grid.Generate(g.clock)
		g.dirty = false
	}

	g.perf.StartPhase(telemetry.PhaseReconcile)
	g.reconcileGrid(g.lastClones)
	if g.fracture != nil {
		g.reconcileFracture(g.fracture.Apply(g.clock))
	}

	g.perf.StartPhase(telemetry.PhasePhysics)
	g.stepPhysics(float32(dt), g.lastClones)

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.sampleTelemetry(g.lastClones)

	g.perf.EndTick()
}

// cyclePhysicsMode steps through the physics modes for demo purposes.
func (g *Game) cyclePhysicsMode() {
	next := physics.ModeNone
	switch g.grid.PhysicsMode() {
	case physics.ModeNone:
		next = physics.ModeKinematicUntilTouch
	case physics.ModeKinematicUntilTouch:
		next = physics.ModeSensorUntilTouch
	case physics.ModeSensorUntilTouch:
		next = physics.ModeNone
	}
	g.grid.SetPhysics(next, g.grid.BodyParams())
	// Leaving a collision-activated mode drops frozen state; the demo
	// bodies and attachments restart from scratch either way.
	g.takeovers = make(map[components.CloneKey]*takeover)
	g.attachments = make(map[components.CloneKey]*physics.Attachment)
	g.MarkDirty()
	Logf("physics mode -> %s", next)
}

// stepPhysics maintains attachments, fires ground-contact activations and
// integrates takeover bodies for frozen clones.
func (g *Game) stepPhysics(dt float32, clones []components.CloneTransform) {
	mode := g.grid.PhysicsMode()
	if mode == physics.ModeNone {
		return
	}

	for i := range clones {
		cl := &clones[i]
		att, ok := g.attachments[cl.Key]
		if !ok {
			att = g.grid.Attachment(*cl)
			g.attachments[cl.Key] = att
		}

		if mode.CollisionActivated() && !att.Activated() && !g.grid.IsFrozen(cl.Key) {
			if physics.ContactsGround(att.Collider, cl.Position) {
				att.Activate()
			}
		}

		if g.grid.IsFrozen(cl.Key) {
			to, ok := g.takeovers[cl.Key]
			if !ok {
				half := att.Collider.HalfExtents.Y
				switch att.Collider.Shape {
				case collider.Ball:
					half = att.Collider.Radius
				case collider.Cylinder:
					half = att.Collider.HalfHeight
				}
				to = &takeover{pos: cl.Position, half: half}
				to.body.Params = g.grid.BodyParams()
				g.takeovers[cl.Key] = to
			}
			to.body.Step(dt, &to.pos, to.half)
			// The physics body owns the transform now.
			if e, ok := g.gridEntities[cl.Key]; ok {
				pos := g.posMap.Get(e)
				pos.X, pos.Y, pos.Z = to.pos.X, to.pos.Y, to.pos.Z
			}
		}
	}
}

// sampleTelemetry emits window stats at window boundaries.
func (g *Game) sampleTelemetry(clones []components.CloneTransform) {
	if !g.stats.Due(g.tick) {
		return
	}
	ws := g.stats.Sample(g.tick, g.clock, clones, g.grid.FrozenCount())
	if err := g.output.WriteStats(ws); err != nil {
		Logf("stats write failed: %v", err)
	}
	if g.opts.LogStats {
		g.logWindowStats(ws)
	}
}

// Unload releases resources.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		Logf("closing output: %v", err)
	}
}

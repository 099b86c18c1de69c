// Package telemetry collects per-window statistics and timings for the
// cloner pipeline and writes them to CSV for offline analysis.
package telemetry

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/cloner/components"
)

// WindowStats aggregates one stats window of generator output.
type WindowStats struct {
	WindowEndTick int32   `csv:"window_end"`
	SimTimeSec    float64 `csv:"sim_time"`

	CloneCount  int `csv:"clones"`
	HiddenCount int `csv:"hidden"`
	FrozenCount int `csv:"frozen"`

	// Displacement is the per-clone distance between the post-effector
	// position and the bare grid position, sampled at window end.
	DisplacementMean float64 `csv:"displacement_mean"`
	DisplacementStd  float64 `csv:"displacement_std"`
	DisplacementP50  float64 `csv:"displacement_p50"`
	DisplacementP90  float64 `csv:"displacement_p90"`
	DisplacementMax  float64 `csv:"displacement_max"`
}

// Collector samples generator output at window boundaries.
type Collector struct {
	windowTicks int32
	lastWindow  int32
}

// NewCollector creates a collector emitting one WindowStats every
// windowTicks ticks.
func NewCollector(windowTicks int32) *Collector {
	if windowTicks < 1 {
		windowTicks = 60
	}
	return &Collector{windowTicks: windowTicks}
}

// Due reports whether a window boundary has been reached.
func (c *Collector) Due(tick int32) bool {
	return tick-c.lastWindow >= c.windowTicks
}

// Sample computes window stats from the current tick's output and advances
// the window.
func (c *Collector) Sample(tick int32, simTime float64, clones []components.CloneTransform, frozenCount int) WindowStats {
	c.lastWindow = tick
	return ComputeWindowStats(tick, simTime, clones, frozenCount)
}

// ComputeWindowStats aggregates one tick's generator output.
func ComputeWindowStats(tick int32, simTime float64, clones []components.CloneTransform, frozenCount int) WindowStats {
	ws := WindowStats{
		WindowEndTick: tick,
		SimTimeSec:    simTime,
		CloneCount:    len(clones),
		FrozenCount:   frozenCount,
	}

	if len(clones) == 0 {
		return ws
	}

	disp := make([]float64, 0, len(clones))
	for _, cl := range clones {
		if cl.Hidden {
			ws.HiddenCount++
		}
		dx := float64(cl.Position.X - cl.LocalPosition.X)
		dy := float64(cl.Position.Y - cl.LocalPosition.Y)
		dz := float64(cl.Position.Z - cl.LocalPosition.Z)
		d := math.Sqrt(dx*dx + dy*dy + dz*dz)
		disp = append(disp, d)
		if d > ws.DisplacementMax {
			ws.DisplacementMax = d
		}
	}

	ws.DisplacementMean = stat.Mean(disp, nil)
	if len(disp) > 1 {
		ws.DisplacementStd = stat.StdDev(disp, nil)
	}
	sort.Float64s(disp)
	ws.DisplacementP50 = stat.Quantile(0.5, stat.Empirical, disp, nil)
	ws.DisplacementP90 = stat.Quantile(0.9, stat.Empirical, disp, nil)
	return ws
}

// CloneSample is one clone row of a snapshot CSV dump.
type CloneSample struct {
	Tick  int32 `csv:"tick"`
	KeyX  int   `csv:"key_x"`
	KeyY  int   `csv:"key_y"`
	KeyZ  int   `csv:"key_z"`
	Index int   `csv:"index"`

	PosX float32 `csv:"pos_x"`
	PosY float32 `csv:"pos_y"`
	PosZ float32 `csv:"pos_z"`

	Hidden   bool    `csv:"hidden"`
	Template int     `csv:"template"`
	Color    float64 `csv:"color"`
	EntityID string  `csv:"entity_id"`
}

// SnapshotClones converts generator output into CSV rows.
func SnapshotClones(tick int32, clones []components.CloneTransform) []CloneSample {
	rows := make([]CloneSample, 0, len(clones))
	for _, cl := range clones {
		rows = append(rows, CloneSample{
			Tick:     tick,
			KeyX:     cl.Key.X,
			KeyY:     cl.Key.Y,
			KeyZ:     cl.Key.Z,
			Index:    cl.Index,
			PosX:     cl.Position.X,
			PosY:     cl.Position.Y,
			PosZ:     cl.Position.Z,
			Hidden:   cl.Hidden,
			Template: cl.TemplateIndex,
			Color:    cl.Color,
			EntityID: cl.EntityID,
		})
	}
	return rows
}

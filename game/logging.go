package game

import (
	"fmt"
	"io"
	"time"

	"github.com/pthm-cable/cloner/telemetry"
)

// logWriter is the destination for log output.
var logWriter io.Writer

// SetLogWriter sets the log output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// logWindowStats logs one telemetry window.
func (g *Game) logWindowStats(ws telemetry.WindowStats) {
	Logf("=== Stats @ Tick %d (t=%.1fs) ===", g.tick, ws.SimTimeSec)
	Logf("  clones %d  hidden %d  frozen %d", ws.CloneCount, ws.HiddenCount, ws.FrozenCount)
	Logf("  displacement mean %.3f  std %.3f  p50 %.3f  p90 %.3f  max %.3f",
		ws.DisplacementMean, ws.DisplacementStd, ws.DisplacementP50, ws.DisplacementP90, ws.DisplacementMax)
}

// logPerfStats logs per-phase timings averaged over the perf window.
func (g *Game) logPerfStats() {
	total := g.perf.Total()
	Logf("=== Perf @ Tick %d ===", g.tick)
	Logf("Total step time: %s", total.Round(time.Microsecond))

	for _, name := range g.perf.SortedNames() {
		avg := g.perf.Avg(name)
		pct := float64(0)
		if total > 0 {
			pct = float64(avg) / float64(total) * 100
		}
		Logf("  %-12s %10s  %5.1f%%", name, avg.Round(time.Microsecond), pct)
	}
	Logf("")
}

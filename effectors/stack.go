package effectors

import (
	"log/slog"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Stack evaluates an ordered effector list. It owns the per-effector noise
// generator cache; evaluators themselves are pure.
type Stack struct {
	effectors []Effector

	// Noise generators memoized by effector index, invalidated when that
	// effector's seed changes.
	noiseGens map[int]noiseEntry

	// Sorted material names memoized by effector index, so material draws
	// use a stable salt order.
	materialNames map[int][]string
}

type noiseEntry struct {
	seed int
	gen  opensimplex.Noise
}

// NewStack wraps an effector list. Unknown kinds are reported once here and
// skipped during evaluation.
func NewStack(effs []Effector) *Stack {
	for i := range effs {
		switch effs[i].Kind {
		case KindLinear, KindRandom, KindNoise, KindTime, KindStep:
		default:
			slog.Warn("skipping effector with unknown kind", "index", i, "kind", effs[i].Kind)
		}
	}
	return &Stack{
		effectors:     effs,
		noiseGens:     make(map[int]noiseEntry),
		materialNames: make(map[int][]string),
	}
}

// Effectors exposes the underlying list for UI editing. The slice header is
// stable; entries may be mutated between ticks.
func (s *Stack) Effectors() []Effector {
	return s.effectors
}

// NeedsClock reports whether any enabled effector depends on the clock. When
// false the caller may skip per-frame clock sampling and recomputation.
func (s *Stack) NeedsClock() bool {
	for i := range s.effectors {
		e := &s.effectors[i]
		if !e.Enabled || e.strength() <= 0 {
			continue
		}
		switch e.Kind {
		case KindTime:
			return true
		case KindNoise:
			sp := e.Noise.PositionSpeed
			if sp.X != 0 || sp.Y != 0 || sp.Z != 0 {
				return true
			}
		}
	}
	return false
}

// Apply folds the stack over one clone and returns the accumulated delta.
// local is the clone's pre-effector position, index its flat sequence number
// and count the total clone count (used by the Step effector).
func (s *Stack) Apply(local rl.Vector3, index, count int, clock float64) Delta {
	var d Delta
	for i := range s.effectors {
		e := &s.effectors[i]
		if !e.Enabled || e.strength() <= 0 {
			continue
		}
		switch e.Kind {
		case KindLinear:
			evalLinear(e, local, &d)
		case KindRandom:
			evalRandom(e, index, i, s.sortedMaterials(i), &d)
		case KindNoise:
			evalNoise(e, s.noiseGen(i, e.Seed), local, clock, &d)
		case KindTime:
			evalTime(e, index, clock, &d)
		case KindStep:
			evalStep(e, index, count, &d)
		}
	}
	return d
}

// noiseGen returns the memoized generator for the effector at idx, rebuilding
// it only when the seed changed.
func (s *Stack) noiseGen(idx, seed int) opensimplex.Noise {
	if entry, ok := s.noiseGens[idx]; ok && entry.seed == seed {
		return entry.gen
	}
	gen := opensimplex.New(int64(seed))
	s.noiseGens[idx] = noiseEntry{seed: seed, gen: gen}
	return gen
}

// sortedMaterials returns the effector's material color names in sorted
// order, so per-name random salts are assigned deterministically.
func (s *Stack) sortedMaterials(idx int) []string {
	e := &s.effectors[idx]
	if len(e.MaterialColors) == 0 {
		return nil
	}
	if names, ok := s.materialNames[idx]; ok && len(names) == len(e.MaterialColors) {
		return names
	}
	names := make([]string, 0, len(e.MaterialColors))
	for n := range e.MaterialColors {
		names = append(names, n)
	}
	sort.Strings(names)
	s.materialNames[idx] = names
	return names
}

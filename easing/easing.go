// Package easing provides named monotone curve functions used by effector
// contour shaping and loop-based effectors.
package easing

import "math"

// Func maps a progress value in [0,1] to a shaped value in [0,1].
type Func func(t float64) float64

// Linear is the identity curve.
func Linear(t float64) float64 { return t }

// Smoothstep is the classic 3t^2 - 2t^3 curve.
func Smoothstep(t float64) float64 { return t * t * (3 - 2*t) }

// QuadIn accelerates from zero.
func QuadIn(t float64) float64 { return t * t }

// QuadOut decelerates to one.
func QuadOut(t float64) float64 { return t * (2 - t) }

// QuadInOut accelerates then decelerates.
func QuadInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// CubicIn accelerates from zero, steeper than QuadIn.
func CubicIn(t float64) float64 { return t * t * t }

// CubicOut decelerates to one, steeper than QuadOut.
func CubicOut(t float64) float64 {
	u := t - 1
	return u*u*u + 1
}

// CubicInOut accelerates then decelerates.
func CubicInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := 2*t - 2
	return 0.5*u*u*u + 1
}

// ExpoIn is an exponential ramp from zero.
func ExpoIn(t float64) float64 {
	if t <= 0 {
		return 0
	}
	return math.Pow(2, 10*(t-1))
}

// ExpoOut is an exponential approach to one.
func ExpoOut(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

// SineIn follows the first quarter of an inverted cosine.
func SineIn(t float64) float64 { return 1 - math.Cos(t*math.Pi/2) }

// SineOut follows the first quarter of a sine.
func SineOut(t float64) float64 { return math.Sin(t * math.Pi / 2) }

// SineInOut follows half a cosine period.
func SineInOut(t float64) float64 { return 0.5 * (1 - math.Cos(t*math.Pi)) }

// CircIn follows the lower quarter of a circle.
func CircIn(t float64) float64 { return 1 - math.Sqrt(1-t*t) }

// CircOut follows the upper quarter of a circle.
func CircOut(t float64) float64 {
	u := t - 1
	return math.Sqrt(1 - u*u)
}

var byName = map[string]Func{
	"linear":     Linear,
	"smoothstep": Smoothstep,
	"quadIn":     QuadIn,
	"quadOut":    QuadOut,
	"quadInOut":  QuadInOut,
	"cubicIn":    CubicIn,
	"cubicOut":   CubicOut,
	"cubicInOut": CubicInOut,
	"expoIn":     ExpoIn,
	"expoOut":    ExpoOut,
	"sineIn":     SineIn,
	"sineOut":    SineOut,
	"sineInOut":  SineInOut,
	"circIn":     CircIn,
	"circOut":    CircOut,
}

// Lookup returns the named curve, or false if the name is unknown.
func Lookup(name string) (Func, bool) {
	f, ok := byName[name]
	return f, ok
}

// ByName returns the named curve, falling back to Linear for unknown or
// empty names.
func ByName(name string) Func {
	if f, ok := byName[name]; ok {
		return f
	}
	return Linear
}

// Names returns the known curve names. The result is not sorted.
func Names() []string {
	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	return names
}

// Package physics holds the attachment layer between generated clones and
// the physics engine: body modes, per-clone attachments and the
// collision-activation event channel consumed by the grid cloner's freeze
// cache.
package physics

import (
	"fmt"

	"github.com/pthm-cable/cloner/collider"
	"github.com/pthm-cable/cloner/components"
)

// Mode selects how clone bodies participate in physics.
type Mode int

const (
	// ModeNone disables physics attachment entirely.
	ModeNone Mode = iota
	// ModeFixed attaches immovable bodies.
	ModeFixed
	// ModeDynamic attaches fully dynamic bodies from the first tick.
	ModeDynamic
	// ModeKinematicUntilTouch keeps bodies kinematic until their first
	// collision, then hands them to the physics engine.
	ModeKinematicUntilTouch
	// ModeSensorUntilTouch keeps bodies as sensors until their first
	// collision, then hands them to the physics engine.
	ModeSensorUntilTouch
)

// CollisionActivated reports whether the mode freezes clones on first
// collision.
func (m Mode) CollisionActivated() bool {
	return m == ModeKinematicUntilTouch || m == ModeSensorUntilTouch
}

// String returns the config tag for the mode.
func (m Mode) String() string {
	switch m {
	case ModeFixed:
		return "fixed"
	case ModeDynamic:
		return "dynamic"
	case ModeKinematicUntilTouch:
		return "kinematicUntilTouch"
	case ModeSensorUntilTouch:
		return "sensorUntilTouch"
	default:
		return "none"
	}
}

// ParseMode resolves a config tag to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "none":
		return ModeNone, nil
	case "fixed":
		return ModeFixed, nil
	case "dynamic":
		return ModeDynamic, nil
	case "kinematicUntilTouch":
		return ModeKinematicUntilTouch, nil
	case "sensorUntilTouch":
		return ModeSensorUntilTouch, nil
	default:
		return ModeNone, fmt.Errorf("unknown physics mode %q", s)
	}
}

// BodyParams are the per-body physics properties forwarded to the engine.
type BodyParams struct {
	Mass          float32 `yaml:"mass"`
	Friction      float32 `yaml:"friction"`
	LockRotations bool    `yaml:"lock_rotations"`
}

// Activation is the event a clone's body emits on its first collision.
type Activation struct {
	Key components.CloneKey
}

// Attachment wraps one clone's rendered element in a physics body. The
// cloner never reads the attachment back; the only channel from physics to
// the generator is the Activation event.
type Attachment struct {
	Key      components.CloneKey
	Collider collider.Collider
	Body     BodyParams
	Mode     Mode

	activated bool
	events    chan<- Activation
}

// NewAttachment creates an attachment reporting activations on events.
func NewAttachment(key components.CloneKey, col collider.Collider, body BodyParams, mode Mode, events chan<- Activation) *Attachment {
	return &Attachment{Key: key, Collider: col, Body: body, Mode: mode, events: events}
}

// Activate reports the body's first collision. Idempotent; repeated calls
// after the first are no-ops. The send never blocks: if the generator's
// queue is full the event is dropped and re-raised on the next contact.
func (a *Attachment) Activate() {
	if a.activated || !a.Mode.CollisionActivated() || a.events == nil {
		return
	}
	select {
	case a.events <- Activation{Key: a.Key}:
		a.activated = true
	default:
	}
}

// Activated reports whether the first collision already fired.
func (a *Attachment) Activated() bool {
	return a.activated
}

package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cloner/collider"
	"github.com/pthm-cable/cloner/components"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeNone, false},
		{"none", ModeNone, false},
		{"fixed", ModeFixed, false},
		{"dynamic", ModeDynamic, false},
		{"kinematicUntilTouch", ModeKinematicUntilTouch, false},
		{"sensorUntilTouch", ModeSensorUntilTouch, false},
		{"bouncy", ModeNone, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCollisionActivated(t *testing.T) {
	if ModeDynamic.CollisionActivated() || ModeFixed.CollisionActivated() || ModeNone.CollisionActivated() {
		t.Error("only the until-touch modes are collision activated")
	}
	if !ModeKinematicUntilTouch.CollisionActivated() || !ModeSensorUntilTouch.CollisionActivated() {
		t.Error("until-touch modes must be collision activated")
	}
}

func TestActivateIdempotent(t *testing.T) {
	events := make(chan Activation, 4)
	key := components.CloneKey{X: 1, Y: 2, Z: 3}
	a := NewAttachment(key, collider.Collider{}, BodyParams{}, ModeKinematicUntilTouch, events)

	a.Activate()
	a.Activate()
	a.Activate()

	if len(events) != 1 {
		t.Fatalf("expected exactly one activation event, got %d", len(events))
	}
	if ev := <-events; ev.Key != key {
		t.Errorf("event key = %+v, want %+v", ev.Key, key)
	}
	if !a.Activated() {
		t.Error("attachment should report activated")
	}
}

func TestActivateIgnoredForNonFreezingModes(t *testing.T) {
	events := make(chan Activation, 1)
	a := NewAttachment(components.CloneKey{}, collider.Collider{}, BodyParams{}, ModeDynamic, events)
	a.Activate()
	if len(events) != 0 || a.Activated() {
		t.Error("dynamic bodies must not emit activation events")
	}
}

func TestContactsGround(t *testing.T) {
	ball := collider.Collider{Shape: collider.Ball, Radius: 1}
	if ContactsGround(ball, rl.Vector3{Y: 2}) {
		t.Error("ball at y=2 with radius 1 is airborne")
	}
	if !ContactsGround(ball, rl.Vector3{Y: 0.5}) {
		t.Error("ball at y=0.5 with radius 1 touches the ground")
	}

	// Offsets shift the contact point.
	raised := collider.Collider{Shape: collider.Cuboid, HalfExtents: rl.Vector3{X: 1, Y: 1, Z: 1}, Offset: rl.Vector3{Y: 1}}
	if ContactsGround(raised, rl.Vector3{Y: 0.5}) {
		t.Error("raised collider at y=0.5 should clear the ground")
	}
}

func TestBodyComesToRest(t *testing.T) {
	b := &Body{Params: BodyParams{Friction: 0.5}}
	pos := rl.Vector3{Y: 3}
	for i := 0; i < 10000 && !b.Resting; i++ {
		b.Step(1.0/60, &pos, 0.5)
	}
	if !b.Resting {
		t.Fatal("body never came to rest")
	}
	if pos.Y != 0.5 {
		t.Errorf("resting height = %v, want 0.5", pos.Y)
	}
}

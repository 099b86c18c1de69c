package components

// Position represents an entity's world position.
type Position struct {
	X, Y, Z float32
}

// Rotation represents an entity's orientation as XYZ Euler angles in radians.
type Rotation struct {
	X, Y, Z float32
}

// Scale represents an entity's per-axis scale factors.
type Scale struct {
	X, Y, Z float32
}

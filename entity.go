package grove

// Physics holds the global integration constants applied to every entity
// during its update step.
type Physics struct {
	// Gravity is the vertical acceleration in pixels per second squared.
	// Positive values pull downward (Y increases downward).
	Gravity float64
	// Friction is the multiplicative damping applied to horizontal
	// velocity once per update step. 1 means no damping. Note the damping
	// is per step, not per second, so it varies with frame rate — a known
	// characteristic of the variable-timestep driver.
	Friction float64
}

// DefaultPhysics returns the physics constants used by NewWorld.
func DefaultPhysics() Physics {
	return Physics{Gravity: 980, Friction: 0.95}
}

// step integrates one physics step for an entity node:
// gravity, then friction, then position. Gravity is skipped while the
// entity stands on ground from the previous frame's collision resolution;
// the flag is then cleared so the upcoming sweep can re-establish it.
func (n *Node) step(dt float64, p Physics) {
	if !n.OnGround {
		n.VelY += p.Gravity * dt
	}
	n.VelX *= p.Friction
	n.X += n.VelX * dt
	n.Y += n.VelY * dt
	n.OnGround = false
}

package grove

import "math"

// Collider runs the per-frame broad phase: it flattens the scene tree into
// the current entity set and resolves every overlapping pair in place.
//
// The sweep is O(n²) in entity count by design — acceptable for small
// scenes. Scaling beyond that needs spatial partitioning, which grove does
// not provide.
type Collider struct {
	buf []*Node // reused flatten buffer
}

// CollectEntities returns every entity node in the tree rooted at root, in
// depth-first pre-order. Non-entity nodes are traversed but not collected.
// The returned slice is reused by the next call.
func (c *Collider) CollectEntities(root *Node) []*Node {
	c.buf = c.buf[:0]
	c.collect(root)
	return c.buf
}

func (c *Collider) collect(n *Node) {
	if n.HasBounds() {
		c.buf = append(c.buf, n)
	}
	for _, child := range n.children {
		c.collect(child)
	}
}

// Sweep collects the current entity set and tests all unordered pairs
// (i, j), i < j, once. Every overlapping pair is resolved immediately, so a
// later pair's resolution sees an earlier pair's position change within the
// same frame. Pair resolution is order-dependent; do not parallelize.
func (c *Collider) Sweep(root *Node) {
	entities := c.CollectEntities(root)
	for i := 0; i < len(entities); i++ {
		for j := i + 1; j < len(entities); j++ {
			if Overlaps(entities[i], entities[j]) {
				ResolvePair(entities[i], entities[j])
			}
		}
	}
}

// Overlaps reports whether the AABBs of a and b intersect with non-zero
// area. Touching edges do not count as colliding. Symmetric in a and b.
func Overlaps(a, b *Node) bool {
	return a.Bounds().Overlaps(b.Bounds())
}

// ResolvePair separates an overlapping pair along the axis of least
// overlap. A horizontal collision reflects a's horizontal velocity scaled
// by its bounce factor and pushes a out along x; a vertical collision
// zeroes a's vertical velocity, marks it on-ground, and pushes a out along
// y.
//
// Known limitation: resolution is asymmetric. Only a — the first of the
// ordered pair — is moved and adjusted; b is left unchanged. This models
// entity-versus-obstacle contact, not a physically symmetric impulse.
func ResolvePair(a, b *Node) {
	ox := (a.Width+b.Width)/2 - math.Abs(a.X-b.X)
	oy := (a.Height+b.Height)/2 - math.Abs(a.Y-b.Y)

	if ox < oy {
		a.VelX = -a.VelX * a.Bounce
		if a.X < b.X {
			a.X -= ox
		} else {
			a.X += ox
		}
		return
	}

	a.VelY = 0
	a.OnGround = true
	if a.Y < b.Y {
		a.Y -= oy
	} else {
		a.Y += oy
	}
}

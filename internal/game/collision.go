package game

import "github.com/go-gl/mathgl/mgl64"

// gravity is the downward acceleration applied to colliders that fall.
const gravity = 9.81

// AABB is an axis-aligned solid box.
type AABB struct {
	Min, Max mgl64.Vec3
}

// solidBox builds the box a model of the given scaled size occupies when
// placed at pos (centred in x/y, standing on pos in z).
func solidBox(pos, size mgl64.Vec3) AABB {
	half := mgl64.Vec3{size.X() / 2, size.Y() / 2, 0}
	return AABB{
		Min: pos.Sub(half),
		Max: pos.Add(half).Add(mgl64.Vec3{0, 0, size.Z()}),
	}
}

// Collider is an upright cylinder attached to a node. Footing is the height
// of the node above the collider's base (the eye height for the camera).
type Collider struct {
	Node    ModelHandle
	Radius  float64
	Height  float64
	Footing float64
	Gravity bool

	vz float64
}

// positioner is the part of the scene graph the traverser needs.
type positioner interface {
	Position(h ModelHandle) mgl64.Vec3
	SetPosition(h ModelHandle, pos mgl64.Vec3)
}

// CollisionWorld pushes colliders out of solids and keeps falling colliders
// on the floor. It does not simulate anything beyond that.
type CollisionWorld struct {
	solids    []AABB
	colliders []*Collider
	floor     float64
}

// NewCollisionWorld creates an empty collision world with the floor at z=0.
func NewCollisionWorld() *CollisionWorld {
	return &CollisionWorld{}
}

// AddSolid registers an immovable box.
func (cw *CollisionWorld) AddSolid(b AABB) {
	cw.solids = append(cw.solids, b)
}

// AddCollider registers a moving collider with the traverser.
func (cw *CollisionWorld) AddCollider(c *Collider) {
	cw.colliders = append(cw.colliders, c)
}

// Solids returns the registered solids.
func (cw *CollisionWorld) Solids() []AABB { return cw.solids }

// Colliders returns the registered colliders.
func (cw *CollisionWorld) Colliders() []*Collider { return cw.colliders }

// Clear drops all solids and colliders.
func (cw *CollisionWorld) Clear() {
	cw.solids = cw.solids[:0]
	cw.colliders = cw.colliders[:0]
}

// Traverse resolves every collider for one frame of dt seconds: floor and
// gravity first, then pushback out of any overlapping solid.
func (cw *CollisionWorld) Traverse(g positioner, dt float64) {
	for _, c := range cw.colliders {
		pos := g.Position(c.Node)
		pos = cw.applyFloor(c, pos, dt)
		for _, s := range cw.solids {
			pos = pushOut(c, pos, s)
		}
		g.SetPosition(c.Node, pos)
	}
}

func (cw *CollisionWorld) applyFloor(c *Collider, pos mgl64.Vec3, dt float64) mgl64.Vec3 {
	rest := cw.floor + c.Footing
	if c.Gravity {
		c.vz -= gravity * dt
		pos[2] += c.vz * dt
	}
	if pos.Z() < rest {
		pos[2] = rest
		c.vz = 0
	}
	return pos
}

// pushOut shoves the collider's footprint out of s along the axis of least
// penetration. Only solids overlapping the collider vertically count.
func pushOut(c *Collider, pos mgl64.Vec3, s AABB) mgl64.Vec3 {
	base := pos.Z() - c.Footing
	if base >= s.Max.Z() || base+c.Height <= s.Min.Z() {
		return pos
	}
	minX, maxX := pos.X()-c.Radius, pos.X()+c.Radius
	minY, maxY := pos.Y()-c.Radius, pos.Y()+c.Radius
	if maxX <= s.Min.X() || minX >= s.Max.X() || maxY <= s.Min.Y() || minY >= s.Max.Y() {
		return pos
	}

	left := maxX - s.Min.X()
	right := s.Max.X() - minX
	down := maxY - s.Min.Y()
	up := s.Max.Y() - minY

	switch minOf(left, right, down, up) {
	case left:
		pos[0] -= left
	case right:
		pos[0] += right
	case down:
		pos[1] -= down
	default:
		pos[1] += up
	}
	return pos
}

func minOf(v float64, rest ...float64) float64 {
	for _, r := range rest {
		if r < v {
			v = r
		}
	}
	return v
}

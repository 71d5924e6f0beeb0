package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is the player's eye. Heading/pitch/roll are in degrees; heading 0
// looks down +Y and positive heading turns toward -X.
type Camera struct {
	Pos mgl64.Vec3
	HPR mgl64.Vec3
}

// NewCamera returns a camera at pos looking along +Y.
func NewCamera(pos mgl64.Vec3) *Camera {
	return &Camera{Pos: pos}
}

// SetHPR sets heading, pitch and roll in degrees.
func (c *Camera) SetHPR(h, p, r float64) {
	c.HPR = mgl64.Vec3{h, p, r}
}

// Heading returns the heading in degrees.
func (c *Camera) Heading() float64 { return c.HPR.X() }

// Pitch returns the pitch in degrees.
func (c *Camera) Pitch() float64 { return c.HPR.Y() }

// SetPitch replaces only the pitch component.
func (c *Camera) SetPitch(p float64) {
	c.HPR[1] = p
}

// Forward returns the unit facing vector (row 1 of the camera transform).
// Roll does not change it.
func (c *Camera) Forward() mgl64.Vec3 {
	h := mgl64.DegToRad(c.HPR.X())
	p := mgl64.DegToRad(c.HPR.Y())
	return mgl64.Vec3{
		-math.Sin(h) * math.Cos(p),
		math.Cos(h) * math.Cos(p),
		math.Sin(p),
	}
}

// headingTo returns the heading in degrees that faces from -> to on the
// ground plane, using the same convention as Camera.Forward.
func headingTo(from, to mgl64.Vec3) float64 {
	d := to.Sub(from)
	return mgl64.RadToDeg(math.Atan2(-d.X(), d.Y()))
}

// pitchTo returns the pitch in degrees that faces from -> to.
func pitchTo(from, to mgl64.Vec3) float64 {
	d := to.Sub(from)
	flat := math.Hypot(d.X(), d.Y())
	return mgl64.RadToDeg(math.Atan2(d.Z(), flat))
}

// normalizeDegrees wraps an angle to [-180, 180].
func normalizeDegrees(a float64) float64 {
	for a > 180 {
		a -= 360
	}
	for a < -180 {
		a += 360
	}
	return a
}

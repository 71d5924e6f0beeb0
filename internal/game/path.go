package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Keyframe is one camera pose on a scripted path. HPR is in degrees.
type Keyframe struct {
	Pos mgl64.Vec3
	HPR mgl64.Vec3
}

// ScriptedPath is an ordered list of keyframes, each given PointDuration
// seconds of playback.
type ScriptedPath struct {
	Frames        []Keyframe
	PointDuration float64
}

// Duration returns the total playback time.
func (p ScriptedPath) Duration() float64 {
	return float64(len(p.Frames)) * p.PointDuration
}

// Sample returns the pose at fraction u in [0, 1] of the path. Position and
// orientation are both Catmull-Rom interpolated through the keyframes.
func (p ScriptedPath) Sample(u float64) Keyframe {
	n := len(p.Frames)
	switch {
	case n == 0:
		return Keyframe{}
	case n == 1 || u <= 0:
		return p.Frames[0]
	case u >= 1:
		return p.Frames[n-1]
	}

	t := u * float64(n-1)
	i := int(math.Floor(t))
	s := t - float64(i)
	at := func(k int) Keyframe {
		if k < 0 {
			k = 0
		}
		if k > n-1 {
			k = n - 1
		}
		return p.Frames[k]
	}
	k0, k1, k2, k3 := at(i-1), at(i), at(i+1), at(i+2)
	return Keyframe{
		Pos: catmullRom(k0.Pos, k1.Pos, k2.Pos, k3.Pos, s),
		HPR: catmullRom(k0.HPR, k1.HPR, k2.HPR, k3.HPR, s),
	}
}

func catmullRom(p0, p1, p2, p3 mgl64.Vec3, s float64) mgl64.Vec3 {
	s2 := s * s
	s3 := s2 * s
	a := p1.Mul(2)
	b := p2.Sub(p0).Mul(s)
	c := p0.Mul(2).Sub(p1.Mul(5)).Add(p2.Mul(4)).Sub(p3).Mul(s2)
	d := p1.Mul(3).Sub(p0).Sub(p2.Mul(3)).Add(p3).Mul(s3)
	return a.Add(b).Add(c).Add(d).Mul(0.5)
}

// PathPlayer drives the camera along a scripted path once.
type PathPlayer struct {
	path   ScriptedPath
	camera *Camera
	start  float64
	end    float64
	frames int
	done   bool
}

// NewPathPlayer prepares a player for path; nothing moves until Start.
func NewPathPlayer(path ScriptedPath, cam *Camera) *PathPlayer {
	return &PathPlayer{path: path, camera: cam}
}

// Start places the camera on the first keyframe and begins playback at now.
func (pp *PathPlayer) Start(now float64) {
	pp.start = now
	pp.end = now + pp.path.Duration()
	if len(pp.path.Frames) > 0 {
		first := pp.path.Frames[0]
		pp.camera.Pos = first.Pos
		pp.camera.HPR = first.HPR
	}
}

// Task is the per-frame camera writer. It is meant to be added to a TaskSet
// at the moment Start is called.
func (pp *PathPlayer) Task(elapsed float64) TaskStatus {
	if pp.done || pp.start+elapsed > pp.end {
		pp.done = true
		return TaskDone
	}
	k := pp.path.Sample(elapsed / (pp.end - pp.start))
	pp.camera.Pos = k.Pos
	pp.camera.HPR = k.HPR
	pp.frames++
	return TaskCont
}

// Elapsed returns the playback time at now.
func (pp *PathPlayer) Elapsed(now float64) float64 {
	return now - pp.start
}

// End returns the time playback finishes.
func (pp *PathPlayer) End() float64 { return pp.end }

// Finished reports whether now is past the end of the path.
func (pp *PathPlayer) Finished(now float64) bool {
	return now > pp.end
}

// Frames returns how many frames the player wrote to the camera.
func (pp *PathPlayer) Frames() int { return pp.frames }

package game

import "github.com/hajimehoshi/ebiten/v2"

// Key is a logical game action bound to a physical key.
type Key int

const (
	KeyForward Key = iota
	KeyBackward
	KeySwitch
	KeyReport
)

// Input is the polling surface the manager reads each tick.
type Input interface {
	IsKeyDown(k Key) bool
	// PointerDelta returns pointer movement since the previous call and
	// recentres the pointer.
	PointerDelta() (dx, dy float64)
}

// EbitenInput polls the keyboard and cursor through ebiten.
type EbitenInput struct {
	bindings map[Key][]ebiten.Key
	lastX    int
	lastY    int
	primed   bool
}

// NewEbitenInput binds W/S (or the arrow keys) to movement, P to the scene
// switch and L to the debug report.
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{
		bindings: map[Key][]ebiten.Key{
			KeyForward:  {ebiten.KeyW, ebiten.KeyArrowUp},
			KeyBackward: {ebiten.KeyS, ebiten.KeyArrowDown},
			KeySwitch:   {ebiten.KeyP},
			KeyReport:   {ebiten.KeyL},
		},
	}
}

func (in *EbitenInput) IsKeyDown(k Key) bool {
	for _, ek := range in.bindings[k] {
		if ebiten.IsKeyPressed(ek) {
			return true
		}
	}
	return false
}

// PointerDelta reports cursor movement since the last call. With the cursor
// captured ebiten keeps reporting unbounded positions, so the difference of
// successive samples is the raw delta. The first sample only primes the
// reference point.
func (in *EbitenInput) PointerDelta() (dx, dy float64) {
	x, y := ebiten.CursorPosition()
	if in.primed {
		dx, dy = float64(x-in.lastX), float64(y-in.lastY)
	}
	in.lastX, in.lastY = x, y
	in.primed = true
	return dx, dy
}

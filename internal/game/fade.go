package game

// fadeDuration is the length of a scene's fade-in, in seconds.
const fadeDuration = 4.0

// Fade is a full-screen black overlay that ramps from opaque to transparent
// after a scene is entered, then disposes itself. It runs once.
type Fade struct {
	duration float64
	alpha    float64
	disposed bool
}

// NewFade returns an opaque overlay.
func NewFade() *Fade {
	return &Fade{duration: fadeDuration, alpha: 1}
}

// Step sets the alpha for t seconds after scene entry. It is a TaskFunc.
func (f *Fade) Step(t float64) TaskStatus {
	if f.disposed {
		return TaskDone
	}
	if t > f.duration {
		f.alpha = 0
		f.disposed = true
		return TaskDone
	}
	f.alpha = 1 - t/f.duration
	return TaskCont
}

// Alpha returns the overlay opacity in [0, 1].
func (f *Fade) Alpha() float64 { return f.alpha }

// Disposed reports whether the overlay has been removed.
func (f *Fade) Disposed() bool { return f.disposed }

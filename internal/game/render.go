package game

import (
	"bytes"
	"fmt"
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	fovY      = 60.0 // vertical field of view, degrees
	nearPlane = 0.1
	farPlane  = 400.0
	fogFar    = 90.0 // distance at which fog hides everything
)

var (
	skyColor  = color.RGBA{R: 6, G: 8, B: 18, A: 255}
	fogColor  = color.RGBA{R: 30, G: 32, B: 38, A: 255}
	menuColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

// Renderer draws the scene graph as depth-sorted billboards over a horizon
// split, plus the fade overlay, the menu title and the HUD.
type Renderer struct {
	width, height int
	fog           bool
	titleFace     *text.GoTextFace
	hintFace      *text.GoTextFace
}

// NewRenderer prepares fonts for a screen of the settings' window size.
func NewRenderer(s Settings) (*Renderer, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load title font: %w", err)
	}
	w, h := s.WindowSize()
	return &Renderer{
		width:     w,
		height:    h,
		fog:       s.Fog(),
		titleFace: &text.GoTextFace{Source: src, Size: 72},
		hintFace:  &text.GoTextFace{Source: src, Size: 24},
	}, nil
}

// projected is a node mapped to screen space.
type projected struct {
	x, y  float64 // screen position of the node's base
	w, h  float64 // billboard size in pixels
	depth float64
	col   color.RGBA
}

// viewProjection returns the combined matrix for cam.
func (r *Renderer) viewProjection(cam *Camera) mgl64.Mat4 {
	proj := mgl64.Perspective(mgl64.DegToRad(fovY), float64(r.width)/float64(r.height), nearPlane, farPlane)
	view := mgl64.LookAtV(cam.Pos, cam.Pos.Add(cam.Forward()), mgl64.Vec3{0, 0, 1})
	return proj.Mul4(view)
}

// project maps a world point to screen pixels. ok is false behind the camera.
func (r *Renderer) project(vp mgl64.Mat4, p mgl64.Vec3) (x, y, w float64, ok bool) {
	clip := vp.Mul4x1(p.Vec4(1))
	if clip.W() <= nearPlane {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x = (ndc.X() + 1) / 2 * float64(r.width)
	y = (1 - ndc.Y()) / 2 * float64(r.height)
	return x, y, clip.W(), true
}

// Draw renders one frame.
func (r *Renderer) Draw(screen *ebiten.Image, m *SceneManager, w *World) {
	cam := w.Camera()
	vp := r.viewProjection(cam)

	if m.Kind() == SceneMenu {
		screen.Fill(menuColor)
		r.drawTitle(screen)
	} else {
		r.drawHorizon(screen, vp, cam, w)
		r.drawNodes(screen, vp, cam, w)
	}

	if fs, ok := m.Scene().(fader); ok && fs.Fade() != nil && !fs.Fade().Disposed() {
		a := uint8(fs.Fade().Alpha() * 255)
		vector.FillRect(screen, 0, 0, float32(r.width), float32(r.height), color.RGBA{A: a}, false)
	}
}

func (r *Renderer) drawHorizon(screen *ebiten.Image, vp mgl64.Mat4, cam *Camera, w *World) {
	screen.Fill(skyColor)
	hasGround := false
	var groundCol color.RGBA
	for _, n := range w.Nodes() {
		if n.Shape.Flat {
			hasGround = true
			groundCol = n.Shape.Color
			break
		}
	}
	if !hasGround {
		return
	}
	if r.fog {
		groundCol = blend(groundCol, fogColor, 0.6)
	}
	fwd := cam.Forward()
	flat := mgl64.Vec3{fwd.X(), fwd.Y(), 0}
	if flat.Len() < 1e-6 {
		flat = mgl64.Vec3{0, 1, 0}
	}
	far := cam.Pos.Add(flat.Normalize().Mul(farPlane * 0.9))
	far[2] = 0
	_, hy, _, ok := r.project(vp, far)
	if !ok {
		hy = 0
	}
	hy = mgl64.Clamp(hy, 0, float64(r.height))
	vector.FillRect(screen, 0, float32(hy), float32(r.width), float32(float64(r.height)-hy), groundCol, false)
}

func (r *Renderer) drawNodes(screen *ebiten.Image, vp mgl64.Mat4, cam *Camera, w *World) {
	var items []projected
	for _, n := range w.Nodes() {
		if n.Shape.Flat {
			continue
		}
		size := mulElem(n.Shape.Size, n.Scale)
		bx, by, depth, ok := r.project(vp, n.Pos)
		if !ok || depth > farPlane {
			continue
		}
		_, ty, _, ok := r.project(vp, n.Pos.Add(mgl64.Vec3{0, 0, size.Z()}))
		if !ok {
			continue
		}
		h := by - ty
		if h <= 0 {
			h = 1
		}
		width := h * size.X() / maxFloat(size.Z(), 0.01)
		col := n.Shape.Color
		if r.fog {
			col = blend(col, fogColor, mgl64.Clamp(depth/fogFar, 0, 1))
		}
		items = append(items, projected{x: bx, y: by, w: width, h: h, depth: depth, col: col})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].depth > items[j].depth })
	for _, it := range items {
		x := float32(it.x - it.w/2)
		y := float32(it.y - it.h)
		vector.FillRect(screen, x, y, float32(it.w), float32(it.h), it.col, false)
		vector.StrokeRect(screen, x, y, float32(it.w), float32(it.h), 1, blend(it.col, skyColor, 0.5), false)
	}
}

func (r *Renderer) drawTitle(screen *ebiten.Image) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(r.width)/2, float64(r.height)/3)
	op.PrimaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(color.RGBA{R: 200, G: 30, B: 30, A: 255})
	text.Draw(screen, "PoultryGeist", r.titleFace, op)

	hint := &text.DrawOptions{}
	hint.GeoM.Translate(float64(r.width)/2, float64(r.height)/3+110)
	hint.PrimaryAlign = text.AlignCenter
	hint.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, "press P to begin", r.hintFace, hint)
}

// DrawHUD prints the frame counters and camera pose in the top-left corner.
func (r *Renderer) DrawHUD(screen *ebiten.Image, m *SceneManager) {
	cam := m.Context().Camera
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  frame %d  %.0f fps", m.Kind(), m.SceneFrame(), ebiten.ActualFPS()), 8, 4)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("pos %.1f %.1f %.1f  hpr %.0f %.0f", cam.Pos.X(), cam.Pos.Y(), cam.Pos.Z(), cam.Heading(), cam.Pitch()), 8, 20)
}

// Size returns the logical screen size.
func (r *Renderer) Size() (int, int) { return r.width, r.height }

func blend(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 { return uint8(float64(x)*(1-t) + float64(y)*t) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: a.A}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

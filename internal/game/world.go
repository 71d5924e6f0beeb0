package game

import (
	"errors"
	"fmt"
	"image/color"
	"path"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// ErrAssetNotFound is returned when a scene asks for a model or sound the
// runtime does not ship. Scene construction treats it as fatal.
var ErrAssetNotFound = errors.New("asset not found")

// ModelHandle identifies a node attached to the scene graph.
type ModelHandle uuid.UUID

// CameraNode is the handle of the camera node. It survives DetachAll.
var CameraNode = ModelHandle(uuid.Nil)

func (h ModelHandle) String() string {
	return uuid.UUID(h).String()[:8]
}

// ModelShape is how the runtime knows a model: its unscaled extents, its draw
// colour and whether it blocks movement.
type ModelShape struct {
	Size  mgl64.Vec3 // x/y centred on the node, z from the node upwards
	Color color.RGBA
	Solid bool
	Flat  bool // drawn as the ground plane, not as a billboard
}

// builtinModels is the catalogue of model identifiers the renderer can draw.
var builtinModels = map[string]ModelShape{
	"ground.bam":  {Size: mgl64.Vec3{100, 100, 0}, Color: color.RGBA{R: 58, G: 74, B: 40, A: 255}, Flat: true},
	"barn.bam":    {Size: mgl64.Vec3{8, 6, 7}, Color: color.RGBA{R: 122, G: 32, B: 28, A: 255}, Solid: true},
	"corn.egg":    {Size: mgl64.Vec3{1.2, 1.2, 2.5}, Color: color.RGBA{R: 172, G: 160, B: 72, A: 255}, Solid: true},
	"chicken.bam": {Size: mgl64.Vec3{3, 3, 3}, Color: color.RGBA{R: 236, G: 230, B: 220, A: 255}},
}

// Node is one model in the scene graph.
type Node struct {
	ID         ModelHandle
	Model      string // catalogue identifier, e.g. "barn.bam"
	AssetPath  string // quality-specific resource path
	Pos        mgl64.Vec3
	Scale      mgl64.Vec3
	Heading    float64 // degrees
	Actor      bool
	Anims      map[string]string
	InstanceOf ModelHandle
	Shape      ModelShape
}

// SceneGraph is the slice of the render tree the game core talks to.
type SceneGraph interface {
	SpawnModel(name string, pos, scale mgl64.Vec3, anims map[string]string) (ModelHandle, error)
	Instance(of ModelHandle, pos, scale mgl64.Vec3) (ModelHandle, error)
	Position(h ModelHandle) mgl64.Vec3
	SetPosition(h ModelHandle, pos mgl64.Vec3)
	Distance(a, b ModelHandle) float64
	LookAt(h, target ModelHandle)
	SetHeading(h ModelHandle, deg float64)
	DetachAll()
}

// World is the in-memory render tree. The camera is a permanent node; every
// other node is attached by a scene and detached on scene swap.
type World struct {
	quality    Quality
	catalog    map[string]ModelShape
	nodes      map[ModelHandle]*Node
	order      []ModelHandle
	camera     *Camera
	collisions *CollisionWorld
}

// NewWorld creates an empty graph holding only the camera. Solid models are
// registered with cw as they are spawned; cw may be nil.
func NewWorld(quality Quality, cam *Camera, cw *CollisionWorld) *World {
	catalog := make(map[string]ModelShape, len(builtinModels))
	for k, v := range builtinModels {
		catalog[k] = v
	}
	return &World{
		quality:    quality,
		catalog:    catalog,
		nodes:      make(map[ModelHandle]*Node),
		camera:     cam,
		collisions: cw,
	}
}

// Camera returns the camera node's transform.
func (w *World) Camera() *Camera { return w.camera }

// SpawnModel loads a model from the catalogue and attaches it at pos.
// Actors are models that carry an animation set.
func (w *World) SpawnModel(name string, pos, scale mgl64.Vec3, anims map[string]string) (ModelHandle, error) {
	shape, ok := w.catalog[name]
	if !ok {
		return ModelHandle{}, fmt.Errorf("load model %s: %w", w.assetPath(name), ErrAssetNotFound)
	}
	n := &Node{
		ID:        ModelHandle(uuid.New()),
		Model:     name,
		AssetPath: w.assetPath(name),
		Pos:       pos,
		Scale:     scale,
		Actor:     anims != nil,
		Anims:     anims,
		Shape:     shape,
	}
	w.attach(n)
	return n.ID, nil
}

// Instance attaches a placeholder at pos that shares the model of an
// existing node. The placeholder's transform composes with the source node's.
func (w *World) Instance(of ModelHandle, pos, scale mgl64.Vec3) (ModelHandle, error) {
	src, ok := w.nodes[of]
	if !ok {
		return ModelHandle{}, fmt.Errorf("instance of %s: %w", of, ErrAssetNotFound)
	}
	n := &Node{
		ID:         ModelHandle(uuid.New()),
		Model:      src.Model,
		AssetPath:  src.AssetPath,
		Pos:        src.Pos.Add(pos),
		Scale:      mulElem(src.Scale, scale),
		InstanceOf: of,
		Shape:      src.Shape,
	}
	w.attach(n)
	return n.ID, nil
}

func (w *World) attach(n *Node) {
	w.nodes[n.ID] = n
	w.order = append(w.order, n.ID)
	if n.Shape.Solid && w.collisions != nil {
		w.collisions.AddSolid(solidBox(n.Pos, mulElem(n.Shape.Size, n.Scale)))
	}
}

// Node returns the node for h, or nil if it is not attached.
func (w *World) Node(h ModelHandle) *Node {
	return w.nodes[h]
}

// Nodes returns attached nodes in attach order.
func (w *World) Nodes() []*Node {
	out := make([]*Node, 0, len(w.order))
	for _, h := range w.order {
		out = append(out, w.nodes[h])
	}
	return out
}

// Len returns the number of attached nodes, excluding the camera.
func (w *World) Len() int { return len(w.nodes) }

// Position returns a node's world position. Unknown handles report the origin.
func (w *World) Position(h ModelHandle) mgl64.Vec3 {
	if h == CameraNode {
		return w.camera.Pos
	}
	if n, ok := w.nodes[h]; ok {
		return n.Pos
	}
	return mgl64.Vec3{}
}

// SetPosition moves a node.
func (w *World) SetPosition(h ModelHandle, pos mgl64.Vec3) {
	if h == CameraNode {
		w.camera.Pos = pos
		return
	}
	if n, ok := w.nodes[h]; ok {
		n.Pos = pos
	}
}

// Distance returns the straight-line distance between two nodes.
func (w *World) Distance(a, b ModelHandle) float64 {
	return w.Position(a).Sub(w.Position(b)).Len()
}

// LookAt turns h on the ground plane to face target.
func (w *World) LookAt(h, target ModelHandle) {
	n, ok := w.nodes[h]
	if !ok {
		return
	}
	n.Heading = headingTo(n.Pos, w.Position(target))
}

// SetHeading turns h to an absolute heading in degrees.
func (w *World) SetHeading(h ModelHandle, deg float64) {
	if n, ok := w.nodes[h]; ok {
		n.Heading = deg
	}
}

// DetachAll removes every node except the camera, along with the collision
// solids and colliders they registered.
func (w *World) DetachAll() {
	w.nodes = make(map[ModelHandle]*Node)
	w.order = w.order[:0]
	if w.collisions != nil {
		w.collisions.Clear()
	}
}

func (w *World) assetPath(name string) string {
	return path.Join("resources", string(w.quality), name)
}

func mulElem(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}

package game

// MenuScene is the title screen. It has no models; the renderer draws the
// title over an empty world and the camera idles with a slow bob.
type MenuScene struct {
	baseScene
}

// NewMenuScene constructs the menu.
func NewMenuScene(ctx *Context) (Scene, error) {
	return &MenuScene{baseScene: newBaseScene(ctx, false)}, nil
}

func (s *MenuScene) Init() error {
	s.ctx.logEvent("--", "scene", "init", SceneMenu.String(), 0)
	return nil
}

func (s *MenuScene) Update(_, _ float64) SceneKind { return SceneNone }

func (s *MenuScene) Exit() {}

// Bob slows the idle sway on the title screen.
func (s *MenuScene) Bob() (magnitude, speed float64) { return 0.3, 1 }

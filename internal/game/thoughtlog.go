package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	logPanelWidth = 300
	logMaxEntries = 40
	logLineHeight = 14
)

// ThoughtEntry is a single line in the thought log.
type ThoughtEntry struct {
	Tick    int
	Label   string // "C1", "camera", "--"
	Kind    string // SimLog category
	Message string
}

// ThoughtLog is a ring buffer of recent game events rendered on-screen. It
// mirrors the non-verbose tail of the SimLog.
type ThoughtLog struct {
	entries []ThoughtEntry
	head    int
	count   int
	read    int // SimLog entries already consumed
}

// NewThoughtLog creates a thought log with a fixed capacity.
func NewThoughtLog() *ThoughtLog {
	return &ThoughtLog{
		entries: make([]ThoughtEntry, logMaxEntries),
	}
}

// Add appends an entry to the log.
func (tl *ThoughtLog) Add(tick int, label, kind, msg string) {
	tl.entries[tl.head] = ThoughtEntry{
		Tick:    tick,
		Label:   label,
		Kind:    kind,
		Message: msg,
	}
	tl.head = (tl.head + 1) % logMaxEntries
	if tl.count < logMaxEntries {
		tl.count++
	}
}

// Sync copies SimLog entries recorded since the last call. Per-frame
// distance samples are skipped.
func (tl *ThoughtLog) Sync(sl *SimLog) {
	if sl == nil {
		return
	}
	for _, e := range sl.Since(tl.read) {
		if e.Key == "distance" {
			continue
		}
		tl.Add(e.Tick, e.Actor, e.Category, e.Key+" "+e.Value)
	}
	tl.read = sl.Len()
}

// Recent returns entries in chronological order (oldest first).
func (tl *ThoughtLog) Recent() []ThoughtEntry {
	result := make([]ThoughtEntry, tl.count)
	for i := 0; i < tl.count; i++ {
		idx := (tl.head - tl.count + i + logMaxEntries) % logMaxEntries
		result[i] = tl.entries[idx]
	}
	return result
}

func kindColor(kind string) color.RGBA {
	switch kind {
	case "chicken":
		return color.RGBA{R: 210, G: 70, B: 70, A: 255}
	case "scene":
		return color.RGBA{R: 70, G: 110, B: 210, A: 255}
	case "path":
		return color.RGBA{R: 200, G: 180, B: 60, A: 255}
	default:
		return color.RGBA{R: 120, G: 120, B: 120, A: 255}
	}
}

// Draw renders the log panel on the right side of the screen.
func (tl *ThoughtLog) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 8, G: 8, B: 10, A: 200}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 60, G: 40, B: 40, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", panelX+8, 2)
	vector.StrokeLine(screen, float32(panelX), 18, float32(panelX+logPanelWidth), 18, 1.0, color.RGBA{R: 80, G: 50, B: 50, A: 200}, false)

	entries := tl.Recent()
	maxVisible := (panelH - 24) / logLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 22
	for i, e := range entries {
		if i >= len(entries)-3 {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 40, G: 24, B: 24, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 5, kindColor(e.Kind), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%4d [%s] %s", e.Tick, e.Label, e.Message), panelX+12, y)
		y += logLineHeight
	}
}

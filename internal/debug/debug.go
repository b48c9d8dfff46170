package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug draws runtime overlays (FPS, heap allocation) in the top-right corner.
// All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool

	frameCount  uint32
	lastFpsText string
	lastMemText string
	memStats    runtime.MemStats
}

// New returns a Debug overlay with everything hidden.
func New() *Debug {
	return &Debug{}
}

// Draw renders the enabled overlays. Call after the 3D scene, inside the frame.
// Text is recomputed every updateInterval frames only.
func (d *Debug) Draw() {
	d.frameCount++
	update := d.frameCount%updateInterval == 0 || d.frameCount == 1

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)

	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		w := rl.MeasureText(d.lastFpsText, fontSize)
		rl.DrawText(d.lastFpsText, screenW-w-padding, y, fontSize, rl.Green)
		y += lineHeight
	}

	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.memStats)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(d.memStats.Alloc)/(1024*1024))
		}
		w := rl.MeasureText(d.lastMemText, fontSize)
		rl.DrawText(d.lastMemText, screenW-w-padding, y, fontSize, rl.Green)
	}
}

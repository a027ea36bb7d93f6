package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"netfield/loop"
	"netfield/perf"
)

// DebugState holds the overlay flags
type DebugState struct {
	ShowStats bool // particle, link and frame timing overlay
}

// drawDebug prints the stats overlay in the top left corner
func drawDebug(screen *ebiten.Image, st loop.Stats, ps perf.Snapshot) {
	msg := fmt.Sprintf(
		"FPS: %0.1f  TPS: %0.1f\n"+
			"theme: %s  state: %s\n"+
			"surface: %dx%d  inits: %d\n"+
			"particles: %d  links: %d\n"+
			"frame: %v avg %v worst %v  slow: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		st.Theme, st.State,
		st.Width, st.Height, st.Inits,
		st.Particles, st.Links,
		ps.Last, ps.Average, ps.Worst, ps.SlowFrames,
	)
	ebitenutil.DebugPrint(screen, msg)
}

// Package game hosts the network background in a desktop window. ebiten's
// vsync'd Draw callback drives the frame scheduler, Layout reports viewport
// changes, and the keyboard toggles the theme and the stats overlay.
package game

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"netfield/field"
	"netfield/loop"
	"netfield/perf"
	"netfield/theme"
)

// Game is the window host and the ebiten.Game implementation
type Game struct {
	config Config
	logger *log.Logger
	signal *theme.Signal

	controller *loop.Controller
	scheduler  *loop.Scheduler
	listeners  loop.Listeners
	renderer   *Renderer

	input    InputProvider
	cursor   *Cursor
	debug    DebugState
	profiler *perf.Profiler

	width   int
	height  int
	mounted bool
}

// NewGame creates the window host. The theme signal is owned by the caller.
func NewGame(config Config, sig *theme.Signal, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default()
	}

	pcfg := perf.DefaultConfig()
	pcfg.Budget = config.FrameBudget
	pcfg.ProfilesDir = config.ProfilesDir

	g := &Game{
		config:    config,
		logger:    logger,
		signal:    sig,
		scheduler: loop.NewScheduler(),
		input:     NewKeyboardInput(),
		cursor:    NewCursor(config.Cursor),
		debug:     DebugState{ShowStats: config.ShowDebug},
		profiler:  perf.NewProfiler(pcfg, logger),
		width:     config.ScreenWidth,
		height:    config.ScreenHeight,
	}

	lcfg := loop.DefaultConfig()
	lcfg.Seed = config.Seed
	g.controller = loop.New(g, sig, lcfg, logger)
	return g
}

// Controller returns the background controller
func (g *Game) Controller() *loop.Controller {
	return g.controller
}

// Viewport returns the current window size
func (g *Game) Viewport() (int, int) {
	return g.width, g.height
}

// AcquireSurface replaces the offscreen image with one of the given size
func (g *Game) AcquireSurface(width, height int) (field.Surface, error) {
	if g.renderer != nil {
		g.renderer.Dispose()
		g.renderer = nil
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", loop.ErrNoSurface, width, height)
	}
	g.renderer = NewRenderer(width, height)
	return g.renderer, nil
}

// Scheduler returns the frame queue drained by Draw
func (g *Game) Scheduler() *loop.Scheduler {
	return g.scheduler
}

// AddResizeListener registers a window size listener
func (g *Game) AddResizeListener(fn func(width, height int)) func() {
	return g.listeners.Add(fn)
}

// Update handles input
func (g *Game) Update() error {
	if !g.mounted {
		g.mounted = true
		if !g.controller.Mount() {
			g.logger.Warn("background unavailable, drawing plain backdrop")
		}
	}

	g.input.Update()
	for _, action := range g.input.Actions() {
		switch action {
		case ActionToggleTheme:
			t := g.signal.Toggle()
			g.logger.Info("theme toggled", "theme", t)
		case ActionToggleDebug:
			g.debug.ShowStats = !g.debug.ShowStats
		case ActionToggleFullscreen:
			ebiten.SetFullscreen(!ebiten.IsFullscreen())
		case ActionQuit:
			return ebiten.Termination
		}
	}

	g.cursor.Update()
	return nil
}

// Draw runs the queued frame callbacks and composites the result
func (g *Game) Draw(screen *ebiten.Image) {
	g.profiler.BeginFrame()
	g.scheduler.Run()

	if g.renderer != nil && g.controller.State() == loop.Running {
		screen.DrawImage(g.renderer.Image(), nil)
	} else {
		screen.Fill(theme.PaletteFor(g.signal.Get()).Background)
	}

	g.cursor.Draw(screen)
	if g.debug.ShowStats {
		drawDebug(screen, g.controller.Stats(), g.profiler.Snapshot())
	}
	g.profiler.EndFrame()
}

// Layout tracks the window size and reports changes to resize listeners
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		if g.mounted {
			g.listeners.Notify(outsideWidth, outsideHeight)
		}
	}
	return outsideWidth, outsideHeight
}

// Close unmounts the background and frees the offscreen image
func (g *Game) Close() {
	g.controller.Unmount()
	if g.renderer != nil {
		g.renderer.Dispose()
		g.renderer = nil
	}
}

// Run opens the window and blocks until it is closed
func Run(config Config, sig *theme.Signal, logger *log.Logger) error {
	g := NewGame(config, sig, logger)
	defer g.Close()

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle(config.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(config.Fullscreen)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window host: %w", err)
	}
	return nil
}

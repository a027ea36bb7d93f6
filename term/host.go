// Package term hosts the network background in a terminal. A ticker stands
// in for the display refresh and tcell resize events feed the resize path.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"netfield/field"
	"netfield/loop"
	"netfield/perf"
	"netfield/theme"
)

// DefaultFrameInterval is the refresh period of the terminal host
const DefaultFrameInterval = time.Second / 60

// Host is the terminal loop.Host
type Host struct {
	screen    tcell.Screen
	signal    *theme.Signal
	logger    *log.Logger
	sched     *loop.Scheduler
	listeners loop.Listeners
	surface   *CellSurface
	profiler  *perf.Profiler

	cols, rows int
	interval   time.Duration
	showDebug  bool
}

// NewHost wraps an uninitialised tcell screen
func NewHost(screen tcell.Screen, sig *theme.Signal, logger *log.Logger) *Host {
	if logger == nil {
		logger = log.Default()
	}
	pcfg := perf.DefaultConfig()
	pcfg.Budget = DefaultFrameInterval
	return &Host{
		screen:   screen,
		signal:   sig,
		logger:   logger,
		sched:    loop.NewScheduler(),
		profiler: perf.NewProfiler(pcfg, logger),
		interval: DefaultFrameInterval,
	}
}

// Viewport returns the terminal size in virtual pixels
func (h *Host) Viewport() (int, int) {
	return h.cols * CellWidth, h.rows * CellHeight
}

// AcquireSurface sizes the cell grid for a viewport in virtual pixels
func (h *Host) AcquireSurface(width, height int) (field.Surface, error) {
	cols, rows := width/CellWidth, height/CellHeight
	if cols <= 0 || rows <= 0 {
		h.surface = nil
		return nil, fmt.Errorf("%w: %dx%d cells", loop.ErrNoSurface, cols, rows)
	}
	h.surface = NewCellSurface(cols, rows)
	return h.surface, nil
}

// Scheduler returns the frame queue
func (h *Host) Scheduler() *loop.Scheduler {
	return h.sched
}

// AddResizeListener registers a terminal size listener
func (h *Host) AddResizeListener(fn func(width, height int)) func() {
	return h.listeners.Add(fn)
}

// Run takes over the terminal until ctx is done or the user quits
func (h *Host) Run(ctx context.Context, cfg loop.Config) error {
	if err := h.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialise terminal: %w", err)
	}
	defer h.screen.Fini()
	h.screen.HideCursor()
	h.cols, h.rows = h.screen.Size()

	ctrl := loop.New(h, h.signal, cfg, h.logger)
	if !ctrl.Mount() {
		h.logger.Warn("background unavailable in this terminal")
	}
	defer ctrl.Unmount()

	quit := make(chan struct{})
	defer close(quit)
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if done := h.handleEvent(ev); done {
				return nil
			}
		case <-ticker.C:
			h.profiler.BeginFrame()
			h.sched.Run()
			h.draw(ctrl)
			h.profiler.EndFrame()
		}
	}
}

// handleEvent reacts to keys and resizes; it returns true on quit
func (h *Host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.cols, h.rows = ev.Size()
		h.screen.Sync()
		h.listeners.Notify(h.cols*CellWidth, h.rows*CellHeight)
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true
			case 't':
				t := h.signal.Toggle()
				h.logger.Debug("theme toggled", "theme", t)
			case 'd':
				h.showDebug = !h.showDebug
			}
		}
	}
	return false
}

// draw flushes the cell grid, or a plain backdrop when there is none
func (h *Host) draw(ctrl *loop.Controller) {
	if h.surface != nil && ctrl.State() == loop.Running {
		h.surface.Flush(h.screen)
	} else {
		bg := tcellColor(theme.PaletteFor(h.signal.Get()).Background)
		h.screen.Fill(' ', tcell.StyleDefault.Background(bg))
	}
	if h.showDebug {
		st := ctrl.Stats()
		ps := h.profiler.Snapshot()
		line := fmt.Sprintf(" %s  %dx%d  particles %d  links %d  frame %v ",
			st.Theme, h.cols, h.rows, st.Particles, st.Links, ps.Average.Round(time.Microsecond))
		for i, r := range line {
			h.screen.SetContent(i, 0, r, nil, tcell.StyleDefault.Reverse(true))
		}
	}
	h.screen.Show()
}

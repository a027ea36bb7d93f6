// Package loop drives the background: it owns the drawing surface, repaints
// the particle field once per display refresh, reinitialises it after the
// viewport settles on a new size and recolours it when the theme changes.
package loop

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"netfield/debounce"
	"netfield/field"
	"netfield/theme"
)

// DefaultResizeDelay is how long the viewport must stay unchanged before the
// field is rebuilt
const DefaultResizeDelay = 250 * time.Millisecond

// State is the controller lifecycle state
type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Config holds controller settings
type Config struct {
	Field field.Config

	// ResizeDelay is the resize debounce interval
	ResizeDelay time.Duration

	// Seed makes particle placement reproducible; zero seeds from the clock
	Seed int64

	// Clock drives the resize debounce; nil uses the wall clock
	Clock debounce.Clock
}

// DefaultConfig returns the settings used by the site background
func DefaultConfig() Config {
	return Config{
		Field:       field.DefaultConfig(),
		ResizeDelay: DefaultResizeDelay,
	}
}

// Stats describes the controller after its most recent frame
type Stats struct {
	State     State
	Frames    uint64
	Inits     uint64
	Particles int
	Links     int
	Width     int
	Height    int
	Theme     theme.Theme
}

type size struct {
	width, height int
}

// Controller is the render loop of one mounted background
type Controller struct {
	host   Host
	signal *theme.Signal
	cfg    Config
	logger *log.Logger
	rng    *rand.Rand

	// owned by the frame goroutine
	field   *field.Field
	surface field.Surface

	palette atomic.Pointer[theme.Palette]

	mu           sync.Mutex
	state        State
	unmounted    bool
	frameID      FrameID
	lastResize   size
	pending      *size
	resize       *debounce.Debouncer
	removeResize func()
	unsubscribe  func()
	stats        Stats
}

// New creates a stopped controller. sig may be nil, in which case the dark
// palette is used.
func New(host Host, sig *theme.Signal, cfg Config, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if cfg.ResizeDelay <= 0 {
		cfg.ResizeDelay = DefaultResizeDelay
	}

	c := &Controller{
		host:   host,
		signal: sig,
		cfg:    cfg,
		logger: logger.With("component", "background"),
		rng:    rand.New(rand.NewSource(seed)),
		field:  field.New(cfg.Field),
	}
	c.palette.Store(theme.PaletteFor(theme.Dark))
	return c
}

// State returns the lifecycle state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Field returns the particle field. Only safe to inspect between frames.
func (c *Controller) Field() *field.Field {
	return c.field
}

// Palette returns the palette the next frame will use
func (c *Controller) Palette() *theme.Palette {
	return c.palette.Load()
}

// Stats returns a snapshot of the controller counters
func (c *Controller) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.State = c.state
	s.Theme = c.palette.Load().Theme
	return s
}

// Mount starts the loop: it sizes the surface to the viewport, populates the
// field and schedules the first frame. When no surface can be acquired the
// controller stays stopped, schedules nothing and returns false. A controller
// cannot be mounted again after Unmount.
func (c *Controller) Mount() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Running {
		return true
	}
	if c.unmounted {
		return false
	}

	w, h := c.host.Viewport()
	if w > 0 && h > 0 {
		s, err := c.host.AcquireSurface(w, h)
		if err != nil {
			c.logger.Debug("background disabled", "err", err)
			return false
		}
		c.surface = s
	}
	c.initialize(w, h)

	if c.signal != nil {
		c.palette.Store(theme.PaletteFor(c.signal.Get()))
		c.unsubscribe = c.signal.Subscribe(c.setTheme)
	}

	c.resize = debounce.New(c.cfg.ResizeDelay, c.cfg.Clock, c.resizeSettled)
	c.removeResize = c.host.AddResizeListener(c.onResize)

	c.state = Running
	c.frameID = c.host.Scheduler().RequestFrame(c.frame)
	c.logger.Debug("background mounted", "width", w, "height", h, "particles", c.field.Len())
	return true
}

// Unmount cancels the pending frame and releases the listeners. No frame
// runs after Unmount returns.
func (c *Controller) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Running {
		return
	}
	c.state = Stopped
	c.unmounted = true

	c.host.Scheduler().CancelFrame(c.frameID)
	c.frameID = 0

	c.resize.Stop()
	c.pending = nil
	if c.removeResize != nil {
		c.removeResize()
		c.removeResize = nil
	}
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.logger.Debug("background unmounted", "frames", c.stats.Frames)
}

// frame is the per-refresh callback
func (c *Controller) frame() {
	c.mu.Lock()
	if c.state != Running {
		c.mu.Unlock()
		return
	}
	c.frameID = 0
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()

	if pending != nil {
		c.applyResize(pending.width, pending.height)
	}

	links := 0
	if c.surface != nil {
		pal := c.palette.Load()
		c.surface.Clear(pal.Background)
		c.field.Tick(c.surface, pal)
		links = c.field.LinkNeighbors(c.surface, pal)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.Frames++
	c.stats.Links = links
	c.stats.Particles = c.field.Len()
	if c.state == Running {
		c.frameID = c.host.Scheduler().RequestFrame(c.frame)
	}
}

// onResize is the host resize listener
func (c *Controller) onResize(width, height int) {
	c.mu.Lock()
	if c.state != Running {
		c.mu.Unlock()
		return
	}
	c.lastResize = size{width, height}
	d := c.resize
	c.mu.Unlock()

	d.Trigger()
}

// resizeSettled runs when the debounce expires; the next frame picks it up
func (c *Controller) resizeSettled() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Running {
		return
	}
	s := c.lastResize
	c.pending = &s
}

// applyResize resizes the surface and rebuilds the field. Runs on the frame
// goroutine.
func (c *Controller) applyResize(width, height int) {
	c.surface = nil
	if width > 0 && height > 0 {
		s, err := c.host.AcquireSurface(width, height)
		if err != nil {
			c.logger.Debug("surface resize failed", "width", width, "height", height, "err", err)
		} else {
			c.surface = s
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface == nil {
		// nothing to draw on, keep the field empty
		width, height = 0, 0
	}
	c.initialize(width, height)
	c.logger.Debug("background resized", "width", width, "height", height, "particles", c.field.Len())
}

// initialize rebuilds the field; caller holds mu
func (c *Controller) initialize(width, height int) {
	c.stats.Width, c.stats.Height = width, height
	if !c.field.Initialize(width, height, c.rng) {
		c.logger.Debug("degenerate viewport, field left empty", "width", width, "height", height)
	}
	c.stats.Inits++
	c.stats.Particles = c.field.Len()
}

// setTheme swaps the palette; particle state is untouched
func (c *Controller) setTheme(t theme.Theme) {
	if c.palette.Load().Theme == t {
		return
	}
	c.palette.Store(theme.PaletteFor(t))
	c.logger.Debug("palette swapped", "theme", t)
}

package raster

import (
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/log"

	"netfield/debounce"
	"netfield/field"
	"netfield/loop"
	"netfield/theme"
)

// MaxDimension bounds headless surfaces on either axis
const MaxDimension = 8192

// Host is a headless loop.Host. Frames advance only when Step is called.
type Host struct {
	width, height int
	canvas        *Canvas
	sched         *loop.Scheduler
	listeners     loop.Listeners
}

// NewHost creates a host with a fixed viewport
func NewHost(width, height int) *Host {
	return &Host{
		width:  width,
		height: height,
		sched:  loop.NewScheduler(),
	}
}

// Viewport returns the current viewport size
func (h *Host) Viewport() (int, int) {
	return h.width, h.height
}

// AcquireSurface allocates a canvas of the given size
func (h *Host) AcquireSurface(width, height int) (field.Surface, error) {
	if width > MaxDimension || height > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d", loop.ErrNoSurface, width, height, MaxDimension)
	}
	h.canvas = NewCanvas(width, height)
	return h.canvas, nil
}

// Scheduler returns the frame queue
func (h *Host) Scheduler() *loop.Scheduler {
	return h.sched
}

// AddResizeListener registers a viewport listener
func (h *Host) AddResizeListener(fn func(width, height int)) func() {
	return h.listeners.Add(fn)
}

// Resize changes the viewport and notifies listeners
func (h *Host) Resize(width, height int) {
	h.width, h.height = width, height
	h.listeners.Notify(width, height)
}

// Step runs one display refresh and returns the number of callbacks run
func (h *Host) Step() int {
	return h.sched.Run()
}

// Frame returns the current canvas image, or nil before a surface exists
func (h *Host) Frame() *image.RGBA {
	if h.canvas == nil {
		return nil
	}
	return h.canvas.Image()
}

// Options describes a headless render
type Options struct {
	Width  int
	Height int

	// Frames is the number of frames simulated before the last capture
	Frames int

	// Every captures a copy of the canvas every N frames; zero keeps only the
	// final frame
	Every int

	Theme theme.Theme
	Seed  int64
}

// Render simulates opts.Frames frames and returns the captured images
func Render(opts Options, logger *log.Logger) ([]*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", opts.Width, opts.Height)
	}
	if logger == nil {
		logger = log.Default()
	}
	frames := max(opts.Frames, 1)

	host := NewHost(opts.Width, opts.Height)
	cfg := loop.DefaultConfig()
	cfg.Seed = opts.Seed
	cfg.Clock = debounce.NewManualClock()

	ctrl := loop.New(host, theme.NewSignal(opts.Theme), cfg, logger)
	if !ctrl.Mount() {
		return nil, fmt.Errorf("%w: %dx%d", loop.ErrNoSurface, opts.Width, opts.Height)
	}
	defer ctrl.Unmount()

	start := time.Now()
	var out []*image.RGBA
	for i := 1; i <= frames; i++ {
		host.Step()
		if (opts.Every > 0 && i%opts.Every == 0) || i == frames {
			out = append(out, cloneRGBA(host.Frame()))
		}
	}

	st := ctrl.Stats()
	logger.Debug("headless render done",
		"frames", st.Frames, "particles", st.Particles, "links", st.Links,
		"captured", len(out), "elapsed", time.Since(start).Round(time.Millisecond))
	return out, nil
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

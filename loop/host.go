package loop

import (
	"errors"

	"netfield/field"
)

// ErrNoSurface is returned by hosts that cannot provide a drawing surface
var ErrNoSurface = errors.New("drawing surface unavailable")

// Host is the environment a Controller is mounted into
type Host interface {
	// Viewport returns the current viewport size in pixels
	Viewport() (width, height int)

	// AcquireSurface returns a surface of the given size for the controller's
	// exclusive use. Calling it again resizes; the previous surface must no
	// longer be used.
	AcquireSurface(width, height int) (field.Surface, error)

	// Scheduler returns the host's display-synchronised frame queue
	Scheduler() *Scheduler

	// AddResizeListener registers fn for viewport size changes
	AddResizeListener(fn func(width, height int)) (remove func())
}

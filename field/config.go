package field

// Compiled-in tunables for the network background.
const (
	// DefaultDensity is the surface area in square pixels per particle
	DefaultDensity = 12000.0

	// DefaultLinkDivisor divides min(width, height) to get the link distance
	DefaultLinkDivisor = 7.0

	// DefaultOpacityFalloff is the squared distance at which a link fades out
	DefaultOpacityFalloff = 20000.0

	DefaultMaxSpeed     = 0.15 // pixels per frame, per axis
	DefaultRadiusMin    = 0.5
	DefaultRadiusSpread = 1.2
	DefaultLineWidth    = 0.5

	// DefaultGridMinParticles is the population above which link enumeration
	// switches from the pairwise scan to the cell grid
	DefaultGridMinParticles = 160
)

// Config holds the particle field tunables
type Config struct {
	// Density is the surface area in square pixels per particle
	Density float64

	// MaxParticles caps the population, zero means uncapped
	MaxParticles int

	// LinkDivisor divides min(width, height) to get the link distance
	LinkDivisor float64

	// OpacityFalloff is the squared distance at which link opacity reaches zero
	OpacityFalloff float64

	// MaxSpeed bounds each velocity component to [-MaxSpeed, MaxSpeed)
	MaxSpeed float64

	// RadiusMin and RadiusSpread give radii in [RadiusMin, RadiusMin+RadiusSpread)
	RadiusMin    float64
	RadiusSpread float64

	// LineWidth is the link stroke width in pixels
	LineWidth float64

	// GridMinParticles enables the cell grid for populations above it
	GridMinParticles int
}

// DefaultConfig returns the tunables used by the site background
func DefaultConfig() Config {
	return Config{
		Density:          DefaultDensity,
		MaxParticles:     0,
		LinkDivisor:      DefaultLinkDivisor,
		OpacityFalloff:   DefaultOpacityFalloff,
		MaxSpeed:         DefaultMaxSpeed,
		RadiusMin:        DefaultRadiusMin,
		RadiusSpread:     DefaultRadiusSpread,
		LineWidth:        DefaultLineWidth,
		GridMinParticles: DefaultGridMinParticles,
	}
}

// Count returns the particle population for a surface of the given size
func Count(width, height int, cfg Config) int {
	if width <= 0 || height <= 0 || cfg.Density <= 0 {
		return 0
	}
	n := int(float64(width) * float64(height) / cfg.Density)
	if cfg.MaxParticles > 0 && n > cfg.MaxParticles {
		n = cfg.MaxParticles
	}
	return n
}

// Threshold returns the link distance for a surface of the given size
func Threshold(width, height float64, cfg Config) float64 {
	if width <= 0 || height <= 0 || cfg.LinkDivisor <= 0 {
		return 0
	}
	return min(width, height) / cfg.LinkDivisor
}

// Opacity returns the stroke alpha of a link with squared length d2
func Opacity(d2, falloff float64) float64 {
	if falloff <= 0 {
		return 0
	}
	return max(0, 1-d2/falloff)
}

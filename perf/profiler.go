// Package perf watches frame timings and captures a CPU profile when the
// background stops fitting in its frame budget.
package perf

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Config holds profiler settings
type Config struct {
	// Budget is the frame duration above which a frame counts as slow
	Budget time.Duration

	// SlowStreak is the number of consecutive slow frames that triggers a capture
	SlowStreak int

	// ProfilesDir receives CPU profiles; empty disables capture
	ProfilesDir string

	// CaptureDuration is how long a CPU profile records
	CaptureDuration time.Duration

	// CaptureCooldown is the minimum time between two captures
	CaptureCooldown time.Duration

	// Warmup ignores slow frames right after start
	Warmup time.Duration
}

// DefaultConfig returns a 60 Hz budget with capture disabled
func DefaultConfig() Config {
	return Config{
		Budget:          time.Second / 60,
		SlowStreak:      30,
		CaptureDuration: 5 * time.Second,
		CaptureCooldown: 30 * time.Second,
		Warmup:          3 * time.Second,
	}
}

// Snapshot is a summary of recent frames
type Snapshot struct {
	Frames     uint64
	SlowFrames uint64
	Last       time.Duration
	Average    time.Duration // exponential moving average
	Worst      time.Duration
	Captures   int
}

// Profiler tracks frame durations
type Profiler struct {
	cfg    Config
	logger *log.Logger
	now    func() time.Time

	mu          sync.Mutex
	started     time.Time
	frameStart  time.Time
	streak      int
	snap        Snapshot
	isProfiling bool
	lastCapture time.Time
}

// NewProfiler creates a profiler instance
func NewProfiler(cfg Config, logger *log.Logger) *Profiler {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.ProfilesDir != "" {
		if err := os.MkdirAll(cfg.ProfilesDir, 0755); err != nil {
			logger.Warn("profile capture disabled", "dir", cfg.ProfilesDir, "err", err)
			cfg.ProfilesDir = ""
		}
	}
	p := &Profiler{
		cfg:    cfg,
		logger: logger.With("component", "perf"),
		now:    time.Now,
	}
	p.started = p.now()
	return p
}

// BeginFrame marks the start of a frame
func (p *Profiler) BeginFrame() {
	p.mu.Lock()
	p.frameStart = p.now()
	p.mu.Unlock()
}

// EndFrame records the frame started by the last BeginFrame
func (p *Profiler) EndFrame() {
	p.mu.Lock()
	if p.frameStart.IsZero() {
		p.mu.Unlock()
		return
	}
	d := p.now().Sub(p.frameStart)
	p.frameStart = time.Time{}
	capture := p.record(d)
	p.mu.Unlock()

	if capture {
		p.capture()
	}
}

// Measure runs fn and logs its duration at debug level
func (p *Profiler) Measure(name string, fn func()) time.Duration {
	start := p.now()
	fn()
	d := p.now().Sub(start)
	p.logger.Debug("measured", "name", name, "took", d)
	return d
}

// Snapshot returns the current summary
func (p *Profiler) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap
}

// record updates the counters and reports whether a capture should start;
// caller holds mu
func (p *Profiler) record(d time.Duration) bool {
	p.snap.Frames++
	p.snap.Last = d
	if p.snap.Average == 0 {
		p.snap.Average = d
	} else {
		p.snap.Average = (p.snap.Average*9 + d) / 10
	}
	p.snap.Worst = max(p.snap.Worst, d)

	if p.cfg.Budget <= 0 || d <= p.cfg.Budget {
		p.streak = 0
		return false
	}
	p.snap.SlowFrames++
	if p.now().Sub(p.started) < p.cfg.Warmup {
		return false
	}
	p.streak++
	if p.cfg.SlowStreak <= 0 || p.streak < p.cfg.SlowStreak {
		return false
	}
	p.streak = 0
	p.logger.Warn("frame budget exceeded", "frames", p.cfg.SlowStreak, "avg", p.snap.Average, "budget", p.cfg.Budget)

	if p.cfg.ProfilesDir == "" || p.isProfiling {
		return false
	}
	if !p.lastCapture.IsZero() && p.now().Sub(p.lastCapture) < p.cfg.CaptureCooldown {
		return false
	}
	p.isProfiling = true
	p.lastCapture = p.now()
	p.snap.Captures++
	return true
}

// capture records a CPU profile in the background
func (p *Profiler) capture() {
	timestamp := p.now().Format("20060102-150405")
	path := filepath.Join(p.cfg.ProfilesDir, fmt.Sprintf("slow-frames-%s.cpu.prof", timestamp))

	go func() {
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()

		if err := captureCPUProfile(path, p.cfg.CaptureDuration); err != nil {
			p.logger.Error("cpu profile failed", "err", err)
			return
		}

		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		p.logger.Info("cpu profile saved", "path", path,
			"heap_kb", m.HeapAlloc/1024, "num_gc", m.NumGC)
	}()
}

// captureCPUProfile records a CPU profile for d
func captureCPUProfile(path string, d time.Duration) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(d)
	pprof.StopCPUProfile()
	return nil
}

// IsProfiling returns whether a profile capture is in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

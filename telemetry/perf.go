package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one host frame.
const (
	PhaseInput      = "input"
	PhaseSimulation = "simulation"
	PhaseSound      = "sound"
	PhaseRender     = "render"
)

var phases = []string{PhaseInput, PhaseSimulation, PhaseSound, PhaseRender}

// frameSample holds timing data for a single frame.
type frameSample struct {
	total  time.Duration
	phases map[string]time.Duration
}

// PerfCollector tracks frame timings over a rolling window.
type PerfCollector struct {
	samples []frameSample
	next    int
	count   int

	current    map[string]time.Duration
	frameStart time.Time
	phaseStart time.Time
	phase      string
}

// NewPerfCollector creates a collector averaging over windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{samples: make([]frameSample, windowSize)}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.current = make(map[string]time.Duration, len(phases))
	p.phase = ""
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.phase != "" {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.phase = phase
}

// EndFrame closes the running phase and stores the sample.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	if p.phase != "" {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}
	p.samples[p.next] = frameSample{total: now.Sub(p.frameStart), phases: p.current}
	p.next = (p.next + 1) % len(p.samples)
	if p.count < len(p.samples) {
		p.count++
	}
	p.phase = ""
}

// PerfStats holds aggregated frame statistics.
type PerfStats struct {
	AvgFrame time.Duration
	MinFrame time.Duration
	MaxFrame time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // percent of the average frame

	FramesPerSecond float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if p.count == 0 {
		return s
	}

	var total time.Duration
	sums := make(map[string]time.Duration)
	for i := 0; i < p.count; i++ {
		f := p.samples[i]
		total += f.total
		if i == 0 || f.total < s.MinFrame {
			s.MinFrame = f.total
		}
		if f.total > s.MaxFrame {
			s.MaxFrame = f.total
		}
		for name, d := range f.phases {
			sums[name] += d
		}
	}

	n := time.Duration(p.count)
	s.AvgFrame = total / n
	for name, sum := range sums {
		s.PhaseAvg[name] = sum / n
		if s.AvgFrame > 0 {
			s.PhasePct[name] = float64(s.PhaseAvg[name]) / float64(s.AvgFrame) * 100
		}
	}
	if s.AvgFrame > 0 {
		s.FramesPerSecond = float64(time.Second) / float64(s.AvgFrame)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrame.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrame.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrame.Microseconds()),
		slog.Float64("fps", s.FramesPerSecond),
	}
	for _, name := range phases {
		if pct, ok := s.PhasePct[name]; ok {
			attrs = append(attrs, slog.Float64(name+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs the frame statistics.
func (s PerfStats) LogStats() {
	slog.Info("perf", "frames", s)
}

// PerfStatsCSV is a flat struct for CSV export of frame statistics.
type PerfStatsCSV struct {
	SimTime       float64 `csv:"sim_time"`
	AvgFrameUS    int64   `csv:"avg_frame_us"`
	MinFrameUS    int64   `csv:"min_frame_us"`
	MaxFrameUS    int64   `csv:"max_frame_us"`
	FPS           float64 `csv:"fps"`
	InputPct      float64 `csv:"input_pct"`
	SimulationPct float64 `csv:"simulation_pct"`
	SoundPct      float64 `csv:"sound_pct"`
	RenderPct     float64 `csv:"render_pct"`
}

// ToCSV flattens the statistics, stamped with the simulation time.
func (s PerfStats) ToCSV(simTime float64) PerfStatsCSV {
	return PerfStatsCSV{
		SimTime:       simTime,
		AvgFrameUS:    s.AvgFrame.Microseconds(),
		MinFrameUS:    s.MinFrame.Microseconds(),
		MaxFrameUS:    s.MaxFrame.Microseconds(),
		FPS:           s.FramesPerSecond,
		InputPct:      s.PhasePct[PhaseInput],
		SimulationPct: s.PhasePct[PhaseSimulation],
		SoundPct:      s.PhasePct[PhaseSound],
		RenderPct:     s.PhasePct[PhaseRender],
	}
}

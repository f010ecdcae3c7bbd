package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// RallyRecord describes one point, from serve to goal.
type RallyRecord struct {
	Match  int    `csv:"match"`
	Point  int    `csv:"point"`
	Scorer string `csv:"scorer"`

	Hits        int `csv:"hits"`
	LeftHits    int `csv:"left_hits"`
	RightHits   int `csv:"right_hits"`
	WallBounces int `csv:"wall_bounces"`

	StartSec    float64 `csv:"start"`
	DurationSec float64 `csv:"duration"`

	PeakRate      float64 `csv:"peak_rate"`        // Highest ball rate multiplier reached
	MeanAbsHitPos float64 `csv:"mean_abs_hit_pos"` // 0 = center hits, 1 = edge hits

	// Score after the goal
	LeftScore  int `csv:"left_score"`
	RightScore int `csv:"right_score"`
}

// MatchSummary aggregates the rallies of one match.
type MatchSummary struct {
	Match       int     `csv:"match"`
	Points      int     `csv:"points"`
	LeftScore   int     `csv:"left_score"`
	RightScore  int     `csv:"right_score"`
	Winner      string  `csv:"winner"`
	DurationSec float64 `csv:"duration"`

	HitsMean float64 `csv:"hits_mean"`
	HitsStd  float64 `csv:"hits_std"`
	HitsMax  float64 `csv:"hits_max"`

	RallyDurMean float64 `csv:"rally_dur_mean"`
	RallyDurP50  float64 `csv:"rally_dur_p50"`
	RallyDurP90  float64 `csv:"rally_dur_p90"`

	PeakRate float64 `csv:"peak_rate"`
}

// Describe returns mean, sample standard deviation, median and 90th
// percentile of values. All are 0 for an empty slice; std is 0 for a
// single value.
func Describe(values []float64) (mean, std, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		std = stat.StdDev(sorted, nil)
	}
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return mean, std, p50, p90
}

// Summarize builds the summary for a match from its rallies and final score.
func Summarize(match int, rallies []RallyRecord, durationSec float64, leftScore, rightScore int) MatchSummary {
	s := MatchSummary{
		Match:       match,
		Points:      len(rallies),
		LeftScore:   leftScore,
		RightScore:  rightScore,
		Winner:      winner(leftScore, rightScore),
		DurationSec: durationSec,
	}
	if len(rallies) == 0 {
		return s
	}

	hits := make([]float64, len(rallies))
	durations := make([]float64, len(rallies))
	peaks := make([]float64, len(rallies))
	for i, r := range rallies {
		hits[i] = float64(r.Hits)
		durations[i] = r.DurationSec
		peaks[i] = r.PeakRate
	}

	s.HitsMean, s.HitsStd, _, _ = Describe(hits)
	s.HitsMax = floats.Max(hits)
	s.RallyDurMean, _, s.RallyDurP50, s.RallyDurP90 = Describe(durations)
	s.PeakRate = floats.Max(peaks)
	return s
}

func winner(left, right int) string {
	switch {
	case left > right:
		return "Left"
	case right > left:
		return "Right"
	}
	return "Draw"
}

// round3 trims a value for console output.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// LogValue implements slog.LogValuer for structured logging.
func (r RallyRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("match", r.Match),
		slog.Int("point", r.Point),
		slog.String("scorer", r.Scorer),
		slog.Int("hits", r.Hits),
		slog.Int("left_hits", r.LeftHits),
		slog.Int("right_hits", r.RightHits),
		slog.Int("wall_bounces", r.WallBounces),
		slog.Float64("start", r.StartSec),
		slog.Float64("duration", r.DurationSec),
		slog.Float64("peak_rate", r.PeakRate),
		slog.Float64("mean_abs_hit_pos", r.MeanAbsHitPos),
		slog.Int("left_score", r.LeftScore),
		slog.Int("right_score", r.RightScore),
	)
}

// LogStats logs the rally using slog.
func (r RallyRecord) LogStats() {
	slog.Info("rally",
		"match", r.Match,
		"point", r.Point,
		"scorer", r.Scorer,
		"hits", r.Hits,
		"wall_bounces", r.WallBounces,
		"duration", round3(r.DurationSec),
		"peak_rate", round3(r.PeakRate),
		"score", [2]int{r.LeftScore, r.RightScore},
	)
}

// LogValue implements slog.LogValuer for structured logging.
func (s MatchSummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("match", s.Match),
		slog.Int("points", s.Points),
		slog.Int("left_score", s.LeftScore),
		slog.Int("right_score", s.RightScore),
		slog.String("winner", s.Winner),
		slog.Float64("duration", s.DurationSec),
		slog.Float64("hits_mean", s.HitsMean),
		slog.Float64("hits_std", s.HitsStd),
		slog.Float64("hits_max", s.HitsMax),
		slog.Float64("rally_dur_mean", s.RallyDurMean),
		slog.Float64("rally_dur_p50", s.RallyDurP50),
		slog.Float64("rally_dur_p90", s.RallyDurP90),
		slog.Float64("peak_rate", s.PeakRate),
	)
}

// LogStats logs the match summary using slog.
func (s MatchSummary) LogStats() {
	slog.Info("match",
		"match", s.Match,
		"points", s.Points,
		"winner", s.Winner,
		"score", [2]int{s.LeftScore, s.RightScore},
		"duration", round3(s.DurationSec),
		"hits_mean", round3(s.HitsMean),
		"hits_std", round3(s.HitsStd),
		"hits_max", s.HitsMax,
		"rally_dur_p50", round3(s.RallyDurP50),
		"rally_dur_p90", round3(s.RallyDurP90),
		"peak_rate", round3(s.PeakRate),
	)
}

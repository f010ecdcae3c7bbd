package main

import (
	"log/slog"

	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/telemetry"
)

// telemetrySink routes completed rally records to the log and CSV output.
type telemetrySink struct {
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	logStats  bool
}

func newTelemetry(cfg *config.Config, outputDir string, logStats bool) (*telemetrySink, error) {
	om, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}
	if om != nil {
		slog.Info("writing output", "dir", om.Dir())
	}

	return &telemetrySink{
		collector: telemetry.NewCollector(cfg.Rally.GoalDelay),
		output:    om,
		logStats:  logStats,
	}, nil
}

// flush drains the collector after an update.
func (t *telemetrySink) flush() {
	rallies, matches := t.collector.Flush()
	if len(rallies) == 0 && len(matches) == 0 {
		return
	}

	if t.logStats {
		for _, r := range rallies {
			r.LogStats()
		}
		for _, m := range matches {
			m.LogStats()
		}
	}

	if err := t.output.WriteRallies(rallies); err != nil {
		slog.Error("failed to write rallies", "error", err)
	}
	if err := t.output.WriteMatches(matches); err != nil {
		slog.Error("failed to write matches", "error", err)
	}
}

func (t *telemetrySink) writePerf(stats telemetry.PerfStats, simTime float64) {
	if t.logStats {
		stats.LogStats()
	}
	if err := t.output.WritePerf(stats, simTime); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

func (t *telemetrySink) Close() {
	if err := t.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

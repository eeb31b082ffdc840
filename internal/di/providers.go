package di

import (
	"time"

	"SignalRun/internal/pipeline"
	"SignalRun/pkg/logger"
	"SignalRun/pkg/metrics"
)

// ProvideLogger builds the job logger on the configured log file. The level
// starts at info; the pipeline raises or lowers it once the config loads.
func ProvideLogger(opts *pipeline.Options) (*logger.Logger, error) {
	return logger.New(&logger.Config{Level: "info", Output: opts.LogFile})
}

// ProvideRecorder creates the per-run metrics recorder.
func ProvideRecorder() *metrics.Recorder {
	return metrics.New()
}

// ProvideClock supplies the wall clock.
func ProvideClock() pipeline.Clock {
	return time.Now
}

// ProvidePipeline assembles the run.
func ProvidePipeline(opts *pipeline.Options, log *logger.Logger, rec *metrics.Recorder, now pipeline.Clock) *pipeline.Pipeline {
	return pipeline.New(opts, log, rec, now)
}

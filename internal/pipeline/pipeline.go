package pipeline

import (
	"io"
	"math"
	"math/rand"
	"os"
	"time"

	"SignalRun/internal/dataset"
	"SignalRun/internal/report"
	"SignalRun/internal/signal"
	"SignalRun/pkg/config"
	"SignalRun/pkg/logger"
	"SignalRun/pkg/metrics"
)

// Stage labels for duration metrics.
const (
	StageLoadConfig = "load_config"
	StageLoadData   = "load_data"
	StageSignals    = "signals"
	StageReport     = "report"
)

// Options configure one pipeline run.
type Options struct {
	ConfigPath string
	InputPath  string
	OutputPath string
	LogFile    string
	Start      time.Time // captured at process start, before anything else
	Stdout     io.Writer // defaults to os.Stdout
}

// Clock is the time source used for stage timing and latency.
type Clock func() time.Time

// Pipeline runs the four stages sequentially: config, data, signals, report.
// Any stage failure short-circuits to the error-report path. One run per
// process; no state survives Run.
type Pipeline struct {
	opts *Options
	log  *logger.Logger
	rec  *metrics.Recorder
	now  Clock
	rng  *rand.Rand
}

func New(opts *Options, log *logger.Logger, rec *metrics.Recorder, now Clock) *Pipeline {
	return &Pipeline{opts: opts, log: log, rec: rec, now: now}
}

// Rand exposes the seeded source for stochastic stages. The current signal
// engine is deterministic and does not draw from it.
func (p *Pipeline) Rand() *rand.Rand {
	return p.rng
}

// Run executes the pipeline and returns the first stage error, after the
// error report has been written. A nil return means the success report is on
// disk and on stdout.
func (p *Pipeline) Run() error {
	stdout := p.opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	p.log.Info("Job started")

	t0 := p.now()
	cfg, err := config.Load(p.opts.ConfigPath)
	if err != nil {
		return p.fail(nil, err)
	}
	p.rec.ObserveStage(StageLoadConfig, p.now().Sub(t0).Seconds())

	// Seed before any computation so a stochastic stage added later stays
	// reproducible under the same config.
	p.rng = rand.New(rand.NewSource(cfg.Seed))

	if cfg.Logging.Level != "" {
		if err := logger.SetLevel(cfg.Logging.Level); err != nil {
			p.log.Warn("Ignoring configured log level", logger.Error(err))
		}
	}

	p.log.Info("Config loaded",
		logger.Int64("seed", cfg.Seed),
		logger.Int("window", cfg.Window),
		logger.String("version", cfg.Version))

	t0 = p.now()
	ds, err := dataset.Load(p.opts.InputPath)
	if err != nil {
		return p.fail(cfg, err)
	}
	p.rec.ObserveStage(StageLoadData, p.now().Sub(t0).Seconds())
	p.rec.RecordRowsLoaded(ds.Len())
	p.log.Info("Data loaded", logger.Int("rows", ds.Len()))

	t0 = p.now()
	if err := signal.NewEngine(cfg.Window).Apply(ds); err != nil {
		return p.fail(cfg, err)
	}
	p.rec.ObserveStage(StageSignals, p.now().Sub(t0).Seconds())
	p.log.Info("Rolling mean calculated", logger.Int("window", cfg.Window))
	p.log.Info("Signals generated")

	if sig, ok := ds.Column(signal.ColSignal); ok {
		p.rec.RecordSignalsFlagged(countFlagged(sig.Floats))
	}

	t0 = p.now()
	rep, err := report.Build(ds, cfg, p.opts.Start, p.now())
	if err != nil {
		return p.fail(cfg, err)
	}
	p.log.Info("Metrics computed",
		logger.Float64("signal_rate", rep.Value),
		logger.Int("rows_processed", rep.RowsProcessed))

	if err := rep.Write(p.opts.OutputPath, stdout); err != nil {
		return p.fail(cfg, err)
	}
	p.rec.ObserveStage(StageReport, p.now().Sub(t0).Seconds())

	for _, line := range p.rec.Summary() {
		p.log.Debug(line)
	}
	p.log.Info("Job completed successfully", logger.Int64("latency_ms", rep.LatencyMS))
	return nil
}

// fail logs the error, writes the error-shape report, and passes err back.
// The version comes from the loaded config when the failure happened after
// the config stage, otherwise from a best-effort re-read of the config file.
func (p *Pipeline) fail(cfg *config.Config, err error) error {
	p.log.Error(err.Error())

	version := "unknown"
	if cfg != nil {
		version = cfg.Version
	} else {
		version = config.VersionOrUnknown(p.opts.ConfigPath)
	}

	if werr := report.WriteError(p.opts.OutputPath, version, err.Error()); werr != nil {
		p.log.Error("Could not write error report", logger.Error(werr))
	}
	return err
}

func countFlagged(values []float64) int {
	n := 0
	for _, v := range values {
		if !math.IsNaN(v) && v == 1 {
			n++
		}
	}
	return n
}

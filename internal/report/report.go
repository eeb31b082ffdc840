package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/go-playground/validator/v10"

	"SignalRun/internal/dataset"
	"SignalRun/internal/signal"
	"SignalRun/pkg/config"
	"SignalRun/pkg/errs"
	"SignalRun/pkg/util"
)

// MetricSignalRate is the job's sole output metric.
const MetricSignalRate = "signal_rate"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Report is the success-shape result written to the output file and stdout.
type Report struct {
	Version       string  `json:"version" validate:"required"`
	RowsProcessed int     `json:"rows_processed" validate:"gte=0"`
	Metric        string  `json:"metric" validate:"required"`
	Value         float64 `json:"value" validate:"gte=0,lte=1"`
	LatencyMS     int64   `json:"latency_ms" validate:"gte=0"`
	Seed          int64   `json:"seed"`
	Status        string  `json:"status" validate:"required,oneof=success"`
}

// ErrorReport is the failure-shape result.
type ErrorReport struct {
	Version      string `json:"version"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// SignalRate returns the mean of the defined signal values; warm-up rows,
// where the signal is NaN, are excluded. A series with no defined values
// yields 0.
func SignalRate(values []float64) float64 {
	var sum float64
	n := 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Build assembles and validates the success report. rows_processed counts all
// rows including warm-up; latency is floored to whole milliseconds.
func Build(d *dataset.Dataset, cfg *config.Config, start, now time.Time) (*Report, error) {
	sig, ok := d.Column(signal.ColSignal)
	if !ok {
		return nil, errs.ValueError("Signals not generated")
	}

	r := &Report{
		Version:       cfg.Version,
		RowsProcessed: d.Len(),
		Metric:        MetricSignalRate,
		Value:         util.RoundTo(SignalRate(sig.Floats), 4),
		LatencyMS:     now.Sub(start).Milliseconds(),
		Seed:          cfg.Seed,
		Status:        StatusSuccess,
	}
	if err := validate.Struct(r); err != nil {
		return nil, errs.ValueError("Invalid result report").WithError(err)
	}
	return r, nil
}

// Write serializes the report as 2-space-indented JSON to path, overwriting
// any existing file, and echoes the same document to stdout.
func (r *Report) Write(path string, stdout io.Writer) error {
	b, err := marshal(r)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return errs.ValueError("Could not write output file").WithError(err)
	}
	if stdout != nil {
		fmt.Fprintln(stdout, string(b))
	}
	return nil
}

// WriteError writes the failure-shape report. Nothing goes to stdout; the
// caller prints its own error line.
func WriteError(path, version, message string) error {
	b, err := marshal(&ErrorReport{
		Version:      version,
		Status:       StatusError,
		ErrorMessage: message,
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return errs.ValueError("Could not write output file").WithError(err)
	}
	return nil
}

func marshal(v interface{}) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errs.ValueError("Could not serialize report").WithError(err)
	}
	return b, nil
}

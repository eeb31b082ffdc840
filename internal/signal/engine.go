package signal

import (
	"math"

	"SignalRun/internal/dataset"
	"SignalRun/pkg/errs"
)

// Column names attached to the dataset by Apply.
const (
	ColRollingMean = "rolling_mean"
	ColSignal      = "signal"
)

// Engine derives the rolling-mean buy/sell signal. It is a pure function of
// the dataset and the window: no hidden state, no randomness.
type Engine struct {
	window int
}

func NewEngine(window int) *Engine {
	return &Engine{window: window}
}

// Apply computes rolling_mean and signal over the close column and attaches
// both to the dataset. rolling_mean[i] averages close[i-window+1..i] and is
// NaN for the first window-1 rows; signal[i] is 1 when close[i] exceeds
// rolling_mean[i], 0 otherwise, and NaN wherever rolling_mean is NaN.
func (e *Engine) Apply(d *dataset.Dataset) error {
	if e.window <= 0 {
		return errs.ValueError("Window must be positive integer")
	}
	cl, ok := d.Column("close")
	if !ok {
		return errs.ValueError("Missing required column: close")
	}
	if !cl.Numeric {
		return errs.ValueError("Column close must be numeric")
	}

	mean := RollingMean(cl.Floats, e.window)

	sig := make([]float64, len(cl.Floats))
	for i, m := range mean {
		switch {
		case math.IsNaN(m):
			sig[i] = math.NaN()
		case cl.Floats[i] > m:
			sig[i] = 1
		default:
			sig[i] = 0
		}
	}

	d.AttachFloats(ColRollingMean, mean)
	d.AttachFloats(ColSignal, sig)
	return nil
}

// RollingMean returns the trailing mean of the last `window` values at each
// index, NaN while the window has not yet filled or when it covers a NaN.
// Only past and current values are used; there is no look-ahead.
func RollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	var sum float64
	nan := 0
	for i, v := range values {
		if math.IsNaN(v) {
			nan++
		} else {
			sum += v
		}
		if i >= window {
			old := values[i-window]
			if math.IsNaN(old) {
				nan--
			} else {
				sum -= old
			}
		}
		if i < window-1 || nan > 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(window)
	}
	return out
}

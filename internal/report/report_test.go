package report

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"SignalRun/internal/dataset"
	"SignalRun/internal/signal"
	"SignalRun/pkg/config"
)

func scenarioDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	d := dataset.New(5)
	d.AttachFloats("close", []float64{10, 20, 30, 40, 20})
	if err := signal.NewEngine(3).Apply(d); err != nil {
		t.Fatalf("apply: %v", err)
	}
	return d
}

func TestSignalRateExcludesWarmup(t *testing.T) {
	nan := math.NaN()
	if got := SignalRate([]float64{nan, nan, 1, 1, 0}); math.Abs(got-1.0/3*2) > 1e-12 {
		t.Fatalf("unexpected rate %v", got)
	}
	if got := SignalRate([]float64{nan, nan}); got != 0 {
		t.Fatalf("all-undefined series should rate 0, got %v", got)
	}
}

func TestBuildScenario(t *testing.T) {
	cfg := &config.Config{Seed: 42, Window: 3, Version: "v1"}
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	now := start.Add(1500*time.Millisecond + 900*time.Microsecond)

	r, err := Build(scenarioDataset(t), cfg, start, now)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if r.Version != "v1" || r.Seed != 42 || r.Status != StatusSuccess {
		t.Fatalf("unexpected report %+v", r)
	}
	if r.RowsProcessed != 5 {
		t.Fatalf("rows_processed should count warm-up rows, got %d", r.RowsProcessed)
	}
	if r.Metric != MetricSignalRate {
		t.Fatalf("unexpected metric %q", r.Metric)
	}
	// mean([1,1,0]) = 2/3, rounded to 4 decimals
	if r.Value != 0.6667 {
		t.Fatalf("value should round to 4 decimals, got %v", r.Value)
	}
	if r.LatencyMS != 1500 {
		t.Fatalf("latency must floor, got %d", r.LatencyMS)
	}
}

func TestBuildWithoutSignals(t *testing.T) {
	d := dataset.New(2)
	d.AttachFloats("close", []float64{10, 20})
	cfg := &config.Config{Seed: 1, Window: 2, Version: "v1"}
	if _, err := Build(d, cfg, time.Now(), time.Now()); err == nil {
		t.Fatalf("expected error when signal column absent")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	cfg := &config.Config{Seed: 42, Window: 3, Version: "v1"}
	start := time.Now()
	r, err := Build(scenarioDataset(t), cfg, start, start.Add(7*time.Millisecond))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.json")
	var stdout strings.Builder
	if err := r.Write(path, &stdout); err != nil {
		t.Fatalf("write: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(b), "\n  \"version\": \"v1\"") {
		t.Fatalf("expected 2-space indent, got %q", string(b))
	}
	if strings.TrimSpace(stdout.String()) != string(b) {
		t.Fatalf("stdout copy differs from file")
	}

	var got Report
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got != *r {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, *r)
	}
}

func TestWriteOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := os.WriteFile(path, []byte(strings.Repeat("x", 500)), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	if err := WriteError(path, "v1", "Missing required column: close"); err != nil {
		t.Fatalf("write error report: %v", err)
	}

	b, _ := os.ReadFile(path)
	var got ErrorReport
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("stale content left behind: %v", err)
	}
	want := ErrorReport{Version: "v1", Status: "error", ErrorMessage: "Missing required column: close"}
	if got != want {
		t.Fatalf("unexpected error report %+v", got)
	}
}

func TestReportFieldOrder(t *testing.T) {
	cfg := &config.Config{Seed: 42, Window: 3, Version: "v1"}
	start := time.Now()
	r, err := Build(scenarioDataset(t), cfg, start, start)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	b, _ := json.MarshalIndent(r, "", "  ")

	keys := []string{"version", "rows_processed", "metric", "value", "latency_ms", "seed", "status"}
	last := -1
	for _, k := range keys {
		idx := strings.Index(string(b), "\""+k+"\"")
		if idx <= last {
			t.Fatalf("key %q out of order in %s", k, b)
		}
		last = idx
	}
}

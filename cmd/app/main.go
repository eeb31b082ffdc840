package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"SignalRun/internal/di"
	"SignalRun/internal/pipeline"
)

func main() {
	start := time.Now()

	// Parse flags
	input := flag.String("input", "", "path to input CSV")
	configPath := flag.String("config", "", "path to config YAML")
	output := flag.String("output", "", "path to output JSON")
	logFile := flag.String("log-file", "", "path to log file")
	flag.Parse()

	required := []struct {
		name  string
		value string
	}{
		{"input", *input},
		{"config", *configPath},
		{"output", *output},
		{"log-file", *logFile},
	}
	for _, f := range required {
		if f.value == "" {
			fmt.Fprintf(os.Stderr, "missing required flag --%s\n", f.name)
			flag.Usage()
			os.Exit(2)
		}
	}

	// Wire DI: build the pipeline run
	p, err := di.InitializePipeline(&pipeline.Options{
		ConfigPath: *configPath,
		InputPath:  *input,
		OutputPath: *output,
		LogFile:    *logFile,
		Start:      start,
	})
	if err != nil {
		log.Fatalf("pipeline initialization failed: %v", err)
	}

	if err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

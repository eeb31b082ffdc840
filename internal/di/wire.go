//go:build wireinject
// +build wireinject

package di

import (
	"SignalRun/internal/pipeline"

	"github.com/google/wire"
)

// InitializePipeline wires up one pipeline run from its options.
// Wire will generate the implementation of this function.
func InitializePipeline(opts *pipeline.Options) (*pipeline.Pipeline, error) {
	wire.Build(
		ProvideLogger,
		ProvideRecorder,
		ProvideClock,
		ProvidePipeline,
	)
	return &pipeline.Pipeline{}, nil
}

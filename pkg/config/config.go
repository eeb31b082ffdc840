package config

import (
	"os"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"

	"SignalRun/pkg/errs"
)

// Config holds the job parameters. Loaded once, immutable afterwards.
type Config struct {
	Seed    int64
	Window  int
	Version string
	Logging LoggingConfig
}

// LoggingConfig is optional in the file; absent fields take defaults.
type LoggingConfig struct {
	Level      string `yaml:"level" default:"info"`
	TimeFormat string `yaml:"time_format"`
}

var requiredKeys = []string{"seed", "window", "version"}

// Load reads and validates the YAML configuration file. Required keys are
// checked for presence in fixed order, then for exact YAML scalar types, so
// that a mistyped value is reported precisely rather than coerced.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.NotFoundError("Config file not found").WithError(err)
		}
		return nil, errs.ParseError("Invalid config file format").WithError(err)
	}

	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, errs.ParseError("Invalid config file format").WithError(err)
	}
	if len(raw) == 0 {
		return nil, errs.ValueError("Config file is empty")
	}

	for _, key := range requiredKeys {
		if _, ok := raw[key]; !ok {
			return nil, errs.ValueErrorf("Missing config key: %s", key)
		}
	}

	c := &Config{}

	seed := raw["seed"]
	if !isIntNode(&seed) {
		return nil, errs.ValueError("Seed must be integer")
	}
	if err := seed.Decode(&c.Seed); err != nil {
		return nil, errs.ValueError("Seed must be integer")
	}

	window := raw["window"]
	if !isIntNode(&window) {
		return nil, errs.ValueError("Window must be positive integer")
	}
	if err := window.Decode(&c.Window); err != nil || c.Window <= 0 {
		return nil, errs.ValueError("Window must be positive integer")
	}

	version := raw["version"]
	if version.Kind != yaml.ScalarNode || version.Tag != "!!str" {
		return nil, errs.ValueError("Version must be string")
	}
	if err := version.Decode(&c.Version); err != nil {
		return nil, errs.ValueError("Version must be string")
	}

	if logging, ok := raw["logging"]; ok {
		if err := logging.Decode(&c.Logging); err != nil {
			return nil, errs.ParseError("Invalid logging section").WithError(err)
		}
	}
	if err := defaults.Set(c); err != nil {
		return nil, errs.ParseError("Invalid config defaults").WithError(err)
	}

	return c, nil
}

// VersionOrUnknown re-reads just the version field for the error-report path.
// Any failure is discarded and "unknown" returned.
func VersionOrUnknown(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return "unknown"
	}
	var raw struct {
		Version string `yaml:"version"`
	}
	if err := yaml.Unmarshal(b, &raw); err != nil || raw.Version == "" {
		return "unknown"
	}
	return raw.Version
}

func isIntNode(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!int"
}

package driver

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk pipeline configuration: which phases to run and
// how the trace subsystem should behave. It is decoded from a
// `pipeline.toml`-shaped manifest in the same table-per-concern style as a
// project manifest.
type Config struct {
	Pipeline PipelineConfig `toml:"pipeline"`
	Trace    TraceConfig    `toml:"trace"`
}

// PipelineConfig toggles which of the two transform passes run after the
// initial check, and whether the checker re-runs after each pass that ran.
// All three default to true; a config disabling a pass is only useful for
// isolating a single pass during development.
type PipelineConfig struct {
	RunTailCall  bool `toml:"run_tail_call"`
	RunAsyncCPS  bool `toml:"run_async_cps"`
	CheckBetween bool `toml:"check_between_phases"`
}

// TraceConfig mirrors internal/trace.Config's fields in a TOML-friendly
// shape (Level and Mode are parsed from strings via trace.ParseLevel /
// trace.ParseMode).
type TraceConfig struct {
	Level      string `toml:"level"`
	Mode       string `toml:"mode"`
	OutputPath string `toml:"output_path"`
	RingSize   int    `toml:"ring_size"`
}

// DefaultConfig returns the configuration used when no manifest is given.
func DefaultConfig() Config {
	return Config{
		Pipeline: PipelineConfig{RunTailCall: true, RunAsyncCPS: true, CheckBetween: true},
		Trace:    TraceConfig{Level: "off", Mode: "ring"},
	}
}

// LoadConfig decodes a pipeline manifest from path, filling in
// DefaultConfig's values for anything the file leaves unset.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load pipeline config %q: %w", path, err)
	}
	return cfg, nil
}

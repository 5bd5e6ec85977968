// hotreload.go: dynamic retuning of non-structural knobs with Argus
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package xanthus

import (
	"fmt"
	"sync"
	"time"

	"github.com/agilira/argus"
)

// Retunable is implemented by a running Server to accept hot-reloaded
// knobs. Only the non-structural ones are here: spec.md §6 treats
// conn-threads, conn-queue-size and db-map-slots as construction-time
// flags, so they have no Retunable setter and HotConfig never touches them.
type Retunable interface {
	SetParkBounds(minMillis, maxMillis, stepMillis int)
	SetThreadFreeLimit(limit int)
}

// HotConfig watches a configuration file via Argus and applies changes to a
// running Retunable server as they're detected.
type HotConfig struct {
	target  Retunable
	watcher *argus.Watcher
	mu      sync.RWMutex
	tuning  tuning

	// OnReload is called after a configuration change has been applied.
	// Optional; must be fast and non-blocking.
	OnReload func(old, new tuning)
}

// tuning is the subset of Config that HotConfig is allowed to change at
// runtime.
type tuning struct {
	ParkMinMillis  int
	ParkMaxMillis  int
	ParkStepMillis int
	ThreadFreeLim  int
}

// HotConfigOptions configures hot reload behavior.
type HotConfigOptions struct {
	// ConfigPath is the path to the configuration file to watch. Supports
	// JSON, YAML, TOML, HCL, INI, Properties formats (argus.UniversalConfigWatcher).
	ConfigPath string

	// PollInterval is how often to check for configuration changes.
	// Default: 1 second. Minimum: 100ms.
	PollInterval time.Duration

	// OnReload is called after configuration is successfully reloaded.
	OnReload func(old, new tuning)

	// Logger for hot reload operations. If nil, NoOpLogger is used.
	Logger Logger
}

// NewHotConfig creates a hot-reloadable tuning watcher for target and starts
// watching opts.ConfigPath immediately.
//
// Recognized keys (top-level or nested under a "xanthus" section):
//   - tcp_park_min_ms, tcp_park_max_ms, tcp_park_step_ms (int)
//   - thread_free_limit (int)
func NewHotConfig(target Retunable, opts HotConfigOptions) (*HotConfig, error) {
	if opts.ConfigPath == "" {
		return nil, fmt.Errorf("config_path is required")
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = time.Second
	} else if opts.PollInterval < 100*time.Millisecond {
		opts.PollInterval = 100 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = NoOpLogger{}
	}

	hc := &HotConfig{
		target:   target,
		OnReload: opts.OnReload,
		tuning: tuning{
			ParkMinMillis:  DefaultParkMinMillis,
			ParkMaxMillis:  DefaultParkMaxMillis,
			ParkStepMillis: DefaultParkStepMillis,
			ThreadFreeLim:  DefaultThreadFreeLimit,
		},
	}

	watcher, err := argus.UniversalConfigWatcherWithConfig(
		opts.ConfigPath, hc.handleConfigChange,
		argus.Config{PollInterval: opts.PollInterval},
	)
	if err != nil {
		return nil, err
	}
	hc.watcher = watcher
	return hc, nil
}

// Start begins watching the configuration file for changes.
func (hc *HotConfig) Start() error {
	if hc.watcher.IsRunning() {
		return nil
	}
	return hc.watcher.Start()
}

// Stop stops watching the configuration file.
func (hc *HotConfig) Stop() error {
	return hc.watcher.Stop()
}

// Tuning returns the tuning values currently in effect (thread-safe).
func (hc *HotConfig) Tuning() tuning {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.tuning
}

func (hc *HotConfig) handleConfigChange(data map[string]interface{}) {
	section, ok := data["xanthus"].(map[string]interface{})
	if !ok {
		section = data
	}

	hc.mu.Lock()
	old := hc.tuning
	next := old
	if v, ok := parsePositiveInt(section["tcp_park_min_ms"]); ok {
		next.ParkMinMillis = v
	}
	if v, ok := parsePositiveInt(section["tcp_park_max_ms"]); ok {
		next.ParkMaxMillis = v
	}
	if v, ok := parsePositiveInt(section["tcp_park_step_ms"]); ok {
		next.ParkStepMillis = v
	}
	if v, ok := parsePositiveInt(section["thread_free_limit"]); ok {
		next.ThreadFreeLim = v
	}
	hc.tuning = next
	hc.mu.Unlock()

	hc.target.SetParkBounds(next.ParkMinMillis, next.ParkMaxMillis, next.ParkStepMillis)
	hc.target.SetThreadFreeLimit(next.ThreadFreeLim)

	if hc.OnReload != nil {
		hc.OnReload(old, next)
	}
}

// parsePositiveInt extracts a positive integer from interface{}. Supports
// both int and float64 (YAML/JSON decoders disagree on numeric types).
func parsePositiveInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		if v > 0 {
			return v, true
		}
	case float64:
		if v > 0 {
			return int(v), true
		}
	}
	return 0, false
}

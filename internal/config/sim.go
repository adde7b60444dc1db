// Package config loads simulator settings (JSON) and scene descriptions (YAML).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/banshee-data/sensorsim/internal/device"
)

// DefaultConfigPath is the path to the canonical simulator defaults file.
const DefaultConfigPath = "config/sim.defaults.json"

// maxConfigFileSize bounds the config files we are willing to read.
const maxConfigFileSize = 1 * 1024 * 1024 // 1MB

// SimConfig holds the knobs consumed by the simulator and the replayer.
// Every field is optional; the Get* methods supply defaults for fields
// omitted from the JSON, so partial configs are safe.
type SimConfig struct {
	// Playback params
	WindowSize    *int     `json:"window_size,omitempty"`
	FrameInterval *string  `json:"frame_interval,omitempty"` // duration string like "100ms"
	PlaybackSpeed *float64 `json:"playback_speed,omitempty"`
	Loop          *bool    `json:"loop,omitempty"`

	// Simulation params
	TickInterval  *string  `json:"tick_interval,omitempty"` // duration string like "50ms"
	SampleSpacing *float64 `json:"sample_spacing,omitempty"`

	// Device defaults, applied when a scene device omits them
	VerticalFOVDeg   *float64 `json:"vertical_fov_deg,omitempty"`
	HorizontalFOVDeg *float64 `json:"horizontal_fov_deg,omitempty"`
	AngleModel       *string  `json:"angle_model,omitempty"`

	Verbose *bool `json:"verbose,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptySimConfig returns a SimConfig with all fields unset.
func EmptySimConfig() *SimConfig {
	return &SimConfig{}
}

// LoadSimConfig loads a SimConfig from a JSON file.
// The path must have a .json extension and the file must be at most 1MB.
func LoadSimConfig(path string) (*SimConfig, error) {
	data, err := readConfigFile(path, ".json")
	if err != nil {
		return nil, err
	}

	cfg := EmptySimConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath, searching the current
// directory and its parents up to the repository root. Panics if the file
// cannot be loaded; intended for test setup.
func MustLoadDefaultConfig() *SimConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // from internal/playback/framestore/
	}
	for _, path := range candidates {
		if cfg, err := LoadSimConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

func readConfigFile(path string, exts ...string) ([]byte, error) {
	cleanPath := filepath.Clean(path)
	ext := filepath.Ext(cleanPath)
	ok := false
	for _, want := range exts {
		if ext == want {
			ok = true
			break
		}
	}
	if !ok {
		return nil, fmt.Errorf("config file must have one of %v extensions, got %q", exts, ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxConfigFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return data, nil
}

// Validate checks that the configuration values are valid.
func (c *SimConfig) Validate() error {
	if c.WindowSize != nil && *c.WindowSize < 1 {
		return fmt.Errorf("window_size must be at least 1, got %d", *c.WindowSize)
	}

	if err := validatePositiveDuration("frame_interval", c.FrameInterval); err != nil {
		return err
	}
	if err := validatePositiveDuration("tick_interval", c.TickInterval); err != nil {
		return err
	}

	if c.PlaybackSpeed != nil && !(*c.PlaybackSpeed > 0) {
		return fmt.Errorf("playback_speed must be positive, got %f", *c.PlaybackSpeed)
	}

	if c.SampleSpacing != nil && !(*c.SampleSpacing > 0) {
		return fmt.Errorf("sample_spacing must be positive, got %f", *c.SampleSpacing)
	}

	for name, v := range map[string]*float64{
		"vertical_fov_deg":   c.VerticalFOVDeg,
		"horizontal_fov_deg": c.HorizontalFOVDeg,
	} {
		if v != nil && !(*v > 0 && *v <= 360) {
			return fmt.Errorf("%s must be in (0, 360], got %f", name, *v)
		}
	}

	if c.AngleModel != nil {
		if _, err := device.ParseAngleModel(*c.AngleModel); err != nil {
			return err
		}
	}

	return nil
}

func validatePositiveDuration(name string, v *string) error {
	if v == nil || *v == "" {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return fmt.Errorf("invalid %s '%s': %w", name, *v, err)
	}
	if d <= 0 {
		return fmt.Errorf("%s must be positive, got %s", name, d)
	}
	return nil
}

// GetWindowSize returns the window_size value or the default.
func (c *SimConfig) GetWindowSize() int {
	if c.WindowSize == nil {
		return 5
	}
	return *c.WindowSize
}

// GetFrameInterval parses and returns the FrameInterval as a time.Duration.
func (c *SimConfig) GetFrameInterval() time.Duration {
	return parseDurationOr(c.FrameInterval, 100*time.Millisecond)
}

// GetPlaybackSpeed returns the playback_speed value or the default.
func (c *SimConfig) GetPlaybackSpeed() float64 {
	if c.PlaybackSpeed == nil {
		return 1.0
	}
	return *c.PlaybackSpeed
}

// GetLoop returns the loop value or the default.
func (c *SimConfig) GetLoop() bool {
	if c.Loop == nil {
		return false // default: pause at the last frame
	}
	return *c.Loop
}

// GetTickInterval parses and returns the TickInterval as a time.Duration.
func (c *SimConfig) GetTickInterval() time.Duration {
	return parseDurationOr(c.TickInterval, 50*time.Millisecond)
}

// GetSampleSpacing returns the sample_spacing value or the default.
func (c *SimConfig) GetSampleSpacing() float64 {
	if c.SampleSpacing == nil {
		return 0.25
	}
	return *c.SampleSpacing
}

// GetVerticalFOVDeg returns the vertical_fov_deg value or the default.
func (c *SimConfig) GetVerticalFOVDeg() float64 {
	if c.VerticalFOVDeg == nil {
		return 30
	}
	return *c.VerticalFOVDeg
}

// GetHorizontalFOVDeg returns the horizontal_fov_deg value or the default.
func (c *SimConfig) GetHorizontalFOVDeg() float64 {
	if c.HorizontalFOVDeg == nil {
		return 60
	}
	return *c.HorizontalFOVDeg
}

// GetAngleModel returns the configured angle model, falling back to legacy
// for unset or unknown names.
func (c *SimConfig) GetAngleModel() device.AngleModel {
	if c.AngleModel == nil {
		return device.AngleModelLegacy
	}
	m, err := device.ParseAngleModel(*c.AngleModel)
	if err != nil {
		return device.AngleModelLegacy
	}
	return m
}

// GetVerbose returns the verbose value or the default.
func (c *SimConfig) GetVerbose() bool {
	if c.Verbose == nil {
		return false
	}
	return *c.Verbose
}

func parseDurationOr(v *string, def time.Duration) time.Duration {
	if v == nil || *v == "" {
		return def
	}
	d, err := time.ParseDuration(*v)
	if err != nil || d <= 0 {
		return def // default on parse error
	}
	return d
}

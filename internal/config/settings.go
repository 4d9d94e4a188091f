package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Settings holds runtime configuration for the export CLI. Dataset
// definitions live separately (internal/dataset); these are the per-host
// knobs: where the platform is, where output lands, how hard to push.
type Settings struct {
	// PlatformURL is the base URL of the compute/export platform API.
	PlatformURL string `json:"platformURL"`

	// PlatformAPIKey authenticates job submissions. Optional for
	// platforms that trust ambient credentials.
	PlatformAPIKey string `json:"platformAPIKey,omitempty"`

	// DestinationRoot is the platform-side folder root for exports.
	DestinationRoot string `json:"destinationRoot"`

	// MaxWorkers bounds concurrent job submissions.
	MaxWorkers int `json:"maxWorkers"`

	// DatasetsFile optionally points at a YAML dataset overrides file.
	DatasetsFile string `json:"datasetsFile,omitempty"`

	// TelemetryKey enables anonymous run metrics when non-empty.
	TelemetryKey string `json:"telemetryKey,omitempty"`

	// TelemetryEndpoint overrides the analytics endpoint.
	TelemetryEndpoint string `json:"telemetryEndpoint,omitempty"`
}

// DefaultSettings returns the default runtime settings.
func DefaultSettings() *Settings {
	return &Settings{
		DestinationRoot: "AlphaEarth_Alberta",
		MaxWorkers:      4,
	}
}

// DefaultPath returns the default settings file location.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".alphaearth-export", "settings.json")
}

// Load reads settings from the given path. A missing file yields the
// defaults; a present but malformed file is an error. Missing fields are
// merged with defaults so older settings files keep working.
func Load(path string) (*Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultSettings(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	defaults := DefaultSettings()
	if settings.DestinationRoot == "" {
		settings.DestinationRoot = defaults.DestinationRoot
	}
	if settings.MaxWorkers == 0 {
		settings.MaxWorkers = defaults.MaxWorkers
	}

	return &settings, nil
}

// Save writes settings to the given path, creating parent directories.
func Save(path string, settings *Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

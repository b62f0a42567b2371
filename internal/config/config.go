package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"

	"github.com/dkoosis/fluid/internal/logging"
	"github.com/dkoosis/fluid/internal/store"
)

// ConfigFileName is the name of the YAML config file.
const ConfigFileName = ".fluid.yaml"

// Constants for default values.
const (
	DefaultTheme       = "default"
	DefaultFormat      = "auto"
	DefaultUnit        = "px"
	DefaultMinSize     = 32
	DefaultMaxSize     = 48
	DefaultMinViewport = 400
	DefaultMaxViewport = 1600
)

// ErrPresetNotFound is returned by FindPreset when no preset name matches.
var ErrPresetNotFound = errors.New("preset not found")

// Sizes is a set of anchor values in pixels. A nil field is unset.
type Sizes struct {
	MinSize     *float64 `yaml:"min_size,omitempty"`
	MaxSize     *float64 `yaml:"max_size,omitempty"`
	MinViewport *float64 `yaml:"min_viewport,omitempty"`
	MaxViewport *float64 `yaml:"max_viewport,omitempty"`
}

// Preset is a named size range from .fluid.yaml. Unset fields fall back to
// the configured defaults.
type Preset struct {
	Sizes `yaml:",inline"`
	Unit  string `yaml:"unit,omitempty"`
}

// StoreConfig selects the persisted-field backend.
type StoreConfig struct {
	Backend string `yaml:"backend,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

// AppConfig represents the application's configuration from .fluid.yaml.
type AppConfig struct {
	Theme    string             `yaml:"theme"`
	Format   string             `yaml:"format"`
	Unit     string             `yaml:"unit"`
	NoColor  bool               `yaml:"no_color"`
	Debug    bool               `yaml:"debug"`
	Defaults Sizes              `yaml:"defaults"`
	Store    StoreConfig        `yaml:"store"`
	Presets  map[string]*Preset `yaml:"presets"`

	// Path is the file the config was read from, empty for defaults only.
	Path string `yaml:"-"`
}

// Defaults returns the configuration used when no file is found.
func Defaults() *AppConfig {
	return &AppConfig{
		Theme:    DefaultTheme,
		Format:   DefaultFormat,
		Unit:     DefaultUnit,
		Defaults: builtinSizes(),
		Store:    StoreConfig{Backend: store.BackendYAML},
		Presets:  make(map[string]*Preset),
	}
}

func builtinSizes() Sizes {
	return Sizes{
		MinSize:     ptr(DefaultMinSize),
		MaxSize:     ptr(DefaultMaxSize),
		MinViewport: ptr(DefaultMinViewport),
		MaxViewport: ptr(DefaultMaxViewport),
	}
}

func ptr(v float64) *float64 { return &v }

// LoadConfig loads .fluid.yaml. It never fails: an unreadable or invalid file
// is reported on logger and the defaults are returned.
func LoadConfig(logger *slog.Logger) *AppConfig {
	logger = logging.OrNop(logger)
	appCfg := Defaults()

	configPath := getConfigPath(logger)
	if configPath == "" {
		logger.Debug("no config file found, using defaults")
		return appCfg
	}

	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("error reading config file, using defaults", "path", configPath, "err", err)
		}
		return appCfg
	}

	var yamlAppCfg AppConfig
	if err := yaml.Unmarshal(yamlFile, &yamlAppCfg); err != nil {
		logger.Warn("error parsing config file, using defaults", "path", configPath, "err", err)
		return appCfg
	}

	// Merge YAML settings onto the defaults
	if yamlAppCfg.Theme != "" {
		appCfg.Theme = yamlAppCfg.Theme
	}
	if yamlAppCfg.Format != "" {
		appCfg.Format = yamlAppCfg.Format
	}
	if yamlAppCfg.Unit != "" {
		appCfg.Unit = yamlAppCfg.Unit
	}
	appCfg.NoColor = yamlAppCfg.NoColor
	appCfg.Debug = yamlAppCfg.Debug
	appCfg.Defaults = yamlAppCfg.Defaults.Over(appCfg.Defaults)
	if yamlAppCfg.Store.Backend != "" {
		appCfg.Store.Backend = yamlAppCfg.Store.Backend
	}
	appCfg.Store.Path = yamlAppCfg.Store.Path
	for name, preset := range yamlAppCfg.Presets {
		if preset != nil {
			appCfg.Presets[name] = preset
		}
	}
	appCfg.Path = configPath

	logger.Debug("loaded config", "path", configPath, "presets", len(appCfg.Presets))
	return appCfg
}

// getConfigPath tries to find the .fluid.yaml configuration file.
// It checks local directory first, then the user config dir.
func getConfigPath(logger *slog.Logger) string {
	if _, err := os.Stat(ConfigFileName); err == nil {
		logger.Debug("using local config file", "path", ConfigFileName)
		return ConfigFileName
	}

	configHome, err := os.UserConfigDir()
	// An empty or root config dir is not usable for a per-user path.
	if err != nil || configHome == "" || configHome == "/" {
		logger.Debug("user config dir unusable", "dir", configHome, "err", err)
		return ""
	}

	xdgPath := filepath.Join(configHome, "fluid", ConfigFileName)
	if _, err := os.Stat(xdgPath); err == nil {
		logger.Debug("using user config file", "path", xdgPath)
		return xdgPath
	}
	logger.Debug("user config file not found", "path", xdgPath)
	return ""
}

// Over returns s with unset fields taken from base.
func (s Sizes) Over(base Sizes) Sizes {
	pick := func(v, fallback *float64) *float64 {
		if v != nil {
			return v
		}
		return fallback
	}
	return Sizes{
		MinSize:     pick(s.MinSize, base.MinSize),
		MaxSize:     pick(s.MaxSize, base.MaxSize),
		MinViewport: pick(s.MinViewport, base.MinViewport),
		MaxViewport: pick(s.MaxViewport, base.MaxViewport),
	}
}

// Values dereferences s, using zero for unset fields.
func (s Sizes) Values() (minSize, maxSize, minViewport, maxViewport float64) {
	get := func(v *float64) float64 {
		if v == nil {
			return 0
		}
		return *v
	}
	return get(s.MinSize), get(s.MaxSize), get(s.MinViewport), get(s.MaxViewport)
}

// PresetNames returns the preset names in sorted order.
func (c *AppConfig) PresetNames() []string {
	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FindPreset looks up a preset by exact name, falling back to the best fuzzy
// match, so "hd" finds "heading" when nothing closer exists.
func FindPreset(appCfg *AppConfig, query string) (string, *Preset, error) {
	if p, ok := appCfg.Presets[query]; ok {
		return query, p, nil
	}

	names := appCfg.PresetNames()
	matches := fuzzy.Find(query, names)
	if query == "" || len(matches) == 0 {
		return "", nil, fmt.Errorf("%w: %q (available: %v)", ErrPresetNotFound, query, names)
	}
	name := names[matches[0].Index]
	return name, appCfg.Presets[name], nil
}

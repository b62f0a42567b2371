package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dkoosis/fluid/internal/store"
	"github.com/dkoosis/fluid/pkg/clamp"
)

// Resolution sources recorded on ResolvedConfig.
const (
	SourceCLI     = "cli"
	SourceEnv     = "env"
	SourceFile    = "file"
	SourceDefault = "default"
)

// CliFlags holds the values of command-line flags.
type CliFlags struct {
	ThemeName    string
	Format       string
	Unit         string
	StoreBackend string
	StorePath    string
	NoColor      bool
	Debug        bool

	// Flags to track if they were explicitly set by the user
	NoColorSet bool
	DebugSet   bool
}

// ResolvedConfig holds the final configuration after applying all priority rules.
type ResolvedConfig struct {
	Theme    string
	Format   string
	Unit     clamp.UnitMode
	NoColor  bool
	Debug    bool
	Store    StoreConfig
	Defaults Sizes

	// Resolution metadata (for --debug)
	ThemeSource   string
	FormatSource  string
	UnitSource    string
	NoColorSource string
	StoreSource   string
}

var validFormats = map[string]bool{
	"auto":     true,
	"terminal": true,
	"plain":    true,
	"json":     true,
}

// ResolveConfig resolves configuration from all sources with explicit priority order:
// CLI flags, then environment, then appCfg (file or defaults).
func ResolveConfig(cliFlags CliFlags, appCfg *AppConfig) (*ResolvedConfig, error) {
	if appCfg == nil {
		appCfg = Defaults()
	}
	base := SourceFile
	if appCfg.Path == "" {
		base = SourceDefault
	}

	resolved := &ResolvedConfig{
		Debug:    appCfg.Debug,
		Defaults: appCfg.Defaults.Over(builtinSizes()),
	}

	resolved.Theme, resolved.ThemeSource = resolveString(cliFlags.ThemeName, []string{"FLUID_THEME"}, appCfg.Theme, base, DefaultTheme)
	resolved.Format, resolved.FormatSource = resolveString(cliFlags.Format, []string{"FLUID_FORMAT"}, appCfg.Format, base, DefaultFormat)

	unitName, unitSource := resolveString(cliFlags.Unit, []string{"FLUID_UNIT"}, appCfg.Unit, base, DefaultUnit)
	unit, err := clamp.ParseUnitMode(unitName)
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	resolved.Unit, resolved.UnitSource = unit, unitSource

	backend, storeSource := resolveString(cliFlags.StoreBackend, []string{"FLUID_STORE"}, appCfg.Store.Backend, base, store.BackendYAML)
	resolved.Store = StoreConfig{Backend: backend, Path: appCfg.Store.Path}
	resolved.StoreSource = storeSource
	if cliFlags.StorePath != "" {
		resolved.Store.Path = cliFlags.StorePath
	}

	// Resolve NoColor with priority: CLI > ENV > file > default
	resolved.NoColor, resolved.NoColorSource = appCfg.NoColor, base
	if cliFlags.NoColorSet {
		resolved.NoColor, resolved.NoColorSource = cliFlags.NoColor, SourceCLI
	} else if env := getEnvBool("FLUID_NO_COLOR"); env != nil {
		resolved.NoColor, resolved.NoColorSource = *env, SourceEnv
	} else if os.Getenv("NO_COLOR") != "" {
		// no-color.org: any non-empty value disables color
		resolved.NoColor, resolved.NoColorSource = true, SourceEnv
	}

	// Resolve Debug with priority: CLI > ENV > file > default
	if cliFlags.DebugSet {
		resolved.Debug = cliFlags.Debug
	} else if os.Getenv("FLUID_DEBUG") != "" {
		resolved.Debug = true
	}

	if err := validateResolvedConfig(resolved); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return resolved, nil
}

// resolveString picks the first non-empty value of cli, env keys, file and fallback.
func resolveString(cli string, envKeys []string, file, fileSource, fallback string) (string, string) {
	if cli != "" {
		return cli, SourceCLI
	}
	for _, key := range envKeys {
		if v := os.Getenv(key); v != "" {
			return v, SourceEnv
		}
	}
	if file != "" {
		return file, fileSource
	}
	return fallback, SourceDefault
}

// getEnvBool reads a boolean from environment variables, trying multiple keys.
// Returns nil if none are set, or a pointer to the boolean value.
func getEnvBool(keys ...string) *bool {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				return &b
			}
		}
	}
	return nil
}

// validateResolvedConfig validates the resolved configuration and returns errors for invalid states.
func validateResolvedConfig(cfg *ResolvedConfig) error {
	if !validFormats[cfg.Format] {
		return fmt.Errorf("invalid format %q (must be: auto, terminal, plain, json)", cfg.Format)
	}
	switch cfg.Store.Backend {
	case store.BackendYAML, store.BackendSQLite, store.BackendMemory:
	default:
		return fmt.Errorf("invalid store backend %q (must be: yaml, sqlite, memory)", cfg.Store.Backend)
	}
	return nil
}

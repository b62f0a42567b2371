// Package config handles configuration loading and merging for fluid.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--theme, --format, --unit, --no-color, --store, --debug)
//  2. Environment variables (FLUID_THEME, FLUID_FORMAT, FLUID_UNIT, FLUID_NO_COLOR, NO_COLOR, FLUID_STORE, FLUID_DEBUG)
//  3. YAML config file (.fluid.yaml in local directory or ~/.config/fluid/.fluid.yaml)
//  4. Hardcoded defaults
//
// When a higher-priority source sets a value, it overrides any lower-priority values.
//
// # Key Configuration Options
//
//   - Defaults: the sizes and viewport widths used when no flag or preset supplies them
//   - Presets: named size ranges selectable with --preset (fuzzy matched)
//   - Unit: px or rem output
//   - Store: where the interactive form keeps last-used values (yaml or sqlite)
//
// # Example
//
//	theme: orca
//	unit: rem
//	defaults:
//	  min_size: 16
//	  max_size: 20
//	  min_viewport: 375
//	  max_viewport: 1440
//	store:
//	  backend: sqlite
//	presets:
//	  h1:
//	    min_size: 32
//	    max_size: 56
package config

// fluid builds CSS clamp() expressions for fluid sizing.
//
// Usage:
//
//	fluid --min-size 16 --max-size 24 --min-viewport 400 --max-viewport 1280
//	fluid --preset heading --rem --copy
//	fluid -i
//	fluid inspect 'clamp(1rem,0.909vw+0.773rem,1.5rem)'
//
// With no size flags on an interactive terminal, fluid opens a form that
// recomputes the expression as you type and copies it on enter.
//
// Output modes (auto-detected):
//
//	terminal  styled output with the derived line (default when TTY)
//	plain     the expression and a newline (default when piped)
//	json      structured JSON for automation
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"golang.org/x/term"

	"github.com/dkoosis/fluid/internal/config"
	"github.com/dkoosis/fluid/internal/logging"
	"github.com/dkoosis/fluid/internal/store"
	"github.com/dkoosis/fluid/internal/version"
	"github.com/dkoosis/fluid/pkg/clamp"
	"github.com/dkoosis/fluid/pkg/form"
	"github.com/dkoosis/fluid/pkg/render"
)

// availability is implemented by clipboards that can tell up front whether
// a write will work.
type availability interface {
	Available() bool
}

// newClipboard is swapped in tests.
var newClipboard = func() form.Clipboard { return form.SystemClipboard{} }

var sizeFlags = []string{"min-size", "max-size", "min-viewport", "max-viewport"}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	// Check for subcommands before flag parsing
	if len(args) > 0 && args[0] == "inspect" {
		return runInspect(args[1:], stdin, stdout, stderr)
	}

	fs := flag.NewFlagSet("fluid", flag.ContinueOnError)
	fs.SetOutput(stderr)
	minSize := fs.String("min-size", "", "Size at the minimum viewport, in px")
	maxSize := fs.String("max-size", "", "Size at the maximum viewport, in px")
	minViewport := fs.String("min-viewport", "", "Viewport width where scaling starts, in px")
	maxViewport := fs.String("max-viewport", "", "Viewport width where scaling stops, in px")
	unitFlag := fs.String("unit", "", "Output unit: px or rem")
	remFlag := fs.Bool("rem", false, "Shorthand for --unit rem")
	presetFlag := fs.String("preset", "", "Named size preset from the config file (fuzzy matched)")
	copyFlag := fs.Bool("copy", false, "Copy the expression to the clipboard")
	var interactive bool
	fs.BoolVar(&interactive, "i", false, "Open the interactive form")
	fs.BoolVar(&interactive, "interactive", false, "Open the interactive form")
	noSave := fs.Bool("no-save", false, "Do not remember form values")
	common := addCommonFlags(fs)
	storeFlag := fs.String("store", "", "Form value store: yaml, sqlite, memory")
	storePath := fs.String("store-path", "", "Path of the form value store")
	versionFlag := fs.Bool("version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "fluid: unexpected argument %q (did you mean 'fluid inspect'?)\n", fs.Arg(0))
		return 2
	}
	if *versionFlag {
		fmt.Fprintln(stdout, version.String())
		return 0
	}

	set := visited(fs)
	cli := common.cliFlags(set)
	cli.Unit = *unitFlag
	if cli.Unit == "" && *remFlag {
		cli.Unit = "rem"
	}
	cli.StoreBackend = *storeFlag
	cli.StorePath = *storePath

	appCfg, resolved, logger, code := resolve(cli, stderr)
	if code >= 0 {
		return code
	}

	layers := overrides{
		flags: form.Values{
			MinSize:      *minSize,
			MaxSize:      *maxSize,
			MinViewport:  *minViewport,
			MaxViewport:  *maxViewport,
			RootRelative: resolved.Unit == clamp.RootRelative,
		},
		set: set,
	}
	if *presetFlag != "" {
		name, preset, err := config.FindPreset(appCfg, *presetFlag)
		if err != nil {
			fmt.Fprintf(stderr, "fluid: %v\n", err)
			return 2
		}
		logger.Debug("using preset", "query", *presetFlag, "preset", name)
		layers.preset = preset
		if preset.Unit != "" {
			unit, err := clamp.ParseUnitMode(preset.Unit)
			if err != nil {
				fmt.Fprintf(stderr, "fluid: preset %q: %v\n", name, err)
				return 2
			}
			layers.presetUnit = &unit
		}
	}

	// Config defaults sit below any remembered form values.
	base := valuesFrom(resolved.Defaults, resolved.Unit)

	anySize := *presetFlag != ""
	for _, name := range sizeFlags {
		anySize = anySize || set[name]
	}
	if interactive || (!anySize && resolved.Format == "auto" && isTTYReader(stdin) && isTTYWriter(stdout)) {
		return runForm(base, layers, resolved, *noSave, stdin, stdout, stderr, logger)
	}

	values := layers.apply(base)
	result := render.NewResult(values.Spec())
	logger.Debug("computed expression", "expression", result.Expression, "slope", result.Line.Slope)

	if *copyFlag {
		clip := newClipboard()
		if a, ok := clip.(availability); ok && !a.Available() {
			fmt.Fprintf(stderr, "fluid: copy to clipboard: no clipboard utility found (install xclip, xsel or wl-clipboard)\n")
			return 1
		}
		if err := clip.WriteAll(result.Expression); err != nil {
			fmt.Fprintf(stderr, "fluid: copy to clipboard: %v\n", err)
			return 1
		}
		logger.Debug("copied expression to clipboard")
	}

	fmt.Fprint(stdout, selectRenderer(resolved, stdout).Render(result))
	return 0
}

// commonFlags are shared by the default command and inspect.
type commonFlags struct {
	format  *string
	theme   *string
	noColor *bool
	debug   *bool
}

func addCommonFlags(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		format:  fs.String("format", "", "Output format: auto, terminal, plain, json"),
		theme:   fs.String("theme", "", "Theme: default, orca, mono"),
		noColor: fs.Bool("no-color", false, "Disable color"),
		debug:   fs.Bool("debug", false, "Log configuration resolution to stderr"),
	}
}

func (c commonFlags) cliFlags(set map[string]bool) config.CliFlags {
	return config.CliFlags{
		ThemeName:  *c.theme,
		Format:     *c.format,
		NoColor:    *c.noColor,
		Debug:      *c.debug,
		NoColorSet: set["no-color"],
		DebugSet:   set["debug"],
	}
}

// resolve loads the config file and applies flags and environment.
// Returns code -1 on success.
func resolve(cli config.CliFlags, stderr io.Writer) (*config.AppConfig, *config.ResolvedConfig, *slog.Logger, int) {
	bootstrap := logging.New(stderr, cli.Debug || os.Getenv("FLUID_DEBUG") != "")
	appCfg := config.LoadConfig(bootstrap)

	resolved, err := config.ResolveConfig(cli, appCfg)
	if err != nil {
		fmt.Fprintf(stderr, "fluid: %v\n", err)
		return nil, nil, nil, 2
	}

	logger := logging.New(stderr, resolved.Debug)
	logger.Debug("resolved config",
		"file", appCfg.Path,
		"theme", resolved.Theme, "theme_source", resolved.ThemeSource,
		"format", resolved.Format, "format_source", resolved.FormatSource,
		"unit", resolved.Unit, "unit_source", resolved.UnitSource,
		"no_color", resolved.NoColor, "no_color_source", resolved.NoColorSource,
		"store", resolved.Store.Backend, "store_source", resolved.StoreSource,
	)
	return appCfg, resolved, logger, -1
}

// runForm opens the interactive form. Remembered values replace the config
// defaults; the preset and explicit flags still win over them.
func runForm(values form.Values, layers overrides, resolved *config.ResolvedConfig, noSave bool, stdin io.Reader, stdout, stderr io.Writer, logger *slog.Logger) int {
	st, err := store.Open(resolved.Store.Backend, resolved.Store.Path, store.DefaultScope)
	if err != nil {
		logger.Warn("form values will not be remembered", "error", err)
		st = nil
	} else {
		defer func() {
			if err := st.Close(); err != nil {
				logger.Warn("failed to close store", "error", err)
			}
		}()
		if loaded, err := form.LoadValues(st, values); err != nil {
			logger.Warn("failed to load saved values", "error", err)
		} else {
			values = loaded
		}
	}
	values = layers.apply(values)

	var saveTo store.Store
	if !noSave && st != nil {
		saveTo = st
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	outcome, err := form.Run(ctx, form.Options{
		Values:    values,
		Store:     saveTo,
		Clipboard: newClipboard(),
		Theme:     selectTheme(resolved),
		Input:     stdin,
		Output:    stdout,
		Logger:    logger,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 1
		}
		fmt.Fprintf(stderr, "fluid: %v\n", err)
		return 1
	}
	if outcome.Copied {
		fmt.Fprintln(stdout, outcome.Expression)
	}
	return 0
}

func runInspect(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fluid inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	common := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	// Unquoted expressions arrive split on spaces.
	source := strings.Join(fs.Args(), " ")
	if source == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "fluid inspect: reading stdin: %v\n", err)
			return 1
		}
		source = strings.TrimSpace(string(data))
	}
	if source == "" {
		fmt.Fprintf(stderr, "fluid inspect: no expression given\n")
		return 2
	}

	_, resolved, logger, code := resolve(common.cliFlags(visited(fs)), stderr)
	if code >= 0 {
		return code
	}

	expr, err := clamp.ParseExpression(source)
	if err != nil {
		fmt.Fprintf(stderr, "fluid inspect: %v\n", err)
		return 2
	}
	logger.Debug("parsed expression", "source", source, "unit", expr.Unit)

	fmt.Fprint(stdout, selectRenderer(resolved, stdout).Inspect(render.NewInspection(source, expr)))
	return 0
}

func visited(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// valuesFrom renders resolved numeric sizes as form text.
func valuesFrom(sizes config.Sizes, unit clamp.UnitMode) form.Values {
	minSize, maxSize, minViewport, maxViewport := sizes.Values()
	return form.Values{
		MinSize:      clamp.FormatNumber(minSize),
		MaxSize:      clamp.FormatNumber(maxSize),
		MinViewport:  clamp.FormatNumber(minViewport),
		MaxViewport:  clamp.FormatNumber(maxViewport),
		RootRelative: unit == clamp.RootRelative,
	}
}

// overrides are the layers above the config defaults and remembered form
// values: the preset first, then explicitly set flags.
type overrides struct {
	preset     *config.Preset
	presetUnit *clamp.UnitMode
	flags      form.Values
	set        map[string]bool
}

func (o overrides) apply(v form.Values) form.Values {
	if p := o.preset; p != nil {
		setIf(&v.MinSize, p.MinSize)
		setIf(&v.MaxSize, p.MaxSize)
		setIf(&v.MinViewport, p.MinViewport)
		setIf(&v.MaxViewport, p.MaxViewport)
	}
	if o.presetUnit != nil {
		v.RootRelative = *o.presetUnit == clamp.RootRelative
	}

	if o.set["min-size"] {
		v.MinSize = o.flags.MinSize
	}
	if o.set["max-size"] {
		v.MaxSize = o.flags.MaxSize
	}
	if o.set["min-viewport"] {
		v.MinViewport = o.flags.MinViewport
	}
	if o.set["max-viewport"] {
		v.MaxViewport = o.flags.MaxViewport
	}
	if o.set["unit"] || o.set["rem"] {
		v.RootRelative = o.flags.RootRelative
	}
	return v
}

func setIf(dst *string, v *float64) {
	if v != nil {
		*dst = clamp.FormatNumber(*v)
	}
}

func selectTheme(resolved *config.ResolvedConfig) render.Theme {
	if resolved.NoColor {
		return render.MonoTheme()
	}
	return render.ThemeByName(resolved.Theme)
}

func selectRenderer(resolved *config.ResolvedConfig, w io.Writer) render.Renderer {
	width, _ := termSize(w)
	return render.ByName(resolveFormat(resolved.Format, w), selectTheme(resolved), width)
}

func resolveFormat(format string, w io.Writer) string {
	if format != "auto" {
		return format
	}
	// Auto-detect: TTY = terminal, piped = plain
	if isTTYWriter(w) {
		return "terminal"
	}
	return "plain"
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// isTTYReader reports whether r is a terminal.
func isTTYReader(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termSize returns the terminal dimensions for w, defaulting to 80x24.
func termSize(w io.Writer) (width, height int) {
	width, height = 80, 24
	if f, ok := w.(*os.File); ok {
		if tw, th, err := term.GetSize(int(f.Fd())); err == nil {
			if tw > 0 {
				width = tw
			}
			if th > 0 {
				height = th
			}
		}
	}
	return width, height
}

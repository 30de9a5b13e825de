package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"

	"github.com/mcncl/jty/internal/config"
	"github.com/mcncl/jty/internal/converter"
	"github.com/mcncl/jty/internal/errors"
	"github.com/mcncl/jty/internal/format"
	"github.com/mcncl/jty/internal/writer"
)

// CLI defines the command-line interface
var CLI struct {
	File string `arg:"" help:"Path to the JSON, TOML or YAML file to convert."`

	JSON bool `help:"Convert to JSON." xor:"format" required:"" name:"json"`
	TOML bool `help:"Convert to TOML." xor:"format" required:"" name:"toml"`
	YAML bool `help:"Convert to YAML." xor:"format" required:"" name:"yaml"`

	Config  string  `help:"Path to a config file. Defaults to the nearest .jty.yml." short:"c" type:"path"`
	KeyCase *string `help:"Rename mapping keys: none, snake, screaming_snake, camel, lower_camel or kebab." short:"k"`
	Indent  *int    `help:"Indent width for the output; 0 writes compact JSON." short:"n"`
	Debug   bool    `help:"Enable debug logging." short:"d"`
	Quiet   bool    `help:"Do not report successful conversions." short:"q"`

	Version kong.VersionFlag `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Fs     afero.Fs
	Stderr io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

var (
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981"))

	dimStyle = lipgloss.NewStyle().
			Faint(true)
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("jty"),
		kong.Description("Convert a JSON, TOML or YAML file into one of the other two formats"),
		kong.UsageOnError(),
		kong.Vars{"version": "jty version " + Version},
	)

	_, err := parser.Parse(os.Args[1:])
	// prints the usage and exits 1
	parser.FatalIfErrorf(err)

	fs := afero.NewOsFs()
	cfg, err := loadConfig(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errorStyle.Render("✗ Error: "+err.Error()))
		os.Exit(1)
	}

	err = run(&Context{
		Debug:  cfg.Dev.Debug,
		Config: cfg,
		Fs:     fs,
		Stderr: os.Stderr,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errorStyle.Render("✗ "+errors.UserFriendlyError(err)))
		os.Exit(1)
	}
}

// loadConfig resolves the config file and merges the CLI flags over it
func loadConfig(fs afero.Fs) (*config.Config, error) {
	configPath := CLI.Config
	if configPath == "" {
		if wd, err := os.Getwd(); err == nil {
			configPath = config.FindConfigFile(fs, wd)
		}
	}

	return config.LoadConfigWithCLI(fs, configPath, config.Overrides{
		Indent:  CLI.Indent,
		KeyCase: CLI.KeyCase,
		Debug:   CLI.Debug,
	})
}

// outputFormat returns the format selected by the --json/--toml/--yaml group
func outputFormat() (format.Format, error) {
	switch {
	case CLI.JSON:
		return format.JSON, nil
	case CLI.TOML:
		return format.TOML, nil
	case CLI.YAML:
		return format.YAML, nil
	default:
		return 0, errors.NewUnsupportedOutputFormat("")
	}
}

// run executes the main program logic
func run(ctx *Context) error {
	cfg := ctx.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if ctx.Stderr == nil {
		ctx.Stderr = os.Stderr
	}

	output, err := outputFormat()
	if err != nil {
		return err
	}

	debugf(ctx, "converting %s to %s", CLI.File, output)
	if cfg.Keys.Case != "" {
		debugf(ctx, "renaming keys to %s case", cfg.Keys.Case)
	}

	conv := converter.NewConverter(ctx.Fs, cfg.ConverterOptions())
	if err := conv.Convert(CLI.File, output); err != nil {
		if typ, ok := errors.TypeOf(err); ok {
			debugf(ctx, "conversion failed [%s]: %v", typ, err)
		} else {
			debugf(ctx, "conversion failed: %v", err)
		}
		return err
	}

	if !CLI.Quiet {
		msg := fmt.Sprintf("Converted %s -> %s", CLI.File, writer.OutputPath(CLI.File, output))
		fmt.Fprintf(ctx.Stderr, "%s\n", successStyle.Render(msg))
	}
	return nil
}

func debugf(ctx *Context, msg string, args ...any) {
	if !ctx.Debug {
		return
	}
	fmt.Fprintf(ctx.Stderr, "%s\n", dimStyle.Render("debug: "+fmt.Sprintf(msg, args...)))
}

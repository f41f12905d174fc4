package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/modernice/flatten"
	"golang.org/x/exp/slog"
)

var (
	createdColor = color.New(color.FgGreen)
	failedColor  = color.New(color.FgRed)
)

// CLI is the command-line interface of flatten.
type CLI struct {
	Root       string   `arg:"" optional:"" default:"." help:"Directory to search for source files."`
	Out        string   `name:"out" short:"o" default:"text_files" env:"FLATTEN_OUT" help:"Output directory, relative to the root."`
	Suffix     string   `name:"suffix" short:"s" default:".svelte" env:"FLATTEN_SUFFIX" help:"Convert files whose names end with this suffix."`
	Ext        string   `name:"ext" default:".txt" env:"FLATTEN_EXT" help:"Extension that replaces the suffix in converted file names."`
	Include    []string `name:"include" short:"i" env:"FLATTEN_INCLUDE" help:"Glob pattern(s) to include files."`
	Exclude    []string `name:"exclude" short:"e" env:"FLATTEN_EXCLUDE" help:"Glob pattern(s) to exclude files."`
	SkipHidden bool     `name:"skip-hidden" env:"FLATTEN_SKIP_HIDDEN" help:"Skip hidden directories and dotfiles."`
	DryRun     bool     `name:"dry" default:"false" env:"FLATTEN_DRY_RUN" help:"Print the files that would be created without writing them."`
	NoColor    bool     `name:"no-color" env:"NO_COLOR" help:"Disable colored output."`
	Verbose    bool     `name:"verbose" short:"v" env:"FLATTEN_VERBOSE" help:"Enable verbose logging."`

	Stdout io.Writer `kong:"-"`
	Stderr io.Writer `kong:"-"`
}

// Run converts the files below the root directory and prints one line per
// file. Failing files do not make the command fail; an error is only returned
// if the conversion could not be performed at all.
func (cfg *CLI) Run(kctx *kong.Context) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	return cfg.run(ctx)
}

func (cfg *CLI) run(ctx context.Context) error {
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	if cfg.NoColor {
		color.NoColor = true
	}

	if info, err := os.Stat(cfg.Root); err != nil {
		return fmt.Errorf("stat root: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("root %s is not a directory", cfg.Root)
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logHandler := slog.HandlerOptions{Level: level}.NewTextHandler(cfg.Stderr)

	c := flatten.New(
		cfg.Root,
		flatten.WithLogger(logHandler),
		flatten.OutputDir(cfg.Out),
		flatten.MatchSuffix(cfg.Suffix),
		flatten.OutputExtension(cfg.Ext),
		flatten.Include(cfg.Include...),
		flatten.Exclude(cfg.Exclude...),
		flatten.SkipHidden(cfg.SkipHidden),
	)

	run := c.Run
	if cfg.DryRun {
		run = c.DryRun
	}

	report, err := run(ctx)
	if report != nil {
		printReport(cfg.Stdout, cfg.Root, report)
	}
	if err != nil {
		return fmt.Errorf("convert files: %w", err)
	}

	return nil
}

// Options returns the kong options of the flatten command.
func Options() []kong.Option {
	return []kong.Option{
		kong.Name("flatten"),
		kong.Description(heredoc.Doc(`
			Copy source files into a single flat directory.

			Every file below the root whose name ends with the suffix is copied
			into the output directory. The copy is named after the path of the
			source: components/Button.svelte becomes components_Button.txt.
		`)),
		kong.UsageOnError(),
	}
}

// New parses the command-line arguments and returns the resulting
// *kong.Context.
func New() *kong.Context {
	var cfg CLI
	return kong.Parse(&cfg, Options()...)
}

func printReport(w io.Writer, root string, report *flatten.Report) {
	for _, res := range report.Results {
		switch {
		case res.Failed():
			failedColor.Fprintf(w, "Error processing %s: %v\n", filepath.Join(root, filepath.FromSlash(res.Source)), res.Err)
		case report.DryRun:
			createdColor.Fprintf(w, "Would create %s\n", filepath.Join(root, filepath.FromSlash(res.Dest)))
		default:
			createdColor.Fprintf(w, "Created %s\n", filepath.Join(root, filepath.FromSlash(res.Dest)))
		}
	}
}

package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gradslides/pkg/buildinfo"
	"github.com/matzehuels/gradslides/pkg/config"
	"github.com/matzehuels/gradslides/pkg/deck"
	"github.com/matzehuels/gradslides/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "gradslides"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is the configuration file, set by --config.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:     newLogger(w, level),
		ConfigPath: config.DefaultFile,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Running the root command without a subcommand generates the decks.
func (c *CLI) RootCommand() *cobra.Command {
	gen := c.generateCommand()

	root := &cobra.Command{
		Use:   appName,
		Short: "gradslides builds graduation ceremony slide decks",
		Long: `gradslides turns graduate tables into slide decks for the ceremony
projector: one slide per graduate with their photo, name, programme and
advisors on the background for their honors tier.

Running gradslides without a command is the same as 'gradslides generate'.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          gen.RunE,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.ConfigPath, "config", "c", config.DefaultFile, "configuration file")
	root.Flags().AddFlagSet(gen.Flags())

	// Register all subcommands
	root.AddCommand(gen)
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.matchCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a deck runner that reports progress on the console.
func (c *CLI) newRunner() *deck.Runner {
	return deck.NewRunner(c.Logger, observability.Multi{newConsoleHooks(c.Logger), observability.Pipeline()})
}

// =============================================================================
// Options Helpers
// =============================================================================

// runFlags are the overrides shared by the commands that generate decks.
type runFlags struct {
	test      bool
	output    string
	formats   string
	jobs      int
	structure string
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.test, "test", "t", false, "render only the sample slide to check the layout")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output directory (overrides output_dir)")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): pptx, json, svg, png, pdf (comma-separated)")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 0, "number of decks rendered in parallel")
	cmd.Flags().StringVar(&f.structure, "structure", "", "deck grouping: nested or flat")
}

// apply overlays the flags that were set onto cfg.
func (f *runFlags) apply(cfg *config.Config) error {
	if f.test {
		cfg.TestMode = true
	}
	if f.output != "" {
		cfg.OutputDir = f.output
	}
	if f.formats != "" {
		formats, err := deck.ParseFormats(f.formats)
		if err != nil {
			return err
		}
		cfg.Formats = formats
	}
	if f.jobs > 0 {
		cfg.Jobs = f.jobs
	}
	if f.structure != "" {
		cfg.Structure = f.structure
	}
	return cfg.Validate()
}

// loadConfig reads the configuration file and reports its warnings.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, warnings, err := config.Load(c.ConfigPath)
	for _, w := range warnings {
		c.Logger.Warn(w.Message, "file", w.Subject)
	}
	return cfg, err
}

// loadOptions reads the configuration, applies flags and converts the
// result into pipeline options.
func (c *CLI) loadOptions(flags *runFlags) (deck.Options, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return deck.Options{}, err
	}
	if flags != nil {
		if err := flags.apply(cfg); err != nil {
			return deck.Options{}, err
		}
	}
	return cfg.Options()
}

// commandContext returns the command's context, or Background outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

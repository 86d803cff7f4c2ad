package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gradslides/pkg/config"
	"github.com/matzehuels/gradslides/pkg/deck"
	"github.com/matzehuels/gradslides/pkg/errors"
)

const defaultDebounce = 300 * time.Millisecond

// watchCommand creates the watch command for iterating on the layout.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		flags    runFlags
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render the sample slide whenever the layout changes",
		Long: `Re-render the sample slide whenever the layout changes.

watch renders the test slide, then watches the configuration file and the
background templates. Each save triggers a new render, so the layout can be
tuned with the PNG preview open next to the editor. Templates added to the
configuration while watching are picked up after a restart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.test = true
			if flags.formats == "" {
				flags.formats = deck.FormatPNG
			}
			return c.runWatch(commandContext(cmd), &flags, debounce)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output directory (overrides output_dir)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s), png when empty")
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "quiet period before re-rendering")

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, flags *runFlags, debounce time.Duration) error {
	render := func() {
		opts, err := c.loadOptions(flags)
		if err != nil {
			printError("%s", errors.UserMessage(err))
			return
		}
		if _, err := c.newRunner().Run(ctx, opts); err != nil && ctx.Err() == nil {
			printError("%s", errors.UserMessage(err))
		}
	}
	render()

	cfg, err := c.loadConfig()
	if err != nil {
		d := config.Default()
		cfg = &d
	}
	files := watchedFiles(c.ConfigPath, cfg)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "start watcher")
	}
	defer w.Close()

	for dir := range watchedDirs(files) {
		if err := w.Add(dir); err != nil {
			c.Logger.Warn("cannot watch directory", "dir", dir, "err", err)
		}
	}
	printInfo("Watching %d files, press Ctrl+C to stop", len(files))

	return watchLoop(ctx, w, files, debounce, c.Logger, render)
}

// watchedFiles returns the absolute paths whose changes trigger a render.
func watchedFiles(configPath string, cfg *config.Config) map[string]bool {
	files := make(map[string]bool)
	for _, p := range []string{configPath, cfg.Templates.None, cfg.Templates.Cumlaude, cfg.Templates.Summa} {
		if p == "" {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			files[abs] = true
		}
	}
	return files
}

// watchedDirs returns the parent directories of files. Directories are
// watched instead of files because editors replace files on save.
func watchedDirs(files map[string]bool) map[string]bool {
	dirs := make(map[string]bool, len(files))
	for f := range files {
		dirs[filepath.Dir(f)] = true
	}
	return dirs
}

// watchLoop calls fn once events for files have been quiet for debounce.
// It returns when ctx is done or the watcher is closed.
func watchLoop(ctx context.Context, w *fsnotify.Watcher, files map[string]bool, debounce time.Duration, logger *log.Logger, fn func()) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(ev, files) {
				continue
			}
			logger.Debug("change", "file", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)

		case <-fire:
			fire = nil
			fn()
		}
	}
}

func relevant(ev fsnotify.Event, files map[string]bool) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return files[abs]
}

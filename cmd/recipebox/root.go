package main

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hammamikhairi/recipebox/internal/config"
	"github.com/hammamikhairi/recipebox/internal/logger"
	"github.com/hammamikhairi/recipebox/internal/storage"
	"github.com/hammamikhairi/recipebox/internal/store"
	"github.com/hammamikhairi/recipebox/internal/views"
)

// deps holds everything a command needs once config is resolved.
type deps struct {
	cfg     *config.Config
	log     *logger.Logger
	adapter storage.Adapter
	store   *store.Store
	views   *views.Engine
	closers []func() error
}

func newRootCmd() *cobra.Command {
	v := config.New()
	d := &deps{}
	var configFile string

	root := &cobra.Command{
		Use:           "recipebox",
		Short:         "Manage a personal recipe collection from the terminal",
		Long:          "RecipeBox keeps your recipes in a local file or SQLite database.\nRun without a subcommand for the interactive prompt.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return d.open(cmd.Context(), cmd, v, configFile)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return d.close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd.Context(), d)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default ./recipebox.yaml or ~/.config/recipebox/recipebox.yaml)")
	flags.String("backend", "", "storage backend: file, sqlite or memory")
	flags.String("data-path", "", "snapshot file or database path")
	flags.String("locale", "", "collation locale for sorting, e.g. en, fr, sv")
	flags.String("log-level", "", "log level: off, normal or verbose")
	flags.String("log-file", "", `file to write logs to (use "stderr" to log to console)`)
	flags.String("share-base-url", "", "base URL for share links")
	flags.String("default-sort", "", "default sort key: name, category or favorite")
	flags.Bool("verbose", false, "enable verbose/debug logging")
	flags.Bool("quiet", false, "disable all logging")

	for key, flag := range map[string]string{
		config.KeyBackend:      "backend",
		config.KeyDataPath:     "data-path",
		config.KeyLocale:       "locale",
		config.KeyLogLevel:     "log-level",
		config.KeyLogFile:      "log-file",
		config.KeyShareBaseURL: "share-base-url",
		config.KeyDefaultSort:  "default-sort",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(
		newListCmd(d),
		newAddCmd(d),
		newDeleteCmd(d),
		newFavoriteCmd(d),
		newExportCmd(d),
		newImportCmd(d),
	)
	return root
}

func (d *deps) open(ctx context.Context, cmd *cobra.Command, v *viper.Viper, configFile string) error {
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return err
	}
	d.cfg = cfg

	level := cfg.Level()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = logger.LevelVerbose
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		level = logger.LevelOff
	}

	logOut := d.openLogOutput(cmd.ErrOrStderr(), cfg.LogFile)

	// Third-party packages that use the standard logger write to the same
	// place so they don't spam the terminal.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	d.log = logger.New(level, logOut)
	d.closers = append(d.closers, func() error {
		_ = d.log.Sync()
		return nil
	})

	adapter, err := storage.Open(ctx, cfg.StorageOptions(), d.log.Named("storage"))
	if err != nil {
		return fmt.Errorf("opening %s storage: %w", cfg.Backend, err)
	}
	d.adapter = adapter
	d.closers = append(d.closers, adapter.Close)

	d.store = store.New(ctx, adapter, d.log.Named("store"))
	d.views = views.NewEngine(views.NewSorter(cfg.Locale), d.log.Named("views"))
	d.log.Info("recipebox ready (backend=%s, path=%s)", cfg.Backend, cfg.DataPath)
	return nil
}

// openLogOutput sends logs to a file by default so the prompt stays clean.
func (d *deps) openLogOutput(stderr io.Writer, path string) io.Writer {
	if path == "" || path == "stderr" {
		return stderr
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		return stderr
	}
	d.closers = append(d.closers, f.Close)
	return f
}

func (d *deps) close() error {
	var first error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	d.closers = nil
	return first
}

package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"snapflow/internal/catalog"
	"snapflow/internal/clipboard"
	"snapflow/internal/config"
	"snapflow/internal/logging"
	"snapflow/internal/namegen"
	"snapflow/internal/services"
	"snapflow/internal/session"
	"snapflow/internal/tagger"
	"snapflow/internal/watcher"
)

const lockFileName = ".snapflow.lock"

func newRunCommand(ctx *commandContext) *cobra.Command {
	var catalogFlag string
	var watchFlag string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start an interactive capture session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if watchFlag != "" {
				expanded, err := config.ExpandPath(watchFlag)
				if err != nil {
					return services.Wrap(services.ErrConfiguration, "run", "watch dir", "", err)
				}
				cfg.Paths.WatchDir = expanded
			}
			if err := cfg.EnsureWatchDir(); err != nil {
				return services.Wrap(services.ErrConfiguration, "run", "watch dir", "", err)
			}

			catalogPath, err := ctx.resolveCatalogPath(catalogFlag)
			if err != nil {
				return err
			}

			if !isatty.IsTerminal(os.Stdout.Fd()) {
				color.NoColor = true
			}

			logger, err := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				Path:   cfg.LogFilePath(),
			})
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "run", "logging", "", err)
			}

			// One session per watch directory: a second operator racing the
			// same directory would break filename derivation.
			lock := flock.New(filepath.Join(cfg.Paths.WatchDir, lockFileName))
			locked, err := lock.TryLock()
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "run", "lock", "", err)
			}
			if !locked {
				return services.Wrap(services.ErrConfiguration, "run", "lock",
					fmt.Sprintf("another session is already watching %s", cfg.Paths.WatchDir), nil)
			}
			defer func() { _ = lock.Unlock() }()

			runCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			runCtx = services.WithSessionID(runCtx, uuid.NewString())

			cat, err := catalog.Load(catalogPath)
			if err != nil {
				if services.Fatal(err) {
					return err
				}
				return services.Wrap(services.ErrConfiguration, "run", "catalog", "", err)
			}

			out := cmd.OutOrStdout()
			stats := cat.Stats()
			fmt.Fprintln(out, "Starting photo session")
			fmt.Fprintf(out, "- watching for photos in %s\n", cfg.Paths.WatchDir)
			fmt.Fprintf(out, "- reading article data from %s\n", catalogPath)
			fmt.Fprintf(out, "- articles in catalog: %d\n", stats.Articles)
			fmt.Fprintf(out, "- article variations in catalog: %d\n", stats.Variations)

			controller := &session.Controller{
				Catalog:   cat,
				Generator: namegen.New(cfg.Capture.Extension, namegen.Layout(cfg.Capture.FilenameLayout)),
				Watch:     session.SystemWatch(watcher.New(logger)),
				Board:     clipboard.System(),
				Tagger:    tagger.NewCLI(tagger.WithBinary(cfg.Capture.ExiftoolBinary)),
				Prompter:  session.NewTerminalPrompter(cmd.InOrStdin(), out),
				Logger:    logger,
				WatchDir:  cfg.Paths.WatchDir,
				Out:       out,
			}

			err = controller.Run(runCtx)
			fmt.Fprintln(out, "\nEnd of photo session")
			return err
		},
	}

	cmd.Flags().StringVar(&catalogFlag, "catalog", "", "Catalog file with article data (.xlsx or .csv)")
	cmd.Flags().StringVar(&watchFlag, "watch", "", "Directory watched for new photos (default from config)")
	return cmd
}

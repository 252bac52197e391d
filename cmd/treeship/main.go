package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/treeship/internal/app"
	"github.com/bft-labs/treeship/internal/cliconfig"
	"github.com/bft-labs/treeship/internal/domain"
	"github.com/bft-labs/treeship/internal/transfer"
	"github.com/bft-labs/treeship/internal/walk"
)

const helpDescription = `
Mirror a very large directory tree to DESTHOST with rsync, split into
size-bounded batches so rsync never has to plan the whole tree at once.

Highlights:
  - Streams the source tree and flushes a batch every --run-size megabytes.
  - Retries a whole batch on rsync's transient exit status 12 (five attempts,
    90 second backoff); any other failure aborts the run immediately.
  - Baseline rsync options preserve symlinks, permissions, ownership, times
    and device/special files; extra options from RSYNC_OPTIONS are appended
    verbatim.
  - The destination mirrors the source hierarchy exactly under DESTHOST.
`

var longHelp = strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  treeship /data/archive backup@mirror:/srv/archive
  treeship --run-size 256 --exclude_pattern '\.tmp$' /data/archive mirror:/srv/archive
  RSYNC_OPTIONS="--bwlimit=20000" treeship /data/archive mirror:/srv/archive
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string
	var showMan bool

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "treeship [flags] SRCDIR DESTHOST",
		Short:   "Mirror a huge directory tree with rsync in size-bounded batches",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args: func(cmd *cobra.Command, args []string) error {
			if showMan {
				return nil
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if showMan {
				header := &doc.GenManHeader{
					Title:   "TREESHIP",
					Section: "1",
					Source:  "treeship " + getVersion(),
					Manual:  "User Commands",
				}
				return doc.GenMan(cmd, header, os.Stdout)
			}

			cfg.Source = args[0]
			cfg.Dest = args[1]

			// Load config file first (default $HOME/.treeship/config.toml), then apply flag overrides
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Apply environment variables (TREESHIP_*)
			// These override file config but are overridden by flags (checked via changed map)
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			if cfg.Verbose {
				log = log.Level(zerolog.DebugLevel)
			}
			log.Debug().Interface("config", cfg).Msg("configuration")

			filter, err := walk.NewExcludeFilter(cfg.ExcludePattern)
			if err != nil {
				return fmt.Errorf("exclude pattern: %w", err)
			}

			exec := transfer.NewExecutor(transfer.Options{
				Source:       cfg.Source,
				Dest:         cfg.Dest,
				RsyncPath:    cfg.RsyncPath,
				ExtraOptions: cfg.RsyncOptions,
				MaxAttempts:  cfg.MaxAttempts,
				RetryDelay:   cfg.RetryDelay,
			}, nil, nil, log)

			runner := &app.Runner{
				Root:      cfg.Source,
				Threshold: cfg.RunSizeBytes(),
				Filter:    filter,
				Transfer:  exec,
				Log:       log,
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runner.Run(ctx)
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.treeship/config.toml)")
	root.Flags().IntVar(&cfg.RunSizeMB, "run-size", cfg.RunSizeMB, "batch size threshold in megabytes")
	root.Flags().StringVar(&cfg.ExcludePattern, "exclude_pattern", cfg.ExcludePattern, "regexp; entries whose relative path matches are skipped")
	root.Flags().StringVar(&cfg.RsyncPath, "rsync-path", cfg.RsyncPath, "rsync binary to invoke")
	root.Flags().BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "echo enumerated paths and retry notices")
	root.Flags().BoolVar(&showMan, "man", false, "print the manual page and exit")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("treeship")
		var te *domain.TransferError
		if errors.As(err, &te) && te.ExitCode != 0 {
			os.Exit(te.ExitCode)
		}
		os.Exit(1)
	}
}

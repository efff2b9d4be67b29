package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/gridtrace/comtrade/internal/cliconfig"
	"github.com/gridtrace/comtrade/pkg/comtrade"
	logAdapter "github.com/gridtrace/comtrade/pkg/log"
)

const helpDescription = `
Inspect and convert COMTRADE oscillography recordings.

Highlights:
  - Reads 1991, 1999 and 2013 revision configurations, ASCII and binary data.
  - Handles combined .cff recordings as well as separate .cfg/.dat pairs.
  - Exports sample tables to CSV or XLSX; watch mode converts recordings as they arrive.
  - Configure via file, environment (COMTRADE_*), or flags.
`

var exampleUsage = strings.TrimSpace(`
  comtrade info fault.cff
  comtrade export --format xlsx fault.cfg
  comtrade watch --output ./csv ./recordings
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// newLogger returns the CLI logger at the level selected by --verbose.
func newLogger(verbose bool) zerolog.Logger {
	log := cliconfig.Logger()
	if !verbose {
		log = log.Level(zerolog.InfoLevel)
	}
	return log
}

// loadOptions converts the CLI configuration into library load options.
func loadOptions(cfg *cliconfig.Config, log zerolog.Logger) []comtrade.Option {
	opts := []comtrade.Option{
		comtrade.WithLogger(logAdapter.NewZerologAdapterWithLogger(log)),
	}
	if cfg.Encoding != "" {
		opts = append(opts, comtrade.WithEncoding(cfg.Encoding))
	}
	if cfg.Strict {
		opts = append(opts, comtrade.WithStrictRevision())
	}
	if cfg.Contiguous {
		opts = append(opts, comtrade.WithContiguousStorage())
	}
	return opts
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "comtrade",
		Short:   "Inspect and convert COMTRADE oscillography recordings",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.comtrade/config.toml), then apply flag overrides
			// Determine config path
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

			// Apply environment variables (COMTRADE_*)
			// These override file config but are overridden by flags (checked via changed map)
			cliconfig.ApplyEnvConfig(&cfg, changed)

			return cfg.Validate()
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.comtrade/config.toml)")
	root.PersistentFlags().StringVar(&cfg.Encoding, "encoding", cfg.Encoding, "IANA character set of the recording text (e.g. iso-8859-1)")
	root.PersistentFlags().BoolVar(&cfg.Strict, "strict", cfg.Strict, "reject configuration revision years the parser does not know")
	root.PersistentFlags().BoolVar(&cfg.Contiguous, "contiguous", cfg.Contiguous, "decode analog channels into one contiguous block")
	root.PersistentFlags().BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable debug logging")

	root.AddCommand(newInfoCommand(&cfg))
	root.AddCommand(newExportCommand(&cfg))
	root.AddCommand(newWatchCommand(&cfg))

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("comtrade")
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gridtrace/comtrade/internal/cliconfig"
	"github.com/gridtrace/comtrade/internal/watch"
	"github.com/gridtrace/comtrade/pkg/comtrade"
	logAdapter "github.com/gridtrace/comtrade/pkg/log"
)

func newWatchCommand(cfg *cliconfig.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <directory>",
		Short: "Watch a directory and export recordings as they arrive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cfg.Verbose)

			outDir := cfg.Output
			if outDir == "" {
				outDir = args[0]
			}
			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}

			handler := func(path string, rec *comtrade.Record, err error) {
				if err != nil {
					log.Error().Err(err).Str("path", path).Msg("failed to load recording")
					return
				}
				out := filepath.Join(outDir, outputName(filepath.Base(path), cfg.Format))
				if err := exportRecord(rec, out, cfg); err != nil {
					log.Error().Err(err).Str("path", path).Msg("failed to export recording")
					return
				}
				log.Info().Str("path", path).Str("output", out).Msg("exported recording")
			}

			w := watch.New(args[0], handler, watch.Config{
				Debounce:    cfg.Debounce,
				Logger:      logAdapter.NewZerologAdapterWithLogger(log),
				LoadOptions: loadOptions(cfg, log),
			})

			// Setup signal handling for graceful shutdown
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			if err := w.Start(ctx); err != nil {
				return err
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case <-sigCh:
				log.Info().Msg("received signal, stopping...")
			case <-ctx.Done():
			}

			return w.Close()
		},
	}

	cmd.Flags().StringVar(&cfg.Format, "format", cfg.Format, `output format: "csv" or "xlsx"`)
	cmd.Flags().StringVar(&cfg.Output, "output", cfg.Output, "output directory (default: the watched directory)")
	cmd.Flags().StringVar(&cfg.NaNLabel, "nan", cfg.NaNLabel, "cell text for missing samples")
	cmd.Flags().StringVar(&cfg.Delimiter, "delimiter", cfg.Delimiter, "CSV field delimiter")
	cmd.Flags().BoolVar(&cfg.BOM, "bom", cfg.BOM, "prepend a UTF-8 byte order mark to CSV output")
	cmd.Flags().DurationVar(&cfg.Debounce, "debounce", cfg.Debounce, "delay before loading after a file change")

	return cmd
}

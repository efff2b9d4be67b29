package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/gridtrace/comtrade/internal/cliconfig"
	"github.com/gridtrace/comtrade/internal/export"
	"github.com/gridtrace/comtrade/pkg/comtrade"
)

func newExportCommand(cfg *cliconfig.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <recording>",
		Short: "Export the sample table of a recording to CSV or XLSX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cfg.Verbose)

			rec, err := comtrade.Load(args[0], loadOptions(cfg, log)...)
			if err != nil {
				return err
			}

			out := cfg.Output
			if out == "" {
				out = outputName(args[0], cfg.Format)
			}
			if err := exportRecord(rec, out, cfg); err != nil {
				return err
			}

			log.Info().Str("input", args[0]).Str("output", out).
				Int("samples", rec.SampleCount()).Msg("exported recording")
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.Format, "format", cfg.Format, `output format: "csv" or "xlsx"`)
	cmd.Flags().StringVar(&cfg.Output, "output", cfg.Output, "output file (default: input name with the format extension)")
	cmd.Flags().StringVar(&cfg.NaNLabel, "nan", cfg.NaNLabel, "cell text for missing samples")
	cmd.Flags().StringVar(&cfg.Delimiter, "delimiter", cfg.Delimiter, "CSV field delimiter")
	cmd.Flags().BoolVar(&cfg.BOM, "bom", cfg.BOM, "prepend a UTF-8 byte order mark to CSV output")

	return cmd
}

// outputName derives the output file name from the input recording.
func outputName(input, format string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
}

// exportRecord writes the sample table of rec to path in the configured
// format.
func exportRecord(rec *comtrade.Record, path string, cfg *cliconfig.Config) error {
	if cfg.Format == cliconfig.FormatXLSX {
		w, err := export.NewXLSX(path, export.WithXLSXNaNLabel(cfg.NaNLabel))
		if err != nil {
			return fmt.Errorf("create workbook: %w", err)
		}
		return rec.Export(w)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	delim, _ := utf8.DecodeRuneInString(cfg.Delimiter)
	opts := []export.CSVOption{
		export.WithComma(delim),
		export.WithNaNLabel(cfg.NaNLabel),
	}
	if cfg.BOM {
		opts = append(opts, export.WithBOM())
	}

	if err := rec.Export(export.NewCSV(f, opts...)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

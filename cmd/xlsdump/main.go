// Package main provides the CLI entry point for xlsdump.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/ukaji3/xlsdump/internal/config"
	"github.com/ukaji3/xlsdump/pkg/xlsdump"
	"github.com/ukaji3/xlsdump/pkg/xlsdump/output"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	inputFile  string
	inputDir   string
	outputDir  string
	noHide     bool
	rowNumbers bool
	formulas   bool
	jsonOutput bool
	processAll bool
	configPath string
	verbose    bool
)

const longHelp = `xlsdump extracts every non-empty row from every worksheet of an Excel
workbook and writes them to a single CSV or JSON file.

Without -file, the newest workbook (.xlsx, .xls, .xlsm, .xlsb) in the input
directory is processed.

Output files are named "xlsdump_<workbook>_<timestamp>.<csv|json>", where the
timestamp is the workbook's modification time in ISO 8601 with colons replaced
by hyphens (e.g. xlsdump_data_2025-07-21T14-30-52-05-00.csv). An existing
file is never overwritten: "(1)", "(2)", ... is appended instead.

CSV output starts with a Worksheet column, then Row_Number (with -rownumbers),
then Column_1..Column_N. JSON output is an array of objects with the same keys;
null and empty values are left out.

With -formulas, formula cells are written as 'FORMULA: =<formula>' so the
output is never re-evaluated by spreadsheet software. Only .xlsx and .xlsm
workbooks store formula text; other formats fall back to calculated values.

Defaults can be set in a YAML file (-config or $XLSDUMP_CONFIG) and with
$XLSDUMP_INPUT, $XLSDUMP_OUTPUT, $XLSDUMP_FORMAT and $XLSDUMP_INCLUDE_HIDDEN.`

const examples = `  xlsdump                                   # newest workbook in . to CSV
  xlsdump -file data.xlsx -json             # specific file to JSON
  xlsdump -input ./source -output ./exports # source and output directories
  xlsdump -input /data -file report.xlsx -rownumbers -json
  xlsdump -file data.xlsx -output ./exports -no-hide -rownumbers -formulas -json
  xlsdump -all -input ./source              # every workbook in ./source`

func main() {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(normalizeArgs(os.Args[1:]))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "xlsdump",
		Short:         "Extract Excel worksheet data to CSV or JSON",
		Long:          longHelp,
		Example:       examples,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          run,
	}

	flags := rootCmd.Flags()
	flags.StringVar(&inputFile, "file", "", "Excel file to process (default: newest Excel file in input directory)")
	flags.StringVar(&inputDir, "input", "", "Input directory to search for Excel files (default: current directory)")
	flags.StringVar(&outputDir, "output", "", "Output directory for output file (default: current directory)")
	flags.BoolVar(&noHide, "no-hide", false, "Skip hidden worksheets (default: include all worksheets)")
	flags.BoolVar(&rowNumbers, "rownumbers", false, "Include Excel row numbers in output")
	flags.BoolVar(&formulas, "formulas", false, "Show formulas instead of calculated values (.xlsx/.xlsm only)")
	flags.BoolVar(&jsonOutput, "json", false, "Output to JSON format instead of CSV")
	flags.BoolVar(&processAll, "all", false, "Process every Excel file in the input directory")
	flags.StringVar(&configPath, "config", config.Path(), "YAML file with default settings")
	flags.BoolVar(&verbose, "verbose", false, "Log per-sheet details")

	return rootCmd
}

// normalizeArgs rewrites the single-dash long flags xlsdump documents
// (-file, -no-hide, -help, ...) into the double-dash form pflag parses.
func normalizeArgs(args []string) []string {
	long := map[string]bool{
		"file": true, "input": true, "output": true, "no-hide": true,
		"rownumbers": true, "formulas": true, "json": true, "all": true,
		"config": true, "verbose": true, "help": true, "version": true,
	}

	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		if strings.HasPrefix(arg, "-") && !strings.HasPrefix(arg, "--") {
			name := strings.TrimPrefix(arg, "-")
			if idx := strings.IndexByte(name, '='); idx >= 0 {
				name = name[:idx]
			}
			if long[name] {
				arg = "-" + arg
			}
		}
		out = append(out, arg)
	}
	return out
}

func newLogger(w io.Writer) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Prefix: "xlsdump",
		Level:  level,
	})
	return slog.New(handler)
}

func run(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr())

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if !flags.Changed("input") {
		inputDir = cfg.Input
	}
	if !flags.Changed("output") {
		outputDir = cfg.Output
	}

	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	if jsonOutput {
		format = output.FormatJSON
	}

	opts := xlsdump.ConvertOptions{
		Options: xlsdump.Options{
			IncludeHidden:     cfg.ShouldIncludeHidden() && !noHide,
			IncludeRowNumbers: rowNumbers || cfg.RowNumbers,
			IncludeFormulas:   formulas || cfg.Formulas,
			Extensions:        cfg.Extensions,
			Logger:            logger,
		},
		OutputDir: outputDir,
		Format:    format,
		Prefix:    cfg.Prefix,
	}

	if processAll {
		dir := inputDir
		if dir == "" {
			dir = "."
		}
		written, err := xlsdump.ProcessAll(dir, opts)
		if err != nil {
			return err
		}
		for _, p := range written {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	}

	path, err := resolveInput(inputFile, inputDir, cfg.Extensions, logger)
	if err != nil {
		return err
	}

	logger.Info("extracting data",
		"file", path,
		"include_hidden", opts.IncludeHidden,
		"row_numbers", opts.IncludeRowNumbers,
		"formulas", opts.IncludeFormulas,
		"format", strings.ToUpper(string(format)))

	dest, err := xlsdump.Convert(path, opts)
	if err != nil {
		return err
	}
	if dest != "" {
		fmt.Fprintln(cmd.OutOrStdout(), dest)
	}
	return nil
}

// resolveInput returns the workbook to process: file (joined to dir when
// relative and dir is set) or the newest workbook in dir.
func resolveInput(file, dir string, exts []string, logger *slog.Logger) (string, error) {
	if file != "" {
		path := file
		if !filepath.IsAbs(file) && dir != "" {
			path = filepath.Join(dir, file)
		}
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", xlsdump.ErrInputNotFound, path)
		}
		return path, nil
	}

	if dir == "" {
		dir = "."
	}
	path, err := xlsdump.FindNewest(dir, exts)
	if err != nil {
		return "", err
	}
	logger.Info("processing newest Excel file", "file", filepath.Base(path), "directory", filepath.Dir(path))
	return path, nil
}

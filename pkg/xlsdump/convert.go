package xlsdump

import (
	"github.com/ukaji3/xlsdump/pkg/xlsdump/output"
)

// ConvertOptions configures Convert and ProcessAll.
type ConvertOptions struct {
	Options
	// OutputDir receives the generated files. Empty means the working directory.
	OutputDir string
	// Format selects CSV or JSON output. Empty means CSV.
	Format output.Format
	// Prefix replaces output.DefaultPrefix in generated file names.
	Prefix string
}

// Convert extracts the workbook at path and writes its records to a newly
// named output file. It returns the path written, or "" when the workbook
// holds no data, in which case nothing is written.
func Convert(path string, opts ConvertOptions) (string, error) {
	logger := opts.logger()

	wb, err := Extract(path, opts.Options)
	if err != nil {
		return "", err
	}
	if len(wb.Records) == 0 {
		logger.Info("no data found to export", "workbook", wb.BookName)
		return "", nil
	}

	format := opts.Format
	if format == "" {
		format = output.FormatCSV
	}

	dest, err := output.NameFor(path, opts.OutputDir, format, output.WithPrefix(opts.Prefix))
	if err != nil {
		return "", &output.WriteError{Path: opts.OutputDir, Err: err}
	}
	if err := output.Write(wb.Records, dest, format, opts.IncludeRowNumbers); err != nil {
		return "", err
	}

	logger.Info("data exported", "path", dest, "rows", len(wb.Records), "format", format)
	return dest, nil
}

// ProcessAll converts every workbook in dir and returns the files written.
// A workbook that fails is logged and skipped.
func ProcessAll(dir string, opts ConvertOptions) ([]string, error) {
	logger := opts.logger()

	files, err := FindAll(dir, opts.extensions())
	if err != nil {
		return nil, err
	}

	var written []string
	for _, f := range files {
		dest, err := Convert(f, opts)
		if err != nil {
			logger.Warn("could not process workbook", "path", f, "error", err)
			continue
		}
		if dest != "" {
			written = append(written, dest)
		}
	}
	return written, nil
}

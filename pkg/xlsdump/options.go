// Package xlsdump flattens spreadsheet workbooks into tabular records.
package xlsdump

import "log/slog"

// DefaultExtensions are the workbook extensions searched for by FindNewest.
var DefaultExtensions = []string{".xlsx", ".xls", ".xlsm", ".xlsb"}

// Options configures extraction behavior.
type Options struct {
	// IncludeHidden keeps hidden and very hidden sheets.
	IncludeHidden bool
	// IncludeRowNumbers tags every record with its original row number on output.
	IncludeRowNumbers bool
	// IncludeFormulas emits formula text instead of calculated values where
	// the workbook format stores it.
	IncludeFormulas bool
	// Extensions lists the workbook extensions considered when searching a
	// directory. If empty, DefaultExtensions is used.
	Extensions []string
	// Logger receives progress and warning messages.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		IncludeHidden: true,
	}
}

// extensions returns the configured workbook extensions.
func (o Options) extensions() []string {
	if len(o.Extensions) > 0 {
		return o.Extensions
	}
	return DefaultExtensions
}

// logger returns the configured logger.
func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

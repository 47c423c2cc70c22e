package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultPrefix starts every generated file name.
const DefaultPrefix = "xlsdump"

// timestampLayout is ISO 8601 with a numeric zone offset; colons are
// replaced with hyphens before use in a file name.
const timestampLayout = "2006-01-02T15:04:05-07:00"

type nameConfig struct {
	prefix string
	loc    *time.Location
}

// NameOption customizes NameFor.
type NameOption func(*nameConfig)

// WithPrefix replaces DefaultPrefix.
func WithPrefix(prefix string) NameOption {
	return func(c *nameConfig) {
		if prefix != "" {
			c.prefix = prefix
		}
	}
}

// WithLocation renders the timestamp in loc instead of the local zone.
func WithLocation(loc *time.Location) NameOption {
	return func(c *nameConfig) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// NameFor returns an unused output path for inputPath:
// <prefix>_<stem>_<mtime>.<ext>, placed in outputDir (created if missing)
// or the working directory when outputDir is empty. If the name is taken,
// "(1)", "(2)", ... is inserted before the extension until a free path is
// found; an existing file is never returned.
//
// The check is not atomic: concurrent runs writing to the same directory
// can race between NameFor and the write.
func NameFor(inputPath, outputDir string, format Format, opts ...NameOption) (string, error) {
	cfg := nameConfig{prefix: DefaultPrefix, loc: time.Local}
	for _, opt := range opts {
		opt(&cfg)
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", inputPath, err)
	}

	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stamp := strings.ReplaceAll(info.ModTime().In(cfg.loc).Format(timestampLayout), ":", "-")
	name := fmt.Sprintf("%s_%s_%s", cfg.prefix, stem, stamp)

	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return "", fmt.Errorf("create output directory %s: %w", outputDir, err)
		}
		name = filepath.Join(outputDir, name)
	}

	ext := format.Ext()
	for counter := 0; ; counter++ {
		candidate := name + ext
		if counter > 0 {
			candidate = fmt.Sprintf("%s(%d)%s", name, counter, ext)
		}
		_, err := os.Lstat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
	}
}

package xlsdump

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FindNewest returns the most recently modified workbook in dir.
// Only regular files directly inside dir whose extension matches exts
// (case-insensitively) are considered. If exts is empty, DefaultExtensions
// is used. Ties on modification time go to the lexically first name.
func FindNewest(dir string, exts []string) (string, error) {
	files, err := FindAll(dir, exts)
	if err != nil {
		return "", err
	}

	newest := files[0]
	var newestTime time.Time
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			continue
		}
		if info.ModTime().After(newestTime) {
			newest, newestTime = f, info.ModTime()
		}
	}
	return newest, nil
}

// FindAll returns every workbook in dir, sorted by name.
func FindAll(dir string, exts []string) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w in directory %s: %v", ErrNoFilesFound, dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if hasExtension(entry.Name(), exts) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in directory: %s", ErrNoFilesFound, dir)
	}

	sort.Strings(files)
	return files, nil
}

func hasExtension(name string, exts []string) bool {
	ext := filepath.Ext(name)
	for _, e := range exts {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies a workbook container format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatXLSM Format = "xlsm"
	FormatXLSB Format = "xlsb"
	FormatXLS  Format = "xls"
)

// ErrUnsupportedFormat is returned for files no reader can decode.
var ErrUnsupportedFormat = errors.New("unsupported workbook format")

var (
	magicOLE2 = []byte{0xd0, 0xcf, 0x11, 0xe0}
	magicZIP  = []byte{0x50, 0x4b, 0x03, 0x04}
)

// Detect returns the format of the workbook at path.
// Content wins over the extension: a .xls file holding a ZIP container is
// read as OOXML and a .xlsx holding an OLE2 compound document is read as BIFF.
func Detect(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	head := make([]byte, 8)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	head = head[:n]

	switch {
	case bytes.HasPrefix(head, magicOLE2):
		return FormatXLS, nil
	case bytes.HasPrefix(head, magicZIP):
		switch ext {
		case ".xlsb":
			return FormatXLSB, nil
		case ".xlsm":
			return FormatXLSM, nil
		}
		return FormatXLSX, nil
	}

	switch ext {
	case ".xlsx":
		return FormatXLSX, nil
	case ".xlsm":
		return FormatXLSM, nil
	case ".xlsb":
		return FormatXLSB, nil
	case ".xls":
		return FormatXLS, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

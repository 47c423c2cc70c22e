package xlsdump

import (
	"strings"

	"github.com/ukaji3/xlsdump/pkg/xlsdump/models"
)

// HasSignal reports whether a row carries at least one non-blank value.
// Zero and false are values; empty or whitespace-only text is blank, as are
// non-finite numbers.
func HasSignal(cells []models.Value) bool {
	for _, c := range cells {
		if c.IsNull() {
			continue
		}
		if strings.TrimSpace(c.String()) != "" {
			return true
		}
	}
	return false
}

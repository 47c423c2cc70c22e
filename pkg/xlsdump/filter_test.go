package xlsdump

import (
	"math"
	"testing"

	"github.com/ukaji3/xlsdump/pkg/xlsdump/models"
)

func TestHasSignal(t *testing.T) {
	tests := []struct {
		name string
		row  []models.Value
		want bool
	}{
		{"empty row", nil, false},
		{"all null", []models.Value{models.Null(), models.Null()}, false},
		{"empty strings", []models.Value{models.Text(""), models.Text("")}, false},
		{"whitespace only", []models.Value{models.Text("   "), models.Text("\t\n")}, false},
		{"null and whitespace", []models.Value{models.Null(), models.Text(" ")}, false},
		{"zero is signal", []models.Value{models.Null(), models.Number(0)}, true},
		{"false is signal", []models.Value{models.Bool(false)}, true},
		{"text is signal", []models.Value{models.Null(), models.Text("x")}, true},
		{"padded text is signal", []models.Value{models.Text("  x  ")}, true},
		{"formula is signal", []models.Value{models.Formula("SUM(A1:A2)")}, true},
		{"NaN is not signal", []models.Value{models.Number(math.NaN())}, false},
		{"infinity is not signal", []models.Value{models.Number(math.Inf(1)), models.Number(math.Inf(-1))}, false},
		{"NaN next to value", []models.Value{models.Number(math.NaN()), models.Number(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasSignal(tt.row); got != tt.want {
				t.Errorf("HasSignal(%v) = %v, want %v", tt.row, got, tt.want)
			}
		})
	}
}

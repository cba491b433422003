package layout

import (
	"strings"
	"testing"

	"github.com/matzehuels/erdlayout/pkg/schema"
)

func TestMeasure(t *testing.T) {
	tests := []struct {
		name       string
		table      schema.Table
		wantWidth  float64
		wantHeight float64
	}{
		{
			name:       "HeaderOnly",
			table:      schema.Table{Name: "a"},
			wantWidth:  200,
			wantHeight: 40,
		},
		{
			name: "MinimumWidth",
			table: schema.Table{Name: "users", Columns: []schema.Column{
				{Name: "id", Type: "integer"},
			}},
			wantWidth:  200,
			wantHeight: 65,
		},
		{
			name:       "LongName",
			table:      schema.Table{Name: strings.Repeat("n", 30)},
			wantWidth:  30*8 + 50,
			wantHeight: 40,
		},
		{
			name: "LongColumn",
			table: schema.Table{Name: "t", Columns: []schema.Column{
				{Name: "id", Type: "int"},
				{Name: strings.Repeat("c", 25), Type: strings.Repeat("t", 15)},
			}},
			wantWidth:  40*7 + 50,
			wantHeight: 90,
		},
		{
			name:       "CountsRunes",
			table:      schema.Table{Name: strings.Repeat("é", 25)},
			wantWidth:  25*8 + 50,
			wantHeight: 40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Measure(tt.table)
			if d.Width != tt.wantWidth {
				t.Errorf("Width = %v, want %v", d.Width, tt.wantWidth)
			}
			if d.Height != tt.wantHeight {
				t.Errorf("Height = %v, want %v", d.Height, tt.wantHeight)
			}
			if d.Area != d.Width*d.Height {
				t.Errorf("Area = %v, want %v", d.Area, d.Width*d.Height)
			}
		})
	}
}

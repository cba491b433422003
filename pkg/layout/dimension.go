package layout

import (
	"math"
	"unicode/utf8"

	"github.com/matzehuels/erdlayout/pkg/schema"
)

// Rectangle metrics for table boxes.
const (
	minTableWidth   = 200.0
	headerCharWidth = 8.0
	columnCharWidth = 7.0
	horizontalInset = 2.5 * 20
	headerHeight    = 40.0
	columnRowHeight = 25.0
)

// Measure derives a table's rectangle from its name and columns. The width
// fits the longest of the header text and any "name type" row, plus insets,
// and never drops below the minimum table width.
func Measure(t schema.Table) Dimension {
	content := headerCharWidth * float64(utf8.RuneCountInString(t.Name))
	for _, c := range t.Columns {
		chars := utf8.RuneCountInString(c.Name) + utf8.RuneCountInString(c.Type)
		content = math.Max(content, columnCharWidth*float64(chars))
	}

	width := math.Max(minTableWidth, content+horizontalInset)
	height := headerHeight + columnRowHeight*float64(len(t.Columns))
	return Dimension{Width: width, Height: height, Area: width * height}
}

func measureAll(a *arena, tables []schema.Table) {
	for i, t := range tables {
		a.dims[i] = Measure(t)
	}
}

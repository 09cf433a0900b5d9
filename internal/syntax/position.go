package syntax

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// ErrPositionOutOfRange is returned when a position lies outside the source.
var ErrPositionOutOfRange = errors.New("position out of range")

// Point is a 0-based line and column. Column counts grapheme clusters, so
// "é" written as e + combining accent is one column.
type Point struct {
	Line   int
	Column int
}

// String returns the point in 1-based "line:col" form.
func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// OffsetAt converts a point into a byte offset in src.
// A column past the end of the line clamps to the line end.
func OffsetAt(src string, p Point) (int, error) {
	if p.Line < 0 || p.Column < 0 {
		return 0, fmt.Errorf("%w: %s", ErrPositionOutOfRange, p)
	}

	lineStart := 0
	for i := 0; i < p.Line; i++ {
		nl := strings.IndexByte(src[lineStart:], '\n')
		if nl < 0 {
			return 0, fmt.Errorf("%w: line %d of %d", ErrPositionOutOfRange, p.Line+1, i+1)
		}
		lineStart += nl + 1
	}

	line := src[lineStart:]
	if nl := strings.IndexByte(line, '\n'); nl >= 0 {
		line = line[:nl]
	}

	offset := lineStart
	col := 0
	g := uniseg.NewGraphemes(line)
	for col < p.Column && g.Next() {
		_, to := g.Positions()
		offset = lineStart + to
		col++
	}
	return offset, nil
}

// PointAt converts a byte offset in src into a point.
func PointAt(src string, offset int) (Point, error) {
	if offset < 0 || offset > len(src) {
		return Point{}, fmt.Errorf("%w: offset %d", ErrPositionOutOfRange, offset)
	}

	lineStart := strings.LastIndexByte(src[:offset], '\n') + 1
	line := strings.Count(src[:lineStart], "\n")
	col := uniseg.GraphemeClusterCount(src[lineStart:offset])
	return Point{Line: line, Column: col}, nil
}

package types

import "sort"

// LineIndex answers line:column queries for one content buffer in O(log n).
type LineIndex struct {
	size     int
	newlines []int
}

// NewLineIndex records the newline offsets of content.
func NewLineIndex(content []byte) *LineIndex {
	idx := &LineIndex{size: len(content)}
	for i, b := range content {
		if b == '\n' {
			idx.newlines = append(idx.newlines, i)
		}
	}
	return idx
}

// Point returns the 1-indexed line and column of byteOffset. Offsets outside
// content are clamped to its bounds.
func (idx *LineIndex) Point(byteOffset int) SourcePoint {
	offset := min(max(byteOffset, 0), idx.size)
	// newlines strictly before offset
	n := sort.SearchInts(idx.newlines, offset)
	lineStart := 0
	if n > 0 {
		lineStart = idx.newlines[n-1] + 1
	}
	return SourcePoint{Line: n + 1, Column: offset - lineStart + 1}
}

// Location resolves span into a Location.
func (idx *LineIndex) Location(span OffsetSpan) Location {
	return Location{
		Offset: span,
		Source: SourceSpan{
			Start: idx.Point(span.Start),
			End:   idx.Point(span.End),
		},
	}
}

package otquery

import "golang.org/x/image/font/sfnt"

// FontMetricsInfo contains selected metric information for a font, as far as it is
// available from table 'head'.
type FontMetricsInfo struct {
	UnitsPerEm sfnt.Units  // ad-hoc units per em
	BBox       BoundingBox // union of all glyph bounding boxes
}

// BoundingBox describes the bounding box of a glyph or font.
type BoundingBox struct {
	MinX, MinY sfnt.Units
	MaxX, MaxY sfnt.Units
}

// Empty reports whether this box has zero area.
func (bbox BoundingBox) Empty() bool {
	return bbox.MaxX-bbox.MinX == 0 || bbox.MaxY-bbox.MinY == 0
}

// Dx returns the horizontal extent of this box.
func (bbox BoundingBox) Dx() sfnt.Units {
	return bbox.MaxX - bbox.MinX
}

// Dy returns the vertical extent of this box.
func (bbox BoundingBox) Dy() sfnt.Units {
	return bbox.MaxY - bbox.MinY
}

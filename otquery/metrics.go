package otquery

import (
	"fmt"

	"github.com/npillmayer/sfntcmap/ot"
	"golang.org/x/image/font/sfnt"
)

// --- Font Information -------------------------------------------------

// FontType returns the type of outlines a font announces in its sfnt version:
// "TrueType", "OpenType/CFF", "Apple TrueType", "PostScript Type 1" or "unknown".
func FontType(otf *ot.Font) string {
	if otf == nil || otf.Directory == nil {
		return "unknown"
	}
	switch otf.Directory.SfntVersion {
	case ot.SfntVersionTrueType:
		return "TrueType"
	case ot.SfntVersionCFF:
		return "OpenType/CFF"
	case ot.SfntVersionApple:
		return "Apple TrueType"
	case ot.SfntVersionType1:
		return "PostScript Type 1"
	}
	return "unknown"
}

// FontMetrics retrieves selected metrics of a font from table 'head'.
func FontMetrics(otf *ot.Font) FontMetricsInfo {
	metrics := FontMetricsInfo{}
	head, ok := HeadInfo(otf) // head is a required table
	if !ok {
		tracer().Infof("font has no usable head table")
		return metrics
	}
	metrics.UnitsPerEm = sfnt.Units(head.UnitsPerEm)
	metrics.BBox = BoundingBox{
		MinX: sfnt.Units(head.XMin),
		MinY: sfnt.Units(head.YMin),
		MaxX: sfnt.Units(head.XMax),
		MaxY: sfnt.Units(head.YMax),
	}
	return metrics
}

// --- Glyph Routines --------------------------------------------------------

// GlyphIndex returns the glyph index for a give code-point.
// If the code-point cannot be found, 0 is returned.
//
// From the OpenType specification: character codes that do not correspond to any glyph in
// the font should be mapped to glyph index 0. The glyph at this location must be a special
// glyph representing a missing character, commonly known as '.notdef'.
func GlyphIndex(otf *ot.Font, codepoint rune) ot.GlyphIndex {
	return otf.Lookup(codepoint)
}

// CodePointForGlyph returns the smallest code-point mapped to a given glyph index.
//
// The first call for a font builds a reverse map of its cmap sub-table.
// If the glyph index does not correspond to a code-point, 0 is returned.
func CodePointForGlyph(otf *ot.Font, gid ot.GlyphIndex) rune {
	if gid == 0 || otf == nil || otf.CMap == nil || otf.CMap.Subtable == nil {
		return 0
	}
	return otf.CMap.Subtable.ReverseLookup(gid)
}

// CheckGlyphRange cross-checks the glyph indices the font's cmap sub-table maps to
// against the number of glyphs in table 'maxp'. Each segment mapping code-points to
// glyphs beyond numGlyphs results in a warning. If the font has no usable 'maxp'
// table, no check is possible and a single warning says so.
func CheckGlyphRange(otf *ot.Font) []ot.FontWarning {
	var warnings []ot.FontWarning
	if otf == nil || otf.CMap == nil || otf.CMap.Subtable == nil {
		return warnings
	}
	maxp, ok := MaxPInfo(otf)
	if !ok {
		return append(warnings, ot.FontWarning{
			Table: ot.T("maxp"),
			Issue: "table missing or too short, cannot check glyph range",
		})
	}
	f4 := otf.CMap.Subtable
	subtableOffset := uint32(otf.CMap.Selected.Absolute(otf.CMap.Offset))
	for i, seg := range f4.Segments() {
		var bad int
		var first rune = -1
		for c := rune(seg.Start); c <= rune(seg.End); c++ {
			if g := f4.Lookup(c); g != 0 && uint16(g) >= maxp.NumGlyphs {
				if first < 0 {
					first = c
				}
				bad++
			}
		}
		if bad > 0 {
			issue := fmt.Sprintf("segment %d maps %d code-point(s) beyond numGlyphs = %d, first is %#U",
				i, bad, maxp.NumGlyphs, first)
			w := ot.FontWarning{Table: ot.T("cmap"), Issue: issue, Offset: subtableOffset}
			tracer().Infof("%s", w)
			warnings = append(warnings, w)
		}
	}
	return warnings
}

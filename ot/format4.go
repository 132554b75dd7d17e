package ot

import (
	"fmt"
	"iter"
	"slices"
	"sync"
)

// Format 4: Segment mapping to delta values
// This is the standard character-to-glyph-index mapping subtable for fonts that support
// only Unicode Basic Multilingual Plane characters (U+0000 to U+FFFF).
//
// This format is used when the character codes for the characters represented by a font
// fall into several contiguous ranges, possibly with holes in some or all of the ranges
// (that is, some of the codes in a range may not have a representation in the font).
//
// The format's data is divided into three parts, which must occur in the following order:
//
// - A seven-word header gives parameters for an optimized search of the segment list;
// - Four parallel arrays describe the segments (one segment for each contiguous range of codes);
// - A variable-length array of glyph IDs (unsigned words).
//
// see https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-4-segment-mapping-to-delta-values

// format4FixedSize is the size of the header words plus reservedPad.
const format4FixedSize = 16

// Format4Subtable is a decoded cmap subtable of format 4. All slices are owned by
// the subtable; each of the four segment arrays holds exactly SegCountX2/2 entries.
//
// A Format4Subtable is immutable after decoding and safe for concurrent use.
type Format4Subtable struct {
	Format        uint16 // always 4
	Length        uint16 // byte length of the subtable
	Language      uint16 // only meaningful for Macintosh platform
	SegCountX2    uint16 // 2 × segCount
	SearchRange   uint16 // binary search hint, not relied upon
	EntrySelector uint16 // binary search hint, not relied upon
	RangeShift    uint16 // binary search hint, not relied upon
	EndCode       []uint16
	ReservedPad   uint16 // always 0
	StartCode     []uint16
	IDDelta       []int16
	IDRangeOffset []uint16
	GlyphIDArray  []uint16

	once    sync.Once
	reverse map[GlyphIndex]rune
}

// Segment is one contiguous range of character codes of a format 4 subtable.
type Segment struct {
	Start, End  uint16
	Delta       int16
	RangeOffset uint16 // 0 for segments mapping by delta only
}

func (seg Segment) String() string {
	return fmt.Sprintf("[U+%04X…U+%04X] Δ=%d ro=%d", seg.Start, seg.End, seg.Delta, seg.RangeOffset)
}

// DecodeFormat4 decodes a format 4 subtable located at an absolute offset.
//
// A subtable of any other format results in an *UnsupportedFormatError. A subtable
// violating the structural invariants of format 4 (odd or zero segCountX2,
// non-zero reservedPad, unsorted or overlapping segments, missing 0xFFFF sentinel,
// a declared length too short for the segment arrays) results in a
// *MalformedSubtableError. Arrays extending beyond the end of the source result in
// a *TruncatedInputError.
func DecodeFormat4(r *Reader, offset uint32) (*Format4Subtable, error) {
	if err := r.Seek(int64(offset)); err != nil {
		return nil, err
	}
	f4 := &Format4Subtable{}
	header := []*uint16{&f4.Format, &f4.Length, &f4.Language, &f4.SegCountX2,
		&f4.SearchRange, &f4.EntrySelector, &f4.RangeShift}
	for _, field := range header {
		v, err := r.U16()
		if err != nil {
			return nil, err
		}
		*field = v
	}
	if f4.Format != 4 {
		return nil, &UnsupportedFormatError{
			Table:  T("cmap"),
			Format: f4.Format,
			Issue:  "only format 4 sub-tables are supported",
		}
	}
	if f4.SegCountX2 == 0 || f4.SegCountX2&1 != 0 {
		tracer().Debugf("cmap format 4 segment count x 2 is %d", f4.SegCountX2)
		return nil, errMalformed("Format4/segCountX2", offset, "illegal value %d", f4.SegCountX2)
	}
	segCount := int(f4.SegCountX2 / 2)
	tracer().Debugf("cmap format 4 at %d: length = %d, %d segments", offset, f4.Length, segCount)
	var err error
	if f4.EndCode, err = r.U16Array(segCount); err != nil {
		return nil, err
	}
	if f4.ReservedPad, err = r.U16(); err != nil {
		return nil, err
	}
	if f4.ReservedPad != 0 {
		return nil, errMalformed("Format4/reservedPad", offset, "reserved pad is %d", f4.ReservedPad)
	}
	if f4.StartCode, err = r.U16Array(segCount); err != nil {
		return nil, err
	}
	if f4.IDDelta, err = r.I16Array(segCount); err != nil {
		return nil, err
	}
	if f4.IDRangeOffset, err = r.U16Array(segCount); err != nil {
		return nil, err
	}
	rest := int(f4.Length) - format4FixedSize - 8*segCount
	if rest < 0 {
		return nil, errMalformed("Format4/length", offset,
			"length %d too small for %d segments", f4.Length, segCount)
	}
	glyphCount := rest / 2
	tracer().Debugf("cmap format 4 glyph ID array has %d entries", glyphCount)
	if f4.GlyphIDArray, err = r.U16Array(glyphCount); err != nil {
		return nil, err
	}
	assertEqualInt("len(StartCode) == segCount", len(f4.StartCode), segCount)
	assertEqualInt("len(IDDelta) == segCount", len(f4.IDDelta), segCount)
	assertEqualInt("len(IDRangeOffset) == segCount", len(f4.IDRangeOffset), segCount)
	if err = f4.checkSegments(offset); err != nil {
		return nil, err
	}
	return f4, nil
}

func (f4 *Format4Subtable) checkSegments(offset uint32) error {
	for i, end := range f4.EndCode {
		if f4.StartCode[i] > end {
			return errMalformed("Format4/startCode", offset,
				"segment %d: start code %#04x > end code %#04x", i, f4.StartCode[i], end)
		}
		if i > 0 && f4.EndCode[i-1] >= end {
			return errMalformed("Format4/endCode", offset,
				"segment %d: end codes not strictly ascending (%#04x, %#04x)", i, f4.EndCode[i-1], end)
		}
	}
	if last := f4.EndCode[len(f4.EndCode)-1]; last != 0xffff {
		return errMalformed("Format4/endCode", offset, "last end code is %#04x, expected 0xFFFF", last)
	}
	return nil
}

// Lookup returns the glyph index for a code-point, or 0 (the 'missing character' glyph)
// if the code-point is not mapped. Code-points beyond the BMP are never mapped.
func (f4 *Format4Subtable) Lookup(r rune) GlyphIndex {
	if r < 0 || r > 0xffff { // format 4 is for BMP code-points only
		return 0
	}
	c := uint16(r)
	// find the first segment with endCode >= c
	i, _ := slices.BinarySearch(f4.EndCode, c)
	if i >= len(f4.EndCode) || c < f4.StartCode[i] {
		return 0
	}
	return f4.glyph(i, c)
}

// glyph maps c within segment i.
func (f4 *Format4Subtable) glyph(i int, c uint16) GlyphIndex {
	delta := uint16(f4.IDDelta[i]) // idDelta arithmetic is modulo 65536
	if f4.IDRangeOffset[i] == 0 {
		return GlyphIndex(c + delta)
	}
	// The OpenType spec describes idRangeOffset as an offset from its own location within the
	// idRangeOffset array into glyphIdArray, which immediately follows it:
	//
	//    glyphId = *(idRangeOffset[i]/2 + (c - startCode[i]) + &idRangeOffset[i])
	//
	// We hold glyphIdArray as a slice of its own, thus we have to subtract the distance
	// from &idRangeOffset[i] to the end of the idRangeOffset array.
	segCount := len(f4.IDRangeOffset)
	index := int(f4.IDRangeOffset[i])/2 + int(c-f4.StartCode[i]) - (segCount - i)
	if index < 0 || index >= len(f4.GlyphIDArray) {
		tracer().Debugf("cmap format 4: glyph index %d for U+%04X out of range", index, c)
		return 0
	}
	g := f4.GlyphIDArray[index]
	if g == 0 {
		return 0
	}
	// If the value obtained from the indexing operation is not 0 (which indicates
	// missingGlyph), idDelta[i] is added to it to get the glyph index
	return GlyphIndex(g + delta)
}

// ReverseLookup returns the smallest code-point mapped to a glyph, or 0 if no
// code-point maps to it. The cmap format does not support this operation, thus the
// first call builds a reverse map, which is kept for subsequent calls.
func (f4 *Format4Subtable) ReverseLookup(gid GlyphIndex) rune {
	if gid == 0 {
		return 0
	}
	f4.once.Do(f4.buildReverseMap)
	return f4.reverse[gid]
}

func (f4 *Format4Subtable) buildReverseMap() {
	f4.reverse = make(map[GlyphIndex]rune)
	for i := range f4.EndCode {
		start, end := rune(f4.StartCode[i]), rune(f4.EndCode[i])
		for c := start; c <= end; c++ {
			g := f4.glyph(i, uint16(c))
			if g == 0 {
				continue
			}
			if _, ok := f4.reverse[g]; !ok {
				f4.reverse[g] = c
			}
		}
	}
	tracer().Debugf("cmap format 4 reverse map has %d entries", len(f4.reverse))
}

// SegmentCount returns the number of segments, including the final 0xFFFF segment.
func (f4 *Format4Subtable) SegmentCount() int {
	return len(f4.EndCode)
}

// Segment returns segment i. It panics if i is out of range.
func (f4 *Format4Subtable) Segment(i int) Segment {
	return Segment{
		Start:       f4.StartCode[i],
		End:         f4.EndCode[i],
		Delta:       f4.IDDelta[i],
		RangeOffset: f4.IDRangeOffset[i],
	}
}

// Segments iterates over all segments in ascending order.
func (f4 *Format4Subtable) Segments() iter.Seq2[int, Segment] {
	return func(yield func(int, Segment) bool) {
		for i := range f4.EndCode {
			if !yield(i, f4.Segment(i)) {
				return
			}
		}
	}
}

// CodeRange returns the lowest and the highest code-point covered by any segment.
// A final segment consisting of 0xFFFF only does not count, unless it is the only one.
func (f4 *Format4Subtable) CodeRange() (low, high rune) {
	n := len(f4.EndCode)
	if n == 0 {
		return 0, 0
	}
	if n > 1 && f4.StartCode[n-1] == 0xffff {
		n--
	}
	return rune(f4.StartCode[0]), rune(f4.EndCode[n-1])
}

/*
Package fonttest assembles synthetic sfnt font binaries in memory, for use in tests.

Fonts built here carry a table directory with correct checksums and search hints,
a 'cmap' table with any number of subtables, and optionally small 'head', 'maxp'
and 'name' tables. No glyph outlines are ever produced.

	font := fonttest.Font(
		fonttest.Table{Tag: "cmap", Data: fonttest.Cmap(
			fonttest.Subtable{Platform: 3, Encoding: 1, Data: fonttest.Format4(segs...)},
		)},
		fonttest.Table{Tag: "maxp", Data: fonttest.Maxp(100)},
	)
*/
package fonttest

import (
	"encoding/binary"
	"math/bits"

	"golang.org/x/text/encoding/unicode"
)

// Table is a top-level table of a font, identified by a 4-letter tag.
type Table struct {
	Tag  string
	Data []byte
}

// Font builds an sfnt binary with sfntVersion 0x00010000 from a list of tables.
// Tables are stored in the given order, each padded to a 4-byte boundary.
// If a 'head' table is present, its checkSumAdjustment is set.
func Font(tables ...Table) []byte {
	return FontWithVersion(0x00010000, tables...)
}

// FontWithVersion is like Font, but with a custom sfntVersion.
func FontWithVersion(version uint32, tables ...Table) []byte {
	n := len(tables)
	sr, es, rs := searchHints(n)
	b := binary.BigEndian.AppendUint32(nil, version)
	b = U16(b, uint16(n), sr, es, rs)
	offset := 12 + 16*n
	headAt := -1
	for i, t := range tables {
		tag := []byte((t.Tag + "    ")[:4])
		b = append(b, tag...)
		b = binary.BigEndian.AppendUint32(b, Checksum(t.Data))
		b = binary.BigEndian.AppendUint32(b, uint32(offset))
		b = binary.BigEndian.AppendUint32(b, uint32(len(t.Data)))
		if t.Tag == "head" {
			headAt = i
		}
		offset += pad4(len(t.Data))
	}
	var headOffset int
	for i, t := range tables {
		if i == headAt {
			headOffset = len(b)
		}
		b = append(b, t.Data...)
		b = append(b, make([]byte, pad4(len(t.Data))-len(t.Data))...)
	}
	if headAt >= 0 && len(tables[headAt].Data) >= 12 {
		adj := 0xB1B0AFBA - Checksum(b)
		binary.BigEndian.PutUint32(b[headOffset+8:], adj)
	}
	return b
}

// Checksum calculates an sfnt table checksum.
func Checksum(data []byte) uint32 {
	var sum uint32
	for i := 0; i < len(data); i += 4 {
		var w [4]byte
		copy(w[:], data[i:])
		sum += binary.BigEndian.Uint32(w[:])
	}
	return sum
}

func pad4(n int) int {
	return (n + 3) &^ 3
}

func searchHints(n int) (searchRange, entrySelector, rangeShift uint16) {
	if n == 0 {
		return 0, 0, 0
	}
	es := bits.Len(uint(n)) - 1
	sr := (1 << es) * 16
	return uint16(sr), uint16(es), uint16(n*16 - sr)
}

// U16 appends big-endian words to b.
func U16(b []byte, words ...uint16) []byte {
	for _, w := range words {
		b = binary.BigEndian.AppendUint16(b, w)
	}
	return b
}

// --- cmap ------------------------------------------------------------------

// Subtable is a cmap subtable together with its encoding record.
type Subtable struct {
	Platform, Encoding uint16
	Data               []byte
}

// Cmap builds a 'cmap' table (version 0) with one encoding record per subtable.
// Subtable data is laid out in the given order, directly after the encoding records.
func Cmap(subtables ...Subtable) []byte {
	b := U16(nil, 0, uint16(len(subtables)))
	offset := 4 + 8*len(subtables)
	for _, st := range subtables {
		b = U16(b, st.Platform, st.Encoding)
		b = binary.BigEndian.AppendUint32(b, uint32(offset))
		offset += len(st.Data)
	}
	for _, st := range subtables {
		b = append(b, st.Data...)
	}
	return b
}

// Segment describes a segment of a format 4 subtable. If Glyphs is nil, the segment
// maps by Delta only. Otherwise Glyphs holds one stored glyph id per code-point from
// Start to End, which will be located through idRangeOffset.
type Segment struct {
	Start, End uint16
	Delta      int16
	Glyphs     []uint16
}

// Sentinel is the final segment every format 4 subtable requires.
var Sentinel = Segment{Start: 0xffff, End: 0xffff, Delta: 1}

// Format4 builds a format 4 subtable from segments, which are stored as given.
// Callers are responsible for including the Sentinel.
func Format4(segs ...Segment) []byte {
	segCount := len(segs)
	var glyphs []uint16
	rangeOffsets := make([]uint16, segCount)
	for i, s := range segs {
		if s.Glyphs == nil {
			continue
		}
		// distance from &idRangeOffset[i] to glyphIdArray[len(glyphs)], in bytes
		rangeOffsets[i] = uint16(2*(segCount-i) + 2*len(glyphs))
		glyphs = append(glyphs, s.Glyphs...)
	}
	length := 16 + 8*segCount + 2*len(glyphs)
	sr, es, rs := format4Hints(segCount)
	b := U16(nil, 4, uint16(length), 0, uint16(2*segCount), sr, es, rs)
	for _, s := range segs {
		b = U16(b, s.End)
	}
	b = U16(b, 0) // reservedPad
	for _, s := range segs {
		b = U16(b, s.Start)
	}
	for _, s := range segs {
		b = U16(b, uint16(s.Delta))
	}
	b = U16(b, rangeOffsets...)
	b = U16(b, glyphs...)
	return b
}

func format4Hints(segCount int) (searchRange, entrySelector, rangeShift uint16) {
	es := bits.Len(uint(segCount)) - 1
	sr := 2 * (1 << es)
	return uint16(sr), uint16(es), uint16(2*segCount - sr)
}

// Format12 builds a format 12 subtable with sequential map groups of the form
// {start, end, startGlyph}.
func Format12(groups ...[3]uint32) []byte {
	b := U16(nil, 12, 0)
	b = binary.BigEndian.AppendUint32(b, uint32(16+12*len(groups)))
	b = binary.BigEndian.AppendUint32(b, 0) // language
	b = binary.BigEndian.AppendUint32(b, uint32(len(groups)))
	for _, g := range groups {
		b = binary.BigEndian.AppendUint32(b, g[0])
		b = binary.BigEndian.AppendUint32(b, g[1])
		b = binary.BigEndian.AppendUint32(b, g[2])
	}
	return b
}

// --- other tables ----------------------------------------------------------

// Head builds a 54-byte 'head' table. checkSumAdjustment is filled in by Font.
func Head(unitsPerEm uint16, indexToLocFormat int16) []byte {
	b := binary.BigEndian.AppendUint32(nil, 0x00010000) // version 1.0
	b = binary.BigEndian.AppendUint32(b, 0x00010000)    // fontRevision
	b = binary.BigEndian.AppendUint32(b, 0)             // checkSumAdjustment
	b = binary.BigEndian.AppendUint32(b, 0x5F0F3CF5)    // magicNumber
	b = U16(b, 0x000b, unitsPerEm)                      // flags, unitsPerEm
	b = append(b, make([]byte, 16)...)                  // created, modified
	b = U16(b, 0, 0, unitsPerEm, unitsPerEm)            // xMin, yMin, xMax, yMax
	b = U16(b, 0, 8, 2, uint16(indexToLocFormat), 0)    // macStyle … glyphDataFormat
	return b
}

// Maxp builds a version 0.5 'maxp' table.
func Maxp(numGlyphs uint16) []byte {
	b := binary.BigEndian.AppendUint32(nil, 0x00005000)
	return U16(b, numGlyphs)
}

// NameRecord is an entry of a 'name' table. Strings are stored UTF-16BE encoded.
type NameRecord struct {
	Platform, Encoding, Language, NameID uint16
	Value                                string
}

// Name builds a format 0 'name' table.
func Name(records ...NameRecord) []byte {
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder()
	var storage []byte
	b := U16(nil, 0, uint16(len(records)), uint16(6+12*len(records)))
	for _, rec := range records {
		s, err := enc.Bytes([]byte(rec.Value))
		if err != nil {
			panic(err)
		}
		b = U16(b, rec.Platform, rec.Encoding, rec.Language, rec.NameID,
			uint16(len(s)), uint16(len(storage)))
		storage = append(storage, s...)
	}
	return append(b, storage...)
}

// --- ready-made fonts ------------------------------------------------------

// SampleSegments map A–Z by delta, a–c through the glyph id array, and 0x2000–0x2002
// by a negative delta.
//
//	U+0041…U+005A  →  1…26
//	U+0061…U+0063  →  30, 0 (unmapped), 31
//	U+2000…U+2002  →  40…42
func SampleSegments() []Segment {
	return []Segment{
		{Start: 0x41, End: 0x5a, Delta: -0x40},
		{Start: 0x61, End: 0x63, Delta: 0, Glyphs: []uint16{30, 0, 31}},
		{Start: 0x2000, End: 0x2002, Delta: -0x2000 + 40},
		Sentinel,
	}
}

// SampleFont builds a font with tables cmap, head, maxp and name, sorted by tag.
// Its cmap has a Windows BMP (3/1) subtable built from SampleSegments.
func SampleFont() []byte {
	return Font(
		Table{Tag: "cmap", Data: Cmap(Subtable{Platform: 3, Encoding: 1, Data: Format4(SampleSegments()...)})},
		Table{Tag: "head", Data: Head(1000, 0)},
		Table{Tag: "maxp", Data: Maxp(43)},
		Table{Tag: "name", Data: Name(
			NameRecord{Platform: 3, Encoding: 1, Language: 0x409, NameID: 1, Value: "Sample"},
			NameRecord{Platform: 3, Encoding: 1, Language: 0x409, NameID: 2, Value: "Regular"},
			NameRecord{Platform: 3, Encoding: 1, Language: 0x409, NameID: 4, Value: "Sample Regular"},
		)},
	)
}

package ot

import "fmt"

// --- CMap table ------------------------------------------------------------

// This table defines mapping of character codes to a default glyph index. Different
// subtables may be defined that each contain mappings for different character encoding
// schemes. The table header indicates the character encodings for which subtables are
// present.
//
// From the spec.: “Apart from a format 14 subtable, all other subtables are exclusive:
// applications should select and use one and ignore the others. […]
// If a font includes encoding records for Unicode subtables of the same format but
// with different platform IDs, an application may choose which to select, but should
// make this selection consistently each time the font is used.”
//
// From Apple: // https://developer.apple.com/fonts/TrueType-Reference-Manual/RM06/Chap6cmap.html
// “The use of the Macintosh platformID is currently discouraged. Subtables with a
// Macintosh platformID are only required for backwards compatibility.”

const encodingRecordSize = 8

// EncodingRecord is an entry of the cmap header, identifying a platform/encoding
// pair and the offset of its subtable. Offset is relative to the start of the
// 'cmap' table, not to the start of the font file.
type EncodingRecord struct {
	PlatformID PlatformID
	EncodingID EncodingID
	Offset     uint32 // relative to the start of 'cmap'
}

// Absolute returns the subtable's offset from the start of the font file, given
// the absolute offset of the 'cmap' table.
func (rec EncodingRecord) Absolute(cmapOffset uint32) int64 {
	return int64(cmapOffset) + int64(rec.Offset)
}

func (rec EncodingRecord) String() string {
	return fmt.Sprintf("%s/%d@%d", rec.PlatformID, rec.EncodingID, rec.Offset)
}

// EncodingPreference is a platform/encoding pair used to select a cmap subtable.
// Encoding may be AnyEncoding to match every encoding of a platform.
type EncodingPreference struct {
	Platform PlatformID
	Encoding EncodingID
}

// Matches reports whether an encoding record satisfies this preference.
func (pref EncodingPreference) Matches(rec EncodingRecord) bool {
	return rec.PlatformID == pref.Platform &&
		(pref.Encoding == AnyEncoding || rec.EncodingID == pref.Encoding)
}

func (pref EncodingPreference) String() string {
	if pref.Encoding == AnyEncoding {
		return fmt.Sprintf("%s/*", pref.Platform)
	}
	return fmt.Sprintf("%s/%d", pref.Platform, pref.Encoding)
}

// DefaultPreferences prefer Windows Unicode BMP (3/1), falling back to any encoding
// of the Unicode platform (0/*).
var DefaultPreferences = []EncodingPreference{
	{Platform: PlatformWindows, Encoding: EncodingWindowsBMP},
	{Platform: PlatformUnicode, Encoding: AnyEncoding},
}

// Cmap represents an OpenType cmap table, i.e. the table to receive glyphs
// from code-points.
//
// See https://docs.microsoft.com/en-us/typography/opentype/spec/cmap
//
// A cmap table may contain more than one lookup table, but we will only decode the
// most appropriate one (see DecodeCmap). Clients who need access to other subtables
// may decode them with DecodeFormat4, using the EncodingRecords.
type Cmap struct {
	Version         uint16
	NumTables       uint16
	EncodingRecords []EncodingRecord // len(EncodingRecords) == NumTables
	Offset          uint32           // absolute offset of the 'cmap' table
	Selected        EncodingRecord   // encoding record of Subtable
	Subtable        *Format4Subtable
}

// Lookup returns the glyph index for a code-point, using the selected subtable.
func (cmap *Cmap) Lookup(r rune) GlyphIndex {
	if cmap == nil || cmap.Subtable == nil {
		return 0
	}
	return cmap.Subtable.Lookup(r)
}

// DecodeCmap reads a 'cmap' table located at an absolute offset. It reads the
// header and all encoding records, then selects one subtable and decodes it.
//
// Selection follows prefs (DefaultPreferences if prefs is empty): preferences are
// tried in order, and for each preference the matching encoding records are tried
// in file order. The first record whose subtable has format 4 is selected.
// If no record qualifies, DecodeCmap returns an *UnsupportedFormatError.
//
// The header is validated before any encoding record is used: the version must be 0
// and every subtable offset must lie within the source.
func DecodeCmap(r *Reader, offset uint32, prefs []EncodingPreference) (*Cmap, error) {
	if err := r.Seek(int64(offset)); err != nil {
		return nil, err
	}
	cmap := &Cmap{Offset: offset}
	var err error
	if cmap.Version, err = r.U16(); err != nil {
		return nil, err
	}
	if cmap.NumTables, err = r.U16(); err != nil {
		return nil, err
	}
	if cmap.Version != 0 {
		return nil, errMalformed("Header", offset, "unsupported cmap version %d", cmap.Version)
	}
	tracer().Debugf("font cmap has %d sub-tables", cmap.NumTables)
	n := int(cmap.NumTables)
	if need := n * encodingRecordSize; int64(need) > r.Remaining() {
		return nil, r.truncated(need)
	}
	cmap.EncodingRecords = make([]EncodingRecord, n)
	for i := range cmap.EncodingRecords {
		rec := &cmap.EncodingRecords[i]
		var pid, eid uint16
		if pid, err = r.U16(); err != nil {
			return nil, err
		}
		if eid, err = r.U16(); err != nil {
			return nil, err
		}
		if rec.Offset, err = r.U32(); err != nil {
			return nil, err
		}
		rec.PlatformID, rec.EncodingID = PlatformID(pid), EncodingID(eid)
		if abs := rec.Absolute(offset); abs >= r.Size() {
			tracer().Errorf("cmap sub-table %d (%v) points outside of font", i, rec)
			return nil, &InvalidOffsetError{Offset: abs, Size: r.Size()}
		}
	}
	if len(prefs) == 0 {
		prefs = DefaultPreferences
	}
	selected, err := cmap.selectSubtable(r, prefs)
	if err != nil {
		return nil, err
	}
	cmap.Selected = selected
	tracer().Debugf("selected cmap sub-table %v", selected)
	if cmap.Subtable, err = DecodeFormat4(r, uint32(selected.Absolute(offset))); err != nil {
		return nil, err
	}
	return cmap, nil
}

// selectSubtable peeks at the format of every candidate subtable in order of
// preference and returns the first one of format 4.
func (cmap *Cmap) selectSubtable(r *Reader, prefs []EncodingPreference) (EncodingRecord, error) {
	var lastFormat uint16
	for _, pref := range prefs {
		for _, rec := range cmap.EncodingRecords {
			if !pref.Matches(rec) {
				continue
			}
			if err := r.Seek(rec.Absolute(cmap.Offset)); err != nil {
				return EncodingRecord{}, err
			}
			format, err := r.U16()
			if err != nil {
				return EncodingRecord{}, err
			}
			if format == 4 {
				return rec, nil
			}
			tracer().Infof("cmap sub-table %v has format %d, skipping", rec, format)
			lastFormat = format
		}
	}
	return EncodingRecord{}, &UnsupportedFormatError{
		Table:  T("cmap"),
		Format: lastFormat,
		Issue:  fmt.Sprintf("no format 4 sub-table for preferences %v", prefs),
	}
}

package ot

import "fmt"

// Code comment often will cite passage from the
// OpenType specification version 1.8.4;
// see https://docs.microsoft.com/en-us/typography/opentype/spec/.

const (
	directoryHeaderSize = 12
	tableRecordSize     = 16
)

// Known values of sfntVersion.
const (
	SfntVersionTrueType uint32 = 0x00010000
	SfntVersionCFF      uint32 = 0x4f54544f // 'OTTO'
	SfntVersionApple    uint32 = 0x74727565 // 'true'
	SfntVersionType1    uint32 = 0x74797031 // 'typ1'
)

// TableRecord is an entry of the table directory, locating one table of a font.
// Offset is counted from the start of the font file.
type TableRecord struct {
	Tag      Tag
	Checksum uint32
	Offset   uint32
	Length   uint32
}

// End returns the offset of the first byte after the table.
func (rec TableRecord) End() int64 {
	return int64(rec.Offset) + int64(rec.Length)
}

// Data reads the bytes of the table from r. r's position is changed.
func (rec TableRecord) Data(r *Reader) ([]byte, error) {
	if err := r.Seek(int64(rec.Offset)); err != nil {
		return nil, err
	}
	return r.Bytes(int(rec.Length))
}

func (rec TableRecord) String() string {
	return fmt.Sprintf("%s[offset=%d, length=%d, checksum=%#08x]", rec.Tag, rec.Offset, rec.Length, rec.Checksum)
}

// TableDirectory is a directory of the top-level tables in a font. If the font file
// contains only one font, the table directory will begin at byte 0 of the file.
//
// OpenType fonts that contain TrueType outlines should use the value of 0x00010000
// for the SfntVersion. OpenType fonts containing CFF data (version 1 or 2) should
// use 0x4F54544F ('OTTO', when re-interpreted as a Tag).
// The Apple specification for TrueType fonts allows for 'true' and 'typ1',
// but these version tags should not be used for OpenType fonts.
//
// SearchRange, EntrySelector and RangeShift are hints for a binary search over the
// table records. They are carried through, but lookup does not rely on them.
type TableDirectory struct {
	SfntVersion   uint32
	NumTables     uint16
	SearchRange   uint16
	EntrySelector uint16
	RangeShift    uint16
	Tables        []TableRecord // in file order, len(Tables) == NumTables
}

// DecodeTableDirectory reads a table directory starting at the current position of r,
// which usually is 0. It reads the 12-byte header, followed by exactly NumTables
// table records in file order.
//
// Missing table records result in a *TruncatedInputError, as does a table record
// extending beyond the end of the source.
func DecodeTableDirectory(r *Reader) (*TableDirectory, error) {
	start := r.Offset()
	if r.Remaining() < directoryHeaderSize {
		return nil, r.truncated(directoryHeaderSize)
	}
	td := &TableDirectory{}
	var err error
	if td.SfntVersion, err = r.U32(); err != nil {
		return nil, err
	}
	if td.NumTables, err = r.U16(); err != nil {
		return nil, err
	}
	if td.SearchRange, err = r.U16(); err != nil {
		return nil, err
	}
	if td.EntrySelector, err = r.U16(); err != nil {
		return nil, err
	}
	if td.RangeShift, err = r.U16(); err != nil {
		return nil, err
	}
	tracer().Debugf("table directory at %d: version = %#08x, %d tables", start, td.SfntVersion, td.NumTables)
	// "The Offset Table is followed immediately by the Table Record entries",
	// 16 bytes each. Check the complete extent before allocating anything.
	n := int(td.NumTables)
	if need := n * tableRecordSize; int64(need) > r.Remaining() {
		return nil, r.truncated(need)
	}
	td.Tables = make([]TableRecord, n)
	for i := range td.Tables {
		rec := &td.Tables[i]
		if rec.Tag, err = r.Tag(); err != nil {
			return nil, err
		}
		if rec.Checksum, err = r.U32(); err != nil {
			return nil, err
		}
		if rec.Offset, err = r.U32(); err != nil {
			return nil, err
		}
		if rec.Length, err = r.U32(); err != nil {
			return nil, err
		}
		if rec.End() > r.Size() {
			// a font file cut short, no matter whether inside the table or before it
			tracer().Errorf("table %s: bounds [%d:%d] exceed font size %d", rec.Tag, rec.Offset, rec.End(), r.Size())
			have := max(0, r.Size()-int64(rec.Offset))
			return nil, &TruncatedInputError{Offset: int64(rec.Offset), Need: int(rec.Length), Have: int(have)}
		}
	}
	assertEqualInt("len(Tables) == NumTables", len(td.Tables), int(td.NumTables))
	return td, nil
}

// FindTable looks up a table record by its tag. If the directory does not contain
// a table for tag, None is returned.
//
// The sfnt format requires table records to be sorted by tag, but fonts in the wild
// do not always honor this; FindTable does not rely on the order.
func (td *TableDirectory) FindTable(tag Tag) Option[TableRecord] {
	if td == nil {
		return None[TableRecord]()
	}
	for _, rec := range td.Tables {
		if rec.Tag == tag {
			return Some(rec)
		}
	}
	return None[TableRecord]()
}

// Tags returns the tags of all tables, in file order.
func (td *TableDirectory) Tags() []Tag {
	if td == nil {
		return nil
	}
	tags := make([]Tag, len(td.Tables))
	for i, rec := range td.Tables {
		tags[i] = rec.Tag
	}
	return tags
}

package ot

import (
	"fmt"
)

// Font represents the decoded structure of an sfnt font: its table directory and
// the character-to-glyph mapping. It is used to map code-points to glyphs and to
// locate the raw data of the other tables of the font.
//
// A Font keeps a reference to the Reader it has been parsed from, in order to
// provide TableData. Decoded structures do not depend on the Reader, though.
type Font struct {
	Directory *TableDirectory // table directory at the start of the font file
	CMap      *Cmap           // 'cmap' table, with a decoded format 4 subtable
	src       *Reader
	warnings  []FontWarning // warnings from verification, if requested
}

// ParseOption guides and influences the parsing of the font.
type ParseOption func(*parseConfig)

type parseConfig struct {
	prefs  []EncodingPreference
	verify bool
}

// Prefer sets the ranked list of platform/encoding pairs to select a cmap subtable.
// Without this option, DefaultPreferences are used.
func Prefer(prefs ...EncodingPreference) ParseOption {
	return func(c *parseConfig) {
		c.prefs = prefs
	}
}

// VerifyTables makes Parse verify the table directory (checksums, alignment, search
// hints). Findings are available as Font.Warnings and never make Parse fail.
func VerifyTables(c *parseConfig) {
	c.verify = true
}

// Parse decodes a font from r: first the table directory at offset 0, then the
// 'cmap' table, located by tag, and finally the format 4 subtable of the first
// encoding record matching the preferences (see option Prefer).
//
// If the font has no 'cmap' table, Parse returns an *UnsupportedFormatError.
func Parse(r *Reader, opts ...ParseOption) (*Font, error) {
	conf := parseConfig{}
	for _, opt := range opts {
		opt(&conf)
	}
	if err := r.Seek(0); err != nil {
		return nil, err
	}
	dir, err := DecodeTableDirectory(r)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("font has %d tables: %v", dir.NumTables, dir.Tags())
	rec, ok := dir.FindTable(T("cmap")).Unwrap()
	if !ok {
		return nil, &UnsupportedFormatError{Table: T("cmap"), Issue: "table missing"}
	}
	cmap, err := DecodeCmap(r, rec.Offset, conf.prefs)
	if err != nil {
		return nil, err
	}
	otf := &Font{Directory: dir, CMap: cmap, src: r}
	if conf.verify {
		otf.warnings = dir.Verify(r)
	}
	return otf, nil
}

// Table returns the table record for a given tag, if present.
//
// Table tag names are case-sensitive, following the names in the OpenType specification,
// e.g. "cmap", "head", "OS/2" or "cvt " (with a trailing space).
func (otf *Font) Table(tag Tag) Option[TableRecord] {
	if otf == nil || otf.Directory == nil {
		return None[TableRecord]()
	}
	return otf.Directory.FindTable(tag)
}

// TableTags returns a list of tags, one for each table contained in the font,
// in the order of the table directory.
func (otf *Font) TableTags() []Tag {
	if otf == nil || otf.Directory == nil {
		return nil
	}
	return otf.Directory.Tags()
}

// TableData returns a copy of the bytes of the table for a given tag.
// It fails with an *UnsupportedFormatError if the table is not present.
func (otf *Font) TableData(tag Tag) ([]byte, error) {
	rec, ok := otf.Table(tag).Unwrap()
	if !ok {
		return nil, &UnsupportedFormatError{Table: tag, Issue: "table missing"}
	}
	return rec.Data(otf.src.Clone())
}

// Lookup returns the glyph index for a code-point, or 0 (the 'missing character'
// glyph) if the font does not map it.
func (otf *Font) Lookup(r rune) GlyphIndex {
	if otf == nil || otf.CMap == nil {
		return 0
	}
	return otf.CMap.Lookup(r)
}

// Warnings returns all warnings encountered during verification. Warnings are
// collected only if the font has been parsed with option VerifyTables.
func (otf *Font) Warnings() []FontWarning {
	if otf.warnings == nil {
		return []FontWarning{}
	}
	return otf.warnings
}

// GlyphIndex is a glyph index in a font.
type GlyphIndex uint16

// --- Platforms and encodings -----------------------------------------------

// PlatformID identifies the platform of a cmap encoding record.
type PlatformID uint16

const (
	PlatformUnicode   PlatformID = 0
	PlatformMacintosh PlatformID = 1 // use is discouraged
	PlatformISO       PlatformID = 2 // deprecated
	PlatformWindows   PlatformID = 3
	PlatformCustom    PlatformID = 4
)

func (p PlatformID) String() string {
	switch p {
	case PlatformUnicode:
		return "Unicode"
	case PlatformMacintosh:
		return "Macintosh"
	case PlatformISO:
		return "ISO"
	case PlatformWindows:
		return "Windows"
	case PlatformCustom:
		return "Custom"
	}
	return fmt.Sprintf("Platform(%d)", uint16(p))
}

// EncodingID identifies a platform-specific encoding of a cmap encoding record.
// Values are interpreted relative to a PlatformID.
type EncodingID uint16

const (
	EncodingUnicodeBMP     EncodingID = 3  // Unicode platform, BMP only
	EncodingUnicodeFull    EncodingID = 4  // Unicode platform, full repertoire
	EncodingWindowsSymbol  EncodingID = 0  // Windows platform, symbol font
	EncodingWindowsBMP     EncodingID = 1  // Windows platform, Unicode BMP
	EncodingWindowsUCS4    EncodingID = 10 // Windows platform, Unicode full repertoire
	AnyEncoding            EncodingID = 0xffff
	EncodingMacintoshRoman EncodingID = 0
)

// --- Tag -------------------------------------------------------------------

// Tag is defined by the spec as:
// Array of four uint8s (length = 32 bits) used to identify a table, design-variation axis,
// script, language system, feature, or baseline
type Tag uint32

// MakeTag creates a Tag from 4 bytes, e.g.,
// If b is shorter or longer, it will be silently extended or cut as appropriate
//
//	MakeTag([]byte("cmap"))
func MakeTag(b []byte) Tag {
	if b == nil {
		b = []byte{0, 0, 0, 0}
	} else if len(b) > 4 {
		b = b[:4]
	} else if len(b) < 4 {
		b = append([]byte{0, 0, 0, 0}[:4-len(b)], b...)
	}
	return Tag(u32(b))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(u32([]byte(t)))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}

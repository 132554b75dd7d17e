/*
Package sfntcmap loads TrueType/OpenType fonts and maps code-points to glyphs.

The heavy lifting is done by package ot, which decodes a font's table directory
and its 'cmap' table. This package adds the plumbing to get at font files: loading
them into memory, or keeping them open and reading from them on demand.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package sfntcmap

import (
	"os"

	"github.com/npillmayer/sfntcmap/ot"
	"github.com/npillmayer/sfntcmap/otquery"
	"golang.org/x/image/font/sfnt"
)

// FromBinary parses raw OpenType bytes and returns a decoded font.
//
// The input is expected to contain a complete single-font SFNT stream.
// It must not change after parsing for the font to be usable.
func FromBinary(data []byte, opts ...ot.ParseOption) (*ot.Font, error) {
	return ot.Parse(ot.ReaderFromBytes(data), opts...)
}

// FamilyName extracts family and subfamily names from a font's `name` table.
//
// Returned values are empty if no matching records exist or if records cannot be
// decoded by the current name-table reader.
func FamilyName(f *ot.Font) (family, subfamily string) {
	for nameId, stringValue := range otquery.NamesRange(f) {
		switch nameId {
		case sfnt.NameIDFamily:
			family = stringValue
		case sfnt.NameIDSubfamily:
			subfamily = stringValue
		}
	}
	return
}

// FontFile is a font decoded from a file which is kept open. Table data is read
// from the file on demand, thus the file has to stay open as long as the font
// is in use. Clients must call Close when done.
type FontFile struct {
	Filepath string
	OT       *ot.Font
	file     *os.File
	size     int64
}

// OpenFontFile opens a font file and decodes its table directory and 'cmap' table,
// without reading the whole file into memory.
func OpenFontFile(fontfile string, opts ...ot.ParseOption) (*FontFile, error) {
	file, err := os.Open(fontfile)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	otf, err := ot.Parse(ot.NewReader(file, info.Size()), opts...)
	if err != nil {
		file.Close()
		return nil, err
	}
	tracer().Debugf("opened font file %s with %d tables", fontfile, len(otf.TableTags()))
	return &FontFile{Filepath: fontfile, OT: otf, file: file, size: info.Size()}, nil
}

// Close closes the underlying file. The decoded structures remain usable, but
// reading table data will fail.
func (ff *FontFile) Close() error {
	if ff == nil || ff.file == nil {
		return nil
	}
	err := ff.file.Close()
	ff.file = nil
	return err
}

// Verify checks the table directory against the file contents, see
// ot.TableDirectory.Verify. A closed font file yields no findings.
func (ff *FontFile) Verify() []ot.FontWarning {
	if ff == nil || ff.file == nil {
		return nil
	}
	return ff.OT.Directory.Verify(ot.NewReader(ff.file, ff.size))
}

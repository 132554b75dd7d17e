/*
Package ot reads the table directory and the character-to-glyph mapping of
TrueType/OpenType (sfnt) font files.
Intended audience for this package are:

▪︎ tools which need to list the tables contained in a font file

▪︎ applications which need to map code-points to glyph indices without pulling in a
full font rasterizer

▪︎ any application needing to inspect the 'cmap' table of a font, its encoding records
and its segmented format-4 subtable

Package `ot` will decode exactly three structures of a font: the table directory at the
start of the file, the header of the 'cmap' table, and one format-4 subtable of 'cmap'.
Every other table is exposed as an offset/length pair only; clients are free to read
its bytes and interpret them themselves (see package `otquery` for a few examples).

All decoding happens through a Reader, which provides checked big-endian reads and
absolute seeks over a random-access byte source (a byte slice or an open file). Any
read beyond the end of the source, any seek outside of it and any structural
inconsistency of a table results in a typed error; there is no best-effort decoding
and no partially populated structure is ever returned.

# Selecting a cmap subtable

A 'cmap' table may carry more than one subtable, each identified by a pair of
platform ID and encoding ID. Clients select the subtable to decode by handing an
ordered list of EncodingPreferences to DecodeCmap (or option Prefer to Parse). The
default prefers Windows Unicode BMP (3/1) and falls back to any encoding of the
Unicode platform (0/*).

# Status

Only format 4 subtables are supported. Font collections (*.ttc) are not supported.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>

The format-4 lookup arithmetic follows golang.org/x/image/font/sfnt/cmap.go.

	Copyright 2017 The Go Authors. All rights reserved.
	Use of this source code is governed by a BSD-style
	license that can be found in the LICENSE file.
*/
package ot

/*
Layout of the structures decoded by this package, for reference
(https://docs.microsoft.com/en-us/typography/opentype/spec/otff and
https://docs.microsoft.com/en-us/typography/opentype/spec/cmap):

	Table Directory         uint32 sfntVersion, uint16 numTables, searchRange,
	                        entrySelector, rangeShift, TableRecord[numTables]
	TableRecord             Tag tableTag, uint32 checksum, offset, length
	cmap header             uint16 version, numTables, EncodingRecord[numTables]
	EncodingRecord          uint16 platformID, encodingID, Offset32 subtableOffset
	Format 4                uint16 format, length, language, segCountX2, searchRange,
	                        entrySelector, rangeShift, endCode[segCount], reservedPad,
	                        startCode[segCount], int16 idDelta[segCount],
	                        idRangeOffset[segCount], glyphIdArray[ ]
*/

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}

func assertEqualInt(name string, a, b int) {
	if a != b {
		panic(fmt.Sprintf("assertion [%s] failed: %d != %d", name, a, b))
	}
}

package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Debugf("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "cmap", "encoding", "encodings":
		pterm.Info.Println("cmap / EncodingRecord")
		pterm.Println(`
	The cmap header lists one EncodingRecord per sub-table:
	+-------------+-------------+--------------------------------------+
	| Platform ID | Encoding ID | Offset of sub-table, relative to cmap |
	+-------------+-------------+--------------------------------------+
	Sub-tables are selected by preference, default is Windows/1 (Unicode BMP),
	then Unicode/* (any encoding). Only format 4 sub-tables are decoded.
	`)
	case "segments", "format4", "lookup":
		pterm.Info.Println("Format 4 segments")
		pterm.Println(`
	A format 4 sub-table holds four parallel arrays, one entry per segment:
	+-----------+---------+---------+---------------+
	| startCode | endCode | idDelta | idRangeOffset |
	+-----------+---------+---------+---------------+
	For a code-point c in [startCode, endCode]:
	  idRangeOffset = 0  =>  glyph = (c + idDelta) mod 65536
	  otherwise          =>  glyph is taken from glyphIdArray, plus idDelta
	The last segment always ends at 0xFFFF.
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	tables             list the table directory
	table:<tag>        select a table and dump its first bytes, e.g. table:head
	cmap               list cmap encoding records and the selected sub-table
	segments[:n]       list (the first n) segments of the format 4 sub-table
	lookup:<cp>        map a code-point to a glyph, e.g. lookup:A or lookup:U+00E4
	reverse:<gid>      find the smallest code-point mapped to a glyph
	verify             check table checksums, alignment and glyph ranges
	names              list entries of table 'name'
	help[:topic]       this help, topics are 'cmap' and 'segments'
	quit               leave
	Commands may be chained on one line, separated by blanks.
	`)
	}
}

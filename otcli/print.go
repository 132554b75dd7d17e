package main

import (
	"fmt"

	"github.com/npillmayer/sfntcmap/ot"
	"github.com/pterm/pterm"
	"golang.org/x/text/unicode/runenames"
)

func cmapOp(intp *Intp, op *Op) (error, bool) {
	cmap := intp.font.OT.CMap
	pterm.Printf("cmap version %d at offset %d, %d encoding records\n",
		cmap.Version, cmap.Offset, cmap.NumTables)
	data := [][]string{
		{"#", "Platform", "Encoding", "Offset", "Absolute", "Selected"},
	}
	for i, rec := range cmap.EncodingRecords {
		sel := ""
		if rec == cmap.Selected {
			sel = "*"
		}
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%d (%s)", rec.PlatformID, rec.PlatformID),
			fmt.Sprintf("%d", rec.EncodingID),
			fmt.Sprintf("%d", rec.Offset),
			fmt.Sprintf("%d", rec.Absolute(cmap.Offset)),
			sel,
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	f4 := cmap.Subtable
	low, high := f4.CodeRange()
	pterm.Printf("format %d, length %d, language %d, %d segments, %d glyph ids, code-points %#U … %#U\n",
		f4.Format, f4.Length, f4.Language, f4.SegmentCount(), len(f4.GlyphIDArray), low, high)
	return nil, false
}

// segmentsOp prints the segments of the selected format 4 sub-table. An optional
// argument limits the number of segments printed.
func segmentsOp(intp *Intp, op *Op) (error, bool) {
	f4 := intp.font.OT.CMap.Subtable
	limit := f4.SegmentCount()
	if !op.noArg() {
		n, err := op.intArg()
		if err != nil {
			return err, false
		}
		limit = min(n, limit)
	}
	data := [][]string{
		{"#", "Start", "End", "Delta", "RangeOffset"},
	}
	for i, seg := range f4.Segments() {
		if i >= limit {
			break
		}
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("U+%04X", seg.Start),
			fmt.Sprintf("U+%04X", seg.End),
			fmt.Sprintf("%d", seg.Delta),
			fmt.Sprintf("%d", seg.RangeOffset),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	if limit < f4.SegmentCount() {
		pterm.Printf("… %d more segments\n", f4.SegmentCount()-limit)
	}
	return nil, false
}

func lookupOp(intp *Intp, op *Op) (error, bool) {
	r, err := op.codepointArg()
	if err != nil {
		return err, false
	}
	g := intp.font.OT.Lookup(r)
	pterm.Printf("%#U %s => glyph %d\n", r, runenames.Name(r), g)
	return nil, false
}

func reverseOp(intp *Intp, op *Op) (error, bool) {
	n, err := op.intArg()
	if err != nil {
		return err, false
	}
	if n < 0 || n > 0xffff {
		return fmt.Errorf("not a glyph index: %d", n), false
	}
	r := intp.font.OT.CMap.Subtable.ReverseLookup(ot.GlyphIndex(n))
	if r == 0 {
		pterm.Printf("glyph %d is not mapped from any code-point\n", n)
		return nil, false
	}
	pterm.Printf("glyph %d <= %#U %s\n", n, r, runenames.Name(r))
	return nil, false
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/sfntcmap"
	"github.com/npillmayer/sfntcmap/ot"
	"github.com/npillmayer/sfntcmap/otquery"
	"github.com/thatisuday/commando"
	"golang.org/x/text/unicode/runenames"
)

func runDirCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	ff := mustOpenFont(args)
	findings := printDirectory(os.Stdout, ff, args["tables"].Value, mustFlagBool(flags["verify"], "verify"))
	if err := ff.Close(); err != nil {
		fatalf("%v", err)
	}
	if findings > 0 {
		os.Exit(2)
	}
}

// printDirectory prints the table directory of a font, optionally restricted to a
// comma/space separated list of tags. With verify set, the findings of verification
// are printed as well; their number is returned.
func printDirectory(w io.Writer, ff *sfntcmap.FontFile, tables string, verify bool) int {
	dir := ff.OT.Directory
	fmt.Fprintf(w, "Path: %s\n", ff.Filepath)
	fmt.Fprintf(w, "Type: %s\n", otquery.FontType(ff.OT))
	fmt.Fprintf(w, "SFNT Version: 0x%08X\n", dir.SfntVersion)
	fmt.Fprintf(w, "Num Tables: %d\n", dir.NumTables)
	fmt.Fprintf(w, "Search Range: %d\n", dir.SearchRange)
	fmt.Fprintf(w, "Entry Selector: %d\n", dir.EntrySelector)
	fmt.Fprintf(w, "Range Shift: %d\n", dir.RangeShift)
	fmt.Fprintln(w)

	records := dir.Tables
	if len(tables) > 0 {
		records = records[:0:0]
		for _, name := range splitCSVSpace(tables) {
			rec, ok := dir.FindTable(ot.T(name)).Unwrap()
			if !ok {
				fmt.Fprintf(w, "table %s: missing\n", name)
				continue
			}
			records = append(records, rec)
		}
	}
	fmt.Fprintf(w, "%-6s %-10s %10s %10s\n", "TAG", "CHECKSUM", "OFFSET", "LENGTH")
	for _, rec := range records {
		fmt.Fprintf(w, "%-6s 0x%08X %10d %10d\n", rec.Tag, rec.Checksum, rec.Offset, rec.Length)
	}
	if !verify {
		return 0
	}
	warnings := ff.Verify()
	warnings = append(warnings, otquery.CheckGlyphRange(ff.OT)...)
	for _, warning := range warnings {
		fmt.Fprintln(w, warning.String())
	}
	fmt.Fprintf(w, "Issues: warnings=%d\n", len(warnings))
	return len(warnings)
}

func runCmapCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	ff := mustOpenFont(args, encodingOptions(flags)...)
	defer ff.Close()
	cmap := ff.OT.CMap

	fmt.Printf("cmap Version: %d\n", cmap.Version)
	fmt.Printf("cmap Offset: %d\n", cmap.Offset)
	fmt.Printf("Num Encodings: %d\n", cmap.NumTables)
	for i, rec := range cmap.EncodingRecords {
		mark := " "
		if rec == cmap.Selected {
			mark = "*"
		}
		fmt.Printf("%s [%d] platform=%d (%s) encoding=%d offset=%d absolute=%d\n", mark, i,
			rec.PlatformID, rec.PlatformID, rec.EncodingID, rec.Offset, rec.Absolute(cmap.Offset))
	}
	f4 := cmap.Subtable
	low, high := f4.CodeRange()
	fmt.Printf("Selected: %s\n", cmap.Selected)
	fmt.Printf("Format: %d, Length: %d, Language: %d\n", f4.Format, f4.Length, f4.Language)
	fmt.Printf("Segments: %d, Glyph IDs: %d, Range: U+%04X..U+%04X\n",
		f4.SegmentCount(), len(f4.GlyphIDArray), low, high)

	if mustFlagBool(flags["segments"], "segments") {
		for i, seg := range f4.Segments() {
			fmt.Printf("%5d %s\n", i, seg)
		}
	}
}

func runLookupCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	codepoints, err := parseCodepoints(args["codepoints"].Value)
	if err != nil {
		fatalf("%v", err)
	}
	if len(codepoints) == 0 {
		fatalf("no code-points given")
	}
	ff := mustOpenFont(args, encodingOptions(flags)...)
	defer ff.Close()
	for _, r := range codepoints {
		g := ff.OT.Lookup(r)
		fmt.Printf("U+%04X\t%d\t%s\n", r, g, runenames.Name(r))
	}
}

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/npillmayer/sfntcmap/ot"
	"github.com/npillmayer/sfntcmap/otquery"
	"github.com/pterm/pterm"
)

func tablesOp(intp *Intp, op *Op) (error, bool) {
	dir := intp.font.OT.Directory
	pterm.Printf("SFNT version %#08x (%s), %d tables, search range %d, entry selector %d, range shift %d\n",
		dir.SfntVersion, otquery.FontType(intp.font.OT), dir.NumTables,
		dir.SearchRange, dir.EntrySelector, dir.RangeShift)
	data := [][]string{
		{"Tag", "Checksum", "Offset", "Length"},
	}
	for _, rec := range dir.Tables {
		data = append(data, []string{
			rec.Tag.String(),
			fmt.Sprintf("%#08x", rec.Checksum),
			fmt.Sprintf("%d", rec.Offset),
			fmt.Sprintf("%d", rec.Length),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

// tableOp selects a table by tag and prints its record and leading bytes.
// Without argument, the currently selected table is printed.
func tableOp(intp *Intp, op *Op) (error, bool) {
	if !op.noArg() {
		tag := ot.T(op.arg)
		intp.table = intp.font.OT.Table(tag)
		if intp.table.IsNone() {
			return fmt.Errorf("table %q not found in font", tag), false
		}
		tracer().Infof("setting table: %v", tag)
	}
	rec, ok := intp.table.Unwrap()
	if !ok {
		return ErrNoTable, false
	}
	pterm.Printf("%v\n", rec)
	data, err := intp.font.OT.TableData(rec.Tag)
	if err != nil {
		return err, false
	}
	if len(data) > 64 {
		data = data[:64]
	}
	pterm.Println(hex.Dump(data))
	return nil, false
}

func verifyOp(intp *Intp, op *Op) (error, bool) {
	r := ot.ReaderFromBytes(intp.font.Binary)
	warnings := intp.font.OT.Directory.Verify(r)
	warnings = append(warnings, otquery.CheckGlyphRange(intp.font.OT)...)
	if len(warnings) == 0 {
		pterm.Info.Println("no findings")
		return nil, false
	}
	for _, w := range warnings {
		pterm.Println(w.String())
	}
	pterm.Printf("%d finding(s)\n", len(warnings))
	return nil, false
}

func namesOp(intp *Intp, op *Op) (error, bool) {
	data := [][]string{
		{"Name ID", "Value"},
	}
	for id, value := range otquery.NamesRange(intp.font.OT) {
		data = append(data, []string{fmt.Sprintf("%d", id), value})
	}
	if len(data) == 1 {
		pterm.Info.Println("font has no readable name records")
		return nil, false
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

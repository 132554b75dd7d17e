package ot

import (
	"math/bits"
)

// TableChecksum calculates the checksum of a table's data, as the sum of its
// big-endian uint32 words. A trailing partial word is padded with zeros.
func TableChecksum(data []byte) uint32 {
	var sum uint32
	for len(data) >= 4 {
		sum += u32(data)
		data = data[4:]
	}
	if len(data) > 0 {
		var last [4]byte
		copy(last[:], data)
		sum += u32(last[:])
	}
	return sum
}

// SearchHints returns the values for searchRange, entrySelector and rangeShift
// which a table directory with numTables entries should declare.
func SearchHints(numTables uint16) (searchRange, entrySelector, rangeShift uint16) {
	if numTables == 0 {
		return 0, 0, 0
	}
	entrySelector = uint16(bits.Len16(numTables) - 1) // floor(log2(numTables))
	searchRange = (1 << entrySelector) * tableRecordSize
	rangeShift = numTables*tableRecordSize - searchRange
	return
}

// Verify checks the table directory against the font data in r and returns a list
// of findings. Verify never fails; problems which would prevent decoding are
// reported by DecodeTableDirectory in the first place.
//
// Checks performed:
//
//   - sfntVersion is one of the known values
//   - table records are sorted by tag
//   - "all tables must begin on four byte boundries"
//   - search hints match the number of tables
//   - checksums match the table data (for 'head' with checkSumAdjustment zeroed)
//
// r's position is changed.
func (td *TableDirectory) Verify(r *Reader) []FontWarning {
	ec := &errorCollector{}
	switch td.SfntVersion {
	case SfntVersionTrueType, SfntVersionCFF, SfntVersionApple, SfntVersionType1:
	default:
		ec.addWarning(0, 0, "unknown sfnt version %#08x", td.SfntVersion)
	}
	sr, es, rs := SearchHints(td.NumTables)
	if td.SearchRange != sr || td.EntrySelector != es || td.RangeShift != rs {
		ec.addWarning(0, 4, "search hints (%d, %d, %d) do not match %d tables, expected (%d, %d, %d)",
			td.SearchRange, td.EntrySelector, td.RangeShift, td.NumTables, sr, es, rs)
	}
	var prevTag Tag
	for i, rec := range td.Tables {
		if i > 0 && rec.Tag < prevTag {
			ec.addWarning(rec.Tag, 0, "table order: %s follows %s", rec.Tag, prevTag)
		}
		prevTag = rec.Tag
		if rec.Offset&3 != 0 {
			ec.addWarning(rec.Tag, rec.Offset, "table does not begin on a four byte boundary")
		}
		data, err := rec.Data(r)
		if err != nil {
			ec.addWarning(rec.Tag, rec.Offset, "cannot read table data: %v", err)
			continue
		}
		if rec.Tag == T("head") && len(data) >= 12 {
			// checkSumAdjustment is excluded from the head table's own checksum
			data[8], data[9], data[10], data[11] = 0, 0, 0, 0
		}
		if sum := TableChecksum(data); sum != rec.Checksum {
			ec.addWarning(rec.Tag, rec.Offset, "checksum mismatch: declared %#08x, calculated %#08x",
				rec.Checksum, sum)
		}
	}
	if !ec.hasWarnings() {
		tracer().Debugf("table directory verified without findings")
	}
	return ec.warnings
}

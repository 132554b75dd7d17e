package otquery

import (
	"github.com/npillmayer/sfntcmap/ot"
)

// HeadTableInfo is a typed query view over OpenType table 'head'.
type HeadTableInfo struct {
	MajorVersion       uint16
	MinorVersion       uint16
	FontRevision       uint32
	CheckSumAdjustment uint32
	MagicNumber        uint32
	Flags              uint16
	UnitsPerEm         uint16
	Created            int64
	Modified           int64
	XMin               int16
	YMin               int16
	XMax               int16
	YMax               int16
	MacStyle           uint16
	LowestRecPPEM      uint16
	FontDirectionHint  int16
	IndexToLocFormat   int16
	GlyphDataFormat    int16
}

const (
	headTableSize   = 54
	headMagicNumber = 0x5F0F3CF5
)

// HeadInfo decodes table 'head' from its raw bytes.
// Returns (info, true) on success, or (zero, false) if the table is missing or too short.
// A wrong magic number is traced, but does not make HeadInfo fail.
func HeadInfo(otf *ot.Font) (HeadTableInfo, bool) {
	var info HeadTableInfo
	b := tableBytes(otf, "head")
	if len(b) < headTableSize {
		return info, false
	}
	f := fields{r: ot.ReaderFromBytes(b)}
	info.MajorVersion = f.u16()
	info.MinorVersion = f.u16()
	info.FontRevision = f.u32()
	info.CheckSumAdjustment = f.u32()
	info.MagicNumber = f.u32()
	info.Flags = f.u16()
	info.UnitsPerEm = f.u16()
	info.Created = f.i64()
	info.Modified = f.i64()
	info.XMin = f.i16()
	info.YMin = f.i16()
	info.XMax = f.i16()
	info.YMax = f.i16()
	info.MacStyle = f.u16()
	info.LowestRecPPEM = f.u16()
	info.FontDirectionHint = f.i16()
	info.IndexToLocFormat = f.i16()
	info.GlyphDataFormat = f.i16()
	if f.err != nil {
		tracer().Errorf("decoding table head: %v", f.err)
		return HeadTableInfo{}, false
	}
	if info.MagicNumber != headMagicNumber {
		tracer().Infof("table head has magic number %#x", info.MagicNumber)
	}
	return info, true
}

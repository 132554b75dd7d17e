package otquery

import (
	"github.com/npillmayer/sfntcmap/ot"
)

// MaxPTableInfo is a typed query view over OpenType table 'maxp'.
// For version 1.0 tables, the TrueType profile fields are decoded if present.
type MaxPTableInfo struct {
	VersionFixed uint32 // 0x00005000 for CFF fonts, 0x00010000 for TrueType fonts
	NumGlyphs    uint16

	// TrueType profile fields (version 1.0 only)
	HasExtendedProfile    bool
	MaxPoints             uint16
	MaxContours           uint16
	MaxCompositePoints    uint16
	MaxCompositeContours  uint16
	MaxZones              uint16
	MaxTwilightPoints     uint16
	MaxStorage            uint16
	MaxFunctionDefs       uint16
	MaxInstructionDefs    uint16
	MaxStackElements      uint16
	MaxSizeOfInstructions uint16
	MaxComponentElements  uint16
	MaxComponentDepth     uint16
}

const (
	maxpMinSize = 6
	maxpV10Size = 32
)

// MaxPInfo decodes table 'maxp' from its raw bytes.
// Returns (info, true) on success, or (zero, false) if the table is missing or too short.
func MaxPInfo(otf *ot.Font) (MaxPTableInfo, bool) {
	var info MaxPTableInfo
	b := tableBytes(otf, "maxp")
	if len(b) < maxpMinSize {
		return info, false
	}
	f := fields{r: ot.ReaderFromBytes(b)}
	info.VersionFixed = f.u32()
	info.NumGlyphs = f.u16()
	if info.VersionFixed != 0x00010000 || len(b) < maxpV10Size {
		return info, f.err == nil
	}
	info.HasExtendedProfile = true
	profile := []*uint16{
		&info.MaxPoints, &info.MaxContours, &info.MaxCompositePoints, &info.MaxCompositeContours,
		&info.MaxZones, &info.MaxTwilightPoints, &info.MaxStorage, &info.MaxFunctionDefs,
		&info.MaxInstructionDefs, &info.MaxStackElements, &info.MaxSizeOfInstructions,
		&info.MaxComponentElements, &info.MaxComponentDepth,
	}
	for _, field := range profile {
		*field = f.u16()
	}
	return info, f.err == nil
}

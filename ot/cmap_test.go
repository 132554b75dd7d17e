package ot

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/sfntcmap/internal/fonttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cmapAt places a cmap table at a non-zero offset, with some padding in front.
func cmapAt(pad int, subtables ...fonttest.Subtable) ([]byte, uint32) {
	b := make([]byte, pad)
	return append(b, fonttest.Cmap(subtables...)...), uint32(pad)
}

func TestCmapRelativeOffsets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	data, offset := cmapAt(100,
		fonttest.Subtable{Platform: 3, Encoding: 1, Data: fonttest.Format4(fonttest.SampleSegments()...)},
	)
	cmap, err := DecodeCmap(ReaderFromBytes(data), offset, nil)
	require.NoError(t, err)
	assert.Equal(t, uint16(0), cmap.Version)
	assert.Equal(t, uint16(1), cmap.NumTables)
	require.Len(t, cmap.EncodingRecords, 1)
	rec := cmap.EncodingRecords[0]
	assert.Equal(t, uint32(12), rec.Offset, "offset is relative to cmap")
	assert.Equal(t, int64(112), rec.Absolute(offset))
	assert.Equal(t, PlatformWindows, cmap.Selected.PlatformID)
	require.NotNil(t, cmap.Subtable)
	assert.Equal(t, GlyphIndex(26), cmap.Lookup('Z'))
}

func TestCmapPreferences(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	unicodeBMP := fonttest.Format4(fonttest.Segment{Start: 0x41, End: 0x41, Delta: 1}, fonttest.Sentinel)
	windowsBMP := fonttest.Format4(fonttest.Segment{Start: 0x41, End: 0x41, Delta: 2}, fonttest.Sentinel)
	macRoman := fonttest.Format4(fonttest.Segment{Start: 0x41, End: 0x41, Delta: 3}, fonttest.Sentinel)
	data, offset := cmapAt(0,
		fonttest.Subtable{Platform: 0, Encoding: 3, Data: unicodeBMP},
		fonttest.Subtable{Platform: 1, Encoding: 0, Data: macRoman},
		fonttest.Subtable{Platform: 3, Encoding: 1, Data: windowsBMP},
	)
	for _, c := range []struct {
		prefs []EncodingPreference
		glyph GlyphIndex
	}{
		{nil, 0x43}, // default prefers 3/1
		{[]EncodingPreference{{PlatformUnicode, AnyEncoding}}, 0x42},
		{[]EncodingPreference{{PlatformUnicode, EncodingUnicodeBMP}}, 0x42},
		{[]EncodingPreference{{PlatformMacintosh, EncodingMacintoshRoman}, {PlatformWindows, EncodingWindowsBMP}}, 0x44},
		{[]EncodingPreference{{PlatformWindows, EncodingWindowsUCS4}, {PlatformUnicode, AnyEncoding}}, 0x42},
	} {
		cmap, err := DecodeCmap(ReaderFromBytes(data), offset, c.prefs)
		require.NoError(t, err, "preferences %v", c.prefs)
		assert.Equal(t, c.glyph, cmap.Lookup('A'), "preferences %v", c.prefs)
	}
	_, err := DecodeCmap(ReaderFromBytes(data), offset, []EncodingPreference{{PlatformCustom, AnyEncoding}})
	var unsupp *UnsupportedFormatError
	assert.True(t, errors.As(err, &unsupp), "expected unsupported format, got %v", err)
}

func TestCmapSkipsOtherFormats(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	data, offset := cmapAt(8,
		fonttest.Subtable{Platform: 3, Encoding: 10, Data: fonttest.Format12([3]uint32{0x41, 0x5a, 1})},
		fonttest.Subtable{Platform: 0, Encoding: 4, Data: fonttest.Format12([3]uint32{0x41, 0x5a, 1})},
		fonttest.Subtable{Platform: 0, Encoding: 3, Data: fonttest.Format4(fonttest.SampleSegments()...)},
	)
	prefs := []EncodingPreference{{PlatformWindows, AnyEncoding}, {PlatformUnicode, AnyEncoding}}
	cmap, err := DecodeCmap(ReaderFromBytes(data), offset, prefs)
	require.NoError(t, err)
	assert.Equal(t, EncodingRecord{PlatformUnicode, EncodingUnicodeBMP, cmap.EncodingRecords[2].Offset}, cmap.Selected)
	assert.Equal(t, GlyphIndex(1), cmap.Lookup('A'))
	//
	only12, offset := cmapAt(0,
		fonttest.Subtable{Platform: 3, Encoding: 10, Data: fonttest.Format12([3]uint32{0x41, 0x5a, 1})},
	)
	_, err = DecodeCmap(ReaderFromBytes(only12), offset, prefs)
	var unsupp *UnsupportedFormatError
	require.True(t, errors.As(err, &unsupp), "expected unsupported format, got %v", err)
	assert.Equal(t, uint16(12), unsupp.Format)
}

func TestCmapHeaderValidation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	sub := fonttest.Subtable{Platform: 3, Encoding: 1, Data: fonttest.Format4(fonttest.Sentinel)}
	// version must be 0
	data, offset := cmapAt(4, sub)
	binary.BigEndian.PutUint16(data[4:], 1)
	_, err := DecodeCmap(ReaderFromBytes(data), offset, nil)
	var malformed *MalformedSubtableError
	assert.True(t, errors.As(err, &malformed), "expected malformed header, got %v", err)
	// sub-table offset outside of source
	data, offset = cmapAt(4, sub)
	binary.BigEndian.PutUint32(data[4+4+4:], 5000)
	_, err = DecodeCmap(ReaderFromBytes(data), offset, nil)
	var inv *InvalidOffsetError
	assert.True(t, errors.As(err, &inv), "expected invalid offset, got %v", err)
	// numTables beyond end of source
	data, offset = cmapAt(4, sub)
	binary.BigEndian.PutUint16(data[4+2:], 1000)
	_, err = DecodeCmap(ReaderFromBytes(data), offset, nil)
	var trunc *TruncatedInputError
	assert.True(t, errors.As(err, &trunc), "expected truncation, got %v", err)
	// cmap offset outside of source
	_, err = DecodeCmap(ReaderFromBytes(data), uint32(len(data)+4), nil)
	assert.True(t, errors.As(err, &inv), "expected invalid offset, got %v", err)
}

func TestCmapTruncatedSubtable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	data, offset := cmapAt(0,
		fonttest.Subtable{Platform: 3, Encoding: 1, Data: fonttest.Format4(fonttest.SampleSegments()...)},
	)
	cmap, err := DecodeCmap(ReaderFromBytes(data[:len(data)-3]), offset, nil)
	var trunc *TruncatedInputError
	assert.True(t, errors.As(err, &trunc), "expected truncation, got %v", err)
	assert.Nil(t, cmap)
}

func TestEncodingPreferenceMatches(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	rec := EncodingRecord{PlatformID: PlatformWindows, EncodingID: EncodingWindowsBMP}
	assert.True(t, EncodingPreference{PlatformWindows, EncodingWindowsBMP}.Matches(rec))
	assert.True(t, EncodingPreference{PlatformWindows, AnyEncoding}.Matches(rec))
	assert.False(t, EncodingPreference{PlatformWindows, EncodingWindowsUCS4}.Matches(rec))
	assert.False(t, EncodingPreference{PlatformUnicode, AnyEncoding}.Matches(rec))
	assert.Equal(t, "Windows/*", EncodingPreference{PlatformWindows, AnyEncoding}.String())
	assert.Equal(t, "Unicode/3", EncodingPreference{PlatformUnicode, EncodingUnicodeBMP}.String())
}

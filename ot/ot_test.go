package ot

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/sfntcmap/internal/fonttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	tag := Tag(0x636d6170)
	if tag.String() != "cmap" {
		t.Errorf("expected tag 0x636d6170 to be 'cmap', is %s", tag.String())
	}
	tag = MakeTag([]byte("cmap"))
	if tag.String() != "cmap" {
		t.Errorf("expected tag MakeTag(cmap) to be 'cmap', is %s", tag.String())
	}
	tag = T("cmap")
	if tag.String() != "cmap" {
		t.Errorf("expected tag T(cmap) to be 'cmap', is %s", tag.String())
	}
	tag = T("cvt")
	if tag.String() != "cvt " {
		t.Errorf("expected tag T(cvt) to be 'cvt ', is %q", tag.String())
	}
}

func TestPlatformString(t *testing.T) {
	if PlatformWindows.String() != "Windows" {
		t.Errorf("expected platform 3 to be 'Windows', is %s", PlatformWindows)
	}
	if PlatformID(9).String() != "Platform(9)" {
		t.Errorf("expected platform 9 to be 'Platform(9)', is %s", PlatformID(9))
	}
}

func TestOption(t *testing.T) {
	some := Some(42)
	none := None[int]()
	if !some.IsSome() || some.IsNone() {
		t.Errorf("expected Some(42) to be present")
	}
	if none.IsSome() || !none.IsNone() {
		t.Errorf("expected None to be absent")
	}
	if v, ok := some.Unwrap(); !ok || v != 42 {
		t.Errorf("expected Unwrap to yield (42, true), is (%d, %v)", v, ok)
	}
	if none.Or(7) != 7 || some.Or(7) != 42 {
		t.Errorf("Or does not work as expected")
	}
	if some.String() != "Some(42)" || none.String() != "None" {
		t.Errorf("unexpected string representations %s, %s", some, none)
	}
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected MustUnwrap of None to panic")
		}
	}()
	none.MustUnwrap()
}

// ---------------------------------------------------------------------------

func TestParseSampleFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf, err := Parse(ReaderFromBytes(fonttest.SampleFont()))
	require.NoError(t, err)
	assert.Equal(t, []Tag{T("cmap"), T("head"), T("maxp"), T("name")}, otf.TableTags())
	require.NotNil(t, otf.CMap)
	assert.Equal(t, EncodingRecord{PlatformWindows, EncodingWindowsBMP, 12}, otf.CMap.Selected)
	assert.Equal(t, GlyphIndex(1), otf.Lookup('A'))
	assert.Equal(t, GlyphIndex(31), otf.Lookup('c'))
	assert.Equal(t, GlyphIndex(0), otf.Lookup('€'))
	assert.Empty(t, otf.Warnings(), "warnings are collected only on request")
	rec, ok := otf.Table(T("cmap")).Unwrap()
	require.True(t, ok)
	assert.Equal(t, otf.CMap.Offset, rec.Offset)
	assert.True(t, otf.Table(T("GSUB")).IsNone())
}

func TestParseMissingCmap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	font := fonttest.Font(fonttest.Table{Tag: "head", Data: fonttest.Head(1000, 0)})
	otf, err := Parse(ReaderFromBytes(font))
	var unsupp *UnsupportedFormatError
	require.True(t, errors.As(err, &unsupp), "expected unsupported format, got %v", err)
	assert.Equal(t, T("cmap"), unsupp.Table)
	assert.Equal(t, "table missing", unsupp.Issue)
	assert.Nil(t, otf)
}

func TestParsePrefer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	font := fonttest.Font(fonttest.Table{Tag: "cmap", Data: fonttest.Cmap(
		fonttest.Subtable{Platform: 0, Encoding: 3, Data: fonttest.Format4(
			fonttest.Segment{Start: 0x41, End: 0x41, Delta: 1}, fonttest.Sentinel)},
		fonttest.Subtable{Platform: 3, Encoding: 1, Data: fonttest.Format4(
			fonttest.Segment{Start: 0x41, End: 0x41, Delta: 2}, fonttest.Sentinel)},
	)})
	otf, err := Parse(ReaderFromBytes(font))
	require.NoError(t, err)
	assert.Equal(t, GlyphIndex(0x43), otf.Lookup('A'))
	otf, err = Parse(ReaderFromBytes(font), Prefer(EncodingPreference{PlatformUnicode, AnyEncoding}))
	require.NoError(t, err)
	assert.Equal(t, GlyphIndex(0x42), otf.Lookup('A'))
	assert.Equal(t, PlatformUnicode, otf.CMap.Selected.PlatformID)
}

func TestParseVerify(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	font := fonttest.SampleFont()
	otf, err := Parse(ReaderFromBytes(font), VerifyTables)
	require.NoError(t, err)
	assert.Empty(t, otf.Warnings())
	font[len(font)-1] ^= 0xff // corrupt last byte of 'name'
	otf, err = Parse(ReaderFromBytes(font), VerifyTables)
	require.NoError(t, err, "verification never makes parsing fail")
	require.Len(t, otf.Warnings(), 1)
	assert.Equal(t, T("name"), otf.Warnings()[0].Table)
}

func TestTableData(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf, err := Parse(ReaderFromBytes(fonttest.SampleFont()))
	require.NoError(t, err)
	maxp, err := otf.TableData(T("maxp"))
	require.NoError(t, err)
	assert.Equal(t, fonttest.Maxp(43), maxp)
	head, err := otf.TableData(T("head"))
	require.NoError(t, err)
	assert.Len(t, head, 54)
	_, err = otf.TableData(T("glyf"))
	var unsupp *UnsupportedFormatError
	assert.True(t, errors.As(err, &unsupp), "expected unsupported format, got %v", err)
}

func TestParseTruncated(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	font := fonttest.SampleFont()
	for cut := range len(font) {
		otf, err := Parse(ReaderFromBytes(font[:cut]))
		var trunc *TruncatedInputError
		if !errors.As(err, &trunc) {
			t.Fatalf("font cut at %d: expected truncation error, got %v", cut, err)
		}
		assert.Nil(t, otf, "font cut at %d", cut)
	}
}

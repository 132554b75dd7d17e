package sfntcmap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/sfntcmap/internal/fonttest"
	"github.com/npillmayer/sfntcmap/ot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSampleFont(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Sample-Regular.ttf")
	require.NoError(t, os.WriteFile(path, fonttest.SampleFont(), 0o644))
	return path
}

func TestLoadOpenTypeFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opentype")
	defer teardown()
	//
	path := writeSampleFont(t)
	f, err := LoadOpenTypeFont(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Filepath)
	assert.Equal(t, "Sample Regular", f.Fontname)
	assert.Equal(t, ot.GlyphIndex(1), f.OT.Lookup('A'))
	family, subfamily := FamilyName(f.OT)
	assert.Equal(t, "Sample", family)
	assert.Equal(t, "Regular", subfamily)
}

func TestLoadMissingFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opentype")
	defer teardown()
	//
	_, err := LoadOpenTypeFont(filepath.Join(t.TempDir(), "no-such-font-xyz.ttf"))
	assert.Error(t, err)
}

func TestParseBrokenFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opentype")
	defer teardown()
	//
	font := fonttest.SampleFont()
	for _, cut := range []int{40, len(font) / 2, len(font) - 1} {
		f, err := ParseOpenTypeFont(font[:cut])
		var trunc *ot.TruncatedInputError
		assert.True(t, errors.As(err, &trunc), "cut at %d: expected truncation error, got %v", cut, err)
		assert.Nil(t, f)
	}
}

func TestOpenFontFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "opentype")
	defer teardown()
	//
	ff, err := OpenFontFile(writeSampleFont(t), ot.VerifyTables)
	require.NoError(t, err)
	assert.Empty(t, ff.OT.Warnings())
	assert.Empty(t, ff.Verify())
	assert.Equal(t, ot.GlyphIndex(42), ff.OT.Lookup(0x2002))
	maxp, err := ff.OT.TableData(ot.T("maxp"))
	require.NoError(t, err)
	assert.Equal(t, fonttest.Maxp(43), maxp)
	require.NoError(t, ff.Close())
	require.NoError(t, ff.Close(), "closing twice is harmless")
	assert.Equal(t, ot.GlyphIndex(31), ff.OT.Lookup('c'), "decoded structures outlive the file")
	_, err = ff.OT.TableData(ot.T("maxp"))
	assert.Error(t, err, "reading table data from a closed file must fail")
	assert.Nil(t, ff.Verify())
}

package ot

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderScalars(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	r := ReaderFromBytes([]byte{0x00, 0x01, 0xff, 0xfe, 'c', 'm', 'a', 'p', 0x12, 0x34, 0x56, 0x78})
	a, err := r.U16()
	require.NoError(t, err)
	assert.Equal(t, uint16(1), a)
	b, err := r.I16()
	require.NoError(t, err)
	assert.Equal(t, int16(-2), b)
	tag, err := r.Tag()
	require.NoError(t, err)
	assert.Equal(t, "cmap", tag.String())
	c, err := r.U32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), c)
	assert.Equal(t, int64(12), r.Offset())
	assert.Equal(t, int64(0), r.Remaining())
}

func TestReaderTruncation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	r := ReaderFromBytes([]byte{0x00, 0x01, 0x02})
	_, err := r.U32()
	var trunc *TruncatedInputError
	require.True(t, errors.As(err, &trunc), "expected truncation error, got %v", err)
	assert.Equal(t, int64(0), trunc.Offset)
	assert.Equal(t, 4, trunc.Need)
	assert.Equal(t, 3, trunc.Have)
	assert.Equal(t, int64(0), r.Offset(), "failed read must not advance position")
	//
	_, err = r.U16()
	require.NoError(t, err)
	_, err = r.U16()
	require.True(t, errors.As(err, &trunc))
	assert.Equal(t, int64(2), trunc.Offset)
	//
	_, err = r.U16Array(2)
	require.True(t, errors.As(err, &trunc))
	_, err = r.Bytes(2)
	require.True(t, errors.As(err, &trunc))
	b, err := r.Bytes(1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02}, b)
}

func TestReaderHugeArray(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	r := ReaderFromBytes(make([]byte, 8))
	_, err := r.U16Array(1 << 30)
	var trunc *TruncatedInputError
	assert.True(t, errors.As(err, &trunc), "expected truncation error, got %v", err)
}

func TestReaderSeek(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	r := ReaderFromBytes([]byte{0, 1, 2, 3, 4, 5, 6, 7})
	require.NoError(t, r.Seek(6))
	x, err := r.U16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0607), x)
	require.NoError(t, r.Seek(8), "seeking to the end of source is legal")
	var inv *InvalidOffsetError
	err = r.Seek(9)
	require.True(t, errors.As(err, &inv), "expected invalid offset error, got %v", err)
	assert.Equal(t, int64(9), inv.Offset)
	assert.Equal(t, int64(8), inv.Size)
	err = r.Seek(-1)
	assert.True(t, errors.As(err, &inv))
	assert.Equal(t, int64(8), r.Offset(), "failed seek must not move position")
	//
	require.NoError(t, r.Seek(2))
	require.NoError(t, r.Skip(2))
	assert.Equal(t, int64(4), r.Offset())
	assert.Error(t, r.Skip(5))
}

func TestReaderClone(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	r := ReaderFromBytes([]byte{0, 1, 2, 3})
	require.NoError(t, r.Seek(2))
	c := r.Clone()
	assert.Equal(t, int64(2), c.Offset())
	require.NoError(t, c.Seek(0))
	assert.Equal(t, int64(2), r.Offset(), "clone must be independent")
	i, err := c.I16Array(2)
	require.NoError(t, err)
	assert.Equal(t, []int16{0x0001, 0x0203}, i)
}

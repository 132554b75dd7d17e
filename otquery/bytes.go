package otquery

import "github.com/npillmayer/sfntcmap/ot"

func u16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

// fields reads consecutive big-endian fields of a table. After the first failing
// read, all further reads return 0 and err holds the first error.
type fields struct {
	r   *ot.Reader
	err error
}

func (f *fields) u16() uint16 {
	if f.err != nil {
		return 0
	}
	var n uint16
	n, f.err = f.r.U16()
	return n
}

func (f *fields) i16() int16 {
	return int16(f.u16())
}

func (f *fields) u32() uint32 {
	if f.err != nil {
		return 0
	}
	var n uint32
	n, f.err = f.r.U32()
	return n
}

// LONGDATETIME: seconds since 12:00 midnight, January 1, 1904, UTC
func (f *fields) i64() int64 {
	hi := f.u32()
	lo := f.u32()
	return int64(uint64(hi)<<32 | uint64(lo))
}

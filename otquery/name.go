package otquery

import (
	"fmt"
	"iter"

	"github.com/npillmayer/sfntcmap/ot"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/encoding/unicode"
)

const (
	nameHeaderSize = 6
	nameRecordSize = 12
)

// nameKey identifies a NameRecord entry in OpenType table 'name'.
// The key follows the OpenType NameRecord fields directly.
type nameKey struct {
	Platform ot.PlatformID
	Encoding ot.EncodingID
	Language uint16      // not supported
	Name     sfnt.NameID // see https://pkg.go.dev/golang.org/x/image/font/sfnt#NameID
}

// NamesRange yields decoded `(nameID, value)` pairs from a font's OpenType
// `name` table.
//
// Only currently supported encodings are yielded (Unicode BMP and Windows BMP),
// and malformed or out-of-bounds records are skipped.
func NamesRange(otf *ot.Font) iter.Seq2[sfnt.NameID, string] {
	binary := checkNameTableSafe(otf)
	return func(yield func(sfnt.NameID, string) bool) {
		if binary == nil {
			return
		}
		count := int(u16(binary[2:4])) // number of name records
		stringStorageOffset := int(u16(binary[4:6]))
		for i := range count {
			recordSlice := binary[nameHeaderSize+i*nameRecordSize : nameHeaderSize+(i+1)*nameRecordSize]
			key := nameKey{
				Platform: ot.PlatformID(u16(recordSlice[0:2])),
				Encoding: ot.EncodingID(u16(recordSlice[2:4])),
				Language: u16(recordSlice[4:6]),
				Name:     sfnt.NameID(u16(recordSlice[6:8])),
			}
			if !isSupportedNameEncoding(key) {
				continue
			}
			strLen := int(u16(recordSlice[8:10]))
			recordOffset := int(u16(recordSlice[10:12]))
			start := stringStorageOffset + recordOffset
			end := start + strLen
			if end > len(binary) {
				continue
			}
			stringValue, err := decodeNameUTF16(binary[start:end])
			if err != nil || stringValue == "" {
				continue
			}
			if !yield(key.Name, stringValue) {
				return
			}
		}
	}
}

// NameInfo collects the most common name entries of a font into a map, with keys
//
//	"family", "subfamily", "fullname", "version", "postscript"
//
// Keys for entries not present in the font are omitted. For entries present more
// than once, the first one wins.
func NameInfo(otf *ot.Font) map[string]string {
	keys := map[sfnt.NameID]string{
		sfnt.NameIDFamily:     "family",
		sfnt.NameIDSubfamily:  "subfamily",
		sfnt.NameIDFull:       "fullname",
		sfnt.NameIDVersion:    "version",
		sfnt.NameIDPostScript: "postscript",
	}
	info := make(map[string]string)
	for id, value := range NamesRange(otf) {
		key, ok := keys[id]
		if !ok {
			continue
		}
		if _, exists := info[key]; !exists {
			info[key] = value
		}
	}
	tracer().Debugf("name info = %v", info)
	return info
}

// checkNameTableSafe returns the bytes of table 'name' if it is safe to use,
// i.e. no out-of-bounds access, no empty table, etc.
func checkNameTableSafe(otf *ot.Font) []byte {
	b := tableBytes(otf, "name")
	if b == nil {
		tracer().Debugf("no name table found in font")
		return nil
	}
	if len(b) < nameHeaderSize {
		tracer().Debugf("name table too short: %d", len(b))
		return nil
	}
	count := int(u16(b[2:4]))
	strOff := int(u16(b[4:6]))
	if strOff > len(b) {
		tracer().Debugf("name table invalid string offset: %d", strOff)
		return nil
	}
	recordsEnd := nameHeaderSize + count*nameRecordSize
	if recordsEnd > len(b) {
		tracer().Debugf("name table record section out of bounds: count=%d", count)
		return nil
	}
	return b
}

func isSupportedNameEncoding(key nameKey) bool {
	// decode Unicode BMP + Windows BMP entries only
	return (key.Platform == ot.PlatformUnicode && key.Encoding == ot.EncodingUnicodeBMP) ||
		(key.Platform == ot.PlatformWindows && key.Encoding == ot.EncodingWindowsBMP)
}

func decodeNameUTF16(str []byte) (string, error) {
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	decoder := enc.NewDecoder()
	s, err := decoder.Bytes(str)
	if err != nil {
		return "", fmt.Errorf("decoding UTF-16 error: %v", err)
	}
	return string(s), nil
}

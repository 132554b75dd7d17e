package ot

import "fmt"

// Errors returned by the decoders of this package are always one of the four
// pointer types below. Clients inspect them with errors.As, e.g.
//
//	var trunc *ot.TruncatedInputError
//	if errors.As(err, &trunc) { … }
//
// No decoder returns a partially populated structure together with an error.

// TruncatedInputError is returned whenever fewer bytes are available than a field
// or an array requires.
type TruncatedInputError struct {
	Offset int64 // position of the failed read
	Need   int   // number of bytes requested
	Have   int   // number of bytes available at Offset
}

func (e *TruncatedInputError) Error() string {
	return fmt.Sprintf("[TRUNCATED] at offset %d: need %d bytes, have %d", e.Offset, e.Need, e.Have)
}

// InvalidOffsetError is returned if a seek target, e.g. the offset of a cmap
// subtable, lies outside of the byte source.
type InvalidOffsetError struct {
	Offset int64 // offending offset (or end of extent)
	Size   int64 // size of the byte source
}

func (e *InvalidOffsetError) Error() string {
	return fmt.Sprintf("[INVALID OFFSET] offset %d outside of source of size %d", e.Offset, e.Size)
}

// UnsupportedFormatError is returned for cmap subtables of a format other than 4,
// and if a font does not contain a usable 'cmap' table at all.
type UnsupportedFormatError struct {
	Table  Tag    // table where the error occurred
	Format uint16 // format found in the font, if any
	Issue  string // human-readable description of the issue
}

func (e *UnsupportedFormatError) Error() string {
	if e.Format > 0 {
		return fmt.Sprintf("[UNSUPPORTED] %s format %d: %s", e.Table, e.Format, e.Issue)
	}
	return fmt.Sprintf("[UNSUPPORTED] %s: %s", e.Table, e.Issue)
}

// MalformedSubtableError is returned if a structure violates an invariant of the
// sfnt format, e.g. a non-zero reservedPad or unsorted cmap segments.
type MalformedSubtableError struct {
	Table   Tag    // table where the error occurred, e.g. "cmap"
	Section string // specific section within the table, e.g. "Format4/endCode"
	Issue   string // human-readable description of the issue
	Offset  uint32 // byte offset in the font file (0 if unknown)
}

func (e *MalformedSubtableError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("[MALFORMED] %s/%s at offset %d: %s", e.Table, e.Section, e.Offset, e.Issue)
	}
	return fmt.Sprintf("[MALFORMED] %s/%s: %s", e.Table, e.Section, e.Issue)
}

func errMalformed(section string, offset uint32, format string, args ...any) error {
	return &MalformedSubtableError{
		Table:   T("cmap"),
		Section: section,
		Issue:   fmt.Sprintf(format, args...),
		Offset:  offset,
	}
}

// --- Warnings --------------------------------------------------------------

// FontWarning represents a non-critical issue encountered when verifying a font.
// Warnings indicate potential problems but never prevent decoding.
type FontWarning struct {
	Table  Tag    // the table the warning refers to; 0 for the directory itself
	Issue  string // human-readable description of the warning
	Offset uint32 // byte offset in the font file where the warning occurred (0 if unknown)
}

// String returns a human-readable representation of the warning.
func (w FontWarning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("[WARNING] %s at offset %d: %s", w.Table, w.Offset, w.Issue)
	}
	return fmt.Sprintf("[WARNING] %s: %s", w.Table, w.Issue)
}

// errorCollector accumulates warnings during verification.
type errorCollector struct {
	warnings []FontWarning
}

func (ec *errorCollector) addWarning(table Tag, offset uint32, format string, args ...any) {
	w := FontWarning{
		Table:  table,
		Issue:  fmt.Sprintf(format, args...),
		Offset: offset,
	}
	tracer().Infof("%s", w)
	ec.warnings = append(ec.warnings, w)
}

func (ec *errorCollector) hasWarnings() bool {
	return len(ec.warnings) > 0
}

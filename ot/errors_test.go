package ot

import (
	"errors"
	"fmt"
	"testing"
)

// TestErrorMessages verifies the formatting of the typed decoding errors.
func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Truncated",
			err:      &TruncatedInputError{Offset: 20, Need: 16, Have: 8},
			expected: "[TRUNCATED] at offset 20: need 16 bytes, have 8",
		},
		{
			name:     "Invalid offset",
			err:      &InvalidOffsetError{Offset: 5004, Size: 40},
			expected: "[INVALID OFFSET] offset 5004 outside of source of size 40",
		},
		{
			name:     "Unsupported with format",
			err:      &UnsupportedFormatError{Table: T("cmap"), Format: 12, Issue: "only format 4 sub-tables are supported"},
			expected: "[UNSUPPORTED] cmap format 12: only format 4 sub-tables are supported",
		},
		{
			name:     "Unsupported without format",
			err:      &UnsupportedFormatError{Table: T("cmap"), Issue: "table missing"},
			expected: "[UNSUPPORTED] cmap: table missing",
		},
		{
			name:     "Malformed with offset",
			err:      errMalformed("Format4/reservedPad", 1234, "reserved pad is %d", 7),
			expected: "[MALFORMED] cmap/Format4/reservedPad at offset 1234: reserved pad is 7",
		},
		{
			name:     "Malformed without offset",
			err:      errMalformed("Header", 0, "unsupported cmap version %d", 1),
			expected: "[MALFORMED] cmap/Header: unsupported cmap version 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.err.Error(); result != tt.expected {
				t.Errorf("Error() = %q; want %q", result, tt.expected)
			}
		})
	}
}

// TestErrorsAs verifies that typed errors survive wrapping by clients.
func TestErrorsAs(t *testing.T) {
	err := fmt.Errorf("loading font: %w", &TruncatedInputError{Offset: 1, Need: 2})
	var trunc *TruncatedInputError
	if !errors.As(err, &trunc) {
		t.Fatalf("expected errors.As to find *TruncatedInputError in %v", err)
	}
	if trunc.Need != 2 {
		t.Errorf("expected Need = 2, got %d", trunc.Need)
	}
	var malformed *MalformedSubtableError
	if errors.As(err, &malformed) {
		t.Errorf("did not expect *MalformedSubtableError in %v", err)
	}
}

// TestFontWarning verifies FontWarning formatting.
func TestFontWarning(t *testing.T) {
	tests := []struct {
		name     string
		warning  FontWarning
		expected string
	}{
		{
			name:     "Warning with offset",
			warning:  FontWarning{Table: T("head"), Issue: "checksum mismatch", Offset: 512},
			expected: "[WARNING] head at offset 512: checksum mismatch",
		},
		{
			name:     "Warning without offset",
			warning:  FontWarning{Table: T("name"), Issue: "table order: cmap follows name"},
			expected: "[WARNING] name: table order: cmap follows name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.warning.String(); result != tt.expected {
				t.Errorf("String() = %q; want %q", result, tt.expected)
			}
		})
	}
}

// TestErrorCollector verifies the collection of warnings.
func TestErrorCollector(t *testing.T) {
	ec := &errorCollector{}
	if ec.hasWarnings() {
		t.Error("new collector should not have warnings")
	}
	ec.addWarning(T("cmap"), 100, "table does not begin on a four byte boundary")
	ec.addWarning(T("head"), 200, "checksum mismatch: declared %d, calculated %d", 1, 2)
	if !ec.hasWarnings() {
		t.Error("collector should have warnings after addWarning")
	}
	if len(ec.warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(ec.warnings))
	}
	if ec.warnings[1].Issue != "checksum mismatch: declared 1, calculated 2" {
		t.Errorf("unexpected issue %q", ec.warnings[1].Issue)
	}
	if ec.warnings[0].Table != T("cmap") || ec.warnings[0].Offset != 100 {
		t.Errorf("unexpected warning %v", ec.warnings[0])
	}
}

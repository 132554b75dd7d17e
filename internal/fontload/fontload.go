/*
Package fontload locates font files and loads their bytes.

A font is given either as a file path or as the name of a system font, e.g.
"DejaVuSans" or "Arial.ttf". Names which are not an existing file are resolved
with github.com/flopp/go-findfont, which searches the platform's font directories.
*/
package fontload

import (
	"errors"
	"io/fs"
	"os"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'opentype'
func tracer() tracing.Trace {
	return tracing.Select("opentype")
}

// FontBinary is the raw data of a font file, together with its location and name.
type FontBinary struct {
	Fontname string // full font name, if the font is known to x/image/font/sfnt
	Filepath string // resolved file path
	Binary   []byte // raw data
}

// Locate resolves a font to a file path. If fontfile names an existing file, it is
// returned unchanged. Otherwise fontfile is searched for as a system font.
func Locate(fontfile string) (string, error) {
	_, err := os.Stat(fontfile)
	if err == nil {
		return fontfile, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}
	fpath, ferr := findfont.Find(fontfile) // try to find as system font
	if ferr != nil || fpath == "" {
		tracer().Debugf("font %s is neither a file nor a system font", fontfile)
		return "", err
	}
	tracer().Debugf("%s is a system font: %s", fontfile, fpath)
	return fpath, nil
}

// Load locates a font (see Locate) and reads its bytes.
func Load(fontfile string) (*FontBinary, error) {
	fpath, err := Locate(fontfile)
	if err != nil {
		return nil, err
	}
	bytez, err := os.ReadFile(fpath)
	if err != nil {
		return nil, err
	}
	return &FontBinary{
		Fontname: FullName(bytez),
		Filepath: fpath,
		Binary:   bytez,
	}, nil
}

// FullName returns the full name of a font as reported by x/image/font/sfnt, or
// an empty string if sfnt cannot parse the font. sfnt requires a complete set of
// tables, thus synthetic or subsetted fonts often will not have a name here.
func FullName(fbytes []byte) string {
	f, err := sfnt.Parse(fbytes)
	if err != nil {
		tracer().Debugf("sfnt cannot parse font: %v", err)
		return ""
	}
	name, err := f.Name(nil, sfnt.NameIDFull)
	if err != nil {
		return ""
	}
	return name
}

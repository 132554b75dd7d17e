package sfntcmap

/*
There is a certain confusion with the nomenclature of typesetting. We will
stick to the following definitions:

▪︎ A "typeface" is a family of fonts. An example is "Helvetica".
This corresponds to a TrueType "collection" (*.ttc).

▪︎ A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Helvetica regular".

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

Font collections (*.ttc), e.g. /System/Library/Fonts/Helvetica.ttc on Mac OS,
are not supported.
*/

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/sfntcmap/internal/fontload"
	"github.com/npillmayer/sfntcmap/ot"
	"github.com/npillmayer/sfntcmap/otquery"
)

// tracer writes to trace with key 'opentype'
func tracer() tracing.Trace {
	return tracing.Select("opentype")
}

// ScalableFont is an internal representation of an outline-font of type
// TTF of OTF.
type ScalableFont struct {
	Fontname string
	Filepath string   // file path
	Binary   []byte   // raw data
	OT       *ot.Font // decoded table directory and cmap
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
// If fontfile is not an existing file, it is searched for as a system font.
func LoadOpenTypeFont(fontfile string, opts ...ot.ParseOption) (*ScalableFont, error) {
	fb, err := fontload.Load(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(fb.Binary, opts...)
	if err != nil {
		return nil, err
	}
	f.Filepath = fb.Filepath
	if fb.Fontname != "" {
		f.Fontname = fb.Fontname
	}
	return f, nil
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
func ParseOpenTypeFont(fbytes []byte, opts ...ot.ParseOption) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	if f.OT, err = FromBinary(fbytes, opts...); err != nil {
		return nil, err
	}
	f.Fontname = otquery.NameInfo(f.OT)["fullname"]
	tracer().Debugf("loaded and parsed SFNT %s", f.Fontname)
	return f, nil
}

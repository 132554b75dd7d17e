package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/sfntcmap"
	"github.com/npillmayer/sfntcmap/ot"
	"github.com/thatisuday/commando"
)

func main() {
	commando.
		SetExecutableName("ot-tools").
		SetVersion("v0.0.1").
		SetDescription("CLI for inspecting the table directory and character mapping of SFNT fonts.")

	commando.
		Register("dir").
		SetDescription("Print the table directory of a font.").
		SetShortDescription("table directory").
		AddArgument("font", "OpenType font file path", "").
		AddArgument("tables...", "optional list of table tags (e.g. cmap,head)", "").
		AddFlag("verify,v", "verify checksums, alignment and search hints", commando.Bool, nil).
		AddFlag("verbose,V", "trace decoding steps", commando.Bool, nil).
		SetAction(runDirCommand)

	commando.
		Register("cmap").
		SetDescription("Print the encoding records of table 'cmap' and the selected format 4 sub-table.").
		SetShortDescription("cmap encodings").
		AddArgument("font", "OpenType font file path", "").
		AddFlag("platform,p", "preferred platform ID (-1 uses default preferences)", commando.Int, -1).
		AddFlag("encoding,e", "preferred encoding ID (65535 for any)", commando.Int, int(ot.AnyEncoding)).
		AddFlag("segments,s", "print the segments of the sub-table", commando.Bool, nil).
		AddFlag("verbose,V", "trace decoding steps", commando.Bool, nil).
		SetAction(runCmapCommand)

	commando.
		Register("lookup").
		SetDescription("Map code-points to glyph indices.").
		SetShortDescription("code-point to glyph").
		AddArgument("font", "OpenType font file path", "").
		AddArgument("codepoints...", "code-points (comma/space separated, e.g. U+0041,0x42)", "").
		AddFlag("platform,p", "preferred platform ID (-1 uses default preferences)", commando.Int, -1).
		AddFlag("encoding,e", "preferred encoding ID (65535 for any)", commando.Int, int(ot.AnyEncoding)).
		AddFlag("verbose,V", "trace decoding steps", commando.Bool, nil).
		SetAction(runLookupCommand)

	commando.Parse(nil)
}

// setupTracing routes traces of the font packages to the Go logger. Only errors are
// traced, unless flag --verbose is set.
func setupTracing(flags map[string]commando.FlagValue) {
	level := traceLevel(mustFlagBool(flags["verbose"], "verbose"))
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":     "go",
		"trace.tyse.fonts":    level,
		"trace.font.opentype": level,
		"trace.opentype":      level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fatalf("cannot configure tracing: %v", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

func traceLevel(verbose bool) string {
	if verbose {
		return "Debug"
	}
	return "Error"
}

func encodingOptions(flags map[string]commando.FlagValue) []ot.ParseOption {
	platform := mustFlagInt(flags["platform"], "platform")
	if platform < 0 {
		return nil
	}
	encoding := mustFlagInt(flags["encoding"], "encoding")
	if platform > 0xffff || encoding < 0 || encoding > 0xffff {
		fatalf("platform/encoding out of range: %d/%d", platform, encoding)
	}
	return []ot.ParseOption{ot.Prefer(ot.EncodingPreference{
		Platform: ot.PlatformID(platform),
		Encoding: ot.EncodingID(encoding),
	})}
}

func mustOpenFont(args map[string]commando.ArgValue, opts ...ot.ParseOption) *sfntcmap.FontFile {
	path := strings.TrimSpace(args["font"].Value)
	if path == "" {
		fatalf("font path is required")
	}
	ff, err := sfntcmap.OpenFontFile(path, opts...)
	if err != nil {
		fatalf("cannot open font %s: %v", path, err)
	}
	return ff
}

func parseCodepoints(spec string) ([]rune, error) {
	parts := splitCSVSpace(spec)
	out := make([]rune, 0, len(parts))
	for _, p := range parts {
		r, err := parseCodepointToken(p)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func parseCodepointToken(token string) (rune, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, errors.New("empty codepoint token")
	}
	hex := token
	switch {
	case strings.HasPrefix(hex, "U+"), strings.HasPrefix(hex, "u+"):
		hex = hex[2:]
	case strings.HasPrefix(hex, "0x"), strings.HasPrefix(hex, "0X"):
		hex = hex[2:]
	}
	u, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid codepoint %q: %w", token, err)
	}
	if u > 0x10ffff {
		return 0, fmt.Errorf("codepoint %q out of Unicode range", token)
	}
	return rune(u), nil
}

func splitCSVSpace(spec string) []string {
	return strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "ot-tools: "+format+"\n", args...)
	os.Exit(1)
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/sfntcmap"
	"github.com/npillmayer/sfntcmap/ot"
	"github.com/pterm/pterm"
)

// tracer traces with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":     "go",
		"trace.tyse.fonts":    "Info",
		"trace.font.opentype": "Error",
		"trace.opentype":      "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to load (file path or system font name)")
	platform := flag.Int("platform", -1, "Preferred cmap platform ID (default: 3/1, then 0/*)")
	encoding := flag.Int("encoding", int(ot.AnyEncoding), "Preferred cmap encoding ID")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError)    // will set the correct level later
	pterm.Info.Println("Welcome to OpenType CLI") // colored welcome message
	//
	// set up REPL
	repl, err := readline.New("ot > ")
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	//
	// load font to use
	var opts []ot.ParseOption
	if *platform >= 0 {
		opts = append(opts, ot.Prefer(ot.EncodingPreference{
			Platform: ot.PlatformID(*platform),
			Encoding: ot.EncodingID(*encoding),
		}))
	}
	if err := intp.loadFont(*fontname, opts...); err != nil { // font name provided by flag
		tracer().Errorf("%v", err)
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	if err := setTraceLevel(*tlevel, "tyse.fonts", "font.opentype", "opentype"); err != nil {
		tracer().Errorf("%v", err)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// setTraceLevel sets the trace level for a list of tracer keys.
func setTraceLevel(l string, keys ...string) error {
	level := tracer().GetTraceLevel()
	switch l {
	case "Debug":
		level = tracing.LevelDebug
	case "Info":
		level = tracing.LevelInfo
	case "Error":
		level = tracing.LevelError
	default:
		return fmt.Errorf("invalid trace level: %s", l)
	}
	for _, key := range keys {
		tracing.Select(key).SetTraceLevel(level)
	}
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	font  *sfntcmap.ScalableFont
	repl  *readline.Instance
	table ot.Option[ot.TableRecord] // table selected with 'table:<tag>'
}

func (intp *Intp) String() string {
	if intp == nil || intp.font == nil {
		return "()"
	}
	rec, ok := intp.table.Unwrap()
	if !ok {
		return fmt.Sprintf("( font=%s )", intp.font.Fontname)
	}
	return fmt.Sprintf("( font=%s, table=%s )", intp.font.Fontname, rec.Tag)
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := intp.parseCommand(line)
		if err != nil {
			tracer().Errorf("%v", err)
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf("%v", err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

type Op struct {
	code int
	arg  string
}

type Command struct {
	count int
	op    [32]Op
}

const NOOP = -1
const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	TABLES
	TABLE
	CMAP
	SEGMENTS
	LOOKUP
	REVERSE
	VERIFY
	NAMES
)

var opMap = map[string]int{
	"quit":     QUIT,
	"help":     HELP,
	"tables":   TABLES,
	"table":    TABLE,
	"cmap":     CMAP,
	"segments": SEGMENTS,
	"lookup":   LOOKUP,
	"reverse":  REVERSE,
	"verify":   VERIFY,
	"names":    NAMES,
}

var opNames = []string{
	"quit",
	"help",
	"tables",
	"table",
	"cmap",
	"segments",
	"lookup",
	"reverse",
	"verify",
	"names",
}

var command = Command{}

func resetCommand() {
	command.count = 0
	for i := range command.op {
		command.op[i].code = NOOP
		command.op[i].arg = ""
	}
}

// parseCommand splits a line into steps, separated by blanks. Each step is an
// op-code, optionally followed by ':' and an argument, e.g. "table:head" or "lookup:U+0041".
func (intp *Intp) parseCommand(line string) (*Command, error) {
	resetCommand()
	steps := strings.Fields(line)
	if len(steps) > len(command.op) {
		return nil, fmt.Errorf("too many steps in command: %d", len(steps))
	}
	command.count = len(steps)
	for i, step := range steps {
		c := strings.SplitN(step, ":", 2)
		code, ok := opMap[strings.ToLower(c[0])]
		if !ok {
			code = HELP
		}
		command.op[i].code = code
		if code == QUIT {
			return &command, nil
		}
		command.op[i].arg = getOptArg(c, 1)
		if command.op[i].arg == "" {
			tracer().Debugf("%s", opNames[code])
		} else {
			tracer().Debugf("%s: looking for '%s'", opNames[code], command.op[i].arg)
		}
	}
	return &command, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:     quitOp,
	HELP:     helpOp,
	TABLES:   tablesOp,
	TABLE:    tableOp,
	CMAP:     cmapOp,
	SEGMENTS: segmentsOp,
	LOOKUP:   lookupOp,
	REVERSE:  reverseOp,
	VERIFY:   verifyOp,
	NAMES:    namesOp,
}

func (intp *Intp) execute(cmd *Command) (err error, stop bool) {
	tracer().Debugf("cmd = %v", cmd.op[:cmd.count])
	for _, c := range cmd.op {
		if c.code == NOOP {
			break
		}
		f, ok := commandFn[c.code]
		if !ok {
			pterm.Error.Printf("unknown command code: %d\n", c.code)
			return nil, false
		}
		err, stop = f(intp, &c)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

// --- Font Loading -----------------------------------------------------

func (intp *Intp) loadFont(fontname string, opts ...ot.ParseOption) (err error) {
	if fontname == "" {
		return errors.New("no font given, use flag -font")
	}
	intp.font, err = sfntcmap.LoadOpenTypeFont(fontname, opts...)
	if err != nil {
		tracer().Errorf("cannot load font %s: %s", fontname, err)
		return err
	}
	tracer().Infof("loaded SFNT font = %s from %s", intp.font.Fontname, intp.font.Filepath)
	pterm.Printf("font tables: %v\n", intp.font.OT.TableTags())
	return nil
}

// ----------------------------------------------------------------------

var ErrNoTable = errors.New("no table set")

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}

func (op *Op) noArg() bool {
	return op.arg == ""
}

func (op *Op) intArg() (int, error) {
	n, err := strconv.ParseInt(op.arg, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("argument not numeric: %v", op.arg)
	}
	return int(n), nil
}

// codepointArg interprets the argument as a code-point. Accepted forms are a single
// character ("A"), "U+0041", "0x41" and decimal numbers with at least two digits.
func (op *Op) codepointArg() (rune, error) {
	a := op.arg
	if utf8.RuneCountInString(a) == 1 {
		r, _ := utf8.DecodeRuneInString(a)
		return r, nil
	}
	if strings.HasPrefix(a, "U+") || strings.HasPrefix(a, "u+") {
		a = "0x" + a[2:]
	}
	n, err := strconv.ParseInt(a, 0, 32)
	if err != nil || n < 0 || n > 0x10ffff {
		return 0, fmt.Errorf("not a code-point: %v", op.arg)
	}
	return rune(n), nil
}

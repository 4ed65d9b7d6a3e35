package argparse

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Format is the grammar accepted by [Parser.Parse].
type Format int

const (
	// ParamSwitch accepts switches only:
	//
	//	[-switch [value]]...
	ParamSwitch Format = iota
	// VerbParamSwitch accepts an optional leading verb followed by switches:
	//
	//	[verb] [-switch [value]]...
	VerbParamSwitch
)

func (f Format) String() string {
	switch f {
	case ParamSwitch:
		return "param-switch"
	case VerbParamSwitch:
		return "verb-param-switch"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Parser turns a token sequence into an optional verb and a set of named switches, and converts
// switch values to typed results.
//
// A Parser is not safe for concurrent use: both [Parser.Parse] and the accessors mutate it.
type Parser struct {
	cfg config

	verb     string
	hasVerb  bool
	switches map[string]string

	// last is the failure of the most recent accessor call, nil on success.
	last *ConversionError
}

// New returns a Parser. By default failures are reported through return values and
// [Parser.Err]; see [WithParsePanic] and [WithConversionPanic] for the fail-fast policies.
func New(opts ...Option) *Parser {
	p := &Parser{
		switches: make(map[string]string),
	}
	for _, opt := range opts {
		opt(&p.cfg)
	}
	return p
}

// Parse parses args, which must not include the program name, according to format. Any state
// left by a previous call is discarded first, and a failed call leaves the Parser empty.
//
// On failure Parse returns a [*ParseError], or panics with it if the Parser was created with
// [WithParsePanic].
func (p *Parser) Parse(args []string, format Format) error {
	p.reset()
	if format != ParamSwitch && format != VerbParamSwitch {
		return fmt.Errorf("failed to parse: unknown format %v", format)
	}
	p.debug("parsing arguments", slog.String("format", format.String()), slog.Int("tokens", len(args)))

	i := 0
	if format == VerbParamSwitch && len(args) > 0 {
		if isSwitch(args[0]) {
			return p.parseFailure(args[0], ErrNotAVerb)
		}
		p.verb, p.hasVerb = args[0], true
		i++
	}

	for i < len(args) {
		token := args[i]
		if !isSwitch(token) {
			return p.parseFailure(token, ErrUnexpectedValue)
		}
		name := switchName(token)
		if name == "" {
			return p.parseFailure(token, ErrEmptySwitchName)
		}
		i++

		var value string
		if i < len(args) && !isSwitch(args[i]) {
			value = args[i]
			i++
		}
		if _, ok := p.switches[name]; ok {
			return p.parseFailure(token, ErrDuplicateSwitch)
		}
		p.switches[name] = value
	}

	p.debug("parsed arguments", slog.Bool("has_verb", p.hasVerb), slog.Int("switches", len(p.switches)))
	return nil
}

// IsPresent reports whether name was given as a switch, or is the verb itself. It does not
// change the error state.
func (p *Parser) IsPresent(name string) bool {
	if _, ok := p.switches[name]; ok {
		return true
	}
	return p.hasVerb && p.verb == name
}

// HasVerb reports whether the last successful parse captured a verb.
func (p *Parser) HasVerb() bool {
	return p.hasVerb
}

// Names returns the parsed switch names in sorted order.
func (p *Parser) Names() []string {
	names := make([]string, 0, len(p.switches))
	for name := range p.switches {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Snapshot is a copy of the parsed verb and switches.
type Snapshot struct {
	// Verb is nil when no verb was captured.
	Verb     *string           `json:"verb,omitempty" yaml:"verb,omitempty" toml:"verb,omitempty"`
	Switches map[string]string `json:"switches" yaml:"switches" toml:"switches"`
}

// Snapshot returns a copy of the current parse result. Later calls to [Parser.Parse] do not
// affect it.
func (p *Parser) Snapshot() Snapshot {
	s := Snapshot{
		Switches: make(map[string]string, len(p.switches)),
	}
	if p.hasVerb {
		verb := p.verb
		s.Verb = &verb
	}
	for name, value := range p.switches {
		s.Switches[name] = value
	}
	return s
}

func (p *Parser) reset() {
	p.verb, p.hasVerb = "", false
	clear(p.switches)
	p.last = nil
}

func (p *Parser) parseFailure(arg string, kind error) error {
	p.verb, p.hasVerb = "", false
	clear(p.switches)

	err := &ParseError{Arg: arg, Err: kind}
	p.debug("parse failed", slog.String("arg", arg), slog.String("error", err.Error()))
	if p.cfg.parsePanic {
		panic(err)
	}
	return err
}

func (p *Parser) debug(msg string, args ...any) {
	if p.cfg.logger != nil {
		p.cfg.logger.Debug(msg, args...)
	}
}

// isSwitch reports whether token is shaped like a switch: at least two characters, the first a
// dash. A lone "-" is a value.
func isSwitch(token string) bool {
	return len(token) > 1 && token[0] == '-'
}

func switchName(token string) string {
	if name, ok := strings.CutPrefix(token, "--"); ok {
		return name
	}
	return strings.TrimPrefix(token, "-")
}

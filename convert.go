package argparse

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

const boolVocabulary = "true, false, yes, no, on, off, 1, 0, t, f, y, n"

var boolValues = map[string]bool{
	"1": true, "t": true, "y": true, "true": true, "yes": true, "on": true,
	"0": false, "f": false, "n": false, "false": false, "no": false, "off": false,
}

// Failed reports whether the most recent accessor call failed.
func (p *Parser) Failed() bool {
	return p.last != nil
}

// ErrorMessage returns the message of the most recent accessor failure, or "" if the most recent
// call succeeded.
func (p *Parser) ErrorMessage() string {
	if p.last == nil {
		return ""
	}
	return p.last.Error()
}

// Err returns the [*ConversionError] of the most recent accessor call, or nil if it succeeded.
func (p *Parser) Err() error {
	if p.last == nil {
		return nil
	}
	return p.last
}

// Verb returns the parsed verb. If there is none, it records [ErrMissingVerb] and returns "".
func (p *Parser) Verb() string {
	return p.VerbOr("")
}

// VerbOr returns the parsed verb, or def if there is none. An empty def counts as no default.
func (p *Parser) VerbOr(def string) string {
	p.begin()
	if p.hasVerb {
		return p.verb
	}
	if def == "" {
		p.fail(&ConversionError{Err: ErrMissingVerb})
	}
	return def
}

// String returns the value of the named switch, which may be empty for a switch given without a
// value. If the switch is absent, it records [ErrMissingArgument] and returns "".
func (p *Parser) String(name string) string {
	p.begin()
	value, ok := p.switches[name]
	if !ok {
		p.fail(&ConversionError{Name: name, Err: ErrMissingArgument})
		return ""
	}
	return value
}

// StringOr returns the value of the named switch, or def if it is absent. It never fails.
func (p *Parser) StringOr(name, def string) string {
	p.begin()
	if value, ok := p.switches[name]; ok {
		return value
	}
	return def
}

// Bool interprets the named switch as a boolean. Recognized values, compared ignoring ASCII case,
// are 1, t, y, true, yes, on and 0, f, n, false, no, off. An absent switch, an empty value or
// any other value records [ErrInvalidBoolean] and returns false.
func (p *Parser) Bool(name string) bool {
	p.begin()
	value := p.switches[name]
	b, ok := parseBool(value)
	if !ok {
		p.fail(&ConversionError{Name: name, Value: value, Err: ErrInvalidBoolean})
		return false
	}
	return b
}

// BoolOr is like [Parser.Bool] but returns def when the switch is absent or has no value.
func (p *Parser) BoolOr(name string, def bool) bool {
	p.begin()
	value := p.switches[name]
	if value == "" {
		return def
	}
	b, ok := parseBool(value)
	if !ok {
		p.fail(&ConversionError{Name: name, Value: value, Err: ErrInvalidBoolean})
		return def
	}
	return b
}

// Int returns the named switch as a base 10 int. If the switch is absent it records
// [ErrMissingArgument] and returns 0.
func (p *Parser) Int(name string) int {
	return int(p.signed(name, 0, 10, strconv.IntSize, true))
}

// IntOr returns the named switch as a base 10 int, or def if it is absent or invalid.
func (p *Parser) IntOr(name string, def int) int {
	return p.IntBase(name, def, 10)
}

// IntBase is like [Parser.IntOr] with an explicit base, following [strconv.ParseInt]: base 0
// selects the base from the prefix, otherwise 2 through 36.
func (p *Parser) IntBase(name string, def, base int) int {
	return int(p.signed(name, int64(def), base, strconv.IntSize, false))
}

// Int32 returns the named switch as a base 10 int32. Values outside the int32 range record
// [ErrOutOfRange].
func (p *Parser) Int32(name string) int32 {
	return int32(p.signed(name, 0, 10, 32, true))
}

// Int32Or is like [Parser.Int32] but returns def when the switch is absent.
func (p *Parser) Int32Or(name string, def int32) int32 {
	return p.Int32Base(name, def, 10)
}

// Int32Base is like [Parser.Int32Or] with the given base, as in [strconv.ParseInt].
func (p *Parser) Int32Base(name string, def int32, base int) int32 {
	return int32(p.signed(name, int64(def), base, 32, false))
}

// Int64 returns the named switch as a base 10 int64.
func (p *Parser) Int64(name string) int64 {
	return p.signed(name, 0, 10, 64, true)
}

// Int64Or is like [Parser.Int64] but returns def when the switch is absent.
func (p *Parser) Int64Or(name string, def int64) int64 {
	return p.Int64Base(name, def, 10)
}

// Int64Base is like [Parser.Int64Or] with the given base.
func (p *Parser) Int64Base(name string, def int64, base int) int64 {
	return p.signed(name, def, base, 64, false)
}

// Uint returns the named switch as a base 10 uint. One leading plus sign is accepted; a minus
// sign records [ErrInvalidNumber].
func (p *Parser) Uint(name string) uint {
	return uint(p.unsigned(name, 0, 10, strconv.IntSize, true))
}

// UintOr is like [Parser.Uint] but returns def when the switch is absent.
func (p *Parser) UintOr(name string, def uint) uint {
	return p.UintBase(name, def, 10)
}

// UintBase is like [Parser.UintOr] with the given base, as in [strconv.ParseUint].
func (p *Parser) UintBase(name string, def uint, base int) uint {
	return uint(p.unsigned(name, uint64(def), base, strconv.IntSize, false))
}

// Uint32 returns the named switch as a base 10 uint32.
func (p *Parser) Uint32(name string) uint32 {
	return uint32(p.unsigned(name, 0, 10, 32, true))
}

// Uint32Or is like [Parser.Uint32] but returns def when the switch is absent.
func (p *Parser) Uint32Or(name string, def uint32) uint32 {
	return p.Uint32Base(name, def, 10)
}

// Uint32Base is like [Parser.Uint32Or] with the given base.
func (p *Parser) Uint32Base(name string, def uint32, base int) uint32 {
	return uint32(p.unsigned(name, uint64(def), base, 32, false))
}

// Uint64 returns the named switch as a base 10 uint64.
func (p *Parser) Uint64(name string) uint64 {
	return p.unsigned(name, 0, 10, 64, true)
}

// Uint64Or is like [Parser.Uint64] but returns def when the switch is absent.
func (p *Parser) Uint64Or(name string, def uint64) uint64 {
	return p.Uint64Base(name, def, 10)
}

// Uint64Base is like [Parser.Uint64Or] with the given base.
func (p *Parser) Uint64Base(name string, def uint64, base int) uint64 {
	return p.unsigned(name, def, base, 64, false)
}

// Float32 returns the named switch as a float32. Text that is not a floating-point literal
// records [ErrInvalidNumber]. A literal too large for float32, or a nonzero literal too small
// to be represented, records [ErrOutOfRange].
func (p *Parser) Float32(name string) float32 {
	return float32(p.float(name, 0, 32, true))
}

// Float32Or is like [Parser.Float32] but returns def when the switch is absent.
func (p *Parser) Float32Or(name string, def float32) float32 {
	return float32(p.float(name, float64(def), 32, false))
}

// Float64 returns the named switch as a float64.
func (p *Parser) Float64(name string) float64 {
	return p.float(name, 0, 64, true)
}

// Float64Or is like [Parser.Float64] but returns def when the switch is absent.
func (p *Parser) Float64Or(name string, def float64) float64 {
	return p.float(name, def, 64, false)
}

func (p *Parser) signed(name string, def int64, base, bitSize int, required bool) int64 {
	value, ok := p.lookup(name, required)
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(value, base, bitSize)
	if err != nil {
		p.fail(numberError(name, value, err))
		return def
	}
	return n
}

func (p *Parser) unsigned(name string, def uint64, base, bitSize int, required bool) uint64 {
	value, ok := p.lookup(name, required)
	if !ok {
		return def
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(value, "+"), base, bitSize)
	if err != nil {
		p.fail(numberError(name, value, err))
		return def
	}
	return n
}

func (p *Parser) float(name string, def float64, bitSize int, required bool) float64 {
	value, ok := p.lookup(name, required)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(value, bitSize)
	if err == nil && f == 0 && nonzeroMantissa(value) {
		err = strconv.ErrRange
	}
	if err != nil {
		p.fail(numberError(name, value, err))
		return def
	}
	return f
}

// nonzeroMantissa reports whether a valid float literal has a nonzero digit before its
// exponent. ParseFloat rounds underflow to zero without an error.
func nonzeroMantissa(value string) bool {
	s := strings.TrimLeft(value, "+-")
	exp := "eE"
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s, exp = s[2:], "pP"
	}
	if i := strings.IndexAny(s, exp); i >= 0 {
		s = s[:i]
	}
	return strings.ContainsAny(s, "123456789abcdefABCDEF")
}

// lookup starts an accessor call and returns the raw value of name. An absent name is a failure
// only when required.
func (p *Parser) lookup(name string, required bool) (string, bool) {
	p.begin()
	value, ok := p.switches[name]
	if !ok && required {
		p.fail(&ConversionError{Name: name, Err: ErrMissingArgument})
	}
	return value, ok
}

func (p *Parser) begin() {
	p.last = nil
}

func (p *Parser) fail(err *ConversionError) {
	p.last = err
	p.debug("conversion failed",
		slog.String("name", err.Name),
		slog.String("value", err.Value),
		slog.String("kind", err.Err.Error()),
	)
	if p.cfg.conversionPanic {
		panic(err)
	}
}

func numberError(name, value string, err error) *ConversionError {
	kind := ErrInvalidNumber
	if errors.Is(err, strconv.ErrRange) {
		kind = ErrOutOfRange
	}
	return &ConversionError{Name: name, Value: value, Err: kind}
}

func parseBool(value string) (bool, bool) {
	b, ok := boolValues[asciiLower(value)]
	return b, ok
}

// asciiLower lowercases ASCII letters only; other bytes are left untouched.
func asciiLower(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; 'A' <= c && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if 'A' <= b[j] && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}

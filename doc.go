// Package argparse parses command-line tokens into an optional leading verb and a set of named
// switches, and converts switch values to typed results.
//
// The grammar is deliberately small. A switch is any token of two or more characters starting
// with a dash; one leading "--" or "-" is stripped to form its name. A switch owns the token that
// follows it as its value, unless that token is itself a switch or there is none, in which case
// the value is empty:
//
//	tool deploy -env prod --force -retries 3
//
// parsed with [VerbParamSwitch] yields the verb "deploy" and the switches env=prod, force="" and
// retries=3. Giving the same switch twice, or a value where a switch is expected, is an error.
//
// Typical use:
//
//	p := argparse.New()
//	if err := p.Parse(os.Args[1:], argparse.VerbParamSwitch); err != nil {
//	    fmt.Fprintf(os.Stderr, "error: %v\n", err)
//	    os.Exit(2)
//	}
//	env := p.StringOr("env", "staging")
//	retries := p.IntOr("retries", 1)
//	if p.Failed() {
//	    fmt.Fprintf(os.Stderr, "error: %s\n", p.ErrorMessage())
//	    os.Exit(2)
//	}
//
// Accessors never return an error. Each call resets the Parser's error state and records its own
// failure, if any, which [Parser.Failed], [Parser.ErrorMessage] and [Parser.Err] then report. The
// state reflects only the most recent call. Failing accessors return the supplied default, or the
// zero value for the required forms.
//
// Two options select fail-fast behavior instead: [WithParsePanic] and [WithConversionPanic] make
// the Parser panic with the [*ParseError] or [*ConversionError]. [Recover] and [Run] turn those
// panics back into errors.
package argparse

package argparse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// State is passed to [Command.Exec]. It holds the parsed arguments and the I/O streams.
type State struct {
	*Parser

	Stdin          io.Reader
	Stdout, Stderr io.Writer
}

// RunOptions specifies options for running a command.
type RunOptions struct {
	// Stdin, Stdout, and Stderr are the standard input, output, and error streams for the command.
	// If any of these are nil, the command will use the default streams ([os.Stdin], [os.Stdout],
	// and [os.Stderr], respectively).
	Stdin          io.Reader
	Stdout, Stderr io.Writer
}

// Run executes the command whose name matches the verb captured by p. It returns an error
// wrapping [ErrMissingVerb] if no verb was parsed, and an "unknown command" error, with
// suggestions when close matches exist, if no command matches.
//
// A panic in Exec is returned as an error. Panics raised by the fail-fast policies ([*ParseError]
// and [*ConversionError]) are returned as they are.
//
// The options parameter may be nil, in which case default values are used. See [RunOptions] for
// more details.
func Run(ctx context.Context, p *Parser, commands []*Command, options *RunOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if p == nil {
		return errors.New("parser is nil")
	}
	if err := validateCommands(commands); err != nil {
		return fmt.Errorf("failed to run: %w", err)
	}
	if !p.hasVerb {
		return fmt.Errorf("no command given: %w", ErrMissingVerb)
	}
	cmd := findCommand(commands, p.verb)
	if cmd == nil {
		return formatUnknownCommandError(p.verb, commands)
	}
	if cmd.Exec == nil {
		return fmt.Errorf("command %q: no exec function defined", cmd.Name)
	}

	p.debug("running command", slog.String("command", cmd.Name))
	return run(ctx, cmd, options.newState(p))
}

// ParseAndRun is a convenience function that combines [Parser.Parse], using [VerbParamSwitch],
// and [Run] into a single call:
//
//	p := argparse.New()
//	if err := argparse.ParseAndRun(ctx, p, os.Args[1:], commands, nil); err != nil {
//	    fmt.Fprintf(os.Stderr, "error: %v\n", err)
//	    os.Exit(1)
//	}
//
// A parse failure is returned even if p was created with [WithParsePanic].
func ParseAndRun(ctx context.Context, p *Parser, args []string, commands []*Command, options *RunOptions) (err error) {
	if p == nil {
		return errors.New("parser is nil")
	}
	defer Recover(&err)
	if err := p.Parse(args, VerbParamSwitch); err != nil {
		return err
	}
	return Run(ctx, p, commands, options)
}

func run(ctx context.Context, cmd *Command, state *State) (retErr error) {
	defer func() {
		if r := recover(); r != nil {
			if err, ok := asParserError(r); ok {
				retErr = err
				return
			}
			switch err := r.(type) {
			case error:
				retErr = fmt.Errorf("panic: %v\n\n%s", err, panicSite())
			default:
				retErr = fmt.Errorf("panic: %v", r)
			}
		}
	}()
	return cmd.Exec(ctx, state)
}

// newState binds p to the streams in o, falling back to the process streams for any that are
// unset. A nil o is valid.
func (o *RunOptions) newState(p *Parser) *State {
	state := &State{Parser: p, Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
	if o == nil {
		return state
	}
	if o.Stdin != nil {
		state.Stdin = o.Stdin
	}
	if o.Stdout != nil {
		state.Stdout = o.Stdout
	}
	if o.Stderr != nil {
		state.Stderr = o.Stderr
	}
	return state
}

// panicSite returns "pkg.Func file.go:line" for the frame that raised the panic being
// recovered. It must be called directly from the deferred function.
func panicSite() string {
	var pcs [8]uintptr
	// Skip runtime.Callers, panicSite and the deferred function.
	frames := runtime.CallersFrames(pcs[:runtime.Callers(3, pcs[:])])
	for {
		frame, more := frames.Next()
		if frame.Function != "" && !strings.HasPrefix(frame.Function, "runtime.") {
			fn := frame.Function[strings.LastIndex(frame.Function, "/")+1:]
			return fn + " " + filepath.Base(frame.File) + ":" + strconv.Itoa(frame.Line)
		}
		if !more {
			return "unknown:0"
		}
	}
}

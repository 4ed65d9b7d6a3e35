package argparse

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// split turns a space separated command line into tokens, dropping the program name.
func split(cmdline string) []string {
	return strings.Fields(cmdline)[1:]
}

func mustParse(t *testing.T, p *Parser, cmdline string, format Format) *Parser {
	t.Helper()
	require.NoError(t, p.Parse(split(cmdline), format))
	return p
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cmdline string
		format  Format
		wantErr error
	}{
		{"verb format no args", "tool", VerbParamSwitch, nil},
		{"verb only", "tool verb", VerbParamSwitch, nil},
		{"verb and switch", "tool verb -switch", VerbParamSwitch, nil},
		{"verb and option", "tool verb -option value", VerbParamSwitch, nil},
		{"verb switch option", "tool verb -switch --option value", VerbParamSwitch, nil},
		{"verb option switch", "tool verb -option value --switch", VerbParamSwitch, nil},
		{"verb double dash switch", "tool verb --switch", VerbParamSwitch, nil},
		{"switch instead of verb", "tool -switch", VerbParamSwitch, ErrNotAVerb},
		{"switch instead of verb with values", "tool -switch value1 value2", VerbParamSwitch, ErrNotAVerb},
		{"verb followed by value", "tool verb value", VerbParamSwitch, ErrUnexpectedValue},
		{"lone dash is a value", "tool verb -", VerbParamSwitch, ErrUnexpectedValue},
		{"double dash has no name", "tool verb -switch --", VerbParamSwitch, ErrEmptySwitchName},
		{"duplicate with verb", "tool verb -x 1 -x 2", VerbParamSwitch, ErrDuplicateSwitch},

		{"switch format no args", "tool", ParamSwitch, nil},
		{"switch", "tool -switch", ParamSwitch, nil},
		{"option", "tool -option value", ParamSwitch, nil},
		{"switch then option", "tool -switch -option value", ParamSwitch, nil},
		{"option then switch", "tool -option value --switch", ParamSwitch, nil},
		{"double dash switch", "tool --switch", ParamSwitch, nil},
		{"verb not allowed", "tool verb -switch", ParamSwitch, ErrUnexpectedValue},
		{"two values after switch", "tool -switch value1 value2", ParamSwitch, ErrUnexpectedValue},
		{"two values after option", "tool -option value1 value2", ParamSwitch, ErrUnexpectedValue},
		{"bare values", "tool option value1 value2", ParamSwitch, ErrUnexpectedValue},
		{"duplicate", "tool -option value1 -option value2", ParamSwitch, ErrDuplicateSwitch},
		{"duplicate across dash styles", "tool -x 1 --x 2", ParamSwitch, ErrDuplicateSwitch},
		{"duplicate without values", "tool -x -x", ParamSwitch, ErrDuplicateSwitch},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p := New()
			err := p.Parse(split(tc.cmdline), tc.format)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Contains(t, err.Error(), perr.Arg)
		})
	}
}

func TestParseResult(t *testing.T) {
	t.Parallel()

	t.Run("verb and switches", func(t *testing.T) {
		t.Parallel()
		p := mustParse(t, New(), "prog verb -a v1 -b v2", VerbParamSwitch)
		assert.Equal(t, "verb", p.Verb())
		assert.True(t, p.IsPresent("a"))
		assert.True(t, p.IsPresent("b"))
		assert.Equal(t, "v1", p.String("a"))
		assert.Equal(t, "v2", p.String("b"))
		assert.Equal(t, []string{"a", "b"}, p.Names())
	})
	t.Run("end to end", func(t *testing.T) {
		t.Parallel()
		p := New()
		require.NoError(t, p.Parse([]string{"verb", "-switch", "--option", "value"}, VerbParamSwitch))
		assert.Equal(t, "verb", p.Verb())
		assert.True(t, p.IsPresent("switch"))
		assert.Equal(t, "", p.String("switch"))
		assert.False(t, p.Failed())
		assert.Equal(t, "value", p.String("option"))
	})
	t.Run("names are case sensitive", func(t *testing.T) {
		t.Parallel()
		p := mustParse(t, New(), "tool -Name a -name b", ParamSwitch)
		assert.Equal(t, "a", p.String("Name"))
		assert.Equal(t, "b", p.String("name"))
	})
	t.Run("only one prefix is stripped", func(t *testing.T) {
		t.Parallel()
		p := mustParse(t, New(), "tool ---x 1", ParamSwitch)
		assert.True(t, p.IsPresent("-x"))
		assert.False(t, p.IsPresent("x"))
	})
	t.Run("negative number is a switch", func(t *testing.T) {
		t.Parallel()
		p := mustParse(t, New(), "tool -n -5", ParamSwitch)
		assert.Equal(t, "", p.String("n"))
		assert.True(t, p.IsPresent("5"))
	})
	t.Run("lone dash is a value", func(t *testing.T) {
		t.Parallel()
		p := mustParse(t, New(), "tool -input -", ParamSwitch)
		assert.Equal(t, "-", p.String("input"))
	})
	t.Run("switch order does not matter", func(t *testing.T) {
		t.Parallel()
		a := mustParse(t, New(), "tool -a 1 -b -c 3", ParamSwitch)
		b := mustParse(t, New(), "tool -c 3 -b -a 1", ParamSwitch)
		assert.Equal(t, a.Snapshot(), b.Snapshot())
	})
	t.Run("empty verb is a verb", func(t *testing.T) {
		t.Parallel()
		p := New()
		require.NoError(t, p.Parse([]string{"", "-a"}, VerbParamSwitch))
		assert.True(t, p.HasVerb())
		assert.Equal(t, "", p.Verb())
		assert.False(t, p.Failed())
		assert.True(t, p.IsPresent(""))
	})
	t.Run("no verb is not the empty verb", func(t *testing.T) {
		t.Parallel()
		p := mustParse(t, New(), "tool", VerbParamSwitch)
		assert.False(t, p.HasVerb())
		assert.False(t, p.IsPresent(""))
	})
	t.Run("nil args", func(t *testing.T) {
		t.Parallel()
		p := New()
		require.NoError(t, p.Parse(nil, VerbParamSwitch))
		assert.False(t, p.HasVerb())
		assert.Empty(t, p.Names())
	})
	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()
		err := New().Parse(nil, Format(42))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown format Format(42)")
	})
}

func TestParseReplacesState(t *testing.T) {
	t.Parallel()

	t.Run("second parse replaces the first", func(t *testing.T) {
		t.Parallel()
		p := mustParse(t, New(), "tool first -a 1 -b 2", VerbParamSwitch)
		mustParse(t, p, "tool -c 3", ParamSwitch)
		assert.False(t, p.HasVerb())
		assert.False(t, p.IsPresent("first"))
		assert.False(t, p.IsPresent("a"))
		assert.False(t, p.IsPresent("b"))
		assert.Equal(t, "3", p.String("c"))
	})
	t.Run("failed parse leaves nothing behind", func(t *testing.T) {
		t.Parallel()
		p := mustParse(t, New(), "tool verb -a 1", VerbParamSwitch)
		err := p.Parse(split("tool verb -b 2 -c 3 -b 4"), VerbParamSwitch)
		require.ErrorIs(t, err, ErrDuplicateSwitch)
		assert.False(t, p.HasVerb())
		assert.False(t, p.IsPresent("verb"))
		assert.False(t, p.IsPresent("a"))
		assert.False(t, p.IsPresent("b"))
		assert.False(t, p.IsPresent("c"))
		assert.Empty(t, p.Names())
	})
	t.Run("parse clears conversion errors", func(t *testing.T) {
		t.Parallel()
		p := mustParse(t, New(), "tool", ParamSwitch)
		p.String("missing")
		require.True(t, p.Failed())
		mustParse(t, p, "tool", ParamSwitch)
		assert.False(t, p.Failed())
		assert.Empty(t, p.ErrorMessage())
	})
	t.Run("snapshot is a copy", func(t *testing.T) {
		t.Parallel()
		p := mustParse(t, New(), "tool verb -a 1", VerbParamSwitch)
		s := p.Snapshot()
		mustParse(t, p, "tool other -b 2", VerbParamSwitch)
		require.NotNil(t, s.Verb)
		assert.Equal(t, "verb", *s.Verb)
		assert.Equal(t, map[string]string{"a": "1"}, s.Switches)
	})
}

func TestParsePanicPolicy(t *testing.T) {
	t.Parallel()

	t.Run("panics with parse error", func(t *testing.T) {
		t.Parallel()
		p := New(WithParsePanic())
		defer func() {
			r := recover()
			require.NotNil(t, r)
			perr, ok := r.(*ParseError)
			require.True(t, ok)
			assert.ErrorIs(t, perr, ErrNotAVerb)
			assert.Equal(t, "-switch", perr.Arg)
			assert.False(t, p.HasVerb())
		}()
		_ = p.Parse(split("tool -switch"), VerbParamSwitch)
		t.Fatal("expected panic")
	})
	t.Run("recover returns the error", func(t *testing.T) {
		t.Parallel()
		parse := func(p *Parser, args []string) (err error) {
			defer Recover(&err)
			return p.Parse(args, ParamSwitch)
		}
		p := New(WithParsePanic())
		err := parse(p, split("tool -a 1 -a 2"))
		require.ErrorIs(t, err, ErrDuplicateSwitch)
		assert.Equal(t, `argument "-a": present multiple times`, err.Error())
		assert.Empty(t, p.Names())

		require.NoError(t, parse(p, split("tool -a 1")))
		assert.Equal(t, "1", p.String("a"))
	})
	t.Run("recover propagates other panics", func(t *testing.T) {
		t.Parallel()
		assert.PanicsWithValue(t, "boom", func() {
			var err error
			defer Recover(&err)
			panic("boom")
		})
	})
	t.Run("no panic on success", func(t *testing.T) {
		t.Parallel()
		p := New(WithParsePanic())
		assert.NotPanics(t, func() {
			_ = p.Parse(split("tool verb -a"), VerbParamSwitch)
		})
	})
}

func TestParseLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := New(WithLogger(logger))

	require.NoError(t, p.Parse(split("tool verb -a 1"), VerbParamSwitch))
	assert.Contains(t, buf.String(), "parsed arguments")
	assert.Contains(t, buf.String(), "switches=1")

	buf.Reset()
	require.Error(t, p.Parse(split("tool verb value"), VerbParamSwitch))
	assert.Contains(t, buf.String(), "parse failed")
	assert.Contains(t, buf.String(), "arg=value")

	buf.Reset()
	p.Int32("missing")
	assert.Contains(t, buf.String(), "conversion failed")
	assert.Contains(t, buf.String(), "name=missing")
}

func TestFormatString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "param-switch", ParamSwitch.String())
	assert.Equal(t, "verb-param-switch", VerbParamSwitch.String())
	assert.Equal(t, "Format(7)", Format(7).String())
}

package argparse

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/agext/levenshtein"
)

// Command is an action selected by the parsed verb. See [Run].
type Command struct {
	// Name is the verb that selects this command. Matching is exact and case-sensitive.
	Name string

	// Exec runs the command. It receives the [State] wrapping the parsed arguments and returns an
	// error if execution fails.
	Exec func(ctx context.Context, s *State) error
}

// maxSuggestions and maxSuggestionDistance bound the "did you mean" list for an unknown verb.
const (
	maxSuggestions        = 3
	maxSuggestionDistance = 2
)

var validNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

func validateCommands(commands []*Command) error {
	if len(commands) == 0 {
		return errors.New("no commands defined")
	}
	seen := make(map[string]bool, len(commands))
	for i, c := range commands {
		if c == nil {
			return fmt.Errorf("command at index %d is nil", i)
		}
		if c.Name == "" {
			return fmt.Errorf("command at index %d has no name", i)
		}
		if !validNameRegex.MatchString(c.Name) {
			return fmt.Errorf("command %q: name must start with a letter and contain only letters, numbers, dashes (-) or underscores (_)", c.Name)
		}
		if seen[c.Name] {
			return fmt.Errorf("command %q: defined more than once", c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}

func findCommand(commands []*Command, name string) *Command {
	for _, c := range commands {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func formatUnknownCommandError(unknown string, commands []*Command) error {
	known := make([]string, 0, len(commands))
	for _, c := range commands {
		known = append(known, c.Name)
	}
	suggestions := findSimilar(unknown, known, maxSuggestions)
	if len(suggestions) > 0 {
		return fmt.Errorf("unknown command %q. Did you mean one of these?\n\t%s",
			unknown,
			strings.Join(suggestions, "\n\t"))
	}
	return fmt.Errorf("unknown command %q", unknown)
}

// findSimilar returns up to limit names from known within maxSuggestionDistance edits of name,
// closest first.
func findSimilar(name string, known []string, limit int) []string {
	type candidate struct {
		name string
		dist int
	}
	var candidates []candidate
	for _, k := range known {
		if d := levenshtein.Distance(name, k, nil); d <= maxSuggestionDistance {
			candidates = append(candidates, candidate{name: k, dist: d})
		}
	}
	slices.SortFunc(candidates, func(a, b candidate) int {
		if c := cmp.Compare(a.dist, b.dist); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})
	var out []string
	for _, c := range candidates {
		if len(out) == limit {
			break
		}
		out = append(out, c.name)
	}
	return out
}

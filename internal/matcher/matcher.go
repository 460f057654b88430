// Package matcher compiles the basename pattern (regex or glob) Walker
// applies to each directory entry. Pattern compilation is treated as an
// external collaborator by the core traversal engine (spec.md §1), but it
// still needs a home — this package is that home, kept deliberately small
// and opaque behind the Matcher interface so internal/walker never needs to
// know which mode is in effect.
package matcher

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

// Mode selects how patterns are interpreted.
type Mode int

const (
	// None matches every basename unconditionally (empty pattern).
	None Mode = iota
	// Regex interprets the pattern as a regular expression.
	Regex
	// Glob interprets the pattern as a shell glob (fnmatch-style).
	Glob
)

// Matcher tests a basename against a compiled pattern.
type Matcher interface {
	Match(basename string) bool
}

type noneMatcher struct{}

func (noneMatcher) Match(string) bool { return true }

type regexMatcher struct {
	re *regexp.Regexp
}

func (m regexMatcher) Match(basename string) bool {
	return m.re.MatchString(basename)
}

// globMatcher case-folds by lower-casing both the pattern (at compile time)
// and the basename (at match time) when icase is set, since gobwas/glob
// itself has no case-insensitive mode — the closest equivalent to the C
// original's FNM_CASEFOLD flag passed to fnmatch(3).
type globMatcher struct {
	g     glob.Glob
	icase bool
}

func (m globMatcher) Match(basename string) bool {
	if m.icase {
		basename = strings.ToLower(basename)
	}
	return m.g.Match(basename)
}

// Compile builds a Matcher for the given mode, pattern, and case-fold
// setting. An empty pattern always yields Mode None regardless of the
// requested mode, matching options.c's "no pattern → mode NONE" rule.
func Compile(mode Mode, pattern string, icase bool) (Matcher, error) {
	if pattern == "" {
		return noneMatcher{}, nil
	}

	switch mode {
	case Regex:
		flags := ""
		if icase {
			flags = "(?i)"
		}
		re, err := regexp.Compile(flags + pattern)
		if err != nil {
			return nil, fmt.Errorf("compile regex %q: %w", pattern, err)
		}
		return regexMatcher{re: re}, nil
	case Glob:
		compiled := pattern
		if icase {
			compiled = strings.ToLower(pattern)
		}
		g, err := glob.Compile(compiled)
		if err != nil {
			return nil, fmt.Errorf("compile glob %q: %w", pattern, err)
		}
		return globMatcher{g: g, icase: icase}, nil
	default:
		return noneMatcher{}, nil
	}
}

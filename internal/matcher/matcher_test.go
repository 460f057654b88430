package matcher

import "testing"

func TestEmptyPatternAlwaysMatches(t *testing.T) {
	m, err := Compile(Regex, "", false)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Match("anything.go") {
		t.Error("empty pattern must match unconditionally")
	}
}

func TestRegexMode(t *testing.T) {
	m, err := Compile(Regex, `\.go$`, false)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Match("main.go") {
		t.Error("expected main.go to match")
	}
	if m.Match("main.py") {
		t.Error("expected main.py not to match")
	}
}

func TestRegexCaseFold(t *testing.T) {
	m, err := Compile(Regex, `^README$`, true)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Match("readme") {
		t.Error("expected case-insensitive match")
	}
}

func TestGlobMode(t *testing.T) {
	m, err := Compile(Glob, "*.txt", false)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Match("notes.txt") {
		t.Error("expected notes.txt to match")
	}
	if m.Match("notes.md") {
		t.Error("expected notes.md not to match")
	}
}

func TestGlobCaseFold(t *testing.T) {
	m, err := Compile(Glob, "*.TXT", true)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Match("notes.txt") {
		t.Error("expected case-insensitive glob match")
	}
}

func TestInvalidRegexErrors(t *testing.T) {
	if _, err := Compile(Regex, "(unterminated", false); err == nil {
		t.Error("expected error compiling invalid regex")
	}
}

func TestInvalidGlobErrors(t *testing.T) {
	if _, err := Compile(Glob, "[unterminated", false); err == nil {
		t.Error("expected error compiling invalid glob")
	}
}

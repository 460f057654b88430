package stats

import (
	"strings"
	"testing"
)

func TestCountersAccumulate(t *testing.T) {
	s := New(false)
	s.DirScanned()
	s.DirScanned()
	s.EntrySeen()
	s.EntrySeen()
	s.EntrySeen()
	s.MatchEmitted()

	summary := s.String()
	if !strings.Contains(summary, "3") {
		t.Errorf("expected entry count 3 in summary, got %q", summary)
	}
	if !strings.Contains(summary, "2") {
		t.Errorf("expected dir count 2 in summary, got %q", summary)
	}
	if !strings.Contains(summary, "1") {
		t.Errorf("expected match count 1 in summary, got %q", summary)
	}
}

func TestFinishWithoutProgressBarIsSafe(t *testing.T) {
	s := New(false)
	s.RootSeeded()
	if s.Finish() == "" {
		t.Error("expected a non-empty summary from Finish")
	}
}

func TestFinishWithProgressBarIsSafe(t *testing.T) {
	s := New(true)
	s.DirScanned()
	if s.Finish() == "" {
		t.Error("expected a non-empty summary from Finish")
	}
}

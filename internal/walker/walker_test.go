package walker

import (
	"bytes"
	"sort"
	"strings"
	"testing"

	"github.com/jchain/ff/internal/fixture"
	"github.com/jchain/ff/internal/flagman"
	"github.com/jchain/ff/internal/ignorescope"
	"github.com/jchain/ff/internal/matcher"
	"github.com/jchain/ff/internal/options"
	"github.com/jchain/ff/internal/queue"
)

// drain runs a Walker/Queue/Flagman to quiescence over a single root and
// returns every emitted line, sorted for deterministic comparison.
func drain(t *testing.T, root string, opts *options.Options) []string {
	t.Helper()

	var buf bytes.Buffer
	emitter := NewEmitter(&buf, false)
	q := queue.New()
	fm := flagman.New()
	w := New(opts, q, fm, emitter, nil)

	fm.Acquire() // seeding credit
	scope, _ := opts.OpenScope(root)
	fm.Acquire() // the root item's own credit, released by the worker loop
	q.PutHead(&queue.WorkItem{Path: root, Depth: 0, Scope: scope})
	fm.Release()

	done := make(chan struct{})
	go func() {
		for {
			item := q.Get()
			if item == nil {
				close(done)
				return
			}
			w.Walk(item)
			ignorescope.Release(item.Scope)
			fm.Release()
		}
	}()

	fm.Wait()
	q.PutTail(nil)
	<-done

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil
	}
	sort.Strings(lines)
	return lines
}

func baseOptions() *options.Options {
	return &options.Options{
		MaxDepth:  -1,
		OnlyType:  options.AnyType,
		Mode:      matcher.None,
		OpenScope: ignorescope.Open,
		Threads:   1,
	}
}

func TestWalkEmitsAllEntriesWithNoPattern(t *testing.T) {
	root := fixture.Build(t, fixture.Tree{
		Files: []string{"a.txt", "dir/b.txt"},
		Dirs:  []string{"dir"},
	})

	opts := baseOptions()
	m, _ := matcher.Compile(matcher.None, "", false)
	opts.Matcher = m

	lines := drain(t, root, opts)
	want := []string{root + "/a.txt", root + "/dir", root + "/dir/b.txt"}
	sort.Strings(want)
	assertEqual(t, lines, want)
}

func TestWalkHonorsGitignore(t *testing.T) {
	root := fixture.Build(t, fixture.Tree{
		Files:   []string{"keep.txt", "skip.log"},
		Ignores: map[string]string{"": "*.log\n"},
	})

	opts := baseOptions()
	m, _ := matcher.Compile(matcher.None, "", false)
	opts.Matcher = m

	lines := drain(t, root, opts)
	want := []string{root + "/.gitignore", root + "/keep.txt"}
	sort.Strings(want)
	assertEqual(t, lines, want)
}

func TestWalkNoIgnoreDisablesExclusion(t *testing.T) {
	root := fixture.Build(t, fixture.Tree{
		Files:   []string{"keep.txt", "skip.log"},
		Ignores: map[string]string{"": "*.log\n"},
	})

	opts := baseOptions()
	opts.NoIgnore = true
	m, _ := matcher.Compile(matcher.None, "", false)
	opts.Matcher = m

	lines := drain(t, root, opts)
	want := []string{root + "/.gitignore", root + "/keep.txt", root + "/skip.log"}
	sort.Strings(want)
	assertEqual(t, lines, want)
}

func TestWalkSkipsHiddenByDefault(t *testing.T) {
	root := fixture.Build(t, fixture.Tree{
		Files: []string{"visible.txt", ".hidden.txt", "backup~"},
	})

	opts := baseOptions()
	opts.SkipHidden = true
	m, _ := matcher.Compile(matcher.None, "", false)
	opts.Matcher = m

	lines := drain(t, root, opts)
	assertEqual(t, lines, []string{root + "/visible.txt"})
}

func TestWalkRespectsMaxDepth(t *testing.T) {
	root := fixture.Build(t, fixture.Tree{
		Files: []string{"top.txt", "a/mid.txt", "a/b/deep.txt"},
	})

	opts := baseOptions()
	opts.MaxDepth = 1
	m, _ := matcher.Compile(matcher.None, "", false)
	opts.Matcher = m

	lines := drain(t, root, opts)
	want := []string{root + "/top.txt", root + "/a"}
	sort.Strings(want)
	assertEqual(t, lines, want)
}

func TestWalkTypeFilterExcludesDirectories(t *testing.T) {
	root := fixture.Build(t, fixture.Tree{
		Files: []string{"file.txt"},
		Dirs:  []string{"subdir"},
	})

	opts := baseOptions()
	opts.OnlyType = options.RegularFile
	m, _ := matcher.Compile(matcher.None, "", false)
	opts.Matcher = m

	lines := drain(t, root, opts)
	assertEqual(t, lines, []string{root + "/file.txt"})
}

func TestWalkGlobPattern(t *testing.T) {
	root := fixture.Build(t, fixture.Tree{
		Files: []string{"one.go", "two.txt"},
	})

	opts := baseOptions()
	m, err := matcher.Compile(matcher.Glob, "*.go", false)
	if err != nil {
		t.Fatal(err)
	}
	opts.Matcher = m

	lines := drain(t, root, opts)
	assertEqual(t, lines, []string{root + "/one.go"})
}

func assertEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

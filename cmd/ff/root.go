package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jchain/ff/internal/driver"
	"github.com/jchain/ff/internal/ignorecache"
	"github.com/jchain/ff/internal/ignorescope"
	"github.com/jchain/ff/internal/matcher"
	"github.com/jchain/ff/internal/options"
	"github.com/jchain/ff/internal/stats"
	"github.com/jchain/ff/internal/walker"
)

// cliOptions holds the raw CLI flags, mirroring options.c's flag set
// one-for-one plus the SPEC_FULL additions (--no-progress, --stats,
// --cache-file).
type cliOptions struct {
	depth         int
	typeFlag      string
	threads       int
	glob          bool
	hidden        bool
	noIgnore      bool
	icase         bool
	deterministic bool
	noProgress    bool
	showStats     bool
	cacheFile     string
}

// newRootCmd builds the ff command tree.
func newRootCmd() *cobra.Command {
	opts := &cliOptions{
		depth:   -1,
		threads: runtime.NumCPU(),
	}

	cmd := &cobra.Command{
		Use:     "ff [pattern] [path...]",
		Short:   "Find files and directories by name, in parallel",
		Version: version + " (" + commit + ")",
		Long: `ff is a simplified, parallel analogue of find: it searches one or more
directory trees concurrently, matching basenames against a regex or glob
pattern, honoring .gitignore exclusions along the way.

With no <path> arguments the current directory is searched. With no
<pattern>, every non-hidden, non-ignored entry is emitted.`,
		RunE: func(c *cobra.Command, args []string) error {
			if c.Flags().Changed("depth") && opts.depth <= 0 {
				return fmt.Errorf("invalid argument for --depth: must be positive")
			}
			return runFF(args, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.depth, "depth", "d", opts.depth, "Maximum directory traversal depth")
	flags.StringVarP(&opts.typeFlag, "type", "t", "", "Restrict output to type: b,c,d,n,l,f,s")
	flags.IntVarP(&opts.threads, "threads", "j", opts.threads, "Number of worker threads")
	flags.BoolVarP(&opts.glob, "glob", "g", false, "Match glob instead of regex")
	flags.BoolVarP(&opts.hidden, "hidden", "H", false, "Traverse hidden directories and files as well")
	flags.BoolVarP(&opts.noIgnore, "no-ignore", "I", false, "Disregard .gitignore")
	flags.BoolVarP(&opts.icase, "ignore-case", "i", false, "Ignore case when matching")
	flags.BoolVarP(&opts.deterministic, "deterministic", "D", false, "Accepted for compatibility; has no effect on output order")
	flags.BoolVar(&opts.noProgress, "no-progress", false, "Disable the progress spinner")
	flags.BoolVar(&opts.showStats, "stats", false, "Print a summary of entries scanned/matched on exit")
	flags.StringVar(&opts.cacheFile, "cache-file", "", "Path to ignore-scope cache file (enables caching)")

	return cmd
}

// runFF validates the CLI flags, builds the Options snapshot, and hands the
// resolved roots to a Driver.
func runFF(args []string, cli *cliOptions) error {
	if cli.depth == 0 {
		return fmt.Errorf("invalid argument for --depth: 0 is not a valid depth")
	}
	if cli.threads <= 0 {
		return fmt.Errorf("invalid argument for --threads: must be positive")
	}

	onlyType := options.AnyType
	if cli.typeFlag != "" {
		t, ok := options.ParseEntryType(cli.typeFlag[0])
		if !ok {
			return fmt.Errorf("invalid argument for --type: %q", cli.typeFlag)
		}
		onlyType = t
	}

	mode := matcher.None
	if cli.glob {
		mode = matcher.Glob
	}

	var pattern string
	var roots []string
	switch {
	case len(args) == 0:
		mode = matcher.None
	default:
		pattern = args[0]
		if pattern != "" && mode == matcher.None {
			mode = matcher.Regex
		}
		roots = args[1:]
	}

	if len(roots) == 0 {
		roots = []string{"."}
	}
	for i, r := range roots {
		resolved, err := resolveRoot(r)
		if err != nil {
			return err
		}
		roots[i] = resolved
	}

	m, err := matcher.Compile(mode, pattern, cli.icase)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}

	cache, err := ignorecache.Open(cli.cacheFile)
	if err != nil {
		return fmt.Errorf("open ignore cache: %w", err)
	}
	defer func() { _ = cache.Close() }()

	opener := ignorescope.Open
	if cli.cacheFile != "" {
		opener = cache.Open
	}

	opts := &options.Options{
		MaxDepth:      cli.depth,
		OnlyType:      onlyType,
		SkipHidden:    !cli.hidden,
		NoIgnore:      cli.noIgnore,
		ICase:         cli.icase,
		Mode:          mode,
		Colorize:      isatty.IsTerminal(os.Stdout.Fd()),
		Matcher:       m,
		Threads:       cli.threads,
		Deterministic: cli.deterministic,
		OpenScope:     opener,
	}

	st := stats.New(!cli.noProgress)
	emitter := walker.NewEmitter(os.Stdout, opts.Colorize)

	d := driver.New(opts, emitter, st)
	d.Run(roots)

	if cli.showStats {
		fmt.Fprintln(os.Stderr, st.Finish())
	} else {
		st.Finish()
	}

	return nil
}

// resolveRoot checks that path opens as a directory and truncates trailing
// slashes, matching options.c lines 153-167 exactly (a bare "/" is left
// alone).
func resolveRoot(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	info, err := f.Stat()
	_ = f.Close()
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: not a directory", path)
	}

	end := len(path)
	for end > 1 && path[end-1] == '/' {
		end--
	}
	return path[:end], nil
}

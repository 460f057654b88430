// Command ff is a parallel directory-tree search utility: a simplified,
// concurrent analogue of find built around a priority-queue-scheduled
// worker pool.
package main

import "os"

var (
	version = "dev"
	commit  = "none"
)

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/portablecontext/vcp-engine/internal/replay"
)

// #region main

func main() {
	verbose := flag.Bool("v", false, "print passing steps too")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: vcp-replay [-v] fixture.json [fixture.json ...]")
		os.Exit(2)
	}

	exitCode := 0
	for _, path := range paths {
		fixture, err := replay.LoadFixture(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			exitCode = 2
			continue
		}
		if !runFixture(path, fixture, *verbose) {
			if exitCode == 0 {
				exitCode = 1
			}
		}
	}
	os.Exit(exitCode)
}

// #endregion main

// #region output

func runFixture(path string, fixture *replay.Fixture, verbose bool) bool {
	results := replay.Run(fixture)
	summary := replay.Summarize(results)

	name := fixture.Description
	if name == "" {
		name = path
	}
	fmt.Printf("%s: %d steps, %d passed, %d failed\n", name, summary.TotalSteps, summary.Passed, summary.Failed)

	for _, r := range results {
		if r.Passed() {
			if verbose {
				fmt.Printf("  OK    %-24s severity=%s\n", r.Name, severityLabel(string(r.Severity)))
			}
			continue
		}
		fmt.Printf("  FAIL  %-24s severity=%s\n", r.Name, severityLabel(string(r.Severity)))
		for _, failure := range r.Failures {
			fmt.Printf("        %s\n", failure)
		}
	}
	return summary.Failed == 0
}

func severityLabel(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// #endregion output

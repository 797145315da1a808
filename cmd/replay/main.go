package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/utility-advisor/internal/replay"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to replay fixture JSON")
	bonus := flag.Float64("bonus", -1, "override the fixture's consistency bonus (negative keeps the fixture value)")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json [--bonus N]")
		os.Exit(2)
	}

	f, err := replay.LoadFixture(*fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		os.Exit(2)
	}

	cycles, err := f.ToCycles()
	if err != nil {
		fmt.Fprintf(os.Stderr, "convert fixture: %v\n", err)
		os.Exit(2)
	}

	consistencyBonus := f.ConsistencyBonus
	if *bonus >= 0 {
		consistencyBonus = float32(*bonus)
	}

	if f.Description != "" {
		fmt.Printf("%s\n\n", f.Description)
	}

	results := replay.Replay(consistencyBonus, cycles)
	os.Exit(printComparison(results, f.Cycles))
}

// #endregion main

// #region output

// printComparison outputs a per-cycle comparison table and returns exit code:
// 0 when every cycle matched the fixture's expectations, 1 otherwise.
func printComparison(results []replay.Result, expected []replay.FixtureCycle) int {
	fmt.Printf("%-6s| %-10s| %-10s| %-24s| %s\n", "Cycle", "Expected", "Replayed", "Identity", "Match")
	fmt.Printf("%-6s+%-11s+%-11s+%-25s+%s\n",
		"------", "-----------", "-----------", "-------------------------", "------")

	matches := 0
	total := len(results)
	if len(expected) < total {
		total = len(expected)
	}

	for i := 0; i < total; i++ {
		exp := expected[i].Expected
		got := results[i]
		match := "DIFF"
		if exp.Action == string(got.Action) && exp.Identity == got.Identity {
			match = "OK"
			matches++
		}
		fmt.Printf("%-6d| %-10s| %-10s| %-24s| %s\n",
			got.Cycle, exp.Action, got.Action, got.Identity, match)
	}

	summary := replay.Summarize(results)
	fmt.Printf("\nSummary: %d cycles, %d match, %d diverge (%d adopt, %d refresh, %d replace, %d no_op)\n",
		total, matches, total-matches,
		summary.Adopts, summary.Refreshes, summary.Replaces, summary.NoOps)
	if summary.Desyncs > 0 {
		fmt.Printf("Desyncs: %d\n", summary.Desyncs)
	}

	if total > matches {
		return 1
	}
	return 0
}

// #endregion output

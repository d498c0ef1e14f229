// Command oomips-bench runs the timing model's built-in microbenchmark
// suite and reports per-scenario cycle-accounting statistics.
//
// Usage:
//
//	go run ./cmd/oomips-bench [flags]
//
// Flags:
//
//	-json  Output results as a JSON array (default: human-readable)
package main

import (
	"fmt"
	"os"

	"flag"

	"github.com/oomips/sim/benchmarks"
)

func main() {
	jsonOutput := flag.Bool("json", false, "output results as a JSON array")
	flag.Parse()

	harness := benchmarks.NewHarness()
	results, err := harness.RunAll(benchmarks.Suite())
	if err != nil {
		fmt.Fprintf(os.Stderr, "oomips-bench: %v\n", err)
		os.Exit(1)
	}

	if *jsonOutput {
		if err := harness.PrintJSON(results); err != nil {
			fmt.Fprintf(os.Stderr, "oomips-bench: %v\n", err)
			os.Exit(1)
		}
		return
	}

	harness.PrintResults(results)
}

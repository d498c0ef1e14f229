// Package main provides a pointer to the simulator's real entry point.
// oomips is a cycle-accurate simulator for a single-fetch, multi-issue,
// out-of-order MIPS-like 32-bit processor.
//
// For the full CLI, use: go run ./cmd/oomips
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("oomips - out-of-order MIPS-like processor simulator")
	fmt.Println("")
	fmt.Println("Usage: oomips [options] <program-image>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config       Path to timing configuration JSON file")
	fmt.Println("  -native-fpu   Use hardware float32 arithmetic (default true)")
	fmt.Println("  -commit-log   Path to write a per-instruction commit trace")
	fmt.Println("  -cycles       Maximum cycles to simulate")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/oomips' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/oomips' instead.")
	}
}

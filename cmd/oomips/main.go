// Package main provides the entry point for the out-of-order MIPS-like
// simulator: it loads a program image, runs it to completion on the timing
// machine, and reports cycle-accurate statistics.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/oomips/sim/emu"
	"github.com/oomips/sim/fpu"
	"github.com/oomips/sim/loader"
	"github.com/oomips/sim/stats"
	"github.com/oomips/sim/timing/core"
	"github.com/oomips/sim/timing/latency"
	"github.com/oomips/sim/timing/pipeline"
)

var (
	configPath    = flag.String("config", "", "path to a timing configuration JSON file")
	nativeFPU     = flag.Bool("native-fpu", true, "use the host's hardware float32 arithmetic instead of the bit-exact software kernels")
	commitLogPath = flag.String("commit-log", "", "path to write a per-instruction commit trace (default: none)")
	printStats    = flag.Bool("stats", true, "print cycle-accounting statistics after the run")
	statsInterval = flag.Uint64("stats-interval", 0, "print an intermediate report every N cycles (default: 0, disabled)")
	cycleBudget   = flag.Uint64("cycles", 10_000_000, "maximum number of cycles to simulate before giving up")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: oomips [options] <program-image>\n\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "oomips: %v\n", err)
		os.Exit(1)
	}
}

func run(programPath string) error {
	config := latency.DefaultConfig()
	if *configPath != "" {
		var err error
		config, err = latency.LoadConfig(*configPath)
		if err != nil {
			return fmt.Errorf("loading timing config: %w", err)
		}
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid timing config: %w", err)
	}

	f, err := os.Open(programPath)
	if err != nil {
		return fmt.Errorf("opening program image: %w", err)
	}
	defer f.Close()

	mem := emu.NewMemory()
	mem.Serial.SetInput(os.Stdin)
	mem.Serial.SetOutput(os.Stdout)

	loaded, err := loader.Load(f, mem)
	if err != nil {
		return fmt.Errorf("loading program image: %w", err)
	}

	fpuMode := fpu.Exact
	if *nativeFPU {
		fpuMode = fpu.Native
	}

	cpu := core.NewCore(mem, config, fpuMode)
	machine := cpu.Machine

	if *commitLogPath != "" {
		logFile, err := os.Create(*commitLogPath)
		if err != nil {
			return fmt.Errorf("creating commit log: %w", err)
		}
		defer logFile.Close()
		machine.CommitLog = logFile
	}

	runErr := runWithIntervalReports(cpu, *cycleBudget, *statsInterval)

	// A *FatalError (an undecodable instruction reaching commit, or a store
	// outside addressable memory) always terminates with a nonzero exit; the
	// simulation's only clean (exit 0) termination is the serial port's
	// receive-status probe hitting end of input, which machine.Tick reports
	// by setting Halted with no error at all.
	if runErr != nil {
		var fatal *pipeline.FatalError
		if errors.As(runErr, &fatal) {
			return fmt.Errorf("program halted: %w", fatal)
		}
		return fmt.Errorf("running program: %w", runErr)
	}

	if *printStats {
		fmt.Fprintf(os.Stderr, "Program: %s (%d words loaded)\n", programPath, loaded)
		if machine.Halted {
			fmt.Fprintf(os.Stderr, "Halted: yes (serial end of input)\n")
		} else {
			fmt.Fprintf(os.Stderr, "Halted: no (cycle budget exhausted)\n")
		}
		fmt.Fprintln(os.Stderr)
		stats.NewReport(machine.Stats, machine.Predictor.Stats()).WriteTo(os.Stderr)
	}

	return nil
}

// runWithIntervalReports ticks the machine to completion in chunks of
// interval cycles, printing an intermediate report after each chunk; an
// interval of 0 runs to completion (or the budget) with no intermediate
// output.
func runWithIntervalReports(cpu *core.Core, budget, interval uint64) error {
	if interval == 0 {
		return cpu.RunCycles(budget)
	}
	m := cpu.Machine
	for ran := uint64(0); ran < budget && !cpu.Halted(); ran += interval {
		chunk := interval
		if remaining := budget - ran; chunk > remaining {
			chunk = remaining
		}
		if err := cpu.RunCycles(chunk); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "--- after %d cycles ---\n", m.Stats.Cycles)
		stats.NewReport(m.Stats, m.Predictor.Stats()).WriteTo(os.Stderr)
		fmt.Fprintln(os.Stderr)
	}
	return nil
}

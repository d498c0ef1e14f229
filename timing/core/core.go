// Package core provides the cycle-accurate CPU core model.
// It wraps the out-of-order pipeline to provide a high-level interface.
package core

import (
	"github.com/oomips/sim/emu"
	"github.com/oomips/sim/fpu"
	"github.com/oomips/sim/timing/latency"
	"github.com/oomips/sim/timing/pipeline"
)

// Stats holds performance statistics for the core.
type Stats struct {
	Cycles         uint64
	Instructions   uint64
	Mispredictions uint64
	Flushes        uint64
	Stalls         [pipeline.NumStallCauses]uint64
}

// Core represents a cycle-accurate, out-of-order CPU core model. It wraps
// the unified register file / ROB / reservation-station / load-store-queue
// pipeline machine and provides a simple run/tick interface over it.
type Core struct {
	Machine *pipeline.Machine
	memory  *emu.Memory
}

// NewCore creates a new Core around memory, timed per config (DefaultConfig
// if nil), with floating-point arithmetic performed per fpuMode.
func NewCore(memory *emu.Memory, config *latency.Config, fpuMode fpu.Mode) *Core {
	if config == nil {
		config = latency.DefaultConfig()
	}
	return &Core{
		Machine: pipeline.NewMachine(memory, config, fpuMode),
		memory:  memory,
	}
}

// SetPC sets the fetch program counter, a word address.
func (c *Core) SetPC(pc uint32) {
	c.Machine.SetPC(pc)
}

// Tick executes one cycle of the machine.
func (c *Core) Tick() error {
	return c.Machine.Tick()
}

// Halted returns true if the core has stopped issuing new cycles.
func (c *Core) Halted() bool {
	return c.Machine.Halted
}

// Stats returns performance statistics for the core.
func (c *Core) Stats() Stats {
	s := c.Machine.Stats
	return Stats{
		Cycles:         s.Cycles,
		Instructions:   s.Instructions,
		Mispredictions: s.Mispredictions,
		Flushes:        s.Flushes,
		Stalls:         s.Stalls,
	}
}

// Run executes the core until it halts or hits a fatal error.
func (c *Core) Run() error {
	return c.Machine.Run()
}

// RunCycles executes the core for up to the given number of cycles, stopping
// early if it halts or hits a fatal error.
func (c *Core) RunCycles(cycles uint64) error {
	return c.Machine.RunCycles(cycles)
}

// Reset clears all core state and rewinds the fetch PC to zero.
func (c *Core) Reset() {
	c.Machine.Reset()
}

// Package latency maps decoded instructions onto functional units and
// looks up each unit's pipeline depth from a Config.
package latency

import (
	"github.com/oomips/sim/insts"
)

// Unit identifies one of the machine's reservation stations (or the
// load/store queue, which has its own fixed-latency path rather than a
// configurable reservation station).
type Unit int

// Functional units.
const (
	UnitNone Unit = iota
	UnitALU
	UnitBranch
	UnitFPAdd
	UnitFPMul
	UnitFPCompare
	UnitFPOthers
	UnitLSQ
)

// Table resolves an instruction to its functional unit and that unit's
// configured latency.
type Table struct {
	config *Config
}

// NewTable returns a Table using DefaultConfig.
func NewTable() *Table {
	return &Table{config: DefaultConfig()}
}

// NewTableWithConfig returns a Table using the given Config.
func NewTableWithConfig(config *Config) *Table {
	return &Table{config: config}
}

// Config returns the Table's underlying Config.
func (t *Table) Config() *Config {
	return t.config
}

// UnitFor returns the functional unit a decoded op routes to.
func UnitFor(op insts.Op) Unit {
	switch op {
	case insts.OpADD, insts.OpSUB, insts.OpAND, insts.OpOR, insts.OpXOR,
		insts.OpNOR, insts.OpSLT, insts.OpSLTU, insts.OpSLL, insts.OpSRL, insts.OpSRA:
		return UnitALU
	case insts.OpJR, insts.OpJALR, insts.OpBEQ, insts.OpBNE, insts.OpBC1T, insts.OpBC1F:
		return UnitBranch
	case insts.OpFADD, insts.OpFSUB, insts.OpFMOV, insts.OpMFC1, insts.OpMTC1:
		return UnitFPAdd
	case insts.OpFMUL:
		return UnitFPMul
	case insts.OpFCEQ, insts.OpFCOLT, insts.OpFCOLE:
		return UnitFPCompare
	case insts.OpFDIV, insts.OpFSQRT, insts.OpCVTWS, insts.OpCVTSW:
		return UnitFPOthers
	case insts.OpLW, insts.OpSW, insts.OpLWC1, insts.OpSWC1:
		return UnitLSQ
	default:
		return UnitNone
	}
}

// Latency returns the configured pipeline depth for a functional unit. J and
// JAL resolve at dispatch with no reservation station and have no entry
// here; UnitNone returns 1 as a harmless default for decode failures.
func (t *Table) Latency(u Unit) uint64 {
	switch u {
	case UnitALU:
		return t.config.ALULatency
	case UnitBranch:
		return t.config.BranchLatency
	case UnitFPAdd:
		return t.config.FPAddLatency
	case UnitFPMul:
		return t.config.FPMulLatency
	case UnitFPCompare:
		return t.config.FPCompareLatency
	case UnitFPOthers:
		return t.config.FPOthersLatency
	case UnitLSQ:
		return t.config.LoadLatency
	default:
		return 1
	}
}

// Entries returns the reservation-station queue depth for a functional unit.
func (t *Table) Entries(u Unit) int {
	switch u {
	case UnitALU:
		return t.config.ALUEntries
	case UnitBranch:
		return t.config.BranchEntries
	case UnitFPAdd:
		return t.config.FPAddEntries
	case UnitFPMul:
		return t.config.FPMulEntries
	case UnitFPCompare:
		return t.config.FPCompareEntries
	case UnitFPOthers:
		return t.config.FPOthersEntries
	default:
		return 0
	}
}

// GetLatency returns the latency, in cycles, for a decoded instruction's
// functional unit.
func (t *Table) GetLatency(inst *insts.Instruction) uint64 {
	if inst == nil {
		return 1
	}
	return t.Latency(UnitFor(inst.Op))
}

// IsMemoryOp reports whether the instruction is a load or store, of either
// register bank.
func IsMemoryOp(op insts.Op) bool {
	switch op {
	case insts.OpLW, insts.OpSW, insts.OpLWC1, insts.OpSWC1:
		return true
	default:
		return false
	}
}

// IsLoadOp reports whether the instruction is a load.
func IsLoadOp(op insts.Op) bool {
	return op == insts.OpLW || op == insts.OpLWC1
}

// IsStoreOp reports whether the instruction is a store.
func IsStoreOp(op insts.Op) bool {
	return op == insts.OpSW || op == insts.OpSWC1
}

// IsBranchOp reports whether the instruction is branch-routed.
func IsBranchOp(op insts.Op) bool {
	return UnitFor(op) == UnitBranch
}

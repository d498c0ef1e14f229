package pipeline

import (
	"github.com/oomips/sim/insts"
	"github.com/oomips/sim/timing/latency"
)

// readOperand resolves register r's value-or-tag for a dispatching
// instruction. The register file alone is not enough: it is only updated at
// retirement, while the CDB carries a tag's value for a single cycle right
// after the producer's station issues. Snoop runs before dispatch in the
// per-cycle stage order, so a producer that resolves this very cycle has
// already updated its ROB entry's Val by the time dispatch reads it, even
// though it has not retired and will never be rebroadcast again. Falling
// through to that ROB entry's Val when it is already ready, before handing a
// bare pending tag to a reservation station, is the short-circuit that keeps
// such a producer from going unobserved.
func (m *Machine) readOperand(r uint8) Operand {
	v := m.RegFile.Read(r)
	if v.Ready {
		return v
	}
	if robVal := m.ROB.Entry(v.Tag).Val; robVal.Ready {
		return robVal
	}
	return v
}

// unifiedDestReg maps a decoded instruction's destination onto the unified
// 128-slot register file: FP-compare results always target the condition
// code at RegCC0, FP destinations live at FPRegBase+fd, and everything else
// uses the plain integer destination (0 when there is none).
func unifiedDestReg(inst insts.Instruction) uint8 {
	switch inst.Op {
	case insts.OpFCEQ, insts.OpFCOLT, insts.OpFCOLE:
		return RegCC0
	}
	if inst.HasFReg {
		return FPRegBase + inst.SetFReg
	}
	return inst.SetReg
}

func aluSubOp(op insts.Op) int {
	switch op {
	case insts.OpADD:
		return aluADD
	case insts.OpSUB:
		return aluSUB
	case insts.OpAND:
		return aluAND
	case insts.OpOR:
		return aluOR
	case insts.OpXOR:
		return aluXOR
	case insts.OpNOR:
		return aluNOR
	case insts.OpSLT:
		return aluSLT
	case insts.OpSLTU:
		return aluSLTU
	case insts.OpSLL:
		return aluSLL
	case insts.OpSRL:
		return aluSRL
	case insts.OpSRA:
		return aluSRA
	default:
		return aluADD
	}
}

// aluOperands gathers the ALU station's two operands. Shift forms read
// their value from Rt (not Rs) in both the shift-by-immediate (SLL/SRL/SRA,
// amount in Sa via HasImmediate) and shift-by-register (SLLV/SRLV/SRAV,
// amount in Rs) encodings; every other ALU op reads Rs and, per
// HasImmediate, either Rt or the decoded immediate.
func (m *Machine) aluOperands(inst insts.Instruction) []Operand {
	switch inst.Op {
	case insts.OpSLL, insts.OpSRL, insts.OpSRA:
		value := m.readOperand(inst.Rt)
		if inst.HasImmediate {
			return []Operand{value, ReadyOperand(inst.Immediate)}
		}
		return []Operand{value, m.readOperand(inst.Rs)}
	default:
		a := m.readOperand(inst.Rs)
		if inst.HasImmediate {
			return []Operand{a, ReadyOperand(inst.Immediate)}
		}
		return []Operand{a, m.readOperand(inst.Rt)}
	}
}

func (m *Machine) dispatchBranch(tag int, inst insts.Instruction, pcWord uint32) {
	fallThrough := ReadyOperand(pcWord + 1)
	var taken Operand
	if inst.Branch == insts.BranchConditional {
		taken = ReadyOperand(uint32(int32(pcWord+1) + inst.SignedOffset))
	}
	switch inst.Op {
	case insts.OpBEQ:
		m.Branch.Dispatch(tag, branchEQ, []Operand{m.readOperand(inst.Rs), m.readOperand(inst.Rt), fallThrough, taken})
	case insts.OpBNE:
		m.Branch.Dispatch(tag, branchNE, []Operand{m.readOperand(inst.Rs), m.readOperand(inst.Rt), fallThrough, taken})
	case insts.OpBC1F:
		m.Branch.Dispatch(tag, branchEQ, []Operand{m.readOperand(RegCC0), ReadyOperand(0), fallThrough, taken})
	case insts.OpBC1T:
		m.Branch.Dispatch(tag, branchNE, []Operand{m.readOperand(RegCC0), ReadyOperand(0), fallThrough, taken})
	case insts.OpJR, insts.OpJALR:
		m.Branch.Dispatch(tag, branchReg, []Operand{m.readOperand(inst.Rs), ReadyOperand(0), ReadyOperand(0), ReadyOperand(0)})
	}
}

// fpAddOperands gathers the FP-add/move unit's two operands. MTC1 reads an
// integer source (Rt); MFC1 and the arithmetic forms read FP sources.
func (m *Machine) fpAddOperands(inst insts.Instruction) []Operand {
	switch inst.Op {
	case insts.OpMTC1:
		return []Operand{m.readOperand(inst.Rt), ReadyOperand(0)}
	case insts.OpMFC1:
		return []Operand{m.readOperand(FPRegBase + inst.Rd), ReadyOperand(0)}
	default:
		return []Operand{m.readOperand(FPRegBase + inst.Rd), m.readOperand(FPRegBase + inst.Rt)}
	}
}

// fpOthersOperands gathers the divide/sqrt/convert unit's operands. Every
// form but divide is single-operand; sqrt and both conversions read their
// source from the fs field (Rd) in the FP bank, matching the COP1.S/COP1.W
// source-operand convention the decoder already applies uniformly.
func (m *Machine) fpOthersOperands(inst insts.Instruction) []Operand {
	if inst.Op == insts.OpFDIV {
		return []Operand{m.readOperand(FPRegBase + inst.Rd), m.readOperand(FPRegBase + inst.Rt)}
	}
	return []Operand{m.readOperand(FPRegBase + inst.Rd), ReadyOperand(0)}
}

// readStoreValue reads a store's data operand at dispatch time, per the
// rule that store values are captured once and never re-forwarded.
func (m *Machine) readStoreValue(inst insts.Instruction) Operand {
	if inst.Op == insts.OpSWC1 {
		return m.readOperand(FPRegBase + inst.Rt)
	}
	return m.readOperand(inst.Rt)
}

// dispatch attempts to admit one decoded instruction this cycle. It returns
// StallNone on success (the instruction has been allocated a ROB entry and
// routed to its functional unit) or the highest-priority structural hazard
// blocking it.
func (m *Machine) dispatch(inst insts.Instruction, pcWord uint32, pred Prediction) StallCause {
	if m.ROB.Full() {
		return StallROBFull
	}

	unit := latency.UnitFor(inst.Op)
	if inst.Valid {
		switch unit {
		case latency.UnitLSQ:
			if m.LSQ.Stage1Full() {
				return StallLSQFull
			}
		case latency.UnitBranch:
			if m.Branch.Full() {
				return StallBranchStationFull
			}
		case latency.UnitALU:
			if m.ALU.Full() {
				return StallALUStationFull
			}
		case latency.UnitFPAdd:
			if m.FPAdd.Full() {
				return StallFPAddStationFull
			}
		case latency.UnitFPMul:
			if m.FPMul.Full() {
				return StallFPMulStationFull
			}
		case latency.UnitFPCompare:
			if m.FPCompare.Full() {
				return StallFPCompareStationFull
			}
		case latency.UnitFPOthers:
			if m.FPOthers.Full() {
				return StallFPOthersStationFull
			}
		}
	}

	dest := unifiedDestReg(inst)
	var prevDest Operand
	if dest != RegZero {
		prevDest = m.readOperand(dest)
	}

	entry := ROBEntry{
		DecodeSuccess:   inst.Valid,
		IsStore:         inst.Valid && latency.IsStoreOp(inst.Op),
		BranchType:      inst.Branch,
		SetReg:          dest,
		PredictedBranch: pred.Target,
		PC:              pcWord,
		Rasp:            pred.RaspSnapshot,
		PrevDest:        prevDest,
	}
	if inst.Branch == insts.BranchJump || inst.Branch == insts.BranchJumpAndLink {
		entry.BranchTarget = ReadyOperand(inst.JumpTarget)
	}
	if inst.Branch == insts.BranchJumpAndLink {
		entry.Val = ReadyOperand(pcWord + 1)
	}

	tag := m.ROB.Allocate(entry)

	if !inst.Valid {
		m.RegFile.Rename(dest, tag)
		return StallNone
	}

	e := m.ROB.Entry(tag)
	switch inst.Branch {
	case insts.BranchRegister, insts.BranchConditional:
		e.BranchTarget = PendingOperand(tag)
		if inst.Op == insts.OpJALR {
			e.Val = ReadyOperand(pcWord + 1)
		}
	case insts.BranchJump, insts.BranchJumpAndLink:
		// Resolved in full above: the target and, for JAL, the link value.
	default:
		if entry.IsStore {
			e.Val = m.readStoreValue(inst)
		} else if dest != RegZero {
			e.Val = PendingOperand(tag)
		}
	}

	switch unit {
	case latency.UnitALU:
		m.ALU.Dispatch(tag, aluSubOp(inst.Op), m.aluOperands(inst))
	case latency.UnitBranch:
		m.dispatchBranch(tag, inst, pcWord)
	case latency.UnitFPAdd:
		m.FPAdd.Dispatch(tag, inst.FPSubOp, m.fpAddOperands(inst))
	case latency.UnitFPMul:
		m.FPMul.Dispatch(tag, 0, []Operand{m.readOperand(FPRegBase + inst.Rd), m.readOperand(FPRegBase + inst.Rt)})
	case latency.UnitFPCompare:
		m.FPCompare.Dispatch(tag, inst.FPSubOp, []Operand{m.readOperand(FPRegBase + inst.Rd), m.readOperand(FPRegBase + inst.Rt)})
	case latency.UnitFPOthers:
		m.FPOthers.Dispatch(tag, inst.FPSubOp, m.fpOthersOperands(inst))
	case latency.UnitLSQ:
		m.LSQ.Dispatch(tag, entry.IsStore, m.readOperand(inst.Rs), inst.SignedOffset)
	}

	// The destination is renamed only after every source above has been
	// read, so an instruction such as ADDIU $8,$8,-1 reads the previous
	// producer of $8 rather than its own tag.
	m.RegFile.Rename(dest, tag)
	return StallNone
}

package pipeline

import (
	"github.com/oomips/sim/fpu"
	"github.com/oomips/sim/insts"
)

// ALU subop identifiers, one per SPECIAL/immediate arithmetic form the ALU
// station services. Values are arbitrary so long as they are distinct; they
// never escape this package.
const (
	aluADD = iota
	aluSUB
	aluAND
	aluOR
	aluXOR
	aluNOR
	aluSLT
	aluSLTU
	aluSLL
	aluSRL
	aluSRA
)

func aluCompute(subOp int, operands []Operand) uint32 {
	a, b := operands[0].Value, operands[1].Value
	switch subOp {
	case aluADD:
		return a + b
	case aluSUB:
		return a - b
	case aluAND:
		return a & b
	case aluOR:
		return a | b
	case aluXOR:
		return a ^ b
	case aluNOR:
		return ^(a | b)
	case aluSLT:
		if int32(a) < int32(b) {
			return 1
		}
		return 0
	case aluSLTU:
		if a < b {
			return 1
		}
		return 0
	case aluSLL:
		return a << (b & 0x1F)
	case aluSRL:
		return a >> (b & 0x1F)
	case aluSRA:
		return uint32(int32(a) >> (b & 0x1F))
	default:
		return 0
	}
}

// Branch subop selects the comparison polarity per the bit-0-inverts rule:
// 0 matches BEQ (taken iff operands equal) and BC1F (taken iff cc0==0); 1
// matches BNE (taken iff operands differ) and BC1T (taken iff cc0==1).
const (
	branchEQ  = 0
	branchNE  = 1
	branchReg = 2
)

// branchCompute takes four operands: the two comparands, the not-taken
// (fall-through) target, and the taken target, and returns whichever target
// the comparison selects. branchReg (JR/JALR) ignores the comparison
// entirely and returns the register value carried in operand 0.
func branchCompute(subOp int, operands []Operand) uint32 {
	if subOp == branchReg {
		return operands[0].Value
	}
	eq := operands[0].Value == operands[1].Value
	taken := eq
	if subOp == branchNE {
		taken = !eq
	}
	if taken {
		return operands[3].Value
	}
	return operands[2].Value
}

func newFPAddCompute(k fpu.Kernels) Compute {
	return func(subOp int, operands []Operand) uint32 {
		switch subOp {
		case insts.FPAddAdd:
			return k.Add(operands[0].Value, operands[1].Value)
		case insts.FPAddSub:
			return k.Sub(operands[0].Value, operands[1].Value)
		case insts.FPAddMove:
			return operands[0].Value
		case insts.FPAddSignFlip:
			return operands[0].Value ^ 0x80000000
		default:
			return 0
		}
	}
}

func newFPMulCompute(k fpu.Kernels) Compute {
	return func(_ int, operands []Operand) uint32 {
		return k.Mul(operands[0].Value, operands[1].Value)
	}
}

func newFPCompareCompute(k fpu.Kernels) Compute {
	return func(subOp int, operands []Operand) uint32 {
		a, b := operands[0].Value, operands[1].Value
		var result bool
		switch subOp {
		case insts.FPCompareEQ:
			result = k.Eq(a, b)
		case insts.FPCompareLT:
			result = k.Lt(a, b)
		case insts.FPCompareLE:
			result = k.Le(a, b)
		}
		if result {
			return 1
		}
		return 0
	}
}

func newFPOthersCompute(k fpu.Kernels) Compute {
	return func(subOp int, operands []Operand) uint32 {
		a := operands[0].Value
		switch subOp {
		case insts.FPOtherDiv:
			return k.Div(a, operands[1].Value)
		case insts.FPOtherSqrt:
			return k.Sqrt(a)
		case insts.FPOtherItoF:
			return k.IToF(a)
		case insts.FPOtherFtoI:
			return k.FToI(a)
		default:
			return 0
		}
	}
}

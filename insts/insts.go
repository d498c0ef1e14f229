// Package insts provides MIPS-like instruction definitions and decoding for
// the out-of-order core. It supports exactly the instructions the encoding
// table calls for: the integer SPECIAL/immediate/branch/load/store forms
// and the full COP1 floating-point coprocessor (BC1x, MFC1/MTC1, COP1.S,
// COP1.W, LWC1/SWC1).
//
// Decode is a pure function from a 32-bit fetched word to an Instruction; it
// never touches machine state and never fails loudly — an unrecognized
// opcode/funct/fmt simply yields Instruction.Valid == false, and it is up to
// the caller (the pipeline's dispatch stage) to turn that into the
// decode_success bookkeeping and, eventually, a fatal commit-time error.
package insts

// Op is a decoded, unit-routing-ready operation. It is deliberately closer
// to "which reservation station and which internal sub-opcode" than to the
// raw MIPS mnemonic table: ADDIU and ADDU, for instance, both decode to
// OpADD, differing only in whether the second operand comes from a register
// or the sign-extended immediate.
type Op uint8

// Decoded operations.
const (
	OpUnknown Op = iota

	// ALU-routed.
	OpADD
	OpSUB
	OpAND
	OpOR
	OpXOR
	OpNOR
	OpSLT
	OpSLTU
	OpSLL
	OpSRL
	OpSRA

	// Resolved directly at dispatch, no reservation station involved.
	OpJ
	OpJAL

	// Branch-routed (includes the register-indirect jumps, which behave
	// like an always-taken branch with no comparison).
	OpJR
	OpJALR
	OpBEQ
	OpBNE
	OpBC1T
	OpBC1F

	// Memory.
	OpLW
	OpSW
	OpLWC1
	OpSWC1

	// FP-add-routed: the unit's four sub-opcodes (add/sub/move/sign-flip)
	// cover ADD.S, SUB.S, MOV.S, and the register-transfer instructions
	// MFC1/MTC1, which ride the move sub-opcode.
	OpFADD
	OpFSUB
	OpFMOV
	OpMFC1
	OpMTC1

	// FP-multiply-routed.
	OpFMUL

	// FP-compare-routed.
	OpFCEQ
	OpFCOLT
	OpFCOLE

	// FP-others-routed: divide, square-root, int<->float conversions.
	OpFDIV
	OpFSQRT
	OpCVTWS // float -> int (CVT.W.S)
	OpCVTSW // int -> float (CVT.S.W)
)

// BranchKind classifies a dispatched instruction's effect on control flow.
// It drives the ROB entry's branch_type bookkeeping and commit-time branch
// statistics.
type BranchKind uint8

// Branch kinds.
const (
	BranchNone        BranchKind = iota
	BranchJump                   // unconditional, target known at dispatch (J)
	BranchJumpAndLink            // unconditional, target known at dispatch, writes $31 (JAL)
	BranchRegister               // unconditional, target is a register value (JR/JALR)
	BranchConditional            // BEQ/BNE/BC1T/BC1F
)

// FP sub-opcodes for the FP-add unit (the four-way add/sub/move/neg unit).
const (
	FPAddAdd      = 0
	FPAddSub      = 1
	FPAddMove     = 2
	FPAddSignFlip = 3
)

// FP sub-opcodes for the FP-compare unit.
const (
	FPCompareEQ = 2
	FPCompareLT = 4
	FPCompareLE = 6
)

// FP sub-opcodes for the FP-others unit.
const (
	FPOtherDiv  = 0
	FPOtherSqrt = 1
	FPOtherItoF = 2
	FPOtherFtoI = 3
)

// Instruction is a fully decoded instruction, ready for dispatch.
type Instruction struct {
	Op     Op
	Branch BranchKind
	Valid  bool // false on decode failure (unknown opcode/funct/fmt)

	Rs, Rt, Rd uint8 // raw register-field contents (integer or FP bank, per Op)
	Sa         uint8 // shift amount field

	// FPSubOp selects the per-unit sub-operation for units that are not
	// fully determined by Op alone (FP-add, FP-compare, FP-others).
	FPSubOp int

	// SetReg is the architectural integer register the result commits to,
	// or 0 for none; register 0 is never a legal destination so 0 doubles
	// safely as the sentinel. SetFReg is the equivalent for the FP bank.
	SetReg  uint8
	SetFReg uint8
	HasFReg bool

	// Immediate holds the zero- or sign-extended 16-bit immediate for
	// ALU-immediate forms (ADDIU/SLTI/SLTIU/ANDI/ORI/XORI/LUI). HasImmediate
	// distinguishes these from the register-register ALU forms that decode
	// to the same Op (e.g. ADDIU and ADDU both yield OpADD): dispatch reads
	// Rt's register value as the second operand when HasImmediate is false,
	// and Immediate directly when it is true.
	HasImmediate bool
	Immediate    uint32

	// SignedOffset is the sign-extended 16-bit field used by loads,
	// stores, and conditional branches: a byte displacement for loads and
	// stores, a word count added to PC+1 for branches.
	SignedOffset int32

	// JumpTarget is the word-address target for J/JAL, already assembled
	// from the 26-bit field and the fetch PC's upper bits.
	JumpTarget uint32
}

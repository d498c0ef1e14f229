package insts

// Six-bit primary opcodes (bits 31..26).
const (
	opcodeSpecial = 000
	opcodeJ       = 002
	opcodeJAL     = 003
	opcodeBEQ     = 004
	opcodeBNE     = 005
	opcodeADDIU   = 011
	opcodeSLTI    = 012
	opcodeSLTIU   = 013
	opcodeANDI    = 014
	opcodeORI     = 015
	opcodeXORI    = 016
	opcodeLUI     = 017
	opcodeCOP1    = 021
	opcodeLW      = 043
	opcodeSW      = 053
	opcodeLWC1    = 061
	opcodeSWC1    = 071
)

// SPECIAL funct values (bits 5..0).
const (
	functSLL  = 000
	functSRL  = 002
	functSRA  = 003
	functSLLV = 004
	functSRLV = 006
	functSRAV = 007
	functJR   = 010
	functJALR = 011
	functADDU = 041
	functSUBU = 043
	functAND  = 044
	functOR   = 045
	functXOR  = 046
	functNOR  = 047
	functSLT  = 052
	functSLTU = 053
)

// COP1 fmt values (the rs field), selecting the coprocessor sub-form.
const (
	cop1FmtBC1  = 0x08
	cop1FmtMFC1 = 0x00
	cop1FmtMTC1 = 0x04
	cop1FmtS    = 0x10
	cop1FmtW    = 0x14
)

// COP1.S funct values.
const (
	cop1FunctAdd  = 0
	cop1FunctSub  = 1
	cop1FunctMul  = 2
	cop1FunctDiv  = 3
	cop1FunctSqrt = 4
	cop1FunctMov  = 6
	cop1FunctCvtW = 36
	cop1FunctCEq  = 50
	cop1FunctCOlt = 60
	cop1FunctCOle = 62
)

// COP1.W funct value.
const cop1FunctCvtS = 32

// Decoder decodes fetched words into Instructions. It carries no state: all
// fields it reads come from the word and the fetch PC passed to Decode.
type Decoder struct{}

// NewDecoder returns a ready-to-use Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes one fetched word. pc is the word address of the
// instruction being decoded, needed only to assemble the J/JAL jump target's
// upper bits. An unrecognized opcode/funct/fmt yields Valid == false; the raw
// register fields (Rs/Rt/Rd/Sa) are still filled in, and every other field is
// left at its zero value.
func (d *Decoder) Decode(word uint32, pc uint32) Instruction {
	opcode := (word >> 26) & 0x3F
	rs := (word >> 21) & 0x1F
	rt := (word >> 16) & 0x1F
	rd := (word >> 11) & 0x1F
	sa := (word >> 6) & 0x1F
	funct := word & 0x3F
	uimm16 := word & 0xFFFF
	simm16 := int32(int16(word))
	jumpTarget := (pc & (0x3F << 26)) | (word & ((1 << 26) - 1))

	inst := Instruction{Rs: uint8(rs), Rt: uint8(rt), Rd: uint8(rd), Sa: uint8(sa)}

	switch opcode {
	case opcodeSpecial:
		return decodeSpecial(inst, funct)
	case opcodeJ:
		inst.Op, inst.Valid = OpJ, true
		inst.Branch = BranchJump
		inst.JumpTarget = jumpTarget
		return inst
	case opcodeJAL:
		inst.Op, inst.Valid = OpJAL, true
		inst.Branch = BranchJumpAndLink
		inst.JumpTarget = jumpTarget
		inst.SetReg = 31
		return inst
	case opcodeBEQ:
		inst.Op, inst.Valid = OpBEQ, true
		inst.Branch = BranchConditional
		inst.SignedOffset = simm16
		return inst
	case opcodeBNE:
		inst.Op, inst.Valid = OpBNE, true
		inst.Branch = BranchConditional
		inst.SignedOffset = simm16
		return inst
	case opcodeADDIU:
		inst.Op, inst.Valid = OpADD, true
		inst.HasImmediate = true
		inst.Immediate = uint32(simm16)
		inst.SetReg = uint8(rt)
		return inst
	case opcodeSLTI:
		inst.Op, inst.Valid = OpSLT, true
		inst.HasImmediate = true
		inst.Immediate = uint32(simm16)
		inst.SetReg = uint8(rt)
		return inst
	case opcodeSLTIU:
		inst.Op, inst.Valid = OpSLTU, true
		inst.HasImmediate = true
		inst.Immediate = uint32(simm16)
		inst.SetReg = uint8(rt)
		return inst
	case opcodeANDI:
		inst.Op, inst.Valid = OpAND, true
		inst.HasImmediate = true
		inst.Immediate = uimm16
		inst.SetReg = uint8(rt)
		return inst
	case opcodeORI:
		inst.Op, inst.Valid = OpOR, true
		inst.HasImmediate = true
		inst.Immediate = uimm16
		inst.SetReg = uint8(rt)
		return inst
	case opcodeXORI:
		inst.Op, inst.Valid = OpXOR, true
		inst.HasImmediate = true
		inst.Immediate = uimm16
		inst.SetReg = uint8(rt)
		return inst
	case opcodeLUI:
		inst.Op, inst.Valid = OpOR, true
		inst.HasImmediate = true
		inst.Immediate = uimm16 << 16
		inst.SetReg = uint8(rt)
		return inst
	case opcodeCOP1:
		return decodeCOP1(inst, rs, funct, simm16)
	case opcodeLW:
		inst.Op, inst.Valid = OpLW, true
		inst.SignedOffset = simm16
		inst.SetReg = uint8(rt)
		return inst
	case opcodeSW:
		inst.Op, inst.Valid = OpSW, true
		inst.SignedOffset = simm16
		return inst
	case opcodeLWC1:
		inst.Op, inst.Valid = OpLWC1, true
		inst.SignedOffset = simm16
		inst.SetFReg, inst.HasFReg = uint8(rt), true
		return inst
	case opcodeSWC1:
		inst.Op, inst.Valid = OpSWC1, true
		inst.SignedOffset = simm16
		return inst
	}
	return inst
}

func decodeSpecial(inst Instruction, funct uint32) Instruction {
	switch funct {
	case functSLL:
		inst.Op, inst.Valid = OpSLL, true
		inst.SetReg = inst.Rd
		inst.HasImmediate = true
		inst.Immediate = uint32(inst.Sa)
	case functSRL:
		inst.Op, inst.Valid = OpSRL, true
		inst.SetReg = inst.Rd
		inst.HasImmediate = true
		inst.Immediate = uint32(inst.Sa)
	case functSRA:
		inst.Op, inst.Valid = OpSRA, true
		inst.SetReg = inst.Rd
		inst.HasImmediate = true
		inst.Immediate = uint32(inst.Sa)
	case functSLLV:
		inst.Op, inst.Valid = OpSLL, true
		inst.SetReg = inst.Rd
	case functSRLV:
		inst.Op, inst.Valid = OpSRL, true
		inst.SetReg = inst.Rd
	case functSRAV:
		inst.Op, inst.Valid = OpSRA, true
		inst.SetReg = inst.Rd
	case functJR:
		inst.Op, inst.Valid = OpJR, true
		inst.Branch = BranchRegister
	case functJALR:
		inst.Op, inst.Valid = OpJALR, true
		inst.Branch = BranchRegister
		inst.SetReg = inst.Rd
	case functADDU:
		inst.Op, inst.Valid = OpADD, true
		inst.SetReg = inst.Rd
	case functSUBU:
		inst.Op, inst.Valid = OpSUB, true
		inst.SetReg = inst.Rd
	case functAND:
		inst.Op, inst.Valid = OpAND, true
		inst.SetReg = inst.Rd
	case functOR:
		inst.Op, inst.Valid = OpOR, true
		inst.SetReg = inst.Rd
	case functXOR:
		inst.Op, inst.Valid = OpXOR, true
		inst.SetReg = inst.Rd
	case functNOR:
		inst.Op, inst.Valid = OpNOR, true
		inst.SetReg = inst.Rd
	case functSLT:
		inst.Op, inst.Valid = OpSLT, true
		inst.SetReg = inst.Rd
	case functSLTU:
		inst.Op, inst.Valid = OpSLTU, true
		inst.SetReg = inst.Rd
	}
	return inst
}

func decodeCOP1(inst Instruction, fmt, funct uint32, simm16 int32) Instruction {
	switch fmt {
	case cop1FmtBC1:
		switch inst.Rt {
		case 0:
			inst.Op, inst.Valid = OpBC1F, true
		case 1:
			inst.Op, inst.Valid = OpBC1T, true
		default:
			return inst
		}
		inst.Branch = BranchConditional
		inst.SignedOffset = simm16
	case cop1FmtMFC1:
		inst.Op, inst.Valid = OpMFC1, true
		inst.FPSubOp = FPAddMove
		inst.SetReg = inst.Rt
	case cop1FmtMTC1:
		inst.Op, inst.Valid = OpMTC1, true
		inst.FPSubOp = FPAddMove
		inst.SetFReg, inst.HasFReg = inst.Rd, true // fs lives in the rd field
	case cop1FmtS:
		return decodeCOP1S(inst, funct)
	case cop1FmtW:
		if funct == cop1FunctCvtS {
			inst.Op, inst.Valid = OpCVTSW, true
			inst.FPSubOp = FPOtherItoF
			inst.SetFReg, inst.HasFReg = inst.Sa, true // fd
		}
	}
	return inst
}

func decodeCOP1S(inst Instruction, funct uint32) Instruction {
	switch funct {
	case cop1FunctAdd:
		inst.Op, inst.Valid = OpFADD, true
		inst.FPSubOp = FPAddAdd
		inst.SetFReg, inst.HasFReg = inst.Sa, true
	case cop1FunctSub:
		inst.Op, inst.Valid = OpFSUB, true
		inst.FPSubOp = FPAddSub
		inst.SetFReg, inst.HasFReg = inst.Sa, true
	case cop1FunctMul:
		inst.Op, inst.Valid = OpFMUL, true
		inst.SetFReg, inst.HasFReg = inst.Sa, true
	case cop1FunctDiv:
		inst.Op, inst.Valid = OpFDIV, true
		inst.FPSubOp = FPOtherDiv
		inst.SetFReg, inst.HasFReg = inst.Sa, true
	case cop1FunctSqrt:
		inst.Op, inst.Valid = OpFSQRT, true
		inst.FPSubOp = FPOtherSqrt
		inst.SetFReg, inst.HasFReg = inst.Sa, true
	case cop1FunctMov:
		inst.Op, inst.Valid = OpFMOV, true
		inst.FPSubOp = FPAddMove
		inst.SetFReg, inst.HasFReg = inst.Sa, true
	case cop1FunctCvtW:
		inst.Op, inst.Valid = OpCVTWS, true
		inst.FPSubOp = FPOtherFtoI
		inst.SetFReg, inst.HasFReg = inst.Sa, true
	case cop1FunctCEq:
		inst.Op, inst.Valid = OpFCEQ, true
		inst.FPSubOp = FPCompareEQ
	case cop1FunctCOlt:
		inst.Op, inst.Valid = OpFCOLT, true
		inst.FPSubOp = FPCompareLT
	case cop1FunctCOle:
		inst.Op, inst.Valid = OpFCOLE, true
		inst.FPSubOp = FPCompareLE
	}
	return inst
}

// Package benchmarks provides end-to-end timing scenarios for the
// out-of-order core, built directly from hand-assembled instruction words
// rather than from an external toolchain.
package benchmarks

// Opcodes and functs mirror insts/decoder.go's encoding exactly; they are
// redeclared here (not imported) because assembling a test program is a
// concern of this package, not of the decoder it is exercising.
const (
	opSpecial = 000
	opJ       = 002
	opJAL     = 003
	opBEQ     = 004
	opBNE     = 005
	opADDIU   = 011
	opANDI    = 014
	opORI     = 015
	opLW      = 043
	opSW      = 053
)

const (
	fnADDU = 041
	fnSUBU = 043
	fnJR   = 010
	fnJALR = 011
)

func rType(op, rs, rt, rd, sa, funct uint32) uint32 {
	return (op&0x3F)<<26 | (rs&0x1F)<<21 | (rt&0x1F)<<16 | (rd&0x1F)<<11 | (sa&0x1F)<<6 | (funct & 0x3F)
}

func iType(op, rs, rt uint32, imm int32) uint32 {
	return (op&0x3F)<<26 | (rs&0x1F)<<21 | (rt&0x1F)<<16 | uint32(imm)&0xFFFF
}

// ADDU rd = rs + rt.
func ADDU(rd, rs, rt uint32) uint32 { return rType(opSpecial, rs, rt, rd, 0, fnADDU) }

// SUBU rd = rs - rt.
func SUBU(rd, rs, rt uint32) uint32 { return rType(opSpecial, rs, rt, rd, 0, fnSUBU) }

// JR jumps to the word address held in rs.
func JR(rs uint32) uint32 { return rType(opSpecial, rs, 0, 0, 0, fnJR) }

// JALR jumps to the word address held in rs, linking rd.
func JALR(rd, rs uint32) uint32 { return rType(opSpecial, rs, 0, rd, 0, fnJALR) }

// ADDIU rt = rs + simm16.
func ADDIU(rt, rs uint32, imm int32) uint32 { return iType(opADDIU, rs, rt, imm) }

// ANDI rt = rs & uimm16.
func ANDI(rt, rs uint32, imm uint32) uint32 { return iType(opANDI, rs, rt, int32(imm)) }

// ORI rt = rs | uimm16.
func ORI(rt, rs uint32, imm uint32) uint32 { return iType(opORI, rs, rt, int32(imm)) }

// BEQ branches offsetWords (relative to the delay-free next word) if rs==rt.
func BEQ(rs, rt uint32, offsetWords int32) uint32 { return iType(opBEQ, rs, rt, offsetWords) }

// BNE branches offsetWords if rs!=rt.
func BNE(rs, rt uint32, offsetWords int32) uint32 { return iType(opBNE, rs, rt, offsetWords) }

// J jumps unconditionally to the word address wordTarget.
func J(wordTarget uint32) uint32 { return (opJ&0x3F)<<26 | (wordTarget & ((1 << 26) - 1)) }

// JAL jumps unconditionally to wordTarget, linking $ra (register 31).
func JAL(wordTarget uint32) uint32 { return (opJAL&0x3F)<<26 | (wordTarget & ((1 << 26) - 1)) }

// LW rt = mem32[rs + simm16] (byte address).
func LW(rt, rs uint32, byteOffset int32) uint32 { return iType(opLW, rs, rt, byteOffset) }

// SW mem32[rs + simm16] = rt (byte address).
func SW(rt, rs uint32, byteOffset int32) uint32 { return iType(opSW, rs, rt, byteOffset) }

// Assemble turns a sequence of instruction words into the big-endian word
// stream loader.Load expects, without a trailing sentinel (Load stops at
// EOF as well as at the sentinel word).
func Assemble(words ...uint32) []byte {
	out := make([]byte, 0, len(words)*4)
	for _, w := range words {
		out = append(out, byte(w>>24), byte(w>>16), byte(w>>8), byte(w))
	}
	return out
}

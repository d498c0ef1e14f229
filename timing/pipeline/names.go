package pipeline

import "fmt"

var integerRegNames = [32]string{
	"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

// RegName returns the commit-log/disassembly name for a unified register
// slot: the standard MIPS integer names for 0-31, f0-f31 for the FP bank at
// FPRegBase, cc0 for the FP condition code, and a numeric fallback for any
// slot beyond those (reserved, currently unused).
func RegName(r uint8) string {
	switch {
	case r < FPRegBase:
		return integerRegNames[r]
	case r < RegCC0:
		return fmt.Sprintf("f%d", r-FPRegBase)
	case r == RegCC0:
		return "cc0"
	default:
		return fmt.Sprintf("reg%d", r)
	}
}

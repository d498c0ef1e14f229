package pipeline

import "fmt"

// FatalError reports a condition the machine cannot recover from in-band:
// an undecodable instruction reaching commit, or a store address that lands
// outside both flat memory and the UART window. The machine halts on a
// FatalError rather than trying to continue in an undefined state.
type FatalError struct {
	PC     uint32
	Reason string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal error at pc=0x%08x: %s", e.PC*4, e.Reason)
}

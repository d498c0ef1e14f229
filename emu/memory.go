// Package emu provides the flat instruction/data memory and the
// memory-mapped serial port that the out-of-order core issues loads and
// stores against. There is no cache or memory hierarchy here (non-goal):
// every access to the low 2^20 words is single-cycle, and the four
// addresses at 0xFFFF0000-0xFFFF000C are intercepted as UART registers.
package emu

import "fmt"

// WordCount is the number of 32-bit words in the flat instruction/data
// memory (2^20 words, per spec).
const WordCount = 1 << 20

// FetchWordLimit restricts the fetch stage to the low 2^15 word addresses.
const FetchWordLimit = 1 << 15

// Sentinel is the fill value for memory the program loader never wrote.
const Sentinel = 0x55555555

// UART memory-mapped addresses (byte addresses).
const (
	AddrRecvStatus uint32 = 0xFFFF0000
	AddrRecvData   uint32 = 0xFFFF0004
	AddrSendStatus uint32 = 0xFFFF0008
	AddrSendData   uint32 = 0xFFFF000C
)

// Memory is the simulator's flat word-addressed memory.
type Memory struct {
	words  [WordCount]uint32
	Serial *Serial
}

// NewMemory returns a Memory with every word initialized to Sentinel and a
// freshly reset serial port attached.
func NewMemory() *Memory {
	m := &Memory{Serial: NewSerial()}
	for i := range m.words {
		m.words[i] = Sentinel
	}
	return m
}

// LoadWord writes a word directly into memory at a word index, used only
// by the program loader (not gated by the MMIO/alignment checks that
// ReadWord/WriteWord apply to simulated loads and stores).
func (m *Memory) LoadWord(index uint32, value uint32) {
	m.words[index] = value
}

// ReadWord performs a simulated load from a byte address. Misaligned or
// out-of-range addresses (outside both the flat array and the UART range)
// are a soft error per spec: the sentinel value is returned and ok=false so
// the caller can log it when the commit trace is enabled. MMIO reads are
// dispatched to the serial port.
func (m *Memory) ReadWord(addr uint32) (value uint32, ok bool) {
	if addr&3 != 0 {
		return Sentinel, false
	}
	if addr>>2 < WordCount {
		return m.words[addr>>2], true
	}
	switch addr {
	case AddrRecvStatus:
		return m.Serial.RecvStatus(), true
	case AddrRecvData:
		return m.Serial.RecvData(), true
	case AddrSendStatus:
		return m.Serial.SendStatus(), true
	}
	return Sentinel, false
}

// WriteWord performs a simulated store to a byte address. Misalignment or
// an out-of-range, non-MMIO address is a fatal simulator error per spec.
func (m *Memory) WriteWord(addr uint32, value uint32) error {
	if addr&3 != 0 {
		return fmt.Errorf("invalid store address alignment: 0x%08x", addr)
	}
	if addr>>2 < WordCount {
		m.words[addr>>2] = value
		return nil
	}
	if addr == AddrSendData {
		m.Serial.SendData(byte(value))
		return nil
	}
	return fmt.Errorf("store address out-of-bounds: 0x%08x", addr)
}

// IsMMIO reports whether addr falls in the serial port's memory-mapped
// window: the top 16 bits read exactly 0xFFFF. The load/store queue keys
// its hold on memory-mapped loads (issued only at the ROB head) off this
// bit-exact test.
func IsMMIO(addr uint32) bool {
	return addr&0xFFFF0000 == 0xFFFF0000
}

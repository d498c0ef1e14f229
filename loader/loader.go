// Package loader reads a program image from a flat big-endian word stream
// into the simulator's instruction/data memory, the same format the
// reference interpreter reads from standard input.
package loader

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/oomips/sim/emu"
)

// Sentinel terminates the word stream; it is not itself stored into memory.
const Sentinel uint32 = 0xFFFFFFFF

// TrailingZeroWords is the number of zero words appended after the program
// image, giving a just-past-the-end landing zone for runaway control flow
// before it walks into unrelated sentinel-filled memory.
const TrailingZeroWords = 32

// Load reads 32-bit big-endian words from r until it reads the sentinel
// word (which is not stored) or reaches EOF, writing each word in turn into
// mem starting at word index 0, then appends TrailingZeroWords zero words.
// It returns the number of words loaded, not counting the trailing zeros.
func Load(r io.Reader, mem *emu.Memory) (int, error) {
	var index uint32
	for {
		var word uint32
		if err := binary.Read(r, binary.BigEndian, &word); err != nil {
			if err == io.EOF {
				break
			}
			return int(index), fmt.Errorf("loader: reading program image: %w", err)
		}
		if word == Sentinel {
			break
		}
		if index >= emu.WordCount {
			return int(index), fmt.Errorf("loader: program image exceeds memory size")
		}
		mem.LoadWord(index, word)
		index++
	}
	loaded := index
	for i := uint32(0); i < TrailingZeroWords && index < emu.WordCount; i++ {
		mem.LoadWord(index, 0)
		index++
	}
	return int(loaded), nil
}

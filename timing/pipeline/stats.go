package pipeline

// StallCause identifies why dispatch could not admit the instruction
// waiting in the decode latch this cycle. At most one cause is attributed
// per cycle, in priority order: ROB full, LSQ full, branch-station full,
// ALU full, FP-add full, FP-multiply full, FP-compare full, FP-others full,
// decode latch empty (no instruction was waiting to dispatch at all). If
// dispatch proceeds, the cause is StallNone.
type StallCause uint8

const (
	StallNone StallCause = iota
	StallROBFull
	StallLSQFull
	StallBranchStationFull
	StallALUStationFull
	StallFPAddStationFull
	StallFPMulStationFull
	StallFPCompareStationFull
	StallFPOthersStationFull
	StallDecodeLatchEmpty
	numStallCauses
)

// NumStallCauses is the number of distinct StallCause values, including
// StallNone; callers outside this package size their own Stalls arrays
// against it rather than hardcoding a count.
const NumStallCauses = int(numStallCauses)

// String names a StallCause for reporting.
func (c StallCause) String() string {
	switch c {
	case StallROBFull:
		return "rob_full"
	case StallLSQFull:
		return "lsq_full"
	case StallBranchStationFull:
		return "branch_station_full"
	case StallALUStationFull:
		return "alu_station_full"
	case StallFPAddStationFull:
		return "fp_add_station_full"
	case StallFPMulStationFull:
		return "fp_mul_station_full"
	case StallFPCompareStationFull:
		return "fp_compare_station_full"
	case StallFPOthersStationFull:
		return "fp_others_station_full"
	case StallDecodeLatchEmpty:
		return "decode_latch_empty"
	default:
		return "none"
	}
}

// Stats accumulates the machine's running counters across Tick calls.
type Stats struct {
	Cycles         uint64
	Instructions   uint64
	Mispredictions uint64
	Flushes        uint64
	DecodeFailures uint64
	Stalls         [numStallCauses]uint64
}

// RecordStall increments the counter for the given cause; StallNone is a
// no-op so callers can record unconditionally.
func (s *Stats) RecordStall(cause StallCause) {
	if cause == StallNone {
		return
	}
	s.Stalls[cause]++
}

// IPC returns committed instructions per cycle, or 0 before any cycle has
// elapsed.
func (s *Stats) IPC() float64 {
	if s.Cycles == 0 {
		return 0
	}
	return float64(s.Instructions) / float64(s.Cycles)
}

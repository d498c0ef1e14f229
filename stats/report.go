// Package stats formats a machine's cycle-accounting statistics for
// reporting. It is a pure presentation layer over pipeline.Stats: it reads
// counters and writes text, and never touches the timing model itself.
package stats

import (
	"fmt"
	"io"

	"github.com/oomips/sim/timing/pipeline"
)

// Report derives the percentages and rates a raw pipeline.Stats snapshot
// doesn't carry directly.
type Report struct {
	Cycles         uint64
	Instructions   uint64
	Mispredictions uint64
	Flushes        uint64
	DecodeFailures uint64
	Stalls         [pipeline.NumStallCauses]uint64

	BranchPredictions uint64
	BranchAccuracy    float64
}

// NewReport derives a Report from a machine's accumulated statistics and
// its branch predictor's running accuracy.
func NewReport(s pipeline.Stats, predictorStats pipeline.PredictorStats) Report {
	return Report{
		Cycles:            s.Cycles,
		Instructions:      s.Instructions,
		Mispredictions:    s.Mispredictions,
		Flushes:           s.Flushes,
		DecodeFailures:    s.DecodeFailures,
		Stalls:            s.Stalls,
		BranchPredictions: predictorStats.Predictions,
		BranchAccuracy:    predictorStats.Accuracy(),
	}
}

// CPI returns cycles per committed instruction, or 0 before any instruction
// has retired.
func (r Report) CPI() float64 {
	if r.Instructions == 0 {
		return 0
	}
	return float64(r.Cycles) / float64(r.Instructions)
}

// IPC returns committed instructions per cycle, the inverse of CPI.
func (r Report) IPC() float64 {
	if r.Cycles == 0 {
		return 0
	}
	return float64(r.Instructions) / float64(r.Cycles)
}

// MispredictionRate returns the fraction of predictions that missed.
func (r Report) MispredictionRate() float64 {
	if r.BranchPredictions == 0 {
		return 0
	}
	return float64(r.Mispredictions) / float64(r.BranchPredictions)
}

func (r Report) stallPercent(cause pipeline.StallCause) float64 {
	if r.Cycles == 0 {
		return 0
	}
	return 100.0 * float64(r.Stalls[cause]) / float64(r.Cycles)
}

// WriteTo writes a human-readable breakdown of the report to w, matching
// the teacher's cycle-accounting report block: totals, CPI/IPC, branch
// prediction accuracy, and a per-cause stall percentage breakdown.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w, ""+
		"Total Instructions: %d\n"+
		"Total Cycles:       %d\n"+
		"CPI:                %.2f\n"+
		"IPC:                %.3f\n"+
		"\n"+
		"Branch prediction:\n"+
		"  Predictions:    %d\n"+
		"  Mispredictions: %d (%5.1f%%)\n"+
		"  Flushes:        %d\n"+
		"\n"+
		"Stall breakdown:\n"+
		"  ROB full:          %4d cycles (%5.1f%%)\n"+
		"  LSQ full:          %4d cycles (%5.1f%%)\n"+
		"  Branch-unit full:  %4d cycles (%5.1f%%)\n"+
		"  ALU full:          %4d cycles (%5.1f%%)\n"+
		"  FP-add full:       %4d cycles (%5.1f%%)\n"+
		"  FP-multiply full:  %4d cycles (%5.1f%%)\n"+
		"  FP-compare full:   %4d cycles (%5.1f%%)\n"+
		"  FP-others full:    %4d cycles (%5.1f%%)\n"+
		"  Decode latch empty:%4d cycles (%5.1f%%)\n"+
		"\n"+
		"Decode failures: %d\n",
		r.Instructions, r.Cycles, r.CPI(), r.IPC(),
		r.BranchPredictions, r.Mispredictions, r.MispredictionRate()*100,
		r.Flushes,
		r.Stalls[pipeline.StallROBFull], r.stallPercent(pipeline.StallROBFull),
		r.Stalls[pipeline.StallLSQFull], r.stallPercent(pipeline.StallLSQFull),
		r.Stalls[pipeline.StallBranchStationFull], r.stallPercent(pipeline.StallBranchStationFull),
		r.Stalls[pipeline.StallALUStationFull], r.stallPercent(pipeline.StallALUStationFull),
		r.Stalls[pipeline.StallFPAddStationFull], r.stallPercent(pipeline.StallFPAddStationFull),
		r.Stalls[pipeline.StallFPMulStationFull], r.stallPercent(pipeline.StallFPMulStationFull),
		r.Stalls[pipeline.StallFPCompareStationFull], r.stallPercent(pipeline.StallFPCompareStationFull),
		r.Stalls[pipeline.StallFPOthersStationFull], r.stallPercent(pipeline.StallFPOthersStationFull),
		r.Stalls[pipeline.StallDecodeLatchEmpty], r.stallPercent(pipeline.StallDecodeLatchEmpty),
		r.DecodeFailures,
	)
	return int64(n), err
}

package pipeline

import "github.com/oomips/sim/insts"

// Prediction is the fetch stage's guess at the next instruction word
// address to fetch from, plus the return-address-stack pointer as it stood
// immediately before this instruction's own push/pop.
type Prediction struct {
	Taken        bool
	Target       uint32
	RaspSnapshot uint8
}

// PredictorStats tracks prediction outcomes; Accuracy/MispredictionRate
// derive from the running counts rather than being stored directly.
type PredictorStats struct {
	Predictions    uint64
	Correct        uint64
	Mispredictions uint64
}

// Accuracy returns the fraction of predictions that were correct, or 0 with
// no predictions made yet.
func (s PredictorStats) Accuracy() float64 {
	if s.Predictions == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Predictions)
}

// MispredictionRate returns the fraction of predictions that missed.
func (s PredictorStats) MispredictionRate() float64 {
	if s.Predictions == 0 {
		return 0
	}
	return float64(s.Mispredictions) / float64(s.Predictions)
}

// Predictor guesses the next fetch address for a branch/jump instruction
// and later learns whether that guess was correct.
type Predictor struct {
	ras   *ReturnAddressStack
	stats PredictorStats
}

// NewPredictor returns a Predictor backed by a return-address stack of the
// given entry count.
func NewPredictor(rasSize int) *Predictor {
	return &Predictor{ras: NewReturnAddressStack(rasSize)}
}

// RAS returns the predictor's return-address stack, exposed so misprediction
// recovery can rewind its pointer.
func (p *Predictor) RAS() *ReturnAddressStack { return p.ras }

// Stats returns the predictor's running statistics.
func (p *Predictor) Stats() PredictorStats { return p.stats }

// Reset clears the predictor's stack and statistics.
func (p *Predictor) Reset() {
	p.ras.Reset()
	p.stats = PredictorStats{}
}

// Predict guesses the next fetch word address for a decoded instruction at
// word address pcWord, applying the fixed static rule: unconditional jumps
// are always taken; conditional branches are predicted taken iff their
// offset is negative (backward-taken/forward-not-taken); register jumps
// through $ra are predicted via a return-address-stack pop, any other
// register jump defaults to falling through. JAL and any JALR that links
// $ra push the stack; JR/JALR reading $ra pop it.
func (p *Predictor) Predict(pcWord uint32, inst insts.Instruction) Prediction {
	snapshot := p.ras.Pointer()
	fallThrough := pcWord + 1

	switch inst.Branch {
	case insts.BranchJump:
		return Prediction{Taken: true, Target: inst.JumpTarget, RaspSnapshot: snapshot}

	case insts.BranchJumpAndLink:
		p.ras.Push(fallThrough)
		return Prediction{Taken: true, Target: inst.JumpTarget, RaspSnapshot: snapshot}

	case insts.BranchRegister:
		isReturn := inst.Rs == 31
		linksRA := inst.SetReg == 31
		var target uint32
		taken := false
		if isReturn {
			target = p.ras.Pop()
			taken = true
		} else {
			target = fallThrough
		}
		if linksRA {
			p.ras.Push(fallThrough)
		}
		return Prediction{Taken: taken, Target: target, RaspSnapshot: snapshot}

	case insts.BranchConditional:
		if inst.SignedOffset < 0 {
			return Prediction{Taken: true, Target: uint32(int32(pcWord+1) + inst.SignedOffset), RaspSnapshot: snapshot}
		}
		return Prediction{Taken: false, Target: fallThrough, RaspSnapshot: snapshot}

	default:
		return Prediction{Taken: false, Target: fallThrough, RaspSnapshot: snapshot}
	}
}

// Update records whether a resolved branch's actual target matched the
// prediction made at fetch time.
func (p *Predictor) Update(correct bool) {
	p.stats.Predictions++
	if correct {
		p.stats.Correct++
	} else {
		p.stats.Mispredictions++
	}
}

package pipeline_test

import "github.com/oomips/sim/insts"

func insJump(target uint32) insts.Instruction {
	return insts.Instruction{Valid: true, Branch: insts.BranchJump, JumpTarget: target}
}

func insCall(target uint32) insts.Instruction {
	return insts.Instruction{Valid: true, Branch: insts.BranchJumpAndLink, JumpTarget: target, SetReg: 31}
}

func insBranch(offsetWords int32) insts.Instruction {
	return insts.Instruction{Valid: true, Branch: insts.BranchConditional, SignedOffset: offsetWords}
}

func insReturn() insts.Instruction {
	return insts.Instruction{Valid: true, Branch: insts.BranchRegister, Rs: 31}
}

func insRegJump() insts.Instruction {
	return insts.Instruction{Valid: true, Branch: insts.BranchRegister, Rs: 8}
}

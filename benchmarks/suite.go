package benchmarks

// Suite returns the built-in set of microbenchmark scenarios: the same
// programs exercised by this package's own tests, exported so a CLI can
// run them outside `go test`.
func Suite() []Scenario {
	return []Scenario{
		{
			Name:        "empty",
			Description: "no instructions, immediate sentinel halt",
			Program:     Assemble(),
			CycleBudget: 1000,
		},
		{
			Name:        "arithmetic",
			Description: "straight-line ALU dependency chain",
			Program: Assemble(
				ADDIU(1, 0, 10),
				ADDIU(2, 0, 20),
				ADDU(3, 1, 2),
				SUBU(4, 3, 1),
				ADDU(5, 4, 2),
			),
			CycleBudget: 1000,
		},
		{
			Name:        "predicted-taken-loop",
			Description: "backward BNE countdown, predicted taken",
			Program: Assemble(
				ADDIU(1, 0, 5),
				ADDIU(1, 1, -1),
				BNE(1, 0, -2),
			),
			CycleBudget: 2000,
		},
		{
			Name:        "ras-hit",
			Description: "one call/return pair predicted via the RAS",
			Program: Assemble(
				JAL(4),
				ADDIU(1, 0, 99),
				J(6),
				ADDIU(0, 0, 0),
				ADDIU(2, 0, 7),
				JR(31),
			),
			CycleBudget: 2000,
		},
		{
			Name:        "ras-miss",
			Description: "JR through an un-pushed register mispredicts",
			Program: Assemble(
				ADDIU(1, 0, 4),
				JR(1),
				ADDIU(2, 0, 1),
				ADDIU(2, 0, 2),
				ADDIU(3, 0, 42),
			),
			CycleBudget: 2000,
		},
		{
			Name:        "store-load-no-forward",
			Description: "load immediately follows a store to the same address",
			Program: Assemble(
				ADDIU(1, 0, 0x100),
				ADDIU(2, 0, 123),
				SW(2, 1, 0),
				LW(3, 1, 0),
			),
			CycleBudget: 2000,
		},
	}
}

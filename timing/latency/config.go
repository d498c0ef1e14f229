package latency

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the latency, in cycles, of each functional unit plus the
// machine's structural geometry (ROB size, reservation-station depth,
// load/store-queue depth). Defaults match the instantiation the hardware
// target specifies; overriding geometry is intended for tests exercising
// stall/backpressure behavior at smaller scale.
type Config struct {
	// ALULatency is the ALU reservation station's pipeline depth (L=1).
	ALULatency uint64 `json:"alu_latency"`

	// BranchLatency is the branch unit's pipeline depth (L=1).
	BranchLatency uint64 `json:"branch_latency"`

	// FPAddLatency covers add/sub/move/sign-flip, including mfc1/mtc1 (L=2).
	FPAddLatency uint64 `json:"fp_add_latency"`

	// FPMulLatency is the FP-multiply unit's pipeline depth (L=2).
	FPMulLatency uint64 `json:"fp_mul_latency"`

	// FPCompareLatency is the FP-compare unit's pipeline depth (L=1).
	FPCompareLatency uint64 `json:"fp_compare_latency"`

	// FPOthersLatency covers divide/sqrt/int-float conversions (L=7).
	FPOthersLatency uint64 `json:"fp_others_latency"`

	// LoadLatency is the number of cycles from a load's stage-2 issue to
	// its result appearing on the LSQ's CDB slot.
	LoadLatency uint64 `json:"load_latency"`

	// ROBSize is the number of reorder-buffer entries.
	ROBSize int `json:"rob_size"`

	// ALUEntries/BranchEntries/FPAddEntries/FPMulEntries/FPCompareEntries/
	// FPOthersEntries are each unit's reservation-station queue depth (E).
	ALUEntries       int `json:"alu_entries"`
	BranchEntries    int `json:"branch_entries"`
	FPAddEntries     int `json:"fp_add_entries"`
	FPMulEntries     int `json:"fp_mul_entries"`
	FPCompareEntries int `json:"fp_compare_entries"`
	FPOthersEntries  int `json:"fp_others_entries"`

	// LSQStage1Depth/LSQStage2Depth are the load/store queue's two stage
	// depths.
	LSQStage1Depth int `json:"lsq_stage1_depth"`
	LSQStage2Depth int `json:"lsq_stage2_depth"`

	// ReturnAddressStackSize is the return-address-stack entry count.
	ReturnAddressStackSize int `json:"ras_size"`
}

// DefaultConfig returns the Config matching the hardware target's fixed
// instantiation: ALU(1,2,2), branch(1,2,4), FP-add(2,2,2), FP-multiply(2,2,2),
// FP-compare(1,2,2), FP-others(7,2,2), a 32-entry ROB, a 2+2-stage load/store
// queue, and a 32-entry return-address stack.
func DefaultConfig() *Config {
	return &Config{
		ALULatency:       1,
		BranchLatency:    1,
		FPAddLatency:     2,
		FPMulLatency:     2,
		FPCompareLatency: 1,
		FPOthersLatency:  7,
		LoadLatency:      3,

		ROBSize:          32,
		ALUEntries:       2,
		BranchEntries:    2,
		FPAddEntries:     2,
		FPMulEntries:     2,
		FPCompareEntries: 2,
		FPOthersEntries:  2,

		LSQStage1Depth: 2,
		LSQStage2Depth: 2,

		ReturnAddressStackSize: 32,
	}
}

// LoadConfig reads a Config from a JSON file, starting from DefaultConfig so
// an incomplete file only overrides the fields it mentions.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timing config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse timing config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize timing config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timing config file: %w", err)
	}

	return nil
}

// Validate checks that every latency and geometry field is usable.
func (c *Config) Validate() error {
	latencies := map[string]uint64{
		"alu_latency":         c.ALULatency,
		"branch_latency":      c.BranchLatency,
		"fp_add_latency":      c.FPAddLatency,
		"fp_mul_latency":      c.FPMulLatency,
		"fp_compare_latency":  c.FPCompareLatency,
		"fp_others_latency":   c.FPOthersLatency,
		"load_latency":        c.LoadLatency,
	}
	for name, v := range latencies {
		if v == 0 {
			return fmt.Errorf("%s must be > 0", name)
		}
	}
	geometry := map[string]int{
		"rob_size":           c.ROBSize,
		"alu_entries":        c.ALUEntries,
		"branch_entries":     c.BranchEntries,
		"fp_add_entries":     c.FPAddEntries,
		"fp_mul_entries":     c.FPMulEntries,
		"fp_compare_entries": c.FPCompareEntries,
		"fp_others_entries":  c.FPOthersEntries,
		"lsq_stage1_depth":   c.LSQStage1Depth,
		"lsq_stage2_depth":   c.LSQStage2Depth,
		"ras_size":           c.ReturnAddressStackSize,
	}
	for name, v := range geometry {
		if v <= 0 {
			return fmt.Errorf("%s must be > 0", name)
		}
	}
	return nil
}

// Clone returns a deep copy of the Config (all fields are scalar, so a
// shallow struct copy already suffices; the explicit form documents intent
// and survives the addition of any future slice/map field).
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

package metadata

import (
	"testing"
)

func TestNewStage(t *testing.T) {
	tests := []struct {
		input    string
		expected Stage
	}{
		{"SMT", StageSMT},
		{"smt", StageSMT},
		{"贴片", StageSMT},
		{"Assembly", StageAssembly},
		{"  asm ", StageAssembly}, // Should trim spaces and normalize.
		{"组装", StageAssembly},
		{"组立", StageAssembly},
		{"Packing", StagePacking},
		{"包装", StagePacking},
		{"", StageSMT},        // Absent label defaults to the first stage.
		{"unknown", StageSMT}, // Unknown label defaults to the first stage.
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if stage := NewStage(tt.input); stage != tt.expected {
				t.Errorf("Expected %s for %q, got %s", tt.expected, tt.input, stage)
			}
		})
	}
}

func TestStageIsValid(t *testing.T) {
	tests := []struct {
		stage        Stage
		expectedBool bool
	}{
		{StageSMT, true},
		{StageAssembly, true},
		{StagePacking, true},
		{Stage("smt"), false}, // Canonical form is case-sensitive.
		{Stage("unknown"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.stage), func(t *testing.T) {
			if isValid := tt.stage.IsValid(); isValid != tt.expectedBool {
				t.Errorf("Expected %v for %s, got %v", tt.expectedBool, tt.stage, isValid)
			}
		})
	}
}

package metadata

import "strings"

// Stage is one of the three fixed production phases a tracking row belongs to.
type Stage string

const (
	StageSMT      Stage = "SMT"
	StageAssembly Stage = "Assembly"
	StagePacking  Stage = "Packing"
)

// stageLabels maps the labels found in imported spreadsheets, including the
// localized ones, to canonical stages.
var stageLabels = map[string]Stage{
	"smt":      StageSMT,
	"贴片":       StageSMT,
	"assembly": StageAssembly,
	"asm":      StageAssembly,
	"组装":       StageAssembly,
	"组立":       StageAssembly,
	"packing":  StagePacking,
	"pack":     StagePacking,
	"包装":       StagePacking,
}

// NewStage normalizes an imported stage label. Unknown and empty labels fall
// back to SMT, the first canonical stage.
func NewStage(value string) Stage {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if stage, ok := stageLabels[normalized]; ok {
		return stage
	}
	return StageSMT
}

func (s Stage) IsValid() bool {
	switch s {
	case StageSMT, StageAssembly, StagePacking:
		return true
	default:
		return false
	}
}

func (s Stage) String() string {
	return string(s)
}

package assessment

// MaturityLevel is the coarse classification derived from the overall score.
type MaturityLevel string

const (
	MaturityUnstable  MaturityLevel = "unstable"
	MaturityEmerging  MaturityLevel = "emerging"
	MaturityDefined   MaturityLevel = "defined"
	MaturityOptimized MaturityLevel = "optimized"
)

func (m MaturityLevel) Valid() bool {
	switch m {
	case MaturityUnstable, MaturityEmerging, MaturityDefined, MaturityOptimized:
		return true
	}
	return false
}

// Order returns the position of the level, lowest maturity first.
// Unknown levels sort before unstable.
func (m MaturityLevel) Order() int {
	switch m {
	case MaturityUnstable:
		return 1
	case MaturityEmerging:
		return 2
	case MaturityDefined:
		return 3
	case MaturityOptimized:
		return 4
	default:
		return 0
	}
}

// Priority ranks a recommendation.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank returns the sort key (lower = more urgent).
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Interpretation describes where a team sits on the speed/sustainability compass.
type Interpretation string

const (
	InterpretationBalanced            Interpretation = "balanced"
	InterpretationSpeedHeavy          Interpretation = "speed-heavy"
	InterpretationSustainabilityHeavy Interpretation = "sustainability-heavy"
)

func (i Interpretation) Valid() bool {
	switch i {
	case InterpretationBalanced, InterpretationSpeedHeavy, InterpretationSustainabilityHeavy:
		return true
	}
	return false
}

// Criticality is an optional business-criticality tag on the assessed team.
type Criticality string

const (
	CriticalityLow      Criticality = "low"
	CriticalityMedium   Criticality = "medium"
	CriticalityHigh     Criticality = "high"
	CriticalityCritical Criticality = "critical"
)

// Valid reports whether c is a known tag. The empty tag is valid (unset).
func (c Criticality) Valid() bool {
	switch c {
	case "", CriticalityLow, CriticalityMedium, CriticalityHigh, CriticalityCritical:
		return true
	}
	return false
}

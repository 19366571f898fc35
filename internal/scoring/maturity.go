package scoring

import "github.com/dshills/techhealth/internal/assessment"

// Classify maps an overall score to a maturity level.
func Classify(overall float64) assessment.MaturityLevel {
	switch {
	case overall < 2.0:
		return assessment.MaturityUnstable
	case overall < 3.0:
		return assessment.MaturityEmerging
	case overall < 3.5:
		return assessment.MaturityDefined
	default:
		return assessment.MaturityOptimized
	}
}

// MaturityInfo is the display text for a maturity level.
type MaturityInfo struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

var maturityInfo = map[assessment.MaturityLevel]MaturityInfo{
	assessment.MaturityUnstable: {
		Label:       "Unstable, reactive",
		Description: "Your team is in reactive mode with significant technical challenges.",
		Action:      "Create recovery plan; add to Tech Big Rocks.",
	},
	assessment.MaturityEmerging: {
		Label:       "Emerging discipline",
		Description: "Your team has started building good practices but they're not yet consistent.",
		Action:      "Prioritize automation & documentation.",
	},
	assessment.MaturityDefined: {
		Label:       "Stable baseline",
		Description: "Your team has established solid processes and metrics for critical flows.",
		Action:      "Sustain & optimize critical paths.",
	},
	assessment.MaturityOptimized: {
		Label:       "Optimized, data-driven",
		Description: "Your team operates with excellent automation, measurement, and continuous improvement.",
		Action:      "Share practices; help mentor others.",
	},
}

// DescribeMaturity returns the label, narrative and recommended action for a level.
// Unknown levels get the unstable text.
func DescribeMaturity(level assessment.MaturityLevel) MaturityInfo {
	if info, ok := maturityInfo[level]; ok {
		return info
	}
	return maturityInfo[assessment.MaturityUnstable]
}

// ScoreBand classifies any 0..4 score, such as an area average, into the same
// bands as the overall maturity. Renderers use it to colour individual scores.
func ScoreBand(score float64) assessment.MaturityLevel {
	return Classify(score)
}

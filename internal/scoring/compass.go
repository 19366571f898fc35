package scoring

import (
	"math"

	"github.com/dshills/techhealth/internal/assessment"
)

// Areas feeding each compass axis.
var (
	speedAreas          = []string{"delivery-dora", "testing-automation"}
	sustainabilityAreas = []string{"observability-stability", "tech-debt", "governance-knowledge"}
)

// balancedSpread is the largest axis difference still read as balanced.
const balancedSpread = 10

// ComputeCompass places the team on the speed/sustainability compass using the
// area averages from ScoreAreas. A missing area counts as 0 and still occupies
// its slot in the mean.
func ComputeCompass(areaScores []assessment.AreaScore) assessment.Compass {
	avg := make(map[string]float64, len(areaScores))
	for _, a := range areaScores {
		avg[a.AreaID] = a.AverageScore
	}

	speed := axisScore(avg, speedAreas)
	sustainability := axisScore(avg, sustainabilityAreas)

	var interp assessment.Interpretation
	switch {
	case absInt(speed-sustainability) <= balancedSpread:
		interp = assessment.InterpretationBalanced
	case speed > sustainability:
		interp = assessment.InterpretationSpeedHeavy
	default:
		interp = assessment.InterpretationSustainabilityHeavy
	}

	return assessment.Compass{
		Speed:          speed,
		Sustainability: sustainability,
		Interpretation: interp,
	}
}

// axisScore converts the mean of the given areas' 0..4 averages to 0..100.
func axisScore(avg map[string]float64, ids []string) int {
	var sum float64
	for _, id := range ids {
		sum += avg[id]
	}
	mean := sum / float64(len(ids))
	return int(math.Round(mean / 4 * 100))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// CompassInfo is the display text for a compass interpretation.
type CompassInfo struct {
	Label       string `json:"label"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

var compassInfo = map[assessment.Interpretation]CompassInfo{
	assessment.InterpretationSpeedHeavy: {
		Label:       "Speed-Heavy",
		Emoji:       "⚡",
		Description: "Fast but potentially fragile. You can deliver quickly, but may have reliability challenges.",
		Action:      "Increase stability allocation to 40%; focus on alerting, monitoring, and CI reliability to prevent burnout.",
	},
	assessment.InterpretationSustainabilityHeavy: {
		Label:       "Sustainability-Heavy",
		Emoji:       "🛡️",
		Description: "Over-invested in maintenance. Systems are stable but innovation may be slowing down.",
		Action:      "Shift 10% capacity back to feature delivery. Your foundation is strong - time to build on it.",
	},
	assessment.InterpretationBalanced: {
		Label:       "Balanced",
		Emoji:       "🎯",
		Description: "Healthy balance between execution speed and system resilience.",
		Action:      "Maintain current practices and share your learnings with other teams.",
	},
}

// DescribeCompass returns the narrative and rebalancing action for an interpretation.
func DescribeCompass(i assessment.Interpretation) CompassInfo {
	if info, ok := compassInfo[i]; ok {
		return info
	}
	return compassInfo[assessment.InterpretationBalanced]
}

package conductor

import "math"

// TotalSlots is four ground roles plus two overlays.
const TotalSlots = 6

type VoicingLevel string

const (
	LevelRootOnly VoicingLevel = "root-only"
	LevelRoot     VoicingLevel = "root"
	LevelTriad    VoicingLevel = "triad"
	LevelSeventh  VoicingLevel = "seventh"
)

type Voicing struct {
	Level             VoicingLevel `json:"level"`
	Label             string       `json:"label"`
	Percentage        int          `json:"percentage"`
	IsMasterConductor bool         `json:"is_master_conductor"`
}

// Score classifies a bed by its filled ground roles and rates completeness over all six
// slots. Overlays raise the percentage but never the level.
func Score(groundFilled, overlaysFilled int) Voicing {
	g := clamp(groundFilled, 0, 4)
	o := clamp(overlaysFilled, 0, 2)

	pct := int(math.Round(float64(g+o) / TotalSlots * 100))
	v := Voicing{Percentage: pct, IsMasterConductor: pct == 100}

	switch g {
	case 0:
		v.Level, v.Label = LevelRootOnly, "Root Only"
	case 1:
		v.Level, v.Label = LevelRoot, "Root Voicing"
	case 2:
		v.Level, v.Label = LevelTriad, "Triad"
	case 3:
		v.Level, v.Label = LevelSeventh, "Seventh Chord"
	default:
		v.Level, v.Label = LevelSeventh, "Complete Seventh"
	}
	return v
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

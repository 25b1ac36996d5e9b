package services

// ScoreBand is the display bucket the dashboard colors a score with.
type ScoreBand string

const (
	BandGood   ScoreBand = "good"
	BandMedium ScoreBand = "medium"
	BandPoor   ScoreBand = "poor"
	BandNone   ScoreBand = "not_available"
)

// BandForScore maps a (possibly absent) score onto its display band.
// Pure function; it drives color and label only.
func BandForScore(score *int) ScoreBand {
	if score == nil {
		return BandNone
	}

	switch {
	case *score >= 70:
		return BandGood
	case *score >= 40:
		return BandMedium
	default:
		return BandPoor
	}
}

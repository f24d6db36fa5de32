package leaderboard

// grade bands a score into a letter grade. Consolidation always recomputes
// it from score rather than trusting whatever grade string a run file
// already carries, so historical artifacts from an older banding policy
// still rank correctly.
func grade(score float64) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	case score >= 40:
		return "D"
	default:
		return "F"
	}
}

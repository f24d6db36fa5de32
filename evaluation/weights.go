package evaluation

// Weights bundles every tunable coefficient Evaluate uses. Default values
// are picked to keep the goal bonus magnitude comparable to the base
// material score for a mid-game state; callers tune them per experiment.
type Weights struct {
	// EconomyMultiplier scales a harvester's contribution to material score.
	EconomyMultiplier float64
	// MilitaryMultiplier scales an attacker's contribution to material score.
	MilitaryMultiplier float64

	// W1..W9 are the per-goal bonus coefficients, one pair (or more) per
	// StrategicGoal, in the order the goals are declared above.
	W1 float64 // expand-economy: workers
	W2 float64 // expand-economy: resources
	W3 float64 // build-army: military
	W4 float64 // build-army: barracks
	W5 float64 // attack-base: damage ratio
	W6 float64 // attack-workers: missing enemy workers
	W7 float64 // defend: own base hp ratio
	W8 float64 // defend: military
	W9 float64 // control-resources: unique resources within range

	// BaseDestroyedBonus is the large, flat bonus attack-base adds once the
	// enemy's stockpile unit is actually destroyed, on top of the
	// damage-ratio term.
	BaseDestroyedBonus float64

	// TargetBaseWeight, TargetWorkersWeight, TargetArmyWeight scale the
	// target-priority refinement, which sits orthogonal to the goal bonus.
	TargetBaseWeight float64
	TargetWorkersWeight float64
	TargetArmyWeight float64
}

// DefaultWeights returns a reasonable starting coefficient set.
func DefaultWeights() Weights {
	return Weights{
		EconomyMultiplier: 1.0,
		MilitaryMultiplier: 1.5,
		W1: 15,
		W2: 0.5,
		W3: 20,
		W4: 40,
		W5: 100,
		W6: 10,
		W7: 50,
		W8: 15,
		W9: 8,
		BaseDestroyedBonus: 200,
		TargetBaseWeight: 60,
		TargetWorkersWeight: 20,
		TargetArmyWeight: 20,
	}
}

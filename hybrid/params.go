package hybrid

import "github.com/llmrts/arena/evaluation"

// Params bundles the four tactical scalars an LLM transition names alongside
// the next state. All four fields are clamped to their declared
// ranges on ingest, never trusted verbatim from a parsed response.
type Params struct {
	Aggression float64
	EconomyPriority float64
	RetreatThreshold float64
	PrimaryTarget evaluation.Target
}

// DefaultParams returns a conservative starting point before any LLM
// transition has been accepted.
func DefaultParams() Params {
	return Params{Aggression: 0.3, EconomyPriority: 0.6, RetreatThreshold: 0.5, PrimaryTarget: evaluation.TargetNone}
}

// clamp confines each scalar field to [0, 1]; PrimaryTarget passes through
// unchanged (it is validated separately, against the known enum).
func (p Params) clamp() Params {
	p.Aggression = clampUnit(p.Aggression)
	p.EconomyPriority = clampUnit(p.EconomyPriority)
	p.RetreatThreshold = clampUnit(p.RetreatThreshold)
	return p
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

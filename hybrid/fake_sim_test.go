package hybrid_test

import "github.com/llmrts/arena/simgame"

// fakeSim is a hand-built Simulator for hybrid package tests that need
// precise control over unit positions and legal actions, beyond what
// simgame.Reference's fixed starting layout offers.
type fakeSim struct {
	state *simgame.GameState
	legal map[int][]simgame.Action
}

func (f *fakeSim) State() *simgame.GameState { return f.state }

func (f *fakeSim) LegalActions(unitID int) []simgame.Action { return f.legal[unitID] }

func (f *fakeSim) AdvanceTick(p0, p1 simgame.PlayerAction) {}

func (f *fakeSim) Outcome() simgame.Outcome { return simgame.Outcome{Result: simgame.ResultOngoing} }

func (f *fakeSim) Clone() simgame.Simulator {
	cloned := *f.state
	cloned.Units = append([]simgame.Unit(nil), f.state.Units...)
	legal := make(map[int][]simgame.Action, len(f.legal))
	for k, v := range f.legal {
		legal[k] = append([]simgame.Action(nil), v...)
	}
	return &fakeSim{state: &cloned, legal: legal}
}

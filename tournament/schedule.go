package tournament

// playPair runs games_per_pair repeats of one agent/opponent matchup and
// decides whether the agent advances to the next opponent in its ladder.
// games_per_pair=1 advances on a plain win; otherwise advances on a
// majority of wins across the repeats. The returned MatchupRecord's
// Outcome/Score reflect the first game played, matching the
// one-record-per-matchup model; its Advances field carries the majority
// vote across every game played, which callers must use for the
// elimination decision instead of Outcome.Result.
func playPair(plan Plan, agentIdx, opponentIdx int, play func(Matchup) GameOutcome) MatchupRecord {
	games := plan.GamesPerPair
	if games < 1 {
		games = 1
	}

	agent := plan.Agents[agentIdx]
	opponent := plan.OpponentsInLine[opponentIdx]

	wins := 0
	var record MatchupRecord
	for g := 0; g < games; g++ {
		m := Matchup{
			Index: agentIdx*len(plan.OpponentsInLine) + opponentIdx,
			Agent: agent,
			Opponent: opponent,
			Map: plan.Map,
			TickCap: plan.TickCap,
			PerGameBudget: plan.PerGameBudget,
			GameIndex: g,
		}
		outcome := play(m)
		if outcome.Result == ResultWin {
			wins++
		}
		if g == 0 {
			record = MatchupRecord{
				Matchup: m,
				Outcome: outcome,
				Score: score(outcome, opponent, plan.TickCap),
			}
		}
	}

	record.Advances = wins*2 > games // strict majority
	return record
}

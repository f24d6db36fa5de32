package mcts

import "math"

// selectChild picks an already-expanded child of the node at nodeIdx using
// the two-branch rule (ε₀ expansion is handled by the caller before
// selectChild is reached): with probability EpsilonLocal pick the child
// with the highest mean evaluation ("local-unit value"); otherwise pick the
// child maximizing a UCB1-style score that additionally rewards
// under-visited children ("global value"). Ties are broken by visit count
// then by prior.
func selectChild(arena *Arena, nodeIdx int, cfg Config, roll float64) int {
	node := arena.Node(nodeIdx)
	if roll < cfg.EpsilonLocal {
		return bestChildBy(arena, node, func(child *TreeNode) float64 {
			return child.MeanEvaluation()
		})
	}
	parentVisits := float64(node.VisitCount)
	return bestChildBy(arena, node, func(child *TreeNode) float64 {
		if child.VisitCount == 0 {
			return math.Inf(1)
		}
		exploitation := child.MeanEvaluation()
		exploration := cfg.ExplorationConstant * math.Sqrt(math.Log(math.Max(parentVisits, 1))/float64(child.VisitCount))
		return exploitation + exploration
	})
}

// bestChildBy returns the index (into Arena) of node's child maximizing
// score, breaking ties by visit count then by the edge's action prior.
func bestChildBy(arena *Arena, node *TreeNode, score func(*TreeNode) float64) int {
	bestIdx := -1
	var bestScore, bestVisits, bestPrior float64
	for _, edge := range node.Children {
		child := arena.Node(edge.ChildIndex)
		s := score(child)
		visits := float64(child.VisitCount)
		better := bestIdx == -1 ||
			s > bestScore ||
			(s == bestScore && visits > bestVisits) ||
			(s == bestScore && visits == bestVisits && edge.ActionPrior > bestPrior)
		if better {
			bestIdx = edge.ChildIndex
			bestScore = s
			bestVisits = visits
			bestPrior = edge.ActionPrior
		}
	}
	return bestIdx
}

// selectFinalAction returns the root child with the highest visit count,
// breaking ties by mean evaluation's action-selection rule.
func selectFinalAction(arena *Arena) (childEdge, bool) {
	root := arena.Node(arena.Root())
	if len(root.Children) == 0 {
		return childEdge{}, false
	}
	bestIdx := 0
	bestVisits := arena.Node(root.Children[0].ChildIndex).VisitCount
	bestMean := arena.Node(root.Children[0].ChildIndex).MeanEvaluation()
	for i := 1; i < len(root.Children); i++ {
		child := arena.Node(root.Children[i].ChildIndex)
		if child.VisitCount > bestVisits ||
			(child.VisitCount == bestVisits && child.MeanEvaluation() > bestMean) {
			bestIdx = i
			bestVisits = child.VisitCount
			bestMean = child.MeanEvaluation()
		}
	}
	return root.Children[bestIdx], true
}

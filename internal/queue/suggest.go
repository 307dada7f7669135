package queue

import (
	"math"
	"sort"
)

// Skill brackets derived from numeric level.
const (
	bracketBeginner = iota
	bracketIntermediate
	bracketAdvanced
)

const (
	beginnerMax     = 2.5
	intermediateMax = 4.5

	// maxTeamGap is the largest acceptable difference between team average
	// levels for a group whose players span brackets.
	maxTeamGap = 0.5

	// levelEpsilon absorbs float rounding when comparing against maxTeamGap.
	levelEpsilon = 1e-9
)

func bracketFor(level float64) int {
	switch {
	case level <= beginnerMax:
		return bracketBeginner
	case level <= intermediateMax:
		return bracketIntermediate
	default:
		return bracketAdvanced
	}
}

// teamPairings are the three ways to split four players (by position) into
// two doubles teams.
var teamPairings = [3][2][2]int{
	{{0, 1}, {2, 3}},
	{{0, 2}, {1, 3}},
	{{0, 3}, {1, 2}},
}

// isBalanced reports whether four entries can form a fair doubles game:
// either all four share one bracket, or the best of the three two-versus-two
// pairings keeps the team average gap within maxTeamGap.
func isBalanced(group []QueueEntry) bool {
	if len(group) != 4 {
		return false
	}

	b := bracketFor(group[0].Level)
	sameBracket := true
	for _, e := range group[1:] {
		if bracketFor(e.Level) != b {
			sameBracket = false
			break
		}
	}
	if sameBracket {
		return true
	}

	best := math.MaxFloat64
	for _, p := range teamPairings {
		avgA := (group[p[0][0]].Level + group[p[0][1]].Level) / 2
		avgB := (group[p[1][0]].Level + group[p[1][1]].Level) / 2
		if gap := math.Abs(avgA - avgB); gap < best {
			best = gap
		}
	}
	return best <= maxTeamGap+levelEpsilon
}

// orderByFairness sorts entries by fewest games played, then earliest join
// time. The sort is stable so equal keys keep arrival order.
func orderByFairness(entries []QueueEntry) []QueueEntry {
	ordered := make([]QueueEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].GamesPlayed != ordered[j].GamesPlayed {
			return ordered[i].GamesPlayed < ordered[j].GamesPlayed
		}
		return ordered[i].JoinedAt.Before(ordered[j].JoinedAt)
	})
	return ordered
}

// SuggestFour picks four waiting entries for a balanced doubles game, or nil
// when no balanced four exists. It prefers the first balanced consecutive
// window of the fairness-ordered list, then falls back to scanning all
// four-element combinations in ascending index order, stopping at the first
// hit. The exhaustive scan is O(N^4); queues are small enough that this is
// an accepted cost. The first two of the returned group are Team A, the last
// two Team B.
func SuggestFour(waiting []QueueEntry) []QueueEntry {
	if len(waiting) < 4 {
		return nil
	}
	ordered := orderByFairness(waiting)

	for i := 0; i+4 <= len(ordered); i++ {
		window := ordered[i : i+4]
		if isBalanced(window) {
			group := make([]QueueEntry, 4)
			copy(group, window)
			return group
		}
	}

	var found []QueueEntry
	forEachCombination(len(ordered), func(idx [4]int) bool {
		group := []QueueEntry{ordered[idx[0]], ordered[idx[1]], ordered[idx[2]], ordered[idx[3]]}
		if isBalanced(group) {
			found = group
			return false
		}
		return true
	})
	return found
}

// forEachCombination visits every 4-element index combination i<j<k<l in
// ascending order, stopping early when fn returns false.
func forEachCombination(n int, fn func([4]int) bool) {
	for i := 0; i < n-3; i++ {
		for j := i + 1; j < n-2; j++ {
			for k := j + 1; k < n-1; k++ {
				for l := k + 1; l < n; l++ {
					if !fn([4]int{i, j, k, l}) {
						return
					}
				}
			}
		}
	}
}

package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryAt(id uint, level float64, gamesPlayed int, joined time.Time) QueueEntry {
	e := QueueEntry{
		Level:       level,
		Status:      EntryWaiting,
		GamesPlayed: gamesPlayed,
		JoinedAt:    joined,
	}
	e.ID = id
	return e
}

// entriesWithLevels builds waiting entries joined one minute apart, all with
// zero games played, so fairness order equals slice order.
func entriesWithLevels(levels ...float64) []QueueEntry {
	base := time.Date(2026, 9, 5, 18, 0, 0, 0, time.UTC)
	out := make([]QueueEntry, len(levels))
	for i, lvl := range levels {
		out[i] = entryAt(uint(i+1), lvl, 0, base.Add(time.Duration(i)*time.Minute))
	}
	return out
}

func levelsOf(group []QueueEntry) []float64 {
	out := make([]float64, len(group))
	for i, e := range group {
		out[i] = e.Level
	}
	return out
}

func TestBracketFor(t *testing.T) {
	assert.Equal(t, bracketBeginner, bracketFor(1.0))
	assert.Equal(t, bracketBeginner, bracketFor(2.5))
	assert.Equal(t, bracketIntermediate, bracketFor(2.6))
	assert.Equal(t, bracketIntermediate, bracketFor(4.5))
	assert.Equal(t, bracketAdvanced, bracketFor(4.6))
	assert.Equal(t, bracketAdvanced, bracketFor(7.0))
}

func TestIsBalanced(t *testing.T) {
	tests := []struct {
		name   string
		levels []float64
		want   bool
	}{
		{"same bracket beginners", []float64{1.0, 1.5, 2.0, 2.5}, true},
		{"same bracket advanced", []float64{5.0, 6.0, 6.5, 7.0}, true},
		{"cross bracket close averages", []float64{3.0, 3.4, 3.6, 4.0}, true},
		{"cross bracket wide gap", []float64{2.0, 2.2, 2.3, 6.5}, false},
		{"gap exactly at limit", []float64{2.0, 2.0, 2.5, 2.6}, true},
		{"beginner paired with advanced", []float64{1.0, 6.5, 1.1, 6.4}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isBalanced(entriesWithLevels(tt.levels...)))
		})
	}

	assert.False(t, isBalanced(entriesWithLevels(1.0, 1.0, 1.0)))
}

func TestOrderByFairness(t *testing.T) {
	base := time.Date(2026, 9, 5, 18, 0, 0, 0, time.UTC)
	entries := []QueueEntry{
		entryAt(1, 3.0, 2, base),
		entryAt(2, 3.0, 0, base.Add(10*time.Minute)),
		entryAt(3, 3.0, 0, base.Add(5*time.Minute)),
		entryAt(4, 3.0, 1, base),
	}

	ordered := orderByFairness(entries)
	var ids []uint
	for _, e := range ordered {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []uint{3, 2, 4, 1}, ids)

	// Input slice is untouched.
	assert.Equal(t, uint(1), entries[0].ID)
}

func TestSuggestFourNeedsFour(t *testing.T) {
	assert.Nil(t, SuggestFour(entriesWithLevels(3.0, 3.0, 3.0)))
	assert.Nil(t, SuggestFour(nil))
}

func TestSuggestFourFrontWindow(t *testing.T) {
	waiting := entriesWithLevels(3.0, 3.4, 3.6, 4.0, 1.0)

	group := SuggestFour(waiting)
	require.Len(t, group, 4)
	assert.Equal(t, []float64{3.0, 3.4, 3.6, 4.0}, levelsOf(group))
}

func TestSuggestFourSkipsUnbalancedWindow(t *testing.T) {
	// First window {2.0, 2.2, 2.3, 6.5} is unbalanced; sliding one ahead
	// gives {2.2, 2.3, 6.5, 6.4}, balanced via the 2v2 split.
	waiting := entriesWithLevels(2.0, 2.2, 2.3, 6.5, 6.4)

	group := SuggestFour(waiting)
	require.Len(t, group, 4)
	assert.Equal(t, []float64{2.2, 2.3, 6.5, 6.4}, levelsOf(group))
}

func TestSuggestFourCombinationFallback(t *testing.T) {
	// No consecutive window of four is balanced, but skipping the outlier
	// at position 1 leaves four beginners.
	waiting := entriesWithLevels(1.0, 6.5, 1.1, 1.2, 1.3)

	group := SuggestFour(waiting)
	require.Len(t, group, 4)
	assert.Equal(t, []float64{1.0, 1.1, 1.2, 1.3}, levelsOf(group))
}

func TestSuggestFourNoBalancedGroup(t *testing.T) {
	assert.Nil(t, SuggestFour(entriesWithLevels(1.0, 3.5, 5.8, 7.0)))
}

func TestSuggestFourPrefersFewerGames(t *testing.T) {
	base := time.Date(2026, 9, 5, 18, 0, 0, 0, time.UTC)
	waiting := []QueueEntry{
		entryAt(1, 3.0, 3, base),
		entryAt(2, 3.0, 0, base.Add(1*time.Minute)),
		entryAt(3, 3.0, 0, base.Add(2*time.Minute)),
		entryAt(4, 3.0, 0, base.Add(3*time.Minute)),
		entryAt(5, 3.0, 0, base.Add(4*time.Minute)),
	}

	group := SuggestFour(waiting)
	require.Len(t, group, 4)
	for _, e := range group {
		assert.NotEqual(t, uint(1), e.ID, "entry with most games should sit out")
	}
}

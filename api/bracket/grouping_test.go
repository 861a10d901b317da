/* grouping_test.go
 * Contains unit tests for grouping.go
 */

package bracket

import (
	"testing"

	"bracket-viewer/api/external"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbers(matchups []external.Matchup) []int {
	out := make([]int, 0, len(matchups))
	for _, m := range matchups {
		out = append(out, m.Number)
	}
	return out
}

// region Group tests

func TestGroup_ByBracketAndRound(t *testing.T) {
	matchups := []external.Matchup{
		{ID: "a", Number: 3},
		{ID: "b", Number: 33},
		{ID: "c", Number: 1},
		{ID: "d", Number: 49},
		{ID: "e", Number: 126},
	}

	groups := Group(matchups)

	require.Len(t, groups, 4)
	require.Contains(t, groups, "winners-1")
	assert.Equal(t, "Round of 64", groups["winners-1"].DisplayName)
	assert.Equal(t, []int{3, 1}, numbers(groups["winners-1"].Matchups), "input order is preserved")
	assert.Equal(t, []int{33}, numbers(groups["losers-1"].Matchups))
	assert.Equal(t, []int{49}, numbers(groups["winners-2"].Matchups))
	assert.Equal(t, "Final", groups["final-1"].DisplayName)
}

func TestGroup_SkipsUnnumbered(t *testing.T) {
	matchups := []external.Matchup{
		{ID: "40", Number: 0},
		{ID: "b", Number: 2},
	}

	groups := Group(matchups)

	require.Len(t, groups, 1)
	assert.Equal(t, []int{2}, numbers(groups["winners-1"].Matchups))
	_, ok := groups["losers-1"]
	assert.False(t, ok, "an unnumbered matchup must not be classified by its id")

	unplaced := Unplaced(matchups)
	require.Len(t, unplaced, 1)
	assert.Equal(t, external.ID("40"), unplaced[0].ID)
}

func TestGroup_FallbackNameReplacedByLayoutName(t *testing.T) {
	groups := Group([]external.Matchup{
		{ID: "x", Number: 500},
		{ID: "y", Number: 7},
	})

	require.Len(t, groups, 1)
	assert.Equal(t, "Round of 64", groups["winners-1"].DisplayName)
	assert.Len(t, groups["winners-1"].Matchups, 2)
}

func TestGroup_OnlyFallback(t *testing.T) {
	groups := Group([]external.Matchup{{ID: "x", Number: 500}})

	assert.Equal(t, "Unknown Round", groups["winners-1"].DisplayName)
}

func TestGroup_Empty(t *testing.T) {
	groups := Group(nil)

	assert.Empty(t, groups)
	assert.Empty(t, groups.Rounds(Winners))
}

// endregion

// region Ordering tests

func TestSortedMatchups(t *testing.T) {
	g := &RoundGroup{Matchups: []external.Matchup{
		{ID: "a", Number: 12},
		{ID: "b", Number: 3},
		{ID: "c", Number: 7},
	}}

	sorted := SortedMatchups(g)

	assert.Equal(t, []int{3, 7, 12}, numbers(sorted))
	assert.Equal(t, []int{12, 3, 7}, numbers(g.Matchups), "group order is untouched")
	assert.Nil(t, SortedMatchups(nil))
}

func TestRounds_SortedByRound(t *testing.T) {
	groups := Group([]external.Matchup{
		{ID: "a", Number: 125},
		{ID: "b", Number: 33},
		{ID: "c", Number: 81},
		{ID: "d", Number: 1},
	})

	rounds := groups.Rounds(Losers)

	require.Len(t, rounds, 3)
	assert.Equal(t, 1, rounds[0].Round)
	assert.Equal(t, 3, rounds[1].Round)
	assert.Equal(t, 10, rounds[2].Round)
}

// endregion

// region Navigation tests

func TestBrackets_FinalOnlyWhenPresent(t *testing.T) {
	groups := Group([]external.Matchup{{ID: "a", Number: 1}})
	assert.Equal(t, []Bracket{Winners, Losers}, groups.Brackets())

	groups = Group([]external.Matchup{{ID: "a", Number: 1}, {ID: "b", Number: 127}})
	assert.Equal(t, []Bracket{Winners, Losers, Final}, groups.Brackets())
}

func TestResolve_ExactRound(t *testing.T) {
	groups := Group([]external.Matchup{{ID: "a", Number: 1}, {ID: "b", Number: 49}})

	g, ok := groups.Resolve(Winners, 2)

	require.True(t, ok)
	assert.Equal(t, "winners-2", g.Key())
}

func TestResolve_FallsBackToFirstRound(t *testing.T) {
	groups := Group([]external.Matchup{{ID: "a", Number: 65}, {ID: "b", Number: 81}})

	g, ok := groups.Resolve(Losers, 1)

	require.True(t, ok)
	assert.Equal(t, "losers-2", g.Key())
}

func TestResolve_EmptyBracket(t *testing.T) {
	groups := Group([]external.Matchup{{ID: "a", Number: 1}})

	g, ok := groups.Resolve(Final, 1)

	assert.False(t, ok)
	assert.Nil(t, g)
}

// endregion

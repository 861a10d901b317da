/* grouping.go
 * Contains the logic for grouping matchups by bracket and round, and for navigating between rounds
 */

package bracket

import (
	"sort"

	"bracket-viewer/api/external"
)

// RoundGroup is every matchup that shares a bracket and round. Matchups keep their input order
type RoundGroup struct {
	Bracket     Bracket            `json:"bracket"`
	Round       int                `json:"round"`
	DisplayName string             `json:"displayName"`
	Matchups    []external.Matchup `json:"matchups"`

	named bool // DisplayName came from the layout rather than a fallback
}

// Key returns the round key for the group
func (g *RoundGroup) Key() string {
	return RoundKey(g.Bracket, g.Round)
}

// Groups maps a round key to its group
type Groups map[string]*RoundGroup

// Group classifies every numbered matchup and groups them by round key.
// Preconditions: Receives matchups in backend order
// Postconditions: Returns the groups. Matchups without a number are left out (see Unplaced), their id is never used
// in place of a number because the two are different namespaces
func Group(matchups []external.Matchup) Groups {
	groups := make(Groups)
	for _, m := range matchups {
		if m.Number == 0 {
			continue
		}
		pos := Classify(m.Number)
		key := pos.Key()

		g, ok := groups[key]
		if !ok {
			g = &RoundGroup{Bracket: pos.Bracket, Round: pos.Round, DisplayName: pos.DisplayName, named: pos.Known}
			groups[key] = g
		} else if !g.named && pos.Known {
			// Group was opened by an out of layout number, prefer the real round name
			g.DisplayName = pos.DisplayName
			g.named = true
		}
		g.Matchups = append(g.Matchups, m)
	}
	return groups
}

// Unplaced returns the matchups that can't be placed in the bracket because they have no number
func Unplaced(matchups []external.Matchup) []external.Matchup {
	var out []external.Matchup
	for _, m := range matchups {
		if m.Number == 0 {
			out = append(out, m)
		}
	}
	return out
}

// SortedMatchups returns a copy of the group's matchups ordered by number for display. Ties keep input order
func SortedMatchups(g *RoundGroup) []external.Matchup {
	if g == nil {
		return nil
	}
	out := make([]external.Matchup, len(g.Matchups))
	copy(out, g.Matchups)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Number < out[j].Number
	})
	return out
}

// Rounds returns the groups in bracket b ordered by round
func (g Groups) Rounds(b Bracket) []*RoundGroup {
	var out []*RoundGroup
	for _, group := range g {
		if group.Bracket == b {
			out = append(out, group)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Round < out[j].Round
	})
	return out
}

// Brackets lists the brackets that should be offered for navigation. Winners and losers are always offered, the
// final only once it has a round
func (g Groups) Brackets() []Bracket {
	out := []Bracket{Winners, Losers}
	if len(g.Rounds(Final)) > 0 {
		out = append(out, Final)
	}
	return out
}

// Resolve returns the group for the requested bracket and round. When that round doesn't exist it falls back to
// the first round of the bracket, and returns false only when the bracket has no rounds at all
func (g Groups) Resolve(b Bracket, round int) (*RoundGroup, bool) {
	if group, ok := g[RoundKey(b, round)]; ok {
		return group, true
	}
	rounds := g.Rounds(b)
	if len(rounds) == 0 {
		return nil, false
	}
	return rounds[0], true
}

/* classifier.go
 * Maps a matchup number onto its position in the fixed 64 contestant double elimination layout.
 * The layout lives in rangeTable, walked in order
 */

package bracket

import "fmt"

// Bracket is one of the three partitions of a double elimination tournament
type Bracket string

const (
	Winners Bracket = "winners"
	Losers  Bracket = "losers"
	Final   Bracket = "final"
)

// Brackets lists every bracket in display order
var Brackets = []Bracket{Winners, Losers, Final}

// Valid reports whether b is one of the known brackets
func (b Bracket) Valid() bool {
	switch b {
	case Winners, Losers, Final:
		return true
	}
	return false
}

// Label is the human readable bracket name used in navigation
func (b Bracket) Label() string {
	switch b {
	case Winners:
		return "Winner's Bracket"
	case Losers:
		return "Loser's Bracket"
	case Final:
		return "Final"
	}
	return string(b)
}

// Position is where a matchup sits in the bracket. Known is false when the number was not in the table and the
// fallback position was returned
type Position struct {
	Bracket     Bracket `json:"bracket"`
	Round       int     `json:"round"`
	DisplayName string  `json:"displayName"`
	Known       bool    `json:"-"`
}

// Key returns the round key for the position
func (p Position) Key() string {
	return RoundKey(p.Bracket, p.Round)
}

const (
	unknownName      = "Unknown"
	unknownRoundName = "Unknown Round"
)

// rangeEntry covers the inclusive range [min, max]. Singletons have min == max
type rangeEntry struct {
	min, max    int
	bracket     Bracket
	round       int
	displayName string
}

func (e rangeEntry) contains(n int) bool {
	return n >= e.min && n <= e.max
}

// rangeTable is walked in order and the first match wins. Entries must stay disjoint
var rangeTable = []rangeEntry{
	// Winner's bracket
	{1, 32, Winners, 1, "Round of 64"},
	{49, 64, Winners, 2, winnersName(2)},
	{89, 96, Winners, 3, winnersName(3)},
	{109, 112, Winners, 4, winnersName(4)},
	{119, 120, Winners, 5, winnersName(5)},
	{124, 124, Winners, 6, winnersName(6)},

	// Loser's bracket
	{33, 48, Losers, 1, losersName(1)},
	{65, 80, Losers, 2, losersName(2)},
	{81, 88, Losers, 3, losersName(3)},
	{97, 104, Losers, 4, losersName(4)},
	{105, 108, Losers, 5, losersName(5)},
	{113, 116, Losers, 6, losersName(6)},
	{117, 118, Losers, 7, losersName(7)},
	{121, 122, Losers, 8, losersName(8)},
	{123, 123, Losers, 9, losersName(9)},
	{125, 125, Losers, 10, losersName(10)},

	// Final
	{126, 127, Final, 1, "Final"},
}

func winnersName(round int) string {
	return fmt.Sprintf("Winner's Bracket Round %d", round)
}

func losersName(round int) string {
	return fmt.Sprintf("Loser's Bracket Round %d", round)
}

// Classify returns the bracket position for a matchup number. It never fails: zero (no number) maps to
// {winners, 1, "Unknown"} and every other number outside the layout, negatives included, maps to
// {winners, 1, "Unknown Round"}
func Classify(number int) Position {
	if number == 0 {
		return Position{Bracket: Winners, Round: 1, DisplayName: unknownName}
	}

	for _, e := range rangeTable {
		if e.contains(number) {
			return Position{Bracket: e.bracket, Round: e.round, DisplayName: e.displayName, Known: true}
		}
	}

	return Position{Bracket: Winners, Round: 1, DisplayName: unknownRoundName}
}

// TableEntry is an exported view of one row of the layout
type TableEntry struct {
	Min, Max    int
	Bracket     Bracket
	Round       int
	DisplayName string
}

// Table returns a copy of the layout
func Table() []TableEntry {
	out := make([]TableEntry, len(rangeTable))
	for i, e := range rangeTable {
		out[i] = TableEntry{Min: e.min, Max: e.max, Bracket: e.bracket, Round: e.round, DisplayName: e.displayName}
	}
	return out
}

// DisplayName returns the table name for a bracket and round, if the layout has one
func DisplayName(b Bracket, round int) (string, bool) {
	for _, e := range rangeTable {
		if e.bracket == b && e.round == round {
			return e.displayName, true
		}
	}
	return "", false
}

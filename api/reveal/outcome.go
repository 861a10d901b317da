/* outcome.go
 * Contains outcome resolution and contestant lookups used when presenting a matchup
 */

package reveal

import "bracket-viewer/api/external"

// TBD is shown in place of a contestant that is absent or unknown
const TBD = "TBD"

// ResolveOutcome works out the winner and loser of a matchup.
// Preconditions: Receives a matchup whose ids were canonicalised at ingestion
// Postconditions: Returns the winner and loser ids and true when the outcome equals exactly one of the two
// contestants. An absent outcome, or one that matches neither or both sides, returns false
func ResolveOutcome(m external.Matchup) (winner external.ID, loser external.ID, ok bool) {
	if m.Outcome.IsZero() {
		return "", "", false
	}
	one := m.Outcome == m.ContestantOneID
	two := m.Outcome == m.ContestantTwoID

	switch {
	case one && !two:
		return m.ContestantOneID, m.ContestantTwoID, true
	case two && !one:
		return m.ContestantTwoID, m.ContestantOneID, true
	}
	return "", "", false
}

// Role is the part a contestant played in a revealed matchup
type Role string

const (
	RoleNone   Role = ""
	RoleWinner Role = "winner"
	RoleLoser  Role = "loser"
)

// RoleOf returns the role of contestantID according to the verdict. Hidden or resultless verdicts give RoleNone
func RoleOf(v Verdict, contestantID external.ID) Role {
	if v.Status != StatusComplete || contestantID.IsZero() {
		return RoleNone
	}
	switch contestantID {
	case v.WinnerID:
		return RoleWinner
	case v.LoserID:
		return RoleLoser
	}
	return RoleNone
}

// Roster is a lookup of contestants by id
type Roster map[external.ID]external.Contestant

// NewRoster builds a roster from the contestant list. Later duplicates replace earlier ones
func NewRoster(contestants []external.Contestant) Roster {
	r := make(Roster, len(contestants))
	for _, c := range contestants {
		if c.ID.IsZero() {
			continue
		}
		r[c.ID] = c
	}
	return r
}

// Name returns the contestant's display name, or TBD when the id is absent, unknown or the name is blank
func (r Roster) Name(id external.ID) string {
	if id.IsZero() {
		return TBD
	}
	c, ok := r[id]
	if !ok || c.Name == "" {
		return TBD
	}
	return c.Name
}

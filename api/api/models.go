/* models.go
 * Contains the views returned by the API. Nothing here carries an outcome unless the viewer has revealed it
 */

package api

import (
	"bracket-viewer/api/bracket"
	"bracket-viewer/api/external"
	"bracket-viewer/api/reveal"
)

type ContestantView struct {
	ID   external.ID `json:"id"`
	Name string      `json:"name"`
	Role reveal.Role `json:"role,omitempty"`
}

type MatchupView struct {
	ID            external.ID       `json:"id"`
	Number        int               `json:"number"`
	Position      *bracket.Position `json:"position,omitempty"`
	ContestantOne ContestantView    `json:"contestantOne"`
	ContestantTwo ContestantView    `json:"contestantTwo"`
	Verdict       reveal.Verdict    `json:"verdict"`
	EmbedURL      string            `json:"embedUrl,omitempty"`
}

// RoundView is one round of a bracket. Prev and Next are the neighbouring round keys in the same bracket
type RoundView struct {
	Key         string          `json:"key"`
	Bracket     bracket.Bracket `json:"bracket"`
	Round       int             `json:"round"`
	DisplayName string          `json:"displayName"`
	FellBack    bool            `json:"fellBack,omitempty"` // The requested round didn't exist
	Prev        string          `json:"prev,omitempty"`
	Next        string          `json:"next,omitempty"`
	Matchups    []MatchupView   `json:"matchups"`
}

type RoundSummary struct {
	Key          string `json:"key"`
	Round        int    `json:"round"`
	DisplayName  string `json:"displayName"`
	MatchupCount int    `json:"matchupCount"`
}

type BracketSummary struct {
	Bracket bracket.Bracket `json:"bracket"`
	Label   string          `json:"label"`
	Rounds  []RoundSummary  `json:"rounds"`
}

// BracketOverview lists the navigable brackets. Unplaced holds the ids of matchups that have no number
type BracketOverview struct {
	Brackets []BracketSummary `json:"brackets"`
	Unplaced []external.ID    `json:"unplaced"`
}

func newMatchupView(m external.Matchup, roster reveal.Roster, v reveal.Verdict) MatchupView {
	view := MatchupView{
		ID:     m.ID,
		Number: m.Number,
		ContestantOne: ContestantView{
			ID:   m.ContestantOneID,
			Name: roster.Name(m.ContestantOneID),
			Role: reveal.RoleOf(v, m.ContestantOneID),
		},
		ContestantTwo: ContestantView{
			ID:   m.ContestantTwoID,
			Name: roster.Name(m.ContestantTwoID),
			Role: reveal.RoleOf(v, m.ContestantTwoID),
		},
		Verdict:  v,
		EmbedURL: external.ConvertToEmbedURL(m.YoutubeURL),
	}
	if m.Number != 0 {
		pos := bracket.Classify(m.Number)
		view.Position = &pos
	}
	return view
}

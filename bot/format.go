/* format.go
 * Contains the functions that turn api views into Discord messages. A result is only ever written for a matchup the
 * viewer has revealed
 */

package bot

import (
	"fmt"
	"strings"

	"bracket-viewer/api/api"
	"bracket-viewer/api/reveal"

	"github.com/bwmarrin/discordgo"
)

func formatOverview(o api.BracketOverview) string {
	var res strings.Builder
	for _, br := range o.Brackets {
		res.WriteString(fmt.Sprintf("**%s**\n", br.Label))
		if len(br.Rounds) == 0 {
			res.WriteString("- No rounds yet\n")
			continue
		}
		for _, r := range br.Rounds {
			res.WriteString(fmt.Sprintf("- %s (`%s`, %d matchups)\n", r.DisplayName, r.Key, r.MatchupCount))
		}
	}
	if len(o.Unplaced) > 0 {
		res.WriteString(fmt.Sprintf("%d matchups have no number and aren't shown\n", len(o.Unplaced)))
	}
	return res.String()
}

// formatRound writes a round header and one line per matchup. requested is the round the user asked for, when the
// api fell back to another round the user is told
func formatRound(r api.RoundView, requested int) string {
	var res strings.Builder
	if r.FellBack {
		res.WriteString(fmt.Sprintf("Round %d doesn't exist, showing the first round instead\n", requested))
	}
	res.WriteString(fmt.Sprintf("**%s** (`%s`)\n", r.DisplayName, r.Key))
	if len(r.Matchups) == 0 {
		res.WriteString("No matchups\n")
	}
	for _, m := range r.Matchups {
		res.WriteString(formatMatchupLine(m))
		res.WriteString("\n")
	}

	var nav []string
	if r.Prev != "" {
		nav = append(nav, fmt.Sprintf("previous: `%s`", r.Prev))
	}
	if r.Next != "" {
		nav = append(nav, fmt.Sprintf("next: `%s`", r.Next))
	}
	if len(nav) > 0 {
		res.WriteString(strings.Join(nav, " | "))
		res.WriteString("\n")
	}
	return res.String()
}

func formatMatchupLine(m api.MatchupView) string {
	one, two := m.ContestantOne.Name, m.ContestantTwo.Name

	switch m.Verdict.Status {
	case reveal.StatusComplete:
		winner, loser := one, two
		if m.ContestantTwo.Role == reveal.RoleWinner {
			winner, loser = two, one
		}
		return fmt.Sprintf("#%d **%s** def. %s", m.Number, winner, loser)
	case reveal.StatusResultless:
		return fmt.Sprintf("#%d %s vs %s | no result yet", m.Number, one, two)
	default:
		return fmt.Sprintf("#%d %s vs %s | result hidden, `$skip %d` to reveal", m.Number, one, two, m.Number)
	}
}

func formatMatchupDetail(m api.MatchupView) string {
	var res strings.Builder
	if m.Position != nil {
		res.WriteString(fmt.Sprintf("%s\n", m.Position.DisplayName))
	}
	res.WriteString(formatMatchupLine(m))
	res.WriteString("\n")
	if m.EmbedURL != "" {
		res.WriteString(m.EmbedURL)
		res.WriteString("\n")
	}
	return res.String()
}

// formatMatchupMessage wraps the matchup detail with a video embed when the matchup has one. The embed title never
// carries the result
func formatMatchupMessage(m api.MatchupView) *discordgo.MessageSend {
	msg := &discordgo.MessageSend{Content: formatMatchupDetail(m)}
	if m.EmbedURL == "" {
		return msg
	}
	msg.Embeds = []*discordgo.MessageEmbed{{
		Title: fmt.Sprintf("Matchup #%d: %s vs %s", m.Number, m.ContestantOne.Name, m.ContestantTwo.Name),
		URL:   m.EmbedURL,
	}}
	return msg
}

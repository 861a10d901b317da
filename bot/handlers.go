/* handlers.go
 * Contains testable handler methods that accept DiscordSession interface. The viewer is the message author, so each
 * Discord user has their own watched set
 */

package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"bracket-viewer/api/api"
	"bracket-viewer/api/bracket"

	"github.com/bwmarrin/discordgo"
)

const commandTimeout = 10 * time.Second

// helpMessageHandler handles the $help command with a DiscordSession interface
func (b *Bot) helpMessageHandler(session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	res.WriteString("Bracket Viewer Bot v1.0\n")
	res.WriteString("Results stay hidden until you skip a matchup, so you can catch up without spoilers.\n")
	res.WriteString("`$brackets`: lists the brackets and their rounds\n")
	res.WriteString("`$round <bracket> [round]`: shows the matchups in a round, e.g. `$round losers 3`. The round defaults to the first one. Bracket names are fuzzy matched so `loser`, `Loser's` and `lb` all work\n")
	res.WriteString("`$match <number>`: shows a single matchup and its video\n")
	res.WriteString("`$skip <number>`: reveals the result of a matchup for you. This can't be undone\n")
	res.WriteString("`$contestant <name>`: finds a contestant by name. Names that contain two or more words need to be encased in \" (e.g. \"Player One\")\n")
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// bracketsHandler handles the $brackets command with a DiscordSession interface
func (b *Bot) bracketsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	overview, err := b.APIPtr.GetBracketOverview(ctx)
	if err != nil {
		b.replyError(session, message, err)
		return
	}
	session.ChannelMessageSend(message.ChannelID, formatOverview(overview))
}

// roundHandler handles the $round command with a DiscordSession interface
func (b *Bot) roundHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args, err := splitArgs(message.Content)
	if err != nil || len(args) == 0 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$round <bracket> [round]`, e.g. `$round winners 2`")
		return
	}

	var br bracket.Bracket
	round := 1

	// A round key such as losers-3 is accepted as a single argument
	if len(args) == 1 {
		if kb, kr, err := bracket.ParseRoundKey(args[0]); err == nil && kb.Valid() {
			br, round = kb, kr
		}
	}
	if br == "" {
		// The last argument is the round when it is a number, everything before it names the bracket
		name := args
		if len(args) > 1 {
			if n, err := strconv.Atoi(args[len(args)-1]); err == nil {
				if n <= 0 {
					session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("'%d' is not a round number", n))
					return
				}
				round = n
				name = args[:len(args)-1]
			}
		}

		parsed, ok := parseBracket(strings.Join(name, " "))
		if !ok {
			session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("'%s' is not a bracket. Try winners, losers or final", strings.Join(name, " ")))
			return
		}
		br = parsed
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	view, err := b.APIPtr.GetRound(ctx, message.Author.ID, br, round)
	if err != nil {
		b.replyError(session, message, err)
		return
	}
	session.ChannelMessageSend(message.ChannelID, formatRound(view, round))
}

// matchHandler handles the $match command with a DiscordSession interface
func (b *Bot) matchHandler(session DiscordSession, message *discordgo.MessageCreate) {
	number, ok := b.matchupNumber(session, message, "$match")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	m, err := b.APIPtr.GetMatchup(ctx, message.Author.ID, number)
	if err != nil {
		b.replyError(session, message, err)
		return
	}
	if _, err := session.ChannelMessageSendComplex(message.ChannelID, formatMatchupMessage(m)); err != nil {
		b.log().Warn("failed to send matchup", "number", number, "error", err)
	}
}

// skipHandler handles the $skip command with a DiscordSession interface
func (b *Bot) skipHandler(session DiscordSession, message *discordgo.MessageCreate) {
	number, ok := b.matchupNumber(session, message, "$skip")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	m, err := b.APIPtr.SkipMatchup(ctx, message.Author.ID, number)
	if err != nil {
		b.replyError(session, message, err)
		return
	}
	session.ChannelMessageSend(message.ChannelID, formatMatchupLine(m))
}

// contestantHandler handles the $contestant command with a DiscordSession interface
func (b *Bot) contestantHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args, err := splitArgs(message.Content)
	if err != nil || len(args) == 0 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$contestant <name>`")
		return
	}
	query := strings.Join(args, " ")

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	found, err := b.APIPtr.FindContestant(ctx, query)
	if err != nil {
		b.replyError(session, message, err)
		return
	}
	if len(found) == 0 {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("No contestant matches '%s'", query))
		return
	}

	var res strings.Builder
	res.WriteString(fmt.Sprintf("Contestants matching '%s':\n", query))
	for _, c := range found {
		res.WriteString(fmt.Sprintf("- %s (id %s)\n", c.Name, c.ID))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

func (b *Bot) matchupNumber(session DiscordSession, message *discordgo.MessageCreate, command string) (int, bool) {
	args, err := splitArgs(message.Content)
	if err == nil {
		var n int
		n, err = parseMatchupNumber(args)
		if err == nil {
			return n, true
		}
	}
	session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Usage: `%s <number>`, %s", command, err))
	return 0, false
}

// replyError sends the user facing text for an api error. Unexpected errors are logged
func (b *Bot) replyError(session DiscordSession, message *discordgo.MessageCreate, err error) {
	var res string
	switch {
	case errors.Is(err, api.ErrTournamentUnavailable):
		b.log().Warn("tournament unavailable", "error", err)
		res = "Couldn't load the tournament right now, please try again shortly"
	case errors.Is(err, api.ErrMatchupNotFound):
		res = "There is no matchup with that number"
	case errors.Is(err, api.ErrRoundNotFound):
		res = "That bracket doesn't have any rounds yet"
	case errors.Is(err, bracket.ErrInvalidRoundKey):
		res = "Unknown bracket or round"
	default:
		b.log().Error("command failed", "content", message.Content, "error", err)
		res = "An unexpected error occured"
	}
	session.ChannelMessageSend(message.ChannelID, res)
}

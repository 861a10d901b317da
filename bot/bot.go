/* bot.go
 * Contains the Bot struct, command dispatch and the argument parsing helpers shared by the command handlers. Requires
 * a discord bot token and an API pointer, both of which are passed in from main.go
 */

package bot

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"bracket-viewer/api/api"
	"bracket-viewer/api/bracket"
	"bracket-viewer/api/ratelimit"

	"github.com/bwmarrin/discordgo"
	"github.com/go-andiamo/splitter"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

type Bot struct {
	BotToken string
	APIPtr   *api.API
	Limiter  *ratelimit.KeyedLimiter // Per user command limit, nil disables limiting

	logger *slog.Logger
}

func NewBot(botToken string, apiPtr *api.API, limiter *ratelimit.KeyedLimiter) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}
	if apiPtr == nil {
		return nil, fmt.Errorf("apiPtr is required but none was provided")
	}

	return &Bot{
		BotToken: botToken,
		APIPtr:   apiPtr,
		Limiter:  limiter,
		logger:   slog.Default().With("component", "bot"),
	}, nil
}

func (b *Bot) log() *slog.Logger {
	if b.logger == nil {
		return slog.Default()
	}
	return b.logger
}

// newMessageHandler dispatches a message to the command it starts with
// Preconditions: Receives a DiscordSession, the message and the bot's own user id
// Postconditions: Runs the matching command handler. Messages from the bot itself, messages that aren't commands
// and commands over the author's rate limit are ignored (the last with a notice)
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	// To prevent bot from responding to its own message, if the message author id matches the bot's then just return
	if message.Author == nil || message.Author.ID == botUserID {
		return
	}

	var handler func(DiscordSession, *discordgo.MessageCreate)
	switch {
	case startsWith(message.Content, "$help"):
		handler = b.helpMessageHandler
	case startsWith(message.Content, "$brackets"):
		handler = b.bracketsHandler
	case startsWith(message.Content, "$round"):
		handler = b.roundHandler
	case startsWith(message.Content, "$match"):
		handler = b.matchHandler
	case startsWith(message.Content, "$skip"):
		handler = b.skipHandler
	case startsWith(message.Content, "$contestant"):
		handler = b.contestantHandler
	default:
		return
	}

	if b.Limiter != nil && !b.Limiter.Allow(message.Author.ID) {
		session.ChannelMessageSend(message.ChannelID, "Slow down, you're sending commands too quickly")
		return
	}
	handler(session, message)
}

// Helper function to check if a message starts with a given command
// Preconditions: Recieves an input string and a command such as "$match"
// Postconditions: Returns true if the command is the first word of the input, so "$matches" doesn't match "$match"
func startsWith(inputString string, command string) bool {
	if !strings.HasPrefix(inputString, command) {
		return false
	}
	rest := inputString[len(command):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '\n'
}

// splitArgs splits a command into its arguments, dropping the command itself. Quoted arguments may contain spaces,
// e.g. `$contestant "Player One"`
// Preconditions: Receives the message content
// Postconditions: Returns the arguments with quotes removed, or an error if a quote is left open
func splitArgs(content string) ([]string, error) {
	spaceSplitter, err := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		return nil, err
	}
	parts, err := spaceSplitter.Split(strings.TrimSpace(content))
	if err != nil {
		return nil, err
	}

	var args []string
	for i, p := range parts {
		if i == 0 {
			continue
		}
		p = strings.NewReplacer("\"", "", "“", "", "”", "").Replace(p)
		p = strings.TrimSpace(p)
		if p != "" {
			args = append(args, p)
		}
	}
	return args, nil
}

var bracketAliases = map[string]bracket.Bracket{
	"winners": bracket.Winners,
	"winner":  bracket.Winners,
	"w":       bracket.Winners,
	"wb":      bracket.Winners,
	"upper":   bracket.Winners,
	"losers":  bracket.Losers,
	"loser":   bracket.Losers,
	"l":       bracket.Losers,
	"lb":      bracket.Losers,
	"lower":   bracket.Losers,
	"final":   bracket.Final,
	"finals":  bracket.Final,
	"f":       bracket.Final,
	"gf":      bracket.Final,

	"grand final":  bracket.Final,
	"grand finals": bracket.Final,
}

// parseBracket matches user input to a bracket. Known aliases are matched exactly, anything else is fuzzy matched
// against the bracket names
// Preconditions: Receives the bracket argument, e.g. "Loser's" or "winners"
// Postconditions: Returns the bracket and true, or false if nothing matches
func parseBracket(input string) (bracket.Bracket, bool) {
	name := strings.ToLower(strings.TrimSpace(input))
	name = strings.NewReplacer("'", "", "’", "", " bracket", "", "bracket", "").Replace(name)
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}

	if b, ok := bracketAliases[name]; ok {
		return b, true
	}

	targets := make([]string, len(bracket.Brackets))
	for i, b := range bracket.Brackets {
		targets[i] = string(b)
	}
	ranks := fuzzy.RankFindFold(name, targets)
	if len(ranks) == 0 {
		return "", false
	}
	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}
	return bracket.Bracket(best.Target), true
}

// parseMatchupNumber reads the matchup number argument of $match and $skip. A leading # is allowed
func parseMatchupNumber(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one matchup number")
	}
	n, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("'%s' is not a matchup number", args[0])
	}
	return n, nil
}

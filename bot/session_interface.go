/* session_interface.go
 * Contains the subset of the Discord session used by the command handlers, so they can run against a mock
 */

package bot

import "github.com/bwmarrin/discordgo"

// DiscordSession is what the handlers need to reply: plain text for lists and errors, and a complex message when a
// matchup has a video to attach
type DiscordSession interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var _ DiscordSession = (*discordgo.Session)(nil)

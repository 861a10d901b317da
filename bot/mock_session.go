/* mock_session.go
 * Contains mock implementation of DiscordSession for testing
 */

package bot

import (
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// MockDiscordSession records every reply instead of sending it
type MockDiscordSession struct {
	mu sync.Mutex

	SentMessages []MockMessage
	// ErrorToReturn allows tests to simulate a failed send
	ErrorToReturn error
}

// MockMessage is one recorded reply
type MockMessage struct {
	ChannelID string
	Content   string
	Embeds    []*discordgo.MessageEmbed
}

// ChannelMessageSend implements DiscordSession.ChannelMessageSend
func (m *MockDiscordSession) ChannelMessageSend(channelID string, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}

	m.SentMessages = append(m.SentMessages, MockMessage{ChannelID: channelID, Content: content})
	return &discordgo.Message{ID: "mock_message_id", ChannelID: channelID, Content: content}, nil
}

// ChannelMessageSendComplex implements DiscordSession.ChannelMessageSendComplex
func (m *MockDiscordSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}

	m.SentMessages = append(m.SentMessages, MockMessage{ChannelID: channelID, Content: data.Content, Embeds: data.Embeds})
	return &discordgo.Message{ID: "mock_message_id", ChannelID: channelID, Content: data.Content, Embeds: data.Embeds}, nil
}

// LastEmbeds returns the embeds of the last reply
func (m *MockDiscordSession) LastEmbeds() []*discordgo.MessageEmbed {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.SentMessages) == 0 {
		return nil
	}
	return m.SentMessages[len(m.SentMessages)-1].Embeds
}

// LastContent returns the content of the last reply, or "" if nothing was sent
func (m *MockDiscordSession) LastContent() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.SentMessages) == 0 {
		return ""
	}
	return m.SentMessages[len(m.SentMessages)-1].Content
}

// Count returns the number of replies sent
func (m *MockDiscordSession) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SentMessages)
}

// AnyContains reports whether any reply contains substr
func (m *MockDiscordSession) AnyContains(substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.SentMessages {
		if strings.Contains(msg.Content, substr) {
			return true
		}
	}
	return false
}

// NewMockDiscordSession creates a new MockDiscordSession for testing
func NewMockDiscordSession() *MockDiscordSession {
	return &MockDiscordSession{SentMessages: make([]MockMessage, 0)}
}

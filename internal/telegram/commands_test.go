package telegram

import (
	"testing"
	"time"

	"github.com/mymmrac/telego"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func (f *connectorFixture) expectSend(text string) *mock.Call {
	return f.bot.On("SendMessage", mock.Anything, mock.MatchedBy(func(p *telego.SendMessageParams) bool {
		return p.Text == text
	})).Return(&telego.Message{MessageID: 42, Chat: telego.Chat{ID: testChatID}}, nil)
}

func (f *connectorFixture) expectEdit(text string) *mock.Call {
	return f.bot.On("EditMessageText", mock.Anything, mock.MatchedBy(func(p *telego.EditMessageTextParams) bool {
		return p.MessageID == 42 && p.Text == text
	})).Return(nil, nil)
}

func TestHandleCommand_StartAndHelp(t *testing.T) {
	f := newConnectorFixture(t)
	f.expectSend(msgWelcome)
	f.expectSend(msgHelp)

	msg := groupMessage(testAdminID, "/start")
	require.NoError(t, f.conn.handleCommand(&msg, "start", ""))
	require.NoError(t, f.conn.handleCommand(&msg, "help", ""))

	f.bot.AssertExpectations(t)
}

func TestHandleCommand_UnknownCommandIgnored(t *testing.T) {
	f := newConnectorFixture(t)

	msg := groupMessage(testAdminID, "/settings")
	require.NoError(t, f.conn.handleCommand(&msg, "settings", ""))

	f.bot.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything)
}

func TestRemoveInactive_GroupOnly(t *testing.T) {
	f := newConnectorFixture(t)
	f.expectSend(msgGroupOnly)

	msg := groupMessage(testAdminID, "/removeinactive 7d")
	msg.Chat.Type = telego.ChatTypePrivate
	require.NoError(t, f.conn.handleRemoveInactive(&msg, "7d"))

	f.bot.AssertExpectations(t)
}

func TestRemoveInactive_MissingArgument(t *testing.T) {
	f := newConnectorFixture(t)
	f.expectSend(msgUsage)

	msg := groupMessage(testAdminID, "/removeinactive")
	require.NoError(t, f.conn.handleRemoveInactive(&msg, ""))

	f.bot.AssertExpectations(t)
}

func TestRemoveInactive_ActorNotPermitted(t *testing.T) {
	f := newConnectorFixture(t)
	f.expectMember(testAdminID, plainMember())
	f.expectSend(msgSearching)
	f.expectEdit(msgActorNotPermitted)

	msg := groupMessage(testAdminID, "/removeinactive 7d")
	require.NoError(t, f.conn.handleRemoveInactive(&msg, "7d"))

	f.bot.AssertExpectations(t)
}

func TestRemoveInactive_AdminWithoutBanRightsRejected(t *testing.T) {
	f := newConnectorFixture(t)
	f.expectMember(testAdminID, adminNoRestrict())
	f.expectSend(msgSearching)
	f.expectEdit(msgActorNotPermitted)

	msg := groupMessage(testAdminID, "/removeinactive 7d")
	require.NoError(t, f.conn.handleRemoveInactive(&msg, "7d"))

	f.bot.AssertExpectations(t)
}

func TestRemoveInactive_BotNotPermitted(t *testing.T) {
	f := newConnectorFixture(t)
	f.expectMember(testAdminID, admin())
	f.expectMember(testBotID, adminNoRestrict())
	f.expectSend(msgSearching)
	f.expectEdit(msgBotNotPermitted)

	msg := groupMessage(testAdminID, "/removeinactive 7d")
	require.NoError(t, f.conn.handleRemoveInactive(&msg, "7d"))

	f.bot.AssertExpectations(t)
}

func TestRemoveInactive_BadWindow(t *testing.T) {
	f := newConnectorFixture(t)
	f.expectMember(testAdminID, admin())
	f.expectMember(testBotID, admin())
	f.expectSend(msgSearching)
	f.expectEdit(msgBadWindow)

	msg := groupMessage(testAdminID, "/removeinactive soon")
	require.NoError(t, f.conn.handleRemoveInactive(&msg, "soon"))

	f.bot.AssertExpectations(t)
}

func TestRemoveInactive_NoCandidates(t *testing.T) {
	f := newConnectorFixture(t)
	f.expectMember(testAdminID, admin())
	f.expectMember(testBotID, admin())
	f.expectSend(msgSearching)
	f.expectEdit(msgNoInactive)

	f.backdate(100, time.Hour)

	msg := groupMessage(testAdminID, "/removeinactive 7d")
	require.NoError(t, f.conn.handleRemoveInactive(&msg, "7d"))

	f.bot.AssertExpectations(t)
}

func TestRemoveInactive_PresentsConfirmation(t *testing.T) {
	f := newConnectorFixture(t)
	f.expectMember(testAdminID, admin())
	f.expectMember(testBotID, admin())
	f.expectSend(msgSearching)

	f.backdate(100, 10*24*time.Hour)
	f.backdate(101, 20*24*time.Hour)

	var keyboard *telego.InlineKeyboardMarkup
	f.bot.On("EditMessageText", mock.Anything, mock.MatchedBy(func(p *telego.EditMessageTextParams) bool {
		return p.Text == confirmText(2, "7d")
	})).Run(func(args mock.Arguments) {
		keyboard = args.Get(1).(*telego.EditMessageTextParams).ReplyMarkup
	}).Return(nil, nil)

	msg := groupMessage(testAdminID, "/removeinactive 7d")
	require.NoError(t, f.conn.handleRemoveInactive(&msg, "7d"))

	f.bot.AssertExpectations(t)
	require.NotNil(t, keyboard)
	require.Len(t, keyboard.InlineKeyboard, 1)
	require.Len(t, keyboard.InlineKeyboard[0], 2)

	yes, no := keyboard.InlineKeyboard[0][0], keyboard.InlineKeyboard[0][1]
	assert.Equal(t, "Yes", yes.Text)
	assert.Equal(t, "No", no.Text)

	_, yesToken, ok := parseCallbackData(yes.CallbackData)
	require.True(t, ok)
	_, noToken, ok := parseCallbackData(no.CallbackData)
	require.True(t, ok)
	assert.Equal(t, yesToken, noToken, "both buttons must carry the proposal token")
}

func TestSummaryText(t *testing.T) {
	full := summaryText(3, 1, 2)
	assert.Contains(t, full, "Removed: 3")
	assert.Contains(t, full, "Skipped (admins): 1")
	assert.Contains(t, full, "Failed: 2")

	clean := summaryText(3, 0, 0)
	assert.Contains(t, clean, "Removed: 3")
	assert.NotContains(t, clean, "Skipped")
	assert.NotContains(t, clean, "Failed")
}

package telegram

import (
	"errors"

	"github.com/mymmrac/telego"

	"github.com/annihilusop/kickbot/internal/logger"
	"github.com/annihilusop/kickbot/internal/moderation"
)

func (c *Connector) handleCommand(msg *telego.Message, command, arg string) error {
	switch command {
	case "start":
		_, err := c.send(msg.Chat.ID, msgWelcome, telego.ModeMarkdown)
		return err
	case "help":
		_, err := c.send(msg.Chat.ID, msgHelp, telego.ModeMarkdown)
		return err
	case "removeinactive":
		return c.handleRemoveInactive(msg, arg)
	default:
		// Unknown commands addressed to the bot are ignored.
		return nil
	}
}

// handleRemoveInactive drives the proposal half of the removal flow. One
// status message is sent up front and edited in place for every outcome, so
// the conversation keeps a single thread from search to summary.
func (c *Connector) handleRemoveInactive(msg *telego.Message, arg string) error {
	if !isGroupChat(msg.Chat.Type) {
		_, err := c.send(msg.Chat.ID, msgGroupOnly, "")
		return err
	}

	if arg == "" {
		_, err := c.send(msg.Chat.ID, msgUsage, telego.ModeMarkdown)
		return err
	}

	status, err := c.send(msg.Chat.ID, msgSearching, "")
	if err != nil {
		return err
	}

	proposal, err := c.svc.Propose(c.ctx, msg.Chat.ID, msg.From.ID, arg)
	switch {
	case errors.Is(err, moderation.ErrNotPermitted):
		return c.edit(msg.Chat.ID, status.MessageID, msgActorNotPermitted, nil)
	case errors.Is(err, moderation.ErrBotNotPermitted):
		return c.edit(msg.Chat.ID, status.MessageID, msgBotNotPermitted, nil)
	case errors.Is(err, moderation.ErrBadWindow):
		return c.edit(msg.Chat.ID, status.MessageID, msgBadWindow, nil)
	case errors.Is(err, moderation.ErrNoCandidates):
		return c.edit(msg.Chat.ID, status.MessageID, msgNoInactive, nil)
	case err != nil:
		c.logger.ErrorCtx(c.ctx, "removal proposal failed", err,
			logger.Field{Key: "chat_id", Value: msg.Chat.ID})
		return c.edit(msg.Chat.ID, status.MessageID, msgNoInactive, nil)
	}

	proposal.MessageID = status.MessageID

	return c.edit(msg.Chat.ID, status.MessageID,
		confirmText(len(proposal.Candidates), proposal.Window),
		confirmKeyboard(proposal.Token))
}

func confirmKeyboard(token string) *telego.InlineKeyboardMarkup {
	return &telego.InlineKeyboardMarkup{
		InlineKeyboard: [][]telego.InlineKeyboardButton{
			{
				{Text: "Yes", CallbackData: confirmCallbackData(token)},
				{Text: "No", CallbackData: cancelCallbackData(token)},
			},
		},
	}
}

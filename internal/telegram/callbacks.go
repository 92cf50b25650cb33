package telegram

import (
	"errors"
	"strings"

	"github.com/mymmrac/telego"

	"github.com/annihilusop/kickbot/internal/logger"
	"github.com/annihilusop/kickbot/internal/moderation"
)

// Callback data format: "purge:<action>:<token>". The token is an opaque
// proposal ID, so concurrent proposals in the same chat never collide.
const (
	callbackPrefix = "purge"
	actionConfirm  = "confirm"
	actionCancel   = "cancel"
)

func confirmCallbackData(token string) string {
	return callbackPrefix + ":" + actionConfirm + ":" + token
}

func cancelCallbackData(token string) string {
	return callbackPrefix + ":" + actionCancel + ":" + token
}

// parseCallbackData splits callback data into action and token. Anything
// that is not a purge callback is reported as not ok and ignored upstream.
func parseCallbackData(data string) (action, token string, ok bool) {
	parts := strings.Split(data, ":")
	if len(parts) != 3 || parts[0] != callbackPrefix {
		return "", "", false
	}
	if parts[1] != actionConfirm && parts[1] != actionCancel {
		return "", "", false
	}
	return parts[1], parts[2], true
}

// handleCallback processes a confirm/cancel button press. The responder is
// authorized first so permission refusals answer fast; the callback query is
// then answered before the purge runs, since a large batch can outlive the
// answer deadline.
//
// A confirmed purge paces itself between removals, so it runs on its own
// goroutine: the update loop must keep serving every other chat while one
// chat's batch drains. Per-chat ordering needs no extra care since resolving
// the proposal is single-shot.
func (c *Connector) handleCallback(cq *telego.CallbackQuery) error {
	action, token, ok := parseCallbackData(cq.Data)
	if !ok {
		return nil
	}
	if cq.Message == nil {
		return nil
	}

	chatID := cq.Message.GetChat().ID
	messageID := cq.Message.GetMessageID()

	if err := c.svc.Authorize(c.ctx, token, cq.From.ID); err != nil {
		switch {
		case errors.Is(err, moderation.ErrNotPermitted):
			c.answer(cq.ID, alertNoPermission, true)
		case errors.Is(err, moderation.ErrUnknownProposal):
			c.answer(cq.ID, alertProposalGone, true)
		}
		return nil
	}

	c.answer(cq.ID, "", false)

	if action == actionCancel {
		_, _, err := c.svc.Resolve(c.ctx, token, cq.From.ID, false)
		if err != nil {
			// Another admin answered first, or the responder lost the right
			// in between. The winning response owns the message.
			return nil
		}
		return c.edit(chatID, messageID, msgCancelled, nil)
	}

	if err := c.edit(chatID, messageID, msgRemoving, nil); err != nil {
		c.logger.WarnCtx(c.ctx, "failed to update status message",
			logger.Field{Key: "chat_id", Value: chatID},
			logger.Field{Key: "error", Value: err})
	}

	c.purges.Add(1)
	go func() {
		defer c.purges.Done()
		c.runConfirmedPurge(chatID, messageID, token, cq.From.ID)
	}()

	return nil
}

// runConfirmedPurge resolves a confirmed proposal and reports the outcome by
// editing the status message.
func (c *Connector) runConfirmedPurge(chatID int64, messageID int, token string, responderID int64) {
	_, outcome, err := c.svc.Resolve(c.ctx, token, responderID, true)
	if err != nil {
		if errors.Is(err, moderation.ErrUnknownProposal) || errors.Is(err, moderation.ErrNotPermitted) {
			return
		}
		// Interrupted purge: report whatever was processed.
		if outcome == nil {
			c.logger.ErrorCtx(c.ctx, "removal batch failed", err,
				logger.Field{Key: "chat_id", Value: chatID})
			return
		}
	}

	if editErr := c.edit(chatID, messageID, summaryText(outcome.Removed, outcome.Skipped, outcome.Failed), nil); editErr != nil {
		c.logger.WarnCtx(c.ctx, "failed to post removal summary",
			logger.Field{Key: "chat_id", Value: chatID},
			logger.Field{Key: "error", Value: editErr})
	}
}

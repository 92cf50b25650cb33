// Package telegram integrates Kick-Bot with the Telegram Bot API using the
// Telego library. It routes inbound updates to the moderation core and keeps
// the transport behind the narrow BotAPI interface.
package telegram

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mymmrac/telego"

	"github.com/annihilusop/kickbot/internal/config"
	"github.com/annihilusop/kickbot/internal/logger"
	"github.com/annihilusop/kickbot/internal/moderation"
)

// BotIdentity is the bot's own identity, resolved once at startup and
// threaded through as an immutable value.
type BotIdentity struct {
	ID       int64
	Username string
}

// Connector drives the Telegram side of the bot: long polling, command and
// callback routing, and activity tracking for group messages.
type Connector struct {
	cfg      config.TelegramConfig
	logger   *logger.Logger
	api      BotAPI
	identity BotIdentity
	svc      *moderation.Service
	ctx      context.Context
	cancel   context.CancelFunc
	purges   sync.WaitGroup
}

// NewConnector creates a connector over an already initialized bot API.
func NewConnector(cfg config.TelegramConfig, api BotAPI, identity BotIdentity, svc *moderation.Service, log *logger.Logger) *Connector {
	return &Connector{
		cfg:      cfg,
		logger:   log,
		api:      api,
		identity: identity,
		svc:      svc,
	}
}

// Start registers the bot commands and begins long polling for updates.
func (c *Connector) Start(ctx context.Context) error {
	c.ctx, c.cancel = context.WithCancel(ctx)

	if err := c.registerCommands(); err != nil {
		c.logger.ErrorCtx(c.ctx, "failed to register bot commands", err)
	}

	updates, err := c.api.UpdatesViaLongPolling(c.ctx, &telego.GetUpdatesParams{
		Timeout: c.cfg.LongPollTimeoutSeconds,
	})
	if err != nil {
		return fmt.Errorf("failed to start long polling: %w", err)
	}

	go c.run(updates)

	c.logger.Info("telegram connector started",
		logger.Field{Key: "bot_id", Value: c.identity.ID},
		logger.Field{Key: "username", Value: c.identity.Username})

	return nil
}

// Stop cancels long polling and in-flight handlers, then waits for running
// removal batches to wind down with their partial outcomes.
func (c *Connector) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
	c.purges.Wait()
	c.logger.Info("telegram connector stopped")
}

func (c *Connector) registerCommands() error {
	params := &telego.SetMyCommandsParams{
		Commands: []telego.BotCommand{
			{Command: "start", Description: "Start the bot"},
			{Command: "help", Description: "Show help"},
			{Command: "removeinactive", Description: "Remove members inactive for the given period"},
		},
	}
	return c.api.SetMyCommands(c.ctx, params)
}

func (c *Connector) run(updates <-chan telego.Update) {
	for {
		select {
		case <-c.ctx.Done():
			c.logger.Info("update loop stopped")
			return
		case update, ok := <-updates:
			if !ok {
				c.logger.Info("updates channel closed")
				return
			}
			if err := c.handleUpdate(update); err != nil {
				c.logger.ErrorCtx(c.ctx, "failed to handle update", err)
			}
		}
	}
}

// handleUpdate routes one Telegram update: callback queries to the proposal
// flow, commands to the command handler, and everything else to activity
// tracking.
func (c *Connector) handleUpdate(update telego.Update) error {
	if update.CallbackQuery != nil {
		return c.handleCallback(update.CallbackQuery)
	}

	if update.Message == nil || update.Message.From == nil {
		return nil
	}
	msg := update.Message

	if strings.HasPrefix(msg.Text, "/") {
		command, arg, mine := c.parseCommand(msg.Text)
		if !mine {
			return nil
		}
		return c.handleCommand(msg, command, arg)
	}

	c.trackActivity(msg)

	return nil
}

// trackActivity records group-message activity. Bots, service updates and
// private chats are not tracked.
func (c *Connector) trackActivity(msg *telego.Message) {
	if !isGroupChat(msg.Chat.Type) || msg.From.IsBot {
		return
	}
	if len(msg.NewChatMembers) > 0 || msg.LeftChatMember != nil {
		return
	}

	c.svc.Track(c.ctx, msg.Chat.ID, msg.From.ID, msg.From.Username, msg.From.FirstName)
}

// parseCommand splits "/cmd[@botname] [arg]" and reports whether the command
// is addressed to this bot. Commands carrying another bot's username are not
// ours.
func (c *Connector) parseCommand(text string) (command, arg string, mine bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", "", false
	}

	command = strings.TrimPrefix(fields[0], "/")
	if at := strings.Index(command, "@"); at != -1 {
		mention := command[at+1:]
		command = command[:at]
		if !strings.EqualFold(mention, c.identity.Username) {
			return "", "", false
		}
	}

	if len(fields) > 1 {
		arg = fields[1]
	}

	return strings.ToLower(command), arg, true
}

func isGroupChat(chatType string) bool {
	return chatType == telego.ChatTypeGroup || chatType == telego.ChatTypeSupergroup
}

func (c *Connector) sendTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.ctx, time.Duration(c.cfg.SendTimeoutSeconds)*time.Second)
}

// send posts a plain message and returns it for later edits.
func (c *Connector) send(chatID int64, text string, parseMode string) (*telego.Message, error) {
	ctx, cancel := c.sendTimeout()
	defer cancel()

	return c.api.SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: parseMode,
	})
}

// edit replaces the text (and keyboard) of a previously sent message.
func (c *Connector) edit(chatID int64, messageID int, text string, markup *telego.InlineKeyboardMarkup) error {
	ctx, cancel := c.sendTimeout()
	defer cancel()

	_, err := c.api.EditMessageText(ctx, &telego.EditMessageTextParams{
		ChatID:      telego.ChatID{ID: chatID},
		MessageID:   messageID,
		Text:        text,
		ReplyMarkup: markup,
	})
	return err
}

func (c *Connector) answer(callbackID, text string, alert bool) {
	ctx, cancel := c.sendTimeout()
	defer cancel()

	err := c.api.AnswerCallbackQuery(ctx, &telego.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       alert,
	})
	if err != nil {
		c.logger.ErrorCtx(c.ctx, "failed to answer callback query", err,
			logger.Field{Key: "callback_query_id", Value: callbackID})
	}
}

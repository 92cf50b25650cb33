package telegram

import (
	"context"

	"github.com/mymmrac/telego"
)

// BotAPI defines the Telegram bot API methods used by the connector.
// The interface keeps the transport narrow and allows mock implementations
// in tests without depending on the concrete telego.Bot.
type BotAPI interface {
	// GetMe returns basic information about the bot.
	GetMe(ctx context.Context) (*telego.User, error)

	// SendMessage sends a text message to a chat.
	SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error)

	// EditMessageText edits text of a message sent via the bot.
	EditMessageText(ctx context.Context, params *telego.EditMessageTextParams) (*telego.Message, error)

	// AnswerCallbackQuery answers an inline keyboard callback query.
	AnswerCallbackQuery(ctx context.Context, params *telego.AnswerCallbackQueryParams) error

	// SetMyCommands sets the bot's command list in the bot menu.
	SetMyCommands(ctx context.Context, params *telego.SetMyCommandsParams) error

	// GetChatMember returns a member's current status in a chat.
	GetChatMember(ctx context.Context, params *telego.GetChatMemberParams) (telego.ChatMember, error)

	// BanChatMember bans a member from a chat.
	BanChatMember(ctx context.Context, params *telego.BanChatMemberParams) error

	// UnbanChatMember lifts a ban, allowing the user to rejoin.
	UnbanChatMember(ctx context.Context, params *telego.UnbanChatMemberParams) error

	// UpdatesViaLongPolling starts long polling for Telegram updates.
	UpdatesViaLongPolling(ctx context.Context, params *telego.GetUpdatesParams, opts ...telego.LongPollingOption) (<-chan telego.Update, error)
}

// telegoAdapter wraps telego.Bot to implement BotAPI.
type telegoAdapter struct {
	bot *telego.Bot
}

// NewBotAdapter creates a BotAPI from a telego.Bot instance.
func NewBotAdapter(bot *telego.Bot) BotAPI {
	return &telegoAdapter{bot: bot}
}

func (a *telegoAdapter) GetMe(ctx context.Context) (*telego.User, error) {
	return a.bot.GetMe(ctx)
}

func (a *telegoAdapter) SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error) {
	return a.bot.SendMessage(ctx, params)
}

func (a *telegoAdapter) EditMessageText(ctx context.Context, params *telego.EditMessageTextParams) (*telego.Message, error) {
	return a.bot.EditMessageText(ctx, params)
}

func (a *telegoAdapter) AnswerCallbackQuery(ctx context.Context, params *telego.AnswerCallbackQueryParams) error {
	return a.bot.AnswerCallbackQuery(ctx, params)
}

func (a *telegoAdapter) SetMyCommands(ctx context.Context, params *telego.SetMyCommandsParams) error {
	return a.bot.SetMyCommands(ctx, params)
}

func (a *telegoAdapter) GetChatMember(ctx context.Context, params *telego.GetChatMemberParams) (telego.ChatMember, error) {
	return a.bot.GetChatMember(ctx, params)
}

func (a *telegoAdapter) BanChatMember(ctx context.Context, params *telego.BanChatMemberParams) error {
	return a.bot.BanChatMember(ctx, params)
}

func (a *telegoAdapter) UnbanChatMember(ctx context.Context, params *telego.UnbanChatMemberParams) error {
	return a.bot.UnbanChatMember(ctx, params)
}

func (a *telegoAdapter) UpdatesViaLongPolling(ctx context.Context, params *telego.GetUpdatesParams, opts ...telego.LongPollingOption) (<-chan telego.Update, error) {
	return a.bot.UpdatesViaLongPolling(ctx, params, opts...)
}

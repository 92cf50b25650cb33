package moderation

import (
	"context"

	"github.com/annihilusop/kickbot/internal/logger"
)

// Gate decides whether an actor or the bot itself may remove members from a
// chat. Lookup failures fail closed: no permission rather than a wrong
// removal.
type Gate struct {
	dir    Directory
	botID  int64
	logger *logger.Logger
}

// NewGate creates a permission gate. botID is the bot's own user ID,
// resolved once at startup.
func NewGate(dir Directory, botID int64, log *logger.Logger) *Gate {
	return &Gate{dir: dir, botID: botID, logger: log}
}

// ActorCanRemove reports whether the actor holds the chat-creator role or
// administrator with the restrict-members right.
func (g *Gate) ActorCanRemove(ctx context.Context, chatID, actorID int64) bool {
	caps, err := g.dir.Member(ctx, chatID, actorID)
	if err != nil {
		g.logger.WarnCtx(ctx, "actor permission lookup failed, denying",
			logger.Field{Key: "chat_id", Value: chatID},
			logger.Field{Key: "actor_id", Value: actorID},
			logger.Field{Key: "error", Value: err})
		return false
	}
	return caps.CanRemove()
}

// BotCanRemove applies the same capability check to the bot's own
// membership record.
func (g *Gate) BotCanRemove(ctx context.Context, chatID int64) bool {
	caps, err := g.dir.Member(ctx, chatID, g.botID)
	if err != nil {
		g.logger.WarnCtx(ctx, "bot permission lookup failed, denying",
			logger.Field{Key: "chat_id", Value: chatID},
			logger.Field{Key: "error", Value: err})
		return false
	}
	return caps.CanRemove()
}

package telegram

import (
	"context"
	"errors"
	"fmt"

	"github.com/mymmrac/telego"
	"github.com/mymmrac/telego/telegoapi"

	"github.com/annihilusop/kickbot/internal/moderation"
)

// chatDirectory implements moderation.Directory on top of the Telegram API.
// Telegram returns one of several member shapes; this is the single place
// where they collapse into a Capabilities value.
type chatDirectory struct {
	api BotAPI
}

// NewChatDirectory creates the membership directory used by the moderation
// core.
func NewChatDirectory(api BotAPI) moderation.Directory {
	return &chatDirectory{api: api}
}

func (d *chatDirectory) Member(ctx context.Context, chatID, userID int64) (moderation.Capabilities, error) {
	member, err := d.api.GetChatMember(ctx, &telego.GetChatMemberParams{
		ChatID: telego.ChatID{ID: chatID},
		UserID: userID,
	})
	if err != nil {
		return moderation.Capabilities{}, classifyAPIError(err)
	}

	switch m := member.(type) {
	case *telego.ChatMemberOwner:
		// The creator implicitly holds every right.
		return moderation.Capabilities{IsCreator: true, IsAdmin: true, CanRestrictMembers: true}, nil
	case *telego.ChatMemberAdministrator:
		return moderation.Capabilities{IsAdmin: true, CanRestrictMembers: m.CanRestrictMembers}, nil
	default:
		return moderation.Capabilities{}, nil
	}
}

func (d *chatDirectory) Restrict(ctx context.Context, chatID, userID int64, restricted bool) error {
	if restricted {
		err := d.api.BanChatMember(ctx, &telego.BanChatMemberParams{
			ChatID: telego.ChatID{ID: chatID},
			UserID: userID,
		})
		return classifyAPIError(err)
	}

	err := d.api.UnbanChatMember(ctx, &telego.UnbanChatMemberParams{
		ChatID:       telego.ChatID{ID: chatID},
		UserID:       userID,
		OnlyIfBanned: true,
	})
	return classifyAPIError(err)
}

// classifyAPIError maps Telegram refusals (bad request, forbidden) onto the
// moderation error taxonomy so the core never inspects transport errors.
func classifyAPIError(err error) error {
	if err == nil {
		return nil
	}

	var telErr *telegoapi.Error
	if errors.As(err, &telErr) {
		if telErr.ErrorCode == 400 || telErr.ErrorCode == 403 {
			return fmt.Errorf("%w: %s", moderation.ErrMemberPermission, telErr.Description)
		}
	}

	return err
}

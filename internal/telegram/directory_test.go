package telegram

import (
	"context"
	"errors"
	"testing"

	"github.com/mymmrac/telego"
	"github.com/mymmrac/telego/telegoapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/annihilusop/kickbot/internal/moderation"
)

func TestChatDirectory_MemberMapping(t *testing.T) {
	tests := []struct {
		name   string
		member telego.ChatMember
		want   moderation.Capabilities
	}{
		{
			name:   "owner holds every right",
			member: &telego.ChatMemberOwner{},
			want:   moderation.Capabilities{IsCreator: true, IsAdmin: true, CanRestrictMembers: true},
		},
		{
			name:   "admin with ban rights",
			member: &telego.ChatMemberAdministrator{CanRestrictMembers: true},
			want:   moderation.Capabilities{IsAdmin: true, CanRestrictMembers: true},
		},
		{
			name:   "admin without ban rights",
			member: &telego.ChatMemberAdministrator{},
			want:   moderation.Capabilities{IsAdmin: true},
		},
		{
			name:   "plain member",
			member: &telego.ChatMemberMember{},
			want:   moderation.Capabilities{},
		},
		{
			name:   "restricted member",
			member: &telego.ChatMemberRestricted{},
			want:   moderation.Capabilities{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bot := &MockBot{}
			bot.On("GetChatMember", mock.Anything, mock.Anything).Return(tt.member, nil)

			caps, err := NewChatDirectory(bot).Member(context.Background(), testChatID, 7)
			require.NoError(t, err)
			assert.Equal(t, tt.want, caps)
		})
	}
}

func TestChatDirectory_MemberLookupError(t *testing.T) {
	bot := &MockBot{}
	bot.On("GetChatMember", mock.Anything, mock.Anything).Return(nil, errors.New("network down"))

	_, err := NewChatDirectory(bot).Member(context.Background(), testChatID, 7)
	assert.Error(t, err)
}

func TestChatDirectory_RestrictBansThenUnbans(t *testing.T) {
	bot := &MockBot{}
	bot.On("BanChatMember", mock.Anything, mock.MatchedBy(func(p *telego.BanChatMemberParams) bool {
		return p.UserID == 7
	})).Return(nil)
	bot.On("UnbanChatMember", mock.Anything, mock.MatchedBy(func(p *telego.UnbanChatMemberParams) bool {
		return p.UserID == 7 && p.OnlyIfBanned
	})).Return(nil)

	dir := NewChatDirectory(bot)
	require.NoError(t, dir.Restrict(context.Background(), testChatID, 7, true))
	require.NoError(t, dir.Restrict(context.Background(), testChatID, 7, false))

	bot.AssertExpectations(t)
}

func TestClassifyAPIError(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, classifyAPIError(nil))
	})

	t.Run("telegram refusals map to permission error", func(t *testing.T) {
		for _, code := range []int{400, 403} {
			err := classifyAPIError(&telegoapi.Error{ErrorCode: code, Description: "user is an administrator of the chat"})
			assert.ErrorIs(t, err, moderation.ErrMemberPermission, "code %d", code)
		}
	})

	t.Run("server errors pass through unchanged", func(t *testing.T) {
		apiErr := &telegoapi.Error{ErrorCode: 502, Description: "bad gateway"}
		err := classifyAPIError(apiErr)
		assert.NotErrorIs(t, err, moderation.ErrMemberPermission)
	})

	t.Run("plain errors pass through unchanged", func(t *testing.T) {
		plain := errors.New("timeout")
		assert.Equal(t, plain, classifyAPIError(plain))
	})
}

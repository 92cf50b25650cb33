package moderation

import "context"

// Capabilities is the resolved set of administrative rights a member holds
// in a chat. The platform's polymorphic member shapes are collapsed into
// this struct once, at the transport boundary.
type Capabilities struct {
	IsCreator          bool
	IsAdmin            bool
	CanRestrictMembers bool
}

// Privileged reports whether the member holds any administrative privilege.
// The purge never removes a privileged member regardless of inactivity.
func (c Capabilities) Privileged() bool {
	return c.IsCreator || c.IsAdmin
}

// CanRemove reports whether the member may run or confirm a removal:
// the chat creator always qualifies, an administrator only with the
// explicit restrict-members right.
func (c Capabilities) CanRemove() bool {
	return c.IsCreator || (c.IsAdmin && c.CanRestrictMembers)
}

// Directory is the membership collaborator consumed by the moderation core.
// Implementations wrap the chat platform's member lookup and its
// ban/unban primitive.
type Directory interface {
	// Member resolves the current capabilities of a chat member.
	Member(ctx context.Context, chatID, userID int64) (Capabilities, error)

	// Restrict bans (restricted=true) or unbans (restricted=false) a member.
	// A ban followed by an immediate unban performs a soft kick: the member
	// is expelled but free to rejoin.
	Restrict(ctx context.Context, chatID, userID int64, restricted bool) error
}

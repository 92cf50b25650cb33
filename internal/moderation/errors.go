package moderation

import "errors"

var (
	// ErrBadWindow reports a time window token that does not match the
	// <digits><unit> grammar.
	ErrBadWindow = errors.New("invalid time window token")

	// ErrNotPermitted reports an actor without the restrict-members right.
	ErrNotPermitted = errors.New("actor lacks restrict members permission")

	// ErrBotNotPermitted reports that the bot itself lacks the
	// restrict-members right in the chat.
	ErrBotNotPermitted = errors.New("bot lacks restrict members permission")

	// ErrNoCandidates reports that no member was inactive past the cutoff.
	ErrNoCandidates = errors.New("no inactive members found")

	// ErrUnknownProposal reports a correlation token that references no
	// live proposal (expired, already resolved, or never issued).
	ErrUnknownProposal = errors.New("unknown removal proposal")

	// ErrMemberPermission marks a per-candidate platform refusal
	// (insufficient rights, invalid peer). The purge counts it as failed
	// and continues with the remaining candidates.
	ErrMemberPermission = errors.New("member operation refused by platform")
)

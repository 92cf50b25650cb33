// Package moderation implements the inactivity-tracking and bulk-removal
// workflow: activity bookkeeping, time-window parsing, permission gating,
// the confirm/cancel proposal flow and the batched soft-kick itself.
package moderation

import (
	"context"
	"time"

	"github.com/annihilusop/kickbot/internal/activity"
	"github.com/annihilusop/kickbot/internal/logger"
)

// Config tunes the moderation service.
type Config struct {
	// KickDelay is the pacing pause between successful removals.
	KickDelay time.Duration
	// ProposalTTL bounds how long an unanswered proposal stays live.
	ProposalTTL time.Duration
}

// Service ties the activity store, the permission gate, the proposal book
// and the purger together behind the operations the transport layer needs.
type Service struct {
	store   activity.Store
	gate    *Gate
	book    *ProposalBook
	purger  *Purger
	logger  *logger.Logger
	metrics *Metrics
}

// NewService wires the moderation core. botID is the bot's own user ID used
// for its self permission check.
func NewService(store activity.Store, dir Directory, botID int64, cfg Config, log *logger.Logger, metrics *Metrics) *Service {
	return &Service{
		store:   store,
		gate:    NewGate(dir, botID, log),
		book:    NewProposalBook(cfg.ProposalTTL),
		purger:  NewPurger(dir, cfg.KickDelay, log, metrics),
		logger:  log,
		metrics: metrics,
	}
}

// Track records a user's activity in a chat. Best-effort: the store swallows
// its own failures and Track never reports one.
func (s *Service) Track(ctx context.Context, chatID, userID int64, username, firstName string) {
	s.store.Record(ctx, chatID, userID, username, firstName)
	s.metrics.ActivityUpdate()
}

// Propose runs the admin-command half of the removal flow: permission gates,
// window parsing, the inactivity query and proposal registration.
//
// Sentinel errors tell the transport what to reply: ErrNotPermitted,
// ErrBotNotPermitted, ErrBadWindow, ErrNoCandidates.
func (s *Service) Propose(ctx context.Context, chatID, actorID int64, windowToken string) (*Proposal, error) {
	if !s.gate.ActorCanRemove(ctx, chatID, actorID) {
		return nil, ErrNotPermitted
	}
	if !s.gate.BotCanRemove(ctx, chatID) {
		return nil, ErrBotNotPermitted
	}

	window, err := ParseWindow(windowToken)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-window)
	records := s.store.Inactive(ctx, chatID, cutoff)
	if len(records) == 0 {
		return nil, ErrNoCandidates
	}

	candidates := make([]int64, 0, len(records))
	for _, rec := range records {
		candidates = append(candidates, rec.UserID)
	}

	p := &Proposal{
		ChatID:      chatID,
		InitiatorID: actorID,
		Window:      windowToken,
		Cutoff:      cutoff,
		Candidates:  candidates,
	}
	s.book.Add(p)
	s.metrics.Proposal("proposed")

	s.logger.InfoCtx(ctx, "removal proposed",
		logger.Field{Key: "chat_id", Value: chatID},
		logger.Field{Key: "actor_id", Value: actorID},
		logger.Field{Key: "window", Value: windowToken},
		logger.Field{Key: "candidates", Value: len(candidates)})

	return p, nil
}

// Authorize checks whether responderID may answer the proposal for token,
// without changing any state. It lets the transport refuse a responder fast
// before committing to the resolution flow; Resolve re-checks the gate
// anyway, so passing Authorize is never cached.
func (s *Service) Authorize(ctx context.Context, token string, responderID int64) error {
	p, ok := s.book.Peek(token)
	if !ok {
		return ErrUnknownProposal
	}
	if !s.gate.ActorCanRemove(ctx, p.ChatID, responderID) {
		return ErrNotPermitted
	}
	return nil
}

// Resolve handles a confirm or cancel response to a proposal.
//
// The responder is re-checked against the permission gate at resolution
// time: any qualifying admin may answer, not only the initiator, and a
// demoted initiator may no longer. A responder failing the gate gets
// ErrNotPermitted and the proposal stays live. On confirm the purge runs and
// the completed outcome is returned; on cancel both outcome and error are
// nil and nothing beyond the conversation changed.
func (s *Service) Resolve(ctx context.Context, token string, responderID int64, confirm bool) (*Proposal, *Outcome, error) {
	p, ok := s.book.Peek(token)
	if !ok {
		return nil, nil, ErrUnknownProposal
	}

	if !s.gate.ActorCanRemove(ctx, p.ChatID, responderID) {
		return nil, nil, ErrNotPermitted
	}

	p, err := s.book.Resolve(token, confirm)
	if err != nil {
		return nil, nil, err
	}

	if !confirm {
		s.metrics.Proposal("cancelled")
		s.logger.InfoCtx(ctx, "removal cancelled",
			logger.Field{Key: "chat_id", Value: p.ChatID},
			logger.Field{Key: "responder_id", Value: responderID})
		return p, nil, nil
	}

	s.metrics.Proposal("confirmed")
	out, err := s.purger.Execute(ctx, p.ChatID, p.Candidates)
	if err == nil {
		p.State = StateCompleted
	}

	s.logger.InfoCtx(ctx, "removal completed",
		logger.Field{Key: "chat_id", Value: p.ChatID},
		logger.Field{Key: "responder_id", Value: responderID},
		logger.Field{Key: "removed", Value: out.Removed},
		logger.Field{Key: "skipped", Value: out.Skipped},
		logger.Field{Key: "failed", Value: out.Failed})

	return p, &out, err
}

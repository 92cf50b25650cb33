package moderation

import (
	"context"
	"errors"
	"time"

	"github.com/annihilusop/kickbot/internal/logger"
)

// Outcome summarizes one completed removal batch.
// Removed + Skipped + Failed always equals the number of candidates handled.
type Outcome struct {
	Removed int
	Skipped int
	Failed  int
}

// Purger performs the batched soft-kick of removal candidates.
//
// The per-candidate loop is deliberately sequential: the platform rate-limits
// member mutations, so candidates within one chat must never be processed in
// parallel. Batches for different chats may run concurrently.
type Purger struct {
	dir     Directory
	delay   time.Duration
	logger  *logger.Logger
	metrics *Metrics
}

// NewPurger creates a purger. delay is the pacing pause inserted after each
// successful removal to stay under the platform's mutation rate.
func NewPurger(dir Directory, delay time.Duration, log *logger.Logger, metrics *Metrics) *Purger {
	return &Purger{dir: dir, delay: delay, logger: log, metrics: metrics}
}

// Execute soft-kicks the candidates in snapshot order.
//
// Each candidate's privileges are re-fetched first: anyone promoted to admin
// between proposal and confirmation is skipped, never removed. A
// per-candidate platform refusal counts as failed and the batch continues.
// The only error Execute returns is context cancellation between candidates;
// the partial outcome is still valid in that case.
func (p *Purger) Execute(ctx context.Context, chatID int64, candidates []int64) (Outcome, error) {
	var out Outcome
	start := time.Now()
	defer func() {
		p.metrics.ObservePurge(time.Since(start))
		p.metrics.Removals("removed", out.Removed)
		p.metrics.Removals("skipped", out.Skipped)
		p.metrics.Removals("failed", out.Failed)
	}()

	for _, userID := range candidates {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		caps, err := p.dir.Member(ctx, chatID, userID)
		if err != nil {
			// Cannot verify privileges, so never remove; count as failed.
			p.logger.ErrorCtx(ctx, "failed to fetch candidate member", err,
				logger.Field{Key: "chat_id", Value: chatID},
				logger.Field{Key: "user_id", Value: userID})
			out.Failed++
			continue
		}

		if caps.Privileged() {
			out.Skipped++
			continue
		}

		if err := p.softKick(ctx, chatID, userID); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				out.Failed++
				return out, err
			}
			p.logger.ErrorCtx(ctx, "failed to remove member", err,
				logger.Field{Key: "chat_id", Value: chatID},
				logger.Field{Key: "user_id", Value: userID})
			out.Failed++
			continue
		}

		out.Removed++
		p.logger.InfoCtx(ctx, "removed inactive member",
			logger.Field{Key: "chat_id", Value: chatID},
			logger.Field{Key: "user_id", Value: userID})

		// Pace only after an actual mutation; skips and failures do not
		// consume the platform's action budget.
		if p.delay > 0 {
			select {
			case <-time.After(p.delay):
			case <-ctx.Done():
				return out, ctx.Err()
			}
		}
	}

	return out, nil
}

// softKick bans then immediately unbans the member, expelling the current
// membership while leaving the door open to rejoin.
func (p *Purger) softKick(ctx context.Context, chatID, userID int64) error {
	if err := p.dir.Restrict(ctx, chatID, userID, true); err != nil {
		return err
	}

	if err := p.dir.Restrict(ctx, chatID, userID, false); err != nil {
		// The member is out; a failed unban only means they cannot rejoin
		// until an admin lifts the ban by hand. Still a successful removal.
		p.logger.WarnCtx(ctx, "failed to lift ban after kick",
			logger.Field{Key: "chat_id", Value: chatID},
			logger.Field{Key: "user_id", Value: userID},
			logger.Field{Key: "error", Value: err})
	}

	return nil
}

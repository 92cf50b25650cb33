package moderation

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ProposalState tracks a removal request through its two-step conversation.
type ProposalState string

const (
	StateAwaitingResponse ProposalState = "awaiting_response"
	StateConfirmed        ProposalState = "confirmed"
	StateCancelled        ProposalState = "cancelled"
	StateCompleted        ProposalState = "completed"
)

// Proposal is an ephemeral removal request awaiting confirmation. The
// candidate list is a snapshot taken at query time and is never re-queried:
// confirmation acts on exactly the members that were listed.
type Proposal struct {
	Token       string
	ChatID      int64
	InitiatorID int64
	Window      string
	Cutoff      time.Time
	Candidates  []int64
	MessageID   int
	State       ProposalState
	CreatedAt   time.Time
}

// ProposalBook holds in-flight proposals keyed by an opaque correlation
// token. Proposals live only for the duration of the conversation; stale
// entries are pruned on insert.
type ProposalBook struct {
	mu        sync.Mutex
	ttl       time.Duration
	proposals map[string]*Proposal
}

// NewProposalBook creates a book whose entries expire after ttl.
func NewProposalBook(ttl time.Duration) *ProposalBook {
	return &ProposalBook{
		ttl:       ttl,
		proposals: make(map[string]*Proposal),
	}
}

// Add registers a proposal, assigns its correlation token and returns it.
func (b *ProposalBook) Add(p *Proposal) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pruneLocked(time.Now())

	p.Token = uuid.New().String()
	p.State = StateAwaitingResponse
	p.CreatedAt = time.Now()
	b.proposals[p.Token] = p

	return p.Token
}

// Peek returns the live proposal for token without changing its state.
func (b *ProposalBook) Peek(token string) (*Proposal, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.proposals[token]
	if !ok || p.State != StateAwaitingResponse || time.Since(p.CreatedAt) > b.ttl {
		return nil, false
	}
	return p, true
}

// Resolve transitions the proposal for token to Confirmed or Cancelled and
// removes it from the book. Only a proposal still awaiting a response can be
// resolved; anything else yields ErrUnknownProposal, which also covers the
// case of two admins racing to answer the same keyboard.
func (b *ProposalBook) Resolve(token string, confirm bool) (*Proposal, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.proposals[token]
	if !ok || p.State != StateAwaitingResponse {
		return nil, ErrUnknownProposal
	}
	if time.Since(p.CreatedAt) > b.ttl {
		delete(b.proposals, token)
		return nil, ErrUnknownProposal
	}

	if confirm {
		p.State = StateConfirmed
	} else {
		p.State = StateCancelled
	}
	delete(b.proposals, token)

	return p, nil
}

// Len reports the number of live proposals.
func (b *ProposalBook) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.proposals)
}

func (b *ProposalBook) pruneLocked(now time.Time) {
	for token, p := range b.proposals {
		if now.Sub(p.CreatedAt) > b.ttl {
			delete(b.proposals, token)
		}
	}
}

package moderation

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProposal() *Proposal {
	return &Proposal{
		ChatID:      testChatID,
		InitiatorID: 10,
		Window:      "7d",
		Cutoff:      time.Now().Add(-7 * 24 * time.Hour),
		Candidates:  []int64{1, 2, 3},
	}
}

func TestProposalBook_AddAssignsUniqueTokens(t *testing.T) {
	book := NewProposalBook(time.Hour)

	first := book.Add(newTestProposal())
	second := book.Add(newTestProposal())

	assert.NotEmpty(t, first)
	assert.NotEmpty(t, second)
	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, book.Len())
}

func TestProposalBook_ResolveConfirm(t *testing.T) {
	book := NewProposalBook(time.Hour)
	token := book.Add(newTestProposal())

	p, err := book.Resolve(token, true)
	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, p.State)
	assert.Equal(t, []int64{1, 2, 3}, p.Candidates)
	assert.Equal(t, 0, book.Len())
}

func TestProposalBook_ResolveCancel(t *testing.T) {
	book := NewProposalBook(time.Hour)
	token := book.Add(newTestProposal())

	p, err := book.Resolve(token, false)
	require.NoError(t, err)
	assert.Equal(t, StateCancelled, p.State)
	assert.Equal(t, 0, book.Len())
}

func TestProposalBook_UnknownToken(t *testing.T) {
	book := NewProposalBook(time.Hour)

	_, err := book.Resolve("no-such-token", true)
	assert.ErrorIs(t, err, ErrUnknownProposal)

	_, ok := book.Peek("no-such-token")
	assert.False(t, ok)
}

func TestProposalBook_ResolveIsSingleShot(t *testing.T) {
	book := NewProposalBook(time.Hour)
	token := book.Add(newTestProposal())

	_, err := book.Resolve(token, true)
	require.NoError(t, err)

	// A second responder racing on the same keyboard loses.
	_, err = book.Resolve(token, false)
	assert.ErrorIs(t, err, ErrUnknownProposal)
}

func TestProposalBook_ConcurrentResolveHasOneWinner(t *testing.T) {
	book := NewProposalBook(time.Hour)
	token := book.Add(newTestProposal())

	const responders = 8
	var wg sync.WaitGroup
	wins := make(chan ProposalState, responders)

	for i := 0; i < responders; i++ {
		confirm := i%2 == 0
		wg.Add(1)
		go func() {
			defer wg.Done()
			if p, err := book.Resolve(token, confirm); err == nil {
				wins <- p.State
			}
		}()
	}
	wg.Wait()
	close(wins)

	var states []ProposalState
	for state := range wins {
		states = append(states, state)
	}
	require.Len(t, states, 1, "exactly one responder must win the proposal")
}

func TestProposalBook_ExpiredProposalIsGone(t *testing.T) {
	book := NewProposalBook(time.Millisecond)
	token := book.Add(newTestProposal())

	time.Sleep(5 * time.Millisecond)

	_, ok := book.Peek(token)
	assert.False(t, ok)

	_, err := book.Resolve(token, true)
	assert.ErrorIs(t, err, ErrUnknownProposal)
}

func TestProposalBook_PrunesExpiredOnAdd(t *testing.T) {
	book := NewProposalBook(time.Millisecond)
	book.Add(newTestProposal())
	time.Sleep(5 * time.Millisecond)

	book.Add(newTestProposal())
	assert.Equal(t, 1, book.Len())
}

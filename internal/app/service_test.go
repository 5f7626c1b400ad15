package app

import (
	"testing"

	"tictactoe/internal/domain"
	"tictactoe/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startMatch(t *testing.T) (*Service, *domain.Match) {
	t.Helper()
	svc := NewService()
	m, events, err := svc.Start([]string{"p1", "p2"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, EventMatchStarted, events[0].Kind)
	return svc, m
}

func TestStartAssignsMarksDeterministically(t *testing.T) {
	_, m := startMatch(t)

	assert.Equal(t, domain.PhaseActive, m.Phase)
	assert.Equal(t, domain.MarkX, m.Marks["p1"], "first participant plays X")
	assert.Equal(t, domain.MarkO, m.Marks["p2"])
	assert.Equal(t, domain.MarkX, m.Turn, "X moves first")
	assert.Equal(t, domain.Board{}, m.Board)
}

func TestStartRejectsBadParticipants(t *testing.T) {
	svc := NewService()

	_, _, err := svc.Start([]string{"p1"})
	assert.ErrorIs(t, err, ErrWrongParticipantCount)

	_, _, err = svc.Start([]string{"p1", "p1"})
	assert.ErrorIs(t, err, ErrDuplicateParticipant)

	_, _, err = svc.Start([]string{"p1", ""})
	assert.ErrorIs(t, err, ErrDuplicateParticipant)
}

func TestSubmitMoveAlternatesTurns(t *testing.T) {
	svc, m := startMatch(t)

	events, err := svc.SubmitMove(m, "p1", 4)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, EventBoardUpdated, events[0].Kind)

	payload := events[0].Payload.(BoardUpdatedPayload)
	assert.Equal(t, domain.MarkX, payload.Board[4])
	assert.Equal(t, domain.MarkO, payload.Turn)
	assert.Equal(t, domain.MarkO, m.Turn)
}

func TestSubmitMoveRejectionLeavesStateUntouched(t *testing.T) {
	svc, m := startMatch(t)
	before := *m

	// Out of turn.
	events, err := svc.SubmitMove(m, "p2", 0)
	assert.ErrorIs(t, err, domain.ErrNotYourTurn)
	assert.Nil(t, events)
	assert.Equal(t, before, *m)

	// Occupied cell on the correct turn.
	_, err = svc.SubmitMove(m, "p1", 3)
	require.NoError(t, err)
	_, err = svc.SubmitMove(m, "p2", 3)
	assert.ErrorIs(t, err, domain.ErrCellOccupied)
	assert.Equal(t, domain.MarkO, m.Turn, "rejection must not consume the turn")
}

// X takes the top row while O never blocks.
func TestUnblockedRowWinsForX(t *testing.T) {
	svc, m := startMatch(t)

	moves := []struct {
		user string
		cell int
	}{
		{"p1", 0}, {"p2", 3}, {"p1", 1}, {"p2", 4},
	}
	for _, mv := range moves {
		_, err := svc.SubmitMove(m, mv.user, mv.cell)
		require.NoError(t, err)
	}

	events, err := svc.SubmitMove(m, "p1", 2)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, EventMatchEnded, events[0].Kind)

	payload := events[0].Payload.(MatchEndedPayload)
	assert.Equal(t, domain.MarkX, payload.Winner)
	assert.False(t, payload.Draw)
	require.NotNil(t, payload.Line)
	assert.Equal(t, [3]int{0, 1, 2}, *payload.Line)
	assert.Equal(t, ports.OutcomeWin, payload.Results["p1"])
	assert.Equal(t, ports.OutcomeLoss, payload.Results["p2"])

	assert.Equal(t, domain.PhaseFinished, m.Phase)
	_, err = svc.SubmitMove(m, "p2", 5)
	assert.ErrorIs(t, err, domain.ErrMatchNotActive)
}

func TestFullBoardWithoutLineIsDraw(t *testing.T) {
	svc, m := startMatch(t)

	// Alternating fill ending in X O X / X O O / O X X.
	moves := []struct {
		user string
		cell int
	}{
		{"p1", 0}, {"p2", 1}, {"p1", 2},
		{"p2", 4}, {"p1", 3}, {"p2", 5},
		{"p1", 7}, {"p2", 6},
	}
	for _, mv := range moves {
		_, err := svc.SubmitMove(m, mv.user, mv.cell)
		require.NoError(t, err)
	}

	events, err := svc.SubmitMove(m, "p1", 8)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, EventMatchEnded, events[0].Kind)

	payload := events[0].Payload.(MatchEndedPayload)
	assert.True(t, payload.Draw)
	assert.Equal(t, domain.MarkEmpty, payload.Winner)
	assert.Nil(t, payload.Line)
	assert.Empty(t, payload.Results, "draws record no outcomes")
}

func TestExpireTurnForfeitsTheMover(t *testing.T) {
	svc, m := startMatch(t)

	// O is on turn and fails to move.
	_, err := svc.SubmitMove(m, "p1", 0)
	require.NoError(t, err)

	events, err := svc.ExpireTurn(m)
	require.NoError(t, err)
	require.Len(t, events, 1)

	payload := events[0].Payload.(MatchEndedPayload)
	assert.Equal(t, domain.MarkX, payload.Winner)
	assert.Nil(t, payload.Line, "forfeit has no winning line")
	assert.Equal(t, ports.OutcomeWin, payload.Results["p1"])
	assert.Equal(t, ports.OutcomeLoss, payload.Results["p2"])
}

func TestExpireTurnAfterFinishIsNoOp(t *testing.T) {
	svc, m := startMatch(t)
	m.Phase = domain.PhaseFinished
	m.Winner = domain.MarkX
	before := *m

	events, err := svc.ExpireTurn(m)
	require.NoError(t, err)
	assert.Nil(t, events)
	assert.Equal(t, before, *m)
}

func TestForfeitAgainstLeaverRegardlessOfTurn(t *testing.T) {
	svc, m := startMatch(t)

	// It is p1's turn, but p1 leaving still forfeits p1.
	events, err := svc.Forfeit(m, "p1")
	require.NoError(t, err)
	require.Len(t, events, 1)

	payload := events[0].Payload.(MatchEndedPayload)
	assert.Equal(t, domain.MarkO, payload.Winner)
	assert.Equal(t, ports.OutcomeLoss, payload.Results["p1"])
	assert.Equal(t, ports.OutcomeWin, payload.Results["p2"])
}

func TestForfeitIgnoresStrangersAndFinishedMatches(t *testing.T) {
	svc, m := startMatch(t)

	events, err := svc.Forfeit(m, "spectator")
	require.NoError(t, err)
	assert.Nil(t, events)
	assert.Equal(t, domain.PhaseActive, m.Phase)

	m.Phase = domain.PhaseFinished
	events, err = svc.Forfeit(m, "p1")
	require.NoError(t, err)
	assert.Nil(t, events)
}

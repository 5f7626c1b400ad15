package app

import (
	"tictactoe/internal/domain"
	"tictactoe/internal/ports"
)

// EventKind identifies emitted match events for Nakama dispatch.
type EventKind string

const (
	EventMatchStarted EventKind = "match_started"
	EventBoardUpdated EventKind = "board_updated"
	EventMatchEnded   EventKind = "match_ended"
)

// Event is a match event produced by a use-case, in dispatch order.
type Event struct {
	Kind    EventKind
	Payload any
}

// MatchStartedPayload announces the initial board, mark assignments and first turn.
type MatchStartedPayload struct {
	Board domain.Board
	Turn  domain.Mark
	Marks map[string]domain.Mark
}

// BoardUpdatedPayload carries the board after an accepted, non-terminal move.
type BoardUpdatedPayload struct {
	Board domain.Board
	Turn  domain.Mark
}

// MatchEndedPayload carries the terminal outcome.
// Results maps each participant to a win or loss; it is empty for draws.
type MatchEndedPayload struct {
	Board   domain.Board
	Winner  domain.Mark // MarkEmpty on a draw
	Draw    bool
	Line    *[3]int // nil for draws and forfeits
	Results map[string]ports.Outcome
}

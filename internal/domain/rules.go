package domain

import "errors"

// Move validation failures, ordered by check priority: phase, turn, index, occupancy.
var (
	ErrMatchNotActive = errors.New("match not active")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrInvalidCell    = errors.New("cell index out of range")
	ErrCellOccupied   = errors.New("cell already occupied")
)

// winningLines are the 8 cell triples that decide a game, in row-major
// enumeration order: rows, columns, diagonals. The order is the tie-break for
// which line is reported when a board satisfies more than one.
var winningLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Verdict is the terminal assessment of a board.
type Verdict struct {
	Finished bool
	Winner   Mark    // MarkEmpty unless a line was completed
	Draw     bool    // full board, no line
	Line     *[3]int // winning triple, nil otherwise
}

// Evaluate inspects the board for a completed line or a draw.
// The first matching triple in enumeration order wins.
func Evaluate(b Board) Verdict {
	for _, line := range winningLines {
		mark := b[line[0]]
		if mark != MarkEmpty && mark == b[line[1]] && mark == b[line[2]] {
			l := line
			return Verdict{Finished: true, Winner: mark, Line: &l}
		}
	}
	for _, cell := range b {
		if cell == MarkEmpty {
			return Verdict{}
		}
	}
	return Verdict{Finished: true, Draw: true}
}

// ValidateMove checks a proposed move against the match state without mutating it.
// Returns nil when the move is acceptable, otherwise the first failing check's error.
func ValidateMove(m *Match, userID string, cell int) error {
	if m.Phase != PhaseActive {
		return ErrMatchNotActive
	}
	if m.Marks[userID] != m.Turn {
		return ErrNotYourTurn
	}
	if cell < 0 || cell >= BoardSize {
		return ErrInvalidCell
	}
	if m.Board[cell] != MarkEmpty {
		return ErrCellOccupied
	}
	return nil
}

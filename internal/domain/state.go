package domain

// Phase represents the lifecycle stage of a tic-tac-toe match.
type Phase string

const (
	// PhaseWaiting is the pre-game state where the match waits for both participants.
	PhaseWaiting Phase = "waiting"
	// PhaseActive is the in-game state where moves are accepted.
	PhaseActive Phase = "active"
	// PhaseFinished is the terminal state after a win, draw or forfeit.
	PhaseFinished Phase = "finished"
)

// Mark is the symbol occupying a board cell.
type Mark int8

const (
	// MarkEmpty is an unoccupied cell. It is the zero value so a fresh Board is empty.
	MarkEmpty Mark = iota
	// MarkX is the first player's symbol. X always moves first.
	MarkX
	// MarkO is the second player's symbol.
	MarkO
)

// Other returns the opposing player mark. Other(MarkEmpty) is MarkEmpty.
func (m Mark) Other() Mark {
	switch m {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return MarkEmpty
	}
}

// BoardSize is the number of cells on the 3x3 grid.
const BoardSize = 9

// Board is the 3x3 grid in row-major order.
type Board [BoardSize]Mark

// Match holds the authoritative state for a single match instance.
type Match struct {
	Phase Phase
	Board Board

	// Turn is the mark whose move is expected next. MarkX before the first move.
	Turn Mark

	// Marks maps user IDs to their assigned marks. Exactly two entries once active.
	Marks map[string]Mark

	// Winner is the winning mark once finished, MarkEmpty for a draw or while running.
	Winner Mark
	// Draw is true when the match finished with a full board and no winner.
	Draw bool
	// Line holds the winning cell triple, nil for draws and forfeits.
	Line *[3]int
}

// NewMatch constructs a match in the waiting phase with an empty board.
func NewMatch() *Match {
	return &Match{
		Phase: PhaseWaiting,
		Turn:  MarkX,
		Marks: make(map[string]Mark, 2),
	}
}

// MarkOf returns the mark assigned to userID, or MarkEmpty if the user is not a participant.
func (m *Match) MarkOf(userID string) Mark {
	return m.Marks[userID]
}

// UserOf returns the user ID holding the given mark, or "" if unassigned.
func (m *Match) UserOf(mark Mark) string {
	for userID, assigned := range m.Marks {
		if assigned == mark {
			return userID
		}
	}
	return ""
}

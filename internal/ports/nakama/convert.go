package nakama

import "tictactoe/internal/domain"

// wireMark maps a player mark to its wire integer: X=0, O=1.
// Must only be called with player marks.
func wireMark(m domain.Mark) int {
	if m == domain.MarkO {
		return 1
	}
	return 0
}

// wireBoard maps a domain board to wire cells, encoding empty cells as null.
func wireBoard(b domain.Board) []*int {
	cells := make([]*int, len(b))
	for i, mark := range b {
		if mark == domain.MarkEmpty {
			continue
		}
		v := wireMark(mark)
		cells[i] = &v
	}
	return cells
}

// wireMarks maps the participant mark assignments to wire integers.
func wireMarks(marks map[string]domain.Mark) map[string]int {
	out := make(map[string]int, len(marks))
	for userID, mark := range marks {
		out[userID] = wireMark(mark)
	}
	return out
}

// wireWinner maps a terminal winner to the wire value, nil meaning draw.
func wireWinner(winner domain.Mark, draw bool) *int {
	if draw || winner == domain.MarkEmpty {
		return nil
	}
	v := wireMark(winner)
	return &v
}

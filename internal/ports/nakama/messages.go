package nakama

// Wire payloads exchanged with clients as JSON match data. Marks travel as
// integers (X=0, O=1) and empty board cells as null, which is what the web
// client renders directly. Each op code has exactly one payload shape.

// StartMessage announces an activated match to both participants.
type StartMessage struct {
	Board []*int         `json:"board"`
	Mark  int            `json:"mark"`  // mark on turn
	Marks map[string]int `json:"marks"` // user id -> assigned mark
	// Deadline is the absolute unix-seconds deadline of the first turn.
	Deadline int64 `json:"deadline"`
}

// UpdateMessage carries the board after an accepted, non-terminal move.
type UpdateMessage struct {
	Board    []*int `json:"board"`
	Mark     int    `json:"mark"` // mark now on turn
	Deadline int64  `json:"deadline"`
}

// DoneMessage carries the terminal outcome. Winner is null for a draw;
// WinnerPositions is null for draws and forfeits.
type DoneMessage struct {
	Board           []*int  `json:"board"`
	Winner          *int    `json:"winner"`
	WinnerPositions *[3]int `json:"winnerPositions"`
}

// RejectedMessage is sent to the submitter of an invalid move only.
// The board and turn are unchanged; the client simply retries.
type RejectedMessage struct{}

// MoveMessage is the client move submission.
type MoveMessage struct {
	Position int `json:"position"`
}

// FindMatchResponse is returned by the find_match RPC.
type FindMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

// Label is the match label advertised for find-match queries.
type Label struct {
	Open bool   `json:"open"`
	Game string `json:"game"`
}

package nakama

const (
	// RpcFindMatch is the Nakama RPC id clients call to find or create an open match.
	RpcFindMatch = "find_match"

	// RpcLeaderboard is the Nakama RPC id for the ranked leaderboard query.
	RpcLeaderboard = "leaderboard"

	// MatchNameTicTacToe is the authoritative match handler name registered with Nakama.
	MatchNameTicTacToe = "tictactoe_match"
)

// Op codes for match data messages. One payload struct exists per op code;
// payloads are JSON, matching what the web client decodes.
const (
	// Server -> Client
	OpStart    int64 = 1
	OpUpdate   int64 = 2
	OpDone     int64 = 3
	OpRejected int64 = 5

	// Client -> Server
	OpMove int64 = 4
)

package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"time"

	"tictactoe/internal/app"
	"tictactoe/internal/config"
	"tictactoe/internal/domain"
	"tictactoe/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for one match instance.
// Nakama delivers all events for a match (joins, messages, ticks) to one
// handler sequentially, so no locking is needed anywhere in here.
type MatchState struct {
	Presences map[string]runtime.Presence // userId -> presence for targeted messaging
	Joined    []string                    // participants in join order; the first plays X
	Match     *domain.Match               // authoritative game state
	App       *app.Service                // match use-cases
	Clock     app.TurnClock               // single pending turn deadline
	Stats     ports.StatsStore            // leaderboard record store
	Tick      int64                       // current match tick

	TurnDuration   time.Duration // per-turn budget
	EndLingerTicks int64         // ticks a finished match is kept before release
	FinishedTick   int64         // tick the match finished at, 0 while running
}

func newMatchHandler() runtime.Match {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	state := &MatchState{
		Presences:      make(map[string]runtime.Presence),
		Match:          domain.NewMatch(),
		App:            app.NewService(),
		Stats:          NewNakamaStatsAdapter(nk),
		TurnDuration:   time.Duration(config.TurnDuration()) * time.Second,
		EndLingerTicks: int64(config.EndLinger()),
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["tictactoe_turn_duration_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil && i > 0 {
			state.TurnDuration = time.Duration(i) * time.Second
		}
	}

	labelBytes, err := json.Marshal(Label{Open: true, Game: "tictactoe"})
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1 // one tick per second; the clock counts ticks
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if matchState.Match.Phase == domain.PhaseFinished {
		return state, false, "match over"
	}

	// Rejoin of a current participant refreshes the presence.
	userID := presence.GetUserId()
	for _, joined := range matchState.Joined {
		if joined == userID {
			return state, true, ""
		}
	}

	if len(matchState.Joined) >= app.ParticipantsPerMatch {
		return state, false, "match full"
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}
	matchState.Tick = tick

	for _, p := range presences {
		userID := p.GetUserId()
		matchState.Presences[userID] = p

		known := false
		for _, joined := range matchState.Joined {
			if joined == userID {
				known = true
				break
			}
		}
		if known {
			continue
		}

		if len(matchState.Joined) >= app.ParticipantsPerMatch {
			logger.Warn("MatchJoin: User %s joined but the match is full.", userID)
			continue
		}
		matchState.Joined = append(matchState.Joined, userID)
	}

	// Both participants present: activate the match. Join order decides the
	// marks, so assignment is deterministic.
	if matchState.Match.Phase == domain.PhaseWaiting && len(matchState.Joined) == app.ParticipantsPerMatch {
		m, events, err := matchState.App.Start(matchState.Joined)
		if err != nil {
			logger.Error("MatchJoin: Failed to start match: %v", err)
			return matchState
		}
		matchState.Match = m

		for _, ev := range events {
			mh.dispatchEvent(ctx, matchState, dispatcher, logger, ev)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave treats a participant leaving a live match as a forfeit,
// the same terminal path as a turn timeout.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}
	matchState.Tick = tick

	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)

		switch matchState.Match.Phase {
		case domain.PhaseWaiting:
			// Not paired yet; free the slot and keep waiting.
			for i, joined := range matchState.Joined {
				if joined == userID {
					matchState.Joined = append(matchState.Joined[:i], matchState.Joined[i+1:]...)
					break
				}
			}
		case domain.PhaseActive:
			events, err := matchState.App.Forfeit(matchState.Match, userID)
			if err != nil {
				logger.Error("MatchLeave: Forfeit failed for user %s: %v", userID, err)
				continue
			}
			if len(events) > 0 {
				logger.Info("MatchLeave: User %s left an active match and forfeits.", userID)
			}
			for _, ev := range events {
				mh.dispatchEvent(ctx, matchState, dispatcher, logger, ev)
			}
		}
	}

	if len(matchState.Presences) == 0 {
		logger.Debug("MatchLeave: Terminating empty match.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}
	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpMove:
			mh.handleMove(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode %d from user %s", msg.GetOpCode(), msg.GetUserId())
		}
	}

	// The deadline shares the sequential event stream with moves: a move
	// processed above has already advanced or finished the match, so a stale
	// expiry falls through the phase check inside ExpireTurn.
	if matchState.Clock.Expired(tick) {
		events, err := matchState.App.ExpireTurn(matchState.Match)
		if err != nil {
			logger.Error("MatchLoop: ExpireTurn failed: %v", err)
		}
		if len(events) > 0 {
			logger.Info("MatchLoop: Turn deadline elapsed, mover forfeits.")
		}
		for _, ev := range events {
			mh.dispatchEvent(ctx, matchState, dispatcher, logger, ev)
		}
	}

	// Release a finished match after the linger window.
	if matchState.FinishedTick > 0 && tick-matchState.FinishedTick >= matchState.EndLingerTicks {
		return nil
	}

	return matchState
}

// handleMove applies a client move submission. Malformed payloads are ignored
// after logging; validation failures are reported to the sender only.
func (mh *matchHandler) handleMove(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	var move MoveMessage
	if err := json.Unmarshal(msg.GetData(), &move); err != nil {
		logger.Warn("handleMove: Malformed move payload from %s: %v", senderID, err)
		return
	}

	events, err := state.App.SubmitMove(state.Match, senderID, move.Position)
	if err != nil {
		logger.Warn("handleMove: Rejected move from %s (cell %d): %v", senderID, move.Position, err)
		mh.sendRejected(state, dispatcher, logger, senderID)
		return
	}

	for _, ev := range events {
		mh.dispatchEvent(ctx, state, dispatcher, logger, ev)
	}
}

// dispatchEvent converts an app event to its wire message, manages the turn
// clock, and records stats on termination.
func (mh *matchHandler) dispatchEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	switch ev.Kind {
	case app.EventMatchStarted:
		p := ev.Payload.(app.MatchStartedPayload)
		state.Clock.Arm(state.Tick, time.Now(), state.TurnDuration)
		mh.broadcast(dispatcher, logger, OpStart, StartMessage{
			Board:    wireBoard(p.Board),
			Mark:     wireMark(p.Turn),
			Marks:    wireMarks(p.Marks),
			Deadline: state.Clock.Deadline(),
		}, nil)

	case app.EventBoardUpdated:
		p := ev.Payload.(app.BoardUpdatedPayload)
		state.Clock.Arm(state.Tick, time.Now(), state.TurnDuration)
		mh.broadcast(dispatcher, logger, OpUpdate, UpdateMessage{
			Board:    wireBoard(p.Board),
			Mark:     wireMark(p.Turn),
			Deadline: state.Clock.Deadline(),
		}, nil)

	case app.EventMatchEnded:
		p := ev.Payload.(app.MatchEndedPayload)
		state.Clock.Cancel()
		state.FinishedTick = state.Tick
		mh.broadcast(dispatcher, logger, OpDone, DoneMessage{
			Board:           wireBoard(p.Board),
			Winner:          wireWinner(p.Winner, p.Draw),
			WinnerPositions: p.Line,
		}, nil)

		// Leaderboard durability is best-effort; the adapter already retried.
		for userID, outcome := range p.Results {
			if err := state.Stats.RecordResult(ctx, userID, outcome); err != nil {
				logger.Error("dispatchEvent: Dropping stats update for %s: %v", userID, err)
			}
		}

	default:
		logger.Warn("dispatchEvent: Unknown event kind: %v", ev.Kind)
	}
}

// sendRejected notifies the offending participant only.
func (mh *matchHandler) sendRejected(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string) {
	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("sendRejected: Presence not found for %s", userID)
		return
	}
	mh.broadcast(dispatcher, logger, OpRejected, RejectedMessage{}, []runtime.Presence{presence})
}

func (mh *matchHandler) broadcast(dispatcher runtime.MatchDispatcher, logger runtime.Logger, opCode int64, payload any, recipients []runtime.Presence) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("broadcast: Failed to marshal opcode %d payload: %v", opCode, err)
		return
	}
	if err := dispatcher.BroadcastMessage(opCode, data, recipients, nil, true); err != nil {
		logger.Error("broadcast: Failed to send opcode %d: %v", opCode, err)
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	open := state.Match.Phase == domain.PhaseWaiting && len(state.Joined) < app.ParticipantsPerMatch
	labelBytes, err := json.Marshal(Label{Open: open, Game: "tictactoe"})
	if err != nil {
		logger.Error("updateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("updateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}

package app

import (
	"errors"

	"tictactoe/internal/domain"
	"tictactoe/internal/ports"
)

// ParticipantsPerMatch is the exact number of players a match needs.
// Centralized so the handler and tests share one definition.
const ParticipantsPerMatch = 2

var (
	ErrWrongParticipantCount = errors.New("match requires exactly two participants")
	ErrDuplicateParticipant  = errors.New("participants must be distinct")
)

// Service contains the match use-cases operating on domain state.
// It holds no state of its own; each match owns one *domain.Match and all
// calls for that match arrive on a single sequential stream.
type Service struct{}

// NewService constructs the match service.
func NewService() *Service {
	return &Service{}
}

// Start activates a match for two already-paired participants.
// Marks are assigned deterministically: the first participant plays X and
// moves first. Emits a single MatchStarted event.
func (s *Service) Start(participants []string) (*domain.Match, []Event, error) {
	if len(participants) != ParticipantsPerMatch {
		return nil, nil, ErrWrongParticipantCount
	}
	if participants[0] == participants[1] || participants[0] == "" || participants[1] == "" {
		return nil, nil, ErrDuplicateParticipant
	}

	m := domain.NewMatch()
	m.Marks[participants[0]] = domain.MarkX
	m.Marks[participants[1]] = domain.MarkO
	m.Phase = domain.PhaseActive
	m.Turn = domain.MarkX

	events := []Event{{
		Kind: EventMatchStarted,
		Payload: MatchStartedPayload{
			Board: m.Board,
			Turn:  m.Turn,
			Marks: m.Marks,
		},
	}}
	return m, events, nil
}

// SubmitMove validates and applies a move for the given user.
// Validation failures return a domain sentinel error and leave the match
// untouched; the caller reports them to the offender only. An accepted move
// either ends the match or passes the turn to the opponent.
func (s *Service) SubmitMove(m *domain.Match, userID string, cell int) ([]Event, error) {
	if err := domain.ValidateMove(m, userID, cell); err != nil {
		return nil, err
	}

	m.Board[cell] = m.Marks[userID]

	verdict := domain.Evaluate(m.Board)
	if verdict.Finished {
		return s.finish(m, verdict), nil
	}

	m.Turn = m.Turn.Other()
	return []Event{{
		Kind:    EventBoardUpdated,
		Payload: BoardUpdatedPayload{Board: m.Board, Turn: m.Turn},
	}}, nil
}

// ExpireTurn resolves a turn deadline that elapsed without a move: the
// participant on turn forfeits. A match that is no longer active is left
// untouched; a move processed before the expiry always wins that race.
func (s *Service) ExpireTurn(m *domain.Match) ([]Event, error) {
	if m.Phase != domain.PhaseActive {
		return nil, nil
	}
	return s.forfeitMark(m, m.Turn), nil
}

// Forfeit ends a non-finished match against the named participant, regardless
// of whose turn it is. Used for disconnects. Unknown users and already
// finished matches are a no-op.
func (s *Service) Forfeit(m *domain.Match, userID string) ([]Event, error) {
	if m.Phase == domain.PhaseFinished {
		return nil, nil
	}
	mark, ok := m.Marks[userID]
	if !ok {
		return nil, nil
	}
	return s.forfeitMark(m, mark), nil
}

// forfeitMark finishes the match with the given mark as the loser.
// A forfeit has no winning line.
func (s *Service) forfeitMark(m *domain.Match, loser domain.Mark) []Event {
	return s.finish(m, domain.Verdict{
		Finished: true,
		Winner:   loser.Other(),
	})
}

func (s *Service) finish(m *domain.Match, verdict domain.Verdict) []Event {
	m.Phase = domain.PhaseFinished
	m.Winner = verdict.Winner
	m.Draw = verdict.Draw
	m.Line = verdict.Line

	results := make(map[string]ports.Outcome, len(m.Marks))
	if !verdict.Draw {
		for userID, mark := range m.Marks {
			if mark == verdict.Winner {
				results[userID] = ports.OutcomeWin
			} else {
				results[userID] = ports.OutcomeLoss
			}
		}
	}

	return []Event{{
		Kind: EventMatchEnded,
		Payload: MatchEndedPayload{
			Board:   m.Board,
			Winner:  m.Winner,
			Draw:    m.Draw,
			Line:    m.Line,
			Results: results,
		},
	}}
}

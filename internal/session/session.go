// Package session coordinates matchmaking, the per-room round lifecycle, and
// disconnect reconciliation. Operations never touch room state directly; all
// mutation goes through the store's conditional writes, and each operation
// returns the broadcasts it wants delivered so the transport layer stays out
// of the game logic.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wordduel/word-duel-backend/internal/game"
	"github.com/wordduel/word-duel-backend/internal/store"
	"github.com/wordduel/word-duel-backend/internal/types"
	"github.com/wordduel/word-duel-backend/internal/words"
)

// maxJoinAttempts bounds the rescan loop when a seat grab loses a race. A
// freshly created room is never contended, so falling through to creation
// always terminates.
const maxJoinAttempts = 4

// Intent is one broadcast an operation wants delivered: to a whole room when
// RoomID is set, to a single connection when ConnID is set.
type Intent struct {
	Event  string
	RoomID string
	ConnID string
	Data   any
}

func ToRoom(roomID, event string, data any) Intent {
	return Intent{Event: event, RoomID: roomID, Data: data}
}

func ToConn(connID, event string, data any) Intent {
	return Intent{Event: event, ConnID: connID, Data: data}
}

// WordProvider is the external word/meaning source used by round
// initialization.
type WordProvider interface {
	FetchWordAndMeaning(ctx context.Context) (words.WordInfo, error)
}

type Service struct {
	store    *store.Store
	provider WordProvider
	logger   *zap.Logger
}

func NewService(st *store.Store, provider WordProvider, logger *zap.Logger) *Service {
	return &Service{store: st, provider: provider, logger: logger}
}

// Match is the outcome of a successful RequestMatch.
type Match struct {
	Room    game.Room
	Joined  bool
	Created bool
}

// RequestMatch seats the player in the earliest open room, creating a fresh
// one when none is available. A username already in play anywhere is
// rejected with a "username taken" reply to the requester and no state
// change.
func (s *Service) RequestMatch(username, connID string) (Match, []Intent, error) {
	if s.store.UsernameInPlay(username) {
		s.logger.Info("username already in play",
			zap.String("username", username), zap.String("conn_id", connID))
		return Match{}, []Intent{ToConn(connID, types.EvtUsernameTaken, nil)}, nil
	}

	player := game.NewPlayer(connID, username)
	for attempt := 0; attempt < maxJoinAttempts; attempt++ {
		open, ok := s.store.FindOpenRoom()
		if !ok {
			break
		}
		snap, err := s.store.ConditionalAddPlayer(open.ID, player)
		if err != nil {
			// Lost the last seat or the room vanished; rescan.
			continue
		}
		s.logger.Info("player joined room",
			zap.String("room_id", snap.ID), zap.String("username", username))
		return Match{Room: snap, Joined: true}, joinedIntents(snap), nil
	}

	room := game.NewRoom(uuid.NewString(), player)
	snap, err := s.store.CreateIfAbsent(room)
	if err != nil {
		return Match{}, nil, fmt.Errorf("creating room for %s: %w", username, err)
	}
	s.logger.Info("room created",
		zap.String("room_id", snap.ID), zap.String("username", username))
	return Match{Room: snap, Joined: true, Created: true}, joinedIntents(snap), nil
}

func joinedIntents(r game.Room) []Intent {
	return []Intent{ToRoom(r.ID, types.EvtRoomJoined, types.RoomJoined{
		RoomID:      r.ID,
		Players:     r.Players,
		Initializer: r.Initializer(),
	})}
}

// InitializeRound fetches a word for the room and records its length. The
// fetchingWord flag gates the whole sequence: of any number of concurrent
// callers exactly one performs the fetch, the rest are silent no-ops. If the
// word source fails, the gate is released and the room is told, so a retry
// stays possible. If the room empties while the fetch is in flight, the
// result is discarded.
func (s *Service) InitializeRound(ctx context.Context, roomID string) ([]Intent, error) {
	_, err := s.store.ConditionalUpdate(roomID,
		func(r game.Room) bool { return !r.FetchingWord },
		func(r *game.Room) { r.FetchingWord = true })
	if err != nil {
		// Another fetch holds the gate, or the room is gone.
		return nil, nil
	}

	info, err := s.provider.FetchWordAndMeaning(ctx)
	if err != nil {
		if _, uerr := s.store.ConditionalUpdate(roomID,
			func(r game.Room) bool { return r.FetchingWord },
			func(r *game.Room) { r.FetchingWord = false }); uerr != nil {
			// The room vanished or was already reset; the gate is gone with it.
			if !errors.Is(uerr, store.ErrNotFound) && !errors.Is(uerr, store.ErrConflict) {
				return nil, uerr
			}
		}
		intents := []Intent{ToRoom(roomID, types.EvtWordError, types.WordError{RoomID: roomID})}
		return intents, fmt.Errorf("initializing round for room %s: %w", roomID, err)
	}

	snap, err := s.store.ConditionalUpdate(roomID,
		func(r game.Room) bool { return r.FetchingWord },
		func(r *game.Room) {
			r.TotalLetters = len(info.Word)
			r.FetchingWord = false
		})
	if err != nil {
		s.logger.Info("discarding word for vanished or reset room",
			zap.String("room_id", roomID))
		return nil, nil
	}
	return []Intent{ToRoom(roomID, types.EvtGetWord, types.GetWord{WordInfo: info, Room: snap})}, nil
}

// ApplyGuess credits a correct guess or burns a try for the named player and
// rebroadcasts the scoreboard. Tries may go negative here; exhaustion rules
// live with the guess validator on the client side of the contract.
func (s *Service) ApplyGuess(roomID, username string, correct bool, correctGuessedLetters int) ([]Intent, error) {
	snap, err := s.store.ConditionalUpdate(roomID,
		func(game.Room) bool { return true },
		func(r *game.Room) {
			for i := range r.Players {
				if r.Players[i].Username != username {
					continue
				}
				if correct {
					r.Players[i].Score.CorrectGuesses += correctGuessedLetters
				} else {
					r.Players[i].Score.RemainingTries--
				}
			}
		})
	if err != nil {
		return nil, nil
	}
	return []Intent{ToRoom(roomID, types.EvtUpdateScoreboard, types.UpdateScoreboard{Room: snap})}, nil
}

// CastPlayAgainVote records a play-again vote. The first vote parks the room
// with a "wait" broadcast; a second vote from a different username resets the
// round and broadcasts "play". The same voter voting twice changes nothing.
// Both players must opt in, in either order.
func (s *Service) CastPlayAgainVote(roomID, username string) ([]Intent, error) {
	var info string
	snap, err := s.store.ConditionalUpdate(roomID,
		func(r game.Room) bool { return r.HasPlayer(username) },
		func(r *game.Room) {
			switch {
			case len(r.PlayAgainVotes) == 0:
				r.PlayAgainVotes = append(r.PlayAgainVotes, username)
				info = "wait"
			case len(r.PlayAgainVotes) == 1 && r.PlayAgainVotes[0] != username:
				r.ResetRound()
				info = "play"
			default:
				info = ""
			}
		})
	if err != nil || info == "" {
		return nil, nil
	}
	return []Intent{ToRoom(roomID, types.EvtPlayAgainResult, types.PlayAgainResult{
		Info:        info,
		Room:        snap,
		Initializer: snap.Initializer(),
	})}, nil
}

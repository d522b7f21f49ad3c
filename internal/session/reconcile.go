package session

import (
	"slices"

	"go.uber.org/zap"

	"github.com/wordduel/word-duel-backend/internal/game"
	"github.com/wordduel/word-duel-backend/internal/types"
)

// Matcher identifies the departing player: by connection id when the
// transport dropped, or by username within an explicit room on a graceful
// leave.
type Matcher struct {
	ConnID   string
	RoomID   string
	Username string
}

func ByConnection(connID string) Matcher {
	return Matcher{ConnID: connID}
}

func ByUsername(roomID, username string) Matcher {
	return Matcher{RoomID: roomID, Username: username}
}

func (m Matcher) matches(p game.Player) bool {
	if m.ConnID != "" {
		return p.ConnID == m.ConnID
	}
	return p.Username == m.Username
}

// Reconcile removes the matching player from whichever room holds them. In
// the same atomic step the room's votes are cleared and its round state is
// zeroed, so the survivor never sees a stale vote or a wedged fetch gate.
// An emptied room is deleted; otherwise the survivors are told who left.
//
// Running this twice for the same departure is safe: the second pass finds
// no matching player and does nothing. A graceful "leave room" followed by
// the transport's own disconnect signal is the common case.
func (s *Service) Reconcile(m Matcher) []Intent {
	roomID := m.RoomID
	if m.ConnID != "" {
		room, ok := s.store.FindRoomByConn(m.ConnID)
		if !ok {
			return nil
		}
		roomID = room.ID
	}
	if roomID == "" {
		return nil
	}

	var removed game.Player
	snap, err := s.store.ConditionalUpdate(roomID,
		func(r game.Room) bool { return slices.ContainsFunc(r.Players, m.matches) },
		func(r *game.Room) {
			r.PlayAgainVotes = nil
			r.TotalLetters = 0
			r.FetchingWord = false
			for i, p := range r.Players {
				if m.matches(p) {
					removed = p
					r.Players = slices.Delete(r.Players, i, i+1)
					break
				}
			}
		})
	if err != nil {
		// Already reconciled, or racing a deletion. Nothing left to do.
		return nil
	}

	if len(snap.Players) == 0 {
		s.store.DeleteIfEmpty(roomID)
		s.logger.Info("room deleted",
			zap.String("room_id", roomID), zap.String("username", removed.Username))
		return nil
	}

	s.logger.Info("player left room",
		zap.String("room_id", roomID), zap.String("username", removed.Username))
	return []Intent{ToRoom(roomID, types.EvtUserLeft, types.UserLeft{
		RoomID:   roomID,
		Username: removed.Username,
		Room:     snap,
	})}
}

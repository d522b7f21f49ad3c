// Package store is the single source of truth for room state. Every write is
// predicate-gated and atomic: callers that lose a race get ErrConflict and a
// chance to retry, never a half-applied room. No other component keeps an
// authoritative copy of a room.
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/wordduel/word-duel-backend/internal/game"
)

var (
	// ErrConflict means the write predicate failed at commit time.
	ErrConflict = errors.New("store: conditional update conflict")
	// ErrNotFound means the room vanished between read and write.
	ErrNotFound = errors.New("store: room not found")
	// ErrRoomExists means CreateIfAbsent hit an existing room id.
	ErrRoomExists = errors.New("store: room already exists")
)

type entry struct {
	seq  uint64 // creation order, for the earliest-open-room tie-break
	room game.Room
}

// Store holds all rooms behind a single mutex. Operations hand out deep
// copies only; live room records never escape the critical section.
type Store struct {
	mu    sync.Mutex
	rooms map[string]*entry
	seq   uint64
}

func New() *Store {
	return &Store{rooms: make(map[string]*entry)}
}

// CreateIfAbsent inserts the room and returns its snapshot, or ErrRoomExists
// if the id is already taken. Id uniqueness is enforced here, not by the
// generator.
func (s *Store) CreateIfAbsent(room game.Room) (game.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[room.ID]; ok {
		return game.Room{}, ErrRoomExists
	}
	s.seq++
	s.rooms[room.ID] = &entry{seq: s.seq, room: room.Clone()}
	return room.Clone(), nil
}

// FindOpenRoom returns the earliest-created room with exactly one player.
func (s *Store) FindOpenRoom() (game.Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var best *entry
	for _, e := range s.rooms {
		if !e.room.Open() {
			continue
		}
		if best == nil || e.seq < best.seq {
			best = e
		}
	}
	if best == nil {
		return game.Room{}, false
	}
	return best.room.Clone(), true
}

// UsernameInPlay reports whether any stored room holds a player with this
// username. A name already in play anywhere is rejected by matchmaking.
func (s *Store) UsernameInPlay(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.rooms {
		if e.room.HasPlayer(username) {
			return true
		}
	}
	return false
}

// FindRoomByConn locates the room holding the given connection, if any.
func (s *Store) FindRoomByConn(connID string) (game.Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.rooms {
		if _, ok := e.room.PlayerByConn(connID); ok {
			return e.room.Clone(), true
		}
	}
	return game.Room{}, false
}

// ConditionalAddPlayer seats the player if the room still has a free slot
// and the username is not already taken inside it. A lost race returns
// ErrConflict so the matchmaker can rescan.
func (s *Store) ConditionalAddPlayer(roomID string, p game.Player) (game.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.rooms[roomID]
	if !ok {
		return game.Room{}, ErrNotFound
	}
	if len(e.room.Players) >= 2 || e.room.HasPlayer(p.Username) {
		return game.Room{}, ErrConflict
	}
	e.room.Players = append(e.room.Players, p)
	mustHoldInvariants(e.room)
	return e.room.Clone(), nil
}

// ConditionalUpdate applies mutate to the room iff pred holds, all within one
// critical section. pred sees a snapshot; mutate gets the live record and
// must leave it consistent. Returns the post-mutation snapshot.
func (s *Store) ConditionalUpdate(roomID string, pred func(game.Room) bool, mutate func(*game.Room)) (game.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.rooms[roomID]
	if !ok {
		return game.Room{}, ErrNotFound
	}
	if !pred(e.room.Clone()) {
		return game.Room{}, ErrConflict
	}
	mutate(&e.room)
	mustHoldInvariants(e.room)
	return e.room.Clone(), nil
}

// RemovePlayer drops the first player matching the given predicate. Missing
// room or missing player both come back as ErrNotFound, which reconciliation
// treats as "already done".
func (s *Store) RemovePlayer(roomID string, match func(game.Player) bool) (game.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.rooms[roomID]
	if !ok {
		return game.Room{}, ErrNotFound
	}
	for i, p := range e.room.Players {
		if match(p) {
			e.room.Players = append(e.room.Players[:i], e.room.Players[i+1:]...)
			return e.room.Clone(), nil
		}
	}
	return game.Room{}, ErrNotFound
}

// DeleteIfEmpty removes the room only while it still has no players, so a
// join that raced the reconciler keeps its seat.
func (s *Store) DeleteIfEmpty(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.rooms[roomID]; ok && len(e.room.Players) == 0 {
		delete(s.rooms, roomID)
	}
}

// Delete removes the room unconditionally.
func (s *Store) Delete(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, roomID)
}

// Get returns a snapshot of one room.
func (s *Store) Get(roomID string) (game.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.rooms[roomID]
	if !ok {
		return game.Room{}, ErrNotFound
	}
	return e.room.Clone(), nil
}

// Len reports the number of stored rooms.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}

// mustHoldInvariants panics if a committed mutation broke a room invariant.
// Reaching this is a bug in the caller's mutation, not a runtime condition to
// repair.
func mustHoldInvariants(r game.Room) {
	if len(r.Players) > 2 {
		panic(fmt.Sprintf("store: room %s holds %d players", r.ID, len(r.Players)))
	}
	names := make(map[string]bool, len(r.Players))
	for _, p := range r.Players {
		if names[p.Username] {
			panic(fmt.Sprintf("store: room %s holds username %s twice", r.ID, p.Username))
		}
		names[p.Username] = true
	}
	for _, v := range r.PlayAgainVotes {
		if !names[v] {
			panic(fmt.Sprintf("store: room %s holds vote from non-member %s", r.ID, v))
		}
	}
}

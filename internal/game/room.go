package game

import "slices"

// InitialTries is the number of wrong guesses a player starts each round with.
const InitialTries = 6

type Score struct {
	CorrectGuesses int `json:"correctGuesses"`
	RemainingTries int `json:"remainingTries"`
}

// NewScore returns the per-round starting score.
func NewScore() Score {
	return Score{CorrectGuesses: 0, RemainingTries: InitialTries}
}

// Player is one seat in a room. ConnID is the live connection handle;
// Username is unique within the room, not globally.
type Player struct {
	ConnID   string `json:"id"`
	Username string `json:"username"`
	Score    Score  `json:"score"`
}

func NewPlayer(connID, username string) Player {
	return Player{ConnID: connID, Username: username, Score: NewScore()}
}

// Room pairs up to two players around one word-guessing round.
//
// TotalLetters is 0 until a round has been initialized. FetchingWord is the
// mutual-exclusion flag for round initialization: at most one word fetch may
// be outstanding per room. PlayAgainVotes holds usernames of current players
// only and is cleared whenever membership changes.
type Room struct {
	ID             string   `json:"roomId"`
	Players        []Player `json:"players"`
	TotalLetters   int      `json:"totalLetters"`
	FetchingWord   bool     `json:"fetchingWord"`
	PlayAgainVotes []string `json:"playAgain"`
}

func NewRoom(id string, first Player) Room {
	return Room{ID: id, Players: []Player{first}}
}

// Clone deep-copies the room so callers can never mutate stored state
// through a returned snapshot.
func (r Room) Clone() Room {
	out := r
	out.Players = slices.Clone(r.Players)
	out.PlayAgainVotes = slices.Clone(r.PlayAgainVotes)
	return out
}

// Open reports whether the room has exactly one player and can be matched.
func (r Room) Open() bool {
	return len(r.Players) == 1
}

func (r Room) HasPlayer(username string) bool {
	return slices.ContainsFunc(r.Players, func(p Player) bool {
		return p.Username == username
	})
}

func (r Room) PlayerByConn(connID string) (Player, bool) {
	for _, p := range r.Players {
		if p.ConnID == connID {
			return p, true
		}
	}
	return Player{}, false
}

// Initializer is the username of the room's first seat. Joiners are told who
// it is so the client can decide who drives round setup.
func (r Room) Initializer() string {
	if len(r.Players) == 0 {
		return ""
	}
	return r.Players[0].Username
}

// ResetRound returns the room to its pre-round state: no votes, no word,
// fetch gate released, every score back to its starting value. Membership is
// untouched.
func (r *Room) ResetRound() {
	r.PlayAgainVotes = nil
	r.TotalLetters = 0
	r.FetchingWord = false
	for i := range r.Players {
		r.Players[i].Score = NewScore()
	}
}

package game

import "testing"

func TestCloneIsIndependent(t *testing.T) {
	r := NewRoom("r1", NewPlayer("c1", "alice"))
	r.Players = append(r.Players, NewPlayer("c2", "bob"))
	r.PlayAgainVotes = []string{"alice"}

	c := r.Clone()
	c.Players[0].Username = "mallory"
	c.PlayAgainVotes[0] = "mallory"

	if r.Players[0].Username != "alice" {
		t.Fatalf("clone mutated original players: %+v", r.Players)
	}
	if r.PlayAgainVotes[0] != "alice" {
		t.Fatalf("clone mutated original votes: %+v", r.PlayAgainVotes)
	}
}

func TestResetRound(t *testing.T) {
	r := NewRoom("r1", NewPlayer("c1", "alice"))
	r.Players = append(r.Players, NewPlayer("c2", "bob"))
	r.Players[0].Score = Score{CorrectGuesses: 4, RemainingTries: 1}
	r.Players[1].Score = Score{CorrectGuesses: 2, RemainingTries: 0}
	r.TotalLetters = 7
	r.FetchingWord = true
	r.PlayAgainVotes = []string{"alice", "bob"}

	r.ResetRound()

	if r.TotalLetters != 0 || r.FetchingWord || len(r.PlayAgainVotes) != 0 {
		t.Fatalf("round state not reset: %+v", r)
	}
	for _, p := range r.Players {
		if p.Score != NewScore() {
			t.Fatalf("score not reset for %s: %+v", p.Username, p.Score)
		}
	}
	if len(r.Players) != 2 {
		t.Fatalf("reset must not touch membership, got %d players", len(r.Players))
	}
}

func TestInitializerIsFirstSeat(t *testing.T) {
	r := NewRoom("r1", NewPlayer("c1", "alice"))
	if got := r.Initializer(); got != "alice" {
		t.Fatalf("want alice, got %q", got)
	}
	r.Players = append(r.Players, NewPlayer("c2", "bob"))
	if got := r.Initializer(); got != "alice" {
		t.Fatalf("initializer must stay the first seat, got %q", got)
	}
	empty := Room{ID: "r2"}
	if got := empty.Initializer(); got != "" {
		t.Fatalf("empty room has no initializer, got %q", got)
	}
}

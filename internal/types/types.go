package types

import (
	"encoding/json"

	"github.com/wordduel/word-duel-backend/internal/game"
	"github.com/wordduel/word-duel-backend/internal/words"
)

// Inbound event names.
const (
	EvtSetUsername    = "set username"
	EvtInitializeGame = "initialize game"
	EvtHandleGuess    = "handle guess"
	EvtPlayAgain      = "play again"
	EvtLeaveRoom      = "leave room"
)

// Outbound event names.
const (
	EvtUsernameTaken    = "username taken"
	EvtRoomJoined       = "room joined"
	EvtGetWord          = "get word"
	EvtWordError        = "word error"
	EvtUpdateScoreboard = "update scoreboard"
	EvtPlayAgainResult  = "play again"
	EvtUserLeft         = "user left"
	EvtError            = "error"
)

// ClientMessage is the envelope every inbound frame must carry. Data is
// decoded per event after the envelope is validated.
type ClientMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ServerMessage is the envelope for every outbound frame.
type ServerMessage struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Client -> Server payloads.

type SetUsername struct {
	Username string `json:"username"`
}

type InitializeGame struct {
	RoomID string `json:"roomId"`
}

type HandleGuess struct {
	RoomID                string `json:"roomId"`
	Username              string `json:"username"`
	Correct               bool   `json:"correct"`
	CorrectGuessedLetters int    `json:"correctGuessedLetters"`
}

type PlayAgain struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

type LeaveRoom struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

// Server -> Client payloads.

type RoomJoined struct {
	RoomID      string        `json:"roomId"`
	Players     []game.Player `json:"players"`
	Initializer string        `json:"initializer,omitempty"`
}

type GetWord struct {
	WordInfo words.WordInfo `json:"wordInfo"`
	Room     game.Room      `json:"room"`
}

type WordError struct {
	RoomID string `json:"roomId"`
}

type UpdateScoreboard struct {
	Room game.Room `json:"room"`
}

// PlayAgainResult carries Info "wait" after the first vote and "play" once
// both players have voted and the room has been reset.
type PlayAgainResult struct {
	Info        string    `json:"info"`
	Room        game.Room `json:"room"`
	Initializer string    `json:"initializer,omitempty"`
}

type UserLeft struct {
	RoomID   string    `json:"roomId"`
	Username string    `json:"username,omitempty"`
	Room     game.Room `json:"room"`
}

type ErrorMessage struct {
	Message string `json:"message"`
}

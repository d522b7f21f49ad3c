package types

// Client -> Server (all frames are {"event": string, "data": object})
//
// "set username":
//   username: string
//
// "initialize game":
//   roomId: string
//
// "handle guess":
//   roomId: string
//   username: string
//   correct: boolean
//   correctGuessedLetters: number
//
// "play again":
//   roomId: string
//   username: string
//
// "leave room":
//   roomId: string
//   username: string

// Server -> Client
//
// "username taken": {} // requester only; the name is already in play somewhere
//
// "room joined":
//   roomId: string
//   players: Player[] // each Player has id|username|score{correctGuesses, remainingTries}
//   initializer: string // username of the room's first seat
//
// "get word":
//   wordInfo: { word: string, meaning: Meaning[] } // meaning may be empty
//   room: Room
//
// "word error":
//   roomId: string // word source was unreachable; the fetch gate is released
//
// "update scoreboard":
//   room: Room
//
// "play again":
//   info: "wait" | "play"
//   room: Room
//   initializer: string
//
// "user left":
//   roomId: string
//   username: string // omitted when only the connection id was known
//   room: Room // surviving membership
//
// "error":
//   message: string // requester only; malformed or unknown frame

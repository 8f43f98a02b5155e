package nakama

const (
	// RpcNewMatch is the Nakama RPC id clients call to create a match against the computer.
	RpcNewMatch = "new_match"

	// MatchNameNumberGame is the authoritative match handler name registered with Nakama.
	MatchNameNumberGame = "numbergame_match"

	// MatchLabelGame is the value of the "game" key in the match label.
	MatchLabelGame = "numbergame"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartMatch int64 = 1
	OpPickNumber int64 = 2

	// Server -> Client events
	OpMatchStarted int64 = 101
	OpNumberPicked int64 = 102
	OpMatchEnded   int64 = 103
	OpMatchError   int64 = 104
)

const (
	tickRate = 1

	// Paths are relative to the Nakama data directory.
	gameConfigPath    = "data/game_config.json"
	botIdentitiesPath = "data/bot_identities.json"
)

// Error codes carried in OpMatchError payloads.
const (
	errCodeBadRequest   = 400
	errCodeRejectedMove = 409
)

package app

// Message log lines shared by the match driver and the adapter.
const (
	NoteMatchStarted = "The game has started."
	NoteMatchOver    = "The game is over. "
	noteHumanPick    = "I pick %d."
)

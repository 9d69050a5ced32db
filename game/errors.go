package game

type Category string

const (
	ConfigError        Category = "config"
	VotingError        Category = "voting"
	TeamError          Category = "team"
	AssassinationError Category = "assassination"
	LadyError          Category = "lady"
	LifecycleError     Category = "lifecycle"
)

// Error is a rejected request. It never leaves the game in a changed state.
type Error struct {
	Category Category
	Code     string
	msg      string
}

func (e *Error) Error() string {
	return e.msg
}

func newError(category Category, code, msg string) *Error {
	return &Error{Category: category, Code: code, msg: msg}
}

var (
	ErrTooManyPlayers  = newError(ConfigError, "too_many_players", "the table is full")
	ErrNotStartable    = newError(ConfigError, "not_startable", "need 5 to 10 players and at most players-2 special roles")
	ErrUnbalancedRoles = newError(ConfigError, "unbalanced_roles", "too many special roles for one side")

	ErrWrongPhase     = newError(VotingError, "wrong_phase", "not allowed in the current phase")
	ErrAlreadyVoted   = newError(VotingError, "already_voted", "player already voted")
	ErrNotOnTeam      = newError(VotingError, "not_on_team", "player is not on the quest team")
	ErrFailNotAllowed = newError(VotingError, "fail_not_allowed", "loyal servants of Arthur must succeed quests")

	ErrWrongLeader   = newError(TeamError, "wrong_leader", "only the leader may propose a team")
	ErrWrongSize     = newError(TeamError, "wrong_size", "wrong number of players for this quest")
	ErrUnknownPlayer = newError(TeamError, "unknown_player", "player is not in this game")

	ErrNotAssassin   = newError(AssassinationError, "not_assassin", "only the Assassin may name Merlin")
	ErrInvalidTarget = newError(AssassinationError, "invalid_target", "target must be a good player in this game")

	ErrNotLadyHolder   = newError(LadyError, "not_lady_holder", "only the Lady of the Lake holder may examine")
	ErrAlreadyExamined = newError(LadyError, "already_examined", "player already held or was examined by the Lady of the Lake")

	ErrGameNotStarted  = newError(LifecycleError, "game_not_started", "no game is running")
	ErrGameAlreadyOver = newError(LifecycleError, "game_already_over", "the game is over")
	ErrGameInProgress  = newError(LifecycleError, "game_in_progress", "a game is already running")
)

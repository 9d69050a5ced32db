package game

import "fmt"

const (
	MinPlayers     = 5
	MaxPlayers     = 10
	NumOfRounds    = 5
	MaxRejects     = 5
	questsToWin    = 3
	firstLadyRound = 2
)

// Round is what a single quest demands at a given table size.
type Round struct {
	Players int `json:"players"`
	Fails   int `json:"fails"`
}

type boardConfiguration struct {
	NumOfBadCharacters int
	Rounds             [NumOfRounds]Round
}

var bigTableRounds = [NumOfRounds]Round{{3, 1}, {4, 1}, {4, 1}, {5, 2}, {5, 1}}

var configPerNumOfPlayers = map[int]boardConfiguration{
	5:  {2, [NumOfRounds]Round{{2, 1}, {3, 1}, {2, 1}, {3, 1}, {3, 1}}},
	6:  {2, [NumOfRounds]Round{{2, 1}, {3, 1}, {4, 1}, {3, 1}, {4, 1}}},
	7:  {3, [NumOfRounds]Round{{2, 1}, {3, 1}, {3, 1}, {4, 2}, {4, 1}}},
	8:  {3, bigTableRounds},
	9:  {3, bigTableRounds},
	10: {4, bigTableRounds},
}

func boardFor(players int) boardConfiguration {
	cfg, ok := configPerNumOfPlayers[players]
	if !ok {
		panic(fmt.Sprintf("game: no board for %d players", players))
	}
	return cfg
}

// Rounds returns the five quests for a table of the given size. Sizes outside
// [MinPlayers, MaxPlayers] are a programming error and panic.
func Rounds(players int) [NumOfRounds]Round {
	return boardFor(players).Rounds
}

// RoundFor returns the quest for a 1-based round index.
func RoundFor(players, round int) Round {
	if round < 1 || round > NumOfRounds {
		panic(fmt.Sprintf("game: round %d out of range", round))
	}
	return boardFor(players).Rounds[round-1]
}

// EvilCount is the number of Evil seats dealt at a table of the given size.
func EvilCount(players int) int {
	return boardFor(players).NumOfBadCharacters
}

package game

import (
	"math/rand"
	"sort"

	"github.com/rs/zerolog/log"
)

// Config is the lobby of a guild before a game starts: who joined, which
// special characters are in the deck and whether the Lady of the Lake is used.
type Config struct {
	players       []string
	characters    map[Character]bool
	ladyOfTheLake bool
}

func NewConfig() *Config {
	return &Config{characters: make(map[Character]bool)}
}

func (c *Config) Players() []string {
	return append([]string(nil), c.players...)
}

// Characters returns the enabled special characters in declaration order.
func (c *Config) Characters() []Character {
	chars := make([]Character, 0, len(c.characters))
	for ch := range c.characters {
		chars = append(chars, ch)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })
	return chars
}

func (c *Config) LadyOfTheLake() bool {
	return c.ladyOfTheLake
}

func (c *Config) has(user string) bool {
	for _, p := range c.players {
		if p == user {
			return true
		}
	}
	return false
}

func (c *Config) Join(user string) error {
	if c.has(user) {
		return nil
	}
	if len(c.players) >= MaxPlayers {
		return ErrTooManyPlayers
	}
	c.players = append(c.players, user)
	return nil
}

func (c *Config) Leave(user string) {
	for i, p := range c.players {
		if p == user {
			c.players = append(c.players[:i], c.players[i+1:]...)
			return
		}
	}
}

// AddRoles enables special characters. The two fillers are dealt
// automatically and are ignored here.
func (c *Config) AddRoles(chars ...Character) {
	for _, ch := range chars {
		if ch.valid() && !ch.Mandatory() {
			c.characters[ch] = true
		}
	}
}

func (c *Config) RemoveRoles(chars ...Character) {
	for _, ch := range chars {
		delete(c.characters, ch)
	}
}

func (c *Config) ClearRoles() {
	c.characters = make(map[Character]bool)
}

// ToggleLadyOfTheLake sets the flag when on is given and flips it otherwise.
// It returns the new value.
func (c *Config) ToggleLadyOfTheLake(on *bool) bool {
	if on != nil {
		c.ladyOfTheLake = *on
	} else {
		c.ladyOfTheLake = !c.ladyOfTheLake
	}
	return c.ladyOfTheLake
}

func (c *Config) Startable() bool {
	n := len(c.players)
	return n >= MinPlayers && n <= MaxPlayers && len(c.characters) <= n-2
}

// deck builds the character multiset for the table: the enabled specials
// padded with fillers until the Evil count matches the board.
func (c *Config) deck() ([]Character, error) {
	n := len(c.players)
	evil := EvilCount(n)
	good := n - evil

	deck := make([]Character, 0, n)
	var evilSpecials, goodSpecials int
	for _, ch := range c.Characters() {
		if ch.Faction() == Evil {
			evilSpecials++
		} else {
			goodSpecials++
		}
		deck = append(deck, ch)
	}
	if evilSpecials > evil || goodSpecials > good {
		return nil, ErrUnbalancedRoles
	}
	for i := evilSpecials; i < evil; i++ {
		deck = append(deck, MinionOfMordred)
	}
	for i := goodSpecials; i < good; i++ {
		deck = append(deck, LoyalServant)
	}
	return deck, nil
}

// Start deals the characters and returns the running game. The players and
// the deck are shuffled independently with rng.
func (c *Config) Start(rng *rand.Rand) (*Engine, error) {
	if len(c.players) > MaxPlayers {
		return nil, ErrTooManyPlayers
	}
	if !c.Startable() {
		return nil, ErrNotStartable
	}
	deck, err := c.deck()
	if err != nil {
		return nil, err
	}

	seats := c.Players()
	rng.Shuffle(len(seats), func(i, j int) { seats[i], seats[j] = seats[j], seats[i] })
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	roster := make([]Player, len(seats))
	for i := range seats {
		roster[i] = Player{User: seats[i], Character: deck[i]}
	}
	e := newEngine(roster, c.ladyOfTheLake)
	c.checkDeal(e)
	log.Info().Int("players", len(roster)).Strs("characters", characterNames(c.Characters())).
		Bool("lady", c.ladyOfTheLake).Msg("game started")
	return e, nil
}

// checkDeal panics when the dealt table does not match the lobby. A mismatch
// means the deck builder is broken, not that the request was bad.
func (c *Config) checkDeal(e *Engine) {
	counts := make(map[Character]int)
	evil := 0
	for _, p := range e.players {
		counts[p.Character]++
		if p.Character.Faction() == Evil {
			evil++
		}
	}
	for ch := range c.characters {
		if counts[ch] != 1 {
			log.Panic().Str("character", ch.Name()).Int("dealt", counts[ch]).Msg("special character not dealt exactly once")
		}
	}
	if evil != EvilCount(len(e.players)) {
		log.Panic().Int("evil", evil).Int("players", len(e.players)).Msg("evil count does not match the board")
	}
}

func characterNames(chars []Character) []string {
	names := make([]string, len(chars))
	for i, ch := range chars {
		names[i] = ch.Name()
	}
	return names
}

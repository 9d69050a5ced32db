package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// table is everything a guild owns: its lobby and, once started, its game.
type table struct {
	config *Config
	engine *Engine
}

func (t *table) running() bool {
	return t.engine != nil && t.engine.phase != GameOver
}

// Registry holds one table per guild. Every mutating call holds the write
// lock for the whole validate-then-mutate step; snapshots take the read lock.
type Registry struct {
	mu      sync.RWMutex
	tables  map[string]*table
	newRand func() *rand.Rand
}

type RegistryOption func(*Registry)

// WithRandSource replaces the random source used to deal characters.
func WithRandSource(newRand func() *rand.Rand) RegistryOption {
	return func(r *Registry) { r.newRand = newRand }
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		tables: make(map[string]*table),
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// tableFor must be called with the write lock held.
func (r *Registry) tableFor(guild string) *table {
	t, ok := r.tables[guild]
	if !ok {
		t = &table{config: NewConfig()}
		r.tables[guild] = t
	}
	return t
}

// lobby runs fn on the guild's lobby when no game is running.
func (r *Registry) lobby(guild string, fn func(*Config) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.tableFor(guild)
	if t.running() {
		return ErrGameInProgress
	}
	return fn(t.config)
}

// game runs fn on the guild's game.
func (r *Registry) game(guild string, fn func(*Engine) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tables[guild]
	if !ok || t.engine == nil {
		return ErrGameNotStarted
	}
	return fn(t.engine)
}

func (r *Registry) Join(guild, user string) error {
	return r.lobby(guild, func(c *Config) error {
		if err := c.Join(user); err != nil {
			return err
		}
		log.Info().Str("guild", guild).Str("player", user).Msg("player joined")
		return nil
	})
}

func (r *Registry) Leave(guild, user string) error {
	return r.lobby(guild, func(c *Config) error {
		c.Leave(user)
		log.Info().Str("guild", guild).Str("player", user).Msg("player left")
		return nil
	})
}

func (r *Registry) AddRoles(guild string, chars ...Character) error {
	return r.lobby(guild, func(c *Config) error {
		c.AddRoles(chars...)
		return nil
	})
}

func (r *Registry) RemoveRoles(guild string, chars ...Character) error {
	return r.lobby(guild, func(c *Config) error {
		c.RemoveRoles(chars...)
		return nil
	})
}

func (r *Registry) ClearRoles(guild string) error {
	return r.lobby(guild, func(c *Config) error {
		c.ClearRoles()
		return nil
	})
}

// SetRoles replaces the enabled special characters.
func (r *Registry) SetRoles(guild string, chars ...Character) error {
	return r.lobby(guild, func(c *Config) error {
		c.ClearRoles()
		c.AddRoles(chars...)
		return nil
	})
}

func (r *Registry) ToggleLady(guild string, on *bool) (bool, error) {
	var lady bool
	err := r.lobby(guild, func(c *Config) error {
		lady = c.ToggleLadyOfTheLake(on)
		return nil
	})
	return lady, err
}

// Start deals a new game from the guild's lobby. A finished game is replaced.
func (r *Registry) Start(guild string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.tableFor(guild)
	if t.running() {
		return ErrGameInProgress
	}
	e, err := t.config.Start(r.newRand())
	if err != nil {
		return err
	}
	t.engine = e
	return nil
}

func (r *Registry) ProposeTeam(guild, leader string, team []string) error {
	return r.game(guild, func(e *Engine) error { return e.ProposeTeam(leader, team) })
}

func (r *Registry) Vote(guild, player string, approve bool) error {
	return r.game(guild, func(e *Engine) error { return e.CastVote(player, approve) })
}

func (r *Registry) QuestVote(guild, player string, pass bool) error {
	return r.game(guild, func(e *Engine) error { return e.QuestVote(player, pass) })
}

func (r *Registry) UseLady(guild, holder, target string) (Faction, error) {
	var faction Faction
	err := r.game(guild, func(e *Engine) error {
		var err error
		faction, err = e.UseLady(holder, target)
		return err
	})
	return faction, err
}

func (r *Registry) Assassinate(guild, assassin, target string) error {
	return r.game(guild, func(e *Engine) error { return e.Guess(assassin, target) })
}

// Snapshot returns what viewer may see of the guild right now.
func (r *Registry) Snapshot(guild, viewer string) GameState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tables[guild]
	if !ok {
		return newGameState(guild, NewConfig(), nil, viewer)
	}
	return newGameState(guild, t.config, t.engine, viewer)
}

// BoardInputs copies what the board image needs so that rendering happens
// outside the lock. ok is false when the guild has no game.
func (r *Registry) BoardInputs(guild string) (outcomes []bool, rejects, players int, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, found := r.tables[guild]
	if !found || t.engine == nil {
		return nil, 0, 0, false
	}
	return t.engine.Outcomes(), t.engine.rejects, len(t.engine.players), true
}

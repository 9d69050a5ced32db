package game

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lobbyWith(n int, chars ...Character) *Config {
	c := NewConfig()
	for i := 1; i <= n; i++ {
		_ = c.Join(fmt.Sprintf("u%d", i))
	}
	c.AddRoles(chars...)
	return c
}

func TestJoinAndLeave(t *testing.T) {
	c := NewConfig()
	require.NoError(t, c.Join("alice"))
	require.NoError(t, c.Join("bob"))
	require.NoError(t, c.Join("alice"))
	assert.Equal(t, []string{"alice", "bob"}, c.Players())

	c.Leave("carol")
	c.Leave("alice")
	assert.Equal(t, []string{"bob"}, c.Players())
}

func TestJoinFullTable(t *testing.T) {
	c := lobbyWith(MaxPlayers)
	assert.ErrorIs(t, c.Join("late"), ErrTooManyPlayers)
	assert.NoError(t, c.Join("u1"), "joining twice is a no-op even at a full table")
	assert.Len(t, c.Players(), MaxPlayers)
}

func TestRoles(t *testing.T) {
	c := NewConfig()
	c.AddRoles(Merlin, Assassin, LoyalServant, MinionOfMordred)
	assert.Equal(t, []Character{Assassin, Merlin}, c.Characters())

	c.RemoveRoles(Merlin)
	assert.Equal(t, []Character{Assassin}, c.Characters())

	c.ClearRoles()
	assert.Empty(t, c.Characters())
}

func TestToggleLadyOfTheLake(t *testing.T) {
	c := NewConfig()
	assert.True(t, c.ToggleLadyOfTheLake(nil))
	assert.False(t, c.ToggleLadyOfTheLake(nil))
	on := true
	assert.True(t, c.ToggleLadyOfTheLake(&on))
	assert.True(t, c.ToggleLadyOfTheLake(&on))
	assert.True(t, c.LadyOfTheLake())
}

func TestStartable(t *testing.T) {
	assert.False(t, lobbyWith(4).Startable())
	assert.True(t, lobbyWith(5).Startable())
	assert.True(t, lobbyWith(10).Startable())
	assert.True(t, lobbyWith(5, Merlin, Assassin, Percival).Startable())
	assert.False(t, lobbyWith(5, Merlin, Assassin, Percival, Morgana).Startable())
}

func TestStartNotStartable(t *testing.T) {
	_, err := lobbyWith(4).Start(rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrNotStartable)
}

func TestStartUnbalanced(t *testing.T) {
	_, err := lobbyWith(5, Assassin, Morgana, Mordred).Start(rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrUnbalancedRoles)
}

func TestStartDealsEvilRatio(t *testing.T) {
	decks := [][]Character{
		nil,
		{Merlin, Assassin},
		{Merlin, Assassin, Percival},
		{Merlin, Assassin, Percival, Morgana},
	}
	for n := MinPlayers; n <= MaxPlayers; n++ {
		for _, deck := range decks {
			if len(deck) > n-2 {
				continue
			}
			for seed := int64(0); seed < 5; seed++ {
				c := lobbyWith(n, deck...)
				e, err := c.Start(rand.New(rand.NewSource(seed)))
				require.NoError(t, err)

				players := e.Players()
				require.Len(t, players, n)
				evil := 0
				seen := make(map[string]bool)
				dealt := make(map[Character]int)
				for _, p := range players {
					seen[p.User] = true
					dealt[p.Character]++
					if p.Character.Faction() == Evil {
						evil++
					}
				}
				assert.Len(t, seen, n)
				assert.Equal(t, EvilCount(n), evil, "players=%d deck=%v", n, deck)
				for _, ch := range deck {
					assert.Equal(t, 1, dealt[ch], "players=%d %s", n, ch)
				}
			}
		}
	}
}

func TestStartIsDeterministicForASeed(t *testing.T) {
	deal := func() []Player {
		c := lobbyWith(8, Merlin, Assassin, Percival, Morgana)
		e, err := c.Start(rand.New(rand.NewSource(42)))
		require.NoError(t, err)
		return e.Players()
	}
	assert.Equal(t, deal(), deal())
}

func TestStartCarriesLady(t *testing.T) {
	c := lobbyWith(6)
	c.ToggleLadyOfTheLake(nil)
	e, err := c.Start(rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	holder, ok := e.LadyHolder()
	require.True(t, ok)
	players := e.Players()
	assert.Equal(t, players[len(players)-1].User, holder)
	assert.Equal(t, players[0].User, e.Leader())
}

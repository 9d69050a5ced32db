package game

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed int64) RegistryOption {
	return WithRandSource(func() *rand.Rand { return rand.New(rand.NewSource(seed)) })
}

func startedRegistry(t *testing.T, players int, chars ...Character) *Registry {
	t.Helper()
	r := NewRegistry(seeded(7))
	for i := 1; i <= players; i++ {
		require.NoError(t, r.Join("guild", fmt.Sprintf("u%d", i)))
	}
	require.NoError(t, r.AddRoles("guild", chars...))
	require.NoError(t, r.Start("guild"))
	return r
}

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry(seeded(1))

	assert.ErrorIs(t, r.Vote("guild", "u1", true), ErrGameNotStarted)
	assert.ErrorIs(t, r.Start("guild"), ErrNotStartable)

	for i := 1; i <= 5; i++ {
		require.NoError(t, r.Join("guild", fmt.Sprintf("u%d", i)))
	}
	lady, err := r.ToggleLady("guild", nil)
	require.NoError(t, err)
	assert.True(t, lady)

	state := r.Snapshot("guild", "u1")
	assert.False(t, state.Running)
	require.NotNil(t, state.Lobby)
	assert.Len(t, state.Lobby.Players, 5)
	assert.True(t, state.Lobby.Startable)
	assert.Nil(t, state.Secrets)

	require.NoError(t, r.Start("guild"))
	assert.ErrorIs(t, r.Start("guild"), ErrGameInProgress)
	assert.ErrorIs(t, r.Join("guild", "u6"), ErrGameInProgress)
	assert.ErrorIs(t, r.ClearRoles("guild"), ErrGameInProgress)

	state = r.Snapshot("guild", "u1")
	assert.True(t, state.Running)
	assert.Equal(t, TeamBuilding, state.State)
	require.NotNil(t, state.Secrets)
	assert.NotEmpty(t, state.LadyHolder)
	assert.Nil(t, state.PlayerInfo)

	other := r.Snapshot("other-guild", "u1")
	assert.False(t, other.Running)
}

func TestRegistryFiveRejectionsThenRestart(t *testing.T) {
	r := startedRegistry(t, 5)
	for i := 0; i < MaxRejects; i++ {
		state := r.Snapshot("guild", "")
		team := state.Players[:state.Quest.Players]
		require.NoError(t, r.ProposeTeam("guild", state.Suggester, team))
		for _, p := range state.Players {
			require.NoError(t, r.Vote("guild", p, false))
		}
	}

	state := r.Snapshot("guild", "u1")
	assert.Equal(t, GameOver, state.State)
	assert.Equal(t, Evil, state.Outcome.Winner)
	assert.Len(t, state.PlayerInfo, 5, "roles are revealed when the game ends")
	assert.ErrorIs(t, r.Vote("guild", "u1", true), ErrGameAlreadyOver)

	outcomes, rejects, players, ok := r.BoardInputs("guild")
	require.True(t, ok)
	assert.Empty(t, outcomes)
	assert.Equal(t, MaxRejects, rejects)
	assert.Equal(t, 5, players)

	require.NoError(t, r.Join("guild", "u6"))
	require.NoError(t, r.Start("guild"))
	assert.Len(t, r.Snapshot("guild", "").Players, 6)
}

func TestRegistryConcurrentVotesCountOnce(t *testing.T) {
	r := startedRegistry(t, 7, Merlin, Assassin)
	state := r.Snapshot("guild", "")
	require.NoError(t, r.ProposeTeam("guild", state.Suggester, state.Players[:state.Quest.Players]))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		rejected int
	)
	for _, p := range state.Players {
		for i := 0; i < 3; i++ {
			wg.Add(1)
			go func(p string) {
				defer wg.Done()
				err := r.Vote("guild", p, true)
				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					accepted++
				} else {
					rejected++
				}
			}(p)
		}
	}
	wg.Wait()

	assert.Equal(t, 7, accepted)
	assert.Equal(t, 14, rejected)
	after := r.Snapshot("guild", "")
	assert.Equal(t, Questing, after.State)
	assert.Len(t, after.LastVote.Approved, 7)
}

func TestRegistryReplayIsDeterministic(t *testing.T) {
	play := func() GameState {
		r := startedRegistry(t, 6, Merlin, Assassin, Percival, Morgana)
		state := r.Snapshot("guild", "")
		require.NoError(t, r.ProposeTeam("guild", state.Suggester, state.Players[:2]))
		for _, p := range state.Players {
			require.NoError(t, r.Vote("guild", p, true))
		}
		for _, m := range state.Players[:2] {
			require.NoError(t, r.QuestVote("guild", m, true))
		}
		return r.Snapshot("guild", state.Players[0])
	}
	assert.Equal(t, play(), play())
}

func TestRegistryAssassinate(t *testing.T) {
	r := startedRegistry(t, 5, Merlin, Assassin)
	assert.ErrorIs(t, r.Assassinate("guild", "u1", "u2"), ErrWrongPhase)
	_, err := r.UseLady("guild", "u1", "u2")
	assert.ErrorIs(t, err, ErrWrongPhase)
}

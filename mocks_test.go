package main

import (
	"errors"
	"math/rand"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/orhalimi/avalon_server/game"
)

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(u *User) error {
	args := m.Called(u)
	return args.Error(0)
}

func (m *MockUserStore) GetByUsername(username string) (*User, error) {
	args := m.Called(username)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

// MockHash stores passwords as they are.
type MockHash struct{}

func (h *MockHash) Generate(s string) (string, error) {
	return s, nil
}

func (h *MockHash) Compare(hash string, s string) error {
	if hash != s {
		return errMismatch
	}
	return nil
}

var errMismatch = errors.New("password mismatch")

const testSecret = "test-secret"

func testConfig() Config {
	return Config{
		JWTSecret:    testSecret,
		TokenTTL:     time.Hour,
		CommandRate:  1000,
		CommandBurst: 1000,
	}
}

func testServer(store UserStore) *Server {
	games := game.NewRegistry(game.WithRandSource(func() *rand.Rand {
		return rand.New(rand.NewSource(11))
	}))
	return NewServer(testConfig(), games, store, &MockHash{})
}

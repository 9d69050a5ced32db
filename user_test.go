package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDBName = "avalon_integration_test"

// mongoSession connects to MONGO_TEST_ADDRESS or skips the test.
func mongoSession(t *testing.T) *Session {
	t.Helper()
	url := os.Getenv("MONGO_TEST_ADDRESS")
	if url == "" {
		t.Skip("MONGO_TEST_ADDRESS not set")
	}
	session, err := NewSession(url)
	require.NoError(t, err, "unable to connect to mongo")
	t.Cleanup(func() {
		session.DropDatabase(testDBName)
		session.Close()
	})
	return session
}

func TestUserService(t *testing.T) {
	session := mongoSession(t)
	userService, err := NewUserService(session.Copy(), testDBName, "user", &MockHash{})
	require.NoError(t, err)

	user := User{Username: "integration_test_user", Password: "integration_test_password"}
	require.NoError(t, userService.Create(&user))

	var results []User
	require.NoError(t, session.GetCollection(testDBName, "user").Find(nil).All(&results))
	require.Len(t, results, 1)
	assert.Equal(t, user.Username, results[0].Username)

	assert.ErrorIs(t, userService.Create(&user), ErrUserExists)

	got, err := userService.GetByUsername(user.Username)
	require.NoError(t, err)
	assert.Equal(t, user.Password, got.Password)
	assert.NotEmpty(t, got.Id)

	_, err = userService.GetByUsername("nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"spendtrack/internal/core"
	"spendtrack/internal/credential"
)

type UsersSuite struct {
	suite.Suite
	store *Store
	users *Users
	ctx   context.Context
}

func (s *UsersSuite) SetupTest() {
	store, err := Open(":memory:")
	require.NoError(s.T(), err, "failed to open test database")
	s.store = store
	s.users = NewUsers(store, credential.SHA256Codec{})
	s.ctx = context.Background()
}

func (s *UsersSuite) TearDownTest() {
	if s.store != nil {
		s.store.Close()
	}
}

func (s *UsersSuite) TestRegisterThenLogin() {
	id, err := s.users.Register(s.ctx, "alice", "a@x.com", "secret1")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), id)

	user, err := s.users.Login(s.ctx, "alice", "secret1")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), core.User{ID: 1, Username: "alice", Email: "a@x.com"}, user)
}

func (s *UsersSuite) TestLoginFailuresIndistinguishable() {
	_, err := s.users.Register(s.ctx, "alice", "a@x.com", "secret1")
	require.NoError(s.T(), err)

	// Wrong secret and unknown username come back as the same error.
	_, err = s.users.Login(s.ctx, "alice", "wrong1")
	assert.ErrorIs(s.T(), err, ErrInvalidCredentials)

	_, err = s.users.Login(s.ctx, "nobody", "secret1")
	assert.ErrorIs(s.T(), err, ErrInvalidCredentials)
}

func (s *UsersSuite) TestRegisterValidation() {
	cases := []struct {
		username, email, secret string
		want                    error
	}{
		{"", "a@x.com", "secret1", core.ErrEmptyUsername},
		{"alice", "", "secret1", core.ErrEmptyEmail},
		{"alice", "a@x.com", "short", core.ErrWeakSecret},
	}
	for _, tc := range cases {
		_, err := s.users.Register(s.ctx, tc.username, tc.email, tc.secret)
		assert.ErrorIs(s.T(), err, tc.want)
	}

	// Nothing reached the store.
	taken, err := s.users.UsernameExists(s.ctx, "alice")
	require.NoError(s.T(), err)
	assert.False(s.T(), taken)
}

func (s *UsersSuite) TestDuplicateUsername() {
	_, err := s.users.Register(s.ctx, "alice", "a@x.com", "secret1")
	require.NoError(s.T(), err)

	_, err = s.users.Register(s.ctx, "alice", "other@x.com", "secret2")
	assert.ErrorIs(s.T(), err, ErrDuplicateUsername)

	// The first registration is unaffected.
	user, err := s.users.Login(s.ctx, "alice", "secret1")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "a@x.com", user.Email)

	taken, err := s.users.EmailExists(s.ctx, "other@x.com")
	require.NoError(s.T(), err)
	assert.False(s.T(), taken, "failed registration must not leave a partial row")
}

func (s *UsersSuite) TestDuplicateEmail() {
	_, err := s.users.Register(s.ctx, "alice", "a@x.com", "secret1")
	require.NoError(s.T(), err)

	_, err = s.users.Register(s.ctx, "bob", "a@x.com", "secret2")
	assert.ErrorIs(s.T(), err, ErrDuplicateEmail)
}

func (s *UsersSuite) TestUsernameIsCaseSensitive() {
	_, err := s.users.Register(s.ctx, "alice", "a@x.com", "secret1")
	require.NoError(s.T(), err)

	taken, err := s.users.UsernameExists(s.ctx, "Alice")
	require.NoError(s.T(), err)
	assert.False(s.T(), taken)

	_, err = s.users.Login(s.ctx, "Alice", "secret1")
	assert.ErrorIs(s.T(), err, ErrInvalidCredentials)
}

func (s *UsersSuite) TestExistsChecks() {
	_, err := s.users.Register(s.ctx, "alice", "a@x.com", "secret1")
	require.NoError(s.T(), err)

	taken, err := s.users.UsernameExists(s.ctx, "alice")
	require.NoError(s.T(), err)
	assert.True(s.T(), taken)

	taken, err = s.users.EmailExists(s.ctx, "a@x.com")
	require.NoError(s.T(), err)
	assert.True(s.T(), taken)

	taken, err = s.users.EmailExists(s.ctx, "b@x.com")
	require.NoError(s.T(), err)
	assert.False(s.T(), taken)
}

func (s *UsersSuite) TestBcryptScheme() {
	users := NewUsers(s.store, credential.BcryptCodec{})

	_, err := users.Register(s.ctx, "alice", "a@x.com", "secret1")
	require.NoError(s.T(), err)

	user, err := users.Login(s.ctx, "alice", "secret1")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "alice", user.Username)

	_, err = users.Login(s.ctx, "alice", "secret2")
	assert.ErrorIs(s.T(), err, ErrInvalidCredentials)
}

func TestUsersSuite(t *testing.T) {
	suite.Run(t, new(UsersSuite))
}

func TestMapUserConstraint(t *testing.T) {
	err := mapUserConstraint(errors.New("constraint failed: UNIQUE constraint failed: users.username (1555)"))
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	err = mapUserConstraint(errors.New("constraint failed: UNIQUE constraint failed: users.email (1555)"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	orig := errors.New("disk I/O error")
	err = mapUserConstraint(orig)
	assert.ErrorIs(t, err, orig)
}

package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"video-share/pkg/apperror"
	"video-share/pkg/auth"
	"video-share/pkg/models"
	"video-share/pkg/repository"
	"video-share/pkg/repository/mocks"
)

func newAuthenticator(repo *mocks.UserRepository) *auth.Authenticator {
	return auth.NewAuthenticator(repo, bcrypt.MinCost, nil)
}

func TestAuthenticate_RegistersUnknownUser(t *testing.T) {
	repo := new(mocks.UserRepository)
	ctx := context.Background()

	repo.On("FindByUsername", ctx, "alice").Return(nil, repository.ErrNotFound).Once()
	repo.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
		assert.Equal(t, "alice", u.Username)
		assert.NotEqual(t, "password123", u.Password, "plaintext must not be stored")
		assert.True(t, auth.CheckPassword("password123", u.Password))
		return true
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = 5
	}).Return(nil).Once()

	res, err := newAuthenticator(repo).Authenticate(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, uint(5), res.Identity.UserID)
	assert.Equal(t, "alice", res.Identity.Username)
	assert.Equal(t, auth.MsgAccountCreated, res.Message())

	repo.AssertExpectations(t)
}

func TestAuthenticate_SignupValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		want     string
	}{
		{"blank username", "", "password", "Username can't be blank"},
		{"blank password", "alice", "", "Password can't be blank"},
		{"short password", "alice", "pass", "Password is too short (minimum is 8 characters)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.UserRepository)
			ctx := context.Background()
			repo.On("FindByUsername", ctx, tt.username).Return(nil, repository.ErrNotFound).Once()

			res, err := newAuthenticator(repo).Authenticate(ctx, tt.username, tt.password)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, apperror.IsValidation(err))
			assert.Contains(t, apperror.From(err).Messages, tt.want)

			repo.AssertExpectations(t)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestAuthenticate_LogsInExistingUser(t *testing.T) {
	repo := new(mocks.UserRepository)
	ctx := context.Background()
	digest, err := auth.HashPassword("password123", bcrypt.MinCost)
	require.NoError(t, err)
	repo.On("FindByUsername", ctx, "alice").
		Return(&models.User{ID: 1, Username: "alice", Password: digest}, nil).Once()

	res, err := newAuthenticator(repo).Authenticate(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, uint(1), res.Identity.UserID)
	assert.Equal(t, auth.MsgLoggedIn, res.Message())

	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	repo := new(mocks.UserRepository)
	ctx := context.Background()
	digest, err := auth.HashPassword("password123", bcrypt.MinCost)
	require.NoError(t, err)
	repo.On("FindByUsername", ctx, "alice").
		Return(&models.User{ID: 1, Username: "alice", Password: digest}, nil).Once()

	res, err := newAuthenticator(repo).Authenticate(ctx, "alice", "wrong")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, apperror.IsInvalidCredentials(err))
	assert.Equal(t, []string{apperror.MsgInvalidCredentials}, apperror.From(err).Messages)
	assert.NotContains(t, err.Error(), "alice")

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthenticate_SignupRaceReportsTakenUsername(t *testing.T) {
	repo := new(mocks.UserRepository)
	ctx := context.Background()
	repo.On("FindByUsername", ctx, "alice").Return(nil, repository.ErrNotFound).Once()
	repo.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(repository.ErrDuplicate).Once()

	_, err := newAuthenticator(repo).Authenticate(ctx, "alice", "password123")
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, []string{"Username has already been taken"}, apperror.From(err).Messages)
}

func TestAuthenticate_StoreFailureIsInternal(t *testing.T) {
	repo := new(mocks.UserRepository)
	ctx := context.Background()
	repo.On("FindByUsername", ctx, "alice").Return(nil, errors.New("database is locked")).Once()

	_, err := newAuthenticator(repo).Authenticate(ctx, "alice", "password123")
	require.Error(t, err)
	appErr := apperror.From(err)
	assert.Equal(t, apperror.Internal, appErr.Kind)
	assert.Equal(t, []string{apperror.MsgInternal}, appErr.Messages)
}

// Package auth resolves a (username, password) pair to an identity, creating
// the account on first use.
package auth

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"video-share/pkg/apperror"
	"video-share/pkg/models"
	"video-share/pkg/repository"
	"video-share/pkg/session"
)

// Outcome messages reported to the user.
const (
	MsgAccountCreated = "Successfully created user"
	MsgLoggedIn       = "Logged in successfully"
	MsgLoggedOut      = "Logged out"

	msgUsernameTaken = "Username has already been taken"
)

type Result struct {
	Identity session.Identity
	Created  bool
}

// Message is the notice shown after a successful authentication.
func (r Result) Message() string {
	if r.Created {
		return MsgAccountCreated
	}
	return MsgLoggedIn
}

type Authenticator struct {
	users repository.UserRepository
	cost  int
	log   logrus.FieldLogger
}

func NewAuthenticator(users repository.UserRepository, cost int, log logrus.FieldLogger) *Authenticator {
	if users == nil {
		panic("UserRepository cannot be nil for Authenticator")
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Authenticator{users: users, cost: cost, log: log}
}

// Authenticate logs in an existing user or registers an unknown username.
// Wrong passwords yield InvalidCredentials; invalid signups yield a
// ValidationError listing every violated rule.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*Result, error) {
	logCtx := a.log.WithField("username", username)

	user, err := a.users.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return a.register(ctx, logCtx, username, password)
	case err != nil:
		logCtx.WithError(err).Error("Authenticate: user lookup failed")
		return nil, apperror.NewInternal(err)
	}

	if !CheckPassword(password, user.Password) {
		logCtx.Warn("Authenticate: invalid password")
		return nil, apperror.NewInvalidCredentials()
	}

	logCtx.WithField("user_id", user.ID).Info("User logged in")
	return &Result{Identity: identityOf(user)}, nil
}

func (a *Authenticator) register(ctx context.Context, logCtx logrus.FieldLogger, username, password string) (*Result, error) {
	if err := models.ValidateCredentials(username, password); err != nil {
		logCtx.WithError(err).Info("Authenticate: signup rejected")
		return nil, err
	}

	digest, err := HashPassword(password, a.cost)
	if err != nil {
		logCtx.WithError(err).Error("Authenticate: hashing failed")
		return nil, apperror.NewInternal(err)
	}

	user := &models.User{Username: username, Password: digest}
	if err := a.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost a race with a concurrent signup for the same name.
			logCtx.WithError(err).Warn("Authenticate: username taken during signup")
			return nil, apperror.NewValidationError([]string{msgUsernameTaken})
		}
		logCtx.WithError(err).Error("Authenticate: creating user failed")
		return nil, apperror.NewInternal(err)
	}

	logCtx.WithField("user_id", user.ID).Info("User registered")
	return &Result{Identity: identityOf(user), Created: true}, nil
}

func identityOf(u *models.User) session.Identity {
	return session.Identity{UserID: u.ID, Username: u.Username}
}

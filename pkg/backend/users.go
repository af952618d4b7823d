package backend

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/trackmaster/trackmaster/pkg/apierrors"
	"github.com/trackmaster/trackmaster/pkg/auth"
	"github.com/trackmaster/trackmaster/pkg/db"
	"github.com/trackmaster/trackmaster/pkg/model"
	"golang.org/x/crypto/bcrypt"
)

const (
	invalidCredentials = "Invalid credentials, could not log you in."
	userExists         = "User exists already, register another user instead."
	emailInUse         = "Email is already in use by another user."
)

func (b *backend) SignUp(ctx context.Context, input model.SignupRequest) (db.User, error) {
	_, err := b.db.GetUserByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return db.User{}, apierrors.Conflict(userExists)
	case !errors.Is(err, db.ErrNotFound):
		return db.User{}, apierrors.Internal("Registering user failed, please try again later.", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), b.bcryptCost)
	if err != nil {
		return db.User{}, apierrors.Internal("Could not register user, please try again.", err)
	}

	user := db.User{
		Email:    input.Email,
		Password: string(hash),
	}
	if err := b.db.CreateUser(ctx, &user); errors.Is(err, db.ErrDuplicate) {
		return db.User{}, apierrors.Conflict(userExists)
	} else if err != nil {
		return db.User{}, apierrors.Internal("Registering user failed, please try again", err)
	}

	logrus.Debugf("registered user %d", user.ID)
	return user, nil
}

func (b *backend) Login(ctx context.Context, input model.LoginRequest) (model.LoginResponse, error) {
	user, err := b.db.GetUserByEmail(ctx, input.Email)
	if errors.Is(err, db.ErrNotFound) {
		return model.LoginResponse{}, apierrors.Forbidden(invalidCredentials)
	} else if err != nil {
		return model.LoginResponse{}, apierrors.Internal("Logging in failed, please try again later.", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return model.LoginResponse{}, apierrors.Forbidden(invalidCredentials)
		}
		return model.LoginResponse{}, apierrors.Internal("Could not log you in, please try again.", err)
	}

	token, err := b.tokens.Issue(auth.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		return model.LoginResponse{}, apierrors.Internal("Logging in failed, please try again later.", err)
	}

	return model.LoginResponse{
		UserID: user.ID,
		Email:  user.Email,
		Token:  token,
	}, nil
}

// UpdateUser replaces the email and password of the caller's own account
// once the current password has been re-verified.
func (b *backend) UpdateUser(ctx context.Context, caller auth.Identity, userID uint, input model.UpdateUserRequest) (db.User, error) {
	const failed = "Something went wrong, could not update user!"

	if caller.UserID != userID {
		return db.User{}, apierrors.Forbidden("You are not allowed to update this user.")
	}

	user, err := b.db.GetUser(ctx, userID)
	if err != nil {
		return db.User{}, lookupFailed(err, "Could not find user.", failed)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)); err != nil {
		return db.User{}, apierrors.Forbidden("Invalid credentials.")
	}

	if input.Email != user.Email {
		other, err := b.db.GetUserByEmail(ctx, input.Email)
		if err == nil && other.ID != user.ID {
			return db.User{}, apierrors.Conflict(emailInUse)
		} else if err != nil && !errors.Is(err, db.ErrNotFound) {
			return db.User{}, apierrors.Internal(failed, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), b.bcryptCost)
	if err != nil {
		return db.User{}, apierrors.Internal(failed, err)
	}

	user.Email = input.Email
	user.Password = string(hash)
	if err := b.db.SaveUser(ctx, &user); errors.Is(err, db.ErrDuplicate) {
		return db.User{}, apierrors.Conflict(emailInUse)
	} else if err != nil {
		return db.User{}, apierrors.Internal(failed, err)
	}

	return user, nil
}

func (b *backend) GetUsers(ctx context.Context) ([]db.User, error) {
	users, err := b.db.ListUsers(ctx)
	if err != nil {
		return nil, apierrors.Internal("Fetching users failed, please try again later.", err)
	}
	return users, nil
}

func (b *backend) GetUser(ctx context.Context, userID uint) (db.User, error) {
	user, err := b.db.GetUser(ctx, userID)
	if err != nil {
		return db.User{}, lookupFailed(err, "Could not find user.", "Something went wrong, could not find user")
	}
	return user, nil
}

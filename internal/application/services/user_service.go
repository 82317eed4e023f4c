package services

import (
	"context"
	"fmt"

	"github.com/campusnav/core/internal/domain/entities"
	"github.com/campusnav/core/internal/infrastructure/logger"
	"github.com/campusnav/core/internal/ports"
)

// UserForm is the add/edit form for users
type UserForm = Form[entities.User, ports.UserForm]

// UserService handles user-related operations. Users are addressed by id;
// a password is hashed on the way in and an empty password on edit keeps
// the stored hash.
type UserService struct {
	*Controller[entities.User]
	hasher *PasswordHasher
}

// NewUserService creates a new user service
func NewUserService(userRepo ports.UserRepository, notifier ports.Notifier, hasher *PasswordHasher, logger *logger.Logger) *UserService {
	notices := Notices[entities.User]{
		Created: func(u entities.User) string {
			return fmt.Sprintf("User '%s' added", u.Username)
		},
		Updated: func(u entities.User) string {
			return fmt.Sprintf("User '%s' updated", u.Username)
		},
		Deleted: func(u entities.User) string {
			return fmt.Sprintf("User '%s' deleted", u.Username)
		},
	}

	s := &UserService{
		Controller: NewController[entities.User]("user", userRepo, notifier, notices, logger),
		hasher:     hasher,
	}
	s.Controller.prepare = s.hashPassword
	s.Controller.check = uniqueUsername
	return s
}

// NewForm returns an Idle user form
func (s *UserService) NewForm() *UserForm {
	return NewForm(s.Controller, ports.NewUserForm)
}

// FindByUsername returns the first user with the given username
func (s *UserService) FindByUsername(ctx context.Context, username string) (entities.User, error) {
	users, err := s.store.LoadAll(ctx)
	if err != nil {
		return entities.User{}, fmt.Errorf("failed to load users: %w", err)
	}

	for _, u := range users {
		if u.Username == username {
			return u, nil
		}
	}
	return entities.User{}, fmt.Errorf("user %q: %w", username, entities.ErrNotFound)
}

func (s *UserService) hashPassword(existing *entities.User, incoming entities.User) (entities.User, error) {
	switch {
	case incoming.Password != "":
		hash, err := s.hasher.Hash(incoming.Password)
		if err != nil {
			return incoming, fmt.Errorf("failed to hash password: %w", err)
		}
		incoming.PasswordHash = hash
	case existing != nil:
		incoming.PasswordHash = existing.PasswordHash
	}

	incoming.Password = ""
	return incoming, nil
}

// uniqueUsername rejects a username already held by another user
func uniqueUsername(all []entities.User, rec entities.User) error {
	for _, u := range all {
		if u.ID != rec.ID && u.Username == rec.Username {
			return entities.NewValidationError("username", "unique")
		}
	}
	return nil
}

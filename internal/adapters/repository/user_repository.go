package repository

import (
	"strconv"

	"github.com/campusnav/core/internal/domain/entities"
	"github.com/campusnav/core/internal/infrastructure/logger"
	"github.com/campusnav/core/internal/infrastructure/storage"
	"github.com/campusnav/core/internal/ports"
)

// UserColumns is the header written to the users file. Files written before
// users had ids lack the id column; their rows are numbered by position.
// Such files may also carry a consent column and free-form roles; roles
// are normalized on load and emails are not format-checked.
var UserColumns = []string{"id", "username", "email", "role", "password"}

var userSchema = tableSchema[entities.User]{
	header:        UserColumns,
	required:      []string{"username", "email", "role", "password"},
	positionalIDs: true,
	decode: func(r *row) entities.User {
		return entities.User{
			ID:           r.Int("id"),
			Username:     r.Text("username"),
			Email:        r.Text("email"),
			Role:         entities.ParseRole(r.Text("role")),
			PasswordHash: r.Text("password"),
		}
	},
	encode: func(u entities.User) []string {
		return []string{strconv.Itoa(u.ID), u.Username, u.Email, string(u.Role), u.PasswordHash}
	},
	validate: entities.User.ValidateStored,
}

// NewUserRepository creates the CSV-backed user store
func NewUserRepository(dir *storage.DataDir, log *logger.Logger) ports.UserRepository {
	return newCSVTable(dir, dir.Config().UsersFile, userSchema, log)
}

package users

import (
	"context"
	"errors"
	"strings"

	"shortboard/internal/store"
	"shortboard/pkg/models"
	"shortboard/pkg/roles"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrProtectedUser     = errors.New("built-in account cannot be deleted")
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidUsername   = errors.New("invalid username")
)

// protectedUsername is the built-in account that must always exist.
const protectedUsername = "admin"

type Repository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	AddUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, username string) error
}

type storeRepository struct {
	store *store.Store
	newID func() string
}

func NewRepository(s *store.Store) Repository {
	return &storeRepository{store: s, newID: uuid.NewString}
}

func (r *storeRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	target := strings.ToLower(strings.TrimSpace(username))

	var found *models.User
	err := r.store.View(ctx, func(db *models.Database) error {
		for _, user := range db.Users {
			if strings.ToLower(user.Username) == target {
				u := user
				found = &u
				return nil
			}
		}
		return ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *storeRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.store.View(ctx, func(db *models.Database) error {
		users = append(users, db.Users...)
		return nil
	})
	return users, err
}

func (r *storeRepository) AddUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, ErrInvalidUsername
	}
	if !roles.Role(req.Role).IsValid() {
		return nil, ErrInvalidRole
	}

	user := models.User{
		ID:       r.newID(),
		Username: username,
		Role:     req.Role,
	}

	err := r.store.Update(ctx, func(db *models.Database) (bool, error) {
		for _, existing := range db.Users {
			if strings.EqualFold(existing.Username, username) {
				return false, ErrDuplicateUsername
			}
		}
		db.Users = append(db.Users, user)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *storeRepository) DeleteUser(ctx context.Context, username string) error {
	target := strings.ToLower(strings.TrimSpace(username))
	if target == protectedUsername {
		return ErrProtectedUser
	}

	// Deleting an unknown user is a no-op, not an error.
	return r.store.Update(ctx, func(db *models.Database) (bool, error) {
		kept := db.Users[:0:0]
		for _, user := range db.Users {
			if strings.ToLower(user.Username) != target {
				kept = append(kept, user)
			}
		}
		changed := len(kept) != len(db.Users)
		db.Users = kept
		return changed, nil
	})
}

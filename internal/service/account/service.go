package account

import (
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/echotrace/echo-trace/internal/boot"
	"github.com/echotrace/echo-trace/internal/model"
	"github.com/echotrace/echo-trace/internal/store"
)

const usersFileName = "users.json"

type service struct {
	mu   sync.Mutex
	path string
}

func New(config *boot.Config) *service {
	return &service{path: path.Join(config.DataDirectory, usersFileName)}
}

// Create registers a new user. The email is the unique key, compared
// case-insensitively; the stored password is a bcrypt hash.
func (s *service) Create(params *model.CreateUserParams) (*model.User, error) {
	name := strings.TrimSpace(params.Name)
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if name == "" || email == "" || params.Password == "" {
		return nil, model.ErrorSignupFieldsRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := store.Read(s.path, []model.User{})
	if err != nil {
		return nil, err
	}
	for _, existing := range users {
		if strings.EqualFold(existing.Email, email) {
			return nil, model.ErrorEmailRegistered
		}
	}

	passwordBytes, err := bcrypt.GenerateFromPassword([]byte(params.Password), 10)
	if err != nil {
		return nil, fmt.Errorf("generating encoded password: %w", err)
	}

	user := model.User{
		ID:               model.UserID(model.CreateID()),
		Name:             name,
		Email:            email,
		Password:         string(passwordBytes),
		EmergencyContact: strings.TrimSpace(params.EmergencyContact),
		CreatedAt:        time.Now().UTC(),
	}

	users = append(users, user)
	if err := store.Write(s.path, users); err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate resolves credentials to a user record. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *service) Authenticate(email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, model.ErrorLoginFieldsRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := store.Read(s.path, []model.User{})
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(users[i].Password), []byte(password)) != nil {
			return nil, model.ErrorInvalidEmailOrPassword
		}
		return &users[i], nil
	}
	return nil, model.ErrorInvalidEmailOrPassword
}

func (s *service) FindByID(id model.UserID) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := store.Read(s.path, []model.User{})
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, model.ErrorUserNotFound
}

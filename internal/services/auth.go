package services

import (
	"log"

	"github.com/linkdeck/linkdeck/internal/apperr"
	"github.com/linkdeck/linkdeck/internal/models"
)

type AuthService struct {
	users *UserService
}

func NewAuthService(users *UserService) *AuthService {
	return &AuthService{users: users}
}

// Login verifies credentials and returns the user with the password hash
// stripped. An unknown username or a failed comparison both return
// (nil, nil); only store failures produce an error.
func (s *AuthService) Login(username, password string) (*models.User, error) {
	user, err := s.users.FindByUsername(username)

	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, nil
	}

	if !user.CheckPassword(password) {
		return nil, nil
	}

	user.Password = ""
	return user, nil
}

// Register creates a new user, rejecting usernames that are already taken.
func (s *AuthService) Register(username, password, nickname string) (*models.User, error) {
	existing, err := s.users.FindByUsername(username)

	if err != nil {
		return nil, err
	}

	if existing != nil {
		log.Printf("Registration rejected, username %q already exists", username)
		return nil, apperr.New(apperr.Duplicate, "username already exists")
	}

	return s.users.Create(CreateUserParams{
		Username: username,
		Password: password,
		Nickname: nickname,
	})
}

package services

import (
	"errors"
	"log"
	"net/mail"

	"gorm.io/gorm"

	"github.com/linkdeck/linkdeck/db"
	"github.com/linkdeck/linkdeck/internal/apperr"
	"github.com/linkdeck/linkdeck/internal/models"
)

type UserService struct {
	conn *db.Conn
}

func NewUserService(conn *db.Conn) *UserService {
	return &UserService{conn: conn}
}

type CreateUserParams struct {
	Username string
	Password string
	Nickname string
	Avatar   string
	Email    string
}

// Create inserts a new user with the password hashed up front. It does not
// pre-check username uniqueness; a duplicate surfaces as the store's unique
// index error. Registration adds that check on top (see AuthService).
func (s *UserService) Create(params CreateUserParams) (*models.User, error) {
	if params.Username == "" || params.Password == "" {
		return nil, apperr.New(apperr.Validation, "username and password are required")
	}

	if params.Email != "" {
		if _, err := mail.ParseAddress(params.Email); err != nil {
			return nil, apperr.New(apperr.Validation, "invalid email format")
		}
	}

	gdb, err := s.conn.Get()

	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "database unavailable", err)
	}

	user, err := models.NewUser(params.Username, params.Password, params.Nickname)

	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to hash password", err)
	}

	user.Avatar = params.Avatar
	user.Email = params.Email

	if err := gdb.Create(user).Error; err != nil {
		log.Printf("Failed to create user %q: %v", params.Username, err)
		return nil, apperr.Wrap(apperr.Internal, "failed to create user", err)
	}

	return user, nil
}

func (s *UserService) FindAll() ([]models.User, error) {
	gdb, err := s.conn.Get()

	if err != nil {
		return nil, apperr.Wrap(apperr.Query, "database unavailable", err)
	}

	var users []models.User

	if err := gdb.Order("updated_at DESC").Find(&users).Error; err != nil {
		return nil, apperr.Wrap(apperr.Query, "failed to retrieve users", err)
	}

	return users, nil
}

func (s *UserService) FindByID(id string) (*models.User, error) {
	gdb, err := s.conn.Get()

	if err != nil {
		return nil, apperr.Wrap(apperr.Query, "database unavailable", err)
	}

	var user models.User

	if err := gdb.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, apperr.Wrap(apperr.Query, "failed to retrieve user", err)
	}

	return &user, nil
}

// FindByUsername returns (nil, nil) when no such user exists. The returned
// record includes the password hash; login needs it for comparison.
func (s *UserService) FindByUsername(username string) (*models.User, error) {
	gdb, err := s.conn.Get()

	if err != nil {
		return nil, apperr.Wrap(apperr.Query, "database unavailable", err)
	}

	var user models.User

	if err := gdb.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperr.Wrap(apperr.Query, "failed to retrieve user", err)
	}

	return &user, nil
}

// UpdateByID merges the provided fields over the existing record. Only
// profile fields are updatable; username and id are immutable.
func (s *UserService) UpdateByID(id string, updates map[string]interface{}) (*models.User, error) {
	gdb, err := s.conn.Get()

	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "database unavailable", err)
	}

	var user models.User

	if err := gdb.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, apperr.Wrap(apperr.Query, "failed to retrieve user", err)
	}

	if len(updates) > 0 {
		if err := gdb.Model(&user).Updates(updates).Error; err != nil {
			return nil, apperr.Wrap(apperr.Internal, "failed to update user", err)
		}
	}

	return &user, nil
}

func (s *UserService) DeleteByID(id string) (bool, error) {
	gdb, err := s.conn.Get()

	if err != nil {
		return false, apperr.Wrap(apperr.Internal, "database unavailable", err)
	}

	result := gdb.Where("id = ?", id).Delete(&models.User{})

	if result.Error != nil {
		return false, apperr.Wrap(apperr.Internal, "failed to delete user", result.Error)
	}

	return result.RowsAffected > 0, nil
}

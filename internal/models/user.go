package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:191;not null" json:"username"`
	Nickname     string    `json:"nickname"`
	Password     string    `gorm:"not null" json:"-"`
	Avatar       string    `json:"avatar"`
	Email        string    `json:"email"`
	TokenVersion int       `gorm:"default:0" json:"tokenVersion"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}

// NewUser hashes the raw password up front, so plaintext never reaches the
// persistence layer. Nickname falls back to the username.
func NewUser(username, rawPassword, nickname string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)

	if err != nil {
		return nil, err
	}

	if nickname == "" {
		nickname = username
	}

	return &User{
		ID:       uuid.NewString(),
		Username: username,
		Nickname: nickname,
		Password: string(hash),
	}, nil
}

// CheckPassword reports whether raw matches the stored bcrypt hash.
func (u *User) CheckPassword(raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(raw)) == nil
}

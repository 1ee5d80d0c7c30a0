package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Admin is an operator account. The raw password is never stored.
type Admin struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:80;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Email        string    `gorm:"size:120" json:"email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (a *Admin) SetPassword(raw string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

func (a *Admin) CheckPassword(raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(raw)) == nil
}

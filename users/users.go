package users

import (
	"fmt"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           string    `bson:"_id,omitempty" json:"id,omitempty"`        // Unique identifier for the user
	Username     string    `bson:"username" json:"username,omitempty"`       // Unique username, the login identifier
	PasswordHash string    `bson:"password_hash" json:"-"`                   // Hashed version of the user's password - never serialize
	Name         string    `bson:"name,omitempty" json:"name,omitempty"`     // Display name
	DateJoined   time.Time `bson:"date_joined" json:"date_joined,omitempty"` // Date and time when the user registered
	LastLogin    time.Time `bson:"last_login" json:"last_login,omitempty"`   // Last time the user logged in

	Blocked bool `bson:"blocked,omitempty" json:"blocked,omitempty"` // Blocked, has the user been blocked from logging in
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CheckPassword checks a plaintext password against the user's stored hash
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.PasswordHash)
}

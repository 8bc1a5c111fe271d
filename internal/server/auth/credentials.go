package auth

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"maintrack/internal/common"
)

// bcryptCost is used when hashing new credential files.
const bcryptCost = 14

// Credentials is the on-disk operator login record. The password is
// stored as a bcrypt hash only.
type Credentials struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

// NewCredentials hashes the password into a fresh credential record.
func NewCredentials(username string, password []byte) (*Credentials, error) {
	hash, err := bcrypt.GenerateFromPassword(password, bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &Credentials{Username: username, PasswordHash: string(hash)}, nil
}

// LoadCredentials reads and parses a credentials file.
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	c := &Credentials{}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse credentials file: %w", err)
	}

	return c, nil
}

// SaveCredentials hashes the password and writes the credentials file
// with owner-only permissions.
func SaveCredentials(path, username string, password []byte) error {
	c, err := NewCredentials(username, password)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write credentials file: %w", err)
	}

	return nil
}

// Verify checks a login attempt against the stored record. It returns
// common.ErrUnauthorized for any mismatch, without telling which field
// was wrong.
func (c *Credentials) Verify(username string, password []byte) error {
	if username != c.Username {
		return common.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), password); err != nil {
		return common.ErrUnauthorized
	}
	return nil
}

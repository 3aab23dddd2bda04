// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrInvalidClientID = errors.New("invalid client id")
	ErrInvalidAdminKey = errors.New("invalid admin key")
)

// RecordPrefix marks ids minted for ledger and candidate rows
const RecordPrefix = "rec"

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateRecordID creates a row id shaped like the remote table store's
// record ids ("rec" + 14 characters)
func GenerateRecordID() (string, error) {
	id, err := GenerateID(7)
	if err != nil {
		return "", err
	}
	return RecordPrefix + id, nil
}

// GenerateClientID creates a new random client identifier
func GenerateClientID() string {
	return uuid.NewString()
}

// ValidateClientID checks that id is a UUID and returns its canonical form.
// Clients are anonymous; this only guards against garbage keys.
func ValidateClientID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", ErrInvalidClientID
	}
	return parsed.String(), nil
}

// ValidateAdminKey checks the provided key against the configured one. An
// unset key rejects everything.
func ValidateAdminKey(provided, expected string) error {
	if expected == "" || !hmac.Equal([]byte(provided), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

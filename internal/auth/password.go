// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth provides argon2id password hashing and the password rules
// applied at registration.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/argon2"
)

// params describes one argon2id configuration.
type params struct {
	memory  uint32
	time    uint32
	threads uint8
	keyLen  uint32
	saltLen uint32
}

// current is the configuration used for new hashes
// (OWASP second choice: m=19456, t=2, p=1).
var current = params{
	memory:  19 * 1024,
	time:    2,
	threads: 1,
	keyLen:  32,
	saltLen: 16,
}

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

// Password rule violations.
var (
	ErrPasswordTooShort     = fmt.Errorf("введённый пароль слишком короткий, он должен содержать как минимум %d символов", MinPasswordLength)
	ErrPasswordNumeric      = errors.New("введённый пароль состоит только из цифр")
	ErrPasswordCommon       = errors.New("введённый пароль слишком широко распространён")
	ErrPasswordLikeUsername = errors.New("введённый пароль слишком похож на имя пользователя")
	errInvalidHash          = errors.New("invalid hash format")
)

var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "12345678": {}, "123456789": {},
	"qwertyui": {}, "qwerty123": {}, "iloveyou": {}, "11111111": {},
	"changeme": {}, "letmein1": {}, "welcome1": {}, "admin123": {},
}

// HashPassword creates an encoded argon2id hash:
// $argon2id$v=19$m=19456,t=2,p=1$salt$hash
func HashPassword(password string) (string, error) {
	salt := make([]byte, current.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, current.time, current.memory, current.threads, current.keyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, current.memory, current.time, current.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// CheckPassword verifies a password against an encoded hash in constant time.
func CheckPassword(password, encodedHash string) (bool, error) {
	p, salt, key, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}

	other := argon2.IDKey([]byte(password), salt, p.time, p.memory, p.threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(other, key) == 1, nil
}

// NeedsRehash reports whether a stored hash was created with parameters
// other than the current ones.
func NeedsRehash(encodedHash string) bool {
	p, _, _, err := decodeHash(encodedHash)
	if err != nil {
		return true
	}
	return p.memory != current.memory || p.time != current.time || p.threads != current.threads
}

func decodeHash(encoded string) (params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return params{}, nil, nil, errInvalidHash
	}
	if parts[1] != "argon2id" {
		return params{}, nil, nil, fmt.Errorf("unsupported hash type: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return params{}, nil, nil, fmt.Errorf("parsing version: %w", err)
	}

	var p params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return params{}, nil, nil, fmt.Errorf("parsing parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params{}, nil, nil, fmt.Errorf("decoding salt: %w", err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return params{}, nil, nil, fmt.Errorf("decoding hash: %w", err)
	}

	return p, salt, key, nil
}

// ValidatePassword applies the registration password rules and returns
// every violated rule.
func ValidatePassword(password, username string) []error {
	var errs []error

	if len([]rune(password)) < MinPasswordLength {
		errs = append(errs, ErrPasswordTooShort)
	}
	if password != "" && strings.IndexFunc(password, func(r rune) bool { return !unicode.IsDigit(r) }) == -1 {
		errs = append(errs, ErrPasswordNumeric)
	}
	if _, ok := commonPasswords[strings.ToLower(password)]; ok {
		errs = append(errs, ErrPasswordCommon)
	}
	if username != "" && len(username) >= 3 {
		lp, lu := strings.ToLower(password), strings.ToLower(username)
		if strings.Contains(lp, lu) || strings.Contains(lu, lp) {
			errs = append(errs, ErrPasswordLikeUsername)
		}
	}

	return errs
}

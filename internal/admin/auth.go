// Package admin implements the single-account session login that gates
// article management and uploads.
package admin

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"

	"github.com/neuroeducatimo/landing/pkg/config"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrOTPRequired        = errors.New("one-time code required")
	ErrLoginDisabled      = errors.New("admin login is not configured")
)

// Authenticator checks the configured admin identity
type Authenticator struct {
	username     string
	passwordHash []byte
	totpSecret   string
}

// NewAuthenticator builds an authenticator from config. A plain password is
// hashed once at startup; a bcrypt hash is used as given. With neither set
// every login fails.
func NewAuthenticator(cfg config.AdminConfig) (*Authenticator, error) {
	a := &Authenticator{
		username:   strings.TrimSpace(cfg.Username),
		totpSecret: strings.TrimSpace(cfg.TOTPSecret),
	}

	switch {
	case cfg.PasswordHash != "":
		if _, err := bcrypt.Cost([]byte(cfg.PasswordHash)); err != nil {
			return nil, fmt.Errorf("invalid ADMIN_PASSWORD_HASH: %w", err)
		}
		a.passwordHash = []byte(cfg.PasswordHash)
	case cfg.Password != "":
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
		a.passwordHash = hash
	}
	return a, nil
}

// Enabled reports whether a password is configured
func (a *Authenticator) Enabled() bool {
	return a.username != "" && len(a.passwordHash) > 0
}

// OTPRequired reports whether logins need a TOTP code
func (a *Authenticator) OTPRequired() bool {
	return a.totpSecret != ""
}

// Verify checks the credentials. The password is always compared so a wrong
// username takes as long as a wrong password.
func (a *Authenticator) Verify(username, password, code string) error {
	if !a.Enabled() {
		return ErrLoginDisabled
	}

	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(a.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		return ErrInvalidCredentials
	}

	if a.OTPRequired() {
		code = strings.TrimSpace(code)
		if code == "" {
			return ErrOTPRequired
		}
		if !totp.Validate(code, a.totpSecret) {
			return ErrInvalidCredentials
		}
	}
	return nil
}

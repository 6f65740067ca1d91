package staffauth

import (
	"bytes"
	"errors"
	"time"
)

// Config defines a public type used by staffauth APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	JWT        JWTConfig
	TOTP       TOTPConfig
	Reset      ResetConfig
	Revocation RevocationConfig
}

// JWTConfig defines a public type used by staffauth APIs.
//
// The access and refresh secrets are the externally tunable signing keys of
// the core and must differ: a refresh token must never verify as an access
// token.
type JWTConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	// TempTTL bounds the window between password verification and
	// two-factor completion.
	TempTTL time.Duration
	Issuer  string
}

// TOTPConfig defines a public type used by staffauth APIs.
//
// TOTPConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TOTPConfig struct {
	Issuer    string
	Digits    int
	Period    int
	Skew      int
	Algorithm string // "SHA1" (default), "SHA256", "SHA512"
}

// ResetConfig defines a public type used by staffauth APIs.
//
// ResetConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ResetConfig struct {
	TokenTTL time.Duration
	// LinkBase is the absolute URL of the reset form; the token is appended
	// as a query parameter before hand-off to the Notifier.
	LinkBase string
}

// RevocationConfig defines a public type used by staffauth APIs.
//
// RevocationConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RevocationConfig struct {
	RedisKey     string
	ReapInterval time.Duration
}

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig returns a configuration with production defaults for every
// field except the signing secrets, which the caller must supply.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 7 * 24 * time.Hour,
			TempTTL:    5 * time.Minute,
			Issuer:     "staffauth",
		},
		TOTP: TOTPConfig{
			Issuer:    "staffauth",
			Digits:    6,
			Period:    30,
			Skew:      1,
			Algorithm: "SHA1",
		},
		Reset: ResetConfig{
			TokenTTL: time.Hour,
		},
		Revocation: RevocationConfig{
			RedisKey:     "staffauth:revoked",
			ReapInterval: time.Hour,
		},
	}
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
func (c Config) Validate() error {
	if len(c.JWT.AccessSecret) == 0 {
		return errors.New("jwt access secret is required")
	}
	if len(c.JWT.RefreshSecret) == 0 {
		return errors.New("jwt refresh secret is required")
	}
	if bytes.Equal(c.JWT.AccessSecret, c.JWT.RefreshSecret) {
		return errors.New("access and refresh secrets must differ")
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 || c.JWT.TempTTL <= 0 {
		return errors.New("invalid TTL configuration")
	}
	if c.JWT.RefreshTTL <= c.JWT.AccessTTL {
		return errors.New("refresh TTL must exceed access TTL")
	}
	if c.TOTP.Digits < 6 || c.TOTP.Digits > 8 {
		return errors.New("totp digits must be between 6 and 8")
	}
	if c.TOTP.Period <= 0 {
		return errors.New("totp period must be positive")
	}
	if c.TOTP.Skew < 0 || c.TOTP.Skew > 2 {
		return errors.New("totp skew must be between 0 and 2")
	}
	if c.Reset.TokenTTL <= 0 {
		return errors.New("reset token TTL must be positive")
	}
	if c.Revocation.ReapInterval <= 0 {
		return errors.New("revocation reap interval must be positive")
	}
	return nil
}

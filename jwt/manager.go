package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config defines a public type used by staffauth APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	TempTTL       time.Duration
	Issuer        string
	Leeway        time.Duration
}

// Manager defines a public type used by staffauth APIs.
//
// Manager instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Manager struct {
	config Config
}

// Claims is the staffauth claim set. Subject carries the account id; the
// two-factor flags mark tokens in transitional states and are consulted by
// the protected-resource gate.
type Claims struct {
	Email             string `json:"email,omitempty"`
	Role              string `json:"role,omitempty"`
	EmployeeNumber    string `json:"employeeNumber,omitempty"`
	TwoFactorPending  bool   `json:"tfaPending,omitempty"`
	TwoFactorVerified bool   `json:"tfaVerified,omitempty"`
	jwt.RegisteredClaims
}

// NewManager describes the newmanager operation and its observable behavior.
//
// NewManager may return an error when input validation, dependency calls, or security checks fail.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.AccessSecret) == 0 || len(cfg.RefreshSecret) == 0 {
		return nil, errors.New("both signing secrets are required")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 || cfg.TempTTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}
	return &Manager{config: cfg}, nil
}

// SignAccess mints an access token from the claim set with the access secret
// and TTL. Registered claims are overwritten; caller-set flags are kept.
func (m *Manager) SignAccess(c Claims) (string, error) {
	return m.sign(c, m.config.AccessSecret, m.config.AccessTTL)
}

// SignRefresh mints a refresh token with the refresh secret and TTL.
func (m *Manager) SignRefresh(c Claims) (string, error) {
	return m.sign(c, m.config.RefreshSecret, m.config.RefreshTTL)
}

// SignTemp mints the short-lived token issued after a successful password
// check when a second factor is still outstanding. The pending flag is
// forced on and the verified flag forced off regardless of input.
func (m *Manager) SignTemp(c Claims) (string, error) {
	c.TwoFactorPending = true
	c.TwoFactorVerified = false
	return m.sign(c, m.config.AccessSecret, m.config.TempTTL)
}

func (m *Manager) sign(c Claims, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	c.RegisteredClaims.IssuedAt = jwt.NewNumericDate(now)
	c.RegisteredClaims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	if m.config.Issuer != "" {
		c.RegisteredClaims.Issuer = m.config.Issuer
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(secret)
}

// ParseAccess verifies signature and expiry against the access secret.
// Temporary tokens also parse here; callers distinguish them by the pending
// flag.
func (m *Manager) ParseAccess(tokenStr string) (*Claims, error) {
	return m.parse(tokenStr, m.config.AccessSecret, false)
}

// ParseRefresh verifies signature and expiry against the refresh secret.
func (m *Manager) ParseRefresh(tokenStr string) (*Claims, error) {
	return m.parse(tokenStr, m.config.RefreshSecret, false)
}

// ParseExpired verifies only the signature against the access secret,
// accepting expired tokens. Logout uses it: an expired token is harmless to
// blacklist, but an unsigned one cannot be attributed at all.
func (m *Manager) ParseExpired(tokenStr string) (*Claims, error) {
	return m.parse(tokenStr, m.config.AccessSecret, true)
}

func (m *Manager) parse(tokenStr string, secret []byte, allowExpired bool) (*Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if m.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(m.config.Leeway))
	}
	if allowExpired {
		options = append(options, jwt.WithoutClaimsValidation())
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, options...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

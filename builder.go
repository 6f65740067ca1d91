package staffauth

import (
	"errors"

	"github.com/peoplekit/staffauth/jwt"
	"github.com/peoplekit/staffauth/password"
	"github.com/redis/go-redis/v9"
)

// Builder defines a public type used by staffauth APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config      Config
	redis       *redis.Client
	directory   AccountDirectory
	invitations InvitationStore
	notifier    Notifier

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
func New() *Builder {
	return &Builder{config: defaultConfig()}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis may return an error when input validation, dependency calls, or security checks fail.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithDirectory describes the withdirectory operation and its observable behavior.
//
// WithDirectory may return an error when input validation, dependency calls, or security checks fail.
func (b *Builder) WithDirectory(dir AccountDirectory) *Builder {
	b.directory = dir
	return b
}

// WithInvitations describes the withinvitations operation and its observable behavior.
//
// WithInvitations may return an error when input validation, dependency calls, or security checks fail.
func (b *Builder) WithInvitations(store InvitationStore) *Builder {
	b.invitations = store
	return b
}

// WithNotifier describes the withnotifier operation and its observable behavior.
//
// WithNotifier may return an error when input validation, dependency calls, or security checks fail.
func (b *Builder) WithNotifier(n Notifier) *Builder {
	b.notifier = n
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Construction is allocation-only: no I/O happens until the first Engine
// method call, and no background task starts implicitly. The caller owns
// the reaper via [NewReaper] and [Engine.Revocations].
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if b.redis == nil {
		return nil, errors.New("redis client is required")
	}
	if b.directory == nil {
		return nil, errors.New("account directory is required")
	}
	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	jwtManager, err := jwt.NewManager(jwt.Config{
		AccessSecret:  b.config.JWT.AccessSecret,
		RefreshSecret: b.config.JWT.RefreshSecret,
		AccessTTL:     b.config.JWT.AccessTTL,
		RefreshTTL:    b.config.JWT.RefreshTTL,
		TempTTL:       b.config.JWT.TempTTL,
		Issuer:        b.config.JWT.Issuer,
	})
	if err != nil {
		return nil, err
	}

	hasher, err := password.NewArgon2(password.DefaultConfig())
	if err != nil {
		return nil, err
	}

	b.built = true
	return &Engine{
		config:       b.config,
		directory:    b.directory,
		invitations:  b.invitations,
		notifier:     b.notifier,
		passwordHash: hasher,
		totp:         newTOTPManager(b.config.TOTP),
		jwtManager:   jwtManager,
		revoked:      NewRevocationList(b.redis, b.config.Revocation.RedisKey),
	}, nil
}

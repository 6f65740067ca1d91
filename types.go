package staffauth

import (
	"context"
	"time"
)

// Account is the identity record owned by the external Account Directory.
// The engine reads it in full but only ever writes back the credential hash,
// the reset-token pair, and the two-factor fields.
type Account struct {
	ID               string
	Email            string
	EmployeeNumber   string
	PasswordHash     string
	Role             Role
	TwoFactorEnabled bool
	// TwoFactorSecret is present only between enrollment and either
	// activation or abandonment. Disabling 2FA clears it.
	TwoFactorSecret     string
	ResetToken          string
	ResetTokenExpiresAt time.Time
	Active              bool
	CreatedAt           time.Time
}

// AccountUpdate is a partial update applied to a single account record.
// Nil fields are left untouched; pointers to zero values clear the field.
type AccountUpdate struct {
	PasswordHash        *string
	Role                *Role
	TwoFactorEnabled    *bool
	TwoFactorSecret     *string
	ResetToken          *string
	ResetTokenExpiresAt *time.Time
	Active              *bool
}

// AccountDirectory is the primary interface that callers must implement to
// integrate staffauth with their employee database. FindBy* methods return
// (nil, nil) when no record matches, leaving the not-found decision to the
// engine. Create and Update are the only mutations the engine performs and
// each targets a single keyed record; the backing store's own atomicity is
// relied on for concurrency safety.
type AccountDirectory interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id string) (*Account, error)
	FindByEmployeeNumber(ctx context.Context, number string) (*Account, error)
	FindByResetToken(ctx context.Context, token string) (*Account, error)
	Create(ctx context.Context, account *Account) error
	Update(ctx context.Context, id string, update AccountUpdate) error
	Count(ctx context.Context) (int, error)
}

// Invitation is a single-use, expiring grant permitting a specific email to
// register with a specific role. Invitations are owned by an external store;
// the engine only consumes them during registration.
type Invitation struct {
	Token     string
	Email     string
	Role      Role
	ExpiresAt time.Time
	CreatedAt time.Time
}

// InvitationStore exposes the external invitation collection to the engine.
// FindByToken returns (nil, nil) when no invitation matches.
type InvitationStore interface {
	FindByToken(ctx context.Context, token string) (*Invitation, error)
	Delete(ctx context.Context, token string) error
}

// Notifier delivers outbound messages on behalf of the engine. Message
// content and transport are the caller's concern; the engine only hands over
// the reset link.
type Notifier interface {
	SendPasswordReset(ctx context.Context, email, resetLink string) error
}

// RegisterInput carries a registration request into [Engine.Register].
// InvitationToken is required for every non-administrator registration; the
// first account ever created may register as administrator without one.
type RegisterInput struct {
	Email           string
	EmployeeNumber  string
	Password        string
	Role            Role
	InvitationToken string
}

// LoginResult is returned by [Engine.Login]. When the account has two-factor
// authentication enabled, TwoFactorPending is true and TempToken carries the
// short-lived challenge token instead of the access/refresh pair.
type LoginResult struct {
	AccessToken      string
	RefreshToken     string
	TempToken        string
	TwoFactorPending bool
}

// TokenPair is the access/refresh pair issued on a fully authenticated login
// or a completed two-factor challenge.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Identity is the verified-identity claim set exposed to protected request
// handlers after [Engine.Authenticate] accepts an access token.
type Identity struct {
	AccountID      string
	Email          string
	Role           Role
	EmployeeNumber string
}

// TOTPSetup holds the pending secret, otpauth:// provisioning URI, and the
// scannable PNG rendering returned by [Engine.GenerateTOTPSetup].
type TOTPSetup struct {
	SecretBase32    string
	ProvisioningURI string
	QRCodePNG       []byte
}

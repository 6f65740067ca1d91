package staffauth

import "errors"

var (
	// ErrEngineNotReady is an exported constant or variable used by the authentication engine.
	ErrEngineNotReady = errors.New("engine not ready")
	// ErrInvalidCredentials is an exported constant or variable used by the authentication engine.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidRefreshToken is an exported constant or variable used by the authentication engine.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	// ErrInvalidResetToken is an exported constant or variable used by the authentication engine.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	// ErrInvalidCode is an exported constant or variable used by the authentication engine.
	ErrInvalidCode = errors.New("invalid two-factor code")
	// ErrTwoFactorRequired is an exported constant or variable used by the authentication engine.
	ErrTwoFactorRequired = errors.New("two-factor authentication required")
	// ErrTokenRevoked is an exported constant or variable used by the authentication engine.
	ErrTokenRevoked = errors.New("token has been revoked")
	// ErrTokenInvalid is an exported constant or variable used by the authentication engine.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrAlreadyExists is an exported constant or variable used by the authentication engine.
	ErrAlreadyExists = errors.New("email or employee number already exists")
	// ErrNotFound is an exported constant or variable used by the authentication engine.
	ErrNotFound = errors.New("account not found")
	// ErrInvitationInvalid is an exported constant or variable used by the authentication engine.
	ErrInvitationInvalid = errors.New("invalid or expired invitation")
	// ErrRoleInvalid is an exported constant or variable used by the authentication engine.
	ErrRoleInvalid = errors.New("invalid account role")
	// ErrForbidden is an exported constant or variable used by the authentication engine.
	ErrForbidden = errors.New("operation not permitted for role")
	// ErrPasswordReuse is an exported constant or variable used by the authentication engine.
	ErrPasswordReuse = errors.New("new password must be different from current password")
	// ErrTOTPNotConfigured is an exported constant or variable used by the authentication engine.
	ErrTOTPNotConfigured = errors.New("totp not configured")
	// ErrTOTPAlreadyEnabled is an exported constant or variable used by the authentication engine.
	ErrTOTPAlreadyEnabled = errors.New("totp already enabled")
	// ErrPasswordPolicy is an exported constant or variable used by the authentication engine.
	ErrPasswordPolicy = errors.New("password policy violation")
)

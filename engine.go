package staffauth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/peoplekit/staffauth/jwt"
	"github.com/peoplekit/staffauth/password"
)

// Engine defines a public type used by staffauth APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
// The engine itself is stateless per request; all shared state lives in the
// Account Directory and the revocation list.
type Engine struct {
	config       Config
	directory    AccountDirectory
	invitations  InvitationStore
	notifier     Notifier
	passwordHash *password.Argon2
	totp         *totpManager
	jwtManager   *jwt.Manager
	revoked      *RevocationList

	// bootstrapMu serializes the count-check-then-insert sequence of the
	// first-administrator bootstrap so two concurrent first registrations
	// cannot both be granted the admin role.
	bootstrapMu sync.Mutex
}

// Revocations returns the engine's revocation list so process initialization
// can own the reaper lifecycle.
func (e *Engine) Revocations() *RevocationList {
	if e == nil {
		return nil
	}
	return e.revoked
}

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// An absent account, an inactive account, and a password mismatch all yield
// ErrInvalidCredentials so callers cannot enumerate accounts.
func (e *Engine) Login(ctx context.Context, email, pass string) (*LoginResult, error) {
	if e == nil || e.passwordHash == nil {
		return nil, ErrEngineNotReady
	}
	if email == "" || pass == "" {
		return nil, ErrInvalidCredentials
	}

	acct, err := e.directory.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("account lookup: %w", err)
	}
	if acct == nil || !acct.Active {
		return nil, ErrInvalidCredentials
	}

	ok, err := e.passwordHash.Verify(pass, acct.PasswordHash)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}
	pass = ""

	if acct.TwoFactorEnabled {
		temp, err := e.jwtManager.SignTemp(e.claimsFor(acct))
		if err != nil {
			return nil, fmt.Errorf("sign temp token: %w", err)
		}
		return &LoginResult{TempToken: temp, TwoFactorPending: true}, nil
	}

	pair, err := e.issueTokenPair(acct, false)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// VerifyTwoFactor completes a pending login. The temporary token must carry
// the pending flag and still be within its five-minute window; every failure
// mode beyond internal errors collapses into ErrInvalidCode so the caller
// cannot tell which check rejected the attempt.
func (e *Engine) VerifyTwoFactor(ctx context.Context, tempToken, code string) (*TokenPair, error) {
	if e == nil || e.totp == nil {
		return nil, ErrEngineNotReady
	}

	claims, err := e.jwtManager.ParseAccess(tempToken)
	if err != nil || !claims.TwoFactorPending {
		return nil, ErrInvalidCode
	}

	acct, err := e.directory.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("account lookup: %w", err)
	}
	if acct == nil || !acct.Active || acct.TwoFactorSecret == "" {
		return nil, ErrInvalidCode
	}

	ok, err := e.totp.VerifyCode(acct.TwoFactorSecret, code, time.Now())
	if err != nil || !ok {
		return nil, ErrInvalidCode
	}

	return e.issueTokenPair(acct, true)
}

// Authenticate is the protected-resource gate applied to every authenticated
// request. The check order is fixed: signature and expiry, the transitional
// pending flag, the revocation list, then the account's own two-factor state.
func (e *Engine) Authenticate(ctx context.Context, tokenStr string) (*Identity, error) {
	if e == nil || e.jwtManager == nil {
		return nil, ErrEngineNotReady
	}

	claims, err := e.jwtManager.ParseAccess(tokenStr)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	if claims.TwoFactorPending {
		return nil, ErrTwoFactorRequired
	}

	revoked, err := e.revoked.Contains(ctx, tokenStr)
	if err != nil {
		return nil, fmt.Errorf("revocation check: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	acct, err := e.directory.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("account lookup: %w", err)
	}
	if acct == nil || !acct.Active {
		return nil, ErrNotFound
	}
	if acct.TwoFactorEnabled && !claims.TwoFactorVerified {
		return nil, ErrTwoFactorRequired
	}

	return &Identity{
		AccountID:      acct.ID,
		Email:          acct.Email,
		Role:           acct.Role,
		EmployeeNumber: acct.EmployeeNumber,
	}, nil
}

// Refresh describes the refresh operation and its observable behavior.
//
// Refresh re-issues an access token with fresh claims from the current
// account state; role or employee number changes since the original login
// are picked up here. Every verification failure returns
// ErrInvalidRefreshToken, never partial information.
func (e *Engine) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if e == nil || e.jwtManager == nil {
		return "", ErrEngineNotReady
	}

	claims, err := e.jwtManager.ParseRefresh(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	acct, err := e.directory.FindByID(ctx, claims.Subject)
	if err != nil {
		return "", fmt.Errorf("account lookup: %w", err)
	}
	if acct == nil || !acct.Active {
		return "", ErrInvalidRefreshToken
	}

	fresh := e.claimsFor(acct)
	fresh.TwoFactorVerified = claims.TwoFactorVerified

	access, err := e.jwtManager.SignAccess(fresh)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return access, nil
}

// Logout describes the logout operation and its observable behavior.
//
// Logout is best-effort and idempotent: a malformed or unsigned token cannot
// meaningfully be blacklisted and is swallowed as success, an expired token
// is harmless to blacklist, and re-blacklisting is a no-op.
func (e *Engine) Logout(ctx context.Context, tokenStr string) error {
	if e == nil || e.jwtManager == nil {
		return ErrEngineNotReady
	}

	claims, err := e.jwtManager.ParseExpired(tokenStr)
	if err != nil {
		return nil
	}

	expiresAt := time.Now().Add(e.config.JWT.AccessTTL)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return e.revoked.Revoke(ctx, tokenStr, expiresAt)
}

// ChangePassword describes the changepassword operation and its observable behavior.
//
// ChangePassword may return an error when input validation, dependency calls, or security checks fail.
func (e *Engine) ChangePassword(ctx context.Context, accountID, oldPassword, newPassword string) error {
	if e == nil || e.passwordHash == nil {
		return ErrEngineNotReady
	}
	if accountID == "" || oldPassword == "" || newPassword == "" {
		return ErrInvalidCredentials
	}
	if len(newPassword) < password.MinPasswordBytes {
		return ErrPasswordPolicy
	}

	acct, err := e.directory.FindByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("account lookup: %w", err)
	}
	if acct == nil || !acct.Active {
		return ErrNotFound
	}

	ok, err := e.passwordHash.Verify(oldPassword, acct.PasswordHash)
	if err != nil || !ok {
		return ErrInvalidCredentials
	}

	same, err := e.passwordHash.Verify(newPassword, acct.PasswordHash)
	if err == nil && same {
		return ErrPasswordReuse
	}

	newHash, err := e.passwordHash.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	oldPassword = ""
	newPassword = ""

	if err := e.directory.Update(ctx, acct.ID, AccountUpdate{PasswordHash: &newHash}); err != nil {
		return fmt.Errorf("update credential: %w", err)
	}
	return nil
}

func (e *Engine) claimsFor(acct *Account) jwt.Claims {
	c := jwt.Claims{
		Email:          acct.Email,
		Role:           string(acct.Role),
		EmployeeNumber: acct.EmployeeNumber,
	}
	c.Subject = acct.ID
	return c
}

func (e *Engine) issueTokenPair(acct *Account, twoFactorVerified bool) (*TokenPair, error) {
	claims := e.claimsFor(acct)
	claims.TwoFactorVerified = twoFactorVerified

	access, err := e.jwtManager.SignAccess(claims)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := e.jwtManager.SignRefresh(claims)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

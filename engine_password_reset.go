package staffauth

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/peoplekit/staffauth/password"
)

// RequestPasswordReset describes the requestpasswordreset operation and its observable behavior.
//
// The response is identical whether or not the email belongs to an account:
// an unknown address returns success with no further action, a known one
// stores a fresh single-use token with a one-hour expiry and hands the reset
// link to the notifier. Notifier failures are logged, not surfaced, since an
// error here would reveal that the address exists.
func (e *Engine) RequestPasswordReset(ctx context.Context, email string) error {
	if e == nil || e.directory == nil {
		return ErrEngineNotReady
	}
	if email == "" {
		return nil
	}

	acct, err := e.directory.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("account lookup: %w", err)
	}
	if acct == nil || !acct.Active {
		return nil
	}

	token := uuid.NewString()
	expiresAt := time.Now().Add(e.config.Reset.TokenTTL)
	err = e.directory.Update(ctx, acct.ID, AccountUpdate{
		ResetToken:          &token,
		ResetTokenExpiresAt: &expiresAt,
	})
	if err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	if e.notifier != nil {
		if err := e.notifier.SendPasswordReset(ctx, acct.Email, e.resetLink(token)); err != nil {
			log.Print("staffauth: reset notification failed")
		}
	}
	return nil
}

// ResetPassword describes the resetpassword operation and its observable behavior.
//
// Redemption is single-use: the token and its expiry are cleared in the same
// directory update that installs the new credential hash, so a second
// redemption with the same token fails.
func (e *Engine) ResetPassword(ctx context.Context, token, newPassword string) error {
	if e == nil || e.passwordHash == nil {
		return ErrEngineNotReady
	}
	if token == "" || newPassword == "" {
		return ErrInvalidResetToken
	}
	if len(newPassword) < password.MinPasswordBytes {
		return ErrPasswordPolicy
	}

	acct, err := e.directory.FindByResetToken(ctx, token)
	if err != nil {
		return fmt.Errorf("account lookup: %w", err)
	}
	if acct == nil || !acct.ResetTokenExpiresAt.After(time.Now()) {
		return ErrInvalidResetToken
	}

	hash, err := e.passwordHash.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	newPassword = ""

	var clearToken string
	var clearExpiry time.Time
	err = e.directory.Update(ctx, acct.ID, AccountUpdate{
		PasswordHash:        &hash,
		ResetToken:          &clearToken,
		ResetTokenExpiresAt: &clearExpiry,
	})
	if err != nil {
		return fmt.Errorf("update credential: %w", err)
	}
	return nil
}

func (e *Engine) resetLink(token string) string {
	base := e.config.Reset.LinkBase
	if base == "" {
		base = "/auth/reset-password"
	}
	return base + "?token=" + url.QueryEscape(token)
}

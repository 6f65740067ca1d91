package staffauth

import (
	"context"
	"fmt"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

const qrCodeSizePx = 256

// GenerateTOTPSetup describes the generatetotpsetup operation and its observable behavior.
//
// Enrollment stores the fresh secret on the account as pending; the enabled
// flag stays off until [Engine.EnableTOTP] confirms possession. Re-running
// setup replaces any earlier pending secret. An active second factor must be
// disabled through [Engine.DisableTOTP] first: replacing a live secret with
// one the bearer session just minted would let that session pass the disable
// step-up without ever proving the password or the original secret.
func (e *Engine) GenerateTOTPSetup(ctx context.Context, accountID string) (*TOTPSetup, error) {
	if e == nil || e.totp == nil {
		return nil, ErrEngineNotReady
	}

	acct, err := e.directory.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("account lookup: %w", err)
	}
	if acct == nil || !acct.Active {
		return nil, ErrNotFound
	}
	if acct.TwoFactorEnabled {
		return nil, ErrTOTPAlreadyEnabled
	}

	secret, err := e.totp.GenerateSecret()
	if err != nil {
		return nil, fmt.Errorf("generate totp secret: %w", err)
	}

	if err := e.directory.Update(ctx, acct.ID, AccountUpdate{TwoFactorSecret: &secret}); err != nil {
		return nil, fmt.Errorf("store totp secret: %w", err)
	}

	uri := e.totp.ProvisionURI(secret, acct.Email)
	png, err := qrcode.Encode(uri, qrcode.Medium, qrCodeSizePx)
	if err != nil {
		return nil, fmt.Errorf("render qr code: %w", err)
	}

	return &TOTPSetup{
		SecretBase32:    secret,
		ProvisioningURI: uri,
		QRCodePNG:       png,
	}, nil
}

// EnableTOTP describes the enabletotp operation and its observable behavior.
//
// A wrong code leaves the secret pending so the user can retry with the next
// window; only a correct code flips the enabled flag.
func (e *Engine) EnableTOTP(ctx context.Context, accountID, code string) error {
	if e == nil || e.totp == nil {
		return ErrEngineNotReady
	}

	acct, err := e.directory.FindByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("account lookup: %w", err)
	}
	if acct == nil || !acct.Active {
		return ErrNotFound
	}
	if acct.TwoFactorSecret == "" {
		return ErrTOTPNotConfigured
	}

	ok, err := e.totp.VerifyCode(acct.TwoFactorSecret, code, time.Now())
	if err != nil || !ok {
		return ErrInvalidCode
	}

	enabled := true
	if err := e.directory.Update(ctx, acct.ID, AccountUpdate{TwoFactorEnabled: &enabled}); err != nil {
		return fmt.Errorf("enable totp: %w", err)
	}
	return nil
}

// DisableTOTP describes the disabletotp operation and its observable behavior.
//
// Disabling requires fresh proof of possession: either the current password
// or a valid code from the active secret. A bearer token alone is not
// enough: a hijacked session must not be able to strip the second factor.
// On success both the enabled flag and the secret are cleared.
func (e *Engine) DisableTOTP(ctx context.Context, accountID, currentPassword, code string) error {
	if e == nil || e.totp == nil || e.passwordHash == nil {
		return ErrEngineNotReady
	}

	acct, err := e.directory.FindByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("account lookup: %w", err)
	}
	if acct == nil || !acct.Active {
		return ErrNotFound
	}

	switch {
	case currentPassword != "":
		ok, err := e.passwordHash.Verify(currentPassword, acct.PasswordHash)
		if err != nil || !ok {
			return ErrInvalidCredentials
		}
	case code != "" && acct.TwoFactorSecret != "":
		ok, err := e.totp.VerifyCode(acct.TwoFactorSecret, code, time.Now())
		if err != nil || !ok {
			return ErrInvalidCode
		}
	default:
		return ErrInvalidCredentials
	}

	disabled := false
	var clearSecret string
	err = e.directory.Update(ctx, acct.ID, AccountUpdate{
		TwoFactorEnabled: &disabled,
		TwoFactorSecret:  &clearSecret,
	})
	if err != nil {
		return fmt.Errorf("disable totp: %w", err)
	}
	return nil
}

package staffauth

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/peoplekit/staffauth/password"
)

// Register describes the register operation and its observable behavior.
//
// Registration is invitation-gated: every non-administrator registration
// requires a valid, unexpired invitation matching the email, consumed on
// success. The one exception is bootstrap: when the directory is empty the
// first account may register as administrator without an invitation. The
// count-check-then-insert sequence is serialized so concurrent first
// registrations yield exactly one administrator.
func (e *Engine) Register(ctx context.Context, input RegisterInput) (*Account, error) {
	if e == nil || e.passwordHash == nil {
		return nil, ErrEngineNotReady
	}
	if input.Email == "" || input.EmployeeNumber == "" || input.Password == "" {
		return nil, ErrInvalidCredentials
	}

	role := input.Role
	if role == "" {
		role = RoleEmployee
	}

	if input.InvitationToken == "" && role == RoleAdmin {
		return e.registerBootstrapAdmin(ctx, input)
	}

	if input.InvitationToken == "" {
		return nil, ErrInvitationInvalid
	}
	if e.invitations == nil {
		return nil, ErrEngineNotReady
	}

	inv, err := e.invitations.FindByToken(ctx, input.InvitationToken)
	if err != nil {
		return nil, fmt.Errorf("invitation lookup: %w", err)
	}
	if inv == nil || !inv.ExpiresAt.After(time.Now()) {
		return nil, ErrInvitationInvalid
	}
	if inv.Email != input.Email {
		return nil, ErrInvitationInvalid
	}
	role = inv.Role

	acct, err := e.createAccount(ctx, input, role)
	if err != nil {
		return nil, err
	}

	// Invitation deletion is best-effort: the account exists either way and
	// a leftover invitation cannot be replayed against a taken email.
	if err := e.invitations.Delete(ctx, input.InvitationToken); err != nil {
		log.Print("staffauth: invitation cleanup failed")
	}
	return acct, nil
}

func (e *Engine) registerBootstrapAdmin(ctx context.Context, input RegisterInput) (*Account, error) {
	e.bootstrapMu.Lock()
	defer e.bootstrapMu.Unlock()

	count, err := e.directory.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("directory count: %w", err)
	}
	if count > 0 {
		return nil, ErrInvitationInvalid
	}

	return e.createAccount(ctx, input, RoleAdmin)
}

func (e *Engine) createAccount(ctx context.Context, input RegisterInput, role Role) (*Account, error) {
	if !role.Valid() {
		return nil, ErrRoleInvalid
	}
	if len(input.Password) < password.MinPasswordBytes {
		return nil, ErrPasswordPolicy
	}

	existing, err := e.directory.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("account lookup: %w", err)
	}
	if existing == nil {
		existing, err = e.directory.FindByEmployeeNumber(ctx, input.EmployeeNumber)
		if err != nil {
			return nil, fmt.Errorf("account lookup: %w", err)
		}
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}

	hash, err := e.passwordHash.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	input.Password = ""

	acct := &Account{
		ID:             uuid.NewString(),
		Email:          input.Email,
		EmployeeNumber: input.EmployeeNumber,
		PasswordHash:   hash,
		Role:           role,
		Active:         true,
		CreatedAt:      time.Now(),
	}

	// The directory's unique constraints are the last line of defense
	// against a concurrent duplicate slipping past the lookups above.
	if err := e.directory.Create(ctx, acct); err != nil {
		return nil, err
	}

	out := *acct
	out.PasswordHash = ""
	return &out, nil
}

package memdir

import (
	"context"
	"sync"
	"time"

	staffauth "github.com/peoplekit/staffauth"
)

// Directory is a concurrency-safe, map-backed AccountDirectory. Uniqueness
// of email and employee number is enforced the way a relational directory
// would enforce it with unique indexes.
type Directory struct {
	mu       sync.RWMutex
	byID     map[string]*staffauth.Account
	byEmail  map[string]string
	byNumber map[string]string
}

// NewDirectory describes the newdirectory operation and its observable behavior.
//
// NewDirectory may return an error when input validation, dependency calls, or security checks fail.
func NewDirectory() *Directory {
	return &Directory{
		byID:     make(map[string]*staffauth.Account),
		byEmail:  make(map[string]string),
		byNumber: make(map[string]string),
	}
}

// FindByEmail describes the findbyemail operation and its observable behavior.
//
// FindByEmail may return an error when input validation, dependency calls, or security checks fail.
func (d *Directory) FindByEmail(_ context.Context, email string) (*staffauth.Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.copyOf(d.byEmail[email]), nil
}

// FindByID describes the findbyid operation and its observable behavior.
//
// FindByID may return an error when input validation, dependency calls, or security checks fail.
func (d *Directory) FindByID(_ context.Context, id string) (*staffauth.Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.copyOf(id), nil
}

// FindByEmployeeNumber describes the findbyemployeenumber operation and its observable behavior.
//
// FindByEmployeeNumber may return an error when input validation, dependency calls, or security checks fail.
func (d *Directory) FindByEmployeeNumber(_ context.Context, number string) (*staffauth.Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.copyOf(d.byNumber[number]), nil
}

// FindByResetToken describes the findbyresettoken operation and its observable behavior.
//
// FindByResetToken may return an error when input validation, dependency calls, or security checks fail.
func (d *Directory) FindByResetToken(_ context.Context, token string) (*staffauth.Account, error) {
	if token == "" {
		return nil, nil
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	for id, acct := range d.byID {
		if acct.ResetToken == token {
			return d.copyOf(id), nil
		}
	}
	return nil, nil
}

// Create describes the create operation and its observable behavior.
//
// Create may return an error when input validation, dependency calls, or security checks fail.
func (d *Directory) Create(_ context.Context, account *staffauth.Account) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.byID[account.ID]; ok {
		return staffauth.ErrAlreadyExists
	}
	if _, ok := d.byEmail[account.Email]; ok {
		return staffauth.ErrAlreadyExists
	}
	if _, ok := d.byNumber[account.EmployeeNumber]; ok {
		return staffauth.ErrAlreadyExists
	}

	stored := *account
	d.byID[stored.ID] = &stored
	d.byEmail[stored.Email] = stored.ID
	d.byNumber[stored.EmployeeNumber] = stored.ID
	return nil
}

// Update describes the update operation and its observable behavior.
//
// Update applies the partial update atomically under the directory lock,
// matching the single-record atomicity a real backing store provides.
func (d *Directory) Update(_ context.Context, id string, update staffauth.AccountUpdate) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	acct, ok := d.byID[id]
	if !ok {
		return staffauth.ErrNotFound
	}

	if update.PasswordHash != nil {
		acct.PasswordHash = *update.PasswordHash
	}
	if update.Role != nil {
		acct.Role = *update.Role
	}
	if update.TwoFactorEnabled != nil {
		acct.TwoFactorEnabled = *update.TwoFactorEnabled
	}
	if update.TwoFactorSecret != nil {
		acct.TwoFactorSecret = *update.TwoFactorSecret
	}
	if update.ResetToken != nil {
		acct.ResetToken = *update.ResetToken
	}
	if update.ResetTokenExpiresAt != nil {
		acct.ResetTokenExpiresAt = *update.ResetTokenExpiresAt
	}
	if update.Active != nil {
		acct.Active = *update.Active
	}
	return nil
}

// Count describes the count operation and its observable behavior.
//
// Count may return an error when input validation, dependency calls, or security checks fail.
func (d *Directory) Count(_ context.Context) (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byID), nil
}

func (d *Directory) copyOf(id string) *staffauth.Account {
	acct, ok := d.byID[id]
	if !ok {
		return nil
	}
	out := *acct
	return &out
}

// Invitations is a map-backed InvitationStore keyed by token.
type Invitations struct {
	mu      sync.RWMutex
	byToken map[string]*staffauth.Invitation
}

// NewInvitations describes the newinvitations operation and its observable behavior.
//
// NewInvitations may return an error when input validation, dependency calls, or security checks fail.
func NewInvitations() *Invitations {
	return &Invitations{byToken: make(map[string]*staffauth.Invitation)}
}

// Put stores an invitation, replacing any earlier one for the same token.
// Issuance policy (who may invite, expiry length) belongs to the caller.
func (s *Invitations) Put(inv staffauth.Invitation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now()
	}
	s.byToken[inv.Token] = &inv
}

// FindByToken describes the findbytoken operation and its observable behavior.
//
// FindByToken may return an error when input validation, dependency calls, or security checks fail.
func (s *Invitations) FindByToken(_ context.Context, token string) (*staffauth.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.byToken[token]
	if !ok {
		return nil, nil
	}
	out := *inv
	return &out, nil
}

// Delete describes the delete operation and its observable behavior.
//
// Delete may return an error when input validation, dependency calls, or security checks fail.
func (s *Invitations) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byToken, token)
	return nil
}

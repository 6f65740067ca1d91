package memdir

import (
	"context"
	"errors"
	"testing"
	"time"

	staffauth "github.com/peoplekit/staffauth"
)

func testAccount(id, email, number string) *staffauth.Account {
	return &staffauth.Account{
		ID:             id,
		Email:          email,
		EmployeeNumber: number,
		PasswordHash:   "hash",
		Role:           staffauth.RoleEmployee,
		Active:         true,
		CreatedAt:      time.Now(),
	}
}

func TestDirectoryCreateEnforcesUniqueness(t *testing.T) {
	ctx := context.Background()
	d := NewDirectory()

	if err := d.Create(ctx, testAccount("a1", "alice@corp.test", "E-1001")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	cases := []*staffauth.Account{
		testAccount("a1", "other@corp.test", "E-9999"),
		testAccount("a2", "alice@corp.test", "E-9999"),
		testAccount("a3", "other@corp.test", "E-1001"),
	}
	for i, acct := range cases {
		if err := d.Create(ctx, acct); !errors.Is(err, staffauth.ErrAlreadyExists) {
			t.Fatalf("case %d: expected ErrAlreadyExists, got %v", i, err)
		}
	}

	n, err := d.Count(ctx)
	if err != nil || n != 1 {
		t.Fatalf("expected count 1, got %d err=%v", n, err)
	}
}

func TestDirectoryLookups(t *testing.T) {
	ctx := context.Background()
	d := NewDirectory()
	if err := d.Create(ctx, testAccount("a1", "alice@corp.test", "E-1001")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	byEmail, err := d.FindByEmail(ctx, "alice@corp.test")
	if err != nil || byEmail == nil || byEmail.ID != "a1" {
		t.Fatalf("FindByEmail: got %+v err=%v", byEmail, err)
	}
	byID, err := d.FindByID(ctx, "a1")
	if err != nil || byID == nil || byID.Email != "alice@corp.test" {
		t.Fatalf("FindByID: got %+v err=%v", byID, err)
	}
	byNumber, err := d.FindByEmployeeNumber(ctx, "E-1001")
	if err != nil || byNumber == nil || byNumber.ID != "a1" {
		t.Fatalf("FindByEmployeeNumber: got %+v err=%v", byNumber, err)
	}

	// Absent records are (nil, nil), not an error.
	missing, err := d.FindByEmail(ctx, "nobody@corp.test")
	if err != nil || missing != nil {
		t.Fatalf("expected (nil, nil) for unknown email, got %+v err=%v", missing, err)
	}
}

func TestDirectoryFindByResetToken(t *testing.T) {
	ctx := context.Background()
	d := NewDirectory()
	if err := d.Create(ctx, testAccount("a1", "alice@corp.test", "E-1001")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Empty token never matches, even though fresh accounts have an empty
	// ResetToken field.
	acct, err := d.FindByResetToken(ctx, "")
	if err != nil || acct != nil {
		t.Fatalf("expected empty token to match nothing, got %+v err=%v", acct, err)
	}

	token := "reset-1"
	expiry := time.Now().Add(time.Hour)
	err = d.Update(ctx, "a1", staffauth.AccountUpdate{ResetToken: &token, ResetTokenExpiresAt: &expiry})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	acct, err = d.FindByResetToken(ctx, "reset-1")
	if err != nil || acct == nil || acct.ID != "a1" {
		t.Fatalf("expected token match, got %+v err=%v", acct, err)
	}
}

func TestDirectoryUpdatePartial(t *testing.T) {
	ctx := context.Background()
	d := NewDirectory()
	if err := d.Create(ctx, testAccount("a1", "alice@corp.test", "E-1001")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	newHash := "new-hash"
	if err := d.Update(ctx, "a1", staffauth.AccountUpdate{PasswordHash: &newHash}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	acct, err := d.FindByID(ctx, "a1")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if acct.PasswordHash != "new-hash" {
		t.Fatalf("expected hash updated, got %q", acct.PasswordHash)
	}
	if acct.Email != "alice@corp.test" || acct.Role != staffauth.RoleEmployee || !acct.Active {
		t.Fatalf("untouched fields must survive a partial update: %+v", acct)
	}

	// Pointer-to-zero clears a field.
	var clear string
	if err := d.Update(ctx, "a1", staffauth.AccountUpdate{PasswordHash: &clear}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	acct, _ = d.FindByID(ctx, "a1")
	if acct.PasswordHash != "" {
		t.Fatalf("expected hash cleared, got %q", acct.PasswordHash)
	}

	if err := d.Update(ctx, "ghost", staffauth.AccountUpdate{}); !errors.Is(err, staffauth.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestDirectoryCopyOnRead(t *testing.T) {
	ctx := context.Background()
	d := NewDirectory()
	if err := d.Create(ctx, testAccount("a1", "alice@corp.test", "E-1001")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	acct, err := d.FindByID(ctx, "a1")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	acct.PasswordHash = "mutated"

	fresh, _ := d.FindByID(ctx, "a1")
	if fresh.PasswordHash != "hash" {
		t.Fatal("mutating a returned account must not affect stored state")
	}
}

func TestInvitationsLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewInvitations()

	inv, err := s.FindByToken(ctx, "inv-1")
	if err != nil || inv != nil {
		t.Fatalf("expected (nil, nil) for unknown token, got %+v err=%v", inv, err)
	}

	s.Put(staffauth.Invitation{
		Token:     "inv-1",
		Email:     "alice@corp.test",
		Role:      staffauth.RoleHROfficer,
		ExpiresAt: time.Now().Add(48 * time.Hour),
	})

	inv, err = s.FindByToken(ctx, "inv-1")
	if err != nil || inv == nil {
		t.Fatalf("FindByToken failed: %+v err=%v", inv, err)
	}
	if inv.Email != "alice@corp.test" || inv.Role != staffauth.RoleHROfficer {
		t.Fatalf("unexpected invitation: %+v", inv)
	}
	if inv.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt stamped on Put")
	}

	if err := s.Delete(ctx, "inv-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	inv, err = s.FindByToken(ctx, "inv-1")
	if err != nil || inv != nil {
		t.Fatalf("expected invitation gone after delete, got %+v err=%v", inv, err)
	}

	// Deleting an absent token is a no-op.
	if err := s.Delete(ctx, "inv-1"); err != nil {
		t.Fatalf("repeated Delete failed: %v", err)
	}
}

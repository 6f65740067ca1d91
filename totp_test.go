package staffauth

import (
	"encoding/base32"
	"strings"
	"testing"
	"time"
)

func b32(secret string) string {
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString([]byte(secret))
}

func TestTOTPVerifyRFCVectorsSHA1(t *testing.T) {
	m := newTOTPManager(TOTPConfig{
		Issuer:    "staffauth",
		Digits:    8,
		Period:    30,
		Algorithm: "SHA1",
		Skew:      0,
	})
	secret := b32("12345678901234567890")
	cases := []struct {
		ts   int64
		code string
	}{
		{59, "94287082"},
		{1111111109, "07081804"},
		{1111111111, "14050471"},
		{1234567890, "89005924"},
		{2000000000, "69279037"},
		{20000000000, "65353130"},
	}

	for _, tc := range cases {
		ok, err := m.VerifyCode(secret, tc.code, time.Unix(tc.ts, 0))
		if err != nil || !ok {
			t.Fatalf("SHA1 vector failed at t=%d, ok=%v err=%v", tc.ts, ok, err)
		}
	}
}

func TestTOTPVerifyRFCVectorsSHA256(t *testing.T) {
	m := newTOTPManager(TOTPConfig{
		Issuer:    "staffauth",
		Digits:    8,
		Period:    30,
		Algorithm: "SHA256",
		Skew:      0,
	})
	secret := b32("12345678901234567890123456789012")
	cases := []struct {
		ts   int64
		code string
	}{
		{59, "46119246"},
		{1111111109, "68084774"},
		{1111111111, "67062674"},
		{1234567890, "91819424"},
		{2000000000, "90698825"},
		{20000000000, "77737706"},
	}

	for _, tc := range cases {
		ok, err := m.VerifyCode(secret, tc.code, time.Unix(tc.ts, 0))
		if err != nil || !ok {
			t.Fatalf("SHA256 vector failed at t=%d, ok=%v err=%v", tc.ts, ok, err)
		}
	}
}

func TestTOTPVerifyRFCVectorsSHA512(t *testing.T) {
	m := newTOTPManager(TOTPConfig{
		Issuer:    "staffauth",
		Digits:    8,
		Period:    30,
		Algorithm: "SHA512",
		Skew:      0,
	})
	secret := b32("1234567890123456789012345678901234567890123456789012345678901234")
	cases := []struct {
		ts   int64
		code string
	}{
		{59, "90693936"},
		{1111111109, "25091201"},
		{1111111111, "99943326"},
		{1234567890, "93441116"},
		{2000000000, "38618901"},
		{20000000000, "47863826"},
	}

	for _, tc := range cases {
		ok, err := m.VerifyCode(secret, tc.code, time.Unix(tc.ts, 0))
		if err != nil || !ok {
			t.Fatalf("SHA512 vector failed at t=%d, ok=%v err=%v", tc.ts, ok, err)
		}
	}
}

func TestTOTPSkewWindowAcceptsAdjacentStep(t *testing.T) {
	m := newTOTPManager(TOTPConfig{
		Issuer:    "staffauth",
		Digits:    6,
		Period:    30,
		Algorithm: "SHA1",
		Skew:      1,
	})
	raw := []byte("12345678901234567890")
	secret := b32(string(raw))
	now := time.Unix(1234567890, 0)

	prev, err := hotpCode(raw, now.Unix()/30-1, 6, "SHA1")
	if err != nil {
		t.Fatalf("hotpCode failed: %v", err)
	}
	if ok, err := m.VerifyCode(secret, prev, now); err != nil || !ok {
		t.Fatalf("expected previous-step code accepted, ok=%v err=%v", ok, err)
	}

	next, err := hotpCode(raw, now.Unix()/30+1, 6, "SHA1")
	if err != nil {
		t.Fatalf("hotpCode failed: %v", err)
	}
	if ok, err := m.VerifyCode(secret, next, now); err != nil || !ok {
		t.Fatalf("expected next-step code accepted, ok=%v err=%v", ok, err)
	}

	outside, err := hotpCode(raw, now.Unix()/30-2, 6, "SHA1")
	if err != nil {
		t.Fatalf("hotpCode failed: %v", err)
	}
	if ok, _ := m.VerifyCode(secret, outside, now); ok {
		t.Fatal("expected code two steps back rejected")
	}
}

func TestTOTPMalformedCodeIsPlainMismatch(t *testing.T) {
	m := newTOTPManager(TOTPConfig{
		Issuer:    "staffauth",
		Digits:    6,
		Period:    30,
		Algorithm: "SHA1",
		Skew:      1,
	})
	secret := b32("12345678901234567890")

	for _, code := range []string{"", "12345", "12345678", "abcdef", "12 456"} {
		ok, err := m.VerifyCode(secret, code, time.Now())
		if err != nil {
			t.Fatalf("code %q: unexpected error: %v", code, err)
		}
		if ok {
			t.Fatalf("code %q: expected rejection", code)
		}
	}
}

func TestTOTPInvalidSecretIsError(t *testing.T) {
	m := newTOTPManager(TOTPConfig{
		Issuer:    "staffauth",
		Digits:    6,
		Period:    30,
		Algorithm: "SHA1",
	})

	if _, err := m.VerifyCode("not base32!!", "123456", time.Now()); err == nil {
		t.Fatal("expected error for undecodable secret")
	}
}

func TestTOTPGenerateSecretShape(t *testing.T) {
	m := newTOTPManager(TOTPConfig{Issuer: "staffauth", Digits: 6, Period: 30})

	a, err := m.GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret failed: %v", err)
	}
	b, err := m.GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret failed: %v", err)
	}
	if a == b {
		t.Fatal("expected distinct secrets")
	}
	if strings.Contains(a, "=") {
		t.Fatalf("expected unpadded base32, got %q", a)
	}
	if _, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(a); err != nil {
		t.Fatalf("secret not base32: %v", err)
	}
}

func TestTOTPProvisionURI(t *testing.T) {
	m := newTOTPManager(TOTPConfig{
		Issuer:    "PeopleKit",
		Digits:    6,
		Period:    30,
		Algorithm: "SHA1",
	})

	uri := m.ProvisionURI("JBSWY3DPEHPK3PXP", "alice@corp.test")
	if !strings.HasPrefix(uri, "otpauth://totp/PeopleKit:alice@corp.test?") {
		t.Fatalf("unexpected URI label: %q", uri)
	}
	for _, want := range []string{"secret=JBSWY3DPEHPK3PXP", "issuer=PeopleKit", "digits=6", "period=30", "algorithm=SHA1"} {
		if !strings.Contains(uri, want) {
			t.Fatalf("URI missing %q: %q", want, uri)
		}
	}
}

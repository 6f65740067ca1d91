// Package staffauth provides the authentication and session-control core for
// an HR platform: credential verification, JWT access/refresh token issuance,
// token revocation, TOTP two-factor enrollment and challenge, and the
// password-reset lifecycle.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// staffauth is the orchestration core, not the application. Account records
// live in an external Account Directory supplied by the caller through the
// [AccountDirectory] interface; registration invitations come from an
// [InvitationStore]; outbound mail goes through a [Notifier]. The only state
// this package owns directly is the revocation list of logged-out tokens,
// kept in Redis until each token's natural expiry.
//
// # What this package must NOT do
//
//   - Persist account records itself. The directory owns them; the engine only
//     reads and conditionally updates credential, reset, and 2FA fields.
//   - Log plaintext passwords, token secrets, or TOTP secrets.
//   - Distinguish, in any caller-visible way, an unknown email from a wrong
//     password, or a known email from an unknown one on a reset request.
package staffauth

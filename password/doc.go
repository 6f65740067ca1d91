// Package password implements the credential hashing policy: argon2id with a
// per-call random salt, PHC string encoding, and constant-time verification.
//
// This is deliberately the only hashing strategy in the module. The system it
// replaces shipped a second, flag-toggled path (SHA-256 over a process-wide
// fixed salt, used by a maintenance script to force every account onto one
// shared default password). That variant has no per-user salt, no work factor,
// and is reversible via precomputed tables; it is a vulnerability, not a
// configuration, and was not carried over.
package password

// Package memdir is an in-memory reference implementation of the staffauth
// AccountDirectory and InvitationStore interfaces. It backs the package
// tests and the example server; production deployments implement the
// interfaces over their own employee database instead.
package memdir

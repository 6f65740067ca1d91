// Package middleware provides net/http integration for the staffauth engine:
// a Guard handler wrapper enforcing the protected-resource gate, and context
// accessors for the verified identity.
package middleware

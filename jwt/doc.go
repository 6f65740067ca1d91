// Package jwt issues and verifies the three token flavors used by the
// staffauth engine: short-lived access tokens, longer-lived refresh tokens
// signed with a distinct secret, and five-minute temporary tokens bridging
// the gap between password verification and two-factor completion.
package jwt

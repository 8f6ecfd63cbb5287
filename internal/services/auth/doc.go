// Package auth groups the identity pieces of the onboarding site.
//
// Subpackages:
//   - credentials: email and password sign up and sign in
//   - google: Google sign in through OAuth2
//   - session: signed session tokens carried by the web cookie
package auth

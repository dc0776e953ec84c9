// Package auth issues and validates the signed tokens that guard the audio
// API.
//
// A token names its holder (subject) and a Role. Roles map statically to
// permissions: observers may read routes and devices, controllers may also
// report connection events, and admins may additionally read the journal.
// Tokens are HS256 JWTs validated by signature and expiry alone.
package auth

// Package auth provides authentication for orgstack.
//
// It implements:
//   - Argon2id password hashing in PHC string format (fresh salt per
//     hash, constant-time verification)
//   - HS256 JWT access tokens carrying the user's identity claims
//   - The user identity store (SQLite repository)
//   - The registration and login service
//
// Registration creates the user and their default organisation in a
// single database transaction, so a user without an organisation is
// never observable. Login failures are symmetric: an unknown email and
// a wrong password produce the same error, leaking nothing about which
// part was wrong.
package auth

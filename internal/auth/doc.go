// Package auth provides account registration and credential verification.
//
// It implements:
//   - Argon2id password hashing (OWASP 2025 recommendation) in PHC string
//     format, with configurable cost parameters
//   - Registration backed by a unique userName index, closing the
//     lookup-then-insert race
//   - Authentication with indistinguishable failures for unknown usernames
//     and wrong passwords
//
// Plaintext passwords exist only transiently in memory; repositories and
// logs only ever see digests.
package auth

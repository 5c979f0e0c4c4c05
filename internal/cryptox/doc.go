// Package cryptox holds the cryptographic primitives behind Fortress.
//
// Passwords are never stored. Registration derives a 256-bit hash from the
// password and a fresh 16-byte salt with PBKDF2-HMAC-SHA256 (at least
// DefaultIterations rounds); login repeats the derivation with the stored salt.
//
// Files are sealed with AES-256-GCM under a key and a 96-bit nonce that are
// generated fresh for every call. The 16-byte authentication tag is appended
// to the ciphertext, so callers only persist ciphertext, key and nonce.
//
// The raw key is returned to the caller and is stored next to the ciphertext.
// Confidentiality therefore only holds against readers of the ciphertext who
// cannot also read the vault namespace.
package cryptox

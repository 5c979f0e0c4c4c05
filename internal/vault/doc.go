// Package vault stores each user's encrypted files as one JSON array under
// "vault:<username>", newest first.
//
// The serialized array is the unit of both persistence and accounting: every
// mutation rewrites it whole, and its byte length is what counts against the
// per-user quota. A write that would push the array past the quota is
// refused before anything is stored.
//
// Read-modify-write cycles on one namespace are serialized in process by a
// keyed mutex and, on SQL backends, run inside a transaction.
package vault

// Package services exposes the operations the Fortress front end calls:
// account registration and login, and the encrypt, store, list, search,
// retrieve, export and delete cycle for a user's files.
//
// Inputs are validated here, before any cryptographic or storage work, so a
// rejected call has no side effects. Every method that touches a vault
// takes the username explicitly; an empty one yields common.ErrNotLoggedIn.
package services

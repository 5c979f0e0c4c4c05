// Package models defines the records Fortress persists.
package models

import "time"

// Credential is the stored form of a registered user's password. Salt and
// Hash are hex encoded; the password itself is never kept. Iterations is the
// PBKDF2 count the hash was derived with; zero means the default count.
type Credential struct {
	Salt       string `json:"salt"`
	Hash       string `json:"hash"`
	Iterations int    `json:"iterations,omitempty"`
}

// EncryptedFile is one entry of a user's vault. Name and Size describe the
// plaintext and are stored in the clear. Content, Key and IV are base64.
type EncryptedFile struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	EncryptedAt time.Time `json:"encryptedAt"`
	Content     string    `json:"content"`
	Key         string    `json:"key"`
	IV          string    `json:"iv"`
}

// Usage reports how much of a user's quota is taken, in bytes.
type Usage struct {
	Used  int64
	Quota int64
}

// Free returns the remaining quota, never negative.
func (u Usage) Free() int64 {
	if u.Used >= u.Quota {
		return 0
	}
	return u.Quota - u.Used
}

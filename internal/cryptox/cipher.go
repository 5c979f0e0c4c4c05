package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/dmitrijs2005/fortress/internal/common"
)

const (
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32
	// NonceSize is the GCM nonce length in bytes.
	NonceSize = 12
	// TagSize is the GCM authentication tag appended to every ciphertext.
	TagSize = 16
)

// EncryptedFile is the output of a single EncryptFile call.
type EncryptedFile struct {
	Ciphertext []byte // sealed data with the tag appended
	Key        []byte // exported raw AES-256 key
	Nonce      []byte
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// EncryptFile seals plaintext under a freshly generated key and nonce.
// Nothing is derived from the content, so identical plaintexts produce
// unrelated outputs.
func EncryptFile(plaintext []byte) (*EncryptedFile, error) {
	key := common.GenerateRandByteArray(KeySize)

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	nonce := common.GenerateRandByteArray(aesgcm.NonceSize())
	ciphertext := aesgcm.Seal(nil, nonce, plaintext, nil)

	return &EncryptedFile{Ciphertext: ciphertext, Key: key, Nonce: nonce}, nil
}

// DecryptFile opens ciphertext produced by EncryptFile. Every failure,
// including malformed key or nonce lengths and tag mismatches, is reported as
// common.ErrDecrypt and no plaintext is returned.
func DecryptFile(ciphertext, key, nonce []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", common.ErrDecrypt, KeySize, len(key))
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: nonce must be %d bytes, got %d", common.ErrDecrypt, NonceSize, len(nonce))
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDecrypt, err)
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: authentication failed", common.ErrDecrypt)
	}
	return plaintext, nil
}

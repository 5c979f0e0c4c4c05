// Package codec converts binary cryptographic material to and from the text
// encodings used in persisted records: standard padded base64 for file
// content, keys and nonces, and lowercase hex for credential salts and hashes.
package codec

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// DecodeError reports text that is not valid in the expected encoding.
type DecodeError struct {
	Encoding string // "base64" or "hex"
	Err      error  // underlying decoder error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Encoding, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeBase64 encodes b with the standard padded alphabet.
func EncodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeBase64 is the inverse of EncodeBase64. It returns a *DecodeError when
// s is not valid padded base64.
func DecodeBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, &DecodeError{Encoding: "base64", Err: err}
	}
	return b, nil
}

// EncodeHex encodes b as lowercase hex.
func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

// DecodeHex is the inverse of EncodeHex. It returns a *DecodeError when s is
// not valid hex.
func DecodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, &DecodeError{Encoding: "hex", Err: err}
	}
	return b, nil
}

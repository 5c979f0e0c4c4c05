package models

import (
	"bytes"
	"encoding/json"
)

// TimestampLayout is the ISO-8601 form of EncryptedAt: UTC with exactly
// three fractional digits, e.g. 2024-03-01T12:30:00.120Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// MarshalJSON writes EncryptedAt in TimestampLayout. Decoding goes through
// time.Time and accepts any RFC 3339 value.
func (f EncryptedFile) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Size        int64  `json:"size"`
		EncryptedAt string `json:"encryptedAt"`
		Content     string `json:"content"`
		Key         string `json:"key"`
		IV          string `json:"iv"`
	}{
		ID:          f.ID,
		Name:        f.Name,
		Size:        f.Size,
		EncryptedAt: f.EncryptedAt.UTC().Format(TimestampLayout),
		Content:     f.Content,
		Key:         f.Key,
		IV:          f.IV,
	})
	if err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

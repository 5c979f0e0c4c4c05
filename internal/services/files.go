package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fortress/internal/codec"
	"github.com/dmitrijs2005/fortress/internal/common"
	"github.com/dmitrijs2005/fortress/internal/cryptox"
	"github.com/dmitrijs2005/fortress/internal/logging"
	"github.com/dmitrijs2005/fortress/internal/models"
	"github.com/dmitrijs2005/fortress/internal/vault"
	"github.com/google/uuid"
)

// DefaultMaxFileSize is the largest plaintext accepted for encryption, 5 MiB.
const DefaultMaxFileSize int64 = 5 << 20

// RawExtension is appended to the name of a file exported without
// decryption.
const RawExtension = ".encrypted"

// Download is a file ready to be written out.
type Download struct {
	Name string
	Data []byte
}

// FileService encrypts, stores and retrieves a user's files.
type FileService interface {
	List(ctx context.Context, username string) ([]models.EncryptedFile, error)
	Search(ctx context.Context, username, term string) ([]models.EncryptedFile, error)
	// Add encrypts data under a fresh key and stores it as name.
	Add(ctx context.Context, username, name string, data []byte) (models.EncryptedFile, error)
	Delete(ctx context.Context, username, id string) error
	// DecryptAndRetrieve returns the original name and plaintext.
	DecryptAndRetrieve(ctx context.Context, username, id string) (*Download, error)
	// ExportRawCiphertext returns the stored base64 ciphertext as
	// "<name>.encrypted" without decrypting it.
	ExportRawCiphertext(ctx context.Context, username, id string) (*Download, error)
	Usage(ctx context.Context, username string) (models.Usage, error)
	MaxFileSize() int64
}

type fileService struct {
	vault       vault.Vault
	maxFileSize int64
	log         logging.Logger

	now   func() time.Time
	newID func() string
}

// NewFileService returns a FileService over v. A non-positive maxFileSize
// selects DefaultMaxFileSize.
func NewFileService(v vault.Vault, maxFileSize int64, log logging.Logger) FileService {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &fileService{
		vault:       v,
		maxFileSize: maxFileSize,
		log:         log,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

func requireUser(username string) error {
	if username == "" {
		return common.ErrNotLoggedIn
	}
	return nil
}

func (s *fileService) MaxFileSize() int64 { return s.maxFileSize }

func (s *fileService) List(ctx context.Context, username string) ([]models.EncryptedFile, error) {
	if err := requireUser(username); err != nil {
		return nil, err
	}
	return s.vault.ListFiles(ctx, username)
}

func (s *fileService) Search(ctx context.Context, username, term string) ([]models.EncryptedFile, error) {
	files, err := s.List(ctx, username)
	if err != nil {
		return nil, err
	}
	return vault.Search(files, term), nil
}

func (s *fileService) Add(ctx context.Context, username, name string, data []byte) (models.EncryptedFile, error) {
	if err := requireUser(username); err != nil {
		return models.EncryptedFile{}, err
	}
	if name == "" {
		return models.EncryptedFile{}, fmt.Errorf("%w: file name is required", common.ErrValidation)
	}
	if int64(len(data)) > s.maxFileSize {
		return models.EncryptedFile{}, fmt.Errorf("%w: %d bytes, limit is %d", common.ErrFileTooLarge, len(data), s.maxFileSize)
	}

	enc, err := cryptox.EncryptFile(data)
	if err != nil {
		return models.EncryptedFile{}, fmt.Errorf("encrypt %s: %w", name, err)
	}
	defer common.WipeByteArray(enc.Key)

	f := models.EncryptedFile{
		ID:          s.newID(),
		Name:        name,
		Size:        int64(len(data)),
		EncryptedAt: s.now().UTC().Truncate(time.Millisecond),
		Content:     codec.EncodeBase64(enc.Ciphertext),
		Key:         codec.EncodeBase64(enc.Key),
		IV:          codec.EncodeBase64(enc.Nonce),
	}

	if err := s.vault.AddFile(ctx, username, f); err != nil {
		s.log.Warn(ctx, "file not stored", "user", username, "name", name, "size", f.Size, "error", err)
		return models.EncryptedFile{}, err
	}
	s.log.Info(ctx, "file stored", "user", username, "file_id", f.ID, "name", name, "size", f.Size)
	return f, nil
}

func (s *fileService) Delete(ctx context.Context, username, id string) error {
	if err := requireUser(username); err != nil {
		return err
	}
	if err := s.vault.DeleteFile(ctx, username, id); err != nil {
		return err
	}
	s.log.Info(ctx, "file deleted", "user", username, "file_id", id)
	return nil
}

func (s *fileService) get(ctx context.Context, username, id string) (models.EncryptedFile, error) {
	if err := requireUser(username); err != nil {
		return models.EncryptedFile{}, err
	}
	return s.vault.GetFile(ctx, username, id)
}

func (s *fileService) DecryptAndRetrieve(ctx context.Context, username, id string) (*Download, error) {
	f, err := s.get(ctx, username, id)
	if err != nil {
		return nil, err
	}

	var parts [3][]byte
	for i, field := range []string{f.Content, f.Key, f.IV} {
		b, err := codec.DecodeBase64(field)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrDecrypt, err)
		}
		parts[i] = b
	}
	defer common.WipeByteArray(parts[1])

	plain, err := cryptox.DecryptFile(parts[0], parts[1], parts[2])
	if err != nil {
		s.log.Warn(ctx, "decryption failed", "user", username, "file_id", id)
		return nil, err
	}
	s.log.Debug(ctx, "file decrypted", "user", username, "file_id", id)
	return &Download{Name: f.Name, Data: plain}, nil
}

func (s *fileService) ExportRawCiphertext(ctx context.Context, username, id string) (*Download, error) {
	f, err := s.get(ctx, username, id)
	if err != nil {
		return nil, err
	}
	return &Download{Name: f.Name + RawExtension, Data: []byte(f.Content)}, nil
}

func (s *fileService) Usage(ctx context.Context, username string) (models.Usage, error) {
	if err := requireUser(username); err != nil {
		return models.Usage{}, err
	}
	return models.Usage{Used: s.vault.UsedSpace(ctx, username), Quota: s.vault.Quota()}, nil
}

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/fortress/internal/common"
	"github.com/dmitrijs2005/fortress/internal/filex"
	"github.com/dmitrijs2005/fortress/internal/models"
	"github.com/dmitrijs2005/fortress/internal/services"
)

// Upload encrypts the file at path into the vault. The size is checked from
// the file's metadata before anything is read.
func (a *App) Upload(ctx context.Context, path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		a.failure(err)
		return err
	}
	if fi.IsDir() {
		err := fmt.Errorf("%w: %s is a directory", common.ErrValidation, path)
		a.failure(err)
		return err
	}
	if fi.Size() > a.files.MaxFileSize() {
		err := fmt.Errorf("%w: %s", common.ErrFileTooLarge, path)
		a.failure(err)
		a.info("the limit is %s", models.FormatBytes(a.files.MaxFileSize(), 2))
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		a.failure(err)
		return err
	}
	defer common.WipeByteArray(data)

	var f models.EncryptedFile
	err = a.busy("Encrypting...", func() error {
		var err error
		f, err = a.files.Add(ctx, a.userName, filepath.Base(path), data)
		return err
	})
	if err != nil {
		a.failure(err)
		return err
	}

	a.success("%s encrypted and stored (%s, id %s)", f.Name, models.FormatBytes(f.Size, 2), f.ID)
	return nil
}

func (a *App) printFiles(files []models.EncryptedFile) {
	if len(files) == 0 {
		a.info("no files")
		return
	}
	rows := [][]string{{"ID", "NAME", "SIZE", "ENCRYPTED AT"}}
	for _, f := range files {
		rows = append(rows, []string{
			f.ID,
			f.Name,
			models.FormatBytes(f.Size, 2),
			f.EncryptedAt.Local().Format(time.DateTime),
		})
	}
	writeTable(a.out, rows)
}

func (a *App) List(ctx context.Context) error {
	files, err := a.files.List(ctx, a.userName)
	if err != nil {
		a.failure(err)
		return err
	}
	a.printFiles(files)
	return nil
}

func (a *App) Search(ctx context.Context, term string) error {
	files, err := a.files.Search(ctx, a.userName, term)
	if err != nil {
		a.failure(err)
		return err
	}
	a.printFiles(files)
	return nil
}

func (a *App) save(dl *services.Download) error {
	path, err := filex.WriteExport(a.config.ExportDir, dl.Name, dl.Data)
	if err != nil {
		a.failure(err)
		return err
	}
	a.success("saved to %s", path)
	return nil
}

// Download decrypts a file into the export directory.
func (a *App) Download(ctx context.Context, id string) error {
	var dl *services.Download
	err := a.busy("Decrypting...", func() error {
		var err error
		dl, err = a.files.DecryptAndRetrieve(ctx, a.userName, id)
		return err
	})
	if err != nil {
		a.failure(err)
		return err
	}
	defer common.WipeByteArray(dl.Data)
	return a.save(dl)
}

// Export writes the stored ciphertext, still encrypted, to the export
// directory.
func (a *App) Export(ctx context.Context, id string) error {
	dl, err := a.files.ExportRawCiphertext(ctx, a.userName, id)
	if err != nil {
		a.failure(err)
		return err
	}
	return a.save(dl)
}

func (a *App) Delete(ctx context.Context, id string) error {
	ok, err := confirm(a.reader, fmt.Sprintf("Delete file %s?", id), a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.info("cancelled")
		return nil
	}

	if err := a.files.Delete(ctx, a.userName, id); err != nil {
		a.failure(err)
		return err
	}
	a.success("deleted %s", id)
	return nil
}

func (a *App) Usage(ctx context.Context) error {
	u, err := a.files.Usage(ctx, a.userName)
	if err != nil {
		a.failure(err)
		return err
	}
	pct := float64(u.Used) / float64(u.Quota) * 100
	a.info("used %s of %s (%.1f%%), %s free",
		models.FormatBytes(u.Used, 2), models.FormatBytes(u.Quota, 2), pct, models.FormatBytes(u.Free(), 2))
	return nil
}

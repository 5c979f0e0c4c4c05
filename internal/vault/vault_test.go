package vault

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/fortress/internal/common"
	"github.com/dmitrijs2005/fortress/internal/models"
	"github.com/dmitrijs2005/fortress/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func file(id, name string) models.EncryptedFile {
	return models.EncryptedFile{
		ID:          id,
		Name:        name,
		Size:        10,
		EncryptedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Content:     "Y2lwaGVydGV4dA==",
		Key:         "a2V5",
		IV:          "aXY=",
	}
}

func ids(files []models.EncryptedFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.ID
	}
	return out
}

func stored(t *testing.T, s storage.Store, username string) string {
	t.Helper()
	raw, err := s.Get(context.Background(), Key(username))
	require.NoError(t, err)
	return string(raw)
}

func TestListFiles_EmptyNamespace(t *testing.T) {
	v := New(storage.NewMemoryStore(), 0)

	files, err := v.ListFiles(context.Background(), "nobody")
	require.NoError(t, err)
	require.NotNil(t, files)
	assert.Empty(t, files)
}

func TestAddFile_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStore()
	v := New(s, 0)

	require.NoError(t, v.AddFile(ctx, "alice", file("1", "a.txt")))
	require.NoError(t, v.AddFile(ctx, "alice", file("2", "b.txt")))
	require.NoError(t, v.AddFile(ctx, "alice", file("3", "c.txt")))

	files, err := v.ListFiles(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "2", "1"}, ids(files))
	assert.Equal(t, file("1", "a.txt"), files[2])

	other, err := v.ListFiles(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, other, "namespaces are per user")
}

func TestAddFile_PersistedJSON(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStore()
	v := New(s, 0)

	f := file("1", "a&b<c>.txt")
	require.NoError(t, v.AddFile(ctx, "alice", f))

	assert.JSONEq(t,
		`[{"id":"1","name":"a&b<c>.txt","size":10,"encryptedAt":"2024-05-01T10:00:00.000Z","content":"Y2lwaGVydGV4dA==","key":"a2V5","iv":"aXY="}]`,
		stored(t, s, "alice"))
	assert.Contains(t, stored(t, s, "alice"), "a&b<c>.txt", "names are stored unescaped")
}

func TestAddFile_DuplicateID(t *testing.T) {
	ctx := context.Background()
	v := New(storage.NewMemoryStore(), 0)

	require.NoError(t, v.AddFile(ctx, "alice", file("1", "a.txt")))
	require.ErrorIs(t, v.AddFile(ctx, "alice", file("1", "b.txt")), common.ErrAlreadyExists)
}

func TestAddFile_Quota(t *testing.T) {
	ctx := context.Background()

	one, err := marshal([]models.EncryptedFile{file("1", "a.txt")})
	require.NoError(t, err)
	two, err := marshal([]models.EncryptedFile{file("2", "b.txt"), file("1", "a.txt")})
	require.NoError(t, err)

	t.Run("exact fit is allowed", func(t *testing.T) {
		s := storage.NewMemoryStore()
		v := New(s, int64(len(two)))

		require.NoError(t, v.AddFile(ctx, "alice", file("1", "a.txt")))
		require.NoError(t, v.AddFile(ctx, "alice", file("2", "b.txt")))
		assert.Equal(t, int64(len(two)), v.UsedSpace(ctx, "alice"))
	})

	t.Run("one byte over is rejected without writing", func(t *testing.T) {
		s := storage.NewMemoryStore()
		v := New(s, int64(len(two)-1))

		require.NoError(t, v.AddFile(ctx, "alice", file("1", "a.txt")))
		before := stored(t, s, "alice")
		assert.Equal(t, string(one), before)

		err := v.AddFile(ctx, "alice", file("2", "b.txt"))
		require.ErrorIs(t, err, common.ErrQuotaExceeded)
		assert.Equal(t, before, stored(t, s, "alice"))
	})

	t.Run("first file too large leaves namespace absent", func(t *testing.T) {
		s := storage.NewMemoryStore()
		v := New(s, int64(len(one)-1))

		require.ErrorIs(t, v.AddFile(ctx, "alice", file("1", "a.txt")), common.ErrQuotaExceeded)
		_, err := s.Get(ctx, Key("alice"))
		require.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestDeleteFile(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStore()
	v := New(s, 0)

	for i := 1; i <= 4; i++ {
		require.NoError(t, v.AddFile(ctx, "alice", file(fmt.Sprint(i), fmt.Sprintf("f%d", i))))
	}
	before, err := v.ListFiles(ctx, "alice")
	require.NoError(t, err)

	require.NoError(t, v.DeleteFile(ctx, "alice", "3"))

	after, err := v.ListFiles(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "2", "1"}, ids(after))
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[2], after[1])
	assert.Equal(t, before[3], after[2])

	require.ErrorIs(t, v.DeleteFile(ctx, "alice", "3"), common.ErrNotFound)
	require.ErrorIs(t, v.DeleteFile(ctx, "bob", "1"), common.ErrNotFound)
}

func TestDeleteFile_LastLeavesEmptyArray(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStore()
	v := New(s, 0)

	require.NoError(t, v.AddFile(ctx, "alice", file("1", "a.txt")))
	require.NoError(t, v.DeleteFile(ctx, "alice", "1"))

	assert.Equal(t, "[]", stored(t, s, "alice"))
	assert.Equal(t, int64(2), v.UsedSpace(ctx, "alice"))
}

func TestDeleteFile_WorksWhenAlreadyOverQuota(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStore()
	require.NoError(t, New(s, 0).AddFile(ctx, "alice", file("1", "a.txt")))
	require.NoError(t, New(s, 0).AddFile(ctx, "alice", file("2", "b.txt")))

	tight := New(s, 10)
	require.NoError(t, tight.DeleteFile(ctx, "alice", "2"))

	files, err := tight.ListFiles(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids(files))
}

func TestCorruptStore(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStore()
	require.NoError(t, s.Set(ctx, Key("alice"), []byte("{not json")))
	v := New(s, 0)

	_, err := v.ListFiles(ctx, "alice")
	require.ErrorIs(t, err, common.ErrCorruptStore)

	require.ErrorIs(t, v.AddFile(ctx, "alice", file("1", "a.txt")), common.ErrCorruptStore)
	require.ErrorIs(t, v.DeleteFile(ctx, "alice", "1"), common.ErrCorruptStore)
	assert.Equal(t, "{not json", stored(t, s, "alice"))

	assert.Equal(t, int64(len("{not json")), v.UsedSpace(ctx, "alice"))
}

func TestListFiles_NullIsEmpty(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStore()
	require.NoError(t, s.Set(ctx, Key("alice"), []byte("null")))

	files, err := New(s, 0).ListFiles(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, files)
	assert.Empty(t, files)
}

func TestGetFile(t *testing.T) {
	ctx := context.Background()
	v := New(storage.NewMemoryStore(), 0)
	require.NoError(t, v.AddFile(ctx, "alice", file("1", "a.txt")))

	f, err := v.GetFile(ctx, "alice", "1")
	require.NoError(t, err)
	assert.Equal(t, "a.txt", f.Name)

	_, err = v.GetFile(ctx, "alice", "2")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUsedSpace(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStore()
	v := New(s, 0)

	assert.Equal(t, int64(0), v.UsedSpace(ctx, "alice"))

	require.NoError(t, v.AddFile(ctx, "alice", file("1", "a.txt")))
	assert.Equal(t, int64(len(stored(t, s, "alice"))), v.UsedSpace(ctx, "alice"))
	assert.Equal(t, DefaultQuota, v.Quota())
}

func TestSearch(t *testing.T) {
	files := []models.EncryptedFile{
		file("1", "annual_report.pdf"),
		file("2", "holiday.jpg"),
		file("3", "REPORT-draft.docx"),
		file("4", "notes.txt"),
	}

	assert.Equal(t, files, Search(files, ""))
	assert.Equal(t, []string{"1", "3"}, ids(Search(files, "Report")))
	assert.Equal(t, []string{"2"}, ids(Search(files, "DAY.J")))

	none := Search(files, "zzz")
	require.NotNil(t, none)
	assert.Empty(t, none)

	assert.Empty(t, Search(nil, ""))
}

func TestAddFile_ConcurrentWritersDoNotLoseUpdates(t *testing.T) {
	ctx := context.Background()

	sqlite, err := storage.Open(ctx, storage.DriverSQLite, t.TempDir()+"/vault.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	for name, s := range map[string]storage.Store{"memory": storage.NewMemoryStore(), "sqlite": sqlite} {
		t.Run(name, func(t *testing.T) {
			v := New(s, 0)
			const n = 20

			var wg sync.WaitGroup
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					assert.NoError(t, v.AddFile(ctx, "alice", file(fmt.Sprint(i), "f")))
				}(i)
			}
			wg.Wait()

			files, err := v.ListFiles(ctx, "alice")
			require.NoError(t, err)
			assert.Len(t, files, n)
		})
	}
}

func TestKeyedMutex_ReleasesEntries(t *testing.T) {
	k := newKeyedMutex()

	unlockA := k.Lock("alice")
	unlockB := k.Lock("bob")
	assert.Len(t, k.locks, 2)

	unlockA()
	unlockB()
	assert.Empty(t, k.locks)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "vault:alice", Key("alice"))
	assert.True(t, strings.HasPrefix(Key(""), "vault:"))
}

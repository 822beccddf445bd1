package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"cardempire/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Load(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save(ctx, "beta", []byte(`{"cash":1}`)))
	require.NoError(t, s.Save(ctx, "alpha", []byte(`{"cash":2}`)))
	require.NoError(t, s.Save(ctx, "beta", []byte(`{"cash":3}`)))

	got, err := s.Load(ctx, "beta")
	require.NoError(t, err)
	assert.JSONEq(t, `{"cash":3}`, string(got))

	slots, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, slots)

	require.NoError(t, s.Delete(ctx, "alpha"))
	require.ErrorIs(t, s.Delete(ctx, "alpha"), ErrNotFound)
	_, err = s.Load(ctx, "alpha")
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, s.Save(ctx, "../escape", []byte("{}")), ErrInvalidSlot)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_CopiesData(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	data := []byte("abc")
	require.NoError(t, s.Save(ctx, "x", data))
	data[0] = 'z'
	got, err := s.Load(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	exerciseStore(t, s)

	_, err = os.Stat(filepath.Join(dir, "beta.json"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "beta.json.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_IgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0o755))
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	slots, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestSQLStore_SQLite(t *testing.T) {
	s, err := OpenSQL(context.Background(), DialectSQLite, filepath.Join(t.TempDir(), "saves", "game.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	exerciseStore(t, s)
}

func TestSQLStore_Postgres(t *testing.T) {
	dsn := os.Getenv("CARDEMPIRE_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("CARDEMPIRE_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	s, err := OpenSQL(ctx, DialectPostgres, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	for _, slot := range []string{"alpha", "beta"} {
		_ = s.Delete(ctx, slot)
	}
	exerciseStore(t, s)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("CARDEMPIRE_REDIS_ADDR")
	if addr == "" {
		t.Skip("CARDEMPIRE_REDIS_ADDR not set")
	}
	ctx := context.Background()
	s, err := OpenRedis(ctx, addr, os.Getenv("CARDEMPIRE_REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	for _, slot := range []string{"alpha", "beta"} {
		_ = s.Delete(ctx, slot)
	}
	exerciseStore(t, s)
}

func TestOpenSQL_RejectsEmptyDSN(t *testing.T) {
	_, err := OpenSQL(context.Background(), DialectPostgres, " ")
	require.Error(t, err)
	_, err = OpenSQL(context.Background(), Dialect("oracle"), "x")
	require.Error(t, err)
}

func TestCached(t *testing.T) {
	inner := NewMemoryStore()
	c, err := NewCached(inner, 2)
	require.NoError(t, err)
	exerciseStore(t, c)

	ctx := context.Background()
	require.NoError(t, inner.Save(ctx, "warm", []byte("v1")))
	got, err := c.Load(ctx, "warm")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))
	assert.True(t, c.Holds("warm"))

	// A write that bypasses the cache is invisible until the entry is evicted.
	require.NoError(t, inner.Save(ctx, "warm", []byte("v2")))
	got, err = c.Load(ctx, "warm")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))

	require.NoError(t, c.Save(ctx, "warm", []byte("v3")))
	got, err = inner.Load(ctx, "warm")
	require.NoError(t, err)
	assert.Equal(t, "v3", string(got))

	require.NoError(t, c.Delete(ctx, "warm"))
	assert.False(t, c.Holds("warm"))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(ctx, config.Server{StoreDriver: "file", DataDir: dir})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = Open(ctx, config.Server{StoreDriver: "memory", CacheSize: 4})
	require.NoError(t, err)
	assert.IsType(t, &Cached{}, s)

	s, err = Open(ctx, config.Server{StoreDriver: "sqlite", SQLitePath: filepath.Join(dir, "x.db")})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = Open(ctx, config.Server{StoreDriver: "etcd"})
	require.Error(t, err)
}

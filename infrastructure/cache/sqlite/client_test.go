package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLogger records warnings
type MockLogger struct {
	mu       sync.Mutex
	warnings []map[string]interface{}
}

func (m *MockLogger) Debug(string, map[string]interface{}) {}
func (m *MockLogger) Info(string, map[string]interface{})  {}
func (m *MockLogger) Error(string, map[string]interface{}) {}
func (m *MockLogger) Warn(_ string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warnings = append(m.warnings, fields)
}

func newTestClient(t *testing.T, logger *MockLogger) *Client {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")

	var (
		client *Client
		err    error
	)
	if logger != nil {
		client, err = NewSQLiteCacheWithLogger(path, logger)
	} else {
		client, err = NewSQLiteCache(path)
	}
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestClient_SetGetDelete(t *testing.T) {
	client := newTestClient(t, nil)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "article:https://example.com/a", []byte(`{"markdown":"# A"}`), time.Hour))

	got, err := client.Get(ctx, "article:https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, `{"markdown":"# A"}`, string(got))

	require.NoError(t, client.Delete(ctx, "article:https://example.com/a"))
	_, err = client.Get(ctx, "article:https://example.com/a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_Overwrite(t *testing.T) {
	client := newTestClient(t, nil)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "k", []byte("one"), time.Hour))
	require.NoError(t, client.Set(ctx, "k", []byte("two"), time.Hour))

	got, err := client.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))
}

func TestClient_Expiry(t *testing.T) {
	client := newTestClient(t, nil)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "short", []byte("v"), 20*time.Millisecond))
	require.NoError(t, client.Set(ctx, "forever", []byte("v"), 0))
	time.Sleep(40 * time.Millisecond)

	_, err := client.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrNotFound)

	removed, err := client.cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	got, err := client.Get(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestClient_RejectsInvalidInput(t *testing.T) {
	client := newTestClient(t, nil)
	ctx := context.Background()

	assert.Error(t, client.Set(ctx, "", []byte("v"), time.Hour))
	assert.Error(t, client.Set(ctx, "k", nil, time.Hour))
	assert.Error(t, client.Set(ctx, "bad\x00key", []byte("v"), time.Hour))
	_, err := client.Get(ctx, "")
	assert.Error(t, err)
	assert.Error(t, client.Delete(ctx, ""))
}

func TestClient_SQLInjectionKeysAreStoredLiterally(t *testing.T) {
	logger := &MockLogger{}
	client := newTestClient(t, logger)
	ctx := context.Background()

	keys := []string{
		"key'; DROP TABLE markdown_cache; --",
		"key' OR '1'='1",
		"key' UNION SELECT null, null, null--",
		"key\nwith\nnewlines",
	}
	for i, key := range keys {
		value := []byte{byte('a' + i)}
		require.NoError(t, client.Set(ctx, key, value, time.Hour), key)
	}
	for i, key := range keys {
		got, err := client.Get(ctx, key)
		require.NoError(t, err, key)
		assert.Equal(t, []byte{byte('a' + i)}, got)
	}

	_, err := client.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrNotFound, "injection must not match other rows")
	assert.NotEmpty(t, logger.warnings)
}

func TestClient_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	ctx := context.Background()

	first, err := NewSQLiteCache(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "discussion:x", []byte("md"), time.Hour))
	require.NoError(t, first.Close())

	second, err := NewSQLiteCache(path)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(ctx, "discussion:x")
	require.NoError(t, err)
	assert.Equal(t, "md", string(got))
}

func TestClient_CloseIsIdempotent(t *testing.T) {
	client, err := NewSQLiteCache(filepath.Join(t.TempDir(), "close.db"))
	require.NoError(t, err)

	require.NoError(t, client.Close())
	assert.NotPanics(t, func() { _ = client.Close() })
}

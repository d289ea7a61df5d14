package sqlite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryBuilder_Select(t *testing.T) {
	query, params, err := NewQueryBuilder().
		Select("value").
		From("cache").
		Where("key", "=", "k").
		Where("expiry", ">", 10).
		Build()

	require.NoError(t, err)
	assert.Equal(t, "SELECT value FROM cache WHERE key = ? AND expiry > ?", query)
	assert.Equal(t, []interface{}{"k", 10}, params)
}

func TestQueryBuilder_InsertOrReplace(t *testing.T) {
	query, params, err := NewQueryBuilder().
		InsertOrReplace("cache").
		Values([]string{"key", "value"}, []interface{}{"k", []byte("v")}).
		Build()

	require.NoError(t, err)
	assert.Equal(t, "INSERT OR REPLACE INTO cache (key, value) VALUES (?, ?)", query)
	assert.Len(t, params, 2)
}

func TestQueryBuilder_RejectsUnsafeInput(t *testing.T) {
	tests := []struct {
		name string
		qb   *QueryBuilder
	}{
		{"table with injection", NewQueryBuilder().Select("value").From("cache; DROP TABLE x")},
		{"column with quote", NewQueryBuilder().Select("value'")},
		{"no columns", NewQueryBuilder().Select()},
		{"bad operator", NewQueryBuilder().Select("v").From("t").Where("k", "LIKE", "x")},
		{"mismatched values", NewQueryBuilder().InsertOrReplace("t").Values([]string{"a"}, nil)},
		{"long name", NewQueryBuilder().Delete(strings.Repeat("a", 65))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, params, err := tt.qb.Build()
			assert.Error(t, err)
			assert.Empty(t, query)
			assert.Nil(t, params)
		})
	}
}

func TestBuildCacheQueries(t *testing.T) {
	q, err := buildCacheQueries("markdown_cache")
	require.NoError(t, err)

	assert.Equal(t, "SELECT value FROM markdown_cache WHERE key = ? AND expiry > ?", q.get)
	assert.Equal(t, "INSERT OR REPLACE INTO markdown_cache (key, value, expiry) VALUES (?, ?, ?)", q.set)
	assert.Equal(t, "DELETE FROM markdown_cache WHERE key = ?", q.del)
	assert.Equal(t, "DELETE FROM markdown_cache WHERE expiry <= ?", q.cleanup)

	_, err = buildCacheQueries("bad table")
	assert.Error(t, err)
}

func TestValidateKey(t *testing.T) {
	assert.NoError(t, ValidateKey("article:https://example.com/very/long/path?x=1", nil))
	assert.Error(t, ValidateKey("", nil))
	assert.Error(t, ValidateKey(strings.Repeat("k", MaxKeyLength+1), nil))
	assert.Error(t, ValidateKey("a\x00b", nil))

	logger := &MockLogger{}
	assert.NoError(t, ValidateKey("x'; --", logger))
	require.Len(t, logger.warnings, 1)
	assert.Equal(t, "x'; --", logger.warnings[0]["key_preview"])
}

func TestValidateValue(t *testing.T) {
	assert.NoError(t, ValidateValue([]byte("v")))
	assert.Error(t, ValidateValue(nil))
	assert.Error(t, ValidateValue(make([]byte, MaxValueLength+1)))
}

func TestTruncateKey(t *testing.T) {
	assert.Equal(t, "short", truncateKey("short"))
	long := strings.Repeat("x", 80)
	assert.Equal(t, strings.Repeat("x", 50)+"...", truncateKey(long))
}

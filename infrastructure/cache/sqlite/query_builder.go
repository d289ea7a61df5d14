// ABOUTME: Safe SQL query builder for SQLite cache operations
// ABOUTME: Enforces parameterization and validates cache keys and values

package sqlite

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"digests-reader-api/core/interfaces"
)

// QueryBuilder provides a safe way to build SQL queries with automatic parameterization
type QueryBuilder struct {
	query  string
	params []interface{}
	err    error
}

// Table and column name validation - only alphanumeric, underscore allowed
var safeNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

const (
	// MaxKeyLength fits long article URLs plus the key prefix
	MaxKeyLength = 4096

	// MaxValueLength bounds a single cached view
	MaxValueLength = 8 * 1024 * 1024
)

var allowedOperators = map[string]bool{
	"=":  true,
	"!=": true,
	">":  true,
	"<":  true,
	">=": true,
	"<=": true,
}

// NewQueryBuilder creates a new query builder instance
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{
		params: make([]interface{}, 0),
	}
}

func validateName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}
	if len(name) > 64 {
		return fmt.Errorf("name too long: %s (max 64 characters)", name)
	}
	if !safeNamePattern.MatchString(name) {
		return fmt.Errorf("invalid name: %s (only alphanumeric and underscore allowed)", name)
	}
	return nil
}

func (qb *QueryBuilder) check(names ...string) bool {
	if qb.err != nil {
		return false
	}
	for _, name := range names {
		if err := validateName(name); err != nil {
			qb.err = err
			return false
		}
	}
	return true
}

// Select builds a SELECT query
func (qb *QueryBuilder) Select(columns ...string) *QueryBuilder {
	if len(columns) == 0 {
		qb.err = errors.New("select needs at least one column")
		return qb
	}
	if qb.check(columns...) {
		qb.query = "SELECT " + strings.Join(columns, ", ") + " "
	}
	return qb
}

// From adds FROM clause
func (qb *QueryBuilder) From(table string) *QueryBuilder {
	if qb.check(table) {
		qb.query += "FROM " + table + " "
	}
	return qb
}

// Where adds a parameterized condition; several calls are joined with AND
func (qb *QueryBuilder) Where(column string, operator string, value interface{}) *QueryBuilder {
	if !qb.check(column) {
		return qb
	}
	if !allowedOperators[operator] {
		qb.err = fmt.Errorf("unsupported operator %q", operator)
		return qb
	}

	if strings.Contains(qb.query, "WHERE") {
		qb.query += "AND "
	} else {
		qb.query += "WHERE "
	}
	qb.query += column + " " + operator + " ? "
	qb.params = append(qb.params, value)
	return qb
}

// InsertOrReplace builds an INSERT OR REPLACE query
func (qb *QueryBuilder) InsertOrReplace(table string) *QueryBuilder {
	if qb.check(table) {
		qb.query = "INSERT OR REPLACE INTO " + table + " "
	}
	return qb
}

// Values adds VALUES clause
func (qb *QueryBuilder) Values(columns []string, values []interface{}) *QueryBuilder {
	if len(columns) != len(values) || len(columns) == 0 {
		qb.err = errors.New("columns and values must be non-empty and the same length")
		return qb
	}
	if !qb.check(columns...) {
		return qb
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	qb.query += "(" + strings.Join(columns, ", ") + ") VALUES (" + placeholders + ")"
	qb.params = append(qb.params, values...)
	return qb
}

// Delete builds a DELETE query
func (qb *QueryBuilder) Delete(table string) *QueryBuilder {
	if qb.check(table) {
		qb.query = "DELETE FROM " + table + " "
	}
	return qb
}

// Build returns the built query, its parameters and the first validation error
func (qb *QueryBuilder) Build() (string, []interface{}, error) {
	if qb.err != nil {
		return "", nil, qb.err
	}
	return strings.TrimSpace(qb.query), qb.params, nil
}

// suspiciousPatterns are logged but not rejected; parameterization makes them harmless
var suspiciousPatterns = []string{"--", "/*", "*/", ";", "'", "\"", "\\", "\n", "\r", "\t"}

// ValidateKey validates a cache key, warning about SQL-looking content
func ValidateKey(key string, logger interfaces.Logger) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if len(key) > MaxKeyLength {
		return fmt.Errorf("key too long: max %d characters", MaxKeyLength)
	}
	if strings.Contains(key, "\x00") {
		return errors.New("key cannot contain null bytes")
	}

	for _, pattern := range suspiciousPatterns {
		if strings.Contains(key, pattern) {
			interfaces.LoggerOrNop(logger).Warn("Suspicious pattern detected in cache key", map[string]interface{}{
				"pattern":     pattern,
				"key_length":  len(key),
				"key_preview": truncateKey(key),
			})
			break
		}
	}
	return nil
}

// truncateKey returns a safe preview of the key for logging
func truncateKey(key string) string {
	const maxPreview = 50
	if len(key) <= maxPreview {
		return key
	}
	return key[:maxPreview] + "..."
}

// ValidateValue validates a cache value
func ValidateValue(value []byte) error {
	if len(value) == 0 {
		return errors.New("value cannot be empty")
	}
	if len(value) > MaxValueLength {
		return fmt.Errorf("value too large: max %d bytes", MaxValueLength)
	}
	return nil
}

// cacheQueries holds the statements the cache client runs
type cacheQueries struct {
	get     string
	set     string
	del     string
	cleanup string
}

func buildCacheQueries(table string) (cacheQueries, error) {
	var (
		q   cacheQueries
		err error
	)
	if q.get, _, err = NewQueryBuilder().Select("value").From(table).
		Where("key", "=", nil).Where("expiry", ">", nil).Build(); err != nil {
		return q, err
	}
	if q.set, _, err = NewQueryBuilder().InsertOrReplace(table).
		Values([]string{"key", "value", "expiry"}, []interface{}{nil, nil, nil}).Build(); err != nil {
		return q, err
	}
	if q.del, _, err = NewQueryBuilder().Delete(table).Where("key", "=", nil).Build(); err != nil {
		return q, err
	}
	if q.cleanup, _, err = NewQueryBuilder().Delete(table).Where("expiry", "<=", nil).Build(); err != nil {
		return q, err
	}
	return q, nil
}

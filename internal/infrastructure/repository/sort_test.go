package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortClause_AllowedColumn(t *testing.T) {
	clause := sortClause("name", "asc", "name", "code", "created_at")
	assert.Equal(t, "name ASC", clause)
}

func TestSortClause_Defaults(t *testing.T) {
	clause := sortClause("", "", "name", "code", "created_at")
	assert.Equal(t, "created_at DESC", clause)
}

func TestSortClause_UnknownColumnFallsBack(t *testing.T) {
	tests := []string{
		"updated_at",
		"created_at;--",
		"name; DROP TABLE products",
		"(SELECT 1)",
	}
	for _, sortBy := range tests {
		clause := sortClause(sortBy, "DESC", "name", "code", "created_at")
		assert.Equal(t, "created_at DESC", clause, "sort_by %q", sortBy)
	}
}

func TestSortClause_DirectionNormalized(t *testing.T) {
	assert.Equal(t, "code ASC", sortClause("code", "ASC", "code"))
	assert.Equal(t, "code DESC", sortClause("code", "descending; --", "code"))
}

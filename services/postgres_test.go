package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyError(t *testing.T) {
	assert.False(t, IsDuplicateKeyError(nil))
	assert.False(t, IsDuplicateKeyError(errors.New("connection refused")))

	assert.True(t, IsDuplicateKeyError(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKeyError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsDuplicateKeyError(&pgconn.PgError{Code: "23503"}))

	wrapped := fmt.Errorf("insert failed: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, IsDuplicateKeyError(wrapped))

	textual := errors.New(`ERROR: duplicate key value violates unique constraint "notes_pkey"`)
	assert.True(t, IsDuplicateKeyError(textual))
}

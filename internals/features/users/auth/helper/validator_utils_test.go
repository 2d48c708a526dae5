package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.NoError(t, CheckPasswordHash(hash, "secret123"))
	assert.Error(t, CheckPasswordHash(hash, "secret124"))
}

func TestValidateRegisterInput(t *testing.T) {
	assert.NoError(t, ValidateRegisterInput("desk_admin", "admin@hall.test", "abcd1234"))

	assert.Error(t, ValidateRegisterInput("ab", "admin@hall.test", "abcd1234"))
	assert.Error(t, ValidateRegisterInput("bad name", "admin@hall.test", "abcd1234"))
	assert.Error(t, ValidateRegisterInput("desk_admin", "not-an-email", "abcd1234"))
	assert.Error(t, ValidateRegisterInput("desk_admin", "admin@hall.test", "short1"))
	assert.Error(t, ValidateRegisterInput("desk_admin", "admin@hall.test", "lettersonly"))
	// 38 runes but 74 bytes
	assert.Error(t, ValidateRegisterInput("desk_admin", "admin@hall.test", strings.Repeat("é", 36)+"a1"))
	assert.NoError(t, ValidateRegisterInput("desk_admin", "admin@hall.test", strings.Repeat("a", 71)+"1"))
}

func TestValidateLoginInput(t *testing.T) {
	assert.NoError(t, ValidateLoginInput("desk_admin", "x"))
	assert.Error(t, ValidateLoginInput("  ", "x"))
	assert.Error(t, ValidateLoginInput("desk_admin", ""))
}

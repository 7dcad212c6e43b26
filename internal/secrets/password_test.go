package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Blank accounts and keys are rejected before the keychain is touched.
func TestKeyValidation(t *testing.T) {
	assert.Error(t, SetDatabaseKey("", "s3cret"))
	assert.Error(t, SetDatabaseKey("  ", "s3cret"))
	assert.Error(t, SetDatabaseKey("worker", ""))
	assert.Error(t, SetDatabaseKey("worker", "  "))
	assert.Error(t, DeleteDatabaseKey(""))

	_, err := GetDatabaseKey("  ")
	assert.Error(t, err)
}

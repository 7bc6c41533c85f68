package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplay(t *testing.T) {
	assert.Equal(t, "Alice", Display("Alice", "Guest42", true))
	assert.Equal(t, "Guest42", Display("Alice", "Guest42", false))
	assert.Equal(t, "", Display("Alice", "", false))
}

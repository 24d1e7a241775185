package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(SetLanguage(FALLBACK))
	defer SetLanguage("")

	assert.Equal("stack empty", From("stack empty"))
	assert.Equal("pc 0x200", From("pc %#03x", 0x200))
	assert.Equal("key 16 invalid", From("key %d invalid", 16))
}

func TestSetLanguage(t *testing.T) {
	assert := assert.New(t)

	defer SetLanguage("")

	assert.NoError(SetLanguage("en-GB"))
	assert.Equal("pc 0x200", From("pc 0x%03x", 0x200))

	assert.Error(SetLanguage("not a language!"))
	assert.Equal("pc 0x200", From("pc 0x%03x", 0x200))

	assert.NoError(SetLanguage(""))
	assert.Equal("stack empty", From("stack empty"))
}

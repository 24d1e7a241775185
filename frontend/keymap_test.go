package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyOf(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		host rune
		key  uint8
	}{
		{'1', 0x1}, {'2', 0x2}, {'3', 0x3}, {'4', 0xc},
		{'q', 0x4}, {'w', 0x5}, {'e', 0x6}, {'r', 0xd},
		{'a', 0x7}, {'s', 0x8}, {'d', 0x9}, {'f', 0xe},
		{'z', 0xa}, {'x', 0x0}, {'c', 0xb}, {'v', 0xf},
		{'Q', 0x4}, {'V', 0xf},
	}

	for _, entry := range table {
		key, ok := KeyOf(entry.host)
		assert.True(ok, "%c", entry.host)
		assert.Equal(entry.key, key, "%c", entry.host)
	}

	for _, host := range "05pP \x1b" {
		_, ok := KeyOf(host)
		assert.False(ok, "%q", host)
	}
}

func TestKeyOf_Complete(t *testing.T) {
	assert := assert.New(t)

	seen := map[uint8]bool{}
	for _, host := range "1234qwerasdfzxcv" {
		key, ok := KeyOf(host)
		assert.True(ok)
		seen[key] = true
	}
	assert.Len(seen, 16)
}

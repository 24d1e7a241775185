package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_Write(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	err := mem.Write(0x300, []byte{1, 2, 3})
	assert.NoError(err)
	assert.Equal(byte(1), mem[0x300])
	assert.Equal(byte(3), mem[0x302])

	err = mem.Write(MEMORY_SIZE-2, []byte{4, 5})
	assert.NoError(err)

	err = mem.Write(MEMORY_SIZE-2, []byte{6, 7, 8})
	assert.ErrorIs(err, ErrOutOfBounds)
	// Nothing is written on failure.
	assert.Equal(byte(4), mem[MEMORY_SIZE-2])

	err = mem.Write(-1, []byte{1})
	assert.ErrorIs(err, ErrOutOfBounds)
}

func TestMemory_Read(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem[0x400] = 0xaa
	mem[0x401] = 0xbb

	data, err := mem.Read(0x400, 2)
	assert.NoError(err)
	assert.Equal([]byte{0xaa, 0xbb}, data)

	// The result is a copy.
	data[0] = 0
	assert.Equal(byte(0xaa), mem[0x400])

	data, err = mem.Read(0x400, 0)
	assert.NoError(err)
	assert.Len(data, 0)

	_, err = mem.Read(MEMORY_SIZE-1, 2)
	assert.ErrorIs(err, ErrOutOfBounds)
	_, err = mem.Read(MEMORY_SIZE, 1)
	assert.ErrorIs(err, ErrOutOfBounds)
}

func TestMemory_FetchCode(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem[0x200] = 0xd1
	mem[0x201] = 0x2f

	code, err := mem.FetchCode(0x200)
	assert.NoError(err)
	assert.Equal(Code(0xd12f), code)

	n0, n1, n2, n3 := code.Nibbles()
	assert.Equal([4]uint8{0xd, 0x1, 0x2, 0xf}, [4]uint8{n0, n1, n2, n3})

	_, err = mem.FetchCode(MEMORY_SIZE - 2)
	assert.NoError(err)
	_, err = mem.FetchCode(MEMORY_SIZE - 1)
	assert.ErrorIs(err, ErrOutOfBounds)
}

func TestMemory_Reset(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem[0x200] = 0x12
	mem.Reset()

	assert.Equal(byte(0), mem[0x200])
	assert.Equal(Font[:], mem[FONT_BASE:FONT_BASE+len(Font)])
	assert.Equal(80, len(Font))
}

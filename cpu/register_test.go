package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisters_Set(t *testing.T) {
	assert := assert.New(t)

	reg := &Registers{}
	for n := range REGISTER_COUNT {
		reg.Set(n, n*0x11)
		assert.Equal(uint8(n*0x11), reg.Get(n))
	}

	reg.Set(3, 0x101)
	assert.Equal(uint8(0x01), reg.Get(3))

	reg.Set(4, -2)
	assert.Equal(uint8(0xfe), reg.Get(4))

	reg.Set(5, 0x1ff+0x2)
	assert.Equal(uint8(0x01), reg.Get(5))
}

func TestRegisters_Flag(t *testing.T) {
	assert := assert.New(t)

	reg := &Registers{}
	reg.Flag(true)
	assert.Equal(uint8(1), reg.Get(REGISTER_FLAG))
	reg.Flag(false)
	assert.Equal(uint8(0), reg.Get(REGISTER_FLAG))
}

func TestRegisters_Reset(t *testing.T) {
	assert := assert.New(t)

	reg := &Registers{}
	reg.Set(0, 1)
	reg.Set(0xf, 1)
	reg.Reset()
	assert.Equal(Registers{}, *reg)
}

package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func FuzzCpu(f *testing.F) {
	for _, word := range []uint16{0x0000, 0x00e0, 0x00ee, 0x1200, 0x8124, 0xd125, 0xe19e, 0xf10a, 0xf165, 0xffff} {
		f.Add(word, uint8(0), uint16(0x300))
	}

	f.Fuzz(func(t *testing.T, word uint16, vx uint8, index uint16) {
		require := require.New(t)

		cpu := newTestMachine()
		cpu.Register.Set(int(word>>8)&0xf, int(vx))
		cpu.I = index & ADDRESS_MASK
		pc := cpu.Pc

		err := cpu.Execute(Code(word))
		if err != nil {
			require.True(
				errors.Is(err, ErrUnknownOpcode) ||
					errors.Is(err, ErrOutOfBounds) ||
					errors.Is(err, ErrInvalidKey) ||
					errors.Is(err, ErrStackUnderflow) ||
					errors.Is(err, ErrStackOverflow), "%v", err)
			require.Equal(pc, cpu.Pc)
			return
		}

		_, ok := Code(word).Decode()
		require.True(ok)
		require.LessOrEqual(cpu.I, uint16(ADDRESS_MASK))
		require.LessOrEqual(cpu.Stack.Depth(), STACK_LIMIT)
	})
}

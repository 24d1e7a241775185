package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProgram() *Program {
	return &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Pc: 0x200, Words: []string{"ld", "v0", "0x10"}, Bytes: []byte{0x60, 0x10}},
			{LineNo: 2, Pc: 0x202, Words: []string{".byte", "1", "2", "3"}, Bytes: []byte{1, 2, 3}, Data: true},
			{LineNo: 4, Pc: 0x205, Words: []string{"jp", "0x205"}, Bytes: []byte{0x12, 0x05}},
		},
	}
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	table := []struct {
		pc     uint16
		lineno int
		index  int
	}{
		{0x200, 1, 0},
		{0x201, 1, 1},
		{0x202, 2, 0},
		{0x204, 2, 2},
		{0x205, 4, 0},
		{0x206, 4, 1},
	}

	for _, entry := range table {
		dbg := prog.Debug(entry.pc)
		if !assert.NotNil(dbg.Opcode, "%03x", entry.pc) {
			continue
		}
		assert.Equal(entry.lineno, dbg.Opcode.LineNo, "%03x", entry.pc)
		assert.Equal(entry.index, dbg.Index, "%03x", entry.pc)
	}
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(0x1ff)
	assert.Nil(dbg.Opcode)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(0x207)
	assert.Nil(dbg.Opcode)
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	assert.Equal(7, prog.Size())
	assert.Equal([]byte{0x60, 0x10, 1, 2, 3, 0x12, 0x05}, prog.Binary())

	empty := &Program{}
	assert.Equal(0, empty.Size())
	assert.Empty(empty.Binary())
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	pcs := []uint16{}
	codes := []Code{}
	for pc, code := range prog.Codes() {
		pcs = append(pcs, pc)
		codes = append(codes, code)
	}

	assert.Equal([]uint16{0x200, 0x205}, pcs)
	assert.Equal([]Code{0x6010, 0x1205}, codes)
}

func TestProgram_Codes_EarlyReturn(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	count := 0
	for range prog.Codes() {
		count++
		if count == 1 {
			break
		}
	}

	assert.Equal(1, count)
}

func TestProgram_Integration_ParseAndDebug(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := strings.Join([]string{
		"ld v0, 0x10",
		"; comment only",
		"ld v1, 0x20",
		"add v0, v1",
	}, "\n")

	prog, err := asm.Parse(strings.NewReader(program))
	assert.NoError(err)

	for pc, lineno := range map[uint16]int{0x200: 1, 0x202: 3, 0x204: 4} {
		dbg := prog.Debug(pc)
		if assert.NotNil(dbg.Opcode) {
			assert.Equal(lineno, dbg.Opcode.LineNo)
		}
	}

	assert.Equal([]byte{0x60, 0x10, 0x61, 0x20, 0x80, 0x14}, prog.Binary())
}

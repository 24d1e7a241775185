package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_Fields(t *testing.T) {
	assert := assert.New(t)

	code := Code(0x8a5e)
	assert.Equal(0xa, code.X())
	assert.Equal(0x5, code.Y())
	assert.Equal(0xe, code.N())
	assert.Equal(0x5e, code.NN())
	assert.Equal(uint16(0xa5e), code.NNN())
}

func TestCode_Decode(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		code Code
		op   CodeOp
		text string
	}{
		{0x00e0, OP_CLS, "cls"},
		{0x00ee, OP_RET, "ret"},
		{0x0123, OP_SYS, "sys 0x123"},
		{0x1234, OP_JP, "jp 0x234"},
		{0x2fff, OP_CALL, "call 0xfff"},
		{0x3a12, OP_SE_IMM, "se va, 0x12"},
		{0x4b34, OP_SNE_IMM, "sne vb, 0x34"},
		{0x5120, OP_SE_REG, "se v1, v2"},
		{0x6c56, OP_LD_IMM, "ld vc, 0x56"},
		{0x7d78, OP_ADD_IMM, "add vd, 0x78"},
		{0x8120, OP_LD_REG, "ld v1, v2"},
		{0x8121, OP_OR, "or v1, v2"},
		{0x8122, OP_AND, "and v1, v2"},
		{0x8123, OP_XOR, "xor v1, v2"},
		{0x8124, OP_ADD_REG, "add v1, v2"},
		{0x8125, OP_SUB, "sub v1, v2"},
		{0x8106, OP_SHR, "shr v1"},
		{0x8126, OP_SHR, "shr v1, v2"},
		{0x8127, OP_SUBN, "subn v1, v2"},
		{0x810e, OP_SHL, "shl v1"},
		{0x9340, OP_SNE_REG, "sne v3, v4"},
		{0xa123, OP_LD_I, "ld i, 0x123"},
		{0xb456, OP_JP_V0, "jp v0, 0x456"},
		{0xc70f, OP_RND, "rnd v7, 0x0f"},
		{0xd125, OP_DRW, "drw v1, v2, 5"},
		{0xe59e, OP_SKP, "skp v5"},
		{0xe6a1, OP_SKNP, "sknp v6"},
		{0xf107, OP_LD_VX_DT, "ld v1, dt"},
		{0xf20a, OP_LD_VX_K, "ld v2, k"},
		{0xf315, OP_LD_DT_VX, "ld dt, v3"},
		{0xf418, OP_LD_ST_VX, "ld st, v4"},
		{0xf51e, OP_ADD_I, "add i, v5"},
		{0xf629, OP_LD_F, "ld f, v6"},
		{0xf733, OP_LD_B, "ld b, v7"},
		{0xf855, OP_LD_STORE, "ld [i], v8"},
		{0xf965, OP_LD_LOAD, "ld v9, [i]"},
	}

	seen := map[CodeOp]bool{}
	for _, entry := range table {
		op, ok := entry.code.Decode()
		assert.True(ok, entry.text)
		assert.Equal(entry.op, op, entry.text)
		assert.Equal(entry.text, entry.code.String())
		seen[op] = true
	}
	assert.Len(seen, int(OP_COUNT))
}

func TestCode_DecodeUnknown(t *testing.T) {
	assert := assert.New(t)

	for _, code := range []Code{0x5121, 0x812f, 0x8128, 0x9341, 0xe100, 0xe19f, 0xf100, 0xf1ff, 0xffff} {
		_, ok := code.Decode()
		assert.False(ok, "%04x", uint16(code))
	}

	assert.Equal(".word 0xffff", Code(0xffff).String())
}

func TestMakeCode(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(Code(0x00e0), MakeCode(OP_CLS, 0, 0, 0))
	assert.Equal(Code(0x1234), MakeCode(OP_JP, 0, 0, 0x234))
	assert.Equal(Code(0x6a42), MakeCode(OP_LD_IMM, 0xa, 0, 0x42))
	assert.Equal(Code(0x8ab4), MakeCode(OP_ADD_REG, 0xa, 0xb, 0))
	assert.Equal(Code(0xd12f), MakeCode(OP_DRW, 1, 2, 0xf))
	assert.Equal(Code(0xf333), MakeCode(OP_LD_B, 3, 0, 0))
}

func TestCodeOp_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("drw", OP_DRW.String())
	assert.Equal("ld.store", OP_LD_STORE.String())
	assert.Equal("CodeOp(99)", CodeOp(99).String())
}

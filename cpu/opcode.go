package cpu

import (
	"fmt"
	"strings"
)

// CodeOp identifies one of the 35 instructions of the machine.
type CodeOp int

const (
	OP_SYS      = CodeOp(iota) // sys
	OP_CLS                     // cls
	OP_RET                     // ret
	OP_JP                      // jp
	OP_CALL                    // call
	OP_SE_IMM                  // se.imm
	OP_SNE_IMM                 // sne.imm
	OP_SE_REG                  // se.reg
	OP_LD_IMM                  // ld.imm
	OP_ADD_IMM                 // add.imm
	OP_LD_REG                  // ld.reg
	OP_OR                      // or
	OP_AND                     // and
	OP_XOR                     // xor
	OP_ADD_REG                 // add.reg
	OP_SUB                     // sub
	OP_SHR                     // shr
	OP_SUBN                    // subn
	OP_SHL                     // shl
	OP_SNE_REG                 // sne.reg
	OP_LD_I                    // ld.i
	OP_JP_V0                   // jp.v0
	OP_RND                     // rnd
	OP_DRW                     // drw
	OP_SKP                     // skp
	OP_SKNP                    // sknp
	OP_LD_VX_DT                // ld.vx.dt
	OP_LD_VX_K                 // ld.vx.k
	OP_LD_DT_VX                // ld.dt.vx
	OP_LD_ST_VX                // ld.st.vx
	OP_ADD_I                   // add.i
	OP_LD_F                    // ld.f
	OP_LD_B                    // ld.b
	OP_LD_STORE                // ld.store
	OP_LD_LOAD                 // ld.load
	OP_COUNT
)

// opPattern matches an instruction word against a fixed bit pattern.
type opPattern struct {
	Mask   uint16 // Bits that identify the instruction.
	Value  uint16 // Required value of the masked bits.
	Op     CodeOp
	Name   string
	Format string // Disassembly template.
}

// opPatterns lists every instruction. Within a family the more specific
// patterns come first.
var opPatterns = [OP_COUNT]opPattern{
	{0xffff, 0x00e0, OP_CLS, "cls", "cls"},
	{0xffff, 0x00ee, OP_RET, "ret", "ret"},
	{0xf000, 0x0000, OP_SYS, "sys", "sys {nnn}"},
	{0xf000, 0x1000, OP_JP, "jp", "jp {nnn}"},
	{0xf000, 0x2000, OP_CALL, "call", "call {nnn}"},
	{0xf000, 0x3000, OP_SE_IMM, "se.imm", "se v{x}, {nn}"},
	{0xf000, 0x4000, OP_SNE_IMM, "sne.imm", "sne v{x}, {nn}"},
	{0xf00f, 0x5000, OP_SE_REG, "se.reg", "se v{x}, v{y}"},
	{0xf000, 0x6000, OP_LD_IMM, "ld.imm", "ld v{x}, {nn}"},
	{0xf000, 0x7000, OP_ADD_IMM, "add.imm", "add v{x}, {nn}"},
	{0xf00f, 0x8000, OP_LD_REG, "ld.reg", "ld v{x}, v{y}"},
	{0xf00f, 0x8001, OP_OR, "or", "or v{x}, v{y}"},
	{0xf00f, 0x8002, OP_AND, "and", "and v{x}, v{y}"},
	{0xf00f, 0x8003, OP_XOR, "xor", "xor v{x}, v{y}"},
	{0xf00f, 0x8004, OP_ADD_REG, "add.reg", "add v{x}, v{y}"},
	{0xf00f, 0x8005, OP_SUB, "sub", "sub v{x}, v{y}"},
	{0xf00f, 0x8006, OP_SHR, "shr", "shr v{x}{, vy}"},
	{0xf00f, 0x8007, OP_SUBN, "subn", "subn v{x}, v{y}"},
	{0xf00f, 0x800e, OP_SHL, "shl", "shl v{x}{, vy}"},
	{0xf00f, 0x9000, OP_SNE_REG, "sne.reg", "sne v{x}, v{y}"},
	{0xf000, 0xa000, OP_LD_I, "ld.i", "ld i, {nnn}"},
	{0xf000, 0xb000, OP_JP_V0, "jp.v0", "jp v0, {nnn}"},
	{0xf000, 0xc000, OP_RND, "rnd", "rnd v{x}, {nn}"},
	{0xf000, 0xd000, OP_DRW, "drw", "drw v{x}, v{y}, {n}"},
	{0xf0ff, 0xe09e, OP_SKP, "skp", "skp v{x}"},
	{0xf0ff, 0xe0a1, OP_SKNP, "sknp", "sknp v{x}"},
	{0xf0ff, 0xf007, OP_LD_VX_DT, "ld.vx.dt", "ld v{x}, dt"},
	{0xf0ff, 0xf00a, OP_LD_VX_K, "ld.vx.k", "ld v{x}, k"},
	{0xf0ff, 0xf015, OP_LD_DT_VX, "ld.dt.vx", "ld dt, v{x}"},
	{0xf0ff, 0xf018, OP_LD_ST_VX, "ld.st.vx", "ld st, v{x}"},
	{0xf0ff, 0xf01e, OP_ADD_I, "add.i", "add i, v{x}"},
	{0xf0ff, 0xf029, OP_LD_F, "ld.f", "ld f, v{x}"},
	{0xf0ff, 0xf033, OP_LD_B, "ld.b", "ld b, v{x}"},
	{0xf0ff, 0xf055, OP_LD_STORE, "ld.store", "ld [i], v{x}"},
	{0xf0ff, 0xf065, OP_LD_LOAD, "ld.load", "ld v{x}, [i]"},
}

// opFamily is the dispatch table, keyed by the high nibble of the word.
var opFamily [16][]*opPattern

// opByCode maps a CodeOp back to its pattern.
var opByCode [OP_COUNT]*opPattern

func init() {
	for n := range opPatterns {
		pattern := &opPatterns[n]
		family := pattern.Value >> 12
		opFamily[family] = append(opFamily[family], pattern)
		opByCode[pattern.Op] = pattern
	}
}

// String returns the name of the instruction.
func (op CodeOp) String() string {
	if op < 0 || op >= OP_COUNT {
		return fmt.Sprintf("CodeOp(%d)", int(op))
	}
	return opByCode[op].Name
}

// Word returns the instruction word with all operand fields zero.
func (op CodeOp) Word() uint16 {
	return opByCode[op].Value
}

// Code is a single two byte instruction word.
type Code uint16

// Nibbles splits the word into its four 4-bit fields, most significant first.
func (code Code) Nibbles() (n0, n1, n2, n3 uint8) {
	n0 = uint8(code>>12) & 0xf
	n1 = uint8(code>>8) & 0xf
	n2 = uint8(code>>4) & 0xf
	n3 = uint8(code>>0) & 0xf
	return
}

// X returns the first register operand.
func (code Code) X() int {
	return int(code>>8) & 0xf
}

// Y returns the second register operand.
func (code Code) Y() int {
	return int(code>>4) & 0xf
}

// N returns the 4-bit immediate.
func (code Code) N() int {
	return int(code) & 0xf
}

// NN returns the 8-bit immediate.
func (code Code) NN() int {
	return int(code) & 0xff
}

// NNN returns the 12-bit address.
func (code Code) NNN() uint16 {
	return uint16(code) & ADDRESS_MASK
}

// Decode finds the instruction encoded by the word.
func (code Code) Decode() (op CodeOp, ok bool) {
	n0, _, _, _ := code.Nibbles()
	for _, pattern := range opFamily[n0] {
		if uint16(code)&pattern.Mask == pattern.Value {
			op = pattern.Op
			ok = true
			return
		}
	}

	return
}

// MakeCode builds an instruction word from the operation and its operands.
// Operands that the instruction does not use must be zero.
func MakeCode(op CodeOp, x, y int, imm int) Code {
	word := op.Word()
	word |= uint16(x&0xf) << 8
	word |= uint16(y&0xf) << 4
	word |= uint16(imm) & ^opByCode[op].Mask
	return Code(word)
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	op, ok := code.Decode()
	if !ok {
		return fmt.Sprintf(".word 0x%04x", uint16(code))
	}

	optional := ""
	if code.Y() != 0 {
		optional = fmt.Sprintf(", v%x", code.Y())
	}

	replacer := strings.NewReplacer(
		"{x}", fmt.Sprintf("%x", code.X()),
		"{y}", fmt.Sprintf("%x", code.Y()),
		"{n}", fmt.Sprintf("%d", code.N()),
		"{nn}", fmt.Sprintf("0x%02x", code.NN()),
		"{nnn}", fmt.Sprintf("0x%03x", code.NNN()),
		"{, vy}", optional,
	)

	return replacer.Replace(opByCode[op].Format)
}

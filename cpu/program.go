package cpu

import (
	"iter"
)

// Opcode is the assembled form of a single source line.
type Opcode struct {
	LineNo    int      // Source line number.
	Pc        uint16   // Address of the first emitted byte.
	Words     []string // Source words, after equate expansion.
	Bytes     []byte   // Emitted bytes.
	LinkLabel string   // If set, label to link into the address field.
	Data      bool     // Set for .byte and .word directives.
}

// Contains returns true if the address is within the emitted bytes.
func (op *Opcode) Contains(pc uint16) bool {
	return pc >= op.Pc && int(pc) < int(op.Pc)+len(op.Bytes)
}

// Program is an assembled program image with its source mapping.
type Program struct {
	Opcodes []Opcode
}

// Debug locates the opcode containing an address.
type Debug struct {
	*Opcode
	Index int // Byte offset of the address within the opcode.
}

// Debug returns the opcode that emitted the byte at pc.
// If none did, the returned Opcode is nil.
func (prog *Program) Debug(pc uint16) (dbg Debug) {
	for n := range prog.Opcodes {
		op := &prog.Opcodes[n]
		if op.Contains(pc) {
			dbg = Debug{
				Opcode: op,
				Index:  int(pc - op.Pc),
			}
			break
		}
	}

	return
}

// Size returns the size of the program image in bytes.
func (prog *Program) Size() (size int) {
	for _, op := range prog.Opcodes {
		end := int(op.Pc) + len(op.Bytes) - PROGRAM_START
		size = max(size, end)
	}

	return
}

// Binary returns the program image, to be loaded at PROGRAM_START.
func (prog *Program) Binary() (image []byte) {
	image = make([]byte, prog.Size())
	for _, op := range prog.Opcodes {
		copy(image[int(op.Pc)-PROGRAM_START:], op.Bytes)
	}

	return
}

// Codes iterates over the instructions of the program.
// Data directives are not included.
func (prog *Program) Codes() iter.Seq2[uint16, Code] {
	return func(yield func(pc uint16, code Code) bool) {
		for _, op := range prog.Opcodes {
			if op.Data {
				continue
			}
			for n := 0; n+1 < len(op.Bytes); n += 2 {
				code := Code(uint16(op.Bytes[n])<<8 | uint16(op.Bytes[n+1]))
				if !yield(op.Pc+uint16(n), code) {
					return
				}
			}
		}
	}
}

package cpu

const (
	MEMORY_SIZE   = 0x1000 // Addressable memory, in bytes.
	FONT_BASE     = 0x050  // Location of the hexadecimal digit glyphs.
	GLYPH_SIZE    = 5      // Bytes per digit glyph.
	PROGRAM_START = 0x200  // Load address and entry point of a program image.
	ADDRESS_MASK  = 0xfff  // Mask of the 12-bit address space.
)

// Font is the 4x5 glyph for each hexadecimal digit, loaded at FONT_BASE.
var Font = [16 * GLYPH_SIZE]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the flat, byte addressable store of the machine.
type Memory [MEMORY_SIZE]byte

func inBounds(offset, length int) bool {
	return offset >= 0 && length >= 0 && offset+length <= MEMORY_SIZE
}

// Write copies data into memory starting at offset.
// Nothing is written if any byte would fall outside of memory.
func (mem *Memory) Write(offset int, data []byte) (err error) {
	if !inBounds(offset, len(data)) {
		err = ErrOutOfBounds
		return
	}

	copy(mem[offset:], data)
	return
}

// Read returns a copy of length bytes starting at offset.
func (mem *Memory) Read(offset int, length int) (data []byte, err error) {
	if !inBounds(offset, length) {
		err = ErrOutOfBounds
		return
	}

	data = make([]byte, length)
	copy(data, mem[offset:offset+length])
	return
}

// FetchCode reads the big-endian instruction word at pc.
func (mem *Memory) FetchCode(pc uint16) (code Code, err error) {
	if !inBounds(int(pc), 2) {
		err = ErrOutOfBounds
		return
	}

	code = Code(uint16(mem[pc])<<8 | uint16(mem[pc+1]))
	return
}

// Reset zeros memory and installs the font.
func (mem *Memory) Reset() {
	clear(mem[:])
	copy(mem[FONT_BASE:], Font[:])
}

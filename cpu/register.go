package cpu

const (
	REGISTER_COUNT = 16  // Number of general purpose registers.
	REGISTER_FLAG  = 0xf // Carry, borrow and collision flag register.
)

// Registers is the general purpose register file, v0 through vf.
type Registers [REGISTER_COUNT]uint8

// Get returns the value of register vN.
func (reg *Registers) Get(index int) uint8 {
	return reg[index]
}

// Set stores the low 8 bits of value into register vN.
func (reg *Registers) Set(index int, value int) {
	reg[index] = uint8(value & 0xff)
}

// Flag sets vf to 1 if set is true, 0 otherwise.
func (reg *Registers) Flag(set bool) {
	if set {
		reg[REGISTER_FLAG] = 1
	} else {
		reg[REGISTER_FLAG] = 0
	}
}

// Reset zeros all registers.
func (reg *Registers) Reset() {
	clear(reg[:])
}

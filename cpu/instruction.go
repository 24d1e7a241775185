package cpu

import (
	"github.com/ezrec/chip8/io"
)

// opHandler dispatches a decoded CodeOp to its implementation.
// Handlers leave cpu.nextPc alone to advance to the following instruction.
var opHandler = [OP_COUNT]func(cpu *Cpu, code Code) error{
	OP_SYS:      (*Cpu).opSys,
	OP_CLS:      (*Cpu).opCls,
	OP_RET:      (*Cpu).opRet,
	OP_JP:       (*Cpu).opJp,
	OP_CALL:     (*Cpu).opCall,
	OP_SE_IMM:   (*Cpu).opSeImm,
	OP_SNE_IMM:  (*Cpu).opSneImm,
	OP_SE_REG:   (*Cpu).opSeReg,
	OP_LD_IMM:   (*Cpu).opLdImm,
	OP_ADD_IMM:  (*Cpu).opAddImm,
	OP_LD_REG:   (*Cpu).opLdReg,
	OP_OR:       (*Cpu).opOr,
	OP_AND:      (*Cpu).opAnd,
	OP_XOR:      (*Cpu).opXor,
	OP_ADD_REG:  (*Cpu).opAddReg,
	OP_SUB:      (*Cpu).opSub,
	OP_SHR:      (*Cpu).opShr,
	OP_SUBN:     (*Cpu).opSubn,
	OP_SHL:      (*Cpu).opShl,
	OP_SNE_REG:  (*Cpu).opSneReg,
	OP_LD_I:     (*Cpu).opLdI,
	OP_JP_V0:    (*Cpu).opJpV0,
	OP_RND:      (*Cpu).opRnd,
	OP_DRW:      (*Cpu).opDrw,
	OP_SKP:      (*Cpu).opSkp,
	OP_SKNP:     (*Cpu).opSknp,
	OP_LD_VX_DT: (*Cpu).opLdVxDt,
	OP_LD_VX_K:  (*Cpu).opLdVxK,
	OP_LD_DT_VX: (*Cpu).opLdDtVx,
	OP_LD_ST_VX: (*Cpu).opLdStVx,
	OP_ADD_I:    (*Cpu).opAddI,
	OP_LD_F:     (*Cpu).opLdF,
	OP_LD_B:     (*Cpu).opLdB,
	OP_LD_STORE: (*Cpu).opLdStore,
	OP_LD_LOAD:  (*Cpu).opLdLoad,
}

// skipIf skips the following instruction when cond holds.
func (cpu *Cpu) skipIf(cond bool) {
	if cond {
		cpu.nextPc = cpu.Pc + 4
	}
}

// vx returns the value of the first register operand.
func (cpu *Cpu) vx(code Code) uint8 {
	return cpu.Register.Get(code.X())
}

// vy returns the value of the second register operand.
func (cpu *Cpu) vy(code Code) uint8 {
	return cpu.Register.Get(code.Y())
}

// 0NNN: machine code routines are not emulated.
func (cpu *Cpu) opSys(code Code) error {
	return nil
}

// 00E0
func (cpu *Cpu) opCls(code Code) error {
	cpu.Display.Clear()
	return nil
}

// 00EE
func (cpu *Cpu) opRet(code Code) error {
	pc, err := cpu.Stack.Pop()
	if err != nil {
		return err
	}
	cpu.nextPc = pc + 2
	return nil
}

// 1NNN
func (cpu *Cpu) opJp(code Code) error {
	cpu.nextPc = code.NNN()
	return nil
}

// 2NNN
func (cpu *Cpu) opCall(code Code) error {
	err := cpu.Stack.Push(cpu.Pc)
	if err != nil {
		return err
	}
	cpu.nextPc = code.NNN()
	return nil
}

// 3XNN
func (cpu *Cpu) opSeImm(code Code) error {
	cpu.skipIf(int(cpu.vx(code)) == code.NN())
	return nil
}

// 4XNN
func (cpu *Cpu) opSneImm(code Code) error {
	cpu.skipIf(int(cpu.vx(code)) != code.NN())
	return nil
}

// 5XY0
func (cpu *Cpu) opSeReg(code Code) error {
	cpu.skipIf(cpu.vx(code) == cpu.vy(code))
	return nil
}

// 9XY0
func (cpu *Cpu) opSneReg(code Code) error {
	cpu.skipIf(cpu.vx(code) != cpu.vy(code))
	return nil
}

// 6XNN
func (cpu *Cpu) opLdImm(code Code) error {
	cpu.Register.Set(code.X(), code.NN())
	return nil
}

// 7XNN: vf is not touched.
func (cpu *Cpu) opAddImm(code Code) error {
	cpu.Register.Set(code.X(), int(cpu.vx(code))+code.NN())
	return nil
}

// 8XY0
func (cpu *Cpu) opLdReg(code Code) error {
	cpu.Register.Set(code.X(), int(cpu.vy(code)))
	return nil
}

// 8XY1
func (cpu *Cpu) opOr(code Code) error {
	cpu.Register.Set(code.X(), int(cpu.vx(code)|cpu.vy(code)))
	return nil
}

// 8XY2
func (cpu *Cpu) opAnd(code Code) error {
	cpu.Register.Set(code.X(), int(cpu.vx(code)&cpu.vy(code)))
	return nil
}

// 8XY3
func (cpu *Cpu) opXor(code Code) error {
	cpu.Register.Set(code.X(), int(cpu.vx(code)^cpu.vy(code)))
	return nil
}

// 8XY4: vf is the carry out of the unmasked sum.
func (cpu *Cpu) opAddReg(code Code) error {
	sum := int(cpu.vx(code)) + int(cpu.vy(code))
	cpu.Register.Set(code.X(), sum)
	cpu.Register.Flag(sum > 0xff)
	return nil
}

// 8XY5: vf is 1 when there is no borrow.
func (cpu *Cpu) opSub(code Code) error {
	vx, vy := cpu.vx(code), cpu.vy(code)
	cpu.Register.Set(code.X(), int(vx)-int(vy))
	cpu.Register.Flag(vx >= vy)
	return nil
}

// 8XY6: vf is the bit shifted out.
func (cpu *Cpu) opShr(code Code) error {
	vx := cpu.vx(code)
	cpu.Register.Set(code.X(), int(vx>>1))
	cpu.Register.Flag(vx&0x01 != 0)
	return nil
}

// 8XY7: vf is 0 when there is a borrow.
func (cpu *Cpu) opSubn(code Code) error {
	vx, vy := cpu.vx(code), cpu.vy(code)
	cpu.Register.Set(code.X(), int(vy)-int(vx))
	cpu.Register.Flag(vx <= vy)
	return nil
}

// 8XYE: vf is the bit shifted out.
func (cpu *Cpu) opShl(code Code) error {
	vx := cpu.vx(code)
	cpu.Register.Set(code.X(), int(vx)<<1)
	cpu.Register.Flag(vx&0x80 != 0)
	return nil
}

// ANNN
func (cpu *Cpu) opLdI(code Code) error {
	cpu.I = code.NNN()
	return nil
}

// BNNN
func (cpu *Cpu) opJpV0(code Code) error {
	cpu.nextPc = (uint16(cpu.Register.Get(0)) + code.NNN()) & ADDRESS_MASK
	return nil
}

// CXNN
func (cpu *Cpu) opRnd(code Code) error {
	cpu.Register.Set(code.X(), int(cpu.Rand.Uint32()&0xff)&code.NN())
	return nil
}

// DXYN: the origin wraps, the sprite itself is clipped at the edges.
func (cpu *Cpu) opDrw(code Code) error {
	rows, err := cpu.Memory.Read(int(cpu.I), code.N())
	if err != nil {
		return err
	}

	width, height := cpu.Display.Size()
	x := int(cpu.vx(code)) % width
	y := int(cpu.vy(code)) % height

	cpu.Register.Flag(cpu.Display.Draw(x, y, rows))
	return nil
}

// key returns the logical key named by the first register operand.
func (cpu *Cpu) key(code Code) (key uint8, err error) {
	key = cpu.vx(code)
	if key >= io.KEY_COUNT {
		err = ErrInvalidKey
	}
	return
}

// EX9E
func (cpu *Cpu) opSkp(code Code) error {
	key, err := cpu.key(code)
	if err != nil {
		return err
	}
	cpu.skipIf(cpu.Keyboard.IsPressed(key))
	return nil
}

// EXA1
func (cpu *Cpu) opSknp(code Code) error {
	key, err := cpu.key(code)
	if err != nil {
		return err
	}
	cpu.skipIf(!cpu.Keyboard.IsPressed(key))
	return nil
}

// FX07
func (cpu *Cpu) opLdVxDt(code Code) error {
	cpu.Register.Set(code.X(), int(cpu.Timers.Read(io.TIMER_DELAY)))
	return nil
}

// FX0A: the program counter holds until Step sees a key-down event.
func (cpu *Cpu) opLdVxK(code Code) error {
	cpu.Keyboard.Drain()
	cpu.state = STATE_WAITING_FOR_KEY
	cpu.waitReg = code.X()
	cpu.nextPc = cpu.Pc
	return nil
}

// FX15
func (cpu *Cpu) opLdDtVx(code Code) error {
	cpu.Timers.Write(io.TIMER_DELAY, int(cpu.vx(code)))
	return nil
}

// FX18
func (cpu *Cpu) opLdStVx(code Code) error {
	cpu.Timers.Write(io.TIMER_SOUND, int(cpu.vx(code)))
	return nil
}

// FX1E
func (cpu *Cpu) opAddI(code Code) error {
	cpu.I = (cpu.I + uint16(cpu.vx(code))) & ADDRESS_MASK
	return nil
}

// FX29: only the low nibble of vx selects the glyph.
func (cpu *Cpu) opLdF(code Code) error {
	digit := uint16(cpu.vx(code) & 0xf)
	cpu.I = FONT_BASE + digit*GLYPH_SIZE
	return nil
}

// FX33
func (cpu *Cpu) opLdB(code Code) error {
	vx := cpu.vx(code)
	return cpu.Memory.Write(int(cpu.I), []byte{vx / 100, (vx / 10) % 10, vx % 10})
}

// FX55: I is not modified.
func (cpu *Cpu) opLdStore(code Code) error {
	return cpu.Memory.Write(int(cpu.I), cpu.Register[:code.X()+1])
}

// FX65: I is not modified.
func (cpu *Cpu) opLdLoad(code Code) error {
	data, err := cpu.Memory.Read(int(cpu.I), code.X()+1)
	if err != nil {
		return err
	}
	for n, value := range data {
		cpu.Register.Set(n, int(value))
	}
	return nil
}

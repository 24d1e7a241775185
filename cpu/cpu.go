// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"math/rand/v2"

	"github.com/ezrec/chip8/io"
)

// Display is the framebuffer the CPU draws into.
type Display interface {
	// Clear sets every pixel to 0.
	Clear()
	// Draw XORs the sprite rows at the origin, returning true if any
	// pixel was turned off.
	Draw(x, y int, rows []byte) (collision bool)
	// Size returns the width and height in pixels.
	Size() (width, height int)
}

// Keyboard is the logical keypad the CPU polls.
type Keyboard interface {
	// IsPressed returns the current state of a logical key.
	IsPressed(key uint8) bool
	// KeyDown returns the next pending key-down event, if any.
	KeyDown() (key uint8, ok bool)
	// Drain discards all pending key-down events.
	Drain()
}

// TimerBank is the delay and sound timer pair.
type TimerBank interface {
	Read(which io.TimerId) uint8
	Write(which io.TimerId, value int)
}

// CpuState is the execution state of the CPU.
type CpuState int

const (
	STATE_RUNNING         = CpuState(0) // running
	STATE_WAITING_FOR_KEY = CpuState(1) // waiting
)

func (state CpuState) String() string {
	switch state {
	case STATE_RUNNING:
		return "running"
	case STATE_WAITING_FOR_KEY:
		return "waiting"
	}
	return fmt.Sprintf("CpuState(%d)", int(state))
}

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":   fmt.Sprintf("%#x", MEMORY_SIZE),
	"FONT_BASE":     fmt.Sprintf("%#x", FONT_BASE),
	"GLYPH_SIZE":    fmt.Sprintf("%d", GLYPH_SIZE),
	"PROGRAM_START": fmt.Sprintf("%#x", PROGRAM_START),
	"STACK_LIMIT":   fmt.Sprintf("%d", STACK_LIMIT),
}

// Cpu is the simulation context of the CHIP-8 interpreter.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Pc       uint16    // Address of the next instruction.
	I        uint16    // Index register.
	Register Registers // Register bank.
	Stack    Stack     // Return address stack.
	Memory   Memory    // Main memory.

	Ticks int // Instructions executed since reset.

	Rand     *rand.Rand // Source for `rnd`.
	Display  Display    // Attached framebuffer.
	Keyboard Keyboard   // Attached keypad.
	Timers   TimerBank  // Attached delay and sound timers.

	state   CpuState
	waitReg int    // Destination register of a pending key wait.
	nextPc  uint16 // Program counter after the executing instruction.
}

// NewCpu creates a new CPU attached to its peripherals.
func NewCpu(display Display, keyboard Keyboard, timers TimerBank) (cpu *Cpu) {
	cpu = &Cpu{
		Rand:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		Display:  display,
		Keyboard: keyboard,
		Timers:   timers,
	}

	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// State returns the current execution state.
func (cpu *Cpu) State() CpuState {
	return cpu.state
}

// Reset the CPU state.
// - Clears the registers, stack and memory.
// - Installs the font at FONT_BASE.
// - Sets the program counter to PROGRAM_START.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Register.Reset()
	cpu.Stack.Reset()
	cpu.Memory.Reset()
	cpu.Pc = PROGRAM_START
	cpu.I = 0
	cpu.Ticks = 0
	cpu.state = STATE_RUNNING
	cpu.waitReg = 0
}

// Load copies a program image to PROGRAM_START.
func (cpu *Cpu) Load(image []byte) (err error) {
	if len(image) > MEMORY_SIZE-PROGRAM_START {
		err = errors.Join(ErrProgramTooLarge, ErrOutOfBounds)
		return
	}

	return cpu.Memory.Write(PROGRAM_START, image)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %03X\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 5s: %03X\n", "i", cpu.I)
	for n, val := range cpu.Register {
		text += fmt.Sprintf("% 5s: %02X\n", fmt.Sprintf("v%x", n), val)
	}
	if val, ok := cpu.Stack.Peek(); ok {
		text += fmt.Sprintf("% 5s: %03X (%d)\n", "stack", val, cpu.Stack.Depth())
	} else {
		text += fmt.Sprintf("% 5s: ---\n", "stack")
	}
	text += fmt.Sprintf("% 5s: %v\n", "state", cpu.state)

	return
}

// Step runs a single execution step.
//
// When running, the instruction at the program counter is executed.
// When waiting for a key, the keyboard is polled; the program counter only
// advances once a key-down event has been delivered.
func (cpu *Cpu) Step() (err error) {
	if cpu.state == STATE_WAITING_FOR_KEY {
		key, ok := cpu.Keyboard.KeyDown()
		if !ok {
			return
		}
		if cpu.Verbose {
			log.Printf("%03x: key %x -> v%x", cpu.Pc, key, cpu.waitReg)
		}
		cpu.Register.Set(cpu.waitReg, int(key))
		cpu.state = STATE_RUNNING
		cpu.Pc += 2
		return
	}

	code, err := cpu.Memory.FetchCode(cpu.Pc)
	if err != nil {
		return
	}

	return cpu.Execute(code)
}

// Execute executes a single instruction as if fetched from the program counter.
// On error the CPU state is left as it was before the instruction.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()
	if cpu.Verbose {
		log.Printf("%03x: %v", cpu.Pc, code)
	}

	op, ok := code.Decode()
	if !ok {
		err = ErrUnknownOpcode
		return
	}

	cpu.nextPc = cpu.Pc + 2

	err = opHandler[op](cpu, code)
	if err != nil {
		return
	}

	cpu.Pc = cpu.nextPc
	cpu.Ticks++

	return
}

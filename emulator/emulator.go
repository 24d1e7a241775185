// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"fmt"
	"iter"
	"log"
	"maps"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/internal"
	"github.com/ezrec/chip8/io"
)

const (
	DEFAULT_HZ = 1000 // Default instructions executed per second.
)

var _emulator_defines = map[string]string{
	"DEFAULT_HZ": fmt.Sprintf("%v", DEFAULT_HZ),
}

// Emulator state. CPU + display, keypad and timers.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.
	Hz       int          // Instructions executed per second by Run.

	Display io.Display // Framebuffer.
	Keypad  io.Keypad  // Logical keypad.
	Timers  io.Timers  // Delay and sound timers.
	Rom     io.Rom     // Program image loaded on Reset.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program: &cpu.Program{},
		Hz:      DEFAULT_HZ,
	}

	emu.Cpu = cpu.NewCpu(&emu.Display, &emu.Keypad, &emu.Timers)

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Display.Defines(),
		emu.Timers.Defines(),
	)
}

// Reset the machine and load the program image.
// An assembled Program takes precedence over the Rom contents.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = false

	if emu.Program != nil && len(emu.Program.Opcodes) != 0 {
		emu.Rom.Data = emu.Program.Binary()
	}

	emu.Cpu.Reset()
	emu.Display.Clear()
	emu.Keypad.Reset()
	emu.Timers.Reset()

	err = emu.Cpu.Load(emu.Rom.Data)
	if err != nil {
		return
	}

	emu.Cpu.Verbose = emu.Verbose

	return
}

// Ticks returns the total instructions executed since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Code returns the instruction at the program counter.
func (emu *Emulator) Code() cpu.Code {
	code, _ := emu.Cpu.Memory.FetchCode(emu.Cpu.Pc)
	return code
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.Opcode.LineNo
}

// Sounding returns true while the sound timer is running.
func (emu *Emulator) Sounding() bool {
	return emu.Timers.Read(io.TIMER_SOUND) > 0
}

// Tick performs a single step of the emulator.
func (emu *Emulator) Tick() (err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Step()

	return
}

// Run executes the program at Hz steps per second while the timers
// decrement at 60 Hz, until the context is done or a step faults.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	hz := emu.Hz
	if hz <= 0 {
		hz = DEFAULT_HZ
	}

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return emu.Timers.Run(ctx)
	})

	group.Go(func() error {
		ticker := time.NewTicker(time.Second / time.Duration(hz))
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				err := emu.Tick()
				if err != nil {
					if emu.Verbose {
						log.Printf("emulator: %v", err)
					}
					return err
				}
			}
		}
	})

	return group.Wait()
}

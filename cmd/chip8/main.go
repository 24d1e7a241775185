// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	stdio "io"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/emulator"
	"github.com/ezrec/chip8/frontend"
	"github.com/ezrec/chip8/internal"
	"github.com/ezrec/chip8/translate"
)

// listing writes the disassembly of the loaded image.
func listing(w stdio.Writer, emu *emulator.Emulator) {
	if len(emu.Program.Opcodes) != 0 {
		for _, op := range emu.Program.Opcodes {
			text := strings.Join(op.Words, " ")
			if !op.Data {
				text = cpu.Code(uint16(op.Bytes[0])<<8 | uint16(op.Bytes[1])).String()
			}
			fmt.Fprintf(w, "%03x: % x\t%-24s ; line %d\n", op.Pc, op.Bytes, text, op.LineNo)
		}
		return
	}

	image := emu.Rom.Data
	for n := 0; n+1 < len(image); n += 2 {
		code := cpu.Code(uint16(image[n])<<8 | uint16(image[n+1]))
		fmt.Fprintf(w, "%03x: %04x\t%v\n", cpu.PROGRAM_START+n, uint16(code), code)
	}
}

// quitting returns true for errors that end a run normally.
func quitting(err error) bool {
	return err == nil || errors.Is(err, frontend.ErrQuit) || errors.Is(err, context.Canceled)
}

func main() {
	var compile string
	var rom string
	var save bool
	var output string
	var list bool
	var hz int
	var scale int
	var terminal bool
	var seed uint64
	var verbose bool
	var lang string

	flag.StringVar(&compile, "c", "", ".c8s file to assemble")
	flag.StringVar(&rom, "r", "", "ROM image to load")
	flag.BoolVar(&save, "s", false, "Save the assembled image, do not execute")
	flag.StringVar(&output, "o", "-", "Saved image output")
	flag.BoolVar(&list, "l", false, "Print a listing, do not execute")
	flag.IntVar(&hz, "hz", emulator.DEFAULT_HZ, "Instructions per second")
	flag.IntVar(&scale, "scale", frontend.DEFAULT_SCALE, "Window scale factor")
	flag.BoolVar(&terminal, "t", frontend.HEADLESS, "Use the terminal instead of a window")
	flag.Uint64Var(&seed, "seed", 0, "Random number seed, 0 for a random seed")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&lang, "lang", "", "Message language, default from the host locale")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if err := translate.SetLanguage(lang); err != nil {
		log.Fatalf("-lang %v: %v", lang, err)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Hz = hz
	if seed != 0 {
		emu.Cpu.Rand = rand.New(rand.NewPCG(seed, seed))
	}

	// Load a ROM image.
	if len(rom) != 0 {
		inf, err := os.Open(rom)
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}
		defer inf.Close()

		_, err = emu.Rom.ReadFrom(inf)
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}
	}

	// Assemble a new program.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range internal.IterSeq2Sorted(emu.Defines()) {
			if verbose {
				log.Printf(".equ %v %v", key, value)
			}
			asm.Predefine(key, value)
		}
		emu.Program, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	if list {
		listing(os.Stdout, emu)
		return
	}

	if save {
		image := emu.Program.Binary()
		if output == "-" {
			_, err := os.Stdout.Write(image)
			if err != nil {
				log.Fatalf("%v: %v", output, err)
			}
			return
		}
		err := os.WriteFile(output, image, 0o644)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	if emu.Rom.Size() == 0 {
		log.Fatalf("%v: no program, use -c or -r", os.Args[0])
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return emu.Run(gctx)
	})

	if terminal {
		tm := &frontend.Terminal{
			Display: &emu.Display,
			Keypad:  &emu.Keypad,
			Input:   os.Stdin,
			Output:  os.Stdout,
		}
		group.Go(func() error {
			return tm.Run(gctx)
		})
		err = group.Wait()
	} else {
		beeper := &frontend.Beeper{Tone: frontend.Tone{Timers: &emu.Timers}}
		group.Go(func() error {
			return beeper.Run(gctx)
		})
		win := &frontend.Window{
			Display: &emu.Display,
			Keypad:  &emu.Keypad,
			Title:   "chip8",
			Scale:   scale,
		}
		err = win.Run(gctx)
		cancel()
		err = errors.Join(err, group.Wait())
	}

	if verbose {
		log.Printf("ticks: %v\n%v", emu.Ticks(), emu.Cpu.String())
	}

	for _, each := range unjoin(err) {
		if !quitting(each) {
			log.Fatal(each)
		}
	}
}

// unjoin splits a joined error into its parts.
func unjoin(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

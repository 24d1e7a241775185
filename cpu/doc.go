// Package cpu implements the interpreter and assembler for the CHIP-8 machine.
//
// The CPU consists of a program counter (PC), sixteen 8-bit general-purpose
// registers (v0-vf, with vf doubling as the carry, borrow and collision
// flag), a 12-bit index register (I), a sixteen entry return stack and
// 4096 bytes of memory. Framebuffer, keypad and timers are peripherals,
// attached through the Display, Keyboard and TimerBank interfaces.
//
// Execution alternates between two states: STATE_RUNNING, where every
// Step fetches, decodes and dispatches one instruction, and
// STATE_WAITING_FOR_KEY, entered by `ld vx, k`, where every Step polls
// the keyboard until a key-down event arrives.
//
// The assembler provides the Cowgod mnemonic syntax for the instruction
// set, supporting macros, labels, equates, data directives and
// compile-time expression evaluation.
package cpu

// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// labelPattern matches words that may name a jump label.
var labelPattern = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*$`)

// Assembler is a single pass macro assembler for CHIP-8 programs.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	Label     map[string]uint16   // Map of jump labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	expansions int // Count of macro expansions, for local labels.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// splitWords splits a line on whitespace and commas.
func splitWords(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	if len(word) == 0 {
		err = ErrOpcodeValueMissing
		return
	}
	if word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(strings.Trim(word, "'"))
		return
	}
	v64, err := strconv.ParseInt(word, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)

	return
}

// regOf returns the index of a v0..vf register name.
func regOf(word string) (reg int, ok bool) {
	if len(word) != 2 || (word[0] != 'v' && word[0] != 'V') {
		return
	}
	n, err := strconv.ParseUint(word[1:], 16, 8)
	if err != nil {
		return
	}

	reg = int(n)
	ok = true
	return
}

// register returns the index of a register operand.
func (asm *Assembler) register(word string) (reg int, err error) {
	reg, ok := regOf(word)
	if !ok {
		err = ErrRegisterInvalid
	}
	return
}

// immediate returns a value that fits in the given number of bits.
// Negative values are encoded as two's complement.
func (asm *Assembler) immediate(word string, bits int) (value int, err error) {
	if _, ok := regOf(word); ok {
		err = ErrOpcodeInvalid
		return
	}
	value, err = asm.valueOf(word)
	if err != nil {
		return
	}

	limit := 1 << bits
	if value < -(limit/2) || value >= limit {
		err = ErrValueRange
		return
	}
	value &= limit - 1

	return
}

// address returns a 12-bit address, or the name of the label to link.
func (asm *Assembler) address(word string) (value int, label string, err error) {
	value, err = asm.immediate(word, 12)
	var not_number ErrParseNumber
	if errors.As(err, &not_number) && labelPattern.MatchString(word) {
		label = word
		value = 0
		err = nil
	}
	return
}

// parentEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v int
		v, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt(v)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 > 0x7fffffff || st_int64 < -0x80000000 {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// parseLine parses a single line into words, handling equates,
// labels and macro expansion.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	words = splitWords(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]uint16, 16)
		}
		asm.Label[label] = asm.currentPc()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = args[n]
		}
		defer func() { asm.Equate = old_equate }()

		// Local labels are unique to each expansion.
		asm.expansions++
		local := fmt.Sprintf("%v_%v_", name, asm.expansions)

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", local)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// currentPc gets the address of the next emitted byte.
func (asm *Assembler) currentPc() uint16 {
	if len(asm.Opcode) == 0 {
		return PROGRAM_START
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Pc + uint16(len(last.Bytes))
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.expansions = 0
	asm.Opcode = asm.Opcode[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	maps.Copy(asm.Equate, _cpu_defines)
	maps.Copy(asm.Equate, asm.predefine)

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := splitWords(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of jump labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		label := op.LinkLabel
		pc, ok := asm.Label[label]
		if !ok {
			lineno = op.LineNo
			line = strings.Join(op.Words, " ")
			err = ErrLabelMissing(label)
			return
		}
		op.Bytes[0] |= byte(pc>>8) & 0xf
		op.Bytes[1] |= byte(pc)
	}

	prog = &Program{
		Opcodes: append([]Opcode(nil), asm.Opcode...),
	}

	return
}

// argCount checks the number of operands.
// A negative most means any number of operands.
func argCount(args []string, least, most int) (err error) {
	switch {
	case len(args) < least:
		err = ErrOpcodeValueMissing
	case most >= 0 && len(args) > most:
		err = ErrOpcodeExtraArgs
	}
	return
}

// aluMap maps register-register ALU mnemonics.
var aluMap = map[string]CodeOp{
	"or":   OP_OR,
	"and":  OP_AND,
	"xor":  OP_XOR,
	"sub":  OP_SUB,
	"subn": OP_SUBN,
	"shr":  OP_SHR,
	"shl":  OP_SHL,
}

// ldMap maps `ld <special>, vx` destinations.
var ldMap = map[string]CodeOp{
	"dt":  OP_LD_DT_VX,
	"st":  OP_LD_ST_VX,
	"f":   OP_LD_F,
	"b":   OP_LD_B,
	"[i]": OP_LD_STORE,
}

// ldFromMap maps `ld vx, <special>` sources.
var ldFromMap = map[string]CodeOp{
	"dt":  OP_LD_VX_DT,
	"k":   OP_LD_VX_K,
	"[i]": OP_LD_LOAD,
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var bytes []byte
	var label string
	var data bool

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if err != nil || len(bytes) == 0 {
			return
		}
		pc := asm.currentPc()
		if int(pc)+len(bytes) > MEMORY_SIZE {
			err = ErrProgramTooLarge
			return
		}
		opcode := Opcode{LineNo: lineno, Pc: pc, Words: initial_words, Bytes: bytes, LinkLabel: label, Data: data}
		asm.Opcode = append(asm.Opcode, opcode)
	}()

	emit := func(op CodeOp, x, y, imm int) {
		code := MakeCode(op, x, y, imm)
		bytes = append(bytes, byte(code>>8), byte(code))
	}

	mnemonic := strings.ToLower(words[0])
	args := words[1:]
	keys := make([]string, len(args))
	for n, arg := range args {
		keys[n] = strings.ToLower(arg)
	}

	var x, y, imm int

	switch mnemonic {
	case "cls", "ret":
		if err = argCount(args, 0, 0); err != nil {
			return
		}
		op := OP_CLS
		if mnemonic == "ret" {
			op = OP_RET
		}
		emit(op, 0, 0, 0)
	case "sys", "call":
		if err = argCount(args, 1, 1); err != nil {
			return
		}
		imm, label, err = asm.address(args[0])
		if err != nil {
			return
		}
		op := OP_SYS
		if mnemonic == "call" {
			op = OP_CALL
		}
		emit(op, 0, 0, imm)
	case "jp":
		if err = argCount(args, 1, 2); err != nil {
			return
		}
		op := OP_JP
		if len(args) == 2 {
			if keys[0] != "v0" {
				err = ErrRegisterInvalid
				return
			}
			op = OP_JP_V0
			args = args[1:]
		}
		imm, label, err = asm.address(args[0])
		if err != nil {
			return
		}
		emit(op, 0, 0, imm)
	case "se", "sne":
		if err = argCount(args, 2, 2); err != nil {
			return
		}
		x, err = asm.register(args[0])
		if err != nil {
			return
		}
		if reg, ok := regOf(args[1]); ok {
			op := OP_SE_REG
			if mnemonic == "sne" {
				op = OP_SNE_REG
			}
			emit(op, x, reg, 0)
			break
		}
		imm, err = asm.immediate(args[1], 8)
		if err != nil {
			return
		}
		op := OP_SE_IMM
		if mnemonic == "sne" {
			op = OP_SNE_IMM
		}
		emit(op, x, 0, imm)
	case "ld":
		if err = argCount(args, 2, 2); err != nil {
			return
		}
		if keys[0] == "i" {
			imm, label, err = asm.address(args[1])
			if err != nil {
				return
			}
			emit(OP_LD_I, 0, 0, imm)
			break
		}
		if op, ok := ldMap[keys[0]]; ok {
			x, err = asm.register(args[1])
			if err != nil {
				return
			}
			emit(op, x, 0, 0)
			break
		}
		x, err = asm.register(args[0])
		if err != nil {
			return
		}
		if op, ok := ldFromMap[keys[1]]; ok {
			emit(op, x, 0, 0)
			break
		}
		if reg, ok := regOf(args[1]); ok {
			emit(OP_LD_REG, x, reg, 0)
			break
		}
		imm, err = asm.immediate(args[1], 8)
		if err != nil {
			return
		}
		emit(OP_LD_IMM, x, 0, imm)
	case "add":
		if err = argCount(args, 2, 2); err != nil {
			return
		}
		if keys[0] == "i" {
			x, err = asm.register(args[1])
			if err != nil {
				return
			}
			emit(OP_ADD_I, x, 0, 0)
			break
		}
		x, err = asm.register(args[0])
		if err != nil {
			return
		}
		if reg, ok := regOf(args[1]); ok {
			emit(OP_ADD_REG, x, reg, 0)
			break
		}
		imm, err = asm.immediate(args[1], 8)
		if err != nil {
			return
		}
		emit(OP_ADD_IMM, x, 0, imm)
	case "or", "and", "xor", "sub", "subn", "shr", "shl":
		least := 2
		if mnemonic == "shr" || mnemonic == "shl" {
			least = 1
		}
		if err = argCount(args, least, 2); err != nil {
			return
		}
		x, err = asm.register(args[0])
		if err != nil {
			return
		}
		if len(args) > 1 {
			y, err = asm.register(args[1])
			if err != nil {
				return
			}
		}
		emit(aluMap[mnemonic], x, y, 0)
	case "rnd":
		if err = argCount(args, 2, 2); err != nil {
			return
		}
		x, err = asm.register(args[0])
		if err != nil {
			return
		}
		imm, err = asm.immediate(args[1], 8)
		if err != nil {
			return
		}
		emit(OP_RND, x, 0, imm)
	case "drw":
		if err = argCount(args, 3, 3); err != nil {
			return
		}
		x, err = asm.register(args[0])
		if err != nil {
			return
		}
		y, err = asm.register(args[1])
		if err != nil {
			return
		}
		imm, err = asm.immediate(args[2], 4)
		if err != nil {
			return
		}
		emit(OP_DRW, x, y, imm)
	case "skp", "sknp":
		if err = argCount(args, 1, 1); err != nil {
			return
		}
		x, err = asm.register(args[0])
		if err != nil {
			return
		}
		op := OP_SKP
		if mnemonic == "sknp" {
			op = OP_SKNP
		}
		emit(op, x, 0, 0)
	case ".byte", ".word":
		if err = argCount(args, 1, -1); err != nil {
			return
		}
		data = true
		for _, arg := range args {
			if mnemonic == ".byte" {
				imm, err = asm.immediate(arg, 8)
				if err != nil {
					return
				}
				bytes = append(bytes, byte(imm))
			} else {
				imm, err = asm.immediate(arg, 16)
				if err != nil {
					return
				}
				bytes = append(bytes, byte(imm>>8), byte(imm))
			}
		}
	default:
		err = ErrInstructionInvalid
		return
	}

	return
}

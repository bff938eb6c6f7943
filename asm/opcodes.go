package asm

// Opcode identifies one of the 16 machine instructions.
type Opcode int

const (
	OpMOV Opcode = iota
	OpCMP
	OpADD
	OpSUB
	OpLEA
	OpCLR
	OpNOT
	OpINC
	OpDEC
	OpJMP
	OpBNE
	OpJSR
	OpRED
	OpPRN
	OpRTS
	OpSTOP
)

// Arity classifies how many operands an opcode takes.
type Arity int

const (
	ArityTwo  Arity = 2
	ArityOne  Arity = 1
	ArityZero Arity = 0
)

// Mode is one of the four addressing modes.
type Mode int

const (
	ModeImmediate Mode = iota
	ModeDirect
	ModeMatrix
	ModeRegister
)

type opcodeInfo struct {
	op          Opcode
	arity       Arity
	srcModes    map[Mode]bool
	destModes   map[Mode]bool
}

func modeSet(modes ...Mode) map[Mode]bool {
	m := make(map[Mode]bool, len(modes))
	for _, mode := range modes {
		m[mode] = true
	}
	return m
}

var allFour = modeSet(ModeImmediate, ModeDirect, ModeMatrix, ModeRegister)
var directMatrixRegister = modeSet(ModeDirect, ModeMatrix, ModeRegister)
var directMatrix = modeSet(ModeDirect, ModeMatrix)

var opcodeTable = map[string]opcodeInfo{
	"mov":  {OpMOV, ArityTwo, allFour, directMatrixRegister},
	"cmp":  {OpCMP, ArityTwo, allFour, allFour},
	"add":  {OpADD, ArityTwo, allFour, directMatrixRegister},
	"sub":  {OpSUB, ArityTwo, allFour, directMatrixRegister},
	"lea":  {OpLEA, ArityTwo, directMatrix, directMatrixRegister},
	"clr":  {OpCLR, ArityOne, nil, directMatrixRegister},
	"not":  {OpNOT, ArityOne, nil, directMatrixRegister},
	"inc":  {OpINC, ArityOne, nil, directMatrixRegister},
	"dec":  {OpDEC, ArityOne, nil, directMatrixRegister},
	"jmp":  {OpJMP, ArityOne, nil, directMatrixRegister},
	"bne":  {OpBNE, ArityOne, nil, directMatrixRegister},
	"jsr":  {OpJSR, ArityOne, nil, directMatrixRegister},
	"red":  {OpRED, ArityOne, nil, directMatrixRegister},
	"prn":  {OpPRN, ArityOne, nil, allFour},
	"rts":  {OpRTS, ArityZero, nil, nil},
	"stop": {OpSTOP, ArityZero, nil, nil},
}

func lookupOpcode(mnemonic string) (opcodeInfo, bool) {
	info, ok := opcodeTable[mnemonic]
	return info, ok
}

// directiveNames are the five directive keywords, without their leading dot.
var directiveNames = map[string]bool{
	"data":   true,
	"string": true,
	"mat":    true,
	"entry":  true,
	"extern": true,
}

// macroKeywords are the two macro grammar keywords.
var macroKeywords = map[string]bool{
	"mcro":    true,
	"mcroend": true,
}

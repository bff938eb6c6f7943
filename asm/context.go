package asm

// Word is a 10-bit machine word; only the low 10 bits are meaningful.
type Word uint16

const wordMask = 0x3FF

// Origin is the fixed absolute start address for every emitted word.
const Origin = 100

// DefaultMemoryBudget is the maximum IC+DC word count, overridable via
// config.Config.MemoryBudget.
const DefaultMemoryBudget = 156

// Fixup records that the word at InstrIndex must be patched in pass two
// with the resolved address of Label.
type Fixup struct {
	Label      string
	InstrIndex int
	Line       int
}

// Context is the explicit per-file assembly state (SPEC_FULL.md section 9):
// no package-level counters or flags, everything lives here and is
// discarded when the file finishes.
type Context struct {
	Filename string
	Budget   int
	Macros   *MacroTable

	InstrImage []Word
	DataImage  []Word
	Symbols    *SymbolTable
	Fixups     []Fixup

	Errors List
	Fatal  error

	wasReg      bool
	wasRegIndex int
}

func NewContext(filename string, budget int, macros *MacroTable) *Context {
	if budget <= 0 {
		budget = DefaultMemoryBudget
	}
	return &Context{
		Filename: filename,
		Budget:   budget,
		Macros:   macros,
		Symbols:  NewSymbolTable(),
	}
}

func (c *Context) HasErrors() bool { return c.Errors.HasErrors() }

func (c *Context) errf(line int, kind Kind, format string, args ...any) {
	c.Errors.Addf(Position{c.Filename, line}, kind, format, args...)
}

// checkBudget enforces the 156-word (or overridden) memory budget, latching
// c.Fatal when exceeded so callers can stop processing the file.
func (c *Context) checkBudget() {
	if c.Fatal != nil {
		return
	}
	if len(c.InstrImage)+len(c.DataImage) > c.Budget {
		c.Fatal = &Fatal{Err: &Error{
			Pos:     Position{c.Filename, 0},
			Kind:    KindMemoryBudget,
			Message: "memory budget exceeded",
		}}
	}
}

// pushInstr appends a word to the instruction image and returns its index.
// Check c.Fatal afterward; once set, the caller must stop emitting words.
func (c *Context) pushInstr(w Word) int {
	idx := len(c.InstrImage)
	c.InstrImage = append(c.InstrImage, w)
	c.checkBudget()
	return idx
}

func (c *Context) pushData(w Word) {
	c.DataImage = append(c.DataImage, w)
	c.checkBudget()
}

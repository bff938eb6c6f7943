package asm

// Section tags where a symbol's offset is measured from.
type Section int

const (
	SectionUnresolved Section = iota
	SectionData
	SectionIns
)

// Linkage tags whether a symbol is purely local, exported, or imported.
type Linkage int

const (
	LinkageRegular Linkage = iota
	LinkageEntry
	LinkageExternal
)

// Symbol is a named entry in the symbol table. Offset's meaning depends on
// Section/Linkage, per the data model in SPEC_FULL.md section 3.
type Symbol struct {
	Name    string
	Section Section
	Linkage Linkage
	Offset  int
}

// SymbolTable owns every symbol encountered while assembling one file.
// Grounded on parser/symbols.go's SymbolTable, trimmed to this grammar's
// section/linkage model (no ARM relocation types, no numeric labels).
type SymbolTable struct {
	byName map[string]*Symbol
	order  []string
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{byName: make(map[string]*Symbol)}
}

func (t *SymbolTable) Lookup(name string) *Symbol {
	return t.byName[name]
}

// DeclareUnresolved inserts a forward-declared `.entry` placeholder. line is
// stashed in Offset for later diagnostics. If name already exists, the
// existing symbol is returned unchanged (caller decides how to report it).
func (t *SymbolTable) DeclareUnresolved(name string, line int) *Symbol {
	if sym, ok := t.byName[name]; ok {
		return sym
	}
	sym := &Symbol{Name: name, Section: SectionUnresolved, Linkage: LinkageEntry, Offset: line}
	t.byName[name] = sym
	t.order = append(t.order, name)
	return sym
}

// Define binds name to a concrete section/offset. If an UNRESOLVED
// placeholder already exists for name (forward `.entry`), it is reconciled
// in place and its linkage becomes ENTRY. Returns an error string on
// duplicate definition, or "" on success.
func (t *SymbolTable) Define(name string, section Section, offset int) string {
	if existing, ok := t.byName[name]; ok {
		if existing.Section == SectionUnresolved {
			existing.Section = section
			existing.Offset = offset
			existing.Linkage = LinkageEntry
			return ""
		}
		return "duplicate symbol definition: " + name
	}
	t.byName[name] = &Symbol{Name: name, Section: section, Linkage: LinkageRegular, Offset: offset}
	t.order = append(t.order, name)
	return ""
}

// DefineExternal inserts name as an imported symbol, rejecting a name
// already defined internally (regular or entry linkage).
func (t *SymbolTable) DefineExternal(name string) string {
	if existing, ok := t.byName[name]; ok {
		if existing.Linkage == LinkageExternal {
			return ""
		}
		return "cannot declare already-defined symbol external: " + name
	}
	t.byName[name] = &Symbol{Name: name, Section: SectionIns, Linkage: LinkageExternal, Offset: 0}
	t.order = append(t.order, name)
	return ""
}

// MarkEntry sets linkage to ENTRY for an existing symbol, or inserts an
// UNRESOLVED placeholder (storing line for diagnostics) if name is unknown.
// Rejects a name already marked EXTERNAL.
func (t *SymbolTable) MarkEntry(name string, line int) string {
	if existing, ok := t.byName[name]; ok {
		if existing.Linkage == LinkageExternal {
			return "cannot mark external symbol as entry: " + name
		}
		existing.Linkage = LinkageEntry
		return ""
	}
	t.DeclareUnresolved(name, line)
	return ""
}

// Unresolved returns every symbol still in SectionUnresolved, in
// declaration order, for the end-of-pass-one diagnostic sweep.
func (t *SymbolTable) Unresolved() []*Symbol {
	var out []*Symbol
	for _, name := range t.order {
		if sym := t.byName[name]; sym.Section == SectionUnresolved {
			out = append(out, sym)
		}
	}
	return out
}

// Entries returns every ENTRY-linkage symbol, sorted by name.
func (t *SymbolTable) Entries() []*Symbol {
	var out []*Symbol
	for _, name := range t.order {
		if sym := t.byName[name]; sym.Linkage == LinkageEntry {
			out = append(out, sym)
		}
	}
	sortSymbolsByName(out)
	return out
}

// All returns every symbol in the table, sorted by name, for diagnostic
// dumps (-dump-symbols).
func (t *SymbolTable) All() []*Symbol {
	var out []*Symbol
	for _, name := range t.order {
		out = append(out, t.byName[name])
	}
	sortSymbolsByName(out)
	return out
}

func sortSymbolsByName(syms []*Symbol) {
	for i := 1; i < len(syms); i++ {
		for j := i; j > 0 && syms[j-1].Name > syms[j].Name; j-- {
			syms[j-1], syms[j] = syms[j], syms[j-1]
		}
	}
}

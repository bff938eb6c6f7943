package asm

import "fmt"

// Artifact is the in-memory result of the second pass: everything needed
// to write B.ob, B.ent, and B.ext, or nothing at all if c.HasErrors().
type Artifact struct {
	Header    string
	Body      []string // one "ADDR\tWORD" line per word, in address order
	Entries   []string // one "label address" line per ENTRY symbol
	Externals []string // one "label address" line per external use site
}

// SecondPass runs SPEC_FULL.md section 4.4. It always runs, even if the
// first pass already flagged errors, so that it can surface additional
// diagnostics (e.g. a second undefined label); the caller must discard the
// returned Artifact when c.HasErrors() is true after this returns.
func SecondPass(c *Context) *Artifact {
	ic := len(c.InstrImage)

	for _, fx := range c.Fixups {
		sym := c.Symbols.Lookup(fx.Label)
		if sym == nil || sym.Section == SectionUnresolved {
			c.errf(fx.Line, KindUndefined, "undefined symbol: %s", fx.Label)
			continue
		}
		addr := Origin + fx.InstrIndex
		if sym.Linkage == LinkageExternal {
			c.InstrImage[fx.InstrIndex] = 1 // A/R/E = E(1), value bits 0
			continue
		}

		var base int
		switch sym.Section {
		case SectionIns:
			base = Origin + sym.Offset
		case SectionData:
			base = Origin + ic + sym.Offset
		}
		if base < 0 || base > 0xFF {
			c.errf(fx.Line, KindOverflow, "address overflow resolving %s", fx.Label)
			continue
		}
		c.InstrImage[fx.InstrIndex] = Word((base&0xFF)<<2 | 0x2) // A/R/E = R(2)
		_ = addr
	}

	if c.HasErrors() {
		return nil
	}

	art := &Artifact{
		Header: fmt.Sprintf(" %s %s", ToBase4(ic, 4), ToBase4(len(c.DataImage), 4)),
	}

	for i, w := range c.InstrImage {
		art.Body = append(art.Body, fmt.Sprintf("%s\t%s", ToBase4(Origin+i, 4), ToBase4(int(w), 5)))
	}
	for j, w := range c.DataImage {
		art.Body = append(art.Body, fmt.Sprintf("%s\t%s", ToBase4(Origin+ic+j, 4), ToBase4(int(w), 5)))
	}

	for _, sym := range c.Symbols.Entries() {
		var addr int
		switch sym.Section {
		case SectionIns:
			addr = Origin + sym.Offset
		case SectionData:
			addr = Origin + ic + sym.Offset
		}
		art.Entries = append(art.Entries, fmt.Sprintf("%s %s", sym.Name, ToBase4(addr, 4)))
	}

	for _, fx := range c.Fixups {
		sym := c.Symbols.Lookup(fx.Label)
		if sym != nil && sym.Linkage == LinkageExternal {
			addr := Origin + fx.InstrIndex
			art.Externals = append(art.Externals, fmt.Sprintf("%s %s", fx.Label, ToBase4(addr, 4)))
		}
	}

	return art
}

package asm

import "strings"

// Result is everything the CLI driver needs to decide what to write to
// disk for one basename.
type Result struct {
	Expanded []string // the .am content, line by line; nil on preprocessor failure
	PreErr   *List    // non-nil (and non-empty) on preprocessor failure
	Context  *Context // nil if preprocessing failed
	Artifact *Artifact // nil unless assembly succeeded cleanly
}

// Assemble runs the macro preprocessor, first pass, and second pass over
// one file's raw source text. It is pure (no file I/O) so it can be
// exercised directly by tests; the CLI driver is responsible for turning
// the Result into B.am/B.ob/B.ent/B.ext.
func Assemble(filename, source string, budget int) *Result {
	lines := splitLines(source)

	expanded, macros, preErrs := ExpandMacros(filename, lines)
	if preErrs.HasErrors() {
		return &Result{PreErr: preErrs}
	}

	ctx := FirstPass(filename, expanded, budget, macros)
	res := &Result{Expanded: expanded, Context: ctx}
	if ctx.Fatal != nil {
		return res
	}

	res.Artifact = SecondPass(ctx)
	return res
}

func splitLines(source string) []string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	if source == "" {
		return nil
	}
	lines := strings.Split(source, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

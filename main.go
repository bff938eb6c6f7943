package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go20465/asm20465/asm"
	"github.com/go20465/asm20465/browser"
	"github.com/go20465/asm20465/config"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to TOML config file (default: platform config dir)")
		jobs        = flag.Int("jobs", 1, "Maximum number of files assembled in parallel")
		dumpSymbols = flag.Bool("dump-symbols", false, "Print the resolved symbol table for each assembled file")
		browseFlag  = flag.Bool("browse", false, "Launch the post-assembly browser once all files are processed")
		showHelp    = flag.Bool("help", false, "Show help information")
	)

	flag.Parse()

	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: asm20465 [options] <basename> [<basename> ...]")
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *dumpSymbols {
		cfg.DumpSymbols = true
	}

	workers := *jobs
	if workers < 1 {
		workers = 1
	}

	basenames := flag.Args()
	results := make([]*fileRun, len(basenames))

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, name := range basenames {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, name string) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = processFile(name, cfg)
		}(i, name)
	}
	wg.Wait()

	exitCode := 0
	for i, run := range results {
		printDiagnostics(run)
		if run.ioErr != nil || (run.res != nil && run.res.Context != nil && run.res.Context.Fatal != nil) {
			exitCode = 1
		}
		if cfg.DumpSymbols && run.res != nil && run.res.Context != nil && run.res.Artifact != nil {
			dumpSymbolTable(basenames[i], run.res.Context.Symbols, os.Stdout)
		}
	}

	if *browseFlag {
		if run := firstBrowsable(results); run != nil {
			b := browser.New(run.name, run.res.Context, run.res.Artifact)
			if err := b.Run(); err != nil {
				fmt.Fprintf(os.Stderr, "browser error: %v\n", err)
				exitCode = 1
			}
		} else {
			fmt.Fprintln(os.Stderr, "no successfully assembled file to browse")
		}
	}

	os.Exit(exitCode)
}

// fileRun is one basename's outcome, collected so diagnostics print in
// argument order even though assembly itself may run out of order.
type fileRun struct {
	name   string
	res    *asm.Result
	failed bool
	ioErr  error
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

func processFile(name string, cfg *config.Config) *fileRun {
	run := &fileRun{name: name}

	src, err := os.ReadFile(name + ".as") // #nosec G304 -- operator-supplied basename
	if err != nil {
		run.failed = true
		run.ioErr = err
		return run
	}

	budget := cfg.MemoryBudget
	res := asm.Assemble(name, string(src), budget)
	run.res = res

	if res.PreErr != nil {
		run.failed = true
		return run
	}

	outDir := cfg.OutputDir
	if err := writeFile(outDir, name+".am", strings.Join(res.Expanded, "\n")+"\n"); err != nil {
		run.failed = true
		run.ioErr = err
		return run
	}

	if res.Context.Fatal != nil || res.Context.HasErrors() || res.Artifact == nil {
		run.failed = true
		return run
	}

	art := res.Artifact
	// removeOutputs deletes this basename's object and listing files after
	// a failed write, so no partial set of artifacts is left behind.
	removeOutputs := func() {
		for _, ext := range []string{".ob", ".ent", ".ext"} {
			path := name + ext
			if outDir != "" {
				path = filepath.Join(outDir, filepath.Base(path))
			}
			_ = os.Remove(path)
		}
	}
	body := art.Header + "\n"
	for _, line := range art.Body {
		body += line + "\n"
	}
	if err := writeFile(outDir, name+".ob", body); err != nil {
		removeOutputs()
		run.failed = true
		run.ioErr = err
		return run
	}

	if cfg.WriteEntryListing && len(art.Entries) > 0 {
		if err := writeFile(outDir, name+".ent", strings.Join(art.Entries, "\n")+"\n"); err != nil {
			removeOutputs()
			run.failed = true
			run.ioErr = err
			return run
		}
	}
	if cfg.WriteExternalListing && len(art.Externals) > 0 {
		if err := writeFile(outDir, name+".ext", strings.Join(art.Externals, "\n")+"\n"); err != nil {
			removeOutputs()
			run.failed = true
			run.ioErr = err
			return run
		}
	}

	return run
}

func writeFile(outDir, name, content string) error {
	path := name
	if outDir != "" {
		path = filepath.Join(outDir, filepath.Base(name))
		if err := os.MkdirAll(outDir, 0750); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(content), 0644) // #nosec G306 -- assembler output, not a secret
}

func printDiagnostics(run *fileRun) {
	if run.ioErr != nil {
		fmt.Fprintf(os.Stderr, "File %s: %v\n", run.name, run.ioErr)
	}
	if run.res == nil {
		return
	}
	if run.res.PreErr != nil {
		for _, e := range run.res.PreErr.Errors {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return
	}
	ctx := run.res.Context
	if ctx == nil {
		return
	}
	for _, e := range ctx.Errors.Errors {
		fmt.Fprintln(os.Stderr, e.Error())
	}
	if ctx.Fatal != nil {
		fmt.Fprintf(os.Stderr, "File %s: %v\n", run.name, ctx.Fatal)
	}
}

func firstBrowsable(runs []*fileRun) *fileRun {
	for _, r := range runs {
		if r != nil && !r.failed && r.res != nil && r.res.Artifact != nil {
			return r
		}
	}
	return nil
}

// dumpSymbolTable prints the resolved symbol table sorted by name,
// grounded on the teacher's own symbol-dump layout.
func dumpSymbolTable(name string, st *asm.SymbolTable, w *os.File) {
	syms := st.All()
	fmt.Fprintf(w, "Symbol table for %s\n", name)
	fmt.Fprintln(w, "========================================")
	if len(syms) == 0 {
		fmt.Fprintln(w, "No symbols defined")
		return
	}
	fmt.Fprintf(w, "%-30s %-12s %-10s %s\n", "Name", "Section", "Linkage", "Offset")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	for _, sym := range syms {
		fmt.Fprintf(w, "%-30s %-12s %-10s %d\n", sym.Name, sectionName(sym.Section), linkageName(sym.Linkage), sym.Offset)
	}
	fmt.Fprintln(w)
}

func sectionName(s asm.Section) string {
	switch s {
	case asm.SectionData:
		return "DATA"
	case asm.SectionIns:
		return "INS"
	default:
		return "UNRESOLVED"
	}
}

func linkageName(l asm.Linkage) string {
	switch l {
	case asm.LinkageEntry:
		return "ENTRY"
	case asm.LinkageExternal:
		return "EXTERNAL"
	default:
		return "REGULAR"
	}
}

func printHelp() {
	fmt.Print(`asm20465 - two-pass assembler for the 20465 pedagogical machine

Usage: asm20465 [options] <basename> [<basename> ...]

Each basename names a source file BASENAME.as. On success the assembler
writes BASENAME.am (expanded macros), BASENAME.ob (object image), and
BASENAME.ent / BASENAME.ext when entry/external symbols exist.

Options:
  -config PATH       Load a TOML config file (default: platform config dir)
  -jobs N            Assemble up to N files in parallel (default: 1)
  -dump-symbols      Print the resolved symbol table for each assembled file
  -browse            Open the post-assembly browser after processing
  -help              Show this help message

Examples:
  asm20465 prog
  asm20465 -jobs 4 a b c d
  asm20465 -dump-symbols -browse prog
`)
}

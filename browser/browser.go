// Package browser is a read-only terminal viewer over a finished assembly:
// the resolved symbol table, instruction/data images, and entry/external
// listings. It is grounded on the teacher's debugger/tui.go, which drives
// the same gdamore/tcell+rivo/tview panel layout over a running VM; here
// the subject is a completed, static assembly rather than a live one, so
// there is no step/continue/breakpoint machinery, only navigation.
package browser

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/go20465/asm20465/asm"
)

// Browser renders one assembled file's final state.
type Browser struct {
	Filename string
	Context  *asm.Context
	Artifact *asm.Artifact

	app        *tview.Application
	pages      *tview.Pages
	symbolView *tview.TextView
	instrView  *tview.TextView
	dataView   *tview.TextView
	entryView  *tview.TextView
	externView *tview.TextView
	statusBar  *tview.TextView
}

// New builds a Browser over the result of a completed, successful
// assembly. Callers should only construct one when res.Artifact != nil.
func New(filename string, ctx *asm.Context, art *asm.Artifact) *Browser {
	b := &Browser{
		Filename: filename,
		Context:  ctx,
		Artifact: art,
		app:      tview.NewApplication(),
	}
	b.initializeViews()
	b.populate()
	b.buildLayout()
	return b
}

func (b *Browser) initializeViews() {
	b.symbolView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	b.symbolView.SetBorder(true).SetTitle(" Symbols ")

	b.instrView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	b.instrView.SetBorder(true).SetTitle(" Instruction image ")

	b.dataView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	b.dataView.SetBorder(true).SetTitle(" Data image ")

	b.entryView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	b.entryView.SetBorder(true).SetTitle(" Entries ")

	b.externView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	b.externView.SetBorder(true).SetTitle(" Externals ")

	b.statusBar = tview.NewTextView().SetDynamicColors(true)
	b.statusBar.SetText(fmt.Sprintf(" %s  —  q to quit, Tab to switch panels", b.Filename))
}

func (b *Browser) populate() {
	var symLines []string
	for _, sym := range b.Context.Symbols.All() {
		symLines = append(symLines, formatSymbol(sym))
	}
	b.symbolView.SetText(strings.Join(symLines, "\n"))

	var instrLines []string
	for i, w := range b.Context.InstrImage {
		instrLines = append(instrLines, fmt.Sprintf("%s  %s", asm.ToBase4(asm.Origin+i, 4), asm.ToBase4(int(w), 5)))
	}
	b.instrView.SetText(strings.Join(instrLines, "\n"))

	ic := len(b.Context.InstrImage)
	var dataLines []string
	for j, w := range b.Context.DataImage {
		dataLines = append(dataLines, fmt.Sprintf("%s  %s", asm.ToBase4(asm.Origin+ic+j, 4), asm.ToBase4(int(w), 5)))
	}
	b.dataView.SetText(strings.Join(dataLines, "\n"))

	if b.Artifact != nil {
		b.entryView.SetText(strings.Join(b.Artifact.Entries, "\n"))
		b.externView.SetText(strings.Join(b.Artifact.Externals, "\n"))
	}
}

func formatSymbol(sym *asm.Symbol) string {
	section := "DATA"
	if sym.Section == asm.SectionIns {
		section = "INS"
	}
	return fmt.Sprintf("%-30s %-5s offset=%d", sym.Name, section, sym.Offset)
}

func (b *Browser) buildLayout() {
	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(b.symbolView, 0, 1, false).
		AddItem(b.entryView, 0, 1, false).
		AddItem(b.externView, 0, 1, false)

	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(b.instrView, 0, 1, false).
		AddItem(b.dataView, 0, 1, false)

	main := tview.NewFlex().
		AddItem(left, 0, 1, false).
		AddItem(right, 0, 1, false)

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(main, 0, 1, false).
		AddItem(b.statusBar, 1, 0, false)

	b.pages = tview.NewPages().AddPage("main", root, true, true)

	panels := []tview.Primitive{b.symbolView, b.entryView, b.externView, b.instrView, b.dataView}
	focused := -1
	b.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyTab {
			focused = (focused + 1) % len(panels)
			b.app.SetFocus(panels[focused])
			return nil
		}
		if event.Rune() == 'q' {
			b.app.Stop()
			return nil
		}
		return event
	})
}

// Run starts the terminal UI event loop; it blocks until the user quits.
func (b *Browser) Run() error {
	return b.app.SetRoot(b.pages, true).Run()
}

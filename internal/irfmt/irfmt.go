// Package irfmt renders IR programs and expressions as indented,
// optionally colorized text, for --dump output and trace-adjacent
// debugging.
package irfmt

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/ZenVoich/motoko/internal/ir"
	"github.com/ZenVoich/motoko/internal/irtypes"
	"github.com/ZenVoich/motoko/internal/source"
)

// Printer renders IR trees against the names and types they reference.
type Printer struct {
	Types   *irtypes.Interner
	Strings *source.Interner
	Color   bool

	keyword *color.Color
	literal *color.Color
	typ     *color.Color
	dim     lipgloss.Style
}

// New returns a Printer with color disabled; set Color to enable it, or
// use NewAuto to detect a terminal automatically.
func New(types *irtypes.Interner, strings *source.Interner) *Printer {
	return &Printer{
		Types:   types,
		Strings: strings,
		keyword: color.New(color.FgCyan, color.Bold),
		literal: color.New(color.FgGreen),
		typ:     color.New(color.FgYellow),
		dim:     lipgloss.NewStyle().Faint(true),
	}
}

// NewAuto returns a Printer with Color set according to whether w is a
// terminal.
func NewAuto(types *irtypes.Interner, strings *source.Interner, w io.Writer) *Printer {
	p := New(types, strings)
	if f, ok := w.(*os.File); ok {
		p.Color = term.IsTerminal(int(f.Fd()))
	}
	return p
}

func (p *Printer) kw(s string) string {
	if !p.Color {
		return s
	}
	return p.keyword.Sprint(s)
}

func (p *Printer) lit(s string) string {
	if !p.Color {
		return s
	}
	return p.literal.Sprint(s)
}

func (p *Printer) ty(s string) string {
	if !p.Color {
		return s
	}
	return p.typ.Sprint(s)
}

func (p *Printer) faint(s string) string {
	if !p.Color {
		return s
	}
	return p.dim.Render(s)
}

func (p *Printer) name(id source.StringID) string {
	if p.Strings == nil {
		return fmt.Sprintf("$%d", id)
	}
	if s, ok := p.Strings.Lookup(id); ok {
		return s
	}
	return fmt.Sprintf("$%d", id)
}

func (p *Printer) typeName(id irtypes.TypeID) string {
	if p.Types == nil || id == irtypes.NoTypeID {
		return "?"
	}
	return p.ty(irtypes.Label(p.Types, id))
}

// FprintProgram writes a full program dump to w.
func (p *Printer) FprintProgram(w io.Writer, prog *ir.Program) {
	fmt.Fprintf(w, "%s has_await=%v has_show=%v serialized=%v\n", p.kw("program"), prog.Flavor.HasAwait, prog.Flavor.HasShow, prog.Flavor.Serialized)
	for gi, group := range prog.DeclGroups {
		fmt.Fprintf(w, "%s %d:\n", p.faint("group"), gi)
		for _, d := range group {
			p.fprintDecl(w, 1, d)
		}
	}
	for _, f := range prog.ActorFields {
		fmt.Fprintf(w, "%sfield %s =\n", p.indent(1), p.name(f.Label))
		p.fprintExpr(w, 2, f.Value)
	}
}

func (p *Printer) indent(depth int) string {
	return strings.Repeat("  ", depth)
}

func (p *Printer) pad(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func (p *Printer) fprintDecl(w io.Writer, depth int, d ir.Decl) {
	ind := p.indent(depth)
	switch data := d.Data.(type) {
	case ir.LetDeclData:
		fmt.Fprintf(w, "%s%s %s =\n", ind, p.kw("let"), p.pad(fmt.Sprintf("%v", data.Pattern.Data), 0))
		p.fprintExpr(w, depth+1, data.Init)
	case ir.VarDeclData:
		fmt.Fprintf(w, "%s%s %s : %s =\n", ind, p.kw("var"), p.name(data.Name), p.typeName(data.Type))
		p.fprintExpr(w, depth+1, data.Init)
	case ir.TypeDeclData:
		fmt.Fprintf(w, "%s%s con#%d\n", ind, p.kw("type"), data.Con)
	case ir.DeclareDeclData:
		fmt.Fprintf(w, "%s%s %s : %s\n", ind, p.kw("declare"), p.name(data.Name), p.typeName(data.Type))
	case ir.DefineDeclData:
		fmt.Fprintf(w, "%s%s %s =\n", ind, p.kw("define"), p.name(data.Name))
		if data.Init != nil {
			p.fprintExpr(w, depth+1, data.Init)
		}
	}
}

// FprintExpr writes a single expression dump to w.
func (p *Printer) FprintExpr(w io.Writer, e *ir.Expr) {
	p.fprintExpr(w, 0, e)
}

func (p *Printer) fprintExpr(w io.Writer, depth int, e *ir.Expr) {
	if e == nil {
		return
	}
	ind := p.indent(depth)
	head := fmt.Sprintf("%s%s : %s  %s", ind, p.kw(e.Kind.String()), p.typeName(e.Type), p.faint("eff="+effectName(e.Effect)))

	switch data := e.Data.(type) {
	case ir.LitData:
		fmt.Fprintf(w, "%s %s\n", head, p.lit(fmt.Sprintf("%+v", data.Value)))
	case ir.VarData:
		fmt.Fprintf(w, "%s %s\n", head, p.name(data.Name))
	case ir.PrimData:
		fmt.Fprintf(w, "%s %s\n", head, p.lit(data.Name))
	case ir.UnData:
		fmt.Fprintln(w, head)
		p.fprintExpr(w, depth+1, data.Operand)
	case ir.BinData:
		fmt.Fprintln(w, head)
		p.fprintExpr(w, depth+1, data.Left)
		p.fprintExpr(w, depth+1, data.Right)
	case ir.RelData:
		fmt.Fprintln(w, head)
		p.fprintExpr(w, depth+1, data.Left)
		p.fprintExpr(w, depth+1, data.Right)
	case ir.ShowData:
		fmt.Fprintln(w, head)
		p.fprintExpr(w, depth+1, data.Operand)
	case ir.TupData:
		fmt.Fprintln(w, head)
		for _, el := range data.Elems {
			p.fprintExpr(w, depth+1, el)
		}
	case ir.ProjData:
		fmt.Fprintf(w, "%s .%d\n", head, data.Index)
		p.fprintExpr(w, depth+1, data.Tuple)
	case ir.OptData:
		fmt.Fprintln(w, head)
		if data.Inner != nil {
			p.fprintExpr(w, depth+1, data.Inner)
		}
	case ir.TagData:
		fmt.Fprintf(w, "%s #%s\n", head, p.name(data.Name))
		if data.Inner != nil {
			p.fprintExpr(w, depth+1, data.Inner)
		}
	case ir.DotData:
		fmt.Fprintf(w, "%s .%s\n", head, p.name(data.Label))
		p.fprintExpr(w, depth+1, data.Object)
	case ir.ActorDotData:
		fmt.Fprintf(w, "%s .%s (actor)\n", head, p.name(data.Label))
		p.fprintExpr(w, depth+1, data.Object)
	case ir.ArrayData:
		fmt.Fprintf(w, "%s mut=%v\n", head, data.Mut)
		for _, el := range data.Elems {
			p.fprintExpr(w, depth+1, el)
		}
	case ir.IdxData:
		fmt.Fprintln(w, head)
		p.fprintExpr(w, depth+1, data.Array)
		p.fprintExpr(w, depth+1, data.Index)
	case ir.AssignData:
		fmt.Fprintln(w, head)
		p.fprintExpr(w, depth+1, data.Target)
		p.fprintExpr(w, depth+1, data.Source)
	case ir.FuncData:
		fmt.Fprintf(w, "%s %s\n", head, p.name(data.Name))
		p.fprintExpr(w, depth+1, data.Body)
	case ir.CallData:
		fmt.Fprintln(w, head)
		p.fprintExpr(w, depth+1, data.Func)
		p.fprintExpr(w, depth+1, data.Arg)
	case ir.BlockData:
		fmt.Fprintln(w, head)
		for _, d := range data.Decls {
			p.fprintDecl(w, depth+1, d)
		}
		p.fprintExpr(w, depth+1, data.Result)
	case ir.IfData:
		fmt.Fprintln(w, head)
		p.fprintExpr(w, depth+1, data.Cond)
		p.fprintExpr(w, depth+1, data.Then)
		p.fprintExpr(w, depth+1, data.Else)
	case ir.SwitchData:
		fmt.Fprintln(w, head)
		p.fprintExpr(w, depth+1, data.Scrutinee)
		for _, c := range data.Cases {
			fmt.Fprintf(w, "%s%s\n", p.indent(depth+1), p.faint(fmt.Sprintf("case %v", c.Pattern.Data)))
			p.fprintExpr(w, depth+2, c.Body)
		}
	case ir.LoopData:
		fmt.Fprintln(w, head)
		p.fprintExpr(w, depth+1, data.Body)
	case ir.LabelData:
		fmt.Fprintf(w, "%s %s\n", head, p.name(data.Label))
		p.fprintExpr(w, depth+1, data.Body)
	case ir.BreakData:
		fmt.Fprintf(w, "%s %s\n", head, p.name(data.Label))
		p.fprintExpr(w, depth+1, data.Arg)
	case ir.RetData:
		fmt.Fprintln(w, head)
		p.fprintExpr(w, depth+1, data.Arg)
	case ir.AsyncData:
		fmt.Fprintln(w, head)
		p.fprintExpr(w, depth+1, data.Body)
	case ir.AwaitData:
		fmt.Fprintln(w, head)
		p.fprintExpr(w, depth+1, data.Operand)
	case ir.AssertData:
		fmt.Fprintln(w, head)
		p.fprintExpr(w, depth+1, data.Cond)
	case ir.ActorData:
		fmt.Fprintln(w, head)
		for _, f := range data.Fields {
			fmt.Fprintf(w, "%s%s\n", p.indent(depth+1), p.name(f.Label))
			p.fprintExpr(w, depth+2, f.Value)
		}
	case ir.NewObjData:
		fmt.Fprintln(w, head)
		for _, f := range data.Fields {
			fmt.Fprintf(w, "%s%s\n", p.indent(depth+1), p.name(f.Label))
			p.fprintExpr(w, depth+2, f.Value)
		}
	default:
		fmt.Fprintln(w, head)
	}
}

func effectName(e irtypes.Effect) string {
	if e == irtypes.Await {
		return "await"
	}
	return "triv"
}

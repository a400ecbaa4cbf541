package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	scriptLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `-?[A-Za-z0-9_][A-Za-z0-9_:.\-]*`},
		{Name: "Symbol", Pattern: `;`},
	})

	scriptParser = participle.MustBuild[Script](
		participle.Lexer(scriptLexer),
		participle.Elide("Whitespace", "LineComment", "HashComment"),
	)
)

// Script is the root AST node of an edit script: one command per line
// (or separated by ';'), replayed in order against an editor.
type Script struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Commands []*Command     `parser:"( Newline | ';' )* ( @@ ( Newline | ';' )* )*"`
}

// Command is one edit action.
type Command struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Order  *OrderCmd      `parser:"  @@"`
	Move   *MoveCmd       `parser:"| @@"`
	Hide   *HideCmd       `parser:"| @@"`
	Show   *ShowCmd       `parser:"| @@"`
	Mode   *ModeCmd       `parser:"| @@"`
	Pages  *PagesCmd      `parser:"| @@"`
	Pin    *PinCmd        `parser:"| @@"`
	Text   *TextCmd       `parser:"| @@"`
	Fit    *FitCmd        `parser:"| @@"`
	Render *RenderCmd     `parser:"| @@"`
	Debug  *DebugCmd      `parser:"| @@"`
}

// Name returns the command keyword.
func (c *Command) Name() string {
	switch {
	case c == nil:
		return "unknown"
	case c.Order != nil:
		return "order"
	case c.Move != nil:
		return "move"
	case c.Hide != nil:
		return "hide"
	case c.Show != nil:
		return "show"
	case c.Mode != nil:
		return "mode"
	case c.Pages != nil:
		return "pages"
	case c.Pin != nil:
		return "pin"
	case c.Text != nil:
		return "text"
	case c.Fit != nil:
		return "fit"
	case c.Render != nil:
		return "render"
	case c.Debug != nil:
		return "debug"
	default:
		return "unknown"
	}
}

// OrderCmd: order <section>...
type OrderCmd struct {
	Sections []*SectionRef `parser:"'order' @@+"`
}

// IDs returns the listed section identities in order.
func (o *OrderCmd) IDs() []string {
	out := make([]string, len(o.Sections))
	for i, s := range o.Sections {
		out[i] = s.ID.String()
	}
	return out
}

// SectionRef wraps one section identity in a list.
type SectionRef struct {
	ID Ref `parser:"@(Ident | String)"`
}

// MoveCmd: move <section> up|down|to <n>（n 从 1 开始）
type MoveCmd struct {
	Section Ref  `parser:"'move' @(Ident | String)"`
	Up      bool `parser:"(  @'up'"`
	Down    bool `parser:" | @'down'"`
	To      *int `parser:" | 'to' @Ident )"`
}

// HideCmd: hide <section>
type HideCmd struct {
	Section Ref `parser:"'hide' @(Ident | String)"`
}

// ShowCmd: show <section>
type ShowCmd struct {
	Section Ref `parser:"'show' @(Ident | String)"`
}

// ModeCmd: mode auto|manual
type ModeCmd struct {
	Mode string `parser:"'mode' @('auto' | 'manual')"`
}

// Manual reports whether the command switches to manual mode.
func (m *ModeCmd) Manual() bool { return m.Mode == "manual" }

// PagesCmd: pages <n>
type PagesCmd struct {
	Count int `parser:"'pages' @Ident"`
}

// PinCmd: pin <section> <page>
type PinCmd struct {
	Section Ref `parser:"'pin' @(Ident | String)"`
	Page    int `parser:"@Ident"`
}

// TextCmd: text shrink|grow|reset|<percent>
type TextCmd struct {
	Shrink  bool `parser:"'text' (  @'shrink'"`
	Grow    bool `parser:"        | @'grow'"`
	Reset   bool `parser:"        | @'reset'"`
	Percent *int `parser:"        | @Ident )"`
}

// FitCmd: fit
type FitCmd struct {
	Fit bool `parser:"@'fit'"`
}

// RenderCmd: render "<path>"
type RenderCmd struct {
	Path StringLiteral `parser:"'render' @String"`
}

// DebugCmd: debug "<path>"
type DebugCmd struct {
	Path StringLiteral `parser:"'debug' @String"`
}

// Ref is a section identity written bare or as a quoted string.
type Ref string

// Capture implements participle.Capture.
func (r *Ref) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("section reference capture requires value")
	}
	val := values[0]
	if strings.HasPrefix(val, `"`) {
		unquoted, err := strconv.Unquote(val)
		if err != nil {
			return err
		}
		val = unquoted
	}
	*r = Ref(val)
	return nil
}

// String returns the section identity.
func (r Ref) String() string { return string(r) }

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses an edit script from an io.Reader.
func Parse(r io.Reader) (*Script, error) {
	return scriptParser.Parse("", r)
}

// ParseString parses an edit script from a string.
func ParseString(input string) (*Script, error) {
	return scriptParser.ParseString("", input)
}

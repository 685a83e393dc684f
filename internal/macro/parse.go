package macro

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/hashicorp/hcl/v2"
)

var surfaceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Escaped", Pattern: `\\.`},
	{Name: "Map", Pattern: `\$map\(`},
	{Name: "Reduce", Pattern: `\$reduce\(`},
	{Name: "Condition", Pattern: `\$\$\(`},
	{Name: "Equation", Pattern: `\$\(`},
	{Name: "Bracketed", Pattern: `@+\[`},
	{Name: "Reference", Pattern: `@+(?:[0-9]+|[A-Za-z_][A-Za-z0-9_]*)?[?!~]?`},
	{Name: "Open", Pattern: `\(`},
	{Name: "Close", Pattern: `\)`},
	{Name: "OpenBracket", Pattern: `\[`},
	{Name: "CloseBracket", Pattern: `\]`},
	{Name: "Text", Pattern: `[^\\$@()\[\]]+|[\\$]`},
})

var (
	symbols         = surfaceLexer.Symbols()
	tokEscaped      = symbols["Escaped"]
	tokMap          = symbols["Map"]
	tokReduce       = symbols["Reduce"]
	tokCondition    = symbols["Condition"]
	tokEquation     = symbols["Equation"]
	tokBracketed    = symbols["Bracketed"]
	tokReference    = symbols["Reference"]
	tokOpen         = symbols["Open"]
	tokClose        = symbols["Close"]
	tokOpenBracket  = symbols["OpenBracket"]
	tokCloseBracket = symbols["CloseBracket"]
	tokText         = symbols["Text"]
)

type frameKind int

const (
	frameEquation frameKind = iota
	frameCondition
	frameFilter
	frameIndirection
	frameParen
	frameBracket
)

func (k frameKind) String() string {
	switch k {
	case frameEquation:
		return "equation"
	case frameCondition:
		return "condition"
	case frameFilter:
		return "filter"
	case frameIndirection:
		return "indirection"
	case frameParen:
		return "parenthesis"
	default:
		return "bracket"
	}
}

type frame struct {
	kind  frameKind
	parts int
	pos   hcl.Pos
}

type parser struct {
	s      *EmbeddedString
	tokens []lexer.Token
	next   int
	frames []*frame
}

// Parse builds an EmbeddedString from authored macro text.
//
// Backslash before one of $ @ ( ) [ ] yields that character literally.
// Other backslash pairs are kept as written for the brace pass.
func Parse(text string, opts ...Option) (*EmbeddedString, error) {
	s := New(opts...)
	if text == "" {
		return s, nil
	}

	lex, err := surfaceLexer.LexString("", text)
	if err != nil {
		return nil, &SyntaxError{Pos: hcl.InitialPos, Message: err.Error()}
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, &SyntaxError{Pos: hcl.InitialPos, Message: err.Error()}
	}

	p := &parser{s: s, tokens: tokens}
	if err := p.run(); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *parser) run() error {
	for p.next < len(p.tokens) {
		tok := p.tokens[p.next]
		p.next++

		switch tok.Type {
		case lexer.EOF:
			return p.finish()
		case tokEscaped:
			if strings.ContainsAny(tok.Value[1:], "$@()[]") {
				p.s.AddText(tok.Value[1:])
			} else {
				p.s.AddText(tok.Value)
			}
		case tokEquation:
			p.s.Push(NodeEquation, p.equationDepth())
			p.open(frameEquation, tok)
		case tokCondition:
			p.s.Push(NodeCondition, 0).Push(NodeText, 0)
			p.open(frameCondition, tok).parts = 1
		case tokMap:
			p.s.Push(NodeMap, 0)
			p.open(frameFilter, tok)
		case tokReduce:
			p.s.Push(NodeReduce, 0)
			p.open(frameFilter, tok)
		case tokBracketed:
			p.s.Push(NodeIndirection, strings.Count(tok.Value, "@")-1)
			p.open(frameIndirection, tok)
		case tokReference:
			name := strings.TrimLeft(tok.Value, "@")
			depth := len(tok.Value) - len(name) - 1
			p.s.Push(NodeIndirection, depth).AddText(name).Pop()
		case tokOpen:
			p.s.AddText("(")
			if len(p.frames) > 0 {
				p.open(frameParen, tok)
			}
		case tokClose:
			p.closeParen()
		case tokOpenBracket:
			p.s.AddText("[")
			if len(p.frames) > 0 {
				p.open(frameBracket, tok)
			}
		case tokCloseBracket:
			p.closeBracket()
		case tokText:
			p.s.AddText(tok.Value)
		}
	}
	return p.finish()
}

func (p *parser) finish() error {
	if f := p.top(); f != nil {
		return &SyntaxError{Pos: f.pos, Message: "unterminated " + f.kind.String()}
	}
	return nil
}

func (p *parser) open(kind frameKind, tok lexer.Token) *frame {
	f := &frame{
		kind: kind,
		pos:  hcl.Pos{Line: tok.Pos.Line, Column: tok.Pos.Column, Byte: tok.Pos.Offset},
	}
	p.frames = append(p.frames, f)
	return f
}

func (p *parser) top() *frame {
	if len(p.frames) == 0 {
		return nil
	}
	return p.frames[len(p.frames)-1]
}

func (p *parser) drop() {
	p.frames = p.frames[:len(p.frames)-1]
}

func (p *parser) equationDepth() int {
	depth := 0
	for _, f := range p.frames {
		if f.kind == frameEquation {
			depth++
		}
	}
	return depth
}

func (p *parser) peek(typ lexer.TokenType) bool {
	return p.next < len(p.tokens) && p.tokens[p.next].Type == typ
}

func (p *parser) closeParen() {
	f := p.top()
	if f == nil || f.kind == frameIndirection || f.kind == frameBracket {
		p.s.AddText(")")
		return
	}

	switch f.kind {
	case frameParen:
		p.s.AddText(")")
		p.drop()
	case frameEquation, frameFilter:
		p.s.Pop()
		p.drop()
	case frameCondition:
		// Close the branch, then either open the next one or close the
		// condition itself.
		p.s.Pop()
		if f.parts < 3 && p.peek(tokOpen) {
			p.next++
			f.parts++
			p.s.Push(NodeText, 0)
			return
		}
		p.s.Pop()
		p.drop()
	}
}

func (p *parser) closeBracket() {
	f := p.top()
	switch {
	case f != nil && f.kind == frameIndirection:
		p.s.Pop()
		p.drop()
	case f != nil && f.kind == frameBracket:
		p.s.AddText("]")
		p.drop()
	default:
		p.s.AddText("]")
	}
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"io"
	"iter"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/mvm/memory"
)

// sourceLexer splits assembly source into line oriented tokens.
var sourceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `;[^\n]*`},
	{Name: "Newline", Pattern: `\n`},
	{Name: "Whitespace", Pattern: `[^\S\n]+`},
	{Name: "String", Pattern: `"[^"\n]*"?`},
	{Name: "Expr", Pattern: `&?\$\(`},
	{Name: "Word", Pattern: `[^\s;"]+`},
})

var (
	tokenComment    = sourceLexer.Symbols()["Comment"]
	tokenNewline    = sourceLexer.Symbols()["Newline"]
	tokenWhitespace = sourceLexer.Symbols()["Whitespace"]
	tokenString     = sourceLexer.Symbols()["String"]
	tokenExpr       = sourceLexer.Symbols()["Expr"]
)

// Parser converts assembly source text into a syntax Tree.
type Parser struct {
	Name    string                   // Name of the source, for the Tree.
	Defines iter.Seq2[string, uint64] // Names predeclared in $(...) expressions.

	predeclared starlark.StringDict
}

// Parse parses assembly source with the address space layout predeclared.
func Parse(input io.Reader) (tree *Tree, err error) {
	parser := &Parser{Defines: memory.Defines()}
	return parser.Parse(input)
}

// Parse parses assembly source into a Tree. Parsing stops at the first error.
func (p *Parser) Parse(input io.Reader) (tree *Tree, err error) {
	lex, err := sourceLexer.Lex(p.Name, input)
	if err != nil {
		return
	}

	p.predeclared = starlark.StringDict{}
	if p.Defines != nil {
		for name, value := range p.Defines {
			p.predeclared[name] = starlark.MakeUint64(value)
		}
	}

	tree = &Tree{Name: p.Name}

	var line []lexer.Token
	var text strings.Builder
	lineno := 1

	// An expression runs from its opening token to the balancing ')'.
	var expr *lexer.Token
	var depth int

	for {
		var token lexer.Token
		token, err = lex.Next()
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Text: text.String(), Err: err}
			tree = nil
			return
		}

		if expr != nil {
			if !token.EOF() && token.Type != tokenNewline && token.Type != tokenComment {
				text.WriteString(token.Value)
				expr.Value += token.Value
				if token.Type != tokenString {
					depth += parenDepth(token.Value)
				}
				if depth <= 0 {
					line = append(line, *expr)
					expr = nil
				}
				continue
			}
			// Unbalanced; reported by parseValue.
			line = append(line, *expr)
			expr = nil
		}

		if token.Type == tokenExpr {
			text.WriteString(token.Value)
			expr = &token
			depth = parenDepth(token.Value)
			continue
		}

		if !token.EOF() && token.Type != tokenNewline {
			text.WriteString(token.Value)
			if token.Type != tokenWhitespace {
				line = append(line, token)
			}
			continue
		}

		var nodes []Node
		nodes, err = p.parseLine(lineno, line)
		if err != nil {
			if syntaxErr, ok := err.(*ErrSyntax); ok {
				syntaxErr.Text = text.String()
			}
			tree = nil
			return
		}
		tree.Nodes = append(tree.Nodes, nodes...)

		if token.EOF() {
			break
		}

		line = line[:0]
		text.Reset()
		lineno++
	}

	return
}

// parenDepth returns the change in parenthesis nesting over text.
func parenDepth(text string) (depth int) {
	depth = strings.Count(text, "(") - strings.Count(text, ")")
	return
}

// parseLine parses the non-whitespace tokens of a single line.
func (p *Parser) parseLine(lineno int, tokens []lexer.Token) (nodes []Node, err error) {
	for len(tokens) > 0 {
		token := tokens[0]

		if token.Type == tokenComment {
			nodes = append(nodes, &Comment{LineNo: lineno, Text: strings.TrimSpace(token.Value[1:])})
			return
		}

		first, _ := utf8.DecodeRuneInString(token.Value)
		switch {
		case token.Type == tokenString || token.Type == tokenExpr:
			err = ErrCharUnexpected(first)
		case first == '.':
			nodes = append(nodes, &Label{LineNo: lineno, Column: token.Pos.Column, Name: strings.ReplaceAll(token.Value, ":", "")})
			tokens = tokens[1:]
			continue
		case unicode.IsLetter(first):
			cmd := &Cmd{LineNo: lineno, Column: token.Pos.Column, Mnemonic: strings.ToLower(token.Value)}
			tokens = tokens[1:]
			for len(tokens) > 0 && tokens[0].Type != tokenComment {
				var value Value
				value, err = p.parseValue(lineno, tokens[0])
				if err != nil {
					token = tokens[0]
					break
				}
				cmd.Args = append(cmd.Args, value)
				tokens = tokens[1:]
			}
			if err == nil {
				nodes = append(nodes, cmd)
				continue
			}
		default:
			err = ErrCharUnexpected(first)
		}

		err = &ErrSyntax{LineNo: lineno, Column: token.Pos.Column, Err: err}
		return
	}

	return
}

// parseValue classifies a single argument token.
func (p *Parser) parseValue(lineno int, token lexer.Token) (value Value, err error) {
	text := token.Value
	value.Text = text
	defer func() {
		value.Column = token.Pos.Column
	}()

	switch token.Type {
	case tokenString:
		if len(text) < 2 || !strings.HasSuffix(text, `"`) {
			err = ErrStringUnterminated
			return
		}
		value.Kind = VALUE_STRING
		value.Name = text[1 : len(text)-1]
		return
	case tokenExpr:
		expr, address := strings.CutPrefix(text, "&")
		expr = strings.TrimPrefix(expr, "$(")
		if !strings.HasSuffix(expr, ")") {
			err = ErrParseExpression(expr)
			return
		}
		expr = expr[:len(expr)-1]
		value, err = p.evaluate(lineno, expr)
		if err != nil {
			return
		}
		value.Text = text
		if address {
			if !value.IsInteger() {
				err = ErrParseAddress(text)
				return
			}
			value.Kind = VALUE_ADDRESS
		}
		return
	}

	first, _ := utf8.DecodeRuneInString(text)
	switch {
	case first == '.':
		value.Kind = VALUE_LABEL
		value.Name = text
	case first == '&':
		var addr uint64
		addr, err = strconv.ParseUint(text[1:], numberBase(text[1:]), 64)
		if err != nil {
			err = ErrParseAddress(text)
			return
		}
		value.Kind = VALUE_ADDRESS
		value.Bits = addr
	case unicode.IsDigit(first), first == '-' && len(text) > 1 && unicode.IsDigit(rune(text[1])):
		value, err = parseNumber(text)
	default:
		err = ErrCharUnexpected(first)
	}

	return
}

// numberBase is 10, unless the numeral has a 0x, 0o or 0b prefix.
func numberBase(text string) int {
	text = strings.ToLower(strings.TrimPrefix(text, "-"))
	for _, prefix := range []string{"0x", "0o", "0b"} {
		if strings.HasPrefix(text, prefix) {
			return 0
		}
	}

	return 10
}

// parseNumber tries, in order, signed 64 bit, unsigned 64 bit and float32.
func parseNumber(text string) (value Value, err error) {
	value.Text = text
	base := numberBase(text)

	if i64, err_i := strconv.ParseInt(text, base, 64); err_i == nil {
		value.Kind = VALUE_SIGNED
		value.Bits = uint64(i64)
		return
	}

	if u64, err_u := strconv.ParseUint(text, base, 64); err_u == nil {
		value.Kind = VALUE_UNSIGNED
		value.Bits = u64
		return
	}

	if base == 10 {
		if f64, err_f := strconv.ParseFloat(text, 32); err_f == nil {
			value.Kind = VALUE_FLOAT
			value.Bits = uint64(math.Float32bits(float32(f64)))
			return
		}
	}

	err = ErrParseNumber(text)

	return
}

// evaluate does compile-time $(...) evaluations.
func (p *Parser) evaluate(lineno int, expr string) (value Value, err error) {
	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}

	p.predeclared["LINENO"] = starlark.MakeInt(lineno)

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, p.predeclared)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}

	switch rc := dict["rc"].(type) {
	case starlark.Int:
		if i64, ok := rc.Int64(); ok {
			value.Kind = VALUE_SIGNED
			value.Bits = uint64(i64)
		} else if u64, ok := rc.Uint64(); ok {
			value.Kind = VALUE_UNSIGNED
			value.Bits = u64
		} else {
			err = ErrParseExpression(expr)
		}
	case starlark.Float:
		value.Kind = VALUE_FLOAT
		value.Bits = uint64(math.Float32bits(float32(rc)))
	default:
		err = ErrParseExpression(expr)
	}

	return
}

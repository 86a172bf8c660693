package css

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gorilla/css/scanner"
)

// Parse parses a stylesheet. Parsing never fails: a rule whose selector
// cannot be read is skipped up to its closing brace, and a malformed
// declaration is skipped up to the next ';' or '}'. Each skip is reported
// as a *ParseError in the returned slice, in source order.
func Parse(text string) (*Stylesheet, []*ParseError) {
	p := &parser{toks: tokenize(text), sheet: &Stylesheet{}}
	p.parseStylesheet()
	return p.sheet, p.errs
}

// ParseSelector parses a single simple selector such as "div#main.note".
func ParseSelector(text string) (Selector, error) {
	toks := trimSpace(tokenize(text))
	for _, tok := range toks {
		if isChar(tok, ',') {
			return Selector{}, fmt.Errorf("css: selector %q: groups are not allowed here", text)
		}
	}
	sel, err := compileSelector(toks)
	if err != nil {
		return Selector{}, fmt.Errorf("css: selector %q: %w", text, err)
	}
	return sel, nil
}

var eofToken = &scanner.Token{Type: scanner.TokenEOF}

// tokenize runs the scanner to the end of input. Comments are removed. An
// unclosed comment runs to the end of input. An unclosed string runs to the
// end of its line: it is replaced by a single TokenError token, whose Value
// is the scanner's message, and scanning resumes on the next line.
func tokenize(text string) []*scanner.Token {
	var toks []*scanner.Token
	// Position of the restarted scanner's first byte in the whole input.
	baseLine, baseCol := 1, 1
	shift := func(tok *scanner.Token) *scanner.Token {
		out := *tok
		if out.Line == 1 {
			out.Column += baseCol - 1
		}
		out.Line += baseLine - 1
		return &out
	}
	for {
		s := scanner.New(text)
		off := 0
		var tok *scanner.Token
		for {
			tok = s.Next()
			if tok.Type == scanner.TokenEOF || tok.Type == scanner.TokenError {
				break
			}
			off += consumed(text[off:], tok)
			if tok.Type == scanner.TokenComment || tok.Type == scanner.TokenBOM {
				continue
			}
			toks = append(toks, shift(tok))
		}
		if tok.Type == scanner.TokenEOF || strings.HasPrefix(text[off:], "/*") {
			return toks
		}

		bad := shift(tok)
		toks = append(toks, bad)
		nl := strings.IndexByte(text[off:], '\n')
		if nl < 0 {
			return toks
		}
		baseLine, baseCol = bad.Line, bad.Column+utf8.RuneCountInString(text[off:off+nl])
		text = text[off+nl:]
	}
}

// consumed returns how many bytes of rest the scanner used for tok. The
// scanner reports an invalid byte as U+FFFD.
func consumed(rest string, tok *scanner.Token) int {
	if strings.HasPrefix(rest, tok.Value) {
		return len(tok.Value)
	}
	_, w := utf8.DecodeRuneInString(rest)
	return w
}

func isBad(tok *scanner.Token) bool {
	return tok.Type == scanner.TokenError
}

type parser struct {
	toks  []*scanner.Token
	pos   int
	sheet *Stylesheet
	errs  []*ParseError
}

func (p *parser) peek() *scanner.Token {
	if p.pos >= len(p.toks) {
		return eofToken
	}
	return p.toks[p.pos]
}

func (p *parser) next() *scanner.Token {
	tok := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return tok
}

// at returns the position to report for tok. The end-of-input token has no
// position of its own, so the last real token is used.
func (p *parser) at(tok *scanner.Token) (int, int) {
	if tok == eofToken && len(p.toks) > 0 {
		last := p.toks[len(p.toks)-1]
		return last.Line, last.Column
	}
	if tok == eofToken {
		return 1, 1
	}
	return tok.Line, tok.Column
}

func (p *parser) errorf(kind ErrorKind, tok *scanner.Token, format string, args ...any) {
	line, col := p.at(tok)
	p.errs = append(p.errs, newParseError(kind, line, col, format, args...))
}

func (p *parser) parseStylesheet() {
	for {
		tok := p.peek()
		switch {
		case tok.Type == scanner.TokenEOF:
			return
		case tok.Type == scanner.TokenS,
			tok.Type == scanner.TokenCDO,
			tok.Type == scanner.TokenCDC,
			isChar(tok, ';'),
			isChar(tok, '}'):
			p.next()
		case isBad(tok):
			p.next()
			p.errorf(UnterminatedSelector, tok, "%s", tok.Value)
		case tok.Type == scanner.TokenAtKeyword:
			p.skipAtRule()
		default:
			p.parseRule()
		}
	}
}

func (p *parser) parseRule() {
	start := p.peek()
	var prelude []*scanner.Token
	for {
		tok := p.peek()
		if tok.Type == scanner.TokenEOF {
			p.errorf(UnterminatedSelector, start, "unexpected end of input before '{'")
			return
		}
		if isBad(tok) {
			p.next()
			p.errorf(UnterminatedSelector, tok, "%s in selector", tok.Value)
			return
		}
		if isChar(tok, '{') {
			break
		}
		prelude = append(prelude, p.next())
	}
	p.next() // {

	selectors, err := compileSelectorGroup(prelude)
	if err != nil {
		p.errorf(UnterminatedSelector, start, "%v", err)
		p.skipBlock()
		return
	}
	p.sheet.Rules = append(p.sheet.Rules, Rule{
		Selectors:    selectors,
		Declarations: p.parseDeclarations(),
	})
}

// parseDeclarations reads declarations up to and including the closing
// brace of the current block.
func (p *parser) parseDeclarations() []Declaration {
	var decls []Declaration
	for {
		tok := p.peek()
		switch {
		case tok.Type == scanner.TokenEOF:
			return decls
		case isBad(tok):
			// The rest of the block is unreliable; keep what is complete.
			p.next()
			p.errorf(UnterminatedDeclaration, tok, "%s", tok.Value)
			return decls
		case tok.Type == scanner.TokenS, isChar(tok, ';'):
			p.next()
		case isChar(tok, '}'):
			p.next()
			return decls
		case tok.Type == scanner.TokenIdent:
			if d, ok := p.parseDeclaration(); ok {
				decls = append(decls, d)
			}
		default:
			p.errorf(UnterminatedDeclaration, tok, "expected property name, got %q", tok.Value)
			p.skipDeclaration()
		}
	}
}

func (p *parser) parseDeclaration() (Declaration, bool) {
	name := p.next()
	p.skipSpace()
	if colon := p.peek(); isBad(colon) {
		return Declaration{}, false
	} else if !isChar(colon, ':') {
		p.errorf(UnterminatedDeclaration, colon, "expected ':' after %q", name.Value)
		p.skipDeclaration()
		return Declaration{}, false
	}
	p.next()

	var value strings.Builder
loop:
	for {
		tok := p.peek()
		switch {
		case tok.Type == scanner.TokenEOF:
			p.errorf(UnterminatedDeclaration, name, "unexpected end of input in %q", name.Value)
			return Declaration{}, false
		case isBad(tok):
			return Declaration{}, false
		case isChar(tok, ';'):
			p.next()
			break loop
		case isChar(tok, '}'):
			break loop
		case isChar(tok, '{'):
			p.errorf(UnterminatedDeclaration, tok, "unexpected '{' in value of %q", name.Value)
			p.skipDeclaration()
			return Declaration{}, false
		default:
			value.WriteString(tok.Value)
			p.next()
		}
	}

	v := collapseSpace(value.String())
	if v == "" {
		p.errorf(UnterminatedDeclaration, name, "empty value for %q", name.Value)
		return Declaration{}, false
	}
	return Declaration{Name: strings.ToLower(name.Value), Value: v}, true
}

func (p *parser) skipSpace() {
	for p.peek().Type == scanner.TokenS {
		p.next()
	}
}

// skipBlock consumes tokens through the brace that closes the block whose
// opening brace was just consumed.
func (p *parser) skipBlock() {
	depth := 1
	for {
		if isBad(p.peek()) {
			return
		}
		tok := p.next()
		switch {
		case tok.Type == scanner.TokenEOF:
			return
		case isChar(tok, '{'):
			depth++
		case isChar(tok, '}'):
			depth--
			if depth == 0 {
				return
			}
		}
	}
}

// skipDeclaration consumes through the next ';' at the current nesting
// level, or up to (not including) the '}' that closes the rule.
func (p *parser) skipDeclaration() {
	depth := 0
	for {
		tok := p.peek()
		switch {
		case tok.Type == scanner.TokenEOF, isBad(tok):
			return
		case isChar(tok, '{'):
			depth++
		case isChar(tok, '}'):
			if depth == 0 {
				return
			}
			depth--
		case isChar(tok, ';') && depth == 0:
			p.next()
			return
		}
		p.next()
	}
}

// skipAtRule drops an at-rule: either a statement ending in ';' or a block.
func (p *parser) skipAtRule() {
	p.next()
	for {
		if isBad(p.peek()) {
			return
		}
		tok := p.next()
		switch {
		case tok.Type == scanner.TokenEOF, isChar(tok, ';'):
			return
		case isChar(tok, '{'):
			p.skipBlock()
			return
		}
	}
}

func compileSelectorGroup(toks []*scanner.Token) ([]Selector, error) {
	var (
		group []Selector
		part  []*scanner.Token
	)
	flush := func() error {
		sel, err := compileSelector(trimSpace(part))
		if err != nil {
			return err
		}
		group = append(group, sel)
		part = part[:0]
		return nil
	}
	for _, tok := range toks {
		if isChar(tok, ',') {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		part = append(part, tok)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return group, nil
}

var errEmptySelector = errors.New("empty selector")

// compileSelector builds a simple selector from tokens with surrounding
// whitespace already removed. Whitespace or any other combinator inside the
// selector is rejected.
func compileSelector(toks []*scanner.Token) (Selector, error) {
	if len(toks) == 0 {
		return Selector{}, errEmptySelector
	}
	var (
		sel     Selector
		classes []string
	)
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		switch {
		case tok.Type == scanner.TokenIdent && i == 0:
			sel.Tag = strings.ToLower(tok.Value)
		case isChar(tok, '*') && i == 0:
		case tok.Type == scanner.TokenHash:
			if sel.ID != "" {
				return Selector{}, fmt.Errorf("second id %q in selector", tok.Value)
			}
			sel.ID = strings.TrimPrefix(tok.Value, "#")
		case isChar(tok, '.'):
			if i+1 >= len(toks) || toks[i+1].Type != scanner.TokenIdent {
				return Selector{}, errors.New("expected class name after '.'")
			}
			i++
			classes = append(classes, toks[i].Value)
		case tok.Type == scanner.TokenS:
			return Selector{}, errors.New("descendant combinators are not supported")
		default:
			return Selector{}, fmt.Errorf("unexpected %q in selector", tok.Value)
		}
	}
	sel.Classes = classSet(classes)
	return sel, nil
}

func trimSpace(toks []*scanner.Token) []*scanner.Token {
	for len(toks) > 0 && toks[0].Type == scanner.TokenS {
		toks = toks[1:]
	}
	for len(toks) > 0 && toks[len(toks)-1].Type == scanner.TokenS {
		toks = toks[:len(toks)-1]
	}
	return toks
}

func isChar(tok *scanner.Token, c byte) bool {
	return tok.Type == scanner.TokenChar && len(tok.Value) == 1 && tok.Value[0] == c
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

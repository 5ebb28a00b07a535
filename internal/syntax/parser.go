package syntax

import (
	"fmt"
	"strings"
)

// Diagnostic is a recoverable syntax error.
type Diagnostic struct {
	Range Range
	Msg   string
}

func (d Diagnostic) Error() string {
	return d.Range.Start.String() + ": " + d.Msg
}

// Option configures a Parser.
type Option func(*Parser)

// WithErrorHandler sets a handler that receives diagnostics as each
// top-level statement is finished.
func WithErrorHandler(h func(Diagnostic)) Option {
	return func(p *Parser) { p.errh = h }
}

// WithPrecedenceGroups adds precedence groups declared outside the file.
// Groups may refer to each other in any order.
func WithPrecedenceGroups(groups ...PrecedenceGroup) Option {
	return func(p *Parser) {
		// One pass per group settles the longest chain of relations.
		for range len(groups) + 1 {
			for _, g := range groups {
				p.prec.defineGroup(g)
			}
		}
	}
}

// WithOperators adds infix operators declared outside the file, mapping
// operator text to a precedence group name. Operators naming an unknown
// group are ignored.
func WithOperators(ops map[string]string) Option {
	return func(p *Parser) {
		for op, group := range ops {
			p.prec.defineOperator(op, group)
		}
	}
}

// _EOF is the kind of the synthetic token at the end of the parser's
// token view.
const _EOF = kindCount

// ptoken is a significant token as the parser sees it.
type ptoken struct {
	Token
	idx   int  // index in the full token stream
	space bool // trivia between this token and the previous one
	line  bool // a line break between this token and the previous one
}

// cursor addresses the current token. sub is a byte offset into an
// operator token that is being consumed one '>' at a time.
type cursor struct {
	i, sub int
}

type mark struct {
	c     cursor
	ndiag int
}

// Parser turns a token stream into a File.
type Parser struct {
	all  Tokens   // complete stream, trivia included
	toks []ptoken // significant tokens plus a trailing EOF token
	c    cursor

	diags   []Diagnostic
	flushed int
	errh    func(Diagnostic)

	prec *precedenceTable

	// Context
	noTrailingClosure bool // conditions: '{' starts the body
	noAssign          bool // expression patterns: '=' ends the pattern
	inBinding         bool // inside a let/var pattern
}

// NewParser creates a Parser over toks, which must be the complete output
// of one Tokenize call.
func NewParser(filename string, toks Tokens, opts ...Option) *Parser {
	p := &Parser{
		all:  toks,
		prec: newPrecedenceTable(),
	}

	space, line := true, true
	for i, t := range toks {
		if t.Kind.IsTrivia() {
			space = true
			if t.Kind.IsLineBreak() || t.Kind == LineComment ||
				t.Kind == BlockComment && strings.ContainsAny(t.Text, "\r\n") {
				line = true
			}
			continue
		}
		p.toks = append(p.toks, ptoken{Token: t, idx: i, space: space, line: line})
		space, line = false, false
	}

	end := NewPos(filename, 1, 1)
	if len(toks) > 0 {
		end = toks[len(toks)-1].Range.End
	}
	p.toks = append(p.toks, ptoken{
		Token: Token{Kind: _EOF, Range: MakeRange(end, end), Offset: -1},
		idx:   len(toks),
		space: true,
		line:  true,
	})

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses src as one file.
func Parse(filename string, src []byte, opts ...Option) (*File, []Diagnostic) {
	return NewParser(filename, Tokenize(filename, src), opts...).Parse()
}

// Parse parses the whole token stream. It always returns a File; every
// problem is reported as a Diagnostic.
func (p *Parser) Parse() (*File, []Diagnostic) {
	p.collectOperators()

	f := &File{}
	start := p.pos()
	f.Shebang = p.shebang()
	f.Stmts = p.stmtList(nil)
	if len(f.Stmts) > 0 || f.Shebang != "" {
		f.rng = MakeRange(start, p.end())
	}
	p.flush()
	return f, p.diags
}

// ----------------------------------------------------------------------------
// Token navigation

// tok returns the current token.
func (p *Parser) tok() ptoken {
	t := p.toks[p.c.i]
	if p.c.sub > 0 {
		t.Text = t.Text[p.c.sub:]
		t.Range.Start = t.Range.Start.shift(p.c.sub)
		t.Offset += p.c.sub
		t.space, t.line = false, false
		if pu, ok := operatorPuncts[t.Text]; ok {
			t.Kind, t.Punct = Punctuator, pu
		}
	}
	return t
}

// peek returns the n-th token after the current one.
func (p *Parser) peek(n int) ptoken {
	if n == 0 {
		return p.tok()
	}
	i := min(p.c.i+n, len(p.toks)-1)
	return p.toks[i]
}

// tokAt returns the token at index i, or the EOF token past the end.
func (p *Parser) tokAt(i int) ptoken {
	return p.toks[min(i, len(p.toks)-1)]
}

// next advances to the next token.
func (p *Parser) next() {
	if p.c.i < len(p.toks)-1 {
		p.c = cursor{i: p.c.i + 1}
	}
}

func (p *Parser) atEOF() bool {
	return p.toks[p.c.i].Kind == _EOF
}

// pos returns the start of the current token.
func (p *Parser) pos() Pos {
	return p.tok().Range.Start
}

// end returns the end of the last consumed token.
func (p *Parser) end() Pos {
	if p.c.sub > 0 {
		return p.toks[p.c.i].Range.Start.shift(p.c.sub)
	}
	if p.c.i == 0 {
		return p.toks[0].Range.Start
	}
	return p.toks[p.c.i-1].Range.End
}

func (p *Parser) rangeFrom(start Pos) Range {
	return MakeRange(start, p.end())
}

// got reports whether the current token is the punctuator pu.
// If so, it consumes the token.
func (p *Parser) got(pu Punct) bool {
	if p.tok().Is(pu) {
		p.next()
		return true
	}
	return false
}

// want consumes pu or reports it as missing.
func (p *Parser) want(pu Punct) bool {
	if p.got(pu) {
		return true
	}
	p.errorf("Expected '%s'.", pu)
	return false
}

// gotKeyword reports whether the current token is the keyword kw.
// If so, it consumes the token.
func (p *Parser) gotKeyword(kw string) bool {
	if p.tok().IsKeyword(kw) {
		p.next()
		return true
	}
	return false
}

func (p *Parser) wantKeyword(kw string) bool {
	if p.gotKeyword(kw) {
		return true
	}
	p.errorf("Expected '%s'.", kw)
	return false
}

// isOp reports whether the current token is the free-form operator op.
func (p *Parser) isOp(op string) bool {
	return p.tok().IsOperator(op)
}

// closeAngle consumes a '>' closing a generic clause. The '>' may be the
// first character of a longer operator such as >> or >?.
func (p *Parser) closeAngle() bool {
	t := p.tok()
	if t.Kind != Operator || !strings.HasPrefix(t.Text, ">") {
		return false
	}
	if len(t.Text) == 1 {
		p.next()
		return true
	}
	p.c.sub++
	return true
}

// text returns the source text of the full-stream tokens [from, to).
func (p *Parser) text(from, to int) string {
	var b strings.Builder
	for _, t := range p.all[from:min(to, len(p.all))] {
		b.WriteString(t.Text)
	}
	return b.String()
}

// ----------------------------------------------------------------------------
// Backtracking

func (p *Parser) mark() mark {
	return mark{c: p.c, ndiag: len(p.diags)}
}

// reset restores the cursor and drops diagnostics reported since m.
func (p *Parser) reset(m mark) {
	p.c = m.c
	p.diags = p.diags[:m.ndiag]
}

// failedSince reports whether diagnostics were reported since m.
func (p *Parser) failedSince(m mark) bool {
	return len(p.diags) > m.ndiag
}

// ----------------------------------------------------------------------------
// Error handling

// errorAt records a diagnostic. A repeat of the previous diagnostic is
// dropped.
func (p *Parser) errorAt(r Range, msg string) {
	if n := len(p.diags); n > 0 && p.diags[n-1].Range == r && p.diags[n-1].Msg == msg {
		return
	}
	p.diags = append(p.diags, Diagnostic{Range: r, Msg: msg})
}

// errorf reports a diagnostic at the current token.
func (p *Parser) errorf(format string, args ...interface{}) {
	p.errorAt(p.tok().Range, fmt.Sprintf(format, args...))
}

// unexpected reports the current token as starting no known production.
func (p *Parser) unexpected() {
	t := p.tok()
	switch t.Kind {
	case Invalid:
		p.errorAt(t.Range, fmt.Sprintf("Invalid token '%s': %s.", t.Text, t.Err))
	case _EOF:
		p.errorAt(t.Range, "Unexpected end of file.")
	default:
		p.errorAt(t.Range, fmt.Sprintf("Unexpected token '%s'.", t.Text))
	}
}

// flush hands new diagnostics to the error handler.
func (p *Parser) flush() {
	if p.errh != nil {
		for _, d := range p.diags[p.flushed:] {
			p.errh(d)
		}
	}
	p.flushed = len(p.diags)
}

// ----------------------------------------------------------------------------
// Names

// isName reports whether t can be used as an identifier.
func isName(t ptoken) bool {
	switch t.Kind {
	case Identifier, BacktickIdentifier:
		return true
	case Keyword:
		return t.Keyword == ContextualKeyword
	}
	return false
}

// isLabel reports whether t can be an argument label or member name,
// which may be any keyword.
func isLabel(t ptoken) bool {
	return t.Kind == Identifier || t.Kind == BacktickIdentifier || t.Kind == Keyword
}

func nameOf(t ptoken) *Name {
	n := &Name{Value: t.Text}
	if t.Kind == BacktickIdentifier {
		n.Value = strings.Trim(t.Text, "`")
	}
	n.rng = t.Range
	return n
}

// name consumes an identifier, or returns nil.
func (p *Parser) name() *Name {
	t := p.tok()
	if !isName(t) {
		return nil
	}
	p.next()
	return nameOf(t)
}

// wantName consumes an identifier or reports it missing after kw. The
// returned Name is never nil.
func (p *Parser) wantName(kw string) *Name {
	if n := p.name(); n != nil {
		return n
	}
	p.errorf("Expected identifier after '%s'.", kw)
	n := &Name{}
	n.rng = MakeRange(p.end(), p.end())
	return n
}

// label consumes any identifier or keyword, or returns nil.
func (p *Parser) label() *Name {
	t := p.tok()
	if !isLabel(t) {
		return nil
	}
	p.next()
	return nameOf(t)
}

// ----------------------------------------------------------------------------
// File structure

// shebang consumes a leading "#!" line.
func (p *Parser) shebang() string {
	t := p.tok()
	if !t.Is(Pound) || t.Offset != 0 || !p.peek(1).Is(Exclaim) || p.peek(1).space {
		return ""
	}
	var b strings.Builder
	j := t.idx
	for ; j < len(p.all) && !p.all[j].Kind.IsLineBreak(); j++ {
		if p.all[j].Kind == LineComment {
			b.WriteString(strings.TrimRight(p.all[j].Text, "\r\n"))
			j++
			break
		}
		b.WriteString(p.all[j].Text)
	}
	for !p.atEOF() && p.tok().idx < j {
		p.next()
	}
	return b.String()
}

// stmtList parses statements until EOF or a token for which stop reports
// true. A nil stop marks the top level.
func (p *Parser) stmtList(stop func(ptoken) bool) []Stmt {
	var list []Stmt
	for {
		for p.got(Semicolon) {
		}
		t := p.tok()
		if t.Kind == _EOF || stop != nil && stop(t) {
			return list
		}

		m := p.mark()
		s := p.stmt()
		if p.c == m.c {
			// Nothing consumed: drop the token and resume.
			if !p.failedSince(m) {
				p.unexpected()
			}
			p.next()
		} else {
			if s != nil {
				list = append(list, s)
			}
			p.separator(stop)
		}
		if stop == nil {
			p.flush()
		}
	}
}

// separator checks that a statement is followed by a line break, ';', or
// the end of the enclosing list.
func (p *Parser) separator(stop func(ptoken) bool) {
	t := p.tok()
	if t.line || t.Kind == _EOF || t.Is(Semicolon) || t.Is(RightBrace) || stop != nil && stop(t) {
		return
	}
	if !canStartStmt(t) || p.dangling() {
		return
	}
	p.errorAt(t.Range, "Statements must be separated by line breaks or semicolons.")
}

// canStartStmt reports whether t may begin a statement.
func canStartStmt(t ptoken) bool {
	if t.Kind != Punctuator {
		return t.Kind != _EOF
	}
	switch t.Punct {
	case RightParen, RightBracket, RightBrace, Comma, Colon, Semicolon, Equal, Arrow, Question:
		return false
	}
	return true
}

func isRightBrace(t ptoken) bool {
	return t.Is(RightBrace)
}

// codeBlock parses { stmts }.
func (p *Parser) codeBlock() *CodeBlock {
	b := &CodeBlock{}
	start := p.pos()
	if !p.want(LeftBrace) {
		b.rng = MakeRange(start, start)
		return b
	}
	defer p.resetContext()()
	b.Stmts = p.stmtList(isRightBrace)
	p.want(RightBrace)
	b.rng = p.rangeFrom(start)
	return b
}

// resetContext clears expression context flags for a nested scope. The
// returned function restores them.
func (p *Parser) resetContext() func() {
	tc, na, ib := p.noTrailingClosure, p.noAssign, p.inBinding
	p.noTrailingClosure, p.noAssign, p.inBinding = false, false, false
	return func() {
		p.noTrailingClosure, p.noAssign, p.inBinding = tc, na, ib
	}
}

// ----------------------------------------------------------------------------
// Operator declarations

// collectOperators runs the precedencegroup and infix operator
// declarations of the file ahead of the main parse, so operators can be
// used before they are declared.
func (p *Parser) collectOperators() {
	q := *p
	q.errh = nil

	var groups, ops []int
	for i, t := range p.toks {
		switch {
		case t.IsKeyword("precedencegroup"):
			groups = append(groups, i)
		case t.IsKeyword("operator") && i > 0 && p.toks[i-1].IsKeyword("infix"):
			ops = append(ops, i)
		}
	}

	// A group may be ordered against a group declared after it; repeat
	// until every relation has been seen.
	for range len(groups) + 1 {
		for _, i := range groups {
			q.c, q.diags = cursor{i: i}, nil
			q.precedenceGroupDecl(p.toks[i].Range.Start, nil, nil)
		}
	}
	for _, i := range ops {
		q.c, q.diags = cursor{i: i}, nil
		q.operatorDecl(p.toks[i].Range.Start, nil, []*Modifier{{Name: "infix"}})
	}
}

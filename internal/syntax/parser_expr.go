package syntax

import (
	"fmt"
	"slices"
	"unicode/utf8"
)

// opKind distinguishes the operators of a flat expression sequence.
type opKind uint8

const (
	opBinary opKind = iota
	opAssign
	opTernary
	opCast
)

// seqOp is an operator between two operands of a sequence. Casts have no
// right operand; their slot in the operand list is nil.
type seqOp struct {
	kind  opKind
	text  string
	group *PrecedenceGroup
	then  Expr // opTernary
	typ   Type // opCast
	rng   Range
}

// expr parses an expression: a sequence of operands and infix operators
// folded by precedence.
func (p *Parser) expr() Expr {
	c := p.c
	x := p.operand()
	if p.c == c {
		return x
	}

	operands := []Expr{x}
	var ops []seqOp
	for {
		op, ok := p.infixOp()
		if !ok {
			break
		}
		ops = append(ops, op)
		if op.kind == opCast {
			operands = append(operands, nil)
			continue
		}
		operands = append(operands, p.operand())
	}
	return p.fold(operands, ops)
}

// infixOp consumes the operator that continues a sequence, if any.
func (p *Parser) infixOp() (seqOp, bool) {
	t := p.tok()
	op := seqOp{text: t.Text, rng: t.Range}
	switch {
	case t.IsKeyword("is"), t.IsKeyword("as"):
		p.next()
		if n := p.tok(); t.Text == "as" && !n.space && (n.Is(Question) || n.Is(Exclaim)) {
			op.text += n.Text
			p.next()
		}
		op.kind = opCast
		op.group = p.prec.group(castingPrecedence)
		op.typ = p.type_()

	case t.Is(Question):
		p.next()
		op.kind = opTernary
		op.group = p.prec.group(ternaryPrecedence)
		op.then = p.expr()
		p.want(Colon)

	case t.Is(Equal):
		if p.noAssign {
			return op, false
		}
		p.next()
		op.kind = opAssign
		op.group = p.prec.group(assignPrecedence)

	case t.Kind == Operator, t.Is(Amp):
		if t.line && p.rightBound() {
			// A prefix operator starting the next line.
			return op, false
		}
		p.next()
		op.kind = opBinary
		g, ok := p.prec.lookup(t.Text)
		if !ok {
			p.errorAt(t.Range, fmt.Sprintf("Operator '%s' declaration not found; assuming %s.", t.Text, DefaultPrecedence))
			g = p.prec.group(DefaultPrecedence)
		}
		op.group = g

	default:
		return op, false
	}
	op.rng = p.rangeFrom(t.Range.Start)
	return op, true
}

// rightBound reports whether the token after the current one is attached
// to it on the right.
func (p *Parser) rightBound() bool {
	n := p.peek(1)
	if n.space || n.Kind == _EOF {
		return false
	}
	if n.Kind == Punctuator {
		switch n.Punct {
		case RightParen, RightBracket, RightBrace, Comma, Semicolon, Colon:
			return false
		}
	}
	return true
}

// fold combines a flat sequence into a tree. The operator with the
// tightest group is combined first; among equals, right-associative
// groups combine right to left and all others left to right. Chained
// ternaries always combine left to right.
func (p *Parser) fold(operands []Expr, ops []seqOp) Expr {
	for len(ops) > 0 {
		k := 0
		for i := 1; i < len(ops); i++ {
			gi, gk := ops[i].group, ops[k].group
			switch {
			case gi.rank > gk.rank:
				k = i
			case gi.rank == gk.rank && gi.Associativity == AssocRight && ops[i].kind != opTernary:
				k = i
			}
		}
		// A cast owns the slot to its right; it combines before anything
		// that would take that slot as an operand.
		for k > 0 && operands[k] == nil {
			k--
		}

		op := ops[k]
		if op.group.Associativity == AssocNone && op.kind == opBinary &&
			k+1 < len(ops) && ops[k+1].group == op.group && ops[k+1].kind == opBinary {
			p.errorAt(ops[k+1].rng, fmt.Sprintf("Adjacent operators are in non-associative precedence group '%s'.", op.group.Name))
		}

		x, y := operands[k], operands[k+1]
		var z Expr
		switch op.kind {
		case opCast:
			c := &CastExpr{Op: op.text, X: x, Type: op.typ}
			c.rng = MakeRange(x.Range().Start, op.rng.End)
			z = c
		case opTernary:
			t := &TernaryExpr{Cond: x, Then: op.then, Else: y}
			t.rng = span(x, y)
			z = t
		case opAssign:
			a := &AssignExpr{X: x, Y: y}
			a.rng = span(x, y)
			z = a
		default:
			b := &BinaryExpr{Op: op.text, X: x, Y: y}
			b.rng = span(x, y)
			z = b
		}
		operands[k] = z
		operands = slices.Delete(operands, k+1, k+2)
		ops = slices.Delete(ops, k, k+1)
	}
	return operands[0]
}

func span(x, y Node) Range {
	return MakeRange(x.Range().Start, y.Range().End)
}

// ----------------------------------------------------------------------------
// Operands

// operand parses [try] prefix-expression.
func (p *Parser) operand() Expr {
	t := p.tok()
	if !t.IsKeyword("try") {
		return p.prefixExpr()
	}
	p.next()
	x := &TryExpr{Kind: t.Text}
	if n := p.tok(); !n.space && (n.Is(Question) || n.Is(Exclaim)) {
		x.Kind += n.Text
		p.next()
	}
	x.X = p.operand()
	x.rng = p.rangeFrom(t.Range.Start)
	return x
}

func (p *Parser) prefixExpr() Expr {
	t := p.tok()
	switch {
	case t.Is(Amp):
		p.next()
		x := &InOutExpr{X: p.postfixExpr()}
		x.rng = p.rangeFrom(t.Range.Start)
		return x

	case t.Kind == Operator, t.Is(Exclaim):
		if n := p.peek(1); n.Is(RightParen) || n.Is(Comma) {
			p.next()
			x := &OperatorRefExpr{Op: t.Text}
			x.rng = t.Range
			return x
		}
		if p.dangling() {
			p.unexpected()
			x := &BadExpr{}
			x.rng = MakeRange(t.Range.Start, t.Range.Start)
			return x
		}
		p.next()
		x := &PrefixExpr{Op: t.Text, X: p.prefixExpr()}
		x.rng = p.rangeFrom(t.Range.Start)
		return x
	}
	return p.postfixExpr()
}

// dangling reports whether the operator at the cursor has nothing after
// it to apply to: the line, the file or the enclosing brackets end.
func (p *Parser) dangling() bool {
	t, n := p.tok(), p.peek(1)
	if t.Kind != Operator && !t.Is(Exclaim) {
		return false
	}
	if n.line || n.Kind == _EOF {
		return true
	}
	return n.Is(RightBracket) || n.Is(RightBrace) || n.Is(Semicolon)
}

// postfixExpr parses a primary expression and the postfix operations
// attached to it.
func (p *Parser) postfixExpr() Expr {
	start := p.pos()
	x := p.primary()
	if _, bad := x.(*BadExpr); bad {
		return x
	}

	var lastCall *CallExpr // call produced by the previous step
	for {
		t := p.tok()
		var call *CallExpr
		switch {
		case t.Is(Period) && !t.space:
			x = p.member(start, x)

		case t.Is(Period) && t.line && !p.peek(1).space && (isLabel(p.peek(1)) || p.peek(1).Kind == DecimalIntLit):
			// Member chain continued on a new line.
			x = p.member(start, x)

		case t.Is(Exclaim) && !t.space:
			p.next()
			f := &ForceExpr{X: x}
			f.rng = p.rangeFrom(start)
			x = f

		case t.Is(Question) && !t.space:
			p.next()
			o := &OptionalChainExpr{X: x}
			o.rng = p.rangeFrom(start)
			x = o

		case t.Is(LeftParen) && !t.space:
			call = &CallExpr{Fun: x, HasParens: true}
			call.Args = p.argList(RightParen)
			call.rng = p.rangeFrom(start)
			x = call

		case t.Is(LeftBracket) && !t.space:
			s := &SubscriptExpr{X: x}
			s.Args = p.argList(RightBracket)
			s.rng = p.rangeFrom(start)
			x = s

		case t.Is(LeftBrace) && !t.line && takesTrailingClosure(x) && !p.atAccessorBlock():
			c := p.trailingClosure()
			if c == nil {
				return x
			}
			if lastCall != nil && lastCall.Trailing == nil {
				lastCall.Trailing = c
				lastCall.rng = p.rangeFrom(start)
			} else {
				call := &CallExpr{Fun: x, Trailing: c}
				call.rng = p.rangeFrom(start)
				x = call
			}

		case t.Kind == Operator && !t.space && !p.rightBound():
			p.next()
			o := &PostfixExpr{Op: t.Text, X: x}
			o.rng = p.rangeFrom(start)
			x = o

		default:
			return x
		}
		lastCall = call
	}
}

// takesTrailingClosure reports whether a '{' after x may be a trailing
// closure of x.
func takesTrailingClosure(x Expr) bool {
	switch x := x.(type) {
	case *IdentExpr, *MemberExpr, *ImplicitMemberExpr, *InitRefExpr, *SubscriptExpr:
		return true
	case *CallExpr:
		return x.Trailing == nil
	}
	return false
}

// trailingClosure parses a closure following a call. Where a '{' opens a
// statement body, a closure is only taken if another '{' follows it.
func (p *Parser) trailingClosure() *ClosureExpr {
	if p.noTrailingClosure && !p.tokAt(p.matchingBrace(p.c.i)+1).Is(LeftBrace) {
		return nil
	}
	return p.closure()
}

// matchingBrace returns the index of the '}' closing the '{' at i.
func (p *Parser) matchingBrace(i int) int {
	depth := 0
	for ; i < len(p.toks)-1; i++ {
		switch t := p.toks[i]; {
		case t.Is(LeftBrace):
			depth++
		case t.Is(RightBrace):
			if depth--; depth == 0 {
				return i
			}
		}
	}
	return i
}

// member parses the part of x.name after x.
func (p *Parser) member(start Pos, x Expr) Expr {
	p.next() // .
	t := p.tok()
	switch {
	case t.Kind == DecimalIntLit && !t.space:
		p.next()
		e := &TupleIndexExpr{X: x, Index: t.Text}
		e.rng = p.rangeFrom(start)
		return e
	case t.IsKeyword("init"):
		p.next()
		e := &InitRefExpr{X: x, ArgNames: p.argNames()}
		e.rng = p.rangeFrom(start)
		return e
	case t.IsKeyword("self"):
		p.next()
		e := &PostfixSelfExpr{X: x}
		e.rng = p.rangeFrom(start)
		return e
	case isLabel(t):
		p.next()
		e := &MemberExpr{X: x, Name: nameOf(t)}
		e.GenericArgs = p.speculateGenericArgs()
		e.ArgNames = p.argNames()
		e.rng = p.rangeFrom(start)
		return e
	}
	p.errorf("Expected member name following '.'.")
	e := &MemberExpr{X: x, Name: &Name{}}
	e.rng = p.rangeFrom(start)
	return e
}

// argNames parses a compound name suffix (a:b:) if one follows.
func (p *Parser) argNames() []*Name {
	if t := p.tok(); !t.Is(LeftParen) || t.space {
		return nil
	}
	i, n := p.c.i+1, 0
	for isLabel(p.tokAt(i)) && p.tokAt(i+1).Is(Colon) {
		i += 2
		n++
	}
	if n == 0 || !p.tokAt(i).Is(RightParen) {
		return nil
	}
	p.next() // (
	names := make([]*Name, 0, n)
	for range n {
		names = append(names, p.label())
		p.next() // :
	}
	p.next() // )
	return names
}

// speculateGenericArgs parses <T, U> after a name if it reads as generic
// arguments rather than a comparison.
func (p *Parser) speculateGenericArgs() []Type {
	if t := p.tok(); !t.IsOperator("<") || t.space {
		return nil
	}
	m := p.mark()
	args := p.typeArgs()
	if p.failedSince(m) || !p.genericArgsEnd() {
		p.reset(m)
		return nil
	}
	return args
}

// genericArgsEnd reports whether the token after a speculative generic
// argument list confirms it.
func (p *Parser) genericArgsEnd() bool {
	t := p.tok()
	if t.line || t.Kind == _EOF || t.IsOperator("==") {
		return true
	}
	if t.Kind != Punctuator {
		return false
	}
	switch t.Punct {
	case LeftParen, RightParen, RightBracket, RightBrace, Comma, Semicolon, Period, Question, Exclaim, Colon:
		return true
	}
	return false
}

// argList parses (args) or [args]; the cursor is on the opening bracket.
func (p *Parser) argList(close Punct) []*Arg {
	p.next()
	defer p.resetContext()()
	var args []*Arg
	for !p.tok().Is(close) && !p.atEOF() {
		start := p.pos()
		a := &Arg{}
		if isLabel(p.tok()) && p.peek(1).Is(Colon) {
			a.Label = p.label()
			p.next()
		}
		a.X = p.expr()
		a.rng = p.rangeFrom(start)
		args = append(args, a)
		if !p.got(Comma) {
			break
		}
	}
	p.want(close)
	return args
}

// ----------------------------------------------------------------------------
// Primary expressions

var magicLiterals = map[string]bool{
	"file": true, "fileID": true, "filePath": true, "line": true,
	"column": true, "function": true, "dsohandle": true,
}

var playgroundLiterals = map[string]bool{
	"colorLiteral": true, "fileLiteral": true, "imageLiteral": true,
}

func (p *Parser) primary() Expr {
	t := p.tok()
	start := t.Range.Start

	lit := func(kind LitKind) Expr {
		p.next()
		x := &LiteralExpr{Kind: kind, Value: t.Text, Token: t.Kind}
		x.rng = t.Range
		return x
	}

	switch {
	case isName(t):
		p.next()
		x := &IdentExpr{Name: nameOf(t).Value}
		x.GenericArgs = p.speculateGenericArgs()
		x.ArgNames = p.argNames()
		x.rng = p.rangeFrom(start)
		return x

	case t.Kind.IsIntLit():
		return lit(IntLit)
	case t.Kind.IsFloatLit():
		return lit(FloatLit)
	case t.Kind == StaticStringLit:
		return lit(StringLit)
	case t.Kind == InterpolatedStringLit:
		return p.interpolatedString()

	case t.Kind == Keyword:
		switch t.Text {
		case "true", "false":
			x := lit(BoolLit).(*LiteralExpr)
			x.Token = Keyword
			return x
		case "nil":
			x := lit(NilLit).(*LiteralExpr)
			x.Token = Keyword
			return x
		case "self":
			p.next()
			x := &SelfExpr{}
			x.rng = t.Range
			return x
		case "super":
			p.next()
			x := &SuperExpr{}
			x.rng = t.Range
			return x
		case "_":
			p.next()
			x := &WildcardExpr{}
			x.rng = t.Range
			return x
		case "Self", "Any":
			p.next()
			x := &IdentExpr{Name: t.Text}
			x.rng = t.Range
			return x
		}

	case t.Is(LeftParen):
		args := p.argList(RightParen)
		if len(args) == 1 && args[0].Label == nil {
			x := &ParenExpr{X: args[0].X}
			x.rng = p.rangeFrom(start)
			return x
		}
		x := &TupleExpr{Elems: args}
		x.rng = p.rangeFrom(start)
		return x

	case t.Is(LeftBracket):
		return p.collection()
	case t.Is(LeftBrace):
		return p.closure()

	case t.Is(Period):
		p.next()
		x := &ImplicitMemberExpr{}
		if x.Name = p.label(); x.Name == nil {
			p.errorf("Expected identifier after '.'.")
			x.Name = &Name{}
		}
		x.rng = p.rangeFrom(start)
		return x

	case t.Is(Backslash):
		return p.keyPath()
	case t.Is(Pound):
		return p.poundExpr()

	case t.Kind == Invalid:
		p.unexpected()
		p.next()
		x := &BadExpr{}
		x.rng = t.Range
		return x
	}

	return p.badExpr()
}

// badExpr reports a missing expression. The placeholder is empty and sits
// at the current token.
func (p *Parser) badExpr() *BadExpr {
	p.errorf("Expected expression.")
	x := &BadExpr{}
	x.rng = MakeRange(p.pos(), p.pos())
	return x
}

// collection parses an array or dictionary literal.
func (p *Parser) collection() Expr {
	start := p.pos()
	p.next() // [
	defer p.resetContext()()

	if p.tok().Is(Colon) && p.peek(1).Is(RightBracket) {
		p.next()
		p.next()
		x := &DictExpr{}
		x.rng = p.rangeFrom(start)
		return x
	}

	var elems []Expr
	var entries []*DictEntry
	for !p.tok().Is(RightBracket) && !p.atEOF() {
		es := p.pos()
		k := p.expr()
		if len(elems) == 0 && (len(entries) > 0 || p.tok().Is(Colon)) {
			e := &DictEntry{Key: k}
			if p.want(Colon) {
				e.Value = p.expr()
			}
			e.rng = p.rangeFrom(es)
			entries = append(entries, e)
		} else {
			elems = append(elems, k)
		}
		if !p.got(Comma) {
			break
		}
	}
	p.want(RightBracket)

	if entries != nil {
		x := &DictExpr{Entries: entries}
		x.rng = p.rangeFrom(start)
		return x
	}
	x := &ArrayExpr{Elems: elems}
	x.rng = p.rangeFrom(start)
	return x
}

// closure parses { [captures] (params) throws -> T in body }.
func (p *Parser) closure() *ClosureExpr {
	start := p.pos()
	p.next() // {
	defer p.resetContext()()

	c := &ClosureExpr{}
	m := p.mark()
	if !p.closureSignature(c) {
		p.reset(m)
		*c = ClosureExpr{}
	}
	c.Body = p.stmtList(isRightBrace)
	p.want(RightBrace)
	c.rng = p.rangeFrom(start)
	return c
}

// closureSignature parses the part of a closure up to and including 'in'.
// It reports false if there is none.
func (p *Parser) closureSignature(c *ClosureExpr) bool {
	m := p.mark()
	c.Attributes = p.attributes()
	if p.tok().Is(LeftBracket) {
		if !p.captureList(c) {
			return false
		}
	}

	switch t := p.tok(); {
	case t.Is(LeftParen):
		c.Parenthesized = true
		c.Params = p.paramClause(false)
	case isName(t) || t.IsKeyword("_"):
		for {
			t := p.tok()
			if !isName(t) && !t.IsKeyword("_") {
				return false
			}
			p.next()
			prm := &Param{Local: nameOf(t)}
			prm.rng = t.Range
			c.Params = append(c.Params, prm)
			if !p.got(Comma) {
				break
			}
		}
	}

	c.Throws = p.throwsClause()
	if p.got(Arrow) {
		c.Result = p.type_()
	}
	if p.failedSince(m) {
		return false
	}
	if p.gotKeyword("in") {
		c.HasIn = true
		return true
	}
	return false
}

// captureList parses [weak self, unowned(safe) x, y = z].
func (p *Parser) captureList(c *ClosureExpr) bool {
	p.next() // [
	for !p.tok().Is(RightBracket) && !p.atEOF() {
		start := p.pos()
		cp := &Capture{}
		if t := p.tok(); (t.IsKeyword("weak") || t.IsKeyword("unowned")) && !p.peek(1).Is(Comma) && !p.peek(1).Is(RightBracket) {
			cp.Specifier = t.Text
			p.next()
			if lp := p.tok(); lp.Is(LeftParen) && !lp.space {
				p.next()
				cp.Specifier += "(" + p.tok().Text + ")"
				p.next()
				if !p.got(RightParen) {
					return false
				}
			}
		}
		if isName(p.tok()) && p.peek(1).Is(Equal) {
			cp.Name = p.name()
			p.next() // =
		}
		cp.X = p.expr()
		cp.rng = p.rangeFrom(start)
		c.Captures = append(c.Captures, cp)
		if !p.got(Comma) {
			break
		}
	}
	return p.got(RightBracket)
}

// interpolatedString parses the segments of an interpolated string. Each
// \( ) segment is scanned and parsed in place, so positions inside it are
// those of the enclosing file.
func (p *Parser) interpolatedString() Expr {
	t := p.tok()
	p.next()
	x := &InterpolatedStringExpr{Value: t.Text}
	x.rng = t.Range

	delim := 1
	if len(t.Text) >= 6 && t.Text[:3] == `"""` {
		delim = 3
	}
	body := t.Text[delim : len(t.Text)-delim]
	base := t.Offset + delim

	pos := t.Range.Start.shift(delim)
	lit, litPos := 0, pos
	addLit := func(end int) {
		if end > lit {
			s := &LiteralExpr{Kind: StringLit, Value: body[lit:end], Token: StaticStringLit}
			s.rng = MakeRange(litPos, pos)
			x.Segments = append(x.Segments, s)
		}
	}

	for i := 0; i < len(body); {
		if body[i] == '\\' && i+1 < len(body) {
			if body[i+1] == '(' {
				addLit(i)
				seg, n := p.interpolation(body[i+2:], pos.shift(2), base+i+2)
				x.Segments = append(x.Segments, seg)
				pos = advance(pos, body[i:i+2+n])
				i += 2 + n
				lit, litPos = i, pos
				continue
			}
			pos = pos.shift(1)
			i++
		}
		r, w := utf8.DecodeRuneInString(body[i:])
		pos = advance(pos, string(r))
		i += w
	}
	addLit(len(body))
	return x
}

// interpolation parses the expression at the start of src, which follows
// a "\(". It returns the expression and the number of bytes up to and
// including the closing parenthesis.
func (p *Parser) interpolation(src string, at Pos, offset int) (Expr, int) {
	s := newScannerAt(at.filename, []byte(src), at.line, at.col, offset)
	var toks Tokens
	n, depth := len(src), 1
	for {
		tok, ok := s.Next()
		if !ok {
			break
		}
		if tok.Is(LeftParen) {
			depth++
		} else if tok.Is(RightParen) {
			if depth--; depth == 0 {
				n = tok.Offset - offset + 1
				break
			}
		}
		toks = append(toks, tok)
	}

	if len(toks.Significant()) == 0 {
		p.errorAt(MakeRange(at, at), "Expected expression.")
		x := &BadExpr{}
		x.rng = MakeRange(at, at)
		return x, n
	}

	q := NewParser(at.filename, toks)
	q.prec = p.prec
	x := q.expr()
	if !q.atEOF() {
		q.unexpected()
	}
	for _, d := range q.diags {
		p.errorAt(d.Range, d.Msg)
	}
	return x, n
}

// advance moves pos over the text s.
func advance(pos Pos, s string) Pos {
	for _, r := range s {
		if r == '\n' {
			pos.line++
			pos.col = 1
		} else {
			pos.col++
		}
	}
	return pos
}

// keyPath parses \Root.a?.b[0] or \.a.
func (p *Parser) keyPath() Expr {
	start := p.pos()
	p.next() // \
	x := &KeyPathExpr{}
	if t := p.tok(); isName(t) && !t.space {
		p.next()
		tn := &TypeName{Name: nameOf(t)}
		tn.Args = p.speculateGenericArgs()
		tn.rng = p.rangeFrom(t.Range.Start)
		root := &IdentType{Elems: []*TypeName{tn}}
		root.rng = tn.rng
		x.Root = root
	}

	for {
		t := p.tok()
		if t.space {
			break
		}
		var comp *KeyPathComponent
		switch {
		case t.Is(Period):
			p.next()
			comp = &KeyPathComponent{Name: p.label()}
			if comp.Name == nil {
				p.errorf("Expected member name following '.'.")
			}
		case t.Is(LeftBracket):
			comp = &KeyPathComponent{Args: p.argList(RightBracket)}
		case t.Is(Question), t.Is(Exclaim):
			p.next()
			if n := len(x.Components); n > 0 {
				last := x.Components[n-1]
				last.Postfix += t.Text
				last.rng = p.rangeFrom(last.rng.Start)
				continue
			}
			comp = &KeyPathComponent{Postfix: t.Text}
		}
		if comp == nil {
			break
		}
		comp.rng = p.rangeFrom(t.Range.Start)
		x.Components = append(x.Components, comp)
	}

	if len(x.Components) == 0 {
		p.errorf("Expected member name following '.'.")
	}
	x.rng = p.rangeFrom(start)
	return x
}

// poundExpr parses #file, #selector(x), #keyPath(x) and the playground
// literals.
func (p *Parser) poundExpr() Expr {
	start := p.pos()
	n := p.peek(1)
	if n.space || !isLabel(n) {
		return p.badExpr()
	}
	p.next()
	p.next()

	switch name := n.Text; {
	case magicLiterals[name]:
		x := &MagicLiteralExpr{Name: name}
		x.rng = p.rangeFrom(start)
		return x

	case playgroundLiterals[name]:
		x := &PlaygroundLiteralExpr{Name: name}
		if p.tok().Is(LeftParen) {
			x.Args = p.argList(RightParen)
		} else {
			p.errorf("Expected '('.")
		}
		x.rng = p.rangeFrom(start)
		return x

	case name == "selector":
		x := &SelectorExpr{}
		if p.want(LeftParen) {
			restore := p.resetContext()
			if t := p.tok(); (t.Text == "getter" || t.Text == "setter") && p.peek(1).Is(Colon) {
				x.Kind = t.Text
				p.next()
				p.next()
			}
			x.X = p.expr()
			restore()
			p.want(RightParen)
		}
		x.rng = p.rangeFrom(start)
		return x

	case name == "keyPath":
		x := &KeyPathStringExpr{}
		if p.want(LeftParen) {
			restore := p.resetContext()
			x.X = p.expr()
			restore()
			p.want(RightParen)
		}
		x.rng = p.rangeFrom(start)
		return x
	}

	p.errorAt(p.rangeFrom(start), fmt.Sprintf("Unknown expression directive '#%s'.", n.Text))
	x := &BadExpr{}
	x.rng = p.rangeFrom(start)
	return x
}

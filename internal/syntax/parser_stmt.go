package syntax

import "strings"

// labelable lists the statements that can carry a label.
var labelable = map[string]bool{
	"for": true, "while": true, "repeat": true, "if": true, "switch": true, "do": true,
}

// compilerDirectives are the #-words parsed as statements.
var compilerDirectives = map[string]bool{
	"if": true, "elseif": true, "else": true, "endif": true, "sourceLocation": true,
}

// stmt parses one statement, declaration or expression.
func (p *Parser) stmt() Stmt {
	t := p.tok()
	if t.Kind == Keyword {
		switch t.Text {
		case "for":
			return p.forInStmt()
		case "while":
			return p.whileStmt()
		case "repeat":
			return p.repeatWhileStmt()
		case "if":
			return p.ifStmt()
		case "guard":
			return p.guardStmt()
		case "switch":
			return p.switchStmt()
		case "break":
			return p.breakStmt()
		case "continue":
			return p.continueStmt()
		case "fallthrough":
			s := &FallthroughStmt{}
			s.rng = t.Range
			p.next()
			return s
		case "return":
			return p.returnStmt()
		case "throw":
			return p.throwStmt()
		case "defer":
			return p.deferStmt()
		case "do":
			return p.doStmt()
		}
	}

	if isName(t) && p.peek(1).Is(Colon) && p.peek(2).Kind == Keyword && labelable[p.peek(2).Text] {
		return p.labeledStmt()
	}
	if p.atCompilerControl() {
		return p.compilerControl()
	}
	if p.atDecl(false) {
		if d := p.decl(); d != nil {
			return d
		}
		return nil
	}
	return p.expr()
}

// labeledStmt parses label: loop.
func (p *Parser) labeledStmt() *LabeledStmt {
	start := p.pos()
	s := &LabeledStmt{Label: p.name()}
	p.next() // :
	s.Stmt = p.stmt()
	s.rng = p.rangeFrom(start)
	return s
}

// forInStmt parses: for [case] pattern in seq [where guard] { body }
func (p *Parser) forInStmt() *ForInStmt {
	start := p.pos()
	p.next() // for
	s := &ForInStmt{}
	if p.gotKeyword("case") {
		s.Case = true
		s.Pattern = p.matchingPattern()
	} else {
		s.Pattern = p.bindingPattern("for")
	}
	p.wantKeyword("in")
	s.Seq = p.condExpr()
	if p.gotKeyword("where") {
		s.Where = p.condExpr()
	}
	s.Body = p.codeBlock()
	s.rng = p.rangeFrom(start)
	return s
}

func (p *Parser) whileStmt() *WhileStmt {
	start := p.pos()
	p.next()
	s := &WhileStmt{}
	s.Conds = p.conditionList()
	s.Body = p.codeBlock()
	s.rng = p.rangeFrom(start)
	return s
}

func (p *Parser) repeatWhileStmt() *RepeatWhileStmt {
	start := p.pos()
	p.next()
	s := &RepeatWhileStmt{}
	s.Body = p.codeBlock()
	if p.wantKeyword("while") {
		s.Cond = p.expr()
	}
	s.rng = p.rangeFrom(start)
	return s
}

// ifStmt parses: if conds { then } [else if ... | else { ... }]
func (p *Parser) ifStmt() *IfStmt {
	start := p.pos()
	p.next() // if
	s := &IfStmt{}
	s.Conds = p.conditionList()
	s.Then = p.codeBlock()
	if p.gotKeyword("else") {
		if p.tok().IsKeyword("if") {
			s.ElseIf = p.ifStmt()
		} else {
			s.Else = p.codeBlock()
		}
	}
	s.rng = p.rangeFrom(start)
	return s
}

func (p *Parser) guardStmt() *GuardStmt {
	start := p.pos()
	p.next()
	s := &GuardStmt{}
	s.Conds = p.conditionList()
	p.wantKeyword("else")
	s.Body = p.codeBlock()
	s.rng = p.rangeFrom(start)
	return s
}

// switchStmt parses: switch subject { case ...: ... default: ... }
func (p *Parser) switchStmt() *SwitchStmt {
	start := p.pos()
	p.next()
	s := &SwitchStmt{}
	s.Subject = p.condExpr()
	if p.want(LeftBrace) {
		restore := p.resetContext()
		for !p.tok().Is(RightBrace) && !p.atEOF() {
			if p.atCaseLabel() {
				s.Cases = append(s.Cases, p.switchCase())
				continue
			}
			p.errorf("Expected '%s'.", "case")
			p.next()
			for t := p.tok(); !p.atCaseLabel() && !t.Is(RightBrace) && t.Kind != _EOF; t = p.tok() {
				p.next()
			}
		}
		restore()
		p.want(RightBrace)
	}
	s.rng = p.rangeFrom(start)
	return s
}

// atCaseLabel reports whether a case or default label starts at the cursor.
func (p *Parser) atCaseLabel() bool {
	t := p.tok()
	if t.Is(At) && p.peek(1).Text == "unknown" {
		return true
	}
	return t.IsKeyword("case") || t.IsKeyword("default")
}

func (p *Parser) switchCase() *SwitchCase {
	start := p.pos()
	sc := &SwitchCase{}
	sc.Attributes = p.attributes()
	if p.gotKeyword("default") {
		sc.Default = true
	} else if p.wantKeyword("case") {
		for {
			is := p.pos()
			item := &CaseItem{Pattern: p.matchingPattern()}
			if p.gotKeyword("where") {
				item.Where = p.expr()
			}
			item.rng = p.rangeFrom(is)
			sc.Items = append(sc.Items, item)
			if !p.got(Comma) {
				break
			}
		}
	}
	p.want(Colon)
	sc.Body = p.stmtList(func(t ptoken) bool {
		return t.Is(RightBrace) || p.atCaseLabel()
	})
	sc.rng = p.rangeFrom(start)
	return sc
}

// jumpLabel parses the optional label of break and continue.
func (p *Parser) jumpLabel() *Name {
	if t := p.tok(); !t.line && isName(t) {
		return p.name()
	}
	return nil
}

func (p *Parser) breakStmt() *BreakStmt {
	start := p.pos()
	p.next()
	s := &BreakStmt{Label: p.jumpLabel()}
	s.rng = p.rangeFrom(start)
	return s
}

func (p *Parser) continueStmt() *ContinueStmt {
	start := p.pos()
	p.next()
	s := &ContinueStmt{Label: p.jumpLabel()}
	s.rng = p.rangeFrom(start)
	return s
}

// returnStmt parses return [result]. The result must start on the same
// line.
func (p *Parser) returnStmt() *ReturnStmt {
	start := p.pos()
	p.next()
	s := &ReturnStmt{}
	if t := p.tok(); !t.line && canStartStmt(t) && !t.IsKeyword("case") && !t.IsKeyword("default") {
		s.Result = p.expr()
	}
	s.rng = p.rangeFrom(start)
	return s
}

func (p *Parser) throwStmt() *ThrowStmt {
	start := p.pos()
	p.next()
	s := &ThrowStmt{X: p.expr()}
	s.rng = p.rangeFrom(start)
	return s
}

func (p *Parser) deferStmt() *DeferStmt {
	start := p.pos()
	p.next()
	s := &DeferStmt{Body: p.codeBlock()}
	s.rng = p.rangeFrom(start)
	return s
}

// doStmt parses: do { body } catch [pattern] [where guard] { ... } ...
func (p *Parser) doStmt() *DoStmt {
	start := p.pos()
	p.next()
	s := &DoStmt{Body: p.codeBlock()}
	for p.tok().IsKeyword("catch") {
		cs := p.pos()
		p.next()
		c := &CatchClause{}
		if t := p.tok(); !t.Is(LeftBrace) && !t.IsKeyword("where") {
			c.Pattern = p.matchingPattern()
		}
		if p.gotKeyword("where") {
			c.Where = p.condExpr()
		}
		c.Body = p.codeBlock()
		c.rng = p.rangeFrom(cs)
		s.Catches = append(s.Catches, c)
	}
	s.rng = p.rangeFrom(start)
	return s
}

// ----------------------------------------------------------------------------
// Conditions

// conditionList parses the comma-separated conditions of if, guard and
// while. A '{' after a condition opens the body, not a trailing closure.
func (p *Parser) conditionList() []*Condition {
	old := p.noTrailingClosure
	p.noTrailingClosure = true
	defer func() { p.noTrailingClosure = old }()

	var list []*Condition
	for {
		list = append(list, p.condition())
		if !p.got(Comma) {
			return list
		}
	}
}

func (p *Parser) condition() *Condition {
	start := p.pos()
	c := &Condition{}
	switch t := p.tok(); {
	case t.IsKeyword("let"), t.IsKeyword("var"):
		c.Kind, c.Binding = BindingCond, t.Text
		p.next()
		c.Pattern = p.bindingPattern(t.Text)
		if p.got(Equal) {
			c.Init = p.expr()
		}
	case t.IsKeyword("case"):
		c.Kind = CaseCond
		p.next()
		c.Pattern = p.matchingPattern()
		if p.want(Equal) {
			c.Init = p.expr()
		}
	case t.Is(Pound) && !p.peek(1).space && (p.peek(1).Text == "available" || p.peek(1).Text == "unavailable"):
		c.Kind = AvailabilityCond
		p.next()
		p.next()
		if open := p.tok(); open.Is(LeftParen) {
			p.next()
			if p.skipBalanced() {
				c.Args = p.text(open.idx+1, p.toks[p.c.i-1].idx)
			} else {
				p.errorf("Expected ')'.")
			}
		}
	default:
		c.Kind = ExprCond
		c.Expr = p.expr()
	}
	c.rng = p.rangeFrom(start)
	return c
}

// condExpr parses an expression that is followed by a '{' body.
func (p *Parser) condExpr() Expr {
	old := p.noTrailingClosure
	p.noTrailingClosure = true
	x := p.expr()
	p.noTrailingClosure = old
	return x
}

// ----------------------------------------------------------------------------
// Compiler control

func (p *Parser) atCompilerControl() bool {
	n := p.peek(1)
	return p.tok().Is(Pound) && !n.space && compilerDirectives[n.Text]
}

// compilerControl parses a #if/#elseif/#else/#endif line or
// #sourceLocation(...). Conditions are kept as raw text.
func (p *Parser) compilerControl() *CompilerControlStmt {
	start := p.pos()
	p.next() // #
	s := &CompilerControlStmt{Directive: p.tok().Text}
	p.next()

	switch s.Directive {
	case "if", "elseif":
		from := p.tok().idx
		to := from
		for t := p.tok(); !t.line && t.Kind != _EOF; t = p.tok() {
			to = t.idx + 1
			p.next()
		}
		s.Text = strings.TrimSpace(p.text(from, to))
		if s.Text == "" {
			p.errorf("Expected expression.")
		}
	case "sourceLocation":
		if open := p.tok(); open.Is(LeftParen) && !open.space {
			p.next()
			if p.skipBalanced() {
				s.Text = p.text(open.idx+1, p.toks[p.c.i-1].idx)
			} else {
				p.errorf("Expected ')'.")
			}
		} else {
			p.errorf("Expected '('.")
		}
	}
	s.rng = p.rangeFrom(start)
	return s
}

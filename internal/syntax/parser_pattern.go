package syntax

// bindingPattern parses the pattern after let, var, for or a ',' in a
// pattern list. Names in it are bound rather than matched.
func (p *Parser) bindingPattern(kw string) Pattern {
	old := p.inBinding
	p.inBinding = true
	defer func() { p.inBinding = old }()

	if t := p.tok(); !isName(t) && !t.IsKeyword("_") && !t.Is(LeftParen) && !t.IsKeyword("let") && !t.IsKeyword("var") {
		p.errorf("Expected identifier after '%s'.", kw)
		x := &BadPattern{}
		x.rng = MakeRange(p.pos(), p.pos())
		return x
	}
	return p.pattern(false)
}

// matchingPattern parses a pattern of a case label, case condition or
// catch clause.
func (p *Parser) matchingPattern() Pattern {
	old := p.noTrailingClosure
	p.noTrailingClosure = true
	defer func() { p.noTrailingClosure = old }()
	return p.pattern(true)
}

// pattern parses a pattern. matching selects the grammar of case labels,
// which admits expressions, is and as, but no type annotations.
func (p *Parser) pattern(matching bool) Pattern {
	start := p.pos()
	var x Pattern

	switch t := p.tok(); {
	case t.IsKeyword("let"), t.IsKeyword("var"):
		if p.inBinding {
			p.errorf("'%s' cannot appear nested inside another 'var' or 'let' pattern.", t.Text)
		}
		p.next()
		old := p.inBinding
		p.inBinding = true
		b := &BindingPattern{Kind: t.Text, Pattern: p.pattern(matching)}
		p.inBinding = old
		b.rng = p.rangeFrom(start)
		return b

	case t.IsKeyword("_"):
		p.next()
		w := &WildcardPattern{}
		w.rng = t.Range
		x = w

	case t.Is(LeftParen):
		x = p.tuplePattern(matching)

	case matching && t.IsKeyword("is"):
		p.next()
		is := &IsPattern{Type: p.type_()}
		is.rng = p.rangeFrom(start)
		return is

	case matching:
		if x = p.enumCasePattern(); x != nil {
			break
		}
		if p.inBinding && isName(t) {
			x = p.identPattern()
			break
		}
		x = p.exprPattern()

	case isName(t):
		x = p.identPattern()

	default:
		p.errorf("Expected pattern.")
		b := &BadPattern{}
		b.rng = MakeRange(start, start)
		return b
	}

	if !matching {
		if p.got(Colon) {
			ty := p.type_()
			switch x := x.(type) {
			case *IdentPattern:
				x.Type = ty
			case *WildcardPattern:
				x.Type = ty
			case *TuplePattern:
				x.Type = ty
			}
			setRange(x, p.rangeFrom(start))
		}
		return x
	}

	if t := p.tok(); t.Is(Question) && !t.space {
		p.next()
		o := &OptionalPattern{Pattern: x}
		o.rng = p.rangeFrom(start)
		x = o
	}
	for p.tok().IsKeyword("as") {
		p.next()
		a := &AsPattern{Pattern: x, Type: p.type_()}
		a.rng = p.rangeFrom(start)
		x = a
	}
	return x
}

func (p *Parser) identPattern() *IdentPattern {
	t := p.tok()
	p.next()
	x := &IdentPattern{Name: nameOf(t)}
	x.rng = t.Range
	return x
}

// exprPattern parses an expression matched against the subject. An '='
// ends it, as in if case 1 = x.
func (p *Parser) exprPattern() Pattern {
	start := p.pos()
	old := p.noAssign
	p.noAssign = true
	x := &ExprPattern{X: p.expr()}
	p.noAssign = old
	x.rng = p.rangeFrom(start)
	return x
}

// tuplePattern parses (p1, label: p2).
func (p *Parser) tuplePattern(matching bool) *TuplePattern {
	start := p.pos()
	p.next() // (
	x := &TuplePattern{}
	for !p.tok().Is(RightParen) && !p.atEOF() {
		es := p.pos()
		e := &TuplePatternElem{}
		if isLabel(p.tok()) && p.peek(1).Is(Colon) {
			e.Label = p.label()
			p.next()
		}
		e.Pattern = p.pattern(matching)
		e.rng = p.rangeFrom(es)
		x.Elems = append(x.Elems, e)
		if !p.got(Comma) {
			break
		}
	}
	p.want(RightParen)
	x.rng = p.rangeFrom(start)
	return x
}

// enumCasePattern parses .name, Type.name or A.B.name with an optional
// tuple of sub-patterns. It backs out and returns nil unless the result
// is followed by a token that can end a pattern.
func (p *Parser) enumCasePattern() Pattern {
	m := p.mark()
	start := p.pos()
	x := &EnumCasePattern{}

	switch t := p.tok(); {
	case t.Is(Period):
		p.next()
		if x.Name = p.label(); x.Name == nil {
			p.reset(m)
			return nil
		}
	case isName(t):
		var names []*Name
		for {
			n := p.tok()
			if len(names) > 0 && !isLabel(n) || len(names) == 0 && !isName(n) {
				p.reset(m)
				return nil
			}
			p.next()
			names = append(names, nameOf(n))
			if dot := p.tok(); !dot.Is(Period) || dot.space {
				break
			}
			p.next()
		}
		if len(names) < 2 {
			p.reset(m)
			return nil
		}
		typ := &IdentType{}
		for _, n := range names[:len(names)-1] {
			tn := &TypeName{Name: n}
			tn.rng = n.rng
			typ.Elems = append(typ.Elems, tn)
		}
		typ.rng = MakeRange(names[0].rng.Start, names[len(names)-2].rng.End)
		x.Type = typ
		x.Name = names[len(names)-1]
	default:
		return nil
	}

	if t := p.tok(); t.Is(LeftParen) && !t.space {
		x.Tuple = p.tuplePattern(true)
	}
	if p.failedSince(m) || !endsPattern(p.tok()) {
		p.reset(m)
		return nil
	}
	x.rng = p.rangeFrom(start)
	return x
}

// endsPattern reports whether t can follow a pattern in a case label,
// condition or for-in clause.
func endsPattern(t ptoken) bool {
	switch {
	case t.Kind == _EOF, t.IsKeyword("where"), t.IsKeyword("in"), t.IsKeyword("as"):
		return true
	case t.Kind != Punctuator:
		return false
	}
	switch t.Punct {
	case Colon, Comma, Equal, RightParen, Question, LeftBrace:
		return true
	}
	return false
}

// setRange widens an annotated pattern to cover its type.
func setRange(x Pattern, r Range) {
	switch x := x.(type) {
	case *IdentPattern:
		x.rng = r
	case *WildcardPattern:
		x.rng = r
	case *TuplePattern:
		x.rng = r
	}
}

package syntax

// type_ parses a type.
func (p *Parser) type_() Type {
	start := p.pos()
	switch t := p.tok(); {
	case t.Is(At) && isLabel(p.peek(1)):
		x := &AttributedType{Attributes: p.attributes()}
		x.Base = p.type_()
		x.rng = p.rangeFrom(start)
		return x
	case t.IsKeyword("inout"):
		p.next()
		x := &InOutType{Base: p.type_()}
		x.rng = p.rangeFrom(start)
		return x
	}

	x := p.postfixType(start, p.primaryType())
	if !p.tok().Is(Amp) {
		return x
	}
	c := &CompositionType{Types: []Type{x}}
	for p.got(Amp) {
		c.Types = append(c.Types, p.postfixType(p.pos(), p.primaryType()))
	}
	c.rng = p.rangeFrom(start)
	return c
}

func (p *Parser) primaryType() Type {
	start := p.pos()
	switch t := p.tok(); {
	case t.Is(LeftParen):
		tt := p.tupleType()
		if k := p.tok(); !k.IsKeyword("throws") && !k.IsKeyword("rethrows") && !k.Is(Arrow) {
			return tt
		}
		f := &FuncType{Params: tt.Elems}
		f.Throws = p.throwsClause()
		if p.want(Arrow) {
			f.Result = p.type_()
		}
		f.rng = p.rangeFrom(start)
		return f

	case t.Is(LeftBracket):
		p.next()
		key := p.type_()
		if p.got(Colon) {
			d := &DictType{Key: key, Value: p.type_()}
			p.want(RightBracket)
			d.rng = p.rangeFrom(start)
			return d
		}
		a := &ArrayType{Elem: key}
		p.want(RightBracket)
		a.rng = p.rangeFrom(start)
		return a

	case isName(t), t.IsKeyword("Self"), t.IsKeyword("Any"):
		return p.identType()
	}

	p.errorf("Expected type.")
	x := &BadType{}
	x.rng = MakeRange(start, start)
	return x
}

// identType parses A<T>.B.C.
func (p *Parser) identType() *IdentType {
	start := p.pos()
	x := &IdentType{}
	for {
		t := p.tok()
		p.next()
		tn := &TypeName{Name: nameOf(t)}
		if lt := p.tok(); lt.IsOperator("<") && !lt.space {
			tn.Args = p.typeArgs()
		}
		tn.rng = p.rangeFrom(t.Range.Start)
		x.Elems = append(x.Elems, tn)

		dot, n := p.tok(), p.peek(1)
		if !dot.Is(Period) || dot.space || n.space || !isName(n) || n.Text == "Type" || n.Text == "Protocol" {
			break
		}
		p.next()
	}
	x.rng = p.rangeFrom(start)
	return x
}

// typeArgs parses <T, U>. The cursor is on the '<'.
func (p *Parser) typeArgs() []Type {
	p.next() // <
	var list []Type
	for {
		list = append(list, p.type_())
		if !p.got(Comma) {
			break
		}
	}
	if !p.closeAngle() {
		p.errorf("Expected '>'.")
	}
	return list
}

// postfixType applies ?, ! and .Type/.Protocol suffixes.
func (p *Parser) postfixType(start Pos, x Type) Type {
	if _, bad := x.(*BadType); bad {
		return x
	}
	for {
		t := p.tok()
		switch {
		case t.Is(Question) && !t.space:
			p.next()
			o := &OptionalType{Base: x}
			o.rng = p.rangeFrom(start)
			x = o
		case t.Is(Exclaim) && !t.space:
			p.next()
			o := &IUOType{Base: x}
			o.rng = p.rangeFrom(start)
			x = o
		case t.Is(Period) && !t.space && (p.peek(1).Text == "Type" || p.peek(1).Text == "Protocol"):
			p.next()
			m := &MetatypeType{Base: x, Kind: p.tok().Text}
			p.next()
			m.rng = p.rangeFrom(start)
			x = m
		default:
			return x
		}
	}
}

// tupleType parses ([attrs] [label [local]:] T [...], ...).
func (p *Parser) tupleType() *TupleType {
	start := p.pos()
	x := &TupleType{}
	if !p.want(LeftParen) {
		x.rng = MakeRange(start, start)
		return x
	}
	defer p.resetContext()()
	for !p.tok().Is(RightParen) && !p.atEOF() {
		es := p.pos()
		e := &TupleTypeElem{}
		e.Attributes = p.attributes()
		switch t, n := p.tok(), p.peek(1); {
		case isLabel(t) && n.Is(Colon):
			e.Label = p.label()
			p.next()
		case isLabel(t) && isLabel(n) && p.peek(2).Is(Colon):
			e.Label = p.label()
			e.Local = p.label()
			p.next()
		}
		e.Type = p.type_()
		if p.isOp("...") {
			p.next()
			e.Variadic = true
		}
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

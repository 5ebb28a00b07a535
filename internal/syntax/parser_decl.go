package syntax

import "fmt"

// declKeywords are the keywords that introduce a declaration.
var declKeywords = map[string]bool{
	"import":          true,
	"let":             true,
	"var":             true,
	"typealias":       true,
	"func":            true,
	"enum":            true,
	"struct":          true,
	"class":           true,
	"protocol":        true,
	"extension":       true,
	"init":            true,
	"deinit":          true,
	"subscript":       true,
	"operator":        true,
	"precedencegroup": true,
	"associatedtype":  true,
}

// modifierWords are the words accepted in a declaration's modifier list.
var modifierWords = map[string]bool{
	"public": true, "private": true, "fileprivate": true, "internal": true, "open": true,
	"static": true, "class": true, "final": true, "override": true, "required": true,
	"convenience": true, "dynamic": true, "lazy": true, "mutating": true,
	"nonmutating": true, "optional": true, "weak": true, "unowned": true,
	"indirect": true, "prefix": true, "postfix": true, "infix": true,
}

func modifierSet(groups ...[]string) map[string]bool {
	m := make(map[string]bool)
	for _, g := range groups {
		for _, name := range g {
			m[name] = true
		}
	}
	return m
}

var accessModifiers = []string{"public", "private", "fileprivate", "internal", "open"}

// legalModifiers lists, per declaration keyword, the modifiers it accepts.
var legalModifiers = map[string]map[string]bool{
	"import":          modifierSet(),
	"let":             modifierSet(accessModifiers, []string{"static", "class", "final", "override", "weak", "unowned", "dynamic", "optional"}),
	"var":             modifierSet(accessModifiers, []string{"static", "class", "final", "override", "weak", "unowned", "dynamic", "optional", "lazy"}),
	"typealias":       modifierSet(accessModifiers),
	"func":            modifierSet(accessModifiers, []string{"static", "class", "final", "override", "mutating", "nonmutating", "dynamic", "optional", "prefix", "postfix", "infix"}),
	"enum":            modifierSet(accessModifiers, []string{"indirect"}),
	"case":            modifierSet([]string{"indirect"}),
	"struct":          modifierSet(accessModifiers),
	"class":           modifierSet(accessModifiers, []string{"final"}),
	"protocol":        modifierSet(accessModifiers),
	"extension":       modifierSet(accessModifiers),
	"init":            modifierSet(accessModifiers, []string{"convenience", "required", "override", "dynamic", "optional"}),
	"deinit":          modifierSet(),
	"subscript":       modifierSet(accessModifiers, []string{"static", "class", "final", "override", "dynamic", "optional"}),
	"operator":        modifierSet([]string{"prefix", "postfix", "infix"}),
	"precedencegroup": modifierSet(),
	"associatedtype":  modifierSet(accessModifiers),
}

// importKinds are the keywords allowed between import and the path.
var importKinds = map[string]bool{
	"typealias": true, "struct": true, "class": true, "enum": true,
	"protocol": true, "let": true, "var": true, "func": true,
}

// accessorKinds are the accessor keywords of a variable or subscript.
var accessorKinds = map[string]bool{
	"get": true, "set": true, "willSet": true, "didSet": true,
}

// ----------------------------------------------------------------------------
// Lookahead

// skipAttributesAt returns the index of the first token after any
// attributes starting at token index i.
func (p *Parser) skipAttributesAt(i int) int {
	for p.tokAt(i).Is(At) && isLabel(p.tokAt(i+1)) {
		i += 2
		if t := p.tokAt(i); t.Is(LeftParen) && !t.space {
			depth := 0
			for ; p.toks[i].Kind != _EOF; i++ {
				if p.toks[i].Is(LeftParen) {
					depth++
				} else if p.toks[i].Is(RightParen) {
					depth--
					if depth == 0 {
						i++
						break
					}
				}
			}
		}
	}
	return i
}

// isModifierAt reports whether the token at index i is used as a modifier.
// class is a modifier only when another declaration word follows it.
func (p *Parser) isModifierAt(i int) bool {
	t := p.tokAt(i)
	if t.Kind != Keyword || !modifierWords[t.Text] {
		return false
	}
	if t.Text == "class" {
		n := p.tokAt(i + 1)
		return n.Kind == Keyword && (declKeywords[n.Text] || modifierWords[n.Text])
	}
	return true
}

// atDecl reports whether a declaration starts at the cursor. Within type
// bodies (member), case also introduces a declaration.
func (p *Parser) atDecl(member bool) bool {
	if p.tok().Is(At) {
		return true
	}
	i := p.c.i
	for p.isModifierAt(i) {
		i++
		// private(set), unowned(safe)
		if t := p.tokAt(i); t.Is(LeftParen) && !t.space && p.tokAt(i+2).Is(RightParen) {
			i += 3
		}
	}
	t := p.tokAt(i)
	if t.Kind != Keyword {
		return false
	}
	return declKeywords[t.Text] || member && t.Text == "case" ||
		t.Text == "case" && i > p.c.i // indirect case
}

// ----------------------------------------------------------------------------
// Attributes and modifiers

func (p *Parser) attributes() []*Attribute {
	var list []*Attribute
	for p.tok().Is(At) && isLabel(p.peek(1)) {
		if a := p.attribute(); a != nil {
			list = append(list, a)
		}
	}
	return list
}

// attribute parses @name or @name(balanced tokens).
func (p *Parser) attribute() *Attribute {
	start := p.pos()
	p.next() // @
	a := &Attribute{Name: p.tok().Text}
	p.next()

	if open := p.tok(); open.Is(LeftParen) && !open.space {
		m := p.mark()
		p.next()
		if !p.skipBalanced() {
			p.reset(m)
			p.errorAt(p.rangeFrom(start), "Unbalanced tokens in attribute argument clause.")
			return nil
		}
		a.HasArgs = true
		a.Args = p.text(open.idx+1, p.toks[p.c.i-1].idx)
	}
	a.rng = p.rangeFrom(start)
	return a
}

// skipBalanced consumes tokens up to and including the closer matching an
// already consumed '('. It reports false if the brackets do not balance.
func (p *Parser) skipBalanced() bool {
	stack := []Punct{RightParen}
	for !p.atEOF() {
		t := p.tok()
		p.next()
		if t.Kind != Punctuator {
			continue
		}
		switch t.Punct {
		case LeftParen:
			stack = append(stack, RightParen)
		case LeftBracket:
			stack = append(stack, RightBracket)
		case LeftBrace:
			stack = append(stack, RightBrace)
		case RightParen, RightBracket, RightBrace:
			if stack[len(stack)-1] != t.Punct {
				return false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return true
			}
		}
	}
	return false
}

func (p *Parser) modifiers() []*Modifier {
	var list []*Modifier
	for p.isModifierAt(p.c.i) && p.c.sub == 0 {
		t := p.tok()
		p.next()
		m := &Modifier{Name: t.Text}
		if lp := p.tok(); lp.Is(LeftParen) && !lp.space && isLabel(p.peek(1)) && p.peek(2).Is(RightParen) {
			p.next()
			m.Detail = p.tok().Text
			p.next()
			p.next()
		}
		m.rng = p.rangeFrom(t.Range.Start)
		list = append(list, m)
	}
	return list
}

// checkModifiers reports modifiers the declaration kind does not accept.
// They stay attached to the declaration.
func (p *Parser) checkModifiers(mods []*Modifier, kind string) {
	legal := legalModifiers[kind]
	for _, m := range mods {
		if !legal[m.Name] {
			p.errorAt(m.rng, fmt.Sprintf("'%s' modifier cannot be applied to this declaration.", m.Name))
		}
	}
}

// ----------------------------------------------------------------------------
// Declarations

// decl parses a declaration, including its attributes and modifiers.
func (p *Parser) decl() Decl {
	start := p.pos()
	attrs := p.attributes()
	mods := p.modifiers()

	t := p.tok()
	if t.Kind == Keyword {
		switch t.Text {
		case "import":
			return p.importDecl(start, attrs, mods)
		case "let":
			return p.constantDecl(start, attrs, mods)
		case "var":
			return p.varDecl(start, attrs, mods)
		case "typealias":
			return p.typeAliasDecl(start, attrs, mods)
		case "func":
			return p.funcDecl(start, attrs, mods)
		case "enum":
			return p.enumDecl(start, attrs, mods)
		case "case":
			return p.enumCaseDecl(start, attrs, mods)
		case "struct":
			return p.structDecl(start, attrs, mods)
		case "class":
			return p.classDecl(start, attrs, mods)
		case "protocol":
			return p.protocolDecl(start, attrs, mods)
		case "extension":
			return p.extensionDecl(start, attrs, mods)
		case "init":
			return p.initDecl(start, attrs, mods)
		case "deinit":
			return p.deinitDecl(start, attrs, mods)
		case "subscript":
			return p.subscriptDecl(start, attrs, mods)
		case "operator":
			return p.operatorDecl(start, attrs, mods)
		case "precedencegroup":
			return p.precedenceGroupDecl(start, attrs, mods)
		case "associatedtype":
			return p.associatedTypeDecl(start, attrs, mods)
		}
	}
	p.errorf("Expected declaration.")
	return nil
}

// importDecl parses: import [kind] a.b.c
func (p *Parser) importDecl(start Pos, attrs []*Attribute, mods []*Modifier) *ImportDecl {
	d := &ImportDecl{}
	d.Attributes, d.Modifiers = attrs, mods
	p.checkModifiers(mods, "import")
	p.next() // import

	if t := p.tok(); t.Kind == Keyword && importKinds[t.Text] {
		d.Kind = t.Text
		p.next()
	}

	first := p.name()
	switch {
	case first != nil:
		d.Path = append(d.Path, first)
	case d.Kind != "":
		p.errorf("Missing module name in import declaration.")
	default:
		p.errorf("Expected identifier after 'import'.")
	}

	for first != nil && p.tok().Is(Period) && !p.tok().line {
		dot := p.tok()
		p.next()
		n := p.name()
		if n == nil && p.tok().Kind == Operator && d.Kind == "func" {
			n = nameOf(p.tok())
			p.next()
		}
		if n == nil {
			p.errorAt(dot.Range, "Postfix '.' is reserved.")
			break
		}
		d.Path = append(d.Path, n)
	}

	d.rng = p.rangeFrom(start)
	return d
}

// constantDecl parses: let p1 = e1, p2 = e2
func (p *Parser) constantDecl(start Pos, attrs []*Attribute, mods []*Modifier) *ConstantDecl {
	d := &ConstantDecl{}
	d.Attributes, d.Modifiers = attrs, mods
	p.checkModifiers(mods, "let")
	p.next() // let
	d.Inits = p.patternInits("let")
	d.rng = p.rangeFrom(start)
	return d
}

// varDecl parses stored, computed and observed variables.
func (p *Parser) varDecl(start Pos, attrs []*Attribute, mods []*Modifier) *VarDecl {
	d := &VarDecl{}
	d.Attributes, d.Modifiers = attrs, mods
	p.checkModifiers(mods, "var")
	p.next() // var
	d.Inits = p.patternInits("var")
	if len(d.Inits) == 1 && p.tok().Is(LeftBrace) {
		d.Getter, d.Accessors = p.accessorBlock()
	}
	d.rng = p.rangeFrom(start)
	return d
}

func (p *Parser) patternInits(kw string) []*PatternInit {
	var list []*PatternInit
	for {
		start := p.pos()
		pi := &PatternInit{Pattern: p.bindingPattern(kw)}
		if p.got(Equal) {
			pi.Init = p.expr()
		}
		pi.rng = p.rangeFrom(start)
		list = append(list, pi)
		if !p.got(Comma) {
			return list
		}
		kw = ","
	}
}

// atAccessorBlock reports whether the '{' at the cursor opens a list of
// get/set/willSet/didSet accessors rather than a getter body.
func (p *Parser) atAccessorBlock() bool {
	if !p.tok().Is(LeftBrace) {
		return false
	}
	i := p.skipAttributesAt(p.c.i + 1)
	for p.isModifierAt(i) {
		i++
	}
	t, n := p.tokAt(i), p.tokAt(i+1)
	if t.Kind != Keyword || !accessorKinds[t.Text] {
		return false
	}
	return n.line || n.Is(LeftBrace) || n.Is(LeftParen) || n.Is(RightBrace) ||
		n.Kind == Keyword && accessorKinds[n.Text] || n.Is(At) || p.isModifierAt(i+1)
}

// accessorBlock parses { get set }, { get { } set(v) { } } or a getter
// body { stmts }.
func (p *Parser) accessorBlock() (*CodeBlock, []*Accessor) {
	if !p.atAccessorBlock() {
		return p.codeBlock(), nil
	}
	p.next() // {
	var list []*Accessor
	for !p.tok().Is(RightBrace) && !p.atEOF() {
		for p.got(Semicolon) {
		}
		if p.tok().Is(RightBrace) {
			break
		}
		a := p.accessor()
		if a == nil {
			p.unexpected()
			p.next()
			continue
		}
		list = append(list, a)
	}
	p.want(RightBrace)
	return nil, list
}

func (p *Parser) accessor() *Accessor {
	m := p.mark()
	start := p.pos()
	a := &Accessor{}
	a.Attributes = p.attributes()
	a.Modifiers = p.modifiers()
	t := p.tok()
	if t.Kind != Keyword || !accessorKinds[t.Text] {
		p.reset(m)
		return nil
	}
	a.Kind = t.Text
	p.next()
	if p.got(LeftParen) {
		a.Param = p.wantName("(")
		p.want(RightParen)
	}
	if p.tok().Is(LeftBrace) {
		a.Body = p.codeBlock()
	}
	a.rng = p.rangeFrom(start)
	return a
}

// typeAliasDecl parses: typealias Name<T> = Type
func (p *Parser) typeAliasDecl(start Pos, attrs []*Attribute, mods []*Modifier) *TypeAliasDecl {
	d := &TypeAliasDecl{}
	d.Attributes, d.Modifiers = attrs, mods
	p.checkModifiers(mods, "typealias")
	p.next()
	d.Name = p.wantName("typealias")
	if p.isOp("<") {
		d.Generics = p.genericParams()
	}
	if p.want(Equal) {
		d.Type = p.type_()
	}
	d.rng = p.rangeFrom(start)
	return d
}

// funcDecl parses: func name<T>(params) throws -> Result where ... { body }
func (p *Parser) funcDecl(start Pos, attrs []*Attribute, mods []*Modifier) *FuncDecl {
	d := &FuncDecl{}
	d.Attributes, d.Modifiers = attrs, mods
	p.checkModifiers(mods, "func")
	p.next() // func

	switch t := p.tok(); {
	case isName(t):
		d.Name = p.name()
	case t.Kind == Operator, t.Is(Exclaim), t.Is(Amp), t.Is(Question):
		d.Name = nameOf(t)
		p.next()
	default:
		d.Name = p.wantName("func")
	}

	if p.isOp("<") {
		d.Generics = p.genericParams()
	}
	d.Params = p.paramClause(true)
	d.Throws = p.throwsClause()
	if p.got(Arrow) {
		d.ResultAttrs = p.attributes()
		d.Result = p.type_()
	}
	d.Where = p.optWhere()
	if p.tok().Is(LeftBrace) {
		d.Body = p.codeBlock()
	}
	d.rng = p.rangeFrom(start)
	return d
}

func (p *Parser) throwsClause() string {
	if t := p.tok(); t.IsKeyword("throws") || t.IsKeyword("rethrows") {
		p.next()
		return t.Text
	}
	return ""
}

// paramClause parses (p1, p2). typed requires a type annotation on each
// parameter.
func (p *Parser) paramClause(typed bool) []*Param {
	if !p.want(LeftParen) {
		return nil
	}
	defer p.resetContext()()
	var list []*Param
	for !p.tok().Is(RightParen) && !p.atEOF() {
		list = append(list, p.param(typed))
		if !p.got(Comma) {
			break
		}
	}
	p.want(RightParen)
	return list
}

// param parses [attrs] [external] local [: Type] [...] [= default].
func (p *Parser) param(typed bool) *Param {
	start := p.pos()
	prm := &Param{}
	prm.Attributes = p.attributes()

	prev := p.toks[max(p.c.i-1, 0)].Text
	first := p.label()
	if first == nil {
		prm.Local = p.wantName(prev)
	} else if second := p.label(); second != nil {
		prm.External, prm.Local = first, second
	} else {
		prm.Local = first
	}

	if p.got(Colon) {
		prm.Type = p.type_()
	} else if typed {
		p.errorf("Expected ':'.")
	}
	if p.isOp("...") {
		p.next()
		prm.Variadic = true
	}
	if p.got(Equal) {
		prm.Default = p.expr()
	}
	prm.rng = p.rangeFrom(start)
	return prm
}

func (p *Parser) enumDecl(start Pos, attrs []*Attribute, mods []*Modifier) *EnumDecl {
	d := &EnumDecl{}
	d.Attributes, d.Modifiers = attrs, mods
	p.checkModifiers(mods, "enum")
	p.next()
	d.Name = p.wantName("enum")
	if p.isOp("<") {
		d.Generics = p.genericParams()
	}
	d.Inherit = p.inheritClause(false)
	d.Where = p.optWhere()
	d.Members = p.memberBlock()
	d.rng = p.rangeFrom(start)
	return d
}

// enumCaseDecl parses: case a, b(Int, label: String), c = 1
func (p *Parser) enumCaseDecl(start Pos, attrs []*Attribute, mods []*Modifier) *EnumCaseDecl {
	d := &EnumCaseDecl{}
	d.Attributes, d.Modifiers = attrs, mods
	p.checkModifiers(mods, "case")
	p.next() // case
	kw := "case"
	for {
		es := p.pos()
		e := &EnumCaseElement{Name: p.wantName(kw)}
		if t := p.tok(); t.Is(LeftParen) && !t.space {
			e.Assoc = p.tupleType()
		}
		if p.got(Equal) {
			e.Raw = p.expr()
		}
		e.rng = p.rangeFrom(es)
		d.Elems = append(d.Elems, e)
		if !p.got(Comma) {
			break
		}
		kw = ","
	}
	d.rng = p.rangeFrom(start)
	return d
}

func (p *Parser) structDecl(start Pos, attrs []*Attribute, mods []*Modifier) *StructDecl {
	d := &StructDecl{}
	d.Attributes, d.Modifiers = attrs, mods
	p.checkModifiers(mods, "struct")
	p.next()
	d.Name = p.wantName("struct")
	if p.isOp("<") {
		d.Generics = p.genericParams()
	}
	d.Inherit = p.inheritClause(false)
	d.Where = p.optWhere()
	d.Members = p.memberBlock()
	d.rng = p.rangeFrom(start)
	return d
}

func (p *Parser) classDecl(start Pos, attrs []*Attribute, mods []*Modifier) *ClassDecl {
	d := &ClassDecl{}
	d.Attributes, d.Modifiers = attrs, mods
	p.checkModifiers(mods, "class")
	p.next()
	d.Name = p.wantName("class")
	if p.isOp("<") {
		d.Generics = p.genericParams()
	}
	d.Inherit = p.inheritClause(false)
	d.Where = p.optWhere()
	d.Members = p.memberBlock()
	d.rng = p.rangeFrom(start)
	return d
}

func (p *Parser) protocolDecl(start Pos, attrs []*Attribute, mods []*Modifier) *ProtocolDecl {
	d := &ProtocolDecl{}
	d.Attributes, d.Modifiers = attrs, mods
	p.checkModifiers(mods, "protocol")
	p.next()
	d.Name = p.wantName("protocol")
	d.Inherit = p.inheritClause(true)
	d.Where = p.optWhere()
	d.Members = p.memberBlock()
	d.rng = p.rangeFrom(start)
	return d
}

func (p *Parser) extensionDecl(start Pos, attrs []*Attribute, mods []*Modifier) *ExtensionDecl {
	d := &ExtensionDecl{}
	d.Attributes, d.Modifiers = attrs, mods
	p.checkModifiers(mods, "extension")
	p.next()
	d.Type = p.type_()
	d.Inherit = p.inheritClause(false)
	d.Where = p.optWhere()
	d.Members = p.memberBlock()
	d.rng = p.rangeFrom(start)
	return d
}

// inheritClause parses : [class,] A, B. The class requirement is legal only
// for protocols.
func (p *Parser) inheritClause(protocol bool) *InheritClause {
	if !p.tok().Is(Colon) {
		return nil
	}
	start := p.pos()
	p.next()
	c := &InheritClause{}
	for {
		if t := p.tok(); t.IsKeyword("class") {
			if !protocol {
				p.errorAt(t.Range, "'class' requirement only applies to protocol type inheritance clauses.")
			}
			c.ClassRequirement = true
			p.next()
		} else {
			c.Types = append(c.Types, p.type_())
		}
		if !p.got(Comma) {
			break
		}
	}
	c.rng = p.rangeFrom(start)
	return c
}

// memberBlock parses the { members } body of a type or extension.
func (p *Parser) memberBlock() []Stmt {
	if !p.want(LeftBrace) {
		return nil
	}
	defer p.resetContext()()
	var list []Stmt
	for {
		for p.got(Semicolon) {
		}
		if t := p.tok(); t.Is(RightBrace) || t.Kind == _EOF {
			break
		}

		m := p.mark()
		var s Stmt
		switch {
		case p.atCompilerControl():
			s = p.compilerControl()
		case p.atDecl(true):
			s = p.decl()
		default:
			p.errorf("Expected declaration.")
		}
		if p.c == m.c {
			// Skip the rest of the line.
			p.next()
			for t := p.tok(); !t.line && !t.Is(RightBrace) && t.Kind != _EOF; t = p.tok() {
				p.next()
			}
			continue
		}
		if s != nil {
			list = append(list, s)
		}
		p.separator(isRightBrace)
	}
	p.want(RightBrace)
	return list
}

// initDecl parses init, init? and init!.
func (p *Parser) initDecl(start Pos, attrs []*Attribute, mods []*Modifier) *InitDecl {
	d := &InitDecl{}
	d.Attributes, d.Modifiers = attrs, mods
	p.checkModifiers(mods, "init")
	p.next() // init
	if t := p.tok(); (t.Is(Question) || t.Is(Exclaim)) && !t.space {
		d.Failable = t.Text
		p.next()
	}
	if p.isOp("<") {
		d.Generics = p.genericParams()
	}
	d.Params = p.paramClause(true)
	d.Throws = p.throwsClause()
	d.Where = p.optWhere()
	if p.tok().Is(LeftBrace) {
		d.Body = p.codeBlock()
	}
	d.rng = p.rangeFrom(start)
	return d
}

func (p *Parser) deinitDecl(start Pos, attrs []*Attribute, mods []*Modifier) *DeinitDecl {
	d := &DeinitDecl{}
	d.Attributes, d.Modifiers = attrs, mods
	p.checkModifiers(mods, "deinit")
	p.next()
	d.Body = p.codeBlock()
	d.rng = p.rangeFrom(start)
	return d
}

// subscriptDecl parses: subscript(params) -> Result { accessors }
func (p *Parser) subscriptDecl(start Pos, attrs []*Attribute, mods []*Modifier) *SubscriptDecl {
	d := &SubscriptDecl{}
	d.Attributes, d.Modifiers = attrs, mods
	p.checkModifiers(mods, "subscript")
	p.next()
	if p.isOp("<") {
		d.Generics = p.genericParams()
	}
	d.Params = p.paramClause(true)
	if p.want(Arrow) {
		d.ResultAttrs = p.attributes()
		d.Result = p.type_()
	}
	d.Where = p.optWhere()
	if p.tok().Is(LeftBrace) {
		d.Getter, d.Accessors = p.accessorBlock()
	}
	d.rng = p.rangeFrom(start)
	return d
}

// operatorDecl parses: prefix|postfix|infix operator op [: Group]
// An infix declaration is entered into the precedence table.
func (p *Parser) operatorDecl(start Pos, attrs []*Attribute, mods []*Modifier) *OperatorDecl {
	d := &OperatorDecl{}
	d.Attributes, d.Modifiers = attrs, mods
	p.checkModifiers(mods, "operator")
	for _, m := range mods {
		switch m.Name {
		case "prefix", "postfix", "infix":
			d.Fixity = m.Name
		}
	}
	p.next() // operator

	if t := p.tok(); t.Kind == Operator || t.Kind == Punctuator && (t.Punct == Exclaim || t.Punct == Amp || t.Punct == Question || t.Punct == Equal) {
		d.Operator = t.Text
		p.next()
	} else {
		p.errorf("Expected identifier after 'operator'.")
	}

	group := DefaultPrecedence
	if p.got(Colon) {
		d.Group = p.wantName(":")
		group = d.Group.Value
		if p.prec.group(group) == nil {
			p.errorAt(d.Group.rng, fmt.Sprintf("Unknown precedence group '%s'.", group))
		}
	}
	if t := p.tok(); t.Is(LeftBrace) && !t.line {
		// Legacy { associativity left precedence 140 } body.
		p.next()
		p.skipBalancedBraces()
	}
	if d.Fixity == "infix" && d.Operator != "" {
		p.prec.defineOperator(d.Operator, group)
	}
	d.rng = p.rangeFrom(start)
	return d
}

// skipBalancedBraces consumes up to the '}' matching a consumed '{'.
func (p *Parser) skipBalancedBraces() {
	depth := 1
	for !p.atEOF() {
		t := p.tok()
		p.next()
		if t.Is(LeftBrace) {
			depth++
		} else if t.Is(RightBrace) {
			if depth--; depth == 0 {
				return
			}
		}
	}
	p.errorf("Expected '}'.")
}

// precedenceGroupDecl parses precedencegroup Name { attributes } and
// enters the group into the precedence table.
func (p *Parser) precedenceGroupDecl(start Pos, attrs []*Attribute, mods []*Modifier) *PrecedenceGroupDecl {
	d := &PrecedenceGroupDecl{}
	d.Attributes, d.Modifiers = attrs, mods
	p.checkModifiers(mods, "precedencegroup")
	p.next()
	d.Name = p.wantName("precedencegroup")

	if p.want(LeftBrace) {
		for !p.tok().Is(RightBrace) && !p.atEOF() {
			t := p.tok()
			if !isLabel(t) {
				p.unexpected()
				p.next()
				continue
			}
			p.next()
			p.want(Colon)
			switch t.Text {
			case "higherThan":
				d.HigherThan = append(d.HigherThan, p.nameList(t.Text)...)
			case "lowerThan":
				d.LowerThan = append(d.LowerThan, p.nameList(t.Text)...)
			case "associativity":
				v := p.wantName(t.Text)
				if _, err := ParseAssociativity(v.Value); err != nil {
					p.errorAt(v.rng, fmt.Sprintf("Unexpected token '%s'.", v.Value))
				} else {
					d.Associativity = v.Value
				}
			case "assignment":
				switch v := p.tok(); {
				case v.IsKeyword("true"):
					d.Assignment = true
					p.next()
				case v.IsKeyword("false"):
					p.next()
				default:
					p.errorf("Expected expression.")
				}
			default:
				p.errorAt(t.Range, fmt.Sprintf("Unexpected token '%s'.", t.Text))
			}
		}
		p.want(RightBrace)
	}

	g := PrecedenceGroup{Name: d.Name.Value, Assignment: d.Assignment}
	g.Associativity, _ = ParseAssociativity(d.Associativity)
	for _, n := range d.HigherThan {
		g.HigherThan = append(g.HigherThan, n.Value)
	}
	for _, n := range d.LowerThan {
		g.LowerThan = append(g.LowerThan, n.Value)
	}
	for _, n := range append(d.HigherThan[:len(d.HigherThan):len(d.HigherThan)], d.LowerThan...) {
		if p.prec.group(n.Value) == nil {
			p.errorAt(n.rng, fmt.Sprintf("Unknown precedence group '%s'.", n.Value))
		}
	}
	if g.Name != "" {
		p.prec.defineGroup(g)
	}

	d.rng = p.rangeFrom(start)
	return d
}

// nameList parses a, b, c.
func (p *Parser) nameList(kw string) []*Name {
	var list []*Name
	for {
		list = append(list, p.wantName(kw))
		if !p.got(Comma) {
			return list
		}
		kw = ","
	}
}

func (p *Parser) associatedTypeDecl(start Pos, attrs []*Attribute, mods []*Modifier) *AssociatedTypeDecl {
	d := &AssociatedTypeDecl{}
	d.Attributes, d.Modifiers = attrs, mods
	p.checkModifiers(mods, "associatedtype")
	p.next()
	d.Name = p.wantName("associatedtype")
	d.Inherit = p.inheritClause(false)
	if p.got(Equal) {
		d.Default = p.type_()
	}
	d.Where = p.optWhere()
	d.rng = p.rangeFrom(start)
	return d
}

// ----------------------------------------------------------------------------
// Generics

// genericParams parses <T, U: P>.
func (p *Parser) genericParams() *GenericParamClause {
	start := p.pos()
	g := &GenericParamClause{}
	p.next() // <
	kw := "<"
	for {
		ps := p.pos()
		gp := &GenericParam{Name: p.wantName(kw)}
		if p.got(Colon) {
			gp.Constraint = p.type_()
		}
		gp.rng = p.rangeFrom(ps)
		g.Params = append(g.Params, gp)
		if !p.got(Comma) {
			break
		}
		kw = ","
	}
	if !p.closeAngle() {
		p.errorf("Expected '>'.")
	}
	g.rng = p.rangeFrom(start)
	return g
}

func (p *Parser) optWhere() *WhereClause {
	if !p.tok().IsKeyword("where") {
		return nil
	}
	return p.whereClause()
}

// whereClause parses where A: P, B == C.
func (p *Parser) whereClause() *WhereClause {
	start := p.pos()
	p.next() // where
	w := &WhereClause{}
	for {
		rs := p.pos()
		r := &Requirement{Left: p.type_()}
		switch {
		case p.got(Colon):
			r.Right = p.type_()
		case p.isOp("=="):
			p.next()
			r.SameType = true
			r.Right = p.type_()
		default:
			p.errorf("Expected ':'.")
		}
		r.rng = p.rangeFrom(rs)
		w.Reqs = append(w.Reqs, r)
		if !p.got(Comma) {
			break
		}
	}
	w.rng = p.rangeFrom(start)
	return w
}

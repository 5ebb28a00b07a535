package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// Nodes fall into five closed categories: statements, declarations,
// expressions, patterns and types. Declarations and expressions are also
// statements, so a statement list holds all three. Support nodes (Name,
// Attribute, CodeBlock, ...) implement only Node.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Range() Range // source text covered by the node
	aNode()       // marker method to restrict implementations to this package
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// Decl is the interface for all declaration nodes.
type Decl interface {
	Stmt
	Attrs() []*Attribute
	Mods() []*Modifier
	aDecl()
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Stmt
	aExpr()
}

// Pattern is the interface for all pattern nodes.
type Pattern interface {
	Node
	aPattern()
}

// Type is the interface for all type nodes.
type Type interface {
	Node
	aType()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	rng Range
}

func (n *node) Range() Range { return n.rng }
func (n *node) aNode()       {}

// stmt is embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// decl is embedded in all declaration nodes.
type decl struct {
	stmt
	Attributes []*Attribute
	Modifiers  []*Modifier
}

func (d *decl) Attrs() []*Attribute { return d.Attributes }
func (d *decl) Mods() []*Modifier   { return d.Modifiers }
func (*decl) aDecl()                {}

// expr is embedded in all expression nodes.
type expr struct{ stmt }

func (*expr) aExpr() {}

// pattern is embedded in all pattern nodes.
type pattern struct{ node }

func (*pattern) aPattern() {}

// typ is embedded in all type nodes.
type typ struct{ node }

func (*typ) aType() {}

// ----------------------------------------------------------------------------
// File and support nodes

// File is the result of parsing one source file.
type File struct {
	node
	Shebang string // "#!..." first line, without the line break
	Stmts   []Stmt
}

// Name is an identifier occurrence. Value has backticks removed.
type Name struct {
	node
	Value string
}

// Attribute is @Name or @Name(args). Args is the raw text between the
// parentheses.
type Attribute struct {
	node
	Name    string
	Args    string
	HasArgs bool
}

// Modifier is a declaration modifier such as public, static or private(set).
type Modifier struct {
	node
	Name   string
	Detail string // "set" in private(set), "safe" in unowned(safe)
}

// CodeBlock is { Stmts... }.
type CodeBlock struct {
	node
	Stmts []Stmt
}

// GenericParamClause is <T, U: P>.
type GenericParamClause struct {
	node
	Params []*GenericParam
}

// GenericParam is T or T: Constraint.
type GenericParam struct {
	node
	Name       *Name
	Constraint Type
}

// WhereClause is where T: P, T.E == U.
type WhereClause struct {
	node
	Reqs []*Requirement
}

// Requirement is a conformance (Left: Right) or same-type (Left == Right)
// requirement.
type Requirement struct {
	node
	Left     Type
	Right    Type
	SameType bool
}

// InheritClause is : class, A, B.
type InheritClause struct {
	node
	ClassRequirement bool
	Types            []Type
}

// Param is a function, initializer, subscript or closure parameter.
type Param struct {
	node
	Attributes []*Attribute
	External   *Name // argument label; nil when only one name was written
	Local      *Name
	Type       Type // nil for shorthand closure parameters
	Variadic   bool
	Default    Expr
}

// PatternInit is one pattern = initializer entry of let/var.
type PatternInit struct {
	node
	Pattern Pattern
	Init    Expr
}

// Accessor is get/set/willSet/didSet inside a variable or subscript.
// Body is nil for protocol requirements.
type Accessor struct {
	node
	Attributes []*Attribute
	Modifiers  []*Modifier
	Kind       string
	Param      *Name // set(newValue)
	Body       *CodeBlock
}

// EnumCaseElement is one element of a case declaration.
type EnumCaseElement struct {
	node
	Name  *Name
	Assoc *TupleType
	Raw   Expr
}

// SwitchCase is one case or default label with its statements.
type SwitchCase struct {
	node
	Attributes []*Attribute // @unknown
	Items      []*CaseItem  // nil for default
	Default    bool
	Body       []Stmt
}

// CaseItem is pattern [where guard] in a case label.
type CaseItem struct {
	node
	Pattern Pattern
	Where   Expr
}

// CatchClause is catch [pattern] [where guard] { body }.
type CatchClause struct {
	node
	Pattern Pattern
	Where   Expr
	Body    *CodeBlock
}

// CondKind classifies an element of a condition list.
type CondKind uint8

const (
	ExprCond         CondKind = iota // x > 0
	BindingCond                      // let x = y
	CaseCond                         // case .some(let x) = y
	AvailabilityCond                 // #available(iOS 10, *)
)

var condKindNames = [...]string{
	ExprCond:         "expr",
	BindingCond:      "binding",
	CaseCond:         "case",
	AvailabilityCond: "availability",
}

func (k CondKind) String() string {
	if int(k) < len(condKindNames) {
		return condKindNames[k]
	}
	return "CondKind(?)"
}

// Condition is one element of an if/guard/while condition list.
type Condition struct {
	node
	Kind    CondKind
	Binding string // "let" or "var" for BindingCond
	Expr    Expr
	Pattern Pattern
	Init    Expr
	Args    string // raw #available arguments
}

// Arg is a labeled or unlabeled argument or tuple element.
type Arg struct {
	node
	Label *Name
	X     Expr
}

// DictEntry is key: value in a dictionary literal.
type DictEntry struct {
	node
	Key   Expr
	Value Expr
}

// Capture is one capture list entry: [weak self, x = y].
type Capture struct {
	node
	Specifier string
	Name      *Name
	X         Expr
}

// KeyPathComponent is .name?, .name! or [args] in a key path.
type KeyPathComponent struct {
	node
	Name    *Name
	Postfix string
	Args    []*Arg
}

// TuplePatternElem is [label:] pattern.
type TuplePatternElem struct {
	node
	Label   *Name
	Pattern Pattern
}

// TupleTypeElem is an element of a tuple or function parameter type.
type TupleTypeElem struct {
	node
	Attributes []*Attribute
	Label      *Name
	Local      *Name
	Type       Type
	Variadic   bool
}

// TypeName is one component of an identifier type: Name<Args>.
type TypeName struct {
	node
	Name *Name
	Args []Type
}

// ----------------------------------------------------------------------------
// Declarations

// ImportDecl is import [kind] a.b.c.
type ImportDecl struct {
	decl
	Kind string
	Path []*Name
}

// ConstantDecl is let p1 = e1, p2 = e2.
type ConstantDecl struct {
	decl
	Inits []*PatternInit
}

// VarDecl is a variable declaration: stored (Inits), computed (Getter or
// Accessors), or observed (Inits plus willSet/didSet Accessors).
type VarDecl struct {
	decl
	Inits     []*PatternInit
	Getter    *CodeBlock
	Accessors []*Accessor
}

// TypeAliasDecl is typealias Name<T> = Type.
type TypeAliasDecl struct {
	decl
	Name     *Name
	Generics *GenericParamClause
	Type     Type
}

// FuncDecl is a function or method declaration. Body is nil for protocol
// requirements.
type FuncDecl struct {
	decl
	Name        *Name
	Generics    *GenericParamClause
	Params      []*Param
	Throws      string // "", "throws" or "rethrows"
	ResultAttrs []*Attribute
	Result      Type
	Where       *WhereClause
	Body        *CodeBlock
}

// EnumDecl is an enum declaration.
type EnumDecl struct {
	decl
	Name     *Name
	Generics *GenericParamClause
	Inherit  *InheritClause
	Where    *WhereClause
	Members  []Stmt
}

// EnumCaseDecl is case a, b(Int), c = 1.
type EnumCaseDecl struct {
	decl
	Elems []*EnumCaseElement
}

// StructDecl is a struct declaration.
type StructDecl struct {
	decl
	Name     *Name
	Generics *GenericParamClause
	Inherit  *InheritClause
	Where    *WhereClause
	Members  []Stmt
}

// ClassDecl is a class declaration.
type ClassDecl struct {
	decl
	Name     *Name
	Generics *GenericParamClause
	Inherit  *InheritClause
	Where    *WhereClause
	Members  []Stmt
}

// ProtocolDecl is a protocol declaration.
type ProtocolDecl struct {
	decl
	Name    *Name
	Inherit *InheritClause
	Where   *WhereClause
	Members []Stmt
}

// ExtensionDecl is an extension declaration.
type ExtensionDecl struct {
	decl
	Type    Type
	Inherit *InheritClause
	Where   *WhereClause
	Members []Stmt
}

// InitDecl is init, init? or init!.
type InitDecl struct {
	decl
	Failable string // "", "?" or "!"
	Generics *GenericParamClause
	Params   []*Param
	Throws   string
	Where    *WhereClause
	Body     *CodeBlock
}

// DeinitDecl is deinit { ... }.
type DeinitDecl struct {
	decl
	Body *CodeBlock
}

// SubscriptDecl is a subscript declaration.
type SubscriptDecl struct {
	decl
	Generics    *GenericParamClause
	Params      []*Param
	ResultAttrs []*Attribute
	Result      Type
	Where       *WhereClause
	Getter      *CodeBlock
	Accessors   []*Accessor
}

// OperatorDecl is prefix/postfix/infix operator op [: Group].
type OperatorDecl struct {
	decl
	Fixity   string
	Operator string
	Group    *Name
}

// PrecedenceGroupDecl is precedencegroup Name { ... }.
type PrecedenceGroupDecl struct {
	decl
	Name          *Name
	HigherThan    []*Name
	LowerThan     []*Name
	Associativity string
	Assignment    bool
}

// AssociatedTypeDecl is associatedtype Name: P = Default where ....
type AssociatedTypeDecl struct {
	decl
	Name    *Name
	Inherit *InheritClause
	Default Type
	Where   *WhereClause
}

// ----------------------------------------------------------------------------
// Statements

// ForInStmt is for [case] pattern in seq [where guard] { body }.
type ForInStmt struct {
	stmt
	Case    bool
	Pattern Pattern
	Seq     Expr
	Where   Expr
	Body    *CodeBlock
}

// WhileStmt is while conds { body }.
type WhileStmt struct {
	stmt
	Conds []*Condition
	Body  *CodeBlock
}

// RepeatWhileStmt is repeat { body } while cond.
type RepeatWhileStmt struct {
	stmt
	Body *CodeBlock
	Cond Expr
}

// IfStmt is if conds { then } [else if ... | else { ... }].
type IfStmt struct {
	stmt
	Conds  []*Condition
	Then   *CodeBlock
	ElseIf *IfStmt
	Else   *CodeBlock
}

// GuardStmt is guard conds else { body }.
type GuardStmt struct {
	stmt
	Conds []*Condition
	Body  *CodeBlock
}

// SwitchStmt is switch subject { cases }.
type SwitchStmt struct {
	stmt
	Subject Expr
	Cases   []*SwitchCase
}

// LabeledStmt is label: loop/if/switch/do.
type LabeledStmt struct {
	stmt
	Label *Name
	Stmt  Stmt
}

// BreakStmt is break [label].
type BreakStmt struct {
	stmt
	Label *Name
}

// ContinueStmt is continue [label].
type ContinueStmt struct {
	stmt
	Label *Name
}

// FallthroughStmt is fallthrough.
type FallthroughStmt struct {
	stmt
}

// ReturnStmt is return [result].
type ReturnStmt struct {
	stmt
	Result Expr
}

// ThrowStmt is throw x.
type ThrowStmt struct {
	stmt
	X Expr
}

// DeferStmt is defer { body }.
type DeferStmt struct {
	stmt
	Body *CodeBlock
}

// DoStmt is do { body } catch ... .
type DoStmt struct {
	stmt
	Body    *CodeBlock
	Catches []*CatchClause
}

// CompilerControlStmt is a #if/#elseif/#else/#endif/#sourceLocation line.
// Text is the raw condition or argument text.
type CompilerControlStmt struct {
	stmt
	Directive string
	Text      string
}

// ----------------------------------------------------------------------------
// Expressions

// LitKind is the kind of a LiteralExpr.
type LitKind uint8

const (
	NilLit LitKind = iota
	BoolLit
	IntLit
	FloatLit
	StringLit
)

var litKindNames = [...]string{
	NilLit:    "nil",
	BoolLit:   "bool",
	IntLit:    "int",
	FloatLit:  "float",
	StringLit: "string",
}

// String returns the string representation of the literal kind.
func (k LitKind) String() string {
	if int(k) < len(litKindNames) {
		return litKindNames[k]
	}
	return "LitKind(?)"
}

// IdentExpr is a name with optional generic arguments or argument names:
// foo, Array<Int>, foo(a:b:).
type IdentExpr struct {
	expr
	Name        string
	GenericArgs []Type
	ArgNames    []*Name
}

// LiteralExpr is nil, true/false, a number or a static string. Value is
// the literal text as written; Token is the lexical kind for numbers and
// strings.
type LiteralExpr struct {
	expr
	Kind  LitKind
	Value string
	Token Kind
}

// InterpolatedStringExpr is a string literal with \( ) segments. Segments
// alternate static text (LiteralExpr) and interpolated expressions.
type InterpolatedStringExpr struct {
	expr
	Value    string
	Segments []Expr
}

// ArrayExpr is [a, b].
type ArrayExpr struct {
	expr
	Elems []Expr
}

// DictExpr is [k: v] or [:].
type DictExpr struct {
	expr
	Entries []*DictEntry
}

// MagicLiteralExpr is #file, #line, #column, #function or #dsohandle.
type MagicLiteralExpr struct {
	expr
	Name string
}

// PlaygroundLiteralExpr is #colorLiteral(...), #fileLiteral(...) or
// #imageLiteral(...).
type PlaygroundLiteralExpr struct {
	expr
	Name string
	Args []*Arg
}

// SelfExpr is self.
type SelfExpr struct {
	expr
}

// SuperExpr is super.
type SuperExpr struct {
	expr
}

// ClosureExpr is { [captures] (params) throws -> T in body }.
type ClosureExpr struct {
	expr
	Attributes    []*Attribute
	Captures      []*Capture
	Params        []*Param
	Parenthesized bool // params written as (a: T) rather than a, b
	Throws        string
	Result        Type
	HasIn         bool
	Body          []Stmt
}

// ParenExpr is (x).
type ParenExpr struct {
	expr
	X Expr
}

// TupleExpr is (), (a, b) or (label: x).
type TupleExpr struct {
	expr
	Elems []*Arg
}

// ImplicitMemberExpr is .name.
type ImplicitMemberExpr struct {
	expr
	Name *Name
}

// WildcardExpr is _.
type WildcardExpr struct {
	expr
}

// KeyPathExpr is \Root.a.b or \.a.
type KeyPathExpr struct {
	expr
	Root       Type
	Components []*KeyPathComponent
}

// KeyPathStringExpr is #keyPath(x).
type KeyPathStringExpr struct {
	expr
	X Expr
}

// SelectorExpr is #selector([getter:|setter:] x).
type SelectorExpr struct {
	expr
	Kind string
	X    Expr
}

// PrefixExpr is op x.
type PrefixExpr struct {
	expr
	Op string
	X  Expr
}

// PostfixExpr is x op.
type PostfixExpr struct {
	expr
	Op string
	X  Expr
}

// InOutExpr is &x.
type InOutExpr struct {
	expr
	X Expr
}

// BinaryExpr is x op y.
type BinaryExpr struct {
	expr
	Op string
	X  Expr
	Y  Expr
}

// AssignExpr is x = y.
type AssignExpr struct {
	expr
	X Expr
	Y Expr
}

// TernaryExpr is cond ? then : else.
type TernaryExpr struct {
	expr
	Cond Expr
	Then Expr
	Else Expr
}

// CastExpr is x is T, x as T, x as? T or x as! T.
type CastExpr struct {
	expr
	Op   string
	X    Expr
	Type Type
}

// TryExpr is try x, try? x or try! x.
type TryExpr struct {
	expr
	Kind string
	X    Expr
}

// CallExpr is Fun(Args) with an optional trailing closure.
type CallExpr struct {
	expr
	Fun       Expr
	Args      []*Arg
	HasParens bool
	Trailing  *ClosureExpr
}

// SubscriptExpr is X[Args].
type SubscriptExpr struct {
	expr
	X    Expr
	Args []*Arg
}

// MemberExpr is X.Name, X.Name<T> or X.name(a:b:).
type MemberExpr struct {
	expr
	X           Expr
	Name        *Name
	GenericArgs []Type
	ArgNames    []*Name
}

// TupleIndexExpr is X.0.
type TupleIndexExpr struct {
	expr
	X     Expr
	Index string
}

// InitRefExpr is X.init or X.init(a:b:).
type InitRefExpr struct {
	expr
	X        Expr
	ArgNames []*Name
}

// PostfixSelfExpr is X.self.
type PostfixSelfExpr struct {
	expr
	X Expr
}

// ForceExpr is X!.
type ForceExpr struct {
	expr
	X Expr
}

// OptionalChainExpr is X?.
type OptionalChainExpr struct {
	expr
	X Expr
}

// OperatorRefExpr is an operator used as a value: reduce(0, +).
type OperatorRefExpr struct {
	expr
	Op string
}

// BadExpr is a placeholder for an expression that could not be parsed.
type BadExpr struct {
	expr
}

// ----------------------------------------------------------------------------
// Patterns

// WildcardPattern is _ [: T].
type WildcardPattern struct {
	pattern
	Type Type
}

// IdentPattern is name [: T].
type IdentPattern struct {
	pattern
	Name *Name
	Type Type
}

// BindingPattern is let p or var p.
type BindingPattern struct {
	pattern
	Kind    string
	Pattern Pattern
}

// TuplePattern is (p1, label: p2) [: T].
type TuplePattern struct {
	pattern
	Elems []*TuplePatternElem
	Type  Type
}

// EnumCasePattern is [Type].name[(p1, p2)].
type EnumCasePattern struct {
	pattern
	Type  Type
	Name  *Name
	Tuple *TuplePattern
}

// OptionalPattern is p?.
type OptionalPattern struct {
	pattern
	Pattern Pattern
}

// IsPattern is is T.
type IsPattern struct {
	pattern
	Type Type
}

// AsPattern is p as T.
type AsPattern struct {
	pattern
	Pattern Pattern
	Type    Type
}

// ExprPattern is an expression matched with ~=.
type ExprPattern struct {
	pattern
	X Expr
}

// BadPattern is a placeholder for a pattern that could not be parsed.
type BadPattern struct {
	pattern
}

// ----------------------------------------------------------------------------
// Types

// IdentType is A<B>.C.
type IdentType struct {
	typ
	Elems []*TypeName
}

// ArrayType is [Elem].
type ArrayType struct {
	typ
	Elem Type
}

// DictType is [Key: Value].
type DictType struct {
	typ
	Key   Type
	Value Type
}

// OptionalType is Base?.
type OptionalType struct {
	typ
	Base Type
}

// IUOType is Base!.
type IUOType struct {
	typ
	Base Type
}

// TupleType is (A, label: B).
type TupleType struct {
	typ
	Elems []*TupleTypeElem
}

// FuncType is (Params) throws -> Result.
type FuncType struct {
	typ
	Params []*TupleTypeElem
	Throws string
	Result Type
}

// CompositionType is A & B.
type CompositionType struct {
	typ
	Types []Type
}

// MetatypeType is Base.Type or Base.Protocol.
type MetatypeType struct {
	typ
	Base Type
	Kind string
}

// InOutType is inout Base.
type InOutType struct {
	typ
	Base Type
}

// AttributedType is @escaping Base.
type AttributedType struct {
	typ
	Attributes []*Attribute
	Base       Type
}

// BadType is a placeholder for a type that could not be parsed.
type BadType struct {
	typ
}

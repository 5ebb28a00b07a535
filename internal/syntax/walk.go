package syntax

// Visitor is called for each node during Walk.
// If it returns false, the traversal stops.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order, visiting a node before its
// children and children in source order. It reports false if the visitor
// stopped the traversal.
func Walk(node Node, v Visitor) bool {
	if node == nil || !v(node) {
		return node == nil
	}

	w := &walker{v: v}
	switch n := node.(type) {
	case *File:
		each(w, n.Stmts)

	// Support nodes
	case *CodeBlock:
		each(w, n.Stmts)
	case *GenericParamClause:
		each(w, n.Params)
	case *GenericParam:
		opt(w, n.Name)
		w.walk(n.Constraint)
	case *WhereClause:
		each(w, n.Reqs)
	case *Requirement:
		w.walk(n.Left)
		w.walk(n.Right)
	case *InheritClause:
		each(w, n.Types)
	case *Param:
		each(w, n.Attributes)
		opt(w, n.External)
		opt(w, n.Local)
		w.walk(n.Type)
		w.walk(n.Default)
	case *PatternInit:
		w.walk(n.Pattern)
		w.walk(n.Init)
	case *Accessor:
		each(w, n.Attributes)
		each(w, n.Modifiers)
		opt(w, n.Param)
		opt(w, n.Body)
	case *EnumCaseElement:
		opt(w, n.Name)
		opt(w, n.Assoc)
		w.walk(n.Raw)
	case *SwitchCase:
		each(w, n.Attributes)
		each(w, n.Items)
		each(w, n.Body)
	case *CaseItem:
		w.walk(n.Pattern)
		w.walk(n.Where)
	case *CatchClause:
		w.walk(n.Pattern)
		w.walk(n.Where)
		opt(w, n.Body)
	case *Condition:
		w.walk(n.Expr)
		w.walk(n.Pattern)
		w.walk(n.Init)
	case *Arg:
		opt(w, n.Label)
		w.walk(n.X)
	case *DictEntry:
		w.walk(n.Key)
		w.walk(n.Value)
	case *Capture:
		opt(w, n.Name)
		w.walk(n.X)
	case *KeyPathComponent:
		opt(w, n.Name)
		each(w, n.Args)
	case *TuplePatternElem:
		opt(w, n.Label)
		w.walk(n.Pattern)
	case *TupleTypeElem:
		each(w, n.Attributes)
		opt(w, n.Label)
		opt(w, n.Local)
		w.walk(n.Type)
	case *TypeName:
		opt(w, n.Name)
		each(w, n.Args)

	// Declarations
	case *ImportDecl:
		w.decl(n)
		each(w, n.Path)
	case *ConstantDecl:
		w.decl(n)
		each(w, n.Inits)
	case *VarDecl:
		w.decl(n)
		each(w, n.Inits)
		opt(w, n.Getter)
		each(w, n.Accessors)
	case *TypeAliasDecl:
		w.decl(n)
		opt(w, n.Name)
		opt(w, n.Generics)
		w.walk(n.Type)
	case *FuncDecl:
		w.decl(n)
		opt(w, n.Name)
		opt(w, n.Generics)
		each(w, n.Params)
		each(w, n.ResultAttrs)
		w.walk(n.Result)
		opt(w, n.Where)
		opt(w, n.Body)
	case *EnumDecl:
		w.decl(n)
		w.nominal(n.Name, n.Generics, n.Inherit, n.Where, n.Members)
	case *StructDecl:
		w.decl(n)
		w.nominal(n.Name, n.Generics, n.Inherit, n.Where, n.Members)
	case *ClassDecl:
		w.decl(n)
		w.nominal(n.Name, n.Generics, n.Inherit, n.Where, n.Members)
	case *ProtocolDecl:
		w.decl(n)
		w.nominal(n.Name, nil, n.Inherit, n.Where, n.Members)
	case *EnumCaseDecl:
		w.decl(n)
		each(w, n.Elems)
	case *ExtensionDecl:
		w.decl(n)
		w.walk(n.Type)
		opt(w, n.Inherit)
		opt(w, n.Where)
		each(w, n.Members)
	case *InitDecl:
		w.decl(n)
		opt(w, n.Generics)
		each(w, n.Params)
		opt(w, n.Where)
		opt(w, n.Body)
	case *DeinitDecl:
		w.decl(n)
		opt(w, n.Body)
	case *SubscriptDecl:
		w.decl(n)
		opt(w, n.Generics)
		each(w, n.Params)
		each(w, n.ResultAttrs)
		w.walk(n.Result)
		opt(w, n.Where)
		opt(w, n.Getter)
		each(w, n.Accessors)
	case *OperatorDecl:
		w.decl(n)
		opt(w, n.Group)
	case *PrecedenceGroupDecl:
		w.decl(n)
		opt(w, n.Name)
		each(w, n.HigherThan)
		each(w, n.LowerThan)
	case *AssociatedTypeDecl:
		w.decl(n)
		opt(w, n.Name)
		opt(w, n.Inherit)
		w.walk(n.Default)
		opt(w, n.Where)

	// Statements
	case *ForInStmt:
		w.walk(n.Pattern)
		w.walk(n.Seq)
		w.walk(n.Where)
		opt(w, n.Body)
	case *WhileStmt:
		each(w, n.Conds)
		opt(w, n.Body)
	case *RepeatWhileStmt:
		opt(w, n.Body)
		w.walk(n.Cond)
	case *IfStmt:
		each(w, n.Conds)
		opt(w, n.Then)
		opt(w, n.ElseIf)
		opt(w, n.Else)
	case *GuardStmt:
		each(w, n.Conds)
		opt(w, n.Body)
	case *SwitchStmt:
		w.walk(n.Subject)
		each(w, n.Cases)
	case *LabeledStmt:
		opt(w, n.Label)
		w.walk(n.Stmt)
	case *BreakStmt:
		opt(w, n.Label)
	case *ContinueStmt:
		opt(w, n.Label)
	case *ReturnStmt:
		w.walk(n.Result)
	case *ThrowStmt:
		w.walk(n.X)
	case *DeferStmt:
		opt(w, n.Body)
	case *DoStmt:
		opt(w, n.Body)
		each(w, n.Catches)

	// Expressions
	case *IdentExpr:
		each(w, n.GenericArgs)
		each(w, n.ArgNames)
	case *InterpolatedStringExpr:
		each(w, n.Segments)
	case *ArrayExpr:
		each(w, n.Elems)
	case *DictExpr:
		each(w, n.Entries)
	case *PlaygroundLiteralExpr:
		each(w, n.Args)
	case *ClosureExpr:
		each(w, n.Attributes)
		each(w, n.Captures)
		each(w, n.Params)
		w.walk(n.Result)
		each(w, n.Body)
	case *ParenExpr:
		w.walk(n.X)
	case *TupleExpr:
		each(w, n.Elems)
	case *ImplicitMemberExpr:
		opt(w, n.Name)
	case *KeyPathExpr:
		w.walk(n.Root)
		each(w, n.Components)
	case *KeyPathStringExpr:
		w.walk(n.X)
	case *SelectorExpr:
		w.walk(n.X)
	case *PrefixExpr:
		w.walk(n.X)
	case *PostfixExpr:
		w.walk(n.X)
	case *InOutExpr:
		w.walk(n.X)
	case *BinaryExpr:
		w.walk(n.X)
		w.walk(n.Y)
	case *AssignExpr:
		w.walk(n.X)
		w.walk(n.Y)
	case *TernaryExpr:
		w.walk(n.Cond)
		w.walk(n.Then)
		w.walk(n.Else)
	case *CastExpr:
		w.walk(n.X)
		w.walk(n.Type)
	case *TryExpr:
		w.walk(n.X)
	case *CallExpr:
		w.walk(n.Fun)
		each(w, n.Args)
		opt(w, n.Trailing)
	case *SubscriptExpr:
		w.walk(n.X)
		each(w, n.Args)
	case *MemberExpr:
		w.walk(n.X)
		opt(w, n.Name)
		each(w, n.GenericArgs)
		each(w, n.ArgNames)
	case *TupleIndexExpr:
		w.walk(n.X)
	case *InitRefExpr:
		w.walk(n.X)
		each(w, n.ArgNames)
	case *PostfixSelfExpr:
		w.walk(n.X)
	case *ForceExpr:
		w.walk(n.X)
	case *OptionalChainExpr:
		w.walk(n.X)

	// Patterns
	case *WildcardPattern:
		w.walk(n.Type)
	case *IdentPattern:
		opt(w, n.Name)
		w.walk(n.Type)
	case *BindingPattern:
		w.walk(n.Pattern)
	case *TuplePattern:
		each(w, n.Elems)
		w.walk(n.Type)
	case *EnumCasePattern:
		w.walk(n.Type)
		opt(w, n.Name)
		opt(w, n.Tuple)
	case *OptionalPattern:
		w.walk(n.Pattern)
	case *IsPattern:
		w.walk(n.Type)
	case *AsPattern:
		w.walk(n.Pattern)
		w.walk(n.Type)
	case *ExprPattern:
		w.walk(n.X)

	// Types
	case *IdentType:
		each(w, n.Elems)
	case *ArrayType:
		w.walk(n.Elem)
	case *DictType:
		w.walk(n.Key)
		w.walk(n.Value)
	case *OptionalType:
		w.walk(n.Base)
	case *IUOType:
		w.walk(n.Base)
	case *TupleType:
		each(w, n.Elems)
	case *FuncType:
		each(w, n.Params)
		w.walk(n.Result)
	case *CompositionType:
		each(w, n.Types)
	case *MetatypeType:
		w.walk(n.Base)
	case *InOutType:
		w.walk(n.Base)
	case *AttributedType:
		each(w, n.Attributes)
		w.walk(n.Base)

		// Leaves: Name, Attribute, Modifier, FallthroughStmt,
		// CompilerControlStmt, LiteralExpr, MagicLiteralExpr, SelfExpr,
		// SuperExpr, WildcardExpr, OperatorRefExpr, BadExpr, BadPattern,
		// BadType.
	}
	return !w.stopped
}

// Inspect traverses an AST and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}

type walker struct {
	v       Visitor
	stopped bool
}

// walk visits an optional child held in an interface field.
func (w *walker) walk(n Node) {
	if !w.stopped && n != nil {
		w.stopped = !Walk(n, w.v)
	}
}

func (w *walker) decl(d Decl) {
	each(w, d.Attrs())
	each(w, d.Mods())
}

func (w *walker) nominal(name *Name, generics *GenericParamClause, inherit *InheritClause, where *WhereClause, members []Stmt) {
	opt(w, name)
	opt(w, generics)
	opt(w, inherit)
	opt(w, where)
	each(w, members)
}

// opt visits an optional child held in a pointer field.
func opt[T any, P interface {
	*T
	Node
}](w *walker, n P) {
	if n != nil {
		w.walk(n)
	}
}

func each[N Node](w *walker, list []N) {
	for _, n := range list {
		w.walk(n)
	}
}

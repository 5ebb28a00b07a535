package syntax

import (
	"fmt"
	"maps"
)

// Associativity of a precedence group.
type Associativity uint8

const (
	AssocNone Associativity = iota
	AssocLeft
	AssocRight
)

func (a Associativity) String() string {
	switch a {
	case AssocLeft:
		return "left"
	case AssocRight:
		return "right"
	}
	return "none"
}

// ParseAssociativity maps "left", "right" and "none" to an Associativity.
func ParseAssociativity(s string) (Associativity, error) {
	switch s {
	case "left":
		return AssocLeft, nil
	case "right":
		return AssocRight, nil
	case "none", "":
		return AssocNone, nil
	}
	return AssocNone, fmt.Errorf("invalid associativity %q", s)
}

// PrecedenceGroup is a named precedence level. HigherThan and LowerThan
// name the groups it is ordered against.
type PrecedenceGroup struct {
	Name          string
	Associativity Associativity
	Assignment    bool
	HigherThan    []string
	LowerThan     []string

	rank float64
}

// Names of the built-in groups the parser refers to directly.
const (
	DefaultPrecedence = "DefaultPrecedence"
	ternaryPrecedence = "TernaryPrecedence"
	castingPrecedence = "CastingPrecedence"
	assignPrecedence  = "AssignmentPrecedence"
)

// Built-in groups, tightest binding last. Ranks are spaced so that user
// groups can be placed between any two neighbours.
var builtinGroups = []*PrecedenceGroup{
	{Name: assignPrecedence, Associativity: AssocRight, Assignment: true},
	{Name: ternaryPrecedence, Associativity: AssocRight},
	{Name: DefaultPrecedence},
	{Name: "LogicalDisjunctionPrecedence", Associativity: AssocLeft},
	{Name: "LogicalConjunctionPrecedence", Associativity: AssocLeft},
	{Name: "ComparisonPrecedence"},
	{Name: "NilCoalescingPrecedence", Associativity: AssocRight},
	{Name: castingPrecedence},
	{Name: "RangeFormationPrecedence"},
	{Name: "AdditionPrecedence", Associativity: AssocLeft},
	{Name: "MultiplicationPrecedence", Associativity: AssocLeft},
	{Name: "BitwiseShiftPrecedence"},
}

var builtinOperators = map[string]string{
	"=": assignPrecedence, "*=": assignPrecedence, "/=": assignPrecedence,
	"%=": assignPrecedence, "+=": assignPrecedence, "-=": assignPrecedence,
	"<<=": assignPrecedence, ">>=": assignPrecedence, "&=": assignPrecedence,
	"|=": assignPrecedence, "^=": assignPrecedence, "&*=": assignPrecedence,
	"&+=": assignPrecedence, "&-=": assignPrecedence, "&<<=": assignPrecedence,
	"&>>=": assignPrecedence,

	"||": "LogicalDisjunctionPrecedence",
	"&&": "LogicalConjunctionPrecedence",

	"<": "ComparisonPrecedence", "<=": "ComparisonPrecedence",
	">": "ComparisonPrecedence", ">=": "ComparisonPrecedence",
	"==": "ComparisonPrecedence", "!=": "ComparisonPrecedence",
	"===": "ComparisonPrecedence", "!==": "ComparisonPrecedence",
	"~=": "ComparisonPrecedence",

	"??": "NilCoalescingPrecedence",

	"..<": "RangeFormationPrecedence", "...": "RangeFormationPrecedence",

	"+": "AdditionPrecedence", "-": "AdditionPrecedence",
	"&+": "AdditionPrecedence", "&-": "AdditionPrecedence",
	"|": "AdditionPrecedence", "^": "AdditionPrecedence",

	"*": "MultiplicationPrecedence", "/": "MultiplicationPrecedence",
	"%": "MultiplicationPrecedence", "&*": "MultiplicationPrecedence",
	"&": "MultiplicationPrecedence",

	"<<": "BitwiseShiftPrecedence", ">>": "BitwiseShiftPrecedence",
	"&<<": "BitwiseShiftPrecedence", "&>>": "BitwiseShiftPrecedence",
}

// builtinTable is shared read-only by every parser.
var builtinTable = func() *precedenceTable {
	t := &precedenceTable{
		groups: make(map[string]*PrecedenceGroup, len(builtinGroups)),
		infix:  builtinOperators,
	}
	for i, g := range builtinGroups {
		g.rank = float64(i+1) * 100
		t.groups[g.Name] = g
	}
	return t
}()

// precedenceTable maps infix operators to groups. A parser's table starts
// out sharing the built-in maps and copies them on first write.
type precedenceTable struct {
	groups map[string]*PrecedenceGroup
	infix  map[string]string
	owned  bool
}

func newPrecedenceTable() *precedenceTable {
	return &precedenceTable{groups: builtinTable.groups, infix: builtinTable.infix}
}

func (t *precedenceTable) own() {
	if t.owned {
		return
	}
	t.groups = maps.Clone(t.groups)
	t.infix = maps.Clone(t.infix)
	t.owned = true
}

// group returns the named group, or nil.
func (t *precedenceTable) group(name string) *PrecedenceGroup {
	return t.groups[name]
}

// lookup returns the group of infix operator op.
func (t *precedenceTable) lookup(op string) (*PrecedenceGroup, bool) {
	name, ok := t.infix[op]
	if !ok {
		return nil, false
	}
	g := t.groups[name]
	return g, g != nil
}

// defineGroup adds g, placing it between the groups it is declared
// higher and lower than. A group without known relations is placed just
// above DefaultPrecedence. Redefining a group keeps its rank while that
// rank still satisfies the relations. It returns the names of related
// groups that are not defined; those relations are ignored.
func (t *precedenceTable) defineGroup(g PrecedenceGroup) (unknown []string) {
	lo, hi := -1.0, -1.0
	for _, name := range g.HigherThan {
		r, ok := t.groups[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		lo = max(lo, r.rank)
	}
	for _, name := range g.LowerThan {
		r, ok := t.groups[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		if hi < 0 || r.rank < hi {
			hi = r.rank
		}
	}
	if lo < 0 && hi < 0 {
		lo = t.groups[DefaultPrecedence].rank
	}

	if old, ok := t.groups[g.Name]; ok && old.rank > lo && (hi < 0 || old.rank < hi) {
		g.rank = old.rank
	} else {
		if hi < 0 {
			hi = t.neighbor(g.Name, lo, true)
		}
		if lo < 0 {
			lo = t.neighbor(g.Name, hi, false)
		}
		g.rank = (lo + hi) / 2
	}

	t.own()
	t.groups[g.Name] = &g
	return unknown
}

// neighbor returns the closest rank above (or below) rank held by a group
// other than name. Past the ends it steps 100 up or returns 0.
func (t *precedenceTable) neighbor(name string, rank float64, above bool) float64 {
	n := -1.0
	for _, g := range t.groups {
		if g.Name == name {
			continue
		}
		if above && g.rank > rank && (n < 0 || g.rank < n) {
			n = g.rank
		}
		if !above && g.rank < rank && g.rank > n {
			n = g.rank
		}
	}
	switch {
	case n >= 0:
		return n
	case above:
		return rank + 100
	}
	return 0
}

// defineOperator declares op as an infix operator of group. It reports
// false if the group is unknown.
func (t *precedenceTable) defineOperator(op, group string) bool {
	if _, ok := t.groups[group]; !ok {
		return false
	}
	if t.infix[op] == group {
		return true
	}
	t.own()
	t.infix[op] = group
	return true
}
